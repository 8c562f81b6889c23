package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fyptrack/fyptrack/internal/app"
	"github.com/fyptrack/fyptrack/internal/service"
	"github.com/fyptrack/fyptrack/internal/store"
)

// Demo tokens issued by the seed fixtures.
const (
	tokenJohn  = "demo-student-1"
	tokenJane  = "demo-supervisor-2"
	tokenAdmin = "demo-admin-3"
	tokenBrown = "demo-supervisor-5"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	st := store.NewMemStore()
	if err := store.SeedDemo(context.Background(), st); err != nil {
		t.Fatal(err)
	}
	svc := service.New(st, nil, nil)
	ts := httptest.NewServer(app.NewServer(svc, nil, nil).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func doReq(t *testing.T, ts *httptest.Server, method, path, token string, body any) (*http.Response, map[string]json.RawMessage) {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, ts.URL+path, rd)
	if err != nil {
		t.Fatal(err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })

	var env map[string]json.RawMessage
	ct := resp.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/json") {
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
			t.Fatalf("decode %s %s: %v", method, path, err)
		}
	}
	return resp, env
}

func TestAuthRequired(t *testing.T) {
	ts := newTestServer(t)

	resp, env := doReq(t, ts, http.MethodGet, "/api/projects", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("no token: status %d", resp.StatusCode)
	}
	var ok bool
	_ = json.Unmarshal(env["success"], &ok)
	if ok {
		t.Fatal("success must be false")
	}

	resp, _ = doReq(t, ts, http.MethodGet, "/api/projects", "nope", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad token: status %d", resp.StatusCode)
	}
}

func TestListProjectsPagination(t *testing.T) {
	ts := newTestServer(t)

	resp, env := doReq(t, ts, http.MethodGet, "/api/projects?page=1&limit=1", tokenAdmin, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	var data struct {
		Data       []json.RawMessage `json:"data"`
		Pagination struct {
			Page, Limit, Total, Pages int
		} `json:"pagination"`
	}
	if err := json.Unmarshal(env["data"], &data); err != nil {
		t.Fatal(err)
	}
	if len(data.Data) != 1 || data.Pagination.Total != 2 || data.Pagination.Pages != 2 {
		t.Fatalf("pagination: %+v", data.Pagination)
	}
}

func TestStudentSeesOnlyOwnProjects(t *testing.T) {
	ts := newTestServer(t)

	_, env := doReq(t, ts, http.MethodGet, "/api/projects", tokenJohn, nil)
	var data struct {
		Data []struct {
			StudentID int64 `json:"studentId"`
		} `json:"data"`
	}
	if err := json.Unmarshal(env["data"], &data); err != nil {
		t.Fatal(err)
	}
	if len(data.Data) != 1 || data.Data[0].StudentID != 1 {
		t.Fatalf("student view: %+v", data.Data)
	}
}

func TestSubmitAndTransitionEndpoints(t *testing.T) {
	ts := newTestServer(t)

	resp, env := doReq(t, ts, http.MethodPost, "/api/projects/6/submit", tokenJohn, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("submit: status %d %s", resp.StatusCode, env["message"])
	}

	// Submitting again is an illegal edge.
	resp, _ = doReq(t, ts, http.MethodPost, "/api/projects/6/submit", tokenJohn, nil)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("double submit: status %d", resp.StatusCode)
	}

	// The student may not review.
	resp, _ = doReq(t, ts, http.MethodPost, "/api/projects/6/transition", tokenJohn,
		map[string]string{"status": "under_review"})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("student review: status %d", resp.StatusCode)
	}

	resp, _ = doReq(t, ts, http.MethodPost, "/api/projects/6/transition", tokenJane,
		map[string]string{"status": "under_review"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("supervisor review: status %d", resp.StatusCode)
	}

	resp, _ = doReq(t, ts, http.MethodPost, "/api/projects/6/transition", tokenJane,
		map[string]string{"status": "banana"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unknown status: status %d", resp.StatusCode)
	}
}

func TestDuplicateEvaluationConflict(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]any{
		"projectId": 7,
		"criteria":  []map[string]any{{"name": "Research", "maxScore": 10, "score": 8}},
	}
	resp, _ := doReq(t, ts, http.MethodPost, "/api/evaluations", tokenBrown, body)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate evaluation: status %d", resp.StatusCode)
	}
}

func TestEvaluationScoreValidation(t *testing.T) {
	ts := newTestServer(t)

	// Submit John's project so it is evaluable, then send a bad score.
	if resp, _ := doReq(t, ts, http.MethodPost, "/api/projects/6/submit", tokenJohn, nil); resp.StatusCode != http.StatusOK {
		t.Fatalf("submit: %d", resp.StatusCode)
	}
	body := map[string]any{
		"projectId": 6,
		"criteria":  []map[string]any{{"name": "Research", "maxScore": 10, "score": 12}},
	}
	resp, _ := doReq(t, ts, http.MethodPost, "/api/evaluations", tokenJane, body)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("score over max: status %d", resp.StatusCode)
	}
}

func TestFeedbackEndpoints(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]any{
		"projectId": 6, "type": "progress", "subject": "Check-in", "message": "Keep going.",
	}
	resp, env := doReq(t, ts, http.MethodPost, "/api/feedback", tokenJane, body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add feedback: status %d %s", resp.StatusCode, env["message"])
	}
	var created struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(env["data"], &created); err != nil {
		t.Fatal(err)
	}

	_, env = doReq(t, ts, http.MethodGet, "/api/feedback/unread/count", tokenJohn, nil)
	var count struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(env["data"], &count); err != nil {
		t.Fatal(err)
	}
	if count.Count != 1 {
		t.Fatalf("unread = %d", count.Count)
	}

	path := fmt.Sprintf("/api/feedback/%d/read", created.ID)
	if resp, _ := doReq(t, ts, http.MethodPut, path, tokenJane, nil); resp.StatusCode != http.StatusForbidden {
		t.Fatalf("author mark read: status %d", resp.StatusCode)
	}
	if resp, _ := doReq(t, ts, http.MethodPut, path, tokenJohn, nil); resp.StatusCode != http.StatusOK {
		t.Fatalf("owner mark read: status %d", resp.StatusCode)
	}

	// Ledger comes back newest first.
	_, env = doReq(t, ts, http.MethodGet, "/api/feedback/project/6", tokenJohn, nil)
	var entries []struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(env["data"], &entries); err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 || entries[0].ID != created.ID {
		t.Fatalf("ledger order: %+v", entries)
	}
}

func TestDashboardAdminOnly(t *testing.T) {
	ts := newTestServer(t)

	if resp, _ := doReq(t, ts, http.MethodGet, "/api/reports/dashboard", tokenJane, nil); resp.StatusCode != http.StatusForbidden {
		t.Fatalf("supervisor dashboard: status %d", resp.StatusCode)
	}
	resp, env := doReq(t, ts, http.MethodGet, "/api/reports/dashboard", tokenAdmin, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin dashboard: status %d", resp.StatusCode)
	}
	var stats struct {
		TotalProjects    int            `json:"totalProjects"`
		ProjectsByStatus map[string]int `json:"projectsByStatus"`
	}
	if err := json.Unmarshal(env["data"], &stats); err != nil {
		t.Fatal(err)
	}
	if stats.TotalProjects != 2 || len(stats.ProjectsByStatus) != 6 {
		t.Fatalf("dashboard: %+v", stats)
	}
}

func TestUserProvisioning(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]any{
		"name": "New Student", "email": "new@example.com", "role": "student", "department": "Computer Science",
	}
	resp, env := doReq(t, ts, http.MethodPost, "/api/users", tokenAdmin, body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create user: status %d %s", resp.StatusCode, env["message"])
	}
	var data struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env["data"], &data); err != nil {
		t.Fatal(err)
	}
	if data.Token == "" {
		t.Fatal("no token in response")
	}

	// The fresh token authenticates immediately.
	if resp, _ := doReq(t, ts, http.MethodGet, "/api/projects", data.Token, nil); resp.StatusCode != http.StatusOK {
		t.Fatalf("fresh token: status %d", resp.StatusCode)
	}

	if resp, _ := doReq(t, ts, http.MethodPost, "/api/users", tokenJohn, body); resp.StatusCode != http.StatusForbidden {
		t.Fatalf("student create user: status %d", resp.StatusCode)
	}
}

func TestExportCSV(t *testing.T) {
	ts := newTestServer(t)

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/export/projects.csv", nil)
	req.Header.Set("Authorization", "Bearer "+tokenAdmin)
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("csv lines = %d", len(lines))
	}
	if lines[0] != "Title,Student,Supervisor,Department,Status,Progress" {
		t.Fatalf("header = %q", lines[0])
	}
	if !strings.Contains(buf.String(), "John Doe") {
		t.Fatal("student name missing from export")
	}
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
}

func TestNotificationEndpoints(t *testing.T) {
	ts := newTestServer(t)

	// Submission generates a notification for the supervisor.
	if resp, _ := doReq(t, ts, http.MethodPost, "/api/projects/6/submit", tokenJohn, nil); resp.StatusCode != http.StatusOK {
		t.Fatalf("submit failed")
	}

	_, env := doReq(t, ts, http.MethodGet, "/api/notifications", tokenJane, nil)
	var ns []struct {
		ID   int64  `json:"id"`
		Type string `json:"type"`
	}
	if err := json.Unmarshal(env["data"], &ns); err != nil {
		t.Fatal(err)
	}
	if len(ns) != 1 || ns[0].Type != "submission" {
		t.Fatalf("notifications: %+v", ns)
	}

	if resp, _ := doReq(t, ts, http.MethodPut, "/api/notifications/read-all", tokenJane, nil); resp.StatusCode != http.StatusOK {
		t.Fatalf("read-all failed")
	}
	_, env = doReq(t, ts, http.MethodGet, "/api/notifications/unread/count", tokenJane, nil)
	var count struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(env["data"], &count); err != nil {
		t.Fatal(err)
	}
	if count.Count != 0 {
		t.Fatalf("unread = %d", count.Count)
	}
}
