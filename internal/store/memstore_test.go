package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fyptrack/fyptrack/internal/core"
	"github.com/fyptrack/fyptrack/internal/models"
)

func seeded(t *testing.T) (*MemStore, context.Context) {
	t.Helper()
	m := NewMemStore()
	ctx := context.Background()
	if err := SeedDemo(ctx, m); err != nil {
		t.Fatal(err)
	}
	return m, ctx
}

func TestListProjectsFiltering(t *testing.T) {
	m, ctx := seeded(t)

	all, total, err := m.ListProjects(ctx, ProjectFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 || len(all) != 2 {
		t.Fatalf("all projects: total=%d len=%d, want 2/2", total, len(all))
	}

	st := models.StatusSubmitted
	subs, total, err := m.ListProjects(ctx, ProjectFilter{Status: &st})
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 || subs[0].Title != "Mobile Health Monitoring System" {
		t.Fatalf("submitted filter wrong: total=%d", total)
	}

	sup := all[0].SupervisorID
	mine, total, err := m.ListProjects(ctx, ProjectFilter{SupervisorID: &sup})
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 || mine[0].SupervisorID != sup {
		t.Fatalf("supervisor filter wrong: total=%d", total)
	}
}

func TestListProjectsPagination(t *testing.T) {
	m := NewMemStore()
	ctx := context.Background()
	for i := 0; i < 25; i++ {
		p := models.Project{Title: "p", Status: models.StatusDraft, StartDate: time.Now()}
		if _, err := m.CreateProject(ctx, &p); err != nil {
			t.Fatal(err)
		}
	}
	page1, total, err := m.ListProjects(ctx, ProjectFilter{Page: 1, Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if total != 25 || len(page1) != 10 {
		t.Fatalf("page 1: total=%d len=%d", total, len(page1))
	}
	page3, _, err := m.ListProjects(ctx, ProjectFilter{Page: 3, Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(page3) != 5 {
		t.Fatalf("page 3 len=%d, want 5", len(page3))
	}
	empty, _, err := m.ListProjects(ctx, ProjectFilter{Page: 4, Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(empty) != 0 {
		t.Fatalf("page past end len=%d, want 0", len(empty))
	}
}

func TestCreateEvaluationConflict(t *testing.T) {
	m, ctx := seeded(t)

	evs, err := m.ListEvaluations(ctx)
	if err != nil || len(evs) != 1 {
		t.Fatalf("seed evaluations: %v len=%d", err, len(evs))
	}
	dup := models.Evaluation{ProjectID: evs[0].ProjectID, EvaluatorID: 99, Status: models.EvaluationPending}
	if _, err := m.CreateEvaluation(ctx, &dup); !errors.Is(err, core.ErrConflict) {
		t.Fatalf("duplicate evaluation: want ErrConflict, got %v", err)
	}
	// Rejection is idempotent regardless of call order.
	if _, err := m.CreateEvaluation(ctx, &dup); !errors.Is(err, core.ErrConflict) {
		t.Fatalf("second duplicate: want ErrConflict, got %v", err)
	}
}

func TestGetEvaluationByProjectNotFound(t *testing.T) {
	m, ctx := seeded(t)
	if _, err := m.GetEvaluationByProject(ctx, 123456); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestFeedbackOrderingAndUnreadCount(t *testing.T) {
	m, ctx := seeded(t)

	st := models.StatusSubmitted
	subs, _, err := m.ListProjects(ctx, ProjectFilter{Status: &st})
	if err != nil || len(subs) != 1 {
		t.Fatal("seeded submitted project missing")
	}
	p := subs[0]

	entries, err := m.ListFeedbackByProject(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].CreatedAt.After(entries[i-1].CreatedAt) {
			t.Fatal("feedback not in descending creation order")
		}
	}

	n, err := m.CountUnreadFeedback(ctx, p.StudentID)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("unread count = %d, want 1", n)
	}
	if err := m.MarkFeedbackRead(ctx, entries[0].ID); err != nil {
		t.Fatal(err)
	}
	if n, _ = m.CountUnreadFeedback(ctx, p.StudentID); n != 0 {
		t.Fatalf("unread count after read = %d, want 0", n)
	}
}

func TestResolveToken(t *testing.T) {
	m, ctx := seeded(t)

	admins, err := m.ListUsers(ctx, roleptr(models.RoleAdmin))
	if err != nil || len(admins) != 1 {
		t.Fatal("seeded admin missing")
	}
	u, err := m.ResolveToken(ctx, "demo-admin-3")
	if err != nil {
		t.Fatal(err)
	}
	if u.Role != models.RoleAdmin {
		t.Fatalf("resolved role %s", u.Role)
	}
	if _, err := m.ResolveToken(ctx, "bogus"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("bogus token: want ErrNotFound, got %v", err)
	}
}

func TestStoreCopiesOnReturn(t *testing.T) {
	m, ctx := seeded(t)
	p, err := m.GetProject(ctx, 6)
	if err != nil {
		t.Fatal(err)
	}
	// Mutating the snapshot must not leak into the store: a failed
	// read-modify-write is discarded, never merged.
	p.Status = models.StatusApproved
	p.Objectives[0] = "tampered"
	again, err := m.GetProject(ctx, 6)
	if err != nil {
		t.Fatal(err)
	}
	if again.Status == models.StatusApproved || again.Objectives[0] == "tampered" {
		t.Fatal("store returned shared state")
	}
}

func roleptr(r models.Role) *models.Role { return &r }
