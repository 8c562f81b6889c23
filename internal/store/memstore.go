package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fyptrack/fyptrack/internal/core"
	"github.com/fyptrack/fyptrack/internal/models"
)

// MemStore is the in-memory Store. It backs unit tests and local runs and
// mirrors the persistence contract exactly, including the one-evaluation-
// per-project conflict. All methods copy on the way in and out so a caller
// discarding failed state can never leak half-applied records.
type MemStore struct {
	mu sync.Mutex

	users         map[int64]models.User
	projects      map[int64]models.Project
	documents     map[int64]models.Document
	feedback      map[int64]models.FeedbackEntry
	evaluations   map[int64]models.Evaluation
	notifications map[int64]models.Notification
	tokens        map[string]int64

	nextID int64
}

var _ Store = (*MemStore)(nil)

func NewMemStore() *MemStore {
	return &MemStore{
		users:         make(map[int64]models.User),
		projects:      make(map[int64]models.Project),
		documents:     make(map[int64]models.Document),
		feedback:      make(map[int64]models.FeedbackEntry),
		evaluations:   make(map[int64]models.Evaluation),
		notifications: make(map[int64]models.Notification),
		tokens:        make(map[string]int64),
	}
}

func (m *MemStore) nextid() int64 {
	m.nextID++
	return m.nextID
}

// ---- projects ----

func (m *MemStore) CreateProject(_ context.Context, p *models.Project) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = m.nextid()
	m.projects[p.ID] = cloneProject(*p)
	return p.ID, nil
}

func (m *MemStore) GetProject(_ context.Context, id int64) (*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.projects[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := cloneProject(p)
	return &cp, nil
}

func (m *MemStore) UpdateProject(_ context.Context, p *models.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.projects[p.ID]; !ok {
		return core.ErrNotFound
	}
	m.projects[p.ID] = cloneProject(*p)
	return nil
}

func (m *MemStore) DeleteProject(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.projects[id]; !ok {
		return core.ErrNotFound
	}
	delete(m.projects, id)
	for fid, f := range m.feedback {
		if f.ProjectID == id {
			delete(m.feedback, fid)
		}
	}
	for eid, ev := range m.evaluations {
		if ev.ProjectID == id {
			delete(m.evaluations, eid)
		}
	}
	return nil
}

func (m *MemStore) ListProjects(_ context.Context, f ProjectFilter) ([]models.Project, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f = f.Normalize()

	var all []models.Project
	for _, p := range m.projects {
		if f.Status != nil && p.Status != *f.Status {
			continue
		}
		if f.Department != "" && p.Department != f.Department {
			continue
		}
		if f.SupervisorID != nil && p.SupervisorID != *f.SupervisorID {
			continue
		}
		if f.StudentID != nil && p.StudentID != *f.StudentID {
			continue
		}
		all = append(all, cloneProject(p))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	total := len(all)
	start := (f.Page - 1) * f.Limit
	if start >= total {
		return []models.Project{}, total, nil
	}
	end := start + f.Limit
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

func (m *MemStore) AddDocument(_ context.Context, d *models.Document) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.projects[d.ProjectID]; !ok {
		return 0, core.ErrNotFound
	}
	d.ID = m.nextid()
	m.documents[d.ID] = *d
	return d.ID, nil
}

func (m *MemStore) ListDocuments(_ context.Context, projectID int64) ([]models.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Document
	for _, d := range m.documents {
		if d.ProjectID == projectID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ---- feedback ----

func (m *MemStore) AddFeedback(_ context.Context, e *models.FeedbackEntry) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.projects[e.ProjectID]; !ok {
		return 0, core.ErrNotFound
	}
	e.ID = m.nextid()
	m.feedback[e.ID] = *e
	return e.ID, nil
}

func (m *MemStore) GetFeedback(_ context.Context, id int64) (*models.FeedbackEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.feedback[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := e
	return &cp, nil
}

func (m *MemStore) ListFeedbackByProject(_ context.Context, projectID int64) ([]models.FeedbackEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.FeedbackEntry
	for _, e := range m.feedback {
		if e.ProjectID == projectID {
			out = append(out, e)
		}
	}
	core.SortFeedback(out)
	return out, nil
}

func (m *MemStore) MarkFeedbackRead(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.feedback[id]
	if !ok {
		return core.ErrNotFound
	}
	e.Read = true
	m.feedback[id] = e
	return nil
}

func (m *MemStore) CountUnreadFeedback(_ context.Context, studentID int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.feedback {
		if e.Read {
			continue
		}
		p, ok := m.projects[e.ProjectID]
		if ok && p.StudentID == studentID {
			n++
		}
	}
	return n, nil
}

func (m *MemStore) ListFeedback(_ context.Context) ([]models.FeedbackEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.FeedbackEntry, 0, len(m.feedback))
	for _, e := range m.feedback {
		out = append(out, e)
	}
	core.SortFeedback(out)
	return out, nil
}

// ---- evaluations ----

func (m *MemStore) CreateEvaluation(_ context.Context, ev *models.Evaluation) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.projects[ev.ProjectID]; !ok {
		return 0, core.ErrNotFound
	}
	for _, existing := range m.evaluations {
		if existing.ProjectID == ev.ProjectID {
			return 0, core.ErrConflict
		}
	}
	ev.ID = m.nextid()
	m.evaluations[ev.ID] = cloneEvaluation(*ev)
	return ev.ID, nil
}

func (m *MemStore) GetEvaluation(_ context.Context, id int64) (*models.Evaluation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ev, ok := m.evaluations[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := cloneEvaluation(ev)
	return &cp, nil
}

func (m *MemStore) GetEvaluationByProject(_ context.Context, projectID int64) (*models.Evaluation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ev := range m.evaluations {
		if ev.ProjectID == projectID {
			cp := cloneEvaluation(ev)
			return &cp, nil
		}
	}
	return nil, core.ErrNotFound
}

func (m *MemStore) DeleteEvaluation(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.evaluations[id]; !ok {
		return core.ErrNotFound
	}
	delete(m.evaluations, id)
	return nil
}

func (m *MemStore) ListEvaluations(_ context.Context) ([]models.Evaluation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Evaluation, 0, len(m.evaluations))
	for _, ev := range m.evaluations {
		out = append(out, cloneEvaluation(ev))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ---- users ----

func (m *MemStore) CreateUser(_ context.Context, u *models.User) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.ID = m.nextid()
	m.users[u.ID] = *u
	return u.ID, nil
}

func (m *MemStore) GetUser(_ context.Context, id int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := u
	return &cp, nil
}

func (m *MemStore) ListUsers(_ context.Context, role *models.Role) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.User
	for _, u := range m.users {
		if role != nil && u.Role != *role {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemStore) DeleteUser(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return core.ErrNotFound
	}
	delete(m.users, id)
	for tok, uid := range m.tokens {
		if uid == id {
			delete(m.tokens, tok)
		}
	}
	return nil
}

func (m *MemStore) CountUsersByRole(_ context.Context, role models.Role) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, u := range m.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

// ---- notifications ----

func (m *MemStore) AddNotification(_ context.Context, n *models.Notification) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n.ID = m.nextid()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	m.notifications[n.ID] = *n
	return n.ID, nil
}

func (m *MemStore) ListNotifications(_ context.Context, userID int64) ([]models.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Notification
	for _, n := range m.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MemStore) MarkNotificationRead(_ context.Context, id, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.notifications[id]
	if !ok || n.UserID != userID {
		return core.ErrNotFound
	}
	n.Read = true
	m.notifications[id] = n
	return nil
}

func (m *MemStore) MarkAllNotificationsRead(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, n := range m.notifications {
		if n.UserID == userID && !n.Read {
			n.Read = true
			m.notifications[id] = n
		}
	}
	return nil
}

func (m *MemStore) CountUnreadNotifications(_ context.Context, userID int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, nt := range m.notifications {
		if nt.UserID == userID && !nt.Read {
			n++
		}
	}
	return n, nil
}

// ---- tokens ----

func (m *MemStore) IssueToken(_ context.Context, userID int64, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[userID]; !ok {
		return core.ErrNotFound
	}
	m.tokens[token] = userID
	return nil
}

func (m *MemStore) ResolveToken(_ context.Context, token string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	uid, ok := m.tokens[token]
	if !ok {
		return nil, core.ErrNotFound
	}
	u, ok := m.users[uid]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := u
	return &cp, nil
}

// ---- copy helpers ----

func cloneProject(p models.Project) models.Project {
	p.Objectives = append([]string(nil), p.Objectives...)
	p.Technologies = append([]string(nil), p.Technologies...)
	p.Documents = append([]models.Document(nil), p.Documents...)
	if p.SubmissionDate != nil {
		t := *p.SubmissionDate
		p.SubmissionDate = &t
	}
	if p.ExpectedCompletionDate != nil {
		t := *p.ExpectedCompletionDate
		p.ExpectedCompletionDate = &t
	}
	return p
}

func cloneEvaluation(ev models.Evaluation) models.Evaluation {
	ev.Criteria = append([]models.Criterion(nil), ev.Criteria...)
	if ev.EvaluatedAt != nil {
		t := *ev.EvaluatedAt
		ev.EvaluatedAt = &t
	}
	return ev
}
