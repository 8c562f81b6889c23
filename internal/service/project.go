package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fyptrack/fyptrack/internal/core"
	"github.com/fyptrack/fyptrack/internal/metrics"
	"github.com/fyptrack/fyptrack/internal/models"
	"github.com/fyptrack/fyptrack/internal/store"
)

type CreateProjectInput struct {
	Title                  string     `json:"title"`
	Description            string     `json:"description"`
	StudentID              int64      `json:"studentId"` // admin only; students create their own
	SupervisorID           int64      `json:"supervisorId"`
	Department             string     `json:"department"`
	StartDate              time.Time  `json:"startDate"`
	ExpectedCompletionDate *time.Time `json:"expectedCompletionDate"`
	Objectives             []string   `json:"objectives"`
	Technologies           []string   `json:"technologies"`
}

// UpdateProjectInput carries field edits. Status is deliberately absent:
// lifecycle changes go through TransitionProject, never a field overwrite.
type UpdateProjectInput struct {
	Title                  *string    `json:"title"`
	Description            *string    `json:"description"`
	Department             *string    `json:"department"`
	Progress               *int       `json:"progress"`
	ExpectedCompletionDate *time.Time `json:"expectedCompletionDate"`
	Objectives             []string   `json:"objectives"`
	Technologies           []string   `json:"technologies"`
}

// CreateProject opens a new draft. A student owns what they create; an
// admin may create on a student's behalf.
func (s *Service) CreateProject(ctx context.Context, actor models.User, in CreateProjectInput) (*models.Project, error) {
	studentID := in.StudentID
	switch {
	case actor.IsStudent():
		studentID = actor.ID
	case actor.IsAdmin():
		if studentID == 0 {
			return nil, fmt.Errorf("studentId is required: %w", ErrInvalidInput)
		}
	default:
		return nil, fmt.Errorf("create project as %s: %w", actor.Role, core.ErrForbidden)
	}
	if in.Title == "" {
		return nil, fmt.Errorf("title is required: %w", ErrInvalidInput)
	}

	sup, err := s.store.GetUser(ctx, in.SupervisorID)
	if err != nil {
		return nil, fmt.Errorf("supervisor %d: %w", in.SupervisorID, err)
	}
	if !sup.IsSupervisor() {
		return nil, fmt.Errorf("user %d is not a supervisor: %w", in.SupervisorID, ErrInvalidInput)
	}

	now := s.Now()
	start := in.StartDate
	if start.IsZero() {
		start = now
	}
	p := &models.Project{
		Title:                  in.Title,
		Description:            in.Description,
		StudentID:              studentID,
		SupervisorID:           in.SupervisorID,
		Department:             in.Department,
		Status:                 models.StatusDraft,
		StartDate:              start,
		ExpectedCompletionDate: in.ExpectedCompletionDate,
		Objectives:             in.Objectives,
		Technologies:           in.Technologies,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	if _, err := s.store.CreateProject(ctx, p); err != nil {
		return nil, err
	}
	s.log.Info("project created",
		zap.Int64("project_id", p.ID), zap.Int64("student_id", studentID), zap.Int64("supervisor_id", in.SupervisorID))
	return s.decorate(ctx, p)
}

func (s *Service) GetProject(ctx context.Context, actor models.User, id int64) (*models.Project, error) {
	p, err := s.store.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := core.Authorize(actor, core.OpViewProject, p); err != nil {
		return nil, err
	}
	return s.decorate(ctx, p)
}

// ListProjects narrows the filter to what the actor may see before it ever
// reaches the store: students their own projects, supervisors their
// assignments, admins everything.
func (s *Service) ListProjects(ctx context.Context, actor models.User, f store.ProjectFilter) ([]models.Project, int, error) {
	switch actor.Role {
	case models.RoleStudent:
		id := actor.ID
		f.StudentID = &id
	case models.RoleSupervisor:
		id := actor.ID
		f.SupervisorID = &id
	case models.RoleAdmin:
		// unrestricted
	default:
		return nil, 0, core.ErrForbidden
	}
	items, total, err := s.store.ListProjects(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	for i := range items {
		if _, err := s.decorate(ctx, &items[i]); err != nil {
			return nil, 0, err
		}
	}
	return items, total, nil
}

func (s *Service) UpdateProject(ctx context.Context, actor models.User, id int64, in UpdateProjectInput) (*models.Project, error) {
	p, err := s.store.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := core.Authorize(actor, core.OpEditProject, p); err != nil {
		return nil, err
	}

	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Department != nil {
		p.Department = *in.Department
	}
	if in.Progress != nil {
		// Bounded, but free to move in either direction; the source never
		// enforced monotonic progress.
		if *in.Progress < 0 || *in.Progress > 100 {
			return nil, fmt.Errorf("progress %d outside 0..100: %w", *in.Progress, ErrInvalidInput)
		}
		p.Progress = *in.Progress
	}
	if in.ExpectedCompletionDate != nil {
		p.ExpectedCompletionDate = in.ExpectedCompletionDate
	}
	if in.Objectives != nil {
		p.Objectives = in.Objectives
	}
	if in.Technologies != nil {
		p.Technologies = in.Technologies
	}
	p.UpdatedAt = s.Now()

	if err := s.store.UpdateProject(ctx, p); err != nil {
		return nil, err
	}
	return s.decorate(ctx, p)
}

// TransitionProject validates and applies one lifecycle edge and persists
// the result. The supervisor is notified when a project lands in
// submitted.
func (s *Service) TransitionProject(ctx context.Context, actor models.User, id int64, target models.Status) (*models.Project, error) {
	p, err := s.store.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	from := p.Status
	if err := core.Transition(p, target, actor, s.Now()); err != nil {
		return nil, err
	}
	if err := s.store.UpdateProject(ctx, p); err != nil {
		return nil, err
	}
	metrics.Transitions.WithLabelValues(string(from), string(target)).Inc()
	s.log.Info("project transitioned",
		zap.Int64("project_id", p.ID), zap.String("from", string(from)), zap.String("to", string(target)),
		zap.String("actor_role", string(actor.Role)))

	if target == models.StatusSubmitted {
		student, err := s.store.GetUser(ctx, p.StudentID)
		name := "A student"
		if err == nil {
			name = student.Name
		}
		s.notify(ctx, p.SupervisorID, models.NotifySubmission,
			"New Project Submitted",
			fmt.Sprintf("%s submitted %s", name, p.Title),
			fmt.Sprintf("/supervisor/projects/%d", p.ID))
	}
	return s.decorate(ctx, p)
}

func (s *Service) DeleteProject(ctx context.Context, actor models.User, id int64) error {
	p, err := s.store.GetProject(ctx, id)
	if err != nil {
		return err
	}
	if err := core.Authorize(actor, core.OpDeleteProject, p); err != nil {
		return err
	}
	if err := s.store.DeleteProject(ctx, id); err != nil {
		return err
	}
	s.log.Info("project deleted", zap.Int64("project_id", id), zap.Int64("admin_id", actor.ID))
	return nil
}

func (s *Service) AddDocument(ctx context.Context, actor models.User, d *models.Document) (*models.Document, error) {
	p, err := s.store.GetProject(ctx, d.ProjectID)
	if err != nil {
		return nil, err
	}
	if err := core.Authorize(actor, core.OpEditProject, p); err != nil {
		return nil, err
	}
	if d.Name == "" {
		return nil, fmt.Errorf("document name is required: %w", ErrInvalidInput)
	}
	if d.UploadDate.IsZero() {
		d.UploadDate = s.Now()
	}
	if _, err := s.store.AddDocument(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// decorate resolves display names and attached documents at read time.
// Names are never persisted on the project row, so they cannot go stale.
func (s *Service) decorate(ctx context.Context, p *models.Project) (*models.Project, error) {
	if student, err := s.store.GetUser(ctx, p.StudentID); err == nil {
		p.StudentName = student.Name
	} else if !errors.Is(err, core.ErrNotFound) {
		return nil, err
	}
	if sup, err := s.store.GetUser(ctx, p.SupervisorID); err == nil {
		p.SupervisorName = sup.Name
	} else if !errors.Is(err, core.ErrNotFound) {
		return nil, err
	}
	docs, err := s.store.ListDocuments(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Documents = docs
	return p, nil
}
