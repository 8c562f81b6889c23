package service

import (
	"context"

	"github.com/fyptrack/fyptrack/internal/core"
	"github.com/fyptrack/fyptrack/internal/models"
	"github.com/fyptrack/fyptrack/internal/store"
)

// Dashboard is the admin-wide snapshot.
func (s *Service) Dashboard(ctx context.Context, actor models.User) (*core.AdminStats, error) {
	if !actor.IsAdmin() {
		return nil, core.ErrForbidden
	}
	projects, err := s.listAllProjects(ctx, store.ProjectFilter{})
	if err != nil {
		return nil, err
	}
	users, err := s.store.ListUsers(ctx, nil)
	if err != nil {
		return nil, err
	}
	stats := core.ComputeAdminStats(projects, users, s.Now())
	return &stats, nil
}

// StudentReport summarizes one student's current project. Students see
// their own report; admins may pull any student's.
func (s *Service) StudentReport(ctx context.Context, actor models.User, studentID int64) (*core.StudentStats, error) {
	if actor.IsStudent() {
		studentID = actor.ID
	} else if !actor.IsAdmin() {
		return nil, core.ErrForbidden
	}

	projects, err := s.listAllProjects(ctx, store.ProjectFilter{StudentID: &studentID})
	if err != nil {
		return nil, err
	}
	var stats core.StudentStats
	if len(projects) == 0 {
		return &stats, nil
	}
	// A student has at most one live project; take the most recent.
	p := projects[len(projects)-1]
	feedback, err := s.store.ListFeedbackByProject(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	stats = core.ComputeStudentStats(&p, feedback, s.Now())
	return &stats, nil
}

// SupervisorReport summarizes a supervisor's workload. Supervisors see
// their own; admins may pull any.
func (s *Service) SupervisorReport(ctx context.Context, actor models.User, supervisorID int64) (*core.SupervisorStats, error) {
	if actor.IsSupervisor() {
		supervisorID = actor.ID
	} else if !actor.IsAdmin() {
		return nil, core.ErrForbidden
	}

	projects, err := s.listAllProjects(ctx, store.ProjectFilter{SupervisorID: &supervisorID})
	if err != nil {
		return nil, err
	}
	evaluations, err := s.store.ListEvaluations(ctx)
	if err != nil {
		return nil, err
	}
	stats := core.ComputeSupervisorStats(supervisorID, projects, evaluations, s.Now())
	return &stats, nil
}

// VisibleProjects resolves the actor's full project view for exports.
func (s *Service) VisibleProjects(ctx context.Context, actor models.User) ([]models.Project, error) {
	f := store.ProjectFilter{}
	switch actor.Role {
	case models.RoleStudent:
		id := actor.ID
		f.StudentID = &id
	case models.RoleSupervisor:
		id := actor.ID
		f.SupervisorID = &id
	case models.RoleAdmin:
	default:
		return nil, core.ErrForbidden
	}
	projects, err := s.listAllProjects(ctx, f)
	if err != nil {
		return nil, err
	}
	for i := range projects {
		if _, err := s.decorate(ctx, &projects[i]); err != nil {
			return nil, err
		}
	}
	return projects, nil
}
