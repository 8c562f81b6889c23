package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/fyptrack/fyptrack/internal/core"
	"github.com/fyptrack/fyptrack/internal/metrics"
	"github.com/fyptrack/fyptrack/internal/models"
)

type CreateEvaluationInput struct {
	Criteria       []models.Criterion `json:"criteria"`
	GeneralComment string             `json:"generalComment"`
}

// CreateEvaluation scores a submitted project. The store's uniqueness
// constraint is the authority on "at most one per project"; the snapshot
// read here only gives a friendlier error on the common path.
func (s *Service) CreateEvaluation(ctx context.Context, actor models.User, projectID int64, in CreateEvaluationInput) (*models.Evaluation, error) {
	p, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.GetEvaluationByProject(ctx, projectID)
	if err != nil && !errors.Is(err, core.ErrNotFound) {
		return nil, err
	}

	ev, err := s.engine.Evaluate(p, existing, actor, in.Criteria, in.GeneralComment, s.Now())
	if err != nil {
		return nil, err
	}
	if _, err := s.store.CreateEvaluation(ctx, ev); err != nil {
		return nil, err
	}
	metrics.EvaluationsCompleted.Inc()

	s.log.Info("evaluation completed",
		zap.Int64("project_id", projectID), zap.Int64("evaluation_id", ev.ID),
		zap.Int("total", ev.TotalScore), zap.Int("max", ev.MaxTotalScore), zap.String("grade", ev.Grade))

	s.notify(ctx, p.StudentID, models.NotifyEvaluation,
		"Project Evaluated",
		fmt.Sprintf("%s was graded %s (%d/%d)", p.Title, ev.Grade, ev.TotalScore, ev.MaxTotalScore),
		fmt.Sprintf("/student/projects/%d", p.ID))

	ev.EvaluatorName = actor.Name
	return ev, nil
}

func (s *Service) GetEvaluationByProject(ctx context.Context, actor models.User, projectID int64) (*models.Evaluation, error) {
	p, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := core.Authorize(actor, core.OpViewProject, p); err != nil {
		return nil, err
	}
	ev, err := s.store.GetEvaluationByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if u, err := s.store.GetUser(ctx, ev.EvaluatorID); err == nil {
		ev.EvaluatorName = u.Name
	}
	return ev, nil
}

// DeleteEvaluation is an admin correction path and reopens the project for
// review.
func (s *Service) DeleteEvaluation(ctx context.Context, actor models.User, id int64) error {
	ev, err := s.store.GetEvaluation(ctx, id)
	if err != nil {
		return err
	}
	if err := core.Authorize(actor, core.OpDeleteEvaluation, nil); err != nil {
		return err
	}
	if err := s.store.DeleteEvaluation(ctx, id); err != nil {
		return err
	}
	s.log.Info("evaluation deleted",
		zap.Int64("evaluation_id", id), zap.Int64("project_id", ev.ProjectID), zap.Int64("admin_id", actor.ID))
	return nil
}
