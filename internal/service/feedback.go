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

type AddFeedbackInput struct {
	Type    models.FeedbackType `json:"type"`
	Subject string              `json:"subject"`
	Message string              `json:"message"`
	Rating  *int                `json:"rating"`
}

// AddFeedback appends an entry to a project's feedback ledger and notifies
// the student.
func (s *Service) AddFeedback(ctx context.Context, actor models.User, projectID int64, in AddFeedbackInput) (*models.FeedbackEntry, error) {
	p, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	entry, err := core.NewFeedbackEntry(p, actor, in.Type, in.Subject, in.Message, in.Rating, s.Now())
	if err != nil {
		if errors.Is(err, core.ErrForbidden) || errors.Is(err, core.ErrNotFound) {
			return nil, err
		}
		// Remaining failures are malformed input (bad type, blank subject,
		// rating out of range).
		return nil, fmt.Errorf("%s: %w", err, ErrInvalidInput)
	}
	if _, err := s.store.AddFeedback(ctx, entry); err != nil {
		return nil, err
	}
	metrics.FeedbackCreated.Inc()
	s.log.Info("feedback added",
		zap.Int64("project_id", projectID), zap.Int64("feedback_id", entry.ID), zap.String("type", string(entry.Type)))

	s.notify(ctx, p.StudentID, models.NotifyFeedback,
		"New Feedback Received",
		fmt.Sprintf("New %s feedback on %s: %s", entry.Type, p.Title, entry.Subject),
		fmt.Sprintf("/student/feedback/%d", entry.ID))

	entry.SupervisorName = actor.Name
	return entry, nil
}

// ListFeedback returns a project's ledger most recent first.
func (s *Service) ListFeedback(ctx context.Context, actor models.User, projectID int64) ([]models.FeedbackEntry, error) {
	p, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := core.Authorize(actor, core.OpViewProject, p); err != nil {
		return nil, err
	}
	entries, err := s.store.ListFeedbackByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	core.SortFeedback(entries)
	names := map[int64]string{}
	for i := range entries {
		id := entries[i].SupervisorID
		if _, ok := names[id]; !ok {
			if u, err := s.store.GetUser(ctx, id); err == nil {
				names[id] = u.Name
			} else {
				names[id] = ""
			}
		}
		entries[i].SupervisorName = names[id]
	}
	return entries, nil
}

// MarkFeedbackRead flips the read flag for the owning student. Safe to
// repeat.
func (s *Service) MarkFeedbackRead(ctx context.Context, actor models.User, id int64) error {
	entry, err := s.store.GetFeedback(ctx, id)
	if err != nil {
		return err
	}
	p, err := s.store.GetProject(ctx, entry.ProjectID)
	if err != nil {
		return err
	}
	if err := core.MarkFeedbackRead(entry, p, actor); err != nil {
		return err
	}
	return s.store.MarkFeedbackRead(ctx, id)
}

// UnreadFeedbackCount is the student's own badge counter.
func (s *Service) UnreadFeedbackCount(ctx context.Context, actor models.User) (int, error) {
	if !actor.IsStudent() {
		return 0, core.ErrForbidden
	}
	return s.store.CountUnreadFeedback(ctx, actor.ID)
}
