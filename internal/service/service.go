package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/fyptrack/fyptrack/internal/core"
	"github.com/fyptrack/fyptrack/internal/models"
	"github.com/fyptrack/fyptrack/internal/observability"
	"github.com/fyptrack/fyptrack/internal/store"
)

// ErrInvalidInput marks caller mistakes that are neither a domain rule
// violation nor a transport failure (bad enum string, progress out of
// range, missing field). The HTTP layer maps it to 400.
var ErrInvalidInput = errors.New("invalid input")

// Service is the calling layer around the domain core: it fetches the
// current snapshot, consults the access policy, applies the pure rules and
// persists the result. A failed persist discards the mutated snapshot —
// nothing is merged back.
type Service struct {
	store  store.Store
	log    *zap.Logger
	engine *core.EvaluationEngine

	// Now is the clock; tests pin it.
	Now func() time.Time
}

func New(st store.Store, log *zap.Logger, bands []core.GradeBand) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store:  st,
		log:    log,
		engine: core.NewEvaluationEngine(bands),
		Now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) Store() store.Store { return s.store }

// notify records a notification for later listing. Delivery failures are
// logged, not propagated: the primary mutation already committed.
func (s *Service) notify(ctx context.Context, userID int64, ntype models.NotificationType, title, message, actionURL string) {
	n := &models.Notification{
		UserID:    userID,
		Type:      ntype,
		Title:     title,
		Message:   message,
		ActionURL: actionURL,
		CreatedAt: s.Now(),
	}
	if _, err := s.store.AddNotification(ctx, n); err != nil {
		s.log.Warn("notification write failed", zap.Int64("user_id", userID), zap.Error(err))
		observability.CaptureErr(err)
	}
}

// listAllProjects drains every page of a filter. Aggregations need the full
// visible set, not one page.
func (s *Service) listAllProjects(ctx context.Context, f store.ProjectFilter) ([]models.Project, error) {
	f.Limit = 500
	f.Page = 1
	var all []models.Project
	for {
		page, total, err := s.store.ListProjects(ctx, f)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(all) >= total || len(page) == 0 {
			return all, nil
		}
		f.Page++
	}
}
