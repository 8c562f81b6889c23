package store

import (
	"context"

	"github.com/fyptrack/fyptrack/internal/models"
)

// ProjectFilter narrows and pages project listings. Zero fields mean "any".
type ProjectFilter struct {
	Status       *models.Status
	Department   string
	SupervisorID *int64
	StudentID    *int64
	Page         int
	Limit        int
}

const DefaultPageLimit = 20

// Normalize fills pagination defaults in place and returns the filter.
func (f ProjectFilter) Normalize() ProjectFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = DefaultPageLimit
	}
	return f
}

type ProjectStore interface {
	CreateProject(ctx context.Context, p *models.Project) (int64, error)
	GetProject(ctx context.Context, id int64) (*models.Project, error)
	UpdateProject(ctx context.Context, p *models.Project) error
	DeleteProject(ctx context.Context, id int64) error
	// ListProjects returns one page plus the unpaged total for the filter.
	ListProjects(ctx context.Context, f ProjectFilter) ([]models.Project, int, error)
	AddDocument(ctx context.Context, d *models.Document) (int64, error)
	ListDocuments(ctx context.Context, projectID int64) ([]models.Document, error)
}

type FeedbackStore interface {
	AddFeedback(ctx context.Context, e *models.FeedbackEntry) (int64, error)
	GetFeedback(ctx context.Context, id int64) (*models.FeedbackEntry, error)
	// ListFeedbackByProject returns entries most recent first.
	ListFeedbackByProject(ctx context.Context, projectID int64) ([]models.FeedbackEntry, error)
	MarkFeedbackRead(ctx context.Context, id int64) error
	CountUnreadFeedback(ctx context.Context, studentID int64) (int, error)
	ListFeedback(ctx context.Context) ([]models.FeedbackEntry, error)
}

type EvaluationStore interface {
	// CreateEvaluation fails with core.ErrConflict when the project already
	// has an evaluation; this is the authoritative uniqueness check.
	CreateEvaluation(ctx context.Context, ev *models.Evaluation) (int64, error)
	GetEvaluation(ctx context.Context, id int64) (*models.Evaluation, error)
	GetEvaluationByProject(ctx context.Context, projectID int64) (*models.Evaluation, error)
	DeleteEvaluation(ctx context.Context, id int64) error
	ListEvaluations(ctx context.Context) ([]models.Evaluation, error)
}

type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) (int64, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	ListUsers(ctx context.Context, role *models.Role) ([]models.User, error)
	DeleteUser(ctx context.Context, id int64) error
	CountUsersByRole(ctx context.Context, role models.Role) (int, error)
}

type NotificationStore interface {
	AddNotification(ctx context.Context, n *models.Notification) (int64, error)
	ListNotifications(ctx context.Context, userID int64) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, id, userID int64) error
	MarkAllNotificationsRead(ctx context.Context, userID int64) error
	CountUnreadNotifications(ctx context.Context, userID int64) (int, error)
}

type TokenStore interface {
	IssueToken(ctx context.Context, userID int64, token string) error
	// ResolveToken maps a bearer token to its user, core.ErrNotFound when
	// the token is unknown or revoked.
	ResolveToken(ctx context.Context, token string) (*models.User, error)
}

// Store is the full persistence surface the service layer runs against.
// Production uses the postgres implementation; tests use the in-memory one.
type Store interface {
	ProjectStore
	FeedbackStore
	EvaluationStore
	UserStore
	NotificationStore
	TokenStore
}
