package service

import (
	"context"

	"github.com/fyptrack/fyptrack/internal/models"
)

// Notifications are strictly self-scoped: every call operates on the
// actor's own inbox, so there is no policy check beyond authentication.

func (s *Service) ListNotifications(ctx context.Context, actor models.User) ([]models.Notification, error) {
	return s.store.ListNotifications(ctx, actor.ID)
}

func (s *Service) MarkNotificationRead(ctx context.Context, actor models.User, id int64) error {
	return s.store.MarkNotificationRead(ctx, id, actor.ID)
}

func (s *Service) MarkAllNotificationsRead(ctx context.Context, actor models.User) error {
	return s.store.MarkAllNotificationsRead(ctx, actor.ID)
}

func (s *Service) UnreadNotificationCount(ctx context.Context, actor models.User) (int, error) {
	return s.store.CountUnreadNotifications(ctx, actor.ID)
}
