package pg

import (
	"context"

	"github.com/fyptrack/fyptrack/internal/models"
)

func (s *Store) AddNotification(ctx context.Context, n *models.Notification) (int64, error) {
	err := s.db.QueryRowContext(ctx, `
INSERT INTO notifications (user_id, type, title, message, read, action_url, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`,
		n.UserID, string(n.Type), n.Title, n.Message, n.Read, n.ActionURL, n.CreatedAt,
	).Scan(&n.ID)
	if err != nil {
		return 0, mapErr(err)
	}
	return n.ID, nil
}

func (s *Store) ListNotifications(ctx context.Context, userID int64) ([]models.Notification, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, user_id, type, title, message, read, action_url, created_at
FROM notifications WHERE user_id = $1 ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []models.Notification
	for rows.Next() {
		var n models.Notification
		var ntype string
		if err := rows.Scan(&n.ID, &n.UserID, &ntype, &n.Title, &n.Message, &n.Read, &n.ActionURL, &n.CreatedAt); err != nil {
			return nil, err
		}
		n.Type = models.NotificationType(ntype)
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *Store) MarkNotificationRead(ctx context.Context, id, userID int64) error {
	res, err := s.db.ExecContext(ctx, `
UPDATE notifications SET read = TRUE WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return mapErr(err)
	}
	return checkAffected(res)
}

func (s *Store) MarkAllNotificationsRead(ctx context.Context, userID int64) error {
	_, err := s.db.ExecContext(ctx, `
UPDATE notifications SET read = TRUE WHERE user_id = $1 AND NOT read`, userID)
	return mapErr(err)
}

func (s *Store) CountUnreadNotifications(ctx context.Context, userID int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
SELECT count(*) FROM notifications WHERE user_id = $1 AND NOT read`, userID).Scan(&n)
	return n, mapErr(err)
}
