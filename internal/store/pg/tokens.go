package pg

import (
	"context"
	"time"

	"github.com/fyptrack/fyptrack/internal/models"
)

func (s *Store) IssueToken(ctx context.Context, userID int64, token string) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO api_tokens (token, user_id, created_at) VALUES ($1, $2, $3)`,
		token, userID, time.Now().UTC())
	return mapErr(err)
}

func (s *Store) ResolveToken(ctx context.Context, token string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT `+userCols+`
FROM users u
JOIN api_tokens t ON t.user_id = u.id
WHERE t.token = $1 AND u.is_active`, token)
	return scanUser(row)
}
