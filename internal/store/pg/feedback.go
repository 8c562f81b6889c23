package pg

import (
	"context"

	"github.com/fyptrack/fyptrack/internal/models"
)

const feedbackCols = `id, project_id, supervisor_id, type, subject, message, rating, read, created_at`

func scanFeedback(row interface{ Scan(...any) error }) (*models.FeedbackEntry, error) {
	var e models.FeedbackEntry
	var ftype string
	err := row.Scan(
		&e.ID, &e.ProjectID, &e.SupervisorID, &ftype,
		&e.Subject, &e.Message, &e.Rating, &e.Read, &e.CreatedAt,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	e.Type = models.FeedbackType(ftype)
	return &e, nil
}

func (s *Store) AddFeedback(ctx context.Context, e *models.FeedbackEntry) (int64, error) {
	err := s.db.QueryRowContext(ctx, `
INSERT INTO feedback (project_id, supervisor_id, type, subject, message, rating, read, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id`,
		e.ProjectID, e.SupervisorID, string(e.Type), e.Subject, e.Message, e.Rating, e.Read, e.CreatedAt,
	).Scan(&e.ID)
	if err != nil {
		return 0, mapErr(err)
	}
	return e.ID, nil
}

func (s *Store) GetFeedback(ctx context.Context, id int64) (*models.FeedbackEntry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+feedbackCols+` FROM feedback WHERE id = $1`, id)
	return scanFeedback(row)
}

// ListFeedbackByProject returns entries most recent first; the ordering is
// part of the listing contract.
func (s *Store) ListFeedbackByProject(ctx context.Context, projectID int64) ([]models.FeedbackEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT `+feedbackCols+` FROM feedback WHERE project_id = $1 ORDER BY created_at DESC, id DESC`, projectID)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []models.FeedbackEntry
	for rows.Next() {
		e, err := scanFeedback(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

// MarkFeedbackRead is idempotent at the SQL level; re-marking an already
// read entry still matches the row.
func (s *Store) MarkFeedbackRead(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `UPDATE feedback SET read = TRUE WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	return checkAffected(res)
}

func (s *Store) CountUnreadFeedback(ctx context.Context, studentID int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
SELECT count(*)
FROM feedback f
JOIN projects p ON p.id = f.project_id
WHERE p.student_id = $1 AND NOT f.read`, studentID).Scan(&n)
	return n, mapErr(err)
}

func (s *Store) ListFeedback(ctx context.Context) ([]models.FeedbackEntry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+feedbackCols+` FROM feedback ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []models.FeedbackEntry
	for rows.Next() {
		e, err := scanFeedback(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}
