package pg

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fyptrack/fyptrack/internal/models"
)

const evaluationCols = `id, project_id, evaluator_id, evaluator_role, total_score, max_total_score,
grade, general_comment, status, evaluated_at`

func scanEvaluation(row interface{ Scan(...any) error }) (*models.Evaluation, error) {
	var ev models.Evaluation
	var role, status string
	err := row.Scan(
		&ev.ID, &ev.ProjectID, &ev.EvaluatorID, &role, &ev.TotalScore, &ev.MaxTotalScore,
		&ev.Grade, &ev.GeneralComment, &status, &ev.EvaluatedAt,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	ev.EvaluatorRole = models.Role(role)
	ev.Status = models.EvaluationStatus(status)
	return &ev, nil
}

// CreateEvaluation writes the evaluation and its criteria in one
// transaction. The unique index on project_id makes a concurrent second
// insert fail with a 23505, surfaced as core.ErrConflict.
func (s *Store) CreateEvaluation(ctx context.Context, ev *models.Evaluation) (int64, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	err = tx.QueryRowContext(ctx, `
INSERT INTO evaluations (project_id, evaluator_id, evaluator_role, total_score, max_total_score,
                         grade, general_comment, status, evaluated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id`,
		ev.ProjectID, ev.EvaluatorID, string(ev.EvaluatorRole), ev.TotalScore, ev.MaxTotalScore,
		ev.Grade, ev.GeneralComment, string(ev.Status), ev.EvaluatedAt,
	).Scan(&ev.ID)
	if err != nil {
		return 0, mapErr(err)
	}

	for i, c := range ev.Criteria {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO evaluation_criteria (evaluation_id, position, name, max_score, score, comment)
VALUES ($1, $2, $3, $4, $5, $6)`,
			ev.ID, i, c.Name, c.MaxScore, c.Score, c.Comment,
		); err != nil {
			return 0, mapErr(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, mapErr(err)
	}
	return ev.ID, nil
}

func (s *Store) loadCriteria(ctx context.Context, ev *models.Evaluation) error {
	rows, err := s.db.QueryContext(ctx, `
SELECT name, max_score, score, comment
FROM evaluation_criteria WHERE evaluation_id = $1 ORDER BY position`, ev.ID)
	if err != nil {
		return mapErr(err)
	}
	defer rows.Close()
	for rows.Next() {
		var c models.Criterion
		if err := rows.Scan(&c.Name, &c.MaxScore, &c.Score, &c.Comment); err != nil {
			return err
		}
		ev.Criteria = append(ev.Criteria, c)
	}
	return rows.Err()
}

func (s *Store) GetEvaluation(ctx context.Context, id int64) (*models.Evaluation, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+evaluationCols+` FROM evaluations WHERE id = $1`, id)
	ev, err := scanEvaluation(row)
	if err != nil {
		return nil, err
	}
	if err := s.loadCriteria(ctx, ev); err != nil {
		return nil, err
	}
	return ev, nil
}

func (s *Store) GetEvaluationByProject(ctx context.Context, projectID int64) (*models.Evaluation, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+evaluationCols+` FROM evaluations WHERE project_id = $1`, projectID)
	ev, err := scanEvaluation(row)
	if err != nil {
		return nil, err
	}
	if err := s.loadCriteria(ctx, ev); err != nil {
		return nil, err
	}
	return ev, nil
}

func (s *Store) DeleteEvaluation(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM evaluations WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	return checkAffected(res)
}

func (s *Store) ListEvaluations(ctx context.Context) ([]models.Evaluation, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+evaluationCols+` FROM evaluations ORDER BY id`)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []models.Evaluation
	for rows.Next() {
		ev, err := scanEvaluation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if err := s.loadCriteria(ctx, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}
