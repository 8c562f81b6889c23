package pg

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/fyptrack/fyptrack/internal/models"
	"github.com/fyptrack/fyptrack/internal/store"
	"github.com/lib/pq"
)

const projectCols = `id, title, description, student_id, supervisor_id, department, status, progress,
start_date, submission_date, expected_completion_date, objectives, technologies, created_at, updated_at`

func scanProject(row interface{ Scan(...any) error }) (*models.Project, error) {
	var p models.Project
	var status string
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.StudentID, &p.SupervisorID, &p.Department,
		&status, &p.Progress, &p.StartDate, &p.SubmissionDate, &p.ExpectedCompletionDate,
		pq.Array(&p.Objectives), pq.Array(&p.Technologies), &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	p.Status = models.Status(status)
	return &p, nil
}

func (s *Store) CreateProject(ctx context.Context, p *models.Project) (int64, error) {
	err := s.db.QueryRowContext(ctx, `
INSERT INTO projects (title, description, student_id, supervisor_id, department, status, progress,
                      start_date, submission_date, expected_completion_date, objectives, technologies,
                      created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
RETURNING id`,
		p.Title, p.Description, p.StudentID, p.SupervisorID, p.Department, string(p.Status), p.Progress,
		p.StartDate, p.SubmissionDate, p.ExpectedCompletionDate,
		pq.Array(p.Objectives), pq.Array(p.Technologies), p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		return 0, mapErr(err)
	}
	return p.ID, nil
}

func (s *Store) GetProject(ctx context.Context, id int64) (*models.Project, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+projectCols+` FROM projects WHERE id = $1`, id)
	return scanProject(row)
}

func (s *Store) UpdateProject(ctx context.Context, p *models.Project) error {
	res, err := s.db.ExecContext(ctx, `
UPDATE projects SET
    title = $2, description = $3, supervisor_id = $4, department = $5, status = $6, progress = $7,
    submission_date = $8, expected_completion_date = $9, objectives = $10, technologies = $11,
    updated_at = $12
WHERE id = $1`,
		p.ID, p.Title, p.Description, p.SupervisorID, p.Department, string(p.Status), p.Progress,
		p.SubmissionDate, p.ExpectedCompletionDate,
		pq.Array(p.Objectives), pq.Array(p.Technologies), p.UpdatedAt,
	)
	if err != nil {
		return mapErr(err)
	}
	return checkAffected(res)
}

func (s *Store) DeleteProject(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	return checkAffected(res)
}

func (s *Store) ListProjects(ctx context.Context, f store.ProjectFilter) ([]models.Project, int, error) {
	f = f.Normalize()

	where := []string{"TRUE"}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	if f.Status != nil {
		where = append(where, "status = "+arg(string(*f.Status)))
	}
	if f.Department != "" {
		where = append(where, "department = "+arg(f.Department))
	}
	if f.SupervisorID != nil {
		where = append(where, "supervisor_id = "+arg(*f.SupervisorID))
	}
	if f.StudentID != nil {
		where = append(where, "student_id = "+arg(*f.StudentID))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM projects WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, mapErr(err)
	}

	offset := (f.Page - 1) * f.Limit
	query := fmt.Sprintf(`SELECT %s FROM projects WHERE %s ORDER BY id LIMIT %s OFFSET %s`,
		projectCols, cond, arg(f.Limit), arg(offset))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, mapErr(err)
	}
	defer rows.Close()

	var out []models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *p)
	}
	return out, total, rows.Err()
}

func (s *Store) AddDocument(ctx context.Context, d *models.Document) (int64, error) {
	err := s.db.QueryRowContext(ctx, `
INSERT INTO documents (project_id, name, type, size, url, upload_date)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`,
		d.ProjectID, d.Name, d.Type, d.Size, d.URL, d.UploadDate,
	).Scan(&d.ID)
	if err != nil {
		return 0, mapErr(err)
	}
	return d.ID, nil
}

func (s *Store) ListDocuments(ctx context.Context, projectID int64) ([]models.Document, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, project_id, name, type, size, url, upload_date
FROM documents WHERE project_id = $1 ORDER BY id`, projectID)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []models.Document
	for rows.Next() {
		var d models.Document
		if err := rows.Scan(&d.ID, &d.ProjectID, &d.Name, &d.Type, &d.Size, &d.URL, &d.UploadDate); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
