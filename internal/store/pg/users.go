package pg

import (
	"context"

	"github.com/fyptrack/fyptrack/internal/models"
)

const userCols = `id, name, email, role, department, phone, is_active, matric_number, level, title, specialization`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var u models.User
	var role string
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &role, &u.Department, &u.Phone, &u.IsActive,
		&u.MatricNumber, &u.Level, &u.Title, &u.Specialization,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	u.Role = models.Role(role)
	return &u, nil
}

func (s *Store) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	err := s.db.QueryRowContext(ctx, `
INSERT INTO users (name, email, role, department, phone, is_active, matric_number, level, title, specialization)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id`,
		u.Name, u.Email, string(u.Role), u.Department, u.Phone, u.IsActive,
		u.MatricNumber, u.Level, u.Title, u.Specialization,
	).Scan(&u.ID)
	if err != nil {
		return 0, mapErr(err)
	}
	return u.ID, nil
}

func (s *Store) GetUser(ctx context.Context, id int64) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userCols+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (s *Store) ListUsers(ctx context.Context, role *models.Role) ([]models.User, error) {
	query := `SELECT ` + userCols + ` FROM users ORDER BY id`
	args := []any{}
	if role != nil {
		query = `SELECT ` + userCols + ` FROM users WHERE role = $1 ORDER BY id`
		args = append(args, string(*role))
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	return checkAffected(res)
}

func (s *Store) CountUsersByRole(ctx context.Context, role models.Role) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM users WHERE role = $1`, string(role)).Scan(&n)
	return n, mapErr(err)
}
