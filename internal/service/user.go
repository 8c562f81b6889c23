package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fyptrack/fyptrack/internal/core"
	"github.com/fyptrack/fyptrack/internal/models"
)

type CreateUserInput struct {
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	Role       models.Role `json:"role"`
	Department string      `json:"department"`
	Phone      string      `json:"phone"`

	MatricNumber   *string `json:"matricNumber"`
	Level          *string `json:"level"`
	Title          *string `json:"title"`
	Specialization *string `json:"specialization"`
}

// CreateUser registers an account and issues its API token. Admin only;
// account provisioning is not self-service.
func (s *Service) CreateUser(ctx context.Context, actor models.User, in CreateUserInput) (*models.User, string, error) {
	if !actor.IsAdmin() {
		return nil, "", core.ErrForbidden
	}
	if _, ok := models.ParseRole(string(in.Role)); !ok {
		return nil, "", fmt.Errorf("unknown role %q: %w", in.Role, ErrInvalidInput)
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" {
		return nil, "", fmt.Errorf("name and email are required: %w", ErrInvalidInput)
	}

	u := &models.User{
		Name:           in.Name,
		Email:          in.Email,
		Role:           in.Role,
		Department:     in.Department,
		Phone:          in.Phone,
		IsActive:       true,
		MatricNumber:   in.MatricNumber,
		Level:          in.Level,
		Title:          in.Title,
		Specialization: in.Specialization,
	}
	if _, err := s.store.CreateUser(ctx, u); err != nil {
		return nil, "", err
	}

	token := uuid.NewString()
	if err := s.store.IssueToken(ctx, u.ID, token); err != nil {
		return nil, "", err
	}
	s.log.Info("user created",
		zap.Int64("user_id", u.ID), zap.String("role", string(u.Role)), zap.Int64("admin_id", actor.ID))
	return u, token, nil
}

func (s *Service) GetUser(ctx context.Context, actor models.User, id int64) (*models.User, error) {
	if !actor.IsAdmin() && actor.ID != id {
		return nil, core.ErrForbidden
	}
	return s.store.GetUser(ctx, id)
}

// ListUsers is admin-only, optionally filtered by role.
func (s *Service) ListUsers(ctx context.Context, actor models.User, role *models.Role) ([]models.User, error) {
	if !actor.IsAdmin() {
		return nil, core.ErrForbidden
	}
	return s.store.ListUsers(ctx, role)
}

// ListSupervisors is open to any authenticated user: students need the
// list to pick a supervisor at project creation.
func (s *Service) ListSupervisors(ctx context.Context, actor models.User) ([]models.User, error) {
	role := models.RoleSupervisor
	return s.store.ListUsers(ctx, &role)
}

func (s *Service) DeleteUser(ctx context.Context, actor models.User, id int64) error {
	if err := core.Authorize(actor, core.OpDeleteUser, nil); err != nil {
		return err
	}
	if actor.ID == id {
		return fmt.Errorf("cannot delete own account: %w", ErrInvalidInput)
	}
	if err := s.store.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.log.Info("user deleted", zap.Int64("user_id", id), zap.Int64("admin_id", actor.ID))
	return nil
}
