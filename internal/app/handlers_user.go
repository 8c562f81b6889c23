package app

import (
	"fmt"
	"net/http"

	"github.com/fyptrack/fyptrack/internal/ctxutil"
	"github.com/fyptrack/fyptrack/internal/models"
	"github.com/fyptrack/fyptrack/internal/service"
)

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request, actor models.User) {
	var role *models.Role
	if raw := r.URL.Query().Get("role"); raw != "" {
		parsed, ok := models.ParseRole(raw)
		if !ok {
			s.respondError(w, r, fmt.Errorf("unknown role %q: %w", raw, service.ErrInvalidInput))
			return
		}
		role = &parsed
	}
	ctx, cancel := ctxutil.WithDBTimeout(r.Context())
	defer cancel()
	users, err := s.svc.ListUsers(ctx, actor, role)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, users)
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request, actor models.User) {
	var in service.CreateUserInput
	if err := decode(r, &in); err != nil {
		s.respondError(w, r, err)
		return
	}
	ctx, cancel := ctxutil.WithDBTimeout(r.Context())
	defer cancel()
	u, token, err := s.svc.CreateUser(ctx, actor, in)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	// The token is shown once, at creation; it is never listed again.
	respondData(w, http.StatusCreated, map[string]any{"user": u, "token": token})
}

func (s *Server) listSupervisors(w http.ResponseWriter, r *http.Request, actor models.User) {
	ctx, cancel := ctxutil.WithDBTimeout(r.Context())
	defer cancel()
	users, err := s.svc.ListSupervisors(ctx, actor)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, users)
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request, actor models.User) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	ctx, cancel := ctxutil.WithDBTimeout(r.Context())
	defer cancel()
	if err := s.svc.DeleteUser(ctx, actor, id); err != nil {
		s.respondError(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, "user deleted")
}
