package app

import (
	"net/http"

	"github.com/fyptrack/fyptrack/internal/ctxutil"
	"github.com/fyptrack/fyptrack/internal/models"
)

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request, actor models.User) {
	ctx, cancel := ctxutil.WithDBTimeout(r.Context())
	defer cancel()
	stats, err := s.svc.Dashboard(ctx, actor)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, stats)
}

func (s *Server) studentReport(w http.ResponseWriter, r *http.Request, actor models.User) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	ctx, cancel := ctxutil.WithDBTimeout(r.Context())
	defer cancel()
	stats, err := s.svc.StudentReport(ctx, actor, id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, stats)
}

func (s *Server) supervisorReport(w http.ResponseWriter, r *http.Request, actor models.User) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	ctx, cancel := ctxutil.WithDBTimeout(r.Context())
	defer cancel()
	stats, err := s.svc.SupervisorReport(ctx, actor, id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, stats)
}
