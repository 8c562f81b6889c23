package app

import (
	"net/http"

	"github.com/fyptrack/fyptrack/internal/ctxutil"
	"github.com/fyptrack/fyptrack/internal/models"
	"github.com/fyptrack/fyptrack/internal/service"
)

func (s *Server) createEvaluation(w http.ResponseWriter, r *http.Request, actor models.User) {
	var in struct {
		ProjectID int64 `json:"projectId"`
		service.CreateEvaluationInput
	}
	if err := decode(r, &in); err != nil {
		s.respondError(w, r, err)
		return
	}
	ctx, cancel := ctxutil.WithDBTimeout(r.Context())
	defer cancel()
	ev, err := s.svc.CreateEvaluation(ctx, actor, in.ProjectID, in.CreateEvaluationInput)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, ev)
}

func (s *Server) getEvaluation(w http.ResponseWriter, r *http.Request, actor models.User) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	ctx, cancel := ctxutil.WithDBTimeout(r.Context())
	defer cancel()
	ev, err := s.svc.GetEvaluationByProject(ctx, actor, id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, ev)
}

func (s *Server) deleteEvaluation(w http.ResponseWriter, r *http.Request, actor models.User) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	ctx, cancel := ctxutil.WithDBTimeout(r.Context())
	defer cancel()
	if err := s.svc.DeleteEvaluation(ctx, actor, id); err != nil {
		s.respondError(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, "evaluation deleted")
}
