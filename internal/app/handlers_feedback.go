package app

import (
	"net/http"

	"github.com/fyptrack/fyptrack/internal/ctxutil"
	"github.com/fyptrack/fyptrack/internal/models"
	"github.com/fyptrack/fyptrack/internal/service"
)

func (s *Server) listFeedback(w http.ResponseWriter, r *http.Request, actor models.User) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	ctx, cancel := ctxutil.WithDBTimeout(r.Context())
	defer cancel()
	entries, err := s.svc.ListFeedback(ctx, actor, id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, entries)
}

func (s *Server) addFeedback(w http.ResponseWriter, r *http.Request, actor models.User) {
	var in struct {
		ProjectID int64 `json:"projectId"`
		service.AddFeedbackInput
	}
	if err := decode(r, &in); err != nil {
		s.respondError(w, r, err)
		return
	}
	ctx, cancel := ctxutil.WithDBTimeout(r.Context())
	defer cancel()
	entry, err := s.svc.AddFeedback(ctx, actor, in.ProjectID, in.AddFeedbackInput)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, entry)
}

func (s *Server) markFeedbackRead(w http.ResponseWriter, r *http.Request, actor models.User) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	ctx, cancel := ctxutil.WithDBTimeout(r.Context())
	defer cancel()
	if err := s.svc.MarkFeedbackRead(ctx, actor, id); err != nil {
		s.respondError(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, "feedback marked as read")
}

func (s *Server) unreadFeedbackCount(w http.ResponseWriter, r *http.Request, actor models.User) {
	ctx, cancel := ctxutil.WithDBTimeout(r.Context())
	defer cancel()
	n, err := s.svc.UnreadFeedbackCount(ctx, actor)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, map[string]int{"count": n})
}
