package app

import (
	"net/http"

	"github.com/fyptrack/fyptrack/internal/ctxutil"
	"github.com/fyptrack/fyptrack/internal/models"
)

func (s *Server) listNotifications(w http.ResponseWriter, r *http.Request, actor models.User) {
	ctx, cancel := ctxutil.WithDBTimeout(r.Context())
	defer cancel()
	ns, err := s.svc.ListNotifications(ctx, actor)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, ns)
}

func (s *Server) markNotificationRead(w http.ResponseWriter, r *http.Request, actor models.User) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	ctx, cancel := ctxutil.WithDBTimeout(r.Context())
	defer cancel()
	if err := s.svc.MarkNotificationRead(ctx, actor, id); err != nil {
		s.respondError(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, "notification marked as read")
}

func (s *Server) markAllNotificationsRead(w http.ResponseWriter, r *http.Request, actor models.User) {
	ctx, cancel := ctxutil.WithDBTimeout(r.Context())
	defer cancel()
	if err := s.svc.MarkAllNotificationsRead(ctx, actor); err != nil {
		s.respondError(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, "all notifications marked as read")
}

func (s *Server) unreadNotificationCount(w http.ResponseWriter, r *http.Request, actor models.User) {
	ctx, cancel := ctxutil.WithDBTimeout(r.Context())
	defer cancel()
	n, err := s.svc.UnreadNotificationCount(ctx, actor)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, map[string]int{"count": n})
}
