package app

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/fyptrack/fyptrack/internal/ctxutil"
	"github.com/fyptrack/fyptrack/internal/models"
	"github.com/fyptrack/fyptrack/internal/service"
	"github.com/fyptrack/fyptrack/internal/store"
)

// pathID parses the {id} path segment.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("bad id %q: %w", r.PathValue("id"), service.ErrInvalidInput)
	}
	return id, nil
}

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request, actor models.User) {
	q := r.URL.Query()
	var f store.ProjectFilter
	if raw := q.Get("status"); raw != "" {
		st, ok := models.ParseStatus(raw)
		if !ok {
			s.respondError(w, r, fmt.Errorf("unknown status %q: %w", raw, service.ErrInvalidInput))
			return
		}
		f.Status = &st
	}
	f.Department = q.Get("department")
	if raw := q.Get("supervisorId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			s.respondError(w, r, service.ErrInvalidInput)
			return
		}
		f.SupervisorID = &id
	}
	if raw := q.Get("studentId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			s.respondError(w, r, service.ErrInvalidInput)
			return
		}
		f.StudentID = &id
	}
	f.Page, _ = strconv.Atoi(q.Get("page"))
	f.Limit, _ = strconv.Atoi(q.Get("limit"))
	f = f.Normalize()

	ctx, cancel := ctxutil.WithDBTimeout(r.Context())
	defer cancel()
	items, total, err := s.svc.ListProjects(ctx, actor, f)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, paged{Data: items, Pagination: newPageMeta(f.Page, f.Limit, total)})
}

func (s *Server) createProject(w http.ResponseWriter, r *http.Request, actor models.User) {
	var in service.CreateProjectInput
	if err := decode(r, &in); err != nil {
		s.respondError(w, r, err)
		return
	}
	ctx, cancel := ctxutil.WithDBTimeout(r.Context())
	defer cancel()
	p, err := s.svc.CreateProject(ctx, actor, in)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, p)
}

func (s *Server) getProject(w http.ResponseWriter, r *http.Request, actor models.User) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	ctx, cancel := ctxutil.WithDBTimeout(r.Context())
	defer cancel()
	p, err := s.svc.GetProject(ctx, actor, id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, p)
}

func (s *Server) updateProject(w http.ResponseWriter, r *http.Request, actor models.User) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	var in service.UpdateProjectInput
	if err := decode(r, &in); err != nil {
		s.respondError(w, r, err)
		return
	}
	ctx, cancel := ctxutil.WithDBTimeout(r.Context())
	defer cancel()
	p, err := s.svc.UpdateProject(ctx, actor, id, in)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, p)
}

func (s *Server) deleteProject(w http.ResponseWriter, r *http.Request, actor models.User) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	ctx, cancel := ctxutil.WithDBTimeout(r.Context())
	defer cancel()
	if err := s.svc.DeleteProject(ctx, actor, id); err != nil {
		s.respondError(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, "project deleted")
}

// submitProject is sugar for the in_progress -> submitted edge.
func (s *Server) submitProject(w http.ResponseWriter, r *http.Request, actor models.User) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	ctx, cancel := ctxutil.WithDBTimeout(r.Context())
	defer cancel()
	p, err := s.svc.TransitionProject(ctx, actor, id, models.StatusSubmitted)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, p)
}

func (s *Server) transitionProject(w http.ResponseWriter, r *http.Request, actor models.User) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	var in struct {
		Status string `json:"status"`
	}
	if err := decode(r, &in); err != nil {
		s.respondError(w, r, err)
		return
	}
	target, ok := models.ParseStatus(in.Status)
	if !ok {
		s.respondError(w, r, fmt.Errorf("unknown status %q: %w", in.Status, service.ErrInvalidInput))
		return
	}
	ctx, cancel := ctxutil.WithDBTimeout(r.Context())
	defer cancel()
	p, err := s.svc.TransitionProject(ctx, actor, id, target)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, p)
}

func (s *Server) addDocument(w http.ResponseWriter, r *http.Request, actor models.User) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	var d models.Document
	if err := decode(r, &d); err != nil {
		s.respondError(w, r, err)
		return
	}
	d.ProjectID = id
	ctx, cancel := ctxutil.WithDBTimeout(r.Context())
	defer cancel()
	doc, err := s.svc.AddDocument(ctx, actor, &d)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, doc)
}
