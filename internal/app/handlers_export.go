package app

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/fyptrack/fyptrack/internal/ctxutil"
	"github.com/fyptrack/fyptrack/internal/export"
	"github.com/fyptrack/fyptrack/internal/models"
)

func (s *Server) exportProjectsCSV(w http.ResponseWriter, r *http.Request, actor models.User) {
	ctx, cancel := ctxutil.WithDBTimeout(r.Context())
	defer cancel()
	projects, err := s.svc.VisibleProjects(ctx, actor)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="projects.csv"`)
	if err := export.ProjectsCSV(w, projects); err != nil {
		s.log.Error("csv export write failed", zap.Error(err))
	}
}

func (s *Server) exportProjectsXLSX(w http.ResponseWriter, r *http.Request, actor models.User) {
	ctx, cancel := ctxutil.WithDBTimeout(r.Context())
	defer cancel()
	projects, err := s.svc.VisibleProjects(ctx, actor)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	f, err := export.ProjectsWorkbook(projects)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	defer func() { _ = f.Close() }()
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="projects.xlsx"`)
	if err := f.Write(w); err != nil {
		s.log.Error("xlsx export write failed", zap.Error(err))
	}
}
