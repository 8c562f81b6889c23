package app

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/fyptrack/fyptrack/internal/metrics"
	"github.com/fyptrack/fyptrack/internal/service"
)

// Pinger is the liveness probe surface. Nil means no database backs the
// store (in-memory runs) and /healthz reports ok unconditionally.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	svc *service.Service
	log *zap.Logger
	db  Pinger
}

func NewServer(svc *service.Service, log *zap.Logger, db Pinger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{svc: svc, log: log, db: db}
}

// Handler wires every route. Method+path patterns keep dispatch in the
// stdlib mux; auth wraps everything under /api.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.Handle("/metrics", metrics.Handler())

	mux.HandleFunc("GET /api/projects", s.auth(s.listProjects))
	mux.HandleFunc("POST /api/projects", s.auth(s.createProject))
	mux.HandleFunc("GET /api/projects/{id}", s.auth(s.getProject))
	mux.HandleFunc("PUT /api/projects/{id}", s.auth(s.updateProject))
	mux.HandleFunc("DELETE /api/projects/{id}", s.auth(s.deleteProject))
	mux.HandleFunc("POST /api/projects/{id}/submit", s.auth(s.submitProject))
	mux.HandleFunc("POST /api/projects/{id}/transition", s.auth(s.transitionProject))
	mux.HandleFunc("POST /api/projects/{id}/documents", s.auth(s.addDocument))

	mux.HandleFunc("GET /api/feedback/project/{id}", s.auth(s.listFeedback))
	mux.HandleFunc("POST /api/feedback", s.auth(s.addFeedback))
	mux.HandleFunc("PUT /api/feedback/{id}/read", s.auth(s.markFeedbackRead))
	mux.HandleFunc("GET /api/feedback/unread/count", s.auth(s.unreadFeedbackCount))

	mux.HandleFunc("POST /api/evaluations", s.auth(s.createEvaluation))
	mux.HandleFunc("GET /api/evaluations/project/{id}", s.auth(s.getEvaluation))
	mux.HandleFunc("DELETE /api/evaluations/{id}", s.auth(s.deleteEvaluation))

	mux.HandleFunc("GET /api/reports/dashboard", s.auth(s.dashboard))
	mux.HandleFunc("GET /api/reports/student/{id}", s.auth(s.studentReport))
	mux.HandleFunc("GET /api/reports/supervisor/{id}", s.auth(s.supervisorReport))

	mux.HandleFunc("GET /api/users", s.auth(s.listUsers))
	mux.HandleFunc("POST /api/users", s.auth(s.createUser))
	mux.HandleFunc("GET /api/users/supervisors/list", s.auth(s.listSupervisors))
	mux.HandleFunc("DELETE /api/users/{id}", s.auth(s.deleteUser))

	mux.HandleFunc("GET /api/notifications", s.auth(s.listNotifications))
	mux.HandleFunc("PUT /api/notifications/{id}/read", s.auth(s.markNotificationRead))
	mux.HandleFunc("PUT /api/notifications/read-all", s.auth(s.markAllNotificationsRead))
	mux.HandleFunc("GET /api/notifications/unread/count", s.auth(s.unreadNotificationCount))

	mux.HandleFunc("GET /api/export/projects.csv", s.auth(s.exportProjectsCSV))
	mux.HandleFunc("GET /api/export/projects.xlsx", s.auth(s.exportProjectsXLSX))

	return s.instrument(mux)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 800*time.Millisecond)
		defer cancel()
		t0 := time.Now()
		if err := s.db.PingContext(ctx); err != nil {
			http.Error(w, "db not ok: "+err.Error(), http.StatusServiceUnavailable)
			return
		}
		metrics.ObserveDBPing(time.Since(t0))
	}
	_, _ = w.Write([]byte("ok"))
}

type HTTPServer struct {
	srv *http.Server
}

// StartHTTP serves handler on addr until ctx is cancelled, then shuts
// down with a short grace period.
func StartHTTP(ctx context.Context, addr string, handler http.Handler) *HTTPServer {
	srv := &http.Server{Addr: addr, Handler: handler}

	go func() {
		_ = srv.ListenAndServe()
	}()

	go func() {
		<-ctx.Done()
		shCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shCtx)
	}()

	return &HTTPServer{srv: srv}
}
