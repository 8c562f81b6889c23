package app

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fyptrack/fyptrack/internal/ctxutil"
	"github.com/fyptrack/fyptrack/internal/metrics"
	"github.com/fyptrack/fyptrack/internal/models"
)

// authedHandler runs with the resolved bearer identity.
type authedHandler func(w http.ResponseWriter, r *http.Request, actor models.User)

// auth resolves the Authorization header against the token store. A
// missing or unknown token terminates the request with 401; handlers
// behind it always see a real user.
func (s *Server) auth(h authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(raw, "Bearer ")
		if !ok || token == "" {
			writeJSON(w, http.StatusUnauthorized, envelope{Success: false, Message: "missing bearer token"})
			return
		}
		ctx, cancel := ctxutil.WithDBTimeout(r.Context())
		u, err := s.svc.Store().ResolveToken(ctx, token)
		cancel()
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, envelope{Success: false, Message: "invalid token"})
			return
		}
		r = r.WithContext(ctxutil.WithActorID(r.Context(), u.ID))
		h(w, r, *u)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// instrument tags every request with an id, logs it and feeds the request
// counter. The route label uses the matched pattern, not the raw path, to
// keep metric cardinality bounded.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", reqID)
		r = r.WithContext(ctxutil.WithRequestID(r.Context(), reqID))

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		s.log.Info("http request",
			zap.String("request_id", reqID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("took", time.Since(start)))
	})
}
