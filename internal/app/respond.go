package app

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/fyptrack/fyptrack/internal/core"
	"github.com/fyptrack/fyptrack/internal/metrics"
	"github.com/fyptrack/fyptrack/internal/observability"
	"github.com/fyptrack/fyptrack/internal/service"
)

// envelope is the wire shape of every JSON response.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

type pageMeta struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// paged wraps a list plus its pagination block inside the data field.
type paged struct {
	Data       any      `json:"data"`
	Pagination pageMeta `json:"pagination"`
}

func newPageMeta(page, limit, total int) pageMeta {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return pageMeta{Page: page, Limit: limit, Total: total, Pages: pages}
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func respondMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Success: true, Message: msg})
}

// respondError translates domain errors to HTTP statuses. Anything not
// recognized is a server fault: logged, counted and captured.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, core.ErrInvalidTransition),
		errors.Is(err, core.ErrInvalidState),
		errors.Is(err, core.ErrInvalidScore):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, core.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, core.ErrConflict), errors.Is(err, core.ErrImmutable):
		status = http.StatusConflict
	case errors.Is(err, core.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrInvalidInput):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		metrics.HandlerErrors.Inc()
		observability.CaptureErr(err)
		s.log.Error("handler failed", zap.String("path", r.URL.Path), zap.Error(err))
		writeJSON(w, status, envelope{Success: false, Message: "internal error"})
		return
	}
	writeJSON(w, status, envelope{Success: false, Message: err.Error()})
}

// decode reads a JSON request body into dst; failures come back as bad
// input.
func decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return service.ErrInvalidInput
	}
	return nil
}
