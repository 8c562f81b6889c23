package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fyptrack", Name: "http_requests_total", Help: "Handled HTTP requests",
	}, []string{"method", "route", "status"})
	HandlerErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fyptrack", Name: "handler_errors_total", Help: "Handler errors",
	})
	DBPing = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "fyptrack", Name: "db_ping_seconds", Help: "DB ping latency",
		Buckets: prometheus.DefBuckets,
	})
	Transitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fyptrack", Name: "status_transitions_total", Help: "Applied project status transitions",
	}, []string{"from", "to"})
	EvaluationsCompleted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fyptrack", Name: "evaluations_completed_total", Help: "Completed project evaluations",
	})
	FeedbackCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fyptrack", Name: "feedback_created_total", Help: "Feedback entries appended",
	})
	ProjectsByStatus = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "fyptrack", Name: "projects_by_status", Help: "Current project count per lifecycle status",
	}, []string{"status"})
)

func init() {
	prometheus.MustRegister(
		HTTPRequests, HandlerErrors, DBPing,
		Transitions, EvaluationsCompleted, FeedbackCreated, ProjectsByStatus,
	)
}

func Handler() http.Handler { return promhttp.Handler() }

func ObserveDBPing(d time.Duration) { DBPing.Observe(d.Seconds()) }
