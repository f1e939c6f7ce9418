package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so tests can build independent instances.
type Metrics struct {
	Registry *prometheus.Registry

	MemberMutations  *prometheus.CounterVec
	ActiveWorkspaces prometheus.GaugeFunc
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
	Exports          *prometheus.CounterVec
	CSRFRejections   prometheus.Counter
}

// New registers the dashboard collectors. activeWorkspaces is sampled on scrape.
func New(activeWorkspaces func() int) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		MemberMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "teamdash",
			Name:      "member_mutations_total",
			Help:      "Team member store mutations by action.",
		}, []string{"action"}),
		ActiveWorkspaces: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "teamdash",
			Name:      "active_workspaces",
			Help:      "Dashboard workspaces currently held in memory.",
		}, func() float64 {
			if activeWorkspaces == nil {
				return 0
			}
			return float64(activeWorkspaces())
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "teamdash",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern, method and status code.",
		}, []string{"route", "method", "code"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "teamdash",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		Exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "teamdash",
			Name:      "exports_total",
			Help:      "Roster exports by type.",
		}, []string{"type"}),
		CSRFRejections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "teamdash",
			Name:      "csrf_rejections_total",
			Help:      "Unsafe requests refused for a missing or foreign CSRF token.",
		}),
	}
	reg.MustRegister(
		m.MemberMutations,
		m.ActiveWorkspaces,
		m.HTTPRequests,
		m.HTTPDuration,
		m.Exports,
		m.CSRFRejections,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// ObserveMutation counts one store mutation. Empty actions are no-ops and not counted.
func (m *Metrics) ObserveMutation(action string) {
	if m == nil || action == "" {
		return
	}
	m.MemberMutations.WithLabelValues(action).Inc()
}

func (m *Metrics) ObserveExport(kind string) {
	if m == nil {
		return
	}
	m.Exports.WithLabelValues(kind).Inc()
}

func (m *Metrics) ObserveCSRFRejection() {
	if m == nil {
		return
	}
	m.CSRFRejections.Inc()
}

// Middleware records request counts and latency keyed by the chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.HTTPRequests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		m.HTTPDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}
