package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "invite"

const (
	CodeKindGuest = "guest"
	CodeKindAdmin = "admin"

	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeInvalid  = "invalid"
	OutcomeStored   = "stored"
	OutcomeFailed   = "failed"
)

// Recorder owns a private registry so tests and multiple servers in one
// process never collide on the global default registry.
type Recorder struct {
	registry       *prometheus.Registry
	codeChecks     *prometheus.CounterVec
	suggestions    *prometheus.CounterVec
	storageErrors  *prometheus.CounterVec
	requests       *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

func New() *Recorder {
	registry := prometheus.NewRegistry()
	r := &Recorder{
		registry: registry,
		codeChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "code_checks_total",
			Help:      "Access code checks by kind and outcome.",
		}, []string{"kind", "outcome"}),
		suggestions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "song_suggestions_total",
			Help:      "Song suggestion submissions by outcome.",
		}, []string{"outcome"}),
		storageErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "storage_errors_total",
			Help:      "Failed persistence operations.",
		}, []string{"operation"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.codeChecks,
		r.suggestions,
		r.storageErrors,
		r.requests,
		r.requestLatency,
	)
	return r
}

func (r *Recorder) CodeCheck(kind, outcome string) {
	r.codeChecks.WithLabelValues(kind, outcome).Inc()
}

func (r *Recorder) Suggestion(outcome string) {
	r.suggestions.WithLabelValues(outcome).Inc()
}

func (r *Recorder) StorageError(operation string) {
	r.storageErrors.WithLabelValues(operation).Inc()
}

func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Middleware records one sample per request, labelled with the chi route
// pattern so path parameters do not explode cardinality.
func (r *Recorder) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		startedAt := time.Now()
		ww := chimw.NewWrapResponseWriter(w, req.ProtoMajor)

		next.ServeHTTP(ww, req)

		route := "unmatched"
		if rctx := chi.RouteContext(req.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		r.requests.WithLabelValues(route, req.Method, strconv.Itoa(status)).Inc()
		r.requestLatency.WithLabelValues(route, req.Method).Observe(time.Since(startedAt).Seconds())
	})
}
