// Package api implements the patchwork HTTP interface: planning and
// rendering operations over REST, plus a Prometheus /metrics endpoint.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/icecake0141/patchwork-beta/internal/app"
	"github.com/icecake0141/patchwork-beta/internal/infra/metrics"
)

// Server wires the planner to a chi router.
type Server struct {
	planner  *app.Planner
	metrics  *metrics.Metrics
	registry *prometheus.Registry
}

func NewServer(planner *app.Planner, m *metrics.Metrics, registry *prometheus.Registry) *Server {
	return &Server{planner: planner, metrics: m, registry: registry}
}

// Handler builds the full route tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observeRequests)

	r.Route("/v1", func(r chi.Router) {
		r.Route("/projects", func(r chi.Router) {
			r.Post("/plan", s.handlePlanDryRun)
		})
		r.Route("/revisions", func(r chi.Router) {
			r.Post("/", s.handleCreateRevision)
			r.Get("/{id}", s.handleGetRevisionJSON)
			r.Get("/{id}/csv", s.handleGetRevisionCSV)
			r.Get("/{id}/svg/*", s.handleGetRevisionSVG)
		})
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return r
}

// observeRequests records request counts and latency per route template.
func (s *Server) observeRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = r.URL.Path
		}
		statusClass := statusClassOf(rec.status)
		if s.metrics != nil {
			s.metrics.ObserveHTTPRequest(route, statusClass, time.Since(started))
		}
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func statusClassOf(status int) string {
	switch {
	case status < 300:
		return "2xx"
	case status < 400:
		return "3xx"
	case status < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
