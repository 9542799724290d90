// Package metrics defines the Prometheus collectors the API server and CLI
// expose under /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/icecake0141/patchwork-beta/internal/domain"
)

// Metrics groups every collector the server registers. A single instance
// is created per process and passed down to the HTTP handlers and CLI
// commands that need to record against it.
type Metrics struct {
	AllocationsTotal   *prometheus.CounterVec
	SessionsByMedia    *prometheus.CounterVec
	ModulesByType      *prometheus.CounterVec
	AllocationDuration prometheus.Histogram
	HTTPRequestsTotal  *prometheus.CounterVec
	HTTPRequestLatency *prometheus.HistogramVec
}

// New registers every collector against reg and returns the bundle. The
// callers in this repository each pass their own prometheus.NewRegistry().
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		AllocationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "patchwork",
			Name:      "allocations_total",
			Help:      "Total number of allocation runs, by outcome.",
		}, []string{"outcome"}),
		SessionsByMedia: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "patchwork",
			Name:      "sessions_total",
			Help:      "Total number of sessions emitted, by media.",
		}, []string{"media"}),
		ModulesByType: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "patchwork",
			Name:      "modules_total",
			Help:      "Total number of modules emitted, by module_type.",
		}, []string{"module_type"}),
		AllocationDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "patchwork",
			Name:      "allocation_duration_seconds",
			Help:      "Time taken to run one allocation, end to end.",
			Buckets:   prometheus.DefBuckets,
		}),
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "patchwork",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests, by route and status class.",
		}, []string{"route", "status"}),
		HTTPRequestLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "patchwork",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency, by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
}

// ObserveAllocation records one allocation run's outcome, duration, and the
// resulting session/module breakdown.
func (m *Metrics) ObserveAllocation(outcome string, took time.Duration, sessionsByMedia map[string]int, modulesByType map[string]int) {
	m.AllocationsTotal.WithLabelValues(outcome).Inc()
	m.AllocationDuration.Observe(took.Seconds())
	for media, count := range sessionsByMedia {
		m.SessionsByMedia.WithLabelValues(media).Add(float64(count))
	}
	for moduleType, count := range modulesByType {
		m.ModulesByType.WithLabelValues(moduleType).Add(float64(count))
	}
}

// Breakdown tallies a result's sessions by media and modules by module_type,
// the shape ObserveAllocation expects.
func Breakdown(result domain.AllocationResult) (sessionsByMedia, modulesByType map[string]int) {
	sessionsByMedia = make(map[string]int)
	for _, s := range result.Sessions {
		sessionsByMedia[string(s.Media)]++
	}
	modulesByType = make(map[string]int)
	for _, m := range result.Modules {
		modulesByType[string(m.ModuleType)]++
	}
	return sessionsByMedia, modulesByType
}

// ObserveHTTPRequest records one completed HTTP request.
func (m *Metrics) ObserveHTTPRequest(route, statusClass string, took time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(route, statusClass).Inc()
	m.HTTPRequestLatency.WithLabelValues(route).Observe(took.Seconds())
}
