// Package metrics exposes Prometheus collectors for the API and the matching flow.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "unimatch"

// Metrics owns a private registry so tests and multiple servers don't collide.
// A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	matchRequests   *prometheus.CounterVec
	matchesReturned prometheus.Histogram
	swipes          *prometheus.CounterVec
	profileWrites   *prometheus.CounterVec
}

// New creates and registers all collectors
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		matchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "match_requests_total",
			Help:      "Match computations by outcome",
		}, []string{"outcome"}),
		matchesReturned: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "matches_returned",
			Help:      "Number of institutions returned per match computation",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50},
		}),
		swipes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "swipes_total",
			Help:      "Swipes by direction",
		}, []string{"direction"}),
		profileWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "profile_writes_total",
			Help:      "Profile mutations by operation",
		}, []string{"operation"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.matchRequests,
		m.matchesReturned,
		m.swipes,
		m.profileWrites,
	)
	return m
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveHTTP records one served request. An empty route is reported as "unmatched".
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveMatches records a successful match computation
func (m *Metrics) ObserveMatches(returned int) {
	if m == nil {
		return
	}
	m.matchRequests.WithLabelValues("ok").Inc()
	m.matchesReturned.Observe(float64(returned))
}

// IncMatchRejected records a match request refused for the given reason
func (m *Metrics) IncMatchRejected(reason string) {
	if m == nil {
		return
	}
	m.matchRequests.WithLabelValues(reason).Inc()
}

// IncSwipe counts a swipe by direction
func (m *Metrics) IncSwipe(direction string) {
	if m == nil {
		return
	}
	m.swipes.WithLabelValues(direction).Inc()
}

// IncProfileWrite counts a profile mutation (replace, patch, reset)
func (m *Metrics) IncProfileWrite(operation string) {
	if m == nil {
		return
	}
	m.profileWrites.WithLabelValues(operation).Inc()
}
