// Package metrics holds the prometheus collectors of the dispatch service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is registered once per process and shared by handlers, jobs and the HTTP server.
type Metrics struct {
	gatherer prometheus.Gatherer

	assignmentOutcomes *prometheus.CounterVec
	sweepProcessed     prometheus.Counter
	sweepRuns          prometheus.Counter
	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
}

// New registers all collectors on reg and serves them from the same registry.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		gatherer: reg,
		assignmentOutcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dispatch_assignment_outcomes_total",
				Help: "Total number of assignment attempts by outcome status",
			},
			[]string{"status"},
		),
		sweepProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dispatch_sweep_processed_total",
			Help: "Total number of orders attempted by pending-order sweeps",
		}),
		sweepRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dispatch_sweep_runs_total",
			Help: "Total number of pending-order sweeps that found work",
		}),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
	}

	reg.MustRegister(m.assignmentOutcomes, m.sweepProcessed, m.sweepRuns, m.httpRequests, m.httpDuration)
	return m
}

// ObserveAssignment counts one assignment outcome.
func (m *Metrics) ObserveAssignment(status string) {
	m.assignmentOutcomes.WithLabelValues(status).Inc()
}

// ObserveSweep counts one sweep and the orders it attempted.
func (m *Metrics) ObserveSweep(processed int) {
	m.sweepRuns.Inc()
	m.sweepProcessed.Add(float64(processed))
}

// ObserveHTTPRequest records a served request. path must be the route pattern, not the raw URL.
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, elapsed time.Duration) {
	code := strconv.Itoa(status)
	m.httpRequests.WithLabelValues(method, path, code).Inc()
	m.httpDuration.WithLabelValues(method, path, code).Observe(elapsed.Seconds())
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
