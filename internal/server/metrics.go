package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agbru/convplan/internal/metrics"
)

// Metrics bundles the Prometheus instrumentation of the compile service:
// request tracking plus the shared compile counters.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	activeRequests prometheus.Gauge
	requestsTotal  *prometheus.CounterVec

	// Compile holds the compiler-level counters, shared with the handlers.
	Compile *metrics.CompileMetrics
}

// NewMetrics creates a Metrics instance backed by its own registry, so
// multiple servers (and tests) never collide on metric registration. Go
// runtime and process metrics are included.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	factory := promauto.With(registry)
	m := &Metrics{
		registry: registry,
		activeRequests: factory.NewGauge(prometheus.GaugeOpts{
			Name: "convplan_active_requests",
			Help: "Number of HTTP requests currently being served.",
		}),
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "convplan_requests_total",
			Help: "Total HTTP requests served, by path and status class.",
		}, []string{"path", "status"}),
		Compile: metrics.NewCompileMetrics(registry),
	}
	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return m
}

// IncrementActiveRequests marks one request in flight.
func (m *Metrics) IncrementActiveRequests() { m.activeRequests.Inc() }

// DecrementActiveRequests marks one request finished.
func (m *Metrics) DecrementActiveRequests() { m.activeRequests.Dec() }

// CountRequest records a completed request for the given path and HTTP
// status.
func (m *Metrics) CountRequest(path string, status int) {
	m.requestsTotal.WithLabelValues(path, statusClass(status)).Inc()
}

// WritePrometheus serves the metrics endpoint in Prometheus exposition
// format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

// statusClass folds an HTTP status code into its class label ("2xx"...).
func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
