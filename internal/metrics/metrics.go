// Package metrics exposes Prometheus instrumentation for the plan compiler
// and a runtime snapshot used by the service status endpoint.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/agbru/convplan/internal/plan"
)

// CompileMetrics tracks plan compilations and the arithmetic footprint of
// the generated procedures.
type CompileMetrics struct {
	compiles prometheus.Counter
	failures prometheus.Counter
	ops      *prometheus.CounterVec
	duration prometheus.Histogram
	outputs  prometheus.Histogram
}

// NewCompileMetrics creates and registers the compile metrics with the
// given registerer.
func NewCompileMetrics(reg prometheus.Registerer) *CompileMetrics {
	factory := promauto.With(reg)
	return &CompileMetrics{
		compiles: factory.NewCounter(prometheus.CounterOpts{
			Name: "convplan_compiles_total",
			Help: "Number of successful plan compilations.",
		}),
		failures: factory.NewCounter(prometheus.CounterOpts{
			Name: "convplan_compile_errors_total",
			Help: "Number of rejected compile requests.",
		}),
		ops: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "convplan_ops_emitted_total",
			Help: "Arithmetic operations emitted into compiled plans, by operation.",
		}, []string{"op"}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "convplan_compile_duration_seconds",
			Help:    "Wall time of plan compilation.",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 12),
		}),
		outputs: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "convplan_plan_outputs",
			Help:    "Selected output count per compiled plan.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}),
	}
}

// ObserveCompile records one successful compilation.
func (m *CompileMetrics) ObserveCompile(stats plan.Stats, outputs int, d time.Duration) {
	m.compiles.Inc()
	m.ops.WithLabelValues("mul").Add(float64(stats.Mul))
	m.ops.WithLabelValues("add").Add(float64(stats.Add))
	m.ops.WithLabelValues("sub").Add(float64(stats.Sub))
	m.ops.WithLabelValues("neg").Add(float64(stats.Neg))
	m.duration.Observe(d.Seconds())
	m.outputs.Observe(float64(outputs))
}

// ObserveFailure records one rejected compile request.
func (m *CompileMetrics) ObserveFailure() {
	m.failures.Inc()
}
