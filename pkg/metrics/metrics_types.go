package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the planner
type Registry struct {
	// Pipeline Metrics
	RunsTotal     *prometheus.CounterVec
	RunDuration   prometheus.Histogram
	StageDuration *prometheus.HistogramVec

	// Network and Model Size Metrics
	NetworkNodesTotal   prometheus.Gauge
	NetworkArcsTotal    prometheus.Gauge
	ModelVariablesTotal prometheus.Gauge
	ModelRowsTotal      prometheus.Gauge

	// Solver Metrics
	SolvesTotal   *prometheus.CounterVec
	SolveDuration prometheus.Histogram
	SolveSurplus  prometheus.Gauge

	// Decomposition Metrics
	PricesDiscovered prometheus.Gauge

	registry *prometheus.Registry
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	// Initialize all metrics
	r.initRunMetrics()
	r.initModelMetrics()
	r.initSolveMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
