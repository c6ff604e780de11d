package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initSolveMetrics() {
	r.SolvesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "h2plan_solves_total",
			Help: "Total number of solver invocations by final status",
		},
		[]string{"status"},
	)

	r.SolveDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "h2plan_solve_duration_seconds",
			Help:    "Solver wall-clock time in seconds",
			Buckets: []float64{0.01, 0.1, 0.5, 1.0, 5.0, 30.0, 120.0, 600.0},
		},
	)

	r.SolveSurplus = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "h2plan_solve_surplus_usd",
			Help: "Objective value of the last successful solve in USD per day",
		},
	)

	r.PricesDiscovered = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "h2plan_prices_discovered",
			Help: "Number of breakeven prices the last run discovered",
		},
	)
}
