package metrics

import (
	"time"
)

// RecordRun records a completed planning run with its outcome
func (r *Registry) RecordRun(status string, duration time.Duration) {
	r.RunsTotal.WithLabelValues(status).Inc()
	r.RunDuration.Observe(duration.Seconds())
}

// RecordStage records one pipeline stage with its duration
func (r *Registry) RecordStage(stage string, duration time.Duration) {
	r.StageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordSolve records a solver invocation
func (r *Registry) RecordSolve(status string, duration time.Duration) {
	r.SolvesTotal.WithLabelValues(status).Inc()
	r.SolveDuration.Observe(duration.Seconds())
}

// SetNetworkSize records the synthesized network's dimensions
func (r *Registry) SetNetworkSize(nodes, arcs int) {
	r.NetworkNodesTotal.Set(float64(nodes))
	r.NetworkArcsTotal.Set(float64(arcs))
}

// SetModelSize records the compiled program's dimensions
func (r *Registry) SetModelSize(variables, rows int) {
	r.ModelVariablesTotal.Set(float64(variables))
	r.ModelRowsTotal.Set(float64(rows))
}

// SetSurplus records the last solve's objective value
func (r *Registry) SetSurplus(surplus float64) {
	r.SolveSurplus.Set(surplus)
}

// SetPricesDiscovered records how many breakeven prices the last run found
func (r *Registry) SetPricesDiscovered(count int) {
	r.PricesDiscovered.Set(float64(count))
}
