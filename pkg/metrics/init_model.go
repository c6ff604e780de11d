package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initModelMetrics() {
	r.NetworkNodesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "h2plan_network_nodes_total",
			Help: "Number of nodes in the last synthesized network",
		},
	)

	r.NetworkArcsTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "h2plan_network_arcs_total",
			Help: "Number of arcs in the last synthesized network",
		},
	)

	r.ModelVariablesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "h2plan_model_variables_total",
			Help: "Number of decision variables in the last compiled program",
		},
	)

	r.ModelRowsTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "h2plan_model_rows_total",
			Help: "Number of constraint rows in the last compiled program",
		},
	)
}
