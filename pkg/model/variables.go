package model

import (
	"github.com/h2plan/h2plan/pkg/milp"
)

// addVariables declares every decision column. Facts about existing
// infrastructure are encoded as bounds rather than rows: an existing
// producer's existence binary is pinned to 1 and its capacity to the
// recorded value, an existing pipeline arc starts at capacity 1, and the
// retrofit columns of a producer that cannot host a slot are pinned to 0.
func (c *compiler) addVariables() {
	inf := milp.Inf()

	for _, a := range c.sets.Arcs {
		lower := 0.0
		if a.Existing {
			lower = 1
		}
		c.variable(ArcVar(VarDistCapacity, a.Start, a.End), milp.Integer, lower, inf)
	}
	for _, a := range c.sets.Arcs {
		c.variable(ArcVar(VarDistH, a.Start, a.End), milp.Continuous, 0, inf)
	}

	for _, p := range c.sets.Producers {
		lower := 0.0
		if p.Producer.Existing {
			lower = 1
		}
		c.variable(NodeVar(VarProdExists, p.Name), milp.Binary, lower, 1)
	}
	for _, p := range c.sets.Producers {
		lower, upper := 0.0, inf
		if p.Producer.Existing {
			lower, upper = p.Producer.Capacity, p.Producer.Capacity
		}
		c.variable(NodeVar(VarProdCapacity, p.Name), milp.Continuous, lower, upper)
	}
	for _, p := range c.sets.Producers {
		c.variable(NodeVar(VarProdH, p.Name), milp.Continuous, 0, inf)
	}

	for _, cv := range c.sets.Converters {
		c.variable(NodeVar(VarConvCapacity, cv.Name), milp.Continuous, 0, inf)
	}

	for _, n := range c.sets.Consumers {
		c.variable(NodeVar(VarConsH, n.Name), milp.Continuous, 0, n.Consumer.Size)
	}
	for _, n := range c.sets.Consumers {
		c.variable(NodeVar(VarConsCHECs, n.Name), milp.Continuous, 0, inf)
	}

	for slot := 1; slot <= 2; slot++ {
		for _, p := range c.sets.Existing {
			c.variable(NodeVar(ccsBuiltFamily(slot), p.Name), milp.Binary, 0, flag(canRetrofit(p, slot)))
		}
	}
	for slot := 1; slot <= 2; slot++ {
		for _, p := range c.sets.Existing {
			upper := inf
			if !canRetrofit(p, slot) {
				upper = 0
			}
			c.variable(NodeVar(ccsCapturedFamily(slot), p.Name), milp.Continuous, 0, upper)
		}
	}
	for slot := 1; slot <= 2; slot++ {
		for _, p := range c.sets.Existing {
			upper := inf
			if !canRetrofit(p, slot) {
				upper = 0
			}
			c.variable(NodeVar(ccsCapacityFamily(slot), p.Name), milp.Continuous, 0, upper)
		}
	}

	for _, p := range c.sets.New {
		c.variable(NodeVar(VarProdCHECs, p.Name), milp.Continuous, 0, inf)
	}
	for slot := 1; slot <= 2; slot++ {
		for _, p := range c.sets.Existing {
			c.variable(NodeVar(ccsCHECsFamily(slot), p.Name), milp.Continuous, 0, inf)
		}
	}

	for _, cv := range c.sets.FuelStations {
		c.variable(NodeVar(VarSubsidy, cv.Name), milp.Continuous, 0, inf)
	}
}
