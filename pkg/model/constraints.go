package model

import (
	"github.com/h2plan/h2plan/pkg/milp"
	"github.com/h2plan/h2plan/pkg/network"
)

// addFlowBalance conserves mass at every node: inflow minus outflow, plus
// production or minus consumption where the node has one, equals zero.
func (c *compiler) addFlowBalance() {
	for _, n := range c.net.Nodes() {
		var terms []milp.Term
		for _, a := range c.net.InArcs(n.Name) {
			terms = append(terms, milp.Term{Var: ArcVar(VarDistH, a.Start, a.End), Coeff: 1})
		}
		for _, a := range c.net.OutArcs(n.Name) {
			terms = append(terms, milp.Term{Var: ArcVar(VarDistH, a.Start, a.End), Coeff: -1})
		}
		switch n.Class {
		case network.ClassProducer:
			terms = append(terms, milp.Term{Var: NodeVar(VarProdH, n.Name), Coeff: 1})
		case network.ClassDemandSector, network.ClassPriceProbe:
			terms = append(terms, milp.Term{Var: NodeVar(VarConsH, n.Name), Coeff: -1})
		}
		if len(terms) == 0 {
			continue
		}
		c.eq("flowBalance["+n.Name+"]", terms, 0)
	}
}

// addTruckConsistency ties each hub's fleet size to its use: the trucks
// loaded at a hub (inbound capacity from converters) equal the trucks sent
// out (outbound capacity toward converter, distribution, or demand nodes).
// The fleet is a depot-level asset, so capacity is counted at the depot
// rather than per route.
func (c *compiler) addTruckConsistency() {
	for _, n := range c.sets.Trucks {
		var terms []milp.Term
		for _, a := range c.net.InArcs(n.Name) {
			start, ok := c.net.Node(a.Start)
			if ok && start.Class == network.ClassConverter {
				terms = append(terms, milp.Term{Var: ArcVar(VarDistCapacity, a.Start, a.End), Coeff: 1})
			}
		}
		for _, a := range c.net.OutArcs(n.Name) {
			end, ok := c.net.Node(a.End)
			if !ok {
				continue
			}
			switch end.Class {
			case network.ClassConverter, network.ClassDistribution, network.ClassDemand:
				terms = append(terms, milp.Term{Var: ArcVar(VarDistCapacity, a.Start, a.End), Coeff: -1})
			}
		}
		if len(terms) == 0 {
			continue
		}
		c.eq("truckConsistency["+n.Name+"]", terms, 0)
	}
}

// addFlowCapacity couples flow to built capacity on every costed
// distribution arc, and caps each converter's outbound flow by its
// capacity and utilization.
func (c *compiler) addFlowCapacity() {
	for _, a := range c.sets.Distribution {
		c.le("flowCapacity["+a.Start+"->"+a.End+"]", []milp.Term{
			{Var: ArcVar(VarDistH, a.Start, a.End), Coeff: 1},
			{Var: ArcVar(VarDistCapacity, a.Start, a.End), Coeff: -a.FlowLimit},
		}, 0)
	}

	for _, cv := range c.sets.Converters {
		var terms []milp.Term
		for _, a := range c.net.OutArcs(cv.Name) {
			terms = append(terms, milp.Term{Var: ArcVar(VarDistH, a.Start, a.End), Coeff: 1})
		}
		terms = append(terms, milp.Term{Var: NodeVar(VarConvCapacity, cv.Name), Coeff: -cv.Converter.Utilization})
		c.le("converterCapacity["+cv.Name+"]", terms, 0)
	}
}

// addProductionCapacity caps output by capacity and utilization for every
// producer, and brackets new builds between their technology's minimum and
// maximum size, both gated by the existence binary so an unbuilt plant
// collapses to zero. A technology that declares no maximum is capped by
// the free-flow bound so the gate still holds.
func (c *compiler) addProductionCapacity() {
	for _, p := range c.sets.Producers {
		c.le("productionCapacity["+p.Name+"]", []milp.Term{
			{Var: NodeVar(VarProdH, p.Name), Coeff: 1},
			{Var: NodeVar(VarProdCapacity, p.Name), Coeff: -p.Producer.Utilization},
		}, 0)
	}

	for _, p := range c.sets.New {
		c.ge("minCapacity["+p.Name+"]", []milp.Term{
			{Var: NodeVar(VarProdCapacity, p.Name), Coeff: 1},
			{Var: NodeVar(VarProdExists, p.Name), Coeff: -p.Producer.MinCapacity},
		}, 0)

		maxCap := p.Producer.MaxCapacity
		if maxCap <= 0 {
			maxCap = network.FreeFlowLimit
		}
		c.le("maxCapacity["+p.Name+"]", []milp.Term{
			{Var: NodeVar(VarProdCapacity, p.Name), Coeff: 1},
			{Var: NodeVar(VarProdExists, p.Name), Coeff: -maxCap},
		}, 0)
	}
}
