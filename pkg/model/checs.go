package model

import (
	"github.com/h2plan/h2plan/pkg/milp"
)

// addCHECs books clean-hydrogen credits. New producers earn their
// displacement yield per tonne, carbon-sensitive consumers redeem one
// credit per tonne taken, and a single global row keeps redemptions within
// what production and retrofits generate. Retrofit credit caps live with
// the other retrofit rows.
func (c *compiler) addCHECs() {
	for _, p := range c.sets.New {
		c.eq("productionChecs["+p.Name+"]", []milp.Term{
			{Var: NodeVar(VarProdCHECs, p.Name), Coeff: 1},
			{Var: NodeVar(VarProdH, p.Name), Coeff: -p.Producer.CHECPerTon},
		}, 0)
	}

	for _, n := range c.sets.Consumers {
		c.eq("consumerChecs["+n.Name+"]", []milp.Term{
			{Var: NodeVar(VarConsCHECs, n.Name), Coeff: 1},
			{Var: NodeVar(VarConsH, n.Name), Coeff: -flag(n.Consumer.CarbonSensitive)},
		}, 0)
	}

	var terms []milp.Term
	for _, n := range c.sets.Consumers {
		terms = append(terms, milp.Term{Var: NodeVar(VarConsCHECs, n.Name), Coeff: 1})
	}
	for _, p := range c.sets.New {
		terms = append(terms, milp.Term{Var: NodeVar(VarProdCHECs, p.Name), Coeff: -1})
	}
	for _, p := range c.sets.Existing {
		terms = append(terms,
			milp.Term{Var: NodeVar(VarCCS1CHECs, p.Name), Coeff: -1},
			milp.Term{Var: NodeVar(VarCCS2CHECs, p.Name), Coeff: -1},
		)
	}
	if len(terms) > 0 {
		c.le("checsBalance", terms, 0)
	}
}

// addSubsidy sizes the public capital contribution of each fuel-dispensing
// converter: the subsidy covers whatever share of the build cost industry
// does not.
func (c *compiler) addSubsidy() {
	share := c.st.Subsidy.CostShareFraction
	for _, cv := range c.sets.FuelStations {
		c.eq("subsidyConverter["+cv.Name+"]", []milp.Term{
			{Var: NodeVar(VarSubsidy, cv.Name), Coeff: 1},
			{Var: NodeVar(VarConvCapacity, cv.Name), Coeff: -(1 - share) * cv.Converter.CapitalPerTonPerDay},
		}, 0)
	}
}
