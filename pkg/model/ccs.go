package model

import (
	"fmt"

	"github.com/h2plan/h2plan/pkg/milp"
	"github.com/h2plan/h2plan/pkg/network"
)

// addCCS constrains the retrofit slots of every existing producer.
//
// Per producer: at most one slot is built. Per eligible slot: captured CO2
// follows retrofitted throughput (captured = retrofitH2 * emissionRate *
// captureFraction), and the retrofit is all-or-nothing (retrofitH2 =
// built * prod_h, linearized with the recorded plant capacity as big-M;
// the capacity is an upper bound on prod_h, so the M is tight). Slots the
// producer cannot host have their columns pinned to zero by bounds, so no
// rows are needed there.
//
// The CHEC cap applies to every slot, eligible or not: a retrofit earns
// credits up to its throughput, scaled by the capture fraction when
// fractional accounting is on. For an ineligible slot the pinned
// throughput caps the credits at zero.
func (c *compiler) addCCS() {
	for _, p := range c.sets.Existing {
		c.le("onlyOneCCS["+p.Name+"]", []milp.Term{
			{Var: NodeVar(VarCCS1Built, p.Name), Coeff: 1},
			{Var: NodeVar(VarCCS2Built, p.Name), Coeff: 1},
		}, 1)

		for slot := 1; slot <= 2; slot++ {
			opt := c.ccsOption(slot)
			built := NodeVar(ccsBuiltFamily(slot), p.Name)
			captured := NodeVar(ccsCapturedFamily(slot), p.Name)
			capacity := NodeVar(ccsCapacityFamily(slot), p.Name)
			checs := NodeVar(ccsCHECsFamily(slot), p.Name)
			prod := NodeVar(VarProdH, p.Name)

			if canRetrofit(p, slot) {
				c.eq(ccsRow(slot, "Capacity", p), []milp.Term{
					{Var: captured, Coeff: 1},
					{Var: capacity, Coeff: -p.Producer.EmissionRate * opt.CaptureFraction},
				}, 0)

				bigM := p.Producer.Capacity
				c.le(ccsRow(slot, "MaxBuilt", p), []milp.Term{
					{Var: capacity, Coeff: 1},
					{Var: built, Coeff: -bigM},
				}, 0)
				c.le(ccsRow(slot, "MaxProd", p), []milp.Term{
					{Var: capacity, Coeff: 1},
					{Var: prod, Coeff: -1},
				}, 0)
				c.ge(ccsRow(slot, "MinProd", p), []milp.Term{
					{Var: capacity, Coeff: 1},
					{Var: prod, Coeff: -1},
					{Var: built, Coeff: -bigM},
				}, -bigM)
			}

			checsPerTon := 1.0
			if c.st.FractionalCHECs {
				checsPerTon = opt.CaptureFraction
			}
			c.le(ccsRow(slot, "Checs", p), []milp.Term{
				{Var: checs, Coeff: 1},
				{Var: capacity, Coeff: -checsPerTon},
			}, 0)
		}
	}
}

func ccsRow(slot int, rule string, p *network.Node) string {
	return fmt.Sprintf("ccs%d%s[%s]", slot, rule, p.Name)
}
