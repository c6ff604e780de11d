package results

import (
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/h2plan/h2plan/pkg/model"
	"github.com/h2plan/h2plan/pkg/network"
	"github.com/h2plan/h2plan/pkg/scenario"
)

// discoverPrices inspects the probe consumers: a probe whose consumption
// matches its demand was fully satisfied, meaning hydrogen can be
// delivered at that hub and category for the probe's price. Per hub and
// category the tie-break setting picks among satisfied probes; the
// winner is reported as a Price and re-appended to the consumption table
// so the probe shows up as a consumer at the discovered price.
func (d *decomposer) discoverPrices() ([]Price, []ConsumptionRow) {
	if !d.st.Prices.Enabled {
		return nil, nil
	}
	probes := d.plan.Network().NodesByClass(network.ClassPriceProbe)

	var prices []Price
	var rows []ConsumptionRow
	for _, hub := range d.plan.Network().Hubs() {
		for _, category := range scenario.DemandCategories() {
			best := d.pickProbe(probes, hub, category)
			if best == nil {
				continue
			}
			prices = append(prices, Price{
				Hub:       hub,
				Category:  category.String(),
				Node:      best.Name,
				USDPerTon: best.Consumer.BreakevenPrice,
				USDPerKg:  best.Consumer.BreakevenPrice / 1000,
			})
			rows = append(rows, ConsumptionRow{
				Node:     best.Name,
				Hub:      hub,
				Consumed: d.value(model.NodeVar(model.VarConsH, best.Name)),
				CHECs:    d.value(model.NodeVar(model.VarConsCHECs, best.Name)),
				Price:    best.Consumer.BreakevenPrice,
				Size:     best.Consumer.Size,
			})
		}
	}
	return prices, rows
}

// pickProbe returns the winning satisfied probe for one hub and category,
// or nil when none was satisfied. Probes arrive in ladder order, so the
// "first" tie-break keeps the initial find and "lowest" trades up to any
// strictly cheaper one.
func (d *decomposer) pickProbe(probes []*network.Node, hub string, category scenario.DemandCategory) *network.Node {
	var best *network.Node
	for _, p := range probes {
		if p.Hub != hub || p.Category != category {
			continue
		}
		consumed := d.value(model.NodeVar(model.VarConsH, p.Name))
		if !scalar.EqualWithinAbs(consumed, p.Consumer.Size, d.tol) {
			continue
		}
		if best == nil {
			best = p
			continue
		}
		if d.st.Prices.TieBreak != scenario.TieBreakFirst && p.Consumer.BreakevenPrice < best.Consumer.BreakevenPrice {
			best = p
		}
	}
	return best
}
