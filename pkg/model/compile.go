// Package model compiles a synthesized flow network and economic settings
// into a mixed-integer linear program.
//
// The compiler is deterministic: variables and rows are appended in network
// insertion order, so the same network and settings always produce an
// identical column and row layout. Column names encode the variable family
// and the node or arc they belong to; the decomposer reads solutions back
// through those names.
package model

import (
	"fmt"

	"github.com/h2plan/h2plan/pkg/milp"
	"github.com/h2plan/h2plan/pkg/network"
	"github.com/h2plan/h2plan/pkg/scenario"
)

// Plan is a compiled program together with the network context needed to
// interpret its solution.
type Plan struct {
	Model *milp.Model
	Sets  Sets

	net      *network.Network
	settings scenario.Settings

	amortization float64
	capitalScale float64
}

// Network returns the network the plan was compiled from.
func (p *Plan) Network() *network.Network { return p.net }

// Settings returns a copy of the settings the plan was compiled with.
func (p *Plan) Settings() scenario.Settings { return p.settings }

// Amortization returns the annuity factor A used on capital costs.
func (p *Plan) Amortization() float64 { return p.amortization }

// CapitalScale returns the factor applied to every capital coefficient to
// convert an upfront cost into a daily-equivalent one:
// (1 + fixedCostShare) / (A * timeSlices).
func (p *Plan) CapitalScale() float64 { return p.capitalScale }

// Value reads one named column out of a solution.
func (p *Plan) Value(sol *milp.Solution, name string) float64 {
	return sol.ValueOf(p.Model, name)
}

// Compile translates the network into a solver-ready program: decision
// variables per node and arc, the physical and financial constraint rows,
// and a surplus-maximizing objective.
func Compile(net *network.Network, settings scenario.Settings) (*Plan, error) {
	if net == nil {
		return nil, fmt.Errorf("model: network is nil")
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}

	a := settings.Finance.AmortizationFactor()
	c := &compiler{
		net:   net,
		st:    settings,
		m:     milp.NewModel(true),
		sets:  BuildSets(net),
		scale: (1 + settings.Finance.FixedCostShare) / (a * float64(settings.Finance.TimeSlices)),
	}

	c.addVariables()
	c.addFlowBalance()
	c.addTruckConsistency()
	c.addFlowCapacity()
	c.addProductionCapacity()
	c.addCCS()
	c.addCHECs()
	c.addSubsidy()
	c.addObjective()
	if c.err != nil {
		return nil, fmt.Errorf("model: %w", c.err)
	}

	return &Plan{
		Model:        c.m,
		Sets:         c.sets,
		net:          net,
		settings:     settings,
		amortization: a,
		capitalScale: c.scale,
	}, nil
}

// compiler threads the model, the sets, and the first error through the
// build stages. Once err is set every later call is a no-op, so stage
// methods read as straight-line math.
type compiler struct {
	net   *network.Network
	st    scenario.Settings
	m     *milp.Model
	sets  Sets
	scale float64
	err   error
}

func (c *compiler) variable(name string, kind milp.VarKind, lower, upper float64) {
	if c.err != nil {
		return
	}
	c.err = c.m.AddVariable(name, kind, lower, upper)
}

func (c *compiler) cost(name string, delta float64) {
	if c.err != nil {
		return
	}
	c.err = c.m.AddCost(name, delta)
}

func (c *compiler) eq(name string, terms []milp.Term, rhs float64) {
	if c.err != nil {
		return
	}
	c.err = c.m.AddEqRow(name, terms, rhs)
}

func (c *compiler) le(name string, terms []milp.Term, rhs float64) {
	if c.err != nil {
		return
	}
	c.err = c.m.AddLeRow(name, terms, rhs)
}

func (c *compiler) ge(name string, terms []milp.Term, rhs float64) {
	if c.err != nil {
		return
	}
	c.err = c.m.AddGeRow(name, terms, rhs)
}

func (c *compiler) ccsOption(slot int) scenario.CCSOption {
	if slot == 1 {
		return c.st.CCS1
	}
	return c.st.CCS2
}

func canRetrofit(p *network.Node, slot int) bool {
	if slot == 1 {
		return p.Producer.CanCCS1
	}
	return p.Producer.CanCCS2
}

func flag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
