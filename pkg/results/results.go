// Package results decomposes a flat solver solution back into structured
// activity tables: what got built, what flowed where, who consumed, and
// what delivered prices the probes discovered. Rows below the activity
// tolerance are treated as solver noise and dropped.
package results

import (
	"encoding/json"
	"fmt"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/h2plan/h2plan/pkg/milp"
	"github.com/h2plan/h2plan/pkg/model"
	"github.com/h2plan/h2plan/pkg/scenario"
)

// DefaultTolerance separates real activity from solver noise.
const DefaultTolerance = 1e-3

// Output is the full decomposition of one solve.
type Output struct {
	Status  string  `json:"status"`
	Surplus float64 `json:"surplus"`

	Tables Tables                `json:"tables"`
	Prices []Price               `json:"prices"`
	Hubs   map[string]*HubReport `json:"hubs"`
}

// JSON renders the output as an indented document. Column keys match the
// flat table names, so downstream tooling reads both forms the same way.
func (o *Output) JSON() ([]byte, error) {
	return json.MarshalIndent(o, "", "  ")
}

// Decompose reads a solution through the plan's column names and builds
// the activity tables, the discovered prices, and the per-hub reports.
func Decompose(plan *model.Plan, sol *milp.Solution) (*Output, error) {
	if plan == nil {
		return nil, fmt.Errorf("results: plan is nil")
	}
	if sol == nil {
		return nil, fmt.Errorf("results: solution is nil")
	}
	if !sol.Status.HasSolution() {
		return nil, fmt.Errorf("results: %s solution carries no values", sol.Status)
	}
	if len(sol.Values) != plan.Model.NumVars() {
		return nil, fmt.Errorf("results: solution has %d values for %d columns", len(sol.Values), plan.Model.NumVars())
	}

	d := &decomposer{plan: plan, sol: sol, st: plan.Settings(), tol: DefaultTolerance}

	tables := Tables{
		Production:   d.productionTable(),
		Conversion:   d.conversionTable(),
		Consumption:  d.consumptionTable(),
		Distribution: d.distributionTable(),
	}
	prices, probeRows := d.discoverPrices()
	tables.Consumption = append(tables.Consumption, probeRows...)

	return &Output{
		Status:  sol.Status.String(),
		Surplus: sol.Objective,
		Tables:  tables,
		Prices:  prices,
		Hubs:    d.hubReports(tables),
	}, nil
}

type decomposer struct {
	plan *model.Plan
	sol  *milp.Solution
	st   scenario.Settings
	tol  float64
}

func (d *decomposer) value(name string) float64 {
	return d.sol.ValueOf(d.plan.Model, name)
}

// probeFill reports whether v matches the synthetic probe demand, which
// marks probe activity rather than real consumption or flow.
func (d *decomposer) probeFill(v float64) bool {
	return d.st.Prices.Enabled && scalar.EqualWithinAbs(v, d.st.Prices.ProbeDemand, d.tol)
}
