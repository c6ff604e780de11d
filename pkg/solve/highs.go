// Package solve provides MILP solver backends: a HiGHS adapter for real
// runs and a canned Static solver for tests and dry runs.
package solve

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/lanl/highs"

	"github.com/h2plan/h2plan/pkg/milp"
)

// HiGHS solves models with the bundled HiGHS backend. One solve runs at
// a time; concurrent calls queue on an internal lock.
type HiGHS struct {
	mu sync.Mutex
}

// NewHiGHS returns a HiGHS-backed solver.
func NewHiGHS() *HiGHS {
	return &HiGHS{}
}

// Name implements milp.Solver.
func (h *HiGHS) Name() string { return "highs" }

// Solve implements milp.Solver. The backend exposes no option surface,
// so MIPGap and Verbose have no effect here; TimeLimit is enforced by
// abandoning the solve, whose native computation then finishes unused.
func (h *HiGHS) Solve(ctx context.Context, m *milp.Model, opts milp.Options) (*milp.Solution, error) {
	lp, err := toHighs(m)
	if err != nil {
		return nil, err
	}

	if opts.TimeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.TimeLimit)
		defer cancel()
	}

	type result struct {
		sol *milp.Solution
		err error
	}
	done := make(chan result, 1)
	go func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		sol, err := lp.Solve()
		if err != nil {
			done <- result{err: &milp.Error{Op: "Solve", Msg: err.Error()}}
			return
		}
		out := &milp.Solution{Status: milp.StatusUnknown}
		if sol.Status == highs.Optimal {
			out.Status = milp.StatusOptimal
		} else {
			out.Status = classifyStatus(sol.Status.String())
		}
		if len(sol.ColumnPrimal) > 0 {
			out.Values = make([]float64, len(sol.ColumnPrimal))
			copy(out.Values, sol.ColumnPrimal)
		}
		if out.Status.HasSolution() {
			// The backend only minimizes; restore the sense and offset
			// toHighs stripped out.
			obj := sol.Objective
			if m.Maximize {
				obj = -obj
			}
			out.Objective = obj + m.Offset
		}
		done <- result{sol: out}
	}()

	select {
	case <-ctx.Done():
		return &milp.Solution{Status: milp.StatusInterrupted}, ctx.Err()
	case r := <-done:
		return r.sol, r.err
	}
}

// toHighs translates a model into the backend's matrix form. The
// backend only minimizes, so a maximization model gets its costs
// negated here; Solve negates the reported objective back.
func toHighs(m *milp.Model) (*highs.Model, error) {
	vars := m.Variables()
	if len(vars) == 0 {
		return nil, &milp.Error{Op: "Solve", Msg: "model has no variables"}
	}

	lp := new(highs.Model)
	lp.ColCosts = make([]float64, len(vars))
	lp.ColLower = make([]float64, len(vars))
	lp.ColUpper = make([]float64, len(vars))
	lp.VarTypes = make([]highs.VariableType, len(vars))

	sign := 1.0
	if m.Maximize {
		sign = -1.0
	}
	for i, v := range vars {
		lp.ColCosts[i] = sign * v.Cost
		lp.ColLower[i] = v.Lower
		lp.ColUpper[i] = v.Upper
		if v.Kind != milp.Continuous {
			lp.VarTypes[i] = highs.IntegerType
		}
	}

	for ri, row := range m.Rows() {
		lp.RowLower = append(lp.RowLower, row.Lower)
		lp.RowUpper = append(lp.RowUpper, row.Upper)
		for _, t := range row.Terms {
			ci, ok := m.VarIndex(t.Var)
			if !ok {
				return nil, &milp.Error{Op: "Solve", Msg: fmt.Sprintf("row %q references unknown variable %q", row.Name, t.Var)}
			}
			lp.ConstMatrix = append(lp.ConstMatrix, highs.Nonzero{Row: ri, Col: ci, Val: t.Coeff})
		}
	}
	return lp, nil
}

func classifyStatus(s string) milp.Status {
	s = strings.ToLower(s)
	switch {
	case strings.Contains(s, "infeasible"):
		return milp.StatusInfeasible
	case strings.Contains(s, "unbounded"):
		return milp.StatusUnbounded
	case strings.Contains(s, "time"):
		return milp.StatusTimeLimit
	default:
		return milp.StatusUnknown
	}
}
