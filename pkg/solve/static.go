package solve

import (
	"context"
	"sync"

	"github.com/h2plan/h2plan/pkg/milp"
)

// Static returns a canned solution without invoking any backend. It
// stands in for HiGHS in tests and dry runs, and records the models it
// was asked to solve. Safe for concurrent use.
type Static struct {
	mu sync.Mutex

	// Solution is returned from every Solve call. Nil with a nil Err
	// yields an all-zero optimal solution sized to the model.
	Solution *milp.Solution
	// Err, when set, fails every Solve call.
	Err error

	models []*milp.Model
}

// NewStatic returns a solver that answers with sol.
func NewStatic(sol *milp.Solution) *Static {
	return &Static{Solution: sol}
}

// Name implements milp.Solver.
func (s *Static) Name() string { return "static" }

// Solve implements milp.Solver.
func (s *Static) Solve(ctx context.Context, m *milp.Model, opts milp.Options) (*milp.Solution, error) {
	if err := ctx.Err(); err != nil {
		return &milp.Solution{Status: milp.StatusInterrupted}, err
	}

	s.mu.Lock()
	s.models = append(s.models, m)
	sol, err := s.Solution, s.Err
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}
	if sol == nil {
		return &milp.Solution{
			Status: milp.StatusOptimal,
			Values: make([]float64, m.NumVars()),
		}, nil
	}
	out := &milp.Solution{Status: sol.Status, Objective: sol.Objective}
	if sol.Values != nil {
		out.Values = make([]float64, len(sol.Values))
		copy(out.Values, sol.Values)
	}
	return out, nil
}

// Models returns every model passed to Solve, in call order.
func (s *Static) Models() []*milp.Model {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*milp.Model, len(s.models))
	copy(out, s.models)
	return out
}

// LastModel returns the most recently solved model, or nil.
func (s *Static) LastModel() *milp.Model {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.models) == 0 {
		return nil
	}
	return s.models[len(s.models)-1]
}
