package solve

import (
	"context"
	"errors"
	"testing"

	"github.com/h2plan/h2plan/pkg/milp"
)

func TestStatic_DefaultSolution(t *testing.T) {
	m := buildModel(t, true)
	s := NewStatic(nil)

	sol, err := s.Solve(context.Background(), m, milp.Options{})
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if sol.Status != milp.StatusOptimal {
		t.Errorf("Status = %v, want Optimal", sol.Status)
	}
	if len(sol.Values) != m.NumVars() {
		t.Errorf("Values sized %d, want %d", len(sol.Values), m.NumVars())
	}
	if got := s.LastModel(); got != m {
		t.Error("LastModel() should return the solved model")
	}
}

func TestStatic_CannedSolution(t *testing.T) {
	m := buildModel(t, true)
	canned := &milp.Solution{Status: milp.StatusOptimal, Objective: 700, Values: []float64{1, 100}}
	s := NewStatic(canned)

	sol, err := s.Solve(context.Background(), m, milp.Options{})
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if sol.Objective != 700 || sol.Values[1] != 100 {
		t.Errorf("solution = %+v", sol)
	}

	// Returned values are copies.
	sol.Values[0] = 42
	if canned.Values[0] != 1 {
		t.Error("Solve() must not alias the canned solution")
	}
}

func TestStatic_Error(t *testing.T) {
	boom := errors.New("no license")
	s := &Static{Err: boom}

	_, err := s.Solve(context.Background(), buildModel(t, false), milp.Options{})
	if !errors.Is(err, boom) {
		t.Errorf("Solve() error = %v, want %v", err, boom)
	}
}

func TestStatic_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewStatic(nil)
	sol, err := s.Solve(ctx, buildModel(t, false), milp.Options{})
	if err == nil {
		t.Fatal("Solve() with cancelled context should fail")
	}
	if sol.Status != milp.StatusInterrupted {
		t.Errorf("Status = %v, want Interrupted", sol.Status)
	}
	if len(s.Models()) != 0 {
		t.Error("cancelled solve should not record a model")
	}
}

func TestStatic_RecordsModels(t *testing.T) {
	s := NewStatic(nil)
	a := buildModel(t, true)
	b := buildModel(t, false)

	_, _ = s.Solve(context.Background(), a, milp.Options{})
	_, _ = s.Solve(context.Background(), b, milp.Options{})

	models := s.Models()
	if len(models) != 2 || models[0] != a || models[1] != b {
		t.Errorf("Models() = %v", models)
	}
}
