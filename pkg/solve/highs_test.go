package solve

import (
	"math"
	"testing"

	"github.com/h2plan/h2plan/pkg/milp"
)

func buildModel(t *testing.T, maximize bool) *milp.Model {
	t.Helper()
	m := milp.NewModel(maximize)
	if err := m.AddVariable("build", milp.Binary, 0, 1); err != nil {
		t.Fatal(err)
	}
	if err := m.AddVariable("flow", milp.Continuous, 0, 100); err != nil {
		t.Fatal(err)
	}
	_ = m.AddCost("build", -500)
	_ = m.AddCost("flow", 12)
	if err := m.AddLeRow("capacity", []milp.Term{{Var: "flow", Coeff: 1}, {Var: "build", Coeff: -100}}, 0); err != nil {
		t.Fatal(err)
	}
	return m
}

func TestToHighs(t *testing.T) {
	m := buildModel(t, false)
	lp, err := toHighs(m)
	if err != nil {
		t.Fatalf("toHighs() error: %v", err)
	}

	if len(lp.ColCosts) != 2 || len(lp.VarTypes) != 2 {
		t.Fatalf("column arrays sized %d and %d, want 2", len(lp.ColCosts), len(lp.VarTypes))
	}
	if lp.ColCosts[0] != -500 || lp.ColCosts[1] != 12 {
		t.Errorf("ColCosts = %v", lp.ColCosts)
	}
	if lp.ColLower[0] != 0 || lp.ColUpper[0] != 1 {
		t.Errorf("binary bounds = [%v, %v]", lp.ColLower[0], lp.ColUpper[0])
	}
	if lp.VarTypes[0] == lp.VarTypes[1] {
		t.Error("binary and continuous columns should differ in type")
	}

	if len(lp.RowLower) != 1 || len(lp.RowUpper) != 1 {
		t.Fatalf("row arrays sized %d and %d, want 1", len(lp.RowLower), len(lp.RowUpper))
	}
	if !math.IsInf(lp.RowLower[0], -1) || lp.RowUpper[0] != 0 {
		t.Errorf("row bounds = [%v, %v]", lp.RowLower[0], lp.RowUpper[0])
	}
	if len(lp.ConstMatrix) != 2 {
		t.Errorf("ConstMatrix has %d entries, want 2", len(lp.ConstMatrix))
	}
	for _, nz := range lp.ConstMatrix {
		if nz.Row != 0 {
			t.Errorf("nonzero in row %d, want 0", nz.Row)
		}
	}
}

func TestToHighs_MaximizeNegatesCosts(t *testing.T) {
	m := buildModel(t, true)
	lp, err := toHighs(m)
	if err != nil {
		t.Fatalf("toHighs() error: %v", err)
	}
	if lp.ColCosts[0] != 500 || lp.ColCosts[1] != -12 {
		t.Errorf("negated ColCosts = %v", lp.ColCosts)
	}
}

func TestToHighs_EmptyModel(t *testing.T) {
	if _, err := toHighs(milp.NewModel(false)); err == nil {
		t.Error("empty model should fail translation")
	}
}

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		in   string
		want milp.Status
	}{
		{"Infeasible", milp.StatusInfeasible},
		{"UnboundedOrInfeasible", milp.StatusInfeasible},
		{"Unbounded", milp.StatusUnbounded},
		{"TimeLimit", milp.StatusTimeLimit},
		{"IterationLimit", milp.StatusUnknown},
		{"garbage", milp.StatusUnknown},
	}
	for _, tt := range tests {
		if got := classifyStatus(tt.in); got != tt.want {
			t.Errorf("classifyStatus(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
