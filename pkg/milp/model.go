// Package milp describes mixed-integer linear programs with named
// variables and constraints. Models are built column by column and row
// by row, then handed to a Solver backend; names survive into the
// solution so callers never juggle raw column indexes.
package milp

import (
	"fmt"
	"math"
)

// VarKind specifies the domain of a variable.
type VarKind int

const (
	// Continuous is a real-valued variable (default).
	Continuous VarKind = iota
	// Integer restricts the variable to whole numbers.
	Integer
	// Binary restricts the variable to {0, 1}.
	Binary
)

// String returns a human-readable representation of the kind.
func (k VarKind) String() string {
	switch k {
	case Continuous:
		return "Continuous"
	case Integer:
		return "Integer"
	case Binary:
		return "Binary"
	default:
		return "Unknown"
	}
}

// Variable is one column of the program.
type Variable struct {
	Name  string
	Kind  VarKind
	Lower float64
	Upper float64
	// Cost is the objective coefficient. Accumulated, not assigned:
	// several model components may price the same variable.
	Cost float64
}

// Term is one coefficient of a constraint row, referencing a variable
// by name.
type Term struct {
	Var   string
	Coeff float64
}

// Row is one constraint: Lower <= sum(Terms) <= Upper.
type Row struct {
	Name  string
	Lower float64
	Upper float64
	Terms []Term
}

// Model is a mixed-integer linear program under construction.
//
// The model solves problems of the form:
//
//	Minimize (or Maximize): sum(Cost_j * x_j) + Offset
//	Subject to:             Lower_i <= sum(A_ij * x_j) <= Upper_i
//	And:                    Lower_j <= x_j <= Upper_j
//
// Variables and rows keep their insertion order, so two builds from the
// same input produce identical column and row layouts.
type Model struct {
	// Maximize indicates whether to maximize (true) or minimize (false).
	Maximize bool

	// Offset is a constant added to the objective function.
	Offset float64

	vars     []Variable
	varIndex map[string]int
	rows     []Row
	rowIndex map[string]int
}

// NewModel returns an empty model with the given objective sense.
func NewModel(maximize bool) *Model {
	return &Model{
		Maximize: maximize,
		varIndex: make(map[string]int),
		rowIndex: make(map[string]int),
	}
}

// Inf returns positive infinity, suitable for unbounded variable bounds.
func Inf() float64 { return math.Inf(1) }

// NegInf returns negative infinity, suitable for unbounded variable bounds.
func NegInf() float64 { return math.Inf(-1) }

// AddVariable appends a column. Binary variables get bounds clamped to
// [0, 1] regardless of the arguments.
func (m *Model) AddVariable(name string, kind VarKind, lower, upper float64) error {
	if name == "" {
		return newErrorMsg("AddVariable", "empty variable name")
	}
	if _, ok := m.varIndex[name]; ok {
		return newErrorMsg("AddVariable", fmt.Sprintf("duplicate variable %q", name))
	}
	if kind == Binary {
		lower = math.Max(lower, 0)
		upper = math.Min(upper, 1)
	}
	if lower > upper {
		return newErrorMsg("AddVariable", fmt.Sprintf("variable %q has lower bound %v above upper bound %v", name, lower, upper))
	}
	m.varIndex[name] = len(m.vars)
	m.vars = append(m.vars, Variable{Name: name, Kind: kind, Lower: lower, Upper: upper})
	return nil
}

// AddCost adds delta to the objective coefficient of a variable.
func (m *Model) AddCost(name string, delta float64) error {
	i, ok := m.varIndex[name]
	if !ok {
		return newErrorMsg("AddCost", fmt.Sprintf("unknown variable %q", name))
	}
	m.vars[i].Cost += delta
	return nil
}

// AddRow appends a constraint Lower <= sum(terms) <= Upper. Every term
// must reference an existing variable; terms on the same variable are
// summed.
func (m *Model) AddRow(name string, lower float64, terms []Term, upper float64) error {
	if name == "" {
		return newErrorMsg("AddRow", "empty row name")
	}
	if _, ok := m.rowIndex[name]; ok {
		return newErrorMsg("AddRow", fmt.Sprintf("duplicate row %q", name))
	}
	if lower > upper {
		return newErrorMsg("AddRow", fmt.Sprintf("row %q has lower bound %v above upper bound %v", name, lower, upper))
	}
	merged := make([]Term, 0, len(terms))
	seen := make(map[string]int, len(terms))
	for _, t := range terms {
		if _, ok := m.varIndex[t.Var]; !ok {
			return newErrorMsg("AddRow", fmt.Sprintf("row %q references unknown variable %q", name, t.Var))
		}
		if j, ok := seen[t.Var]; ok {
			merged[j].Coeff += t.Coeff
			continue
		}
		seen[t.Var] = len(merged)
		merged = append(merged, t)
	}
	m.rowIndex[name] = len(m.rows)
	m.rows = append(m.rows, Row{Name: name, Lower: lower, Upper: upper, Terms: merged})
	return nil
}

// AddEqRow appends an equality constraint: sum(terms) == rhs.
func (m *Model) AddEqRow(name string, terms []Term, rhs float64) error {
	return m.AddRow(name, rhs, terms, rhs)
}

// AddLeRow appends an upper-bounded constraint: sum(terms) <= rhs.
func (m *Model) AddLeRow(name string, terms []Term, rhs float64) error {
	return m.AddRow(name, NegInf(), terms, rhs)
}

// AddGeRow appends a lower-bounded constraint: sum(terms) >= rhs.
func (m *Model) AddGeRow(name string, terms []Term, rhs float64) error {
	return m.AddRow(name, rhs, terms, Inf())
}

// NumVars returns the number of variables in the model.
func (m *Model) NumVars() int { return len(m.vars) }

// NumRows returns the number of constraints in the model.
func (m *Model) NumRows() int { return len(m.rows) }

// Variables returns the columns in insertion order. The slice is shared;
// callers must not modify it.
func (m *Model) Variables() []Variable { return m.vars }

// Rows returns the constraints in insertion order. The slice is shared;
// callers must not modify it.
func (m *Model) Rows() []Row { return m.rows }

// VarIndex returns the column index of a variable.
func (m *Model) VarIndex(name string) (int, bool) {
	i, ok := m.varIndex[name]
	return i, ok
}

// RowByName returns a constraint by name.
func (m *Model) RowByName(name string) (Row, bool) {
	i, ok := m.rowIndex[name]
	if !ok {
		return Row{}, false
	}
	return m.rows[i], true
}

// String summarizes the model shape.
func (m *Model) String() string {
	sense := "minimize"
	if m.Maximize {
		sense = "maximize"
	}
	ints := 0
	for _, v := range m.vars {
		if v.Kind != Continuous {
			ints++
		}
	}
	return fmt.Sprintf("milp.Model{%s, %d vars (%d integer), %d rows}", sense, len(m.vars), ints, len(m.rows))
}
