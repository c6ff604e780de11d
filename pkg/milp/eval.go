package milp

import (
	"fmt"
	"math"
)

// Point assigns values to variables by name. Unnamed variables are 0.
type Point map[string]float64

// Vector expands a named point into column order. Unknown names error.
func (m *Model) Vector(p Point) ([]float64, error) {
	x := make([]float64, len(m.vars))
	for name, v := range p {
		i, ok := m.varIndex[name]
		if !ok {
			return nil, newErrorMsg("Vector", fmt.Sprintf("unknown variable %q", name))
		}
		x[i] = v
	}
	return x, nil
}

// EvalRow computes the activity of row i at x.
func (m *Model) EvalRow(i int, x []float64) float64 {
	sum := 0.0
	for _, t := range m.rows[i].Terms {
		sum += t.Coeff * x[m.varIndex[t.Var]]
	}
	return sum
}

// ObjectiveValue computes the objective at x, including the offset.
func (m *Model) ObjectiveValue(x []float64) float64 {
	sum := m.Offset
	for i, v := range m.vars {
		sum += v.Cost * x[i]
	}
	return sum
}

// Feasible checks x against every variable bound, integrality
// restriction, and constraint row, within tol. It returns nil when x is
// feasible and otherwise an error naming the first violation.
func (m *Model) Feasible(x []float64, tol float64) error {
	if len(x) != len(m.vars) {
		return newErrorMsg("Feasible", fmt.Sprintf("point has %d values, model has %d variables", len(x), len(m.vars)))
	}
	for i, v := range m.vars {
		if x[i] < v.Lower-tol || x[i] > v.Upper+tol {
			return newErrorMsg("Feasible", fmt.Sprintf("variable %q = %v outside bounds [%v, %v]", v.Name, x[i], v.Lower, v.Upper))
		}
		if v.Kind != Continuous {
			if frac := math.Abs(x[i] - math.Round(x[i])); frac > tol {
				return newErrorMsg("Feasible", fmt.Sprintf("variable %q = %v is not integral", v.Name, x[i]))
			}
		}
	}
	for i, r := range m.rows {
		act := m.EvalRow(i, x)
		if act < r.Lower-tol || act > r.Upper+tol {
			return newErrorMsg("Feasible", fmt.Sprintf("row %q activity %v outside [%v, %v]", r.Name, act, r.Lower, r.Upper))
		}
	}
	return nil
}
