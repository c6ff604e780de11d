package milp

// Status is the outcome of a solve.
type Status int

const (
	// StatusUnknown indicates the backend reported no usable status.
	StatusUnknown Status = iota
	// StatusOptimal indicates an optimal solution was found.
	StatusOptimal
	// StatusInfeasible indicates the program has no feasible point.
	StatusInfeasible
	// StatusUnbounded indicates the objective is unbounded.
	StatusUnbounded
	// StatusTimeLimit indicates the solve hit its time limit. A feasible
	// incumbent may still be present.
	StatusTimeLimit
	// StatusInterrupted indicates the solve was cancelled.
	StatusInterrupted
)

// String returns a human-readable representation of the status.
func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "Optimal"
	case StatusInfeasible:
		return "Infeasible"
	case StatusUnbounded:
		return "Unbounded"
	case StatusTimeLimit:
		return "TimeLimit"
	case StatusInterrupted:
		return "Interrupted"
	default:
		return "Unknown"
	}
}

// HasSolution reports whether solution values are usable.
func (s Status) HasSolution() bool {
	return s == StatusOptimal || s == StatusTimeLimit
}

// Solution is the result of solving a model. Values are indexed by the
// model's column order.
type Solution struct {
	Status    Status
	Objective float64
	Values    []float64
}

// IsOptimal returns true if the solve reached a proven optimum.
func (s *Solution) IsOptimal() bool { return s.Status == StatusOptimal }

// Value returns the solution value of a column by index, or 0 when the
// index is out of range.
func (s *Solution) Value(index int) float64 {
	if index < 0 || index >= len(s.Values) {
		return 0
	}
	return s.Values[index]
}

// ValueOf returns the solution value of a named variable in m, or 0
// when the model has no such variable.
func (s *Solution) ValueOf(m *Model, name string) float64 {
	i, ok := m.VarIndex(name)
	if !ok {
		return 0
	}
	return s.Value(i)
}
