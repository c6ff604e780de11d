package milp

import (
	"context"
	"fmt"
	"time"
)

// Options tune a single solve. The zero value means backend defaults.
type Options struct {
	// MIPGap is the relative optimality gap at which the backend may
	// stop (0.01 accepts solutions within 1% of the bound).
	MIPGap float64
	// TimeLimit caps the solve wall time. Zero means no limit.
	TimeLimit time.Duration
	// Verbose lets the backend write its log to stdout.
	Verbose bool
	// Threads caps backend parallelism. Zero means backend default.
	Threads int
}

// Solver solves a model. Implementations must honor context
// cancellation between solves; a cancelled context returns
// StatusInterrupted or an error.
type Solver interface {
	Solve(ctx context.Context, m *Model, opts Options) (*Solution, error)
	Name() string
}

// Error describes a failure in a solver backend or during model
// construction.
type Error struct {
	Op  string // operation that failed, e.g. "Solve", "AddRow"
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("milp: %s failed: %s", e.Op, e.Msg)
}

func newErrorMsg(op, msg string) error {
	return &Error{Op: op, Msg: msg}
}
