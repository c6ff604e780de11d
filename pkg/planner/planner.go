// Package planner runs scenarios end to end: synthesize the flow
// network, compile it into a program, hand the program to a solver, and
// decompose the solution into activity tables. Each stage is timed,
// logged, and recorded in the metrics registry under the run's ID.
package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/h2plan/h2plan/pkg/logging"
	"github.com/h2plan/h2plan/pkg/metrics"
	"github.com/h2plan/h2plan/pkg/milp"
	"github.com/h2plan/h2plan/pkg/model"
	"github.com/h2plan/h2plan/pkg/network"
	"github.com/h2plan/h2plan/pkg/results"
	"github.com/h2plan/h2plan/pkg/scenario"
	"github.com/h2plan/h2plan/pkg/solve"
)

// Stage names used in logs and metric labels.
const (
	StageSynthesize = "synthesize"
	StageCompile    = "compile"
	StageSolve      = "solve"
	StageDecompose  = "decompose"
)

// Planner drives one scenario through the full pipeline.
type Planner struct {
	// Solver answers the compiled program. Required.
	Solver milp.Solver
	// Logger receives the structured stage logs. Nil means the process
	// default logger.
	Logger logging.Logger
	// Metrics receives run instrumentation. Nil means the shared
	// default registry.
	Metrics *metrics.Registry
}

// New returns a planner backed by the given solver, with logging and
// metrics going to the process defaults.
func New(solver milp.Solver) *Planner {
	return &Planner{
		Solver:  solver,
		Logger:  logging.DefaultLogger(),
		Metrics: metrics.DefaultRegistry(),
	}
}

// NewSolver returns the solver backend a settings block names. The empty
// name means HiGHS; "static" is the canned test backend.
func NewSolver(name string) (milp.Solver, error) {
	switch name {
	case "", "highs":
		return solve.NewHiGHS(), nil
	case "static":
		return solve.NewStatic(nil), nil
	default:
		return nil, fmt.Errorf("planner: unknown solver %q", name)
	}
}

// Result is everything one run produced. The intermediate artifacts stay
// attached so callers can inspect the network and the program the output
// was decomposed through.
type Result struct {
	RunID    string
	Network  *network.Network
	Plan     *model.Plan
	Solution *milp.Solution
	Output   *results.Output
	Elapsed  time.Duration
}

// Run executes one planning run. The scenario is validated first; the
// context is passed through to the solver, which stops on cancellation.
func (p *Planner) Run(ctx context.Context, sc *scenario.Scenario) (*Result, error) {
	if p.Solver == nil {
		return nil, fmt.Errorf("planner: no solver configured")
	}
	if sc == nil {
		return nil, fmt.Errorf("planner: scenario is nil")
	}

	runID := uuid.New().String()
	log := p.logger().With(logging.Component("planner"), logging.RunID(runID))
	start := time.Now()

	res, err := p.run(ctx, sc, log)
	elapsed := time.Since(start)
	if err != nil {
		p.registry().RecordRun("error", elapsed)
		log.Error("run failed", logging.Error(err), logging.Latency(elapsed))
		return nil, err
	}

	res.RunID = runID
	res.Elapsed = elapsed
	p.registry().RecordRun("success", elapsed)
	log.Info("run complete",
		logging.Status(res.Output.Status),
		logging.Float64("surplus", res.Output.Surplus),
		logging.Float64("produced_tpd", res.Output.Tables.TotalProduced()),
		logging.Float64("consumed_tpd", res.Output.Tables.TotalConsumed()),
		logging.Int("prices", len(res.Output.Prices)),
		logging.Latency(elapsed))
	return res, nil
}

func (p *Planner) run(ctx context.Context, sc *scenario.Scenario, log logging.Logger) (*Result, error) {
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("planner: scenario: %w", err)
	}

	timer := logging.StartTimer(log, "network synthesized", logging.Stage(StageSynthesize))
	net, err := network.Build(sc)
	p.registry().RecordStage(StageSynthesize, timer.Elapsed())
	if err != nil {
		timer.EndError(err)
		return nil, fmt.Errorf("planner: synthesize: %w", err)
	}
	p.registry().SetNetworkSize(net.NodeCount(), net.ArcCount())
	timer.End(logging.Int("nodes", net.NodeCount()), logging.Int("arcs", net.ArcCount()))

	timer = logging.StartTimer(log, "program compiled", logging.Stage(StageCompile))
	plan, err := model.Compile(net, sc.Settings)
	p.registry().RecordStage(StageCompile, timer.Elapsed())
	if err != nil {
		timer.EndError(err)
		return nil, fmt.Errorf("planner: compile: %w", err)
	}
	p.registry().SetModelSize(plan.Model.NumVars(), plan.Model.NumRows())
	timer.End(
		logging.Int("variables", plan.Model.NumVars()),
		logging.Int("rows", plan.Model.NumRows()))

	opts := milp.Options{
		MIPGap:    sc.Settings.Solver.MIPGap,
		TimeLimit: sc.Settings.Solver.TimeLimit,
		Verbose:   sc.Settings.Solver.Verbose,
	}
	timer = logging.StartTimer(log, "program solved",
		logging.Stage(StageSolve), logging.String("solver", p.Solver.Name()))
	sol, err := p.Solver.Solve(ctx, plan.Model, opts)
	status := "error"
	if sol != nil {
		status = sol.Status.String()
	}
	p.registry().RecordSolve(status, timer.Elapsed())
	if err != nil {
		timer.EndError(err)
		return nil, fmt.Errorf("planner: solve: %w", err)
	}
	if !sol.Status.HasSolution() {
		err := fmt.Errorf("planner: solver finished %s without a usable solution", sol.Status)
		timer.EndError(err)
		return nil, err
	}
	timer.End(logging.Status(status), logging.Float64("objective", sol.Objective))

	timer = logging.StartTimer(log, "solution decomposed", logging.Stage(StageDecompose))
	out, err := results.Decompose(plan, sol)
	p.registry().RecordStage(StageDecompose, timer.Elapsed())
	if err != nil {
		timer.EndError(err)
		return nil, fmt.Errorf("planner: decompose: %w", err)
	}
	p.registry().SetSurplus(out.Surplus)
	p.registry().SetPricesDiscovered(len(out.Prices))
	timer.End(logging.Int("prices", len(out.Prices)), logging.Float64("surplus", out.Surplus))

	return &Result{Network: net, Plan: plan, Solution: sol, Output: out}, nil
}

func (p *Planner) logger() logging.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return logging.DefaultLogger()
}

func (p *Planner) registry() *metrics.Registry {
	if p.Metrics != nil {
		return p.Metrics
	}
	return metrics.DefaultRegistry()
}
