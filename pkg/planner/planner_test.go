package planner

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/h2plan/h2plan/pkg/logging"
	"github.com/h2plan/h2plan/pkg/metrics"
	"github.com/h2plan/h2plan/pkg/milp"
	"github.com/h2plan/h2plan/pkg/scenario"
	"github.com/h2plan/h2plan/pkg/solve"
)

// testScenario is a single hub that may build one plant for one sector.
// Small enough that every pipeline stage runs in microseconds.
func testScenario() *scenario.Scenario {
	return &scenario.Scenario{
		Hubs: []scenario.Hub{
			{
				Name:                  "alpha",
				CapitalMultiplier:     1,
				ElectricityMultiplier: 1,
				GasMultiplier:         1,
				Build:                 map[string]bool{"smr": true},
				Demand:                map[string]float64{"industrial": 5},
			},
		},
		Production: []scenario.ProductionTechnology{
			{
				Name:                "smr",
				Kind:                scenario.ProductionThermal,
				Purity:              scenario.PurityHigh,
				CapitalPerTonPerDay: 1_000_000,
				FixedPerTon:         100,
				VariablePerTon:      50,
				GasPerTon:           150,
				Utilization:         1,
				MinCapacity:         1,
				MaxCapacity:         50,
				EmissionRate:        9,
			},
		},
		Demand: []scenario.DemandSector{
			{
				Name:           "industrial",
				Category:       scenario.DemandHighPurity,
				BreakevenPrice: 1500,
			},
		},
		Settings: scenario.DefaultSettings(),
	}
}

func testPlanner(solver milp.Solver) (*Planner, *metrics.Registry) {
	reg := metrics.NewRegistry()
	return &Planner{
		Solver:  solver,
		Logger:  logging.NewNopLogger(),
		Metrics: reg,
	}, reg
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestRun_EndToEnd(t *testing.T) {
	static := solve.NewStatic(nil)
	p, _ := testPlanner(static)

	res, err := p.Run(context.Background(), testScenario())
	require.NoError(t, err)
	require.NotNil(t, res)

	_, err = uuid.Parse(res.RunID)
	assert.NoError(t, err, "RunID should be a UUID")

	assert.Equal(t, "Optimal", res.Output.Status)
	assert.Zero(t, res.Output.Surplus, "All-zero solution has zero surplus")
	assert.Empty(t, res.Output.Tables.Production, "Nothing built in an all-zero solution")
	assert.Empty(t, res.Output.Prices, "Price discovery is off by default")
	assert.Len(t, res.Output.Hubs, 1, "Every hub gets a report")

	require.NotNil(t, res.Network)
	require.NotNil(t, res.Plan)
	assert.Greater(t, res.Network.NodeCount(), 0)
	assert.Equal(t, res.Plan.Model.NumVars(), len(res.Solution.Values))
	assert.Positive(t, res.Elapsed)

	require.Len(t, static.Models(), 1, "Solver should see exactly one model")
	assert.Same(t, res.Plan.Model, static.LastModel())
}

func TestRun_RecordsMetrics(t *testing.T) {
	static := solve.NewStatic(nil)
	p, reg := testPlanner(static)

	_, err := p.Run(context.Background(), testScenario())
	require.NoError(t, err)

	assert.Equal(t, 1.0, counterValue(t, reg.RunsTotal.WithLabelValues("success")))
	assert.Equal(t, 0.0, counterValue(t, reg.RunsTotal.WithLabelValues("error")))
	assert.Equal(t, 1.0, counterValue(t, reg.SolvesTotal.WithLabelValues("Optimal")))
}

func TestRun_SolverError(t *testing.T) {
	backendErr := errors.New("backend exploded")
	p, reg := testPlanner(&solve.Static{Err: backendErr})

	res, err := p.Run(context.Background(), testScenario())
	require.Error(t, err)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, backendErr)
	assert.Equal(t, 1.0, counterValue(t, reg.RunsTotal.WithLabelValues("error")))
}

func TestRun_InfeasibleModel(t *testing.T) {
	static := solve.NewStatic(&milp.Solution{Status: milp.StatusInfeasible})
	p, _ := testPlanner(static)

	res, err := p.Run(context.Background(), testScenario())
	require.Error(t, err)
	assert.Nil(t, res)
	assert.Contains(t, err.Error(), "Infeasible")
}

func TestRun_InvalidScenario(t *testing.T) {
	static := solve.NewStatic(nil)
	p, _ := testPlanner(static)

	sc := testScenario()
	sc.Hubs = nil

	_, err := p.Run(context.Background(), sc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one hub")
	assert.Empty(t, static.Models(), "Solver should not run for an invalid scenario")
}

func TestRun_CanceledContext(t *testing.T) {
	p, _ := testPlanner(solve.NewStatic(nil))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Run(ctx, testScenario())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_MissingPieces(t *testing.T) {
	p := &Planner{}
	_, err := p.Run(context.Background(), testScenario())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no solver")

	p, _ = testPlanner(solve.NewStatic(nil))
	_, err = p.Run(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scenario is nil")
}

func TestNew_FillsDefaults(t *testing.T) {
	p := New(solve.NewStatic(nil))
	assert.NotNil(t, p.Logger)
	assert.Same(t, metrics.DefaultRegistry(), p.Metrics)
}

func TestNewSolver(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{name: "", want: "highs"},
		{name: "highs", want: "highs"},
		{name: "static", want: "static"},
		{name: "cplex", wantErr: true},
	}
	for _, tt := range tests {
		s, err := NewSolver(tt.name)
		if tt.wantErr {
			assert.Error(t, err, "NewSolver(%q)", tt.name)
			continue
		}
		require.NoError(t, err, "NewSolver(%q)", tt.name)
		assert.Equal(t, tt.want, s.Name())
	}
}
