package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/h2plan/h2plan/pkg/logging"
	"github.com/h2plan/h2plan/pkg/planner"
	"github.com/h2plan/h2plan/pkg/scenario"
)

func main() {
	fmt.Println("🚀 h2plan - regional hydrogen infrastructure planner")

	sc := demoScenario()

	fmt.Printf("\n🗺️  Scenario: %d hubs, %d production technologies, %d demand sectors\n",
		len(sc.Hubs), len(sc.Production), len(sc.Demand))
	for _, h := range sc.Hubs {
		total := 0.0
		for _, d := range h.Demand {
			total += d
		}
		fmt.Printf("  - %s (%s): %.0f t/d demand\n", h.Name, h.Status, total)
	}

	solver, err := planner.NewSolver(sc.Settings.Solver.Name)
	if err != nil {
		log.Fatalf("Failed to pick solver: %v", err)
	}

	p := planner.New(solver)
	p.Logger = logging.NewJSONLogger(os.Stderr, logging.WarnLevel)

	fmt.Printf("\n⚙️  Solving with %s...\n", solver.Name())
	res, err := p.Run(context.Background(), sc)
	if err != nil {
		log.Fatalf("Run failed: %v", err)
	}
	out := res.Output

	fmt.Printf("  Status: %s\n", out.Status)
	fmt.Printf("  Network: %d nodes, %d arcs\n", res.Network.NodeCount(), res.Network.ArcCount())
	fmt.Printf("  Program: %d variables, %d rows\n", res.Plan.Model.NumVars(), res.Plan.Model.NumRows())
	fmt.Printf("  Surplus: $%.0f/day\n", out.Surplus)
	fmt.Printf("  Hydrogen: %.1f t/d produced, %.1f t/d consumed\n",
		out.Tables.TotalProduced(), out.Tables.TotalConsumed())

	fmt.Println("\n🏭 Production:")
	for _, row := range out.Tables.Production {
		kind := "new"
		if row.Existing {
			kind = "existing"
		}
		fmt.Printf("  - %s (%s): %.1f t/d capacity, %.1f t/d produced, $%.0f/d total\n",
			row.Node, kind, row.Capacity, row.Output, row.TotalCost)
		if row.CO2Captured > 0 {
			fmt.Printf("    CCS retrofit: %.1f tCO2/d captured, $%.0f/d credit\n",
				row.CO2Captured, row.CaptureCredit)
		}
	}
	if len(out.Tables.Production) == 0 {
		fmt.Println("  (nothing built)")
	}

	fmt.Println("\n🔄 Conversion:")
	for _, row := range out.Tables.Conversion {
		fmt.Printf("  - %s: %.1f t/d capacity\n", row.Node, row.Capacity)
	}
	if len(out.Tables.Conversion) == 0 {
		fmt.Println("  (no converters built)")
	}

	fmt.Println("\n🚚 Distribution:")
	for _, row := range out.Tables.Distribution {
		fmt.Printf("  %s → %s: %.1f t/d\n", row.Start, row.End, row.Flow)
	}

	fmt.Println("\n🔥 Consumption:")
	for _, row := range out.Tables.Consumption {
		fmt.Printf("  - %s: %.1f t/d at $%.0f/t\n", row.Node, row.Consumed, row.Price)
	}

	fmt.Println("\n💰 Delivered prices:")
	for _, pr := range out.Prices {
		fmt.Printf("  - %s %s: $%.2f/kg\n", pr.Hub, pr.Category, pr.USDPerKg)
	}
	if len(out.Prices) == 0 {
		fmt.Println("  (no probe fully satisfied)")
	}

	fmt.Printf("\n✨ Run %s complete in %s\n", res.RunID, res.Elapsed.Round(time.Millisecond))
}

// demoScenario is a two-hub Gulf Coast corridor: an industrial hub with
// an aging SMR fleet and cheap gas, and a city hub with fuel-station
// demand and room for an electrolyzer.
func demoScenario() *scenario.Scenario {
	st := scenario.DefaultSettings()
	st.Prices.Enabled = true
	st.Prices.Start = 1
	st.Prices.Stop = 4
	st.Prices.Step = 0.25
	st.Carbon.PriceUSDPerTon = 25
	st.Carbon.CaptureCreditUSDPerTon = 85
	st.CCS1 = scenario.CCSOption{CaptureFraction: 0.6, TaxCreditPerTon: 170, VariablePerTonCO2: 18}
	st.CCS2 = scenario.CCSOption{CaptureFraction: 0.9, TaxCreditPerTon: 350, VariablePerTonCO2: 28}
	st.Subsidy.BillionsUSD = 0.02
	st.Subsidy.CostShareFraction = 0.5
	st.Solver.TimeLimit = 2 * time.Minute

	return &scenario.Scenario{
		Hubs: []scenario.Hub{
			{
				Name:                  "houston",
				Status:                scenario.HubMajor,
				CapitalMultiplier:     1,
				ElectricityMultiplier: 0.95,
				GasMultiplier:         0.9,
				Build:                 map[string]bool{"smr": true},
				Demand:                map[string]float64{"industrial": 55},
			},
			{
				Name:                  "austin",
				CapitalMultiplier:     1.05,
				ElectricityMultiplier: 1,
				GasMultiplier:         1.1,
				Build:                 map[string]bool{"electrolysis": true},
				Demand:                map[string]float64{"mobility": 12},
			},
		},
		Production: []scenario.ProductionTechnology{
			{
				Name:                "smr",
				Kind:                scenario.ProductionThermal,
				Purity:              scenario.PurityLow,
				CapitalPerTonPerDay: 610_000,
				FixedPerTon:         70,
				VariablePerTon:      25,
				GasPerTon:           600,
				Utilization:         0.95,
				MinCapacity:         5,
				MaxCapacity:         150,
				EmissionRate:        8.9,
				CanCCS1:             true,
				CanCCS2:             true,
			},
			{
				Name:                "electrolysis",
				Kind:                scenario.ProductionElectric,
				Purity:              scenario.PurityHigh,
				CapitalPerTonPerDay: 1_600_000,
				FixedPerTon:         120,
				VariablePerTon:      12,
				ElectricityPerTon:   2_700,
				Utilization:         0.9,
				MinCapacity:         2,
				MaxCapacity:         50,
				GridIntensity:       2.4,
				TaxCreditPerTon:     3_000,
			},
		},
		Existing: []scenario.ExistingProducer{
			{
				Hub:            "houston",
				Technology:     "smr",
				Capacity:       90,
				FixedPerTon:    60,
				VariablePerTon: 22,
				GasPerTon:      640,
				Utilization:    0.95,
				EmissionRate:   9.2,
				CanCCS1:        true,
				CanCCS2:        true,
			},
		},
		Distribution: []scenario.DistributionTechnology{
			{
				Name:               "pipeline",
				Mode:               scenario.ModePipeline,
				CapitalPerUnit:     510_000,
				FixedPerUnitPerDay: 12,
				VariablePerKmTon:   0.02,
				FlowLimitPerDay:    240,
			},
		},
		Conversion: []scenario.ConversionTechnology{
			{
				Name:                "purifier",
				UpstreamClass:       "center_lowPurity",
				DownstreamClass:     "center_highPurity",
				CapitalPerTonPerDay: 32_000,
				FixedPerTonPerDay:   1.6,
				VariablePerTon:      2.5,
				ElectricityPerTon:   90,
				Utilization:         0.9,
			},
			{
				Name:                "dispenser",
				UpstreamClass:       "dist_pipelineHighPurity",
				DownstreamClass:     "demand_fuelStation",
				CapitalPerTonPerDay: 65_000,
				FixedPerTonPerDay:   3.2,
				VariablePerTon:      6,
				ElectricityPerTon:   120,
				Utilization:         0.7,
				FuelDispenser:       true,
			},
		},
		Demand: []scenario.DemandSector{
			{
				Name:                     "industrial",
				Category:                 scenario.DemandLowPurity,
				CarbonSensitiveFraction:  0.3,
				BreakevenPrice:           1_400,
				BreakevenCarbonIntensity: 70,
			},
			{
				Name:                     "mobility",
				Category:                 scenario.DemandFuelStation,
				CarbonSensitiveFraction:  0.25,
				BreakevenPrice:           4_500,
				BreakevenCarbonIntensity: 90,
			},
		},
		Routes: []scenario.Route{
			{Start: "houston", End: "austin", EuclideanKm: 235, RoadKm: 265},
		},
		Settings: st,
	}
}
