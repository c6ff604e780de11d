package network

import (
	"fmt"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/h2plan/h2plan/pkg/scenario"
)

// propScenario builds a small randomized scenario: hubCount hubs in a
// line, one thermal technology everywhere, optional truck fleet.
func propScenario(hubCount int, demand, capMult float64, withTruck bool) *scenario.Scenario {
	sc := &scenario.Scenario{
		Production: []scenario.ProductionTechnology{
			{
				Name: "smr", Kind: scenario.ProductionThermal, Purity: scenario.PurityLow,
				CapitalPerTonPerDay: 1000000, FixedPerTon: 100, VariablePerTon: 50, GasPerTon: 150,
				Utilization: 0.9, MinCapacity: 1, MaxCapacity: 500, EmissionRate: 8.9,
			},
		},
		Distribution: []scenario.DistributionTechnology{
			{Name: "pipeline", Mode: scenario.ModePipeline, CapitalPerUnit: 500000, FixedPerUnitPerDay: 10, VariablePerKmTon: 0.01, FlowLimitPerDay: 200},
		},
		Demand: []scenario.DemandSector{
			{Name: "industrialFuel", Category: scenario.DemandLowPurity, CarbonSensitiveFraction: 0.25, BreakevenPrice: 1400, BreakevenCarbonIntensity: 20},
		},
		Settings: testSettings(),
	}
	if withTruck {
		sc.Distribution = append(sc.Distribution, scenario.DistributionTechnology{
			Name: "truckLiquefied", Mode: scenario.ModeTruck,
			CapitalPerUnit: 200000, FixedPerUnitPerDay: 5, VariablePerKmTon: 0.03, FlowLimitPerDay: 4,
		})
	}
	for i := 0; i < hubCount; i++ {
		sc.Hubs = append(sc.Hubs, scenario.Hub{
			Name:                  fmt.Sprintf("hub%d", i),
			CapitalMultiplier:     capMult,
			ElectricityMultiplier: 1,
			GasMultiplier:         1,
			Build:                 map[string]bool{"smr": true},
			Demand:                map[string]float64{"industrialFuel": demand},
		})
		if i > 0 {
			sc.Routes = append(sc.Routes, scenario.Route{
				Start: fmt.Sprintf("hub%d", i-1), End: fmt.Sprintf("hub%d", i),
				EuclideanKm: 100, RoadKm: 120,
			})
		}
	}
	return sc
}

// TestNetworkInvariants checks structural properties that must hold for
// any synthesized network, whatever the scenario shape.
func TestNetworkInvariants(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping property-based test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20

	properties := gopter.NewProperties(parameters)

	properties.Property("arc endpoints always resolve to nodes", prop.ForAll(
		func(hubCount int, demand, capMult float64, withTruck bool) bool {
			net, err := Build(propScenario(hubCount, demand, capMult, withTruck))
			if err != nil {
				return false
			}
			for _, a := range net.Arcs() {
				if _, ok := net.Node(a.Start); !ok {
					return false
				}
				if _, ok := net.Node(a.End); !ok {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 4),
		gen.Float64Range(0.5, 100),
		gen.Float64Range(0.5, 2),
		gen.Bool(),
	))

	properties.Property("node names are unique and carry their hub prefix", prop.ForAll(
		func(hubCount int, demand float64) bool {
			net, err := Build(propScenario(hubCount, demand, 1, true))
			if err != nil {
				return false
			}
			seen := make(map[string]bool)
			for _, n := range net.Nodes() {
				if seen[n.Name] {
					return false
				}
				seen[n.Name] = true
				if n.Hub == "" || !strings.HasPrefix(n.Name, n.Hub+"_") {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 4),
		gen.Float64Range(0.5, 100),
	))

	properties.Property("adjacency lists partition the arc set", prop.ForAll(
		func(hubCount int, withTruck bool) bool {
			net, err := Build(propScenario(hubCount, 10, 1, withTruck))
			if err != nil {
				return false
			}
			outs, ins := 0, 0
			for _, n := range net.Nodes() {
				outs += len(net.OutArcs(n.Name))
				ins += len(net.InArcs(n.Name))
			}
			return outs == net.ArcCount() && ins == net.ArcCount()
		},
		gen.IntRange(1, 4),
		gen.Bool(),
	))

	properties.Property("producers only inject, consumers only absorb", prop.ForAll(
		func(hubCount int, demand float64) bool {
			net, err := Build(propScenario(hubCount, demand, 1, false))
			if err != nil {
				return false
			}
			for _, n := range net.NodesByClass(ClassProducer) {
				if len(net.InArcs(n.Name)) != 0 || len(net.OutArcs(n.Name)) != 1 {
					return false
				}
			}
			for _, n := range net.NodesByClass(ClassDemandSector) {
				if len(net.InArcs(n.Name)) != 1 || len(net.OutArcs(n.Name)) != 0 {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 4),
		gen.Float64Range(0.5, 100),
	))

	properties.Property("every arc carries a positive flow limit", prop.ForAll(
		func(hubCount int, withTruck bool) bool {
			net, err := Build(propScenario(hubCount, 10, 1, withTruck))
			if err != nil {
				return false
			}
			for _, a := range net.Arcs() {
				if a.FlowLimit <= 0 {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 4),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
