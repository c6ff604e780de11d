package model

import (
	"testing"

	"github.com/h2plan/h2plan/pkg/network"
)

func buildSets(t *testing.T) Sets {
	t.Helper()
	net, err := network.Build(planScenario())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return BuildSets(net)
}

func nodeNames(nodes []*network.Node) []string {
	names := make([]string, len(nodes))
	for i, n := range nodes {
		names[i] = n.Name
	}
	return names
}

func TestBuildSets_Producers(t *testing.T) {
	s := buildSets(t)

	want := []string{
		"houston_production_smr",
		"houston_production_electrolyzer",
		"dallas_production_electrolyzer",
		"houston_production_smrExisting",
	}
	got := nodeNames(s.Producers)
	if len(got) != len(want) {
		t.Fatalf("Producers = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Producers[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if len(s.Existing) != 1 || s.Existing[0].Name != "houston_production_smrExisting" {
		t.Errorf("Existing = %v, want the one recorded plant", nodeNames(s.Existing))
	}
	if len(s.New) != 3 {
		t.Errorf("len(New) = %d, want 3", len(s.New))
	}
	if len(s.NewThermal) != 1 || s.NewThermal[0].Name != "houston_production_smr" {
		t.Errorf("NewThermal = %v, want [houston_production_smr]", nodeNames(s.NewThermal))
	}
	if len(s.NewElectric) != 2 {
		t.Errorf("len(NewElectric) = %d, want 2", len(s.NewElectric))
	}
}

func TestBuildSets_Consumers(t *testing.T) {
	s := buildSets(t)

	want := []string{
		"houston_demandSector_industrialFuel",
		"houston_demandSector_industrialFuel_carbonSensitive",
		"houston_demandSector_transport",
		"houston_demandSector_transport_carbonSensitive",
		"dallas_demandSector_transport",
		"dallas_demandSector_transport_carbonSensitive",
	}
	got := nodeNames(s.Consumers)
	if len(got) != len(want) {
		t.Fatalf("Consumers = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Consumers[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestBuildSets_Converters(t *testing.T) {
	s := buildSets(t)

	if len(s.Converters) != 6 {
		t.Fatalf("len(Converters) = %d, want 6", len(s.Converters))
	}
	if len(s.FuelStations) != 4 {
		t.Errorf("len(FuelStations) = %d, want 4", len(s.FuelStations))
	}
	for _, n := range s.FuelStations {
		if !n.Converter.FuelDispenser {
			t.Errorf("FuelStations contains non-dispenser %q", n.Name)
		}
	}
	if len(s.Trucks) != 2 {
		t.Errorf("len(Trucks) = %d, want 2", len(s.Trucks))
	}
}

func TestBuildSets_Arcs(t *testing.T) {
	s := buildSets(t)

	if len(s.Arcs) != 48 {
		t.Errorf("len(Arcs) = %d, want 48", len(s.Arcs))
	}
	if len(s.Distribution) != 48 {
		t.Errorf("len(Distribution) = %d, want 48", len(s.Distribution))
	}
	if len(s.DistributionExisting) != 2 {
		t.Errorf("len(DistributionExisting) = %d, want 2", len(s.DistributionExisting))
	}
	for _, a := range s.DistributionExisting {
		if !a.Existing {
			t.Errorf("DistributionExisting contains new arc %s->%s", a.Start, a.End)
		}
	}
	if len(s.ConsumerArcs) != 6 {
		t.Errorf("len(ConsumerArcs) = %d, want 6", len(s.ConsumerArcs))
	}
	if len(s.ConverterArcs) != 12 {
		t.Errorf("len(ConverterArcs) = %d, want 12", len(s.ConverterArcs))
	}
}
