package scenario

import (
	"math"
	"strings"
	"testing"
)

func validScenario() *Scenario {
	return &Scenario{
		Hubs: []Hub{
			{
				Name:                  "houston",
				CapitalMultiplier:     1.0,
				ElectricityMultiplier: 1.0,
				GasMultiplier:         1.0,
				Build:                 map[string]bool{"smr": true},
				Demand:                map[string]float64{"industrial": 10},
			},
		},
		Production: []ProductionTechnology{
			{
				Name:                "smr",
				Kind:                ProductionThermal,
				Purity:              PurityLow,
				CapitalPerTonPerDay: 1000000,
				FixedPerTon:         100,
				VariablePerTon:      50,
				GasPerTon:           150,
				Utilization:         0.9,
				MinCapacity:         1,
				MaxCapacity:         500,
				EmissionRate:        8.9,
			},
		},
		Distribution: []DistributionTechnology{
			{Name: "pipeline", Mode: ModePipeline, CapitalPerUnit: 500000, FixedPerUnitPerDay: 10, VariablePerKmTon: 0.01, FlowLimitPerDay: 200},
			{Name: "truckLiquefied", Mode: ModeTruck, CapitalPerUnit: 200000, FixedPerUnitPerDay: 5, VariablePerKmTon: 0.03, FlowLimitPerDay: 4},
		},
		Demand: []DemandSector{
			{Name: "industrial", Category: DemandLowPurity, CarbonSensitiveFraction: 0.2, BreakevenPrice: 1500, BreakevenCarbonIntensity: 20},
		},
		Settings: testSettings(),
	}
}

func testSettings() Settings {
	s := DefaultSettings()
	s.CCS1 = CCSOption{CaptureFraction: 0.6, TaxCreditPerTon: 0, VariablePerTonCO2: 10}
	s.CCS2 = CCSOption{CaptureFraction: 0.9, TaxCreditPerTon: 0, VariablePerTonCO2: 15}
	return s
}

func TestScenarioValidate_Valid(t *testing.T) {
	s := validScenario()
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestScenarioValidate_DuplicateHub(t *testing.T) {
	s := validScenario()
	s.Hubs = append(s.Hubs, s.Hubs[0])
	err := s.Validate()
	if err == nil || !strings.Contains(err.Error(), "declared twice") {
		t.Errorf("Validate() = %v, want duplicate hub error", err)
	}
}

func TestScenarioValidate_UnderscoreName(t *testing.T) {
	s := validScenario()
	s.Hubs[0].Name = "el_paso"
	err := s.Validate()
	if err == nil || !strings.Contains(err.Error(), "invalid") {
		t.Errorf("Validate() = %v, want invalid name error", err)
	}
}

func TestScenarioValidate_ZeroMultiplier(t *testing.T) {
	s := validScenario()
	s.Hubs[0].CapitalMultiplier = 0
	if err := s.Validate(); err == nil {
		t.Error("Validate() = nil, want error for zero capital multiplier")
	}
}

func TestScenarioValidate_BadHubStatus(t *testing.T) {
	s := validScenario()
	s.Hubs[0].Status = HubStatus(9)
	err := s.Validate()
	if err == nil || !strings.Contains(err.Error(), "unknown status") {
		t.Errorf("Validate() = %v, want unknown status error", err)
	}
}

func TestHubStatus(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want HubStatus
	}{
		{"regular", HubRegular},
		{"", HubRegular},
		{"major", HubMajor},
		{"minor", HubMinor},
	} {
		got, err := ParseHubStatus(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseHubStatus(%q) = %v, %v, want %v", tt.in, got, err, tt.want)
		}
	}

	if _, err := ParseHubStatus("mega"); err == nil {
		t.Error("ParseHubStatus(mega) should fail")
	}

	if HubMajor.String() != "major" || HubMinor.String() != "minor" || HubRegular.String() != "regular" {
		t.Error("HubStatus.String() mismatch")
	}
}

func TestScenarioValidate_CapacityBracket(t *testing.T) {
	s := validScenario()
	s.Production[0].MinCapacity = 100
	s.Production[0].MaxCapacity = 10
	err := s.Validate()
	if err == nil || !strings.Contains(err.Error(), "below min") {
		t.Errorf("Validate() = %v, want capacity bracket error", err)
	}
}

func TestScenarioValidate_SelfRoute(t *testing.T) {
	s := validScenario()
	s.Routes = []Route{{Start: "houston", End: "houston", RoadKm: 10}}
	err := s.Validate()
	if err == nil || !strings.Contains(err.Error(), "start and end") {
		t.Errorf("Validate() = %v, want self route error", err)
	}
}

func TestSettingsValidate_PriceSearch(t *testing.T) {
	s := DefaultSettings()
	s.Prices.Enabled = true
	s.Prices.Start = 5
	s.Prices.Stop = 2
	err := s.Validate()
	if err == nil || !strings.Contains(err.Error(), "must exceed start") {
		t.Errorf("Validate() = %v, want ladder bounds error", err)
	}
}

func TestSettingsValidate_CCSFraction(t *testing.T) {
	s := testSettings()
	s.CCS2.CaptureFraction = 1.5
	err := s.Validate()
	if err == nil || !strings.Contains(err.Error(), "CCS2.CaptureFraction") {
		t.Errorf("Validate() = %v, want capture fraction error", err)
	}
}

func TestSettingsValidate_Defaults(t *testing.T) {
	s := DefaultSettings()
	if err := s.Validate(); err != nil {
		t.Fatalf("default settings invalid: %v", err)
	}
	if !s.FractionalCHECs {
		t.Error("FractionalCHECs should default to true")
	}
	if s.Finance.TimeSlices != 365 {
		t.Errorf("TimeSlices = %d, want 365", s.Finance.TimeSlices)
	}
}

func TestAmortizationFactor(t *testing.T) {
	f := FinanceSettings{InterestRate: 0.054, PeriodYears: 20}
	got := f.AmortizationFactor()
	if math.Abs(got-12.05) > 0.01 {
		t.Errorf("AmortizationFactor() = %v, want ~12.05", got)
	}

	// One-year period amortizes to a single discounted payment.
	f = FinanceSettings{InterestRate: 0.10, PeriodYears: 1}
	got = f.AmortizationFactor()
	want := 1 / 1.10
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("AmortizationFactor() = %v, want %v", got, want)
	}
}

func TestPriceLadder(t *testing.T) {
	p := PriceSearchSettings{Start: 0, Stop: 1, Step: 0.25}
	got := p.Ladder()
	want := []float64{0, 0.25, 0.5, 0.75}
	if len(got) != len(want) {
		t.Fatalf("Ladder() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Ladder()[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	// The stop value is excluded.
	for _, v := range got {
		if v >= 1 {
			t.Errorf("Ladder() contains %v, want all below stop", v)
		}
	}

	if (&PriceSearchSettings{Start: 0, Stop: 1, Step: 0}).Ladder() != nil {
		t.Error("Ladder() with zero step should be nil")
	}
}

func TestResolveHubs(t *testing.T) {
	all := []string{"houston", "dallas", "austin"}

	p := PriceSearchSettings{}
	if got := p.ResolveHubs(all); len(got) != 3 {
		t.Errorf("ResolveHubs(empty) = %v, want all hubs", got)
	}

	p = PriceSearchSettings{Hubs: []string{"all"}}
	if got := p.ResolveHubs(all); len(got) != 3 {
		t.Errorf("ResolveHubs(all) = %v, want all hubs", got)
	}

	p = PriceSearchSettings{Hubs: []string{"dallas"}}
	got := p.ResolveHubs(all)
	if len(got) != 1 || got[0] != "dallas" {
		t.Errorf("ResolveHubs(dallas) = %v, want [dallas]", got)
	}
}

func TestScenarioHelpers(t *testing.T) {
	s := validScenario()

	if names := s.HubNames(); len(names) != 1 || names[0] != "houston" {
		t.Errorf("HubNames() = %v", names)
	}

	trucks := s.Trucks()
	if len(trucks) != 1 || trucks[0].Name != "truckLiquefied" {
		t.Errorf("Trucks() = %v", trucks)
	}

	pipe, ok := s.Pipeline()
	if !ok || pipe.Name != "pipeline" {
		t.Errorf("Pipeline() = %v, %v", pipe, ok)
	}
}
