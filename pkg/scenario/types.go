package scenario

import (
	"fmt"

	"github.com/h2plan/h2plan/pkg/validation"
)

// Purity is the hydrogen purity grade a producer or pipeline carries.
type Purity uint8

const (
	PurityLow Purity = iota
	PurityHigh
)

func (p Purity) String() string {
	switch p {
	case PurityLow:
		return "lowPurity"
	case PurityHigh:
		return "highPurity"
	default:
		return "unknown"
	}
}

// ParsePurity converts a purity name to a Purity.
func ParsePurity(s string) (Purity, error) {
	switch s {
	case "lowPurity", "low":
		return PurityLow, nil
	case "highPurity", "high":
		return PurityHigh, nil
	default:
		return PurityLow, fmt.Errorf("unknown purity %q", s)
	}
}

// DemandCategory is the delivery form a consumer takes hydrogen in.
type DemandCategory uint8

const (
	DemandFuelStation DemandCategory = iota
	DemandLowPurity
	DemandHighPurity
)

func (d DemandCategory) String() string {
	switch d {
	case DemandFuelStation:
		return "fuelStation"
	case DemandLowPurity:
		return "lowPurity"
	case DemandHighPurity:
		return "highPurity"
	default:
		return "unknown"
	}
}

// DemandCategories lists all categories in canonical order.
func DemandCategories() []DemandCategory {
	return []DemandCategory{DemandFuelStation, DemandLowPurity, DemandHighPurity}
}

// ProductionKind distinguishes thermal plants from electrolyzers.
type ProductionKind uint8

const (
	ProductionThermal ProductionKind = iota
	ProductionElectric
)

func (k ProductionKind) String() string {
	if k == ProductionElectric {
		return "electric"
	}
	return "thermal"
}

// DistributionMode distinguishes fixed lines from vehicle fleets.
type DistributionMode uint8

const (
	ModePipeline DistributionMode = iota
	ModeTruck
)

func (m DistributionMode) String() string {
	if m == ModeTruck {
		return "truck"
	}
	return "pipeline"
}

// HubStatus ranks a hub's importance. Route-generation tooling connects
// major hubs to more neighbors than regular or minor ones; within this
// module the tag is carried as data, since routes arrive precomputed.
type HubStatus uint8

const (
	HubRegular HubStatus = iota
	HubMajor
	HubMinor
)

func (s HubStatus) String() string {
	switch s {
	case HubMajor:
		return "major"
	case HubMinor:
		return "minor"
	default:
		return "regular"
	}
}

// ParseHubStatus converts a status name to a HubStatus.
func ParseHubStatus(s string) (HubStatus, error) {
	switch s {
	case "regular", "":
		return HubRegular, nil
	case "major":
		return HubMajor, nil
	case "minor":
		return HubMinor, nil
	default:
		return HubRegular, fmt.Errorf("unknown hub status %q", s)
	}
}

// Hub is one geographic site where hydrogen can be produced, converted,
// or consumed.
type Hub struct {
	Name   string `validate:"required"`
	Status HubStatus

	// Regional cost multipliers applied to technology reference costs.
	CapitalMultiplier     float64 `validate:"gt=0"`
	ElectricityMultiplier float64 `validate:"gt=0"`
	GasMultiplier         float64 `validate:"gt=0"`

	// Build lists the production technologies permitted at this hub.
	Build map[string]bool

	// Demand is tonnes of hydrogen per day by sector name.
	Demand map[string]float64
}

// ProductionTechnology describes one buildable production plant type at
// reference (multiplier 1.0) costs.
type ProductionTechnology struct {
	Name   string `validate:"required"`
	Kind   ProductionKind
	Purity Purity

	CapitalPerTonPerDay float64 `validate:"gte=0"`
	FixedPerTon         float64 `validate:"gte=0"`
	VariablePerTon      float64 `validate:"gte=0"`
	ElectricityPerTon   float64 `validate:"gte=0"`
	GasPerTon           float64 `validate:"gte=0"`

	Utilization float64 `validate:"gt=0,lte=1"`
	MinCapacity float64 `validate:"gte=0"`
	MaxCapacity float64 `validate:"gte=0"`

	// EmissionRate is tonnes CO2 emitted per tonne H2 produced.
	EmissionRate float64 `validate:"gte=0"`
	// CaptureRate is the fraction of process CO2 captured on site
	// (thermal plants with built-in CCS).
	CaptureRate float64 `validate:"gte=0,lte=1"`
	// GridIntensity is tonnes CO2 per tonne H2 attributed to grid
	// electricity (electric plants only).
	GridIntensity float64 `validate:"gte=0"`

	TaxCreditPerTon float64 `validate:"gte=0"`

	// CCS retrofit eligibility for plants built from this technology.
	CanCCS1 bool
	CanCCS2 bool
}

// ExistingProducer is an already-built plant whose capacity and costs are
// fixed facts rather than optimization choices. Costs are as-built and
// carry no regional multipliers.
type ExistingProducer struct {
	Hub        string `validate:"required"`
	Technology string `validate:"required"`

	Capacity          float64 `validate:"gt=0"`
	FixedPerTon       float64 `validate:"gte=0"`
	VariablePerTon    float64 `validate:"gte=0"`
	ElectricityPerTon float64 `validate:"gte=0"`
	GasPerTon         float64 `validate:"gte=0"`
	Utilization       float64 `validate:"gt=0,lte=1"`
	EmissionRate      float64 `validate:"gte=0"`

	CanCCS1 bool
	CanCCS2 bool
}

// DistributionTechnology describes one way of moving hydrogen. Pipelines
// are costed per km of line, trucks per vehicle.
type DistributionTechnology struct {
	Name string `validate:"required"`
	Mode DistributionMode

	CapitalPerUnit     float64 `validate:"gte=0"`
	FixedPerUnitPerDay float64 `validate:"gte=0"`
	VariablePerKmTon   float64 `validate:"gte=0"`
	FlowLimitPerDay    float64 `validate:"gt=0"`
}

// ConversionTechnology describes a processing step spliced between two
// node classes (liquefaction, compression, purification, dispensing).
// An upstream class of "none" disables the rule.
type ConversionTechnology struct {
	Name            string `validate:"required"`
	UpstreamClass   string `validate:"required"`
	DownstreamClass string

	CapitalPerTonPerDay float64 `validate:"gte=0"`
	FixedPerTonPerDay   float64 `validate:"gte=0"`
	VariablePerTon      float64 `validate:"gte=0"`
	ElectricityPerTon   float64 `validate:"gte=0"`
	Utilization         float64 `validate:"gt=0,lte=1"`

	// FuelDispenser marks retail dispensing steps, which are the ones
	// eligible for capital subsidies.
	FuelDispenser bool
}

// Disabled reports whether the rule is a placeholder that creates nothing.
func (c *ConversionTechnology) Disabled() bool {
	return c.UpstreamClass == "none"
}

// DemandSector is one end-use sector with its willingness to pay.
type DemandSector struct {
	Name     string `validate:"required"`
	Category DemandCategory

	// CarbonSensitiveFraction of the sector's demand insists on clean
	// hydrogen (CHEC-backed).
	CarbonSensitiveFraction float64 `validate:"gte=0,lte=1"`
	// BreakevenPrice is USD per tonne the sector will pay.
	BreakevenPrice float64 `validate:"gte=0"`
	// BreakevenCarbonIntensity is grams CO2 per MJ avoided by switching
	// this sector to hydrogen.
	BreakevenCarbonIntensity float64 `validate:"gte=0"`
}

// Route is a distance record between two hubs.
type Route struct {
	Start            string  `validate:"required"`
	End              string  `validate:"required"`
	EuclideanKm      float64 `validate:"gte=0"`
	RoadKm           float64 `validate:"gt=0"`
	ExistingPipeline bool
}

// Scenario bundles every input table and the economic settings for one
// planning run. Loaders (CSV, YAML, SQL) live outside this module; a
// Scenario is the in-memory form they produce.
type Scenario struct {
	Hubs         []Hub
	Production   []ProductionTechnology
	Existing     []ExistingProducer
	Distribution []DistributionTechnology
	Conversion   []ConversionTechnology
	Demand       []DemandSector
	Routes       []Route

	Settings Settings
}

// HubNames returns hub names in declaration order.
func (s *Scenario) HubNames() []string {
	names := make([]string, len(s.Hubs))
	for i := range s.Hubs {
		names[i] = s.Hubs[i].Name
	}
	return names
}

// Trucks returns the truck-mode distribution technologies in declaration order.
func (s *Scenario) Trucks() []DistributionTechnology {
	var trucks []DistributionTechnology
	for _, d := range s.Distribution {
		if d.Mode == ModeTruck {
			trucks = append(trucks, d)
		}
	}
	return trucks
}

// Pipeline returns the pipeline distribution technology, or false when the
// scenario declares none.
func (s *Scenario) Pipeline() (DistributionTechnology, bool) {
	for _, d := range s.Distribution {
		if d.Mode == ModePipeline {
			return d, true
		}
	}
	return DistributionTechnology{}, false
}

// Validate checks table shapes: names, ranges, and uniqueness. Reference
// resolution between tables happens during network synthesis.
func (s *Scenario) Validate() error {
	if len(s.Hubs) == 0 {
		return fmt.Errorf("scenario: at least one hub is required")
	}

	seen := make(map[string]bool)
	for i := range s.Hubs {
		h := &s.Hubs[i]
		if err := validation.Name(h.Name); err != nil {
			return fmt.Errorf("hub %d: %w", i, err)
		}
		if seen[h.Name] {
			return fmt.Errorf("hub %q declared twice", h.Name)
		}
		seen[h.Name] = true
		if h.Status > HubMinor {
			return fmt.Errorf("hub %q: unknown status %d", h.Name, h.Status)
		}
		if err := validation.Struct(h); err != nil {
			return fmt.Errorf("hub %q: %w", h.Name, err)
		}
	}

	seen = make(map[string]bool)
	for i := range s.Production {
		p := &s.Production[i]
		if err := validation.Name(p.Name); err != nil {
			return fmt.Errorf("production technology %d: %w", i, err)
		}
		if seen[p.Name] {
			return fmt.Errorf("production technology %q declared twice", p.Name)
		}
		seen[p.Name] = true
		if err := validation.Struct(p); err != nil {
			return fmt.Errorf("production technology %q: %w", p.Name, err)
		}
		if p.MaxCapacity > 0 && p.MaxCapacity < p.MinCapacity {
			return fmt.Errorf("production technology %q: max capacity %v below min %v", p.Name, p.MaxCapacity, p.MinCapacity)
		}
	}

	for i := range s.Existing {
		if err := validation.Struct(&s.Existing[i]); err != nil {
			return fmt.Errorf("existing producer %d: %w", i, err)
		}
	}

	seen = make(map[string]bool)
	for i := range s.Distribution {
		d := &s.Distribution[i]
		if err := validation.Name(d.Name); err != nil {
			return fmt.Errorf("distribution technology %d: %w", i, err)
		}
		if seen[d.Name] {
			return fmt.Errorf("distribution technology %q declared twice", d.Name)
		}
		seen[d.Name] = true
		if err := validation.Struct(d); err != nil {
			return fmt.Errorf("distribution technology %q: %w", d.Name, err)
		}
	}

	seen = make(map[string]bool)
	for i := range s.Conversion {
		c := &s.Conversion[i]
		if err := validation.Name(c.Name); err != nil {
			return fmt.Errorf("conversion technology %d: %w", i, err)
		}
		if seen[c.Name] {
			return fmt.Errorf("conversion technology %q declared twice", c.Name)
		}
		seen[c.Name] = true
		if err := validation.Struct(c); err != nil {
			return fmt.Errorf("conversion technology %q: %w", c.Name, err)
		}
	}

	seen = make(map[string]bool)
	for i := range s.Demand {
		d := &s.Demand[i]
		if err := validation.Name(d.Name); err != nil {
			return fmt.Errorf("demand sector %d: %w", i, err)
		}
		if seen[d.Name] {
			return fmt.Errorf("demand sector %q declared twice", d.Name)
		}
		seen[d.Name] = true
		if err := validation.Struct(d); err != nil {
			return fmt.Errorf("demand sector %q: %w", d.Name, err)
		}
	}

	for i := range s.Routes {
		r := &s.Routes[i]
		if err := validation.Struct(r); err != nil {
			return fmt.Errorf("route %d: %w", i, err)
		}
		if r.Start == r.End {
			return fmt.Errorf("route %d: start and end are both %q", i, r.Start)
		}
	}

	return s.Settings.Validate()
}
