package scenario

import (
	"fmt"
	"math"
	"time"

	"github.com/h2plan/h2plan/pkg/validation"
)

// GramsPerMJToTonsPerTon converts a carbon intensity in grams CO2 per MJ
// of delivered energy to tonnes CO2 per tonne of hydrogen.
const GramsPerMJToTonsPerTon = 120000.0 / 1000000.0

// Price tie-break strategies for price discovery.
const (
	TieBreakLowest = "lowest"
	TieBreakFirst  = "first"
)

// PriceSearchSettings controls the synthetic price-probe consumers used to
// discover breakeven delivered prices.
type PriceSearchSettings struct {
	Enabled bool `yaml:"enabled"`

	// Ladder bounds in USD per kg; probes are spaced Step apart over
	// the half-open interval [Start, Stop).
	Start float64 `yaml:"start"`
	Stop  float64 `yaml:"stop"`
	Step  float64 `yaml:"step"`

	// Hubs to probe. Empty or ["all"] means every hub.
	Hubs []string `yaml:"hubs"`

	// ProbeDemand is the tiny demand (tonnes/day) each probe consumer
	// requests, kept far below real sector sizes.
	ProbeDemand float64 `yaml:"probe_demand"`

	// TieBreak picks among probes satisfied at the same hub: "lowest"
	// keeps the cheapest satisfied probe, "first" the first in ladder
	// order.
	TieBreak string `yaml:"tie_break"`
}

// Ladder expands the price settings into probe prices in USD per kg.
func (p *PriceSearchSettings) Ladder() []float64 {
	if p.Step <= 0 || p.Stop <= p.Start {
		return nil
	}
	var prices []float64
	for v := p.Start; v < p.Stop; v += p.Step {
		prices = append(prices, v)
	}
	return prices
}

// ResolveHubs returns the hubs to probe given the full hub list.
func (p *PriceSearchSettings) ResolveHubs(all []string) []string {
	if len(p.Hubs) == 0 || (len(p.Hubs) == 1 && p.Hubs[0] == "all") {
		return all
	}
	return p.Hubs
}

// CarbonSettings prices emissions and credits capture.
type CarbonSettings struct {
	// PriceUSDPerTon taxes every tonne of CO2 emitted by new production.
	PriceUSDPerTon float64 `yaml:"price_usd_per_ton"`
	// CaptureCreditUSDPerTon rewards every tonne of CO2 captured.
	CaptureCreditUSDPerTon float64 `yaml:"capture_credit_usd_per_ton"`
	// BaselineSMRRate is the emission rate (tCO2/tH2) of unabated steam
	// methane reforming, the zero point for clean-hydrogen accounting.
	BaselineSMRRate float64 `yaml:"baseline_smr_rate"`
}

// FinanceSettings amortizes capital into daily cost.
type FinanceSettings struct {
	InterestRate   float64 `yaml:"interest_rate"`
	PeriodYears    int     `yaml:"period_years"`
	TimeSlices     int     `yaml:"time_slices"`
	FixedCostShare float64 `yaml:"fixed_cost_share"`
}

// AmortizationFactor returns the annuity factor A such that an upfront
// capital cost C costs C/A per year over the investment period.
func (f *FinanceSettings) AmortizationFactor() float64 {
	i := f.InterestRate
	n := float64(f.PeriodYears)
	return (math.Pow(1+i, n) - 1) / (i * math.Pow(1+i, n))
}

// SubsidySettings funds part of fuel-station capital from public money.
type SubsidySettings struct {
	BillionsUSD       float64 `yaml:"billions_usd"`
	CostShareFraction float64 `yaml:"cost_share_fraction"`
}

// CCSOption is one retrofit package an existing producer may install.
// Eligibility is per producer; the economics of each package are global.
type CCSOption struct {
	// CaptureFraction of process CO2 removed by the retrofit.
	CaptureFraction float64 `yaml:"capture_fraction"`
	// TaxCreditPerTon is USD per tonne H2 produced through the retrofit.
	TaxCreditPerTon float64 `yaml:"tax_credit_per_ton"`
	// VariablePerTonCO2 is USD per tonne CO2 captured.
	VariablePerTonCO2 float64 `yaml:"variable_per_ton_co2"`
}

// SolverSettings are passed through to the MILP backend.
type SolverSettings struct {
	Name      string        `yaml:"name"`
	MIPGap    float64       `yaml:"mip_gap"`
	TimeLimit time.Duration `yaml:"time_limit"`
	Verbose   bool          `yaml:"verbose"`
}

// Settings are the economic and numeric knobs of a planning run.
type Settings struct {
	Prices  PriceSearchSettings `yaml:"prices"`
	Carbon  CarbonSettings      `yaml:"carbon"`
	Finance FinanceSettings     `yaml:"finance"`
	Subsidy SubsidySettings     `yaml:"subsidy"`
	CCS1    CCSOption           `yaml:"ccs1"`
	CCS2    CCSOption           `yaml:"ccs2"`
	Solver  SolverSettings      `yaml:"solver"`

	// FractionalCHECs counts a retrofit's clean-energy credits at its
	// capture fraction; when false each retrofitted tonne earns a full
	// credit.
	FractionalCHECs bool `yaml:"fractional_checs"`
}

// DefaultSettings returns settings with workable defaults. Callers
// overlay scenario-specific values on top.
func DefaultSettings() Settings {
	return Settings{
		Prices: PriceSearchSettings{
			Enabled:     false,
			Start:       0,
			Stop:        10,
			Step:        0.25,
			ProbeDemand: 0.01,
			TieBreak:    TieBreakLowest,
		},
		Carbon: CarbonSettings{
			BaselineSMRRate: 8.9,
		},
		Finance: FinanceSettings{
			InterestRate:   0.054,
			PeriodYears:    20,
			TimeSlices:     365,
			FixedCostShare: 0.02,
		},
		Subsidy: SubsidySettings{
			CostShareFraction: 1.0,
		},
		Solver: SolverSettings{
			Name:   "highs",
			MIPGap: 0.01,
		},
		FractionalCHECs: true,
	}
}

// Validate checks the settings for internal consistency.
func (s *Settings) Validate() error {
	cv := validation.NewConfigValidator("Settings")

	cv.PositiveFloat("Finance.InterestRate", s.Finance.InterestRate).
		Positive("Finance.PeriodYears", s.Finance.PeriodYears).
		Positive("Finance.TimeSlices", s.Finance.TimeSlices).
		NonNegativeFloat("Finance.FixedCostShare", s.Finance.FixedCostShare).
		NonNegativeFloat("Carbon.PriceUSDPerTon", s.Carbon.PriceUSDPerTon).
		NonNegativeFloat("Carbon.CaptureCreditUSDPerTon", s.Carbon.CaptureCreditUSDPerTon).
		PositiveFloat("Carbon.BaselineSMRRate", s.Carbon.BaselineSMRRate).
		NonNegativeFloat("Subsidy.BillionsUSD", s.Subsidy.BillionsUSD).
		Fraction("Subsidy.CostShareFraction", s.Subsidy.CostShareFraction).
		Fraction("CCS1.CaptureFraction", s.CCS1.CaptureFraction).
		NonNegativeFloat("CCS1.TaxCreditPerTon", s.CCS1.TaxCreditPerTon).
		NonNegativeFloat("CCS1.VariablePerTonCO2", s.CCS1.VariablePerTonCO2).
		Fraction("CCS2.CaptureFraction", s.CCS2.CaptureFraction).
		NonNegativeFloat("CCS2.TaxCreditPerTon", s.CCS2.TaxCreditPerTon).
		NonNegativeFloat("CCS2.VariablePerTonCO2", s.CCS2.VariablePerTonCO2).
		Required("Solver.Name", s.Solver.Name).
		NonNegativeFloat("Solver.MIPGap", s.Solver.MIPGap).
		NonNegativeDuration("Solver.TimeLimit", s.Solver.TimeLimit)

	cv.When(s.Prices.Enabled, func(v *validation.ConfigValidator) {
		v.PositiveFloat("Prices.Step", s.Prices.Step).
			PositiveFloat("Prices.ProbeDemand", s.Prices.ProbeDemand).
			OneOf("Prices.TieBreak", s.Prices.TieBreak, []string{TieBreakLowest, TieBreakFirst}).
			Custom("Prices.Stop", func() error {
				if s.Prices.Stop <= s.Prices.Start {
					return fmt.Errorf("stop %v must exceed start %v", s.Prices.Stop, s.Prices.Start)
				}
				return nil
			})
	})

	return cv.Validate()
}
