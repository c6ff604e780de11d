package results

// ProductionRow reports one plant that ended up with capacity. Cost
// columns are USD per day at the solved throughput; a built retrofit is
// already folded in (its credits, its capture fraction, and its variable
// cost), so the row reads the same whether the plant captures carbon
// natively or through a retrofit.
type ProductionRow struct {
	Node     string `json:"node"`
	Hub      string `json:"hub"`
	Existing bool   `json:"existing"`

	Capacity    float64 `json:"prod_capacity"`
	Utilization float64 `json:"prod_utilization"`
	Output      float64 `json:"prod_h"`

	Capital     float64 `json:"prod_cost_capital"`
	Fixed       float64 `json:"prod_cost_fixed"`
	Variable    float64 `json:"prod_cost_variable"`
	Electricity float64 `json:"prod_e_price"`
	Gas         float64 `json:"prod_ng_price"`

	TaxCredit        float64 `json:"h2_tax_credit"`
	RetrofitVariable float64 `json:"ccs_retrofit_variable_costs"`

	EmissionsRate float64 `json:"co2_emissions_rate"`
	CaptureRate   float64 `json:"ccs_capture_rate"`
	CHECPerTon    float64 `json:"chec_per_ton"`
	CHECs         float64 `json:"prod_checs"`

	CO2Emitted    float64 `json:"co2_emitted"`
	CarbonTax     float64 `json:"carbon_tax"`
	CO2Captured   float64 `json:"co2_captured"`
	CaptureCredit float64 `json:"capture_credit"`
	TotalCost     float64 `json:"total_cost"`
}

// ConversionRow reports one converter that ended up with capacity. Cost
// columns are the converter's per-ton rates; Subsidy is the solved
// capital subsidy amount for fuel dispensers.
type ConversionRow struct {
	Node string `json:"node"`
	Hub  string `json:"hub"`

	Capacity    float64 `json:"conv_capacity"`
	Capital     float64 `json:"conv_cost_capital"`
	Fixed       float64 `json:"conv_cost_fixed"`
	Variable    float64 `json:"conv_cost_variable"`
	Electricity float64 `json:"conv_e_price"`
	Utilization float64 `json:"conv_utilization"`
	Subsidy     float64 `json:"fuelStation_cost_capital_subsidy"`
}

// ConsumptionRow reports one satisfied consumer. Discovered price probes
// are appended after the real sectors.
type ConsumptionRow struct {
	Node string `json:"node"`
	Hub  string `json:"hub"`

	CarbonSensitive bool    `json:"cons_carbonSensitive"`
	Consumed        float64 `json:"cons_h"`
	CHECs           float64 `json:"cons_checs"`
	Price           float64 `json:"cons_price"`
	Size            float64 `json:"cons_size"`
}

// DistributionRow reports one arc that carried hydrogen.
type DistributionRow struct {
	Start string `json:"start"`
	End   string `json:"end"`

	Capacity  float64 `json:"dist_capacity"`
	Capital   float64 `json:"dist_cost_capital"`
	Fixed     float64 `json:"dist_cost_fixed"`
	Variable  float64 `json:"dist_cost_variable"`
	FlowLimit float64 `json:"dist_flowLimit"`
	Flow      float64 `json:"dist_h"`
}

// Tables are the four flat activity tables decomposed from a solution.
type Tables struct {
	Production   []ProductionRow   `json:"production"`
	Conversion   []ConversionRow   `json:"conversion"`
	Consumption  []ConsumptionRow  `json:"consumption"`
	Distribution []DistributionRow `json:"distribution"`
}

// TotalProduced is tonnes of hydrogen per day across all plants.
func (t *Tables) TotalProduced() float64 {
	var sum float64
	for _, row := range t.Production {
		sum += row.Output
	}
	return sum
}

// TotalConsumed is tonnes of hydrogen per day across all consumers,
// discovered probe rows included.
func (t *Tables) TotalConsumed() float64 {
	var sum float64
	for _, row := range t.Consumption {
		sum += row.Consumed
	}
	return sum
}

// Price is one discovered breakeven delivered price: the cheapest (or
// first, per the tie-break setting) fully satisfied probe at a hub and
// delivery category.
type Price struct {
	Hub      string `json:"hub"`
	Category string `json:"category"`
	Node     string `json:"node"`

	USDPerTon float64 `json:"usd_per_ton"`
	USDPerKg  float64 `json:"usd_per_kg"`
}
