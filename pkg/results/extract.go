package results

import (
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/h2plan/h2plan/pkg/model"
	"github.com/h2plan/h2plan/pkg/network"
	"github.com/h2plan/h2plan/pkg/scenario"
)

func (d *decomposer) productionTable() []ProductionRow {
	var rows []ProductionRow
	for _, p := range d.plan.Sets.Producers {
		capacity := d.value(model.NodeVar(model.VarProdCapacity, p.Name))
		if capacity <= d.tol {
			continue
		}
		spec := p.Producer
		row := ProductionRow{
			Node:     p.Name,
			Hub:      p.Hub,
			Existing: spec.Existing,

			Capacity:    capacity,
			Utilization: spec.Utilization,
			Output:      d.value(model.NodeVar(model.VarProdH, p.Name)),

			Capital:     spec.CapitalPerTonPerDay,
			Fixed:       spec.FixedPerTon,
			Variable:    spec.VariablePerTon,
			Electricity: spec.ElectricityPerTon,
			Gas:         spec.GasPerTon,

			TaxCredit:     spec.TaxCreditPerTon,
			EmissionsRate: spec.EmissionRate,
			CaptureRate:   spec.CaptureRate,
			CHECPerTon:    spec.CHECPerTon,
			CHECs:         d.value(model.NodeVar(model.VarProdCHECs, p.Name)),
		}
		d.applyRetrofit(&row, p)
		d.finishProductionRow(&row)
		rows = append(rows, row)
	}
	return rows
}

// applyRetrofit folds a built CCS slot into the plant's own columns: the
// slot's credits become the plant's credits, the capture fraction rewrites
// the emission rate, and the capture operating cost lands in
// RetrofitVariable.
func (d *decomposer) applyRetrofit(row *ProductionRow, p *network.Node) {
	if !p.Producer.Existing {
		return
	}
	slots := []struct {
		built string
		checs string
		opt   scenario.CCSOption
	}{
		{model.VarCCS1Built, model.VarCCS1CHECs, d.st.CCS1},
		{model.VarCCS2Built, model.VarCCS2CHECs, d.st.CCS2},
	}
	for _, s := range slots {
		if !scalar.EqualWithinAbs(d.value(model.NodeVar(s.built, p.Name)), 1, d.tol) {
			continue
		}
		row.CHECs = d.value(model.NodeVar(s.checs, p.Name))
		row.RetrofitVariable = row.Output * row.EmissionsRate * s.opt.CaptureFraction * s.opt.VariablePerTonCO2
		row.EmissionsRate *= 1 - s.opt.CaptureFraction
		row.CaptureRate = s.opt.CaptureFraction
		row.CHECPerTon = 1
		if d.st.FractionalCHECs {
			row.CHECPerTon = s.opt.CaptureFraction
		}
		row.TaxCredit = s.opt.TaxCreditPerTon
		return
	}
}

// finishProductionRow converts the per-ton rates into USD per day at the
// solved output and settles the plant's carbon ledger.
func (d *decomposer) finishProductionRow(row *ProductionRow) {
	days := d.plan.Amortization() * float64(d.st.Finance.TimeSlices)

	row.Capital = row.Capital * row.Output / days
	row.Fixed *= row.Output
	row.Variable *= row.Output
	row.Electricity *= row.Output
	row.Gas *= row.Output
	row.TaxCredit *= row.Output

	row.CO2Emitted = row.EmissionsRate * row.Output
	row.CarbonTax = row.CO2Emitted * d.st.Carbon.PriceUSDPerTon
	if 0 < row.CaptureRate && row.CaptureRate < 1 {
		// The recorded emission rate is net of capture; back out the
		// captured share from the net emissions.
		row.CO2Captured = row.CO2Emitted * row.CaptureRate / (1 - row.CaptureRate)
	} else {
		row.CO2Captured = row.CaptureRate * row.Output
	}
	row.CaptureCredit = row.CO2Captured * d.st.Carbon.CaptureCreditUSDPerTon

	row.TotalCost = row.Capital + row.Fixed + row.Variable + row.RetrofitVariable +
		row.Electricity + row.Gas + row.CarbonTax - (row.CaptureCredit + row.TaxCredit)
}

func (d *decomposer) conversionTable() []ConversionRow {
	var rows []ConversionRow
	for _, cv := range d.plan.Sets.Converters {
		capacity := d.value(model.NodeVar(model.VarConvCapacity, cv.Name))
		if capacity <= d.tol {
			continue
		}
		spec := cv.Converter
		rows = append(rows, ConversionRow{
			Node: cv.Name,
			Hub:  cv.Hub,

			Capacity:    capacity,
			Capital:     spec.CapitalPerTonPerDay,
			Fixed:       spec.FixedPerTonPerDay,
			Variable:    spec.VariablePerTon,
			Electricity: spec.ElectricityPerTon,
			Utilization: spec.Utilization,
			Subsidy:     d.value(model.NodeVar(model.VarSubsidy, cv.Name)),
		})
	}
	return rows
}

func (d *decomposer) consumptionTable() []ConsumptionRow {
	var rows []ConsumptionRow
	for _, n := range d.plan.Sets.Consumers {
		consumed := d.value(model.NodeVar(model.VarConsH, n.Name))
		if consumed <= d.tol || d.probeFill(consumed) {
			continue
		}
		rows = append(rows, ConsumptionRow{
			Node: n.Name,
			Hub:  n.Hub,

			CarbonSensitive: n.Consumer.CarbonSensitive,
			Consumed:        consumed,
			CHECs:           d.value(model.NodeVar(model.VarConsCHECs, n.Name)),
			Price:           n.Consumer.BreakevenPrice,
			Size:            n.Consumer.Size,
		})
	}
	return rows
}

func (d *decomposer) distributionTable() []DistributionRow {
	var rows []DistributionRow
	for _, a := range d.plan.Sets.Distribution {
		flow := d.value(model.ArcVar(model.VarDistH, a.Start, a.End))
		if flow <= d.tol || d.probeFill(flow) {
			continue
		}
		rows = append(rows, DistributionRow{
			Start: a.Start,
			End:   a.End,

			Capacity:  d.value(model.ArcVar(model.VarDistCapacity, a.Start, a.End)),
			Capital:   a.CapitalPerUnit,
			Fixed:     a.FixedPerUnitPerDay,
			Variable:  a.VariablePerTon,
			FlowLimit: a.FlowLimit,
			Flow:      flow,
		})
	}
	return rows
}
