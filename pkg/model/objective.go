package model

// addObjective prices the program: maximize daily surplus. Capital
// coefficients are multiplied by the capital scale, which amortizes an
// upfront cost over the investment period, divides it into daily slices,
// and marks it up by the fixed-cost share. Existing plants enter with zero
// capital (sunk) and pay no carbon tax unless a retrofit books their
// throughput. Fixed operating costs are reporting-only and never priced
// here, as is the dispenser subsidy.
func (c *compiler) addObjective() {
	carbonPrice := c.st.Carbon.PriceUSDPerTon
	captureCredit := c.st.Carbon.CaptureCreditUSDPerTon

	// Utility of served demand, plus the carbon tax that demand avoids by
	// switching to hydrogen. Price probes carry zero avoided emissions.
	for _, n := range c.sets.Consumers {
		name := NodeVar(VarConsH, n.Name)
		c.cost(name, n.Consumer.BreakevenPrice)
		c.cost(name, n.Consumer.AvoidedEmissions*carbonPrice)
	}

	// Capture credits: new thermal plants for their built-in capture,
	// retrofits for the CO2 they remove.
	for _, p := range c.sets.NewThermal {
		c.cost(NodeVar(VarProdH, p.Name), c.st.Carbon.BaselineSMRRate*p.Producer.CaptureRate*captureCredit)
	}
	for slot := 1; slot <= 2; slot++ {
		for _, p := range c.sets.Existing {
			c.cost(NodeVar(ccsCapturedFamily(slot), p.Name), captureCredit)
		}
	}

	// Clean-production tax credits, new builds and retrofitted throughput.
	for _, p := range c.sets.New {
		c.cost(NodeVar(VarProdH, p.Name), p.Producer.TaxCreditPerTon)
	}
	for slot := 1; slot <= 2; slot++ {
		opt := c.ccsOption(slot)
		for _, p := range c.sets.Existing {
			c.cost(NodeVar(ccsCapacityFamily(slot), p.Name), opt.TaxCreditPerTon)
		}
	}

	// Production operating and capital costs.
	for _, p := range c.sets.Producers {
		spec := p.Producer
		c.cost(NodeVar(VarProdH, p.Name), -(spec.VariablePerTon + spec.ElectricityPerTon + spec.GasPerTon))
		c.cost(NodeVar(VarProdCapacity, p.Name), -spec.CapitalPerTonPerDay*c.scale)
	}

	// Carbon tax on new production; retrofitted throughput pays on what
	// escapes capture.
	for _, p := range c.sets.New {
		c.cost(NodeVar(VarProdH, p.Name), -p.Producer.EmissionRate*carbonPrice)
	}
	for slot := 1; slot <= 2; slot++ {
		opt := c.ccsOption(slot)
		for _, p := range c.sets.Existing {
			c.cost(NodeVar(ccsCapacityFamily(slot), p.Name),
				-p.Producer.EmissionRate*(1-opt.CaptureFraction)*carbonPrice)
		}
	}

	// Retrofit operating cost per tonne CO2 captured.
	for slot := 1; slot <= 2; slot++ {
		opt := c.ccsOption(slot)
		for _, p := range c.sets.Existing {
			c.cost(NodeVar(ccsCapturedFamily(slot), p.Name), -opt.VariablePerTonCO2)
		}
	}

	// Distribution operating and capital costs.
	for _, a := range c.sets.Distribution {
		c.cost(ArcVar(VarDistH, a.Start, a.End), -a.VariablePerTon)
		c.cost(ArcVar(VarDistCapacity, a.Start, a.End), -a.CapitalPerUnit*c.scale)
	}

	// Conversion operating cost is priced on installed throughput, capital
	// on capacity.
	for _, cv := range c.sets.Converters {
		spec := cv.Converter
		c.cost(NodeVar(VarConvCapacity, cv.Name), -spec.Utilization*(spec.VariablePerTon+spec.ElectricityPerTon))
		c.cost(NodeVar(VarConvCapacity, cv.Name), -spec.CapitalPerTonPerDay*c.scale)
	}
}
