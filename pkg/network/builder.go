package network

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/h2plan/h2plan/pkg/scenario"
)

// builder accumulates the network and the scenario indexes while synthesis
// runs. Build is the only entry point.
type builder struct {
	sc  *scenario.Scenario
	net *Network

	hubs     map[string]*scenario.Hub
	prods    map[string]*scenario.ProductionTechnology
	sectors  map[string]*scenario.DemandSector
	pipeline scenario.DistributionTechnology
	trucks   []scenario.DistributionTechnology
}

// Build synthesizes the directed flow network for a scenario. It validates
// the scenario first and fails without a partial network on any unresolved
// reference.
func Build(sc *scenario.Scenario) (*Network, error) {
	if err := sc.Validate(); err != nil {
		return nil, NewError("build").Context("scenario validation").Cause(err).Err()
	}

	b := &builder{
		sc:      sc,
		net:     newNetwork(),
		hubs:    make(map[string]*scenario.Hub),
		prods:   make(map[string]*scenario.ProductionTechnology),
		sectors: make(map[string]*scenario.DemandSector),
	}

	for i := range sc.Hubs {
		b.hubs[sc.Hubs[i].Name] = &sc.Hubs[i]
	}
	for i := range sc.Production {
		b.prods[sc.Production[i].Name] = &sc.Production[i]
	}
	for i := range sc.Demand {
		b.sectors[sc.Demand[i].Name] = &sc.Demand[i]
	}

	pipe, ok := sc.Pipeline()
	if !ok {
		return nil, NewError("build").Technology("pipeline").Cause(ErrMissingPipeline).Err()
	}
	b.pipeline = pipe
	b.trucks = sc.Trucks()

	if err := b.checkReferences(); err != nil {
		return nil, err
	}

	for i := range sc.Hubs {
		if err := b.scaffoldHub(&sc.Hubs[i]); err != nil {
			return nil, err
		}
	}
	if err := b.connectRoutes(); err != nil {
		return nil, err
	}
	if err := b.addProducers(); err != nil {
		return nil, err
	}
	if err := b.addExistingProducers(); err != nil {
		return nil, err
	}
	if err := b.spliceConverters(); err != nil {
		return nil, err
	}
	if err := b.addPriceProbes(); err != nil {
		return nil, err
	}

	b.net.hubs = sc.HubNames()
	return b.net, nil
}

// checkReferences resolves every cross-table name before any node exists.
func (b *builder) checkReferences() error {
	for i := range b.sc.Hubs {
		h := &b.sc.Hubs[i]
		for tech := range h.Build {
			if _, ok := b.prods[tech]; !ok {
				return NewError("checkReferences").Hub(h.Name).
					Context("build flag for " + tech).Cause(ErrUnknownTechnology).Err()
			}
		}
		for sector := range h.Demand {
			if _, ok := b.sectors[sector]; !ok {
				return NewError("checkReferences").Hub(h.Name).
					Context("demand for " + sector).Cause(ErrUnknownSector).Err()
			}
		}
	}
	for i := range b.sc.Existing {
		e := &b.sc.Existing[i]
		if _, ok := b.hubs[e.Hub]; !ok {
			return NewError("checkReferences").Node(e.Hub + "_production_" + e.Technology + "Existing").
				Cause(ErrUnknownHub).Err()
		}
		if _, ok := b.prods[e.Technology]; !ok {
			return NewError("checkReferences").Technology(e.Technology).
				Context("existing producer at " + e.Hub).Cause(ErrUnknownTechnology).Err()
		}
	}
	for i := range b.sc.Routes {
		r := &b.sc.Routes[i]
		if _, ok := b.hubs[r.Start]; !ok {
			return NewError("checkReferences").Route(r.Start, r.End).Cause(ErrUnknownHub).Err()
		}
		if _, ok := b.hubs[r.End]; !ok {
			return NewError("checkReferences").Route(r.Start, r.End).Cause(ErrUnknownHub).Err()
		}
	}
	if b.sc.Settings.Prices.Enabled {
		for _, h := range b.sc.Settings.Prices.ResolveHubs(b.sc.HubNames()) {
			if _, ok := b.hubs[h]; !ok {
				return NewError("checkReferences").Hub(h).Context("price probe").Cause(ErrUnknownHub).Err()
			}
		}
	}
	return nil
}

func centerName(hub string, p scenario.Purity) string {
	return hub + "_center_" + p.String()
}

func distName(hub, carrier string) string {
	return hub + "_dist_" + carrier
}

func demandName(hub string, c scenario.DemandCategory) string {
	return hub + "_demand_" + c.String()
}

func pipelineCarrier(p scenario.Purity) string {
	if p == scenario.PurityHigh {
		return "pipelineHighPurity"
	}
	return "pipelineLowPurity"
}

func probeTag(c scenario.DemandCategory) string {
	s := c.String()
	return "price" + strings.ToUpper(s[:1]) + s[1:]
}

func formatProbePrice(p float64) string {
	return strconv.FormatFloat(p, 'g', -1, 64)
}

// freeFlowArc returns an arc that routes hydrogen without cost.
func freeFlowArc(start, end string, class ArcClass) *Arc {
	return &Arc{
		Start:     start,
		End:       end,
		Class:     class,
		FlowLimit: FreeFlowLimit,
	}
}

// scaffoldHub creates a hub's internal plumbing: centers, carrier
// attachment points, demand aggregation, sector consumers, and the
// free-flow arcs between them.
func (b *builder) scaffoldHub(h *scenario.Hub) error {
	g := b.net

	for _, p := range []scenario.Purity{scenario.PurityLow, scenario.PurityHigh} {
		if err := g.addNode(&Node{Name: centerName(h.Name, p), Class: ClassCenter, Hub: h.Name, Purity: p}); err != nil {
			return err
		}
		if err := g.addNode(&Node{Name: distName(h.Name, pipelineCarrier(p)), Class: ClassDistribution, Hub: h.Name, Carrier: pipelineCarrier(p)}); err != nil {
			return err
		}
	}
	for _, t := range b.trucks {
		if err := g.addNode(&Node{Name: distName(h.Name, t.Name), Class: ClassDistribution, Hub: h.Name, Carrier: t.Name, Truck: true}); err != nil {
			return err
		}
	}
	for _, c := range scenario.DemandCategories() {
		if err := g.addNode(&Node{Name: demandName(h.Name, c), Class: ClassDemand, Hub: h.Name, Category: c}); err != nil {
			return err
		}
	}

	// Center to pipeline attachment and back, per purity.
	for _, p := range []scenario.Purity{scenario.PurityLow, scenario.PurityHigh} {
		center := centerName(h.Name, p)
		dist := distName(h.Name, pipelineCarrier(p))
		if err := g.addArc(freeFlowArc(center, dist, ArcFlowWithinHub)); err != nil {
			return err
		}
		if err := g.addArc(freeFlowArc(dist, center, ArcReverseFlowWithinHub)); err != nil {
			return err
		}
	}

	// Truck depots hang off the high-purity center and carry the fleet's
	// capital and fixed costs.
	for _, t := range b.trucks {
		depot := &Arc{
			Start:              centerName(h.Name, scenario.PurityHigh),
			End:                distName(h.Name, t.Name),
			Class:              ArcHubDepot,
			Carrier:            t.Name,
			CapitalPerUnit:     t.CapitalPerUnit * h.CapitalMultiplier,
			FixedPerUnitPerDay: t.FixedPerUnitPerDay * h.CapitalMultiplier,
			FlowLimit:          t.FlowLimitPerDay,
		}
		if err := g.addArc(depot); err != nil {
			return err
		}
	}

	// Delivery arcs: trucks and the high-purity pipeline reach every
	// demand category, the low-purity pipeline only low-purity demand.
	for _, t := range b.trucks {
		for _, c := range scenario.DemandCategories() {
			a := freeFlowArc(distName(h.Name, t.Name), demandName(h.Name, c), ArcFlowToDemand)
			a.FlowLimit = t.FlowLimitPerDay
			if err := g.addArc(a); err != nil {
				return err
			}
		}
	}
	for _, c := range scenario.DemandCategories() {
		a := freeFlowArc(distName(h.Name, pipelineCarrier(scenario.PurityHigh)), demandName(h.Name, c), ArcFlowToDemand)
		a.FlowLimit = b.pipeline.FlowLimitPerDay
		if err := g.addArc(a); err != nil {
			return err
		}
	}
	lowPipe := freeFlowArc(distName(h.Name, pipelineCarrier(scenario.PurityLow)), demandName(h.Name, scenario.DemandLowPurity), ArcFlowToDemand)
	lowPipe.FlowLimit = b.pipeline.FlowLimitPerDay
	if err := g.addArc(lowPipe); err != nil {
		return err
	}

	// Purifier seam.
	if err := g.addArc(freeFlowArc(centerName(h.Name, scenario.PurityLow), centerName(h.Name, scenario.PurityHigh), ArcThroughPurifier)); err != nil {
		return err
	}

	return b.addDemandSectors(h)
}

// addDemandSectors splits each sector's demand at the hub into a
// carbon-indifferent and a carbon-sensitive consumer.
func (b *builder) addDemandSectors(h *scenario.Hub) error {
	g := b.net
	for i := range b.sc.Demand {
		sector := &b.sc.Demand[i]
		demand := h.Demand[sector.Name]
		if demand <= 0 {
			continue
		}

		avoided := sector.BreakevenCarbonIntensity * scenario.GramsPerMJToTonsPerTon
		plain := &Node{
			Name:   h.Name + "_demandSector_" + sector.Name,
			Class:  ClassDemandSector,
			Hub:    h.Name,
			Sector: sector.Name,
			Consumer: &ConsumerSpec{
				Size:             demand * (1 - sector.CarbonSensitiveFraction),
				BreakevenPrice:   sector.BreakevenPrice,
				AvoidedEmissions: avoided,
			},
		}
		sensitive := &Node{
			Name:   h.Name + "_demandSector_" + sector.Name + "_carbonSensitive",
			Class:  ClassDemandSector,
			Hub:    h.Name,
			Sector: sector.Name,
			Consumer: &ConsumerSpec{
				Size:             demand * sector.CarbonSensitiveFraction,
				BreakevenPrice:   sector.BreakevenPrice,
				CarbonSensitive:  true,
				AvoidedEmissions: avoided,
			},
		}
		if err := g.addNode(plain); err != nil {
			return err
		}
		if err := g.addNode(sensitive); err != nil {
			return err
		}

		source := demandName(h.Name, sector.Category)
		if err := g.addArc(freeFlowArc(source, plain.Name, ArcFlowToDemandSector)); err != nil {
			return err
		}
		if err := g.addArc(freeFlowArc(source, sensitive.Name, ArcFlowToDemandSector)); err != nil {
			return err
		}
	}
	return nil
}

// connectRoutes adds inter-hub pipeline and truck arcs, both directions
// per route record.
func (b *builder) connectRoutes() error {
	g := b.net
	for i := range b.sc.Routes {
		r := &b.sc.Routes[i]
		start := b.hubs[r.Start]
		end := b.hubs[r.End]
		meanCapital := (start.CapitalMultiplier + end.CapitalMultiplier) / 2

		for _, p := range []scenario.Purity{scenario.PurityLow, scenario.PurityHigh} {
			carrier := pipelineCarrier(p)
			// Only low-purity lines can pre-exist; high-purity lines
			// are always new builds.
			existing := r.ExistingPipeline && p == scenario.PurityLow
			for _, pair := range [][2]string{{r.Start, r.End}, {r.End, r.Start}} {
				a := &Arc{
					Start:              distName(pair[0], carrier),
					End:                distName(pair[1], carrier),
					Class:              ArcPipeline,
					Carrier:            carrier,
					KmLength:           r.RoadKm,
					CapitalPerUnit:     b.pipeline.CapitalPerUnit * r.RoadKm * meanCapital,
					FixedPerUnitPerDay: b.pipeline.FixedPerUnitPerDay * r.RoadKm,
					VariablePerTon:     b.pipeline.VariablePerKmTon * r.RoadKm,
					FlowLimit:          b.pipeline.FlowLimitPerDay,
					Existing:           existing,
				}
				if err := g.addArc(a); err != nil {
					return err
				}
			}
		}

		for _, t := range b.trucks {
			for _, pair := range [][2]string{{r.Start, r.End}, {r.End, r.Start}} {
				a := &Arc{
					Start:          distName(pair[0], t.Name),
					End:            distName(pair[1], t.Name),
					Class:          ArcTruckRoute,
					Carrier:        t.Name,
					KmLength:       r.RoadKm,
					VariablePerTon: t.VariablePerKmTon * r.RoadKm,
					FlowLimit:      t.FlowLimitPerDay,
				}
				if err := g.addArc(a); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// addProducers creates a candidate producer at each hub that permits the
// technology, with regional multipliers applied to its reference costs.
func (b *builder) addProducers() error {
	g := b.net
	for i := range b.sc.Hubs {
		h := &b.sc.Hubs[i]
		for j := range b.sc.Production {
			tech := &b.sc.Production[j]
			if !h.Build[tech.Name] {
				continue
			}

			spec := &ProducerSpec{
				Technology:          tech.Name,
				Kind:                tech.Kind,
				Purity:              tech.Purity,
				CapitalPerTonPerDay: tech.CapitalPerTonPerDay * h.CapitalMultiplier,
				FixedPerTon:         tech.FixedPerTon,
				VariablePerTon:      tech.VariablePerTon,
				ElectricityPerTon:   tech.ElectricityPerTon * h.ElectricityMultiplier,
				GasPerTon:           tech.GasPerTon * h.GasMultiplier,
				Utilization:         tech.Utilization,
				MinCapacity:         tech.MinCapacity,
				MaxCapacity:         tech.MaxCapacity,
				EmissionRate:        tech.EmissionRate,
				CHECPerTon:          b.checYield(tech),
				CaptureRate:         tech.CaptureRate,
				TaxCreditPerTon:     tech.TaxCreditPerTon,
				CanCCS1:             tech.CanCCS1,
				CanCCS2:             tech.CanCCS2,
			}
			node := &Node{
				Name:     h.Name + "_production_" + tech.Name,
				Class:    ClassProducer,
				Hub:      h.Name,
				Producer: spec,
			}
			if err := g.addNode(node); err != nil {
				return err
			}
			if err := g.addArc(freeFlowArc(node.Name, centerName(h.Name, tech.Purity), ArcFlowFromProducer)); err != nil {
				return err
			}
		}
	}
	return nil
}

// checYield is the clean-hydrogen credit a new plant earns per tonne.
// Thermal plants earn their capture fraction; electric plants earn the
// share of baseline SMR emissions their grid power avoids.
func (b *builder) checYield(tech *scenario.ProductionTechnology) float64 {
	if tech.Kind == scenario.ProductionThermal {
		return tech.CaptureRate
	}
	return 1 - tech.GridIntensity/b.sc.Settings.Carbon.BaselineSMRRate
}

// addExistingProducers creates fixed plants from the existing-producer
// table. Their costs are as recorded, with no regional multipliers.
func (b *builder) addExistingProducers() error {
	g := b.net
	for i := range b.sc.Existing {
		e := &b.sc.Existing[i]
		tech := b.prods[e.Technology]

		spec := &ProducerSpec{
			Technology:        e.Technology,
			Kind:              tech.Kind,
			Purity:            tech.Purity,
			Existing:          true,
			FixedPerTon:       e.FixedPerTon,
			VariablePerTon:    e.VariablePerTon,
			ElectricityPerTon: e.ElectricityPerTon,
			GasPerTon:         e.GasPerTon,
			Utilization:       e.Utilization,
			Capacity:          e.Capacity,
			EmissionRate:      e.EmissionRate,
			CanCCS1:           e.CanCCS1,
			CanCCS2:           e.CanCCS2,
		}
		node := &Node{
			Name:     e.Hub + "_production_" + e.Technology + "Existing",
			Class:    ClassProducer,
			Hub:      e.Hub,
			Producer: spec,
		}
		if err := g.addNode(node); err != nil {
			return err
		}
		if err := g.addArc(freeFlowArc(node.Name, centerName(e.Hub, tech.Purity), ArcFlowFromProducer)); err != nil {
			return err
		}
	}
	return nil
}

// splice records one rewrite: a site node whose outbound arcs to matching
// downstream nodes get routed through a new converter.
type splice struct {
	site *Node
	arcs []*Arc
}

// spliceConverters rewrites the network for each conversion rule in two
// phases: collect every match against a frozen snapshot, then mutate.
func (b *builder) spliceConverters() error {
	for i := range b.sc.Conversion {
		conv := &b.sc.Conversion[i]
		if conv.Disabled() {
			continue
		}
		if err := b.spliceOne(conv); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) spliceOne(conv *scenario.ConversionTechnology) error {
	g := b.net

	// Phase one: match sites and arcs against a snapshot. Nothing is
	// mutated until every match is known.
	snapshot := make([]*Node, len(g.nodes))
	copy(snapshot, g.nodes)

	var splices []splice
	matchedUp, matchedDown := false, false
	for _, n := range snapshot {
		if n.ClassKey() == conv.DownstreamClass {
			matchedDown = true
		}
		if n.ClassKey() != conv.UpstreamClass {
			continue
		}
		matchedUp = true
		s := splice{site: n}
		for _, a := range g.OutArcs(n.Name) {
			endNode, ok := g.Node(a.End)
			if !ok {
				return NewError("spliceConverters").Arc(a.Start, a.End).Cause(ErrNodeNotFound).Err()
			}
			if endNode.ClassKey() == conv.DownstreamClass {
				s.arcs = append(s.arcs, a)
			}
		}
		splices = append(splices, s)
	}
	if !matchedUp {
		return NewError("spliceConverters").Converter(conv.Name).
			Context("upstream class " + conv.UpstreamClass).Cause(ErrUnknownClass).Err()
	}
	if !matchedDown {
		return NewError("spliceConverters").Converter(conv.Name).
			Context("downstream class " + conv.DownstreamClass).Cause(ErrUnknownClass).Err()
	}

	// Phase two: rewrite.
	for _, s := range splices {
		hub, ok := b.hubs[s.site.Hub]
		if !ok {
			return NewError("spliceConverters").Hub(s.site.Hub).Cause(ErrUnknownHub).Err()
		}

		cv := &Node{
			Name:  s.site.Hub + "_converter_" + conv.Name,
			Class: ClassConverter,
			Hub:   s.site.Hub,
			Converter: &ConverterSpec{
				Technology:          conv.Name,
				CapitalPerTonPerDay: conv.CapitalPerTonPerDay * hub.CapitalMultiplier,
				FixedPerTonPerDay:   conv.FixedPerTonPerDay,
				VariablePerTon:      conv.VariablePerTon,
				ElectricityPerTon:   conv.ElectricityPerTon * hub.ElectricityMultiplier,
				Utilization:         conv.Utilization,
				FuelDispenser:       conv.FuelDispenser,
			},
		}
		if err := g.addNode(cv); err != nil {
			return err
		}

		inlet := freeFlowArc(s.site.Name, cv.Name, ArcConverterInlet)
		inlet.Carrier = conv.Name
		if len(s.arcs) == 1 {
			inlet.FlowLimit = s.arcs[0].FlowLimit
		}
		if err := g.addArc(inlet); err != nil {
			return err
		}

		for _, a := range s.arcs {
			moved := *a
			moved.Start = cv.Name
			g.removeArc(a)
			if err := g.addArc(&moved); err != nil {
				return err
			}
		}
	}
	return nil
}

// addPriceProbes attaches the synthetic consumers used to discover
// breakeven delivered prices.
func (b *builder) addPriceProbes() error {
	if !b.sc.Settings.Prices.Enabled {
		return nil
	}
	g := b.net
	ladder := b.sc.Settings.Prices.Ladder()
	for _, hub := range b.sc.Settings.Prices.ResolveHubs(b.sc.HubNames()) {
		for _, c := range scenario.DemandCategories() {
			for _, price := range ladder {
				probe := &Node{
					Name:     fmt.Sprintf("%s_%s_%s", hub, probeTag(c), formatProbePrice(price)),
					Class:    ClassPriceProbe,
					Hub:      hub,
					Category: c,
					Consumer: &ConsumerSpec{
						Size:           b.sc.Settings.Prices.ProbeDemand,
						BreakevenPrice: price * 1000, // USD/kg to USD/tonne
					},
				}
				if err := g.addNode(probe); err != nil {
					return err
				}
				a := freeFlowArc(demandName(hub, c), probe.Name, ArcPriceProbe)
				if err := g.addArc(a); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
