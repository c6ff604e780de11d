package model

import (
	"github.com/h2plan/h2plan/pkg/network"
	"github.com/h2plan/h2plan/pkg/scenario"
)

// Sets are the node and arc groupings the program is indexed over. They
// are pure functions of the network's class tags, computed once per
// compile, with every slice in network insertion order.
type Sets struct {
	// Producers is every producer node, partitioned below.
	Producers []*network.Node
	Existing  []*network.Node
	New       []*network.Node
	// NewThermal and NewElectric partition New by production kind.
	NewThermal  []*network.Node
	NewElectric []*network.Node

	// Consumers are demand-sector nodes plus price probes.
	Consumers []*network.Node

	// Converters is every converter node; FuelStations is the subset
	// whose technology dispenses fuel and is eligible for subsidy.
	Converters   []*network.Node
	FuelStations []*network.Node

	// Trucks are the truck-fleet attachment points, one per hub and
	// fleet technology.
	Trucks []*network.Node

	// Arcs is every arc. Distribution is the costed subset (price-probe
	// feeds excluded); DistributionExisting the pre-existing pipelines.
	Arcs                 []*network.Arc
	Distribution         []*network.Arc
	DistributionExisting []*network.Arc

	// ConsumerArcs feed demand sectors; ConverterArcs touch a converter
	// on either end.
	ConsumerArcs  []*network.Arc
	ConverterArcs []*network.Arc
}

// BuildSets classifies every node and arc of the network.
func BuildSets(net *network.Network) Sets {
	var s Sets

	for _, n := range net.Nodes() {
		switch n.Class {
		case network.ClassProducer:
			s.Producers = append(s.Producers, n)
			if n.Producer.Existing {
				s.Existing = append(s.Existing, n)
				continue
			}
			s.New = append(s.New, n)
			if n.Producer.Kind == scenario.ProductionThermal {
				s.NewThermal = append(s.NewThermal, n)
			} else {
				s.NewElectric = append(s.NewElectric, n)
			}
		case network.ClassDemandSector, network.ClassPriceProbe:
			s.Consumers = append(s.Consumers, n)
		case network.ClassConverter:
			s.Converters = append(s.Converters, n)
			if n.Converter.FuelDispenser {
				s.FuelStations = append(s.FuelStations, n)
			}
		case network.ClassDistribution:
			if n.Truck {
				s.Trucks = append(s.Trucks, n)
			}
		}
	}

	for _, a := range net.Arcs() {
		s.Arcs = append(s.Arcs, a)
		if a.Costed() {
			s.Distribution = append(s.Distribution, a)
		}
		if a.Existing {
			s.DistributionExisting = append(s.DistributionExisting, a)
		}
		if a.Class == network.ArcFlowToDemandSector {
			s.ConsumerArcs = append(s.ConsumerArcs, a)
		}
		if touchesConverter(net, a) {
			s.ConverterArcs = append(s.ConverterArcs, a)
		}
	}
	return s
}

func touchesConverter(net *network.Network, a *network.Arc) bool {
	if n, ok := net.Node(a.Start); ok && n.Class == network.ClassConverter {
		return true
	}
	if n, ok := net.Node(a.End); ok && n.Class == network.ClassConverter {
		return true
	}
	return false
}
