package network

import (
	"fmt"

	"github.com/h2plan/h2plan/pkg/scenario"
)

// FreeFlowLimit is the flow bound placed on arcs that only route hydrogen
// within a hub and carry no cost of their own.
const FreeFlowLimit = 99999999.9

// NodeClass identifies what role a node plays in the flow network.
type NodeClass uint8

const (
	// ClassCenter is a hub's internal junction for one purity grade.
	ClassCenter NodeClass = iota
	// ClassDistribution is a hub's attachment point for one carrier
	// (a pipeline grade or a truck fleet).
	ClassDistribution
	// ClassDemand aggregates a hub's demand for one delivery category.
	ClassDemand
	// ClassDemandSector is a real consumer: one sector's demand slice.
	ClassDemandSector
	// ClassProducer makes hydrogen, either a candidate build or an
	// existing plant.
	ClassProducer
	// ClassConverter is a spliced-in processing step.
	ClassConverter
	// ClassPriceProbe is a synthetic consumer used for price discovery.
	ClassPriceProbe
)

func (c NodeClass) String() string {
	switch c {
	case ClassCenter:
		return "center"
	case ClassDistribution:
		return "dist"
	case ClassDemand:
		return "demand"
	case ClassDemandSector:
		return "demandSector"
	case ClassProducer:
		return "producer"
	case ClassConverter:
		return "converter"
	case ClassPriceProbe:
		return "price"
	default:
		return "unknown"
	}
}

// ArcClass identifies why an arc exists.
type ArcClass uint8

const (
	// ArcFlowWithinHub moves hydrogen from a hub center to its
	// distribution attachment point.
	ArcFlowWithinHub ArcClass = iota
	// ArcReverseFlowWithinHub moves arriving hydrogen back to the center.
	ArcReverseFlowWithinHub
	// ArcHubDepot loads a hub's truck fleet; fleet capital lives here.
	ArcHubDepot
	// ArcFlowToDemand delivers from a carrier to a demand category.
	ArcFlowToDemand
	// ArcFlowToDemandSector hands delivered hydrogen to one sector.
	ArcFlowToDemandSector
	// ArcFlowFromProducer injects production into a hub center.
	ArcFlowFromProducer
	// ArcThroughPurifier upgrades low-purity to high-purity hydrogen.
	ArcThroughPurifier
	// ArcPipeline is an inter-hub pipeline of one purity grade.
	ArcPipeline
	// ArcTruckRoute is an inter-hub truck movement.
	ArcTruckRoute
	// ArcConverterInlet feeds a spliced-in converter.
	ArcConverterInlet
	// ArcPriceProbe feeds a price-probe consumer and carries no costs.
	ArcPriceProbe
)

func (c ArcClass) String() string {
	switch c {
	case ArcFlowWithinHub:
		return "flow_within_hub"
	case ArcReverseFlowWithinHub:
		return "reverse_flow_within_hub"
	case ArcHubDepot:
		return "hub_depot"
	case ArcFlowToDemand:
		return "flow_to_demand_node"
	case ArcFlowToDemandSector:
		return "flow_to_demand_sector"
	case ArcFlowFromProducer:
		return "flow_from_producer"
	case ArcThroughPurifier:
		return "flow_through_purifier"
	case ArcPipeline:
		return "arc_pipeline"
	case ArcTruckRoute:
		return "arc_truck"
	case ArcConverterInlet:
		return "converter_inlet"
	case ArcPriceProbe:
		return "price_probe"
	default:
		return "unknown"
	}
}

// ProducerSpec carries the economics of a producer node.
type ProducerSpec struct {
	Technology string
	Kind       scenario.ProductionKind
	Purity     scenario.Purity
	Existing   bool

	CapitalPerTonPerDay float64
	FixedPerTon         float64
	VariablePerTon      float64
	ElectricityPerTon   float64
	GasPerTon           float64
	Utilization         float64

	// MinCapacity and MaxCapacity bracket new builds.
	MinCapacity float64
	MaxCapacity float64
	// Capacity is the recorded size of an existing plant.
	Capacity float64

	EmissionRate float64
	// CHECPerTon is the clean-hydrogen credit earned per tonne produced.
	CHECPerTon  float64
	CaptureRate float64

	TaxCreditPerTon float64
	CanCCS1         bool
	CanCCS2         bool
}

// ConsumerSpec carries the economics of a demand-sector or price-probe node.
type ConsumerSpec struct {
	// Size is the most hydrogen this consumer will take, tonnes/day.
	Size float64
	// BreakevenPrice is USD per tonne the consumer will pay.
	BreakevenPrice float64
	// CarbonSensitive consumers only take CHEC-backed hydrogen.
	CarbonSensitive bool
	// AvoidedEmissions is tonnes CO2 avoided per tonne H2 delivered.
	AvoidedEmissions float64
}

// ConverterSpec carries the economics of a spliced-in converter node.
type ConverterSpec struct {
	Technology string

	CapitalPerTonPerDay float64
	FixedPerTonPerDay   float64
	VariablePerTon      float64
	ElectricityPerTon   float64
	Utilization         float64

	// FuelDispenser converters are eligible for capital subsidies.
	FuelDispenser bool
}

// Node is one vertex of the flow network. Exactly one payload pointer is
// set for producer, consumer, and converter classes; the rest carry their
// role in the qualifier fields.
type Node struct {
	Name  string
	Class NodeClass
	Hub   string

	// Purity qualifies center nodes.
	Purity scenario.Purity
	// Carrier qualifies distribution nodes ("pipelineLowPurity",
	// "pipelineHighPurity", or a truck technology name).
	Carrier string
	// Truck is set on distribution nodes that represent a fleet.
	Truck bool
	// Category qualifies demand and price-probe nodes.
	Category scenario.DemandCategory
	// Sector qualifies demand-sector nodes.
	Sector string

	Producer  *ProducerSpec
	Consumer  *ConsumerSpec
	Converter *ConverterSpec
}

// ClassKey returns the canonical class string conversion rules match
// against, e.g. "center_highPurity" or "dist_truckLiquefied".
func (n *Node) ClassKey() string {
	switch n.Class {
	case ClassCenter:
		return "center_" + n.Purity.String()
	case ClassDistribution:
		return "dist_" + n.Carrier
	case ClassDemand:
		return "demand_" + n.Category.String()
	case ClassDemandSector:
		return "demandSector_" + n.Sector
	case ClassProducer:
		return "producer"
	case ClassConverter:
		return "converter_" + n.Converter.Technology
	case ClassPriceProbe:
		return "price"
	default:
		return "unknown"
	}
}

// Arc is one directed edge of the flow network. Cost fields are zero on
// free-flow arcs; price-probe arcs carry no costs at all.
type Arc struct {
	Start string
	End   string
	Class ArcClass

	// Carrier qualifies depot, pipeline, truck-route, and converter-inlet
	// arcs with the technology they belong to.
	Carrier string

	KmLength           float64
	CapitalPerUnit     float64
	FixedPerUnitPerDay float64
	VariablePerTon     float64
	FlowLimit          float64

	// Existing marks pipeline segments that are already in the ground.
	Existing bool
}

// Costed reports whether the arc participates in distribution costing and
// capacity accounting. Price-probe arcs do not.
func (a *Arc) Costed() bool {
	return a.Class != ArcPriceProbe
}

// Key identifies the arc by its endpoints.
func (a *Arc) Key() string {
	return a.Start + arcKeySep + a.End
}

const arcKeySep = "\x1f"

// Network is a frozen directed flow network. It is built once by Build and
// read-only afterwards; iteration order is always insertion order.
type Network struct {
	nodes     []*Node
	nodeIndex map[string]int
	arcs      []*Arc
	arcIndex  map[string]int
	out       map[string][]*Arc
	in        map[string][]*Arc
	hubs      []string
}

func newNetwork() *Network {
	return &Network{
		nodeIndex: make(map[string]int),
		arcIndex:  make(map[string]int),
		out:       make(map[string][]*Arc),
		in:        make(map[string][]*Arc),
	}
}

func (g *Network) addNode(n *Node) error {
	if _, ok := g.nodeIndex[n.Name]; ok {
		return NewError("addNode").Node(n.Name).Cause(ErrDuplicateNode).Err()
	}
	g.nodeIndex[n.Name] = len(g.nodes)
	g.nodes = append(g.nodes, n)
	return nil
}

func (g *Network) addArc(a *Arc) error {
	if _, ok := g.nodeIndex[a.Start]; !ok {
		return NewError("addArc").Arc(a.Start, a.End).Cause(ErrNodeNotFound).Err()
	}
	if _, ok := g.nodeIndex[a.End]; !ok {
		return NewError("addArc").Arc(a.Start, a.End).Cause(ErrNodeNotFound).Err()
	}
	if _, ok := g.arcIndex[a.Key()]; ok {
		return NewError("addArc").Arc(a.Start, a.End).Cause(ErrDuplicateArc).Err()
	}
	g.arcIndex[a.Key()] = len(g.arcs)
	g.arcs = append(g.arcs, a)
	g.out[a.Start] = append(g.out[a.Start], a)
	g.in[a.End] = append(g.in[a.End], a)
	return nil
}

// removeArc detaches an arc during converter splicing. The arcs slice keeps
// insertion order for the survivors.
func (g *Network) removeArc(a *Arc) {
	idx, ok := g.arcIndex[a.Key()]
	if !ok {
		return
	}
	delete(g.arcIndex, a.Key())
	g.arcs = append(g.arcs[:idx], g.arcs[idx+1:]...)
	for i := idx; i < len(g.arcs); i++ {
		g.arcIndex[g.arcs[i].Key()] = i
	}
	g.out[a.Start] = removeFromList(g.out[a.Start], a)
	g.in[a.End] = removeFromList(g.in[a.End], a)
}

func removeFromList(arcs []*Arc, target *Arc) []*Arc {
	for i, a := range arcs {
		if a == target {
			return append(arcs[:i], arcs[i+1:]...)
		}
	}
	return arcs
}

// Node returns the named node.
func (g *Network) Node(name string) (*Node, bool) {
	idx, ok := g.nodeIndex[name]
	if !ok {
		return nil, false
	}
	return g.nodes[idx], true
}

// Arc returns the arc between the named endpoints.
func (g *Network) Arc(start, end string) (*Arc, bool) {
	idx, ok := g.arcIndex[start+arcKeySep+end]
	if !ok {
		return nil, false
	}
	return g.arcs[idx], true
}

// Nodes returns all nodes in insertion order. Callers must not modify the
// returned slice.
func (g *Network) Nodes() []*Node {
	return g.nodes
}

// Arcs returns all arcs in insertion order. Callers must not modify the
// returned slice.
func (g *Network) Arcs() []*Arc {
	return g.arcs
}

// OutArcs returns the arcs leaving the named node in insertion order.
func (g *Network) OutArcs(name string) []*Arc {
	return g.out[name]
}

// InArcs returns the arcs entering the named node in insertion order.
func (g *Network) InArcs(name string) []*Arc {
	return g.in[name]
}

// Hubs returns hub names in declaration order.
func (g *Network) Hubs() []string {
	return g.hubs
}

// NodeCount returns the number of nodes.
func (g *Network) NodeCount() int {
	return len(g.nodes)
}

// ArcCount returns the number of arcs.
func (g *Network) ArcCount() int {
	return len(g.arcs)
}

// NodesByClass returns nodes of the given class in insertion order.
func (g *Network) NodesByClass(class NodeClass) []*Node {
	var out []*Node
	for _, n := range g.nodes {
		if n.Class == class {
			out = append(out, n)
		}
	}
	return out
}

// String summarizes the network for logs.
func (g *Network) String() string {
	return fmt.Sprintf("network(%d hubs, %d nodes, %d arcs)", len(g.hubs), len(g.nodes), len(g.arcs))
}
