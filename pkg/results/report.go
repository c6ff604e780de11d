package results

import "strings"

// HubDistribution splits a hub's active arcs by direction. Keys are
// "{start}_TO_{end}".
type HubDistribution struct {
	Local    map[string]DistributionRow `json:"local"`
	Outgoing map[string]DistributionRow `json:"outgoing"`
	Incoming map[string]DistributionRow `json:"incoming"`
}

// HubReport is one hub's slice of the solution. Production and conversion
// are keyed by technology, consumption by the consumer's name within the
// hub.
type HubReport struct {
	Production   map[string]ProductionRow  `json:"production"`
	Conversion   map[string]ConversionRow  `json:"conversion"`
	Consumption  map[string]ConsumptionRow `json:"consumption"`
	Distribution HubDistribution           `json:"distribution"`
}

func newHubReport() *HubReport {
	return &HubReport{
		Production:  make(map[string]ProductionRow),
		Conversion:  make(map[string]ConversionRow),
		Consumption: make(map[string]ConsumptionRow),
		Distribution: HubDistribution{
			Local:    make(map[string]DistributionRow),
			Outgoing: make(map[string]DistributionRow),
			Incoming: make(map[string]DistributionRow),
		},
	}
}

// hubReports regroups the flat tables by hub. Arcs between two hubs show
// up twice: outgoing at the start hub and incoming at the end hub.
func (d *decomposer) hubReports(t Tables) map[string]*HubReport {
	reports := make(map[string]*HubReport, len(d.plan.Network().Hubs()))
	for _, hub := range d.plan.Network().Hubs() {
		reports[hub] = newHubReport()
	}

	for _, row := range t.Production {
		if r, ok := reports[row.Hub]; ok {
			r.Production[lastSegment(row.Node)] = row
		}
	}
	for _, row := range t.Conversion {
		if r, ok := reports[row.Hub]; ok {
			r.Conversion[lastSegment(row.Node)] = row
		}
	}
	for _, row := range t.Consumption {
		if r, ok := reports[row.Hub]; ok {
			r.Consumption[strings.TrimPrefix(row.Node, row.Hub+"_")] = row
		}
	}

	for _, row := range t.Distribution {
		start, end := d.hubOf(row.Start), d.hubOf(row.End)
		key := row.Start + "_TO_" + row.End
		if start == end {
			if r, ok := reports[start]; ok {
				r.Distribution.Local[key] = row
			}
			continue
		}
		if r, ok := reports[start]; ok {
			r.Distribution.Outgoing[key] = row
		}
		if r, ok := reports[end]; ok {
			r.Distribution.Incoming[key] = row
		}
	}
	return reports
}

func (d *decomposer) hubOf(nodeName string) string {
	n, ok := d.plan.Network().Node(nodeName)
	if !ok {
		return ""
	}
	return n.Hub
}

func lastSegment(name string) string {
	if i := strings.LastIndex(name, "_"); i >= 0 {
		return name[i+1:]
	}
	return name
}
