package model

// Variable families. A column name is the family applied to a node or
// arc key, e.g. "prod_h[houston_production_smr]" or
// "dist_h[houston_dist_pipelineLowPurity->dallas_dist_pipelineLowPurity]".
// The decomposer reads solutions back through these same names.
const (
	VarDistCapacity = "dist_capacity"
	VarDistH        = "dist_h"

	VarProdExists   = "prod_exists"
	VarProdCapacity = "prod_capacity"
	VarProdH        = "prod_h"
	VarProdCHECs    = "prod_checs"

	VarConvCapacity = "conv_capacity"

	VarConsH     = "cons_h"
	VarConsCHECs = "cons_checs"

	VarCCS1Built      = "ccs1_built"
	VarCCS2Built      = "ccs2_built"
	VarCCS1Captured   = "ccs1_co2_captured"
	VarCCS2Captured   = "ccs2_co2_captured"
	VarCCS1CapacityH2 = "ccs1_capacity_h2"
	VarCCS2CapacityH2 = "ccs2_capacity_h2"
	VarCCS1CHECs      = "ccs1_checs"
	VarCCS2CHECs      = "ccs2_checs"

	VarSubsidy = "fuelStation_cost_capital_subsidy"
)

// NodeVar names the column for a family indexed by one node.
func NodeVar(family, node string) string {
	return family + "[" + node + "]"
}

// ArcVar names the column for a family indexed by one arc.
func ArcVar(family, start, end string) string {
	return family + "[" + start + "->" + end + "]"
}

// Per-slot family lookups. The program has exactly two retrofit slots.

func ccsBuiltFamily(slot int) string {
	if slot == 1 {
		return VarCCS1Built
	}
	return VarCCS2Built
}

func ccsCapturedFamily(slot int) string {
	if slot == 1 {
		return VarCCS1Captured
	}
	return VarCCS2Captured
}

func ccsCapacityFamily(slot int) string {
	if slot == 1 {
		return VarCCS1CapacityH2
	}
	return VarCCS2CapacityH2
}

func ccsCHECsFamily(slot int) string {
	if slot == 1 {
		return VarCCS1CHECs
	}
	return VarCCS2CHECs
}
