// Package cec - Default CEC 2021 residential rule set
// Rules count devices by keyword over the resolved assembly names of the
// default catalog, so custom catalogs should keep similar naming.
package cec

import (
	"fmt"
	"strings"

	"sparkyestimate/core/compliance"
	"sparkyestimate/core/inventory"
	"sparkyestimate/core/types"
)

// Code references
const (
	RefSmoke          = "CEC 32-110 / NBC 9.10.19"
	RefPanel          = "CEC 26-400"
	RefOutdoor        = "CEC 26-724 f)"
	RefExterior       = "CEC 30-102"
	RefGeneral        = "General"
	RefData           = "CEC 60-100"
	RefGFCI           = "CEC 26-700"
	RefExhaust        = "NBC 9.32 / CEC 30-320"
	RefBathroom       = "CEC 26-720 f)"
	RefKitchenCircuit = "CEC 26-654 a)"
	RefRangeHood      = "NBC 9.32"
	RefGarage         = "CEC 26-724 b)"
	RefAFCI           = "CEC 26-656 1)"
	RefOutletsPer     = "CEC 12-3000"
	RefDemand         = "CEC 8-200"
)

// WholeHouse is the location of estimate-wide verdicts
const WholeHouse = "Whole House"

// Thresholds
const (
	// MinSmokeAlarms is the floor for any dwelling
	MinSmokeAlarms = 3

	// MaxOutletsPerCircuit is the CEC 12-3000 limit for 15A and 20A circuits
	MaxOutletsPerCircuit = 12

	// MaxGeneralCircuits is where the device count suggests a larger panel
	MaxGeneralCircuits = 20

	// GFCIMaxAmps is the largest single-pole receptacle circuit needing GFCI
	GFCIMaxAmps = 20
)

// Device keywords matched against resolved assembly names
var (
	smokeKeywords    = []string{"smoke"}
	panelKeywords    = []string{"panel board", "load center"}
	outdoorKeywords  = []string{"outdoor receptacle"}
	exteriorKeywords = []string{"exterior light"}
	dataKeywords     = []string{"data outlet", "coax"}
	gfciKeywords     = []string{"gfci"}
	exhaustKeywords  = []string{"exhaust"}
	switchKeywords   = []string{"switch"}
	lightKeywords    = []string{"recessed", "pot light", "surface mount light", "pendant", "sconce", "exterior light", "track light", "batten", "led panel"}
	receptKeywords   = []string{"receptacle"}
)

// Rules returns the default rule set in evaluation order
func Rules() []compliance.Rule {
	return []compliance.Rule{
		rule("smoke-alarms", smokeAlarms),
		rule("panel-board", panelBoard),
		rule("outdoor-receptacle", outdoorReceptacle),
		rule("exterior-lighting", exteriorLighting),
		rule("doorbell", doorbell),
		rule("thermostat", thermostat),
		rule("data-outlets", dataOutlets),
		rule("wet-room-gfci", wetRoomGFCI),
		rule("bathroom-exhaust", bathroomExhaust),
		rule("bathroom-placement", bathroomPlacement),
		rule("kitchen-requirements", kitchenRequirements),
		rule("garage-requirements", garageRequirements),
		rule("switch-light-ratio", switchLightRatio),
		rule("kitchen-circuit-gfci", kitchenCircuitGFCI),
		rule("bathroom-circuit-gfci", bathroomCircuitGFCI),
		rule("bedroom-circuit-afci", bedroomCircuitAFCI),
		rule("outlets-per-circuit", outletsPerCircuit),
		rule("panel-demand", panelDemand),
		rule("panel-spaces", panelSpaces),
	}
}

func rule(name string, fn func(*compliance.Context) []types.ComplianceRuleResult) compliance.Rule {
	return compliance.RuleFunc{RuleName: name, Fn: fn}
}

func verdict(status types.ComplianceStatus, ref, location, description, recommendation string) types.ComplianceRuleResult {
	return types.ComplianceRuleResult{
		Rule:           ref,
		Location:       location,
		Status:         status,
		Description:    description,
		Recommendation: recommendation,
	}
}

func one(r types.ComplianceRuleResult) []types.ComplianceRuleResult {
	return []types.ComplianceRuleResult{r}
}

func circuitLabel(c types.Circuit) string {
	return fmt.Sprintf("Circuit %d (%s)", c.CircuitNumber, c.Description)
}

// Whole-house checks

func smokeAlarms(ctx *compliance.Context) []types.ComplianceRuleResult {
	bedrooms := len(ctx.Inventory.RoomsOfType(inventory.RoomBedroom))
	required := max(bedrooms+1, MinSmokeAlarms)
	count := ctx.Inventory.Count(smokeKeywords...)

	switch {
	case count >= required:
		return one(verdict(types.StatusPass, RefSmoke, WholeHouse,
			fmt.Sprintf("Smoke/CO detectors: %d (min %d required)", count, required), ""))
	case count > 0:
		return one(verdict(types.StatusWarn, RefSmoke, WholeHouse,
			fmt.Sprintf("Smoke/CO detectors: %d, recommended minimum is %d", count, required),
			fmt.Sprintf("Add %d more smoke/CO detectors (each bedroom, hallway outside bedrooms, each floor)", required-count)))
	default:
		return one(verdict(types.StatusFail, RefSmoke, WholeHouse,
			"No smoke/CO detectors found",
			fmt.Sprintf("Add at least %d hardwired smoke/CO detectors", required)))
	}
}

func panelBoard(ctx *compliance.Context) []types.ComplianceRuleResult {
	if ctx.Inventory.Count(panelKeywords...) >= 1 {
		return one(verdict(types.StatusPass, RefPanel, WholeHouse, "Panel board present", ""))
	}
	return one(verdict(types.StatusFail, RefPanel, WholeHouse,
		"No panel board in estimate", "Add a panel board (load center)"))
}

func outdoorReceptacle(ctx *compliance.Context) []types.ComplianceRuleResult {
	if n := ctx.Inventory.Count(outdoorKeywords...); n >= 1 {
		return one(verdict(types.StatusPass, RefOutdoor, WholeHouse,
			fmt.Sprintf("Outdoor receptacle(s): %d", n), ""))
	}
	return one(verdict(types.StatusFail, RefOutdoor, WholeHouse,
		"No outdoor receptacle found", "Add at least 1 weather-resistant outdoor GFCI receptacle"))
}

func exteriorLighting(ctx *compliance.Context) []types.ComplianceRuleResult {
	if n := ctx.Inventory.Count(exteriorKeywords...); n >= 1 {
		return one(verdict(types.StatusPass, RefExterior, WholeHouse,
			fmt.Sprintf("Exterior lights: %d", n), ""))
	}
	return one(verdict(types.StatusWarn, RefExterior, WholeHouse,
		"No exterior lighting found", "Add at least 1 exterior light at main entrance"))
}

func doorbell(ctx *compliance.Context) []types.ComplianceRuleResult {
	if ctx.Inventory.Count("doorbell") >= 1 {
		return one(verdict(types.StatusPass, RefGeneral, WholeHouse, "Doorbell present", ""))
	}
	return one(verdict(types.StatusInfo, RefGeneral, WholeHouse,
		"No doorbell in estimate", "Consider adding a doorbell/chime (standard for new construction)"))
}

func thermostat(ctx *compliance.Context) []types.ComplianceRuleResult {
	if ctx.Inventory.Count("thermostat") >= 1 {
		return one(verdict(types.StatusPass, RefGeneral, WholeHouse, "Thermostat present", ""))
	}
	return one(verdict(types.StatusWarn, RefGeneral, WholeHouse,
		"No thermostat in estimate", "Add thermostat wiring (low voltage)"))
}

func dataOutlets(ctx *compliance.Context) []types.ComplianceRuleResult {
	n := ctx.Inventory.Count(dataKeywords...)
	switch {
	case n >= 2:
		return one(verdict(types.StatusPass, RefData, WholeHouse,
			fmt.Sprintf("Data/communication outlets: %d", n), ""))
	case n > 0:
		return one(verdict(types.StatusWarn, RefData, WholeHouse,
			fmt.Sprintf("Only %d data/communication outlet(s)", n),
			"Consider adding Cat6/coax outlets in main living areas and bedrooms"))
	default:
		return one(verdict(types.StatusWarn, RefData, WholeHouse,
			"No data or TV outlets in estimate",
			"Add Cat6 data outlets and TV (coax) outlets in living areas"))
	}
}

// Room checks

func wetRoomGFCI(ctx *compliance.Context) []types.ComplianceRuleResult {
	var out []types.ComplianceRuleResult
	for _, room := range ctx.Inventory.Rooms() {
		if !room.Type.IsWet() {
			continue
		}
		if ctx.Inventory.CountInRoom(room.Name, gfciKeywords...) > 0 || gfciCircuitFor(ctx.Circuits, room.Name) {
			out = append(out, verdict(types.StatusPass, RefGFCI, room.Name,
				"GFCI protection present for this wet/damp location", ""))
			continue
		}
		out = append(out, verdict(types.StatusFail, RefGFCI, room.Name,
			fmt.Sprintf("GFCI required in %s but none found in estimate", room.Type),
			"Add GFCI receptacle or GFCI breaker for this location"))
	}
	return out
}

func gfciCircuitFor(circuits []types.Circuit, room string) bool {
	for _, c := range circuits {
		if c.IsGfci && strings.Contains(strings.ToLower(c.Description), strings.ToLower(room)) {
			return true
		}
	}
	return false
}

func bathroomExhaust(ctx *compliance.Context) []types.ComplianceRuleResult {
	var out []types.ComplianceRuleResult
	for _, room := range ctx.Inventory.RoomsOfType(inventory.RoomBathroom) {
		if ctx.Inventory.CountInRoom(room.Name, exhaustKeywords...) >= 1 {
			out = append(out, verdict(types.StatusPass, RefExhaust, room.Name,
				"Exhaust fan present for this bathroom", ""))
			continue
		}
		out = append(out, verdict(types.StatusFail, RefExhaust, room.Name,
			"No exhaust fan, required for bathrooms without operable window",
			"Add exhaust fan (min 50 CFM for standard bath, 100+ CFM for large)"))
	}
	return out
}

func bathroomPlacement(ctx *compliance.Context) []types.ComplianceRuleResult {
	var out []types.ComplianceRuleResult
	for _, room := range ctx.Inventory.RoomsOfType(inventory.RoomBathroom) {
		out = append(out, verdict(types.StatusInfo, RefBathroom, room.Name,
			"Ensure receptacle is within 1m of wash basin and min 500mm from tub/shower",
			"Verify placement during rough-in. GFCI required."))
	}
	return out
}

func kitchenRequirements(ctx *compliance.Context) []types.ComplianceRuleResult {
	var out []types.ComplianceRuleResult
	dedicated := ctx.Inventory.Count("dedicated")
	hood := ctx.Inventory.Count("range hood")

	for _, room := range ctx.Inventory.RoomsOfType(inventory.RoomKitchen) {
		label := room.Name
		if dedicated >= 1 {
			out = append(out, verdict(types.StatusPass, RefKitchenCircuit, label,
				fmt.Sprintf("Dedicated receptacle(s) present (%d)", dedicated), ""))
		} else {
			out = append(out, verdict(types.StatusWarn, RefKitchenCircuit, label,
				"No dedicated receptacle found (fridge needs dedicated circuit)",
				"Add dedicated receptacle for refrigerator"))
		}
		if hood >= 1 {
			out = append(out, verdict(types.StatusPass, RefRangeHood, label, "Range hood/exhaust present", ""))
		} else {
			out = append(out, verdict(types.StatusWarn, RefRangeHood, label,
				"No range hood/kitchen exhaust found",
				"Add range hood fan (vented to exterior for new construction)"))
		}
	}
	return out
}

func garageRequirements(ctx *compliance.Context) []types.ComplianceRuleResult {
	var out []types.ComplianceRuleResult
	for _, room := range ctx.Inventory.RoomsOfType(inventory.RoomGarage) {
		out = append(out, verdict(types.StatusInfo, RefGarage, room.Name,
			"Garage requires GFCI-protected receptacles and 3-way switching",
			"Verify GFCI protection and 3-way switch from house entry to garage door"))
	}
	return out
}

func switchLightRatio(ctx *compliance.Context) []types.ComplianceRuleResult {
	lights := ctx.Inventory.Count(lightKeywords...)
	switches := ctx.Inventory.Count(switchKeywords...)
	if lights == 0 && switches == 0 {
		return nil
	}

	// ratio bounds 0.2 and 1.5, compared in integers
	denom := max(lights, 1)
	switch {
	case switches*5 >= denom && switches*2 <= denom*3:
		return one(verdict(types.StatusPass, RefGeneral, WholeHouse,
			fmt.Sprintf("Switch-to-light ratio: %d switches / %d lights (%.2f)", switches, lights, float64(switches)/float64(denom)), ""))
	case switches*5 < denom:
		return one(verdict(types.StatusWarn, RefGeneral, WholeHouse,
			fmt.Sprintf("Very few switches (%d) for %d lights", switches, lights),
			"Check that all light locations have proper switch control"))
	default:
		return one(verdict(types.StatusInfo, RefGeneral, WholeHouse,
			fmt.Sprintf("High switch count (%d) for %d lights, may include multi-location control", switches, lights), ""))
	}
}

// Circuit checks

func circuitsMatching(circuits []types.Circuit, keywords ...string) []types.Circuit {
	var out []types.Circuit
	for _, c := range circuits {
		desc := strings.ToLower(c.Description)
		for _, k := range keywords {
			if strings.Contains(desc, k) {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

func gfciCircuits(circuits []types.Circuit, room string) []types.ComplianceRuleResult {
	var out []types.ComplianceRuleResult
	for _, c := range circuits {
		if c.Poles > 1 || c.Amps > GFCIMaxAmps {
			continue
		}
		if c.IsGfci {
			out = append(out, verdict(types.StatusPass, RefGFCI, circuitLabel(c),
				fmt.Sprintf("%s receptacle circuit is GFCI protected", room), ""))
			continue
		}
		out = append(out, verdict(types.StatusFail, RefGFCI, circuitLabel(c),
			fmt.Sprintf("%s receptacle circuit (%dA) is not GFCI protected", room, c.Amps),
			"Use a GFCI breaker or GFCI receptacle at the first outlet"))
	}
	return out
}

func kitchenCircuitGFCI(ctx *compliance.Context) []types.ComplianceRuleResult {
	return gfciCircuits(circuitsMatching(ctx.Circuits, "kitchen", "counter"), "Kitchen")
}

func bathroomCircuitGFCI(ctx *compliance.Context) []types.ComplianceRuleResult {
	return gfciCircuits(circuitsMatching(ctx.Circuits, "bath", "ensuite", "powder"), "Bathroom")
}

func bedroomCircuitAFCI(ctx *compliance.Context) []types.ComplianceRuleResult {
	bedroomCircuits := circuitsMatching(ctx.Circuits, "bedroom")
	if len(bedroomCircuits) == 0 {
		bedrooms := len(ctx.Inventory.RoomsOfType(inventory.RoomBedroom))
		if bedrooms == 0 {
			return nil
		}
		return one(verdict(types.StatusInfo, RefAFCI, WholeHouse,
			fmt.Sprintf("%d bedroom(s) detected, AFCI breakers required for bedroom circuits", bedrooms),
			"Ensure all bedroom branch circuits use combination AFCI breakers"))
	}

	var out []types.ComplianceRuleResult
	for _, c := range bedroomCircuits {
		if c.IsAfci {
			out = append(out, verdict(types.StatusPass, RefAFCI, circuitLabel(c), "Bedroom circuit is AFCI protected", ""))
			continue
		}
		out = append(out, verdict(types.StatusFail, RefAFCI, circuitLabel(c),
			"Bedroom circuit is not AFCI protected", "Use a combination AFCI breaker"))
	}
	return out
}

func outletsPerCircuit(ctx *compliance.Context) []types.ComplianceRuleResult {
	var out []types.ComplianceRuleResult
	checked := 0
	for _, c := range ctx.Circuits {
		if c.OutletCount == 0 {
			continue
		}
		checked++
		if c.OutletCount > MaxOutletsPerCircuit {
			out = append(out, verdict(types.StatusFail, RefOutletsPer, circuitLabel(c),
				fmt.Sprintf("%d outlets on one circuit (max %d)", c.OutletCount, MaxOutletsPerCircuit),
				"Split the circuit"))
		}
	}
	if checked > 0 && len(out) == 0 {
		out = append(out, verdict(types.StatusPass, RefOutletsPer, WholeHouse,
			fmt.Sprintf("All %d circuits within %d outlets", checked, MaxOutletsPerCircuit), ""))
	}
	return out
}

func panelDemand(ctx *compliance.Context) []types.ComplianceRuleResult {
	if ctx.Panel != nil && len(ctx.Circuits) > 0 {
		p := ctx.Panel
		if p.Overloaded {
			return one(verdict(types.StatusFail, RefDemand, WholeHouse,
				fmt.Sprintf("Demand %dA exceeds 80%% of the %dA panel", p.DemandAmps, p.PanelSize),
				fmt.Sprintf("Upgrade to a %dA panel", p.RecommendedSize)))
		}
		return one(verdict(types.StatusPass, RefDemand, WholeHouse,
			fmt.Sprintf("Demand %dA within the %dA panel rating", p.DemandAmps, p.PanelSize), ""))
	}

	// No panel schedule: estimate general circuits from the device count
	devices := ctx.Inventory.Count(receptKeywords...) + ctx.Inventory.Count(lightKeywords...)
	needed := devices/MaxOutletsPerCircuit + 1
	if needed <= MaxGeneralCircuits {
		return one(verdict(types.StatusPass, RefDemand, WholeHouse,
			fmt.Sprintf("Estimated general circuits needed: ~%d (%d receptacles and lights)", needed, devices), ""))
	}
	return one(verdict(types.StatusWarn, RefDemand, WholeHouse,
		fmt.Sprintf("High device count may require larger panel, ~%d circuits needed", needed),
		"Consider 200A panel with 40+ spaces"))
}

func panelSpaces(ctx *compliance.Context) []types.ComplianceRuleResult {
	if ctx.Panel == nil || len(ctx.Circuits) == 0 {
		return nil
	}
	p := ctx.Panel
	if p.SpacesOverflowed {
		return one(verdict(types.StatusFail, RefPanel, WholeHouse,
			fmt.Sprintf("%d spaces used but the %dA panel has %d", p.SpacesUsed, p.PanelSize, p.PanelSpaces),
			"Use a larger panel or add a sub-panel"))
	}
	return one(verdict(types.StatusPass, RefPanel, WholeHouse,
		fmt.Sprintf("%d of %d panel spaces used", p.SpacesUsed, p.PanelSpaces), ""))
}
