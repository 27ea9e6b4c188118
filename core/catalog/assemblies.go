// Package catalog - Default CEC residential assemblies
// Material costs are contractor pricing for the device, box, cover and
// small parts of one installed unit. Wire is priced separately per foot.
package catalog

import (
	"github.com/shopspring/decimal"

	"sparkyestimate/core/types"
)

// HomeRunName is the assembly added once per circuit run back to the panel
const HomeRunName = "Home Run (per circuit)"

func assembly(name string, category types.DeviceCategory, device, box, cover, misc, wire, feet, hours, cost string) types.CatalogAssembly {
	return types.CatalogAssembly{
		Name:         name,
		Category:     category,
		Device:       device,
		BoxType:      box,
		CoverPlate:   cover,
		MiscParts:    misc,
		WireType:     wire,
		WireFootage:  decimal.RequireFromString(feet),
		LaborHours:   decimal.RequireFromString(hours),
		MaterialCost: decimal.RequireFromString(cost),
	}
}

// HomeRun returns the per-circuit home run assembly
func HomeRun() types.CatalogAssembly {
	return assembly(HomeRunName, types.CategoryRough,
		"Circuit breaker (15A or 20A)", "N/A", "N/A", "Staples, Labels",
		"14/2 NM-B", "30", "0.50", "14.00")
}

// RegisterAssemblies populates the registry with the default assemblies
func RegisterAssemblies(r *Registry) {
	// Receptacles
	r.MustRegister(assembly("Duplex Receptacle (15A)", types.CategoryReceptacles,
		"15A duplex receptacle, TR", "Single-gang device box, NM", "Single-gang duplex cover plate",
		"Wire nuts (2), Ground pigtail, Box connector NM", "14/2 NM-B", "15", "0.18", "6.50"))
	r.MustRegister(assembly("GFCI Receptacle (20A)", types.CategoryReceptacles,
		"20A GFCI receptacle, TR, WR", "Single-gang device box, NM", "Single-gang GFCI cover plate",
		"Wire nuts (2), Ground pigtail, Box connector NM", "12/2 NM-B", "25", "0.25", "28.00"))
	r.MustRegister(assembly("Weather-Resistant Receptacle", types.CategoryReceptacles,
		"20A WR receptacle, TR", "Weatherproof box", "In-use weatherproof cover",
		"Wire nuts (2), Ground pigtail, Box connector NM", "12/2 NM-B", "30", "0.30", "32.00"))
	r.MustRegister(assembly("Split Receptacle", types.CategoryReceptacles,
		"15A duplex receptacle, TR, split-wired", "Single-gang device box, NM", "Single-gang duplex cover plate",
		"Wire nuts (3), Ground pigtail, Box connector NM", "14/3 NM-B", "22", "0.25", "7.50"))
	r.MustRegister(assembly("Dedicated Receptacle", types.CategoryReceptacles,
		"20A dedicated receptacle", "Single-gang device box, NM", "Single-gang duplex cover plate",
		"Wire nuts (2), Ground pigtail, Box connector NM", "12/2 NM-B", "35", "0.25", "9.00"))
	r.MustRegister(assembly("Outdoor Receptacle (GFCI)", types.CategoryReceptacles,
		"20A GFCI receptacle, WR", "Weatherproof box", "In-use weatherproof cover",
		"Wire nuts (2), Ground pigtail, Box connector NM", "12/2 NM-B", "35", "0.35", "48.00"))

	// Switches and controls
	r.MustRegister(assembly("Single-Pole Switch", types.CategorySwitches,
		"15A single-pole switch", "Single-gang device box, NM", "Single-gang toggle cover plate",
		"Wire nuts (2), Ground pigtail, Box connector NM", "14/2 NM-B", "15", "0.15", "5.50"))
	r.MustRegister(assembly("3-Way Switch", types.CategorySwitches,
		"15A 3-way switch", "Single-gang device box, NM", "Single-gang toggle cover plate",
		"Wire nuts (3), Ground pigtail, Box connector NM", "14/3 NM-B", "30", "0.20", "9.00"))
	r.MustRegister(assembly("4-Way Switch", types.CategorySwitches,
		"15A 4-way switch", "Single-gang device box, NM", "Single-gang toggle cover plate",
		"Wire nuts (4), Ground pigtail, Box connector NM", "14/3 NM-B", "30", "0.25", "18.00"))
	r.MustRegister(assembly("Dimmer Switch", types.CategorySwitches,
		"600W dimmer switch", "Single-gang device box, NM", "Dimmer cover plate",
		"Wire nuts (2), Ground pigtail, Box connector NM", "14/2 NM-B", "15", "0.20", "24.00"))
	r.MustRegister(assembly("Motion Sensor", types.CategorySwitches,
		"Occupancy/motion sensor switch", "Single-gang device box, NM", "Sensor cover plate",
		"Wire nuts (3), Ground pigtail, Box connector NM", "14/2 NM-B", "15", "0.25", "38.00"))
	r.MustRegister(assembly("Occupancy Sensor", types.CategorySwitches,
		"Ceiling mount occupancy sensor", "Octagon box, NM", "N/A",
		"Wire nuts (2), Box connector NM", "14/2 NM-B", "15", "0.25", "55.00"))

	// Lighting
	r.MustRegister(assembly("Recessed Light (Pot Light)", types.CategoryLighting,
		`4" or 6" IC-rated recessed housing + LED trim`, "Integral junction box", "N/A",
		"Wire nuts (2), NM connector", "14/2 NM-B", "8", "0.30", "22.00"))
	r.MustRegister(assembly("Pot Light", types.CategoryLighting,
		`4" or 6" IC-rated recessed housing + LED trim`, "Integral junction box", "N/A",
		"Wire nuts (2), NM connector", "14/2 NM-B", "8", "0.30", "22.00"))
	r.MustRegister(assembly("Surface Mount Light", types.CategoryLighting,
		"Surface mount fixture", "Octagon box, NM", "N/A",
		"Wire nuts (2), Fixture strap, Box connector NM", "14/2 NM-B", "10", "0.40", "6.00"))
	r.MustRegister(assembly("Pendant Light", types.CategoryLighting,
		"Pendant fixture", "Octagon box, NM", "N/A",
		"Wire nuts (2), Fixture strap, Box connector NM, Pendant kit", "14/2 NM-B", "15", "0.50", "9.00"))
	r.MustRegister(assembly("Wall Sconce", types.CategoryLighting,
		"Wall sconce fixture", "Octagon box, NM", "N/A",
		"Wire nuts (2), Fixture strap, Box connector NM", "14/2 NM-B", "15", "0.40", "6.00"))
	r.MustRegister(assembly("Exterior Light", types.CategoryLighting,
		"Exterior wall pack or fixture", "Weatherproof box", "N/A",
		"Wire nuts (2), NM connector, Weatherproof gasket", "14/2 NM-B", "25", "0.50", "14.00"))
	r.MustRegister(assembly("Track Light", types.CategoryLighting,
		"Track lighting system", "Octagon box, NM", "N/A",
		"Wire nuts (2), Track connector, Box connector NM", "14/2 NM-B", "15", "0.60", "12.00"))
	r.MustRegister(assembly("Fluorescent / LED Batten", types.CategoryLighting,
		"4ft LED batten fixture", "Integral junction box", "N/A",
		"Wire nuts (2), NM connector, Mounting clips", "14/2 NM-B", "10", "0.45", "42.00"))
	r.MustRegister(assembly("LED Panel Light", types.CategoryLighting,
		"LED flat panel", "Integral junction box", "N/A",
		"Wire nuts (2), NM connector, Mounting hardware", "14/2 NM-B", "8", "0.40", "65.00"))
	r.MustRegister(assembly("Ceiling Fan Outlet", types.CategoryLighting,
		"Ceiling fan rated box + wiring", "Fan-rated octagon box, NM", "N/A",
		"Wire nuts (3), Fan brace bar, Box connector NM", "14/3 NM-B", "20", "0.50", "28.00"))

	// Ventilation and appliances
	r.MustRegister(assembly("Exhaust Fan (Bathroom)", types.CategoryAppliance,
		"Bathroom exhaust fan", "Integral junction box", "N/A",
		"Wire nuts (2), NM connector, Duct connector", "14/2 NM-B", "20", "0.50", "85.00"))
	r.MustRegister(assembly("Range Hood Fan", types.CategoryAppliance,
		"Range hood connection", "Junction box", "N/A",
		"Wire nuts (2), NM connector", "14/2 NM-B", "20", "0.40", "6.00"))
	r.MustRegister(assembly("EV Charger Outlet (50A)", types.CategoryAppliance,
		"50A 240V receptacle (NEMA 14-50)", "Surface mount box", "NEMA 14-50 cover",
		"Wire nuts, Box connector NM", "6/3 NM-B", "50", "1.00", "65.00"))
	r.MustRegister(assembly("Dryer Outlet (30A)", types.CategoryAppliance,
		"30A 240V dryer receptacle (NEMA 14-30)", "Surface mount box", "NEMA 14-30 cover",
		"Wire nuts, Box connector NM", "10/3 NM-B", "40", "0.50", "28.00"))
	r.MustRegister(assembly("Range Outlet (50A)", types.CategoryAppliance,
		"50A 240V range receptacle (NEMA 14-50)", "Surface mount box", "NEMA 14-50 cover",
		"Wire nuts, Box connector NM", "6/3 NM-B", "40", "0.50", "30.00"))
	r.MustRegister(assembly("A/C Disconnect", types.CategoryAppliance,
		"60A non-fused disconnect", "Weatherproof enclosure", "N/A",
		"NM connectors (2), Whip connector", "10/2 NM-B", "50", "1.00", "75.00"))

	// Life safety
	r.MustRegister(assembly("Smoke Detector (Hardwired)", types.CategorySafety,
		"Hardwired smoke detector with battery backup", "Octagon box, NM", "N/A",
		"Wire nuts (2), Mounting plate, Box connector NM", "14/3 NM-B", "18", "0.25", "38.00"))
	r.MustRegister(assembly("CO Detector (Hardwired)", types.CategorySafety,
		"Hardwired CO detector with battery backup", "Octagon box, NM", "N/A",
		"Wire nuts (2), Mounting plate, Box connector NM", "14/3 NM-B", "18", "0.25", "48.00"))
	r.MustRegister(assembly("Smoke/CO Combo Detector", types.CategorySafety,
		"Hardwired smoke/CO combo with battery backup", "Octagon box, NM", "N/A",
		"Wire nuts (2), Mounting plate, Box connector NM", "14/3 NM-B", "18", "0.25", "62.00"))

	// Low voltage
	r.MustRegister(assembly("Data Outlet (Cat6)", types.CategoryDataComm,
		"Cat6 keystone jack + wall plate", "Low-voltage bracket", "Single-gang data plate",
		"", "Cat6", "50", "0.30", "12.00"))
	r.MustRegister(assembly("TV / Coax Outlet", types.CategoryDataComm,
		"F-connector coax jack + wall plate", "Low-voltage bracket", "Single-gang coax plate",
		"", "RG6 Coax", "50", "0.25", "9.00"))
	r.MustRegister(assembly("Phone Outlet", types.CategoryDataComm,
		"RJ11 phone jack + wall plate", "Low-voltage bracket", "Single-gang phone plate",
		"", "Cat6", "50", "0.25", "8.00"))
	r.MustRegister(assembly("Doorbell", types.CategoryDataComm,
		"Doorbell chime + button + transformer", "Junction box", "N/A",
		"Doorbell transformer", "18/2 Bell Wire", "40", "0.50", "55.00"))
	r.MustRegister(assembly("Thermostat", types.CategoryDataComm,
		"Thermostat wire connection", "N/A", "N/A",
		"", "18/5 Thermostat Wire", "40", "0.30", "4.00"))

	// Service and distribution
	r.MustRegister(assembly("Panel Board / Load Center (200A)", types.CategoryService,
		"200A main breaker load center, 40-circuit", "N/A", "Panel cover",
		"Ground bar, Neutral bar, Panel screws, Grounding electrode conductor", "3/0 AL SER Cable", "25", "6.00", "650.00"))
	r.MustRegister(assembly("Sub-Panel (100A)", types.CategoryService,
		"100A sub-panel, 20-circuit", "N/A", "Panel cover",
		"Ground bar, Neutral bar, Panel screws", "3 AWG NM-B", "30", "4.00", "280.00"))
	r.MustRegister(assembly("Temporary Power (Construction)", types.CategoryService,
		"Temp power pole + panel + GFCI receptacles", "Temp panel enclosure", "N/A",
		"Temp pole, Ground rod, GFCI receptacles (2), Weatherhead", "6/3 NM-B", "30", "4.00", "420.00"))
	r.MustRegister(assembly("Underground Service Entry", types.CategoryService,
		"Underground service conduit + wire + trench", "LB fitting", "N/A",
		"PVC conduit, PVC elbows, Bell end, Pulling compound", "3/0 AL SER Cable", "60", "8.00", "380.00"))

	// Rough-in
	r.MustRegister(assembly("Junction Box", types.CategoryRough,
		"4x4 junction box with cover", "4x4 junction box", "Blank cover plate",
		"Wire nuts (4), Box connectors NM (2)", "14/2 NM-B", "5", "0.20", "7.00"))
	r.MustRegister(HomeRun())
}
