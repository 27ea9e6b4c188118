// Package catalog - Default parts, wire costs and permit fees
package catalog

import (
	"github.com/shopspring/decimal"

	"sparkyestimate/core/types"
)

func part(name string, category types.PartCategory, cost string) types.PartsCatalogEntry {
	return types.PartsCatalogEntry{Name: name, Category: category, UnitCost: decimal.RequireFromString(cost)}
}

// DefaultParts returns the default parts price list.
// Names match the box, cover and small-part names of the default assemblies.
func DefaultParts() []types.PartsCatalogEntry {
	return []types.PartsCatalogEntry{
		// Boxes
		part("Single-gang device box, NM", types.PartBox, "1.20"),
		part("Octagon box, NM", types.PartBox, "1.80"),
		part("Fan-rated octagon box, NM", types.PartBox, "9.50"),
		part("Weatherproof box", types.PartBox, "8.75"),
		part("Junction box", types.PartBox, "2.10"),
		part("4x4 junction box", types.PartBox, "3.40"),
		part("Surface mount box", types.PartBox, "6.20"),
		part("Low-voltage bracket", types.PartBox, "0.95"),

		// Cover plates
		part("Single-gang duplex cover plate", types.PartCoverPlate, "0.85"),
		part("Single-gang GFCI cover plate", types.PartCoverPlate, "0.95"),
		part("Single-gang toggle cover plate", types.PartCoverPlate, "0.85"),
		part("Dimmer cover plate", types.PartCoverPlate, "1.10"),
		part("In-use weatherproof cover", types.PartCoverPlate, "14.50"),
		part("Blank cover plate", types.PartCoverPlate, "0.90"),
		part("Single-gang data plate", types.PartCoverPlate, "2.40"),
		part("Single-gang coax plate", types.PartCoverPlate, "2.40"),

		// Devices
		part("15A duplex receptacle, TR", types.PartDevice, "2.45"),
		part("20A GFCI receptacle, TR, WR", types.PartDevice, "24.50"),
		part("15A single-pole switch", types.PartDevice, "2.10"),
		part("15A 3-way switch", types.PartDevice, "5.40"),
		part("15A 4-way switch", types.PartDevice, "14.20"),
		part("600W dimmer switch", types.PartDevice, "19.80"),
		part("Hardwired smoke detector with battery backup", types.PartDevice, "32.00"),
		part("Circuit breaker (15A or 20A)", types.PartBreaker, "11.50"),

		// Connectors and wire nuts
		part("Wire nuts", types.PartWireNut, "0.12"),
		part("Ground pigtail", types.PartConnector, "0.45"),
		part("Box connector NM", types.PartConnector, "0.35"),
		part("NM connector", types.PartConnector, "0.35"),
		part("Box connectors NM", types.PartConnector, "0.35"),
		part("NM connectors", types.PartConnector, "0.35"),

		// Mounting
		part("Fixture strap", types.PartMounting, "0.40"),
		part("Mounting plate", types.PartMounting, "0.60"),
		part("Fan brace bar", types.PartMounting, "12.80"),
		part("Staples", types.PartMounting, "0.60"),

		// Panel
		part("Ground bar", types.PartPanelComponent, "9.00"),
		part("Neutral bar", types.PartPanelComponent, "11.00"),
		part("Panel screws", types.PartPanelComponent, "3.50"),

		// Misc
		part("Labels", types.PartMisc, "0.25"),
		part("Weatherproof gasket", types.PartMisc, "1.40"),
	}
}

// DefaultWireCosts returns the cost per foot of every default wire type
func DefaultWireCosts() types.WireCostTable {
	costs := map[string]string{
		"14/2 NM-B":            "0.45",
		"14/3 NM-B":            "0.68",
		"12/2 NM-B":            "0.62",
		"10/2 NM-B":            "1.10",
		"10/3 NM-B":            "1.45",
		"6/3 NM-B":             "3.80",
		"3 AWG NM-B":           "5.60",
		"3/0 AL SER Cable":     "4.95",
		"Cat6":                 "0.32",
		"RG6 Coax":             "0.28",
		"18/2 Bell Wire":       "0.14",
		"18/5 Thermostat Wire": "0.30",
	}
	table := make(types.WireCostTable, len(costs))
	for wire, cost := range costs {
		table[wire] = decimal.RequireFromString(cost)
	}
	return table
}

func amps(n int) *int { return &n }

func value(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// DefaultPermitSchedule returns a residential electrical permit fee schedule.
// Service categories are keyed by panel amps, other work by job value.
func DefaultPermitSchedule() types.PermitFeeSchedule {
	return types.PermitFeeSchedule{
		Name:   "Residential electrical permit fees",
		Active: true,
		Tiers: map[types.PermitCategory][]types.PermitTier{
			types.PermitResidentialService: {
				{Label: "Up to 100A", MaxAmps: amps(100), Fee: decimal.NewFromInt(185)},
				{Label: "101A to 200A", MaxAmps: amps(200), Fee: decimal.NewFromInt(250)},
				{Label: "201A to 400A", MaxAmps: amps(400), Fee: decimal.NewFromInt(395)},
			},
			types.PermitServiceUpgrade: {
				{Label: "Up to 100A", MaxAmps: amps(100), Fee: decimal.NewFromInt(140)},
				{Label: "101A to 200A", MaxAmps: amps(200), Fee: decimal.NewFromInt(195)},
				{Label: "201A to 400A", MaxAmps: amps(400), Fee: decimal.NewFromInt(320)},
			},
			types.PermitOther: {
				{Label: "Up to $1,000", MaxValue: value("1000"), Fee: decimal.NewFromInt(95)},
				{Label: "$1,001 to $5,000", MaxValue: value("5000"), Fee: decimal.NewFromInt(150)},
				{Label: "$5,001 to $15,000", MaxValue: value("15000"), Fee: decimal.NewFromInt(275)},
				{Label: "$15,001 to $50,000", MaxValue: value("50000"), Fee: decimal.NewFromInt(520)},
			},
		},
	}
}
