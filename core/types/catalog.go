// Package types - Reference catalog types
package types

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CatalogAssembly is a catalog template for one device type
type CatalogAssembly struct {
	// Name is the display name (e.g. "GFCI Receptacle (20A)")
	Name string `json:"name"`

	// Category drives the labour split and BOM category totals
	Category DeviceCategory `json:"category"`

	// Device describes the device itself
	Device string `json:"device"`

	// BoxType is the default box
	BoxType string `json:"box_type,omitempty"`

	// CoverPlate is the default cover plate
	CoverPlate string `json:"cover_plate,omitempty"`

	// MiscParts is a comma-separated list of small parts
	MiscParts string `json:"misc_parts,omitempty"`

	// WireType is the default cable type
	WireType string `json:"wire_type,omitempty"`

	// WireFootage is the default wire allowance per device in feet
	WireFootage decimal.Decimal `json:"wire_footage"`

	// LaborHours is the default labour unit
	LaborHours decimal.Decimal `json:"labor_hours"`

	// MaterialCost is the default unit material cost
	MaterialCost decimal.Decimal `json:"material_cost"`
}

// MiscPartList splits MiscParts into trimmed, non-empty names
func (a CatalogAssembly) MiscPartList() []string {
	if strings.TrimSpace(a.MiscParts) == "" {
		return nil
	}
	var parts []string
	for _, p := range strings.Split(a.MiscParts, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// PartsCatalogEntry is a purchasable physical part
type PartsCatalogEntry struct {
	Name     string          `json:"name"`
	Category PartCategory    `json:"category"`
	UnitCost decimal.Decimal `json:"unit_cost"`
}

// AssemblyPart links an assembly to a part with a per-assembly quantity
type AssemblyPart struct {
	AssemblyName string `json:"assembly_name"`
	PartName     string `json:"part_name"`
	Quantity     int    `json:"quantity"`
}

// WireCostTable maps wire type to cost per foot
type WireCostTable map[string]decimal.Decimal

// CostPerFoot returns the cost per foot for a wire type.
// ok is false when the wire type has no entry.
func (t WireCostTable) CostPerFoot(wireType string) (decimal.Decimal, bool) {
	if t == nil {
		return decimal.Zero, false
	}
	cost, ok := t[wireType]
	if !ok {
		return decimal.Zero, false
	}
	return cost, true
}

// Catalog bundles all reference data the engine reads
type Catalog struct {
	Assemblies []CatalogAssembly   `json:"assemblies"`
	Parts      []PartsCatalogEntry `json:"parts,omitempty"`
	Links      []AssemblyPart      `json:"links,omitempty"`
	WireCosts  WireCostTable       `json:"wire_costs,omitempty"`
	Permits    []PermitFeeSchedule `json:"permit_schedules,omitempty"`
}
