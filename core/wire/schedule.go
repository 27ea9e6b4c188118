// Package wire - Wire purchasing schedule
// Aggregates footage by wire type, applies the waste factor, converts to
// metres and rounds up to whole 150 m and 75 m spools.
package wire

import (
	"github.com/shopspring/decimal"

	"sparkyestimate/core/determinism"
	"sparkyestimate/core/types"
)

// Spool lengths in metres
const (
	LongSpoolMetres  = 150
	ShortSpoolMetres = 75
)

// MetresPerFoot converts feet to metres
var MetresPerFoot = decimal.RequireFromString("0.3048")

// Row is the purchasing line for one wire type
type Row struct {
	WireType string `json:"wire_type"`

	// Footage is Σ qty·wireFootage in feet
	Footage decimal.Decimal `json:"footage"`

	// WithWaste is Footage plus the waste factor
	WithWaste decimal.Decimal `json:"with_waste"`

	// MetresExact is WithWaste converted to metres
	MetresExact decimal.Decimal `json:"metres_exact"`

	// Metres is MetresExact rounded up
	Metres int `json:"metres"`

	// Spools150 and Spools75 are the effective counts, overrides applied
	Spools150 int `json:"spools_150"`
	Spools75  int `json:"spools_75"`

	// Computed150 and Computed75 are the counts before overrides
	Computed150 int `json:"computed_150"`
	Computed75  int `json:"computed_75"`

	Overridden150 bool `json:"overridden_150,omitempty"`
	Overridden75  bool `json:"overridden_75,omitempty"`

	CostPerFoot decimal.Decimal `json:"cost_per_foot"`

	// TotalCost is WithWaste·CostPerFoot
	TotalCost decimal.Decimal `json:"total_cost"`

	// CostMissing is true when the wire type has no cost entry
	CostMissing bool `json:"cost_missing,omitempty"`
}

// Totals sums the schedule rows
type Totals struct {
	Footage   decimal.Decimal `json:"footage"`
	WithWaste decimal.Decimal `json:"with_waste"`
	Metres    int             `json:"metres"`
	Spools150 int             `json:"spools_150"`
	Spools75  int             `json:"spools_75"`
	TotalCost decimal.Decimal `json:"total_cost"`
}

// Result is the full wire schedule
type Result struct {
	Rows   []Row  `json:"rows"`
	Totals Totals `json:"totals"`
}

// Schedule builds the wire schedule.
// Items with footage but no wire type land in the Unassigned row. Items with
// neither carry no wire and add no row; they are still priced by the rollup.
// Overrides naming a wire type that no item uses are ignored.
func Schedule(items []types.LineItem, wasteFactorPct decimal.Decimal, overrides map[string]types.SpoolOverride, wireCosts types.WireCostTable) Result {
	footage := make(map[string]decimal.Decimal)
	for _, item := range items {
		if item.WireType == "" && item.WireFootage.IsZero() {
			continue
		}
		key := item.WireType
		if key == "" {
			key = types.UnassignedWireType
		}
		ft := determinism.Qty(item.Quantity).Mul(item.WireFootage)
		if prev, ok := footage[key]; ok {
			footage[key] = prev.Add(ft)
		} else {
			footage[key] = ft
		}
	}

	result := Result{
		Rows: make([]Row, 0, len(footage)),
		Totals: Totals{
			Footage:   decimal.Zero,
			WithWaste: decimal.Zero,
			TotalCost: decimal.Zero,
		},
	}

	for _, wireType := range orderedTypes(footage) {
		row := buildRow(wireType, footage[wireType], wasteFactorPct, wireCosts)
		if o, ok := overrides[wireType]; ok {
			applyOverride(&row, o)
		}
		result.Rows = append(result.Rows, row)

		result.Totals.Footage = result.Totals.Footage.Add(row.Footage)
		result.Totals.WithWaste = result.Totals.WithWaste.Add(row.WithWaste)
		result.Totals.Metres += row.Metres
		result.Totals.Spools150 += row.Spools150
		result.Totals.Spools75 += row.Spools75
		result.Totals.TotalCost = result.Totals.TotalCost.Add(row.TotalCost)
	}

	return result
}

func buildRow(wireType string, footage, wasteFactorPct decimal.Decimal, wireCosts types.WireCostTable) Row {
	withWaste := determinism.ApplyPct(footage, wasteFactorPct)
	metresExact := withWaste.Mul(MetresPerFoot)
	metres := determinism.CeilInt(metresExact)
	m := decimal.NewFromInt(int64(metres))

	row := Row{
		WireType:    wireType,
		Footage:     footage,
		WithWaste:   withWaste,
		MetresExact: metresExact,
		Metres:      metres,
		Computed150: determinism.CeilDiv(m, LongSpoolMetres),
		Computed75:  determinism.CeilDiv(m, ShortSpoolMetres),
	}
	row.Spools150 = row.Computed150
	row.Spools75 = row.Computed75

	costPerFoot, ok := wireCosts.CostPerFoot(wireType)
	row.CostPerFoot = costPerFoot
	row.CostMissing = !ok
	row.TotalCost = withWaste.Mul(costPerFoot)
	return row
}

func applyOverride(row *Row, o types.SpoolOverride) {
	if o.S150 != nil {
		row.Spools150 = *o.S150
		row.Overridden150 = true
	}
	if o.S75 != nil {
		row.Spools75 = *o.S75
		row.Overridden75 = true
	}
}

// orderedTypes sorts wire types with Unassigned last
func orderedTypes(footage map[string]decimal.Decimal) []string {
	keys := determinism.SortedKeys(footage)
	determinism.SortSlice(keys, func(a, b string) bool {
		return a != types.UnassignedWireType && b == types.UnassignedWireType
	})
	return keys
}
