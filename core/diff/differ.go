// Package diff provides line-level estimate diffing.
// Compares two priced revisions of an estimate, e.g. the quote a customer
// accepted and a later change order.
package diff

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"sparkyestimate/core/determinism"
	"sparkyestimate/core/engine"
	"sparkyestimate/core/types"
)

// Result is the complete diff between two estimate reports
type Result struct {
	TotalBefore  decimal.Decimal `json:"total_before"`
	TotalAfter   decimal.Decimal `json:"total_after"`
	TotalDelta   decimal.Decimal `json:"total_delta"`
	DeltaPercent decimal.Decimal `json:"delta_percent"`

	HoursBefore decimal.Decimal `json:"hours_before"`
	HoursAfter  decimal.Decimal `json:"hours_after"`

	// Line-level changes, each sorted by device then room
	Added   []LineDiff `json:"added"`
	Removed []LineDiff `json:"removed"`
	Changed []LineDiff `json:"changed"`

	UnchangedCount int `json:"unchanged_count"`
}

// HasChanges returns true if any line changed
func (r *Result) HasChanges() bool {
	return len(r.Added)+len(r.Removed)+len(r.Changed) > 0
}

// LineDiff describes the change of one device in one room
type LineDiff struct {
	DeviceType string     `json:"device_type"`
	Room       string     `json:"room,omitempty"`
	ChangeType ChangeType `json:"change_type"`

	QuantityBefore int `json:"quantity_before"`
	QuantityAfter  int `json:"quantity_after"`

	// Material is Σ qty·materialCost for the line
	MaterialBefore decimal.Decimal `json:"material_before"`
	MaterialAfter  decimal.Decimal `json:"material_after"`
	Delta          decimal.Decimal `json:"delta"`

	// Reasons names what changed: quantity, material cost, labour hours, wire
	Reasons []string `json:"reasons,omitempty"`
}

// ChangeType indicates the type of change
type ChangeType int

const (
	ChangeAdded     ChangeType = iota // New line
	ChangeRemoved                     // Line removed
	ChangeModified                    // Quantity or pricing changed
	ChangeUnchanged                   // No change
)

// String returns the change type name
func (c ChangeType) String() string {
	switch c {
	case ChangeAdded:
		return "added"
	case ChangeRemoved:
		return "removed"
	case ChangeModified:
		return "modified"
	case ChangeUnchanged:
		return "unchanged"
	default:
		return "unknown"
	}
}

// MarshalText encodes the change type by name
func (c ChangeType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// line aggregates every item sharing a device and room
type line struct {
	deviceType string
	room       string
	quantity   int
	material   decimal.Decimal
	hours      decimal.Decimal
	wire       decimal.Decimal
}

// Diff computes the diff between two reports.
// Lines are keyed by device and room ignoring case; repeated lines are summed.
func Diff(before, after *engine.Report) *Result {
	result := &Result{
		TotalBefore: before.Totals.GrandTotal,
		TotalAfter:  after.Totals.GrandTotal,
		HoursBefore: before.Labour.Hours,
		HoursAfter:  after.Labour.Hours,
		Added:       []LineDiff{},
		Removed:     []LineDiff{},
		Changed:     []LineDiff{},
	}
	result.TotalDelta = result.TotalAfter.Sub(result.TotalBefore)
	if !result.TotalBefore.IsZero() {
		result.DeltaPercent = result.TotalDelta.Div(result.TotalBefore).Mul(decimal.NewFromInt(100)).Round(1)
	}

	beforeLines := index(before.Items)
	afterLines := index(after.Items)

	for _, key := range determinism.SortedKeys(afterLines) {
		a := afterLines[key]
		b, existed := beforeLines[key]
		if !existed {
			result.Added = append(result.Added, newLineDiff(nil, a, ChangeAdded))
			continue
		}

		d := newLineDiff(b, a, ChangeModified)
		if len(d.Reasons) == 0 {
			result.UnchangedCount++
			continue
		}
		result.Changed = append(result.Changed, d)
	}

	for _, key := range determinism.SortedKeys(beforeLines) {
		if _, exists := afterLines[key]; !exists {
			result.Removed = append(result.Removed, newLineDiff(beforeLines[key], nil, ChangeRemoved))
		}
	}

	return result
}

func index(items []types.LineItem) map[string]*line {
	lines := make(map[string]*line)
	for _, item := range items {
		key := strings.ToLower(strings.TrimSpace(item.DeviceType)) + "\x00" + strings.ToLower(strings.TrimSpace(item.Room))
		l, ok := lines[key]
		if !ok {
			l = &line{deviceType: item.DeviceType, room: item.Room}
			lines[key] = l
		}
		qty := determinism.Qty(item.Quantity)
		l.quantity += item.Quantity
		l.material = l.material.Add(qty.Mul(item.MaterialCost))
		l.hours = l.hours.Add(qty.Mul(item.LaborHours))
		l.wire = l.wire.Add(qty.Mul(item.WireFootage))
	}
	return lines
}

func newLineDiff(before, after *line, changeType ChangeType) LineDiff {
	d := LineDiff{ChangeType: changeType, MaterialBefore: decimal.Zero, MaterialAfter: decimal.Zero}
	if before != nil {
		d.DeviceType, d.Room = before.deviceType, before.room
		d.QuantityBefore = before.quantity
		d.MaterialBefore = before.material
	}
	if after != nil {
		d.DeviceType, d.Room = after.deviceType, after.room
		d.QuantityAfter = after.quantity
		d.MaterialAfter = after.material
	}
	d.Delta = d.MaterialAfter.Sub(d.MaterialBefore)

	if before != nil && after != nil {
		if before.quantity != after.quantity {
			d.Reasons = append(d.Reasons, "quantity")
		}
		if !before.material.Equal(after.material) {
			d.Reasons = append(d.Reasons, "material cost")
		}
		if !before.hours.Equal(after.hours) {
			d.Reasons = append(d.Reasons, "labour hours")
		}
		if !before.wire.Equal(after.wire) {
			d.Reasons = append(d.Reasons, "wire")
		}
	}
	return d
}

// Largest returns the n changes with the biggest absolute delta
func (r *Result) Largest(n int) []LineDiff {
	all := make([]LineDiff, 0, len(r.Added)+len(r.Removed)+len(r.Changed))
	all = append(all, r.Added...)
	all = append(all, r.Removed...)
	all = append(all, r.Changed...)
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Delta.Abs().GreaterThan(all[j].Delta.Abs())
	})
	if n > 0 && len(all) > n {
		all = all[:n]
	}
	return all
}
