package diff

import (
	"testing"

	"github.com/shopspring/decimal"

	"sparkyestimate/core/engine"
	"sparkyestimate/core/types"
)

func item(device, room string, qty int, cost string) types.LineItem {
	return types.LineItem{DeviceType: device, Room: room, Quantity: qty, MaterialCost: decimal.RequireFromString(cost)}
}

func report(total string, items ...types.LineItem) *engine.Report {
	r := &engine.Report{Items: items}
	r.Totals.GrandTotal = decimal.RequireFromString(total)
	return r
}

func TestDiff(t *testing.T) {
	before := report("1000",
		item("Pot Light", "Kitchen", 6, "18"),
		item("Duplex Receptacle (15A)", "Bedroom", 4, "6.50"),
		item("Doorbell", "Entry", 1, "45"),
	)
	after := report("1250",
		item("pot light", "kitchen", 4, "18"),
		item("Pot Light", "Kitchen", 4, "18"),
		item("Duplex Receptacle (15A)", "Bedroom", 4, "6.50"),
		item("EV Charger Outlet (50A)", "Garage", 1, "180"),
	)

	d := Diff(before, after)

	if !d.TotalDelta.Equal(decimal.NewFromInt(250)) || !d.DeltaPercent.Equal(decimal.NewFromInt(25)) {
		t.Errorf("unexpected totals %s / %s%%", d.TotalDelta, d.DeltaPercent)
	}
	if len(d.Added) != 1 || d.Added[0].DeviceType != "EV Charger Outlet (50A)" || !d.Added[0].Delta.Equal(decimal.NewFromInt(180)) {
		t.Errorf("unexpected added %+v", d.Added)
	}
	if len(d.Removed) != 1 || d.Removed[0].DeviceType != "Doorbell" || !d.Removed[0].Delta.Equal(decimal.NewFromInt(-45)) {
		t.Errorf("unexpected removed %+v", d.Removed)
	}
	if len(d.Changed) != 1 {
		t.Fatalf("expected one changed line, got %+v", d.Changed)
	}
	c := d.Changed[0]
	if c.QuantityBefore != 6 || c.QuantityAfter != 8 || !c.Delta.Equal(decimal.NewFromInt(36)) {
		t.Errorf("expected summed pot light lines, got %+v", c)
	}
	if len(c.Reasons) != 2 || c.Reasons[0] != "quantity" || c.Reasons[1] != "material cost" {
		t.Errorf("unexpected reasons %v", c.Reasons)
	}
	if d.UnchangedCount != 1 || !d.HasChanges() {
		t.Errorf("expected 1 unchanged line and changes, got %d", d.UnchangedCount)
	}

	largest := d.Largest(2)
	if len(largest) != 2 || largest[0].DeviceType != "EV Charger Outlet (50A)" || largest[1].DeviceType != "Doorbell" {
		t.Errorf("unexpected largest %+v", largest)
	}
}

func TestDiffIdentical(t *testing.T) {
	r := report("500", item("Pot Light", "Kitchen", 6, "18"))
	d := Diff(r, r)

	if d.HasChanges() || !d.TotalDelta.IsZero() || d.UnchangedCount != 1 {
		t.Errorf("expected no changes, got %+v", d)
	}
}

func TestDiffFromZero(t *testing.T) {
	d := Diff(report("0"), report("100", item("Pot Light", "", 1, "100")))
	if !d.DeltaPercent.IsZero() {
		t.Errorf("expected no percentage from a zero total, got %s", d.DeltaPercent)
	}
}

func TestChangeTypeString(t *testing.T) {
	tests := map[ChangeType]string{
		ChangeAdded:     "added",
		ChangeRemoved:   "removed",
		ChangeModified:  "modified",
		ChangeUnchanged: "unchanged",
		ChangeType(9):   "unknown",
	}
	for c, want := range tests {
		if c.String() != want {
			t.Errorf("ChangeType(%d) = %s, want %s", c, c.String(), want)
		}
	}
}
