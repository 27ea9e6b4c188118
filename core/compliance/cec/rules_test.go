package cec

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"sparkyestimate/core/compliance"
	"sparkyestimate/core/panel"
	"sparkyestimate/core/types"
)

var assemblyNames = []string{
	"Panel Board / Load Center (200A)",
	"Smoke Detector (Hardwired)",
	"Outdoor Receptacle (GFCI)",
	"Exterior Light",
	"Doorbell",
	"Thermostat",
	"Data Outlet (Cat6)",
	"GFCI Receptacle (20A)",
	"Duplex Receptacle (15A)",
	"Exhaust Fan (Bathroom)",
	"Dedicated Receptacle",
	"Range Hood Fan",
	"Recessed Light (Pot Light)",
	"Single-Pole Switch",
}

func testCatalog() []types.CatalogAssembly {
	catalog := make([]types.CatalogAssembly, 0, len(assemblyNames))
	for _, name := range assemblyNames {
		catalog = append(catalog, types.CatalogAssembly{Name: name, Category: types.CategorySpecialty})
	}
	return catalog
}

func item(device, room string, qty int) types.LineItem {
	return types.LineItem{DeviceType: device, Room: room, Quantity: qty}
}

func completeHouse() []types.LineItem {
	return []types.LineItem{
		item("Panel Board / Load Center (200A)", "Basement", 1),
		item("Smoke Detector (Hardwired)", "Bedroom 1", 1),
		item("Smoke Detector (Hardwired)", "Bedroom 2", 1),
		item("Smoke Detector (Hardwired)", "Hall", 2),
		item("Outdoor Receptacle (GFCI)", "Exterior", 1),
		item("Exterior Light", "Exterior", 1),
		item("Doorbell", "Exterior", 1),
		item("Thermostat", "Hall", 1),
		item("Data Outlet (Cat6)", "Bedroom 1", 2),
		item("GFCI Receptacle (20A)", "Kitchen", 3),
		item("GFCI Receptacle (20A)", "Main Bath", 1),
		item("Exhaust Fan (Bathroom)", "Main Bath", 1),
		item("Dedicated Receptacle", "Kitchen", 1),
		item("Range Hood Fan", "Kitchen", 1),
		item("Recessed Light (Pot Light)", "Kitchen", 6),
		item("Single-Pole Switch", "Kitchen", 3),
	}
}

func evaluate(t *testing.T, items []types.LineItem, circuits []types.Circuit) *compliance.Report {
	t.Helper()
	e, err := compliance.NewEvaluator(Rules()...)
	if err != nil {
		t.Fatalf("NewEvaluator: %v", err)
	}

	var summary *panel.Summary
	if len(circuits) > 0 {
		s := panel.Analyze(circuits, 100)
		summary = &s
	}
	return e.Evaluate(compliance.NewContext(types.EstimateParameters{}, items, circuits, summary, testCatalog()))
}

func find(results []types.ComplianceRuleResult, ref, location string) *types.ComplianceRuleResult {
	for i := range results {
		if results[i].Rule == ref && results[i].Location == location {
			return &results[i]
		}
	}
	return nil
}

func TestRuleNamesAreUnique(t *testing.T) {
	if _, err := compliance.NewEvaluator(Rules()...); err != nil {
		t.Fatalf("expected unique rule names: %v", err)
	}
}

func TestCompleteHousePasses(t *testing.T) {
	report := evaluate(t, completeHouse(), nil)

	if report.Summary.Failures != 0 || report.Summary.Warnings != 0 {
		for _, r := range report.Results {
			if r.Status == types.StatusFail || r.Status == types.StatusWarn {
				t.Errorf("unexpected %s: %s at %s: %s", r.Status, r.Rule, r.Location, r.Description)
			}
		}
	}
	if !report.Summary.Score.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected score 100, got %s", report.Summary.Score)
	}

	tests := []struct {
		ref      string
		location string
		want     types.ComplianceStatus
	}{
		{RefSmoke, WholeHouse, types.StatusPass},
		{RefGFCI, "Kitchen", types.StatusPass},
		{RefGFCI, "Main Bath", types.StatusPass},
		{RefExhaust, "Main Bath", types.StatusPass},
		{RefBathroom, "Main Bath", types.StatusInfo},
		{RefKitchenCircuit, "Kitchen", types.StatusPass},
		{RefRangeHood, "Kitchen", types.StatusPass},
		{RefDemand, WholeHouse, types.StatusPass},
	}
	for _, tt := range tests {
		t.Run(tt.ref+" "+tt.location, func(t *testing.T) {
			r := find(report.Results, tt.ref, tt.location)
			if r == nil {
				t.Fatalf("no result for %s at %s", tt.ref, tt.location)
			}
			if r.Status != tt.want {
				t.Errorf("expected %s, got %s (%s)", tt.want, r.Status, r.Description)
			}
		})
	}
}

func TestEmptyEstimate(t *testing.T) {
	report := evaluate(t, nil, nil)
	s := report.Summary

	if s.Failures != 3 || s.Warnings != 3 || s.Passes != 1 || s.Infos != 1 {
		t.Errorf("unexpected summary %+v", s)
	}
	if !s.Score.Equal(decimal.RequireFromString("14.3")) {
		t.Errorf("expected score 14.3, got %s", s.Score)
	}
	for _, ref := range []string{RefSmoke, RefPanel, RefOutdoor} {
		if r := find(report.Results, ref, WholeHouse); r == nil || r.Status != types.StatusFail {
			t.Errorf("expected %s to fail, got %+v", ref, r)
		}
	}
}

func TestSmokeAlarmMinimum(t *testing.T) {
	bedrooms := []types.LineItem{
		item("Duplex Receptacle (15A)", "Bedroom 1", 1),
		item("Duplex Receptacle (15A)", "Bedroom 2", 1),
		item("Duplex Receptacle (15A)", "Bedroom 3", 1),
	}

	tests := []struct {
		name  string
		count int
		want  types.ComplianceStatus
	}{
		{"bedrooms plus one", 4, types.StatusPass},
		{"some", 2, types.StatusWarn},
		{"none", 0, types.StatusFail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := append([]types.LineItem{}, bedrooms...)
			if tt.count > 0 {
				items = append(items, item("Smoke Detector (Hardwired)", "Hall", tt.count))
			}
			r := find(evaluate(t, items, nil).Results, RefSmoke, WholeHouse)
			if r == nil || r.Status != tt.want {
				t.Errorf("expected %s, got %+v", tt.want, r)
			}
		})
	}
}

func TestWetRoomGFCI(t *testing.T) {
	items := []types.LineItem{item("Duplex Receptacle (15A)", "Laundry", 2)}

	r := find(evaluate(t, items, nil).Results, RefGFCI, "Laundry")
	if r == nil || r.Status != types.StatusFail {
		t.Fatalf("expected laundry to fail without GFCI, got %+v", r)
	}

	circuits := []types.Circuit{
		{CircuitNumber: 1, Amps: 20, Poles: 1, Description: "Laundry receptacles", IsGfci: true, OutletCount: 2},
	}
	r = find(evaluate(t, items, circuits).Results, RefGFCI, "Laundry")
	if r == nil || r.Status != types.StatusPass {
		t.Errorf("expected GFCI circuit to satisfy laundry, got %+v", r)
	}
}

func TestCircuitRules(t *testing.T) {
	circuits := []types.Circuit{
		{CircuitNumber: 1, Amps: 20, Poles: 1, Description: "Kitchen counter", OutletCount: 4},
		{CircuitNumber: 2, Amps: 15, Poles: 1, Description: "Bedroom 1", IsAfci: true, OutletCount: 6},
		{CircuitNumber: 3, Amps: 15, Poles: 1, Description: "Bedroom 2", OutletCount: 5},
		{CircuitNumber: 4, Amps: 40, Poles: 2, Description: "Range"},
		{CircuitNumber: 6, Amps: 15, Poles: 1, Description: "Living room", OutletCount: 13},
		{CircuitNumber: 7, Amps: 20, Poles: 1, Description: "Ensuite", IsGfci: true, OutletCount: 1},
	}
	report := evaluate(t, completeHouse(), circuits)

	tests := []struct {
		name     string
		ref      string
		location string
		want     types.ComplianceStatus
	}{
		{"kitchen circuit without GFCI", RefGFCI, "Circuit 1 (Kitchen counter)", types.StatusFail},
		{"bathroom circuit with GFCI", RefGFCI, "Circuit 7 (Ensuite)", types.StatusPass},
		{"bedroom with AFCI", RefAFCI, "Circuit 2 (Bedroom 1)", types.StatusPass},
		{"bedroom without AFCI", RefAFCI, "Circuit 3 (Bedroom 2)", types.StatusFail},
		{"too many outlets", RefOutletsPer, "Circuit 6 (Living room)", types.StatusFail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := find(report.Results, tt.ref, tt.location)
			if r == nil {
				t.Fatalf("no result for %s at %s", tt.ref, tt.location)
			}
			if r.Status != tt.want {
				t.Errorf("expected %s, got %s (%s)", tt.want, r.Status, r.Description)
			}
		})
	}

	if r := find(report.Results, RefGFCI, "Circuit 4 (Range)"); r != nil {
		t.Errorf("two-pole circuit should not be GFCI checked, got %+v", r)
	}
	if r := find(report.Results, RefPanel, WholeHouse); r == nil {
		t.Error("expected a panel result")
	}
}

func TestPanelDemand(t *testing.T) {
	light := []types.Circuit{
		{CircuitNumber: 1, Amps: 15, Poles: 1, Description: "Lights"},
	}
	heavy := []types.Circuit{
		{CircuitNumber: 1, Amps: 50, Poles: 2, Description: "EV charger"},
		{CircuitNumber: 3, Amps: 50, Poles: 2, Description: "Range"},
		{CircuitNumber: 5, Amps: 60, Poles: 2, Description: "Heat pump"},
		{CircuitNumber: 7, Amps: 40, Poles: 2, Description: "Water heater"},
	}

	tests := []struct {
		name     string
		circuits []types.Circuit
	}{
		{"light load", light},
		{"heavy load", heavy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := panel.Analyze(tt.circuits, 100)
			want := types.StatusPass
			if summary.Overloaded {
				want = types.StatusFail
			}
			r := find(evaluate(t, nil, tt.circuits).Results, RefDemand, WholeHouse)
			if r == nil || r.Status != want {
				t.Errorf("expected %s, got %+v", want, r)
			}
		})
	}
}

func TestSwitchLightRatio(t *testing.T) {
	tests := []struct {
		name     string
		lights   int
		switches int
		want     types.ComplianceStatus
	}{
		{"balanced", 10, 4, types.StatusPass},
		{"too few switches", 20, 2, types.StatusWarn},
		{"many switches", 2, 6, types.StatusInfo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := []types.LineItem{
				item("Recessed Light (Pot Light)", "Living", tt.lights),
				item("Single-Pole Switch", "Living", tt.switches),
			}
			var got *types.ComplianceRuleResult
			for _, r := range evaluate(t, items, nil).Results {
				if r.Rule == RefGeneral && strings.Contains(strings.ToLower(r.Description), "switch") {
					got = &r
				}
			}
			if got == nil {
				t.Fatal("expected a ratio verdict")
			}
			if got.Status != tt.want {
				t.Errorf("expected %s, got %s (%s)", tt.want, got.Status, got.Description)
			}
		})
	}
}
