package catalog

import (
	"testing"

	"github.com/shopspring/decimal"

	"sparkyestimate/core/matcher"
	"sparkyestimate/core/types"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	c := Default()

	if errs := Validate(c, DefaultValidationRules()); len(errs) > 0 {
		for _, err := range errs {
			t.Errorf("validation: %v", err)
		}
	}
	if len(c.Assemblies) < 40 {
		t.Errorf("expected the full default assembly set, got %d", len(c.Assemblies))
	}
}

func TestDefaultWireCostsCoverAssemblies(t *testing.T) {
	c := Default()
	for _, a := range c.Assemblies {
		if a.WireType == "" {
			continue
		}
		if _, ok := c.WireCosts.CostPerFoot(a.WireType); !ok {
			t.Errorf("assembly %q: no cost for wire %q", a.Name, a.WireType)
		}
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	RegisterAssemblies(r)

	if err := r.Register(types.CatalogAssembly{Name: "duplex receptacle (15a)", Category: types.CategoryReceptacles}); err == nil {
		t.Error("expected duplicate name error ignoring case")
	}
	if err := r.Register(types.CatalogAssembly{Name: "  "}); err == nil {
		t.Error("expected empty name error")
	}

	a, ok := r.Get("GFCI RECEPTACLE (20A)")
	if !ok || a.WireType != "12/2 NM-B" {
		t.Errorf("unexpected lookup %+v", a)
	}

	list := r.List()
	if list[0].Name != "Duplex Receptacle (15A)" || list[len(list)-1].Name != HomeRunName {
		t.Errorf("expected registration order, got %s .. %s", list[0].Name, list[len(list)-1].Name)
	}

	stats := r.Stats()
	if stats.Total != len(list) {
		t.Errorf("expected %d total, got %d", len(list), stats.Total)
	}
	if stats.ByCategory[types.CategorySafety] != 3 {
		t.Errorf("expected 3 safety assemblies, got %d", stats.ByCategory[types.CategorySafety])
	}
	if got := r.ListByCategory(types.CategoryService); len(got) != 4 {
		t.Errorf("expected 4 service assemblies, got %d", len(got))
	}
}

func TestDefaultAssembliesMatch(t *testing.T) {
	c := Default()

	tests := []struct {
		query string
		want  string
	}{
		{"GFCI Outlet 20A Kitchen", "GFCI Receptacle (20A)"},
		{"three way switch", "3-Way Switch"},
		{"Range Hood", "Range Hood Fan"},
		{"smoke alarm", "Smoke Detector (Hardwired)"},
		{"EV charger", "EV Charger Outlet (50A)"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := matcher.Match(tt.query, c.Assemblies)
			if got == nil || got.Name != tt.want {
				t.Errorf("Match(%q) = %v, want %s", tt.query, got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	bad := types.Catalog{
		Assemblies: []types.CatalogAssembly{
			{Name: "Widget", Category: "gadgets"},
			{Name: "Feeder", Category: types.CategoryService, WireFootage: decimal.NewFromInt(10)},
			{Name: "widget", Category: types.CategorySpecialty, LaborHours: decimal.NewFromInt(-1)},
		},
		Parts: []types.PartsCatalogEntry{
			{Name: "Thing", Category: "stuff"},
		},
		Links: []types.AssemblyPart{
			{AssemblyName: "Nothing", PartName: "Thing", Quantity: 0},
		},
		WireCosts: types.WireCostTable{"14/2 NM-B": decimal.NewFromInt(-1)},
		Permits: []types.PermitFeeSchedule{
			{Name: "a", Active: true},
			{Name: "b", Active: true},
		},
	}

	// unknown category, wire without type, duplicate, negative hours,
	// part category, unknown link assembly, link quantity, negative wire,
	// two active schedules
	if errs := Validate(bad, DefaultValidationRules()); len(errs) != 9 {
		t.Errorf("expected 9 errors, got %d: %v", len(errs), errs)
	}
}

func TestMerge(t *testing.T) {
	base := Default()
	custom := types.Catalog{
		Assemblies: []types.CatalogAssembly{
			{Name: "duplex receptacle (15A)", Category: types.CategoryReceptacles, MaterialCost: decimal.NewFromInt(9)},
			{Name: "Heated Floor Thermostat", Category: types.CategorySpecialty},
		},
		Parts:     []types.PartsCatalogEntry{{Name: "Wire nuts", Category: types.PartWireNut, UnitCost: decimal.RequireFromString("0.20")}},
		WireCosts: types.WireCostTable{"14/2 NM-B": decimal.RequireFromString("0.50")},
	}

	merged := Merge(base, custom)

	if len(merged.Assemblies) != len(base.Assemblies)+1 {
		t.Fatalf("expected one added assembly, got %d", len(merged.Assemblies)-len(base.Assemblies))
	}
	if merged.Assemblies[0].Name != "duplex receptacle (15A)" || !merged.Assemblies[0].MaterialCost.Equal(decimal.NewFromInt(9)) {
		t.Errorf("expected override in place, got %+v", merged.Assemblies[0])
	}
	if last := merged.Assemblies[len(merged.Assemblies)-1]; last.Name != "Heated Floor Thermostat" {
		t.Errorf("expected appended assembly last, got %s", last.Name)
	}
	if len(merged.Parts) != len(base.Parts) {
		t.Errorf("expected part replaced in place, got %d parts", len(merged.Parts))
	}
	if cost, _ := merged.WireCosts.CostPerFoot("14/2 NM-B"); !cost.Equal(decimal.RequireFromString("0.5")) {
		t.Errorf("expected overridden wire cost, got %s", cost)
	}
	if len(merged.Permits) != 1 {
		t.Errorf("expected base permit schedule kept, got %d", len(merged.Permits))
	}
}
