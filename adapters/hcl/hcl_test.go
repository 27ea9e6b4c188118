package hcl

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"sparkyestimate/core/catalog"
	"sparkyestimate/core/types"
	"sparkyestimate/internal/errors"
)

const estimateSrc = `
estimate "Smith Renovation" {
  labor_rate          = 92.50
  overhead_pct        = 15
  profit_pct          = 10
  waste_factor_pct    = 12.5
  job_type            = "renovation"
  labor_multiplier    = 1.25
  panel_size          = 100
  include_permit      = true
  permit_fee_override = "240.00"
  crew_size           = 2
  home_runs           = 14
  house_sqft          = 1800
  fill_from_catalog   = false

  spool_override "14/2 NM-B" {
    s150 = 3
  }
}

item "GFCI Receptacle (20A)" {
  room          = "Kitchen"
  quantity      = 4
  material_cost = 28.00
  labor_hours   = 0.25
  wire_type     = "12/2 NM-B"
  wire_footage  = 25
}

item "Smoke Detector (Hardwired)" {
  room = "Hall"
}

service "Service mast repair" {
  material_cost = 310.55
  labor_hours   = 3
}

circuit {
  number      = 1
  amps        = 20
  description = "Kitchen counter"
  gfci        = true
  outlets     = 4
}

circuit {
  number      = 2
  amps        = 40
  poles       = 2
  description = "Range"
}

crew "Sam" {
  rate = 95
}

crew "Apprentice" {
  rate = 42.75
}
`

func TestParseEstimate(t *testing.T) {
	req, err := ParseEstimate([]byte(estimateSrc), "smith.hcl", Options{FillFromCatalog: true, DefaultRate: decimal.NewFromInt(80)})
	if err != nil {
		t.Fatalf("ParseEstimate: %v", err)
	}

	p := req.Params
	if p.Name != "Smith Renovation" || p.JobType != types.JobRenovation {
		t.Errorf("unexpected identity %q / %q", p.Name, p.JobType)
	}
	if !p.LaborRate.Equal(decimal.RequireFromString("92.5")) || !p.WasteFactorPct.Equal(decimal.RequireFromString("12.5")) {
		t.Errorf("unexpected rates %s / %s", p.LaborRate, p.WasteFactorPct)
	}
	if p.LaborMultiplier == nil || !p.LaborMultiplier.Equal(decimal.RequireFromString("1.25")) {
		t.Errorf("unexpected labour multiplier %v", p.LaborMultiplier)
	}
	if p.LaborHoursOverride != nil {
		t.Errorf("expected no hours override, got %s", p.LaborHoursOverride)
	}
	if p.PermitFeeOverride == nil || !p.PermitFeeOverride.Equal(decimal.NewFromInt(240)) {
		t.Errorf("expected numeric string permit override, got %v", p.PermitFeeOverride)
	}
	if p.PanelSize != 100 || p.CrewSize != 2 || p.HomeRuns != 14 || p.HouseSqft != 1800 || !p.IncludePermit {
		t.Errorf("unexpected ints %+v", p)
	}

	o, ok := p.SpoolOverrides["14/2 NM-B"]
	if !ok || o.S150 == nil || *o.S150 != 3 || o.S75 != nil {
		t.Errorf("unexpected spool override %+v", o)
	}

	if req.FillFromCatalog {
		t.Error("expected the file to switch catalog filling off")
	}
	if !req.DefaultRate.Equal(decimal.NewFromInt(80)) {
		t.Errorf("expected default rate from options, got %s", req.DefaultRate)
	}

	if len(req.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(req.Items))
	}
	if it := req.Items[0]; it.Quantity != 4 || !it.MaterialCost.Equal(decimal.NewFromInt(28)) || !it.WireFootage.Equal(decimal.NewFromInt(25)) {
		t.Errorf("unexpected item %+v", it)
	}
	if it := req.Items[1]; it.Quantity != 1 || !it.MaterialCost.IsZero() {
		t.Errorf("expected defaulted item, got %+v", it)
	}

	if len(req.Services) != 1 || !req.Services[0].MaterialCost.Equal(decimal.RequireFromString("310.55")) {
		t.Errorf("unexpected services %+v", req.Services)
	}
	if len(req.Circuits) != 2 || req.Circuits[0].Poles != 1 || req.Circuits[1].Poles != 2 || !req.Circuits[0].IsGfci {
		t.Errorf("unexpected circuits %+v", req.Circuits)
	}
	if len(req.Crew) != 2 || !req.Crew[1].HourlyRate.Equal(decimal.RequireFromString("42.75")) {
		t.Errorf("unexpected crew %+v", req.Crew)
	}
}

func TestParseEstimateDefaults(t *testing.T) {
	req, err := ParseEstimate([]byte(`estimate "Bare" {}`), "bare.hcl", Options{FillFromCatalog: true})
	if err != nil {
		t.Fatal(err)
	}
	if !req.FillFromCatalog || req.Params.JobType != "" || !req.Params.LaborRate.IsZero() {
		t.Errorf("expected unset values left for config defaults, got %+v", req)
	}
}

func TestParseEstimateRecordsGivenParams(t *testing.T) {
	src := `
estimate "At Cost" {
  overhead_pct     = 0
  profit_pct       = 0
  waste_factor_pct = 0
  panel_size       = 100
}
`
	req, err := ParseEstimate([]byte(src), "atcost.hcl", Options{})
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"overhead_pct", "profit_pct", "waste_factor_pct", "panel_size"} {
		if !req.Given.Has(name) {
			t.Errorf("expected %s recorded as given", name)
		}
	}
	for _, name := range []string{"labor_rate", "crew_size", "job_type", "include_permit"} {
		if req.Given.Has(name) {
			t.Errorf("expected absent %s not recorded", name)
		}
	}
	if !req.Params.OverheadPct.IsZero() || !req.Params.WasteFactorPct.IsZero() {
		t.Errorf("expected explicit zeros, got %+v", req.Params)
	}
}

func TestParseEstimateErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantType errors.Type
		wantText string
	}{
		{"syntax", "estimate \"x\" {\n  labor_rate = \n}", errors.TypeParsing, "bad.hcl:"},
		{"no estimate block", `item "Pot Light" {}`, errors.TypeParsing, "estimate block is required"},
		{"unknown attribute", "estimate \"x\" {\n  colour = \"red\"\n}", errors.TypeParsing, "bad.hcl:2"},
		{"bad number", "estimate \"x\" {\n  labor_rate = \"lots\"\n}", errors.TypeParsing, "Invalid number"},
		{"bad job type", "estimate \"x\" {\n  job_type = \"demolition\"\n}", errors.TypeParsing, "unknown job type"},
		{"crew without rate", "estimate \"x\" {}\ncrew \"Sam\" {}", errors.TypeParsing, "rate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseEstimate([]byte(tt.src), "bad.hcl", Options{})
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.IsType(err, tt.wantType) {
				t.Errorf("expected %s, got %v", tt.wantType, err)
			}
			if !strings.Contains(err.Error(), tt.wantText) {
				t.Errorf("expected %q in %q", tt.wantText, err.Error())
			}
		})
	}
}

func TestLoadEstimateMissingFile(t *testing.T) {
	_, err := LoadEstimate(filepath.Join(t.TempDir(), "nope.hcl"), Options{})
	if !errors.IsType(err, errors.TypeNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

const catalogSrc = `
assembly "Heated Floor Thermostat" {
  category      = "specialty"
  device        = "Line-voltage floor heat thermostat"
  wire_type     = "14/2 NM-B"
  wire_footage  = 20
  labor_hours   = 0.75
  material_cost = 145.18
}

assembly "Duplex Receptacle (15A)" {
  category      = "receptacles"
  material_cost = 7.25
}

part "Floor sensor" {
  category  = "misc"
  unit_cost = 12.4
}

link "Heated Floor Thermostat" "Floor sensor" {}

link "Heated Floor Thermostat" "Wire nuts" {
  quantity = 3
}

wire "14/2 NM-B" {
  cost_per_foot = 0.52
}

permit_schedule "Town fees" {
  active = true

  tier "residential_service" {
    label    = "Up to 100A"
    max_amps = 100
    fee      = 160
  }

  tier "residential_service" {
    label    = "Up to 200A"
    max_amps = 200
    fee      = 230
  }

  tier "other" {
    label     = "Up to $10,000"
    max_value = 10000
    fee       = 120
  }
}
`

func TestParseCatalog(t *testing.T) {
	c, err := ParseCatalog([]byte(catalogSrc), "custom.hcl")
	if err != nil {
		t.Fatalf("ParseCatalog: %v", err)
	}

	if len(c.Assemblies) != 2 {
		t.Fatalf("expected 2 assemblies, got %d", len(c.Assemblies))
	}
	a := c.Assemblies[0]
	if a.Category != types.CategorySpecialty || !a.MaterialCost.Equal(decimal.RequireFromString("145.18")) || !a.LaborHours.Equal(decimal.RequireFromString("0.75")) {
		t.Errorf("unexpected assembly %+v", a)
	}
	if a.MaterialCost.String() != "145.18" {
		t.Errorf("expected exact decimal, got %s", a.MaterialCost.String())
	}

	if len(c.Links) != 2 || c.Links[0].Quantity != 1 || c.Links[1].Quantity != 3 {
		t.Errorf("unexpected links %+v", c.Links)
	}
	if cost, ok := c.WireCosts.CostPerFoot("14/2 NM-B"); !ok || !cost.Equal(decimal.RequireFromString("0.52")) {
		t.Errorf("unexpected wire cost %s", cost)
	}

	if len(c.Permits) != 1 || !c.Permits[0].Active {
		t.Fatalf("unexpected permit schedules %+v", c.Permits)
	}
	tiers := c.Permits[0].Tiers
	if len(tiers[types.PermitResidentialService]) != 2 || tiers[types.PermitResidentialService][1].Label != "Up to 200A" {
		t.Errorf("unexpected residential tiers %+v", tiers[types.PermitResidentialService])
	}
	if other := tiers[types.PermitOther]; len(other) != 1 || other[0].MaxValue == nil || !other[0].MaxValue.Equal(decimal.NewFromInt(10000)) {
		t.Errorf("unexpected other tiers %+v", other)
	}
}

func TestCatalogMergesOverDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.hcl")
	if err := os.WriteFile(path, []byte(catalogSrc), 0644); err != nil {
		t.Fatal(err)
	}

	custom, err := LoadCatalog(path)
	if err != nil {
		t.Fatal(err)
	}
	merged := catalog.Merge(catalog.Default(), custom)

	if errs := catalog.Validate(merged, catalog.DefaultValidationRules()); len(errs) > 0 {
		t.Errorf("expected merged catalog to validate, got %v", errs)
	}
	if merged.Permits[0].Name != "Town fees" {
		t.Errorf("expected custom permit schedule, got %s", merged.Permits[0].Name)
	}
}

func TestParseCatalogErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"missing category", `assembly "X" {}`},
		{"bad cost", "part \"Y\" {\n  category = \"misc\"\n  unit_cost = true\n}"},
		{"link with one label", `link "X" {}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseCatalog([]byte(tt.src), "bad.hcl"); !errors.IsType(err, errors.TypeParsing) {
				t.Errorf("expected parsing error, got %v", err)
			}
		})
	}
}
