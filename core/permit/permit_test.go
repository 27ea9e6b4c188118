package permit

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"sparkyestimate/core/types"
)

func amps(n int) *int { return &n }

func value(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func testSchedule() *types.PermitFeeSchedule {
	return &types.PermitFeeSchedule{
		Name:   "Test 2024",
		Active: true,
		Tiers: map[types.PermitCategory][]types.PermitTier{
			types.PermitResidentialService: {
				{Label: "Up to 100A", MaxAmps: amps(100), Fee: decimal.NewFromInt(150)},
				{Label: "101A - 200A", MaxAmps: amps(200), Fee: decimal.NewFromInt(250)},
				{Label: "201A - 400A", MaxAmps: amps(400), Fee: decimal.NewFromInt(450)},
			},
			types.PermitOther: {
				{Label: "Up to $1,000", MaxValue: value("1000"), Fee: decimal.NewFromInt(75)},
				{Label: "Up to $5,000", MaxValue: value("5000"), Fee: decimal.NewFromInt(150)},
			},
		},
	}
}

func TestResolve(t *testing.T) {
	schedule := testSchedule()

	tests := []struct {
		name     string
		category types.PermitCategory
		amount   string
		fee      int64
		label    string
		matched  bool
	}{
		{"first tier", types.PermitResidentialService, "60", 150, "Up to 100A", true},
		{"bound is inclusive", types.PermitResidentialService, "100", 150, "Up to 100A", true},
		{"second tier", types.PermitResidentialService, "200", 250, "101A - 200A", true},
		{"value keyed", types.PermitOther, "1000.01", 150, "Up to $5,000", true},
		{"above all tiers", types.PermitOther, "9000", 0, "", false},
		{"category without tiers", types.PermitServiceUpgrade, "100", 0, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(schedule, tt.category, decimal.RequireFromString(tt.amount))
			if got.Matched != tt.matched {
				t.Fatalf("expected matched=%v, got %+v", tt.matched, got)
			}
			if !got.Fee.Equal(decimal.NewFromInt(tt.fee)) {
				t.Errorf("expected fee %d, got %s", tt.fee, got.Fee)
			}
			if got.Label != tt.label {
				t.Errorf("expected label %q, got %q", tt.label, got.Label)
			}
		})
	}
}

func TestResolveWithoutSchedule(t *testing.T) {
	got := Resolve(nil, types.PermitResidentialService, decimal.NewFromInt(100))
	if got.Matched || !got.Fee.IsZero() {
		t.Fatalf("expected unmatched zero fee, got %+v", got)
	}
	if got.Reason == "" {
		t.Error("expected a reason for the missing schedule")
	}

	inactive := testSchedule()
	inactive.Active = false
	if got := Resolve(inactive, types.PermitResidentialService, decimal.NewFromInt(100)); got.Matched {
		t.Errorf("expected inactive schedule to be ignored, got %+v", got)
	}
}

func TestActive(t *testing.T) {
	schedules := []types.PermitFeeSchedule{
		{Name: "2023", Active: false},
		{Name: "2024", Active: true},
	}
	got := Active(schedules)
	if got == nil || got.Name != "2024" {
		t.Fatalf("expected 2024 schedule, got %+v", got)
	}
	if Active(nil) != nil {
		t.Error("expected nil for no schedules")
	}
}

func TestCategoryFor(t *testing.T) {
	tests := []struct {
		job  types.JobType
		want types.PermitCategory
	}{
		{types.JobNewConstruction, types.PermitResidentialService},
		{types.JobServiceUpgrade, types.PermitServiceUpgrade},
		{types.JobRenovation, types.PermitOther},
		{types.JobType(""), types.PermitOther},
	}
	for _, tt := range tests {
		if got := CategoryFor(tt.job); got != tt.want {
			t.Errorf("CategoryFor(%q) = %q, want %q", tt.job, got, tt.want)
		}
	}
}

func TestValidateSchedule(t *testing.T) {
	if err := ValidateSchedule(*testSchedule()); err != nil {
		t.Fatalf("expected valid schedule, got %v", err)
	}

	unsorted := types.PermitFeeSchedule{
		Name: "bad",
		Tiers: map[types.PermitCategory][]types.PermitTier{
			types.PermitServiceUpgrade: {
				{Label: "200A", MaxAmps: amps(200), Fee: decimal.NewFromInt(200)},
				{Label: "100A", MaxAmps: amps(100), Fee: decimal.NewFromInt(100)},
			},
		},
	}
	err := ValidateSchedule(unsorted)
	if err == nil {
		t.Fatal("expected error for unsorted tiers")
	}
	if !strings.Contains(err.Error(), "ascending") {
		t.Errorf("unexpected error: %v", err)
	}

	unbounded := types.PermitFeeSchedule{
		Name: "bad",
		Tiers: map[types.PermitCategory][]types.PermitTier{
			types.PermitOther: {{Label: "any", Fee: decimal.NewFromInt(10)}},
		},
	}
	if err := ValidateSchedule(unbounded); err == nil {
		t.Error("expected error for a tier without a bound")
	}
}
