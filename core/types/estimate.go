// Package types - Estimate input types
package types

import "github.com/shopspring/decimal"

// LineItem is one priced device occurrence on an estimate.
// The engine never mutates line items.
type LineItem struct {
	// DeviceType is the free-text device name (e.g. "GFCI Receptacle (20A)")
	DeviceType string `json:"device_type"`

	// Room is where the device is installed
	Room string `json:"room,omitempty"`

	// Quantity is the number of devices
	Quantity int `json:"quantity"`

	// MaterialCost is the unit material cost
	MaterialCost decimal.Decimal `json:"material_cost"`

	// LaborHours is the unit labour in decimal hours
	LaborHours decimal.Decimal `json:"labor_hours"`

	// WireType is the cable type feeding the device
	WireType string `json:"wire_type,omitempty"`

	// WireFootage is the per-device wire allowance in feet
	WireFootage decimal.Decimal `json:"wire_footage"`

	// MarkupPct is an item-specific material markup
	MarkupPct decimal.Decimal `json:"markup_pct"`

	// BoxType overrides the assembly box
	BoxType string `json:"box_type,omitempty"`

	// CoverPlate overrides the assembly cover plate
	CoverPlate string `json:"cover_plate,omitempty"`
}

// ServiceLine is non-device work priced as a lump of material and hours
type ServiceLine struct {
	Description  string          `json:"description"`
	MaterialCost decimal.Decimal `json:"material_cost"`
	LaborHours   decimal.Decimal `json:"labor_hours"`
}

// SpoolOverride is a manual spool count for a wire type.
// A nil field means the computed value is used.
type SpoolOverride struct {
	S150 *int `json:"s150,omitempty"`
	S75  *int `json:"s75,omitempty"`
}

// EstimateParameters are the estimate-level inputs.
// Negative percentages are not rejected; they flow through the arithmetic.
type EstimateParameters struct {
	// Name is the estimate name
	Name string `json:"name"`

	// LaborRate is the hourly labour rate
	LaborRate decimal.Decimal `json:"labor_rate"`

	// OverheadPct is applied to the subtotal
	OverheadPct decimal.Decimal `json:"overhead_pct"`

	// ProfitPct is applied to subtotal plus overhead
	ProfitPct decimal.Decimal `json:"profit_pct"`

	// MaterialMarkupPct is applied to combined material
	MaterialMarkupPct decimal.Decimal `json:"material_markup_pct"`

	// LaborMarkupPct is applied to combined labour
	LaborMarkupPct decimal.Decimal `json:"labor_markup_pct"`

	// WasteFactorPct is added to wire footage
	WasteFactorPct decimal.Decimal `json:"waste_factor_pct"`

	// JobType selects the labour multiplier and permit category
	JobType JobType `json:"job_type"`

	// LaborMultiplier replaces the job-type multiplier when set
	LaborMultiplier *decimal.Decimal `json:"labor_multiplier,omitempty"`

	// LaborHoursOverride replaces total labour hours when set
	LaborHoursOverride *decimal.Decimal `json:"labor_hours_override,omitempty"`

	// PanelSize is the main panel rating in amps
	PanelSize int `json:"panel_size"`

	// IncludePermit adds the permit fee to the grand total
	IncludePermit bool `json:"include_permit"`

	// PermitFeeOverride replaces the resolved permit fee when set
	PermitFeeOverride *decimal.Decimal `json:"permit_fee_override,omitempty"`

	// SpoolOverrides maps wire type to manual spool counts
	SpoolOverrides map[string]SpoolOverride `json:"spool_overrides,omitempty"`

	// CrewSize is the number of electricians on site
	CrewSize int `json:"crew_size"`

	// HomeRuns is the number of circuits run back to the panel.
	// Each one adds a home-run assembly line to the estimate.
	HomeRuns int `json:"home_runs,omitempty"`

	// HouseSqft is the finished floor area, used by the sanity checks
	HouseSqft int `json:"house_sqft,omitempty"`
}

// CrewMember is an electrician assigned to the estimate
type CrewMember struct {
	Name       string          `json:"name"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
}

// ParamSet records the estimate parameters an input file gave explicitly,
// keyed by their JSON names. Callers use it to tell an explicit zero from an
// absent value.
type ParamSet map[string]bool

// Add marks a parameter as given
func (s ParamSet) Add(name string) {
	s[name] = true
}

// Has reports whether a parameter was given. A nil set has nothing.
func (s ParamSet) Has(name string) bool {
	return s[name]
}
