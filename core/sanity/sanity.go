// Package sanity - Plausibility checks on device counts
// These flag counts that are implausible for residential work, typically
// a takeoff that double counted or missed a page. They never change numbers.
package sanity

import (
	"fmt"

	"sparkyestimate/core/inventory"
)

// Severity of a sanity warning
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Rule identifiers
const (
	RuleMaxCount     = "max_count"
	RuleCECMinimum   = "cec_minimum"
	RuleMissingPanel = "missing_panel"
	RuleRatio        = "ratio_check"
	RuleSqftRatio    = "sqft_ratio"
	RuleEmpty        = "empty_result"
)

// Warning is one sanity finding
type Warning struct {
	Rule       string   `json:"rule"`
	Message    string   `json:"message"`
	Severity   Severity `json:"severity"`
	DeviceType string   `json:"device_type,omitempty"`
}

// Limit is a per-device maximum count
type Limit struct {
	DeviceType string
	Keywords   []string
	Max        int
	Message    string
}

// DefaultLimits are the residential maximums
var DefaultLimits = []Limit{
	{"Duplex Receptacle", []string{"duplex"}, 80, "More than 80 outlets seems excessive for residential"},
	{"GFCI Receptacle", []string{"gfci receptacle"}, 20, "More than 20 GFCI outlets is unusual"},
	{"Single-Pole Switch", []string{"single-pole switch"}, 50, "More than 50 switches seems high for residential"},
	{"Pot Light", []string{"recessed", "pot light"}, 100, "More than 100 pot lights is very high"},
	{"Smoke Detector", []string{"smoke detector"}, 20, "More than 20 smoke detectors is unusual for residential"},
	{"Panel Board", []string{"panel board"}, 3, "More than 3 panels is unusual for residential"},
	{"Exhaust Fan", []string{"exhaust fan"}, 10, "More than 10 exhaust fans is unusual"},
}

// Presence thresholds on the total device count
const (
	SmokeThreshold = 5
	GFCIThreshold  = 10
	PanelThreshold = 10
	RatioThreshold = 5
)

// Square feet per outlet bounds
const (
	SqftPerOutletLow  = 150
	SqftPerOutletHigh = 50
)

var (
	smokeKeywords  = []string{"smoke"}
	gfciKeywords   = []string{"gfci"}
	panelKeywords  = []string{"panel board", "sub-panel", "subpanel"}
	switchKeywords = []string{"switch"}
	lightKeywords  = []string{"recessed", "pot light", "surface mount light", "pendant", "sconce", "exterior light", "track light", "batten", "led panel"}
	outletKeywords = []string{"duplex"}
)

// Check runs every sanity rule. houseSqft of zero skips the area check.
func Check(inv *inventory.Inventory, houseSqft int) []Warning {
	return CheckWithLimits(inv, houseSqft, DefaultLimits)
}

// CheckWithLimits is Check with custom per-device maximums
func CheckWithLimits(inv *inventory.Inventory, houseSqft int, limits []Limit) []Warning {
	warnings := []Warning{}
	total := inv.Total

	for _, l := range limits {
		if n := inv.Count(l.Keywords...); n > l.Max {
			warnings = append(warnings, Warning{
				Rule:       RuleMaxCount,
				Message:    fmt.Sprintf("%s: %d found. %s", l.DeviceType, n, l.Message),
				Severity:   SeverityWarning,
				DeviceType: l.DeviceType,
			})
		}
	}

	if total > SmokeThreshold && inv.Count(smokeKeywords...) == 0 {
		warnings = append(warnings, Warning{
			Rule:       RuleCECMinimum,
			Message:    "No smoke detectors found. CEC requires hardwired smoke detectors in residential.",
			Severity:   SeverityError,
			DeviceType: "Smoke Detector",
		})
	}
	if total > GFCIThreshold && inv.Count(gfciKeywords...) == 0 {
		warnings = append(warnings, Warning{
			Rule:       RuleCECMinimum,
			Message:    "No GFCI receptacles found. CEC requires GFCI in kitchens, bathrooms, outdoors, garages.",
			Severity:   SeverityError,
			DeviceType: "GFCI Receptacle",
		})
	}
	if total > PanelThreshold && inv.Count(panelKeywords...) == 0 {
		warnings = append(warnings, Warning{
			Rule:       RuleMissingPanel,
			Message:    "No panel board found. Every residential service needs at least one panel.",
			Severity:   SeverityWarning,
			DeviceType: "Panel Board",
		})
	}

	switches := inv.Count(switchKeywords...)
	lights := inv.Count(lightKeywords...)
	if lights > RatioThreshold && switches == 0 {
		warnings = append(warnings, Warning{
			Rule:     RuleRatio,
			Message:  fmt.Sprintf("%d lights found but 0 switches. Lights need switches.", lights),
			Severity: SeverityWarning,
		})
	}
	if switches > RatioThreshold && lights == 0 {
		warnings = append(warnings, Warning{
			Rule:     RuleRatio,
			Message:  fmt.Sprintf("%d switches found but 0 lights. Check if lights were missed.", switches),
			Severity: SeverityWarning,
		})
	}

	if houseSqft > 0 {
		outlets := inv.Count(outletKeywords...)
		if outlets > 0 && outlets*SqftPerOutletLow < houseSqft {
			warnings = append(warnings, Warning{
				Rule:     RuleSqftRatio,
				Message:  fmt.Sprintf("Only %d outlets for %d sqft. Expected at least %d.", outlets, houseSqft, houseSqft/SqftPerOutletLow),
				Severity: SeverityInfo,
			})
		}
		if outlets*SqftPerOutletHigh > houseSqft {
			warnings = append(warnings, Warning{
				Rule:     RuleSqftRatio,
				Message:  fmt.Sprintf("%d outlets for %d sqft seems high. Expected max ~%d.", outlets, houseSqft, houseSqft/SqftPerOutletHigh),
				Severity: SeverityInfo,
			})
		}
	}

	if total == 0 {
		warnings = append(warnings, Warning{
			Rule:     RuleEmpty,
			Message:  "No devices on the estimate.",
			Severity: SeverityError,
		})
	}

	return warnings
}

// HasErrors returns true if any warning is an error
func HasErrors(warnings []Warning) bool {
	for _, w := range warnings {
		if w.Severity == SeverityError {
			return true
		}
	}
	return false
}
