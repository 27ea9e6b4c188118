// Package types - Compliance result types
package types

// ComplianceStatus is the verdict of a compliance rule
type ComplianceStatus string

const (
	StatusPass ComplianceStatus = "PASS"
	StatusWarn ComplianceStatus = "WARN"
	StatusFail ComplianceStatus = "FAIL"
	StatusInfo ComplianceStatus = "INFO"
)

// String returns the string representation
func (s ComplianceStatus) String() string {
	return string(s)
}

// ComplianceRuleResult is one verdict produced by one rule.
// Results are never persisted by the engine.
type ComplianceRuleResult struct {
	// Rule is the code reference (e.g. "CEC 26-700")
	Rule string `json:"rule"`

	// Location is the room or "Whole House"
	Location string `json:"location"`

	// Status is the verdict
	Status ComplianceStatus `json:"status"`

	// Description explains the verdict
	Description string `json:"description"`

	// Recommendation says what to fix, empty on PASS
	Recommendation string `json:"recommendation,omitempty"`
}
