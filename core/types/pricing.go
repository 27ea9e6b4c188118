// Package types - Permit fee schedule types
package types

import "github.com/shopspring/decimal"

// PermitCategory groups permit tiers
type PermitCategory string

const (
	PermitResidentialService PermitCategory = "residential_service"
	PermitServiceUpgrade     PermitCategory = "service_upgrade"
	PermitOther              PermitCategory = "other"
)

// String returns the string representation
func (c PermitCategory) String() string {
	return string(c)
}

// IsValid checks if the category is known
func (c PermitCategory) IsValid() bool {
	switch c {
	case PermitResidentialService, PermitServiceUpgrade, PermitOther:
		return true
	default:
		return false
	}
}

// PermitTier is one step of a permit fee schedule.
// Exactly one of MaxAmps or MaxValue is expected to be set.
type PermitTier struct {
	// Label is a human-readable tier label
	Label string `json:"label"`

	// MaxAmps is the inclusive upper bound for amp-keyed categories
	MaxAmps *int `json:"max_amps,omitempty"`

	// MaxValue is the inclusive upper bound for value-keyed categories
	MaxValue *decimal.Decimal `json:"max_value,omitempty"`

	// Fee is the permit fee for this tier
	Fee decimal.Decimal `json:"fee"`
}

// Bound returns the tier upper bound, preferring MaxAmps.
// ok is false when neither bound is set.
func (t PermitTier) Bound() (decimal.Decimal, bool) {
	if t.MaxAmps != nil {
		return decimal.NewFromInt(int64(*t.MaxAmps)), true
	}
	if t.MaxValue != nil {
		return *t.MaxValue, true
	}
	return decimal.Zero, false
}

// PermitFeeSchedule is a set of tiers grouped by category.
// Tiers within a category are in ascending order of bound.
type PermitFeeSchedule struct {
	// Name identifies the schedule (e.g. jurisdiction and year)
	Name string `json:"name"`

	// Active marks the schedule in force
	Active bool `json:"active"`

	// Tiers maps category to ordered tiers
	Tiers map[PermitCategory][]PermitTier `json:"tiers"`
}
