// Package permit - Tiered permit fee lookup
// Tiers are walked in listed order; the first tier whose bound covers
// the amount wins.
package permit

import (
	"fmt"

	"github.com/shopspring/decimal"

	"sparkyestimate/core/types"
)

// Fee is the outcome of a permit fee lookup
type Fee struct {
	// Fee is the resolved fee, zero when nothing matched
	Fee decimal.Decimal `json:"fee"`

	// Label is the matched tier label
	Label string `json:"label,omitempty"`

	// Matched is false when no schedule or tier applied
	Matched bool `json:"matched"`

	// Schedule is the schedule consulted
	Schedule string `json:"schedule,omitempty"`

	// Reason explains an unmatched result
	Reason string `json:"reason,omitempty"`
}

// Resolve looks up the fee for a category and an amps-or-value amount.
// A nil or inactive schedule yields an unmatched zero fee, never an error.
func Resolve(schedule *types.PermitFeeSchedule, category types.PermitCategory, amount decimal.Decimal) Fee {
	if schedule == nil || !schedule.Active {
		return Fee{Fee: decimal.Zero, Reason: "no active permit schedule"}
	}

	tiers := schedule.Tiers[category]
	for _, tier := range tiers {
		bound, ok := tier.Bound()
		if !ok {
			continue
		}
		if bound.GreaterThanOrEqual(amount) {
			return Fee{
				Fee:      tier.Fee,
				Label:    tier.Label,
				Matched:  true,
				Schedule: schedule.Name,
			}
		}
	}

	return Fee{
		Fee:      decimal.Zero,
		Schedule: schedule.Name,
		Reason:   fmt.Sprintf("no %s tier covers %s", category, amount.String()),
	}
}

// Active returns the first active schedule, or nil
func Active(schedules []types.PermitFeeSchedule) *types.PermitFeeSchedule {
	for i := range schedules {
		if schedules[i].Active {
			return &schedules[i]
		}
	}
	return nil
}

// CategoryFor maps a job type to its permit category.
// Service upgrades and new construction are keyed by panel amps; everything
// else is keyed by job value.
func CategoryFor(jobType types.JobType) types.PermitCategory {
	switch jobType {
	case types.JobServiceUpgrade:
		return types.PermitServiceUpgrade
	case types.JobNewConstruction:
		return types.PermitResidentialService
	default:
		return types.PermitOther
	}
}

// IsAmpKeyed reports whether a category's tiers are bounded by amps
func IsAmpKeyed(category types.PermitCategory) bool {
	return category == types.PermitResidentialService || category == types.PermitServiceUpgrade
}

// ValidateSchedule rejects tiers that are unbounded or out of ascending order.
// Meant for load time; Resolve itself assumes a valid schedule.
func ValidateSchedule(schedule types.PermitFeeSchedule) error {
	for category, tiers := range schedule.Tiers {
		if !category.IsValid() {
			return fmt.Errorf("schedule %q: unknown permit category %q", schedule.Name, category)
		}
		var prev decimal.Decimal
		for i, tier := range tiers {
			bound, ok := tier.Bound()
			if !ok {
				return fmt.Errorf("schedule %q: %s tier %d (%s) has no bound", schedule.Name, category, i, tier.Label)
			}
			if i > 0 && !bound.GreaterThan(prev) {
				return fmt.Errorf("schedule %q: %s tiers not in ascending order at %q", schedule.Name, category, tier.Label)
			}
			if tier.Fee.IsNegative() {
				return fmt.Errorf("schedule %q: %s tier %q has a negative fee", schedule.Name, category, tier.Label)
			}
			prev = bound
		}
	}
	return nil
}
