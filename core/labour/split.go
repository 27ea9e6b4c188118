// Package labour - Rough-in / finish labour split
// Apportions labour hours into the two stages of electrical work per device
// category, scales by job type and derives crew-days and cost.
package labour

import (
	"fmt"

	"github.com/shopspring/decimal"

	"sparkyestimate/core/determinism"
	"sparkyestimate/core/matcher"
	"sparkyestimate/core/types"
)

// HoursPerDay is the length of one crew working day
const HoursPerDay = 8

var one = decimal.NewFromInt(1)

// Stage is the rough-in / finish fraction pair for one category.
// RoughIn + Finish must equal 1.
type Stage struct {
	RoughIn decimal.Decimal `json:"rough_in"`
	Finish  decimal.Decimal `json:"finish"`
}

// SplitTable maps device category to its stage fractions
type SplitTable map[types.DeviceCategory]Stage

// Lookup returns the split for a category, falling back to specialty
func (t SplitTable) Lookup(category types.DeviceCategory) Stage {
	if s, ok := t[category]; ok {
		return s
	}
	return t[types.CategorySpecialty]
}

// JobMultipliers maps job type to its labour multiplier
type JobMultipliers map[types.JobType]decimal.Decimal

// For returns the multiplier for a job type, 1 for unknown job types
func (m JobMultipliers) For(jobType types.JobType) decimal.Decimal {
	if v, ok := m[jobType]; ok {
		return v
	}
	return one
}

func split(roughIn, finish string) Stage {
	return Stage{RoughIn: decimal.RequireFromString(roughIn), Finish: decimal.RequireFromString(finish)}
}

// DefaultSplitTable returns the industry labour-unit split per category
func DefaultSplitTable() SplitTable {
	return SplitTable{
		types.CategoryReceptacles: split("0.62", "0.38"),
		types.CategorySwitches:    split("0.60", "0.40"),
		types.CategoryLighting:    split("0.47", "0.53"),
		types.CategorySafety:      split("0.55", "0.45"),
		types.CategoryDataComm:    split("0.65", "0.35"),
		types.CategoryAppliance:   split("0.70", "0.30"),
		types.CategoryService:     split("0.75", "0.25"),
		types.CategoryRough:       split("0.90", "0.10"),
		types.CategorySpecialty:   split("0.60", "0.40"),
	}
}

// DefaultJobMultipliers returns the labour multiplier per job type
func DefaultJobMultipliers() JobMultipliers {
	return JobMultipliers{
		types.JobNewConstruction: decimal.RequireFromString("1.00"),
		types.JobAddition:        decimal.RequireFromString("1.10"),
		types.JobCommercial:      decimal.RequireFromString("1.20"),
		types.JobRenovation:      decimal.RequireFromString("1.35"),
		types.JobServiceUpgrade:  decimal.RequireFromString("1.50"),
		types.JobServiceRepair:   decimal.RequireFromString("1.75"),
	}
}

// ValidateSplitTable rejects tables that cannot split hours completely
func ValidateSplitTable(table SplitTable) error {
	if _, ok := table[types.CategorySpecialty]; !ok {
		return fmt.Errorf("split table has no %q fallback", types.CategorySpecialty)
	}
	for _, category := range determinism.SortedKeys(table) {
		s := table[category]
		if s.RoughIn.IsNegative() || s.Finish.IsNegative() {
			return fmt.Errorf("split for %q has a negative fraction", category)
		}
		if !s.RoughIn.Add(s.Finish).Equal(one) {
			return fmt.Errorf("split for %q sums to %s, not 1", category, s.RoughIn.Add(s.Finish))
		}
	}
	return nil
}

// Input is everything the splitter reads
type Input struct {
	Items    []types.LineItem
	Services []types.ServiceLine
	Catalog  []types.CatalogAssembly

	SplitTable     SplitTable
	JobType        types.JobType
	JobMultipliers JobMultipliers

	// LaborMultiplier replaces the job-type multiplier when set
	LaborMultiplier *decimal.Decimal

	// HoursOverride replaces the total while keeping the stage ratio
	HoursOverride *decimal.Decimal

	CrewSize int
	Crew     []types.CrewMember

	// DefaultRate is used when no crew is assigned
	DefaultRate decimal.Decimal
}

// CategoryHours is the per-category breakdown
type CategoryHours struct {
	Category types.DeviceCategory `json:"category"`
	Hours    decimal.Decimal      `json:"hours"`
	RoughIn  decimal.Decimal      `json:"rough_in"`
	Finish   decimal.Decimal      `json:"finish"`
}

// Result is the labour plan
type Result struct {
	// CalcRoughIn and CalcFinish are the multiplied stage hours before any override
	CalcRoughIn decimal.Decimal `json:"calc_rough_in"`
	CalcFinish  decimal.Decimal `json:"calc_finish"`

	// RoughIn and Finish are the effective stage hours
	RoughIn decimal.Decimal `json:"rough_in"`
	Finish  decimal.Decimal `json:"finish"`
	Hours   decimal.Decimal `json:"hours"`

	Multiplier decimal.Decimal `json:"multiplier"`
	Overridden bool            `json:"overridden"`

	CrewSize    int             `json:"crew_size"`
	CrewDays    decimal.Decimal `json:"crew_days"`
	BlendedRate decimal.Decimal `json:"blended_rate"`
	Cost        decimal.Decimal `json:"cost"`

	Categories []CategoryHours `json:"categories"`
}

// Split computes the rough-in / finish labour plan
func Split(in Input) Result {
	table := in.SplitTable
	if table == nil {
		table = DefaultSplitTable()
	}

	byCategory := make(map[types.DeviceCategory]decimal.Decimal)
	add := func(category types.DeviceCategory, hours decimal.Decimal) {
		if prev, ok := byCategory[category]; ok {
			byCategory[category] = prev.Add(hours)
		} else {
			byCategory[category] = hours
		}
	}

	for _, item := range in.Items {
		add(Classify(item.DeviceType, in.Catalog), determinism.Qty(item.Quantity).Mul(item.LaborHours))
	}
	for _, svc := range in.Services {
		add(types.CategoryService, svc.LaborHours)
	}

	multiplier := in.JobMultipliers.For(in.JobType)
	if in.LaborMultiplier != nil {
		multiplier = *in.LaborMultiplier
	}

	result := Result{
		CalcRoughIn: decimal.Zero,
		CalcFinish:  decimal.Zero,
		Multiplier:  multiplier,
	}

	for _, category := range determinism.SortedKeys(byCategory) {
		hours := byCategory[category].Mul(multiplier)
		s := table.Lookup(category)
		row := CategoryHours{
			Category: category,
			Hours:    hours,
			RoughIn:  hours.Mul(s.RoughIn),
			Finish:   hours.Mul(s.Finish),
		}
		result.CalcRoughIn = result.CalcRoughIn.Add(row.RoughIn)
		result.CalcFinish = result.CalcFinish.Add(row.Finish)
		result.Categories = append(result.Categories, row)
	}

	result.RoughIn = result.CalcRoughIn
	result.Finish = result.CalcFinish
	if in.HoursOverride != nil {
		result.RoughIn, result.Finish = applyOverride(result.CalcRoughIn, result.CalcFinish, *in.HoursOverride, table)
		result.Overridden = true
	}
	result.Hours = result.RoughIn.Add(result.Finish)

	result.CrewSize = in.CrewSize
	if result.CrewSize < 1 {
		result.CrewSize = 1
	}
	result.CrewDays = result.Hours.
		Div(decimal.NewFromInt(int64(result.CrewSize))).
		Div(decimal.NewFromInt(HoursPerDay))

	result.BlendedRate = BlendedRate(in.Crew, in.DefaultRate)
	result.Cost = result.Hours.Mul(result.BlendedRate)
	return result
}

// Classify returns the device category of a line item, specialty when unmatched
func Classify(deviceType string, catalog []types.CatalogAssembly) types.DeviceCategory {
	if a := matcher.Resolve(deviceType, catalog); a != nil && a.Category != "" {
		return a.Category
	}
	return types.CategorySpecialty
}

// BlendedRate is the mean crew hourly rate, or defaultRate with no crew
func BlendedRate(crew []types.CrewMember, defaultRate decimal.Decimal) decimal.Decimal {
	if len(crew) == 0 {
		return defaultRate
	}
	sum := decimal.Zero
	for _, m := range crew {
		sum = sum.Add(m.HourlyRate)
	}
	return sum.Div(decimal.NewFromInt(int64(len(crew))))
}

// applyOverride rescales the stages so they sum to total with the calculated ratio
func applyOverride(roughIn, finish, total decimal.Decimal, table SplitTable) (decimal.Decimal, decimal.Decimal) {
	calc := roughIn.Add(finish)
	if calc.IsZero() {
		s := table.Lookup(types.CategorySpecialty)
		return total.Mul(s.RoughIn), total.Mul(s.Finish)
	}
	r := total.Mul(roughIn).Div(calc)
	return r, total.Sub(r)
}
