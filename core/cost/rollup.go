// Package cost - Estimate cost rollup
// Turns line items, service lines and estimate parameters into material and
// labour subtotals, markups, overhead, profit, permit fee and grand total.
package cost

import (
	"github.com/shopspring/decimal"

	"sparkyestimate/core/determinism"
	"sparkyestimate/core/permit"
	"sparkyestimate/core/types"
)

// Input is everything the rollup reads
type Input struct {
	Items     []types.LineItem
	Services  []types.ServiceLine
	Params    types.EstimateParameters
	WireCosts types.WireCostTable

	// Permits is the active permit schedule, nil when none is in force
	Permits *types.PermitFeeSchedule
}

// Totals is the full cost breakdown of an estimate
type Totals struct {
	// MaterialSubtotal is Σ qty·materialCost over line items
	MaterialSubtotal decimal.Decimal `json:"material_subtotal"`

	// ItemMarkup is Σ qty·materialCost·markupPct/100 over line items
	ItemMarkup decimal.Decimal `json:"item_markup"`

	// ItemMaterials is MaterialSubtotal plus ItemMarkup
	ItemMaterials decimal.Decimal `json:"item_materials"`

	// WireCost is Σ qty·wireFootage·costPerFoot
	WireCost decimal.Decimal `json:"wire_cost"`

	// ServiceMaterial is Σ service material
	ServiceMaterial decimal.Decimal `json:"service_material"`

	// CombinedMaterial is item materials plus wire plus service material
	CombinedMaterial decimal.Decimal `json:"combined_material"`

	ItemLaborHours    decimal.Decimal `json:"item_labor_hours"`
	ServiceLaborHours decimal.Decimal `json:"service_labor_hours"`

	// LaborHoursTotal is item plus service hours
	LaborHoursTotal decimal.Decimal `json:"labor_hours_total"`

	// CombinedLabor is LaborHoursTotal·laborRate
	CombinedLabor decimal.Decimal `json:"combined_labor"`

	MaterialWithMarkup decimal.Decimal `json:"material_with_markup"`
	LaborWithMarkup    decimal.Decimal `json:"labor_with_markup"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	Overhead           decimal.Decimal `json:"overhead"`
	Profit             decimal.Decimal `json:"profit"`

	// JobValue is subtotal plus overhead plus profit, the basis of value-keyed permits
	JobValue decimal.Decimal `json:"job_value"`

	// Permit is the permit lookup outcome, zero when permits are excluded
	Permit permit.Fee `json:"permit"`

	// PermitIncluded mirrors EstimateParameters.IncludePermit
	PermitIncluded bool `json:"permit_included"`

	// PermitResolved is false when a permit was wanted but no tier matched
	PermitResolved bool `json:"permit_resolved"`

	GrandTotal decimal.Decimal `json:"grand_total"`

	// MissingWireCosts lists wire types priced at zero for lack of a cost entry
	MissingWireCosts []string `json:"missing_wire_costs,omitempty"`
}

// Rollup computes the estimate totals.
// Percentages are applied as given; negative values are not rejected.
func Rollup(in Input) Totals {
	t := Totals{
		MaterialSubtotal:  decimal.Zero,
		ItemMarkup:        decimal.Zero,
		WireCost:          decimal.Zero,
		ServiceMaterial:   decimal.Zero,
		ItemLaborHours:    decimal.Zero,
		ServiceLaborHours: decimal.Zero,
	}

	missing := make(map[string]struct{})
	for _, item := range in.Items {
		qty := determinism.Qty(item.Quantity)
		material := qty.Mul(item.MaterialCost)

		t.MaterialSubtotal = t.MaterialSubtotal.Add(material)
		t.ItemMarkup = t.ItemMarkup.Add(determinism.PctOf(material, item.MarkupPct))
		t.ItemLaborHours = t.ItemLaborHours.Add(qty.Mul(item.LaborHours))

		if item.WireFootage.IsZero() {
			continue
		}
		costPerFoot, ok := in.WireCosts.CostPerFoot(item.WireType)
		if !ok {
			missing[wireKey(item.WireType)] = struct{}{}
			continue
		}
		t.WireCost = t.WireCost.Add(qty.Mul(item.WireFootage).Mul(costPerFoot))
	}

	for _, svc := range in.Services {
		t.ServiceMaterial = t.ServiceMaterial.Add(svc.MaterialCost)
		t.ServiceLaborHours = t.ServiceLaborHours.Add(svc.LaborHours)
	}

	t.ItemMaterials = t.MaterialSubtotal.Add(t.ItemMarkup)
	t.CombinedMaterial = t.ItemMaterials.Add(t.WireCost).Add(t.ServiceMaterial)
	t.LaborHoursTotal = t.ItemLaborHours.Add(t.ServiceLaborHours)
	t.CombinedLabor = t.LaborHoursTotal.Mul(in.Params.LaborRate)

	t.MaterialWithMarkup = determinism.ApplyPct(t.CombinedMaterial, in.Params.MaterialMarkupPct)
	t.LaborWithMarkup = determinism.ApplyPct(t.CombinedLabor, in.Params.LaborMarkupPct)
	t.Subtotal = t.MaterialWithMarkup.Add(t.LaborWithMarkup)
	t.Overhead = determinism.PctOf(t.Subtotal, in.Params.OverheadPct)
	t.Profit = determinism.PctOf(t.Subtotal.Add(t.Overhead), in.Params.ProfitPct)
	t.JobValue = t.Subtotal.Add(t.Overhead).Add(t.Profit)

	t.Permit = PermitFee(in.Params, in.Permits, t.JobValue)
	t.PermitIncluded = in.Params.IncludePermit
	t.PermitResolved = !t.PermitIncluded || t.Permit.Matched

	t.GrandTotal = t.JobValue.Add(t.Permit.Fee)
	t.MissingWireCosts = determinism.SortedKeys(missing)
	return t
}

// PermitFee resolves the permit fee for an estimate.
// Excluded permits cost zero; an explicit override wins over the schedule.
// Amp-keyed categories look up the panel size, others the job value.
func PermitFee(params types.EstimateParameters, schedule *types.PermitFeeSchedule, jobValue decimal.Decimal) permit.Fee {
	if !params.IncludePermit {
		return permit.Fee{Fee: decimal.Zero}
	}
	if params.PermitFeeOverride != nil {
		return permit.Fee{Fee: *params.PermitFeeOverride, Label: "Manual override", Matched: true}
	}

	category := permit.CategoryFor(params.JobType)
	amount := jobValue
	if permit.IsAmpKeyed(category) {
		amount = decimal.NewFromInt(int64(params.PanelSize))
	}
	return permit.Resolve(schedule, category, amount)
}

func wireKey(wireType string) string {
	if wireType == "" {
		return types.UnassignedWireType
	}
	return wireType
}
