// Package hcl - Number decoding
// Money, hours and footage are decoded exactly. Values pass through cty as
// big floats and are never converted to float64.
package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/shopspring/decimal"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// numberReader decodes optional number attributes and collects diagnostics
type numberReader struct {
	diags hcl.Diagnostics
}

// value returns the attribute value, zero when the attribute is absent
func (r *numberReader) value(expr hcl.Expression) decimal.Decimal {
	if d := r.optional(expr); d != nil {
		return *d
	}
	return decimal.Zero
}

// optional returns nil when the attribute is absent or null
func (r *numberReader) optional(expr hcl.Expression) *decimal.Decimal {
	if expr == nil {
		return nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		r.diags = append(r.diags, diags...)
		return nil
	}
	d, err := ctyDecimal(val)
	if err != nil {
		r.diags = append(r.diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid number",
			Detail:   err.Error(),
			Subject:  expr.Range().Ptr(),
		})
		return nil
	}
	return d
}

// ctyDecimal converts a number or numeric string.
// Null yields nil; unknown values are rejected.
func ctyDecimal(val cty.Value) (*decimal.Decimal, error) {
	if val.IsNull() {
		return nil, nil
	}
	if !val.IsKnown() {
		return nil, fmt.Errorf("value is not known")
	}

	num, err := convert.Convert(val, cty.Number)
	if err != nil {
		return nil, fmt.Errorf("expected a number, got %s", val.Type().FriendlyName())
	}
	if num.IsNull() {
		return nil, nil
	}

	d, err := decimal.NewFromString(num.AsBigFloat().Text('f', -1))
	if err != nil {
		return nil, fmt.Errorf("number out of range: %w", err)
	}
	return &d, nil
}
