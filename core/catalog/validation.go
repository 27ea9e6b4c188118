// Package catalog - Catalog validation
// Ensures catalog integrity before the engine prices against it.
package catalog

import (
	"fmt"
	"strings"

	"sparkyestimate/core/permit"
	"sparkyestimate/core/types"
)

// ValidationRule is an assembly validation rule
type ValidationRule func(*types.CatalogAssembly) error

// DefaultValidationRules returns the standard assembly rules
func DefaultValidationRules() []ValidationRule {
	return []ValidationRule{
		validateName,
		validateCategory,
		validateNonNegative,
		validateWire,
	}
}

// Validate checks a catalog and returns every problem found
func Validate(c types.Catalog, rules []ValidationRule) []error {
	var errs []error

	seen := make(map[string]struct{}, len(c.Assemblies))
	for i := range c.Assemblies {
		a := &c.Assemblies[i]
		key := strings.ToLower(strings.TrimSpace(a.Name))
		if _, dup := seen[key]; dup && key != "" {
			errs = append(errs, fmt.Errorf("assembly %q: duplicate name", a.Name))
		}
		seen[key] = struct{}{}

		for _, rule := range rules {
			if err := rule(a); err != nil {
				errs = append(errs, fmt.Errorf("assembly %q: %w", a.Name, err))
			}
		}
	}

	for _, p := range c.Parts {
		if !p.Category.IsValid() {
			errs = append(errs, fmt.Errorf("part %q: unknown category %q", p.Name, p.Category))
		}
		if p.UnitCost.IsNegative() {
			errs = append(errs, fmt.Errorf("part %q: negative unit cost", p.Name))
		}
	}

	for _, l := range c.Links {
		if _, ok := seen[strings.ToLower(strings.TrimSpace(l.AssemblyName))]; !ok {
			errs = append(errs, fmt.Errorf("link %q -> %q: unknown assembly", l.AssemblyName, l.PartName))
		}
		if l.Quantity <= 0 {
			errs = append(errs, fmt.Errorf("link %q -> %q: quantity must be positive", l.AssemblyName, l.PartName))
		}
	}

	for wire, cost := range c.WireCosts {
		if cost.IsNegative() {
			errs = append(errs, fmt.Errorf("wire %q: negative cost per foot", wire))
		}
	}

	active := 0
	for _, s := range c.Permits {
		if s.Active {
			active++
		}
		if err := permit.ValidateSchedule(s); err != nil {
			errs = append(errs, err)
		}
	}
	if active > 1 {
		errs = append(errs, fmt.Errorf("%d permit schedules are active, expected at most one", active))
	}

	return errs
}

func validateName(a *types.CatalogAssembly) error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("name is empty")
	}
	return nil
}

func validateCategory(a *types.CatalogAssembly) error {
	switch a.Category {
	case types.CategoryReceptacles, types.CategorySwitches, types.CategoryLighting,
		types.CategorySafety, types.CategoryDataComm, types.CategoryAppliance,
		types.CategoryService, types.CategoryRough, types.CategorySpecialty:
		return nil
	default:
		return fmt.Errorf("unknown category %q", a.Category)
	}
}

func validateNonNegative(a *types.CatalogAssembly) error {
	if a.MaterialCost.IsNegative() || a.LaborHours.IsNegative() || a.WireFootage.IsNegative() {
		return fmt.Errorf("material cost, labour hours and wire footage must not be negative")
	}
	return nil
}

// validateWire ensures a wire allowance has a wire type
func validateWire(a *types.CatalogAssembly) error {
	if a.WireFootage.IsPositive() && strings.TrimSpace(a.WireType) == "" {
		return fmt.Errorf("wire footage without wire type")
	}
	return nil
}
