// Package engine - Line item preparation
package engine

import (
	"strings"

	"sparkyestimate/core/catalog"
	"sparkyestimate/core/matcher"
	"sparkyestimate/core/types"
)

// filledItem records which blank fields of an item came from the catalog
type filledItem struct {
	deviceType string
	assembly   string
	fields     []string
}

func (f filledItem) fieldList() string {
	return strings.Join(f.fields, ", ")
}

// prepareItems copies the request items, optionally filling blank fields
// from the matched assembly, and appends the home run line.
// The request items are never modified.
func prepareItems(items []types.LineItem, homeRuns int, assemblies []types.CatalogAssembly, fill bool) ([]types.LineItem, []filledItem) {
	out := make([]types.LineItem, 0, len(items)+1)
	var filled []filledItem

	for _, item := range items {
		if fill {
			if a := matcher.Resolve(item.DeviceType, assemblies); a != nil {
				var fields []string
				item, fields = fillFromAssembly(item, *a)
				if len(fields) > 0 {
					filled = append(filled, filledItem{deviceType: item.DeviceType, assembly: a.Name, fields: fields})
				}
			}
		}
		out = append(out, item)
	}

	if homeRuns > 0 {
		out = append(out, homeRunItem(homeRuns, assemblies))
	}
	return out, filled
}

// fillFromAssembly fills zero costs, hours and wire from the assembly
func fillFromAssembly(item types.LineItem, a types.CatalogAssembly) (types.LineItem, []string) {
	var fields []string
	if item.MaterialCost.IsZero() && !a.MaterialCost.IsZero() {
		item.MaterialCost = a.MaterialCost
		fields = append(fields, "material cost")
	}
	if item.LaborHours.IsZero() && !a.LaborHours.IsZero() {
		item.LaborHours = a.LaborHours
		fields = append(fields, "labour hours")
	}
	if item.WireType == "" && a.WireType != "" {
		item.WireType = a.WireType
		fields = append(fields, "wire type")
	}
	if item.WireFootage.IsZero() && !a.WireFootage.IsZero() && strings.EqualFold(item.WireType, a.WireType) {
		item.WireFootage = a.WireFootage
		fields = append(fields, "wire footage")
	}
	return item, fields
}

// homeRunItem is one line covering every circuit run back to the panel.
// The catalog's own home run assembly wins over the built-in one.
func homeRunItem(circuits int, assemblies []types.CatalogAssembly) types.LineItem {
	a := catalog.HomeRun()
	if custom := findByName(catalog.HomeRunName, assemblies); custom != nil {
		a = *custom
	}
	return types.LineItem{
		DeviceType:   a.Name,
		Room:         "Panel",
		Quantity:     circuits,
		MaterialCost: a.MaterialCost,
		LaborHours:   a.LaborHours,
		WireType:     a.WireType,
		WireFootage:  a.WireFootage,
	}
}

func findByName(name string, assemblies []types.CatalogAssembly) *types.CatalogAssembly {
	for i := range assemblies {
		if strings.EqualFold(assemblies[i].Name, name) {
			return &assemblies[i]
		}
	}
	return nil
}
