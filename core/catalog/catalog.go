// Package catalog - Default reference catalog
// Holds the assemblies, parts, wire costs and permit schedule the engine
// prices against when no custom catalog is loaded.
package catalog

import (
	"fmt"
	"strings"

	"sparkyestimate/core/types"
)

// Registry is an ordered set of assemblies keyed by name.
// Registration order is kept so matching ties break the same way every run.
type Registry struct {
	entries map[string]*types.CatalogAssembly
	order   []string
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*types.CatalogAssembly),
	}
}

// Register adds an assembly. Names are unique ignoring case.
func (r *Registry) Register(a types.CatalogAssembly) error {
	key := strings.ToLower(strings.TrimSpace(a.Name))
	if key == "" {
		return fmt.Errorf("assembly name is empty")
	}
	if _, exists := r.entries[key]; exists {
		return fmt.Errorf("assembly already registered: %s", a.Name)
	}
	r.entries[key] = &a
	r.order = append(r.order, key)
	return nil
}

// MustRegister is Register for built-in data
func (r *Registry) MustRegister(a types.CatalogAssembly) {
	if err := r.Register(a); err != nil {
		panic(err)
	}
}

// Get returns an assembly by name, ignoring case
func (r *Registry) Get(name string) (*types.CatalogAssembly, bool) {
	a, ok := r.entries[strings.ToLower(strings.TrimSpace(name))]
	return a, ok
}

// List returns every assembly in registration order
func (r *Registry) List() []types.CatalogAssembly {
	out := make([]types.CatalogAssembly, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, *r.entries[key])
	}
	return out
}

// ListByCategory returns the assemblies of one category
func (r *Registry) ListByCategory(category types.DeviceCategory) []types.CatalogAssembly {
	var out []types.CatalogAssembly
	for _, key := range r.order {
		if a := r.entries[key]; a.Category == category {
			out = append(out, *a)
		}
	}
	return out
}

// Stats returns registry statistics
func (r *Registry) Stats() Stats {
	stats := Stats{ByCategory: make(map[types.DeviceCategory]int)}
	for _, a := range r.entries {
		stats.Total++
		stats.ByCategory[a.Category]++
	}
	return stats
}

// Stats holds registry statistics
type Stats struct {
	Total      int
	ByCategory map[types.DeviceCategory]int
}

// Default returns the built-in catalog
func Default() types.Catalog {
	r := NewRegistry()
	RegisterAssemblies(r)
	return types.Catalog{
		Assemblies: r.List(),
		Parts:      DefaultParts(),
		WireCosts:  DefaultWireCosts(),
		Permits:    []types.PermitFeeSchedule{DefaultPermitSchedule()},
	}
}

// Merge overlays a custom catalog on a base catalog.
// Custom assemblies replace base assemblies of the same name and are
// otherwise appended; parts and wire costs are replaced by name; links and
// permit schedules replace the base lists when the custom catalog has any.
func Merge(base, custom types.Catalog) types.Catalog {
	r := NewRegistry()
	overrides := make(map[string]types.CatalogAssembly)
	for _, a := range custom.Assemblies {
		overrides[strings.ToLower(strings.TrimSpace(a.Name))] = a
	}
	for _, a := range base.Assemblies {
		key := strings.ToLower(strings.TrimSpace(a.Name))
		if o, ok := overrides[key]; ok {
			a = o
			delete(overrides, key)
		}
		r.MustRegister(a)
	}
	for _, a := range custom.Assemblies {
		if _, ok := overrides[strings.ToLower(strings.TrimSpace(a.Name))]; ok {
			_ = r.Register(a)
		}
	}

	out := types.Catalog{
		Assemblies: r.List(),
		Parts:      mergeParts(base.Parts, custom.Parts),
		WireCosts:  make(types.WireCostTable, len(base.WireCosts)+len(custom.WireCosts)),
		Links:      base.Links,
		Permits:    base.Permits,
	}
	for k, v := range base.WireCosts {
		out.WireCosts[k] = v
	}
	for k, v := range custom.WireCosts {
		out.WireCosts[k] = v
	}
	if len(custom.Links) > 0 {
		out.Links = custom.Links
	}
	if len(custom.Permits) > 0 {
		out.Permits = custom.Permits
	}
	return out
}

func mergeParts(base, custom []types.PartsCatalogEntry) []types.PartsCatalogEntry {
	index := make(map[string]int, len(base))
	out := make([]types.PartsCatalogEntry, 0, len(base)+len(custom))
	for _, p := range base {
		index[strings.ToLower(p.Name)] = len(out)
		out = append(out, p)
	}
	for _, p := range custom {
		if i, ok := index[strings.ToLower(p.Name)]; ok {
			out[i] = p
			continue
		}
		index[strings.ToLower(p.Name)] = len(out)
		out = append(out, p)
	}
	return out
}
