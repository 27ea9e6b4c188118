// Package bom - Bill of materials builder
// Explodes line items into catalog parts and rolls material cost up by
// assembly category. Items without a catalog assembly are kept apart in an
// unmatched bucket with their flat cost.
package bom

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"sparkyestimate/core/determinism"
	"sparkyestimate/core/matcher"
	"sparkyestimate/core/types"
)

// notApplicable marks an assembly field with no part behind it
const notApplicable = "N/A"

var (
	partQtyPattern = regexp.MustCompile(`^(.*?)\s*\((\d+)\)$`)
	partIDs        = determinism.NewIDGenerator("sparkyestimate/bom/part")
)

// Part is one aggregated purchasable part
type Part struct {
	ID       determinism.StableID `json:"id"`
	Name     string               `json:"name"`
	Category types.PartCategory   `json:"category"`
	Quantity int                  `json:"quantity"`
	UnitCost decimal.Decimal      `json:"unit_cost"`
	Cost     decimal.Decimal      `json:"cost"`

	// Priced is false when the part is not in the parts catalog
	Priced bool `json:"priced"`

	// UsedBy lists the assemblies that pulled in this part
	UsedBy []string `json:"used_by"`
}

// CategoryTotal is the material rolled up for one assembly category
type CategoryTotal struct {
	Category     types.DeviceCategory `json:"category"`
	Items        int                  `json:"items"`
	MaterialCost decimal.Decimal      `json:"material_cost"`
}

// UnmatchedItem is a line item with no catalog assembly
type UnmatchedItem struct {
	DeviceType string          `json:"device_type"`
	Room       string          `json:"room,omitempty"`
	Quantity   int             `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	Cost       decimal.Decimal `json:"cost"`
}

// Result is the bill of materials
type Result struct {
	Parts          []Part          `json:"parts"`
	CategoryTotals []CategoryTotal `json:"category_totals"`
	UnmatchedItems []UnmatchedItem `json:"unmatched_items"`

	// PartsCost is Σ part cost from the parts catalog
	PartsCost decimal.Decimal `json:"parts_cost"`

	// MatchedCost is Σ category material cost
	MatchedCost decimal.Decimal `json:"matched_cost"`

	// UnmatchedCost is Σ unmatched item cost
	UnmatchedCost decimal.Decimal `json:"unmatched_cost"`

	// MaterialCost is Σ qty·materialCost over every line item
	MaterialCost decimal.Decimal `json:"material_cost"`
}

// Build produces the bill of materials.
// Category totals plus unmatched cost always equal the line item material cost.
func Build(items []types.LineItem, catalog []types.CatalogAssembly, parts []types.PartsCatalogEntry, links []types.AssemblyPart) Result {
	b := newBuilder(parts, links)

	for _, item := range items {
		qty := determinism.Qty(item.Quantity)
		cost := qty.Mul(item.MaterialCost)
		b.materialCost = b.materialCost.Add(cost)

		assembly := matcher.Resolve(item.DeviceType, catalog)
		if assembly == nil {
			b.unmatched = append(b.unmatched, UnmatchedItem{
				DeviceType: item.DeviceType,
				Room:       item.Room,
				Quantity:   item.Quantity,
				UnitCost:   item.MaterialCost,
				Cost:       cost,
			})
			b.unmatchedCost = b.unmatchedCost.Add(cost)
			continue
		}

		b.addCategory(assembly.Category, item.Quantity, cost)
		for _, req := range b.requirements(*assembly, item) {
			b.addPart(req.name, req.category, req.quantity*item.Quantity, assembly.Name)
		}
	}

	return b.result()
}

// requirement is one part needed per assembly
type requirement struct {
	name     string
	category types.PartCategory
	quantity int
}

type builder struct {
	priceList map[string]types.PartsCatalogEntry
	links     map[string][]types.AssemblyPart

	parts      map[string]*Part
	usedBy     map[string]map[string]struct{}
	categories map[types.DeviceCategory]*CategoryTotal
	unmatched  []UnmatchedItem

	materialCost  decimal.Decimal
	unmatchedCost decimal.Decimal
}

func newBuilder(parts []types.PartsCatalogEntry, links []types.AssemblyPart) *builder {
	b := &builder{
		priceList:     make(map[string]types.PartsCatalogEntry, len(parts)),
		links:         make(map[string][]types.AssemblyPart),
		parts:         make(map[string]*Part),
		usedBy:        make(map[string]map[string]struct{}),
		categories:    make(map[types.DeviceCategory]*CategoryTotal),
		unmatched:     []UnmatchedItem{},
		materialCost:  decimal.Zero,
		unmatchedCost: decimal.Zero,
	}
	for _, p := range parts {
		b.priceList[strings.ToLower(p.Name)] = p
	}
	for _, l := range links {
		b.links[l.AssemblyName] = append(b.links[l.AssemblyName], l)
	}
	return b
}

// requirements lists the parts of one assembly.
// Linked parts win; otherwise parts are derived from the assembly fields,
// with the line item's box and cover plate taking precedence.
func (b *builder) requirements(a types.CatalogAssembly, item types.LineItem) []requirement {
	if links := b.links[a.Name]; len(links) > 0 {
		reqs := make([]requirement, 0, len(links))
		for _, l := range links {
			reqs = append(reqs, requirement{name: l.PartName, category: b.categoryOf(l.PartName, types.PartMisc), quantity: l.Quantity})
		}
		return reqs
	}

	box := firstNonEmpty(item.BoxType, a.BoxType)
	cover := firstNonEmpty(item.CoverPlate, a.CoverPlate)

	var reqs []requirement
	add := func(name string, fallback types.PartCategory, qty int) {
		name = strings.TrimSpace(name)
		if name == "" || strings.EqualFold(name, notApplicable) {
			return
		}
		reqs = append(reqs, requirement{name: name, category: b.categoryOf(name, fallback), quantity: qty})
	}

	add(a.Device, types.PartDevice, 1)
	add(box, types.PartBox, 1)
	add(cover, types.PartCoverPlate, 1)
	for _, misc := range a.MiscPartList() {
		name, qty := ParseQuantity(misc)
		add(name, GuessCategory(name), qty)
	}
	return reqs
}

// categoryOf prefers the parts catalog category
func (b *builder) categoryOf(name string, fallback types.PartCategory) types.PartCategory {
	if entry, ok := b.priceList[strings.ToLower(name)]; ok && entry.Category.IsValid() {
		return entry.Category
	}
	return fallback
}

func (b *builder) addPart(name string, category types.PartCategory, qty int, assembly string) {
	key := strings.ToLower(name)
	p, ok := b.parts[key]
	if !ok {
		entry, priced := b.priceList[key]
		p = &Part{
			ID:       partIDs.Generate(key),
			Name:     name,
			Category: category,
			UnitCost: decimal.Zero,
			Cost:     decimal.Zero,
			Priced:   priced,
		}
		if priced {
			p.Name = entry.Name
			p.UnitCost = entry.UnitCost
		}
		b.parts[key] = p
		b.usedBy[key] = make(map[string]struct{})
	}
	p.Quantity += qty
	p.Cost = p.UnitCost.Mul(determinism.Qty(p.Quantity))
	b.usedBy[key][assembly] = struct{}{}
}

func (b *builder) addCategory(category types.DeviceCategory, qty int, cost decimal.Decimal) {
	if category == "" {
		category = types.CategorySpecialty
	}
	t, ok := b.categories[category]
	if !ok {
		t = &CategoryTotal{Category: category, MaterialCost: decimal.Zero}
		b.categories[category] = t
	}
	t.Items += qty
	t.MaterialCost = t.MaterialCost.Add(cost)
}

func (b *builder) result() Result {
	r := Result{
		Parts:          make([]Part, 0, len(b.parts)),
		CategoryTotals: make([]CategoryTotal, 0, len(b.categories)),
		UnmatchedItems: b.unmatched,
		PartsCost:      decimal.Zero,
		MatchedCost:    decimal.Zero,
		UnmatchedCost:  b.unmatchedCost,
		MaterialCost:   b.materialCost,
	}

	for _, key := range determinism.SortedKeys(b.parts) {
		p := *b.parts[key]
		p.UsedBy = determinism.SortedKeys(b.usedBy[key])
		r.Parts = append(r.Parts, p)
		r.PartsCost = r.PartsCost.Add(p.Cost)
	}
	determinism.SortSlice(r.Parts, func(x, y Part) bool {
		if x.Category != y.Category {
			return x.Category < y.Category
		}
		return x.Name < y.Name
	})

	for _, category := range determinism.SortedKeys(b.categories) {
		t := *b.categories[category]
		r.CategoryTotals = append(r.CategoryTotals, t)
		r.MatchedCost = r.MatchedCost.Add(t.MaterialCost)
	}
	return r
}

// ParseQuantity splits a trailing "(N)" count off a part name
func ParseQuantity(s string) (string, int) {
	s = strings.TrimSpace(s)
	m := partQtyPattern.FindStringSubmatch(s)
	if m == nil {
		return s, 1
	}
	n, err := strconv.Atoi(m[2])
	if err != nil || n < 1 {
		return s, 1
	}
	return strings.TrimSpace(m[1]), n
}

// GuessCategory classifies a misc part name that is not in the parts catalog
func GuessCategory(name string) types.PartCategory {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "wire nut"):
		return types.PartWireNut
	case strings.Contains(n, "connector"), strings.Contains(n, "pigtail"), strings.Contains(n, "whip"):
		return types.PartConnector
	case strings.Contains(n, "strap"), strings.Contains(n, "brace"), strings.Contains(n, "clip"),
		strings.Contains(n, "mounting"), strings.Contains(n, "staples"), strings.Contains(n, "bracket"):
		return types.PartMounting
	case strings.Contains(n, "breaker"):
		return types.PartBreaker
	case strings.Contains(n, "bar"), strings.Contains(n, "panel"):
		return types.PartPanelComponent
	default:
		return types.PartMisc
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
