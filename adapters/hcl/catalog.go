// Package hcl - Catalog files
// A catalog file holds assembly, part, link, wire and permit_schedule
// blocks. It is usually merged over the built-in catalog.
package hcl

import (
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"sparkyestimate/core/types"
	"sparkyestimate/internal/errors"
)

type catalogFile struct {
	Assemblies []assemblyBlock `hcl:"assembly,block"`
	Parts      []partBlock     `hcl:"part,block"`
	Links      []linkBlock     `hcl:"link,block"`
	Wires      []wireBlock     `hcl:"wire,block"`
	Permits    []permitBlock   `hcl:"permit_schedule,block"`
}

type assemblyBlock struct {
	Name         string         `hcl:"name,label"`
	Category     string         `hcl:"category"`
	Device       string         `hcl:"device,optional"`
	BoxType      string         `hcl:"box_type,optional"`
	CoverPlate   string         `hcl:"cover_plate,optional"`
	MiscParts    string         `hcl:"misc_parts,optional"`
	WireType     string         `hcl:"wire_type,optional"`
	WireFootage  hcl.Expression `hcl:"wire_footage,optional"`
	LaborHours   hcl.Expression `hcl:"labor_hours,optional"`
	MaterialCost hcl.Expression `hcl:"material_cost,optional"`
}

type partBlock struct {
	Name     string         `hcl:"name,label"`
	Category string         `hcl:"category"`
	UnitCost hcl.Expression `hcl:"unit_cost"`
}

type linkBlock struct {
	Assembly string `hcl:"assembly,label"`
	Part     string `hcl:"part,label"`
	Quantity *int   `hcl:"quantity,optional"`
}

type wireBlock struct {
	WireType    string         `hcl:"wire_type,label"`
	CostPerFoot hcl.Expression `hcl:"cost_per_foot"`
}

type permitBlock struct {
	Name   string      `hcl:"name,label"`
	Active bool        `hcl:"active,optional"`
	Tiers  []tierBlock `hcl:"tier,block"`
}

type tierBlock struct {
	Category string         `hcl:"category,label"`
	Label    string         `hcl:"label,optional"`
	MaxAmps  *int           `hcl:"max_amps,optional"`
	MaxValue hcl.Expression `hcl:"max_value,optional"`
	Fee      hcl.Expression `hcl:"fee"`
}

// LoadCatalog reads a catalog file
func LoadCatalog(path string) (types.Catalog, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return types.Catalog{}, errors.NotFound("catalog file", path)
		}
		return types.Catalog{}, errors.Wrapf(errors.TypeParsing, err, "failed to read %s", path)
	}
	return ParseCatalog(src, path)
}

// ParseCatalog decodes a catalog from HCL source.
// Only syntax and number formats are checked here; catalog.Validate does the rest.
func ParseCatalog(src []byte, filename string) (types.Catalog, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return types.Catalog{}, diagnosticsError(filename, diags)
	}

	var doc catalogFile
	if diags := gohcl.DecodeBody(file.Body, nil, &doc); diags.HasErrors() {
		return types.Catalog{}, diagnosticsError(filename, diags)
	}

	c, nums := decodeCatalog(&doc)
	if nums.diags.HasErrors() {
		return types.Catalog{}, diagnosticsError(filename, nums.diags)
	}
	return c, nil
}

func decodeCatalog(doc *catalogFile) (types.Catalog, *numberReader) {
	nums := &numberReader{}
	var c types.Catalog

	for _, a := range doc.Assemblies {
		c.Assemblies = append(c.Assemblies, types.CatalogAssembly{
			Name:         a.Name,
			Category:     types.DeviceCategory(a.Category),
			Device:       a.Device,
			BoxType:      a.BoxType,
			CoverPlate:   a.CoverPlate,
			MiscParts:    a.MiscParts,
			WireType:     a.WireType,
			WireFootage:  nums.value(a.WireFootage),
			LaborHours:   nums.value(a.LaborHours),
			MaterialCost: nums.value(a.MaterialCost),
		})
	}

	for _, p := range doc.Parts {
		c.Parts = append(c.Parts, types.PartsCatalogEntry{
			Name:     p.Name,
			Category: types.PartCategory(p.Category),
			UnitCost: nums.value(p.UnitCost),
		})
	}

	for _, l := range doc.Links {
		qty := 1
		if l.Quantity != nil {
			qty = *l.Quantity
		}
		c.Links = append(c.Links, types.AssemblyPart{AssemblyName: l.Assembly, PartName: l.Part, Quantity: qty})
	}

	if len(doc.Wires) > 0 {
		c.WireCosts = make(types.WireCostTable, len(doc.Wires))
		for _, w := range doc.Wires {
			c.WireCosts[w.WireType] = nums.value(w.CostPerFoot)
		}
	}

	for _, p := range doc.Permits {
		schedule := types.PermitFeeSchedule{
			Name:   p.Name,
			Active: p.Active,
			Tiers:  make(map[types.PermitCategory][]types.PermitTier),
		}
		// tiers keep file order within a category
		for _, t := range p.Tiers {
			category := types.PermitCategory(t.Category)
			schedule.Tiers[category] = append(schedule.Tiers[category], types.PermitTier{
				Label:    t.Label,
				MaxAmps:  t.MaxAmps,
				MaxValue: nums.optional(t.MaxValue),
				Fee:      nums.value(t.Fee),
			})
		}
		c.Permits = append(c.Permits, schedule)
	}

	return c, nums
}
