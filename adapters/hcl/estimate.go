// Package hcl loads estimate and catalog files written in HCL.
package hcl

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"

	"sparkyestimate/core/engine"
	"sparkyestimate/core/types"
	"sparkyestimate/internal/errors"
)

// Options are the defaults for settings an estimate file leaves unset
type Options struct {
	FillFromCatalog bool
	IncludePermit   bool
	DefaultRate     decimal.Decimal
}

type estimateFile struct {
	Estimate *estimateBlock `hcl:"estimate,block"`
	Items    []itemBlock    `hcl:"item,block"`
	Services []serviceBlock `hcl:"service,block"`
	Circuits []circuitBlock `hcl:"circuit,block"`
	Crew     []crewBlock    `hcl:"crew,block"`
}

type estimateBlock struct {
	Name               string         `hcl:"name,label"`
	LaborRate          hcl.Expression `hcl:"labor_rate,optional"`
	OverheadPct        hcl.Expression `hcl:"overhead_pct,optional"`
	ProfitPct          hcl.Expression `hcl:"profit_pct,optional"`
	MaterialMarkupPct  hcl.Expression `hcl:"material_markup_pct,optional"`
	LaborMarkupPct     hcl.Expression `hcl:"labor_markup_pct,optional"`
	WasteFactorPct     hcl.Expression `hcl:"waste_factor_pct,optional"`
	JobType            hcl.Expression `hcl:"job_type,optional"`
	LaborMultiplier    hcl.Expression `hcl:"labor_multiplier,optional"`
	LaborHoursOverride hcl.Expression `hcl:"labor_hours_override,optional"`
	PanelSize          *int           `hcl:"panel_size,optional"`
	IncludePermit      *bool          `hcl:"include_permit,optional"`
	PermitFeeOverride  hcl.Expression `hcl:"permit_fee_override,optional"`
	CrewSize           *int           `hcl:"crew_size,optional"`
	HomeRuns           int            `hcl:"home_runs,optional"`
	HouseSqft          int            `hcl:"house_sqft,optional"`
	DefaultRate        hcl.Expression `hcl:"default_rate,optional"`
	FillFromCatalog    *bool          `hcl:"fill_from_catalog,optional"`
	SpoolOverrides     []spoolBlock   `hcl:"spool_override,block"`
}

type spoolBlock struct {
	WireType string `hcl:"wire_type,label"`
	S150     *int   `hcl:"s150,optional"`
	S75      *int   `hcl:"s75,optional"`
}

type itemBlock struct {
	DeviceType   string         `hcl:"device_type,label"`
	Room         string         `hcl:"room,optional"`
	Quantity     *int           `hcl:"quantity,optional"`
	MaterialCost hcl.Expression `hcl:"material_cost,optional"`
	LaborHours   hcl.Expression `hcl:"labor_hours,optional"`
	WireType     string         `hcl:"wire_type,optional"`
	WireFootage  hcl.Expression `hcl:"wire_footage,optional"`
	MarkupPct    hcl.Expression `hcl:"markup_pct,optional"`
	BoxType      string         `hcl:"box_type,optional"`
	CoverPlate   string         `hcl:"cover_plate,optional"`
}

type serviceBlock struct {
	Description  string         `hcl:"description,label"`
	MaterialCost hcl.Expression `hcl:"material_cost,optional"`
	LaborHours   hcl.Expression `hcl:"labor_hours,optional"`
}

type circuitBlock struct {
	Number      int    `hcl:"number"`
	Amps        int    `hcl:"amps"`
	Poles       int    `hcl:"poles,optional"`
	Description string `hcl:"description,optional"`
	GFCI        bool   `hcl:"gfci,optional"`
	AFCI        bool   `hcl:"afci,optional"`
	Outlets     int    `hcl:"outlets,optional"`
	Panel       string `hcl:"panel,optional"`
}

type crewBlock struct {
	Name string         `hcl:"name,label"`
	Rate hcl.Expression `hcl:"rate"`
}

// LoadEstimate reads an estimate file
func LoadEstimate(path string, opts Options) (*engine.Request, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("estimate file", path)
		}
		return nil, errors.Wrapf(errors.TypeParsing, err, "failed to read %s", path)
	}
	return ParseEstimate(src, path, opts)
}

// ParseEstimate decodes an estimate from HCL source
func ParseEstimate(src []byte, filename string, opts Options) (*engine.Request, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diagnosticsError(filename, diags)
	}

	var doc estimateFile
	if diags := gohcl.DecodeBody(file.Body, nil, &doc); diags.HasErrors() {
		return nil, diagnosticsError(filename, diags)
	}
	if doc.Estimate == nil {
		return nil, errors.Parsing(fmt.Sprintf("failed to parse %s", filename),
			fmt.Errorf("an estimate block is required"))
	}

	req, diags := decodeRequest(&doc, opts)
	if diags.HasErrors() {
		return nil, diagnosticsError(filename, diags)
	}
	return req, nil
}

func decodeRequest(doc *estimateFile, opts Options) (*engine.Request, hcl.Diagnostics) {
	nums := &numberReader{}
	e := doc.Estimate
	given := types.ParamSet{}

	// param reads a number parameter and records it when present
	param := func(name string, expr hcl.Expression) decimal.Decimal {
		d := nums.optional(expr)
		if d == nil {
			return decimal.Zero
		}
		given.Add(name)
		return *d
	}
	count := func(name string, n *int) int {
		if n == nil {
			return 0
		}
		given.Add(name)
		return *n
	}

	req := &engine.Request{
		Params: types.EstimateParameters{
			Name:               e.Name,
			LaborRate:          param("labor_rate", e.LaborRate),
			OverheadPct:        param("overhead_pct", e.OverheadPct),
			ProfitPct:          param("profit_pct", e.ProfitPct),
			MaterialMarkupPct:  param("material_markup_pct", e.MaterialMarkupPct),
			LaborMarkupPct:     param("labor_markup_pct", e.LaborMarkupPct),
			WasteFactorPct:     param("waste_factor_pct", e.WasteFactorPct),
			LaborMultiplier:    nums.optional(e.LaborMultiplier),
			LaborHoursOverride: nums.optional(e.LaborHoursOverride),
			PanelSize:          count("panel_size", e.PanelSize),
			IncludePermit:      opts.IncludePermit,
			PermitFeeOverride:  nums.optional(e.PermitFeeOverride),
			CrewSize:           count("crew_size", e.CrewSize),
			HomeRuns:           e.HomeRuns,
			HouseSqft:          e.HouseSqft,
		},
		DefaultRate:     opts.DefaultRate,
		FillFromCatalog: opts.FillFromCatalog,
		Given:           given,
	}

	var diags hcl.Diagnostics
	req.Params.JobType, diags = decodeJobType(e.JobType)
	if req.Params.JobType != "" {
		given.Add("job_type")
	}

	if rate := nums.optional(e.DefaultRate); rate != nil {
		req.DefaultRate = *rate
	}
	if e.IncludePermit != nil {
		req.Params.IncludePermit = *e.IncludePermit
		given.Add("include_permit")
	}
	if e.FillFromCatalog != nil {
		req.FillFromCatalog = *e.FillFromCatalog
	}

	if len(e.SpoolOverrides) > 0 {
		req.Params.SpoolOverrides = make(map[string]types.SpoolOverride, len(e.SpoolOverrides))
		for _, s := range e.SpoolOverrides {
			req.Params.SpoolOverrides[s.WireType] = types.SpoolOverride{S150: s.S150, S75: s.S75}
		}
	}

	for _, it := range doc.Items {
		qty := 1
		if it.Quantity != nil {
			qty = *it.Quantity
		}
		req.Items = append(req.Items, types.LineItem{
			DeviceType:   it.DeviceType,
			Room:         it.Room,
			Quantity:     qty,
			MaterialCost: nums.value(it.MaterialCost),
			LaborHours:   nums.value(it.LaborHours),
			WireType:     it.WireType,
			WireFootage:  nums.value(it.WireFootage),
			MarkupPct:    nums.value(it.MarkupPct),
			BoxType:      it.BoxType,
			CoverPlate:   it.CoverPlate,
		})
	}

	for _, s := range doc.Services {
		req.Services = append(req.Services, types.ServiceLine{
			Description:  s.Description,
			MaterialCost: nums.value(s.MaterialCost),
			LaborHours:   nums.value(s.LaborHours),
		})
	}

	for _, c := range doc.Circuits {
		poles := c.Poles
		if poles == 0 {
			poles = 1
		}
		req.Circuits = append(req.Circuits, types.Circuit{
			CircuitNumber: c.Number,
			Amps:          c.Amps,
			Poles:         poles,
			Description:   c.Description,
			IsGfci:        c.GFCI,
			IsAfci:        c.AFCI,
			OutletCount:   c.Outlets,
			PanelName:     c.Panel,
		})
	}

	for _, m := range doc.Crew {
		req.Crew = append(req.Crew, types.CrewMember{
			Name:       m.Name,
			HourlyRate: nums.value(m.Rate),
		})
	}

	return req, append(diags, nums.diags...)
}

// decodeJobType reads an optional job type; empty is left to the config default
func decodeJobType(expr hcl.Expression) (types.JobType, hcl.Diagnostics) {
	if expr == nil {
		return "", nil
	}
	var s *string
	if diags := gohcl.DecodeExpression(expr, nil, &s); diags.HasErrors() {
		return "", diags
	}
	if s == nil || *s == "" {
		return "", nil
	}
	jobType := types.JobType(*s)
	if !jobType.IsValid() {
		return "", hcl.Diagnostics{errorDiag("Invalid job type", fmt.Sprintf("unknown job type %q", *s), expr.Range())}
	}
	return jobType, nil
}
