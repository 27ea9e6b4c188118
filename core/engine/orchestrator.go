// Package engine - Estimate pipeline
// Runs the components in a fixed order:
// 1. Item preparation (catalog defaults, home runs)
// 2. Cost rollup
// 3. Wire schedule
// 4. Labour split
// 5. Panel analysis (only with circuits)
// 6. Bill of materials
// 7. Compliance evaluation (sees the panel summary)
// 8. Sanity checks
package engine

import (
	"fmt"

	"sparkyestimate/core/bom"
	"sparkyestimate/core/compliance"
	"sparkyestimate/core/cost"
	"sparkyestimate/core/inventory"
	"sparkyestimate/core/labour"
	"sparkyestimate/core/panel"
	"sparkyestimate/core/permit"
	"sparkyestimate/core/sanity"
	"sparkyestimate/core/types"
	"sparkyestimate/core/wire"
)

// Phase is a pipeline step
type Phase int

const (
	PhaseUninitialized Phase = iota
	PhasePrepared
	PhaseCosted
	PhaseWired
	PhaseLabourSplit
	PhasePanelAnalyzed
	PhaseBOMBuilt
	PhaseComplianceEvaluated
	PhaseComplete
)

// String returns the phase name
func (p Phase) String() string {
	names := []string{
		"uninitialized", "prepared", "costed", "wired", "labour_split",
		"panel_analyzed", "bom_built", "compliance_evaluated", "complete",
	}
	if int(p) < len(names) {
		return names[p]
	}
	return "unknown"
}

// PhaseOrderError indicates steps executed out of order
type PhaseOrderError struct {
	Required Phase
	Current  Phase
}

func (e *PhaseOrderError) Error() string {
	return fmt.Sprintf("phase %s required, but current phase is %s", e.Required, e.Current)
}

// pipeline carries one estimate through the phases
type pipeline struct {
	engine *Engine
	req    *Request
	phase  Phase

	params    types.EstimateParameters
	items     []types.LineItem
	inventory *inventory.Inventory

	totals     cost.Totals
	wire       wire.Result
	labour     labour.Result
	panel      *panel.Summary
	bom        bom.Result
	compliance *compliance.Report
	sanity     []sanity.Warning
	flags      []Flag
}

func newPipeline(e *Engine, req *Request) *pipeline {
	return &pipeline{
		engine: e,
		req:    req,
		phase:  PhaseUninitialized,
		params: req.Params,
		flags:  []Flag{},
	}
}

// advance moves from the required phase to the next one
func (p *pipeline) advance(required, next Phase) error {
	if p.phase != required {
		return &PhaseOrderError{Required: required, Current: p.phase}
	}
	p.phase = next
	return nil
}

func (p *pipeline) flag(kind FlagKind, subject, format string, args ...interface{}) {
	p.flags = append(p.flags, Flag{Kind: kind, Subject: subject, Message: fmt.Sprintf(format, args...)})
}

func (p *pipeline) prepare() error {
	if err := p.advance(PhaseUninitialized, PhasePrepared); err != nil {
		return err
	}
	var filled []filledItem
	p.items, filled = prepareItems(p.req.Items, p.params.HomeRuns, p.engine.catalog.Assemblies, p.req.FillFromCatalog)
	for _, f := range filled {
		p.flag(FlagCatalogDefault, f.deviceType, "%s: %s taken from catalog assembly %q", f.deviceType, f.fieldList(), f.assembly)
	}
	p.inventory = inventory.Tally(p.items, p.engine.catalog.Assemblies)
	return nil
}

func (p *pipeline) rollup() error {
	if err := p.advance(PhasePrepared, PhaseCosted); err != nil {
		return err
	}
	p.totals = cost.Rollup(cost.Input{
		Items:     p.items,
		Services:  p.req.Services,
		Params:    p.params,
		WireCosts: p.engine.catalog.WireCosts,
		Permits:   p.engine.permits,
	})

	for _, w := range p.totals.MissingWireCosts {
		p.flag(FlagMissingWireCost, w, "no cost per foot for wire %q, priced at zero", w)
	}
	if p.params.IncludePermit && !p.totals.PermitResolved {
		p.flag(FlagPermitUnresolved, string(permit.CategoryFor(p.params.JobType)), "permit fee not resolved: %s", p.totals.Permit.Reason)
	}
	return nil
}

func (p *pipeline) scheduleWire() error {
	if err := p.advance(PhaseCosted, PhaseWired); err != nil {
		return err
	}
	p.wire = wire.Schedule(p.items, p.params.WasteFactorPct, p.params.SpoolOverrides, p.engine.catalog.WireCosts)
	return nil
}

func (p *pipeline) splitLabour() error {
	if err := p.advance(PhaseWired, PhaseLabourSplit); err != nil {
		return err
	}
	rate := p.req.DefaultRate
	if rate.IsZero() {
		rate = p.params.LaborRate
	}
	p.labour = labour.Split(labour.Input{
		Items:           p.items,
		Services:        p.req.Services,
		Catalog:         p.engine.catalog.Assemblies,
		SplitTable:      p.engine.config.SplitTable,
		JobType:         p.params.JobType,
		JobMultipliers:  p.engine.config.JobMultipliers,
		LaborMultiplier: p.params.LaborMultiplier,
		HoursOverride:   p.params.LaborHoursOverride,
		CrewSize:        p.params.CrewSize,
		Crew:            p.req.Crew,
		DefaultRate:     rate,
	})
	return nil
}

func (p *pipeline) analyzePanel() error {
	if err := p.advance(PhaseLabourSplit, PhasePanelAnalyzed); err != nil {
		return err
	}
	if len(p.req.Circuits) > 0 {
		summary := panel.Analyze(p.req.Circuits, p.params.PanelSize)
		p.panel = &summary
	}
	return nil
}

func (p *pipeline) buildBOM() error {
	if err := p.advance(PhasePanelAnalyzed, PhaseBOMBuilt); err != nil {
		return err
	}
	c := p.engine.catalog
	p.bom = bom.Build(p.items, c.Assemblies, c.Parts, c.Links)
	for _, u := range p.bom.UnmatchedItems {
		p.flag(FlagUnmatchedItem, u.DeviceType, "no catalog assembly for %q, kept at flat cost %s", u.DeviceType, u.Cost.StringFixed(2))
	}
	return nil
}

func (p *pipeline) evaluateCompliance() error {
	if err := p.advance(PhaseBOMBuilt, PhaseComplianceEvaluated); err != nil {
		return err
	}
	ctx := &compliance.Context{
		Params:    p.params,
		Items:     p.items,
		Circuits:  p.req.Circuits,
		Panel:     p.panel,
		Inventory: p.inventory,
	}
	p.compliance = p.engine.evaluator.Evaluate(ctx)
	return nil
}

func (p *pipeline) checkSanity() error {
	if err := p.advance(PhaseComplianceEvaluated, PhaseComplete); err != nil {
		return err
	}
	p.sanity = sanity.CheckWithLimits(p.inventory, p.params.HouseSqft, p.engine.config.SanityLimits)
	return nil
}

func (p *pipeline) report() *Report {
	return &Report{
		Name:       p.params.Name,
		Params:     p.params,
		Items:      p.items,
		Services:   p.req.Services,
		Totals:     p.totals,
		Wire:       p.wire,
		Labour:     p.labour,
		Panel:      p.panel,
		BOM:        p.bom,
		Compliance: p.compliance,
		Sanity:     p.sanity,
		Flags:      p.flags,
	}
}

