// Package engine provides the estimation engine.
// CLI and file adapters are thin wrappers around this package.
package engine

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"sparkyestimate/core/bom"
	"sparkyestimate/core/catalog"
	"sparkyestimate/core/compliance"
	"sparkyestimate/core/compliance/cec"
	"sparkyestimate/core/cost"
	"sparkyestimate/core/determinism"
	"sparkyestimate/core/labour"
	"sparkyestimate/core/panel"
	"sparkyestimate/core/permit"
	"sparkyestimate/core/sanity"
	"sparkyestimate/core/types"
	"sparkyestimate/core/wire"
	"sparkyestimate/internal/errors"
)

var reportIDs = determinism.NewIDGenerator("sparkyestimate/report")

// Engine computes estimates against one reference catalog.
// It holds no per-estimate state and is safe for concurrent use.
type Engine struct {
	catalog   types.Catalog
	permits   *types.PermitFeeSchedule
	evaluator *compliance.Evaluator
	config    Config
	logger    *zap.Logger
}

// Config configures the engine
type Config struct {
	// SplitTable is the rough-in / finish split per category
	SplitTable labour.SplitTable

	// JobMultipliers is the labour multiplier per job type
	JobMultipliers labour.JobMultipliers

	// Rules is the compliance rule set, cec.Rules() when nil
	Rules []compliance.Rule

	// SanityLimits are the per-device maximum counts
	SanityLimits []sanity.Limit

	// Logger receives degraded-fallback warnings, a no-op logger when nil
	Logger *zap.Logger
}

// DefaultConfig returns the built-in tables and rules
func DefaultConfig() Config {
	return Config{
		SplitTable:     labour.DefaultSplitTable(),
		JobMultipliers: labour.DefaultJobMultipliers(),
		Rules:          cec.Rules(),
		SanityLimits:   sanity.DefaultLimits,
	}
}

// NewEngine creates an engine, validating the catalog and tables
func NewEngine(c types.Catalog, config Config) (*Engine, error) {
	defaults := DefaultConfig()
	if config.SplitTable == nil {
		config.SplitTable = defaults.SplitTable
	}
	if config.JobMultipliers == nil {
		config.JobMultipliers = defaults.JobMultipliers
	}
	if config.Rules == nil {
		config.Rules = defaults.Rules
	}
	if config.SanityLimits == nil {
		config.SanityLimits = defaults.SanityLimits
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}

	if problems := catalog.Validate(c, catalog.DefaultValidationRules()); len(problems) > 0 {
		return nil, errors.Catalog("reference", problems)
	}
	if err := labour.ValidateSplitTable(config.SplitTable); err != nil {
		return nil, errors.Wrap(errors.TypeCatalog, "invalid labour split table", err)
	}

	evaluator, err := compliance.NewEvaluator(config.Rules...)
	if err != nil {
		return nil, errors.Wrap(errors.TypeInput, "invalid compliance rules", err)
	}

	return &Engine{
		catalog:   c,
		permits:   permit.Active(c.Permits),
		evaluator: evaluator,
		config:    config,
		logger:    config.Logger.Named("engine"),
	}, nil
}

// Catalog returns the reference catalog
func (e *Engine) Catalog() types.Catalog {
	return e.catalog
}

// Request is the input to estimation
type Request struct {
	Params   types.EstimateParameters `json:"params"`
	Items    []types.LineItem         `json:"items"`
	Services []types.ServiceLine      `json:"services,omitempty"`
	Circuits []types.Circuit          `json:"circuits,omitempty"`
	Crew     []types.CrewMember       `json:"crew,omitempty"`

	// DefaultRate is the crew rate when no crew is assigned,
	// the estimate labour rate when zero
	DefaultRate decimal.Decimal `json:"default_rate"`

	// FillFromCatalog fills blank item costs, hours and wire from the matched assembly
	FillFromCatalog bool `json:"fill_from_catalog"`

	// Given lists the parameters the input set explicitly.
	// Nil when the request was built in code.
	Given types.ParamSet `json:"-"`
}

// Report is the output of estimation
type Report struct {
	// ID is derived from the request content; equal requests share an ID
	ID   determinism.StableID `json:"id"`
	Name string               `json:"name"`

	Params   types.EstimateParameters `json:"params"`
	Items    []types.LineItem         `json:"items"`
	Services []types.ServiceLine      `json:"services,omitempty"`

	Totals cost.Totals   `json:"totals"`
	Wire   wire.Result   `json:"wire"`
	Labour labour.Result `json:"labour"`

	// Panel is nil when the request has no circuits
	Panel *panel.Summary `json:"panel,omitempty"`

	BOM        bom.Result         `json:"bom"`
	Compliance *compliance.Report `json:"compliance"`
	Sanity     []sanity.Warning   `json:"sanity"`

	// Flags lists every degraded fallback taken
	Flags []Flag `json:"flags"`
}

// Degraded returns true if any fallback was taken
func (r *Report) Degraded() bool {
	for _, f := range r.Flags {
		if f.Kind != FlagCatalogDefault {
			return true
		}
	}
	return false
}

// FlagKind classifies a degraded fallback
type FlagKind string

const (
	FlagUnmatchedItem    FlagKind = "unmatched_item"
	FlagMissingWireCost  FlagKind = "missing_wire_cost"
	FlagPermitUnresolved FlagKind = "permit_unresolved"
	FlagCatalogDefault   FlagKind = "catalog_default"
)

// Flag records one fallback
type Flag struct {
	Kind    FlagKind `json:"kind"`
	Subject string   `json:"subject"`
	Message string   `json:"message"`
}

// Estimate performs the estimation.
// The only error is a cancelled context; degraded inputs yield flags.
func (e *Engine) Estimate(ctx context.Context, req *Request) (*Report, error) {
	if req == nil {
		return nil, errors.Input("estimate request is required")
	}

	p := newPipeline(e, req)
	steps := []func() error{
		p.prepare,
		p.rollup,
		p.scheduleWire,
		p.splitLabour,
		p.analyzePanel,
		p.buildBOM,
		p.evaluateCompliance,
		p.checkSanity,
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := step(); err != nil {
			return nil, err
		}
	}

	report := p.report()
	report.ID = requestID(req)
	e.logFlags(report)
	return report, nil
}

func (e *Engine) logFlags(r *Report) {
	for _, f := range r.Flags {
		fields := []zap.Field{
			zap.String("estimate", r.Name),
			zap.String("kind", string(f.Kind)),
			zap.String("subject", f.Subject),
		}
		if f.Kind == FlagCatalogDefault {
			e.logger.Debug(f.Message, fields...)
			continue
		}
		e.logger.Warn(f.Message, fields...)
	}
	e.logger.Debug("estimate complete",
		zap.String("estimate", r.Name),
		zap.Int("items", len(r.Items)),
		zap.Int("flags", len(r.Flags)),
		zap.String("grand_total", r.Totals.GrandTotal.StringFixed(2)))
}

// requestID hashes the canonical JSON of the request.
// encoding/json sorts map keys, so equal requests encode identically.
func requestID(req *Request) determinism.StableID {
	data, err := json.Marshal(req)
	if err != nil {
		return reportIDs.Generate(req.Params.Name)
	}
	return reportIDs.Generate(req.Params.Name, string(data))
}
