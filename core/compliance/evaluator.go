// Package compliance provides the code-compliance rule evaluator.
// The evaluator runs whatever rule set it is given and aggregates verdicts;
// rule content lives with the caller (see compliance/cec).
package compliance

import (
	"fmt"

	"github.com/shopspring/decimal"

	"sparkyestimate/core/inventory"
	"sparkyestimate/core/panel"
	"sparkyestimate/core/types"
)

// Rule defines a single compliance rule
type Rule interface {
	// Name returns the rule identifier
	Name() string

	// Evaluate checks the rule against the estimate.
	// A rule may return zero, one or many results.
	Evaluate(ctx *Context) []types.ComplianceRuleResult
}

// Context is the estimate data rules evaluate against
type Context struct {
	Params   types.EstimateParameters
	Items    []types.LineItem
	Circuits []types.Circuit

	// Panel is the panel analysis, nil when it was not computed
	Panel *panel.Summary

	// Inventory is the items resolved against the catalog
	Inventory *inventory.Inventory
}

// NewContext builds a context, tallying items against the catalog
func NewContext(params types.EstimateParameters, items []types.LineItem, circuits []types.Circuit, summary *panel.Summary, catalog []types.CatalogAssembly) *Context {
	return &Context{
		Params:    params,
		Items:     items,
		Circuits:  circuits,
		Panel:     summary,
		Inventory: inventory.Tally(items, catalog),
	}
}

// Summary aggregates verdicts per status
type Summary struct {
	Total    int `json:"total"`
	Passes   int `json:"passes"`
	Warnings int `json:"warnings"`
	Failures int `json:"failures"`
	Infos    int `json:"infos"`

	// Score is passes over scored verdicts as a percentage, INFO excluded
	Score decimal.Decimal `json:"score"`
}

// Report is the outcome of one evaluation
type Report struct {
	Results []types.ComplianceRuleResult `json:"results"`
	Summary Summary                      `json:"summary"`
}

// HasFailures returns true if any rule failed
func (r *Report) HasFailures() bool {
	return r.Summary.Failures > 0
}

// ByStatus returns the results with one status
func (r *Report) ByStatus(status types.ComplianceStatus) []types.ComplianceRuleResult {
	var out []types.ComplianceRuleResult
	for _, res := range r.Results {
		if res.Status == status {
			out = append(out, res)
		}
	}
	return out
}

// Evaluator runs all registered rules
type Evaluator struct {
	rules []Rule
	names map[string]struct{}
}

// NewEvaluator creates an evaluator with the given rules
func NewEvaluator(rules ...Rule) (*Evaluator, error) {
	e := &Evaluator{names: make(map[string]struct{})}
	for _, r := range rules {
		if err := e.RegisterRule(r); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// RegisterRule adds a rule to the evaluator
func (e *Evaluator) RegisterRule(rule Rule) error {
	if _, exists := e.names[rule.Name()]; exists {
		return fmt.Errorf("rule already registered: %s", rule.Name())
	}
	e.names[rule.Name()] = struct{}{}
	e.rules = append(e.rules, rule)
	return nil
}

// Rules returns the registered rule names in registration order
func (e *Evaluator) Rules() []string {
	names := make([]string, 0, len(e.rules))
	for _, r := range e.rules {
		names = append(names, r.Name())
	}
	return names
}

// Evaluate runs every rule in registration order, without short-circuiting
func (e *Evaluator) Evaluate(ctx *Context) *Report {
	report := &Report{Results: []types.ComplianceRuleResult{}}
	for _, rule := range e.rules {
		report.Results = append(report.Results, rule.Evaluate(ctx)...)
	}
	report.Summary = Summarize(report.Results)
	return report
}

// Summarize counts verdicts and computes the score.
// With nothing scored the score is 100.
func Summarize(results []types.ComplianceRuleResult) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		switch r.Status {
		case types.StatusPass:
			s.Passes++
		case types.StatusWarn:
			s.Warnings++
		case types.StatusFail:
			s.Failures++
		case types.StatusInfo:
			s.Infos++
		}
	}

	scored := s.Passes + s.Warnings + s.Failures
	if scored == 0 {
		s.Score = decimal.NewFromInt(100)
		return s
	}
	s.Score = decimal.NewFromInt(int64(s.Passes * 100)).
		Div(decimal.NewFromInt(int64(scored))).
		Round(1)
	return s
}

// RuleFunc adapts a function to the Rule interface
type RuleFunc struct {
	RuleName string
	Fn       func(ctx *Context) []types.ComplianceRuleResult
}

// Name returns the rule identifier
func (r RuleFunc) Name() string {
	return r.RuleName
}

// Evaluate calls the wrapped function
func (r RuleFunc) Evaluate(ctx *Context) []types.ComplianceRuleResult {
	return r.Fn(ctx)
}
