// Package output provides output formatting interfaces.
// This package produces human and machine-readable estimate reports.
package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"sparkyestimate/core/engine"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI report
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render produces output for the given report
	Render(w io.Writer, report *engine.Report) error
}

// Options controls formatter behaviour
type Options struct {
	// NoColor disables terminal colors
	NoColor bool

	// ShowDetails adds line items, parts and every compliance verdict
	ShowDetails bool

	// Verbose also lists the fields filled from the catalog
	Verbose bool
}

// Registry manages formatter registration
type Registry struct {
	formatters map[Format]Formatter
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{formatters: make(map[Format]Formatter)}
}

// DefaultRegistry returns a registry holding the cli and json formatters
func DefaultRegistry(opts Options) *Registry {
	r := NewRegistry()
	_ = r.Register(NewCLIFormatter(opts))
	_ = r.Register(NewJSONFormatter())
	return r
}

// Register adds a formatter to the registry
func (r *Registry) Register(f Formatter) error {
	if _, exists := r.formatters[f.Format()]; exists {
		return fmt.Errorf("formatter already registered: %s", f.Format())
	}
	r.formatters[f.Format()] = f
	return nil
}

// Get returns a formatter for a format type
func (r *Registry) Get(format Format) (Formatter, bool) {
	f, ok := r.formatters[format]
	return f, ok
}

// Formats returns the registered format names, sorted
func (r *Registry) Formats() []string {
	out := make([]string, 0, len(r.formatters))
	for f := range r.formatters {
		out = append(out, string(f))
	}
	sort.Strings(out)
	return out
}

// Money formats an amount as dollars with thousands separators
func Money(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + "$" + b.String() + "." + frac
}
