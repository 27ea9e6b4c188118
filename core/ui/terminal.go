// Package ui - Terminal user interface
// Tables, section headers and colored status lines for the cli formatter.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// Colors for terminal output
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
	Cyan   = "\033[36m"
)

// Writer is the UI output destination
type Writer struct {
	out       io.Writer
	noColor   bool
	verbosity int
}

// NewWriter creates a UI writer
func NewWriter(out io.Writer, noColor bool) *Writer {
	if out == nil {
		out = os.Stdout
	}
	return &Writer{
		out:       out,
		noColor:   noColor,
		verbosity: 1,
	}
}

// SetVerbosity sets output verbosity (0=quiet, 1=normal, 2=verbose)
func (w *Writer) SetVerbosity(level int) {
	w.verbosity = level
}

// Verbosity returns the output verbosity
func (w *Writer) Verbosity() int {
	return w.verbosity
}

// Color applies color if enabled
func (w *Writer) Color(c, text string) string {
	if w.noColor {
		return text
	}
	return c + text + Reset
}

// Print writes formatted text
func (w *Writer) Print(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format, args...)
}

// Println writes a line with newline
func (w *Writer) Println(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

// Header prints a section header
func (w *Writer) Header(title string) {
	w.Println("")
	w.Println("%s", w.Color(Bold+Cyan, "━━━ "+title+" ━━━"))
	w.Println("")
}

// SubHeader prints a subsection header
func (w *Writer) SubHeader(title string) {
	w.Println("%s", w.Color(Bold, "▸ "+title))
}

// Success prints a success message
func (w *Writer) Success(format string, args ...interface{}) {
	w.Println("%s%s", w.Color(Green, "✓ "), fmt.Sprintf(format, args...))
}

// Warning prints a warning
func (w *Writer) Warning(format string, args ...interface{}) {
	w.Println("%s%s", w.Color(Yellow, "⚠ "), fmt.Sprintf(format, args...))
}

// Error prints an error
func (w *Writer) Error(format string, args ...interface{}) {
	w.Println("%s%s", w.Color(Red, "✗ "), fmt.Sprintf(format, args...))
}

// Info prints an info message
func (w *Writer) Info(format string, args ...interface{}) {
	if w.verbosity < 1 {
		return
	}
	w.Println("%s%s", w.Color(Blue, "ℹ "), fmt.Sprintf(format, args...))
}

// Debug prints a debug message
func (w *Writer) Debug(format string, args ...interface{}) {
	if w.verbosity < 2 {
		return
	}
	w.Println("%s", w.Color(Dim, "  "+fmt.Sprintf(format, args...)))
}

// Table renders a table
type Table struct {
	w       *Writer
	headers []string
	rows    [][]string
	widths  []int
	right   []bool
}

// NewTable creates a table
func (w *Writer) NewTable(headers ...string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	return &Table{
		w:       w,
		headers: headers,
		rows:    [][]string{},
		widths:  widths,
		right:   make([]bool, len(headers)),
	}
}

// AlignRight right-aligns the given columns, for amounts
func (t *Table) AlignRight(columns ...int) *Table {
	for _, c := range columns {
		if c >= 0 && c < len(t.right) {
			t.right[c] = true
		}
	}
	return t
}

// AddRow adds a row to the table
func (t *Table) AddRow(cells ...string) {
	// Pad or truncate cells to match header count
	row := make([]string, len(t.headers))
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		}
		if n := utf8.RuneCountInString(row[i]); n > t.widths[i] {
			t.widths[i] = n
		}
	}
	t.rows = append(t.rows, row)
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.rows)
}

// Render prints the table
func (t *Table) Render() {
	t.w.Println("%s", t.w.Color(Bold, t.line(t.headers)))

	sep := make([]string, len(t.widths))
	for i, w := range t.widths {
		sep[i] = strings.Repeat("─", w)
	}
	t.w.Println("%s", strings.Join(sep, "─┼─"))

	for _, row := range t.rows {
		t.w.Println("%s", t.line(row))
	}
}

func (t *Table) line(cells []string) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		pad := strings.Repeat(" ", t.widths[i]-utf8.RuneCountInString(cell))
		if t.right[i] {
			parts[i] = pad + cell
		} else {
			parts[i] = cell + pad
		}
	}
	return strings.TrimRight(strings.Join(parts, " │ "), " ")
}

// EstimateSummary renders the headline numbers of an estimate
type EstimateSummary struct {
	w          *Writer
	Name       string
	GrandTotal string
	Hours      string
	CrewDays   string
	Score      float64
	Items      int
	Flags      int
	Errors     int
}

// NewEstimateSummary creates an estimate summary
func (w *Writer) NewEstimateSummary() *EstimateSummary {
	return &EstimateSummary{w: w}
}

// Render prints the estimate summary
func (s *EstimateSummary) Render() {
	s.w.Header("Estimate: " + s.Name)

	s.w.Println("%s", s.w.Color(Bold, "╭─────────────────────────────────────╮"))
	s.w.Println("%s%s%s", s.w.Color(Bold, "│"), s.w.Color(Green, fmt.Sprintf("  Grand Total: %-22s", s.GrandTotal)), s.w.Color(Bold, "│"))
	s.w.Println("%s%s%s", s.w.Color(Bold, "│"), s.w.Color(Dim, fmt.Sprintf("  Labour:      %-22s", s.Hours+" h / "+s.CrewDays+" days")), s.w.Color(Bold, "│"))
	s.w.Println("%s", s.w.Color(Bold, "╰─────────────────────────────────────╯"))
	s.w.Println("")

	scoreColor := Green
	scoreIcon := "●"
	if s.Score < 80 {
		scoreColor = Yellow
		scoreIcon = "◐"
	}
	if s.Score < 50 {
		scoreColor = Red
		scoreIcon = "○"
	}
	s.w.Println("%s", s.w.Color(scoreColor, fmt.Sprintf("%s Compliance score: %.1f", scoreIcon, s.Score)))
	s.w.Println("%s", s.w.Color(Dim, fmt.Sprintf("  Line items: %d", s.Items)))

	if s.Flags > 0 {
		s.w.Warning("%d degraded fallback(s)", s.Flags)
	}
	if s.Errors > 0 {
		s.w.Error("%d sanity error(s)", s.Errors)
	}
}

// ChangeList shows the line changes between two estimate revisions
type ChangeList struct {
	w           *Writer
	Added       []ChangeItem
	Removed     []ChangeItem
	Changed     []ChangeItem
	TotalChange string
	IsIncrease  bool
}

// ChangeItem is a single changed line
type ChangeItem struct {
	Label      string
	Before     string
	After      string
	Change     string
	IsIncrease bool
}

// NewChangeList creates a change view
func (w *Writer) NewChangeList() *ChangeList {
	return &ChangeList{w: w}
}

// Render prints the changes
func (d *ChangeList) Render() {
	d.w.Header("Changes")

	if len(d.Added) > 0 {
		d.w.SubHeader(fmt.Sprintf("Added (%d)", len(d.Added)))
		for _, item := range d.Added {
			d.w.Println("%s%s: %s", d.w.Color(Green, "+ "), item.Label, item.After)
		}
		d.w.Println("")
	}

	if len(d.Removed) > 0 {
		d.w.SubHeader(fmt.Sprintf("Removed (%d)", len(d.Removed)))
		for _, item := range d.Removed {
			d.w.Println("%s%s: %s", d.w.Color(Red, "- "), item.Label, item.Before)
		}
		d.w.Println("")
	}

	if len(d.Changed) > 0 {
		d.w.SubHeader(fmt.Sprintf("Changed (%d)", len(d.Changed)))
		for _, item := range d.Changed {
			change := item.Change
			if item.IsIncrease {
				change = d.w.Color(Red, "+"+change)
			} else {
				change = d.w.Color(Green, change)
			}
			d.w.Println("  %s: %s %s %s (%s)", item.Label, item.Before, d.w.Color(Yellow, "→"), item.After, change)
		}
		d.w.Println("")
	}

	d.w.Println("%s", strings.Repeat("─", 40))
	changeColor := Green
	changePrefix := ""
	if d.IsIncrease {
		changeColor = Red
		changePrefix = "+"
	}
	d.w.Println("%s%s", d.w.Color(Bold, "Total Change: "), d.w.Color(changeColor, changePrefix+d.TotalChange))
}
