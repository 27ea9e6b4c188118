package output

import (
	"fmt"
	"io"
	"strconv"

	"sparkyestimate/core/engine"
	"sparkyestimate/core/sanity"
	"sparkyestimate/core/types"
	"sparkyestimate/core/ui"
)

// CLIFormatter renders a report for the terminal
type CLIFormatter struct {
	opts Options
}

// NewCLIFormatter creates a CLI formatter
func NewCLIFormatter(opts Options) *CLIFormatter {
	return &CLIFormatter{opts: opts}
}

// Format returns FormatCLI
func (f *CLIFormatter) Format() Format {
	return FormatCLI
}

// Render writes the report
func (f *CLIFormatter) Render(w io.Writer, report *engine.Report) error {
	out := ui.NewWriter(w, f.opts.NoColor)
	if f.opts.Verbose {
		out.SetVerbosity(2)
	}

	f.renderSummary(out, report)
	f.renderCosts(out, report)
	if f.opts.ShowDetails {
		f.renderItems(out, report)
	}
	f.renderWire(out, report)
	f.renderLabour(out, report)
	f.renderPanel(out, report)
	f.renderBOM(out, report)
	f.renderCompliance(out, report)
	f.renderWarnings(out, report)

	out.Println("")
	out.Println("%s", out.Color(ui.Dim, "Report ID: "+string(report.ID)))
	return nil
}

func (f *CLIFormatter) renderSummary(out *ui.Writer, r *engine.Report) {
	s := out.NewEstimateSummary()
	s.Name = r.Name
	s.GrandTotal = Money(r.Totals.GrandTotal)
	s.Hours = r.Labour.Hours.StringFixed(1)
	s.CrewDays = r.Labour.CrewDays.StringFixed(1)
	s.Items = len(r.Items)
	if r.Compliance != nil {
		s.Score, _ = r.Compliance.Summary.Score.Float64()
	}
	for _, fl := range r.Flags {
		if fl.Kind != engine.FlagCatalogDefault {
			s.Flags++
		}
	}
	for _, w := range r.Sanity {
		if w.Severity == sanity.SeverityError {
			s.Errors++
		}
	}
	s.Render()
}

func (f *CLIFormatter) renderCosts(out *ui.Writer, r *engine.Report) {
	t := r.Totals
	out.Header("Costs")

	table := out.NewTable("", "Amount").AlignRight(1)
	table.AddRow("Item materials", Money(t.ItemMaterials))
	table.AddRow("Wire", Money(t.WireCost))
	if !t.ServiceMaterial.IsZero() {
		table.AddRow("Service materials", Money(t.ServiceMaterial))
	}
	table.AddRow("Materials with markup", Money(t.MaterialWithMarkup))
	table.AddRow(fmt.Sprintf("Labour (%s h)", t.LaborHoursTotal.StringFixed(2)), Money(t.LaborWithMarkup))
	table.AddRow("Subtotal", Money(t.Subtotal))
	table.AddRow("Overhead", Money(t.Overhead))
	table.AddRow("Profit", Money(t.Profit))
	if t.PermitIncluded {
		label := "Permit"
		if t.Permit.Label != "" {
			label += " (" + t.Permit.Label + ")"
		}
		table.AddRow(label, Money(t.Permit.Fee))
	}
	table.AddRow("Grand total", Money(t.GrandTotal))
	table.Render()
}

func (f *CLIFormatter) renderItems(out *ui.Writer, r *engine.Report) {
	if len(r.Items) == 0 {
		return
	}
	out.Header("Line Items")

	table := out.NewTable("Device", "Room", "Qty", "Unit", "Hours", "Wire").AlignRight(2, 3, 4)
	for _, item := range r.Items {
		wire := item.WireType
		if !item.WireFootage.IsZero() {
			wire = fmt.Sprintf("%s × %s ft", wire, item.WireFootage.String())
		}
		table.AddRow(item.DeviceType, item.Room, strconv.Itoa(item.Quantity),
			Money(item.MaterialCost), item.LaborHours.String(), wire)
	}
	table.Render()
}

func (f *CLIFormatter) renderWire(out *ui.Writer, r *engine.Report) {
	if len(r.Wire.Rows) == 0 {
		return
	}
	out.Header("Wire Schedule")

	table := out.NewTable("Wire", "Feet", "With waste", "Metres", "150 m", "75 m", "Cost").AlignRight(1, 2, 3, 4, 5, 6)
	for _, row := range r.Wire.Rows {
		cost := Money(row.TotalCost)
		if row.CostMissing {
			cost = "n/a"
		}
		table.AddRow(row.WireType, row.Footage.StringFixed(1), row.WithWaste.StringFixed(1),
			strconv.Itoa(row.Metres), strconv.Itoa(row.Spools150), strconv.Itoa(row.Spools75), cost)
	}
	tot := r.Wire.Totals
	table.AddRow("Total", tot.Footage.StringFixed(1), tot.WithWaste.StringFixed(1),
		strconv.Itoa(tot.Metres), strconv.Itoa(tot.Spools150), strconv.Itoa(tot.Spools75), Money(tot.TotalCost))
	table.Render()
}

func (f *CLIFormatter) renderLabour(out *ui.Writer, r *engine.Report) {
	l := r.Labour
	out.Header("Labour")

	out.Println("Rough-in: %s h   Finish: %s h   Total: %s h", l.RoughIn.StringFixed(2), l.Finish.StringFixed(2), l.Hours.StringFixed(2))
	out.Println("Crew of %d at %s/h: %s days, %s", l.CrewSize, Money(l.BlendedRate), l.CrewDays.StringFixed(1), Money(l.Cost))
	if l.Overridden {
		out.Info("hours override applied")
	}

	if f.opts.ShowDetails && len(l.Categories) > 0 {
		out.Println("")
		table := out.NewTable("Category", "Hours", "Rough-in", "Finish").AlignRight(1, 2, 3)
		for _, c := range l.Categories {
			table.AddRow(string(c.Category), c.Hours.StringFixed(2), c.RoughIn.StringFixed(2), c.Finish.StringFixed(2))
		}
		table.Render()
	}
}

func (f *CLIFormatter) renderPanel(out *ui.Writer, r *engine.Report) {
	p := r.Panel
	if p == nil {
		return
	}
	out.Header("Panel")

	out.Println("Demand load: %s W (%d A) on a %d A panel, %s%% utilized",
		p.DemandLoad.StringFixed(0), p.DemandAmps, p.PanelSize, p.Utilization.StringFixed(1))
	out.Println("Circuits: %d (%d single-pole, %d multi-pole, %d GFCI, %d AFCI)",
		p.Circuits, p.SinglePoleCount, p.MultiPoleCount, p.GfciCount, p.AfciCount)
	out.Println("Spaces: %d of %d used", p.SpacesUsed, p.PanelSpaces)

	if p.Overloaded {
		out.Error("panel overloaded, recommended size %d A", p.RecommendedSize)
	} else {
		out.Success("panel size adequate")
	}
	if p.SpacesOverflowed {
		out.Error("circuits need more spaces than the panel has")
	}
}

func (f *CLIFormatter) renderBOM(out *ui.Writer, r *engine.Report) {
	b := r.BOM
	out.Header("Bill of Materials")

	table := out.NewTable("Category", "Items", "Material").AlignRight(1, 2)
	for _, c := range b.CategoryTotals {
		table.AddRow(string(c.Category), strconv.Itoa(c.Items), Money(c.MaterialCost))
	}
	if len(b.UnmatchedItems) > 0 {
		table.AddRow("unmatched", strconv.Itoa(len(b.UnmatchedItems)), Money(b.UnmatchedCost))
	}
	table.Render()

	if f.opts.ShowDetails && len(b.Parts) > 0 {
		out.Println("")
		parts := out.NewTable("Part", "Qty", "Unit", "Cost").AlignRight(1, 2, 3)
		for _, p := range b.Parts {
			unit, cost := Money(p.UnitCost), Money(p.Cost)
			if !p.Priced {
				unit, cost = "-", "-"
			}
			parts.AddRow(p.Name, strconv.Itoa(p.Quantity), unit, cost)
		}
		parts.Render()
	}

	for _, u := range b.UnmatchedItems {
		out.Warning("no catalog match for %q (%d × %s)", u.DeviceType, u.Quantity, Money(u.UnitCost))
	}
}

func (f *CLIFormatter) renderCompliance(out *ui.Writer, r *engine.Report) {
	c := r.Compliance
	if c == nil {
		return
	}
	out.Header("Compliance")

	s := c.Summary
	out.Println("%d pass, %d warn, %d fail, %d info (score %s)", s.Passes, s.Warnings, s.Failures, s.Infos, s.Score.StringFixed(1))
	out.Println("")

	for _, res := range c.Results {
		if !f.opts.ShowDetails && res.Status == types.StatusPass {
			continue
		}
		line := fmt.Sprintf("[%s] %s: %s", res.Rule, res.Location, res.Description)
		switch res.Status {
		case types.StatusPass:
			out.Success("%s", line)
		case types.StatusWarn:
			out.Warning("%s", line)
		case types.StatusFail:
			out.Error("%s", line)
		default:
			out.Info("%s", line)
		}
		if res.Recommendation != "" && res.Status != types.StatusPass {
			out.Println("    %s", out.Color(ui.Dim, res.Recommendation))
		}
	}
}

func (f *CLIFormatter) renderWarnings(out *ui.Writer, r *engine.Report) {
	var degraded []engine.Flag
	for _, fl := range r.Flags {
		if fl.Kind != engine.FlagCatalogDefault || out.Verbosity() > 1 {
			degraded = append(degraded, fl)
		}
	}
	if len(r.Sanity) == 0 && len(degraded) == 0 {
		return
	}
	out.Header("Warnings")

	for _, w := range r.Sanity {
		switch w.Severity {
		case sanity.SeverityError:
			out.Error("%s", w.Message)
		case sanity.SeverityWarning:
			out.Warning("%s", w.Message)
		default:
			out.Info("%s", w.Message)
		}
	}
	for _, fl := range degraded {
		out.Warning("%s", fl.Message)
	}
}
