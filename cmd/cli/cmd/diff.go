// Package cmd - diff command
package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sparkyestimate/core/diff"
	"sparkyestimate/core/engine"
	"sparkyestimate/core/output"
	"sparkyestimate/core/ui"
	"sparkyestimate/internal/config"
	"sparkyestimate/internal/logging"
)

// diffCmd compares two revisions of an estimate
var diffCmd = &cobra.Command{
	Use:   "diff <before> <after>",
	Short: "Compare two revisions of an estimate",
	Long: `Price two estimate files against the same catalog and show which lines
were added, removed or changed and how the grand total moved.

Examples:
  sparkyestimate diff quote.hcl change-order.hcl
  sparkyestimate diff --format json v1.json v2.json`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().StringVarP(&outputFormat, "format", "f", "cli", "output format (cli, json)")
	diffCmd.Flags().StringVarP(&catalogFile, "catalog", "c", "", "HCL catalog merged over the built-in catalog")
	diffCmd.Flags().BoolVar(&replaceCatalog, "replace-catalog", false, "use the catalog file instead of merging it")
	diffCmd.Flags().BoolVar(&noColor, "no-color", false, "disable colors")
}

func runDiff(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	cat, err := loadCatalog(cfg, catalogFile, replaceCatalog)
	if err != nil {
		return err
	}
	eng, err := engine.NewEngine(cat, engine.Config{Logger: logging.Named("diff")})
	if err != nil {
		return err
	}

	reports := make([]*engine.Report, len(args))
	for i, path := range args {
		req, err := loadRequest(path, cfg)
		if err != nil {
			return err
		}
		cfg.ApplyDefaults(&req.Params, req.Given)
		if reports[i], err = eng.Estimate(cmd.Context(), req); err != nil {
			return err
		}
	}

	result := diff.Diff(reports[0], reports[1])
	logging.Debug("Diffed estimates",
		zap.String("before", args[0]), zap.String("after", args[1]),
		zap.Int("added", len(result.Added)), zap.Int("removed", len(result.Removed)), zap.Int("changed", len(result.Changed)))
	if outputFormat == string(output.FormatJSON) {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	w := ui.NewWriter(cmd.OutOrStdout(), noColor || cfg.Output.NoColor)
	if !result.HasChanges() {
		w.Success("no line changes (%d unchanged)", result.UnchangedCount)
	}

	view := w.NewChangeList()
	for _, d := range result.Added {
		view.Added = append(view.Added, ui.ChangeItem{Label: lineLabel(d), After: fmt.Sprintf("%d × %s", d.QuantityAfter, output.Money(d.MaterialAfter))})
	}
	for _, d := range result.Removed {
		view.Removed = append(view.Removed, ui.ChangeItem{Label: lineLabel(d), Before: fmt.Sprintf("%d × %s", d.QuantityBefore, output.Money(d.MaterialBefore))})
	}
	for _, d := range result.Changed {
		view.Changed = append(view.Changed, ui.ChangeItem{
			Label:      lineLabel(d),
			Before:     fmt.Sprintf("%d", d.QuantityBefore),
			After:      fmt.Sprintf("%d", d.QuantityAfter),
			Change:     output.Money(d.Delta.Abs()),
			IsIncrease: d.Delta.IsPositive(),
		})
	}
	view.TotalChange = output.Money(result.TotalDelta.Abs())
	view.IsIncrease = result.TotalDelta.IsPositive()
	if result.TotalDelta.IsNegative() {
		view.TotalChange = "-" + view.TotalChange
	}
	view.Render()
	return nil
}

func lineLabel(d diff.LineDiff) string {
	if d.Room == "" {
		return d.DeviceType
	}
	return d.DeviceType + " (" + d.Room + ")"
}
