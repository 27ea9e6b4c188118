// Package cmd - estimate command
package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sparkyestimate/adapters/hcl"
	"sparkyestimate/adapters/jsoninput"
	"sparkyestimate/core/engine"
	"sparkyestimate/core/output"
	"sparkyestimate/internal/config"
	"sparkyestimate/internal/errors"
	"sparkyestimate/internal/logging"
)

var (
	outputFormat     string
	catalogFile      string
	replaceCatalog   bool
	crewSize         int
	showDetails      bool
	noColor          bool
	failOnCompliance bool
)

// estimateCmd represents the estimate command
var estimateCmd = &cobra.Command{
	Use:   "estimate <file>",
	Short: "Price an estimate file",
	Long: `Load an estimate written in HCL (.hcl) or JSON (.json) and price it.

Values the file leaves unset are taken from the configuration file.

Examples:
  sparkyestimate estimate house.hcl
  sparkyestimate estimate --catalog supplier.hcl house.hcl
  sparkyestimate estimate --format json house.json > report.json`,
	Args: cobra.ExactArgs(1),
	RunE: runEstimate,
}

func init() {
	estimateCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format (cli, json)")
	estimateCmd.Flags().StringVarP(&catalogFile, "catalog", "c", "", "HCL catalog merged over the built-in catalog")
	estimateCmd.Flags().BoolVar(&replaceCatalog, "replace-catalog", false, "use the catalog file instead of merging it")
	estimateCmd.Flags().IntVar(&crewSize, "crew-size", 0, "number of electricians on site")
	estimateCmd.Flags().BoolVarP(&showDetails, "details", "d", false, "show line items, parts and every compliance verdict")
	estimateCmd.Flags().BoolVar(&noColor, "no-color", false, "disable colors")
	estimateCmd.Flags().BoolVar(&failOnCompliance, "fail-on-compliance", false, "exit non-zero when a compliance rule fails")
}

func runEstimate(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	path := args[0]

	cat, err := loadCatalog(cfg, catalogFile, replaceCatalog)
	if err != nil {
		return err
	}

	req, err := loadRequest(path, cfg)
	if err != nil {
		return err
	}
	cfg.ApplyDefaults(&req.Params, req.Given)
	if crewSize > 0 {
		req.Params.CrewSize = crewSize
	}

	eng, err := engine.NewEngine(cat, engine.Config{Logger: logging.Named("estimate")})
	if err != nil {
		return err
	}

	logging.Info("Estimating", zap.String("file", path), zap.Int("items", len(req.Items)))
	report, err := eng.Estimate(cmd.Context(), req)
	if err != nil {
		return err
	}

	format := output.Format(cfg.Output.DefaultFormat)
	if outputFormat != "" {
		format = output.Format(outputFormat)
	}
	registry := output.DefaultRegistry(output.Options{
		NoColor:     noColor || cfg.Output.NoColor,
		ShowDetails: showDetails || cfg.Output.ShowDetails,
		Verbose:     verbose,
	})
	formatter, ok := registry.Get(format)
	if !ok {
		return errors.Newf(errors.TypeInput, "unknown format %q (available: %s)", format, strings.Join(registry.Formats(), ", "))
	}
	if err := formatter.Render(cmd.OutOrStdout(), report); err != nil {
		return errors.Internal("failed to render report", err)
	}

	if failOnCompliance && report.Compliance != nil && report.Compliance.HasFailures() {
		return errors.Compliance(report.Compliance.Summary.Failures)
	}
	return nil
}

// loadRequest picks the adapter by file extension
func loadRequest(path string, cfg *config.Config) (*engine.Request, error) {
	d := cfg.Estimate
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return hcl.LoadEstimate(path, hcl.Options{
			FillFromCatalog: d.FillFromCatalog,
			IncludePermit:   d.IncludePermit,
			DefaultRate:     d.DefaultCrewRate,
		})
	case ".json":
		return jsoninput.LoadEstimate(path, jsoninput.Options{
			FillFromCatalog: d.FillFromCatalog,
			IncludePermit:   d.IncludePermit,
			DefaultRate:     d.DefaultCrewRate,
		})
	default:
		return nil, errors.NotSupported(fmt.Sprintf("estimate file type %q", filepath.Ext(path)))
	}
}
