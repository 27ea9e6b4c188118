// Package cmd - catalog and match commands
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"sparkyestimate/adapters/hcl"
	"sparkyestimate/core/catalog"
	"sparkyestimate/core/matcher"
	"sparkyestimate/core/output"
	"sparkyestimate/core/types"
	"sparkyestimate/core/ui"
	"sparkyestimate/internal/config"
	"sparkyestimate/internal/errors"
)

var (
	catalogCategory string
	matchTop        int
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the reference assemblies",
	Long: `List the assemblies estimates are priced against.

A catalog file given with --catalog (or in the config) is merged over
the built-in catalog first.`,
	Args: cobra.NoArgs,
	RunE: runCatalog,
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a catalog file merged over the built-in catalog",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := catalogFile
		if len(args) > 0 {
			path = args[0]
		}
		if _, err := loadCatalog(config.Get(), path, replaceCatalog); err != nil {
			return err
		}
		w := ui.NewWriter(cmd.OutOrStdout(), noColor)
		w.Success("catalog is valid")
		return nil
	},
}

var matchCmd = &cobra.Command{
	Use:   "match <device name>",
	Short: "Show which assembly a device name matches",
	Example: `  sparkyestimate match "GFCI outlet 20A kitchen"
  sparkyestimate match --top 5 pot light`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMatch,
}

func init() {
	for _, c := range []*cobra.Command{catalogCmd, matchCmd} {
		c.PersistentFlags().StringVarP(&catalogFile, "catalog", "c", "", "HCL catalog merged over the built-in catalog")
		c.PersistentFlags().BoolVar(&replaceCatalog, "replace-catalog", false, "use the catalog file instead of merging it")
		c.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colors")
	}
	catalogCmd.Flags().StringVar(&catalogCategory, "category", "", "only list one category")
	matchCmd.Flags().IntVar(&matchTop, "top", 3, "number of candidates to show")
	catalogCmd.AddCommand(catalogValidateCmd)
}

// loadCatalog returns the built-in catalog with the file merged over it.
// The merged catalog is validated before use.
func loadCatalog(cfg *config.Config, path string, replace bool) (types.Catalog, error) {
	if path == "" {
		path = cfg.Catalog.Path
		replace = replace || cfg.Catalog.Replace
	}
	if path == "" {
		return catalog.Default(), nil
	}

	custom, err := hcl.LoadCatalog(path)
	if err != nil {
		return types.Catalog{}, err
	}
	merged := custom
	if !replace {
		merged = catalog.Merge(catalog.Default(), custom)
	}
	if problems := catalog.Validate(merged, catalog.DefaultValidationRules()); len(problems) > 0 {
		return types.Catalog{}, errors.Catalog(path, problems)
	}
	return merged, nil
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog(config.Get(), catalogFile, replaceCatalog)
	if err != nil {
		return err
	}

	r := catalog.NewRegistry()
	for _, a := range cat.Assemblies {
		if err := r.Register(a); err != nil {
			return errors.Wrap(errors.TypeCatalog, "invalid catalog", err)
		}
	}

	w := ui.NewWriter(cmd.OutOrStdout(), noColor)
	for _, category := range types.DeviceCategories() {
		if catalogCategory != "" && string(category) != catalogCategory {
			continue
		}
		assemblies := r.ListByCategory(category)
		if len(assemblies) == 0 {
			continue
		}
		w.Header(fmt.Sprintf("%s (%d)", category, len(assemblies)))
		table := w.NewTable("Assembly", "Material", "Hours", "Wire").AlignRight(1, 2)
		for _, a := range assemblies {
			wire := a.WireType
			if !a.WireFootage.IsZero() {
				wire = fmt.Sprintf("%s × %s ft", a.WireType, a.WireFootage.String())
			}
			table.AddRow(a.Name, output.Money(a.MaterialCost), a.LaborHours.String(), wire)
		}
		table.Render()
	}

	stats := r.Stats()
	w.Println("")
	w.Info("%d assemblies, %d parts, %d wire types", stats.Total, len(cat.Parts), len(cat.WireCosts))
	return nil
}

func runMatch(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog(config.Get(), catalogFile, replaceCatalog)
	if err != nil {
		return err
	}
	query := strings.Join(args, " ")
	w := ui.NewWriter(cmd.OutOrStdout(), noColor)

	result := matcher.MatchScored(query, cat.Assemblies)
	if !result.Matched() {
		w.Warning("no assembly scored %d or more for %q", matcher.MinScore, query)
	} else {
		kind := "fuzzy"
		if result.Exact {
			kind = "exact"
		}
		w.Success("%s (score %d, %s)", result.Assembly.Name, result.Score, kind)
	}

	candidates := matcher.Rank(query, cat.Assemblies, matchTop)
	if len(candidates) == 0 {
		return nil
	}
	w.Println("")
	table := w.NewTable("Candidate", "Score").AlignRight(1)
	for _, c := range candidates {
		table.AddRow(c.Assembly.Name, fmt.Sprintf("%d", c.Score))
	}
	table.Render()
	return nil
}
