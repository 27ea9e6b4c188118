// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"sparkyestimate/core/types"
	"sparkyestimate/internal/errors"
	"sparkyestimate/internal/logging"
)

// FileName is the default configuration file name in the home directory
const FileName = ".sparkyestimate.json"

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Estimate contains estimate parameter defaults
	Estimate EstimateConfig `json:"estimate"`

	// Catalog contains reference catalog settings
	Catalog CatalogConfig `json:"catalog"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// EstimateConfig holds defaults applied to estimates that leave a field unset
type EstimateConfig struct {
	LaborRate       decimal.Decimal `json:"labor_rate"`
	OverheadPct     decimal.Decimal `json:"overhead_pct"`
	ProfitPct       decimal.Decimal `json:"profit_pct"`
	WasteFactorPct  decimal.Decimal `json:"waste_factor_pct"`
	PanelSize       int             `json:"panel_size"`
	JobType         types.JobType   `json:"job_type"`
	CrewSize        int             `json:"crew_size"`
	DefaultCrewRate decimal.Decimal `json:"default_crew_rate"`
	IncludePermit   bool            `json:"include_permit"`
	FillFromCatalog bool            `json:"fill_from_catalog"`
}

// CatalogConfig contains reference catalog settings
type CatalogConfig struct {
	// Path is an optional HCL catalog merged over the built-in one
	Path string `json:"path,omitempty"`

	// Replace uses the catalog file alone instead of merging
	Replace bool `json:"replace"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format (cli, json)
	DefaultFormat string `json:"default_format"`

	// ShowDetails shows line-level breakdowns
	ShowDetails bool `json:"show_details"`

	// NoColor disables terminal colors
	NoColor bool `json:"no_color"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Estimate: EstimateConfig{
			LaborRate:       decimal.NewFromInt(85),
			OverheadPct:     decimal.NewFromInt(15),
			ProfitPct:       decimal.NewFromInt(10),
			WasteFactorPct:  decimal.NewFromInt(15),
			PanelSize:       200,
			JobType:         types.JobNewConstruction,
			CrewSize:        1,
			DefaultCrewRate: decimal.NewFromInt(85),
			IncludePermit:   true,
			FillFromCatalog: true,
		},
		Output: OutputConfig{
			DefaultFormat: "cli",
			ShowDetails:   true,
			NoColor:       false,
		},
		Logging: logging.DefaultConfig(),
	}
}

// DefaultPath returns the configuration path in the home directory
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return FileName
	}
	return filepath.Join(homeDir, FileName)
}

// Load loads configuration from a file.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Config("failed to read config "+path, err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, errors.Config("failed to parse config "+path, err)
	}
	if config.Estimate.JobType != "" && !config.Estimate.JobType.IsValid() {
		return nil, errors.Config("invalid config "+path, errors.Newf(errors.TypeInput, "unknown job type %q", config.Estimate.JobType))
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Config("failed to create config directory", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Internal("failed to encode config", err)
	}

	return os.WriteFile(path, data, 0644)
}

// ApplyDefaults fills unset estimate parameters from the configuration.
// A parameter named in given is never replaced, even when it is zero; other
// parameters count as unset when they hold the zero value.
func (c *Config) ApplyDefaults(p *types.EstimateParameters, given types.ParamSet) {
	d := c.Estimate
	unset := func(name string, zero bool) bool {
		return zero && !given.Has(name)
	}
	if unset("labor_rate", p.LaborRate.IsZero()) {
		p.LaborRate = d.LaborRate
	}
	if unset("overhead_pct", p.OverheadPct.IsZero()) {
		p.OverheadPct = d.OverheadPct
	}
	if unset("profit_pct", p.ProfitPct.IsZero()) {
		p.ProfitPct = d.ProfitPct
	}
	if unset("waste_factor_pct", p.WasteFactorPct.IsZero()) {
		p.WasteFactorPct = d.WasteFactorPct
	}
	if unset("panel_size", p.PanelSize == 0) {
		p.PanelSize = d.PanelSize
	}
	if p.JobType == "" {
		p.JobType = d.JobType
	}
	if unset("crew_size", p.CrewSize == 0) {
		p.CrewSize = d.CrewSize
	}
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
