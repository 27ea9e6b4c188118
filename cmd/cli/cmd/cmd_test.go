package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sparkyestimate/internal/errors"
)

const houseHCL = `
estimate "Test House" {
  job_type   = "new_construction"
  panel_size = 200
  home_runs  = 6
}

item "Duplex Receptacle (15A)" {
  room     = "Living Room"
  quantity = 8
}

item "Smoke Detector (Hardwired)" {
  room     = "Hall"
  quantity = 3
}

circuit {
  number  = 1
  amps    = 15
  afci    = true
  outlets = 8
}
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "config.json")}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestEstimateCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "house.hcl")
	if err := os.WriteFile(path, []byte(houseHCL), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "estimate", "--format", "json", "--crew-size", "2", path)
	if err != nil {
		t.Fatalf("estimate: %v\n%s", err, out)
	}

	var report struct {
		Name   string `json:"name"`
		Params struct {
			CrewSize  int    `json:"crew_size"`
			LaborRate string `json:"labor_rate"`
		} `json:"params"`
		Items []struct {
			DeviceType string `json:"device_type"`
		} `json:"items"`
	}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, out)
	}
	if report.Name != "Test House" || report.Params.CrewSize != 2 {
		t.Errorf("unexpected report %+v", report)
	}
	if report.Params.LaborRate != "85" {
		t.Errorf("expected config default labour rate, got %s", report.Params.LaborRate)
	}
	if len(report.Items) != 3 || report.Items[2].DeviceType != "Home Run (per circuit)" {
		t.Errorf("expected items plus home run line, got %+v", report.Items)
	}
}

func TestEstimateCommandKeepsExplicitZeros(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atcost.hcl")
	src := strings.Replace(houseHCL, "home_runs  = 6", "home_runs  = 6\n  overhead_pct = 0\n  profit_pct = 0\n  waste_factor_pct = 0", 1)
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "estimate", "--format", "json", path)
	if err != nil {
		t.Fatalf("estimate: %v\n%s", err, out)
	}

	var report struct {
		Params struct {
			OverheadPct    string `json:"overhead_pct"`
			ProfitPct      string `json:"profit_pct"`
			WasteFactorPct string `json:"waste_factor_pct"`
			LaborRate      string `json:"labor_rate"`
		} `json:"params"`
	}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, out)
	}
	p := report.Params
	if p.OverheadPct != "0" || p.ProfitPct != "0" || p.WasteFactorPct != "0" {
		t.Errorf("expected explicit zero percentages kept, got %+v", p)
	}
	if p.LaborRate != "85" {
		t.Errorf("expected absent labour rate from config, got %s", p.LaborRate)
	}
}

func TestEstimateCommandErrors(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "house.txt")
	if err := os.WriteFile(txt, []byte("nope"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing file", []string{"estimate", filepath.Join(dir, "missing.hcl")}, "not found"},
		{"unsupported type", []string{"estimate", txt}, "not supported"},
		{"unknown format", []string{"estimate", "--format", "pdf", filepath.Join(dir, "house.hcl")}, "unknown format"},
	}
	if err := os.WriteFile(filepath.Join(dir, "house.hcl"), []byte(houseHCL), 0644); err != nil {
		t.Fatal(err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
	outputFormat = ""
}

func TestEstimateCommandFailOnCompliance(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overloaded.hcl")
	src := strings.Replace(houseHCL, "outlets = 8", "outlets = 20", 1)
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "estimate", "--format", "json", "--fail-on-compliance", path)
	failOnCompliance = false
	if !errors.IsType(err, errors.TypeCompliance) {
		t.Fatalf("expected compliance error, got %v\n%s", err, out)
	}
	if !strings.Contains(out, `"grand_total"`) {
		t.Errorf("expected the report rendered before failing, got:\n%s", out)
	}
}

func TestMatchCommand(t *testing.T) {
	out, err := run(t, "match", "--no-color", "gfci", "outlet", "20a")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "✓ GFCI Receptacle (20A)") {
		t.Errorf("expected GFCI match, got:\n%s", out)
	}
}

func TestCatalogCommand(t *testing.T) {
	out, err := run(t, "catalog", "--no-color", "--category", "safety")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "safety (3)") || strings.Contains(out, "receptacles") {
		t.Errorf("expected only the safety assemblies, got:\n%s", out)
	}
	catalogCategory = ""
}

func TestDiffCommand(t *testing.T) {
	dir := t.TempDir()
	before := filepath.Join(dir, "before.hcl")
	after := filepath.Join(dir, "after.hcl")
	if err := os.WriteFile(before, []byte(houseHCL), 0644); err != nil {
		t.Fatal(err)
	}
	revised := strings.Replace(houseHCL, "quantity = 8", "quantity = 10", 1)
	if err := os.WriteFile(after, []byte(revised), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "diff", "--no-color", "--format", "cli", before, after)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Duplex Receptacle (15A) (Living Room): 8 → 10") || !strings.Contains(out, "Total Change: +$") {
		t.Errorf("unexpected diff output:\n%s", out)
	}
}
