package output

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"sparkyestimate/core/catalog"
	"sparkyestimate/core/engine"
	"sparkyestimate/core/types"
)

func testReport(t *testing.T) *engine.Report {
	t.Helper()
	e, err := engine.NewEngine(catalog.Default(), engine.Config{})
	if err != nil {
		t.Fatal(err)
	}
	report, err := e.Estimate(context.Background(), &engine.Request{
		Params: types.EstimateParameters{
			Name:           "Basement Suite",
			LaborRate:      decimal.NewFromInt(90),
			WasteFactorPct: decimal.NewFromInt(10),
			JobType:        types.JobRenovation,
			PanelSize:      100,
			CrewSize:       1,
		},
		Items: []types.LineItem{
			{DeviceType: "Duplex Receptacle (15A)", Room: "Rec Room", Quantity: 8},
			{DeviceType: "Pot Light", Room: "Rec Room", Quantity: 6},
			{DeviceType: "Sauna controller", Room: "Patio", Quantity: 1, MaterialCost: decimal.NewFromInt(120)},
		},
		Circuits: []types.Circuit{
			{CircuitNumber: 1, Amps: 15, Poles: 1, Description: "Rec room", OutletCount: 8, IsAfci: true},
		},
		FillFromCatalog: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	return report
}

func TestMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"12.5", "$12.50"},
		{"999.999", "$1,000.00"},
		{"1234567.891", "$1,234,567.89"},
		{"-4200", "-$4,200.00"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Money(decimal.RequireFromString(tt.in)); got != tt.want {
				t.Errorf("Money(%s) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestRegistry(t *testing.T) {
	r := DefaultRegistry(Options{})

	if got := r.Formats(); len(got) != 2 || got[0] != "cli" || got[1] != "json" {
		t.Errorf("unexpected formats %v", got)
	}
	if _, ok := r.Get(FormatJSON); !ok {
		t.Error("expected json formatter")
	}
	if _, ok := r.Get("pdf"); ok {
		t.Error("expected no pdf formatter")
	}
	if err := r.Register(NewJSONFormatter()); err == nil {
		t.Error("expected duplicate registration error")
	}
}

func TestJSONFormatter(t *testing.T) {
	report := testReport(t)

	var buf bytes.Buffer
	if err := NewJSONFormatter().Render(&buf, report); err != nil {
		t.Fatal(err)
	}

	var decoded struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Totals struct {
			GrandTotal decimal.Decimal `json:"grand_total"`
		} `json:"totals"`
		Flags []engine.Flag `json:"flags"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if decoded.ID != string(report.ID) || decoded.Name != "Basement Suite" {
		t.Errorf("unexpected identity %q / %q", decoded.ID, decoded.Name)
	}
	if !decoded.Totals.GrandTotal.Equal(report.Totals.GrandTotal) {
		t.Errorf("expected grand total %s, got %s", report.Totals.GrandTotal, decoded.Totals.GrandTotal)
	}
	if len(decoded.Flags) != len(report.Flags) {
		t.Errorf("expected %d flags, got %d", len(report.Flags), len(decoded.Flags))
	}
}

func TestCLIFormatter(t *testing.T) {
	report := testReport(t)

	tests := []struct {
		name    string
		opts    Options
		want    []string
		notWant []string
	}{
		{
			name: "summary",
			opts: Options{NoColor: true},
			want: []string{
				"Estimate: Basement Suite",
				"Grand Total: " + Money(report.Totals.GrandTotal),
				"Wire Schedule",
				"Panel",
				"Bill of Materials",
				`no catalog match for "Sauna controller"`,
				"Report ID: " + string(report.ID),
			},
			notWant: []string{"Line Items", "\033["},
		},
		{
			name: "details",
			opts: Options{NoColor: true, ShowDetails: true},
			want: []string{"Line Items", "Pot Light", "Part"},
		},
		{
			name: "verbose",
			opts: Options{NoColor: true, Verbose: true},
			want: []string{"taken from catalog assembly"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := NewCLIFormatter(tt.opts).Render(&buf, report); err != nil {
				t.Fatal(err)
			}
			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("expected %q in output", w)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out, w) {
					t.Errorf("did not expect %q in output", w)
				}
			}
		})
	}
}
