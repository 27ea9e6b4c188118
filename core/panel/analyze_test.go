package panel

import (
	"testing"

	"github.com/shopspring/decimal"

	"sparkyestimate/core/types"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestAnalyzeScenario(t *testing.T) {
	circuits := []types.Circuit{
		{CircuitNumber: 1, Amps: 15, Poles: 1, Description: "Bedroom", IsAfci: true},
		{CircuitNumber: 2, Amps: 15, Poles: 1, Description: "Living room", IsAfci: true},
		{CircuitNumber: 3, Amps: 15, Poles: 1, Description: "Bathroom", IsGfci: true},
		{CircuitNumber: 4, Amps: 30, Poles: 2, Description: "Dryer"},
	}

	s := Analyze(circuits, 100)

	if !s.BasicLoad.Equal(d("5400")) {
		t.Errorf("expected basic load 5400, got %s", s.BasicLoad)
	}
	if !s.LargeLoad.Equal(d("7200")) {
		t.Errorf("expected large load 7200, got %s", s.LargeLoad)
	}
	if !s.DemandLoad.Equal(d("12300")) {
		t.Errorf("expected demand load 12300, got %s", s.DemandLoad)
	}
	if s.DemandAmps != 52 {
		t.Errorf("expected 52 demand amps, got %d", s.DemandAmps)
	}
	if !s.ConnectedLoad.Equal(d("12600")) {
		t.Errorf("expected connected load 12600, got %s", s.ConnectedLoad)
	}
	if s.Overloaded {
		t.Error("52A on a 100A panel should not be overloaded")
	}
	if s.RecommendedSize != 100 {
		t.Errorf("expected 100A recommendation, got %d", s.RecommendedSize)
	}
	if s.SpacesUsed != 5 || s.PanelSpaces != 20 || s.SpacesRemaining != 15 {
		t.Errorf("expected 5/20 spaces with 15 left, got %d/%d with %d", s.SpacesUsed, s.PanelSpaces, s.SpacesRemaining)
	}
	if s.SinglePoleCount != 3 || s.MultiPoleCount != 1 {
		t.Errorf("expected 3 single and 1 multi pole, got %d and %d", s.SinglePoleCount, s.MultiPoleCount)
	}
	if s.GfciCount != 1 || s.AfciCount != 2 {
		t.Errorf("expected 1 GFCI and 2 AFCI, got %d and %d", s.GfciCount, s.AfciCount)
	}
	if !s.Utilization.Equal(d("52")) {
		t.Errorf("expected 52%% utilization, got %s", s.Utilization)
	}
}

func TestDemandLoadBoundary(t *testing.T) {
	tests := []struct {
		name  string
		basic string
		large string
		want  string
	}{
		{"below threshold", "3600", "0", "3600"},
		{"at threshold", "5000", "0", "5000"},
		{"above threshold", "9000", "0", "6000"},
		{"above threshold with large load", "5400", "7200", "12300"},
		{"large load only", "0", "9600", "9600"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DemandLoad(d(tt.basic), d(tt.large))
			if !got.Equal(d(tt.want)) {
				t.Errorf("DemandLoad(%s, %s) = %s, want %s", tt.basic, tt.large, got, tt.want)
			}
		})
	}
}

func TestRecommendedSize(t *testing.T) {
	tests := []struct {
		amps int
		want int
	}{
		{0, 100},
		{80, 100},
		{81, 125},
		{100, 125},
		{101, 200},
		{160, 200},
		{161, 400},
		{500, 400},
	}
	for _, tt := range tests {
		if got := RecommendedSize(tt.amps); got != tt.want {
			t.Errorf("RecommendedSize(%d) = %d, want %d", tt.amps, got, tt.want)
		}
	}
}

func TestAnalyzeOverloaded(t *testing.T) {
	// 4 x 40A two-pole = 38400 W = 160 A on a 100 A panel
	var circuits []types.Circuit
	for i := 0; i < 4; i++ {
		circuits = append(circuits, types.Circuit{CircuitNumber: i*2 + 1, Amps: 40, Poles: 2})
	}

	s := Analyze(circuits, 100)
	if s.DemandAmps != 160 {
		t.Fatalf("expected 160 demand amps, got %d", s.DemandAmps)
	}
	if !s.Overloaded {
		t.Error("expected overload above 80A on a 100A panel")
	}
	if s.RecommendedSize != 200 {
		t.Errorf("expected 200A recommendation, got %d", s.RecommendedSize)
	}
}

func TestAnalyzeSpaces(t *testing.T) {
	circuits := []types.Circuit{
		{Amps: 15, Poles: 1},
		{Amps: 40, Poles: 2},
		{Amps: 60, Poles: 3},
	}

	tests := []struct {
		size   int
		spaces int
	}{
		{100, 20},
		{125, 30},
		{200, 40},
		{400, 80},
		{150, DefaultSpaces},
	}
	for _, tt := range tests {
		s := Analyze(circuits, tt.size)
		if s.SpacesUsed != 6 {
			t.Errorf("expected 6 spaces used, got %d", s.SpacesUsed)
		}
		if s.PanelSpaces != tt.spaces {
			t.Errorf("panel %dA: expected %d spaces, got %d", tt.size, tt.spaces, s.PanelSpaces)
		}
	}
}

func TestAnalyzeEmpty(t *testing.T) {
	s := Analyze(nil, 200)
	if !s.DemandLoad.IsZero() || s.DemandAmps != 0 {
		t.Errorf("expected zero demand, got %s (%dA)", s.DemandLoad, s.DemandAmps)
	}
	if s.SpacesRemaining != 40 {
		t.Errorf("expected 40 free spaces, got %d", s.SpacesRemaining)
	}
}
