// Package panel - Panel demand load analysis (CEC Rule 8-200)
package panel

import (
	"github.com/shopspring/decimal"

	"sparkyestimate/core/determinism"
	"sparkyestimate/core/types"
)

// Load constants
const (
	// Volts is the line-to-neutral voltage of a single-pole circuit
	Volts = 120

	// ServiceVolts is the service voltage used to convert demand to amps
	ServiceVolts = 240

	// BasicLoadFullDemand is the part of the basic load counted at 100%
	BasicLoadFullDemand = 5000

	// DefaultSpaces is used for panel sizes without a known space count
	DefaultSpaces = 40
)

var (
	// BasicLoadRemainderFactor applies to basic load above BasicLoadFullDemand
	BasicLoadRemainderFactor = decimal.RequireFromString("0.25")

	// ContinuousFactor is the usable share of a panel rating
	ContinuousFactor = decimal.RequireFromString("0.8")
)

// sizeStep pairs a panel size with the largest demand it is recommended for
type sizeStep struct {
	maxDemandAmps int
	size          int
}

// recommendLadder is keyed to 80% of each standard rating
var recommendLadder = []sizeStep{
	{80, 100},
	{100, 125},
	{160, 200},
}

// MaxRecommendedSize is recommended beyond the ladder
const MaxRecommendedSize = 400

// panelSpaces is the breaker space count per panel size
var panelSpaces = map[int]int{
	100: 20,
	125: 30,
	200: 40,
	400: 80,
}

// Summary is the panel analysis
type Summary struct {
	PanelSize int `json:"panel_size"`

	// BasicLoad is Σ amps·120 over single-pole circuits, in watts
	BasicLoad decimal.Decimal `json:"basic_load"`

	// LargeLoad is Σ amps·poles·120 over multi-pole circuits, in watts
	LargeLoad decimal.Decimal `json:"large_load"`

	// ConnectedLoad is BasicLoad plus LargeLoad
	ConnectedLoad decimal.Decimal `json:"connected_load"`

	// DemandLoad is the CEC 8-200 demand in watts
	DemandLoad decimal.Decimal `json:"demand_load"`

	DemandAmps      int  `json:"demand_amps"`
	Overloaded      bool `json:"overloaded"`
	RecommendedSize int  `json:"recommended_size"`

	// Utilization is demand amps as a percentage of the panel rating
	Utilization decimal.Decimal `json:"utilization"`

	Circuits         int  `json:"circuits"`
	SinglePoleCount  int  `json:"single_pole_count"`
	MultiPoleCount   int  `json:"multi_pole_count"`
	GfciCount        int  `json:"gfci_count"`
	AfciCount        int  `json:"afci_count"`
	SpacesUsed       int  `json:"spaces_used"`
	PanelSpaces      int  `json:"panel_spaces"`
	SpacesRemaining  int  `json:"spaces_remaining"`
	SpacesOverflowed bool `json:"spaces_overflowed,omitempty"`
}

// Analyze computes demand load, space usage and a size recommendation
func Analyze(circuits []types.Circuit, panelSize int) Summary {
	s := Summary{
		PanelSize: panelSize,
		BasicLoad: decimal.Zero,
		LargeLoad: decimal.Zero,
		Circuits:  len(circuits),
	}

	for _, c := range circuits {
		poles := c.Poles
		if poles < 1 {
			poles = 1
		}
		if poles == 1 {
			s.BasicLoad = s.BasicLoad.Add(decimal.NewFromInt(int64(c.Amps * Volts)))
			s.SinglePoleCount++
		} else {
			s.LargeLoad = s.LargeLoad.Add(decimal.NewFromInt(int64(c.Amps * poles * Volts)))
			s.MultiPoleCount++
		}
		s.SpacesUsed += poles
		if c.IsGfci {
			s.GfciCount++
		}
		if c.IsAfci {
			s.AfciCount++
		}
	}

	s.ConnectedLoad = s.BasicLoad.Add(s.LargeLoad)
	s.DemandLoad = DemandLoad(s.BasicLoad, s.LargeLoad)
	s.DemandAmps = determinism.CeilDiv(s.DemandLoad, ServiceVolts)

	rating := decimal.NewFromInt(int64(panelSize))
	s.Overloaded = decimal.NewFromInt(int64(s.DemandAmps)).GreaterThan(rating.Mul(ContinuousFactor))
	s.RecommendedSize = RecommendedSize(s.DemandAmps)
	if panelSize > 0 {
		s.Utilization = decimal.NewFromInt(int64(s.DemandAmps * 100)).Div(rating).Round(1)
	} else {
		s.Utilization = decimal.Zero
	}

	s.PanelSpaces = Spaces(panelSize)
	s.SpacesRemaining = s.PanelSpaces - s.SpacesUsed
	s.SpacesOverflowed = s.SpacesRemaining < 0
	return s
}

// DemandLoad applies the CEC 8-200 demand factors:
// first 5000 W of basic load at 100%, the rest at 25%, large loads at 100%
func DemandLoad(basicLoad, largeLoad decimal.Decimal) decimal.Decimal {
	full := decimal.NewFromInt(BasicLoadFullDemand)
	first := decimal.Min(basicLoad, full)
	remainder := decimal.Max(decimal.Zero, basicLoad.Sub(full))
	return first.Add(remainder.Mul(BasicLoadRemainderFactor)).Add(largeLoad)
}

// RecommendedSize returns the smallest standard panel whose 80% rating covers demandAmps
func RecommendedSize(demandAmps int) int {
	for _, step := range recommendLadder {
		if demandAmps <= step.maxDemandAmps {
			return step.size
		}
	}
	return MaxRecommendedSize
}

// Spaces returns the breaker space count for a panel size
func Spaces(panelSize int) int {
	if n, ok := panelSpaces[panelSize]; ok {
		return n
	}
	return DefaultSpaces
}
