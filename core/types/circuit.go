// Package types - Panel circuit types
package types

// Circuit is one breaker position on a panel.
// Poles is 1, 2 or 3.
type Circuit struct {
	CircuitNumber int    `json:"circuit_number"`
	Amps          int    `json:"amps"`
	Poles         int    `json:"poles"`
	Description   string `json:"description"`
	IsGfci        bool   `json:"is_gfci"`
	IsAfci        bool   `json:"is_afci"`
	OutletCount   int    `json:"outlet_count"`
	PanelName     string `json:"panel_name,omitempty"`
}
