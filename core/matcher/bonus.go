// Package matcher - Keyword bonus table
package matcher

import (
	"regexp"
	"strings"
)

var (
	ampPattern  = regexp.MustCompile(`(\d+)\s*a\b`)
	sizePattern = regexp.MustCompile(`(\d+)"`)
)

// BonusRule adds Bonus to a candidate's score when Applies holds.
// query and candidate are lowercased; candidate is name plus device description.
type BonusRule struct {
	Name    string
	Bonus   int
	Applies func(query, candidate string) bool
}

// DefaultBonuses returns the built-in domain keyword bonuses
func DefaultBonuses() []BonusRule {
	return []BonusRule{
		{Name: "gfci", Bonus: 3, Applies: both("gfci")},
		{Name: "3-way", Bonus: 3, Applies: eitherOf([]string{"3-way", "3 way", "three way", "three-way"}, []string{"3-way", "three-way"})},
		{Name: "4-way", Bonus: 3, Applies: eitherOf([]string{"4-way", "4 way", "four way", "four-way"}, []string{"4-way", "four-way"})},
		{Name: "dimmer", Bonus: 3, Applies: both("dimmer")},
		{Name: "recessed", Bonus: 2, Applies: eitherOf([]string{"recessed", "pot light", "potlight"}, []string{"recessed", "pot light"})},
		{Name: "range", Bonus: 3, Applies: rangeWithoutHood},
		{Name: "range hood", Bonus: 3, Applies: rangeHood},
		{Name: "smoke", Bonus: 2, Applies: both("smoke")},
		{Name: "exhaust", Bonus: 2, Applies: both("exhaust")},
		{Name: "ev charger", Bonus: 2, Applies: eitherOf([]string{"ev charger", "ev outlet", "ev "}, []string{"ev charger"})},
		{Name: "dryer", Bonus: 2, Applies: both("dryer")},
		{Name: "outdoor", Bonus: 2, Applies: eitherOf([]string{"outdoor", "exterior", "weatherproof"}, []string{"outdoor", "weatherproof", "weather"})},
		{Name: "amps", Bonus: 2, Applies: samePattern(ampPattern)},
		{Name: "size", Bonus: 2, Applies: samePattern(sizePattern)},
	}
}

// both applies when query and candidate contain the keyword
func both(keyword string) func(string, string) bool {
	return func(query, candidate string) bool {
		return strings.Contains(query, keyword) && strings.Contains(candidate, keyword)
	}
}

// eitherOf applies when the query contains any of qs and the candidate any of cs
func eitherOf(qs, cs []string) func(string, string) bool {
	return func(query, candidate string) bool {
		return containsAny(query, qs) && containsAny(candidate, cs)
	}
}

func rangeWithoutHood(query, candidate string) bool {
	return strings.Contains(query, "range") && !strings.Contains(query, "hood") &&
		strings.Contains(candidate, "range") && !strings.Contains(candidate, "hood")
}

func rangeHood(query, candidate string) bool {
	return strings.Contains(query, "range") && strings.Contains(query, "hood") &&
		strings.Contains(candidate, "hood")
}

// samePattern applies when the first capture of re is equal in query and candidate
func samePattern(re *regexp.Regexp) func(string, string) bool {
	return func(query, candidate string) bool {
		q := re.FindStringSubmatch(query)
		if q == nil {
			return false
		}
		for _, c := range re.FindAllStringSubmatch(candidate, -1) {
			if c[1] == q[1] {
				return true
			}
		}
		return false
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
