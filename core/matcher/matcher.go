// Package matcher - Fuzzy device name to catalog assembly matching
// Scores every candidate with keyword overlap plus a declarative bonus table.
package matcher

import (
	"regexp"
	"sort"
	"strings"

	"sparkyestimate/core/types"
)

// MinScore is the lowest score accepted as a match.
// Empirically tuned; new bonus rules should not assume it is optimal.
const MinScore = 3

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Result is a scored match
type Result struct {
	// Assembly is the matched assembly, nil when nothing scored high enough
	Assembly *types.CatalogAssembly `json:"assembly,omitempty"`

	// Score is the winning score (0 for no candidates)
	Score int `json:"score"`

	// Exact is true when the normalized names were identical
	Exact bool `json:"exact"`
}

// Matched reports whether an assembly was found
func (r Result) Matched() bool {
	return r.Assembly != nil
}

// Normalize lowercases and strips everything but letters and digits
func Normalize(s string) string {
	return nonAlphanumeric.ReplaceAllString(strings.ToLower(s), "")
}

// Match returns the best catalog assembly for a device name, or nil
func Match(deviceName string, catalog []types.CatalogAssembly) *types.CatalogAssembly {
	return MatchScored(deviceName, catalog).Assembly
}

// Resolve returns the assembly whose name equals deviceName ignoring case,
// falling back to Match
func Resolve(deviceName string, catalog []types.CatalogAssembly) *types.CatalogAssembly {
	name := strings.TrimSpace(deviceName)
	for i := range catalog {
		if strings.EqualFold(catalog[i].Name, name) {
			return &catalog[i]
		}
	}
	return Match(deviceName, catalog)
}

// MatchScored is Match with the winning score exposed
func MatchScored(deviceName string, catalog []types.CatalogAssembly) Result {
	return DefaultMatcher.Match(deviceName, catalog)
}

// Matcher scores candidates with a configurable bonus table
type Matcher struct {
	Bonuses  []BonusRule
	MinScore int
}

// DefaultMatcher uses the built-in bonus table
var DefaultMatcher = &Matcher{Bonuses: DefaultBonuses(), MinScore: MinScore}

// Match finds the best assembly for a device name.
// Ties go to the first candidate in catalog order.
func (m *Matcher) Match(deviceName string, catalog []types.CatalogAssembly) Result {
	normQuery := Normalize(deviceName)
	if normQuery != "" {
		for i := range catalog {
			if Normalize(catalog[i].Name) == normQuery {
				return Result{Assembly: &catalog[i], Score: m.Score(deviceName, catalog[i]), Exact: true}
			}
		}
	}

	best := -1
	bestScore := 0
	for i := range catalog {
		score := m.Score(deviceName, catalog[i])
		if score > bestScore {
			best = i
			bestScore = score
		}
	}

	if best < 0 || bestScore < m.MinScore {
		return Result{Score: bestScore}
	}
	return Result{Assembly: &catalog[best], Score: bestScore}
}

// Rank returns up to n scored candidates, best first.
// Ties keep catalog order and zero scores are left out.
func Rank(deviceName string, catalog []types.CatalogAssembly, n int) []Result {
	return DefaultMatcher.Rank(deviceName, catalog, n)
}

// Rank returns up to n scored candidates, best first
func (m *Matcher) Rank(deviceName string, catalog []types.CatalogAssembly, n int) []Result {
	var results []Result
	for i := range catalog {
		if score := m.Score(deviceName, catalog[i]); score > 0 {
			results = append(results, Result{Assembly: &catalog[i], Score: score})
		}
	}
	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Score > results[b].Score
	})
	if n > 0 && len(results) > n {
		results = results[:n]
	}
	return results
}

// Score computes the keyword and bonus score of one candidate
func (m *Matcher) Score(deviceName string, candidate types.CatalogAssembly) int {
	query := strings.ToLower(deviceName)
	name := strings.ToLower(candidate.Name)
	device := strings.ToLower(candidate.Device)

	score := 0
	for _, word := range Tokenize(query) {
		if strings.Contains(name, word) {
			score += 2
		}
		if device != "" && strings.Contains(device, word) {
			score++
		}
	}

	text := name + " " + device
	for _, rule := range m.Bonuses {
		if rule.Applies(query, text) {
			score += rule.Bonus
		}
	}
	return score
}

// Tokenize splits a lowercased query into words longer than two characters
func Tokenize(query string) []string {
	var words []string
	for _, w := range strings.FieldsFunc(query, isSeparator) {
		if len(w) > 2 {
			words = append(words, w)
		}
	}
	return words
}

func isSeparator(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		return false
	case r == '-', r == '/', r == '"':
		return false
	default:
		return true
	}
}
