// Package determinism provides primitives for guaranteeing deterministic execution.
// Engine outputs must be bit-identical for identical inputs, so map iteration,
// IDs and rounding all go through here.
package determinism

import (
	"cmp"
	"slices"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// hundred is the percent divisor
var hundred = decimal.NewFromInt(100)

// SortedKeys returns the keys of a map in ascending order
func SortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// RangeMapSorted iterates over a map in sorted key order
func RangeMapSorted[K cmp.Ordered, V any](m map[K]V, fn func(K, V) bool) {
	for _, k := range SortedKeys(m) {
		if !fn(k, m[k]) {
			break
		}
	}
}

// SortSlice sorts a slice in a stable, deterministic manner
func SortSlice[T any](slice []T, less func(a, b T) bool) {
	slices.SortStableFunc(slice, func(a, b T) int {
		switch {
		case less(a, b):
			return -1
		case less(b, a):
			return 1
		default:
			return 0
		}
	})
}

// StableID is a name-based identifier that never changes for the same inputs
type StableID string

// IDGenerator generates stable, deterministic IDs
type IDGenerator struct {
	namespace uuid.UUID
}

// NewIDGenerator creates an ID generator scoped to a namespace
func NewIDGenerator(namespace string) *IDGenerator {
	return &IDGenerator{namespace: uuid.NewSHA1(uuid.NameSpaceOID, []byte(namespace))}
}

// Generate creates a stable ID from inputs
func (g *IDGenerator) Generate(parts ...string) StableID {
	var name []byte
	for _, part := range parts {
		name = append(name, part...)
		name = append(name, 0) // Separator
	}
	return StableID(uuid.NewSHA1(g.namespace, name).String())
}

// Percent converts a percentage to a fraction (15 => 0.15)
func Percent(pct decimal.Decimal) decimal.Decimal {
	return pct.Div(hundred)
}

// ApplyPct returns base * (1 + pct/100)
func ApplyPct(base, pct decimal.Decimal) decimal.Decimal {
	return base.Mul(decimal.NewFromInt(1).Add(Percent(pct)))
}

// PctOf returns base * pct/100
func PctOf(base, pct decimal.Decimal) decimal.Decimal {
	return base.Mul(Percent(pct))
}

// CeilInt rounds up to the next whole number
func CeilInt(d decimal.Decimal) int {
	return int(d.Ceil().IntPart())
}

// CeilDiv returns ceil(n / size) for a positive size
func CeilDiv(n decimal.Decimal, size int64) int {
	return CeilInt(n.Div(decimal.NewFromInt(size)))
}

// Qty converts an integer quantity to a decimal
func Qty(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}

// RoundMoney rounds to cents, for display only
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
