// internal/random/source.go
//
// Random sources for card selection.
//
// Two implementations share one capability:
//   - Seeded: deterministic Mulberry32 stream (daily challenge).
//   - Rand:   process-wide true randomness (regular play).
//
// Every derived operation (NextInt, NextBool, Pick, Shuffle) is built from
// Next() alone, so both sources map a float stream to choices the same way.
package random

import (
	"math"
	"math/rand"
)

// Source is the randomness capability consumed by the selector and the daily generator.
type Source interface {
	// Next returns a float in [0,1).
	Next() float64
	// NextInt returns an integer in [min,max). max must be greater than min.
	NextInt(min, max int) int
	// NextBool returns true with probability p.
	NextBool(p float64) bool
}

// Pick returns a uniformly chosen element of list. list must be non-empty.
func Pick[T any](src Source, list []T) T {
	return list[src.NextInt(0, len(list))]
}

// Shuffle permutes list in place (Fisher-Yates, last index down to 1).
func Shuffle[T any](src Source, list []T) {
	for i := len(list) - 1; i > 0; i-- {
		j := src.NextInt(0, i+1)
		list[i], list[j] = list[j], list[i]
	}
}

func scaleInt(f float64, min, max int) int {
	return int(math.Floor(f*float64(max-min))) + min
}

// Rand draws from the process-wide math/rand generator.
type Rand struct{}

func (Rand) Next() float64 { return rand.Float64() }

func (r Rand) NextInt(min, max int) int { return scaleInt(r.Next(), min, max) }

func (r Rand) NextBool(p float64) bool { return r.Next() < p }
