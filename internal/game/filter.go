package game

import (
	"math"

	"github.com/robalobadob/timeline/internal/dimension"
)

// MinDistance is the separation a candidate needs from every placed value.
//
// The radius decays as the timeline grows so early draws are easy to tell
// apart and late draws may sit close together:
//
//	absolute dimensions:  110 - 10n for n < 11, then 5 until n = 40, then 1
//	percentage (price):   max(1%, (110 - 10n)/1000) for n < 11, then 5%, then 1%,
//	                      multiplied by |candidate|
func MinDistance(dim *dimension.Dimension, candidate float64, playedCount int) float64 {
	if dim.PercentDistance {
		pct := 0.05
		if playedCount >= 40 {
			pct = 0.01
		}
		if playedCount < 11 {
			pct = math.Max(0.01, float64(110-10*playedCount)/1000)
		}
		return math.Abs(candidate * pct)
	}

	d := 5.0
	if playedCount >= 40 {
		d = 1
	}
	if playedCount < 11 {
		d = float64(110 - 10*playedCount)
	}
	return d
}

// TooClose reports whether candidate lies strictly within MinDistance of any
// placed value. The distance is evaluated with len(placed) as the played count.
func TooClose(dim *dimension.Dimension, candidate float64, placed []float64) bool {
	d := MinDistance(dim, candidate, len(placed))
	for _, v := range placed {
		if math.Abs(candidate-v) < d {
			return true
		}
	}
	return false
}
