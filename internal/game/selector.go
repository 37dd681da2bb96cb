package game

import (
	"github.com/robalobadob/timeline/internal/dimension"
	"github.com/robalobadob/timeline/internal/items"
	"github.com/robalobadob/timeline/internal/random"
)

// Select chooses the next card from deck.
//
// One draw:
//  1. pick a period uniformly from dim's buckets
//  2. flip a fair coin; heads excludes items tagged "human"
//  3. keep deck items inside the period, not excluded, and not TooClose to placed
//  4. pick uniformly among the survivors
//  5. with no survivors, pick uniformly from the whole deck
//
// ok is false only when deck is empty.
func Select(deck []items.Item, placed []items.Item, dim *dimension.Dimension, src random.Source) (items.Item, bool) {
	if len(deck) == 0 {
		return items.Item{}, false
	}
	period := random.Pick(src, dim.Buckets())
	avoidHumans := src.NextBool(0.5)
	placedValues := items.Values(placed)

	candidates := make([]items.Item, 0, len(deck))
	for _, it := range deck {
		if avoidHumans && it.IsHuman() {
			continue
		}
		if !period.Contains(it.Value) {
			continue
		}
		if TooClose(dim, it.Value, placedValues) {
			continue
		}
		candidates = append(candidates, it)
	}

	if len(candidates) > 0 {
		return random.Pick(src, candidates), true
	}
	return random.Pick(src, deck), true
}
