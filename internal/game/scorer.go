package game

import (
	"sort"

	"github.com/robalobadob/timeline/internal/dimension"
	"github.com/robalobadob/timeline/internal/items"
)

// CheckCorrect scores dropping item at index within played.
//
// The candidate is merged into played and the result is stably sorted by
// value, so equal values keep timeline order with the candidate last. The
// candidate's position in that order is the correct index, and
// Delta = correctIndex - index.
func CheckCorrect(played []items.PlayedItem, item items.Item, index int, dim *dimension.Dimension) Placement {
	merged := make([]items.Item, 0, len(played)+1)
	for _, p := range played {
		merged = append(merged, p.Item)
	}
	merged = append(merged, item)

	sort.SliceStable(merged, func(i, j int) bool {
		return dim.Compare(merged[i].Value, merged[j].Value) < 0
	})

	correctIndex := items.IndexOf(merged, item.ID)
	delta := correctIndex - index
	return Placement{Correct: delta == 0, Delta: delta}
}
