package daily

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/robalobadob/timeline/internal/dimension"
	"github.com/robalobadob/timeline/internal/game"
	"github.com/robalobadob/timeline/internal/items"
	"github.com/robalobadob/timeline/internal/random"
)

// MaxCards caps the pre-generated daily sequence.
const MaxCards = 50

// Sequence builds the day's full card order from pool.
//
// The pool is sorted by id, shuffled with a seeded stream, then walked
// greedily: a card is accepted unless it is too close to a card accepted
// before it. Short sequences are topped up from the unused cards in
// shuffled order without the distance check.
func Sequence(pool []items.Item, dim *dimension.Dimension, seed int) []items.Item {
	cards := slices.Clone(pool)
	slices.SortStableFunc(cards, func(a, b items.Item) int { return strings.Compare(a.ID, b.ID) })
	random.Shuffle(random.NewSeeded(seed), cards)

	seq := make([]items.Item, 0, min(MaxCards, len(cards)))
	used := make(map[string]bool, MaxCards)
	accepted := make([]float64, 0, MaxCards)

	for _, c := range cards {
		if len(seq) >= MaxCards {
			break
		}
		if used[c.ID] || game.TooClose(dim, c.Value, accepted) {
			continue
		}
		seq = append(seq, c)
		used[c.ID] = true
		accepted = append(accepted, c.Value)
	}
	for _, c := range cards {
		if len(seq) >= MaxCards {
			break
		}
		if used[c.ID] {
			continue
		}
		seq = append(seq, c)
		used[c.ID] = true
	}
	return seq
}

// NewState deals the daily game for date.
func NewState(ctx context.Context, pool []items.Item, dim *dimension.Dimension, date time.Time, opts game.Options) (*game.State, error) {
	seq := Sequence(pool, dim, Seed(date))
	return game.NewSequenced(ctx, seq, pool, dim, opts)
}
