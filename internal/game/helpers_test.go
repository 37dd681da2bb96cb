package game

import (
	"fmt"
	"math"

	"github.com/robalobadob/timeline/internal/items"
)

// script replays a fixed float stream, wrapping around when exhausted.
type script struct {
	vals []float64
	i    int
}

func (s *script) Next() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

func (s *script) NextInt(min, max int) int {
	return int(math.Floor(s.Next()*float64(max-min))) + min
}

func (s *script) NextBool(p float64) bool { return s.Next() < p }

func item(id string, v float64, tags ...string) items.Item {
	return items.Item{ID: id, Label: id, Value: v, InstanceOf: tags}
}

// yearPool spreads n cards 150 years apart starting in 1000.
func yearPool(n int) []items.Item {
	out := make([]items.Item, n)
	for i := range out {
		out[i] = item(fmt.Sprintf("Q%d", i+1), float64(1000+150*i))
	}
	return out
}
