package game

import (
	"testing"

	"github.com/robalobadob/timeline/internal/items"
)

func id(it *items.Item) string {
	if it == nil {
		return ""
	}
	return it.ID
}

func TestLookaheadShift(t *testing.T) {
	a, b, c := item("a", 1), item("b", 2), item("c", 3)
	l := NewLookahead(&a, &b)

	if out := l.Shift(&c); id(out) != "a" {
		t.Fatalf("Shift returned %q, want a", id(out))
	}
	if id(l.Next()) != "b" || id(l.NextButOne()) != "c" {
		t.Fatalf("after shift: %q,%q; want b,c", id(l.Next()), id(l.NextButOne()))
	}

	l.Shift(nil)
	if id(l.Next()) != "c" || l.NextButOne() != nil || l.Len() != 1 {
		t.Fatalf("draining: %q,%q len %d", id(l.Next()), id(l.NextButOne()), l.Len())
	}

	l.Shift(nil)
	if l.Next() != nil || l.Len() != 0 {
		t.Errorf("empty lookahead still holds %q", id(l.Next()))
	}
}

func TestLookaheadPromotesIntoEmptyFront(t *testing.T) {
	b := item("b", 2)
	l := NewLookahead(nil, &b)
	if id(l.Next()) != "b" {
		t.Errorf("Next = %q, want b", id(l.Next()))
	}
}
