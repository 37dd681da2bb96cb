package game

import "github.com/robalobadob/timeline/internal/items"

// Lookahead is a two-slot ring buffer holding the next card and the one after it.
type Lookahead struct {
	slots [2]*items.Item
	head  int
}

// NewLookahead fills both slots. Either may be nil when the pool runs dry.
func NewLookahead(next, nextButOne *items.Item) Lookahead {
	l := Lookahead{slots: [2]*items.Item{next, nextButOne}}
	l.settle()
	return l
}

// Next is the card the player places next.
func (l *Lookahead) Next() *items.Item { return l.slots[l.head] }

// NextButOne is the card queued behind Next.
func (l *Lookahead) NextButOne() *items.Item { return l.slots[1-l.head] }

// Shift removes Next, promotes NextButOne, and stores refill behind it.
// It returns the removed card.
func (l *Lookahead) Shift(refill *items.Item) *items.Item {
	out := l.slots[l.head]
	l.slots[l.head] = refill
	l.head = 1 - l.head
	l.settle()
	return out
}

// Len counts occupied slots.
func (l *Lookahead) Len() int {
	n := 0
	for _, s := range l.slots {
		if s != nil {
			n++
		}
	}
	return n
}

// settle keeps an occupied slot in front of an empty one.
func (l *Lookahead) settle() {
	if l.slots[l.head] == nil && l.slots[1-l.head] != nil {
		l.head = 1 - l.head
	}
}
