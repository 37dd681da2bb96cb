// internal/game/engine.go
//
// Game state machine for a single timeline session.
// Responsibilities:
//   - Deal the opening three cards (regular: selector draws; daily: fixed sequence).
//   - Apply drops from the lookahead onto the timeline, scoring each one.
//   - Refill the lookahead (regular: selector; daily: pop the pre-generated queue).
//   - Track lives and transition playing → game_over.
//   - Reorder already-placed cards without re-scoring.
//
// Notes:
//   - Every item id is drawn at most once per game.
//   - The first timeline card is always marked correct.
//   - A placement's Correct flag is final, even if later drops change the order.
//   - When the lookahead is empty after a drop the game ends with Exhausted set.
package game

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/robalobadob/timeline/internal/dimension"
	"github.com/robalobadob/timeline/internal/images"
	"github.com/robalobadob/timeline/internal/items"
	"github.com/robalobadob/timeline/internal/kv"
	"github.com/robalobadob/timeline/internal/random"
)

// Options carries the collaborators a session talks to.
type Options struct {
	Source     random.Source     // regular-mode draws; defaults to random.Rand
	Store      kv.Store          // high score persistence; nil disables it
	Prefetcher images.Prefetcher // lookahead image warming; defaults to images.Nop
	OnGameOver func(ctx context.Context, s *State)
}

func (o Options) withDefaults() Options {
	if o.Source == nil {
		o.Source = random.Rand{}
	}
	if o.Prefetcher == nil {
		o.Prefetcher = images.Nop{}
	}
	return o
}

// State holds one play session. It is not safe for concurrent use.
type State struct {
	ID          string
	Mode        Mode
	Dimension   *dimension.Dimension
	Status      Status
	Deck        []items.Item       // undrawn cards, order irrelevant
	Played      []items.PlayedItem // the timeline, order significant
	Queue       []items.Item       // daily mode: remaining pre-generated draws
	Lives       int
	BadlyPlaced *BadlyPlaced
	Placements  []bool // correctness of each drop, in drop order
	HighScore   int
	Exhausted   bool // game ended because no cards were left

	look Lookahead
	opts Options
}

// New deals a regular game from pool using the selector.
func New(ctx context.Context, pool []items.Item, dim *dimension.Dimension, opts Options) (*State, error) {
	if len(pool) < 2 {
		return nil, ErrPoolTooSmall
	}
	opts = opts.withDefaults()

	deck := slices.Clone(pool)
	drawn := make([]items.Item, 0, 3)
	for len(drawn) < 3 {
		it, ok := Select(deck, drawn, dim, opts.Source)
		if !ok {
			break
		}
		deck = items.Without(deck, it.ID)
		drawn = append(drawn, it)
	}
	return start(ctx, ModeRegular, dim, drawn, deck, nil, opts), nil
}

// NewSequenced deals a daily game: seq[0] seeds the timeline, seq[1] and
// seq[2] fill the lookahead, and the rest becomes the draw queue.
// deck holds the remaining undrawn pool for bookkeeping.
func NewSequenced(ctx context.Context, seq, deck []items.Item, dim *dimension.Dimension, opts Options) (*State, error) {
	if len(seq) < 2 {
		return nil, ErrPoolTooSmall
	}
	opts = opts.withDefaults()

	n := min(3, len(seq))
	drawn := slices.Clone(seq[:n])
	queue := slices.Clone(seq[n:])
	rest := slices.Clone(deck)
	for _, it := range drawn {
		rest = items.Without(rest, it.ID)
	}
	return start(ctx, ModeDaily, dim, drawn, rest, queue, opts), nil
}

func start(ctx context.Context, mode Mode, dim *dimension.Dimension, drawn, deck, queue []items.Item, opts Options) *State {
	s := &State{
		ID:        uuid.NewString(),
		Mode:      mode,
		Dimension: dim,
		Status:    StatusPlaying,
		Deck:      deck,
		Queue:     queue,
		Lives:     StartingLives,
		Played:    []items.PlayedItem{{Item: drawn[0], Correct: true}},
		opts:      opts,
	}
	next := drawn[1]
	var nextButOne *items.Item
	if len(drawn) > 2 {
		c := drawn[2]
		nextButOne = &c
	}
	s.look = NewLookahead(&next, nextButOne)
	s.HighScore = LoadHighScore(ctx, opts.Store)

	s.prefetch(s.look.Next())
	s.prefetch(s.look.NextButOne())
	return s
}

// Next is the card waiting to be placed, or nil once the game is over.
func (s *State) Next() *items.Item { return s.look.Next() }

// NextButOne is the card queued behind Next.
func (s *State) NextButOne() *items.Item { return s.look.NextButOne() }

// Place drops Next onto the timeline at index (0..len(Played)).
func (s *State) Place(ctx context.Context, index int) (Placement, error) {
	switch s.Status {
	case StatusNotStarted, "":
		return Placement{}, ErrNotStarted
	case StatusGameOver:
		return Placement{}, ErrNotPlaying
	}
	next := s.look.Next()
	if next == nil {
		return Placement{}, ErrNotPlaying
	}
	if index < 0 || index > len(s.Played) {
		return Placement{}, ErrIndexOutOfRange
	}

	res := CheckCorrect(s.Played, *next, index, s.Dimension)
	s.Played = slices.Insert(s.Played, index, items.PlayedItem{Item: *next, Correct: res.Correct})
	s.Deck = items.Without(s.Deck, next.ID)

	promoted := s.look.NextButOne()
	if promoted != nil {
		s.Deck = items.Without(s.Deck, promoted.ID)
	}
	refill := s.draw(promoted)
	if refill != nil {
		s.Deck = items.Without(s.Deck, refill.ID)
		s.prefetch(refill)
	}
	s.look.Shift(refill)

	s.Placements = append(s.Placements, res.Correct)
	if res.Correct {
		s.BadlyPlaced = nil
	} else {
		s.Lives--
		s.BadlyPlaced = &BadlyPlaced{Index: index, Delta: res.Delta}
	}
	s.recordHighScore(ctx)

	switch {
	case s.Lives <= 0:
		s.finish(ctx)
	case s.look.Next() == nil:
		s.Exhausted = true
		s.finish(ctx)
	}
	return res, nil
}

// draw produces the card that will sit behind promoted.
func (s *State) draw(promoted *items.Item) *items.Item {
	if s.Mode == ModeDaily {
		if len(s.Queue) == 0 {
			return nil
		}
		it := s.Queue[0]
		s.Queue = s.Queue[1:]
		return &it
	}

	placed := make([]items.Item, 0, len(s.Played)+1)
	for _, p := range s.Played {
		placed = append(placed, p.Item)
	}
	if promoted != nil {
		placed = append(placed, *promoted)
	}
	it, ok := Select(s.Deck, placed, s.Dimension, s.opts.Source)
	if !ok {
		return nil
	}
	return &it
}

// Move reorders the timeline while the game is in progress. Correct flags
// and lives are untouched. A finished timeline is frozen.
func (s *State) Move(from, to int) error {
	switch s.Status {
	case StatusNotStarted, "":
		return ErrNotStarted
	case StatusGameOver:
		return ErrNotPlaying
	}
	n := len(s.Played)
	if from < 0 || from >= n || to < 0 || to >= n {
		return ErrIndexOutOfRange
	}
	it := s.Played[from]
	s.Played = slices.Delete(s.Played, from, from+1)
	s.Played = slices.Insert(s.Played, to, it)
	s.BadlyPlaced = nil
	return nil
}

// MarkRendered acknowledges that the BadlyPlaced feedback was shown.
func (s *State) MarkRendered() {
	if s.BadlyPlaced != nil {
		s.BadlyPlaced.Rendered = true
	}
}

// Score counts correct cards on the timeline, including the opening card.
func (s *State) Score() int {
	n := 0
	for _, p := range s.Played {
		if p.Correct {
			n++
		}
	}
	return n
}

// CorrectPlacements counts correct drops made by the player.
func (s *State) CorrectPlacements() int {
	n := 0
	for _, ok := range s.Placements {
		if ok {
			n++
		}
	}
	return n
}

func (s *State) finish(ctx context.Context) {
	s.Status = StatusGameOver
	s.recordHighScore(ctx)
	if s.opts.OnGameOver != nil {
		s.opts.OnGameOver(ctx, s)
	}
}

func (s *State) prefetch(it *items.Item) {
	if it == nil || it.Image == "" {
		return
	}
	s.opts.Prefetcher.Prefetch(images.WikimediaURL(it.Image, images.DefaultWidth))
}
