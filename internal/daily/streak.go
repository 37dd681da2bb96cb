// internal/daily/streak.go
//
// Per-player daily bookkeeping on top of a kv.Store.
// Keys:
//   - dailyStreak      current streak (integer string)
//   - dailyHistory     JSON array of Result, newest last, at most HistoryLimit
//   - dailyLastPlayed  YYYY-MM-DD of the last recorded game
//   - dailyCompleted   YYYY-MM-DD marker that blocks a replay
//   - dailySavedResult JSON SavedResult for redisplay
//
// Reads never fail: absent or malformed values fall back to defaults.
package daily

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/timeline/internal/game"
	"github.com/robalobadob/timeline/internal/kv"
)

const (
	KeyStreak      = "dailyStreak"
	KeyHistory     = "dailyHistory"
	KeyLastPlayed  = "dailyLastPlayed"
	KeyCompleted   = "dailyCompleted"
	KeySavedResult = "dailySavedResult"

	HistoryLimit = 30
)

// Result is one day's outcome.
type Result struct {
	Date       string `json:"date"`
	Won        bool   `json:"won"`
	Score      int    `json:"score"`
	Placements []bool `json:"placements"`
}

// SavedResult lets a finished daily be shown again without replaying it.
type SavedResult struct {
	Date          string `json:"date"`
	Score         int    `json:"score"`
	Placements    []bool `json:"placements"`
	DimensionName string `json:"dimensionName"`
}

// Streak is the current run of won days plus recent history.
type Streak struct {
	Current int      `json:"current"`
	History []Result `json:"history"`
}

// Tracker reads and writes one player's daily records.
type Tracker struct {
	store kv.Store
	loc   *time.Location
	now   func() time.Time
}

// NewTracker binds a tracker to store. A nil loc means time.Local and a
// nil now means time.Now.
func NewTracker(store kv.Store, loc *time.Location, now func() time.Time) *Tracker {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &Tracker{store: store, loc: loc, now: now}
}

// Today is the current instant in the tracker's zone.
func (t *Tracker) Today() time.Time { return t.now().In(t.loc) }

func (t *Tracker) today() string { return DateKey(t.Today()) }

func (t *Tracker) get(ctx context.Context, key string) string {
	v, _, err := t.store.Get(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("daily read")
		return ""
	}
	return v
}

// Streak returns the stored streak and history.
func (t *Tracker) Streak(ctx context.Context) Streak {
	current, _ := strconv.Atoi(t.get(ctx, KeyStreak))
	s := Streak{Current: current, History: []Result{}}
	if raw := t.get(ctx, KeyHistory); raw != "" {
		if err := json.Unmarshal([]byte(raw), &s.History); err != nil {
			log.Warn().Err(err).Msg("discarding malformed daily history")
			s.History = []Result{}
		}
	}
	return s
}

// Completed reports whether today's daily has already been recorded.
func (t *Tracker) Completed(ctx context.Context) bool {
	return t.get(ctx, KeyCompleted) == t.today()
}

// Record stores today's outcome and advances the streak.
// A repeat call on the same day replaces the earlier history entry.
func (t *Tracker) Record(ctx context.Context, won bool, score int, placements []bool) (Streak, error) {
	return t.recordOn(ctx, t.today(), won, score, placements)
}

// recordOn stores the outcome of the daily dealt for date. A result for a
// day older than the last recorded play only lands in history; it never
// moves the streak or the last-played marker backwards.
func (t *Tracker) recordOn(ctx context.Context, date string, won bool, score int, placements []bool) (Streak, error) {
	prev := t.Streak(ctx)
	last := t.get(ctx, KeyLastPlayed)
	late := last != "" && date < last

	next := prev.Current
	if !late {
		next = nextStreak(prev.Current, won, last, date)
	}

	history := make([]Result, 0, len(prev.History)+1)
	for _, r := range prev.History {
		if r.Date != date {
			history = append(history, r)
		}
	}
	if placements == nil {
		placements = []bool{}
	}
	history = append(history, Result{Date: date, Won: won, Score: score, Placements: placements})
	slices.SortStableFunc(history, func(a, b Result) int { return strings.Compare(a.Date, b.Date) })
	if len(history) > HistoryLimit {
		history = history[len(history)-HistoryLimit:]
	}

	raw, err := json.Marshal(history)
	if err != nil {
		return Streak{}, fmt.Errorf("encode history: %w", err)
	}
	writes := [][2]string{{KeyHistory, string(raw)}}
	if !late {
		writes = append(writes,
			[2]string{KeyStreak, strconv.Itoa(next)},
			[2]string{KeyLastPlayed, date},
			[2]string{KeyCompleted, date},
		)
	}
	for _, kvp := range writes {
		if err := t.store.Set(ctx, kvp[0], kvp[1]); err != nil {
			return Streak{}, fmt.Errorf("write %s: %w", kvp[0], err)
		}
	}
	return Streak{Current: next, History: history}, nil
}

// nextStreak applies the day-arithmetic rules.
func nextStreak(current int, won bool, last, today string) int {
	switch {
	case last == "":
		return boolInt(won)
	case last == today:
		if won {
			return max(current, 1)
		}
		return 0
	case daysBetween(last, today) == 1:
		if won {
			return current + 1
		}
		return 0
	default:
		return boolInt(won)
	}
}

// daysBetween counts whole calendar days from a to b. Unparseable input
// counts as a gap.
func daysBetween(a, b string) int {
	ta, err1 := time.Parse("2006-01-02", a)
	tb, err2 := time.Parse("2006-01-02", b)
	if err1 != nil || err2 != nil {
		return -1
	}
	return int(tb.Sub(ta).Hours() / 24)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Save stores today's snapshot for redisplay.
func (t *Tracker) Save(ctx context.Context, score int, placements []bool, dimensionName string) error {
	return t.saveOn(ctx, t.today(), score, placements, dimensionName)
}

// saveOn never replaces a snapshot for a later day.
func (t *Tracker) saveOn(ctx context.Context, date string, score int, placements []bool, dimensionName string) error {
	if raw := t.get(ctx, KeySavedResult); raw != "" {
		var cur SavedResult
		if json.Unmarshal([]byte(raw), &cur) == nil && cur.Date > date {
			return nil
		}
	}
	if placements == nil {
		placements = []bool{}
	}
	raw, err := json.Marshal(SavedResult{
		Date:          date,
		Score:         score,
		Placements:    placements,
		DimensionName: dimensionName,
	})
	if err != nil {
		return fmt.Errorf("encode saved result: %w", err)
	}
	return t.store.Set(ctx, KeySavedResult, string(raw))
}

// Saved returns today's snapshot. Snapshots from other days are deleted;
// malformed ones are ignored.
func (t *Tracker) Saved(ctx context.Context) (SavedResult, bool) {
	raw := t.get(ctx, KeySavedResult)
	if raw == "" {
		return SavedResult{}, false
	}
	var s SavedResult
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		log.Warn().Err(err).Msg("discarding malformed saved daily result")
		return SavedResult{}, false
	}
	if s.Date != t.today() {
		if err := t.store.Delete(ctx, KeySavedResult); err != nil {
			log.Warn().Err(err).Msg("drop stale saved daily result")
		}
		return SavedResult{}, false
	}
	return s, true
}

// ResetToday forgets today's play so the daily can be replayed.
// The streak counter itself is left alone.
func (t *Tracker) ResetToday(ctx context.Context) error {
	today := t.today()
	s := t.Streak(ctx)

	kept := make([]Result, 0, len(s.History))
	for _, r := range s.History {
		if r.Date != today {
			kept = append(kept, r)
		}
	}
	raw, err := json.Marshal(kept)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := t.store.Set(ctx, KeyHistory, string(raw)); err != nil {
		return fmt.Errorf("write %s: %w", KeyHistory, err)
	}
	if t.get(ctx, KeyCompleted) == today {
		if err := t.store.Delete(ctx, KeyCompleted); err != nil {
			return fmt.Errorf("delete %s: %w", KeyCompleted, err)
		}
	}
	return t.store.Delete(ctx, KeySavedResult)
}

// Finish records a finished daily game under the date it was dealt for, so
// a game that runs past midnight counts toward its own day. An empty date
// means today. A day is won when the player made at least one correct drop.
func (t *Tracker) Finish(ctx context.Context, date string, s *game.State) (Streak, error) {
	if date == "" {
		date = t.today()
	}
	won := s.CorrectPlacements() > 0
	streak, err := t.recordOn(ctx, date, won, s.Score(), s.Placements)
	if err != nil {
		return Streak{}, err
	}
	if err := t.saveOn(ctx, date, s.Score(), s.Placements, s.Dimension.Name); err != nil {
		return streak, fmt.Errorf("save result: %w", err)
	}
	return streak, nil
}
