package daily

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/robalobadob/timeline/internal/dimension"
	"github.com/robalobadob/timeline/internal/game"
	"github.com/robalobadob/timeline/internal/kv"
)

// clock is a settable time source.
type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func (c *clock) set(date string) {
	c.t, _ = time.ParseInLocation("2006-01-02 15:04", date+" 12:00", time.UTC)
}

func newTracker(date string) (*Tracker, *clock, kv.Store) {
	c := &clock{}
	c.set(date)
	store := kv.NewMemory()
	return NewTracker(store, time.UTC, c.now), c, store
}

func TestStreakConsecutiveWins(t *testing.T) {
	ctx := context.Background()
	tr, c, _ := newTracker("2024-01-15")

	s, err := tr.Record(ctx, true, 5, []bool{true, true})
	if err != nil || s.Current != 1 {
		t.Fatalf("first win: %d, %v", s.Current, err)
	}
	c.set("2024-01-16")
	if s, _ = tr.Record(ctx, true, 3, []bool{true}); s.Current != 2 {
		t.Errorf("next-day win: %d, want 2", s.Current)
	}
	c.set("2024-01-17")
	if s, _ = tr.Record(ctx, false, 1, []bool{false, false, false}); s.Current != 0 {
		t.Errorf("next-day loss: %d, want 0", s.Current)
	}
}

func TestStreakGapResets(t *testing.T) {
	ctx := context.Background()
	tr, c, _ := newTracker("2024-01-15")
	tr.Record(ctx, true, 5, nil)
	c.set("2024-01-16")
	tr.Record(ctx, true, 5, nil)

	c.set("2024-01-19")
	s, _ := tr.Record(ctx, true, 4, nil)
	if s.Current != 1 {
		t.Errorf("win after gap: %d, want 1", s.Current)
	}
	c.set("2024-01-25")
	if s, _ = tr.Record(ctx, false, 1, nil); s.Current != 0 {
		t.Errorf("loss after gap: %d, want 0", s.Current)
	}
}

func TestStreakAcrossMonthEnd(t *testing.T) {
	ctx := context.Background()
	tr, c, _ := newTracker("2024-02-29")
	tr.Record(ctx, true, 2, nil)
	c.set("2024-03-01")
	if s, _ := tr.Record(ctx, true, 2, nil); s.Current != 2 {
		t.Errorf("streak = %d, want 2", s.Current)
	}
}

func TestStreakSameDayReplay(t *testing.T) {
	ctx := context.Background()
	tr, c, _ := newTracker("2024-01-15")
	tr.Record(ctx, true, 2, nil)
	c.set("2024-01-16")
	tr.Record(ctx, true, 2, nil)

	s, _ := tr.Record(ctx, true, 9, []bool{true})
	if s.Current != 2 {
		t.Errorf("same-day win keeps streak: %d", s.Current)
	}
	if len(s.History) != 2 || s.History[1].Score != 9 {
		t.Errorf("today's entry not replaced: %+v", s.History)
	}
	if s, _ = tr.Record(ctx, false, 1, nil); s.Current != 0 {
		t.Errorf("same-day loss: %d, want 0", s.Current)
	}
}

func TestHistoryCapped(t *testing.T) {
	ctx := context.Background()
	tr, c, _ := newTracker("2024-01-01")
	start := c.t
	for i := 0; i < HistoryLimit+5; i++ {
		c.t = start.AddDate(0, 0, i)
		tr.Record(ctx, true, i, nil)
	}
	s := tr.Streak(ctx)
	if len(s.History) != HistoryLimit {
		t.Fatalf("history %d, want %d", len(s.History), HistoryLimit)
	}
	if s.History[len(s.History)-1].Score != HistoryLimit+4 {
		t.Errorf("newest entry not last: %+v", s.History[len(s.History)-1])
	}
	if s.Current != HistoryLimit+5 {
		t.Errorf("streak %d", s.Current)
	}
}

func TestCompletedMarker(t *testing.T) {
	ctx := context.Background()
	tr, c, _ := newTracker("2024-01-15")
	if tr.Completed(ctx) {
		t.Fatal("fresh tracker reports completed")
	}
	tr.Record(ctx, false, 1, nil)
	if !tr.Completed(ctx) {
		t.Fatal("not completed after Record")
	}
	c.set("2024-01-16")
	if tr.Completed(ctx) {
		t.Error("yesterday's marker blocks today")
	}
}

func TestSavedResult(t *testing.T) {
	ctx := context.Background()
	tr, c, store := newTracker("2024-01-15")

	if _, ok := tr.Saved(ctx); ok {
		t.Fatal("nothing saved yet")
	}
	if err := tr.Save(ctx, 4, []bool{true, false}, "price"); err != nil {
		t.Fatal(err)
	}
	got, ok := tr.Saved(ctx)
	if !ok || got.Score != 4 || got.DimensionName != "price" || len(got.Placements) != 2 {
		t.Fatalf("Saved = %+v, %v", got, ok)
	}

	c.set("2024-01-16")
	if _, ok := tr.Saved(ctx); ok {
		t.Error("stale snapshot returned")
	}
	if _, present, _ := store.Get(ctx, KeySavedResult); present {
		t.Error("stale snapshot not deleted")
	}

	store.Set(ctx, KeySavedResult, "{not json")
	if _, ok := tr.Saved(ctx); ok {
		t.Error("malformed snapshot returned")
	}
}

func TestMalformedHistoryReadsEmpty(t *testing.T) {
	ctx := context.Background()
	tr, _, store := newTracker("2024-01-15")
	store.Set(ctx, KeyHistory, "[oops")
	store.Set(ctx, KeyStreak, "x")

	s := tr.Streak(ctx)
	if s.Current != 0 || len(s.History) != 0 {
		t.Errorf("Streak = %+v", s)
	}
	if s, err := tr.Record(ctx, true, 2, nil); err != nil || s.Current != 1 {
		t.Errorf("Record over garbage: %+v, %v", s, err)
	}
}

func TestResetToday(t *testing.T) {
	ctx := context.Background()
	tr, c, _ := newTracker("2024-01-14")
	tr.Record(ctx, true, 3, nil)
	c.set("2024-01-15")
	tr.Record(ctx, true, 5, nil)
	tr.Save(ctx, 5, nil, "year")

	if err := tr.ResetToday(ctx); err != nil {
		t.Fatal(err)
	}
	if tr.Completed(ctx) {
		t.Error("completion marker survived")
	}
	if _, ok := tr.Saved(ctx); ok {
		t.Error("saved result survived")
	}
	s := tr.Streak(ctx)
	if len(s.History) != 1 || s.History[0].Date != "2024-01-14" {
		t.Errorf("history = %+v", s.History)
	}
}

func TestFinish(t *testing.T) {
	ctx := context.Background()
	tr, _, _ := newTracker("2024-01-15")
	year := dimension.Get("year")

	st, err := NewState(ctx, pool(60), year, tr.Today(), game.Options{})
	if err != nil {
		t.Fatal(err)
	}
	// lose every life without a correct drop
	for st.Status == game.StatusPlaying {
		idx := 0
		if game.CheckCorrect(st.Played, *st.Next(), 0, year).Correct {
			idx = len(st.Played)
		}
		st.Place(ctx, idx)
	}

	s, err := tr.Finish(ctx, "", st)
	if err != nil {
		t.Fatal(err)
	}
	if s.Current != 0 || s.History[0].Won || s.History[0].Score != 1 {
		t.Errorf("loss recorded as %+v", s)
	}
	saved, ok := tr.Saved(ctx)
	if !ok || saved.DimensionName != "year" || len(saved.Placements) != game.StartingLives {
		t.Errorf("saved = %+v, %v", saved, ok)
	}
}

func TestFinishPastMidnightCountsForDealtDay(t *testing.T) {
	ctx := context.Background()
	tr, c, _ := newTracker("2024-01-14")
	year := dimension.Get("year")
	tr.Record(ctx, true, 4, []bool{true})

	c.set("2024-01-15")
	st, err := NewState(ctx, pool(60), year, tr.Today(), game.Options{})
	if err != nil {
		t.Fatal(err)
	}
	st.Place(ctx, dropAt(st, true))
	for st.Status == game.StatusPlaying {
		st.Place(ctx, dropAt(st, false))
	}

	// dealt on the 15th, finished after midnight
	c.set("2024-01-16")
	s, err := tr.Finish(ctx, "2024-01-15", st)
	if err != nil {
		t.Fatal(err)
	}
	last := s.History[len(s.History)-1]
	if last.Date != "2024-01-15" {
		t.Errorf("recorded under %s, want 2024-01-15", last.Date)
	}
	if tr.Completed(ctx) {
		t.Error("the 16th should still be playable")
	}
	if _, ok := tr.Saved(ctx); ok {
		t.Error("yesterday's snapshot should not show as today's")
	}

	if !last.Won || s.Current != 2 {
		t.Errorf("15th recorded as %+v, streak %d", last, s.Current)
	}
	// playing the 16th extends the streak from the 15th
	s, _ = tr.Record(ctx, true, 3, []bool{true})
	if s.Current != 3 {
		t.Errorf("streak after the 16th = %d, want 3", s.Current)
	}
}

func TestLateResultDoesNotRewindStreak(t *testing.T) {
	ctx := context.Background()
	tr, _, store := newTracker("2024-01-16")
	tr.Record(ctx, true, 4, []bool{true})
	tr.Save(ctx, 4, []bool{true}, "price")

	st, err := NewState(ctx, pool(60), dimension.Get("year"), tr.Today(), game.Options{})
	if err != nil {
		t.Fatal(err)
	}
	for st.Status == game.StatusPlaying {
		st.Place(ctx, dropAt(st, false))
	}
	s, err := tr.Finish(ctx, "2024-01-15", st)
	if err != nil {
		t.Fatal(err)
	}
	if s.Current != 1 {
		t.Errorf("streak = %d, want 1", s.Current)
	}
	if v, _, _ := store.Get(ctx, KeyLastPlayed); v != "2024-01-16" {
		t.Errorf("last played = %q", v)
	}
	if len(s.History) != 2 || s.History[0].Date != "2024-01-15" || s.History[1].Date != "2024-01-16" {
		t.Errorf("history = %+v", s.History)
	}
	if !tr.Completed(ctx) {
		t.Error("the 16th is still completed")
	}
	if saved, ok := tr.Saved(ctx); !ok || saved.Date != "2024-01-16" || saved.DimensionName != "price" {
		t.Errorf("saved = %+v, %v", saved, ok)
	}
}

// dropAt finds an index where Next lands correctly (or not).
func dropAt(st *game.State, correct bool) int {
	for i := 0; i <= len(st.Played); i++ {
		if game.CheckCorrect(st.Played, *st.Next(), i, st.Dimension).Correct == correct {
			return i
		}
	}
	return 0
}

func TestLeaderboard(t *testing.T) {
	ctx := context.Background()
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "lb.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	for _, ddl := range []string{
		`CREATE TABLE users (id TEXT PRIMARY KEY, username TEXT NOT NULL)`,
		`CREATE TABLE daily_results (
			player_id TEXT NOT NULL, date TEXT NOT NULL, dimension TEXT NOT NULL,
			score INTEGER NOT NULL, created_at TEXT NOT NULL,
			UNIQUE(player_id, date))`,
		`INSERT INTO users(id, username) VALUES ('u1', 'ada')`,
	} {
		if _, err := db.Exec(ddl); err != nil {
			t.Fatal(err)
		}
	}

	lb := NewLeaderboard(db)
	rows := []Entry{
		{PlayerID: "u1", Date: "2024-01-15", Dimension: "year", Score: 7, CreatedAt: "2024-01-15T10:00:00Z"},
		{PlayerID: "anon", Date: "2024-01-15", Dimension: "year", Score: 7, CreatedAt: "2024-01-15T09:00:00Z"},
		{PlayerID: "u3", Date: "2024-01-15", Dimension: "year", Score: 12, CreatedAt: "2024-01-15T11:00:00Z"},
		{PlayerID: "u1", Date: "2024-01-15", Dimension: "year", Score: 40},
		{PlayerID: "u1", Date: "2024-01-14", Dimension: "price", Score: 2},
	}
	for _, r := range rows {
		if err := lb.InsertResult(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	played, err := lb.AlreadyPlayed(ctx, "u1", "2024-01-15")
	if err != nil || !played {
		t.Fatalf("AlreadyPlayed = %v, %v", played, err)
	}

	top, err := lb.Top(ctx, "2024-01-15", 10)
	if err != nil {
		t.Fatal(err)
	}
	var order []string
	for _, e := range top {
		order = append(order, e.PlayerID)
	}
	if len(order) != 3 || order[0] != "u3" || order[1] != "anon" || order[2] != "u1" {
		t.Fatalf("order = %v", order)
	}
	if top[2].Name != "ada" || top[2].Score != 7 {
		t.Errorf("u1 row = %+v", top[2])
	}
}
