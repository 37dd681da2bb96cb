package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/robalobadob/timeline/internal/game"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStore(opts ...Option) (Store, *clock) {
	c := &clock{t: time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)}
	return NewMemoryStore(append([]Option{WithClock(c.now)}, opts...)...), c
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	st, _ := newTestStore()

	if _, err := st.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(missing) err = %v", err)
	}

	s := &Session{ID: "g1", Owner: "p1", Game: &game.State{ID: "g1"}}
	if err := st.Save(ctx, s); err != nil {
		t.Fatal(err)
	}
	got, err := st.Get(ctx, "g1")
	if err != nil || got != s || got.Owner != "p1" {
		t.Fatalf("Get = %+v, %v", got, err)
	}
	if got.Created.IsZero() {
		t.Error("Created not stamped")
	}

	if err := st.Delete(ctx, "g1"); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Get(ctx, "g1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("after Delete err = %v", err)
	}
	if _, err := st.Current(ctx, "p1", false); !errors.Is(err, ErrNotFound) {
		t.Errorf("Current after Delete err = %v", err)
	}
}

func TestNewSessionEvictsPrevious(t *testing.T) {
	ctx := context.Background()
	st, _ := newTestStore()
	play := &game.State{Status: game.StatusPlaying}

	st.Save(ctx, &Session{ID: "r1", Owner: "p1", Game: play})
	st.Save(ctx, &Session{ID: "d1", Owner: "p1", Game: play, Daily: true, Date: "2024-01-15"})
	st.Save(ctx, &Session{ID: "r2", Owner: "p1", Game: play})
	st.Save(ctx, &Session{ID: "o1", Owner: "p2", Game: play})

	if _, err := st.Get(ctx, "r1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("replaced regular session still live: %v", err)
	}
	for _, id := range []string{"r2", "d1", "o1"} {
		if _, err := st.Get(ctx, id); err != nil {
			t.Errorf("Get(%s) err = %v", id, err)
		}
	}
	if cur, err := st.Current(ctx, "p1", false); err != nil || cur.ID != "r2" {
		t.Errorf("Current regular = %+v, %v", cur, err)
	}
	if cur, err := st.Current(ctx, "p1", true); err != nil || cur.ID != "d1" {
		t.Errorf("Current daily = %+v, %v", cur, err)
	}
}

func TestIdleSessionExpires(t *testing.T) {
	ctx := context.Background()
	st, c := newTestStore(WithTTL(time.Hour, 0, 0))
	st.Save(ctx, &Session{ID: "g1", Owner: "p1", Game: &game.State{Status: game.StatusPlaying}})

	c.advance(50 * time.Minute)
	if _, err := st.Get(ctx, "g1"); err != nil {
		t.Fatalf("touched within ttl: %v", err)
	}
	// the read above restarted the idle clock
	c.advance(50 * time.Minute)
	if _, err := st.Get(ctx, "g1"); err != nil {
		t.Fatalf("active session expired: %v", err)
	}
	c.advance(61 * time.Minute)
	if _, err := st.Get(ctx, "g1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("idle session err = %v, want ErrNotFound", err)
	}
	if _, err := st.Current(ctx, "p1", false); !errors.Is(err, ErrNotFound) {
		t.Errorf("Current after expiry err = %v", err)
	}
}

func TestSessionMaxAge(t *testing.T) {
	ctx := context.Background()
	st, c := newTestStore(WithTTL(time.Hour, 3*time.Hour, 0))
	st.Save(ctx, &Session{ID: "g1", Owner: "p1", Game: &game.State{Status: game.StatusPlaying}})
	for i := 0; i < 3; i++ {
		c.advance(59 * time.Minute)
		st.Get(ctx, "g1")
	}
	c.advance(10 * time.Minute)
	if _, err := st.Get(ctx, "g1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("old session err = %v, want ErrNotFound", err)
	}
}

func TestFinishedSessionExpiresSooner(t *testing.T) {
	ctx := context.Background()
	st, c := newTestStore()
	st.Save(ctx, &Session{ID: "over", Owner: "p1", Game: &game.State{Status: game.StatusGameOver}})
	st.Save(ctx, &Session{ID: "live", Owner: "p2", Game: &game.State{Status: game.StatusPlaying}})

	c.advance(DefaultFinishedTTL / 2)
	if _, err := st.Get(ctx, "over"); err != nil {
		t.Fatalf("finished game gone within grace: %v", err)
	}
	c.advance(DefaultFinishedTTL + time.Minute)
	if _, err := st.Get(ctx, "over"); !errors.Is(err, ErrNotFound) {
		t.Errorf("finished session err = %v, want ErrNotFound", err)
	}
	if _, err := st.Get(ctx, "live"); err != nil {
		t.Errorf("game in progress expired: %v", err)
	}
}

func TestSaveSweepsExpired(t *testing.T) {
	ctx := context.Background()
	st, c := newTestStore(WithTTL(time.Hour, 0, 0))
	for _, id := range []string{"a", "b", "c"} {
		st.Save(ctx, &Session{ID: id, Owner: id, Game: &game.State{Status: game.StatusPlaying}})
	}
	c.advance(2 * time.Hour)
	st.Save(ctx, &Session{ID: "d", Owner: "d", Game: &game.State{Status: game.StatusPlaying}})

	m := st.(*memory)
	if len(m.sessions) != 1 || len(m.byOwner) != 1 {
		t.Errorf("after sweep: %d sessions, %d owners", len(m.sessions), len(m.byOwner))
	}
}
