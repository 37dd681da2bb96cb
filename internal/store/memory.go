// internal/store/memory.go
//
// In-memory session store.
// A session wraps one game.State with the player that owns it.
//
// Characteristics:
//   - Sessions keyed by game id in a map guarded by a mutex.
//   - Each player holds at most one regular and one daily session; saving a
//     new one evicts the previous session of the same kind.
//   - Sessions expire when idle for IdleTTL, when older than MaxAge, or
//     FinishedTTL after the last touch once the game is over. Expired
//     sessions read as ErrNotFound and are swept lazily on Save.
//   - Each session carries its own mutex; handlers lock it around
//     state transitions so one player's concurrent requests serialize.
//   - State is lost when the process restarts.
package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/timeline/internal/game"
)

var ErrNotFound = errors.New("store: session not found")

const (
	DefaultIdleTTL     = 2 * time.Hour
	DefaultMaxAge      = 24 * time.Hour
	DefaultFinishedTTL = 10 * time.Minute

	sweepEvery = time.Minute
)

// Session is one live game and its owner.
type Session struct {
	mu sync.Mutex

	ID      string
	Owner   string // player id
	Game    *game.State
	Daily   bool
	Date    string // YYYY-MM-DD for daily sessions
	Created time.Time

	lastSeen time.Time // guarded by the store
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// Store defines the persistence interface for game sessions.
type Store interface {
	// Save stores s and evicts the owner's previous session of the same kind.
	Save(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	// Current is the owner's live daily or regular session.
	Current(ctx context.Context, owner string, daily bool) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// Option tunes a memory store.
type Option func(*memory)

// WithTTL overrides the idle, maximum-age and finished-game lifetimes.
// Zero keeps the default.
func WithTTL(idle, maxAge, finished time.Duration) Option {
	return func(m *memory) {
		if idle > 0 {
			m.idle = idle
		}
		if maxAge > 0 {
			m.maxAge = maxAge
		}
		if finished > 0 {
			m.finished = finished
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *memory) { m.now = now }
}

type memory struct {
	mu        sync.Mutex
	sessions  map[string]*Session
	byOwner   map[string]string // slot → session id
	lastSweep time.Time

	idle, maxAge, finished time.Duration
	now                    func() time.Time
}

func NewMemoryStore(opts ...Option) Store {
	m := &memory{
		sessions: make(map[string]*Session),
		byOwner:  make(map[string]string),
		idle:     DefaultIdleTTL,
		maxAge:   DefaultMaxAge,
		finished: DefaultFinishedTTL,
		now:      time.Now,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

func slot(owner string, daily bool) string {
	if daily {
		return owner + "|daily"
	}
	return owner + "|regular"
}

func (m *memory) Save(ctx context.Context, s *Session) error {
	now := m.now()
	if s.Created.IsZero() {
		s.Created = now
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if now.Sub(m.lastSweep) >= sweepEvery {
		m.sweepLocked(now)
	}
	key := slot(s.Owner, s.Daily)
	if prev, ok := m.byOwner[key]; ok && prev != s.ID {
		delete(m.sessions, prev)
	}
	s.lastSeen = now
	m.sessions[s.ID] = s
	m.byOwner[key] = s.ID
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getLocked(id, m.now())
}

func (m *memory) Current(ctx context.Context, owner string, daily bool) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.byOwner[slot(owner, daily)]
	if !ok {
		return nil, ErrNotFound
	}
	return m.getLocked(id, m.now())
}

func (m *memory) getLocked(id string, now time.Time) (*Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if m.expired(s, now) {
		m.removeLocked(s)
		return nil, ErrNotFound
	}
	s.lastSeen = now
	return s, nil
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		m.removeLocked(s)
	}
	return nil
}

func (m *memory) removeLocked(s *Session) {
	delete(m.sessions, s.ID)
	key := slot(s.Owner, s.Daily)
	if m.byOwner[key] == s.ID {
		delete(m.byOwner, key)
	}
}

// expired reads the game status only when the session is not busy; a
// session mid-request is in use by definition.
func (m *memory) expired(s *Session, now time.Time) bool {
	idle := now.Sub(s.lastSeen)
	if idle > m.idle || now.Sub(s.Created) > m.maxAge {
		return true
	}
	if idle <= m.finished || s.Game == nil || !s.mu.TryLock() {
		return false
	}
	defer s.mu.Unlock()
	return s.Game.Status == game.StatusGameOver
}

func (m *memory) sweepLocked(now time.Time) {
	m.lastSweep = now
	n := 0
	for _, s := range m.sessions {
		if m.expired(s, now) {
			m.removeLocked(s)
			n++
		}
	}
	if n > 0 {
		log.Debug().Int("expired", n).Int("live", len(m.sessions)).Msg("session sweep")
	}
}
