// internal/kv/kv.go
//
// String key-value persistence for player-scoped counters and records
// (high score, daily streak, daily history, saved daily result).
//
// Implementations:
//   - memory (this package): map behind an RWMutex, for tests and ephemeral runs.
//   - SQLite (sqlite.go):    single "kv" table, durable across restarts.
//   - Redis (redis.go):      shared store for multi-instance deployments.
//
// Semantics are a single-writer register per key, last write wins.
// A missing key is reported through ok=false and is never an error.
package kv

import (
	"context"
	"sync"
)

// Store defines the key-value persistence interface.
type Store interface {
	// Get returns the value for key; ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu   sync.RWMutex      // guards data
	data map[string]string // keyed by full key
}

// NewMemory constructs a new in-memory Store.
func NewMemory() Store {
	return &memory{data: make(map[string]string)}
}

func (m *memory) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memory) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// prefixed namespaces every key of an underlying Store.
type prefixed struct {
	inner  Store
	prefix string
}

// WithPrefix returns a Store that reads and writes inner under prefix+key.
func WithPrefix(inner Store, prefix string) Store {
	return &prefixed{inner: inner, prefix: prefix}
}

func (p *prefixed) Get(ctx context.Context, key string) (string, bool, error) {
	return p.inner.Get(ctx, p.prefix+key)
}

func (p *prefixed) Set(ctx context.Context, key, value string) error {
	return p.inner.Set(ctx, p.prefix+key, value)
}

func (p *prefixed) Delete(ctx context.Context, key string) error {
	return p.inner.Delete(ctx, p.prefix+key)
}
