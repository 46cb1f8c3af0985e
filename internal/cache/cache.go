// Package cache provides the process-wide TTL cache shared by every
// provider. Entries carry an absolute expiry instant: a read after expiry
// behaves exactly like a miss, and writes are whole-entry replacements, so
// concurrent last-writer-wins overwrites are safe without any further
// coordination.
//
// Keys are plain comparable values. Callers define small typed keys
// (e.g. a struct holding a view name and its parameters) rather than
// concatenated strings, so logically distinct entries can never collide.
package cache

import (
	"sync"
	"time"
)

// Clock abstracts time for testing.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Store is the cache interface injected into providers.
type Store interface {
	// Get returns the stored value for key, or false on a miss.
	// An expired entry is a miss.
	Get(key any) (any, bool)
	// Set stores value under key, replacing whatever was there, with an
	// absolute expiry of now+ttl.
	Set(key any, value any, ttl time.Duration)
}

type entry struct {
	value     any
	expiresAt time.Time
}

// Memory is an in-process Store backed by a mutex-guarded map.
type Memory struct {
	mu      sync.Mutex
	entries map[any]entry
	clock   Clock
}

// NewMemory creates an empty in-memory store using the real clock.
func NewMemory() *Memory {
	return NewMemoryWithClock(realClock{})
}

// NewMemoryWithClock creates an empty in-memory store with an injected
// clock, for tests that need to control expiry.
func NewMemoryWithClock(clock Clock) *Memory {
	return &Memory{
		entries: make(map[any]entry),
		clock:   clock,
	}
}

func (m *Memory) Get(key any) (any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	if !e.expiresAt.After(m.clock.Now()) {
		delete(m.entries, key)
		return nil, false
	}
	return e.value, true
}

func (m *Memory) Set(key any, value any, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = entry{
		value:     value,
		expiresAt: m.clock.Now().Add(ttl),
	}
}

// Len reports the number of entries, including ones that have expired but
// not yet been swept.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Sweep removes expired entries. Call periodically to prevent unbounded
// growth; reads never return expired values regardless.
func (m *Memory) Sweep() {
	now := m.clock.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	for key, e := range m.entries {
		if !e.expiresAt.After(now) {
			delete(m.entries, key)
		}
	}
}
