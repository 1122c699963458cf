package resource

import (
	"sync"
	"time"
)

// cacheState is the per-handle cached tuple. It is always read and written as
// one unit: value, timestamp and flag are never locked independently, which
// is what keeps a concurrent read from observing a value paired with the
// timestamp of a different write.
//
// Invariant: fetchedAt is meaningful iff ok is true.
type cacheState[T any] struct {
	value       T
	fetchedAt   time.Time
	ok          bool
	markedStale bool
}

// store holds the last-known-good value for a single resource handle. It is
// safe for concurrent use by many readers and occasional refreshers.
type store[T any] struct {
	mu    sync.RWMutex
	state cacheState[T]
}

// read returns a consistent copy of the full cached tuple.
func (s *store[T]) read() cacheState[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// write records a successfully refreshed value and its fetch time, clearing
// the manual-stale flag. Linearizable with respect to read and markStale.
func (s *store[T]) write(value T, fetchedAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = cacheState[T]{value: value, fetchedAt: fetchedAt, ok: true}
}

// markStale sets the manual-stale flag without touching the value or its
// timestamp. Idempotent, and effective for any read that begins after it
// returns.
func (s *store[T]) markStale() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.markedStale = true
}

// isMarkedStale reports the manual-stale flag.
func (s *store[T]) isMarkedStale() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.markedStale
}
