// Package resource implements cached reads of structured data from a local
// file or a remote endpoint. Each handle caches the last successfully decoded
// value in memory, tracks whether that value is still usable, and falls back
// to it when a refresh fails.
//
// A handle's freshness verdict is computed at read time from three inputs: a
// sticky manual-stale flag, an optional time-to-live, and the elapsed time
// since the last successful refresh. A refresh failure never makes a caller
// worse off than before the call: if any value was ever cached, it is
// returned tagged Stale instead of an error.
package resource

import "context"

// Freshness tags a returned value as trustworthy (Fresh) or as a fallback
// that could not be revalidated (Stale).
type Freshness int

const (
	Fresh Freshness = iota
	Stale
)

// String returns the lowercase name of the freshness tag.
func (f Freshness) String() string {
	if f == Fresh {
		return "fresh"
	}
	return "stale"
}

// Result wraps a resource's typed payload together with the freshness verdict
// of the value being returned. The tag describes the value, not the attempt:
// a failed refresh that fell back to a cached value yields Stale even though
// no error is surfaced.
type Result[T any] struct {
	Value     T
	Freshness Freshness
}

// IsFresh reports whether the wrapped value passed the freshness verdict at
// the time it was returned.
func (r Result[T]) IsFresh() bool {
	return r.Freshness == Fresh
}

// Reader is the uniform read contract satisfied by both the local and remote
// handle variants.
//
// Contract:
// - Concurrency: all methods are safe for concurrent use. Concurrent
//   refreshes are permitted; the stored state reflects whichever completes
//   last, never a torn mix of two.
// - MarkStale, IsFresh and IsMarkedStale never perform I/O.
type Reader[T any] interface {
	// GetOrError returns the cached value when it is fresh and forceRefresh
	// is false; otherwise it refreshes. On refresh failure it falls back to
	// the previous value tagged Stale, surfacing the failure only when no
	// previous value exists.
	GetOrError(ctx context.Context, forceRefresh bool) (Result[T], error)

	// GetOrDefault behaves like GetOrError but never fails: with no usable
	// value at all it returns the zero value of T tagged Stale.
	GetOrDefault(ctx context.Context, forceRefresh bool) Result[T]

	// GetOrNone behaves like GetOrError but never fails: with no usable
	// value at all it reports absence.
	GetOrNone(ctx context.Context, forceRefresh bool) (Result[T], bool)

	// MarkStale forces the next read to attempt a refresh regardless of
	// time-to-live. It performs no I/O and triggers no fetch itself, and is
	// effective for any read that begins after it returns. Idempotent.
	MarkStale()

	// IsFresh reports the current freshness verdict without mutating state.
	IsFresh() bool

	// IsMarkedStale reports whether the manual-stale flag is set.
	IsMarkedStale() bool
}
