package resource

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/illmade-knight/go-resource/pkg/codec"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// sourceFunc is the data-source strategy: it obtains the raw bytes of the
// resource. The local and remote variants differ only in this function; the
// staleness and fallback logic below is shared.
type sourceFunc func(ctx context.Context) ([]byte, error)

// handle implements the shared read contract over a sourceFunc. Both
// LocalResource and RemoteResource embed it.
type handle[T any] struct {
	name   string
	format codec.Format
	ttl    *time.Duration
	cache  *store[T]
	source sourceFunc
	flight *singleflight.Group // non-nil when refreshes are coalesced
	logger zerolog.Logger
}

func newHandle[T any](name string, format codec.Format, ttl *time.Duration, coalesce bool, source sourceFunc, logger zerolog.Logger) handle[T] {
	var owned *time.Duration
	if ttl != nil {
		// Copy so a caller mutating its own duration cannot change the
		// handle's policy after construction.
		d := *ttl
		owned = &d
	}
	var flight *singleflight.Group
	if coalesce {
		flight = new(singleflight.Group)
	}
	return handle[T]{
		name:   name,
		format: format,
		ttl:    owned,
		cache:  &store[T]{},
		source: source,
		flight: flight,
		logger: logger,
	}
}

// GetOrError returns the cached value when fresh, refreshing otherwise. A
// failed refresh falls back to the previous value tagged Stale; the failure
// is surfaced only when no previous value exists.
func (h *handle[T]) GetOrError(ctx context.Context, forceRefresh bool) (Result[T], error) {
	state := h.cache.read()
	if !forceRefresh && freshAt(state.ok, state.markedStale, state.fetchedAt, h.ttl, time.Now()) {
		h.logger.Debug().Str("resource", h.name).Msg("Serving fresh cached value.")
		return Result[T]{Value: state.value, Freshness: Fresh}, nil
	}

	value, err := h.refresh(ctx)
	if err == nil {
		return Result[T]{Value: value, Freshness: Fresh}, nil
	}

	// Re-read: a concurrent refresh may have stored a value while ours was
	// failing, and that value is a better fallback than our pre-refresh copy.
	state = h.cache.read()
	if state.ok {
		h.logger.Warn().Err(err).Str("resource", h.name).Msg("Refresh failed. Falling back to cached value.")
		return Result[T]{Value: state.value, Freshness: Stale}, nil
	}

	h.logger.Error().Err(err).Str("resource", h.name).Msg("Refresh failed with no cached value to fall back to.")
	return Result[T]{}, err
}

// GetOrDefault behaves like GetOrError but converts total failure into the
// zero value of T, tagged Stale. It never fails.
func (h *handle[T]) GetOrDefault(ctx context.Context, forceRefresh bool) Result[T] {
	result, err := h.GetOrError(ctx, forceRefresh)
	if err != nil {
		var zero T
		return Result[T]{Value: zero, Freshness: Stale}
	}
	return result
}

// GetOrNone behaves like GetOrError but converts total failure into an
// absent result. It never fails.
func (h *handle[T]) GetOrNone(ctx context.Context, forceRefresh bool) (Result[T], bool) {
	result, err := h.GetOrError(ctx, forceRefresh)
	if err != nil {
		return Result[T]{}, false
	}
	return result, true
}

// MarkStale delegates to the cache store. No I/O, no fetch.
func (h *handle[T]) MarkStale() {
	h.cache.markStale()
}

// IsFresh reports the current freshness verdict. Read-only, no I/O.
func (h *handle[T]) IsFresh() bool {
	state := h.cache.read()
	return freshAt(state.ok, state.markedStale, state.fetchedAt, h.ttl, time.Now())
}

// IsMarkedStale reports the manual-stale flag. Read-only, no I/O.
func (h *handle[T]) IsMarkedStale() bool {
	return h.cache.isMarkedStale()
}

// refresh runs one fetch+decode+store cycle, coalescing concurrent attempts
// into a single source call when the handle was configured to do so.
// Without coalescing, concurrent refreshes all hit the source and the last
// completed write wins.
func (h *handle[T]) refresh(ctx context.Context) (T, error) {
	if h.flight == nil {
		return h.refreshOnce(ctx)
	}
	// Joined callers share the outcome of the first caller's attempt,
	// including any deadline on its context.
	value, err, _ := h.flight.Do(h.name, func() (any, error) {
		return h.refreshOnce(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return value.(T), nil
}

func (h *handle[T]) refreshOnce(ctx context.Context) (T, error) {
	var zero T
	log := h.logger.With().Str("resource", h.name).Str("refresh_id", uuid.NewString()).Logger()

	data, err := h.source(ctx)
	if err != nil {
		log.Debug().Err(err).Msg("Failed to obtain resource bytes.")
		return zero, err
	}

	value, err := codec.Decode[T](data, h.format)
	if err != nil {
		log.Debug().Err(err).Msg("Failed to decode resource bytes.")
		if errors.Is(err, codec.ErrUnsupportedFormat) {
			return zero, fmt.Errorf("resource %q: %w", h.name, err)
		}
		return zero, fmt.Errorf("resource %q: %w: %w", h.name, ErrParse, err)
	}

	h.cache.write(value, time.Now())
	log.Debug().Msg("Resource refreshed.")
	return value, nil
}
