package resource

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/illmade-knight/go-resource/pkg/codec"
	"github.com/illmade-knight/go-resource/pkg/fetch"
	"github.com/illmade-knight/go-resource/pkg/snapshot"
	"github.com/rs/zerolog"
)

// RemoteConfig holds configuration for a remote resource handle.
type RemoteConfig struct {
	// Name identifies the resource in errors and logs.
	Name string
	// URL is the location passed to the fetcher on every refresh.
	URL string
	// Format is the declared format of the fetched bytes.
	Format codec.Format
	// TTL is the maximum age before the cached value goes stale by elapsed
	// time alone. nil means it never ages out.
	TTL *time.Duration
	// FetchTimeout bounds the transport call of a single refresh. Zero means
	// unbounded: the engine imposes no deadline of its own.
	FetchTimeout time.Duration
	// SnapshotKey addresses the resource's bytes within the snapshot store.
	// Defaults to Name.
	SnapshotKey string
	// CoalesceRefresh collapses concurrent refresh attempts into a single
	// fetch. Off by default: concurrent refreshes then race and the last
	// completed write wins.
	CoalesceRefresh bool
}

// RemoteResource fetches a typed value from a remote location, caching the
// decoded result in memory and persisting the raw bytes to a snapshot store
// for durability across restarts.
//
// The snapshot is written before the bytes are decoded, and it is never read
// on the live refresh path: while the process is alive the in-memory cache is
// the only fallback. On construction an existing snapshot seeds the memory
// cache, tagged stale so the first read attempts a live refresh.
type RemoteResource[T any] struct {
	handle[T]
}

// NewRemoteResource validates cfg, wires the fetcher and snapshot store into
// a handle, and seeds the in-memory cache from an existing snapshot if one is
// present. A corrupt or unreadable snapshot is logged and ignored; the handle
// then starts cold.
func NewRemoteResource[T any](
	ctx context.Context,
	cfg *RemoteConfig,
	fetcher fetch.Fetcher,
	snapshots snapshot.Store,
	logger zerolog.Logger,
) (*RemoteResource[T], error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if cfg.Name == "" {
		return nil, fmt.Errorf("resource name cannot be empty")
	}
	if cfg.URL == "" {
		return nil, fmt.Errorf("resource %q: url cannot be empty", cfg.Name)
	}
	if fetcher == nil {
		return nil, fmt.Errorf("resource %q: fetcher cannot be nil", cfg.Name)
	}
	if snapshots == nil {
		return nil, fmt.Errorf("resource %q: snapshot store cannot be nil", cfg.Name)
	}

	componentLogger := logger.With().Str("component", "RemoteResource").Logger()
	name, url := cfg.Name, cfg.URL
	snapshotKey := cfg.SnapshotKey
	if snapshotKey == "" {
		snapshotKey = name
	}
	fetchTimeout := cfg.FetchTimeout

	source := func(ctx context.Context) ([]byte, error) {
		if fetchTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, fetchTimeout)
			defer cancel()
		}

		data, err := fetcher.Fetch(ctx, url)
		if err != nil {
			if errors.Is(err, fetch.ErrNotFound) {
				return nil, fmt.Errorf("resource %q: %w: %s", name, ErrNotFound, url)
			}
			return nil, fmt.Errorf("resource %q: fetching %s: %w: %w", name, url, ErrTransport, err)
		}

		// Persist before decoding: a snapshot that cannot be written fails
		// the refresh, keeping memory and snapshot from diverging on a
		// refresh the caller saw fail.
		if err := snapshots.Write(ctx, snapshotKey, data); err != nil {
			return nil, fmt.Errorf("resource %q: persisting snapshot %s: %w: %w", name, snapshotKey, ErrIO, err)
		}
		return data, nil
	}

	r := &RemoteResource[T]{
		handle: newHandle[T](name, cfg.Format, cfg.TTL, cfg.CoalesceRefresh, source, componentLogger),
	}
	r.seed(ctx, snapshots, snapshotKey)
	return r, nil
}

// seed loads an existing snapshot into the in-memory cache, marking it stale
// so the first read attempts a live refresh and, failing that, serves the
// seeded value as a fallback.
func (r *RemoteResource[T]) seed(ctx context.Context, snapshots snapshot.Store, key string) {
	log := r.logger.With().Str("resource", r.name).Str("snapshot_key", key).Logger()

	data, err := snapshots.Read(ctx, key)
	if err != nil {
		if errors.Is(err, snapshot.ErrNotFound) {
			log.Debug().Msg("No snapshot to seed from; starting cold.")
		} else {
			log.Warn().Err(err).Msg("Failed to read snapshot; starting cold.")
		}
		return
	}

	value, err := codec.Decode[T](data, r.format)
	if err != nil {
		log.Warn().Err(err).Msg("Snapshot did not decode; starting cold.")
		return
	}

	r.cache.write(value, time.Now())
	r.cache.markStale()
	log.Info().Msg("Seeded cache from snapshot; value is stale until the first live refresh.")
}

var _ Reader[struct{}] = (*RemoteResource[struct{}])(nil)
