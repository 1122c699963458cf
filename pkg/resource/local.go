package resource

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/illmade-knight/go-resource/pkg/codec"
	"github.com/rs/zerolog"
)

// LocalConfig holds configuration for a local-file resource handle.
type LocalConfig struct {
	// Name identifies the resource in errors and logs.
	Name string
	// Path is the file read on every refresh attempt.
	Path string
	// Format is the declared format of the file's bytes.
	Format codec.Format
	// TTL bounds how often the file is re-read and re-parsed. nil means the
	// cached value never ages out: only MarkStale (or forceRefresh) causes
	// another read. Useful when the backing file changes rarely but is
	// expensive to parse.
	TTL *time.Duration
	// CoalesceRefresh collapses concurrent refresh attempts into a single
	// file read. Off by default: concurrent refreshes then race and the last
	// completed write wins.
	CoalesceRefresh bool
}

// LocalResource reads a typed value from a file on local disk, caching the
// decoded result in memory.
type LocalResource[T any] struct {
	handle[T]
}

// NewLocalResource validates cfg and returns a handle for the file at
// cfg.Path. No I/O happens until the first read.
func NewLocalResource[T any](cfg *LocalConfig, logger zerolog.Logger) (*LocalResource[T], error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if cfg.Name == "" {
		return nil, fmt.Errorf("resource name cannot be empty")
	}
	if cfg.Path == "" {
		return nil, fmt.Errorf("resource %q: path cannot be empty", cfg.Name)
	}

	componentLogger := logger.With().Str("component", "LocalResource").Logger()
	name, path := cfg.Name, cfg.Path

	source := func(_ context.Context) ([]byte, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("resource %q: %w: %s", name, ErrNotFound, path)
			}
			return nil, fmt.Errorf("resource %q: reading %s: %w: %w", name, path, ErrIO, err)
		}
		return data, nil
	}

	return &LocalResource[T]{
		handle: newHandle[T](name, cfg.Format, cfg.TTL, cfg.CoalesceRefresh, source, componentLogger),
	}, nil
}

var _ Reader[struct{}] = (*LocalResource[struct{}])(nil)
