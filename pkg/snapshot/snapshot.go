// Package snapshot persists the raw fetched bytes of a remote resource so a
// restarted process can seed its in-memory cache. A snapshot is a durability
// aid, never the live source of truth: the resource engine keeps serving from
// memory even when the snapshot store is unreachable.
//
// Snapshots carry no framing or header — a stored entry is exactly the bytes
// that came off the wire.
package snapshot

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound reports that no snapshot exists for the requested key.
var ErrNotFound = errors.New("snapshot: not found")

// Store is the durability contract for remote resource bytes.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Write must be atomic: a concurrent or crashed reader never observes a
//   partially written snapshot.
// - Read returns ErrNotFound (wrapped or bare) when no snapshot exists.
type Store interface {
	// Read returns the stored bytes for key.
	Read(ctx context.Context, key string) ([]byte, error)
	// Write atomically replaces the stored bytes for key.
	Write(ctx context.Context, key string, data []byte) error
	// Exists reports whether a snapshot is stored for key.
	Exists(ctx context.Context, key string) (bool, error)
	// Closer is included for implementations that manage connections.
	io.Closer
}
