// Package fetch provides the transport collaborators a remote resource uses
// to obtain raw bytes. Implementations are intentionally narrow: one Fetch
// capability, no retries, no caching — staleness policy lives with the
// resource engine, not the transport.
package fetch

import (
	"context"
	"errors"
	"io"
)

// Sentinel errors returned by fetchers. Callers test with errors.Is.
var (
	// ErrNotFound reports that the remote location exists but holds no
	// resource (an HTTP 404, a missing GCS object).
	ErrNotFound = errors.New("fetch: resource not found")
)

// Fetcher retrieves the raw bytes of a remote resource.
type Fetcher interface {
	// Fetch returns the full body of the resource at location. The engine
	// imposes no timeout of its own; deadlines arrive via ctx.
	Fetch(ctx context.Context, location string) ([]byte, error)
	// Closer is included for implementations that manage network connections.
	io.Closer
}
