package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"
)

// ====================================================================================
// Interfaces abstracting the read side of the Google Cloud Storage client, so
// the GCSFetcher can be unit tested without a real client.
// ====================================================================================

// GCSClient abstracts the top-level *storage.Client.
type GCSClient interface {
	Bucket(name string) GCSBucketHandle
	Close() error
}

// GCSBucketHandle abstracts a *storage.BucketHandle.
type GCSBucketHandle interface {
	Object(name string) GCSObjectHandle
}

// GCSObjectHandle abstracts a *storage.ObjectHandle.
type GCSObjectHandle interface {
	NewReader(ctx context.Context) (io.ReadCloser, error)
}

// --- Adapters wrapping the concrete Google Cloud Storage client ---

type gcsClientAdapter struct {
	client *storage.Client
}

// NewGCSClientAdapter makes the concrete *storage.Client conform to GCSClient.
func NewGCSClientAdapter(client *storage.Client) GCSClient {
	if client == nil {
		return nil
	}
	return &gcsClientAdapter{client: client}
}

func (a *gcsClientAdapter) Bucket(name string) GCSBucketHandle {
	return &gcsBucketHandleAdapter{handle: a.client.Bucket(name)}
}

func (a *gcsClientAdapter) Close() error {
	return a.client.Close()
}

type gcsBucketHandleAdapter struct {
	handle *storage.BucketHandle
}

func (a *gcsBucketHandleAdapter) Object(name string) GCSObjectHandle {
	return &gcsObjectHandleAdapter{handle: a.handle.Object(name)}
}

type gcsObjectHandleAdapter struct {
	handle *storage.ObjectHandle
}

func (a *gcsObjectHandleAdapter) NewReader(ctx context.Context) (io.ReadCloser, error) {
	return a.handle.NewReader(ctx)
}

// --- Fetcher ---

// GCSFetcher retrieves resource bytes from Google Cloud Storage. Locations
// use the "gs://bucket/path/to/object" form.
type GCSFetcher struct {
	client GCSClient
	logger zerolog.Logger
}

// NewGCSFetcher dials a new storage client with the supplied client options
// and wraps it in a fetcher. The fetcher owns the client and closes it.
func NewGCSFetcher(ctx context.Context, logger zerolog.Logger, opts ...option.ClientOption) (*GCSFetcher, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating storage client: %w", err)
	}
	return NewGCSFetcherWithClient(NewGCSClientAdapter(client), logger)
}

// NewGCSFetcherWithClient wraps an existing client. Useful for tests and for
// callers that manage the client's lifecycle themselves.
func NewGCSFetcherWithClient(client GCSClient, logger zerolog.Logger) (*GCSFetcher, error) {
	if client == nil {
		return nil, fmt.Errorf("gcs client cannot be nil")
	}
	return &GCSFetcher{
		client: client,
		logger: logger.With().Str("component", "GCSFetcher").Logger(),
	}, nil
}

// Fetch reads the full contents of the object at location.
// A missing object maps to ErrNotFound.
func (f *GCSFetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	bucket, object, err := splitGCSLocation(location)
	if err != nil {
		return nil, err
	}

	reader, err := f.client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			f.logger.Warn().Str("location", location).Msg("Object not found in GCS.")
			return nil, fmt.Errorf("fetching %s: %w", location, ErrNotFound)
		}
		f.logger.Error().Err(err).Str("location", location).Msg("Failed to open GCS object reader.")
		return nil, fmt.Errorf("fetching %s: %w", location, err)
	}
	defer func() {
		_ = reader.Close()
	}()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", location, err)
	}

	f.logger.Debug().Str("location", location).Int("bytes", len(data)).Msg("Fetched object from GCS.")
	return data, nil
}

// Close closes the underlying storage client.
func (f *GCSFetcher) Close() error {
	return f.client.Close()
}

// splitGCSLocation breaks "gs://bucket/object/path" into its bucket and
// object parts.
func splitGCSLocation(location string) (bucket, object string, err error) {
	trimmed, ok := strings.CutPrefix(location, "gs://")
	if !ok {
		return "", "", fmt.Errorf("invalid GCS location %q: missing gs:// scheme", location)
	}
	bucket, object, ok = strings.Cut(trimmed, "/")
	if !ok || bucket == "" || object == "" {
		return "", "", fmt.Errorf("invalid GCS location %q: want gs://bucket/object", location)
	}
	return bucket, object, nil
}
