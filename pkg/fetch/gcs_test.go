package fetch_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"cloud.google.com/go/storage"
	"github.com/illmade-knight/go-resource/pkg/fetch"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mocks for the GCS client abstraction ---

type mockGCSClient struct {
	bucket *mockGCSBucket
}

func (m *mockGCSClient) Bucket(name string) fetch.GCSBucketHandle {
	m.bucket.requestedBucket = name
	return m.bucket
}

func (m *mockGCSClient) Close() error { return nil }

type mockGCSBucket struct {
	requestedBucket string
	object          *mockGCSObject
}

func (m *mockGCSBucket) Object(name string) fetch.GCSObjectHandle {
	m.object.requestedObject = name
	return m.object
}

type mockGCSObject struct {
	requestedObject string
	data            []byte
	err             error
}

func (m *mockGCSObject) NewReader(_ context.Context) (io.ReadCloser, error) {
	if m.err != nil {
		return nil, m.err
	}
	return io.NopCloser(bytes.NewReader(m.data)), nil
}

func TestGCSFetcher_Fetch(t *testing.T) {
	ctx := context.Background()

	t.Run("Success reads the addressed object", func(t *testing.T) {
		object := &mockGCSObject{data: []byte("n: 1\n")}
		client := &mockGCSClient{bucket: &mockGCSBucket{object: object}}
		fetcher, err := fetch.NewGCSFetcherWithClient(client, zerolog.Nop())
		require.NoError(t, err)

		data, err := fetcher.Fetch(ctx, "gs://configs/team/service.yaml")
		require.NoError(t, err)
		assert.Equal(t, []byte("n: 1\n"), data)
		assert.Equal(t, "configs", client.bucket.requestedBucket)
		assert.Equal(t, "team/service.yaml", object.requestedObject)
	})

	t.Run("Missing object maps to ErrNotFound", func(t *testing.T) {
		object := &mockGCSObject{err: storage.ErrObjectNotExist}
		client := &mockGCSClient{bucket: &mockGCSBucket{object: object}}
		fetcher, err := fetch.NewGCSFetcherWithClient(client, zerolog.Nop())
		require.NoError(t, err)

		_, err = fetcher.Fetch(ctx, "gs://configs/missing.json")
		require.Error(t, err)
		assert.ErrorIs(t, err, fetch.ErrNotFound)
	})

	t.Run("Malformed locations are rejected", func(t *testing.T) {
		client := &mockGCSClient{bucket: &mockGCSBucket{object: &mockGCSObject{}}}
		fetcher, err := fetch.NewGCSFetcherWithClient(client, zerolog.Nop())
		require.NoError(t, err)

		for _, location := range []string{"configs/service.json", "gs://", "gs://bucket-only"} {
			_, err := fetcher.Fetch(ctx, location)
			require.Error(t, err, "location %q should be rejected", location)
		}
	})

	t.Run("Nil client is rejected", func(t *testing.T) {
		_, err := fetch.NewGCSFetcherWithClient(nil, zerolog.Nop())
		require.Error(t, err)
	})
}
