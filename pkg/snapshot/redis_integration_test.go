//go:build integration

package snapshot_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/illmade-knight/go-resource/pkg/snapshot"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Requires a reachable Redis; set REDIS_ADDR (e.g. localhost:6379) to run.
func TestRedisStore_Integration(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set; skipping Redis integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)

	store, err := snapshot.NewRedisStore(ctx, &snapshot.RedisStoreConfig{
		Addr:      addr,
		KeyPrefix: "go-resource-test:" + uuid.NewString() + ":",
	}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})

	t.Run("Read of a missing key returns ErrNotFound", func(t *testing.T) {
		_, err := store.Read(ctx, "absent.json")
		require.Error(t, err)
		assert.ErrorIs(t, err, snapshot.ErrNotFound)
	})

	t.Run("Write then read round-trips raw bytes", func(t *testing.T) {
		payload := []byte(`{"n":1}`)
		require.NoError(t, store.Write(ctx, "service.json", payload))

		exists, err := store.Exists(ctx, "service.json")
		require.NoError(t, err)
		assert.True(t, exists)

		got, err := store.Read(ctx, "service.json")
		require.NoError(t, err)
		assert.Equal(t, payload, got)
	})

	t.Run("Write replaces previous bytes", func(t *testing.T) {
		require.NoError(t, store.Write(ctx, "service.json", []byte("old")))
		require.NoError(t, store.Write(ctx, "service.json", []byte("new")))

		got, err := store.Read(ctx, "service.json")
		require.NoError(t, err)
		assert.Equal(t, []byte("new"), got)
	})
}
