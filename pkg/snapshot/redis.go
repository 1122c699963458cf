package snapshot

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RedisStoreConfig holds the configuration for the Redis-backed snapshot
// store.
type RedisStoreConfig struct {
	Addr     string
	Password string
	DB       int
	// KeyPrefix namespaces snapshot keys within the Redis keyspace.
	KeyPrefix string
}

// RedisStore keeps snapshots in Redis. Useful for deployments without a
// writable disk. Entries carry no TTL: expiry policy belongs to the resource
// engine, and a snapshot is only ever replaced by a newer one.
type RedisStore struct {
	redisClient *redis.Client
	keyPrefix   string
	logger      zerolog.Logger
}

// NewRedisStore creates and connects a new RedisStore.
// It pings the Redis server to ensure connectivity before returning.
func NewRedisStore(ctx context.Context, cfg *RedisStoreConfig, logger zerolog.Logger) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info().Str("redis_address", cfg.Addr).Msg("Successfully connected to Redis.")

	return &RedisStore{
		redisClient: rdb,
		keyPrefix:   cfg.KeyPrefix,
		logger:      logger.With().Str("component", "RedisStore").Logger(),
	}, nil
}

// Read returns the snapshot bytes stored for key.
func (s *RedisStore) Read(ctx context.Context, key string) ([]byte, error) {
	data, err := s.redisClient.Get(ctx, s.keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("snapshot %s: %w", key, ErrNotFound)
		}
		s.logger.Error().Err(err).Str("key", key).Msg("Unexpected Redis error during read.")
		return nil, fmt.Errorf("reading snapshot %s from redis: %w", key, err)
	}
	return data, nil
}

// Write replaces the snapshot for key. A Redis SET is atomic, so readers see
// either the old bytes or the new bytes in full.
func (s *RedisStore) Write(ctx context.Context, key string, data []byte) error {
	if err := s.redisClient.Set(ctx, s.keyPrefix+key, data, 0).Err(); err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("Failed to write snapshot to Redis.")
		return fmt.Errorf("writing snapshot %s to redis: %w", key, err)
	}
	s.logger.Debug().Str("key", key).Int("bytes", len(data)).Msg("Snapshot written to Redis.")
	return nil
}

// Exists reports whether a snapshot is stored for key.
func (s *RedisStore) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.redisClient.Exists(ctx, s.keyPrefix+key).Result()
	if err != nil {
		return false, fmt.Errorf("checking snapshot %s in redis: %w", key, err)
	}
	return n > 0, nil
}

// Close closes the Redis client connection.
func (s *RedisStore) Close() error {
	if s.redisClient != nil {
		s.logger.Info().Msg("Closing Redis client connection...")
		return s.redisClient.Close()
	}
	return nil
}
