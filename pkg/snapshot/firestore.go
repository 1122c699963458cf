package snapshot

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/rs/zerolog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreStoreConfig holds configuration for the Firestore-backed snapshot
// store.
type FirestoreStoreConfig struct {
	ProjectID      string
	CollectionName string
}

// firestoreSnapshot is the document shape stored per snapshot key.
type firestoreSnapshot struct {
	Data    []byte    `firestore:"data"`
	SavedAt time.Time `firestore:"savedAt"`
}

// FirestoreStore keeps snapshots as documents in a Firestore collection, one
// document per snapshot key. Suited to low-volume deployments already on
// Firestore; high-churn snapshots belong in Redis or on disk.
type FirestoreStore struct {
	client         *firestore.Client
	collectionName string
	logger         zerolog.Logger
}

// NewFirestoreStore creates a new FirestoreStore around an existing client.
// The client's lifecycle is managed by the caller.
func NewFirestoreStore(cfg *FirestoreStoreConfig, client *firestore.Client, logger zerolog.Logger) (*FirestoreStore, error) {
	if client == nil {
		return nil, fmt.Errorf("firestore client cannot be nil")
	}

	logger.Info().Str("project_id", cfg.ProjectID).Str("collection", cfg.CollectionName).Msg("FirestoreStore initialized.")

	return &FirestoreStore{
		client:         client,
		collectionName: cfg.CollectionName,
		logger:         logger.With().Str("component", "FirestoreStore").Logger(),
	}, nil
}

// Read returns the snapshot bytes stored for key.
func (s *FirestoreStore) Read(ctx context.Context, key string) ([]byte, error) {
	docSnap, err := s.client.Collection(s.collectionName).Doc(key).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("snapshot %s: %w", key, ErrNotFound)
		}
		s.logger.Error().Err(err).Str("key", key).Msg("Failed to get snapshot document from Firestore.")
		return nil, fmt.Errorf("firestore get for %s: %w", key, err)
	}

	var doc firestoreSnapshot
	if err := docSnap.DataTo(&doc); err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("Failed to map snapshot document data.")
		return nil, fmt.Errorf("firestore DataTo for %s: %w", key, err)
	}
	return doc.Data, nil
}

// Write replaces the snapshot document for key. A document Set is atomic, so
// readers see either the old bytes or the new bytes in full.
func (s *FirestoreStore) Write(ctx context.Context, key string, data []byte) error {
	doc := firestoreSnapshot{Data: data, SavedAt: time.Now().UTC()}
	if _, err := s.client.Collection(s.collectionName).Doc(key).Set(ctx, doc); err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("Failed to write snapshot document to Firestore.")
		return fmt.Errorf("firestore set for %s: %w", key, err)
	}
	s.logger.Debug().Str("key", key).Int("bytes", len(data)).Msg("Snapshot written to Firestore.")
	return nil
}

// Exists reports whether a snapshot document is stored for key.
func (s *FirestoreStore) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.Collection(s.collectionName).Doc(key).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, fmt.Errorf("firestore get for %s: %w", key, err)
	}
	return true, nil
}

// Close is a no-op as the Firestore client's lifecycle is managed externally.
func (s *FirestoreStore) Close() error {
	s.logger.Info().Msg("FirestoreStore does not close the injected Firestore client.")
	return nil
}
