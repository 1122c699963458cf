package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// FileStoreConfig holds configuration for the on-disk snapshot store.
type FileStoreConfig struct {
	// Dir is the directory snapshots are written under. Created if absent.
	Dir string
}

// FileStore keeps snapshots as plain files under a directory, keyed by file
// name. Writes go to a temporary file in the same directory followed by a
// rename, so readers never observe a half-written snapshot.
type FileStore struct {
	dir    string
	logger zerolog.Logger
}

// NewFileStore creates the snapshot directory if needed and returns a store
// rooted there.
func NewFileStore(cfg *FileStoreConfig, logger zerolog.Logger) (*FileStore, error) {
	if cfg == nil || cfg.Dir == "" {
		return nil, fmt.Errorf("snapshot directory cannot be empty")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating snapshot directory %s: %w", cfg.Dir, err)
	}
	return &FileStore{
		dir:    cfg.Dir,
		logger: logger.With().Str("component", "FileStore").Logger(),
	}, nil
}

// Read returns the bytes stored for key.
func (s *FileStore) Read(_ context.Context, key string) ([]byte, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("snapshot %s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("reading snapshot %s: %w", path, err)
	}
	return data, nil
}

// Write atomically replaces the snapshot for key by writing a temporary file
// in the same directory and renaming it into place.
func (s *FileStore) Write(_ context.Context, key string, data []byte) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating snapshot directory for %s: %w", path, err)
	}

	// The temp file shares the target's directory so the rename stays on one
	// filesystem and remains atomic.
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp snapshot for %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing temp snapshot for %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("closing temp snapshot for %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replacing snapshot %s: %w", path, err)
	}

	s.logger.Debug().Str("path", path).Int("bytes", len(data)).Msg("Snapshot written.")
	return nil
}

// Exists reports whether a snapshot file is present for key.
func (s *FileStore) Exists(_ context.Context, key string) (bool, error) {
	path, err := s.path(key)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("checking snapshot %s: %w", path, err)
	}
	return true, nil
}

// Close is a no-op for the file store but satisfies the Store interface.
func (s *FileStore) Close() error {
	return nil
}

// path resolves key to a file inside the snapshot directory, rejecting keys
// that would escape it.
func (s *FileStore) path(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("snapshot key cannot be empty")
	}
	cleaned := filepath.Clean(key)
	if filepath.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("snapshot key %q escapes the store directory", key)
	}
	return filepath.Join(s.dir, cleaned), nil
}
