package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// FileStore keeps one JSON file per key in a directory, the server-side
// equivalent of on-device storage. Versions are content hashes, so the check
// also catches edits made by other processes between Load and Save.
type FileStore struct {
	dir    string
	mu     sync.Mutex
	logger *zap.Logger
}

// NewFileStore creates dir if needed and returns a store rooted there
func NewFileStore(dir string, logger *zap.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStore{dir: dir, logger: logger}, nil
}

// path maps a key such as "@orders_data" or "users/42/@is_admin" to a file name
func (s *FileStore) path(key string) string {
	name := strings.NewReplacer("/", "__", "@", "", "\\", "_", ":", "_").Replace(key)
	return filepath.Join(s.dir, name+".json")
}

func contentVersion(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8])
}

func (s *FileStore) read(key string) (*Blob, error) {
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return &Blob{Key: key}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return &Blob{Key: key, Data: data, Version: contentVersion(data)}, nil
}

func (s *FileStore) Load(ctx context.Context, key string) (*Blob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(key)
}

func (s *FileStore) Save(ctx context.Context, key string, data []byte, ifMatch string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if ifMatch != AnyVersion {
		current, err := s.read(key)
		if err != nil {
			return "", err
		}
		if current.Version != ifMatch {
			return "", ErrVersionConflict
		}
	}

	// Write to a temp file and rename so readers never see a torn blob
	target := s.path(key)
	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file for %s: %w", key, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to sync %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return "", fmt.Errorf("failed to replace %s: %w", key, err)
	}

	s.logger.Debug("Blob saved", zap.String("key", key), zap.Int("bytes", len(data)))
	return contentVersion(data), nil
}

func (s *FileStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *FileStore) Close() error {
	return nil
}
