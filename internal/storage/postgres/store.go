// Package postgres stores blobs in a single PostgreSQL table, one row per key.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/vaishnavisales/storefront/internal/storage"
)

type blobStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewStore creates a blob store on db. The kv_blobs table must exist, see EnsureSchema.
func NewStore(db *sql.DB, logger *zap.Logger) *blobStore {
	return &blobStore{
		db:     db,
		logger: logger,
	}
}

func (s *blobStore) Load(ctx context.Context, key string) (*storage.Blob, error) {
	query := `SELECT value, version FROM kv_blobs WHERE key = $1`

	var data []byte
	var version int64
	err := s.db.QueryRowContext(ctx, query, key).Scan(&data, &version)
	if err == sql.ErrNoRows {
		return &storage.Blob{Key: key}, nil
	}
	if err != nil {
		s.logger.Error("Failed to load blob", zap.String("key", key), zap.Error(err))
		return nil, err
	}

	return &storage.Blob{Key: key, Data: data, Version: strconv.FormatInt(version, 10)}, nil
}

func (s *blobStore) Save(ctx context.Context, key string, data []byte, ifMatch string) (string, error) {
	var query string
	args := []interface{}{key, data}

	switch ifMatch {
	case storage.AnyVersion:
		query = `
			INSERT INTO kv_blobs (key, value, version, updated_at)
			VALUES ($1, $2, 1, NOW())
			ON CONFLICT (key) DO UPDATE
			SET value = EXCLUDED.value, version = kv_blobs.version + 1, updated_at = NOW()
			RETURNING version
		`
	case "":
		query = `
			INSERT INTO kv_blobs (key, value, version, updated_at)
			VALUES ($1, $2, 1, NOW())
			ON CONFLICT (key) DO NOTHING
			RETURNING version
		`
	default:
		expected, err := strconv.ParseInt(ifMatch, 10, 64)
		if err != nil {
			// A token from another backend can never match a row here
			return "", storage.ErrVersionConflict
		}
		query = `
			UPDATE kv_blobs
			SET value = $2, version = version + 1, updated_at = NOW()
			WHERE key = $1 AND version = $3
			RETURNING version
		`
		args = append(args, expected)
	}

	var version int64
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return "", storage.ErrVersionConflict
	}
	if err != nil {
		s.logger.Error("Failed to save blob", zap.String("key", key), zap.Error(err))
		return "", fmt.Errorf("failed to save %s: %w", key, err)
	}

	return strconv.FormatInt(version, 10), nil
}

func (s *blobStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv_blobs WHERE key = $1`, key); err != nil {
		s.logger.Error("Failed to delete blob", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

func (s *blobStore) Close() error {
	return s.db.Close()
}
