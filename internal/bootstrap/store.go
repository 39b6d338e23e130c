// Package bootstrap opens the configured storage backend for the server and
// the command-line tools.
package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/vaishnavisales/storefront/internal/config"
	"github.com/vaishnavisales/storefront/internal/storage"
	"github.com/vaishnavisales/storefront/internal/storage/mongo"
	"github.com/vaishnavisales/storefront/internal/storage/postgres"
)

// OpenStore connects to the backend named by cfg.Storage.Backend. The
// postgres table is created on first use.
func OpenStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (storage.Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		logger.Warn("Using in-memory storage, data is lost on restart")
		return storage.NewMemoryStore(), nil

	case config.BackendFile:
		store, err := storage.NewFileStore(cfg.Storage.DataDir, logger)
		if err != nil {
			return nil, err
		}
		return store, nil

	case config.BackendPostgres:
		db, err := postgres.NewConnection(cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		return postgres.NewStore(db, logger), nil

	case config.BackendMongo:
		client, err := mongo.Connect(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		return mongo.NewStore(client, cfg.Mongo.Database, logger), nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// NewLogger builds the JSON production logger or the console development logger
func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		zcfg := zap.NewProductionConfig()
		if err := zcfg.Level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
		}
		return zcfg.Build()
	}
	return zap.NewDevelopment()
}
