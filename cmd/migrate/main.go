// migrate prepares the configured storage and rewrites every collection in the
// current schema envelope. Legacy bare arrays are upgraded; current ones are left alone.
// Run from the repo root: go run ./cmd/migrate
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/vaishnavisales/storefront/internal/bootstrap"
	"github.com/vaishnavisales/storefront/internal/config"
)

func main() {
	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	ctx := context.Background()

	// Opening the store creates the postgres table when needed
	store, err := bootstrap.OpenStore(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open storage: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()
	fmt.Printf("Storage %q ready.\n", cfg.Storage.Backend)

	collections, err := bootstrap.MigrationTargets(ctx, store, cfg.Auth.AdminEmail, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	migrated := 0
	for _, c := range collections {
		changed, err := c.Migrate(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to migrate: %v\n", err)
			os.Exit(1)
		}
		if changed {
			migrated++
			fmt.Printf("  ✅ %s upgraded\n", c.Key())
		} else {
			fmt.Printf("  ·  %s up to date\n", c.Key())
		}
	}

	fmt.Printf("Migrations completed successfully (%d collection(s) upgraded).\n", migrated)
}
