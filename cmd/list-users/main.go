// list-users prints registered customer accounts.
// Run from the repo root: go run ./cmd/list-users [search]
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/vaishnavisales/storefront/internal/bootstrap"
	"github.com/vaishnavisales/storefront/internal/config"
	"github.com/vaishnavisales/storefront/internal/repository/blob"
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
	store, err := bootstrap.OpenStore(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open storage: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	users, err := blob.NewRepositories(store, logger).User.List(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list users: %v\n", err)
		os.Exit(1)
	}

	q := strings.ToLower(strings.Join(os.Args[1:], " "))
	fmt.Println("👥 Users:")
	count := 0
	for _, u := range users {
		if q != "" && !strings.Contains(strings.ToLower(u.Name), q) && !strings.Contains(strings.ToLower(u.Email), q) {
			continue
		}
		count++
		joined := "-"
		if u.CreatedAt > 0 {
			joined = time.UnixMilli(u.CreatedAt).Format("2006-01-02")
		}
		fmt.Printf("  %s  %-20s %-30s joined %s\n", u.ID, u.Name, u.Email, joined)
	}
	fmt.Printf("Total: %d user(s)\n", count)
}
