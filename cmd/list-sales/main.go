// list-sales prints the sales ledger, newest first, with its total.
// Run from the repo root: go run ./cmd/list-sales
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/vaishnavisales/storefront/internal/bootstrap"
	"github.com/vaishnavisales/storefront/internal/config"
	"github.com/vaishnavisales/storefront/internal/pricing"
	"github.com/vaishnavisales/storefront/internal/repository/blob"
	"github.com/vaishnavisales/storefront/internal/service"
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

	sales, err := blob.NewRepositories(store, logger).Sale.List(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list sales: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("💰 Sales:")
	for i, s := range sales {
		fmt.Printf("%3d. %s %s  %-24s %-6s %10s", i+1, s.Date, s.Time, s.ProductName, s.Size, pricing.FormatINR(s.Amount))
		if s.OrderID != "" {
			fmt.Printf("  (order %s)", s.OrderID)
		}
		fmt.Println()
	}

	if len(sales) == 0 {
		fmt.Println("  No sales recorded")
		return
	}
	fmt.Printf("\nTotal: %d sale(s), %s\n", len(sales), pricing.FormatINR(service.Total(sales)))
}
