// list-orders prints every stored order, newest first.
// Run from the repo root: go run ./cmd/list-orders [status]
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/vaishnavisales/storefront/internal/bootstrap"
	"github.com/vaishnavisales/storefront/internal/config"
	"github.com/vaishnavisales/storefront/internal/domain"
	"github.com/vaishnavisales/storefront/internal/pricing"
	"github.com/vaishnavisales/storefront/internal/repository/blob"
)

func main() {
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	ctx := context.Background()
	store, err := bootstrap.OpenStore(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open storage: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	repos := blob.NewRepositories(store, logger)
	orders, err := repos.Order.List(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list orders: %v\n", err)
		os.Exit(1)
	}

	var filter domain.OrderStatus
	if len(os.Args) > 1 {
		filter = domain.OrderStatus(os.Args[1])
		if !filter.IsValid() {
			fmt.Fprintf(os.Stderr, "Unknown status %q\n", os.Args[1])
			os.Exit(1)
		}
	}

	fmt.Println("📋 Listing orders:")

	var count int
	for _, o := range orders {
		status := o.CurrentStatus()
		if filter != "" && status != filter {
			continue
		}
		count++
		fmt.Printf("Order #%d:\n", count)
		fmt.Printf("  ID: %s\n", o.ID)
		fmt.Printf("  User: %s\n", o.UserID)
		fmt.Printf("  Product: %s (%s) x%d\n", o.ProductName, o.Size, o.Count)
		fmt.Printf("  Status: %s\n", status.Label())
		fmt.Printf("  Amount: %s (MRP %s)\n", pricing.FormatINR(o.Amount), pricing.FormatINR(o.MRP))
		fmt.Printf("  Pickup: %s %s\n", o.Date, o.Time)
		fmt.Println()
	}

	if count == 0 {
		fmt.Println("  No orders found")
	} else {
		fmt.Printf("Total: %d order(s)\n", count)
	}
}
