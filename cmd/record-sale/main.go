// record-sale adds a sale made at the counter to the ledger.
// Run from the repo root: go run ./cmd/record-sale <product-id> [size] [amount]
// The amount defaults to the catalog price of the size.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/vaishnavisales/storefront/internal/bootstrap"
	"github.com/vaishnavisales/storefront/internal/catalog"
	"github.com/vaishnavisales/storefront/internal/config"
	"github.com/vaishnavisales/storefront/internal/events"
	"github.com/vaishnavisales/storefront/internal/pricing"
	"github.com/vaishnavisales/storefront/internal/repository/blob"
	"github.com/vaishnavisales/storefront/internal/service"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: record-sale <product-id> [size] [amount]")
		os.Exit(1)
	}

	req := service.SaleRequest{ProductID: os.Args[1]}
	if len(os.Args) > 2 {
		req.Size = os.Args[2]
	}
	if len(os.Args) > 3 {
		amount, err := strconv.ParseInt(os.Args[3], 10, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid amount %q: %v\n", os.Args[3], err)
			os.Exit(1)
		}
		req.Amount = amount
	}

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

	publisher := events.New(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
	defer publisher.Close()

	sales := service.NewSalesService(blob.NewRepositories(store, logger), catalog.Default(), publisher, logger)
	sale, err := sales.RecordSale(ctx, req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to record sale: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ Sale recorded")
	fmt.Printf("  ID: %s\n", sale.ID)
	fmt.Printf("  Product: %s (%s)\n", sale.ProductName, sale.Size)
	fmt.Printf("  Amount: %s\n", pricing.FormatINR(sale.Amount))
	fmt.Printf("  Date: %s %s\n", sale.Date, sale.Time)
}
