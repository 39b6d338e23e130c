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
	"github.com/vaishnavisales/storefront/internal/catalog"
	"github.com/vaishnavisales/storefront/internal/config"
	"github.com/vaishnavisales/storefront/internal/domain"
	"github.com/vaishnavisales/storefront/internal/invoice"
	"github.com/vaishnavisales/storefront/internal/pricing"
	"github.com/vaishnavisales/storefront/internal/repository/blob"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run ./cmd/find-order <order id or prefix> [invoice.html]")
		fmt.Println("Example: go run ./cmd/find-order 0192f1a3 invoice.html")
		os.Exit(1)
	}

	query := strings.TrimPrefix(strings.TrimSpace(os.Args[1]), "#")

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

	fmt.Printf("🔍 Searching for order: %s\n\n", query)

	orders, err := repos.Order.List(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list orders: %v\n", err)
		os.Exit(1)
	}

	var matches []domain.Order
	for _, o := range orders {
		if o.ID == query {
			matches = []domain.Order{o}
			break
		}
		if strings.HasPrefix(o.ID, query) {
			matches = append(matches, o)
		}
	}

	switch len(matches) {
	case 0:
		fmt.Println("❌ Order not found")
		os.Exit(1)
	case 1:
	default:
		fmt.Printf("⚠️  %d orders match, be more specific:\n", len(matches))
		for _, o := range matches {
			fmt.Printf("  %s  %s x%d\n", o.ID, o.ProductName, o.Count)
		}
		os.Exit(1)
	}

	order := matches[0]
	fmt.Println("✅ Found order!")
	fmt.Printf("  ID: %s\n", order.ID)
	if order.CheckoutID != "" {
		fmt.Printf("  Checkout: %s\n", order.CheckoutID)
	}
	fmt.Printf("  User: %s\n", order.UserID)
	fmt.Printf("  Product: %s (%s) x%d\n", order.ProductName, order.Size, order.Count)
	fmt.Printf("  Status: %s\n", order.CurrentStatus().Label())
	fmt.Printf("  Amount: %s (MRP %s)\n", pricing.FormatINR(order.Amount), pricing.FormatINR(order.MRP))
	fmt.Printf("  Pickup: %s %s at %s\n", order.Date, order.Time, order.PickupLocation)

	events, err := repos.OrderEvent.GetByOrderID(ctx, order.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load events: %v\n", err)
	} else if len(events) > 0 {
		fmt.Println("\n  Events:")
		for _, e := range events {
			fmt.Printf("    %s  %-14s %v\n", e.CreatedAt.Format(time.RFC3339), e.EventType, e.EventData)
		}
	}

	if len(os.Args) > 2 {
		path := os.Args[2]
		f, err := os.Create(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create %s: %v\n", path, err)
			os.Exit(1)
		}
		defer f.Close()

		info := domain.StoreInfo{Name: cfg.Store.Name, Address: cfg.Store.Address, Phone: cfg.Store.Phone}
		if err := invoice.RenderHTML(f, invoice.FromOrder(&order, info, catalog.Default(), time.Now())); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to render invoice: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\n🧾 Invoice written to %s\n", path)
	}
}
