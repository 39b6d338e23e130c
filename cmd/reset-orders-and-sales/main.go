// reset-orders-and-sales deletes all orders and all sales for a fresh test.
// Run from the repo root: go run ./cmd/reset-orders-and-sales
// Uses the same storage as the server (.env or STORAGE_BACKEND/DATA_DIR/DB_* variables).
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/vaishnavisales/storefront/internal/bootstrap"
	"github.com/vaishnavisales/storefront/internal/catalog"
	"github.com/vaishnavisales/storefront/internal/config"
	"github.com/vaishnavisales/storefront/internal/domain"
	"github.com/vaishnavisales/storefront/internal/events"
	"github.com/vaishnavisales/storefront/internal/repository/blob"
	"github.com/vaishnavisales/storefront/internal/service"
)

func main() {
	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	ctx := context.Background()
	store, err := bootstrap.OpenStore(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer store.Close()

	publisher := events.New(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
	defer publisher.Close()

	repos := blob.NewRepositories(store, logger)
	products := catalog.Default()
	info := domain.StoreInfo{Name: cfg.Store.Name, Address: cfg.Store.Address, Phone: cfg.Store.Phone}

	orders, err := repos.Order.List(ctx)
	if err != nil {
		log.Fatalf("Failed to read orders: %v", err)
	}
	sales, err := repos.Sale.List(ctx)
	if err != nil {
		log.Fatalf("Failed to read sales: %v", err)
	}

	if err := service.NewOrderService(repos, products, publisher, info, logger).ClearAllOrders(ctx); err != nil {
		log.Fatalf("Failed to clear orders: %v", err)
	}
	fmt.Printf("Deleted %d order(s)\n", len(orders))

	if err := service.NewSalesService(repos, products, publisher, logger).ClearAllSales(ctx); err != nil {
		log.Fatalf("Failed to clear sales: %v", err)
	}
	fmt.Printf("Deleted %d sale(s)\n", len(sales))

	fmt.Println("Done. Record a sale with: go run ./cmd/record-sale bern 60cm")
}
