// list-products prints the embedded catalog with per-size pricing.
// Run from the repo root: go run ./cmd/list-products [search term]
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/vaishnavisales/storefront/internal/catalog"
	"github.com/vaishnavisales/storefront/internal/pricing"
)

func main() {
	searchTerm := strings.Join(os.Args[1:], " ")
	products := catalog.Default().Search(searchTerm, "")

	if searchTerm != "" {
		fmt.Printf("🔍 Searching catalog for %q...\n\n", searchTerm)
	} else {
		fmt.Println("📦 Catalog:")
	}

	for _, p := range products {
		fmt.Printf("%s  [%s]\n", p.Name, p.ID)
		fmt.Printf("  Category: %s\n", p.Category)
		if len(p.Sizes) == 0 {
			printPrice("", pricing.UnitPrice(&p, ""), pricing.UnitMRP(&p, ""))
		}
		for _, size := range p.Sizes {
			printPrice(size, pricing.UnitPrice(&p, size), pricing.UnitMRP(&p, size))
		}
		fmt.Println()
	}

	if len(products) == 0 {
		fmt.Println("❌ No products found")
		return
	}
	fmt.Printf("Total: %d product(s)\n", len(products))
}

func printPrice(size string, price, mrp int64) {
	label := size
	if label == "" {
		label = "-"
	}
	fmt.Printf("  - %-6s %s (MRP %s, %d%% off)\n",
		label, pricing.FormatINR(price), pricing.FormatINR(mrp), pricing.DisplayDiscount(mrp, price))
}
