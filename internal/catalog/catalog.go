// Package catalog serves the immutable product list compiled into the binary.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vaishnavisales/storefront/internal/domain"
	"github.com/vaishnavisales/storefront/pkg/errors"
)

//go:embed products.yaml
var builtinProducts []byte

// AllCategories is the pseudo-category that disables category filtering
const AllCategories = "All"

// Catalog is a read-only product list
type Catalog struct {
	products []domain.Product
	byID     map[string]int
}

// Default returns the built-in catalog. It panics if the embedded YAML is broken,
// which can only happen at build time.
func Default() *Catalog {
	c, err := Parse(builtinProducts)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded products.yaml: %v", err))
	}
	return c
}

// Parse builds a catalog from a YAML product list
func Parse(data []byte) (*Catalog, error) {
	var products []domain.Product
	if err := yaml.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return New(products)
}

// New validates products and builds a catalog over a private copy of them
func New(products []domain.Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]domain.Product, 0, len(products)),
		byID:     make(map[string]int, len(products)),
	}
	for _, p := range products {
		if p.ID == "" {
			return nil, fmt.Errorf("product %q has no id", p.Name)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %q", p.ID)
		}
		if !p.Category.IsValid() {
			return nil, fmt.Errorf("product %q has unknown category %q", p.ID, p.Category)
		}
		if len(p.Sizes) == 0 {
			return nil, fmt.Errorf("product %q has no sizes", p.ID)
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	return c, nil
}

// All returns every product in catalog order
func (c *Catalog) All() []domain.Product {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Get looks up a product by id
func (c *Catalog) Get(id string) (*domain.Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "product", ID: id}
	}
	p := c.products[i]
	return &p, nil
}

// Search filters by a case-insensitive match on name or description and by category.
// An empty category or "All" matches every category.
func (c *Catalog) Search(query, category string) []domain.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]domain.Product, 0, len(c.products))
	for _, p := range c.products {
		if category != "" && category != AllCategories && string(p.Category) != category {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Featured returns products flagged for the home screen
func (c *Catalog) Featured() []domain.Product {
	var out []domain.Product
	for _, p := range c.products {
		if p.IsFeatured {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns the filter list shown to customers, starting with "All"
func (c *Catalog) Categories() []string {
	out := []string{AllCategories}
	seen := make(map[domain.Category]bool)
	for _, p := range c.products {
		if !seen[p.Category] {
			seen[p.Category] = true
		}
	}
	for _, cat := range domain.Categories {
		if seen[cat] {
			out = append(out, string(cat))
		}
	}
	return out
}

// ColorFor returns the color tag of category, falling back to the first
// category's color for unknown names
func ColorFor(category string) string {
	return domain.Category(category).Color()
}
