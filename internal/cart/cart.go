// Package cart keeps the in-memory shopping cart of a session. Carts are not
// persisted and do not survive a restart.
package cart

import (
	"sync"

	"github.com/vaishnavisales/storefront/internal/domain"
	"github.com/vaishnavisales/storefront/internal/pricing"
)

// Cart holds at most one line per (product id, size) pair
type Cart struct {
	mu    sync.Mutex
	lines []domain.CartLine
}

// New creates an empty cart
func New() *Cart {
	return &Cart{}
}

// Add puts one unit of product in the given size into the cart. An existing
// line for the same pair is incremented; its captured price is kept.
func (c *Cart) Add(p *domain.Product, size string) domain.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].ProductID == p.ID && c.lines[i].Size == size {
			c.lines[i].Quantity++
			return c.lines[i]
		}
	}

	line := domain.CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		Image:     p.Image,
		Category:  p.Category,
		Size:      size,
		Quantity:  1,
		Price:     pricing.UnitPrice(p, size),
		MRP:       pricing.UnitMRP(p, size),
	}
	c.lines = append(c.lines, line)
	return line
}

// Remove deletes the whole line for the pair. Removing a missing pair is a no-op;
// the return value reports whether a line was removed.
func (c *Cart) Remove(productID, size string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.lines[:0]
	removed := false
	for _, line := range c.lines {
		if line.ProductID == productID && line.Size == size {
			removed = true
			continue
		}
		kept = append(kept, line)
	}
	c.lines = kept
	return removed
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// Subtract takes ordered lines out of the cart, one quantity at a time per
// (product id, size) pair. Units added after the snapshot was taken are kept.
func (c *Cart) Subtract(ordered []domain.CartLine) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, o := range ordered {
		for i := range c.lines {
			if c.lines[i].ProductID == o.ProductID && c.lines[i].Size == o.Size {
				c.lines[i].Quantity -= o.Quantity
				break
			}
		}
	}
	kept := c.lines[:0]
	for _, line := range c.lines {
		if line.Quantity > 0 {
			kept = append(kept, line)
		}
	}
	c.lines = kept
}

// Lines returns a snapshot of the cart lines in insertion order
func (c *Cart) Lines() []domain.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// TotalAmount is recomputed from the lines on every call
func (c *Cart) TotalAmount() domain.Money {
	return pricing.CartTotal(c.Lines())
}

// TotalMRP is the MRP of every unit in the cart
func (c *Cart) TotalMRP() domain.Money {
	return pricing.CartMRP(c.Lines())
}

// Count is the total number of units across all lines
func (c *Cart) Count() int {
	n := 0
	for _, line := range c.Lines() {
		n += line.Quantity
	}
	return n
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines) == 0
}

// Registry hands out one cart per session key
type Registry struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{carts: make(map[string]*Cart)}
}

// For returns the cart for key, creating it on first use
func (r *Registry) For(key string) *Cart {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.carts[key]
	if !ok {
		c = New()
		r.carts[key] = c
	}
	return c
}

// Drop forgets the cart for key, e.g. on logout
func (r *Registry) Drop(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, key)
}
