// Package catalog serves the static product listing. Products are loaded
// once at startup, either from the embedded fixture or from a JSON file on
// disk, and are immutable afterwards.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/SD-CODE-OEB/stationery-Saas/internal/domain"
)

//go:embed products.json
var fixture []byte

// Catalog is an immutable product listing with filter and sort queries.
type Catalog struct {
	products []domain.Product
	byID     map[string]int
}

// New builds a Catalog from the embedded fixture.
func New() (*Catalog, error) {
	return fromJSON(fixture)
}

// Load builds a Catalog from a JSON file on disk.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return fromJSON(data)
}

func fromJSON(data []byte) (*Catalog, error) {
	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	byID := make(map[string]int, len(products))
	for i, p := range products {
		if p.ID == "" {
			return nil, fmt.Errorf("catalog entry %d has no id", i)
		}
		if _, dup := byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %q", p.ID)
		}
		byID[p.ID] = i
	}
	return &Catalog{products: products, byID: byID}, nil
}

// Get returns the product with the given id or domain.ErrNotFound.
func (c *Catalog) Get(id string) (domain.Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Product{}, domain.ErrNotFound
	}
	return c.products[i], nil
}

// Len reports the number of listed products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// Categories returns the distinct categories in listing order.
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range c.products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out
}

// Sort options for List.
const (
	SortFeatured  = "featured"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortNameAsc   = "name-asc"
	SortNameDesc  = "name-desc"
	SortNewest    = "newest"
	SortRating    = "rating"
)

// Query narrows and orders a listing. Zero values mean "no constraint";
// the default sort is the fixture order ("featured").
type Query struct {
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	NewOnly  bool
	SaleOnly bool
	Search   string
	Sort     string
}

// List returns the products matching a query. The result is a fresh slice;
// callers may reorder it freely.
func (c *Catalog) List(q Query) []domain.Product {
	out := make([]domain.Product, 0, len(c.products))
	search := strings.ToLower(strings.TrimSpace(q.Search))
	for _, p := range c.products {
		if q.Category != "" && q.Category != "all" && p.Category != q.Category {
			continue
		}
		if q.MinPrice != nil && p.Price.LessThan(*q.MinPrice) {
			continue
		}
		if q.MaxPrice != nil && p.Price.GreaterThan(*q.MaxPrice) {
			continue
		}
		if q.NewOnly && !p.IsNew {
			continue
		}
		if q.SaleOnly && !p.IsOnSale {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		out = append(out, p)
	}

	switch q.Sort {
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.LessThan(out[j].Price) })
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.GreaterThan(out[j].Price) })
	case SortNameAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	case SortNameDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name > out[j].Name })
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].IsNew && !out[j].IsNew })
	case SortRating:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	case "", SortFeatured:
		// fixture order
	}
	return out
}
