// Package catalog holds the storefront's product list and the search, sort
// and pricing rules the shop page applies to it.
package catalog

import (
	"sort"
	"strings"

	"github.com/vanixstudio/vanix-bff/internal/domain"

	"github.com/shopspring/decimal"
)

// Currency of every price in the catalog.
const Currency = "EUR"

// Quantity bounds for a single cart line.
const (
	MinQty = 1
	MaxQty = 99
)

// Catalog is an immutable, indexed product list.
type Catalog struct {
	products []domain.Product
	byID     map[string]int
	bySlug   map[string]int
}

// New indexes products. Later duplicates of an id or slug are ignored.
func New(products []domain.Product) *Catalog {
	c := &Catalog{
		byID:   make(map[string]int, len(products)),
		bySlug: make(map[string]int, len(products)),
	}
	for _, p := range products {
		if _, dup := c.byID[p.ID]; dup {
			continue
		}
		if _, dup := c.bySlug[p.Slug]; dup && p.Slug != "" {
			continue
		}
		idx := len(c.products)
		c.products = append(c.products, p)
		c.byID[p.ID] = idx
		if p.Slug != "" {
			c.bySlug[p.Slug] = idx
		}
	}
	return c
}

// Len returns the number of products.
func (c *Catalog) Len() int { return len(c.products) }

// All returns a copy of every product in catalog order.
func (c *Catalog) All() []domain.Product {
	return append([]domain.Product(nil), c.products...)
}

// Lookup finds a product by id or slug.
func (c *Catalog) Lookup(idOrSlug string) (domain.Product, bool) {
	if i, ok := c.byID[idOrSlug]; ok {
		return c.products[i], true
	}
	if i, ok := c.bySlug[idOrSlug]; ok {
		return c.products[i], true
	}
	return domain.Product{}, false
}

// Categories lists the distinct categories in first-seen order.
func (c *Catalog) Categories() []domain.ProductCategory {
	seen := make(map[domain.ProductCategory]bool)
	var out []domain.ProductCategory
	for _, p := range c.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}

// Filter applies category, featured and free-text filters, then sorts.
// Category "" or "All" matches everything. The query is matched
// case-insensitively against title, subtitle, category and tags.
func (c *Catalog) Filter(f domain.ProductFilter) []domain.Product {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]domain.Product, 0, len(c.products))

	for _, p := range c.products {
		if f.Category != "" && f.Category != "All" && string(p.Category) != f.Category {
			continue
		}
		if f.FeaturedOnly && !p.Featured {
			continue
		}
		if q != "" && !strings.Contains(haystack(p), q) {
			continue
		}
		out = append(out, p)
	}

	SortProducts(out, f.Sort)
	return out
}

func haystack(p domain.Product) string {
	return strings.ToLower(p.Title + " " + p.Subtitle + " " + string(p.Category) + " " + strings.Join(p.Tags, " "))
}

// SortProducts orders products in place. Unknown orders fall back to
// featured first, then title.
func SortProducts(products []domain.Product, order string) {
	var less func(a, b domain.Product) bool
	switch order {
	case domain.SortPriceAsc:
		less = func(a, b domain.Product) bool { return a.PriceEUR.LessThan(b.PriceEUR) }
	case domain.SortPriceDesc:
		less = func(a, b domain.Product) bool { return a.PriceEUR.GreaterThan(b.PriceEUR) }
	case domain.SortTitle:
		less = func(a, b domain.Product) bool { return titleLess(a, b) }
	default:
		less = func(a, b domain.Product) bool {
			if a.Featured != b.Featured {
				return a.Featured
			}
			return titleLess(a, b)
		}
	}
	sort.SliceStable(products, func(i, j int) bool { return less(products[i], products[j]) })
}

func titleLess(a, b domain.Product) bool {
	return strings.ToLower(a.Title) < strings.ToLower(b.Title)
}

// ClampQty bounds a requested quantity to [MinQty, MaxQty].
func ClampQty(n int) int {
	if n < MinQty {
		return MinQty
	}
	if n > MaxQty {
		return MaxQty
	}
	return n
}

// Price turns cart items into priced lines. Unknown products are dropped,
// duplicate ids are merged before clamping, and line order follows the first
// occurrence of each product.
func (c *Catalog) Price(items []domain.CartItem) domain.Cart {
	qty := make(map[string]int, len(items))
	var order []string
	for _, it := range items {
		p, ok := c.Lookup(it.ProductID)
		if !ok {
			continue
		}
		if _, seen := qty[p.ID]; !seen {
			order = append(order, p.ID)
		}
		qty[p.ID] += it.Qty
	}

	cart := domain.Cart{
		Lines:    make([]domain.CartLine, 0, len(order)),
		Total:    decimal.Zero,
		Currency: Currency,
	}
	for _, id := range order {
		p, _ := c.Lookup(id)
		n := ClampQty(qty[id])
		line := domain.CartLine{
			ProductID: p.ID,
			Slug:      p.Slug,
			Title:     p.Title,
			UnitPrice: p.PriceEUR,
			Qty:       n,
			LineTotal: p.PriceEUR.Mul(decimal.NewFromInt(int64(n))),
		}
		cart.Lines = append(cart.Lines, line)
		cart.ItemCount += n
		cart.Total = cart.Total.Add(line.LineTotal)
	}
	return cart
}
