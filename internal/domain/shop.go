package domain

import "github.com/shopspring/decimal"

// ProductCategory groups catalog entries on the shop page.
type ProductCategory string

const (
	CategoryWebsite ProductCategory = "Website"
	CategoryApp     ProductCategory = "App"
	CategoryDesign  ProductCategory = "Design"
	CategoryUIKit   ProductCategory = "UI Kit"
	CategoryOther   ProductCategory = "Other"
)

// FAQ is a question and answer shown on a product page.
type FAQ struct {
	Q string `json:"q"`
	A string `json:"a"`
}

// Product is a catalog entry. Image is a file name under /shop/.
type Product struct {
	ID           string          `json:"id"`
	Slug         string          `json:"slug"`
	Title        string          `json:"title"`
	Subtitle     string          `json:"subtitle"`
	Description  string          `json:"description"`
	PriceEUR     decimal.Decimal `json:"priceEUR"`
	Category     ProductCategory `json:"category"`
	Tags         []string        `json:"tags"`
	Image        string          `json:"image"`
	Featured     bool            `json:"featured"`
	Deliverables []string        `json:"deliverables"`
	Timeline     string          `json:"timeline"`
	FAQ          []FAQ           `json:"faq"`
}

// Product sort orders accepted by ListProducts.
const (
	SortFeatured  = "featured"
	SortPriceAsc  = "priceAsc"
	SortPriceDesc = "priceDesc"
	SortTitle     = "title"
)

// ProductFilter narrows and orders the catalog.
type ProductFilter struct {
	Query        string
	Category     string
	FeaturedOnly bool
	Sort         string
}

// ProductListResponse is returned by GET /v1/products.
type ProductListResponse struct {
	Products   []Product         `json:"products"`
	Categories []ProductCategory `json:"categories"`
	Total      int               `json:"total"`
}

// CartItem is one entry of a client cart.
type CartItem struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

// CartLine is a priced cart entry.
type CartLine struct {
	ProductID string          `json:"productId"`
	Slug      string          `json:"slug"`
	Title     string          `json:"title"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Qty       int             `json:"qty"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// Cart is the priced result of a list of cart items.
type Cart struct {
	Lines     []CartLine      `json:"lines"`
	ItemCount int             `json:"itemCount"`
	Total     decimal.Decimal `json:"total"`
	Currency  string          `json:"currency"`
}

// CartRequest is the body for POST /v1/cart/price and POST /v1/orders.
type CartRequest struct {
	Items []CartItem `json:"items"`
}
