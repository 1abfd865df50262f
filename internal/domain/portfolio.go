package domain

import "time"

// PortfolioItem is a showcased project.
type PortfolioItem struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Username    string    `json:"username,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PortfolioFilter narrows ListPortfolio. Empty fields match everything.
type PortfolioFilter struct {
	FeaturedOnly bool
	Category     string
}

// CreatePortfolioRequest is the body for POST /v1/portfolio.
type CreatePortfolioRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Featured    bool     `json:"featured"`
}

// PortfolioListResponse is returned by GET /v1/portfolio.
type PortfolioListResponse struct {
	Items []PortfolioItem `json:"items"`
}
