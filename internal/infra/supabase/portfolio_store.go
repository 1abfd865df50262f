package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/vanixstudio/vanix-bff/internal/domain"
)

// ============================================================
// PortfolioStore implementation: the portfolio_items table
// ============================================================

type portfolioRow struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"created_at"`
	User        *struct {
		Username string `json:"username"`
	} `json:"users,omitempty"`
}

// ListPortfolio returns items matching filter, newest first, with the
// author's username embedded.
func (c *Client) ListPortfolio(ctx context.Context, filter domain.PortfolioFilter) ([]domain.PortfolioItem, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListPortfolio")
	defer span.End()

	path := "portfolio_items?select=*,users(username)&order=created_at.desc"
	if filter.FeaturedOnly {
		path += "&featured=is.true"
	}
	if filter.Category != "" {
		path += "&" + eq("category", filter.Category)
	}

	var items []domain.PortfolioItem
	err := c.call(ctx, "portfolio", func() error {
		body, err := c.doRequest(ctx, http.MethodGet, path)
		if err != nil {
			return err
		}
		items = []domain.PortfolioItem{}
		if isEmpty(body) {
			return nil
		}
		var rows []portfolioRow
		if err := json.Unmarshal(body, &rows); err != nil {
			return fmt.Errorf("decode portfolio_items: %w", err)
		}
		for _, r := range rows {
			item := domain.PortfolioItem{
				ID:          r.ID,
				UserID:      r.UserID,
				Title:       r.Title,
				Description: r.Description,
				ImageURL:    r.ImageURL,
				Category:    r.Category,
				Tags:        r.Tags,
				Featured:    r.Featured,
				CreatedAt:   r.CreatedAt,
			}
			if item.Tags == nil {
				item.Tags = []string{}
			}
			if r.User != nil {
				item.Username = r.User.Username
			}
			items = append(items, item)
		}
		return nil
	})
	return items, err
}

// CreatePortfolioItem inserts item. ID and CreatedAt must be set by the caller.
func (c *Client) CreatePortfolioItem(ctx context.Context, item *domain.PortfolioItem) error {
	ctx, span := tracer.Start(ctx, "Supabase.CreatePortfolioItem")
	defer span.End()

	row := map[string]any{
		"id":          item.ID,
		"user_id":     item.UserID,
		"title":       item.Title,
		"description": item.Description,
		"image_url":   item.ImageURL,
		"category":    item.Category,
		"tags":        item.Tags,
		"featured":    item.Featured,
		"created_at":  item.CreatedAt.UTC(),
	}
	return c.call(ctx, "portfolio", func() error {
		_, err := c.doPost(ctx, "portfolio_items", row)
		return err
	})
}
