package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vanixstudio/vanix-bff/internal/domain"
)

// ListPortfolio returns items matching filter, newest first, with the
// author's username.
func (s *Store) ListPortfolio(ctx context.Context, filter domain.PortfolioFilter) ([]domain.PortfolioItem, error) {
	ctx, span := tracer.Start(ctx, "Postgres.ListPortfolio")
	defer span.End()

	var (
		where []string
		args  []any
	)
	if filter.FeaturedOnly {
		where = append(where, "p.featured = true")
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		where = append(where, fmt.Sprintf("p.category = $%d", len(args)))
	}

	query := `SELECT p.id, p.user_id, COALESCE(u.username, ''), p.title, p.description,
		p.image_url, p.category, p.tags, p.featured, p.created_at
		FROM portfolio_items p LEFT JOIN users u ON u.id = p.user_id`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY p.created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbError(err)
	}
	defer rows.Close()

	items := []domain.PortfolioItem{}
	for rows.Next() {
		var (
			it     domain.PortfolioItem
			userID *string
			tags   []byte
		)
		if err := rows.Scan(&it.ID, &userID, &it.Username, &it.Title, &it.Description,
			&it.ImageURL, &it.Category, &tags, &it.Featured, &it.CreatedAt); err != nil {
			return nil, dbError(err)
		}
		if userID != nil {
			it.UserID = *userID
		}
		it.Tags = []string{}
		if len(tags) > 0 {
			if err := json.Unmarshal(tags, &it.Tags); err != nil {
				return nil, dbError(fmt.Errorf("decode tags: %w", err))
			}
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err)
	}
	return items, nil
}

// CreatePortfolioItem inserts item.
func (s *Store) CreatePortfolioItem(ctx context.Context, item *domain.PortfolioItem) error {
	ctx, span := tracer.Start(ctx, "Postgres.CreatePortfolioItem")
	defer span.End()

	tags := item.Tags
	if tags == nil {
		tags = []string{}
	}
	encoded, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO portfolio_items (id, user_id, title, description, image_url, category, tags, featured, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		item.ID, item.UserID, item.Title, item.Description, item.ImageURL, item.Category, encoded, item.Featured, item.CreatedAt)
	if err != nil {
		return dbError(err)
	}
	return nil
}
