package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/vanixstudio/vanix-bff/internal/domain"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
)

// ============================================================
// OrderStore implementation: the orders table
// ============================================================

type orderRow struct {
	ID        string            `json:"id"`
	UserID    string            `json:"user_id"`
	Items     []domain.CartLine `json:"items"`
	TotalEUR  decimal.Decimal   `json:"total_eur"`
	Status    string            `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
}

func (r orderRow) toDomain() domain.Order {
	items := r.Items
	if items == nil {
		items = []domain.CartLine{}
	}
	return domain.Order{
		ID:        r.ID,
		UserID:    r.UserID,
		Items:     items,
		TotalEUR:  r.TotalEUR,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
	}
}

func (c *Client) queryOrders(ctx context.Context, path string) ([]domain.Order, error) {
	var orders []domain.Order
	err := c.call(ctx, "orders", func() error {
		body, err := c.doRequest(ctx, http.MethodGet, path)
		if err != nil {
			return err
		}
		orders = []domain.Order{}
		if isEmpty(body) {
			return nil
		}
		var rows []orderRow
		if err := json.Unmarshal(body, &rows); err != nil {
			return fmt.Errorf("decode orders: %w", err)
		}
		for _, r := range rows {
			orders = append(orders, r.toDomain())
		}
		return nil
	})
	return orders, err
}

// CreateOrder inserts o. ID and CreatedAt must be set by the caller.
func (c *Client) CreateOrder(ctx context.Context, o *domain.Order) error {
	ctx, span := tracer.Start(ctx, "Supabase.CreateOrder")
	defer span.End()
	span.SetAttributes(attribute.String("order.id", o.ID), attribute.String("user.id", o.UserID))

	row := orderRow{
		ID:        o.ID,
		UserID:    o.UserID,
		Items:     o.Items,
		TotalEUR:  o.TotalEUR,
		Status:    o.Status,
		CreatedAt: o.CreatedAt.UTC(),
	}
	return c.call(ctx, "orders", func() error {
		_, err := c.doPost(ctx, "orders", row)
		return err
	})
}

// ListOrders returns the orders of userID, newest first.
func (c *Client) ListOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListOrders")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	return c.queryOrders(ctx, "orders?"+eq("user_id", userID)+"&order=created_at.desc")
}

// ListRecentOrders returns the latest limit orders across all users.
func (c *Client) ListRecentOrders(ctx context.Context, limit int) ([]domain.Order, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListRecentOrders")
	defer span.End()

	return c.queryOrders(ctx, fmt.Sprintf("orders?order=created_at.desc&limit=%d", limit))
}

// CountOrders returns the number of orders.
func (c *Client) CountOrders(ctx context.Context) (int, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CountOrders")
	defer span.End()

	var n int
	err := c.call(ctx, "orders", func() error {
		var err error
		n, err = c.doCount(ctx, "orders", "")
		return err
	})
	return n, err
}

// OrderDates returns the creation times of orders placed at or after since.
func (c *Client) OrderDates(ctx context.Context, since time.Time) ([]time.Time, error) {
	ctx, span := tracer.Start(ctx, "Supabase.OrderDates")
	defer span.End()

	path := "orders?select=created_at&created_at=gte." +
		url.QueryEscape(since.UTC().Format(time.RFC3339)) + "&order=created_at.asc"

	var dates []time.Time
	err := c.call(ctx, "orders", func() error {
		body, err := c.doRequest(ctx, http.MethodGet, path)
		if err != nil {
			return err
		}
		dates = []time.Time{}
		if isEmpty(body) {
			return nil
		}
		var rows []struct {
			CreatedAt time.Time `json:"created_at"`
		}
		if err := json.Unmarshal(body, &rows); err != nil {
			return fmt.Errorf("decode order dates: %w", err)
		}
		for _, r := range rows {
			dates = append(dates, r.CreatedAt)
		}
		return nil
	})
	return dates, err
}

// CompletedRevenue sums total_eur over completed orders.
func (c *Client) CompletedRevenue(ctx context.Context) (decimal.Decimal, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CompletedRevenue")
	defer span.End()

	total := decimal.Zero
	err := c.call(ctx, "orders", func() error {
		body, err := c.doRequest(ctx, http.MethodGet, "orders?select=total_eur&"+eq("status", domain.OrderCompleted))
		if err != nil {
			return err
		}
		total = decimal.Zero
		if isEmpty(body) {
			return nil
		}
		var rows []struct {
			TotalEUR decimal.Decimal `json:"total_eur"`
		}
		if err := json.Unmarshal(body, &rows); err != nil {
			return fmt.Errorf("decode revenue: %w", err)
		}
		for _, r := range rows {
			total = total.Add(r.TotalEUR)
		}
		return nil
	})
	return total, err
}
