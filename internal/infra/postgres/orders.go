package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vanixstudio/vanix-bff/internal/domain"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
)

const orderColumns = `id, user_id, items, total_eur, status, created_at`

func scanOrder(row rowScanner) (*domain.Order, error) {
	var (
		o      domain.Order
		userID *string
		items  []byte
	)
	if err := row.Scan(&o.ID, &userID, &items, &o.TotalEUR, &o.Status, &o.CreatedAt); err != nil {
		return nil, err
	}
	if userID != nil {
		o.UserID = *userID
	}
	o.Items = []domain.CartLine{}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &o.Items); err != nil {
			return nil, fmt.Errorf("decode order items: %w", err)
		}
	}
	return &o, nil
}

func (s *Store) queryOrders(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbError(err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, dbError(err)
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err)
	}
	return orders, nil
}

// CreateOrder inserts o.
func (s *Store) CreateOrder(ctx context.Context, o *domain.Order) error {
	ctx, span := tracer.Start(ctx, "Postgres.CreateOrder")
	defer span.End()
	span.SetAttributes(attribute.String("order.id", o.ID))

	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("encode order items: %w", err)
	}

	var userID any
	if o.UserID != "" {
		userID = o.UserID
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO orders (id, user_id, items, total_eur, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		o.ID, userID, items, o.TotalEUR, o.Status, o.CreatedAt)
	if err != nil {
		return dbError(err)
	}
	return nil
}

// ListOrders returns the orders of userID, newest first.
func (s *Store) ListOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	ctx, span := tracer.Start(ctx, "Postgres.ListOrders")
	defer span.End()

	return s.queryOrders(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

// ListRecentOrders returns the latest limit orders.
func (s *Store) ListRecentOrders(ctx context.Context, limit int) ([]domain.Order, error) {
	ctx, span := tracer.Start(ctx, "Postgres.ListRecentOrders")
	defer span.End()

	return s.queryOrders(ctx,
		`SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC LIMIT $1`, limit)
}

// CountOrders returns the number of orders.
func (s *Store) CountOrders(ctx context.Context) (int, error) {
	ctx, span := tracer.Start(ctx, "Postgres.CountOrders")
	defer span.End()

	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM orders`).Scan(&n); err != nil {
		return 0, dbError(err)
	}
	return n, nil
}

// OrderDates returns creation times of orders placed at or after since, oldest first.
func (s *Store) OrderDates(ctx context.Context, since time.Time) ([]time.Time, error) {
	ctx, span := tracer.Start(ctx, "Postgres.OrderDates")
	defer span.End()

	rows, err := s.db.QueryContext(ctx,
		`SELECT created_at FROM orders WHERE created_at >= $1 ORDER BY created_at ASC`, since)
	if err != nil {
		return nil, dbError(err)
	}
	defer rows.Close()

	dates := []time.Time{}
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, dbError(err)
		}
		dates = append(dates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err)
	}
	return dates, nil
}

// CompletedRevenue sums total_eur over completed orders.
func (s *Store) CompletedRevenue(ctx context.Context) (decimal.Decimal, error) {
	ctx, span := tracer.Start(ctx, "Postgres.CompletedRevenue")
	defer span.End()

	var total decimal.Decimal
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(total_eur), 0) FROM orders WHERE status = $1`, domain.OrderCompleted).
		Scan(&total)
	if err != nil {
		return decimal.Zero, dbError(err)
	}
	return total, nil
}
