package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses.
const (
	OrderPending   = "pending"
	OrderCompleted = "completed"
	OrderCancelled = "cancelled"
)

// Order is a stored purchase.
type Order struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Items     []CartLine      `json:"items"`
	TotalEUR  decimal.Decimal `json:"totalEUR"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
}

// OrderListResponse is returned by GET /v1/orders.
type OrderListResponse struct {
	Orders []Order `json:"orders"`
}
