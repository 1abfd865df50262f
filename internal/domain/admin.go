package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdminStats is returned by GET /v1/admin/stats.
type AdminStats struct {
	TotalUsers   int             `json:"totalUsers"`
	TotalOrders  int             `json:"totalOrders"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	RecentOrders []Order         `json:"recentOrders"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// UserListResponse is returned by GET /v1/admin/users.
type UserListResponse struct {
	Users []StoredUser `json:"users"`
}

// SetRoleRequest is the body for PATCH /v1/admin/users/role.
type SetRoleRequest struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

// OrderSeriesResponse carries a bucketed order series and its sparkline.
type OrderSeriesResponse struct {
	Range      string   `json:"range"`
	Labels     []string `json:"labels"`
	Values     []int    `json:"values"`
	Total      int      `json:"total"`
	Path       string   `json:"path"`
	FirstLabel string   `json:"firstLabel"`
	LastLabel  string   `json:"lastLabel"`
}

// MetricsSnapshot is returned by GET /v1/admin/metrics.
type MetricsSnapshot struct {
	SessionResolutions map[string]float64 `json:"sessionResolutions"`
	SeriesBuilds       map[string]float64 `json:"seriesBuilds"`
	OrdersCreated      float64            `json:"ordersCreated"`
	BackendErrors      map[string]float64 `json:"backendErrors"`
	CacheHitRate       float64            `json:"cacheHitRate"`
	Period             string             `json:"period"`
}
