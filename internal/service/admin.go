package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vanixstudio/vanix-bff/internal/domain"
	"github.com/vanixstudio/vanix-bff/internal/infra/observability"
	"github.com/vanixstudio/vanix-bff/internal/port"
	"github.com/vanixstudio/vanix-bff/internal/timeseries"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var adminTracer = otel.Tracer("service/admin")

const (
	statsCacheKey    = "stats"
	recentOrderLimit = 10
)

// AdminService backs the dashboard.
type AdminService struct {
	users   port.UserStore
	orders  port.OrderStore
	roles   port.Cache[domain.Role]
	stats   port.Cache[*domain.AdminStats]
	metrics *observability.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

// NewAdminService creates an AdminService. roles must be the cache the
// AuthService reads so role changes take effect immediately.
func NewAdminService(
	users port.UserStore,
	orders port.OrderStore,
	roles port.Cache[domain.Role],
	stats port.Cache[*domain.AdminStats],
	metrics *observability.Metrics,
	logger *zap.Logger,
) *AdminService {
	return &AdminService{
		users:   users,
		orders:  orders,
		roles:   roles,
		stats:   stats,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

// SetClock replaces the wall clock used for series windows.
func (s *AdminService) SetClock(now func() time.Time) {
	s.now = now
}

// Stats returns the dashboard totals. User count and recent orders are
// required; the order count and revenue degrade to zero when they fail.
func (s *AdminService) Stats(ctx context.Context) (*domain.AdminStats, error) {
	ctx, span := adminTracer.Start(ctx, "AdminService.Stats")
	defer span.End()

	if cached, ok := s.stats.Get(statsCacheKey); ok {
		s.metrics.IncrCacheHit("stats")
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return cached, nil
	}
	s.metrics.IncrCacheMiss("stats")

	start := time.Now()
	var (
		users   int
		orders  int
		revenue = decimal.Zero
		recent  []domain.Order
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.users.CountUsers(gctx)
		if err != nil {
			return fmt.Errorf("count users: %w", err)
		}
		users = n
		return nil
	})

	g.Go(func() error {
		n, err := s.orders.CountOrders(gctx)
		if err != nil {
			s.logger.Warn("stats: order count unavailable", zap.Error(err))
			return nil
		}
		orders = n
		return nil
	})

	g.Go(func() error {
		total, err := s.orders.CompletedRevenue(gctx)
		if err != nil {
			s.logger.Warn("stats: revenue unavailable", zap.Error(err))
			return nil
		}
		revenue = total
		return nil
	})

	g.Go(func() error {
		list, err := s.orders.ListRecentOrders(gctx, recentOrderLimit)
		if err != nil {
			return fmt.Errorf("recent orders: %w", err)
		}
		recent = list
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if recent == nil {
		recent = []domain.Order{}
	}

	stats := &domain.AdminStats{
		TotalUsers:   users,
		TotalOrders:  orders,
		TotalRevenue: revenue,
		RecentOrders: recent,
		UpdatedAt:    s.now().UTC(),
	}
	s.stats.Set(statsCacheKey, stats)
	s.metrics.RecordRequestDuration("admin_stats", time.Since(start))

	return stats, nil
}

// ListUsers returns every user ordered by email.
func (s *AdminService) ListUsers(ctx context.Context) (*domain.UserListResponse, error) {
	ctx, span := adminTracer.Start(ctx, "AdminService.ListUsers")
	defer span.End()

	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if users == nil {
		users = []domain.StoredUser{}
	}
	return &domain.UserListResponse{Users: users}, nil
}

// SetRole changes a user's role. "client" is accepted as an older name for
// "user".
func (s *AdminService) SetRole(ctx context.Context, req *domain.SetRoleRequest) (*domain.SuccessResponse, error) {
	ctx, span := adminTracer.Start(ctx, "AdminService.SetRole")
	defer span.End()

	id := strings.TrimSpace(req.ID)
	role := parseAssignableRole(req.Role)
	if id == "" || role == "" {
		return nil, &domain.ErrValidation{Message: "Invalid payload"}
	}
	span.SetAttributes(attribute.String("user.id", id), attribute.String("user.role", string(role)))

	if err := s.users.UpdateRole(ctx, id, role); err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}
	s.roles.Delete(roleCacheKey(id))

	s.logger.Info("role changed", zap.String("user_id", id), zap.String("role", string(role)))
	return &domain.SuccessResponse{Success: true, ID: id}, nil
}

func parseAssignableRole(s string) domain.Role {
	if strings.EqualFold(strings.TrimSpace(s), "client") {
		return domain.RoleUser
	}
	return domain.NormalizeRole(s)
}

// OrderSeries buckets the orders placed inside the window of rng.
func (s *AdminService) OrderSeries(ctx context.Context, rng string) (*domain.OrderSeriesResponse, error) {
	ctx, span := adminTracer.Start(ctx, "AdminService.OrderSeries")
	defer span.End()

	r, err := timeseries.ParseRange(rng)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("series.range", string(r)))

	now := s.now()
	dates, err := s.orders.OrderDates(ctx, timeseries.WindowStart(r, now))
	if err != nil {
		return nil, fmt.Errorf("order dates: %w", err)
	}

	series := timeseries.Build(dates, r, now)
	s.metrics.IncrSeriesBuild(string(r))
	return seriesResponse(r, series), nil
}

// Metrics returns the counter snapshot.
func (s *AdminService) Metrics() *domain.MetricsSnapshot {
	return s.metrics.Snapshot()
}
