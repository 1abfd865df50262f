package service

import (
	"context"
	"fmt"
	"time"

	"github.com/vanixstudio/vanix-bff/internal/catalog"
	"github.com/vanixstudio/vanix-bff/internal/domain"
	"github.com/vanixstudio/vanix-bff/internal/infra/observability"
	"github.com/vanixstudio/vanix-bff/internal/port"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var shopTracer = otel.Tracer("service/shop")

// ShopService serves the catalog, prices carts and places orders.
type ShopService struct {
	catalog *catalog.Catalog
	orders  port.OrderStore
	metrics *observability.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

// NewShopService creates a ShopService over cat.
func NewShopService(cat *catalog.Catalog, orders port.OrderStore, metrics *observability.Metrics, logger *zap.Logger) *ShopService {
	return &ShopService{
		catalog: cat,
		orders:  orders,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

// ListProducts filters and sorts the catalog.
func (s *ShopService) ListProducts(ctx context.Context, f domain.ProductFilter) *domain.ProductListResponse {
	_, span := shopTracer.Start(ctx, "ShopService.ListProducts")
	defer span.End()

	products := s.catalog.Filter(f)
	span.SetAttributes(attribute.Int("products.count", len(products)))
	return &domain.ProductListResponse{
		Products:   products,
		Categories: s.catalog.Categories(),
		Total:      len(products),
	}
}

// GetProduct looks a product up by slug or id.
func (s *ShopService) GetProduct(ctx context.Context, slugOrID string) (*domain.Product, error) {
	_, span := shopTracer.Start(ctx, "ShopService.GetProduct")
	defer span.End()

	p, ok := s.catalog.Lookup(slugOrID)
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "product", ID: slugOrID}
	}
	return &p, nil
}

// PriceCart prices items against the catalog.
func (s *ShopService) PriceCart(ctx context.Context, items []domain.CartItem) domain.Cart {
	_, span := shopTracer.Start(ctx, "ShopService.PriceCart")
	defer span.End()

	return s.catalog.Price(items)
}

// Checkout prices items and records a completed order for userID.
func (s *ShopService) Checkout(ctx context.Context, userID string, items []domain.CartItem) (*domain.Order, error) {
	ctx, span := shopTracer.Start(ctx, "ShopService.Checkout")
	defer span.End()

	cart := s.catalog.Price(items)
	if len(cart.Lines) == 0 {
		return nil, &domain.ErrValidation{Message: "Cart is empty"}
	}

	order := &domain.Order{
		ID:        uuid.NewString(),
		UserID:    userID,
		Items:     cart.Lines,
		TotalEUR:  cart.Total,
		Status:    domain.OrderCompleted,
		CreatedAt: s.now().UTC(),
	}
	span.SetAttributes(attribute.String("order.id", order.ID))

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	s.metrics.IncrOrderCreated()

	s.logger.Info("order placed",
		zap.String("order_id", order.ID),
		zap.String("user_id", userID),
		zap.String("total_eur", order.TotalEUR.StringFixed(2)),
	)
	return order, nil
}

// ListMyOrders returns the orders of userID, newest first.
func (s *ShopService) ListMyOrders(ctx context.Context, userID string) (*domain.OrderListResponse, error) {
	ctx, span := shopTracer.Start(ctx, "ShopService.ListMyOrders")
	defer span.End()

	orders, err := s.orders.ListOrders(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return &domain.OrderListResponse{Orders: orders}, nil
}
