package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/vanixstudio/vanix-bff/internal/catalog"
	"github.com/vanixstudio/vanix-bff/internal/domain"
	"github.com/vanixstudio/vanix-bff/internal/infra/observability"
	"github.com/vanixstudio/vanix-bff/internal/service"

	"go.uber.org/zap"
)

func newShopService(orders *mockOrderStore) (*service.ShopService, *observability.Metrics) {
	metrics := observability.NewMetrics()
	return service.NewShopService(catalog.Default(), orders, metrics, zap.NewNop()), metrics
}

func TestListProducts(t *testing.T) {
	svc, _ := newShopService(&mockOrderStore{})

	resp := svc.ListProducts(context.Background(), domain.ProductFilter{Query: "next.js"})
	if resp.Total == 0 || resp.Total != len(resp.Products) {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if len(resp.Categories) == 0 {
		t.Error("expected categories")
	}
}

func TestGetProduct(t *testing.T) {
	svc, _ := newShopService(&mockOrderStore{})

	p, err := svc.GetProduct(context.Background(), "product1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if p.ID != "vanix-website-starter" {
		t.Errorf("unexpected product %q", p.ID)
	}

	_, err = svc.GetProduct(context.Background(), "missing")
	var nf *domain.ErrNotFound
	if !errors.As(err, &nf) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCheckout(t *testing.T) {
	orders := &mockOrderStore{}
	svc, metrics := newShopService(orders)

	order, err := svc.Checkout(context.Background(), "u-1", []domain.CartItem{
		{ProductID: "vanix-website-starter", Qty: 2},
		{ProductID: "unknown", Qty: 1},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if order.Status != domain.OrderCompleted || order.UserID != "u-1" || order.ID == "" {
		t.Errorf("unexpected order: %+v", order)
	}
	if order.TotalEUR.String() != "298" {
		t.Errorf("expected total 298, got %s", order.TotalEUR)
	}
	if len(orders.orders) != 1 {
		t.Fatalf("expected order to be stored")
	}
	if metrics.Snapshot().OrdersCreated != 1 {
		t.Error("expected order to be counted")
	}
}

func TestCheckout_EmptyCart(t *testing.T) {
	orders := &mockOrderStore{}
	svc, _ := newShopService(orders)

	_, err := svc.Checkout(context.Background(), "u-1", []domain.CartItem{{ProductID: "unknown", Qty: 3}})
	var v *domain.ErrValidation
	if !errors.As(err, &v) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if len(orders.orders) != 0 {
		t.Error("expected nothing stored")
	}
}

func TestCheckout_StoreFailure(t *testing.T) {
	orders := &mockOrderStore{createErr: &domain.ErrExternalService{Service: "postgres", Err: errors.New("down")}}
	svc, metrics := newShopService(orders)

	_, err := svc.Checkout(context.Background(), "u-1", []domain.CartItem{{ProductID: "product1", Qty: 1}})
	var ext *domain.ErrExternalService
	if !errors.As(err, &ext) {
		t.Fatalf("expected ErrExternalService, got %v", err)
	}
	if metrics.Snapshot().OrdersCreated != 0 {
		t.Error("failed order must not be counted")
	}
}

func TestListMyOrders(t *testing.T) {
	orders := &mockOrderStore{orders: []domain.Order{{ID: "a", UserID: "u-1"}, {ID: "b", UserID: "u-2"}}}
	svc, _ := newShopService(orders)

	resp, err := svc.ListMyOrders(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(resp.Orders) != 1 || resp.Orders[0].ID != "a" {
		t.Errorf("unexpected orders: %+v", resp.Orders)
	}

	empty, _ := svc.ListMyOrders(context.Background(), "u-3")
	if empty.Orders == nil {
		t.Error("expected empty slice, got nil")
	}
}
