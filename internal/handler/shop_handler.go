package handler

import (
	"net/http"

	"github.com/vanixstudio/vanix-bff/internal/domain"
	"github.com/vanixstudio/vanix-bff/internal/service"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Shop
// ============================================================

func listProductsHandler(shopSvc *service.ShopService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/products")
		defer span.End()

		q := r.URL.Query()
		filter := domain.ProductFilter{
			Query:        q.Get("q"),
			Category:     q.Get("category"),
			FeaturedOnly: queryBool(r, "featured"),
			Sort:         q.Get("sort"),
		}

		writeJSON(w, http.StatusOK, shopSvc.ListProducts(ctx, filter))
	}
}

func getProductHandler(shopSvc *service.ShopService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/products/{slug}")
		defer span.End()

		slug := chi.URLParam(r, "slug")
		span.SetAttributes(attribute.String("product.slug", slug))

		p, err := shopSvc.GetProduct(ctx, slug)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, p)
	}
}

func priceCartHandler(shopSvc *service.ShopService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/cart/price")
		defer span.End()

		var req domain.CartRequest
		if !decodeBody(w, r, &req) {
			return
		}

		writeJSON(w, http.StatusOK, shopSvc.PriceCart(ctx, req.Items))
	}
}

func checkoutHandler(shopSvc *service.ShopService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/orders")
		defer span.End()

		var req domain.CartRequest
		if !decodeBody(w, r, &req) {
			return
		}

		order, err := shopSvc.Checkout(ctx, UserIDFromContext(ctx), req.Items)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusCreated, order)
	}
}

func listMyOrdersHandler(shopSvc *service.ShopService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/orders")
		defer span.End()

		resp, err := shopSvc.ListMyOrders(ctx, UserIDFromContext(ctx))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, resp)
	}
}
