package handler

import (
	"net/http"

	"github.com/vanixstudio/vanix-bff/internal/domain"
	"github.com/vanixstudio/vanix-bff/internal/service"

	"go.uber.org/zap"
)

func contactHandler(contactSvc *service.ContactService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/contact")
		defer span.End()

		var req domain.ContactRequest
		if !decodeBody(w, r, &req) {
			return
		}

		resp, err := contactSvc.Submit(ctx, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func listPortfolioHandler(portfolioSvc *service.PortfolioService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/portfolio")
		defer span.End()

		filter := domain.PortfolioFilter{
			FeaturedOnly: queryBool(r, "featured"),
			Category:     r.URL.Query().Get("category"),
		}

		resp, err := portfolioSvc.List(ctx, filter)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func createPortfolioHandler(portfolioSvc *service.PortfolioService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/portfolio")
		defer span.End()

		var req domain.CreatePortfolioRequest
		if !decodeBody(w, r, &req) {
			return
		}

		item, err := portfolioSvc.Create(ctx, UserIDFromContext(ctx), &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusCreated, item)
	}
}
