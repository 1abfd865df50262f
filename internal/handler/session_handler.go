package handler

import (
	"net/http"

	"github.com/vanixstudio/vanix-bff/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Client storage snapshots
// ============================================================

func sessionResolveHandler(sessionSvc *service.SessionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/session/resolve")
		defer span.End()

		var snapshot map[string]any
		if !decodeBody(w, r, &snapshot) {
			return
		}

		writeJSON(w, http.StatusOK, sessionSvc.Resolve(ctx, snapshot))
	}
}

func sessionSeriesHandler(sessionSvc *service.SessionService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/session/orders/series")
		defer span.End()

		var snapshot map[string]any
		if !decodeBody(w, r, &snapshot) {
			return
		}

		resp, err := sessionSvc.SeriesFromSnapshot(ctx, snapshot, r.URL.Query().Get("range"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, resp)
	}
}
