package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/vanixstudio/vanix-bff/internal/domain"
	"github.com/vanixstudio/vanix-bff/internal/infra/observability"
	"github.com/vanixstudio/vanix-bff/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("handler")

// Pinger is a data backend that can report its reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Services are the use cases the router exposes. A nil service leaves its
// routes answering 503.
type Services struct {
	Auth      *service.AuthService
	Admin     *service.AdminService
	Shop      *service.ShopService
	Session   *service.SessionService
	Contact   *service.ContactService
	Portfolio *service.PortfolioService

	Backend     Pinger
	BackendName string
}

// Options tune transport details.
type Options struct {
	CORSOrigins  []string
	CookieSecure bool
	CookieTTL    time.Duration
}

// NewRouter creates the HTTP router with all routes and middleware.
func NewRouter(svc Services, opts Options, metrics *observability.Metrics, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	cookies := cookieConfig{secure: opts.CookieSecure, ttl: opts.CookieTTL}

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.Heartbeat("/ping"))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler(svc, logger))
	r.Get("/readyz", readyzHandler(svc, logger))
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {

		// =============================================
		// Auth
		// =============================================
		r.Route("/auth", func(r chi.Router) {
			if svc.Auth == nil {
				r.Handle("/*", unavailable("auth"))
				return
			}
			r.Post("/login", authLoginHandler(svc.Auth, cookies, logger))
			r.Post("/register", authRegisterHandler(svc.Auth, logger))
			r.Post("/logout", authLogoutHandler(cookies))
			r.Get("/me", authMeHandler(svc.Auth, logger))

			r.Group(func(r chi.Router) {
				r.Use(AuthMiddleware(svc.Auth, logger))
				r.Put("/profile", updateProfileHandler(svc.Auth, logger))
			})
		})

		// =============================================
		// Shop
		// =============================================
		if svc.Shop != nil {
			r.Get("/products", listProductsHandler(svc.Shop))
			r.Get("/products/{slug}", getProductHandler(svc.Shop, logger))
			r.Post("/cart/price", priceCartHandler(svc.Shop))

			r.Group(func(r chi.Router) {
				if svc.Auth == nil {
					r.Handle("/orders", unavailable("auth"))
					return
				}
				r.Use(AuthMiddleware(svc.Auth, logger))
				r.Post("/orders", checkoutHandler(svc.Shop, logger))
				r.Get("/orders", listMyOrdersHandler(svc.Shop, logger))
			})
		}

		// =============================================
		// Contact & portfolio
		// =============================================
		if svc.Contact != nil {
			r.Post("/contact", contactHandler(svc.Contact, logger))
		}
		if svc.Portfolio != nil {
			r.Get("/portfolio", listPortfolioHandler(svc.Portfolio, logger))
			if svc.Auth != nil {
				r.With(AuthMiddleware(svc.Auth, logger)).Post("/portfolio", createPortfolioHandler(svc.Portfolio, logger))
			}
		}

		// =============================================
		// Client storage snapshots
		// =============================================
		if svc.Session != nil {
			r.Post("/session/resolve", sessionResolveHandler(svc.Session))
			r.Post("/session/orders/series", sessionSeriesHandler(svc.Session, logger))
		}

		// =============================================
		// Admin dashboard
		// =============================================
		r.Route("/admin", func(r chi.Router) {
			if svc.Admin == nil || svc.Auth == nil {
				r.Handle("/*", unavailable("admin"))
				return
			}
			r.Use(AdminMiddleware(svc.Auth, logger))
			r.Get("/stats", adminStatsHandler(svc.Admin, logger))
			r.Get("/users", adminListUsersHandler(svc.Admin, logger))
			r.Patch("/users/role", adminSetRoleHandler(svc.Admin, logger))
			r.Get("/orders/series", adminOrderSeriesHandler(svc.Admin, logger))
			r.Get("/metrics", adminMetricsHandler(svc.Admin))
		})
	})

	return r
}

func unavailable(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusServiceUnavailable, name+" service unavailable: no data backend configured")
	}
}

// ============================================================
// Probes
// ============================================================

func healthzHandler(svc Services, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		services := []domain.ServiceHealth{{Name: "vanix-bff", Status: "healthy"}}

		if svc.Backend != nil {
			services = append(services, pingBackend(r, svc, logger))
		}

		overall := "healthy"
		for _, s := range services {
			if s.Status != "healthy" {
				overall = "degraded"
			}
		}

		writeJSON(w, http.StatusOK, domain.HealthStatus{
			Status:   overall,
			Backend:  svc.BackendName,
			Services: services,
		})
	}
}

func readyzHandler(svc Services, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc.Backend != nil {
			if h := pingBackend(r, svc, logger); h.Status != "healthy" {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready", "error": h.Error})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func pingBackend(r *http.Request, svc Services, logger *zap.Logger) domain.ServiceHealth {
	start := time.Now()
	err := svc.Backend.Ping(r.Context())
	h := domain.ServiceHealth{
		Name:      svc.BackendName,
		Status:    "healthy",
		LatencyMs: time.Since(start).Milliseconds(),
	}
	if err != nil {
		logger.Warn("backend ping failed", zap.String("backend", svc.BackendName), zap.Error(err))
		h.Status = "unhealthy"
		h.Error = err.Error()
	}
	return h
}
