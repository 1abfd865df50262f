package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vanixstudio/vanix-bff/internal/catalog"
	"github.com/vanixstudio/vanix-bff/internal/config"
	"github.com/vanixstudio/vanix-bff/internal/domain"
	"github.com/vanixstudio/vanix-bff/internal/handler"
	"github.com/vanixstudio/vanix-bff/internal/infra/cache"
	"github.com/vanixstudio/vanix-bff/internal/infra/observability"
	"github.com/vanixstudio/vanix-bff/internal/infra/postgres"
	"github.com/vanixstudio/vanix-bff/internal/infra/resilience"
	"github.com/vanixstudio/vanix-bff/internal/infra/supabase"
	"github.com/vanixstudio/vanix-bff/internal/port"
	"github.com/vanixstudio/vanix-bff/internal/service"

	"go.uber.org/zap"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = config.LoadDotEnv(".env")

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.Bool("use_supabase", cfg.UseSupabase),
		zap.Bool("database_configured", cfg.DatabaseURL != ""),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.Int("max_retries", cfg.MaxRetries),
		zap.Duration("initial_backoff", cfg.InitialBackoff),
		zap.Duration("jwt_ttl", cfg.JWTTTL),
		zap.Strings("cors_origins", cfg.CORSOrigins),
	)

	ctx := context.Background()

	// --- Tracing ---
	shutdown, err := observability.InitTracer(ctx, cfg.OTLPEndpoint, "vanix-bff")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Cache ---
	roleCache := cache.New[domain.Role](cfg.CacheTTL)
	defer roleCache.Close()
	statsCache := cache.New[*domain.AdminStats](cfg.CacheTTL)
	defer statsCache.Close()

	// --- Catalog ---
	cat := catalog.Default()
	if cfg.CatalogFile != "" {
		cat, err = catalog.LoadFile(cfg.CatalogFile)
		if err != nil {
			logger.Fatal("failed to load catalog", zap.String("path", cfg.CatalogFile), zap.Error(err))
		}
	}
	logger.Info("catalog loaded", zap.Int("products", cat.Len()))

	// --- Data backend ---
	var (
		backend     port.Backend
		auth        port.AuthProvider
		backendName string
	)

	switch {
	case cfg.SupabaseEnabled():
		logger.Info("using Supabase as data backend", zap.String("supabase_url", cfg.SupabaseURL))
		sb := supabase.NewClient(
			&http.Client{Timeout: cfg.HTTPTimeout},
			cfg.SupabaseURL,
			cfg.SupabaseAnonKey,
			cfg.SupabaseServiceKey,
			resilience.NewCircuitBreaker("supabase"),
			resilience.Config{
				MaxRetries:     cfg.MaxRetries,
				InitialBackoff: cfg.InitialBackoff,
				MaxConcurrency: cfg.MaxConcurrency,
			},
			metrics,
			logger,
		)
		backend, auth, backendName = sb, sb, "supabase"

	case cfg.DatabaseURL != "":
		logger.Info("using Postgres as data backend")
		db, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("failed to open database", zap.Error(err))
		}
		defer db.Close()
		if err := postgres.Migrate(ctx, db); err != nil {
			logger.Fatal("failed to migrate database", zap.Error(err))
		}
		if cfg.JWTSecret == config.DefaultJWTSecret {
			logger.Warn("JWT_SECRET is the development default")
		}
		store := postgres.New(db)
		backend, auth, backendName = store, service.NewLocalAuth(store, cfg.JWTSecret, cfg.JWTTTL, logger), "postgres"

	default:
		logger.Warn("no data backend configured, auth, orders and admin routes unavailable")
	}

	// --- Services ---
	svcs := handler.Services{
		Shop:    service.NewShopService(cat, backend, metrics, logger),
		Session: service.NewSessionService(metrics, logger),
	}
	if backend != nil {
		svcs.Auth = service.NewAuthService(auth, backend, roleCache, metrics, logger)
		svcs.Admin = service.NewAdminService(backend, backend, roleCache, statsCache, metrics, logger)
		svcs.Contact = service.NewContactService(backend, logger)
		svcs.Portfolio = service.NewPortfolioService(backend, logger)
		svcs.Backend = backend
		svcs.BackendName = backendName
	}

	// --- Router ---
	router := handler.NewRouter(svcs, handler.Options{
		CORSOrigins:  cfg.CORSOrigins,
		CookieSecure: cfg.CookieSecure,
		CookieTTL:    cfg.JWTTTL,
	}, metrics, logger)

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port), zap.String("backend", backendName))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
