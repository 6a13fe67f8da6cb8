package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/shopspring/decimal"

	"github.com/dukerupert/tantuka/internal"
	"github.com/dukerupert/tantuka/internal/auth"
	"github.com/dukerupert/tantuka/internal/bootstrap"
	"github.com/dukerupert/tantuka/internal/handler/api"
	"github.com/dukerupert/tantuka/internal/middleware"
	"github.com/dukerupert/tantuka/internal/repository"
	"github.com/dukerupert/tantuka/internal/router"
	"github.com/dukerupert/tantuka/internal/routes"
	"github.com/dukerupert/tantuka/internal/service"
	"github.com/dukerupert/tantuka/internal/telemetry"
)

const shutdownTimeout = 15 * time.Second

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Error reporting
	flushSentry, err := telemetry.InitSentry(telemetry.SentryConfig{
		DSN:              cfg.Sentry.DSN,
		Environment:      cfg.Env,
		Release:          cfg.Version,
		TracesSampleRate: cfg.Sentry.TracesSampleRate,
	}, logger)
	if err != nil {
		return err
	}
	defer flushSentry()

	// Prices are rendered as JSON numbers, not strings
	decimal.MarshalJSONWithoutQuotes = true

	// Initialize database/sql connection for migrations
	logger.Info("Connecting to database...")
	sqlDB, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	logger.Info("Database connection established")

	// Run migrations
	logger.Info("Running database migrations...")
	schemaVersion, err := internal.RunMigrations(ctx, sqlDB, logger)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("Database migrations completed successfully", "schema_version", schemaVersion)

	// Initialize pgx connection pool for application
	pool, err := pgxpool.New(ctx, cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	store := repository.NewStore(pool)

	// Initialize services
	tokens, err := auth.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.Algorithm, cfg.JWT.AccessTokenTTL)
	if err != nil {
		return fmt.Errorf("failed to initialize token issuer: %w", err)
	}

	userService := service.NewUserService(store, tokens)
	productService := service.NewProductService(store)
	categoryService := service.NewCategoryService(store)
	cartService := service.NewCartService(store)
	dashboardService := service.NewDashboardService(store, cfg.Version, cfg.Admin.Email)

	// Bootstrap the initial admin account
	adminCfg := &bootstrap.AdminConfig{
		Email:     cfg.Admin.Email,
		Password:  cfg.Admin.Password,
		FirstName: cfg.Admin.FirstName,
		LastName:  cfg.Admin.LastName,
	}
	if err := bootstrap.EnsureAdmin(ctx, userService, adminCfg, logger); err != nil {
		return fmt.Errorf("admin bootstrap failed: %w", err)
	}

	// ==========================================================================
	// Initialize middleware
	// ==========================================================================

	metrics := middleware.NewMetrics(cfg.MetricsNamespace)
	telemetry.InitBusinessMetrics(cfg.MetricsNamespace)

	securityConfig := middleware.DefaultSecurityHeadersConfig()
	if cfg.Env == "dev" {
		securityConfig.HSTSMaxAge = 0 // Disable HSTS in development
	}

	authRateLimiter := middleware.NewRateLimiter(middleware.AuthRateLimiterConfig())
	defer authRateLimiter.Stop()

	// ==========================================================================
	// Create router and register routes
	// ==========================================================================

	r := router.New(
		router.Recovery(logger),
		telemetry.SentryMiddleware,
		middleware.RequestID,
		metrics.Middleware,
		middleware.SecurityHeaders(securityConfig),
		middleware.MaxBodySize(middleware.DefaultMaxBodySize),
		middleware.Timeout(middleware.DefaultTimeout),
		router.Logger(logger),
		middleware.WithRequestLogger(logger),
	)

	routes.RegisterSystemRoutes(r, routes.SystemDeps{
		Metrics: metrics.Handler(),
		Ping:    store.Ping,
	})
	routes.RegisterAPIRoutes(r, routes.APIDeps{
		Users:           userService,
		AuthRateLimiter: authRateLimiter,
		AuthHandler:     api.NewAuthHandler(userService),
		UserHandler:     api.NewUserHandler(userService),
		ProductHandler:  api.NewProductHandler(productService),
		CategoryHandler: api.NewCategoryHandler(categoryService),
		CartHandler:     api.NewCartHandler(cartService),
		AdminHandler:    api.NewAdminHandler(dashboardService),
	})

	// ==========================================================================
	// Start server
	// ==========================================================================

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router.CORS(cfg.CORS.AllowedOrigins)(r),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      middleware.DefaultTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "address", srv.Addr, "env", cfg.Env, "version", cfg.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("Server stopped")

	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
