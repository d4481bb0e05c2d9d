package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/ozanatli/microsite-backend/internal/access"
	"github.com/ozanatli/microsite-backend/internal/cache"
	"github.com/ozanatli/microsite-backend/internal/config"
	"github.com/ozanatli/microsite-backend/internal/database"
	"github.com/ozanatli/microsite-backend/internal/editor"
	"github.com/ozanatli/microsite-backend/internal/handlers"
	"github.com/ozanatli/microsite-backend/internal/logging"
	"github.com/ozanatli/microsite-backend/internal/middleware"
	"github.com/ozanatli/microsite-backend/internal/notify"
	"github.com/ozanatli/microsite-backend/internal/routes"
	"github.com/ozanatli/microsite-backend/internal/services"
	"github.com/ozanatli/microsite-backend/internal/store"
	"github.com/ozanatli/microsite-backend/internal/uploader"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		pgLogHandler,
	)))

	// Log cleanup (30-day retention)
	logCleanup := logging.StartCleanup(database.DB)

	// Stores and collaborators
	st := store.NewGormStore(database.DB)
	resolver := access.NewResolver(st)
	siteCache := cache.New(cfg)
	notifier := notify.New(cfg)
	uploads := uploader.NewHTTPClient(cfg)

	// Editing session registry with idle eviction
	registry := editor.NewRegistry(cfg.SessionTTL)
	sweepDone := make(chan struct{})
	registry.StartSweep(sweepDone)

	// Services
	authService := services.NewAuthService(database.DB, cfg)
	tenantService := services.NewTenantService(st, siteCache)
	leadService := services.NewLeadService(st, notifier)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	healthHandler := handlers.NewHealthHandler()
	adminTenants := handlers.NewAdminTenantsHandler(tenantService)
	dashboardSite := handlers.NewDashboardSiteHandler(tenantService)
	dashboardSessions := handlers.NewDashboardSessionsHandler(tenantService, registry, uploads)
	dashboardLeads := handlers.NewDashboardLeadsHandler(leadService)
	publicSite := handlers.NewPublicSiteHandler(tenantService, leadService)

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    16 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, resolver, authHandler, healthHandler, adminTenants, dashboardSite, dashboardSessions, dashboardLeads, publicSite)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(sweepDone)
	logCleanup.Stop()
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if err := siteCache.Close(); err != nil {
		slog.Error("cache close error", "error", err)
	}

	// Close database connections
	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
