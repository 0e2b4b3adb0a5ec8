package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/diagnoai/diagno-backend/internal/config"
	"github.com/diagnoai/diagno-backend/internal/database"
	"github.com/diagnoai/diagno-backend/internal/handlers"
	"github.com/diagnoai/diagno-backend/internal/logging"
	"github.com/diagnoai/diagno-backend/internal/middleware"
	"github.com/diagnoai/diagno-backend/internal/observability"
	"github.com/diagnoai/diagno-backend/internal/repository"
	"github.com/diagnoai/diagno-backend/internal/repository/memstore"
	"github.com/diagnoai/diagno-backend/internal/routes"
	"github.com/diagnoai/diagno-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := config.Load()

	// Structured logging (JSON to stdout)
	logging.Setup(cfg.AppEnv)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	accessMode, err := services.ParseAccessMode(cfg.ReportAccessMode)
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Storage
	var (
		stores       repository.Stores
		ping         func() error
		pgLogHandler *logging.PGHandler
		cleanupDone  = make(chan struct{})
	)
	if cfg.UsesPostgres() {
		if err := database.Connect(cfg); err != nil {
			slog.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		if err := database.Migrate(database.DB); err != nil {
			slog.Error("migration failed", "error", err)
			os.Exit(1)
		}
		stores = repository.NewGormStores(database.DB)
		ping = database.Ping

		// PostgreSQL log handler (ERROR+ async batch)
		pgLogHandler = logging.NewPGHandler(database.DB)
		logging.Attach(cfg.AppEnv, pgLogHandler)

		logging.StartCleanup(database.DB, cfg.LogRetentionDays, cleanupDone)
	} else {
		slog.Warn("using in-memory storage, data is lost on restart")
		stores = memstore.New().Stores()
	}

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)

	// Services
	accessService := services.NewAccessService(stores.Relatives, stores.Reports, accessMode)
	authService := services.NewAuthService(stores.Users, accessService, cfg)
	relativeService := services.NewRelativeService(stores.Relatives)
	reportService := services.NewReportService(stores.Users, stores.Reports, accessService)
	predictionService := services.NewPredictionService(cfg, reportService, metrics)
	userService := services.NewUserService(stores.Users)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	reportHandler := handlers.NewReportHandler(reportService)
	predictHandler := handlers.NewPredictHandler(predictionService)
	userHandler := handlers.NewUserHandler(userService, relativeService)
	healthHandler := handlers.NewHealthHandler(cfg.DBDriver, ping)

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
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
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, authHandler, reportHandler, predictHandler, userHandler, healthHandler, promhttp.Handler())

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting",
			"port", cfg.Port,
			"driver", cfg.DBDriver,
			"prediction_api", cfg.PredictionAPIURL,
			"report_access_mode", string(accessMode),
		)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	close(cleanupDone)
	if pgLogHandler != nil {
		pgLogHandler.Stop()
	}
	sentry.Flush(2 * time.Second)

	// Close database connections
	if cfg.UsesPostgres() {
		if err := database.Close(); err != nil {
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
