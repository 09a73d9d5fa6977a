package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/config"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/database"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/events"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/logging"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/portals"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/portals/registry"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/prediction"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/routes"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	cfg := config.Load()

	// Structured logging (JSON to stdout)
	stdoutHandler := logging.Setup(cfg.LogLevel)

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.MigrateShared(database.DB); err != nil {
		slog.Error("shared migration failed", "error", err)
		os.Exit(1)
	}

	// ERROR+ records are also batched into system_logs
	dbLogHandler := logging.NewDBHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(stdoutHandler, dbLogHandler)))

	retentionDone := make(chan struct{})
	logging.StartRetention(database.DB, cfg.LogRetentionDays, retentionDone)

	// Notification fan-out
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.AMQPURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		amqpPublisher, err := events.DialAMQP(ctx, cfg.AMQPURL, cfg.NotificationExchange)
		cancel()
		if err != nil {
			slog.Error("amqp unavailable, notifications will not be fanned out", "error", err)
		} else {
			publisher = amqpPublisher
		}
	}

	// Services
	authService := services.NewAuthService(database.DB, cfg)
	notificationService := services.NewNotificationService(database.DB, publisher)
	messageService := services.NewMessageService(database.DB)

	// Portals
	portalList := registry.All(notificationService, messageService, prediction.NewRandomPredictor())
	if err := portals.Migrate(database.DB, portalList, database.MigrateModels); err != nil {
		slog.Error("portal migration failed", "error", err)
		os.Exit(1)
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	healthHandler := handlers.NewHealthHandler(database.DB)

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

	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecureHeaders())

	routes.Setup(app, cfg, database.DB, authHandler, healthHandler, portalList)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv)
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

	close(retentionDone)
	if err := publisher.Close(); err != nil {
		slog.Error("publisher close error", "error", err)
	}
	dbLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := database.Close(database.DB); err != nil {
		slog.Error("database close error", "error", err)
	}

	slog.Info("server stopped")
}
