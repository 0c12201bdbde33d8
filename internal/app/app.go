package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"usdtcalc/internal/access"
	"usdtcalc/internal/adapters"
	"usdtcalc/internal/adapters/cache"
	"usdtcalc/internal/adapters/kafka"
	"usdtcalc/internal/adapters/postgres"
	"usdtcalc/internal/adapters/telegram"
	"usdtcalc/internal/api"
	"usdtcalc/internal/api/handler"
	"usdtcalc/internal/bot"
	"usdtcalc/internal/config"
	"usdtcalc/internal/platform/db"
	httpserver "usdtcalc/internal/platform/http"
	"usdtcalc/internal/pricing"
	"usdtcalc/internal/stats"

	"github.com/sirupsen/logrus"
)

// Run wires the application components, starts the bot, HTTP server and scheduler
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	// Logger
	if logFile := setupLogger(appCfg.Logging); logFile != nil {
		defer func() { _ = logFile.Close() }()
	}
	logrus.Info("✅ Config initialization successful")

	adminIDs, err := appCfg.Telegram.ParsedAdminIDs()
	if err != nil {
		return err
	}
	if len(adminIDs) == 0 {
		logrus.Warn("No admin user ids configured, admin commands are disabled")
	}

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Bounded context for startup operations (DB connect, migrations, seeding)
	startupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	// DB pool
	pool, err := db.CreatePoolAndPing(startupCtx, appCfg.DbServer)
	if err != nil {
		logrus.WithError(err).Error("Error connecting to db")
		return err
	}
	defer pool.Close()
	logrus.Info("✅ Postgres connection successful")

	if err = db.Migrate(startupCtx, appCfg.DbServer); err != nil {
		logrus.WithError(err).Error("Failed to apply migrations")
		return err
	}
	logrus.Info("✅ Migrations applied")

	// Repositories and cache
	rateRepo := postgres.NewRateRepository(pool)
	feeRepo := postgres.NewFeeRepository(pool)
	txRepo := postgres.NewTransactionRepository(pool)

	configCache, err := cache.NewConfigCache(appCfg.Cache.MaxItems, time.Duration(appCfg.Cache.TTLSeconds)*time.Second)
	if err != nil {
		return err
	}
	defer configCache.Close()

	// Configuration store with seeded defaults
	store := pricing.NewStore(rateRepo, feeRepo, configCache)
	buy, sell, schedule, err := parseDefaults(appCfg.Defaults)
	if err != nil {
		return err
	}
	if err = store.SeedDefaults(startupCtx, buy, sell, schedule); err != nil {
		logrus.WithError(err).Error("Failed to seed default configuration")
		return err
	}
	logrus.Info("✅ Pricing configuration ready")

	// Event publisher
	publisher, err := newPublisher(appCfg.Kafka)
	if err != nil {
		logrus.WithError(err).Error("Failed to create kafka producer")
		return err
	}
	defer func() {
		if closeErr := publisher.Close(); closeErr != nil {
			logrus.WithError(closeErr).Error("Kafka producer close error")
		}
	}()

	// Services
	accumulator := stats.NewAccumulator(txRepo, publisher)
	engine := pricing.NewEngine(store, pricing.NewCalculator(appCfg.Calculation.Precision), accumulator)
	gate := access.NewGate(adminIDs)
	botService := bot.NewService(store, engine, accumulator, gate)
	dispatcher := bot.NewDispatcher(botService, appCfg.Calculation.CurrencySymbol, appCfg.Calculation.Precision)

	scheduler := stats.NewScheduler(accumulator, time.Duration(appCfg.Scheduler.ReconcileIntervalSec)*time.Second)
	// Ensure scheduler stops before DB pool closes
	defer func() {
		if shutDownErr := scheduler.Shutdown(); shutDownErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", shutDownErr)
		}
	}()
	// Start scheduler tied to root context
	if startErr := scheduler.Start(ctx); startErr != nil {
		logrus.WithError(startErr).Error("Failed to start scheduler")
		return startErr
	}
	logrus.Info("✅ Scheduler activation successful")

	// Telegram bot
	botAPI, err := telegram.NewBot(appCfg.Telegram.Token, appCfg.Telegram.Debug)
	if err != nil {
		logrus.WithError(err).Error("Failed to connect to telegram")
		return err
	}
	runner := telegram.NewRunner(botAPI, dispatcher, appCfg.Telegram.Workers, appCfg.Telegram.PollTimeoutSeconds)
	botDone := make(chan error, 1)
	go func() {
		botDone <- runner.Run(ctx)
	}()
	logrus.Info("✅ Telegram bot polling started")

	// Handlers and router
	router := api.NewRouter(handler.NewHandler(store, accumulator))

	logrus.Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router)
	if serverErr != nil {
		logrus.Errorf("HTTP server error: %v", serverErr)
	}
	// Cancel the root context to stop the bot and scheduler, then wait for in-flight messages
	stop()
	if botErr := <-botDone; botErr != nil && !errors.Is(botErr, context.Canceled) {
		logrus.WithError(botErr).Error("Telegram bot stopped with error")
	}
	logrus.Info("Shutdown complete")
	return serverErr
}

func newPublisher(cfg config.Kafka) (adapters.TransactionPublisher, error) {
	if !cfg.Enabled {
		logrus.Info("Kafka publishing disabled")
		return kafka.NoOpProducer{}, nil
	}
	producer, err := kafka.NewProducer(cfg.Brokers, cfg.Topic)
	if err != nil {
		return nil, err
	}
	logrus.WithField("topic", cfg.Topic).Info("✅ Kafka producer ready")
	return producer, nil
}
