package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	tele "gopkg.in/telebot.v3"

	"github.com/gitkachoda/tg-api-hitter/internal/config"
	"github.com/gitkachoda/tg-api-hitter/internal/fetch"
	"github.com/gitkachoda/tg-api-hitter/internal/handler"
	"github.com/gitkachoda/tg-api-hitter/internal/repository/memory"
	"github.com/gitkachoda/tg-api-hitter/internal/resolver"
	"github.com/gitkachoda/tg-api-hitter/internal/scheduler"
	"github.com/gitkachoda/tg-api-hitter/internal/server"
	"github.com/gitkachoda/tg-api-hitter/internal/service"
	"github.com/gitkachoda/tg-api-hitter/internal/telegram"
	"github.com/gitkachoda/tg-api-hitter/internal/telemetry"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting service",
		zap.String("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.String("bot_token", cfg.MaskedToken()),
		zap.Bool("webhook_mode", cfg.WebhookMode()),
	)

	telemetry.Init()

	// Initialize repositories
	userRepo := memory.NewUserConfigRepo()
	seenRepo := memory.NewSeenRepo()

	// Choose update ingestion: webhook queue or long-polling
	var poller tele.Poller
	var queue *server.QueuePoller
	if cfg.WebhookMode() {
		queue = server.NewQueuePoller()
		poller = queue
	} else {
		poller = &tele.LongPoller{Timeout: 10 * time.Second}
	}

	// Initialize Telegram bot
	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.BotToken,
		Poller: poller,
		OnError: func(err error, c tele.Context) {
			logger.Error("Handler error", zap.Error(err))
		},
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	logger.Info("Telegram bot initialized")

	// Initialize services
	messenger := telegram.NewMessenger(bot)
	configService := service.NewConfigService(userRepo, seenRepo)
	deleteScheduler := scheduler.New(messenger, logger, cfg.DeleteAfter)
	relayService := service.NewRelayService(
		messenger,
		resolver.NewClient(logger),
		fetch.NewFetcher(logger),
		deleteScheduler,
		logger,
	)

	// Initialize handler
	h := handler.NewHandler(bot, configService, relayService, logger)
	h.RegisterHandlers()

	logger.Info("Handlers registered")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start deletion scheduler loop in background
	go deleteScheduler.Run(ctx)

	// Start HTTP server (webhook endpoint in webhook mode; health and
	// metrics in both modes)
	srv := server.New(cfg.ListenAddr(), queue, logger)
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", cfg.ListenAddr()))
		if err := srv.Start(); err != nil {
			logger.Error("HTTP server stopped", zap.Error(err))
		}
	}()

	// Webhook reset & set once at startup
	if cfg.WebhookMode() {
		if err := registerWebhook(bot, cfg.WebhookURL, logger); err != nil {
			logger.Error("Failed to set webhook", zap.Error(err))
		}
	} else {
		// A lingering webhook registration blocks long-polling.
		if _, err := bot.Raw("deleteWebhook", map[string]string{}); err != nil {
			logger.Warn("Failed to delete webhook", zap.Error(err))
		}
	}

	// Start bot in background
	go func() {
		logger.Info("Bot started successfully")
		bot.Start()
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping bot...")

	// Graceful shutdown
	bot.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP server shutdown error", zap.Error(err))
	}

	cancel()

	logger.Info("Bot stopped gracefully")
}

// newLogger builds a production zap logger at the configured level.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}

// registerWebhook deletes any existing webhook and registers url, so a
// stale registration never lingers across restarts.
func registerWebhook(bot *tele.Bot, url string, logger *zap.Logger) error {
	if _, err := bot.Raw("deleteWebhook", map[string]string{}); err != nil {
		logger.Warn("Failed to delete existing webhook", zap.Error(err))
	}

	if _, err := bot.Raw("setWebhook", map[string]string{"url": url}); err != nil {
		return err
	}

	logger.Info("Webhook set", zap.String("url", url))
	return nil
}
