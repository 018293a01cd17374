package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"rattan-bot/internal/bot"
	"rattan-bot/internal/catalog"
	"rattan-bot/internal/config"
	"rattan-bot/internal/order"
	"rattan-bot/internal/storage/postgres"
	redisstorage "rattan-bot/internal/storage/redis"
	"rattan-bot/pkg/logger"
	"rattan-bot/pkg/redis"
	"rattan-bot/pkg/webhook"
)

// ENTRY POINT

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	zapLogger, err := logger.New(cfg.LogLevel, cfg.TelegramDebug)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer zapLogger.Sync()

	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	if err := run(ctx, cfg, zapLogger); err != nil {
		zapLogger.Fatal("Bot stopped with error", zap.Error(err))
	}

	zapLogger.Info("Bot shutdown gracefully")
}

func run(ctx context.Context, cfg *config.Config, zapLogger *zap.Logger) error {
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return err
	}
	zapLogger.Info("Catalog loaded",
		zap.String("path", cfg.CatalogPath),
		zap.Int("items", cat.Len()))

	store, closeStore, err := newSessionStore(ctx, cfg, zapLogger)
	if err != nil {
		return err
	}
	defer closeStore()

	var (
		sinks   order.Submitters
		botOpts []bot.Option
	)

	if cfg.WebhookURL != "" {
		client := webhook.NewClient(cfg.WebhookURL, cfg.SubmitTimeout, zapLogger)
		sinks = append(sinks, order.SubmitterFunc(func(ctx context.Context, p order.Payload) error {
			return client.Send(ctx, p)
		}))
	}

	if cfg.DatabaseDSN != "" {
		archive, err := postgres.NewArchive(ctx, cfg.DatabaseDSN, zapLogger)
		if err != nil {
			return fmt.Errorf("failed to init order archive: %w", err)
		}
		defer archive.Close()

		sinks = append(sinks, archive)
		botOpts = append(botOpts, bot.WithStats(archive))
	}

	if !cfg.HasSink() {
		zapLogger.Warn("No order sink configured, confirmed orders are only logged")
	}

	engine := order.NewEngine(cat, store, sinks, zapLogger, order.WithSubmitTimeout(cfg.SubmitTimeout))

	tgBot, err := bot.New(ctx, cfg, engine, cat, zapLogger, botOpts...)
	if err != nil {
		return fmt.Errorf("failed to create bot: %w", err)
	}

	return tgBot.Start(ctx)
}

func newSessionStore(ctx context.Context, cfg *config.Config, zapLogger *zap.Logger) (order.Store, func(), error) {
	if cfg.SessionBackend != config.BackendRedis {
		zapLogger.Info("Using in-memory session store")
		return order.NewMemoryStore(), func() {}, nil
	}

	redisClient := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err := redisClient.WaitReady(ctx, cfg.StartupTimeout, zapLogger); err != nil {
		redisClient.Close()
		return nil, nil, fmt.Errorf("redis not ready: %w", err)
	}

	zapLogger.Info("Using redis session store",
		zap.String("addr", cfg.RedisAddr),
		zap.Duration("ttl", cfg.SessionTTL))

	return redisstorage.New(redisClient, cfg.SessionTTL), redisClient.Close, nil
}
