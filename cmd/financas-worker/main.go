package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/Andreprogdev/minhasfinancas-api/internal/amqp"
	"github.com/Andreprogdev/minhasfinancas-api/internal/config"
	"github.com/Andreprogdev/minhasfinancas-api/internal/ledger"
	applog "github.com/Andreprogdev/minhasfinancas-api/internal/log"
	"github.com/Andreprogdev/minhasfinancas-api/internal/storage"
	"github.com/Andreprogdev/minhasfinancas-api/internal/worker"
)

// The worker keeps the user_balances summary table current: it consumes entry
// events from RabbitMQ and runs a periodic full refresh for anything missed.
func main() {
	_ = godotenv.Load()

	logger := applog.New(applog.ComponentWorker, slog.LevelInfo)
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("configuration validation failed", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the balance worker")
		os.Exit(1)
	}

	repo, err := storage.NewRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("failed to initialize sqlite storage", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	// No publisher here: the worker only reads the ledger.
	entries := ledger.NewEntryService(repo.Entries(), nil)
	balanceWorker := worker.NewBalanceWorker(entries, repo.Balances(), cfg.RefreshInterval)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Catch up on anything that changed while the worker was down.
	logger.Info("running startup refresh")
	if err := balanceWorker.RefreshAll(ctx); err != nil {
		logger.Error("startup refresh failed", "error", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return amqpClient.ConsumeEntryEvents(ctx, balanceWorker.HandleEntryEvent)
	})
	g.Go(func() error {
		return balanceWorker.Run(ctx)
	})

	logger.Info("balance worker started",
		"queue", cfg.AMQPQueue,
		"refresh_interval", cfg.RefreshInterval.String())

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker error", "error", err)
		os.Exit(1)
	}
	logger.Info("worker stopped gracefully")
}
