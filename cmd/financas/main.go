package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/Andreprogdev/minhasfinancas-api/internal/amqp"
	"github.com/Andreprogdev/minhasfinancas-api/internal/config"
	apphttp "github.com/Andreprogdev/minhasfinancas-api/internal/http"
	"github.com/Andreprogdev/minhasfinancas-api/internal/ledger"
	"github.com/Andreprogdev/minhasfinancas-api/internal/ledger/memory"
	applog "github.com/Andreprogdev/minhasfinancas-api/internal/log"
	"github.com/Andreprogdev/minhasfinancas-api/internal/storage"
)

func main() {
	// .env is for local development; absence is fine in production.
	_ = godotenv.Load()

	logger := applog.New(applog.ComponentApp, slog.LevelInfo)
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("configuration validation failed", "error", err)
		os.Exit(1)
	}

	var (
		entryRepo ledger.EntryRepository
		userRepo  ledger.UserRepository
	)
	switch cfg.DataBackend {
	case "sqlite":
		repo, err := storage.NewRepository(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("failed to initialize sqlite storage", "error", err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		defer repo.Close()
		entryRepo, userRepo = repo.Entries(), repo.Users()
		logger.Info("initialized sqlite backend", "path", cfg.SQLiteDBPath)
	default:
		entryRepo, userRepo = memory.NewEntryStore(), memory.NewUserStore()
		logger.Info("initialized memory backend")
	}

	var events ledger.EventPublisher
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		events = client
		logger.Info("entry events enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("entry events disabled, no AMQP_URL provided")
	}

	entries := ledger.NewEntryService(entryRepo, events)
	users := ledger.NewUserService(userRepo)
	tokens := apphttp.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	server := apphttp.NewServer(entries, users, tokens, logger)
	srv := server.HTTPServer(":"+cfg.Port, cfg.CORSOrigins)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting server", "port", cfg.Port, "backend", cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped gracefully")
}
