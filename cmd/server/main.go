package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/vanshika/filmgraph/internal/app"
	"github.com/vanshika/filmgraph/internal/config"
	"github.com/vanshika/filmgraph/internal/logging"
	"github.com/vanshika/filmgraph/internal/server"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging)
	defer func() { _ = logger.Sync() }()

	catalog, err := app.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open catalog", zap.Error(err))
		os.Exit(1)
	}
	defer func() {
		if err := catalog.Close(context.Background()); err != nil {
			logger.Warn("closing graph driver failed", zap.Error(err))
		}
	}()

	deps := server.RouterDependencies{
		Health:           server.GraphHealthService{Driver: catalog.Driver},
		API:              server.NewAPIHandlers(logger, catalog.Service),
		AllowedOrigins:   cfg.HTTP.AllowedOrigins(),
		AllowCredentials: true,
	}
	if cfg.HTTP.MetricsEnabled {
		deps.Metrics = catalog.Metrics
	}

	srv := server.New(logger, cfg.HTTP, server.NewRouter(logger, deps))

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("server stopped unexpectedly", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
