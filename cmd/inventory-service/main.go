package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/draftea/order-saga/inventory-service/config"
	"github.com/draftea/order-saga/shared/server"
	"github.com/draftea/order-saga/shared/telemetry"
)

func main() {
	// Load configuration
	cfg, err := config.ReadConfig()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := telemetry.InitLogger(cfg.ServiceName, cfg.LogLevel)
	logger.Info("starting service",
		slog.String("env", cfg.Env),
		slog.String("port", cfg.Port),
		slog.String("transport", cfg.Transport),
		slog.String("storage", cfg.Storage),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize dependencies
	deps, err := config.BuildDependencies(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to build dependencies", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := deps.Close(); err != nil {
			logger.Error("error closing dependencies", slog.String("error", err.Error()))
		}
	}()

	router := server.NewRouter(deps.Telemetry, deps.InventoryHandlers)
	if err := server.Run(ctx, ":"+cfg.Port, router, logger, deps.Transport.Start); err != nil {
		logger.Error("service stopped with error", slog.String("error", err.Error()))
		return
	}

	logger.Info("service stopped")
}
