package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/draftea/order-saga/shared/server"
	"github.com/draftea/order-saga/shared/telemetry"
)

func main() {
	logger := telemetry.InitLogger("saga-local", os.Getenv("SAGA_LOCAL_LOG_LEVEL"))

	port := os.Getenv("SAGA_LOCAL_PORT")
	if port == "" {
		port = "8080"
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, logger, defaultStock)
	if err != nil {
		logger.Error("failed to build services", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := a.close(); err != nil {
			logger.Error("error closing services", slog.String("error", err.Error()))
		}
	}()

	logger.Info("starting saga in a single process", slog.String("port", port))
	if err := server.Run(ctx, ":"+port, a.router, logger); err != nil {
		logger.Error("saga-local stopped with error", slog.String("error", err.Error()))
		return
	}

	logger.Info("saga-local stopped")
}
