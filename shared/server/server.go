package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/draftea/order-saga/shared/telemetry"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 30 * time.Second

// Routes registers service routes on the base router
type Routes interface {
	RegisterRoutes(r chi.Router)
}

// NewRouter returns a chi router with the common middleware stack plus the
// /health and /metrics endpoints
func NewRouter(tel *telemetry.Telemetry, routes ...Routes) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	if tel != nil {
		r.Use(telemetry.Middleware(tel))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Handle("/metrics", NewMetricsHandler())

	for _, route := range routes {
		route.RegisterRoutes(r)
	}

	return r
}

// NewMetricsHandler creates a new Prometheus metrics handler
func NewMetricsHandler() http.Handler {
	return promhttp.Handler()
}

// Run serves handler on addr until ctx is cancelled, then shuts the server
// down gracefully. starters run once before the server accepts requests.
func Run(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger, starters ...func(context.Context) error) error {
	for _, start := range starters {
		if err := start(ctx); err != nil {
			return err
		}
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.InfoContext(gctx, "http server listening", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "failed to start server")
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "server forced to shutdown")
		}
		return nil
	})

	return g.Wait()
}
