package main

import (
	"context"
	"log/slog"
	"net/http"

	inventoryapp "github.com/draftea/order-saga/inventory-service/application"
	inventoryconfig "github.com/draftea/order-saga/inventory-service/config"
	orchestratorconfig "github.com/draftea/order-saga/orchestrator-service/config"
	orderconfig "github.com/draftea/order-saga/order-service/config"
	paymentconfig "github.com/draftea/order-saga/payment-service/config"
	sharedconfig "github.com/draftea/order-saga/shared/config"
	sharedinfra "github.com/draftea/order-saga/shared/infrastructure"
	"github.com/draftea/order-saga/shared/server"
	"github.com/pkg/errors"
)

// defaultStock is loaded into the inventory on startup
var defaultStock = map[string]int{
	"COMIC_BOOKS": 10,
	"BOOKS":       10,
	"MOVIES":      5,
	"MUSIC":       5,
}

// app runs the four saga services in one process on a shared memory bus
type app struct {
	bus *sharedinfra.MemoryBus

	orchestrator *orchestratorconfig.Dependencies
	inventory    *inventoryconfig.Dependencies
	payment      *paymentconfig.Dependencies
	order        *orderconfig.Dependencies

	router http.Handler
}

func newApp(ctx context.Context, logger *slog.Logger, stock map[string]int) (*app, error) {
	a := &app{bus: sharedinfra.NewMemoryBus(logger)}
	transport := sharedinfra.NewMemoryTransport(a.bus)

	cfg, err := localConfig(orchestratorconfig.ServiceName)
	if err != nil {
		return nil, err
	}
	if a.orchestrator, err = orchestratorconfig.BuildDependencies(ctx, cfg, logger.With(slog.String("component", cfg.ServiceName)),
		orchestratorconfig.WithTransport(transport)); err != nil {
		return nil, errors.Wrap(err, "failed to build orchestrator")
	}

	if cfg, err = localConfig(inventoryconfig.ServiceName); err != nil {
		return nil, err
	}
	if a.inventory, err = inventoryconfig.BuildDependencies(ctx, cfg, logger.With(slog.String("component", cfg.ServiceName)),
		inventoryconfig.WithTransport(transport)); err != nil {
		return nil, errors.Wrap(err, "failed to build inventory service")
	}

	if cfg, err = localConfig(paymentconfig.ServiceName); err != nil {
		return nil, err
	}
	if a.payment, err = paymentconfig.BuildDependencies(ctx, cfg, logger.With(slog.String("component", cfg.ServiceName)),
		paymentconfig.WithTransport(transport)); err != nil {
		return nil, errors.Wrap(err, "failed to build payment service")
	}

	if cfg, err = localConfig(orderconfig.ServiceName); err != nil {
		return nil, err
	}
	if a.order, err = orderconfig.BuildDependencies(ctx, cfg, logger.With(slog.String("component", cfg.ServiceName)),
		orderconfig.WithTransport(transport)); err != nil {
		return nil, errors.Wrap(err, "failed to build order service")
	}

	for code, available := range stock {
		if _, err := a.inventory.ManageInventory.Upsert(ctx, &inventoryapp.UpsertInventoryCommand{
			ProductCode: code,
			Available:   available,
		}); err != nil {
			return nil, errors.Wrapf(err, "failed to seed inventory of %s", code)
		}
	}

	a.router = server.NewRouter(nil, a.order.OrderHandlers, a.inventory.InventoryHandlers, a.payment.PaymentHandlers)
	return a, nil
}

// localConfig reads the service defaults and forces the in-process mode
func localConfig(serviceName string) (*sharedconfig.Config, error) {
	cfg, err := sharedconfig.Read(serviceName, "SAGA_LOCAL")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load %s config", serviceName)
	}

	cfg.Transport = sharedconfig.TransportMemory
	cfg.Storage = sharedconfig.StorageMemory
	cfg.Redis.Enabled = false
	cfg.Telemetry.Enabled = false
	return cfg, nil
}

func (a *app) close() error {
	closers := []interface{ Close() error }{}
	if a.order != nil {
		closers = append(closers, a.order)
	}
	if a.payment != nil {
		closers = append(closers, a.payment)
	}
	if a.inventory != nil {
		closers = append(closers, a.inventory)
	}
	if a.orchestrator != nil {
		closers = append(closers, a.orchestrator)
	}

	var errs []error
	for _, c := range closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.Errorf("errors closing services: %v", errs)
	}
	return nil
}
