package config

import (
	"context"
	"log/slog"

	"github.com/draftea/order-saga/order-service/application"
	"github.com/draftea/order-saga/order-service/domain"
	"github.com/draftea/order-saga/order-service/handlers"
	"github.com/draftea/order-saga/order-service/infrastructure"
	sharedconfig "github.com/draftea/order-saga/shared/config"
	"github.com/draftea/order-saga/shared/events"
	sharedinfra "github.com/draftea/order-saga/shared/infrastructure"
	"github.com/draftea/order-saga/shared/telemetry"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

type Dependencies struct {
	// Database
	DB *sqlx.DB

	// Repositories
	OrderRepository domain.OrderRepository
	EventStore      events.EventStore

	// Use Cases
	CreateOrder  *application.CreateOrder
	GetOrder     *application.GetOrder
	EventService *application.EventService

	// HTTP Handlers
	OrderHandlers *handlers.OrderHandlers

	// Event Handlers
	OrderEventHandlers *handlers.OrderEventHandlers

	// Infrastructure
	Transport *sharedinfra.Transport

	// Telemetry
	Telemetry         *telemetry.Telemetry
	TelemetryShutdown func()
}

type Option func(*buildOptions)

type buildOptions struct {
	transport *sharedinfra.Transport
}

// WithTransport reuses an existing transport instead of building one from
// the configuration
func WithTransport(transport *sharedinfra.Transport) Option {
	return func(o *buildOptions) {
		o.transport = transport
	}
}

func BuildDependencies(ctx context.Context, cfg *Config, logger *slog.Logger, opts ...Option) (*Dependencies, error) {
	options := &buildOptions{}
	for _, opt := range opts {
		opt(options)
	}

	deps := &Dependencies{}

	// Initialize telemetry first
	if cfg.Telemetry.Enabled {
		telConfig := telemetry.OrderServiceConfig.WithOTLPEndpoint(cfg.Telemetry.OTLPEndpoint)
		tel, shutdown, err := telemetry.InitTelemetry(ctx, telConfig)
		if err != nil {
			// Continue without telemetry rather than failing
			logger.WarnContext(ctx, "failed to initialize telemetry", slog.String("error", err.Error()))
		} else {
			deps.Telemetry = tel
			deps.TelemetryShutdown = shutdown
		}
	}

	// Initialize repositories
	switch cfg.Storage {
	case sharedconfig.StoragePostgres:
		db, err := sharedinfra.ConnectPostgres(ctx, cfg.GetDatabaseURL())
		if err != nil {
			deps.Close()
			return nil, err
		}
		deps.DB = db

		eventStore := sharedinfra.NewPostgresEventStore(db)
		if cfg.Database.Migrate {
			if err := infrastructure.Migrate(ctx, db); err != nil {
				deps.Close()
				return nil, err
			}
			if err := eventStore.Migrate(ctx); err != nil {
				deps.Close()
				return nil, err
			}
		}

		deps.OrderRepository = infrastructure.NewPostgresOrderRepository(db)
		deps.EventStore = eventStore
	default:
		deps.OrderRepository = infrastructure.NewMemoryOrderRepository()
		deps.EventStore = sharedinfra.NewMemoryEventStore()
	}

	// Initialize transport
	deps.Transport = options.transport
	if deps.Transport == nil {
		transport, err := sharedinfra.NewTransport(ctx, cfg, logger)
		if err != nil {
			deps.Close()
			return nil, err
		}
		deps.Transport = transport
	}

	// Initialize use cases
	deps.CreateOrder = application.NewCreateOrder(deps.OrderRepository, deps.EventStore, deps.Transport.Publisher, logger)
	deps.GetOrder = application.NewGetOrder(deps.OrderRepository)
	deps.EventService = application.NewEventService(deps.EventStore, deps.OrderRepository, logger)

	// Initialize handlers
	deps.OrderHandlers = handlers.NewOrderHandlers(deps.CreateOrder, deps.GetOrder, deps.EventService)
	deps.OrderEventHandlers = handlers.NewOrderEventHandlers(deps.EventService)

	if err := deps.OrderEventHandlers.Register(ctx, deps.Transport.Subscriber); err != nil {
		deps.Close()
		return nil, err
	}

	return deps, nil
}

// Close closes all dependencies
func (d *Dependencies) Close() error {
	var errs []error

	if d.Transport != nil {
		if err := d.Transport.Close(); err != nil {
			errs = append(errs, errors.Wrap(err, "failed to close transport"))
		}
	}

	if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			errs = append(errs, errors.Wrap(err, "failed to close database"))
		}
	}

	if d.TelemetryShutdown != nil {
		d.TelemetryShutdown()
	}

	if len(errs) > 0 {
		return errors.Errorf("errors closing dependencies: %v", errs)
	}

	return nil
}
