package config

import (
	"context"
	"log/slog"

	"github.com/draftea/order-saga/inventory-service/application"
	"github.com/draftea/order-saga/inventory-service/domain"
	"github.com/draftea/order-saga/inventory-service/handlers"
	"github.com/draftea/order-saga/inventory-service/infrastructure"
	sharedconfig "github.com/draftea/order-saga/shared/config"
	sharedinfra "github.com/draftea/order-saga/shared/infrastructure"
	"github.com/draftea/order-saga/shared/saga"
	"github.com/draftea/order-saga/shared/telemetry"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

type Dependencies struct {
	// Database
	DB    *sqlx.DB
	Redis *redis.Client

	// Repositories
	InventoryRepository      domain.InventoryRepository
	OrderInventoryRepository domain.OrderInventoryRepository

	// Use Cases
	Participant     *application.InventoryParticipant
	Executor        *saga.Executor
	ManageInventory *application.ManageInventory

	// HTTP Handlers
	InventoryHandlers *handlers.InventoryHandlers

	// Event Handlers
	InventoryEventHandlers *handlers.InventoryEventHandlers

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
		telConfig := telemetry.InventoryServiceConfig.WithOTLPEndpoint(cfg.Telemetry.OTLPEndpoint)
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

		if cfg.Database.Migrate {
			if err := infrastructure.Migrate(ctx, db); err != nil {
				deps.Close()
				return nil, err
			}
		}

		deps.InventoryRepository = infrastructure.NewPostgresInventoryRepository(db)
		deps.OrderInventoryRepository = infrastructure.NewPostgresOrderInventoryRepository(db)
	default:
		deps.InventoryRepository = infrastructure.NewMemoryInventoryRepository()
		deps.OrderInventoryRepository = infrastructure.NewMemoryOrderInventoryRepository()
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

	executorOpts := []saga.ExecutorOption{saga.WithLogger(logger)}
	if cfg.Redis.Enabled {
		client, err := sharedinfra.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			deps.Close()
			return nil, err
		}
		deps.Redis = client
		executorOpts = append(executorOpts, saga.WithIdempotencyGuard(
			sharedinfra.NewRedisIdempotencyGuard(client, cfg.ServiceName, cfg.Redis.ClaimTTL),
		))
	} else if cfg.Transport == sharedconfig.TransportMemory {
		executorOpts = append(executorOpts, saga.WithIdempotencyGuard(sharedinfra.NewMemoryIdempotencyGuard()))
	}

	// Initialize use cases
	deps.Participant = application.NewInventoryParticipant(deps.InventoryRepository, deps.OrderInventoryRepository, logger)
	deps.Executor = saga.NewExecutor(deps.Participant, deps.Transport.Publisher, executorOpts...)
	deps.ManageInventory = application.NewManageInventory(deps.InventoryRepository)

	// Initialize handlers
	deps.InventoryHandlers = handlers.NewInventoryHandlers(deps.ManageInventory)
	deps.InventoryEventHandlers = handlers.NewInventoryEventHandlers(deps.Executor)

	if err := deps.InventoryEventHandlers.Register(ctx, deps.Transport.Subscriber); err != nil {
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

	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			errs = append(errs, errors.Wrap(err, "failed to close redis"))
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
