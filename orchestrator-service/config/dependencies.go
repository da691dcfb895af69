package config

import (
	"context"
	"log/slog"

	"github.com/draftea/order-saga/orchestrator-service/application"
	"github.com/draftea/order-saga/orchestrator-service/handlers"
	sharedinfra "github.com/draftea/order-saga/shared/infrastructure"
	"github.com/draftea/order-saga/shared/saga"
	"github.com/draftea/order-saga/shared/telemetry"
	"github.com/pkg/errors"
)

// Dependencies of the orchestrator. It keeps no state of its own: the saga
// position travels in the envelope.
type Dependencies struct {
	// Use Cases
	Orchestrator *application.SagaOrchestrator

	// Event Handlers
	OrchestratorEventHandlers *handlers.OrchestratorEventHandlers

	// Infrastructure
	Transport *sharedinfra.Transport

	// Telemetry
	Telemetry         *telemetry.Telemetry
	TelemetryShutdown func()
}

type Option func(*buildOptions)

type buildOptions struct {
	transport *sharedinfra.Transport
	table     saga.RoutingTable
}

// WithTransport reuses an existing transport instead of building one from
// the configuration
func WithTransport(transport *sharedinfra.Transport) Option {
	return func(o *buildOptions) {
		o.transport = transport
	}
}

// WithRoutingTable replaces the default routing table
func WithRoutingTable(table saga.RoutingTable) Option {
	return func(o *buildOptions) {
		o.table = table
	}
}

func BuildDependencies(ctx context.Context, cfg *Config, logger *slog.Logger, opts ...Option) (*Dependencies, error) {
	options := &buildOptions{table: saga.DefaultRoutingTable()}
	for _, opt := range opts {
		opt(options)
	}

	deps := &Dependencies{}

	// Initialize telemetry first
	if cfg.Telemetry.Enabled {
		telConfig := telemetry.OrchestratorServiceConfig.WithOTLPEndpoint(cfg.Telemetry.OTLPEndpoint)
		tel, shutdown, err := telemetry.InitTelemetry(ctx, telConfig)
		if err != nil {
			// Continue without telemetry rather than failing
			logger.WarnContext(ctx, "failed to initialize telemetry", slog.String("error", err.Error()))
		} else {
			deps.Telemetry = tel
			deps.TelemetryShutdown = shutdown
		}
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
	orchestrator, err := application.NewSagaOrchestrator(options.table, deps.Transport.Publisher, logger)
	if err != nil {
		deps.Close()
		return nil, err
	}
	deps.Orchestrator = orchestrator

	// Initialize handlers
	deps.OrchestratorEventHandlers = handlers.NewOrchestratorEventHandlers(orchestrator)
	if err := deps.OrchestratorEventHandlers.Register(ctx, deps.Transport.Subscriber); err != nil {
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

	if d.TelemetryShutdown != nil {
		d.TelemetryShutdown()
	}

	if len(errs) > 0 {
		return errors.Errorf("errors closing dependencies: %v", errs)
	}

	return nil
}
