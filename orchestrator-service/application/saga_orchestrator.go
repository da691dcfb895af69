package application

import (
	"context"
	"log/slog"

	"github.com/draftea/order-saga/shared/events"
	"github.com/draftea/order-saga/shared/saga"
	"github.com/draftea/order-saga/shared/telemetry"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	sagaStartedMessage   = "Saga started!"
	sagaSucceededMessage = "Saga finished successfully!"
	sagaFailedMessage    = "Saga finished with errors!"
)

// SagaOrchestrator drives a saga by routing every envelope to the next topic
// of the routing table
type SagaOrchestrator struct {
	controller *saga.ExecutionController
	publisher  events.Publisher
	logger     *slog.Logger
}

// NewSagaOrchestrator fails when table does not have exactly one row for
// every source and status
func NewSagaOrchestrator(table saga.RoutingTable, publisher events.Publisher, logger *slog.Logger) (*SagaOrchestrator, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if err := table.Validate(events.Sources(), events.Statuses()); err != nil {
		return nil, errors.Wrap(err, "invalid routing table")
	}

	return &SagaOrchestrator{
		controller: saga.NewExecutionController(table, logger),
		publisher:  publisher,
		logger:     logger,
	}, nil
}

// StartSaga stamps the envelope as started and sends it to the first participant
func (o *SagaOrchestrator) StartSaga(ctx context.Context, event *events.Event) error {
	ctx, span := o.startSpan(ctx, "saga.orchestrator.start", event)
	defer span.End()

	if err := validateStart(event); err != nil {
		// Redelivery cannot fix a malformed envelope, so it is acknowledged.
		recordTransition(ctx, "start", event, "", "rejected")
		span.RecordError(err)
		o.logger.WarnContext(ctx, "discarding saga start",
			slog.String("event_id", event.ID.String()),
			slog.String("order_id", event.GetOrderID()),
			slog.String("transaction_id", event.TransactionID),
			slog.String("error", err.Error()),
		)
		return nil
	}

	event.Stamp(events.SourceOrchestrator, events.StatusSuccess, sagaStartedMessage)
	o.logger.InfoContext(ctx, "SAGA STARTED!",
		slog.String("event_id", event.ID.String()),
		slog.String("order_id", event.GetOrderID()),
		slog.String("transaction_id", event.TransactionID),
	)

	return o.route(ctx, "start", event)
}

// ContinueSaga routes a participant reply without stamping it
func (o *SagaOrchestrator) ContinueSaga(ctx context.Context, event *events.Event) error {
	ctx, span := o.startSpan(ctx, "saga.orchestrator.continue", event)
	defer span.End()

	o.logger.InfoContext(ctx, "SAGA CONTINUING",
		slog.String("event_id", event.ID.String()),
		slog.String("transaction_id", event.TransactionID),
	)

	return o.route(ctx, "continue", event)
}

// FinishSagaSuccess closes a saga whose every step succeeded
func (o *SagaOrchestrator) FinishSagaSuccess(ctx context.Context, event *events.Event) error {
	ctx, span := o.startSpan(ctx, "saga.orchestrator.finish_success", event)
	defer span.End()

	event.Stamp(events.SourceOrchestrator, events.StatusSuccess, sagaSucceededMessage)
	o.logger.InfoContext(ctx, "SAGA FINISHED SUCCESSFULLY",
		slog.String("event_id", event.ID.String()),
		slog.String("transaction_id", event.TransactionID),
	)

	return o.notifyEnding(ctx, "finish_success", event)
}

// FinishSagaFail closes a saga after the compensations completed
func (o *SagaOrchestrator) FinishSagaFail(ctx context.Context, event *events.Event) error {
	ctx, span := o.startSpan(ctx, "saga.orchestrator.finish_fail", event)
	defer span.End()

	event.Stamp(events.SourceOrchestrator, events.StatusFail, sagaFailedMessage)
	o.logger.InfoContext(ctx, "SAGA FINISHED WITH ERRORS",
		slog.String("event_id", event.ID.String()),
		slog.String("transaction_id", event.TransactionID),
	)

	return o.notifyEnding(ctx, "finish_fail", event)
}

func validateStart(event *events.Event) error {
	if event.GetOrderID() == "" {
		return events.NewValidationError("order id is required")
	}
	if event.TransactionID == "" {
		return events.NewValidationError("transaction id is required")
	}
	return nil
}

func (o *SagaOrchestrator) route(ctx context.Context, transition string, event *events.Event) error {
	topic, err := o.controller.NextTopic(ctx, event)
	if err != nil {
		recordTransition(ctx, transition, event, "", "error")
		trace.SpanFromContext(ctx).RecordError(err)
		return err
	}

	return o.publish(ctx, transition, topic, event)
}

func (o *SagaOrchestrator) notifyEnding(ctx context.Context, transition string, event *events.Event) error {
	return o.publish(ctx, transition, events.NotifyEndingTopic, event)
}

func (o *SagaOrchestrator) publish(ctx context.Context, transition string, topic events.Topic, event *events.Event) error {
	if err := o.publisher.Publish(ctx, topic, event); err != nil {
		recordTransition(ctx, transition, event, topic, "error")
		trace.SpanFromContext(ctx).RecordError(err)
		return errors.Wrapf(err, "failed to publish to %s", topic)
	}

	recordTransition(ctx, transition, event, topic, "success")
	return nil
}

func (o *SagaOrchestrator) startSpan(ctx context.Context, name string, event *events.Event) (context.Context, trace.Span) {
	return telemetry.StartSpan(ctx, name,
		trace.WithAttributes(
			attribute.String("saga.event_id", event.ID.String()),
			attribute.String("saga.order_id", event.GetOrderID()),
			attribute.String("saga.transaction_id", event.TransactionID),
			attribute.String("saga.source", event.Source.String()),
			attribute.String("saga.status", event.Status.String()),
		),
	)
}

func recordTransition(ctx context.Context, transition string, event *events.Event, topic events.Topic, outcome string) {
	telemetry.RecordCounter(ctx, telemetry.SagaTransitionsCounter, "Total saga orchestrator transitions", 1,
		attribute.String("transition", transition),
		attribute.String("source", event.Source.String()),
		attribute.String("status", event.Status.String()),
		attribute.String("topic", topic.String()),
		attribute.String("outcome", outcome),
	)
}
