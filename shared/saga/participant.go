package saga

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/draftea/order-saga/shared/events"
	"github.com/draftea/order-saga/shared/telemetry"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Participant is a service owning one resource touched by the saga
type Participant interface {
	Source() events.Source
	// Resource names the resource in rollback history lines, e.g. "inventory"
	Resource() string
	// Action names the forward step in failure history lines, e.g. "update inventory"
	Action() string
	SuccessMessage() string
	HasProcessed(ctx context.Context, orderID, transactionID string) (bool, error)
	// Apply persists the compensation snapshot and mutates the resource
	Apply(ctx context.Context, event *events.Event) error
	// Compensate restores the resource from every snapshot of the
	// transaction and reports how many were restored
	Compensate(ctx context.Context, event *events.Event) (int, error)
}

// IdempotencyGuard atomically claims an (orderID, transactionID) pair across
// service instances. Claim reports false when the pair was already claimed.
type IdempotencyGuard interface {
	Claim(ctx context.Context, orderID, transactionID string) (bool, error)
}

const duplicateTransactionMessage = "There's another transactionId for this validation."

// Executor runs the forward and compensation algorithms for a participant and
// always reports the outcome back to the orchestrator.
type Executor struct {
	participant Participant
	publisher   events.Publisher
	guard       IdempotencyGuard
	logger      *slog.Logger
}

type ExecutorOption func(*Executor)

// WithIdempotencyGuard adds a cross-instance claim after the snapshot check
func WithIdempotencyGuard(guard IdempotencyGuard) ExecutorOption {
	return func(e *Executor) {
		e.guard = guard
	}
}

func WithLogger(logger *slog.Logger) ExecutorOption {
	return func(e *Executor) {
		e.logger = logger
	}
}

func NewExecutor(participant Participant, publisher events.Publisher, opts ...ExecutorOption) *Executor {
	e := &Executor{
		participant: participant,
		publisher:   publisher,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs the forward step. Business failures are recorded in the
// envelope history as ROLLBACK_PENDING; only the publish error is returned.
func (e *Executor) Execute(ctx context.Context, event *events.Event) error {
	source := e.participant.Source()

	ctx, span := telemetry.StartSpan(ctx, "saga.participant.execute",
		trace.WithAttributes(participantAttributes(source, event)...),
	)
	defer span.End()

	start := time.Now()
	outcome := "success"
	defer func() {
		recordOperation(ctx, source, "execute", outcome, time.Since(start))
	}()

	if err := e.forward(ctx, event); err != nil {
		outcome = "rollback_pending"
		span.RecordError(err)
		e.logger.ErrorContext(ctx, "failed to "+e.participant.Action(),
			slog.String("order_id", event.GetOrderID()),
			slog.String("transaction_id", event.TransactionID),
			slog.String("error_kind", string(events.KindOf(err))),
			slog.String("error", err.Error()),
		)
		event.Stamp(source, events.StatusRollbackPending,
			fmt.Sprintf("Fail to %s: %s", e.participant.Action(), err.Error()))
	} else {
		event.Stamp(source, events.StatusSuccess, e.participant.SuccessMessage())
	}

	if err := e.publish(ctx, event); err != nil {
		outcome = "publish_error"
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

// Rollback runs compensation. Compensation failures are recorded in the
// envelope history; only the publish error is returned.
func (e *Executor) Rollback(ctx context.Context, event *events.Event) error {
	source := e.participant.Source()
	resource := e.participant.Resource()

	ctx, span := telemetry.StartSpan(ctx, "saga.participant.rollback",
		trace.WithAttributes(participantAttributes(source, event)...),
	)
	defer span.End()

	start := time.Now()
	outcome := "compensated"
	defer func() {
		recordOperation(ctx, source, "rollback", outcome, time.Since(start))
	}()

	// FAIL is stamped before compensating so the history attributes the
	// rollback attempt to this participant.
	event.Source = source
	event.Status = events.StatusFail

	restored, err := e.participant.Compensate(ctx, event)
	switch {
	case err != nil:
		outcome = "compensation_error"
		span.RecordError(err)
		e.logger.ErrorContext(ctx, "rollback not executed",
			slog.String("resource", resource),
			slog.String("order_id", event.GetOrderID()),
			slog.String("transaction_id", event.TransactionID),
			slog.String("error", err.Error()),
		)
		event.Stamp(source, events.StatusFail,
			fmt.Sprintf("Rollback not executed on %s: %s", resource, err.Error()))
	case restored == 0:
		outcome = "nothing_to_compensate"
		event.Stamp(source, events.StatusFail,
			fmt.Sprintf("Rollback not required on %s: no changes recorded for this transaction", resource))
	default:
		e.logger.InfoContext(ctx, "rollback executed",
			slog.String("resource", resource),
			slog.String("order_id", event.GetOrderID()),
			slog.String("transaction_id", event.TransactionID),
			slog.Int("restored", restored),
		)
		event.Stamp(source, events.StatusFail, fmt.Sprintf("Rollback executed on %s!", resource))
	}

	if err := e.publish(ctx, event); err != nil {
		outcome = "publish_error"
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

func (e *Executor) forward(ctx context.Context, event *events.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	orderID := event.GetOrderID()

	processed, err := e.participant.HasProcessed(ctx, orderID, event.TransactionID)
	if err != nil {
		return errors.Wrap(err, "failed to check processed transaction")
	}
	if processed {
		return events.NewDuplicateTransactionError(duplicateTransactionMessage)
	}

	if e.guard != nil {
		claimed, err := e.guard.Claim(ctx, orderID, event.TransactionID)
		if err != nil {
			return errors.Wrap(err, "failed to claim transaction")
		}
		if !claimed {
			return events.NewDuplicateTransactionError(duplicateTransactionMessage)
		}
	}

	return e.participant.Apply(ctx, event)
}

func (e *Executor) publish(ctx context.Context, event *events.Event) error {
	if err := e.publisher.Publish(ctx, events.OrchestratorTopic, event); err != nil {
		e.logger.ErrorContext(ctx, "failed to notify orchestrator",
			slog.String("order_id", event.GetOrderID()),
			slog.String("transaction_id", event.TransactionID),
			slog.String("error", err.Error()),
		)
		return errors.Wrap(err, "failed to publish to orchestrator")
	}
	return nil
}

func participantAttributes(source events.Source, event *events.Event) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("saga.source", source.String()),
		attribute.String("saga.order_id", event.GetOrderID()),
		attribute.String("saga.transaction_id", event.TransactionID),
		attribute.String("saga.event_id", event.ID.String()),
	}
}

func recordOperation(ctx context.Context, source events.Source, operation, outcome string, duration time.Duration) {
	telemetry.RecordCounter(ctx, telemetry.ParticipantOperationsCounter, "Total saga participant operations", 1,
		attribute.String("source", source.String()),
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	)
	telemetry.RecordHistogram(ctx, telemetry.ParticipantDurationHistogram, "Saga participant operation duration", duration.Seconds(),
		attribute.String("source", source.String()),
		attribute.String("operation", operation),
	)
}
