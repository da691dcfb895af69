package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/draftea/order-saga/order-service/domain"
	"github.com/draftea/order-saga/shared/events"
	"github.com/draftea/order-saga/shared/telemetry"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
)

// CreateOrderCommand represents the command to create an order
type CreateOrderCommand struct {
	Products []events.OrderProduct `json:"products"`
}

// CreateOrderResponse represents the response after creating an order
type CreateOrderResponse struct {
	OrderID       string `json:"orderId"`
	TransactionID string `json:"transactionId"`
	EventID       string `json:"eventId"`
}

// CreateOrder persists an order and starts its saga
type CreateOrder struct {
	orderRepository domain.OrderRepository
	eventStore      events.EventStore
	eventPublisher  events.Publisher
	logger          *slog.Logger
	now             func() time.Time
}

func NewCreateOrder(
	orderRepository domain.OrderRepository,
	eventStore events.EventStore,
	eventPublisher events.Publisher,
	logger *slog.Logger,
) *CreateOrder {
	if logger == nil {
		logger = slog.Default()
	}
	return &CreateOrder{
		orderRepository: orderRepository,
		eventStore:      eventStore,
		eventPublisher:  eventPublisher,
		logger:          logger,
		now:             time.Now,
	}
}

func (uc *CreateOrder) Execute(ctx context.Context, cmd *CreateOrderCommand) (*CreateOrderResponse, error) {
	start := time.Now()
	ctx, span := telemetry.StartSpan(ctx, "create_order")
	defer span.End()

	status := "error"
	defer func() {
		telemetry.RecordCounter(ctx, "orders_created_total", "Total orders created", 1,
			attribute.String("status", status),
		)
		telemetry.RecordHistogram(ctx, "order_creation_duration_seconds", "Order creation duration", time.Since(start).Seconds(),
			attribute.String("status", status),
		)
	}()

	order, err := domain.NewOrder(cmd.Products, uc.now())
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(
		attribute.String("order_id", order.ID),
		attribute.String("transaction_id", order.TransactionID),
	)

	if err := uc.orderRepository.Save(ctx, order); err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "failed to save order")
	}

	event := events.NewEvent(order.Payload())
	if err := uc.eventStore.Save(ctx, event); err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "failed to save event")
	}

	if err := uc.eventPublisher.Publish(ctx, events.StartSagaTopic, event); err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "failed to publish events")
	}

	uc.logger.InfoContext(ctx, "order created",
		slog.String("order_id", order.ID),
		slog.String("transaction_id", order.TransactionID),
		slog.String("event_id", event.ID.String()),
	)

	status = "success"
	return &CreateOrderResponse{
		OrderID:       order.ID,
		TransactionID: order.TransactionID,
		EventID:       event.ID.String(),
	}, nil
}
