package application

import (
	"context"
	"log/slog"

	"github.com/draftea/order-saga/order-service/domain"
	"github.com/draftea/order-saga/shared/events"
	"github.com/pkg/errors"
)

// EventFilters selects the saga to look up. OrderID wins when both are set.
type EventFilters struct {
	OrderID       string
	TransactionID string
}

// EventService records finished sagas and serves the saga history
type EventService struct {
	eventStore      events.EventStore
	orderRepository domain.OrderRepository
	logger          *slog.Logger
}

func NewEventService(eventStore events.EventStore, orderRepository domain.OrderRepository, logger *slog.Logger) *EventService {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventService{
		eventStore:      eventStore,
		orderRepository: orderRepository,
		logger:          logger,
	}
}

// NotifyEnding appends the terminal envelope of a saga to the history log
func (s *EventService) NotifyEnding(ctx context.Context, event *events.Event) error {
	if event.OrderID == "" {
		event.OrderID = event.Payload.ID
	}

	order, err := s.orderRepository.FindByID(ctx, event.OrderID)
	if err != nil {
		return errors.Wrap(err, "failed to find order")
	}
	if order == nil {
		s.logger.WarnContext(ctx, "saga ended for unknown order",
			slog.String("order_id", event.OrderID),
			slog.String("transaction_id", event.TransactionID),
		)
	}

	if err := s.eventStore.Save(ctx, event); err != nil {
		return errors.Wrap(err, "failed to save event")
	}

	s.logger.InfoContext(ctx, "order saga notified",
		slog.String("order_id", event.OrderID),
		slog.String("transaction_id", event.TransactionID),
		slog.String("status", event.Status.String()),
	)

	return nil
}

// FindByFilters returns the latest envelope of an order or transaction
func (s *EventService) FindByFilters(ctx context.Context, filters EventFilters) (*events.Event, error) {
	if filters.OrderID == "" && filters.TransactionID == "" {
		return nil, events.NewValidationError("Order ID or Transaction ID must be informed")
	}

	if filters.OrderID != "" {
		event, err := s.eventStore.FindLatestByOrderID(ctx, filters.OrderID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to find event")
		}
		if event == nil {
			return nil, events.NewNotFoundError("Event not found by orderId: %s", filters.OrderID)
		}
		return event, nil
	}

	event, err := s.eventStore.FindLatestByTransactionID(ctx, filters.TransactionID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find event")
	}
	if event == nil {
		return nil, events.NewNotFoundError("Event not found by transactionId: %s", filters.TransactionID)
	}
	return event, nil
}

// FindAll returns every stored envelope, newest first
func (s *EventService) FindAll(ctx context.Context) ([]*events.Event, error) {
	all, err := s.eventStore.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list events")
	}
	return all, nil
}
