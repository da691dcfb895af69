package handlers

import (
	"context"

	"github.com/draftea/order-saga/order-service/application"
	"github.com/draftea/order-saga/shared/events"
	"github.com/pkg/errors"
)

// OrderEventHandlers records the end of every saga
type OrderEventHandlers struct {
	eventService *application.EventService
}

func NewOrderEventHandlers(eventService *application.EventService) *OrderEventHandlers {
	return &OrderEventHandlers{eventService: eventService}
}

func (h *OrderEventHandlers) Register(ctx context.Context, subscriber events.Subscriber) error {
	if err := subscriber.Subscribe(ctx, events.NotifyEndingTopic, events.EventHandlerFunc(h.HandleNotifyEnding)); err != nil {
		return errors.Wrapf(err, "failed to subscribe to %s", events.NotifyEndingTopic)
	}
	return nil
}

func (h *OrderEventHandlers) HandleNotifyEnding(ctx context.Context, event *events.Event) error {
	return h.eventService.NotifyEnding(ctx, event)
}
