package handlers

import (
	"context"

	"github.com/draftea/order-saga/shared/events"
	"github.com/draftea/order-saga/shared/saga"
	"github.com/pkg/errors"
)

// InventoryEventHandlers binds the inventory participant to its topics
type InventoryEventHandlers struct {
	executor *saga.Executor
}

func NewInventoryEventHandlers(executor *saga.Executor) *InventoryEventHandlers {
	return &InventoryEventHandlers{executor: executor}
}

// Register subscribes the forward and compensation handlers
func (h *InventoryEventHandlers) Register(ctx context.Context, subscriber events.Subscriber) error {
	if err := subscriber.Subscribe(ctx, events.InventorySuccessTopic, events.EventHandlerFunc(h.HandleInventorySuccess)); err != nil {
		return errors.Wrapf(err, "failed to subscribe to %s", events.InventorySuccessTopic)
	}
	if err := subscriber.Subscribe(ctx, events.InventoryFailTopic, events.EventHandlerFunc(h.HandleInventoryFail)); err != nil {
		return errors.Wrapf(err, "failed to subscribe to %s", events.InventoryFailTopic)
	}
	return nil
}

// HandleInventorySuccess reserves stock for the order
func (h *InventoryEventHandlers) HandleInventorySuccess(ctx context.Context, event *events.Event) error {
	return h.executor.Execute(ctx, event)
}

// HandleInventoryFail restores the stock reserved for the order
func (h *InventoryEventHandlers) HandleInventoryFail(ctx context.Context, event *events.Event) error {
	return h.executor.Rollback(ctx, event)
}
