package handlers

import (
	"context"

	"github.com/draftea/order-saga/shared/events"
	"github.com/draftea/order-saga/shared/saga"
	"github.com/pkg/errors"
)

// PaymentEventHandlers binds the payment participant to its topics
type PaymentEventHandlers struct {
	executor *saga.Executor
}

func NewPaymentEventHandlers(executor *saga.Executor) *PaymentEventHandlers {
	return &PaymentEventHandlers{executor: executor}
}

// Register subscribes the charge and refund handlers
func (h *PaymentEventHandlers) Register(ctx context.Context, subscriber events.Subscriber) error {
	if err := subscriber.Subscribe(ctx, events.PaymentSuccessTopic, events.EventHandlerFunc(h.HandlePaymentSuccess)); err != nil {
		return errors.Wrapf(err, "failed to subscribe to %s", events.PaymentSuccessTopic)
	}
	if err := subscriber.Subscribe(ctx, events.PaymentFailTopic, events.EventHandlerFunc(h.HandlePaymentFail)); err != nil {
		return errors.Wrapf(err, "failed to subscribe to %s", events.PaymentFailTopic)
	}
	return nil
}

// HandlePaymentSuccess realizes the payment of the order
func (h *PaymentEventHandlers) HandlePaymentSuccess(ctx context.Context, event *events.Event) error {
	return h.executor.Execute(ctx, event)
}

// HandlePaymentFail refunds the payment of the order
func (h *PaymentEventHandlers) HandlePaymentFail(ctx context.Context, event *events.Event) error {
	return h.executor.Rollback(ctx, event)
}
