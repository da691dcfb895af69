package infrastructure

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/draftea/order-saga/shared/events"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBus() *MemoryBus {
	return NewMemoryBus(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
}

func TestMemoryBus_DeliversInPublishOrder(t *testing.T) {
	bus := newTestBus()
	ctx := context.Background()

	var delivered []events.Topic
	record := func(topic events.Topic) events.EventHandler {
		return events.EventHandlerFunc(func(context.Context, *events.Event) error {
			delivered = append(delivered, topic)
			return nil
		})
	}

	// first hop publishes two follow-ups; both run after the first handler returns
	require.NoError(t, bus.Subscribe(ctx, events.StartSagaTopic, events.EventHandlerFunc(func(ctx context.Context, e *events.Event) error {
		delivered = append(delivered, events.StartSagaTopic)
		require.NoError(t, bus.Publish(ctx, events.InventorySuccessTopic, e))
		require.NoError(t, bus.Publish(ctx, events.PaymentSuccessTopic, e))
		delivered = append(delivered, "start-returned")
		return nil
	})))
	require.NoError(t, bus.Subscribe(ctx, events.InventorySuccessTopic, record(events.InventorySuccessTopic)))
	require.NoError(t, bus.Subscribe(ctx, events.PaymentSuccessTopic, record(events.PaymentSuccessTopic)))

	require.NoError(t, bus.Publish(ctx, events.StartSagaTopic, events.NewEvent(events.Order{ID: "order-1"})))

	assert.Equal(t, []events.Topic{
		events.StartSagaTopic,
		"start-returned",
		events.InventorySuccessTopic,
		events.PaymentSuccessTopic,
	}, delivered)

	published := bus.Published()
	require.Len(t, published, 3)
	assert.Equal(t, events.StartSagaTopic, published[0].Topic)
	assert.Len(t, bus.PublishedTo(events.PaymentSuccessTopic), 1)
}

func TestMemoryBus_HandlersReceiveCopies(t *testing.T) {
	bus := newTestBus()
	ctx := context.Background()

	var received *events.Event
	require.NoError(t, bus.Subscribe(ctx, events.OrchestratorTopic, events.EventHandlerFunc(func(_ context.Context, e *events.Event) error {
		received = e
		e.Stamp(events.SourceInventory, events.StatusSuccess, "mutated by handler")
		return nil
	})))

	event := events.NewEvent(events.Order{ID: "order-1", TransactionID: "tx-1"})
	require.NoError(t, bus.Publish(ctx, events.OrchestratorTopic, event))

	require.NotNil(t, received)
	assert.NotSame(t, event, received)
	assert.Equal(t, event.ID, received.ID)
	assert.Empty(t, event.History)
	assert.Empty(t, bus.PublishedTo(events.OrchestratorTopic)[0].History)
}

func TestMemoryBus_RecordsHandlerFailures(t *testing.T) {
	bus := newTestBus()
	ctx := context.Background()

	require.NoError(t, bus.Subscribe(ctx, events.PaymentFailTopic, events.EventHandlerFunc(func(context.Context, *events.Event) error {
		return errors.New("compensation crashed")
	})))

	require.NoError(t, bus.Publish(ctx, events.PaymentFailTopic, events.NewEvent(events.Order{ID: "order-1"})))

	failures := bus.Failures()
	require.Len(t, failures, 1)
	assert.Equal(t, "handler failed for topic payment.fail: compensation crashed", failures[0].Error())
}

func TestMemoryBus_RejectsEmptyTopic(t *testing.T) {
	err := newTestBus().Publish(context.Background(), "", events.NewEvent(events.Order{ID: "order-1"}))
	assert.ErrorIs(t, err, events.ErrInvalidTopic)
}
