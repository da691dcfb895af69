package infrastructure

import (
	"context"
	"testing"

	"github.com/draftea/order-saga/shared/config"
	"github.com/draftea/order-saga/shared/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransport_RejectsMemoryMode(t *testing.T) {
	_, err := NewTransport(context.Background(), &config.Config{Transport: config.TransportMemory}, nil)
	require.Error(t, err)
	assert.Equal(t, `transport "memory" must be built with NewMemoryTransport`, err.Error())
}

func TestMemoryTransport(t *testing.T) {
	ctx := context.Background()
	bus := newTestBus()
	transport := NewMemoryTransport(bus)

	var received *events.Event
	require.NoError(t, transport.Subscriber.Subscribe(ctx, events.NotifyEndingTopic, events.EventHandlerFunc(func(_ context.Context, e *events.Event) error {
		received = e
		return nil
	})))
	require.NoError(t, transport.Start(ctx))

	event := events.NewEvent(events.Order{ID: "order-1"})
	require.NoError(t, transport.Publisher.Publish(ctx, events.NotifyEndingTopic, event))

	require.NotNil(t, received)
	assert.Equal(t, event.ID, received.ID)
	assert.NoError(t, transport.Close())
}
