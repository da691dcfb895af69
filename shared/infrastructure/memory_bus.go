package infrastructure

import (
	"context"
	"log/slog"
	"sync"

	"github.com/draftea/order-saga/shared/events"
	"github.com/draftea/order-saga/shared/saga"
)

var (
	_ events.Publisher  = (*MemoryBus)(nil)
	_ events.Subscriber = (*MemoryBus)(nil)
)

// Delivery is one envelope published on the bus
type Delivery struct {
	Topic events.Topic
	Event *events.Event
}

// MemoryBus is an in-process transport. Every publish goes through the wire
// codec so handlers never share an envelope with the publisher, and messages
// are delivered in publish order from a single queue. The first Publish call
// drains the queue, including whatever handlers publish while it runs.
type MemoryBus struct {
	router *saga.TopicRouter
	logger *slog.Logger

	mu        sync.Mutex
	queue     []queuedMessage
	draining  bool
	published []Delivery
	failures  []error
}

type queuedMessage struct {
	topic events.Topic
	data  []byte
}

func NewMemoryBus(logger *slog.Logger) *MemoryBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &MemoryBus{
		router: saga.NewTopicRouter(logger),
		logger: logger,
	}
}

func (b *MemoryBus) Subscribe(ctx context.Context, topic events.Topic, handler events.EventHandler) error {
	return b.router.Subscribe(ctx, topic, handler)
}

func (b *MemoryBus) Publish(ctx context.Context, topic events.Topic, evts ...*events.Event) error {
	if topic == "" {
		return events.ErrInvalidTopic
	}

	b.mu.Lock()
	for _, event := range evts {
		data, err := events.Marshal(event)
		if err != nil {
			b.mu.Unlock()
			return err
		}
		b.queue = append(b.queue, queuedMessage{topic: topic, data: data})

		snapshot, _ := events.Unmarshal(data)
		b.published = append(b.published, Delivery{Topic: topic, Event: snapshot})
	}

	if b.draining {
		b.mu.Unlock()
		return nil
	}
	b.draining = true
	b.mu.Unlock()

	b.drain(ctx)
	return nil
}

func (b *MemoryBus) drain(ctx context.Context) {
	for {
		b.mu.Lock()
		if len(b.queue) == 0 {
			b.draining = false
			b.mu.Unlock()
			return
		}
		msg := b.queue[0]
		b.queue = b.queue[1:]
		b.mu.Unlock()

		event, err := events.Unmarshal(msg.data)
		if err == nil {
			err = b.router.Dispatch(ctx, msg.topic, event)
		}

		if err != nil {
			b.logger.ErrorContext(ctx, "memory bus delivery failed",
				slog.String("topic", msg.topic.String()),
				slog.String("error", err.Error()),
			)
			b.mu.Lock()
			b.failures = append(b.failures, err)
			b.mu.Unlock()
		}
	}
}

// Published returns a copy of every delivery in publish order
func (b *MemoryBus) Published() []Delivery {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Delivery(nil), b.published...)
}

// PublishedTo returns the envelopes published to topic in publish order
func (b *MemoryBus) PublishedTo(topic events.Topic) []*events.Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []*events.Event
	for _, d := range b.published {
		if d.Topic == topic {
			out = append(out, d.Event)
		}
	}
	return out
}

// Failures returns the handler errors seen while draining
func (b *MemoryBus) Failures() []error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]error(nil), b.failures...)
}
