package saga

import (
	"context"
	"log/slog"
	"sync"

	"github.com/draftea/order-saga/shared/events"
	"github.com/pkg/errors"
)

var _ events.Subscriber = (*TopicRouter)(nil)

type route struct {
	pattern events.Topic
	handler events.EventHandler
}

// TopicRouter fans envelopes received on a topic out to the handlers
// subscribed to a matching pattern. Transports that deliver many topics on a
// single channel (one SQS queue per service) dispatch through it.
type TopicRouter struct {
	mu     sync.RWMutex
	routes []route
	logger *slog.Logger
}

func NewTopicRouter(logger *slog.Logger) *TopicRouter {
	if logger == nil {
		logger = slog.Default()
	}
	return &TopicRouter{logger: logger}
}

// Subscribe registers handler for every topic matching pattern
func (r *TopicRouter) Subscribe(_ context.Context, pattern events.Topic, handler events.EventHandler) error {
	if pattern == "" {
		return events.ErrInvalidTopic
	}
	if handler == nil {
		return errors.New("handler is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.routes = append(r.routes, route{pattern: pattern, handler: handler})
	return nil
}

// Topics returns the subscribed patterns in registration order
func (r *TopicRouter) Topics() []events.Topic {
	r.mu.RLock()
	defer r.mu.RUnlock()

	topics := make([]events.Topic, 0, len(r.routes))
	for _, rt := range r.routes {
		topics = append(topics, rt.pattern)
	}
	return topics
}

// Dispatch delivers event to every matching handler. Handlers run in
// registration order and the first error stops the dispatch so the
// transport can redeliver.
func (r *TopicRouter) Dispatch(ctx context.Context, topic events.Topic, event *events.Event) error {
	r.mu.RLock()
	var handlers []events.EventHandler
	for _, rt := range r.routes {
		if topic.Matches(rt.pattern) {
			handlers = append(handlers, rt.handler)
		}
	}
	r.mu.RUnlock()

	if len(handlers) == 0 {
		r.logger.WarnContext(ctx, "no handlers registered for topic",
			slog.String("topic", topic.String()),
			slog.String("event_id", event.ID.String()),
		)
		return nil
	}

	for _, handler := range handlers {
		if err := handler.Handle(ctx, event); err != nil {
			return errors.Wrapf(err, "handler failed for topic %s", topic)
		}
	}

	return nil
}
