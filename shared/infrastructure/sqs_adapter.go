package infrastructure

import (
	"context"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/draftea/order-saga/shared/events"
	"github.com/draftea/order-saga/shared/saga"
	"github.com/pkg/errors"
)

var _ events.Subscriber = (*SQSSubscriberAdapter)(nil)

// SQSSubscriberAdapter consumes the service queue and dispatches every
// message to the handlers subscribed to its topic. Subscriptions must be
// registered before Start.
type SQSSubscriberAdapter struct {
	router        *saga.TopicRouter
	sqsSubscriber *SQSEventSubscriber
}

func NewSQSSubscriberAdapter(ctx context.Context, region, queueURL string, logger *slog.Logger, opts ...SQSSubscriberOption) (*SQSSubscriberAdapter, error) {
	if queueURL == "" {
		return nil, errors.New("SQS queue URL is required")
	}

	cfg, err := LoadAWSConfig(ctx, region)
	if err != nil {
		return nil, err
	}

	router := saga.NewTopicRouter(logger)
	opts = append([]SQSSubscriberOption{WithSubscriberLogger(logger)}, opts...)

	return &SQSSubscriberAdapter{
		router:        router,
		sqsSubscriber: NewSQSEventSubscriber(sqs.NewFromConfig(cfg), queueURL, router, opts...),
	}, nil
}

// Subscribe implements events.Subscriber
func (s *SQSSubscriberAdapter) Subscribe(ctx context.Context, topic events.Topic, handler events.EventHandler) error {
	return s.router.Subscribe(ctx, topic, handler)
}

// Start begins consuming the queue
func (s *SQSSubscriberAdapter) Start(ctx context.Context) error {
	if err := s.sqsSubscriber.Start(ctx); err != nil {
		return errors.Wrap(err, "failed to start SQS subscriber")
	}
	return nil
}

// Close stops the subscriber
func (s *SQSSubscriberAdapter) Close() error {
	if err := s.sqsSubscriber.Stop(context.Background()); err != nil {
		return errors.Wrap(err, "failed to stop SQS subscriber")
	}
	return nil
}
