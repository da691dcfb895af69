package infrastructure

import (
	"context"
	"log/slog"

	"github.com/draftea/order-saga/shared/config"
	"github.com/draftea/order-saga/shared/events"
	"github.com/pkg/errors"
)

// Transport bundles the publisher and subscriber a service talks to the
// saga through
type Transport struct {
	Publisher  events.Publisher
	Subscriber events.Subscriber

	snsPublisher  *SNSPublisherAdapter
	sqsSubscriber *SQSSubscriberAdapter
}

// NewTransport builds the SNS/SQS transport for the aws mode. The memory mode
// needs a bus shared by every service, so it is built with NewMemoryTransport.
func NewTransport(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Transport, error) {
	if cfg.Transport != config.TransportAWS {
		return nil, errors.Errorf("transport %q must be built with NewMemoryTransport", cfg.Transport)
	}

	publisher, err := NewSNSPublisherAdapter(ctx, cfg.AWS.Region, cfg.AWS.SNSTopicArn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create SNS publisher")
	}

	var opts []SQSSubscriberOption
	if cfg.AWS.Workers > 0 {
		opts = append(opts, WithWorkers(cfg.AWS.Workers))
	}

	subscriber, err := NewSQSSubscriberAdapter(ctx, cfg.AWS.Region, cfg.AWS.SQSQueueURL, logger, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create SQS subscriber")
	}

	return &Transport{
		Publisher:     publisher,
		Subscriber:    subscriber,
		snsPublisher:  publisher,
		sqsSubscriber: subscriber,
	}, nil
}

// NewMemoryTransport wraps an in-process bus
func NewMemoryTransport(bus *MemoryBus) *Transport {
	return &Transport{
		Publisher:  bus,
		Subscriber: bus,
	}
}

// Start begins consuming. Subscriptions must already be registered.
func (t *Transport) Start(ctx context.Context) error {
	if t.sqsSubscriber == nil {
		return nil
	}
	return t.sqsSubscriber.Start(ctx)
}

func (t *Transport) Close() error {
	var errs []error

	if t.sqsSubscriber != nil {
		if err := t.sqsSubscriber.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if t.snsPublisher != nil {
		if err := t.snsPublisher.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return errors.Errorf("errors closing transport: %v", errs)
	}
	return nil
}
