package infrastructure

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/draftea/order-saga/shared/events"
	"github.com/pkg/errors"
)

var _ events.Publisher = (*SNSPublisherAdapter)(nil)

// SNSPublisherAdapter builds an SNSEventPublisher from the default AWS config
type SNSPublisherAdapter struct {
	snsPublisher *SNSEventPublisher
}

// NewSNSPublisherAdapter creates a publisher for topicArn. The AWS endpoint
// can be pointed at LocalStack through AWS_ENDPOINT_URL.
func NewSNSPublisherAdapter(ctx context.Context, region, topicArn string) (*SNSPublisherAdapter, error) {
	if topicArn == "" {
		return nil, errors.New("SNS topic ARN is required")
	}

	cfg, err := LoadAWSConfig(ctx, region)
	if err != nil {
		return nil, err
	}

	return &SNSPublisherAdapter{
		snsPublisher: NewSNSEventPublisher(sns.NewFromConfig(cfg), topicArn),
	}, nil
}

func (p *SNSPublisherAdapter) Publish(ctx context.Context, topic events.Topic, evts ...*events.Event) error {
	return p.snsPublisher.Publish(ctx, topic, evts...)
}

// Close closes the publisher
func (p *SNSPublisherAdapter) Close() error {
	// SNS client doesn't need explicit closing
	return nil
}

// LoadAWSConfig loads the default AWS config, overriding the region when set
func LoadAWSConfig(ctx context.Context, region string) (aws.Config, error) {
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, errors.Wrap(err, "failed to load AWS config")
	}
	return cfg, nil
}
