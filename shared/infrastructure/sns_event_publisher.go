package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/draftea/order-saga/shared/events"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"golang.org/x/sync/errgroup"
)

var _ events.Publisher = (*SNSEventPublisher)(nil)

const (
	maxBatchSize = 10

	// TopicAttribute carries the saga topic; SQS subscriptions filter on it
	TopicAttribute = "topic"
)

// snsMessage is the body published to SNS and received from SQS
type snsMessage struct {
	ID        string          `json:"id"`
	Topic     string          `json:"topic"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

// SNSAPI is the subset of the SNS client used by the publisher
type SNSAPI interface {
	PublishBatch(ctx context.Context, params *sns.PublishBatchInput, optFns ...func(*sns.Options)) (*sns.PublishBatchOutput, error)
}

// SNSEventPublisher publishes saga envelopes to a single SNS topic. The saga
// topic travels as a message attribute so each service queue can subscribe
// with a filter policy.
type SNSEventPublisher struct {
	client   SNSAPI
	topicArn string
	fifo     bool
}

func NewSNSEventPublisher(client SNSAPI, topicArn string) *SNSEventPublisher {
	return &SNSEventPublisher{
		client:   client,
		topicArn: topicArn,
		fifo:     strings.HasSuffix(topicArn, ".fifo"),
	}
}

// Publish publishes envelopes to topic in batches of ten
func (p *SNSEventPublisher) Publish(ctx context.Context, topic events.Topic, evts ...*events.Event) error {
	if topic == "" {
		return events.ErrInvalidTopic
	}
	if len(evts) == 0 {
		return nil
	}

	batchEvents := splitToChunks(evts, maxBatchSize)

	gr, ctx := errgroup.WithContext(ctx)

	for _, eventBatch := range batchEvents {
		gr.Go(func() error {
			return p.batchPublish(ctx, topic, eventBatch)
		})
	}

	return gr.Wait()
}

func (p *SNSEventPublisher) batchPublish(ctx context.Context, topic events.Topic, evts []*events.Event) error {
	requests := make([]types.PublishBatchRequestEntry, len(evts))

	for i, event := range evts {
		entry, err := p.buildEntry(ctx, topic, event)
		if err != nil {
			return err
		}
		requests[i] = entry
	}

	res, err := p.client.PublishBatch(ctx, &sns.PublishBatchInput{
		TopicArn:                   aws.String(p.topicArn),
		PublishBatchRequestEntries: requests,
	})
	if err != nil {
		return errors.Wrap(err, "failed to publish batch to SNS")
	}

	if len(res.Failed) > 0 {
		failed := make([]string, 0, len(res.Failed))
		for _, entry := range res.Failed {
			failed = append(failed, fmt.Sprintf("%s: %s", aws.ToString(entry.Id), aws.ToString(entry.Message)))
		}
		return errors.Errorf("failed to publish %d of %d events to %s: %s",
			len(res.Failed), len(evts), topic, strings.Join(failed, "; "))
	}

	return nil
}

func (p *SNSEventPublisher) buildEntry(ctx context.Context, topic events.Topic, event *events.Event) (types.PublishBatchRequestEntry, error) {
	payload, err := events.Marshal(event)
	if err != nil {
		return types.PublishBatchRequestEntry{}, err
	}

	msgJSON, err := json.Marshal(&snsMessage{
		ID:        event.ID.String(),
		Topic:     topic.String(),
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return types.PublishBatchRequestEntry{}, errors.Wrap(err, "failed to marshal message")
	}

	attrs := map[string]types.MessageAttributeValue{
		TopicAttribute: {
			DataType:    aws.String("String"),
			StringValue: aws.String(topic.String()),
		},
	}

	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	for k, v := range carrier {
		attrs[k] = types.MessageAttributeValue{
			DataType:    aws.String("String"),
			StringValue: aws.String(v),
		}
	}

	entry := types.PublishBatchRequestEntry{
		Id:                aws.String(event.ID.String()),
		Message:           aws.String(string(msgJSON)),
		MessageAttributes: attrs,
	}

	// FIFO topics keep every message of one saga attempt in order
	if p.fifo {
		entry.MessageGroupId = aws.String(event.TransactionID)
		entry.MessageDeduplicationId = aws.String(deduplicationID(topic, event))
	}

	return entry, nil
}

// deduplicationID is stable for redeliveries of one hop. The envelope id
// alone is not enough since the same envelope travels every hop of the saga.
func deduplicationID(topic events.Topic, event *events.Event) string {
	return fmt.Sprintf("%s:%s:%d", event.ID, topic, len(event.History))
}

// splitToChunks splits slice into chunks of specified size
func splitToChunks[T any](slice []T, chunkSize int) [][]T {
	var chunks [][]T
	for i := 0; i < len(slice); i += chunkSize {
		end := i + chunkSize
		if end > len(slice) {
			end = len(slice)
		}
		chunks = append(chunks, slice[i:end])
	}
	return chunks
}
