package infrastructure

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/draftea/order-saga/shared/events"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

type sqsMessage struct {
	Message types.Message
	Topic   events.Topic
	Event   *events.Event
	Err     error
}

// Dispatcher delivers a decoded envelope received on topic
type Dispatcher interface {
	Dispatch(ctx context.Context, topic events.Topic, event *events.Event) error
}

// SQSAPI is the subset of the SQS client used by the subscriber
type SQSAPI interface {
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
	ChangeMessageVisibility(ctx context.Context, params *sqs.ChangeMessageVisibilityInput, optFns ...func(*sqs.Options)) (*sqs.ChangeMessageVisibilityOutput, error)
}

// SQSEventSubscriber consumes a service queue with a pool of readers, workers
// and cleaners. Successfully handled messages are deleted; failed ones stay
// on the queue with an extended visibility timeout so they are redelivered.
type SQSEventSubscriber struct {
	mux              sync.RWMutex
	inboundMessages  chan *sqsMessage
	outboundMessages chan *sqsMessage
	cancel           context.CancelFunc
	running          atomic.Bool
	options          *sqsSubscriberOptions

	client     SQSAPI
	queueURL   string
	dispatcher Dispatcher
}

type sqsSubscriberOptions struct {
	workers                        int32
	readers                        int32
	cleaners                       int32
	maxNumberOfMessages            int32
	waitTimeSeconds                int32
	visibilityTimeout              int32
	sleepTimeAfterEmptyReceive     time.Duration
	sleepTimeAfterError            time.Duration
	ack                            bool
	extendVisibilityTimeoutOnError bool
	receiveCountRange              int32
	visibilityTimeoutOffset        int32
	maxVisibilityTimeout           int32
	logger                         *slog.Logger
}

type SQSSubscriberOption func(*sqsSubscriberOptions)

func WithWorkers(workers int32) SQSSubscriberOption {
	return func(o *sqsSubscriberOptions) {
		o.workers = workers
	}
}

func WithReaders(readers int32) SQSSubscriberOption {
	return func(o *sqsSubscriberOptions) {
		o.readers = readers
	}
}

func WithVisibilityTimeout(timeout int32) SQSSubscriberOption {
	return func(o *sqsSubscriberOptions) {
		o.visibilityTimeout = timeout
	}
}

func WithWaitTimeSeconds(seconds int32) SQSSubscriberOption {
	return func(o *sqsSubscriberOptions) {
		o.waitTimeSeconds = seconds
	}
}

func WithSubscriberLogger(logger *slog.Logger) SQSSubscriberOption {
	return func(o *sqsSubscriberOptions) {
		o.logger = logger
	}
}

func NewSQSEventSubscriber(
	client SQSAPI,
	queueURL string,
	dispatcher Dispatcher,
	opts ...SQSSubscriberOption,
) *SQSEventSubscriber {
	options := &sqsSubscriberOptions{
		workers:                        30,
		readers:                        1,
		cleaners:                       2,
		maxNumberOfMessages:            5,
		waitTimeSeconds:                15,
		visibilityTimeout:              30,
		sleepTimeAfterEmptyReceive:     10 * time.Second,
		sleepTimeAfterError:            20 * time.Second,
		ack:                            true,
		extendVisibilityTimeoutOnError: true,
		receiveCountRange:              3,
		visibilityTimeoutOffset:        30,
		maxVisibilityTimeout:           900, // 15 minutes
		logger:                         slog.Default(),
	}

	for _, opt := range opts {
		opt(options)
	}

	return &SQSEventSubscriber{
		client:     client,
		queueURL:   queueURL,
		dispatcher: dispatcher,
		options:    options,
	}
}

// Start launches the reader, worker and cleaner goroutines
func (s *SQSEventSubscriber) Start(ctx context.Context) error {
	if s.running.Load() {
		return nil
	}

	s.mux.Lock()
	defer s.mux.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.inboundMessages = make(chan *sqsMessage, 10)
	s.outboundMessages = make(chan *sqsMessage, 10)
	s.cancel = cancel

	for i := 0; i < int(s.options.workers); i++ {
		go s.startWorker(ctx, s.inboundMessages, s.outboundMessages)
	}

	for i := 0; i < int(s.options.readers); i++ {
		go s.startReader(ctx, s.inboundMessages)
	}

	for i := 0; i < int(s.options.cleaners); i++ {
		go s.startCleaner(ctx, s.outboundMessages)
	}

	s.running.Store(true)

	return nil
}

// Stop cancels every goroutine. In-flight messages that were not deleted
// become visible again once their visibility timeout expires.
func (s *SQSEventSubscriber) Stop(_ context.Context) error {
	if !s.running.Load() {
		return nil
	}

	s.mux.Lock()
	defer s.mux.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	s.cancel = nil
	s.running.Store(false)

	return nil
}

func (s *SQSEventSubscriber) startWorker(ctx context.Context, in <-chan *sqsMessage, out chan<- *sqsMessage) {
	for {
		select {
		case <-ctx.Done():
			return
		case message := <-in:
			s.handle(ctx, message, out)
		}
	}
}

func (s *SQSEventSubscriber) startReader(ctx context.Context, in chan<- *sqsMessage) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
			if err := s.read(ctx, in); err != nil && ctx.Err() == nil {
				s.options.logger.ErrorContext(ctx, "failed to read from queue",
					slog.String("queue_url", s.queueURL),
					slog.String("error", err.Error()),
				)
				sleep(ctx, s.options.sleepTimeAfterError)
			}
		}
	}
}

func (s *SQSEventSubscriber) startCleaner(ctx context.Context, out <-chan *sqsMessage) {
	for {
		select {
		case <-ctx.Done():
			return
		case message := <-out:
			if err := s.clean(ctx, message); err != nil {
				s.options.logger.ErrorContext(ctx, "failed to settle message",
					slog.String("queue_url", s.queueURL),
					slog.String("message_id", aws.ToString(message.Message.MessageId)),
					slog.String("error", err.Error()),
				)
			}
		}
	}
}

func (s *SQSEventSubscriber) read(ctx context.Context, in chan<- *sqsMessage) error {
	output, err := s.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(s.queueURL),
		MaxNumberOfMessages: s.options.maxNumberOfMessages,
		WaitTimeSeconds:     s.options.waitTimeSeconds,
		VisibilityTimeout:   s.options.visibilityTimeout,
		MessageSystemAttributeNames: []types.MessageSystemAttributeName{
			types.MessageSystemAttributeNameApproximateReceiveCount,
			types.MessageSystemAttributeNameApproximateFirstReceiveTimestamp,
		},
		MessageAttributeNames: []string{"All"},
	})
	if err != nil {
		return errors.Wrap(err, "failed to receive message from SQS")
	}

	if len(output.Messages) == 0 {
		sleep(ctx, s.options.sleepTimeAfterEmptyReceive)
		return nil
	}

	for _, message := range output.Messages {
		topic, event, err := decodeMessage(message)
		if err != nil {
			// left on the queue, the redrive policy moves it to the DLQ
			s.options.logger.ErrorContext(ctx, "failed to decode message",
				slog.String("message_id", aws.ToString(message.MessageId)),
				slog.String("error", err.Error()),
			)
			continue
		}

		select {
		case in <- &sqsMessage{Message: message, Topic: topic, Event: event}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return nil
}

func (s *SQSEventSubscriber) handle(ctx context.Context, message *sqsMessage, out chan<- *sqsMessage) {
	msgCtx := otel.GetTextMapPropagator().Extract(ctx, messageCarrier(message.Message))

	if s.dispatcher == nil {
		message.Err = errors.New("no dispatcher configured")
	} else {
		message.Err = s.dispatcher.Dispatch(msgCtx, message.Topic, message.Event)
	}

	if message.Err != nil {
		s.options.logger.ErrorContext(msgCtx, "failed to handle message",
			slog.String("topic", message.Topic.String()),
			slog.String("event_id", message.Event.ID.String()),
			slog.String("transaction_id", message.Event.TransactionID),
			slog.String("error", message.Err.Error()),
		)
	}

	select {
	case out <- message:
	case <-ctx.Done():
	}
}

func (s *SQSEventSubscriber) clean(ctx context.Context, message *sqsMessage) error {
	if message.Err != nil {
		if s.options.extendVisibilityTimeoutOnError {
			_, err := s.client.ChangeMessageVisibility(ctx, &sqs.ChangeMessageVisibilityInput{
				QueueUrl:          aws.String(s.queueURL),
				ReceiptHandle:     message.Message.ReceiptHandle,
				VisibilityTimeout: s.backoffVisibility(message.Message),
			})
			if err != nil {
				return errors.Wrap(err, "failed to extend visibility timeout")
			}
		}
		return nil
	}

	if s.options.ack {
		_, err := s.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
			QueueUrl:      aws.String(s.queueURL),
			ReceiptHandle: message.Message.ReceiptHandle,
		})
		if err != nil {
			return errors.Wrap(err, "failed to delete message from SQS")
		}
	}

	return nil
}

func (s *SQSEventSubscriber) backoffVisibility(message types.Message) int32 {
	receiveCount, err := strconv.Atoi(message.Attributes[string(types.MessageSystemAttributeNameApproximateReceiveCount)])
	if err != nil {
		receiveCount = 1
	}

	visibilityTimeout := s.options.visibilityTimeout
	visibilityTimeout += (int32(receiveCount) / s.options.receiveCountRange) * s.options.visibilityTimeoutOffset

	if visibilityTimeout > s.options.maxVisibilityTimeout {
		visibilityTimeout = s.options.maxVisibilityTimeout
	}
	return visibilityTimeout
}

// snsNotification is the envelope SNS wraps messages in when raw message
// delivery is disabled on the subscription
type snsNotification struct {
	Type              string `json:"Type"`
	Message           string `json:"Message"`
	MessageAttributes map[string]struct {
		Value string `json:"Value"`
	} `json:"MessageAttributes"`
}

// decodeMessage extracts the saga topic and envelope from an SQS message
// delivered from SNS, with or without raw message delivery.
func decodeMessage(message types.Message) (events.Topic, *events.Event, error) {
	body := []byte(aws.ToString(message.Body))

	var notification snsNotification
	if err := json.Unmarshal(body, &notification); err == nil && notification.Type == "Notification" {
		body = []byte(notification.Message)
	}

	var msg snsMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return "", nil, errors.Wrap(err, "failed to unmarshal message body")
	}

	topic := events.Topic(msg.Topic)
	if topic == "" {
		if attr, ok := message.MessageAttributes[TopicAttribute]; ok {
			topic = events.Topic(aws.ToString(attr.StringValue))
		} else if attr, ok := notification.MessageAttributes[TopicAttribute]; ok {
			topic = events.Topic(attr.Value)
		}
	}
	if topic == "" {
		return "", nil, events.ErrInvalidTopic
	}

	event, err := events.Unmarshal(msg.Payload)
	if err != nil {
		return "", nil, err
	}

	return topic, event, nil
}

func messageCarrier(message types.Message) propagation.MapCarrier {
	carrier := propagation.MapCarrier{}
	for k, v := range message.MessageAttributes {
		if v.StringValue != nil {
			carrier[k] = *v.StringValue
		}
	}
	return carrier
}

func sleep(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
