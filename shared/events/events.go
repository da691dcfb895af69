package events

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/draftea/order-saga/shared/models"
	"github.com/pkg/errors"
)

var (
	ErrInvalidTopic   = errors.New("invalid topic")
	ErrInvalidPayload = errors.New("invalid payload")
)

// Topic represents a transport destination with pattern matching support
type Topic string

func NewTopic(topic string) (Topic, error) {
	if topic == "" {
		return "", ErrInvalidTopic
	}
	return Topic(topic), nil
}

// Matches reports whether the topic matches pattern. A pattern may use "*"
// for exactly one dot separated segment, "#" alone for everything, or a
// leading/trailing "#" for suffix/prefix matching.
func (t Topic) Matches(pattern Topic) bool {
	topicStr := t.String()
	patternStr := pattern.String()

	if patternStr == "#" {
		return true
	}

	if strings.HasPrefix(patternStr, "#") && strings.HasSuffix(patternStr, "#") {
		return strings.Contains(topicStr, strings.Trim(patternStr, "#"))
	}

	if strings.HasPrefix(patternStr, "#") {
		return strings.HasSuffix(topicStr, strings.TrimPrefix(patternStr, "#"))
	}

	if strings.HasSuffix(patternStr, "#") {
		return strings.HasPrefix(topicStr, strings.TrimSuffix(patternStr, "#"))
	}

	return matchSegments(strings.Split(patternStr, "."), strings.Split(topicStr, "."))
}

func (t Topic) String() string {
	return string(t)
}

func matchSegments(patternParts, topicParts []string) bool {
	if len(patternParts) != len(topicParts) {
		return false
	}

	for i := range patternParts {
		if patternParts[i] != "*" && patternParts[i] != topicParts[i] {
			return false
		}
	}

	return true
}

// Source names the component that last wrote an envelope
type Source string

const (
	SourceOrchestrator Source = "ORCHESTRATOR"
	SourceInventory    Source = "INVENTORY_SERVICE"
	SourcePayment      Source = "PAYMENT_SERVICE"
)

// Sources lists every known source in saga order
func Sources() []Source {
	return []Source{SourceOrchestrator, SourceInventory, SourcePayment}
}

func (s Source) String() string {
	return string(s)
}

// MarshalText implements encoding.TextMarshaler
func (s Source) MarshalText() ([]byte, error) {
	return []byte(s), nil
}

// UnmarshalText rejects names outside the known set
func (s *Source) UnmarshalText(text []byte) error {
	v := Source(text)
	for _, known := range Sources() {
		if v == known {
			*s = v
			return nil
		}
	}
	return NewValidationError("unknown event source %q", string(text))
}

// Status is the saga outcome carried by an envelope
type Status string

const (
	StatusSuccess         Status = "SUCCESS"
	StatusFail            Status = "FAIL"
	StatusRollbackPending Status = "ROLLBACK_PENDING"
)

// Statuses lists every known status
func Statuses() []Status {
	return []Status{StatusSuccess, StatusFail, StatusRollbackPending}
}

func (s Status) String() string {
	return string(s)
}

// MarshalText implements encoding.TextMarshaler
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s), nil
}

// UnmarshalText rejects names outside the known set
func (s *Status) UnmarshalText(text []byte) error {
	v := Status(text)
	for _, known := range Statuses() {
		if v == known {
			*s = v
			return nil
		}
	}
	return NewValidationError("unknown saga status %q", string(text))
}

// OrderProduct is one line item of an order
type OrderProduct struct {
	Code      string  `json:"code"`
	Quantity  int     `json:"quantity"`
	UnitValue float64 `json:"unitValue"`
}

// Order is the business payload travelling through the saga.
// TotalAmount and TotalItems are filled in by the payment step.
type Order struct {
	ID            string         `json:"id"`
	Products      []OrderProduct `json:"products"`
	TotalAmount   float64        `json:"totalAmount"`
	TotalItems    int            `json:"totalItems"`
	TransactionID string         `json:"transactionId"`
	CreatedAt     time.Time      `json:"createdAt"`
}

// History is one audit entry of a saga instance
type History struct {
	Source    Source    `json:"source"`
	Status    Status    `json:"status"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Event is the saga envelope shared by every service
type Event struct {
	ID            models.ID `json:"id"`
	TransactionID string    `json:"transactionId"`
	OrderID       string    `json:"orderId"`
	Payload       Order     `json:"payload"`
	Source        Source    `json:"source,omitempty"`
	Status        Status    `json:"status,omitempty"`
	History       []History `json:"history"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Publisher publishes envelopes to a topic
type Publisher interface {
	Publish(ctx context.Context, topic Topic, events ...*Event) error
}

// Subscriber subscribes handlers to topics
type Subscriber interface {
	Subscribe(ctx context.Context, topic Topic, handler EventHandler) error
}

// EventHandler handles envelopes delivered from a topic
type EventHandler interface {
	Handle(ctx context.Context, event *Event) error
}

// EventHandlerFunc adapts a function to EventHandler
type EventHandlerFunc func(ctx context.Context, event *Event) error

func (f EventHandlerFunc) Handle(ctx context.Context, event *Event) error {
	return f(ctx, event)
}

// EventStore persists envelopes that reached the end of a saga
type EventStore interface {
	Save(ctx context.Context, event *Event) error
	FindLatestByOrderID(ctx context.Context, orderID string) (*Event, error)
	FindLatestByTransactionID(ctx context.Context, transactionID string) (*Event, error)
	FindAll(ctx context.Context) ([]*Event, error)
}

// NewEvent creates the initial envelope of a saga attempt for order
func NewEvent(order Order) *Event {
	return &Event{
		ID:            models.GenerateUUID(),
		TransactionID: order.TransactionID,
		OrderID:       order.ID,
		Payload:       order,
		History:       make([]History, 0),
		CreatedAt:     time.Now().UTC(),
	}
}

// Stamp sets source and status and appends the matching history entry,
// keeping the envelope's stamp consistent with its last history entry.
func (e *Event) Stamp(source Source, status Status, message string) {
	now := time.Now().UTC()
	e.Source = source
	e.Status = status
	e.CreatedAt = now
	e.History = append(e.History, History{
		Source:    source,
		Status:    status,
		Message:   message,
		CreatedAt: now,
	})
}

// AddHistory appends an entry for the current stamp
func (e *Event) AddHistory(message string) {
	e.History = append(e.History, History{
		Source:    e.Source,
		Status:    e.Status,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	})
}

// LastHistory returns the most recent history entry
func (e *Event) LastHistory() (History, bool) {
	if len(e.History) == 0 {
		return History{}, false
	}
	return e.History[len(e.History)-1], true
}

// Validate checks the envelope carries what a participant needs
func (e *Event) Validate() error {
	if e.OrderID == "" && e.Payload.ID == "" {
		return NewValidationError("order id is required")
	}

	if e.TransactionID == "" {
		return NewValidationError("transaction id is required")
	}

	if len(e.Payload.Products) == 0 {
		return NewValidationError("order must have at least one product")
	}

	return nil
}

// GetOrderID returns the order id, falling back to the payload
func (e *Event) GetOrderID() string {
	if e.OrderID != "" {
		return e.OrderID
	}
	return e.Payload.ID
}

// Clone creates a deep copy of the envelope
func (e *Event) Clone() *Event {
	clone := *e
	clone.Payload.Products = append([]OrderProduct(nil), e.Payload.Products...)
	clone.History = append([]History(nil), e.History...)
	return &clone
}

// Marshal encodes the envelope to its wire form
func Marshal(e *Event) ([]byte, error) {
	if e == nil {
		return nil, ErrInvalidPayload
	}
	b, err := json.Marshal(e)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal event")
	}
	return b, nil
}

// Unmarshal decodes an envelope from its wire form
func Unmarshal(data []byte) (*Event, error) {
	if len(data) == 0 {
		return nil, ErrInvalidPayload
	}

	var event Event
	if err := json.Unmarshal(data, &event); err != nil {
		if KindOf(err) == KindValidation {
			return nil, err
		}
		return nil, errors.Wrap(err, "failed to unmarshal event")
	}

	if event.History == nil {
		event.History = make([]History, 0)
	}

	return &event, nil
}
