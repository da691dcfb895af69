package saga

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/draftea/order-saga/shared/events"
)

// Row is one entry of the routing table
type Row struct {
	Source events.Source
	Status events.Status
	Topic  events.Topic
}

// RoutingTable maps (source, status) pairs to the next topic of the saga.
// Rows are evaluated in order and the first match wins.
type RoutingTable []Row

var defaultRoutingTable = RoutingTable{
	{Source: events.SourceOrchestrator, Status: events.StatusSuccess, Topic: events.InventorySuccessTopic},
	{Source: events.SourceOrchestrator, Status: events.StatusFail, Topic: events.FinishFailTopic},

	{Source: events.SourceInventory, Status: events.StatusSuccess, Topic: events.PaymentSuccessTopic},
	{Source: events.SourceInventory, Status: events.StatusRollbackPending, Topic: events.InventoryFailTopic},
	{Source: events.SourceInventory, Status: events.StatusFail, Topic: events.FinishFailTopic},

	{Source: events.SourcePayment, Status: events.StatusSuccess, Topic: events.FinishSuccessTopic},
	{Source: events.SourcePayment, Status: events.StatusRollbackPending, Topic: events.PaymentFailTopic},
	{Source: events.SourcePayment, Status: events.StatusFail, Topic: events.InventoryFailTopic},
}

// DefaultRoutingTable returns a copy of the inventory -> payment saga table
func DefaultRoutingTable() RoutingTable {
	return append(RoutingTable(nil), defaultRoutingTable...)
}

// Lookup returns the topic of the first row matching source and status
func (t RoutingTable) Lookup(source events.Source, status events.Status) (events.Topic, bool) {
	for _, row := range t {
		if row.Source == source && row.Status == status {
			return row.Topic, true
		}
	}
	return "", false
}

// Validate checks that every (source, status) pair has exactly one row
func (t RoutingTable) Validate(sources []events.Source, statuses []events.Status) error {
	for _, source := range sources {
		for _, status := range statuses {
			count := 0
			for _, row := range t {
				if row.Source == source && row.Status == status {
					count++
				}
			}

			switch {
			case count == 0:
				return fmt.Errorf("routing table has no row for %s/%s", source, status)
			case count > 1:
				return fmt.Errorf("routing table has %d rows for %s/%s", count, source, status)
			}
		}
	}
	return nil
}

// ExecutionController decides the next topic of a saga from the envelope stamp
type ExecutionController struct {
	table  RoutingTable
	logger *slog.Logger
}

func NewExecutionController(table RoutingTable, logger *slog.Logger) *ExecutionController {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExecutionController{
		table:  table,
		logger: logger,
	}
}

// NextTopic resolves the topic the envelope must be published to next
func (c *ExecutionController) NextTopic(ctx context.Context, event *events.Event) (events.Topic, error) {
	if event == nil || event.Source == "" || event.Status == "" {
		return "", events.NewValidationError("source/status required")
	}

	topic, ok := c.table.Lookup(event.Source, event.Status)
	if !ok {
		return "", events.NewNotFoundError("no topic for source/status")
	}

	c.logCurrentSaga(ctx, event, topic)

	return topic, nil
}

func (c *ExecutionController) logCurrentSaga(ctx context.Context, event *events.Event, topic events.Topic) {
	var step string
	switch event.Status {
	case events.StatusSuccess:
		step = "SUCCESS"
	case events.StatusRollbackPending:
		step = "SENDING TO ROLLBACK CURRENT SERVICE"
	case events.StatusFail:
		step = "SENDING TO ROLLBACK PREVIOUS SERVICE"
	}

	c.logger.InfoContext(ctx, "CURRENT SAGA",
		slog.String("source", event.Source.String()),
		slog.String("step", step),
		slog.String("next_topic", topic.String()),
		slog.String("order_id", event.GetOrderID()),
		slog.String("transaction_id", event.TransactionID),
		slog.String("event_id", event.ID.String()),
	)
}
