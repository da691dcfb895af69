package infrastructure

import (
	"context"
	"database/sql"
	"time"

	"github.com/draftea/order-saga/shared/events"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

var _ events.EventStore = (*PostgresEventStore)(nil)

// EventStoreSchema creates the append-only saga history table. A row is
// unique per (event_id, history_length) so redelivered envelopes are
// stored once.
const EventStoreSchema = `
CREATE TABLE IF NOT EXISTS saga_events (
	row_id         BIGSERIAL PRIMARY KEY,
	event_id       TEXT        NOT NULL,
	order_id       TEXT        NOT NULL,
	transaction_id TEXT        NOT NULL,
	source         TEXT        NOT NULL DEFAULT '',
	status         TEXT        NOT NULL DEFAULT '',
	history_length INTEGER     NOT NULL,
	envelope       JSONB       NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL,
	UNIQUE (event_id, history_length)
);
CREATE INDEX IF NOT EXISTS saga_events_order_id_idx ON saga_events (order_id, created_at DESC);
CREATE INDEX IF NOT EXISTS saga_events_transaction_id_idx ON saga_events (transaction_id, created_at DESC);
`

// PostgresEventStore implements events.EventStore on a jsonb column
type PostgresEventStore struct {
	db *sqlx.DB
}

func NewPostgresEventStore(db *sqlx.DB) *PostgresEventStore {
	return &PostgresEventStore{db: db}
}

type postgresEvent struct {
	EventID       string    `db:"event_id"`
	OrderID       string    `db:"order_id"`
	TransactionID string    `db:"transaction_id"`
	Source        string    `db:"source"`
	Status        string    `db:"status"`
	HistoryLength int       `db:"history_length"`
	Envelope      []byte    `db:"envelope"`
	CreatedAt     time.Time `db:"created_at"`
}

// Migrate creates the table if it does not exist
func (es *PostgresEventStore) Migrate(ctx context.Context) error {
	if _, err := es.db.ExecContext(ctx, EventStoreSchema); err != nil {
		return errors.Wrap(err, "failed to migrate saga_events")
	}
	return nil
}

func (es *PostgresEventStore) Save(ctx context.Context, event *events.Event) error {
	pgEvent, err := toPostgresEvent(event)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO saga_events (
			event_id, order_id, transaction_id, source, status,
			history_length, envelope, created_at
		) VALUES (
			:event_id, :order_id, :transaction_id, :source, :status,
			:history_length, :envelope, :created_at
		)
		ON CONFLICT (event_id, history_length) DO NOTHING`

	if _, err := es.db.NamedExecContext(ctx, query, pgEvent); err != nil {
		return errors.Wrap(err, "failed to insert saga event")
	}

	return nil
}

func (es *PostgresEventStore) FindLatestByOrderID(ctx context.Context, orderID string) (*events.Event, error) {
	return es.findLatest(ctx, "order_id", orderID)
}

func (es *PostgresEventStore) FindLatestByTransactionID(ctx context.Context, transactionID string) (*events.Event, error) {
	return es.findLatest(ctx, "transaction_id", transactionID)
}

// findLatest returns nil, nil when nothing matches. column is never user input.
func (es *PostgresEventStore) findLatest(ctx context.Context, column, value string) (*events.Event, error) {
	query := `
		SELECT event_id, order_id, transaction_id, source, status,
			   history_length, envelope, created_at
		FROM saga_events
		WHERE ` + column + ` = $1
		ORDER BY created_at DESC, row_id DESC
		LIMIT 1`

	var pgEvent postgresEvent
	if err := es.db.GetContext(ctx, &pgEvent, query, value); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to get saga event by %s", column)
	}

	return events.Unmarshal(pgEvent.Envelope)
}

// FindAll returns every stored envelope, newest first
func (es *PostgresEventStore) FindAll(ctx context.Context) ([]*events.Event, error) {
	query := `
		SELECT event_id, order_id, transaction_id, source, status,
			   history_length, envelope, created_at
		FROM saga_events
		ORDER BY created_at DESC, row_id DESC`

	var pgEvents []postgresEvent
	if err := es.db.SelectContext(ctx, &pgEvents, query); err != nil {
		return nil, errors.Wrap(err, "failed to list saga events")
	}

	result := make([]*events.Event, 0, len(pgEvents))
	for _, pgEvent := range pgEvents {
		event, err := events.Unmarshal(pgEvent.Envelope)
		if err != nil {
			return nil, err
		}
		result = append(result, event)
	}

	return result, nil
}

func toPostgresEvent(event *events.Event) (*postgresEvent, error) {
	envelope, err := events.Marshal(event)
	if err != nil {
		return nil, err
	}

	return &postgresEvent{
		EventID:       event.ID.String(),
		OrderID:       event.GetOrderID(),
		TransactionID: event.TransactionID,
		Source:        event.Source.String(),
		Status:        event.Status.String(),
		HistoryLength: len(event.History),
		Envelope:      envelope,
		CreatedAt:     event.CreatedAt,
	}, nil
}
