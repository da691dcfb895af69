package infrastructure

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/draftea/order-saga/order-service/domain"
	"github.com/draftea/order-saga/shared/events"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

var _ domain.OrderRepository = (*PostgresOrderRepository)(nil)

const Schema = `
CREATE TABLE IF NOT EXISTS orders (
	id             TEXT PRIMARY KEY,
	transaction_id TEXT        NOT NULL UNIQUE,
	products       JSONB       NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL
);
`

// Migrate creates the orders table if it does not exist
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return errors.Wrap(err, "failed to migrate order schema")
	}
	return nil
}

// PostgresOrderRepository implements OrderRepository using PostgreSQL
type PostgresOrderRepository struct {
	db *sqlx.DB
}

func NewPostgresOrderRepository(db *sqlx.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db}
}

type postgresOrder struct {
	ID            string    `db:"id"`
	TransactionID string    `db:"transaction_id"`
	Products      []byte    `db:"products"`
	CreatedAt     time.Time `db:"created_at"`
}

// Save inserts the order. Orders are immutable once stored.
func (r *PostgresOrderRepository) Save(ctx context.Context, order *domain.Order) error {
	products, err := json.Marshal(order.Products)
	if err != nil {
		return errors.Wrap(err, "failed to marshal products")
	}

	query := `
		INSERT INTO orders (id, transaction_id, products, created_at)
		VALUES (:id, :transaction_id, :products, :created_at)
		ON CONFLICT (id) DO NOTHING`

	_, err = r.db.NamedExecContext(ctx, query, &postgresOrder{
		ID:            order.ID,
		TransactionID: order.TransactionID,
		Products:      products,
		CreatedAt:     order.CreatedAt,
	})
	if err != nil {
		return errors.Wrap(err, "failed to save order")
	}

	return nil
}

func (r *PostgresOrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `
		SELECT id, transaction_id, products, created_at
		FROM orders
		WHERE id = $1`

	var row postgresOrder
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to find order")
	}

	var products []events.OrderProduct
	if err := json.Unmarshal(row.Products, &products); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal products")
	}

	return &domain.Order{
		ID:            row.ID,
		TransactionID: row.TransactionID,
		Products:      products,
		CreatedAt:     row.CreatedAt,
	}, nil
}
