package infrastructure

import (
	"context"
	"database/sql"
	"time"

	"github.com/draftea/order-saga/payment-service/domain"
	"github.com/draftea/order-saga/shared/models"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

var _ domain.PaymentRepository = (*PostgresPaymentRepository)(nil)

const Schema = `
CREATE TABLE IF NOT EXISTS payments (
	id             TEXT PRIMARY KEY,
	order_id       TEXT             NOT NULL,
	transaction_id TEXT             NOT NULL,
	total_amount   DOUBLE PRECISION NOT NULL,
	total_items    INTEGER          NOT NULL,
	status         TEXT             NOT NULL,
	created_at     TIMESTAMPTZ      NOT NULL,
	updated_at     TIMESTAMPTZ      NOT NULL,
	UNIQUE (order_id, transaction_id)
);
`

// Migrate creates the payments table if it does not exist
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return errors.Wrap(err, "failed to migrate payment schema")
	}
	return nil
}

// PostgresPaymentRepository implements PaymentRepository using PostgreSQL
type PostgresPaymentRepository struct {
	db *sqlx.DB
}

func NewPostgresPaymentRepository(db *sqlx.DB) *PostgresPaymentRepository {
	return &PostgresPaymentRepository{db: db}
}

// postgresPayment represents payment in database
type postgresPayment struct {
	ID            string    `db:"id"`
	OrderID       string    `db:"order_id"`
	TransactionID string    `db:"transaction_id"`
	TotalAmount   float64   `db:"total_amount"`
	TotalItems    int       `db:"total_items"`
	Status        string    `db:"status"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// Save inserts the payment or updates its status. A second payment for the
// same order and transaction violates the unique constraint.
func (r *PostgresPaymentRepository) Save(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (
			id, order_id, transaction_id, total_amount, total_items,
			status, created_at, updated_at
		) VALUES (
			:id, :order_id, :transaction_id, :total_amount, :total_items,
			:status, :created_at, :updated_at
		)
		ON CONFLICT (id) DO UPDATE
		SET status = EXCLUDED.status,
			total_amount = EXCLUDED.total_amount,
			total_items = EXCLUDED.total_items,
			updated_at = EXCLUDED.updated_at`

	_, err := r.db.NamedExecContext(ctx, query, &postgresPayment{
		ID:            payment.ID.String(),
		OrderID:       payment.OrderID,
		TransactionID: payment.TransactionID,
		TotalAmount:   payment.TotalAmount,
		TotalItems:    payment.TotalItems,
		Status:        string(payment.Status),
		CreatedAt:     payment.Timestamps.CreatedAt,
		UpdatedAt:     payment.Timestamps.UpdatedAt,
	})
	if err != nil {
		return errors.Wrap(err, "failed to save payment")
	}

	return nil
}

func (r *PostgresPaymentRepository) ExistsByOrderIDAndTransactionID(ctx context.Context, orderID, transactionID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM payments
			WHERE order_id = $1 AND transaction_id = $2
		)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, orderID, transactionID); err != nil {
		return false, errors.Wrap(err, "failed to check payment")
	}
	return exists, nil
}

func (r *PostgresPaymentRepository) FindByOrderIDAndTransactionID(ctx context.Context, orderID, transactionID string) (*domain.Payment, error) {
	query := `
		SELECT id, order_id, transaction_id, total_amount, total_items,
			   status, created_at, updated_at
		FROM payments
		WHERE order_id = $1 AND transaction_id = $2`

	var row postgresPayment
	if err := r.db.GetContext(ctx, &row, query, orderID, transactionID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to find payment")
	}

	return &domain.Payment{
		ID:            models.ID(row.ID),
		OrderID:       row.OrderID,
		TransactionID: row.TransactionID,
		TotalAmount:   row.TotalAmount,
		TotalItems:    row.TotalItems,
		Status:        domain.PaymentStatus(row.Status),
		Timestamps: models.Timestamps{
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		},
	}, nil
}
