package infrastructure

import (
	"context"
	"database/sql"
	"time"

	"github.com/draftea/order-saga/inventory-service/domain"
	"github.com/draftea/order-saga/shared/models"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

var (
	_ domain.InventoryRepository      = (*PostgresInventoryRepository)(nil)
	_ domain.OrderInventoryRepository = (*PostgresOrderInventoryRepository)(nil)
)

const Schema = `
CREATE TABLE IF NOT EXISTS inventories (
	id           TEXT PRIMARY KEY,
	product_code TEXT        NOT NULL UNIQUE,
	available    INTEGER     NOT NULL CHECK (available >= 0),
	created_at   TIMESTAMPTZ NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS order_inventories (
	id             TEXT PRIMARY KEY,
	inventory_id   TEXT        NOT NULL REFERENCES inventories (id),
	order_id       TEXT        NOT NULL,
	transaction_id TEXT        NOT NULL,
	order_quantity INTEGER     NOT NULL,
	old_quantity   INTEGER     NOT NULL,
	new_quantity   INTEGER     NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL,
	updated_at     TIMESTAMPTZ NOT NULL,
	UNIQUE (order_id, transaction_id, inventory_id)
);
`

// Migrate creates the inventory tables if they do not exist
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return errors.Wrap(err, "failed to migrate inventory schema")
	}
	return nil
}

// PostgresInventoryRepository implements InventoryRepository using PostgreSQL
type PostgresInventoryRepository struct {
	db *sqlx.DB
}

func NewPostgresInventoryRepository(db *sqlx.DB) *PostgresInventoryRepository {
	return &PostgresInventoryRepository{db: db}
}

type postgresInventory struct {
	ID          string    `db:"id"`
	ProductCode string    `db:"product_code"`
	Available   int       `db:"available"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r *PostgresInventoryRepository) Save(ctx context.Context, inventory *domain.Inventory) error {
	query := `
		INSERT INTO inventories (id, product_code, available, created_at, updated_at)
		VALUES (:id, :product_code, :available, :created_at, :updated_at)
		ON CONFLICT (id) DO UPDATE
		SET available = EXCLUDED.available, updated_at = EXCLUDED.updated_at`

	_, err := r.db.NamedExecContext(ctx, query, &postgresInventory{
		ID:          inventory.ID.String(),
		ProductCode: inventory.ProductCode,
		Available:   inventory.Available,
		CreatedAt:   inventory.Timestamps.CreatedAt,
		UpdatedAt:   inventory.Timestamps.UpdatedAt,
	})
	if err != nil {
		return errors.Wrap(err, "failed to save inventory")
	}

	return nil
}

func (r *PostgresInventoryRepository) FindByID(ctx context.Context, id models.ID) (*domain.Inventory, error) {
	return r.findOne(ctx, "id", id.String())
}

func (r *PostgresInventoryRepository) FindByProductCode(ctx context.Context, productCode string) (*domain.Inventory, error) {
	return r.findOne(ctx, "product_code", productCode)
}

func (r *PostgresInventoryRepository) FindAll(ctx context.Context) ([]*domain.Inventory, error) {
	query := `
		SELECT id, product_code, available, created_at, updated_at
		FROM inventories
		ORDER BY product_code ASC`

	var rows []postgresInventory
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, errors.Wrap(err, "failed to list inventories")
	}

	result := make([]*domain.Inventory, 0, len(rows))
	for i := range rows {
		result = append(result, rows[i].toDomain())
	}
	return result, nil
}

func (r *PostgresInventoryRepository) findOne(ctx context.Context, column, value string) (*domain.Inventory, error) {
	query := `
		SELECT id, product_code, available, created_at, updated_at
		FROM inventories
		WHERE ` + column + ` = $1`

	var row postgresInventory
	if err := r.db.GetContext(ctx, &row, query, value); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to find inventory by %s", column)
	}

	return row.toDomain(), nil
}

func (p *postgresInventory) toDomain() *domain.Inventory {
	return &domain.Inventory{
		ID:          models.ID(p.ID),
		ProductCode: p.ProductCode,
		Available:   p.Available,
		Timestamps: models.Timestamps{
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		},
	}
}

// PostgresOrderInventoryRepository implements OrderInventoryRepository using PostgreSQL
type PostgresOrderInventoryRepository struct {
	db *sqlx.DB
}

func NewPostgresOrderInventoryRepository(db *sqlx.DB) *PostgresOrderInventoryRepository {
	return &PostgresOrderInventoryRepository{db: db}
}

type postgresOrderInventory struct {
	ID            string    `db:"id"`
	InventoryID   string    `db:"inventory_id"`
	OrderID       string    `db:"order_id"`
	TransactionID string    `db:"transaction_id"`
	OrderQuantity int       `db:"order_quantity"`
	OldQuantity   int       `db:"old_quantity"`
	NewQuantity   int       `db:"new_quantity"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// Save inserts a snapshot. Snapshots are never updated or deleted.
func (r *PostgresOrderInventoryRepository) Save(ctx context.Context, orderInventory *domain.OrderInventory) error {
	query := `
		INSERT INTO order_inventories (
			id, inventory_id, order_id, transaction_id,
			order_quantity, old_quantity, new_quantity,
			created_at, updated_at
		) VALUES (
			:id, :inventory_id, :order_id, :transaction_id,
			:order_quantity, :old_quantity, :new_quantity,
			:created_at, :updated_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, &postgresOrderInventory{
		ID:            orderInventory.ID.String(),
		InventoryID:   orderInventory.InventoryID.String(),
		OrderID:       orderInventory.OrderID,
		TransactionID: orderInventory.TransactionID,
		OrderQuantity: orderInventory.OrderQuantity,
		OldQuantity:   orderInventory.OldQuantity,
		NewQuantity:   orderInventory.NewQuantity,
		CreatedAt:     orderInventory.Timestamps.CreatedAt,
		UpdatedAt:     orderInventory.Timestamps.UpdatedAt,
	})
	if err != nil {
		return errors.Wrap(err, "failed to insert order inventory")
	}

	return nil
}

func (r *PostgresOrderInventoryRepository) ExistsByOrderIDAndTransactionID(ctx context.Context, orderID, transactionID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM order_inventories
			WHERE order_id = $1 AND transaction_id = $2
		)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, orderID, transactionID); err != nil {
		return false, errors.Wrap(err, "failed to check order inventory")
	}
	return exists, nil
}

func (r *PostgresOrderInventoryRepository) FindByOrderIDAndTransactionID(ctx context.Context, orderID, transactionID string) ([]*domain.OrderInventory, error) {
	query := `
		SELECT id, inventory_id, order_id, transaction_id,
			   order_quantity, old_quantity, new_quantity,
			   created_at, updated_at
		FROM order_inventories
		WHERE order_id = $1 AND transaction_id = $2
		ORDER BY created_at ASC`

	var rows []postgresOrderInventory
	if err := r.db.SelectContext(ctx, &rows, query, orderID, transactionID); err != nil {
		return nil, errors.Wrap(err, "failed to find order inventories")
	}

	result := make([]*domain.OrderInventory, 0, len(rows))
	for _, row := range rows {
		result = append(result, &domain.OrderInventory{
			ID:            models.ID(row.ID),
			InventoryID:   models.ID(row.InventoryID),
			OrderID:       row.OrderID,
			TransactionID: row.TransactionID,
			OrderQuantity: row.OrderQuantity,
			OldQuantity:   row.OldQuantity,
			NewQuantity:   row.NewQuantity,
			Timestamps: models.Timestamps{
				CreatedAt: row.CreatedAt,
				UpdatedAt: row.UpdatedAt,
			},
		})
	}
	return result, nil
}
