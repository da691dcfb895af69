package domain

import (
	"context"

	"github.com/draftea/order-saga/shared/events"
	"github.com/draftea/order-saga/shared/models"
)

// Inventory is the available stock of one product
type Inventory struct {
	ID          models.ID `json:"id"`
	ProductCode string    `json:"product_code"`
	Available   int       `json:"available"`
	Timestamps  models.Timestamps
}

// OrderInventory is the compensation snapshot of one inventory row touched
// by a saga transaction
type OrderInventory struct {
	ID            models.ID `json:"id"`
	InventoryID   models.ID `json:"inventory_id"`
	OrderID       string    `json:"order_id"`
	TransactionID string    `json:"transaction_id"`
	OrderQuantity int       `json:"order_quantity"`
	OldQuantity   int       `json:"old_quantity"`
	NewQuantity   int       `json:"new_quantity"`
	Timestamps    models.Timestamps
}

func NewInventory(productCode string, available int) *Inventory {
	return &Inventory{
		ID:          models.GenerateUUID(),
		ProductCode: productCode,
		Available:   available,
		Timestamps:  models.NewTimestamps(),
	}
}

// NewOrderInventory records the stock of inventory before and after
// removing quantity for the transaction
func NewOrderInventory(inventory *Inventory, orderID, transactionID string, quantity int) *OrderInventory {
	return &OrderInventory{
		ID:            models.GenerateUUID(),
		InventoryID:   inventory.ID,
		OrderID:       orderID,
		TransactionID: transactionID,
		OrderQuantity: quantity,
		OldQuantity:   inventory.Available,
		NewQuantity:   inventory.Available - quantity,
		Timestamps:    models.NewTimestamps(),
	}
}

// Decrease removes quantity from the available stock
func (i *Inventory) Decrease(quantity int) error {
	if i.Available < quantity {
		return events.NewDomainRuleError("Product is out of stock!")
	}
	i.Available -= quantity
	i.Timestamps = i.Timestamps.Update()
	return nil
}

// Restore sets the available stock back to a snapshot value
func (i *Inventory) Restore(snapshot *OrderInventory) {
	i.Available = snapshot.OldQuantity
	i.Timestamps = i.Timestamps.Update()
}

// InventoryRepository returns nil, nil when an inventory does not exist
type InventoryRepository interface {
	Save(ctx context.Context, inventory *Inventory) error
	FindByID(ctx context.Context, id models.ID) (*Inventory, error)
	FindByProductCode(ctx context.Context, productCode string) (*Inventory, error)
	FindAll(ctx context.Context) ([]*Inventory, error)
}

type OrderInventoryRepository interface {
	Save(ctx context.Context, orderInventory *OrderInventory) error
	ExistsByOrderIDAndTransactionID(ctx context.Context, orderID, transactionID string) (bool, error)
	FindByOrderIDAndTransactionID(ctx context.Context, orderID, transactionID string) ([]*OrderInventory, error)
}
