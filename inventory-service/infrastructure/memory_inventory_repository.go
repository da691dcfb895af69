package infrastructure

import (
	"context"
	"sort"
	"sync"

	"github.com/draftea/order-saga/inventory-service/domain"
	"github.com/draftea/order-saga/shared/models"
	"github.com/pkg/errors"
)

var (
	_ domain.InventoryRepository      = (*MemoryInventoryRepository)(nil)
	_ domain.OrderInventoryRepository = (*MemoryOrderInventoryRepository)(nil)
)

// MemoryInventoryRepository stores copies so callers never alias stored rows
type MemoryInventoryRepository struct {
	mu          sync.RWMutex
	inventories map[models.ID]domain.Inventory
}

func NewMemoryInventoryRepository() *MemoryInventoryRepository {
	return &MemoryInventoryRepository{inventories: make(map[models.ID]domain.Inventory)}
}

func (r *MemoryInventoryRepository) Save(_ context.Context, inventory *domain.Inventory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, existing := range r.inventories {
		if existing.ProductCode == inventory.ProductCode && id != inventory.ID {
			return errors.Errorf("inventory for product %s already exists", inventory.ProductCode)
		}
	}

	r.inventories[inventory.ID] = *inventory
	return nil
}

func (r *MemoryInventoryRepository) FindByID(_ context.Context, id models.ID) (*domain.Inventory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	inventory, ok := r.inventories[id]
	if !ok {
		return nil, nil
	}
	return &inventory, nil
}

func (r *MemoryInventoryRepository) FindByProductCode(_ context.Context, productCode string) (*domain.Inventory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, inventory := range r.inventories {
		if inventory.ProductCode == productCode {
			return &inventory, nil
		}
	}
	return nil, nil
}

// FindAll returns every inventory ordered by product code
func (r *MemoryInventoryRepository) FindAll(_ context.Context) ([]*domain.Inventory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Inventory, 0, len(r.inventories))
	for _, inventory := range r.inventories {
		inventory := inventory
		result = append(result, &inventory)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ProductCode < result[j].ProductCode })
	return result, nil
}

// MemoryOrderInventoryRepository enforces the same uniqueness as the
// order_inventories table
type MemoryOrderInventoryRepository struct {
	mu        sync.RWMutex
	snapshots []domain.OrderInventory
}

func NewMemoryOrderInventoryRepository() *MemoryOrderInventoryRepository {
	return &MemoryOrderInventoryRepository{}
}

func (r *MemoryOrderInventoryRepository) Save(_ context.Context, orderInventory *domain.OrderInventory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.snapshots {
		if existing.OrderID == orderInventory.OrderID &&
			existing.TransactionID == orderInventory.TransactionID &&
			existing.InventoryID == orderInventory.InventoryID &&
			existing.ID != orderInventory.ID {
			return errors.Errorf("order inventory already exists for order %s, transaction %s, inventory %s",
				orderInventory.OrderID, orderInventory.TransactionID, orderInventory.InventoryID)
		}
	}

	r.snapshots = append(r.snapshots, *orderInventory)
	return nil
}

func (r *MemoryOrderInventoryRepository) ExistsByOrderIDAndTransactionID(_ context.Context, orderID, transactionID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, snapshot := range r.snapshots {
		if snapshot.OrderID == orderID && snapshot.TransactionID == transactionID {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryOrderInventoryRepository) FindByOrderIDAndTransactionID(_ context.Context, orderID, transactionID string) ([]*domain.OrderInventory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*domain.OrderInventory
	for _, snapshot := range r.snapshots {
		if snapshot.OrderID == orderID && snapshot.TransactionID == transactionID {
			snapshot := snapshot
			result = append(result, &snapshot)
		}
	}
	return result, nil
}
