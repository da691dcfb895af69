package application

import (
	"context"
	"log/slog"

	"github.com/draftea/order-saga/inventory-service/domain"
	"github.com/draftea/order-saga/shared/events"
	"github.com/draftea/order-saga/shared/saga"
	"github.com/pkg/errors"
)

var _ saga.Participant = (*InventoryParticipant)(nil)

// InventoryParticipant reserves stock for every product of an order and
// restores it from the OrderInventory snapshots on rollback
type InventoryParticipant struct {
	inventoryRepository      domain.InventoryRepository
	orderInventoryRepository domain.OrderInventoryRepository
	logger                   *slog.Logger
}

func NewInventoryParticipant(
	inventoryRepository domain.InventoryRepository,
	orderInventoryRepository domain.OrderInventoryRepository,
	logger *slog.Logger,
) *InventoryParticipant {
	if logger == nil {
		logger = slog.Default()
	}
	return &InventoryParticipant{
		inventoryRepository:      inventoryRepository,
		orderInventoryRepository: orderInventoryRepository,
		logger:                   logger,
	}
}

func (p *InventoryParticipant) Source() events.Source { return events.SourceInventory }

func (p *InventoryParticipant) Resource() string { return "inventory" }

func (p *InventoryParticipant) Action() string { return "update inventory" }

func (p *InventoryParticipant) SuccessMessage() string { return "Inventory updated successfully." }

func (p *InventoryParticipant) HasProcessed(ctx context.Context, orderID, transactionID string) (bool, error) {
	return p.orderInventoryRepository.ExistsByOrderIDAndTransactionID(ctx, orderID, transactionID)
}

// Apply snapshots every product first and only then decreases the stock, so
// a failure on a later product still leaves a snapshot for the earlier ones.
// Lines repeating a product code are reserved as one quantity.
func (p *InventoryParticipant) Apply(ctx context.Context, event *events.Event) error {
	orderID := event.GetOrderID()
	reservations := sumByProductCode(event.Payload.Products)

	for _, reservation := range reservations {
		inventory, err := p.findByProductCode(ctx, reservation.code)
		if err != nil {
			return err
		}

		snapshot := domain.NewOrderInventory(inventory, orderID, event.TransactionID, reservation.quantity)
		if err := p.orderInventoryRepository.Save(ctx, snapshot); err != nil {
			return errors.Wrap(err, "failed to save order inventory")
		}
	}

	for _, reservation := range reservations {
		inventory, err := p.findByProductCode(ctx, reservation.code)
		if err != nil {
			return err
		}

		if err := inventory.Decrease(reservation.quantity); err != nil {
			return err
		}

		if err := p.inventoryRepository.Save(ctx, inventory); err != nil {
			return errors.Wrap(err, "failed to save inventory")
		}
	}

	return nil
}

func (p *InventoryParticipant) Compensate(ctx context.Context, event *events.Event) (int, error) {
	orderID := event.GetOrderID()

	snapshots, err := p.orderInventoryRepository.FindByOrderIDAndTransactionID(ctx, orderID, event.TransactionID)
	if err != nil {
		return 0, errors.Wrap(err, "failed to find order inventories")
	}

	for _, snapshot := range snapshots {
		inventory, err := p.inventoryRepository.FindByID(ctx, snapshot.InventoryID)
		if err != nil {
			return 0, errors.Wrap(err, "failed to find inventory")
		}
		if inventory == nil {
			return 0, events.NewNotFoundError("Inventory not found by id: %s", snapshot.InventoryID)
		}

		inventory.Restore(snapshot)
		if err := p.inventoryRepository.Save(ctx, inventory); err != nil {
			return 0, errors.Wrap(err, "failed to restore inventory")
		}

		p.logger.InfoContext(ctx, "restored inventory",
			slog.String("order_id", orderID),
			slog.String("product_code", inventory.ProductCode),
			slog.Int("from", snapshot.NewQuantity),
			slog.Int("to", inventory.Available),
		)
	}

	return len(snapshots), nil
}

func (p *InventoryParticipant) findByProductCode(ctx context.Context, code string) (*domain.Inventory, error) {
	inventory, err := p.inventoryRepository.FindByProductCode(ctx, code)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find inventory")
	}
	if inventory == nil {
		return nil, events.NewNotFoundError("Inventory not found by informed product code: %s", code)
	}
	return inventory, nil
}

type reservation struct {
	code     string
	quantity int
}

// sumByProductCode keeps the order in which codes first appear
func sumByProductCode(products []events.OrderProduct) []reservation {
	index := make(map[string]int, len(products))
	reservations := make([]reservation, 0, len(products))
	for _, product := range products {
		if i, ok := index[product.Code]; ok {
			reservations[i].quantity += product.Quantity
			continue
		}
		index[product.Code] = len(reservations)
		reservations = append(reservations, reservation{code: product.Code, quantity: product.Quantity})
	}
	return reservations
}
