package application

import (
	"context"
	"strings"
	"time"

	"github.com/draftea/order-saga/inventory-service/domain"
	"github.com/draftea/order-saga/shared/events"
	"github.com/draftea/order-saga/shared/telemetry"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// InventoryResponse is the HTTP view of an inventory row
type InventoryResponse struct {
	ProductCode string `json:"productCode"`
	Available   int    `json:"available"`
	UpdatedAt   string `json:"updatedAt"`
}

// UpsertInventoryCommand sets the available stock of a product
type UpsertInventoryCommand struct {
	ProductCode string `json:"productCode"`
	Available   int    `json:"available"`
}

// ManageInventory serves inventory reads and stock seeding
type ManageInventory struct {
	inventoryRepository domain.InventoryRepository
}

func NewManageInventory(inventoryRepository domain.InventoryRepository) *ManageInventory {
	return &ManageInventory{inventoryRepository: inventoryRepository}
}

// Upsert creates the product inventory or overwrites its available stock
func (uc *ManageInventory) Upsert(ctx context.Context, cmd *UpsertInventoryCommand) (*InventoryResponse, error) {
	start := time.Now()
	ctx, span := telemetry.StartSpan(ctx, "upsert_inventory",
		trace.WithAttributes(attribute.String("product_code", cmd.ProductCode)),
	)
	defer span.End()

	status := "error"
	defer func() {
		recordInventoryOperation(ctx, "upsert_inventory", status, time.Since(start))
	}()

	if err := validateUpsertCommand(cmd); err != nil {
		span.RecordError(err)
		return nil, err
	}

	inventory, err := uc.inventoryRepository.FindByProductCode(ctx, cmd.ProductCode)
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "failed to find inventory")
	}

	if inventory == nil {
		inventory = domain.NewInventory(cmd.ProductCode, cmd.Available)
	} else {
		inventory.Available = cmd.Available
		inventory.Timestamps = inventory.Timestamps.Update()
	}

	if err := uc.inventoryRepository.Save(ctx, inventory); err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "failed to save inventory")
	}

	status = "success"
	return toInventoryResponse(inventory), nil
}

func (uc *ManageInventory) Get(ctx context.Context, productCode string) (*InventoryResponse, error) {
	start := time.Now()
	ctx, span := telemetry.StartSpan(ctx, "get_inventory",
		trace.WithAttributes(attribute.String("product_code", productCode)),
	)
	defer span.End()

	status := "error"
	defer func() {
		recordInventoryOperation(ctx, "get_inventory", status, time.Since(start))
	}()

	inventory, err := uc.inventoryRepository.FindByProductCode(ctx, productCode)
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "failed to find inventory")
	}
	if inventory == nil {
		return nil, events.NewNotFoundError("Inventory not found by informed product code: %s", productCode)
	}

	status = "success"
	return toInventoryResponse(inventory), nil
}

func (uc *ManageInventory) List(ctx context.Context) ([]*InventoryResponse, error) {
	inventories, err := uc.inventoryRepository.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list inventory")
	}

	response := make([]*InventoryResponse, 0, len(inventories))
	for _, inventory := range inventories {
		response = append(response, toInventoryResponse(inventory))
	}
	return response, nil
}

func validateUpsertCommand(cmd *UpsertInventoryCommand) error {
	if strings.TrimSpace(cmd.ProductCode) == "" {
		return events.NewValidationError("product code is required")
	}
	if cmd.Available < 0 {
		return events.NewValidationError("available must not be negative")
	}
	return nil
}

func toInventoryResponse(inventory *domain.Inventory) *InventoryResponse {
	return &InventoryResponse{
		ProductCode: inventory.ProductCode,
		Available:   inventory.Available,
		UpdatedAt:   inventory.Timestamps.UpdatedAt.Format(time.RFC3339),
	}
}

func recordInventoryOperation(ctx context.Context, operation, status string, duration time.Duration) {
	telemetry.RecordCounter(ctx, "inventory_operations_total", "Total inventory operations", 1,
		attribute.String("operation", operation),
		attribute.String("status", status),
	)
	telemetry.RecordHistogram(ctx, "inventory_operation_duration_seconds", "Inventory operation duration", duration.Seconds(),
		attribute.String("operation", operation),
		attribute.String("status", status),
	)
}
