package domain

import (
	"context"
	"strings"
	"time"

	"github.com/draftea/order-saga/shared/events"
	"github.com/draftea/order-saga/shared/models"
)

// Order is a customer order. Every Order starts exactly one saga attempt,
// identified by TransactionID.
type Order struct {
	ID            string
	Products      []events.OrderProduct
	TransactionID string
	CreatedAt     time.Time
}

// NewOrder validates products and assigns the order and transaction ids
func NewOrder(products []events.OrderProduct, now time.Time) (*Order, error) {
	if len(products) == 0 {
		return nil, events.NewValidationError("order must have at least one product")
	}

	for _, product := range products {
		if strings.TrimSpace(product.Code) == "" {
			return nil, events.NewValidationError("product code is required")
		}
		if product.Quantity <= 0 {
			return nil, events.NewValidationError("quantity of product %s must be positive", product.Code)
		}
		if product.UnitValue < 0 {
			return nil, events.NewValidationError("unit value of product %s must not be negative", product.Code)
		}
	}

	return &Order{
		ID:            models.GenerateUUID().String(),
		Products:      append([]events.OrderProduct(nil), products...),
		TransactionID: models.GenerateTransactionID(now),
		CreatedAt:     now.UTC(),
	}, nil
}

// Payload returns the order as carried by the saga envelope
func (o *Order) Payload() events.Order {
	return events.Order{
		ID:            o.ID,
		Products:      append([]events.OrderProduct(nil), o.Products...),
		TransactionID: o.TransactionID,
		CreatedAt:     o.CreatedAt,
	}
}

// OrderRepository returns nil, nil when an order does not exist
type OrderRepository interface {
	Save(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id string) (*Order, error)
}
