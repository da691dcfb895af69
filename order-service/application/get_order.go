package application

import (
	"context"
	"time"

	"github.com/draftea/order-saga/order-service/domain"
	"github.com/draftea/order-saga/shared/events"
	"github.com/pkg/errors"
)

// OrderResponse represents a stored order
type OrderResponse struct {
	ID            string                `json:"id"`
	TransactionID string                `json:"transactionId"`
	Products      []events.OrderProduct `json:"products"`
	CreatedAt     time.Time             `json:"createdAt"`
}

type GetOrder struct {
	orderRepository domain.OrderRepository
}

func NewGetOrder(orderRepository domain.OrderRepository) *GetOrder {
	return &GetOrder{orderRepository: orderRepository}
}

func (uc *GetOrder) Execute(ctx context.Context, id string) (*OrderResponse, error) {
	if id == "" {
		return nil, events.NewValidationError("order id is required")
	}

	order, err := uc.orderRepository.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find order")
	}
	if order == nil {
		return nil, events.NewNotFoundError("Order not found by id: %s", id)
	}

	return &OrderResponse{
		ID:            order.ID,
		TransactionID: order.TransactionID,
		Products:      order.Products,
		CreatedAt:     order.CreatedAt,
	}, nil
}
