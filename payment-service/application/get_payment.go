package application

import (
	"context"
	"strings"
	"time"

	"github.com/draftea/order-saga/payment-service/domain"
	"github.com/draftea/order-saga/shared/events"
	"github.com/draftea/order-saga/shared/telemetry"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// GetPaymentQuery identifies the payment of one saga attempt
type GetPaymentQuery struct {
	OrderID       string
	TransactionID string
}

// PaymentResponse represents the payment response
type PaymentResponse struct {
	ID            string  `json:"id"`
	OrderID       string  `json:"orderId"`
	TransactionID string  `json:"transactionId"`
	TotalAmount   float64 `json:"totalAmount"`
	TotalItems    int     `json:"totalItems"`
	Status        string  `json:"status"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// GetPayment retrieves payment information
type GetPayment struct {
	paymentRepository domain.PaymentRepository
}

func NewGetPayment(paymentRepository domain.PaymentRepository) *GetPayment {
	return &GetPayment{paymentRepository: paymentRepository}
}

func (uc *GetPayment) Execute(ctx context.Context, query *GetPaymentQuery) (*PaymentResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "get_payment",
		trace.WithAttributes(
			attribute.String("order_id", query.OrderID),
			attribute.String("transaction_id", query.TransactionID),
		),
	)
	defer span.End()

	if strings.TrimSpace(query.OrderID) == "" || strings.TrimSpace(query.TransactionID) == "" {
		return nil, events.NewValidationError("order id and transaction id are required")
	}

	payment, err := uc.paymentRepository.FindByOrderIDAndTransactionID(ctx, query.OrderID, query.TransactionID)
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "failed to find payment")
	}
	if payment == nil {
		return nil, events.NewNotFoundError("Payment not found by order id and transaction id")
	}

	return &PaymentResponse{
		ID:            payment.ID.String(),
		OrderID:       payment.OrderID,
		TransactionID: payment.TransactionID,
		TotalAmount:   payment.TotalAmount,
		TotalItems:    payment.TotalItems,
		Status:        string(payment.Status),
		CreatedAt:     payment.Timestamps.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     payment.Timestamps.UpdatedAt.Format(time.RFC3339),
	}, nil
}
