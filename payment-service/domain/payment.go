package domain

import (
	"context"

	"github.com/draftea/order-saga/shared/events"
	"github.com/draftea/order-saga/shared/models"
)

// PaymentStatus represents the status of a payment
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusSuccess PaymentStatus = "SUCCESS"
	PaymentStatusRefund  PaymentStatus = "REFUND"
)

// MinAmount is the smallest order total the payment step accepts
const MinAmount = 0.1

// Payment is the compensation snapshot of the payment step. One payment is
// recorded per (order, transaction).
type Payment struct {
	ID            models.ID
	OrderID       string
	TransactionID string
	TotalAmount   float64
	TotalItems    int
	Status        PaymentStatus
	Timestamps    models.Timestamps
}

// CreatePendingPayment totals the order products into a pending payment
func CreatePendingPayment(orderID, transactionID string, products []events.OrderProduct) *Payment {
	var (
		totalAmount float64
		totalItems  int
	)
	for _, product := range products {
		totalAmount += float64(product.Quantity) * product.UnitValue
		totalItems += product.Quantity
	}

	return &Payment{
		ID:            models.GenerateUUID(),
		OrderID:       orderID,
		TransactionID: transactionID,
		TotalAmount:   totalAmount,
		TotalItems:    totalItems,
		Status:        PaymentStatusPending,
		Timestamps:    models.NewTimestamps(),
	}
}

// ValidateAmount rejects totals below MinAmount
func (p *Payment) ValidateAmount() error {
	if p.TotalAmount < MinAmount {
		return events.NewDomainRuleError("Amount must be greater than %v", MinAmount)
	}
	return nil
}

// Succeed marks the payment as realized
func (p *Payment) Succeed() {
	p.Status = PaymentStatusSuccess
	p.Timestamps = p.Timestamps.Update()
}

// Refund marks the payment as refunded
func (p *Payment) Refund() {
	p.Status = PaymentStatusRefund
	p.Timestamps = p.Timestamps.Update()
}

// ApplyTotals copies the payment totals into the order payload
func (p *Payment) ApplyTotals(order *events.Order) {
	order.TotalAmount = p.TotalAmount
	order.TotalItems = p.TotalItems
}

// PaymentRepository returns nil, nil when a payment does not exist
type PaymentRepository interface {
	Save(ctx context.Context, payment *Payment) error
	ExistsByOrderIDAndTransactionID(ctx context.Context, orderID, transactionID string) (bool, error)
	FindByOrderIDAndTransactionID(ctx context.Context, orderID, transactionID string) (*Payment, error)
}
