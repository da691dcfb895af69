package infrastructure

import (
	"context"
	"sync"

	"github.com/draftea/order-saga/payment-service/domain"
	"github.com/draftea/order-saga/shared/models"
	"github.com/pkg/errors"
)

var _ domain.PaymentRepository = (*MemoryPaymentRepository)(nil)

// MemoryPaymentRepository keeps one payment per (order, transaction), like
// the unique constraint of the payments table
type MemoryPaymentRepository struct {
	mu       sync.RWMutex
	payments map[models.ID]domain.Payment
}

func NewMemoryPaymentRepository() *MemoryPaymentRepository {
	return &MemoryPaymentRepository{payments: make(map[models.ID]domain.Payment)}
}

func (r *MemoryPaymentRepository) Save(_ context.Context, payment *domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, existing := range r.payments {
		if id != payment.ID && existing.OrderID == payment.OrderID && existing.TransactionID == payment.TransactionID {
			return errors.Errorf("payment already exists for order %s, transaction %s", payment.OrderID, payment.TransactionID)
		}
	}

	r.payments[payment.ID] = *payment
	return nil
}

func (r *MemoryPaymentRepository) ExistsByOrderIDAndTransactionID(ctx context.Context, orderID, transactionID string) (bool, error) {
	payment, err := r.FindByOrderIDAndTransactionID(ctx, orderID, transactionID)
	return payment != nil, err
}

func (r *MemoryPaymentRepository) FindByOrderIDAndTransactionID(_ context.Context, orderID, transactionID string) (*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, payment := range r.payments {
		if payment.OrderID == orderID && payment.TransactionID == transactionID {
			return &payment, nil
		}
	}
	return nil, nil
}
