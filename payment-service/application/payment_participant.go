package application

import (
	"context"
	"log/slog"

	"github.com/draftea/order-saga/payment-service/domain"
	"github.com/draftea/order-saga/shared/events"
	"github.com/draftea/order-saga/shared/saga"
	"github.com/pkg/errors"
)

var _ saga.Participant = (*PaymentParticipant)(nil)

// PaymentParticipant charges the order total and refunds it on rollback
type PaymentParticipant struct {
	paymentRepository domain.PaymentRepository
	logger            *slog.Logger
}

func NewPaymentParticipant(paymentRepository domain.PaymentRepository, logger *slog.Logger) *PaymentParticipant {
	if logger == nil {
		logger = slog.Default()
	}
	return &PaymentParticipant{
		paymentRepository: paymentRepository,
		logger:            logger,
	}
}

func (p *PaymentParticipant) Source() events.Source { return events.SourcePayment }

func (p *PaymentParticipant) Resource() string { return "payment" }

func (p *PaymentParticipant) Action() string { return "realize payment" }

func (p *PaymentParticipant) SuccessMessage() string { return "Payment realized successfully." }

func (p *PaymentParticipant) HasProcessed(ctx context.Context, orderID, transactionID string) (bool, error) {
	return p.paymentRepository.ExistsByOrderIDAndTransactionID(ctx, orderID, transactionID)
}

// Apply records the pending payment before validating it, so a rejected
// amount still leaves a payment for the rollback to refund.
func (p *PaymentParticipant) Apply(ctx context.Context, event *events.Event) error {
	orderID := event.GetOrderID()

	pending := domain.CreatePendingPayment(orderID, event.TransactionID, event.Payload.Products)
	if err := p.paymentRepository.Save(ctx, pending); err != nil {
		return errors.Wrap(err, "failed to save payment")
	}
	pending.ApplyTotals(&event.Payload)

	payment, err := p.findPayment(ctx, orderID, event.TransactionID)
	if err != nil {
		return err
	}

	if err := payment.ValidateAmount(); err != nil {
		return err
	}

	payment.Succeed()
	if err := p.paymentRepository.Save(ctx, payment); err != nil {
		return errors.Wrap(err, "failed to save payment")
	}

	return nil
}

func (p *PaymentParticipant) Compensate(ctx context.Context, event *events.Event) (int, error) {
	payment, err := p.findPayment(ctx, event.GetOrderID(), event.TransactionID)
	if err != nil {
		return 0, err
	}

	payment.Refund()
	payment.ApplyTotals(&event.Payload)

	if err := p.paymentRepository.Save(ctx, payment); err != nil {
		return 0, errors.Wrap(err, "failed to refund payment")
	}

	p.logger.InfoContext(ctx, "refunded payment",
		slog.String("order_id", payment.OrderID),
		slog.String("transaction_id", payment.TransactionID),
		slog.Float64("total_amount", payment.TotalAmount),
	)

	return 1, nil
}

func (p *PaymentParticipant) findPayment(ctx context.Context, orderID, transactionID string) (*domain.Payment, error) {
	payment, err := p.paymentRepository.FindByOrderIDAndTransactionID(ctx, orderID, transactionID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find payment")
	}
	if payment == nil {
		return nil, events.NewNotFoundError("Payment not found by order id and transaction id")
	}
	return payment, nil
}
