package application

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/draftea/order-saga/payment-service/domain"
	"github.com/draftea/order-saga/payment-service/infrastructure"
	paymentmocks "github.com/draftea/order-saga/payment-service/mocks"
	"github.com/draftea/order-saga/shared/events"
	"github.com/draftea/order-saga/shared/mocks"
	"github.com/draftea/order-saga/shared/saga"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newInventoryReservedEvent(products ...events.OrderProduct) *events.Event {
	event := events.NewEvent(events.Order{
		ID:            "order-1",
		TransactionID: "1700000000000_tx",
		Products:      products,
	})
	event.Stamp(events.SourceOrchestrator, events.StatusSuccess, "Saga started!")
	event.Stamp(events.SourceInventory, events.StatusSuccess, "Inventory updated successfully.")
	return event
}

func newPaymentExecutor(t *testing.T, repo domain.PaymentRepository) (*saga.Executor, *[]*events.Event) {
	t.Helper()

	var published []*events.Event
	publisher := mocks.NewMockPublisher(t)
	publisher.EXPECT().Publish(mock.Anything, events.OrchestratorTopic, mock.Anything).
		Run(func(_ context.Context, _ events.Topic, evts ...*events.Event) {
			published = append(published, evts[0].Clone())
		}).
		Return(nil).Maybe()

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	return saga.NewExecutor(NewPaymentParticipant(repo, logger), publisher, saga.WithLogger(logger)), &published
}

func TestPaymentParticipant_Execute(t *testing.T) {
	tests := []struct {
		name            string
		products        []events.OrderProduct
		expectedStatus  events.Status
		expectedMessage string
		expectedPayment domain.PaymentStatus
		expectedAmount  float64
		expectedItems   int
	}{
		{
			name:            "realizes payment",
			products:        []events.OrderProduct{{Code: "COMIC_BOOKS", Quantity: 2, UnitValue: 5.0}},
			expectedStatus:  events.StatusSuccess,
			expectedMessage: "Payment realized successfully.",
			expectedPayment: domain.PaymentStatusSuccess,
			expectedAmount:  10.0,
			expectedItems:   2,
		},
		{
			name:            "amount below minimum",
			products:        []events.OrderProduct{{Code: "STICKER", Quantity: 1, UnitValue: 0.05}},
			expectedStatus:  events.StatusRollbackPending,
			expectedMessage: "Fail to realize payment: Amount must be greater than 0.1",
			expectedPayment: domain.PaymentStatusPending,
			expectedAmount:  0.05,
			expectedItems:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := infrastructure.NewMemoryPaymentRepository()
			executor, published := newPaymentExecutor(t, repo)

			require.NoError(t, executor.Execute(context.Background(), newInventoryReservedEvent(tt.products...)))

			require.Len(t, *published, 1)
			event := (*published)[0]
			last, _ := event.LastHistory()
			assert.Equal(t, events.SourcePayment, event.Source)
			assert.Equal(t, tt.expectedStatus, event.Status)
			assert.Equal(t, tt.expectedMessage, last.Message)
			assert.InDelta(t, tt.expectedAmount, event.Payload.TotalAmount, 1e-9)
			assert.Equal(t, tt.expectedItems, event.Payload.TotalItems)

			payment, err := repo.FindByOrderIDAndTransactionID(context.Background(), "order-1", "1700000000000_tx")
			require.NoError(t, err)
			require.NotNil(t, payment)
			assert.Equal(t, tt.expectedPayment, payment.Status)
		})
	}
}

func TestPaymentParticipant_ExecuteIsIdempotent(t *testing.T) {
	repo := infrastructure.NewMemoryPaymentRepository()
	executor, published := newPaymentExecutor(t, repo)
	product := events.OrderProduct{Code: "COMIC_BOOKS", Quantity: 2, UnitValue: 5.0}

	require.NoError(t, executor.Execute(context.Background(), newInventoryReservedEvent(product)))
	require.NoError(t, executor.Execute(context.Background(), newInventoryReservedEvent(product)))

	require.Len(t, *published, 2)
	second := (*published)[1]
	last, _ := second.LastHistory()
	assert.Equal(t, events.StatusRollbackPending, second.Status)
	assert.Equal(t, "Fail to realize payment: There's another transactionId for this validation.", last.Message)

	payment, err := repo.FindByOrderIDAndTransactionID(context.Background(), "order-1", "1700000000000_tx")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusSuccess, payment.Status)
}

func TestPaymentParticipant_Rollback(t *testing.T) {
	t.Run("refunds payment", func(t *testing.T) {
		repo := infrastructure.NewMemoryPaymentRepository()
		executor, published := newPaymentExecutor(t, repo)

		event := newInventoryReservedEvent(events.OrderProduct{Code: "STICKER", Quantity: 1, UnitValue: 0.05})
		require.NoError(t, executor.Execute(context.Background(), event))

		forward := (*published)[0]
		require.Equal(t, events.StatusRollbackPending, forward.Status)
		require.NoError(t, executor.Rollback(context.Background(), forward))

		require.Len(t, *published, 2)
		rolledBack := (*published)[1]
		last, _ := rolledBack.LastHistory()
		assert.Equal(t, events.SourcePayment, rolledBack.Source)
		assert.Equal(t, events.StatusFail, rolledBack.Status)
		assert.Equal(t, "Rollback executed on payment!", last.Message)
		assert.InDelta(t, 0.05, rolledBack.Payload.TotalAmount, 1e-9)

		payment, err := repo.FindByOrderIDAndTransactionID(context.Background(), "order-1", "1700000000000_tx")
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusRefund, payment.Status)
	})

	t.Run("payment not found", func(t *testing.T) {
		executor, published := newPaymentExecutor(t, infrastructure.NewMemoryPaymentRepository())

		event := newInventoryReservedEvent(events.OrderProduct{Code: "COMIC_BOOKS", Quantity: 2, UnitValue: 5.0})
		require.NoError(t, executor.Rollback(context.Background(), event))

		require.Len(t, *published, 1)
		last, _ := (*published)[0].LastHistory()
		assert.Equal(t, events.StatusFail, (*published)[0].Status)
		assert.Equal(t, "Rollback not executed on payment: Payment not found by order id and transaction id", last.Message)
	})
}

func TestPaymentParticipant_RepositoryFailures(t *testing.T) {
	tests := []struct {
		name          string
		setupMocks    func(*paymentmocks.MockPaymentRepository)
		expectedError string
	}{
		{
			name: "pending payment save fails",
			setupMocks: func(repo *paymentmocks.MockPaymentRepository) {
				repo.EXPECT().Save(mock.Anything, mock.AnythingOfType("*domain.Payment")).Return(errors.New("duplicate key")).Once()
			},
			expectedError: "failed to save payment: duplicate key",
		},
		{
			name: "pending payment disappears",
			setupMocks: func(repo *paymentmocks.MockPaymentRepository) {
				repo.EXPECT().Save(mock.Anything, mock.Anything).Return(nil).Once()
				repo.EXPECT().FindByOrderIDAndTransactionID(mock.Anything, "order-1", "1700000000000_tx").Return(nil, nil).Once()
			},
			expectedError: "Payment not found by order id and transaction id",
		},
		{
			name: "success save fails",
			setupMocks: func(repo *paymentmocks.MockPaymentRepository) {
				pending := domain.CreatePendingPayment("order-1", "1700000000000_tx",
					[]events.OrderProduct{{Code: "COMIC_BOOKS", Quantity: 2, UnitValue: 5.0}})
				repo.EXPECT().Save(mock.Anything, mock.Anything).Return(nil).Once()
				repo.EXPECT().FindByOrderIDAndTransactionID(mock.Anything, "order-1", "1700000000000_tx").Return(pending, nil).Once()
				repo.EXPECT().Save(mock.Anything, mock.MatchedBy(func(p *domain.Payment) bool {
					return p.Status == domain.PaymentStatusSuccess
				})).Return(errors.New("timeout")).Once()
			},
			expectedError: "failed to save payment: timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := paymentmocks.NewMockPaymentRepository(t)
			tt.setupMocks(repo)

			participant := NewPaymentParticipant(repo, nil)
			err := participant.Apply(context.Background(),
				newInventoryReservedEvent(events.OrderProduct{Code: "COMIC_BOOKS", Quantity: 2, UnitValue: 5.0}))

			require.Error(t, err)
			assert.Equal(t, tt.expectedError, err.Error())
		})
	}
}
