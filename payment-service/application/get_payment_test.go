package application

import (
	"context"
	"testing"

	"github.com/draftea/order-saga/payment-service/domain"
	paymentmocks "github.com/draftea/order-saga/payment-service/mocks"
	"github.com/draftea/order-saga/shared/events"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetPayment_Execute(t *testing.T) {
	stored := domain.CreatePendingPayment("order-1", "1700000000000_tx", []events.OrderProduct{
		{Code: "BOOKS", Quantity: 2, UnitValue: 7.5},
	})

	tests := []struct {
		name          string
		query         *GetPaymentQuery
		setupMocks    func(*paymentmocks.MockPaymentRepository)
		expectedError string
		expectedKind  events.Kind
	}{
		{
			name:          "missing transaction id",
			query:         &GetPaymentQuery{OrderID: "order-1"},
			setupMocks:    func(*paymentmocks.MockPaymentRepository) {},
			expectedError: "order id and transaction id are required",
			expectedKind:  events.KindValidation,
		},
		{
			name:  "found",
			query: &GetPaymentQuery{OrderID: "order-1", TransactionID: "1700000000000_tx"},
			setupMocks: func(repo *paymentmocks.MockPaymentRepository) {
				repo.EXPECT().FindByOrderIDAndTransactionID(mock.Anything, "order-1", "1700000000000_tx").Return(stored, nil).Once()
			},
		},
		{
			name:  "not found",
			query: &GetPaymentQuery{OrderID: "order-1", TransactionID: "other"},
			setupMocks: func(repo *paymentmocks.MockPaymentRepository) {
				repo.EXPECT().FindByOrderIDAndTransactionID(mock.Anything, "order-1", "other").Return(nil, nil).Once()
			},
			expectedError: "Payment not found by order id and transaction id",
			expectedKind:  events.KindNotFound,
		},
		{
			name:  "repository failure",
			query: &GetPaymentQuery{OrderID: "order-1", TransactionID: "1700000000000_tx"},
			setupMocks: func(repo *paymentmocks.MockPaymentRepository) {
				repo.EXPECT().FindByOrderIDAndTransactionID(mock.Anything, "order-1", "1700000000000_tx").
					Return(nil, errors.New("timeout")).Once()
			},
			expectedError: "failed to find payment: timeout",
			expectedKind:  events.KindUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := paymentmocks.NewMockPaymentRepository(t)
			tt.setupMocks(repo)

			response, err := NewGetPayment(repo).Execute(context.Background(), tt.query)

			if tt.expectedError != "" {
				require.Error(t, err)
				assert.Nil(t, response)
				assert.Equal(t, tt.expectedError, err.Error())
				assert.Equal(t, tt.expectedKind, events.KindOf(err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, stored.ID.String(), response.ID)
			assert.Equal(t, 15.0, response.TotalAmount)
			assert.Equal(t, 2, response.TotalItems)
			assert.Equal(t, "PENDING", response.Status)
		})
	}
}
