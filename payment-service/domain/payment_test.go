package domain

import (
	"testing"

	"github.com/draftea/order-saga/shared/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePendingPayment(t *testing.T) {
	tests := []struct {
		name           string
		products       []events.OrderProduct
		expectedAmount float64
		expectedItems  int
		expectedError  string
	}{
		{
			name:           "single product",
			products:       []events.OrderProduct{{Code: "COMIC_BOOKS", Quantity: 2, UnitValue: 5}},
			expectedAmount: 10.0,
			expectedItems:  2,
		},
		{
			name: "several products",
			products: []events.OrderProduct{
				{Code: "COMIC_BOOKS", Quantity: 2, UnitValue: 5},
				{Code: "BOOKS", Quantity: 1, UnitValue: 12.5},
			},
			expectedAmount: 22.5,
			expectedItems:  3,
		},
		{
			name:           "below minimum",
			products:       []events.OrderProduct{{Code: "STICKER", Quantity: 1, UnitValue: 0.05}},
			expectedAmount: 0.05,
			expectedItems:  1,
			expectedError:  "Amount must be greater than 0.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payment := CreatePendingPayment("order-1", "tx-1", tt.products)

			assert.Equal(t, PaymentStatusPending, payment.Status)
			assert.InDelta(t, tt.expectedAmount, payment.TotalAmount, 1e-9)
			assert.Equal(t, tt.expectedItems, payment.TotalItems)

			err := payment.ValidateAmount()
			if tt.expectedError != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, events.ErrDomainRule)
				assert.Equal(t, tt.expectedError, err.Error())
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestPayment_ApplyTotals(t *testing.T) {
	payment := CreatePendingPayment("order-1", "tx-1", []events.OrderProduct{{Code: "COMIC_BOOKS", Quantity: 2, UnitValue: 5}})

	var order events.Order
	payment.ApplyTotals(&order)

	assert.InDelta(t, 10.0, order.TotalAmount, 1e-9)
	assert.Equal(t, 2, order.TotalItems)
}
