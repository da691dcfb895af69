package application

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/draftea/order-saga/order-service/domain"
	ordermocks "github.com/draftea/order-saga/order-service/mocks"
	"github.com/draftea/order-saga/shared/events"
	"github.com/draftea/order-saga/shared/mocks"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestCreateOrder_Execute(t *testing.T) {
	orderRepo := ordermocks.NewMockOrderRepository(t)
	eventStore := mocks.NewMockEventStore(t)
	publisher := mocks.NewMockPublisher(t)

	var savedOrder *domain.Order
	var storedEvent, publishedEvent *events.Event

	orderRepo.EXPECT().Save(mock.Anything, mock.AnythingOfType("*domain.Order")).
		Run(func(_ context.Context, order *domain.Order) { savedOrder = order }).
		Return(nil).Once()
	eventStore.EXPECT().Save(mock.Anything, mock.AnythingOfType("*events.Event")).
		Run(func(_ context.Context, event *events.Event) { storedEvent = event }).
		Return(nil).Once()
	publisher.EXPECT().Publish(mock.Anything, events.StartSagaTopic, mock.Anything).
		Run(func(_ context.Context, _ events.Topic, evts ...*events.Event) { publishedEvent = evts[0] }).
		Return(nil).Once()

	uc := NewCreateOrder(orderRepo, eventStore, publisher, discardLogger())
	uc.now = func() time.Time { return time.UnixMilli(1700000000000) }

	response, err := uc.Execute(context.Background(), &CreateOrderCommand{
		Products: []events.OrderProduct{{Code: "COMIC_BOOKS", Quantity: 2, UnitValue: 5}},
	})
	require.NoError(t, err)

	require.NotNil(t, savedOrder)
	assert.Equal(t, savedOrder.ID, response.OrderID)
	assert.Equal(t, savedOrder.TransactionID, response.TransactionID)
	assert.Contains(t, response.TransactionID, "1700000000000_")

	require.NotNil(t, publishedEvent)
	assert.Same(t, storedEvent, publishedEvent)
	assert.Equal(t, response.EventID, publishedEvent.ID.String())
	assert.Equal(t, savedOrder.ID, publishedEvent.OrderID)
	assert.Equal(t, savedOrder.TransactionID, publishedEvent.TransactionID)
	assert.Empty(t, publishedEvent.History)
}

func TestCreateOrder_ExecuteErrors(t *testing.T) {
	products := []events.OrderProduct{{Code: "BOOKS", Quantity: 1, UnitValue: 10}}

	tests := []struct {
		name          string
		cmd           *CreateOrderCommand
		setupMocks    func(*ordermocks.MockOrderRepository, *mocks.MockEventStore, *mocks.MockPublisher)
		expectedError string
		expectedKind  events.Kind
	}{
		{
			name:          "no products",
			cmd:           &CreateOrderCommand{},
			setupMocks:    func(*ordermocks.MockOrderRepository, *mocks.MockEventStore, *mocks.MockPublisher) {},
			expectedError: "order must have at least one product",
			expectedKind:  events.KindValidation,
		},
		{
			name: "order repository failure",
			cmd:  &CreateOrderCommand{Products: products},
			setupMocks: func(repo *ordermocks.MockOrderRepository, _ *mocks.MockEventStore, _ *mocks.MockPublisher) {
				repo.EXPECT().Save(mock.Anything, mock.Anything).Return(errors.New("connection refused")).Once()
			},
			expectedError: "failed to save order: connection refused",
		},
		{
			name: "event store failure",
			cmd:  &CreateOrderCommand{Products: products},
			setupMocks: func(repo *ordermocks.MockOrderRepository, store *mocks.MockEventStore, _ *mocks.MockPublisher) {
				repo.EXPECT().Save(mock.Anything, mock.Anything).Return(nil).Once()
				store.EXPECT().Save(mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()
			},
			expectedError: "failed to save event: disk full",
		},
		{
			name: "publish failure",
			cmd:  &CreateOrderCommand{Products: products},
			setupMocks: func(repo *ordermocks.MockOrderRepository, store *mocks.MockEventStore, publisher *mocks.MockPublisher) {
				repo.EXPECT().Save(mock.Anything, mock.Anything).Return(nil).Once()
				store.EXPECT().Save(mock.Anything, mock.Anything).Return(nil).Once()
				publisher.EXPECT().Publish(mock.Anything, events.StartSagaTopic, mock.Anything).Return(errors.New("broker down")).Once()
			},
			expectedError: "failed to publish events: broker down",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orderRepo := ordermocks.NewMockOrderRepository(t)
			eventStore := mocks.NewMockEventStore(t)
			publisher := mocks.NewMockPublisher(t)
			tt.setupMocks(orderRepo, eventStore, publisher)

			response, err := NewCreateOrder(orderRepo, eventStore, publisher, discardLogger()).
				Execute(context.Background(), tt.cmd)
			require.Error(t, err)
			assert.Nil(t, response)
			assert.Equal(t, tt.expectedError, err.Error())
			if tt.expectedKind != "" {
				assert.Equal(t, tt.expectedKind, events.KindOf(err))
			}
		})
	}
}
