package application

import (
	"context"
	"testing"

	"github.com/draftea/order-saga/order-service/domain"
	ordermocks "github.com/draftea/order-saga/order-service/mocks"
	"github.com/draftea/order-saga/shared/events"
	"github.com/draftea/order-saga/shared/mocks"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func finishedEvent(status events.Status) *events.Event {
	event := events.NewEvent(events.Order{ID: "order-1", TransactionID: "1700000000000_tx"})
	event.Stamp(events.SourceOrchestrator, status, "Saga finished successfully!")
	return event
}

func TestEventService_NotifyEnding(t *testing.T) {
	tests := []struct {
		name  string
		order *domain.Order
	}{
		{name: "known order", order: &domain.Order{ID: "order-1"}},
		{name: "unknown order", order: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mocks.NewMockEventStore(t)
			repo := ordermocks.NewMockOrderRepository(t)
			event := finishedEvent(events.StatusSuccess)

			repo.EXPECT().FindByID(mock.Anything, "order-1").Return(tt.order, nil).Once()
			store.EXPECT().Save(mock.Anything, event).Return(nil).Once()

			err := NewEventService(store, repo, discardLogger()).NotifyEnding(context.Background(), event)
			require.NoError(t, err)
		})
	}
}

func TestEventService_NotifyEndingErrors(t *testing.T) {
	t.Run("order lookup fails", func(t *testing.T) {
		store := mocks.NewMockEventStore(t)
		repo := ordermocks.NewMockOrderRepository(t)
		repo.EXPECT().FindByID(mock.Anything, "order-1").Return(nil, errors.New("timeout")).Once()

		err := NewEventService(store, repo, discardLogger()).NotifyEnding(context.Background(), finishedEvent(events.StatusFail))
		require.Error(t, err)
		assert.Equal(t, "failed to find order: timeout", err.Error())
	})

	t.Run("store fails", func(t *testing.T) {
		store := mocks.NewMockEventStore(t)
		repo := ordermocks.NewMockOrderRepository(t)
		repo.EXPECT().FindByID(mock.Anything, "order-1").Return(&domain.Order{ID: "order-1"}, nil).Once()
		store.EXPECT().Save(mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()

		err := NewEventService(store, repo, discardLogger()).NotifyEnding(context.Background(), finishedEvent(events.StatusFail))
		require.Error(t, err)
		assert.Equal(t, "failed to save event: disk full", err.Error())
	})
}

func TestEventService_FindByFilters(t *testing.T) {
	latest := finishedEvent(events.StatusSuccess)

	tests := []struct {
		name          string
		filters       EventFilters
		setupMocks    func(*mocks.MockEventStore)
		expected      *events.Event
		expectedError string
		expectedKind  events.Kind
	}{
		{
			name:          "no filters",
			filters:       EventFilters{},
			setupMocks:    func(*mocks.MockEventStore) {},
			expectedError: "Order ID or Transaction ID must be informed",
			expectedKind:  events.KindValidation,
		},
		{
			name:    "by order id",
			filters: EventFilters{OrderID: "order-1"},
			setupMocks: func(store *mocks.MockEventStore) {
				store.EXPECT().FindLatestByOrderID(mock.Anything, "order-1").Return(latest, nil).Once()
			},
			expected: latest,
		},
		{
			name:    "order id wins over transaction id",
			filters: EventFilters{OrderID: "order-1", TransactionID: "other"},
			setupMocks: func(store *mocks.MockEventStore) {
				store.EXPECT().FindLatestByOrderID(mock.Anything, "order-1").Return(latest, nil).Once()
			},
			expected: latest,
		},
		{
			name:    "by transaction id",
			filters: EventFilters{TransactionID: "1700000000000_tx"},
			setupMocks: func(store *mocks.MockEventStore) {
				store.EXPECT().FindLatestByTransactionID(mock.Anything, "1700000000000_tx").Return(latest, nil).Once()
			},
			expected: latest,
		},
		{
			name:    "order id not found",
			filters: EventFilters{OrderID: "missing"},
			setupMocks: func(store *mocks.MockEventStore) {
				store.EXPECT().FindLatestByOrderID(mock.Anything, "missing").Return(nil, nil).Once()
			},
			expectedError: "Event not found by orderId: missing",
			expectedKind:  events.KindNotFound,
		},
		{
			name:    "transaction id not found",
			filters: EventFilters{TransactionID: "missing"},
			setupMocks: func(store *mocks.MockEventStore) {
				store.EXPECT().FindLatestByTransactionID(mock.Anything, "missing").Return(nil, nil).Once()
			},
			expectedError: "Event not found by transactionId: missing",
			expectedKind:  events.KindNotFound,
		},
		{
			name:    "store failure",
			filters: EventFilters{OrderID: "order-1"},
			setupMocks: func(store *mocks.MockEventStore) {
				store.EXPECT().FindLatestByOrderID(mock.Anything, "order-1").Return(nil, errors.New("timeout")).Once()
			},
			expectedError: "failed to find event: timeout",
			expectedKind:  events.KindUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mocks.NewMockEventStore(t)
			tt.setupMocks(store)

			event, err := NewEventService(store, ordermocks.NewMockOrderRepository(t), discardLogger()).
				FindByFilters(context.Background(), tt.filters)

			if tt.expectedError != "" {
				require.Error(t, err)
				assert.Nil(t, event)
				assert.Equal(t, tt.expectedError, err.Error())
				assert.Equal(t, tt.expectedKind, events.KindOf(err))
				return
			}

			require.NoError(t, err)
			assert.Same(t, tt.expected, event)
		})
	}
}

func TestEventService_FindAll(t *testing.T) {
	store := mocks.NewMockEventStore(t)
	newest := finishedEvent(events.StatusSuccess)
	oldest := events.NewEvent(events.Order{ID: "order-1", TransactionID: "1700000000000_tx"})
	store.EXPECT().FindAll(mock.Anything).Return([]*events.Event{newest, oldest}, nil).Once()

	all, err := NewEventService(store, ordermocks.NewMockOrderRepository(t), discardLogger()).FindAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []*events.Event{newest, oldest}, all)
}
