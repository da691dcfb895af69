package application

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/draftea/order-saga/inventory-service/domain"
	"github.com/draftea/order-saga/inventory-service/infrastructure"
	inventorymocks "github.com/draftea/order-saga/inventory-service/mocks"
	"github.com/draftea/order-saga/shared/events"
	"github.com/draftea/order-saga/shared/mocks"
	"github.com/draftea/order-saga/shared/saga"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type inventoryFixture struct {
	inventories *infrastructure.MemoryInventoryRepository
	snapshots   *infrastructure.MemoryOrderInventoryRepository
	publisher   *mocks.MockPublisher
	executor    *saga.Executor
	published   []*events.Event
}

func newInventoryFixture(t *testing.T, stock map[string]int) *inventoryFixture {
	t.Helper()

	f := &inventoryFixture{
		inventories: infrastructure.NewMemoryInventoryRepository(),
		snapshots:   infrastructure.NewMemoryOrderInventoryRepository(),
		publisher:   mocks.NewMockPublisher(t),
	}

	for code, available := range stock {
		require.NoError(t, f.inventories.Save(context.Background(), domain.NewInventory(code, available)))
	}

	f.publisher.EXPECT().Publish(mock.Anything, events.OrchestratorTopic, mock.Anything).
		Run(func(_ context.Context, _ events.Topic, evts ...*events.Event) {
			f.published = append(f.published, evts[0].Clone())
		}).
		Return(nil).Maybe()

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	participant := NewInventoryParticipant(f.inventories, f.snapshots, logger)
	f.executor = saga.NewExecutor(participant, f.publisher, saga.WithLogger(logger))

	return f
}

func (f *inventoryFixture) available(t *testing.T, code string) int {
	t.Helper()
	inventory, err := f.inventories.FindByProductCode(context.Background(), code)
	require.NoError(t, err)
	require.NotNil(t, inventory)
	return inventory.Available
}

func (f *inventoryFixture) lastPublished(t *testing.T) (*events.Event, events.History) {
	t.Helper()
	require.NotEmpty(t, f.published)
	event := f.published[len(f.published)-1]
	last, ok := event.LastHistory()
	require.True(t, ok)
	return event, last
}

func newSagaEvent(txID string, products ...events.OrderProduct) *events.Event {
	event := events.NewEvent(events.Order{
		ID:            "order-1",
		TransactionID: txID,
		Products:      products,
	})
	event.Stamp(events.SourceOrchestrator, events.StatusSuccess, "Saga started!")
	return event
}

func TestInventoryParticipant_Execute(t *testing.T) {
	tests := []struct {
		name              string
		stock             map[string]int
		products          []events.OrderProduct
		expectedStatus    events.Status
		expectedMessage   string
		expectedAvailable map[string]int
		expectedSnapshots int
	}{
		{
			name:              "reserves stock",
			stock:             map[string]int{"COMIC_BOOKS": 10},
			products:          []events.OrderProduct{{Code: "COMIC_BOOKS", Quantity: 2, UnitValue: 5}},
			expectedStatus:    events.StatusSuccess,
			expectedMessage:   "Inventory updated successfully.",
			expectedAvailable: map[string]int{"COMIC_BOOKS": 8},
			expectedSnapshots: 1,
		},
		{
			name:  "reserves every product",
			stock: map[string]int{"COMIC_BOOKS": 10, "BOOKS": 3},
			products: []events.OrderProduct{
				{Code: "COMIC_BOOKS", Quantity: 1, UnitValue: 5},
				{Code: "BOOKS", Quantity: 3, UnitValue: 10},
			},
			expectedStatus:    events.StatusSuccess,
			expectedMessage:   "Inventory updated successfully.",
			expectedAvailable: map[string]int{"COMIC_BOOKS": 9, "BOOKS": 0},
			expectedSnapshots: 2,
		},
		{
			name:  "repeated product code is reserved once",
			stock: map[string]int{"COMIC_BOOKS": 10},
			products: []events.OrderProduct{
				{Code: "COMIC_BOOKS", Quantity: 1, UnitValue: 5},
				{Code: "COMIC_BOOKS", Quantity: 1, UnitValue: 5},
			},
			expectedStatus:    events.StatusSuccess,
			expectedMessage:   "Inventory updated successfully.",
			expectedAvailable: map[string]int{"COMIC_BOOKS": 8},
			expectedSnapshots: 1,
		},
		{
			name:  "repeated product code exceeding stock in total",
			stock: map[string]int{"COMIC_BOOKS": 3},
			products: []events.OrderProduct{
				{Code: "COMIC_BOOKS", Quantity: 2, UnitValue: 5},
				{Code: "COMIC_BOOKS", Quantity: 2, UnitValue: 5},
			},
			expectedStatus:    events.StatusRollbackPending,
			expectedMessage:   "Fail to update inventory: Product is out of stock!",
			expectedAvailable: map[string]int{"COMIC_BOOKS": 3},
			expectedSnapshots: 1,
		},
		{
			name:              "out of stock",
			stock:             map[string]int{"COMIC_BOOKS": 2},
			products:          []events.OrderProduct{{Code: "COMIC_BOOKS", Quantity: 5, UnitValue: 5}},
			expectedStatus:    events.StatusRollbackPending,
			expectedMessage:   "Fail to update inventory: Product is out of stock!",
			expectedAvailable: map[string]int{"COMIC_BOOKS": 2},
			expectedSnapshots: 1,
		},
		{
			name:              "unknown product",
			stock:             map[string]int{"COMIC_BOOKS": 10},
			products:          []events.OrderProduct{{Code: "UNKNOWN", Quantity: 1, UnitValue: 5}},
			expectedStatus:    events.StatusRollbackPending,
			expectedMessage:   "Fail to update inventory: Inventory not found by informed product code: UNKNOWN",
			expectedAvailable: map[string]int{"COMIC_BOOKS": 10},
			expectedSnapshots: 0,
		},
		{
			name:  "second product out of stock keeps snapshots of both",
			stock: map[string]int{"COMIC_BOOKS": 10, "BOOKS": 1},
			products: []events.OrderProduct{
				{Code: "COMIC_BOOKS", Quantity: 2, UnitValue: 5},
				{Code: "BOOKS", Quantity: 4, UnitValue: 10},
			},
			expectedStatus:    events.StatusRollbackPending,
			expectedMessage:   "Fail to update inventory: Product is out of stock!",
			expectedAvailable: map[string]int{"COMIC_BOOKS": 8, "BOOKS": 1},
			expectedSnapshots: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newInventoryFixture(t, tt.stock)

			err := f.executor.Execute(context.Background(), newSagaEvent("1700000000000_tx", tt.products...))
			require.NoError(t, err)

			event, last := f.lastPublished(t)
			assert.Equal(t, events.SourceInventory, event.Source)
			assert.Equal(t, tt.expectedStatus, event.Status)
			assert.Equal(t, tt.expectedMessage, last.Message)

			for code, available := range tt.expectedAvailable {
				assert.Equal(t, available, f.available(t, code), code)
			}

			snapshots, err := f.snapshots.FindByOrderIDAndTransactionID(context.Background(), "order-1", "1700000000000_tx")
			require.NoError(t, err)
			assert.Len(t, snapshots, tt.expectedSnapshots)
		})
	}
}

func TestInventoryParticipant_ExecuteIsIdempotent(t *testing.T) {
	f := newInventoryFixture(t, map[string]int{"COMIC_BOOKS": 10})
	products := []events.OrderProduct{{Code: "COMIC_BOOKS", Quantity: 2, UnitValue: 5}}

	require.NoError(t, f.executor.Execute(context.Background(), newSagaEvent("1700000000000_tx", products...)))
	require.NoError(t, f.executor.Execute(context.Background(), newSagaEvent("1700000000000_tx", products...)))

	require.Len(t, f.published, 2)
	assert.Equal(t, events.StatusSuccess, f.published[0].Status)

	event, last := f.lastPublished(t)
	assert.Equal(t, events.StatusRollbackPending, event.Status)
	assert.Equal(t, "Fail to update inventory: There's another transactionId for this validation.", last.Message)

	assert.Equal(t, 8, f.available(t, "COMIC_BOOKS"))

	snapshots, err := f.snapshots.FindByOrderIDAndTransactionID(context.Background(), "order-1", "1700000000000_tx")
	require.NoError(t, err)
	assert.Len(t, snapshots, 1)
}

func TestInventoryParticipant_RollbackRestoresStock(t *testing.T) {
	f := newInventoryFixture(t, map[string]int{"COMIC_BOOKS": 10, "BOOKS": 5})
	products := []events.OrderProduct{
		{Code: "COMIC_BOOKS", Quantity: 2, UnitValue: 5},
		{Code: "BOOKS", Quantity: 5, UnitValue: 10},
	}

	event := newSagaEvent("1700000000000_tx", products...)
	require.NoError(t, f.executor.Execute(context.Background(), event))
	require.Equal(t, 8, f.available(t, "COMIC_BOOKS"))
	require.Equal(t, 0, f.available(t, "BOOKS"))

	forward, _ := f.lastPublished(t)
	forward.Stamp(events.SourcePayment, events.StatusFail, "Rollback executed on payment!")
	require.NoError(t, f.executor.Rollback(context.Background(), forward))

	rolledBack, last := f.lastPublished(t)
	assert.Equal(t, events.SourceInventory, rolledBack.Source)
	assert.Equal(t, events.StatusFail, rolledBack.Status)
	assert.Equal(t, "Rollback executed on inventory!", last.Message)

	assert.Equal(t, 10, f.available(t, "COMIC_BOOKS"))
	assert.Equal(t, 5, f.available(t, "BOOKS"))
}

func TestInventoryParticipant_RepeatedProductCodeSnapshot(t *testing.T) {
	f := newInventoryFixture(t, map[string]int{"COMIC_BOOKS": 10})

	event := newSagaEvent("1700000000000_tx",
		events.OrderProduct{Code: "COMIC_BOOKS", Quantity: 1, UnitValue: 5},
		events.OrderProduct{Code: "COMIC_BOOKS", Quantity: 2, UnitValue: 5},
	)
	require.NoError(t, f.executor.Execute(context.Background(), event))

	snapshots, err := f.snapshots.FindByOrderIDAndTransactionID(context.Background(), "order-1", "1700000000000_tx")
	require.NoError(t, err)
	require.Len(t, snapshots, 1)
	assert.Equal(t, 3, snapshots[0].OrderQuantity)
	assert.Equal(t, 10, snapshots[0].OldQuantity)
	assert.Equal(t, 7, snapshots[0].NewQuantity)
	assert.Equal(t, 7, f.available(t, "COMIC_BOOKS"))

	forward, _ := f.lastPublished(t)
	forward.Stamp(events.SourcePayment, events.StatusFail, "Rollback executed on payment!")
	require.NoError(t, f.executor.Rollback(context.Background(), forward))
	assert.Equal(t, 10, f.available(t, "COMIC_BOOKS"))
}

func TestInventoryParticipant_RollbackAfterPartialReservation(t *testing.T) {
	f := newInventoryFixture(t, map[string]int{"COMIC_BOOKS": 10, "BOOKS": 1})

	event := newSagaEvent("1700000000000_tx",
		events.OrderProduct{Code: "COMIC_BOOKS", Quantity: 2, UnitValue: 5},
		events.OrderProduct{Code: "BOOKS", Quantity: 4, UnitValue: 10},
	)
	require.NoError(t, f.executor.Execute(context.Background(), event))
	require.Equal(t, 8, f.available(t, "COMIC_BOOKS"))
	require.Equal(t, 1, f.available(t, "BOOKS"))

	failed, _ := f.lastPublished(t)
	require.Equal(t, events.StatusRollbackPending, failed.Status)
	require.NoError(t, f.executor.Rollback(context.Background(), failed))

	assert.Equal(t, 10, f.available(t, "COMIC_BOOKS"))
	assert.Equal(t, 1, f.available(t, "BOOKS"))
}

func TestInventoryParticipant_RollbackWithoutSnapshots(t *testing.T) {
	f := newInventoryFixture(t, map[string]int{"COMIC_BOOKS": 10})

	event := newSagaEvent("1700000000000_tx", events.OrderProduct{Code: "COMIC_BOOKS", Quantity: 2, UnitValue: 5})
	event.Stamp(events.SourceInventory, events.StatusRollbackPending, "Fail to update inventory: Product is out of stock!")

	require.NoError(t, f.executor.Rollback(context.Background(), event))

	rolledBack, last := f.lastPublished(t)
	assert.Equal(t, events.StatusFail, rolledBack.Status)
	assert.Equal(t, "Rollback not required on inventory: no changes recorded for this transaction", last.Message)
	assert.Equal(t, 10, f.available(t, "COMIC_BOOKS"))
}

func TestInventoryParticipant_RepositoryFailures(t *testing.T) {
	tests := []struct {
		name          string
		setupMocks    func(*inventorymocks.MockInventoryRepository, *inventorymocks.MockOrderInventoryRepository)
		expectedError string
	}{
		{
			name: "find by product code fails",
			setupMocks: func(inv *inventorymocks.MockInventoryRepository, _ *inventorymocks.MockOrderInventoryRepository) {
				inv.EXPECT().FindByProductCode(mock.Anything, "COMIC_BOOKS").Return(nil, errors.New("connection refused")).Once()
			},
			expectedError: "failed to find inventory: connection refused",
		},
		{
			name: "snapshot save fails",
			setupMocks: func(inv *inventorymocks.MockInventoryRepository, orderInv *inventorymocks.MockOrderInventoryRepository) {
				inv.EXPECT().FindByProductCode(mock.Anything, "COMIC_BOOKS").Return(domain.NewInventory("COMIC_BOOKS", 10), nil).Once()
				orderInv.EXPECT().Save(mock.Anything, mock.AnythingOfType("*domain.OrderInventory")).Return(errors.New("duplicate key")).Once()
			},
			expectedError: "failed to save order inventory: duplicate key",
		},
		{
			name: "inventory save fails",
			setupMocks: func(inv *inventorymocks.MockInventoryRepository, orderInv *inventorymocks.MockOrderInventoryRepository) {
				inv.EXPECT().FindByProductCode(mock.Anything, "COMIC_BOOKS").Return(domain.NewInventory("COMIC_BOOKS", 10), nil).Twice()
				orderInv.EXPECT().Save(mock.Anything, mock.Anything).Return(nil).Once()
				inv.EXPECT().Save(mock.Anything, mock.Anything).Return(errors.New("deadlock")).Once()
			},
			expectedError: "failed to save inventory: deadlock",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inventoryRepo := inventorymocks.NewMockInventoryRepository(t)
			orderInventoryRepo := inventorymocks.NewMockOrderInventoryRepository(t)
			tt.setupMocks(inventoryRepo, orderInventoryRepo)

			participant := NewInventoryParticipant(inventoryRepo, orderInventoryRepo, nil)
			event := newSagaEvent("1700000000000_tx", events.OrderProduct{Code: "COMIC_BOOKS", Quantity: 2, UnitValue: 5})

			err := participant.Apply(context.Background(), event)
			require.Error(t, err)
			assert.Equal(t, tt.expectedError, err.Error())
			assert.Equal(t, events.KindUnknown, events.KindOf(err))
		})
	}
}

func TestInventoryParticipant_CompensateMissingInventory(t *testing.T) {
	inventoryRepo := inventorymocks.NewMockInventoryRepository(t)
	orderInventoryRepo := inventorymocks.NewMockOrderInventoryRepository(t)

	snapshot := domain.NewOrderInventory(domain.NewInventory("COMIC_BOOKS", 10), "order-1", "1700000000000_tx", 2)
	orderInventoryRepo.EXPECT().FindByOrderIDAndTransactionID(mock.Anything, "order-1", "1700000000000_tx").
		Return([]*domain.OrderInventory{snapshot}, nil).Once()
	inventoryRepo.EXPECT().FindByID(mock.Anything, snapshot.InventoryID).Return(nil, nil).Once()

	participant := NewInventoryParticipant(inventoryRepo, orderInventoryRepo, nil)

	restored, err := participant.Compensate(context.Background(), newSagaEvent("1700000000000_tx", events.OrderProduct{Code: "COMIC_BOOKS", Quantity: 2}))
	require.Error(t, err)
	assert.Equal(t, 0, restored)
	assert.ErrorIs(t, err, events.ErrNotFound)
}
