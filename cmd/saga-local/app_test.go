package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	inventoryapp "github.com/draftea/order-saga/inventory-service/application"
	orderapp "github.com/draftea/order-saga/order-service/application"
	paymentapp "github.com/draftea/order-saga/payment-service/application"
	"github.com/draftea/order-saga/shared/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type historyLine struct {
	source  events.Source
	status  events.Status
	message string
}

func newTestApp(t *testing.T, stock map[string]int) *app {
	t.Helper()
	a, err := newApp(context.Background(), slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)), stock)
	require.NoError(t, err)
	t.Cleanup(func() { a.close() })
	return a
}

func (a *app) do(t *testing.T, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, httptest.NewRequest(method, target, &payload))
	return rec
}

func (a *app) placeOrder(t *testing.T, products ...events.OrderProduct) orderapp.CreateOrderResponse {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/v1/orders", orderapp.CreateOrderCommand{Products: products})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created orderapp.CreateOrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	return created
}

func (a *app) latestEvent(t *testing.T, orderID string) events.Event {
	t.Helper()
	rec := a.do(t, http.MethodGet, "/api/v1/events?orderId="+url.QueryEscape(orderID), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var event events.Event
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &event))
	return event
}

func (a *app) available(t *testing.T, code string) int {
	t.Helper()
	rec := a.do(t, http.MethodGet, "/api/v1/inventory/"+code, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var inventory inventoryapp.InventoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &inventory))
	return inventory.Available
}

func (a *app) paymentOf(t *testing.T, created orderapp.CreateOrderResponse) paymentapp.PaymentResponse {
	t.Helper()
	target := "/api/v1/payments?orderId=" + url.QueryEscape(created.OrderID) +
		"&transactionId=" + url.QueryEscape(created.TransactionID)
	rec := a.do(t, http.MethodGet, target, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var payment paymentapp.PaymentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payment))
	return payment
}

func assertHistory(t *testing.T, event events.Event, expected []historyLine) {
	t.Helper()
	require.Len(t, event.History, len(expected))
	for i, line := range expected {
		assert.Equal(t, line.source, event.History[i].Source, "history[%d] source", i)
		assert.Equal(t, line.status, event.History[i].Status, "history[%d] status", i)
		assert.Equal(t, line.message, event.History[i].Message, "history[%d] message", i)
	}
}

func TestSaga_Success(t *testing.T) {
	a := newTestApp(t, map[string]int{"COMIC_BOOKS": 10})

	created := a.placeOrder(t, events.OrderProduct{Code: "COMIC_BOOKS", Quantity: 2, UnitValue: 5})

	event := a.latestEvent(t, created.OrderID)
	assert.Equal(t, events.SourceOrchestrator, event.Source)
	assert.Equal(t, events.StatusSuccess, event.Status)
	assert.Equal(t, created.TransactionID, event.TransactionID)
	assert.Equal(t, 10.0, event.Payload.TotalAmount)
	assert.Equal(t, 2, event.Payload.TotalItems)
	assertHistory(t, event, []historyLine{
		{events.SourceOrchestrator, events.StatusSuccess, "Saga started!"},
		{events.SourceInventory, events.StatusSuccess, "Inventory updated successfully."},
		{events.SourcePayment, events.StatusSuccess, "Payment realized successfully."},
		{events.SourceOrchestrator, events.StatusSuccess, "Saga finished successfully!"},
	})

	assert.Equal(t, 8, a.available(t, "COMIC_BOOKS"))
	assert.Equal(t, "SUCCESS", a.paymentOf(t, created).Status)
	assert.Empty(t, a.bus.Failures())
	assert.Len(t, a.bus.PublishedTo(events.NotifyEndingTopic), 1)
}

func TestSaga_RepeatedProductCode(t *testing.T) {
	a := newTestApp(t, map[string]int{"COMIC_BOOKS": 10})

	created := a.placeOrder(t,
		events.OrderProduct{Code: "COMIC_BOOKS", Quantity: 1, UnitValue: 5},
		events.OrderProduct{Code: "COMIC_BOOKS", Quantity: 1, UnitValue: 5},
	)

	event := a.latestEvent(t, created.OrderID)
	assert.Equal(t, events.StatusSuccess, event.Status)
	assert.Equal(t, 10.0, event.Payload.TotalAmount)
	assert.Equal(t, 2, event.Payload.TotalItems)
	assert.Equal(t, 8, a.available(t, "COMIC_BOOKS"))
}

func TestSaga_OutOfStock(t *testing.T) {
	a := newTestApp(t, map[string]int{"BOOKS": 1})

	created := a.placeOrder(t, events.OrderProduct{Code: "BOOKS", Quantity: 3, UnitValue: 10})

	event := a.latestEvent(t, created.OrderID)
	assert.Equal(t, events.StatusFail, event.Status)
	assertHistory(t, event, []historyLine{
		{events.SourceOrchestrator, events.StatusSuccess, "Saga started!"},
		{events.SourceInventory, events.StatusRollbackPending, "Fail to update inventory: Product is out of stock!"},
		{events.SourceInventory, events.StatusFail, "Rollback executed on inventory!"},
		{events.SourceOrchestrator, events.StatusFail, "Saga finished with errors!"},
	})

	assert.Equal(t, 1, a.available(t, "BOOKS"))
	assert.Empty(t, a.bus.PublishedTo(events.PaymentSuccessTopic))
}

func TestSaga_PaymentBelowMinimum(t *testing.T) {
	a := newTestApp(t, map[string]int{"MUSIC": 5})

	created := a.placeOrder(t, events.OrderProduct{Code: "MUSIC", Quantity: 1, UnitValue: 0.05})

	event := a.latestEvent(t, created.OrderID)
	assert.Equal(t, events.StatusFail, event.Status)
	assertHistory(t, event, []historyLine{
		{events.SourceOrchestrator, events.StatusSuccess, "Saga started!"},
		{events.SourceInventory, events.StatusSuccess, "Inventory updated successfully."},
		{events.SourcePayment, events.StatusRollbackPending, "Fail to realize payment: Amount must be greater than 0.1"},
		{events.SourcePayment, events.StatusFail, "Rollback executed on payment!"},
		{events.SourceInventory, events.StatusFail, "Rollback executed on inventory!"},
		{events.SourceOrchestrator, events.StatusFail, "Saga finished with errors!"},
	})

	assert.Equal(t, 5, a.available(t, "MUSIC"))
	assert.Equal(t, "REFUND", a.paymentOf(t, created).Status)
}

func TestSaga_UnknownProduct(t *testing.T) {
	a := newTestApp(t, map[string]int{"BOOKS": 1})

	created := a.placeOrder(t, events.OrderProduct{Code: "GAMES", Quantity: 1, UnitValue: 10})

	event := a.latestEvent(t, created.OrderID)
	assert.Equal(t, events.StatusFail, event.Status)
	require.Len(t, event.History, 4)
	assert.Equal(t, "Fail to update inventory: Inventory not found by informed product code: GAMES", event.History[1].Message)
	assert.Equal(t, "Rollback not required on inventory: no changes recorded for this transaction", event.History[2].Message)
}

func TestSaga_EventsListedNewestFirst(t *testing.T) {
	a := newTestApp(t, defaultStock)

	first := a.placeOrder(t, events.OrderProduct{Code: "MOVIES", Quantity: 1, UnitValue: 20})
	second := a.placeOrder(t, events.OrderProduct{Code: "MOVIES", Quantity: 1, UnitValue: 20})

	rec := a.do(t, http.MethodGet, "/api/v1/events/all", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var all []events.Event
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	require.Len(t, all, 4)
	assert.Equal(t, second.OrderID, all[0].OrderID)
	assert.Equal(t, events.StatusSuccess, all[0].Status)
	assert.Equal(t, first.OrderID, all[3].OrderID)
	assert.Empty(t, all[3].History)
	assert.Equal(t, 3, a.available(t, "MOVIES"))
}
