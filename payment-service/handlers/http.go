package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/draftea/order-saga/payment-service/application"
	"github.com/draftea/order-saga/shared/events"
	"github.com/go-chi/chi/v5"
)

// PaymentHandlers contains payment HTTP handlers
type PaymentHandlers struct {
	getPayment *application.GetPayment
}

func NewPaymentHandlers(getPayment *application.GetPayment) *PaymentHandlers {
	return &PaymentHandlers{getPayment: getPayment}
}

// GetPayment handles payment retrieval requests
func (h *PaymentHandlers) GetPayment(w http.ResponseWriter, r *http.Request) {
	query := &application.GetPaymentQuery{
		OrderID:       r.URL.Query().Get("orderId"),
		TransactionID: r.URL.Query().Get("transactionId"),
	}

	response, err := h.getPayment.Execute(r.Context(), query)
	if err != nil {
		switch events.KindOf(err) {
		case events.KindValidation:
			http.Error(w, err.Error(), http.StatusBadRequest)
		case events.KindNotFound:
			http.Error(w, err.Error(), http.StatusNotFound)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// RegisterRoutes registers payment routes
func (h *PaymentHandlers) RegisterRoutes(r chi.Router) {
	r.Get("/api/v1/payments", h.GetPayment)
}
