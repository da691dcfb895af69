package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/draftea/order-saga/order-service/application"
	"github.com/draftea/order-saga/shared/events"
	"github.com/go-chi/chi/v5"
)

// OrderHandlers contains order and saga history HTTP handlers
type OrderHandlers struct {
	createOrder  *application.CreateOrder
	getOrder     *application.GetOrder
	eventService *application.EventService
}

func NewOrderHandlers(
	createOrder *application.CreateOrder,
	getOrder *application.GetOrder,
	eventService *application.EventService,
) *OrderHandlers {
	return &OrderHandlers{
		createOrder:  createOrder,
		getOrder:     getOrder,
		eventService: eventService,
	}
}

// CreateOrder handles POST /api/v1/orders
func (h *OrderHandlers) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var cmd application.CreateOrderCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	response, err := h.createOrder.Execute(r.Context(), &cmd)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, response)
}

// GetOrder handles GET /api/v1/orders/{id}
func (h *OrderHandlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	response, err := h.getOrder.Execute(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// FindEvent handles GET /api/v1/events?orderId=&transactionId=
func (h *OrderHandlers) FindEvent(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	event, err := h.eventService.FindByFilters(r.Context(), application.EventFilters{
		OrderID:       query.Get("orderId"),
		TransactionID: query.Get("transactionId"),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, event)
}

// ListEvents handles GET /api/v1/events/all
func (h *OrderHandlers) ListEvents(w http.ResponseWriter, r *http.Request) {
	all, err := h.eventService.FindAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, all)
}

// RegisterRoutes registers order routes
func (h *OrderHandlers) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Post("/", h.CreateOrder)
		r.Get("/{id}", h.GetOrder)
	})
	r.Route("/api/v1/events", func(r chi.Router) {
		r.Get("/", h.FindEvent)
		r.Get("/all", h.ListEvents)
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	switch events.KindOf(err) {
	case events.KindValidation:
		http.Error(w, err.Error(), http.StatusBadRequest)
	case events.KindNotFound:
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
