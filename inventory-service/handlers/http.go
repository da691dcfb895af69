package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/draftea/order-saga/inventory-service/application"
	"github.com/draftea/order-saga/shared/events"
	"github.com/go-chi/chi/v5"
)

// InventoryHandlers contains inventory HTTP handlers
type InventoryHandlers struct {
	manageInventory *application.ManageInventory
}

func NewInventoryHandlers(manageInventory *application.ManageInventory) *InventoryHandlers {
	return &InventoryHandlers{manageInventory: manageInventory}
}

// ListInventory returns every inventory row
func (h *InventoryHandlers) ListInventory(w http.ResponseWriter, r *http.Request) {
	response, err := h.manageInventory.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// GetInventory returns the inventory of one product
func (h *InventoryHandlers) GetInventory(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		http.Error(w, "Product code is required", http.StatusBadRequest)
		return
	}

	response, err := h.manageInventory.Get(r.Context(), code)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// UpsertInventory sets the available stock of a product
func (h *InventoryHandlers) UpsertInventory(w http.ResponseWriter, r *http.Request) {
	var cmd application.UpsertInventoryCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if code := chi.URLParam(r, "code"); code != "" {
		cmd.ProductCode = code
	}

	response, err := h.manageInventory.Upsert(r.Context(), &cmd)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// RegisterRoutes registers inventory routes
func (h *InventoryHandlers) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/inventory", func(r chi.Router) {
		r.Get("/", h.ListInventory)
		r.Post("/", h.UpsertInventory)
		r.Get("/{code}", h.GetInventory)
		r.Put("/{code}", h.UpsertInventory)
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
