package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/multikonnect/listing-service/internal/service"
	"github.com/multikonnect/listing-service/pkg/httputil"
	"github.com/multikonnect/listing-service/pkg/validator"
)

// StoreHandler handles HTTP requests for store endpoints.
type StoreHandler struct {
	service *service.StoreService
	logger  *slog.Logger
}

// NewStoreHandler creates a new store HTTP handler.
func NewStoreHandler(svc *service.StoreService, logger *slog.Logger) *StoreHandler {
	return &StoreHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// CreateStoreRequest is the JSON request body for registering a store.
type CreateStoreRequest struct {
	Name                  string  `json:"name" validate:"required,min=1,max=255"`
	Postcode              string  `json:"postcode" validate:"max=10"`
	RegularShippingCharge float64 `json:"regular_shipping_charge" validate:"gte=0"`
	SameDayShippingCharge float64 `json:"same_day_shipping_charge" validate:"gte=0"`
	DeliverySlot          string  `json:"delivery_slot"`
}

// UpdateStoreRequest is the JSON request body for a partial store update.
type UpdateStoreRequest struct {
	Name                  *string  `json:"name" validate:"omitempty,min=1,max=255"`
	Postcode              *string  `json:"postcode" validate:"omitempty,max=10"`
	RegularShippingCharge *float64 `json:"regular_shipping_charge" validate:"omitempty,gte=0"`
	SameDayShippingCharge *float64 `json:"same_day_shipping_charge" validate:"omitempty,gte=0"`
	DeliverySlot          *string  `json:"delivery_slot"`
}

// --- Handlers ---

// CreateStore handles POST /api/v1/stores
func (h *StoreHandler) CreateStore(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB limit
	var req CreateStoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	input := &service.CreateStoreInput{
		Name:                  req.Name,
		Postcode:              req.Postcode,
		RegularShippingCharge: req.RegularShippingCharge,
		SameDayShippingCharge: req.SameDayShippingCharge,
		DeliverySlot:          req.DeliverySlot,
	}

	store, err := h.service.CreateStore(r.Context(), vendorID(r), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: store})
}

// ListStores handles GET /api/v1/stores
func (h *StoreHandler) ListStores(w http.ResponseWriter, r *http.Request) {
	stores, err := h.service.ListStores(r.Context(), vendorID(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: stores})
}

// GetStore handles GET /api/v1/stores/{id}
func (h *StoreHandler) GetStore(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "store id is required"},
		})
		return
	}

	store, err := h.service.GetStore(r.Context(), vendorID(r), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: store})
}

// UpdateStore handles PUT /api/v1/stores/{id}
func (h *StoreHandler) UpdateStore(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB limit
	id := chi.URLParam(r, "id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "store id is required"},
		})
		return
	}

	var req UpdateStoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	input := &service.UpdateStoreInput{
		Name:                  req.Name,
		Postcode:              req.Postcode,
		RegularShippingCharge: req.RegularShippingCharge,
		SameDayShippingCharge: req.SameDayShippingCharge,
		DeliverySlot:          req.DeliverySlot,
	}

	store, err := h.service.UpdateStore(r.Context(), vendorID(r), id, input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: store})
}

// DeleteStore handles DELETE /api/v1/stores/{id}
func (h *StoreHandler) DeleteStore(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "store id is required"},
		})
		return
	}

	if err := h.service.DeleteStore(r.Context(), vendorID(r), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusNoContent, nil)
}
