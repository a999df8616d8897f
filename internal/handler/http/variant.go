package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/multikonnect/listing-service/internal/matrix"
	"github.com/multikonnect/listing-service/pkg/httputil"
	"github.com/multikonnect/listing-service/pkg/validator"
)

// --- Request DTOs ---

// AddOptionRequest is the JSON request body for adding a dimension option.
type AddOptionRequest struct {
	Label string `json:"label" validate:"required,min=1,max=100"`
}

// RemoveOptionRequest is the JSON request body for removing a dimension option.
type RemoveOptionRequest struct {
	Label string `json:"label" validate:"required,min=1,max=100"`
}

// RenameDimensionRequest is the JSON request body for renaming a dimension axis.
type RenameDimensionRequest struct {
	Name string `json:"name" validate:"required,min=1,max=50"`
}

// UpdateVariantRequest is the JSON request body for patching a single variant.
type UpdateVariantRequest struct {
	Price           *string `json:"price"`
	CompareAtPrice  *string `json:"compare_at_price"`
	StockQuantity   *string `json:"stock_quantity"`
	SameDayEligible *bool   `json:"same_day_eligible"`
}

// ApplyToAllRequest is the JSON request body for bulk-filling a variant field.
type ApplyToAllRequest struct {
	Field string `json:"field" validate:"required,oneof=price stock"`
	Value string `json:"value" validate:"required"`
}

// SetVariantImageRequest is the JSON request body for assigning a variant image.
type SetVariantImageRequest struct {
	ImageRef string `json:"image_ref" validate:"required"`
}

// SetColorImageRequest is the JSON request body for mapping a color to an image.
type SetColorImageRequest struct {
	Color    string `json:"color" validate:"required,min=1,max=100"`
	ImageRef string `json:"image_ref" validate:"required"`
}

// --- Handlers ---

// AddDimensionOption handles POST /api/v1/drafts/{id}/dimensions/{dim}/options
func (h *ListingHandler) AddDimensionOption(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	dim, ok := requireDimension(w, r)
	if !ok {
		return
	}

	var req AddOptionRequest
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

	draft, err := h.service.AddDimensionOption(r.Context(), vendorID(r), id, dim, req.Label)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: draft})
}

// RemoveDimensionOption handles POST /api/v1/drafts/{id}/dimensions/{dim}/options/remove
//
// Option labels are free text and may contain characters that do not survive a
// URL path segment, so removal takes the label in the body.
func (h *ListingHandler) RemoveDimensionOption(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	dim, ok := requireDimension(w, r)
	if !ok {
		return
	}

	var req RemoveOptionRequest
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

	draft, err := h.service.RemoveDimensionOption(r.Context(), vendorID(r), id, dim, req.Label)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: draft})
}

// RenameDimension handles PUT /api/v1/drafts/{id}/dimensions/{dim}
func (h *ListingHandler) RenameDimension(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	dim, ok := requireDimension(w, r)
	if !ok {
		return
	}

	var req RenameDimensionRequest
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

	draft, err := h.service.RenameDimension(r.Context(), vendorID(r), id, dim, req.Name)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: draft})
}

// RegenerateMatrix handles POST /api/v1/drafts/{id}/variants/regenerate
func (h *ListingHandler) RegenerateMatrix(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}

	draft, err := h.service.RegenerateMatrix(r.Context(), vendorID(r), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: draft})
}

// UpdateVariant handles PATCH /api/v1/drafts/{id}/variants/{index}
func (h *ListingHandler) UpdateVariant(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	index, ok := requireIndex(w, r)
	if !ok {
		return
	}

	var req UpdateVariantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	patch := matrix.VariantPatch{
		Price:           req.Price,
		CompareAtPrice:  req.CompareAtPrice,
		StockQuantity:   req.StockQuantity,
		SameDayEligible: req.SameDayEligible,
	}

	draft, err := h.service.UpdateVariant(r.Context(), vendorID(r), id, index, patch)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: draft})
}

// ApplyToAllVariants handles POST /api/v1/drafts/{id}/variants/apply-all
func (h *ListingHandler) ApplyToAllVariants(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}

	var req ApplyToAllRequest
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

	draft, err := h.service.ApplyToAllVariants(r.Context(), vendorID(r), id, req.Field, req.Value)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: draft})
}

// SetVariantImage handles PUT /api/v1/drafts/{id}/variants/{index}/image
func (h *ListingHandler) SetVariantImage(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	index, ok := requireIndex(w, r)
	if !ok {
		return
	}

	var req SetVariantImageRequest
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

	draft, err := h.service.SetVariantImage(r.Context(), vendorID(r), id, index, req.ImageRef)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: draft})
}

// ClearVariantImage handles DELETE /api/v1/drafts/{id}/variants/{index}/image
func (h *ListingHandler) ClearVariantImage(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	index, ok := requireIndex(w, r)
	if !ok {
		return
	}

	draft, err := h.service.ClearVariantImage(r.Context(), vendorID(r), id, index)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: draft})
}

// SetColorImage handles PUT /api/v1/drafts/{id}/color-images
func (h *ListingHandler) SetColorImage(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}

	var req SetColorImageRequest
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

	draft, err := h.service.SetColorImage(r.Context(), vendorID(r), id, req.Color, req.ImageRef)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: draft})
}

// --- Helpers ---

func requireDimension(w http.ResponseWriter, r *http.Request) (matrix.DimensionID, bool) {
	switch chi.URLParam(r, "dim") {
	case "1":
		return matrix.Dimension1, true
	case "2":
		return matrix.Dimension2, true
	default:
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "dimension must be 1 or 2"},
		})
		return 0, false
	}
}

func requireIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "index must be a non-negative integer"},
		})
		return 0, false
	}
	return index, true
}
