package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/multikonnect/listing-service/internal/repository"
	"github.com/multikonnect/listing-service/internal/service"
	"github.com/multikonnect/listing-service/pkg/httputil"
	"github.com/multikonnect/listing-service/pkg/middleware"
	"github.com/multikonnect/listing-service/pkg/validator"
)

// ListingHandler handles HTTP requests for draft and published listing endpoints.
type ListingHandler struct {
	service *service.ListingService
	logger  *slog.Logger
}

// NewListingHandler creates a new listing HTTP handler.
func NewListingHandler(svc *service.ListingService, logger *slog.Logger) *ListingHandler {
	return &ListingHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// CreateDraftRequest is the JSON request body for starting a draft.
type CreateDraftRequest struct {
	StoreID        string `json:"store_id" validate:"omitempty,uuid"`
	Title          string `json:"title" validate:"required,min=1,max=255"`
	Description    string `json:"description"`
	Price          string `json:"price"`
	Postcode       string `json:"postcode" validate:"max=10"`
	DeliverySlot   string `json:"delivery_slot"`
	Condition      string `json:"condition"`
	Dimension1Name string `json:"dimension1_name" validate:"max=50"`
	Dimension2Name string `json:"dimension2_name" validate:"max=50"`
}

// UpdateDraftRequest is the JSON request body for a partial draft update.
type UpdateDraftRequest struct {
	StoreID         *string  `json:"store_id" validate:"omitempty,uuid"`
	Title           *string  `json:"title" validate:"omitempty,min=1,max=255"`
	Description     *string  `json:"description"`
	SEOTitle        *string  `json:"seo_title" validate:"omitempty,max=255"`
	MetaDescription *string  `json:"meta_description" validate:"omitempty,max=255"`
	Condition       *string  `json:"condition"`
	ConditionNotes  *string  `json:"condition_notes"`
	BoxContents     *string  `json:"box_contents"`
	Postcode        *string  `json:"postcode" validate:"omitempty,max=10"`
	DeliverySlot    *string  `json:"delivery_slot"`
	Price           *string  `json:"price"`
	CommissionRate  *float64 `json:"commission_rate" validate:"omitempty,gte=0,lte=1"`
	PromoFee        *float64 `json:"promo_fee" validate:"omitempty,gte=0"`
	OfferEnabled    *bool    `json:"offer_enabled"`
	MPID            *string  `json:"mpid" validate:"omitempty,max=50"`
	MPIDMatched     *bool    `json:"mpid_matched"`
}

// DeleteListingsRequest is the JSON request body for a bulk delete.
type DeleteListingsRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,required"`
}

// --- Handlers ---

// CreateDraft handles POST /api/v1/drafts
func (h *ListingHandler) CreateDraft(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB limit
	var req CreateDraftRequest
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

	input := &service.CreateListingInput{
		StoreID:        req.StoreID,
		Title:          req.Title,
		Description:    req.Description,
		Price:          req.Price,
		Postcode:       req.Postcode,
		DeliverySlot:   req.DeliverySlot,
		Condition:      req.Condition,
		Dimension1Name: req.Dimension1Name,
		Dimension2Name: req.Dimension2Name,
	}

	draft, err := h.service.CreateDraft(r.Context(), vendorID(r), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: draft})
}

// ListDrafts handles GET /api/v1/drafts
func (h *ListingHandler) ListDrafts(w http.ResponseWriter, r *http.Request) {
	drafts, err := h.service.ListDrafts(r.Context(), vendorID(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: drafts})
}

// GetDraft handles GET /api/v1/drafts/{id}
func (h *ListingHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}

	draft, err := h.service.GetDraft(r.Context(), vendorID(r), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: draft})
}

// UpdateDraft handles PUT /api/v1/drafts/{id}
func (h *ListingHandler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB limit
	id, ok := requireID(w, r)
	if !ok {
		return
	}

	var req UpdateDraftRequest
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

	input := &service.UpdateListingInput{
		StoreID:         req.StoreID,
		Title:           req.Title,
		Description:     req.Description,
		SEOTitle:        req.SEOTitle,
		MetaDescription: req.MetaDescription,
		Condition:       req.Condition,
		ConditionNotes:  req.ConditionNotes,
		BoxContents:     req.BoxContents,
		Postcode:        req.Postcode,
		DeliverySlot:    req.DeliverySlot,
		Price:           req.Price,
		CommissionRate:  req.CommissionRate,
		PromoFee:        req.PromoFee,
		OfferEnabled:    req.OfferEnabled,
		MPID:            req.MPID,
		MPIDMatched:     req.MPIDMatched,
	}

	draft, err := h.service.UpdateDraft(r.Context(), vendorID(r), id, input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: draft})
}

// DeleteDraft handles DELETE /api/v1/drafts/{id}
func (h *ListingHandler) DeleteDraft(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteDraft(r.Context(), vendorID(r), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusNoContent, nil)
}

// Publish handles POST /api/v1/drafts/{id}/publish
func (h *ListingHandler) Publish(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}

	result, err := h.service.Publish(r.Context(), vendorID(r), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: result})
}

// Pricing handles GET /api/v1/drafts/{id}/pricing
func (h *ListingHandler) Pricing(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}

	snapshot, err := h.service.Pricing(r.Context(), vendorID(r), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: snapshot})
}

// Completeness handles GET /api/v1/drafts/{id}/completeness
func (h *ListingHandler) Completeness(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}

	report, err := h.service.Completeness(r.Context(), vendorID(r), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: report})
}

// ListListings handles GET /api/v1/listings
func (h *ListingHandler) ListListings(w http.ResponseWriter, r *http.Request) {
	filter := repository.ListingFilter{
		Page:    1,
		PerPage: 20,
	}

	if v := r.URL.Query().Get("page"); v != "" {
		if page, err := strconv.Atoi(v); err == nil && page > 0 {
			filter.Page = page
		}
	}
	if v := r.URL.Query().Get("per_page"); v != "" {
		if perPage, err := strconv.Atoi(v); err == nil && perPage > 0 && perPage <= 100 {
			filter.PerPage = perPage
		}
	}
	if v := r.URL.Query().Get("store_id"); v != "" {
		filter.StoreID = &v
	}
	if v := r.URL.Query().Get("status"); v != "" {
		filter.Status = &v
	}
	if v := r.URL.Query().Get("search"); v != "" {
		filter.Search = &v
	}

	listings, total, err := h.service.ListListings(r.Context(), vendorID(r), filter)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.NewPaginatedResponse(listings, total, filter.Page, filter.PerPage))
}

// GetListing handles GET /api/v1/listings/{id}
func (h *ListingHandler) GetListing(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}

	listing, err := h.service.GetListing(r.Context(), vendorID(r), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: listing})
}

// DeleteListing handles DELETE /api/v1/listings/{id}
func (h *ListingHandler) DeleteListing(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteListing(r.Context(), vendorID(r), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusNoContent, nil)
}

// DeleteListings handles POST /api/v1/listings/batch-delete
func (h *ListingHandler) DeleteListings(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB limit
	var req DeleteListingsRequest
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

	deleted, err := h.service.DeleteListings(r.Context(), vendorID(r), req.IDs)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]int{"deleted": deleted}})
}

// --- Helpers ---

func vendorID(r *http.Request) string {
	return middleware.VendorIDFromContext(r.Context())
}

func requireID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "listing id is required"},
		})
		return "", false
	}
	return id, true
}
