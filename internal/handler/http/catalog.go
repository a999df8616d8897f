package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/multikonnect/listing-service/internal/service"
	"github.com/multikonnect/listing-service/pkg/httputil"
	"github.com/multikonnect/listing-service/pkg/validator"
)

// CatalogHandler handles HTTP requests for cross-vendor catalog search and import.
type CatalogHandler struct {
	service *service.ImportService
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(svc *service.ImportService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: svc,
		logger:  logger,
	}
}

// ImportListingRequest is the JSON request body for importing a catalog
// listing. The payment fields describe how the initial stock purchase from
// the source vendor is settled; credit_days and payment_intent_id are
// conditionally required in the service depending on the method.
type ImportListingRequest struct {
	StoreID          string `json:"store_id" validate:"omitempty,uuid"`
	CatalogListingID string `json:"catalog_listing_id" validate:"required"`
	PaymentMethod    string `json:"payment_method" validate:"required,oneof=instant credit"`
	Quantity         int    `json:"quantity" validate:"required,gte=1"`
	CreditDays       int    `json:"credit_days" validate:"omitempty,gte=1"`
	PaymentIntentID  string `json:"payment_intent_id" validate:"omitempty,max=255"`
}

// SearchCatalog handles GET /api/v1/catalog/search
func (h *CatalogHandler) SearchCatalog(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	page := 1
	perPage := 20
	if v := r.URL.Query().Get("page"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			page = p
		}
	}
	if v := r.URL.Query().Get("per_page"); v != "" {
		if pp, err := strconv.Atoi(v); err == nil && pp > 0 && pp <= 100 {
			perPage = pp
		}
	}

	result, err := h.service.SearchCatalog(r.Context(), vendorID(r), query, page, perPage)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// ImportListing handles POST /api/v1/catalog/import
func (h *CatalogHandler) ImportListing(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB limit
	var req ImportListingRequest
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

	draft, err := h.service.ImportListing(r.Context(), vendorID(r), service.ImportParams{
		StoreID:          req.StoreID,
		CatalogListingID: req.CatalogListingID,
		PaymentMethod:    req.PaymentMethod,
		Quantity:         req.Quantity,
		CreditDays:       req.CreditDays,
		PaymentIntentID:  req.PaymentIntentID,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: draft})
}
