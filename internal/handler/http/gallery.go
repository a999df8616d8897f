package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/multikonnect/listing-service/internal/service"
	"github.com/multikonnect/listing-service/pkg/httputil"
	"github.com/multikonnect/listing-service/pkg/validator"
)

// maxGalleryUpload bounds a single multipart upload batch.
const maxGalleryUpload = 32 << 20 // 32 MB

// --- Request DTOs ---

// SetFeaturedRequest is the JSON request body for choosing the featured image.
type SetFeaturedRequest struct {
	Index int `json:"index" validate:"gte=0"`
}

// TransformRequest is the JSON request body for applying an image transform.
type TransformRequest struct {
	Kind string `json:"kind" validate:"required,oneof=remove_background auto_crop enhance watermark spin"`
}

// --- Handlers ---

// UploadImages handles POST /api/v1/drafts/{id}/images (multipart/form-data).
// Accepts one or more files under the "images" field.
func (h *ListingHandler) UploadImages(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxGalleryUpload+(1<<20))
	if err := r.ParseMultipartForm(maxGalleryUpload); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "failed to parse multipart form: " + err.Error()},
		})
		return
	}

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "at least one file is required under the images field"},
		})
		return
	}

	uploads := make([]service.ImageUpload, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "failed to open uploaded file: " + err.Error()},
			})
			return
		}
		data, err := io.ReadAll(file)
		_ = file.Close()
		if err != nil {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "failed to read uploaded file: " + err.Error()},
			})
			return
		}
		uploads = append(uploads, service.ImageUpload{Filename: header.Filename, Data: data})
	}

	result, err := h.service.UploadImages(r.Context(), vendorID(r), id, uploads)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	status := http.StatusCreated
	if result.Accepted == 0 {
		// Nothing was ingested; the response still carries per-file reasons.
		status = http.StatusUnprocessableEntity
	}

	httputil.WriteJSON(w, status, httputil.Response{Data: result})
}

// RemoveImage handles DELETE /api/v1/drafts/{id}/images/{index}
func (h *ListingHandler) RemoveImage(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	index, ok := requireIndex(w, r)
	if !ok {
		return
	}

	draft, err := h.service.RemoveImage(r.Context(), vendorID(r), id, index)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: draft})
}

// SetFeaturedImage handles PUT /api/v1/drafts/{id}/images/featured
func (h *ListingHandler) SetFeaturedImage(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}

	var req SetFeaturedRequest
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

	draft, err := h.service.SetFeaturedImage(r.Context(), vendorID(r), id, req.Index)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: draft})
}

// TransformImage handles POST /api/v1/drafts/{id}/images/{index}/transform
func (h *ListingHandler) TransformImage(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	index, ok := requireIndex(w, r)
	if !ok {
		return
	}

	var req TransformRequest
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

	draft, err := h.service.TransformImage(r.Context(), vendorID(r), id, index, req.Kind)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: draft})
}
