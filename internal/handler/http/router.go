package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/multikonnect/listing-service/internal/service"
	"github.com/multikonnect/listing-service/pkg/health"
	"github.com/multikonnect/listing-service/pkg/middleware"
)

// NewRouter creates a chi router with all listing service routes registered.
func NewRouter(
	listingService *service.ListingService,
	storeService *service.StoreService,
	importService *service.ImportService,
	healthHandler *health.Handler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.Tracing("listing"))
	r.Use(middleware.PrometheusMetrics("listing"))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	listingHandler := NewListingHandler(listingService, logger)
	storeHandler := NewStoreHandler(storeService, logger)
	catalogHandler := NewCatalogHandler(importService, logger)

	r.Route("/api/v1/drafts", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(middleware.RequireVendor())

		r.Post("/", listingHandler.CreateDraft)
		r.Get("/", listingHandler.ListDrafts)

		r.Get("/{id}", listingHandler.GetDraft)
		r.Put("/{id}", listingHandler.UpdateDraft)
		r.Delete("/{id}", listingHandler.DeleteDraft)

		r.Post("/{id}/publish", listingHandler.Publish)
		r.Get("/{id}/pricing", listingHandler.Pricing)
		r.Get("/{id}/completeness", listingHandler.Completeness)

		r.Put("/{id}/dimensions/{dim}", listingHandler.RenameDimension)
		r.Post("/{id}/dimensions/{dim}/options", listingHandler.AddDimensionOption)
		r.Post("/{id}/dimensions/{dim}/options/remove", listingHandler.RemoveDimensionOption)

		// The regenerate endpoint must come before /{index} to avoid conflict.
		r.Post("/{id}/variants/regenerate", listingHandler.RegenerateMatrix)
		r.Post("/{id}/variants/apply-all", listingHandler.ApplyToAllVariants)
		r.Patch("/{id}/variants/{index}", listingHandler.UpdateVariant)
		r.Put("/{id}/variants/{index}/image", listingHandler.SetVariantImage)
		r.Delete("/{id}/variants/{index}/image", listingHandler.ClearVariantImage)

		r.Put("/{id}/color-images", listingHandler.SetColorImage)

		r.Post("/{id}/images", listingHandler.UploadImages)
		r.Put("/{id}/images/featured", listingHandler.SetFeaturedImage)
		r.Delete("/{id}/images/{index}", listingHandler.RemoveImage)
		r.Post("/{id}/images/{index}/transform", listingHandler.TransformImage)
	})

	r.Route("/api/v1/listings", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(middleware.RequireVendor())

		r.Get("/", listingHandler.ListListings)

		// The batch-delete endpoint must come before /{id} to avoid conflict.
		r.Post("/batch-delete", listingHandler.DeleteListings)

		r.Get("/{id}", listingHandler.GetListing)
		r.Delete("/{id}", listingHandler.DeleteListing)
	})

	r.Route("/api/v1/stores", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(middleware.RequireVendor())

		r.Post("/", storeHandler.CreateStore)
		r.Get("/", storeHandler.ListStores)
		r.Get("/{id}", storeHandler.GetStore)
		r.Put("/{id}", storeHandler.UpdateStore)
		r.Delete("/{id}", storeHandler.DeleteStore)
	})

	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(middleware.RequireVendor())

		r.Get("/search", catalogHandler.SearchCatalog)
		r.Post("/import", catalogHandler.ImportListing)
	})

	return r
}
