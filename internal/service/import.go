package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/multikonnect/listing-service/internal/catalog"
	"github.com/multikonnect/listing-service/internal/domain"
	"github.com/multikonnect/listing-service/internal/event"
	"github.com/multikonnect/listing-service/internal/repository"
	apperrors "github.com/multikonnect/listing-service/pkg/errors"
	"github.com/multikonnect/listing-service/pkg/slug"
)

// CatalogClient is the catalog surface the import flow needs.
type CatalogClient interface {
	Search(ctx context.Context, query, excludeVendorID string, page, perPage int) (*catalog.SearchResult, error)
	GetListing(ctx context.Context, id string) (*catalog.Listing, error)
}

// ImportService seeds new drafts from other vendors' catalog listings.
type ImportService struct {
	catalog  CatalogClient
	drafts   repository.DraftRepository
	stores   repository.StoreRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewImportService creates a new import service.
func NewImportService(
	catalogClient CatalogClient,
	drafts repository.DraftRepository,
	stores repository.StoreRepository,
	producer *event.Producer,
	logger *slog.Logger,
) *ImportService {
	return &ImportService{
		catalog:  catalogClient,
		drafts:   drafts,
		stores:   stores,
		producer: producer,
		logger:   logger,
	}
}

// SearchCatalog queries other vendors' published listings as import
// candidates.
func (s *ImportService) SearchCatalog(ctx context.Context, vendorID, query string, page, perPage int) (*catalog.SearchResult, error) {
	result, err := s.catalog.Search(ctx, query, vendorID, page, perPage)
	if err != nil {
		return nil, fmt.Errorf("search catalog: %w", err)
	}
	return result, nil
}

// ImportParams carries the import request: which catalog listing to copy and
// the sourcing terms for the initial stock purchase from the source vendor.
type ImportParams struct {
	StoreID          string
	CatalogListingID string
	PaymentMethod    string
	Quantity         int
	CreditDays       int
	PaymentIntentID  string
}

func (p ImportParams) validate() error {
	switch p.PaymentMethod {
	case domain.PaymentMethodInstant:
		if p.PaymentIntentID == "" {
			return apperrors.InvalidInput("payment_intent_id is required for instant payment")
		}
	case domain.PaymentMethodCredit:
		if p.CreditDays < 1 {
			return apperrors.InvalidInput("credit_days is required for credit payment")
		}
	default:
		return apperrors.InvalidInput("payment_method must be instant or credit")
	}
	if p.Quantity < 1 {
		return apperrors.InvalidInput("quantity must be at least 1")
	}
	return nil
}

// ImportListing creates a new draft seeded from a catalog listing. The
// source's variants land in the imported set; they only become matrix cells
// when the vendor regenerates after adopting the option sets. The source
// vendor's prices act as a fallback base price until then.
func (s *ImportService) ImportListing(ctx context.Context, vendorID string, params ImportParams) (*domain.Listing, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	src, err := s.catalog.GetListing(ctx, params.CatalogListingID)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog listing: %w", err)
	}
	if src.VendorID == vendorID {
		return nil, apperrors.InvalidInput("cannot import your own listing")
	}
	if params.StoreID != "" {
		store, err := s.stores.GetByID(ctx, params.StoreID)
		if err != nil {
			return nil, fmt.Errorf("resolve store: %w", err)
		}
		if store.VendorID != vendorID {
			return nil, apperrors.Forbidden("store belongs to a different vendor")
		}
	}

	condition := src.Condition
	if condition == "" {
		condition = domain.DefaultCondition
	}

	imported := make([]domain.Variant, len(src.Variants))
	for i, v := range src.Variants {
		imported[i] = domain.Variant{
			Dim1Value:     v.Dim1Value,
			Dim2Value:     v.Dim2Value,
			Price:         v.Price,
			StockQuantity: v.Quantity,
			ImageRef:      v.Image,
		}
	}

	gallery := make([]domain.GalleryImage, len(src.Images))
	for i, url := range src.Images {
		gallery[i] = domain.GalleryImage{URL: url, IsFeatured: i == 0}
	}

	colorImages := src.ColorImages
	if colorImages == nil {
		colorImages = map[string]string{}
	}

	now := time.Now().UTC()
	draft := &domain.Listing{
		ID:           uuid.New().String(),
		StoreID:      params.StoreID,
		VendorID:     vendorID,
		Title:        src.Title,
		Slug:         slug.Generate(src.Title),
		Description:  src.Description,
		Condition:    condition,
		DeliverySlot: domain.DefaultDeliverySlot,
		Price:        src.Price,
		Status:       domain.ListingStatusDraft,
		Dimension1: domain.Dimension{
			Name:    src.Dimension1.Name,
			Options: src.Dimension1.Options,
		},
		Dimension2: domain.Dimension{
			Name:    src.Dimension2.Name,
			Options: src.Dimension2.Options,
		},
		ImportedVariants: imported,
		ColorImages:      colorImages,
		Gallery:          gallery,
		Meta: domain.ListingMeta{
			MPID:        src.MPID,
			MPIDMatched: src.MPID != "",
			Sourcing: &domain.SourcingTerms{
				PaymentMethod:   params.PaymentMethod,
				Quantity:        params.Quantity,
				CreditDays:      params.CreditDays,
				PaymentIntentID: params.PaymentIntentID,
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if draft.Dimension1.Name == "" {
		draft.Dimension1.Name = DefaultDimension1Name
	}
	if draft.Dimension2.Name == "" {
		draft.Dimension2.Name = DefaultDimension2Name
	}

	if err := s.drafts.Save(ctx, draft); err != nil {
		return nil, fmt.Errorf("save imported draft: %w", err)
	}

	if err := s.producer.PublishListingImported(ctx, draft, src.ID, src.VendorID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish listing.imported event",
			slog.String("listing_id", draft.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "listing imported",
		slog.String("listing_id", draft.ID),
		slog.String("source_listing_id", src.ID),
		slog.String("source_vendor_id", src.VendorID),
	)
	return draft, nil
}
