// Package service implements the listing wizard's business logic on top of
// the draft and published-listing repositories.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/multikonnect/listing-service/internal/completeness"
	"github.com/multikonnect/listing-service/internal/domain"
	"github.com/multikonnect/listing-service/internal/event"
	"github.com/multikonnect/listing-service/internal/pricing"
	"github.com/multikonnect/listing-service/internal/repository"
	apperrors "github.com/multikonnect/listing-service/pkg/errors"
	"github.com/multikonnect/listing-service/pkg/slug"
)

// Default axis names for a fresh draft; both are vendor-editable.
const (
	DefaultDimension1Name = "storage"
	DefaultDimension2Name = "color"
)

// ListingService implements the wizard's operations over drafts and
// published listings.
type ListingService struct {
	drafts   repository.DraftRepository
	listings repository.ListingRepository
	stores   repository.StoreRepository
	producer *event.Producer
	logger   *slog.Logger

	// inflight tracks per-(listing,index) image transforms; see gallery.go.
	inflight sync.Map
}

// NewListingService creates a new listing service.
func NewListingService(
	drafts repository.DraftRepository,
	listings repository.ListingRepository,
	stores repository.StoreRepository,
	producer *event.Producer,
	logger *slog.Logger,
) *ListingService {
	return &ListingService{
		drafts:   drafts,
		listings: listings,
		stores:   stores,
		producer: producer,
		logger:   logger,
	}
}

// CreateListingInput holds the parameters for creating a draft.
type CreateListingInput struct {
	StoreID        string
	Title          string
	Description    string
	Price          string
	Postcode       string
	DeliverySlot   string
	Condition      string
	Dimension1Name string
	Dimension2Name string
}

// UpdateListingInput holds the parameters for a partial draft update. Nil
// fields are left unchanged.
type UpdateListingInput struct {
	StoreID         *string
	Title           *string
	Description     *string
	SEOTitle        *string
	MetaDescription *string
	Condition       *string
	ConditionNotes  *string
	BoxContents     *string
	Postcode        *string
	DeliverySlot    *string
	Price           *string
	CommissionRate  *float64
	PromoFee        *float64
	OfferEnabled    *bool
	MPID            *string
	MPIDMatched     *bool
}

// CreateDraft starts a new wizard draft for a vendor.
func (s *ListingService) CreateDraft(ctx context.Context, vendorID string, input *CreateListingInput) (*domain.Listing, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.InvalidInput("listing title is required")
	}
	if input.StoreID != "" {
		store, err := s.stores.GetByID(ctx, input.StoreID)
		if err != nil {
			return nil, fmt.Errorf("resolve store: %w", err)
		}
		if store.VendorID != vendorID {
			return nil, apperrors.Forbidden("store belongs to a different vendor")
		}
	}

	dim1Name := input.Dimension1Name
	if dim1Name == "" {
		dim1Name = DefaultDimension1Name
	}
	dim2Name := input.Dimension2Name
	if dim2Name == "" {
		dim2Name = DefaultDimension2Name
	}
	condition := input.Condition
	if condition == "" {
		condition = domain.DefaultCondition
	}
	deliverySlot := input.DeliverySlot
	if deliverySlot == "" {
		deliverySlot = domain.DefaultDeliverySlot
	}

	now := time.Now().UTC()
	draft := &domain.Listing{
		ID:           uuid.New().String(),
		StoreID:      input.StoreID,
		VendorID:     vendorID,
		Title:        title,
		Slug:         slug.Generate(title),
		Description:  input.Description,
		Condition:    condition,
		Postcode:     input.Postcode,
		DeliverySlot: deliverySlot,
		Price:        input.Price,
		Status:       domain.ListingStatusDraft,
		Dimension1:   domain.Dimension{Name: dim1Name},
		Dimension2:   domain.Dimension{Name: dim2Name},
		ColorImages:  map[string]string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.drafts.Save(ctx, draft); err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}

	if err := s.producer.PublishListingCreated(ctx, draft); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish listing.created event",
			slog.String("listing_id", draft.ID),
			slog.String("error", err.Error()),
		)
		// Do not fail the operation if event publishing fails.
	}

	s.logger.InfoContext(ctx, "draft created",
		slog.String("listing_id", draft.ID),
		slog.String("store_id", draft.StoreID),
	)
	return draft, nil
}

// GetDraft retrieves one of the vendor's drafts.
func (s *ListingService) GetDraft(ctx context.Context, vendorID, id string) (*domain.Listing, error) {
	draft, err := s.drafts.Get(ctx, vendorID, id)
	if err != nil {
		return nil, fmt.Errorf("get draft: %w", err)
	}
	return draft, nil
}

// ListDrafts returns all of the vendor's drafts.
func (s *ListingService) ListDrafts(ctx context.Context, vendorID string) ([]domain.Listing, error) {
	drafts, err := s.drafts.List(ctx, vendorID)
	if err != nil {
		return nil, fmt.Errorf("list drafts: %w", err)
	}
	return drafts, nil
}

// UpdateDraft applies a partial update to a draft's scalar fields. Matrix
// and gallery state have their own operations.
func (s *ListingService) UpdateDraft(ctx context.Context, vendorID, id string, input *UpdateListingInput) (*domain.Listing, error) {
	draft, err := s.drafts.Get(ctx, vendorID, id)
	if err != nil {
		return nil, fmt.Errorf("get draft: %w", err)
	}

	if input.StoreID != nil {
		store, err := s.stores.GetByID(ctx, *input.StoreID)
		if err != nil {
			return nil, fmt.Errorf("resolve store: %w", err)
		}
		if store.VendorID != vendorID {
			return nil, apperrors.Forbidden("store belongs to a different vendor")
		}
		draft.StoreID = *input.StoreID
	}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, apperrors.InvalidInput("listing title must not be empty")
		}
		draft.Title = title
		draft.Slug = slug.Generate(title)
	}
	if input.Description != nil {
		draft.Description = *input.Description
	}
	if input.SEOTitle != nil {
		draft.SEOTitle = *input.SEOTitle
	}
	if input.MetaDescription != nil {
		draft.MetaDescription = *input.MetaDescription
	}
	if input.Condition != nil {
		draft.Condition = *input.Condition
	}
	if input.ConditionNotes != nil {
		draft.ConditionNotes = *input.ConditionNotes
	}
	if input.BoxContents != nil {
		draft.BoxContents = *input.BoxContents
	}
	if input.Postcode != nil {
		draft.Postcode = *input.Postcode
	}
	if input.DeliverySlot != nil {
		draft.DeliverySlot = *input.DeliverySlot
	}
	if input.Price != nil {
		draft.Price = *input.Price
	}
	if input.CommissionRate != nil {
		draft.Meta.CommissionRate = input.CommissionRate
	}
	if input.PromoFee != nil {
		draft.Meta.PromoFee = input.PromoFee
	}
	if input.OfferEnabled != nil {
		draft.Meta.OfferEnabled = *input.OfferEnabled
	}
	if input.MPID != nil {
		draft.Meta.MPID = *input.MPID
	}
	if input.MPIDMatched != nil {
		draft.Meta.MPIDMatched = *input.MPIDMatched
	}

	if err := s.saveDraft(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// DeleteDraft discards a draft.
func (s *ListingService) DeleteDraft(ctx context.Context, vendorID, id string) error {
	draft, err := s.drafts.Get(ctx, vendorID, id)
	if err != nil {
		return fmt.Errorf("get draft: %w", err)
	}
	if err := s.drafts.Delete(ctx, vendorID, id); err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}

	if err := s.producer.PublishListingDeleted(ctx, draft); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish listing.deleted event",
			slog.String("listing_id", id),
			slog.String("error", err.Error()),
		)
	}
	return nil
}

// saveDraft persists a mutated draft, bumping its update timestamp.
func (s *ListingService) saveDraft(ctx context.Context, draft *domain.Listing) error {
	draft.UpdatedAt = time.Now().UTC()
	if err := s.drafts.Save(ctx, draft); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

// GetListing retrieves one of the vendor's published listings.
func (s *ListingService) GetListing(ctx context.Context, vendorID, id string) (*domain.Listing, error) {
	l, err := s.listings.GetByID(ctx, vendorID, id)
	if err != nil {
		return nil, fmt.Errorf("get listing: %w", err)
	}
	return l, nil
}

// ListListings returns the vendor's published listings matching the filter.
func (s *ListingService) ListListings(ctx context.Context, vendorID string, filter repository.ListingFilter) ([]domain.Listing, int, error) {
	listings, total, err := s.listings.List(ctx, vendorID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list listings: %w", err)
	}
	return listings, total, nil
}

// DeleteListing removes a published listing.
func (s *ListingService) DeleteListing(ctx context.Context, vendorID, id string) error {
	l, err := s.listings.GetByID(ctx, vendorID, id)
	if err != nil {
		return fmt.Errorf("get listing: %w", err)
	}
	if err := s.listings.Delete(ctx, vendorID, id); err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}

	if err := s.producer.PublishListingDeleted(ctx, l); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish listing.deleted event",
			slog.String("listing_id", id),
			slog.String("error", err.Error()),
		)
	}
	return nil
}

// DeleteListings removes a batch of published listings, returning the number
// actually deleted.
func (s *ListingService) DeleteListings(ctx context.Context, vendorID string, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, apperrors.InvalidInput("at least one listing id is required")
	}
	deleted, err := s.listings.DeleteBatch(ctx, vendorID, ids)
	if err != nil {
		return 0, fmt.Errorf("delete listings: %w", err)
	}

	s.logger.InfoContext(ctx, "listings deleted",
		slog.Int("requested", len(ids)),
		slog.Int("deleted", deleted),
	)
	return deleted, nil
}

// PublishResult is what a successful publish returns: the stored listing
// plus the exact variant payloads sent downstream.
type PublishResult struct {
	Listing      *domain.Listing         `json:"listing"`
	Variants     []domain.VariantPayload `json:"variants"`
	Completeness int                     `json:"completeness"`
	BasePrice    float64                 `json:"base_price"`
}

// Publish promotes a draft to a published listing. Numeric fields are
// coerced here and nowhere earlier; blank or malformed entries become 0.
func (s *ListingService) Publish(ctx context.Context, vendorID, id string) (*PublishResult, error) {
	draft, err := s.drafts.Get(ctx, vendorID, id)
	if err != nil {
		return nil, fmt.Errorf("get draft: %w", err)
	}
	if len(draft.Variants) == 0 {
		return nil, apperrors.InvalidInput("at least one variant is required to publish")
	}

	payloads := make([]domain.VariantPayload, len(draft.Variants))
	for i, v := range draft.Variants {
		payloads[i] = v.ToPayload(draft, i)
	}

	now := time.Now().UTC()
	draft.Status = domain.ListingStatusPublished
	draft.UpdatedAt = now
	if err := s.listings.Create(ctx, draft); err != nil {
		draft.Status = domain.ListingStatusDraft
		return nil, fmt.Errorf("store published listing: %w", err)
	}
	if err := s.drafts.Delete(ctx, vendorID, id); err != nil {
		s.logger.WarnContext(ctx, "published draft could not be removed",
			slog.String("listing_id", id),
			slog.String("error", err.Error()),
		)
	}

	score := completeness.Score(draft)
	basePrice := pricing.ResolveBasePrice(draft)
	if err := s.producer.PublishListingPublished(ctx, draft, score, basePrice); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish listing.published event",
			slog.String("listing_id", id),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "listing published",
		slog.String("listing_id", id),
		slog.Int("variants", len(payloads)),
		slog.Int("completeness", score),
	)

	return &PublishResult{
		Listing:      draft,
		Variants:     payloads,
		Completeness: score,
		BasePrice:    basePrice,
	}, nil
}

// Pricing computes the pricing intelligence snapshot for a draft. Shipping
// charges come from the draft's store when one is attached, and the store's
// postcode stands in for city resolution while the draft has none of its own.
func (s *ListingService) Pricing(ctx context.Context, vendorID, id string) (*pricing.Snapshot, error) {
	draft, err := s.drafts.Get(ctx, vendorID, id)
	if err != nil {
		return nil, fmt.Errorf("get draft: %w", err)
	}

	var charges domain.ShippingCharges
	if draft.StoreID != "" {
		store, err := s.stores.GetByID(ctx, draft.StoreID)
		if err != nil {
			return nil, fmt.Errorf("resolve store: %w", err)
		}
		charges = store.Charges()
		if draft.Postcode == "" {
			draft.Postcode = store.Postcode
		}
	}

	snap := pricing.Compute(draft, charges)
	return &snap, nil
}

// Completeness computes a draft's readiness score and checklist.
func (s *ListingService) Completeness(ctx context.Context, vendorID, id string) (*completeness.Report, error) {
	draft, err := s.drafts.Get(ctx, vendorID, id)
	if err != nil {
		return nil, fmt.Errorf("get draft: %w", err)
	}
	report := completeness.Evaluate(draft)
	return &report, nil
}
