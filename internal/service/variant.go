package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/multikonnect/listing-service/internal/domain"
	"github.com/multikonnect/listing-service/internal/matrix"
	apperrors "github.com/multikonnect/listing-service/pkg/errors"
)

// withDraft loads a draft, applies fn, and persists the result when fn
// succeeds. Matrix mutations all go through here.
func (s *ListingService) withDraft(ctx context.Context, vendorID, id string, fn func(*domain.Listing) error) (*domain.Listing, error) {
	draft, err := s.drafts.Get(ctx, vendorID, id)
	if err != nil {
		return nil, fmt.Errorf("get draft: %w", err)
	}
	if err := fn(draft); err != nil {
		return nil, err
	}
	if err := s.saveDraft(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// AddDimensionOption appends an option label to one of the draft's axes,
// regenerating the matrix when both axes have options.
func (s *ListingService) AddDimensionOption(ctx context.Context, vendorID, id string, dim matrix.DimensionID, label string) (*domain.Listing, error) {
	return s.withDraft(ctx, vendorID, id, func(draft *domain.Listing) error {
		return matrix.AddOption(draft, dim, label)
	})
}

// RemoveDimensionOption deletes an option label and cascades the deletion to
// its variants.
func (s *ListingService) RemoveDimensionOption(ctx context.Context, vendorID, id string, dim matrix.DimensionID, label string) (*domain.Listing, error) {
	return s.withDraft(ctx, vendorID, id, func(draft *domain.Listing) error {
		return matrix.RemoveOption(draft, dim, label)
	})
}

// RenameDimension changes an axis display name. Option labels and variants
// are untouched.
func (s *ListingService) RenameDimension(ctx context.Context, vendorID, id string, dim matrix.DimensionID, name string) (*domain.Listing, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.InvalidInput("dimension name must not be empty")
	}
	return s.withDraft(ctx, vendorID, id, func(draft *domain.Listing) error {
		switch dim {
		case matrix.Dimension1:
			draft.Dimension1.Name = name
		case matrix.Dimension2:
			draft.Dimension2.Name = name
		default:
			return apperrors.InvalidInput(fmt.Sprintf("unknown dimension %d", dim))
		}
		return nil
	})
}

// RegenerateMatrix rebuilds the variant cross product, preserving surviving
// cells.
func (s *ListingService) RegenerateMatrix(ctx context.Context, vendorID, id string) (*domain.Listing, error) {
	return s.withDraft(ctx, vendorID, id, matrix.Regenerate)
}

// UpdateVariant applies a partial update to one variant cell.
func (s *ListingService) UpdateVariant(ctx context.Context, vendorID, id string, index int, patch matrix.VariantPatch) (*domain.Listing, error) {
	return s.withDraft(ctx, vendorID, id, func(draft *domain.Listing) error {
		return matrix.UpdateVariant(draft, index, patch)
	})
}

// ApplyToAllVariants overwrites one field on every variant cell.
func (s *ListingService) ApplyToAllVariants(ctx context.Context, vendorID, id, field, value string) (*domain.Listing, error) {
	return s.withDraft(ctx, vendorID, id, func(draft *domain.Listing) error {
		return matrix.ApplyToAll(draft, field, value)
	})
}

// SetVariantImage sets a variant-specific image override.
func (s *ListingService) SetVariantImage(ctx context.Context, vendorID, id string, index int, imageRef string) (*domain.Listing, error) {
	return s.withDraft(ctx, vendorID, id, func(draft *domain.Listing) error {
		return matrix.SetVariantImage(draft, index, imageRef)
	})
}

// ClearVariantImage removes a variant's image override.
func (s *ListingService) ClearVariantImage(ctx context.Context, vendorID, id string, index int) (*domain.Listing, error) {
	return s.withDraft(ctx, vendorID, id, func(draft *domain.Listing) error {
		return matrix.ClearVariantImage(draft, index)
	})
}

// SetColorImage updates the color-image map and back-fills variants still
// carrying the prior value.
func (s *ListingService) SetColorImage(ctx context.Context, vendorID, id, color, imageRef string) (*domain.Listing, error) {
	if strings.TrimSpace(color) == "" {
		return nil, apperrors.InvalidInput("color label must not be empty")
	}
	return s.withDraft(ctx, vendorID, id, func(draft *domain.Listing) error {
		matrix.SetColorImage(draft, color, imageRef)
		return nil
	})
}
