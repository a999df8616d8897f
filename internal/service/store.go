package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/multikonnect/listing-service/internal/domain"
	"github.com/multikonnect/listing-service/internal/repository"
	apperrors "github.com/multikonnect/listing-service/pkg/errors"
)

// StoreService manages vendor storefronts.
type StoreService struct {
	stores repository.StoreRepository
	logger *slog.Logger
}

// NewStoreService creates a new store service.
func NewStoreService(stores repository.StoreRepository, logger *slog.Logger) *StoreService {
	return &StoreService{stores: stores, logger: logger}
}

// CreateStoreInput holds the parameters for creating a store.
type CreateStoreInput struct {
	Name                  string
	Postcode              string
	RegularShippingCharge float64
	SameDayShippingCharge float64
	DeliverySlot          string
}

// UpdateStoreInput holds the parameters for a partial store update.
type UpdateStoreInput struct {
	Name                  *string
	Postcode              *string
	RegularShippingCharge *float64
	SameDayShippingCharge *float64
	DeliverySlot          *string
}

// CreateStore registers a new storefront for the vendor.
func (s *StoreService) CreateStore(ctx context.Context, vendorID string, input *CreateStoreInput) (*domain.Store, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.InvalidInput("store name is required")
	}
	if input.RegularShippingCharge < 0 || input.SameDayShippingCharge < 0 {
		return nil, apperrors.InvalidInput("shipping charges must not be negative")
	}

	slot := input.DeliverySlot
	if slot == "" {
		slot = domain.DefaultDeliverySlot
	}

	now := time.Now().UTC()
	store := &domain.Store{
		ID:                    uuid.New().String(),
		VendorID:              vendorID,
		Name:                  name,
		Postcode:              input.Postcode,
		RegularShippingCharge: input.RegularShippingCharge,
		SameDayShippingCharge: input.SameDayShippingCharge,
		DeliverySlot:          slot,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if err := s.stores.Create(ctx, store); err != nil {
		return nil, fmt.Errorf("create store: %w", err)
	}

	s.logger.InfoContext(ctx, "store created",
		slog.String("store_id", store.ID),
		slog.String("vendor_id", vendorID),
	)
	return store, nil
}

// GetStore retrieves one of the vendor's stores.
func (s *StoreService) GetStore(ctx context.Context, vendorID, id string) (*domain.Store, error) {
	store, err := s.stores.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get store: %w", err)
	}
	if store.VendorID != vendorID {
		return nil, apperrors.NotFound("store", id)
	}
	return store, nil
}

// ListStores returns all of the vendor's stores.
func (s *StoreService) ListStores(ctx context.Context, vendorID string) ([]domain.Store, error) {
	stores, err := s.stores.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	return stores, nil
}

// UpdateStore applies a partial update to a store.
func (s *StoreService) UpdateStore(ctx context.Context, vendorID, id string, input *UpdateStoreInput) (*domain.Store, error) {
	store, err := s.GetStore(ctx, vendorID, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperrors.InvalidInput("store name must not be empty")
		}
		store.Name = name
	}
	if input.Postcode != nil {
		store.Postcode = *input.Postcode
	}
	if input.RegularShippingCharge != nil {
		if *input.RegularShippingCharge < 0 {
			return nil, apperrors.InvalidInput("shipping charges must not be negative")
		}
		store.RegularShippingCharge = *input.RegularShippingCharge
	}
	if input.SameDayShippingCharge != nil {
		if *input.SameDayShippingCharge < 0 {
			return nil, apperrors.InvalidInput("shipping charges must not be negative")
		}
		store.SameDayShippingCharge = *input.SameDayShippingCharge
	}
	if input.DeliverySlot != nil {
		store.DeliverySlot = *input.DeliverySlot
	}

	if err := s.stores.Update(ctx, store); err != nil {
		return nil, fmt.Errorf("update store: %w", err)
	}
	return store, nil
}

// DeleteStore removes one of the vendor's stores.
func (s *StoreService) DeleteStore(ctx context.Context, vendorID, id string) error {
	if err := s.stores.Delete(ctx, vendorID, id); err != nil {
		return fmt.Errorf("delete store: %w", err)
	}
	return nil
}
