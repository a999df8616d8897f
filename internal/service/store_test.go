package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/multikonnect/listing-service/internal/domain"
	apperrors "github.com/multikonnect/listing-service/pkg/errors"
)

func floatPtr(f float64) *float64 { return &f }

func TestCreateStore_Defaults(t *testing.T) {
	stores := new(mockStoreRepository)
	svc := NewStoreService(stores, newTestLogger())
	ctx := context.Background()

	stores.On("Create", ctx, mock.AnythingOfType("*domain.Store")).Return(nil)

	store, err := svc.CreateStore(ctx, "vendor-1", &CreateStoreInput{
		Name:                  "Main Street Electronics",
		Postcode:              "S1 2AB",
		RegularShippingCharge: 4.99,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, store.ID)
	assert.Equal(t, "vendor-1", store.VendorID)
	assert.Equal(t, domain.DefaultDeliverySlot, store.DeliverySlot)
	stores.AssertExpectations(t)
}

func TestCreateStore_Validation(t *testing.T) {
	svc := NewStoreService(new(mockStoreRepository), newTestLogger())
	ctx := context.Background()

	_, err := svc.CreateStore(ctx, "vendor-1", &CreateStoreInput{Name: "  "})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = svc.CreateStore(ctx, "vendor-1", &CreateStoreInput{Name: "Shop", RegularShippingCharge: -1})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestGetStore_VendorScoped(t *testing.T) {
	stores := new(mockStoreRepository)
	svc := NewStoreService(stores, newTestLogger())
	ctx := context.Background()

	stores.On("GetByID", ctx, "store-1").Return(&domain.Store{ID: "store-1", VendorID: "vendor-2"}, nil)

	_, err := svc.GetStore(ctx, "vendor-1", "store-1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound, "other vendors' stores look absent")
}

func TestUpdateStore_Partial(t *testing.T) {
	stores := new(mockStoreRepository)
	svc := NewStoreService(stores, newTestLogger())
	ctx := context.Background()

	store := &domain.Store{
		ID:                    "store-1",
		VendorID:              "vendor-1",
		Name:                  "Old Name",
		RegularShippingCharge: 4.99,
	}
	stores.On("GetByID", ctx, "store-1").Return(store, nil)
	stores.On("Update", ctx, store).Return(nil)

	got, err := svc.UpdateStore(ctx, "vendor-1", "store-1", &UpdateStoreInput{
		Name:                  strPtr("New Name"),
		SameDayShippingCharge: floatPtr(9.99),
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", got.Name)
	assert.Equal(t, 9.99, got.SameDayShippingCharge)
	assert.Equal(t, 4.99, got.RegularShippingCharge, "untouched fields survive")
	stores.AssertExpectations(t)
}
