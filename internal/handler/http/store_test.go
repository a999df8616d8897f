package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/multikonnect/listing-service/internal/domain"
)

func storeFixture() *domain.Store {
	return &domain.Store{
		ID:                    "store-1",
		VendorID:              "vendor-1",
		Name:                  "Main Street Electronics",
		Postcode:              "S1 2AB",
		RegularShippingCharge: 3.50,
		SameDayShippingCharge: 7.00,
		DeliverySlot:          domain.DefaultDeliverySlot,
	}
}

func TestCreateStore_Success(t *testing.T) {
	router, m := setupRouter(t)

	m.stores.On("Create", mock.Anything, mock.AnythingOfType("*domain.Store")).Return(nil)

	body, _ := json.Marshal(CreateStoreRequest{Name: "Main Street Electronics", Postcode: "S1 2AB"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/stores", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := doRequest(router, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeResponse(t, rec)
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "vendor-1", data["vendor_id"])
	m.stores.AssertExpectations(t)
}

func TestCreateStore_MissingName(t *testing.T) {
	router, _ := setupRouter(t)

	body, _ := json.Marshal(CreateStoreRequest{Postcode: "S1 2AB"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/stores", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := doRequest(router, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateStore_NegativeCharge(t *testing.T) {
	router, _ := setupRouter(t)

	body, _ := json.Marshal(CreateStoreRequest{Name: "Shop", RegularShippingCharge: -1})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/stores", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := doRequest(router, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetStore_WrongVendor(t *testing.T) {
	router, m := setupRouter(t)

	foreign := storeFixture()
	foreign.VendorID = "vendor-2"
	m.stores.On("GetByID", mock.Anything, "store-1").Return(foreign, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stores/store-1", nil)
	rec := doRequest(router, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListStores_Success(t *testing.T) {
	router, m := setupRouter(t)

	m.stores.On("ListByVendor", mock.Anything, "vendor-1").Return([]domain.Store{*storeFixture()}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stores", nil)
	rec := doRequest(router, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	data, ok := resp.Data.([]any)
	require.True(t, ok)
	assert.Len(t, data, 1)
}

func TestUpdateStore_Partial(t *testing.T) {
	router, m := setupRouter(t)

	m.stores.On("GetByID", mock.Anything, "store-1").Return(storeFixture(), nil)
	m.stores.On("Update", mock.Anything, mock.AnythingOfType("*domain.Store")).Return(nil)

	charge := 4.00
	body, _ := json.Marshal(UpdateStoreRequest{RegularShippingCharge: &charge})
	req := httptest.NewRequest(http.MethodPut, "/api/v1/stores/store-1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := doRequest(router, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 4.00, data["regular_shipping_charge"], 0.001)
	assert.Equal(t, "Main Street Electronics", data["name"])
	m.stores.AssertExpectations(t)
}

func TestDeleteStore_Success(t *testing.T) {
	router, m := setupRouter(t)

	m.stores.On("Delete", mock.Anything, "vendor-1", "store-1").Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/stores/store-1", nil)
	rec := doRequest(router, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	m.stores.AssertExpectations(t)
}
