package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/multikonnect/listing-service/internal/catalog"
	"github.com/multikonnect/listing-service/internal/domain"
	"github.com/multikonnect/listing-service/internal/event"
	"github.com/multikonnect/listing-service/internal/repository"
	"github.com/multikonnect/listing-service/internal/service"
	"github.com/multikonnect/listing-service/pkg/health"
	"github.com/multikonnect/listing-service/pkg/httputil"
	pkgkafka "github.com/multikonnect/listing-service/pkg/kafka"
)

// ============================================================================
// Mock repositories
// ============================================================================

type mockDraftRepository struct {
	mock.Mock
}

func (m *mockDraftRepository) Save(ctx context.Context, draft *domain.Listing) error {
	args := m.Called(ctx, draft)
	return args.Error(0)
}

func (m *mockDraftRepository) Get(ctx context.Context, vendorID, id string) (*domain.Listing, error) {
	args := m.Called(ctx, vendorID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *mockDraftRepository) List(ctx context.Context, vendorID string) ([]domain.Listing, error) {
	args := m.Called(ctx, vendorID)
	return args.Get(0).([]domain.Listing), args.Error(1)
}

func (m *mockDraftRepository) Delete(ctx context.Context, vendorID, id string) error {
	args := m.Called(ctx, vendorID, id)
	return args.Error(0)
}

type mockListingRepository struct {
	mock.Mock
}

func (m *mockListingRepository) Create(ctx context.Context, l *domain.Listing) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *mockListingRepository) GetByID(ctx context.Context, vendorID, id string) (*domain.Listing, error) {
	args := m.Called(ctx, vendorID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *mockListingRepository) GetBySlug(ctx context.Context, slug string) (*domain.Listing, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *mockListingRepository) List(ctx context.Context, vendorID string, filter repository.ListingFilter) ([]domain.Listing, int, error) {
	args := m.Called(ctx, vendorID, filter)
	return args.Get(0).([]domain.Listing), args.Int(1), args.Error(2)
}

func (m *mockListingRepository) Update(ctx context.Context, l *domain.Listing) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *mockListingRepository) Delete(ctx context.Context, vendorID, id string) error {
	args := m.Called(ctx, vendorID, id)
	return args.Error(0)
}

func (m *mockListingRepository) DeleteBatch(ctx context.Context, vendorID string, ids []string) (int, error) {
	args := m.Called(ctx, vendorID, ids)
	return args.Int(0), args.Error(1)
}

type mockStoreRepository struct {
	mock.Mock
}

func (m *mockStoreRepository) Create(ctx context.Context, s *domain.Store) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *mockStoreRepository) GetByID(ctx context.Context, id string) (*domain.Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Store), args.Error(1)
}

func (m *mockStoreRepository) ListByVendor(ctx context.Context, vendorID string) ([]domain.Store, error) {
	args := m.Called(ctx, vendorID)
	return args.Get(0).([]domain.Store), args.Error(1)
}

func (m *mockStoreRepository) Update(ctx context.Context, s *domain.Store) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *mockStoreRepository) Delete(ctx context.Context, vendorID, id string) error {
	args := m.Called(ctx, vendorID, id)
	return args.Error(0)
}

type mockCatalogClient struct {
	mock.Mock
}

func (m *mockCatalogClient) Search(ctx context.Context, query, excludeVendorID string, page, perPage int) (*catalog.SearchResult, error) {
	args := m.Called(ctx, query, excludeVendorID, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.SearchResult), args.Error(1)
}

func (m *mockCatalogClient) GetListing(ctx context.Context, id string) (*catalog.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Listing), args.Error(1)
}

// ============================================================================
// Test helpers
// ============================================================================

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// testProducer builds a producer against an unreachable broker; publish
// failures are logged and swallowed by the service layer.
func testProducer() *event.Producer {
	logger := testLogger()
	kafkaCfg := pkgkafka.DefaultProducerConfig([]string{"localhost:9092"})
	return event.NewProducer(pkgkafka.NewProducer(kafkaCfg, logger), logger)
}

type handlerMocks struct {
	drafts   *mockDraftRepository
	listings *mockListingRepository
	stores   *mockStoreRepository
	catalog  *mockCatalogClient
}

// setupRouter wires the production router on top of mocked storage.
func setupRouter(t *testing.T) (http.Handler, *handlerMocks) {
	t.Helper()
	m := &handlerMocks{
		drafts:   new(mockDraftRepository),
		listings: new(mockListingRepository),
		stores:   new(mockStoreRepository),
		catalog:  new(mockCatalogClient),
	}
	logger := testLogger()
	producer := testProducer()

	listingSvc := service.NewListingService(m.drafts, m.listings, m.stores, producer, logger)
	storeSvc := service.NewStoreService(m.stores, logger)
	importSvc := service.NewImportService(m.catalog, m.drafts, m.stores, producer, logger)

	router := NewRouter(listingSvc, storeSvc, importSvc, health.NewHandler(), logger)
	return router, m
}

func doRequest(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	req.Header.Set("X-Vendor-ID", "vendor-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) httputil.Response {
	t.Helper()
	var resp httputil.Response
	err := json.NewDecoder(rec.Body).Decode(&resp)
	require.NoError(t, err)
	return resp
}

// decodeListing re-decodes the Data half of the envelope into a Listing.
func decodeListing(t *testing.T, rec *httptest.ResponseRecorder) domain.Listing {
	t.Helper()
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Data)
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var l domain.Listing
	require.NoError(t, json.Unmarshal(raw, &l))
	return l
}

func draftFixture() *domain.Listing {
	return &domain.Listing{
		ID:           "lst-1",
		VendorID:     "vendor-1",
		Title:        "Refurbished Phone",
		Slug:         "refurbished-phone",
		Condition:    domain.DefaultCondition,
		DeliverySlot: domain.DefaultDeliverySlot,
		Status:       domain.ListingStatusDraft,
		Dimension1:   domain.Dimension{Name: "storage", Options: []string{"128GB"}},
		Dimension2:   domain.Dimension{Name: "color", Options: []string{"Black"}},
		Variants: []domain.Variant{
			{Dim1Value: "128GB", Dim2Value: "Black", Price: "199.99", StockQuantity: "3"},
		},
		ColorImages: map[string]string{},
	}
}
