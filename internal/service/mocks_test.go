package service

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/multikonnect/listing-service/internal/catalog"
	"github.com/multikonnect/listing-service/internal/domain"
	"github.com/multikonnect/listing-service/internal/event"
	"github.com/multikonnect/listing-service/internal/repository"
	pkgkafka "github.com/multikonnect/listing-service/pkg/kafka"
)

// --- Mock repositories ---

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

// --- Test helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// newTestProducer builds a producer against an unreachable broker; publish
// failures are logged and swallowed by the service layer.
func newTestProducer() *event.Producer {
	logger := newTestLogger()
	kafkaCfg := pkgkafka.DefaultProducerConfig([]string{"localhost:9092"})
	return event.NewProducer(pkgkafka.NewProducer(kafkaCfg, logger), logger)
}

type serviceMocks struct {
	drafts   *mockDraftRepository
	listings *mockListingRepository
	stores   *mockStoreRepository
}

func newTestService(t *testing.T) (*ListingService, *serviceMocks) {
	t.Helper()
	m := &serviceMocks{
		drafts:   new(mockDraftRepository),
		listings: new(mockListingRepository),
		stores:   new(mockStoreRepository),
	}
	svc := NewListingService(m.drafts, m.listings, m.stores, newTestProducer(), newTestLogger())
	return svc, m
}

func strPtr(s string) *string { return &s }
