// Package repository defines the persistence ports the service layer
// depends on. Drafts live in Redis while a vendor works on them; published
// listings and stores are PostgreSQL rows.
package repository

import (
	"context"

	"github.com/multikonnect/listing-service/internal/domain"
)

// ListingFilter narrows a published-listing query. Nil fields are ignored.
type ListingFilter struct {
	StoreID *string
	Status  *string
	Search  *string
	Page    int
	PerPage int
}

// ListingRepository stores published listings.
type ListingRepository interface {
	Create(ctx context.Context, l *domain.Listing) error
	GetByID(ctx context.Context, vendorID, id string) (*domain.Listing, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Listing, error)
	List(ctx context.Context, vendorID string, filter ListingFilter) ([]domain.Listing, int, error)
	Update(ctx context.Context, l *domain.Listing) error
	Delete(ctx context.Context, vendorID, id string) error
	DeleteBatch(ctx context.Context, vendorID string, ids []string) (int, error)
}

// DraftRepository stores in-progress listing drafts.
type DraftRepository interface {
	Save(ctx context.Context, draft *domain.Listing) error
	Get(ctx context.Context, vendorID, id string) (*domain.Listing, error)
	List(ctx context.Context, vendorID string) ([]domain.Listing, error)
	Delete(ctx context.Context, vendorID, id string) error
}

// StoreRepository stores vendor storefronts.
type StoreRepository interface {
	Create(ctx context.Context, s *domain.Store) error
	GetByID(ctx context.Context, id string) (*domain.Store, error)
	ListByVendor(ctx context.Context, vendorID string) ([]domain.Store, error)
	Update(ctx context.Context, s *domain.Store) error
	Delete(ctx context.Context, vendorID, id string) error
}
