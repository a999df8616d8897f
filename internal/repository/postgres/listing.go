package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/multikonnect/listing-service/internal/domain"
	"github.com/multikonnect/listing-service/internal/repository"
	"github.com/multikonnect/listing-service/pkg/database"
	apperrors "github.com/multikonnect/listing-service/pkg/errors"
)

const listingColumns = `id, store_id, vendor_id, title, slug, description, seo_title, meta_description,
	condition, condition_notes, box_contents, postcode, delivery_slot, price, status,
	dimension1, dimension2, variants, imported_variants, color_images, gallery, meta,
	created_at, updated_at`

// ListingRepository implements repository.ListingRepository using PostgreSQL.
type ListingRepository struct {
	db database.DBTX
}

// NewListingRepository creates a new PostgreSQL-backed listing repository.
func NewListingRepository(db database.DBTX) *ListingRepository {
	return &ListingRepository{db: db}
}

type listingDocs struct {
	dimension1       []byte
	dimension2       []byte
	variants         []byte
	importedVariants []byte
	colorImages      []byte
	gallery          []byte
	meta             []byte
}

func marshalDocs(l *domain.Listing) (listingDocs, error) {
	var (
		docs listingDocs
		err  error
	)
	if docs.dimension1, err = json.Marshal(l.Dimension1); err != nil {
		return docs, fmt.Errorf("marshal dimension1: %w", err)
	}
	if docs.dimension2, err = json.Marshal(l.Dimension2); err != nil {
		return docs, fmt.Errorf("marshal dimension2: %w", err)
	}
	if docs.variants, err = json.Marshal(l.Variants); err != nil {
		return docs, fmt.Errorf("marshal variants: %w", err)
	}
	if docs.importedVariants, err = json.Marshal(l.ImportedVariants); err != nil {
		return docs, fmt.Errorf("marshal imported variants: %w", err)
	}
	if docs.colorImages, err = json.Marshal(l.ColorImages); err != nil {
		return docs, fmt.Errorf("marshal color images: %w", err)
	}
	if docs.gallery, err = json.Marshal(l.Gallery); err != nil {
		return docs, fmt.Errorf("marshal gallery: %w", err)
	}
	if docs.meta, err = json.Marshal(l.Meta); err != nil {
		return docs, fmt.Errorf("marshal meta: %w", err)
	}
	return docs, nil
}

func unmarshalDocs(l *domain.Listing, docs listingDocs) error {
	pairs := []struct {
		data []byte
		dst  any
	}{
		{docs.dimension1, &l.Dimension1},
		{docs.dimension2, &l.Dimension2},
		{docs.variants, &l.Variants},
		{docs.importedVariants, &l.ImportedVariants},
		{docs.colorImages, &l.ColorImages},
		{docs.gallery, &l.Gallery},
		{docs.meta, &l.Meta},
	}
	for _, p := range pairs {
		if p.data == nil {
			continue
		}
		if err := json.Unmarshal(p.data, p.dst); err != nil {
			return fmt.Errorf("unmarshal listing document: %w", err)
		}
	}
	return nil
}

// Create inserts a published listing.
func (r *ListingRepository) Create(ctx context.Context, l *domain.Listing) error {
	docs, err := marshalDocs(l)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO listings (` + listingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)`

	_, err = r.db.Exec(ctx, query,
		l.ID, l.StoreID, l.VendorID, l.Title, l.Slug, l.Description, l.SEOTitle, l.MetaDescription,
		l.Condition, l.ConditionNotes, l.BoxContents, l.Postcode, l.DeliverySlot, l.Price, l.Status,
		docs.dimension1, docs.dimension2, docs.variants, docs.importedVariants, docs.colorImages, docs.gallery, docs.meta,
		l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("listing", "slug", l.Slug)
		}
		return fmt.Errorf("insert listing: %w", err)
	}
	return nil
}

func (r *ListingRepository) scanListing(row pgx.Row) (*domain.Listing, error) {
	var (
		l    domain.Listing
		docs listingDocs
	)
	err := row.Scan(
		&l.ID, &l.StoreID, &l.VendorID, &l.Title, &l.Slug, &l.Description, &l.SEOTitle, &l.MetaDescription,
		&l.Condition, &l.ConditionNotes, &l.BoxContents, &l.Postcode, &l.DeliverySlot, &l.Price, &l.Status,
		&docs.dimension1, &docs.dimension2, &docs.variants, &docs.importedVariants, &docs.colorImages, &docs.gallery, &docs.meta,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("listing", "")
		}
		return nil, fmt.Errorf("scan listing: %w", err)
	}
	if err := unmarshalDocs(&l, docs); err != nil {
		return nil, err
	}
	return &l, nil
}

// GetByID retrieves a vendor's published listing by ID.
func (r *ListingRepository) GetByID(ctx context.Context, vendorID, id string) (*domain.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1 AND vendor_id = $2`

	l, err := r.scanListing(r.db.QueryRow(ctx, query, id, vendorID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("listing", id)
		}
		return nil, err
	}
	return l, nil
}

// GetBySlug retrieves a published listing by slug, across vendors. Used for
// storefront lookups.
func (r *ListingRepository) GetBySlug(ctx context.Context, slug string) (*domain.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE slug = $1`
	return r.scanListing(r.db.QueryRow(ctx, query, slug))
}

// List returns a vendor's published listings matching the filter, with the
// total count.
func (r *ListingRepository) List(ctx context.Context, vendorID string, filter repository.ListingFilter) ([]domain.Listing, int, error) {
	conditions := []string{"vendor_id = $1"}
	args := []any{vendorID}
	argIndex := 2

	if filter.StoreID != nil {
		conditions = append(conditions, fmt.Sprintf("store_id = $%d", argIndex))
		args = append(args, *filter.StoreID)
		argIndex++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, *filter.Status)
		argIndex++
	}
	if filter.Search != nil {
		conditions = append(conditions, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", argIndex, argIndex))
		args = append(args, "%"+*filter.Search+"%")
		argIndex++
	}

	query := fmt.Sprintf(`
		SELECT `+listingColumns+`, count(*) OVER() AS total_count
		FROM listings
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		strings.Join(conditions, " AND "), argIndex, argIndex+1,
	)

	limit := filter.PerPage
	if limit <= 0 {
		limit = 20
	}
	offset := 0
	if filter.Page > 1 {
		offset = (filter.Page - 1) * limit
	}
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list listings: %w", err)
	}
	defer rows.Close()

	var (
		listings   []domain.Listing
		totalCount int
	)
	for rows.Next() {
		var (
			l    domain.Listing
			docs listingDocs
		)
		if err := rows.Scan(
			&l.ID, &l.StoreID, &l.VendorID, &l.Title, &l.Slug, &l.Description, &l.SEOTitle, &l.MetaDescription,
			&l.Condition, &l.ConditionNotes, &l.BoxContents, &l.Postcode, &l.DeliverySlot, &l.Price, &l.Status,
			&docs.dimension1, &docs.dimension2, &docs.variants, &docs.importedVariants, &docs.colorImages, &docs.gallery, &docs.meta,
			&l.CreatedAt, &l.UpdatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan listing row: %w", err)
		}
		if err := unmarshalDocs(&l, docs); err != nil {
			return nil, 0, err
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate listing rows: %w", err)
	}

	if listings == nil {
		listings = []domain.Listing{}
	}
	return listings, totalCount, nil
}

// Update modifies a published listing.
func (r *ListingRepository) Update(ctx context.Context, l *domain.Listing) error {
	docs, err := marshalDocs(l)
	if err != nil {
		return err
	}

	l.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE listings
		SET store_id = $1, title = $2, slug = $3, description = $4, seo_title = $5, meta_description = $6,
		    condition = $7, condition_notes = $8, box_contents = $9, postcode = $10, delivery_slot = $11,
		    price = $12, status = $13, dimension1 = $14, dimension2 = $15, variants = $16,
		    imported_variants = $17, color_images = $18, gallery = $19, meta = $20, updated_at = $21
		WHERE id = $22 AND vendor_id = $23`

	ct, err := r.db.Exec(ctx, query,
		l.StoreID, l.Title, l.Slug, l.Description, l.SEOTitle, l.MetaDescription,
		l.Condition, l.ConditionNotes, l.BoxContents, l.Postcode, l.DeliverySlot,
		l.Price, l.Status, docs.dimension1, docs.dimension2, docs.variants,
		docs.importedVariants, docs.colorImages, docs.gallery, docs.meta, l.UpdatedAt,
		l.ID, l.VendorID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("listing", "slug", l.Slug)
		}
		return fmt.Errorf("update listing: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("listing", l.ID)
	}
	return nil
}

// Delete removes a vendor's published listing.
func (r *ListingRepository) Delete(ctx context.Context, vendorID, id string) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM listings WHERE id = $1 AND vendor_id = $2`, id, vendorID)
	if err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("listing", id)
	}
	return nil
}

// DeleteBatch removes a set of a vendor's listings, returning how many rows
// were actually deleted.
func (r *ListingRepository) DeleteBatch(ctx context.Context, vendorID string, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	ct, err := r.db.Exec(ctx, `DELETE FROM listings WHERE vendor_id = $1 AND id = ANY($2)`, vendorID, ids)
	if err != nil {
		return 0, fmt.Errorf("delete listings: %w", err)
	}
	return int(ct.RowsAffected()), nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}
