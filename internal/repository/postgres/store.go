package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/multikonnect/listing-service/internal/domain"
	"github.com/multikonnect/listing-service/pkg/database"
	apperrors "github.com/multikonnect/listing-service/pkg/errors"
)

const storeColumns = `id, vendor_id, name, postcode, regular_shipping_charge, same_day_shipping_charge,
	delivery_slot, created_at, updated_at`

// StoreRepository implements repository.StoreRepository using PostgreSQL.
type StoreRepository struct {
	db database.DBTX
}

// NewStoreRepository creates a new PostgreSQL-backed store repository.
func NewStoreRepository(db database.DBTX) *StoreRepository {
	return &StoreRepository{db: db}
}

// Create inserts a store.
func (r *StoreRepository) Create(ctx context.Context, s *domain.Store) error {
	query := `
		INSERT INTO stores (` + storeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(ctx, query,
		s.ID, s.VendorID, s.Name, s.Postcode, s.RegularShippingCharge, s.SameDayShippingCharge,
		s.DeliverySlot, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("store", "name", s.Name)
		}
		return fmt.Errorf("insert store: %w", err)
	}
	return nil
}

func scanStore(row pgx.Row) (*domain.Store, error) {
	var s domain.Store
	err := row.Scan(
		&s.ID, &s.VendorID, &s.Name, &s.Postcode, &s.RegularShippingCharge, &s.SameDayShippingCharge,
		&s.DeliverySlot, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("store", "")
		}
		return nil, fmt.Errorf("scan store: %w", err)
	}
	return &s, nil
}

// GetByID retrieves a store by ID.
func (r *StoreRepository) GetByID(ctx context.Context, id string) (*domain.Store, error) {
	query := `SELECT ` + storeColumns + ` FROM stores WHERE id = $1`

	s, err := scanStore(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("store", id)
		}
		return nil, err
	}
	return s, nil
}

// ListByVendor returns all of a vendor's stores, oldest first.
func (r *StoreRepository) ListByVendor(ctx context.Context, vendorID string) ([]domain.Store, error) {
	query := `SELECT ` + storeColumns + ` FROM stores WHERE vendor_id = $1 ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query, vendorID)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()

	var stores []domain.Store
	for rows.Next() {
		var s domain.Store
		if err := rows.Scan(
			&s.ID, &s.VendorID, &s.Name, &s.Postcode, &s.RegularShippingCharge, &s.SameDayShippingCharge,
			&s.DeliverySlot, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan store row: %w", err)
		}
		stores = append(stores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate store rows: %w", err)
	}

	if stores == nil {
		stores = []domain.Store{}
	}
	return stores, nil
}

// Update modifies a store.
func (r *StoreRepository) Update(ctx context.Context, s *domain.Store) error {
	s.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE stores
		SET name = $1, postcode = $2, regular_shipping_charge = $3, same_day_shipping_charge = $4,
		    delivery_slot = $5, updated_at = $6
		WHERE id = $7 AND vendor_id = $8`

	ct, err := r.db.Exec(ctx, query,
		s.Name, s.Postcode, s.RegularShippingCharge, s.SameDayShippingCharge,
		s.DeliverySlot, s.UpdatedAt, s.ID, s.VendorID,
	)
	if err != nil {
		return fmt.Errorf("update store: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("store", s.ID)
	}
	return nil
}

// Delete removes a vendor's store.
func (r *StoreRepository) Delete(ctx context.Context, vendorID, id string) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM stores WHERE id = $1 AND vendor_id = $2`, id, vendorID)
	if err != nil {
		return fmt.Errorf("delete store: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("store", id)
	}
	return nil
}
