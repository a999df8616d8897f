package domain

import (
	"time"
)

// Store is a vendor storefront. Its postcode and shipping charges feed the
// pricing intelligence snapshot for listings that do not override them.
type Store struct {
	ID       string `json:"id"`
	VendorID string `json:"vendor_id"`
	Name     string `json:"name"`
	Postcode string `json:"postcode"`

	// Shipping charges in the store currency.
	RegularShippingCharge float64 `json:"regular_shipping_charge"`
	SameDayShippingCharge float64 `json:"same_day_shipping_charge"`

	DeliverySlot string `json:"delivery_slot"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ShippingCharges are the vendor-supplied delivery prices the fee breakdown
// chooses between.
type ShippingCharges struct {
	Regular float64 `json:"regular"`
	SameDay float64 `json:"same_day"`
}

// Charges returns the store's shipping charges.
func (s *Store) Charges() ShippingCharges {
	return ShippingCharges{
		Regular: s.RegularShippingCharge,
		SameDay: s.SameDayShippingCharge,
	}
}
