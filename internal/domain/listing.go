package domain

import (
	"time"
)

// Listing status constants.
const (
	ListingStatusDraft     = "draft"
	ListingStatusPublished = "published"
	ListingStatusArchived  = "archived"
)

// Defaults the wizard starts from; the completeness scorer treats these as
// "not yet configured".
const (
	DefaultCondition    = "new"
	DefaultDeliverySlot = "anytime"
)

// DefaultCommissionRate applies when the listing metadata carries no explicit
// rate.
const DefaultCommissionRate = 0.025

// Dimension is one of the two user-defined variant axes. Both the display
// name and the option labels are user-editable; options keep insertion order
// and are unique by exact case-sensitive match.
type Dimension struct {
	Name    string   `json:"name"`
	Options []string `json:"options"`
}

// HasOption reports whether label is present (exact match).
func (d Dimension) HasOption(label string) bool {
	for _, o := range d.Options {
		if o == label {
			return true
		}
	}
	return false
}

// ListingMeta is the typed optional-fields record attached to a listing. The
// upstream wire format calls this the "extra fields" bag; the known keys are
// modeled explicitly so the scorer and pricing calculator stay statically
// checkable.
type ListingMeta struct {
	CommissionRate *float64 `json:"commission_rate,omitempty"`
	PromoFee       *float64 `json:"promo_fee,omitempty"`
	MPID           string   `json:"mpid,omitempty"`
	MPIDMatched    bool     `json:"mpid_matched,omitempty"`
	OfferEnabled   bool     `json:"offer_enabled,omitempty"`

	Sourcing *SourcingTerms `json:"sourcing,omitempty"`
}

// Sourcing payment methods for imported listings.
const (
	PaymentMethodInstant = "instant"
	PaymentMethodCredit  = "credit"
)

// SourcingTerms records how an imported listing's initial stock is paid for.
// Instant purchases carry a settled payment intent; credit purchases carry a
// repayment window in days.
type SourcingTerms struct {
	PaymentMethod   string `json:"payment_method"`
	Quantity        int    `json:"quantity"`
	CreditDays      int    `json:"credit_days,omitempty"`
	PaymentIntentID string `json:"payment_intent_id,omitempty"`
}

// FeeSettings are the resolved fee inputs for the pricing calculator.
type FeeSettings struct {
	CommissionRate float64 `json:"commission_rate"`
	PromoFee       float64 `json:"promo_fee"`
}

// Fees resolves fee settings from the metadata bag, applying defaults for
// absent fields.
func (m ListingMeta) Fees() FeeSettings {
	fees := FeeSettings{CommissionRate: DefaultCommissionRate, PromoFee: 0}
	if m.CommissionRate != nil {
		fees.CommissionRate = *m.CommissionRate
	}
	if m.PromoFee != nil {
		fees.PromoFee = *m.PromoFee
	}
	return fees
}

// Listing is the wizard's unit of work: one draft or published product
// listing with its variant matrix, gallery, and pricing inputs.
type Listing struct {
	ID       string `json:"id"`
	StoreID  string `json:"store_id"`
	VendorID string `json:"vendor_id"`

	Title           string `json:"title"`
	Slug            string `json:"slug"`
	Description     string `json:"description"`
	SEOTitle        string `json:"seo_title"`
	MetaDescription string `json:"meta_description"`

	Condition      string `json:"condition"`
	ConditionNotes string `json:"condition_notes"`
	BoxContents    string `json:"box_contents"`

	Postcode     string `json:"postcode"`
	DeliverySlot string `json:"delivery_slot"`

	// Price is the flat product price as entered; numeric coercion happens
	// only at publish.
	Price string `json:"price"`

	Status string `json:"status"`

	Dimension1 Dimension `json:"dimension1"`
	Dimension2 Dimension `json:"dimension2"`

	Variants []Variant `json:"variants"`

	// ImportedVariants holds supplier variants carried over by a catalog
	// import before the vendor adopts them into the matrix. They act as a
	// fallback price source only.
	ImportedVariants []Variant `json:"imported_variants,omitempty"`

	// ColorImages maps a dimension-2 label to its default image reference.
	ColorImages map[string]string `json:"color_images,omitempty"`

	Gallery []GalleryImage `json:"gallery"`

	Meta ListingMeta `json:"meta"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FindVariant returns the index of the variant with the given dimension pair,
// or -1.
func (l *Listing) FindVariant(dim1, dim2 string) int {
	for i, v := range l.Variants {
		if v.Dim1Value == dim1 && v.Dim2Value == dim2 {
			return i
		}
	}
	return -1
}

// ValidStatuses returns the set of valid listing statuses.
func ValidStatuses() []string {
	return []string{ListingStatusDraft, ListingStatusPublished, ListingStatusArchived}
}

// IsValidStatus checks whether status is one of the valid listing statuses.
func IsValidStatus(status string) bool {
	for _, s := range ValidStatuses() {
		if s == status {
			return true
		}
	}
	return false
}
