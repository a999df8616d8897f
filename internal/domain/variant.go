package domain

import (
	"strconv"
	"strings"

	"github.com/multikonnect/listing-service/pkg/slug"
)

// Variant is one sellable SKU combination: a specific pair of dimension
// values. Numeric fields hold the raw text the vendor typed; coercion to
// numbers happens only at publish, treating non-numeric input as zero.
type Variant struct {
	Dim1Value       string `json:"dim1_value"`
	Dim2Value       string `json:"dim2_value"`
	Price           string `json:"price"`
	CompareAtPrice  string `json:"compare_at_price"`
	StockQuantity   string `json:"stock_quantity"`
	SameDayEligible bool   `json:"same_day_eligible"`
	ImageRef        string `json:"image_ref,omitempty"`
}

// ParseMoney coerces a raw price string to a float, returning 0 for empty or
// non-numeric input.
func ParseMoney(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

// ParseQuantity coerces a raw stock string to an int, returning 0 for empty
// or non-numeric input.
func ParseQuantity(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// PriceValue returns the variant price as a number (0 when blank or invalid).
func (v Variant) PriceValue() float64 {
	return ParseMoney(v.Price)
}

// AttributePayload is one attribute entry on the published wire format.
type AttributePayload struct {
	AttributeName  string `json:"attribute_name"`
	AttributeValue string `json:"attribute_value"`
}

// VariantPayload is the shape sent to the marketplace backend on publish.
type VariantPayload struct {
	Name          string             `json:"name"`
	SKU           string             `json:"sku"`
	UID           string             `json:"uid"`
	UIDs          []string           `json:"uids"`
	Price         float64            `json:"price"`
	PriceTaxExcl  float64            `json:"price_tax_excl"`
	PriceTaxIncl  float64            `json:"price_tax_incl"`
	ComparedPrice float64            `json:"compared_price"`
	Quantity      int                `json:"quantity"`
	Qty           int                `json:"qty"`
	ManageStock   bool               `json:"manage_stock"`
	InStock       bool               `json:"in_stock"`
	IsActive      bool               `json:"is_active"`
	IsDefault     bool               `json:"is_default"`
	Position      int                `json:"position"`
	Attributes    []AttributePayload `json:"attributes"`
	SameDay       bool               `json:"same_day"`
	Image         string             `json:"image,omitempty"`
}

// ToPayload converts the variant to its wire shape. The SKU derives from the
// listing slug and both dimension values; position is the variant's index in
// row-major matrix order.
func (v Variant) ToPayload(l *Listing, position int) VariantPayload {
	price := ParseMoney(v.Price)
	qty := ParseQuantity(v.StockQuantity)
	sku := slug.SKU(l.Slug, v.Dim1Value, v.Dim2Value)

	return VariantPayload{
		Name:          v.Dim1Value + " / " + v.Dim2Value,
		SKU:           sku,
		UID:           sku,
		UIDs:          []string{v.Dim1Value, v.Dim2Value},
		Price:         price,
		PriceTaxExcl:  price,
		PriceTaxIncl:  price,
		ComparedPrice: ParseMoney(v.CompareAtPrice),
		Quantity:      qty,
		Qty:           qty,
		ManageStock:   true,
		InStock:       qty > 0,
		IsActive:      true,
		IsDefault:     false,
		Position:      position,
		Attributes: []AttributePayload{
			{AttributeName: l.Dimension1.Name, AttributeValue: v.Dim1Value},
			{AttributeName: l.Dimension2.Name, AttributeValue: v.Dim2Value},
		},
		SameDay: v.SameDayEligible,
		Image:   v.ImageRef,
	}
}
