// Package matrix maintains a listing's variant set consistent with its two
// dimension option sets without discarding vendor-entered cell data.
package matrix

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/multikonnect/listing-service/internal/domain"
	apperrors "github.com/multikonnect/listing-service/pkg/errors"
)

// DimensionID selects one of the listing's two variant axes.
type DimensionID int

const (
	Dimension1 DimensionID = 1
	Dimension2 DimensionID = 2
)

// Fields accepted by ApplyToAll.
const (
	FieldPrice = "price"
	FieldStock = "stock"
)

func dimension(l *domain.Listing, dim DimensionID) (*domain.Dimension, error) {
	switch dim {
	case Dimension1:
		return &l.Dimension1, nil
	case Dimension2:
		return &l.Dimension2, nil
	default:
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown dimension %d", dim))
	}
}

// AddOption appends a label to the chosen dimension. Empty and duplicate
// labels (case-sensitive exact match) are rejected. When the other dimension
// already has options, the matrix is regenerated so new cells appear.
func AddOption(l *domain.Listing, dim DimensionID, label string) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return apperrors.InvalidInput("option label must not be empty")
	}

	d, err := dimension(l, dim)
	if err != nil {
		return err
	}
	if d.HasOption(label) {
		return apperrors.InvalidInput(fmt.Sprintf("option %q already exists in %s", label, d.Name))
	}

	d.Options = append(d.Options, label)

	other := &l.Dimension2
	if dim == Dimension2 {
		other = &l.Dimension1
	}
	if len(other.Options) > 0 {
		return Regenerate(l)
	}
	return nil
}

// RemoveOption deletes a label from the chosen dimension and cascades: every
// variant whose value on that dimension equals the label is removed. The
// matrix is not regenerated; removal is pure deletion.
func RemoveOption(l *domain.Listing, dim DimensionID, label string) error {
	d, err := dimension(l, dim)
	if err != nil {
		return err
	}
	if !d.HasOption(label) {
		return apperrors.NotFound("option", label)
	}

	kept := d.Options[:0]
	for _, o := range d.Options {
		if o != label {
			kept = append(kept, o)
		}
	}
	d.Options = kept

	survivors := l.Variants[:0]
	for _, v := range l.Variants {
		value := v.Dim1Value
		if dim == Dimension2 {
			value = v.Dim2Value
		}
		if value != label {
			survivors = append(survivors, v)
		}
	}
	l.Variants = survivors
	return nil
}

// Regenerate rebuilds the variant list as the row-major cross product of the
// two option sets (dimension 1 outer, dimension 2 inner, preserving each
// option list's order). Cells that already exist keep their data untouched;
// new cells start blank with the image pre-populated from the listing's
// color-image map when one is set for that dimension-2 value.
func Regenerate(l *domain.Listing) error {
	if len(l.Dimension1.Options) == 0 || len(l.Dimension2.Options) == 0 {
		return apperrors.InvalidInput(fmt.Sprintf(
			"add at least one %s option and one %s option before generating variants",
			l.Dimension1.Name, l.Dimension2.Name,
		))
	}

	regenerated := make([]domain.Variant, 0, len(l.Dimension1.Options)*len(l.Dimension2.Options))
	for _, a := range l.Dimension1.Options {
		for _, b := range l.Dimension2.Options {
			if i := l.FindVariant(a, b); i >= 0 {
				regenerated = append(regenerated, l.Variants[i])
				continue
			}
			regenerated = append(regenerated, domain.Variant{
				Dim1Value: a,
				Dim2Value: b,
				ImageRef:  l.ColorImages[b],
			})
		}
	}
	l.Variants = regenerated
	return nil
}

// VariantPatch is a partial in-place update of one cell. No cross-field
// validation is applied: prices and stock may be left empty or non-numeric,
// coercion happens only at publish.
type VariantPatch struct {
	Price           *string
	CompareAtPrice  *string
	StockQuantity   *string
	SameDayEligible *bool
}

// UpdateVariant applies a patch to the variant at index.
func UpdateVariant(l *domain.Listing, index int, patch VariantPatch) error {
	if index < 0 || index >= len(l.Variants) {
		return apperrors.NotFound("variant", strconv.Itoa(index))
	}

	v := &l.Variants[index]
	if patch.Price != nil {
		v.Price = *patch.Price
	}
	if patch.CompareAtPrice != nil {
		v.CompareAtPrice = *patch.CompareAtPrice
	}
	if patch.StockQuantity != nil {
		v.StockQuantity = *patch.StockQuantity
	}
	if patch.SameDayEligible != nil {
		v.SameDayEligible = *patch.SameDayEligible
	}
	return nil
}

// ApplyToAll overwrites one field on every variant. The value must parse as
// a number: any float for price, an integer for stock.
func ApplyToAll(l *domain.Listing, field, value string) error {
	switch field {
	case FieldPrice:
		if _, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err != nil {
			return apperrors.InvalidInput(fmt.Sprintf("price %q is not a number", value))
		}
		for i := range l.Variants {
			l.Variants[i].Price = value
		}
	case FieldStock:
		if _, err := strconv.Atoi(strings.TrimSpace(value)); err != nil {
			return apperrors.InvalidInput(fmt.Sprintf("stock %q is not an integer", value))
		}
		for i := range l.Variants {
			l.Variants[i].StockQuantity = value
		}
	default:
		return apperrors.InvalidInput(fmt.Sprintf("field %q cannot be applied to all variants", field))
	}
	return nil
}

// SetVariantImage sets a variant-specific image override.
func SetVariantImage(l *domain.Listing, index int, imageRef string) error {
	if index < 0 || index >= len(l.Variants) {
		return apperrors.NotFound("variant", strconv.Itoa(index))
	}
	l.Variants[index].ImageRef = imageRef
	return nil
}

// ClearVariantImage removes a variant's image override.
func ClearVariantImage(l *domain.Listing, index int) error {
	return SetVariantImage(l, index, "")
}

// SetColorImage updates the color-image map and back-fills the new reference
// onto every variant of that color still carrying the map's prior value.
// Variant-specific overrides are left alone.
func SetColorImage(l *domain.Listing, color, imageRef string) {
	if l.ColorImages == nil {
		l.ColorImages = make(map[string]string)
	}
	prior := l.ColorImages[color]
	l.ColorImages[color] = imageRef

	for i := range l.Variants {
		if l.Variants[i].Dim2Value == color && l.Variants[i].ImageRef == prior {
			l.Variants[i].ImageRef = imageRef
		}
	}
}
