package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multikonnect/listing-service/internal/domain"
)

func newListing() *domain.Listing {
	return &domain.Listing{
		Dimension1:  domain.Dimension{Name: "size"},
		Dimension2:  domain.Dimension{Name: "color"},
		ColorImages: map[string]string{},
	}
}

func strPtr(s string) *string { return &s }

func TestAddOptionValidation(t *testing.T) {
	l := newListing()

	assert.Error(t, AddOption(l, Dimension1, ""))
	assert.Error(t, AddOption(l, Dimension1, "   "))

	require.NoError(t, AddOption(l, Dimension1, "S"))
	err := AddOption(l, Dimension1, "S")
	assert.Error(t, err, "exact duplicate rejected")

	// case-sensitive comparison, different casing is a new option
	assert.NoError(t, AddOption(l, Dimension1, "s"))
	assert.Equal(t, []string{"S", "s"}, l.Dimension1.Options)
}

func TestAddOptionRegeneratesWhenBothDimensionsPopulated(t *testing.T) {
	l := newListing()
	require.NoError(t, AddOption(l, Dimension1, "S"))
	assert.Empty(t, l.Variants, "single dimension generates nothing")

	require.NoError(t, AddOption(l, Dimension2, "Red"))
	require.Len(t, l.Variants, 1)

	require.NoError(t, AddOption(l, Dimension1, "M"))
	require.Len(t, l.Variants, 2)
	require.NoError(t, AddOption(l, Dimension2, "Blue"))
	require.Len(t, l.Variants, 4)
}

func TestRegenerateRowMajorOrder(t *testing.T) {
	l := newListing()
	l.Dimension1.Options = []string{"S", "M"}
	l.Dimension2.Options = []string{"Red", "Blue"}
	require.NoError(t, Regenerate(l))

	var pairs [][2]string
	for _, v := range l.Variants {
		pairs = append(pairs, [2]string{v.Dim1Value, v.Dim2Value})
	}
	assert.Equal(t, [][2]string{
		{"S", "Red"}, {"S", "Blue"}, {"M", "Red"}, {"M", "Blue"},
	}, pairs)
}

func TestRegeneratePreservesExistingCells(t *testing.T) {
	l := newListing()
	l.Dimension1.Options = []string{"S", "M"}
	l.Dimension2.Options = []string{"Red"}
	require.NoError(t, Regenerate(l))

	require.NoError(t, UpdateVariant(l, 0, VariantPatch{
		Price:         strPtr("12.50"),
		StockQuantity: strPtr("7"),
	}))

	require.NoError(t, AddOption(l, Dimension2, "Blue"))
	require.Len(t, l.Variants, 4)

	i := l.FindVariant("S", "Red")
	require.GreaterOrEqual(t, i, 0)
	assert.Equal(t, "12.50", l.Variants[i].Price)
	assert.Equal(t, "7", l.Variants[i].StockQuantity)

	j := l.FindVariant("S", "Blue")
	require.GreaterOrEqual(t, j, 0)
	assert.Empty(t, l.Variants[j].Price, "new cell starts blank")
	assert.False(t, l.Variants[j].SameDayEligible)
}

func TestRegenerateCardinalityAndUniqueness(t *testing.T) {
	l := newListing()
	l.Dimension1.Options = []string{"S", "M", "L"}
	l.Dimension2.Options = []string{"Red", "Blue"}
	require.NoError(t, Regenerate(l))

	assert.Len(t, l.Variants, 6)
	seen := map[[2]string]bool{}
	for _, v := range l.Variants {
		key := [2]string{v.Dim1Value, v.Dim2Value}
		assert.False(t, seen[key], "duplicate pair %v", key)
		seen[key] = true
	}
}

func TestRegenerateRequiresBothDimensions(t *testing.T) {
	l := newListing()
	l.Dimension1.Options = []string{"S"}
	assert.Error(t, Regenerate(l))
}

func TestRegeneratePrefillsColorImage(t *testing.T) {
	l := newListing()
	l.Dimension1.Options = []string{"S"}
	l.ColorImages["Red"] = "img-red"
	require.NoError(t, AddOption(l, Dimension2, "Red"))

	require.Len(t, l.Variants, 1)
	assert.Equal(t, "img-red", l.Variants[0].ImageRef)
}

func TestRemoveOptionCascades(t *testing.T) {
	l := newListing()
	l.Dimension1.Options = []string{"S", "M"}
	l.Dimension2.Options = []string{"Red", "Blue"}
	require.NoError(t, Regenerate(l))
	require.Len(t, l.Variants, 4)

	require.NoError(t, RemoveOption(l, Dimension2, "Red"))

	assert.Equal(t, []string{"Blue"}, l.Dimension2.Options)
	assert.Len(t, l.Variants, 2)
	for _, v := range l.Variants {
		assert.NotEqual(t, "Red", v.Dim2Value)
	}
	assert.Equal(t, -1, l.FindVariant("S", "Red"))
}

func TestRemoveOptionUnknownLabel(t *testing.T) {
	l := newListing()
	l.Dimension1.Options = []string{"S"}
	assert.Error(t, RemoveOption(l, Dimension1, "XL"))
}

func TestUpdateVariantNoCrossFieldValidation(t *testing.T) {
	l := newListing()
	l.Dimension1.Options = []string{"S"}
	l.Dimension2.Options = []string{"Red"}
	require.NoError(t, Regenerate(l))

	require.NoError(t, UpdateVariant(l, 0, VariantPatch{Price: strPtr("not-a-number")}))
	assert.Equal(t, "not-a-number", l.Variants[0].Price)

	assert.Error(t, UpdateVariant(l, 5, VariantPatch{}))
	assert.Error(t, UpdateVariant(l, -1, VariantPatch{}))
}

func TestApplyToAll(t *testing.T) {
	l := newListing()
	l.Dimension1.Options = []string{"S", "M"}
	l.Dimension2.Options = []string{"Red"}
	require.NoError(t, Regenerate(l))

	require.NoError(t, UpdateVariant(l, 1, VariantPatch{Price: strPtr("10")}))

	require.NoError(t, ApplyToAll(l, FieldPrice, "25"))
	assert.Equal(t, "25", l.Variants[0].Price, "blank cell overwritten")
	assert.Equal(t, "25", l.Variants[1].Price, "populated cell overwritten")

	require.NoError(t, ApplyToAll(l, FieldStock, "3"))
	for _, v := range l.Variants {
		assert.Equal(t, "3", v.StockQuantity)
	}
}

func TestApplyToAllRejectsNonNumeric(t *testing.T) {
	l := newListing()
	l.Dimension1.Options = []string{"S"}
	l.Dimension2.Options = []string{"Red"}
	require.NoError(t, Regenerate(l))

	assert.Error(t, ApplyToAll(l, FieldPrice, "abc"))
	assert.Error(t, ApplyToAll(l, FieldStock, "2.5"), "stock must be an integer")
	assert.Error(t, ApplyToAll(l, "name", "x"))
}

func TestVariantImageOverride(t *testing.T) {
	l := newListing()
	l.Dimension1.Options = []string{"S"}
	l.Dimension2.Options = []string{"Red"}
	require.NoError(t, Regenerate(l))

	require.NoError(t, SetVariantImage(l, 0, "override"))
	assert.Equal(t, "override", l.Variants[0].ImageRef)

	require.NoError(t, ClearVariantImage(l, 0))
	assert.Empty(t, l.Variants[0].ImageRef)

	assert.Error(t, SetVariantImage(l, 9, "x"))
}

func TestSetColorImageBackfill(t *testing.T) {
	l := newListing()
	l.Dimension1.Options = []string{"S", "M"}
	l.Dimension2.Options = []string{"Red", "Blue"}
	require.NoError(t, Regenerate(l))

	// one Red variant takes a manual override
	i := l.FindVariant("M", "Red")
	require.NoError(t, SetVariantImage(l, i, "manual"))

	SetColorImage(l, "Red", "img-red-v1")

	assert.Equal(t, "img-red-v1", l.Variants[l.FindVariant("S", "Red")].ImageRef)
	assert.Equal(t, "manual", l.Variants[i].ImageRef, "override survives map update")
	assert.Empty(t, l.Variants[l.FindVariant("S", "Blue")].ImageRef)

	// subsequent update moves variants that carry the prior map value
	SetColorImage(l, "Red", "img-red-v2")
	assert.Equal(t, "img-red-v2", l.Variants[l.FindVariant("S", "Red")].ImageRef)
	assert.Equal(t, "manual", l.Variants[i].ImageRef)
}
