package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multikonnect/listing-service/internal/domain"
)

func floatPtr(f float64) *float64 { return &f }

func TestCityForPostcode(t *testing.T) {
	cases := map[string]string{
		"S1 2AB":   "Sheffield",
		"SW1A 1AA": "London",
		"":         "London",
		"s10 3qr":  "Sheffield",
		"SO15 2BT": "Southampton",
		"M1 1AE":   "Manchester",
		"B33 8TH":  "Birmingham",
		"EH1 1YZ":  "Edinburgh",
		"ZZ9 9ZZ":  "London",
	}
	for postcode, want := range cases {
		assert.Equal(t, want, CityForPostcode(postcode), "postcode %q", postcode)
	}
}

func TestResolveBasePriceOrder(t *testing.T) {
	l := &domain.Listing{
		Price: "99",
		Variants: []domain.Variant{
			{Price: ""}, {Price: "abc"}, {Price: "42.50"}, {Price: "10"},
		},
	}
	assert.Equal(t, 42.50, ResolveBasePrice(l), "first positive variant price wins")

	l.Variants = []domain.Variant{{Price: "0"}}
	l.ImportedVariants = []domain.Variant{{Price: "15"}}
	assert.Equal(t, 15.0, ResolveBasePrice(l), "imported variants are the fallback")

	l.ImportedVariants = nil
	assert.Equal(t, 99.0, ResolveBasePrice(l), "flat price is last")

	l.Price = "free"
	assert.Zero(t, ResolveBasePrice(l))
}

func TestSamplesDeterministic(t *testing.T) {
	a := Samples(249.99)
	b := Samples(249.99)
	assert.Equal(t, a, b, "identical inputs reproduce identical samples")
	require.Len(t, a, SampleCount)

	for i := 1; i < len(a); i++ {
		assert.LessOrEqual(t, a[i-1], a[i], "samples sorted ascending")
	}

	// offsets span [-15%, +14%] of the base price
	assert.GreaterOrEqual(t, a[0], 249.99*0.84)
	assert.LessOrEqual(t, a[len(a)-1], 249.99*1.15)
}

func TestPercentile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}
	assert.Equal(t, 1.0, Percentile(sorted, 25))
	assert.Equal(t, 2.0, Percentile(sorted, 50))
	assert.Equal(t, 3.0, Percentile(sorted, 75))
	assert.Equal(t, 4.0, Percentile(sorted, 100))
	assert.Equal(t, 1.0, Percentile(sorted, 0))
	assert.Zero(t, Percentile(nil, 50))
}

func TestPercentileMonotonic(t *testing.T) {
	for _, base := range []float64{0.01, 1, 9.99, 100, 123.45, 999.99, 12345.67} {
		s := Samples(base)
		p25 := Percentile(s, 25)
		p50 := Percentile(s, 50)
		p75 := Percentile(s, 75)
		assert.LessOrEqual(t, p25, p50, "base %v", base)
		assert.LessOrEqual(t, p50, p75, "base %v", base)
	}
}

func TestComputeFeeBreakdown(t *testing.T) {
	l := &domain.Listing{
		Postcode: "S1 2AB",
		Variants: []domain.Variant{{Price: "100"}},
		Meta:     domain.ListingMeta{CommissionRate: floatPtr(0.025)},
	}
	snap := Compute(l, domain.ShippingCharges{Regular: 5, SameDay: 12})

	assert.Equal(t, "Sheffield", snap.City)
	assert.Equal(t, 100.0, snap.BasePrice)
	assert.Equal(t, 2.5, snap.Fees.Commission)
	assert.Equal(t, 5.0, snap.Fees.Shipping)
	assert.Zero(t, snap.Fees.Promo)
	assert.Equal(t, 7.5, snap.Fees.Total)
	assert.Equal(t, 92.5, snap.NetPrice)
	assert.False(t, snap.Insufficient)
}

func TestComputeSameDayShipping(t *testing.T) {
	l := &domain.Listing{
		Variants: []domain.Variant{
			{Price: "100"},
			{Price: "100", SameDayEligible: true},
		},
	}
	snap := Compute(l, domain.ShippingCharges{Regular: 5, SameDay: 12})
	assert.Equal(t, 12.0, snap.Fees.Shipping, "any same-day variant selects the same-day charge")
}

func TestComputeDefaultCommission(t *testing.T) {
	l := &domain.Listing{Variants: []domain.Variant{{Price: "200"}}}
	snap := Compute(l, domain.ShippingCharges{})
	assert.Equal(t, 5.0, snap.Fees.Commission, "default commission rate is 2.5%")
}

func TestComputeInsufficientData(t *testing.T) {
	l := &domain.Listing{Postcode: "M1 1AE"}
	snap := Compute(l, domain.ShippingCharges{Regular: 5})

	assert.True(t, snap.Insufficient)
	assert.Equal(t, "Manchester", snap.City, "city still resolves without a price")
	assert.Zero(t, snap.BasePrice)
	assert.Zero(t, snap.Median)
	assert.Zero(t, snap.Fees.Total)
	assert.Zero(t, snap.NetPrice)
}

func TestComputeDeterministic(t *testing.T) {
	l := &domain.Listing{
		Postcode: "SW1A 1AA",
		Variants: []domain.Variant{{Price: "249.99"}},
		Meta:     domain.ListingMeta{PromoFee: floatPtr(1.5)},
	}
	charges := domain.ShippingCharges{Regular: 4.99, SameDay: 9.99}

	first := Compute(l, charges)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Compute(l, charges))
	}
}

func TestComputeRounding(t *testing.T) {
	l := &domain.Listing{
		Variants: []domain.Variant{{Price: "33.33"}},
		Meta:     domain.ListingMeta{CommissionRate: floatPtr(0.1)},
	}
	snap := Compute(l, domain.ShippingCharges{Regular: 0.333})

	// commission 3.333 -> 3.33, shipping 0.333 -> 0.33, total rounds the sum
	assert.Equal(t, 3.33, snap.Fees.Commission)
	assert.Equal(t, 0.33, snap.Fees.Shipping)
	assert.Equal(t, 3.67, snap.Fees.Total)
	assert.Equal(t, 29.66, snap.NetPrice)
}
