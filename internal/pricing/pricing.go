// Package pricing produces a non-binding price suggestion and a fee/net
// breakdown from a listing's base price, postcode, and shipping settings.
package pricing

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/multikonnect/listing-service/internal/domain"
)

// SampleCount is the size of the synthesized comparison-price set.
const SampleCount = 20

// FeeBreakdown itemizes the charges deducted from the base price.
type FeeBreakdown struct {
	Commission float64 `json:"commission"`
	Shipping   float64 `json:"shipping"`
	Promo      float64 `json:"promo"`
	Total      float64 `json:"total"`
}

// Snapshot is the derived pricing view. It is a pure function of its inputs
// and is never persisted independently.
type Snapshot struct {
	City           string       `json:"city"`
	BasePrice      float64      `json:"base_price"`
	PriceRangeLow  float64      `json:"price_range_low"`
	PriceRangeHigh float64      `json:"price_range_high"`
	Median         float64      `json:"median"`
	Fees           FeeBreakdown `json:"fee_breakdown"`
	NetPrice       float64      `json:"net_price"`

	// Insufficient is set when no positive base price could be resolved.
	// All monetary fields are zero in that case; it is not an error.
	Insufficient bool `json:"insufficient_data"`
}

// ResolveBasePrice scans price sources in fixed order: the first variant with
// a positive numeric price, then the first imported variant with one, then
// the flat product price. Returns 0 when nothing parses positive.
func ResolveBasePrice(l *domain.Listing) float64 {
	for _, v := range l.Variants {
		if p := domain.ParseMoney(v.Price); p > 0 {
			return p
		}
	}
	for _, v := range l.ImportedVariants {
		if p := domain.ParseMoney(v.Price); p > 0 {
			return p
		}
	}
	if p := domain.ParseMoney(l.Price); p > 0 {
		return p
	}
	return 0
}

// Samples synthesizes the deterministic comparison-price set for a base
// price. Each sample is basePrice scaled by a fixed offset in [-15%, +14%]
// derived from the price itself, rounded to 2 decimals, sorted ascending.
// Identical inputs always reproduce identical output. Stand-in for a market
// data query; see DESIGN.md.
func Samples(basePrice float64) []float64 {
	base := decimal.NewFromFloat(basePrice)
	seed := int64(basePrice) % 1000

	samples := make([]float64, SampleCount)
	for i := int64(0); i < SampleCount; i++ {
		offset := (seed+i)%30 - 15
		factor := decimal.NewFromInt(100 + offset).Div(decimal.NewFromInt(100))
		samples[i] = base.Mul(factor).Round(2).InexactFloat64()
	}
	sort.Float64s(samples)
	return samples
}

// Percentile returns the element at index ceil(p/100 * n) - 1 of a sorted
// sample, clamped to the valid range.
func Percentile(sorted []float64, p int) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	// integer ceil of p*n/100
	i := (p*n+99)/100 - 1
	if i < 0 {
		i = 0
	}
	if i >= n {
		i = n - 1
	}
	return sorted[i]
}

func round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// Compute builds the full pricing snapshot for a listing against a store's
// shipping charges. Same-day charges apply when any variant is flagged
// same-day eligible.
func Compute(l *domain.Listing, charges domain.ShippingCharges) Snapshot {
	snap := Snapshot{City: CityForPostcode(l.Postcode)}

	base := ResolveBasePrice(l)
	if base <= 0 {
		snap.Insufficient = true
		return snap
	}
	snap.BasePrice = base

	samples := Samples(base)
	snap.PriceRangeLow = Percentile(samples, 25)
	snap.Median = Percentile(samples, 50)
	snap.PriceRangeHigh = Percentile(samples, 75)

	shipping := charges.Regular
	for _, v := range l.Variants {
		if v.SameDayEligible {
			shipping = charges.SameDay
			break
		}
	}

	fees := l.Meta.Fees()
	baseDec := decimal.NewFromFloat(base)
	commission := baseDec.Mul(decimal.NewFromFloat(fees.CommissionRate))
	shippingDec := decimal.NewFromFloat(shipping)
	promo := decimal.NewFromFloat(fees.PromoFee)
	total := commission.Add(shippingDec).Add(promo)

	snap.Fees = FeeBreakdown{
		Commission: round2(commission),
		Shipping:   round2(shippingDec),
		Promo:      round2(promo),
		Total:      round2(total),
	}
	snap.NetPrice = round2(baseDec.Sub(total))
	return snap
}
