// Package completeness scores how publish-ready a listing is and derives an
// actionable checklist. Both are pure functions of the listing.
package completeness

import (
	"unicode/utf8"

	"github.com/multikonnect/listing-service/internal/domain"
	"github.com/multikonnect/listing-service/internal/pricing"
)

// ChecklistItem is one independent readiness check shown to the vendor.
type ChecklistItem struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Report is the derived completeness view.
type Report struct {
	Score     int             `json:"score"`
	Checklist []ChecklistItem `json:"checklist"`
}

// Category weights. They sum to exactly 100.
const (
	pointsTitle           = 10
	pointsMPIDMatched     = 5
	pointsFirstImage      = 10
	pointsFourImages      = 5
	pointsEightImages     = 5
	pointsHasVariant      = 10
	pointsAllPriced       = 10
	pointsBasePrice       = 10
	pointsDescription     = 5
	pointsSEOTitle        = 5
	pointsMetaDescription = 5
	pointsPostcode        = 5
	pointsDeliverySlot    = 5
	pointsCondition       = 5
	pointsConditionNotes  = 3
	pointsBoxContents     = 2
)

func allVariantsPriced(l *domain.Listing) bool {
	if len(l.Variants) == 0 {
		return false
	}
	for _, v := range l.Variants {
		if domain.ParseMoney(v.Price) <= 0 {
			return false
		}
	}
	return true
}

func seoTitleInBounds(l *domain.Listing) bool {
	n := utf8.RuneCountInString(l.SEOTitle)
	return n >= 20 && n <= 70
}

// Score computes the 0-100 readiness score.
func Score(l *domain.Listing) int {
	score := 0

	if utf8.RuneCountInString(l.Title) >= 10 {
		score += pointsTitle
	}
	if l.Meta.MPIDMatched {
		score += pointsMPIDMatched
	}

	switch n := len(l.Gallery); {
	case n >= 8:
		score += pointsFirstImage + pointsFourImages + pointsEightImages
	case n >= 4:
		score += pointsFirstImage + pointsFourImages
	case n >= 1:
		score += pointsFirstImage
	}

	if len(l.Variants) > 0 {
		score += pointsHasVariant
	}
	if allVariantsPriced(l) {
		score += pointsAllPriced
	}
	if pricing.ResolveBasePrice(l) > 0 {
		score += pointsBasePrice
	}

	if utf8.RuneCountInString(l.Description) >= 50 {
		score += pointsDescription
	}
	if seoTitleInBounds(l) {
		score += pointsSEOTitle
	}
	if n := utf8.RuneCountInString(l.MetaDescription); n >= 50 && n <= 160 {
		score += pointsMetaDescription
	}

	if l.Postcode != "" {
		score += pointsPostcode
	}
	if l.DeliverySlot != "" && l.DeliverySlot != domain.DefaultDeliverySlot {
		score += pointsDeliverySlot
	}
	if l.Condition != "" && l.Condition != domain.DefaultCondition {
		score += pointsCondition
	}
	if utf8.RuneCountInString(l.ConditionNotes) > 10 {
		score += pointsConditionNotes
	}
	if utf8.RuneCountInString(l.BoxContents) > 5 {
		score += pointsBoxContents
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// Checklist derives the readiness checklist from the same inputs as the
// score. Entries are independent booleans, never stored.
func Checklist(l *domain.Listing) []ChecklistItem {
	return []ChecklistItem{
		{
			ID:        "images",
			Text:      "Add at least 8 photos",
			Completed: len(l.Gallery) >= 8,
		},
		{
			ID:        "same_day",
			Text:      "Set a postcode and delivery slot for same-day delivery",
			Completed: l.Postcode != "" && l.DeliverySlot != "",
		},
		{
			ID:        "variant_prices",
			Text:      "Price every variant",
			Completed: allVariantsPriced(l),
		},
		{
			ID:        "seo_title",
			Text:      "Write an SEO title between 20 and 70 characters",
			Completed: seoTitleInBounds(l),
		},
		{
			ID:        "description",
			Text:      "Describe the product in at least 50 characters",
			Completed: utf8.RuneCountInString(l.Description) >= 50,
		},
	}
}

// Evaluate bundles score and checklist into one report.
func Evaluate(l *domain.Listing) Report {
	return Report{Score: Score(l), Checklist: Checklist(l)}
}
