// Package event publishes listing lifecycle events to Kafka.
package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/multikonnect/listing-service/internal/domain"
	pkgkafka "github.com/multikonnect/listing-service/pkg/kafka"
)

// Kafka topic constants for listing domain events.
const (
	TopicListingCreated   = "marketplace.listing.created"
	TopicListingUpdated   = "marketplace.listing.updated"
	TopicListingDeleted   = "marketplace.listing.deleted"
	TopicListingPublished = "marketplace.listing.published"
	TopicListingImported  = "marketplace.listing.imported"
)

// Aggregate type constant.
const AggregateTypeListing = "listing"

// Source identifier for events originating from the listing service.
const SourceListingService = "listing-service"

// ListingEventData is the shared payload for listing lifecycle events.
type ListingEventData struct {
	ID           string `json:"id"`
	StoreID      string `json:"store_id,omitempty"`
	VendorID     string `json:"vendor_id"`
	Title        string `json:"title"`
	Slug         string `json:"slug,omitempty"`
	Status       string `json:"status"`
	VariantCount int    `json:"variant_count"`
}

// ListingPublishedData extends the shared payload with publish results.
type ListingPublishedData struct {
	ListingEventData
	Completeness int     `json:"completeness"`
	BasePrice    float64 `json:"base_price"`
}

// ListingImportedData is the payload for a listing.imported event. The
// sourcing terms let downstream billing settle the stock purchase with the
// source vendor.
type ListingImportedData struct {
	ListingEventData
	SourceListingID string                `json:"source_listing_id"`
	SourceVendorID  string                `json:"source_vendor_id"`
	Sourcing        *domain.SourcingTerms `json:"sourcing,omitempty"`
}

// Producer publishes listing domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the listing service.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

func listingData(l *domain.Listing) ListingEventData {
	return ListingEventData{
		ID:           l.ID,
		StoreID:      l.StoreID,
		VendorID:     l.VendorID,
		Title:        l.Title,
		Slug:         l.Slug,
		Status:       l.Status,
		VariantCount: len(l.Variants),
	}
}

func (p *Producer) publish(ctx context.Context, topic string, aggregateID string, data any) error {
	event, err := pkgkafka.NewEvent(topic, aggregateID, AggregateTypeListing, SourceListingService, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}
	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published listing event",
		slog.String("topic", topic),
		slog.String("listing_id", aggregateID),
	)
	return nil
}

// PublishListingCreated publishes a listing.created event.
func (p *Producer) PublishListingCreated(ctx context.Context, l *domain.Listing) error {
	return p.publish(ctx, TopicListingCreated, l.ID, listingData(l))
}

// PublishListingUpdated publishes a listing.updated event.
func (p *Producer) PublishListingUpdated(ctx context.Context, l *domain.Listing) error {
	return p.publish(ctx, TopicListingUpdated, l.ID, listingData(l))
}

// PublishListingDeleted publishes a listing.deleted event.
func (p *Producer) PublishListingDeleted(ctx context.Context, l *domain.Listing) error {
	return p.publish(ctx, TopicListingDeleted, l.ID, listingData(l))
}

// PublishListingPublished publishes a listing.published event carrying the
// completeness score and resolved base price at publish time.
func (p *Producer) PublishListingPublished(ctx context.Context, l *domain.Listing, completeness int, basePrice float64) error {
	data := ListingPublishedData{
		ListingEventData: listingData(l),
		Completeness:     completeness,
		BasePrice:        basePrice,
	}
	return p.publish(ctx, TopicListingPublished, l.ID, data)
}

// PublishListingImported publishes a listing.imported event.
func (p *Producer) PublishListingImported(ctx context.Context, l *domain.Listing, sourceListingID, sourceVendorID string) error {
	data := ListingImportedData{
		ListingEventData: listingData(l),
		SourceListingID:  sourceListingID,
		SourceVendorID:   sourceVendorID,
		Sourcing:         l.Meta.Sourcing,
	}
	return p.publish(ctx, TopicListingImported, l.ID, data)
}
