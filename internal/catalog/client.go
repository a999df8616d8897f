// Package catalog is the client for the marketplace catalog service, used to
// browse other vendors' published products and pull one in as an import
// source for a new draft.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/multikonnect/listing-service/pkg/httpclient"
)

// HTTPDoer is the interface for executing HTTP requests. Both
// httpclient.Client and httpclient.CircuitBreakerClient satisfy this.
type HTTPDoer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// Listing is a catalog product as the catalog service exposes it.
type Listing struct {
	ID          string            `json:"id"`
	VendorID    string            `json:"vendor_id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Price       string            `json:"price"`
	Condition   string            `json:"condition"`
	Dimension1  DimensionPayload  `json:"dimension1"`
	Dimension2  DimensionPayload  `json:"dimension2"`
	Variants    []VariantPayload  `json:"variants"`
	Images      []string          `json:"images"`
	ColorImages map[string]string `json:"color_images"`
	MPID        string            `json:"mpid"`
}

// DimensionPayload mirrors the catalog's variant axis shape.
type DimensionPayload struct {
	Name    string   `json:"name"`
	Options []string `json:"options"`
}

// VariantPayload mirrors the catalog's variant shape.
type VariantPayload struct {
	Dim1Value string `json:"dim1_value"`
	Dim2Value string `json:"dim2_value"`
	Price     string `json:"price"`
	Quantity  string `json:"quantity"`
	Image     string `json:"image"`
}

// SearchResult is one page of catalog search hits.
type SearchResult struct {
	Listings []Listing `json:"listings"`
	Total    int       `json:"total"`
}

// Client calls the catalog service.
type Client struct {
	http    HTTPDoer
	baseURL string
}

// NewClient creates a catalog client against the given base URL.
func NewClient(http HTTPDoer, baseURL string) *Client {
	return &Client{http: http, baseURL: baseURL}
}

type envelope[T any] struct {
	Data T `json:"data"`
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create catalog request: %w", err)
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("call catalog service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return httpclient.ParseResponseError(resp, "catalog")
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode catalog response: %w", err)
	}
	return nil
}

// Search queries other vendors' published listings, excluding the calling
// vendor's own.
func (c *Client) Search(ctx context.Context, query, excludeVendorID string, page, perPage int) (*SearchResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("exclude_vendor", excludeVendorID)
	params.Set("page", fmt.Sprint(page))
	params.Set("per_page", fmt.Sprint(perPage))

	var env envelope[SearchResult]
	if err := c.get(ctx, "/api/catalog/listings?"+params.Encode(), &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// GetListing fetches one catalog listing by ID.
func (c *Client) GetListing(ctx context.Context, id string) (*Listing, error) {
	var env envelope[Listing]
	if err := c.get(ctx, "/api/catalog/listings/"+url.PathEscape(id), &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}
