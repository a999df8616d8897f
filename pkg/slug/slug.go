package slug

import (
	"regexp"
	"strings"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Generate creates a URL-friendly slug from a listing title.
//
// Examples:
//   - "iPhone 15 Pro Max" → "iphone-15-pro-max"
//   - "Galaxy S24 (Renewed!)" → "galaxy-s24-renewed"
func Generate(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = nonSlugChars.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return s
}

// SKU derives a variant SKU from the listing slug and the variant's two
// dimension values: lowercased, whitespace collapsed to hyphens.
//
//	SKU("iphone-15", "256GB", "Space Black") → "iphone-15-256gb-space-black"
func SKU(listingSlug, dim1, dim2 string) string {
	parts := []string{listingSlug, dim1, dim2}
	for i, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		p = strings.Join(strings.Fields(p), "-")
		parts[i] = p
	}
	return strings.Join(parts, "-")
}
