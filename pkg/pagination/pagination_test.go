package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		wantPage    int
		wantPerPage int
		wantOffset  int
	}{
		{"defaults", "/listings", 1, 20, 0},
		{"explicit", "/listings?page=3&per_page=50", 3, 50, 100},
		{"zero page falls back", "/listings?page=0", 1, 20, 0},
		{"negative per_page falls back", "/listings?per_page=-5", 1, 20, 0},
		{"per_page over cap falls back", "/listings?per_page=500", 1, 20, 0},
		{"non-numeric falls back", "/listings?page=abc&per_page=xyz", 1, 20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			p := FromRequest(r)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantPerPage, p.PerPage)
			assert.Equal(t, tt.wantOffset, p.Offset)
		})
	}
}
