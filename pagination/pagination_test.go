package pagination

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeClampsInput(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		wantPage  int
		wantLimit int
	}{
		{"defaults for zero values", 0, 0, 1, 10},
		{"negative page corrected", -5, 20, 1, 20},
		{"huge limit clamped", 1, 9999, 1, 100},
		{"negative limit corrected", 3, -1, 3, 10},
		{"valid input untouched", 2, 50, 2, 50},
		{"limit at boundary", 1, 100, 1, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit := Normalize(tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestComposeDescriptor(t *testing.T) {
	d := Compose(Params{Page: 3, Limit: 10}, []string{"email"}, nil)
	assert.Equal(t, 20, d.Skip)
	assert.Equal(t, 10, d.Take)
	assert.Equal(t, "created_at DESC", d.Order)

	d = Compose(Params{Page: -5, Limit: 9999}, nil, nil)
	assert.Equal(t, 0, d.Skip)
	assert.Equal(t, 100, d.Take)

	d = Compose(Params{SortBy: "email", SortOrder: "asc"}, nil, nil)
	assert.Equal(t, "email ASC", d.Order)

	// Unknown direction falls back to DESC
	d = Compose(Params{SortBy: "email", SortOrder: "sideways"}, nil, nil)
	assert.Equal(t, "email DESC", d.Order)

	d = Compose(Params{Search: "  alice  "}, []string{"email", "name"}, nil)
	assert.Equal(t, "alice", d.Search)
	assert.Equal(t, []string{"email", "name"}, d.SearchFields)
}

func TestAllowedFiltersIgnoresUnknownKeys(t *testing.T) {
	values := url.Values{
		"status":   {"ACTIVE"},
		"password": {"sneaky"},
		"page":     {"2"},
	}

	filters := AllowedFilters(values, "status")

	assert.Equal(t, map[string]any{"status": "ACTIVE"}, filters)
}

func TestAllowedFiltersSkipsEmptyValues(t *testing.T) {
	values := url.Values{"status": {""}}

	filters := AllowedFilters(values, "status")

	assert.Empty(t, filters)
}

func TestNewMeta(t *testing.T) {
	tests := []struct {
		name        string
		page, limit int
		total       int64
		wantPages   int
		wantNext    bool
		wantPrev    bool
	}{
		{"last page", 3, 10, 25, 3, false, true},
		{"first of many", 1, 10, 25, 3, true, false},
		{"middle page", 2, 10, 25, 3, true, true},
		{"empty result", 1, 10, 0, 0, false, false},
		{"exact multiple", 3, 10, 30, 3, false, true},
		{"single page", 1, 10, 7, 1, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := NewMeta(tt.page, tt.limit, tt.total)
			assert.Equal(t, tt.total, meta.Total)
			assert.Equal(t, tt.wantPages, meta.TotalPages)
			assert.Equal(t, tt.wantNext, meta.HasNextPage)
			assert.Equal(t, tt.wantPrev, meta.HasPreviousPage)
		})
	}
}

func TestNewMetaNormalizesRawInput(t *testing.T) {
	meta := NewMeta(-1, 0, 5)
	assert.Equal(t, 1, meta.Page)
	assert.Equal(t, 10, meta.Limit)
	assert.Equal(t, 1, meta.TotalPages)
}
