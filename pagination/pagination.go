// Package pagination turns untrusted list parameters into a bounded,
// normalized query descriptor and builds the pagination metadata returned
// alongside list results.
package pagination

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	defaultSortBy = "created_at"
)

// Params carries the raw, untrusted list parameters from a request.
type Params struct {
	Page      int
	Limit     int
	Search    string
	SortBy    string
	SortOrder string
}

// ParseQuery extracts list parameters from the request query string.
// Invalid numbers fall back to defaults; range clamping happens in Compose.
func ParseQuery(c *gin.Context) Params {
	page, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(DefaultPage)))
	if err != nil {
		page = DefaultPage
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultLimit)))
	if err != nil {
		limit = DefaultLimit
	}

	return Params{
		Page:      page,
		Limit:     limit,
		Search:    c.Query("q"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}
}

// Descriptor is the normalized query: offset, bounded limit, order clause and
// the structured predicate inputs. It never represents an invalid query.
type Descriptor struct {
	Page  int
	Skip  int
	Take  int
	Order string

	Search       string
	SearchFields []string
	Filters      map[string]any
}

// Normalize clamps page and limit into their valid ranges. Out-of-range input
// is corrected, never rejected.
func Normalize(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// Compose builds a Descriptor from raw params. searchFields is the set of
// columns the free-text search may match against; filters is an already
// allow-listed set of equality predicates (see AllowedFilters).
func Compose(p Params, searchFields []string, filters map[string]any) Descriptor {
	page, limit := Normalize(p.Page, p.Limit)

	sortBy := p.SortBy
	if sortBy == "" {
		sortBy = defaultSortBy
	}
	// Direction is sanitized; the field is passed through verbatim and an
	// unknown column surfaces as a database error.
	direction := "DESC"
	if strings.EqualFold(p.SortOrder, "asc") {
		direction = "ASC"
	}

	return Descriptor{
		Page:         page,
		Skip:         (page - 1) * limit,
		Take:         limit,
		Order:        sortBy + " " + direction,
		Search:       strings.TrimSpace(p.Search),
		SearchFields: searchFields,
		Filters:      filters,
	}
}

// AllowedFilters picks equality filters from raw query values, keeping only
// the allow-listed keys. Unknown keys are ignored rather than forwarded to
// the database.
func AllowedFilters(values url.Values, allowed ...string) map[string]any {
	filters := make(map[string]any)
	for _, key := range allowed {
		if v := values.Get(key); v != "" {
			filters[key] = v
		}
	}
	return filters
}

// FilterScope applies only the predicate part of the descriptor. Used for
// counting totals with the same visibility as the page query.
func (d Descriptor) FilterScope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if d.Search != "" && len(d.SearchFields) > 0 {
			pattern := "%" + strings.ToLower(d.Search) + "%"
			clauses := make([]string, 0, len(d.SearchFields))
			args := make([]any, 0, len(d.SearchFields))
			for _, field := range d.SearchFields {
				clauses = append(clauses, "LOWER("+field+") LIKE ?")
				args = append(args, pattern)
			}
			db = db.Where(strings.Join(clauses, " OR "), args...)
		}

		for field, value := range d.Filters {
			db = db.Where(field+" = ?", value)
		}

		return db
	}
}

// Scope applies the full descriptor: predicate, order, offset and limit.
func (d Descriptor) Scope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return d.FilterScope()(db).Order(d.Order).Offset(d.Skip).Limit(d.Take)
	}
}

// Meta is the pagination metadata returned with every list response.
type Meta struct {
	Total           int64 `json:"total"`
	Page            int   `json:"page"`
	Limit           int   `json:"limit"`
	TotalPages      int   `json:"totalPages"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
}

// NewMeta computes pagination metadata for a total row count.
func NewMeta(page, limit int, total int64) Meta {
	page, limit = Normalize(page, limit)

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return Meta{
		Total:           total,
		Page:            page,
		Limit:           limit,
		TotalPages:      totalPages,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
}
