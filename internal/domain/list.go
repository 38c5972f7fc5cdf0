package domain

import (
	"net/url"
	"strconv"
)

// Pagination constants
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Sort orders supported by list views.
const (
	SortName    = "name"
	SortPopular = "popular"
)

// ListQuery carries the search, filter and paging options of a list view.
type ListQuery struct {
	Search    string
	Status    string
	Kind      string
	OwnerID   string
	Favorites bool
	Sort      string
	Page      int
	PerPage   int
}

// Normalize clamps paging values and drops unknown sort orders.
func (q ListQuery) Normalize() ListQuery {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.PerPage < 1 {
		q.PerPage = DefaultPageSize
	}
	if q.PerPage > MaxPageSize {
		q.PerPage = MaxPageSize
	}
	if q.Sort != SortName && q.Sort != SortPopular {
		q.Sort = SortName
	}
	return q
}

// Values encodes the query as URL parameters for the remote API.
// Zero-valued filters are omitted.
func (q ListQuery) Values() url.Values {
	q = q.Normalize()
	v := url.Values{}
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if q.Kind != "" {
		v.Set("kind", q.Kind)
	}
	if q.OwnerID != "" {
		v.Set("owner", q.OwnerID)
	}
	if q.Favorites {
		v.Set("favorites", "true")
	}
	v.Set("sort", q.Sort)
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("per_page", strconv.Itoa(q.PerPage))
	return v
}

// Page is one page of a list result.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// Pages returns the number of pages needed for total items at perPage.
func Pages(total, perPage int) int {
	if perPage < 1 || total < 1 {
		return 1
	}
	return (total + perPage - 1) / perPage
}
