// Package pagination implements the page/limit query shape shared by every
// list endpoint: parse user input into a window, then wrap the queried slice
// together with the page count.
package pagination

import (
	"fmt"
	"strconv"

	"github.com/tahmid42/playtube/backend/internal/models"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Params is a parsed, validated page window plus sort order.
type Params struct {
	Page   int64
	Limit  int64
	SortBy string
	Desc   bool
}

// Parse coerces raw query values into Params. A missing or malformed page
// falls back to 1; a missing limit falls back to DefaultLimit. An explicitly
// non-positive or non-numeric limit is rejected, and anything above MaxLimit
// is clamped. Default sort is descending creation time.
func Parse(pageStr, limitStr, sortBy, sortType string) (Params, error) {
	page, err := strconv.ParseInt(pageStr, 10, 64)
	if err != nil || page < 1 {
		page = 1
	}

	limit := int64(DefaultLimit)
	if limitStr != "" {
		limit, err = strconv.ParseInt(limitStr, 10, 64)
		if err != nil || limit < 1 {
			return Params{}, fmt.Errorf("%w: limit must be a positive integer", models.ErrInvalidArgument)
		}
		if limit > MaxLimit {
			limit = MaxLimit
		}
	}

	if sortBy == "" {
		sortBy = "created_at"
	}

	return Params{
		Page:   page,
		Limit:  limit,
		SortBy: sortBy,
		Desc:   sortType != "asc",
	}, nil
}

// Skip returns the window offset for the storage query.
func (p Params) Skip() int64 {
	return (p.Page - 1) * p.Limit
}

// Window is the result shape of every list endpoint.
type Window[T any] struct {
	Items      []T   `json:"items"`
	Page       int64 `json:"page"`
	TotalPages int64 `json:"total_pages"`
	TotalCount int64 `json:"total_count"`
}

// NewWindow wraps one page of items. Pages past the end of the collection are
// valid and simply carry no items.
func NewWindow[T any](items []T, p Params, total int64) (Window[T], error) {
	if p.Limit < 1 {
		return Window[T]{}, fmt.Errorf("%w: page size must be positive", models.ErrInvalidArgument)
	}
	if items == nil {
		items = []T{}
	}
	return Window[T]{
		Items:      items,
		Page:       p.Page,
		TotalPages: (total + p.Limit - 1) / p.Limit,
		TotalCount: total,
	}, nil
}
