package pagination

import (
	"errors"
	"fmt"
	"strings"
)

// Limits and defaults for list flags.
const (
	DefaultPerPage   = 30
	MinPerPage       = 1
	MaxPerPage       = 100
	DefaultSortOrder = "desc"
	SortOrderAsc     = "asc"
	SortOrderDesc    = "desc"

	// sortPartsMax is the maximum number of parts in a sort string (field:order).
	sortPartsMax = 2
)

// Common validation errors.
var (
	ErrInvalidLimit      = errors.New("limit cannot be negative")
	ErrInvalidPerPage    = fmt.Errorf("per-page must be between %d and %d", MinPerPage, MaxPerPage)
	ErrInvalidSortOrder  = errors.New("sort order must be 'asc' or 'desc'")
	ErrInvalidSortFormat = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'stars:desc')")
	ErrEmptySortField    = errors.New("sort field cannot be empty")
)

// Params holds the result shaping flags of a list command.
type Params struct {
	// PerPage is the page size requested from the API.
	PerPage int

	// Limit caps the number of rendered results after filtering (0 = all).
	Limit int

	// SortField is the client-side sort field, empty for API order.
	SortField string

	// SortOrder is "asc" or "desc".
	SortOrder string
}

// NewParams returns Params with defaults.
func NewParams() *Params {
	return &Params{
		PerPage:   DefaultPerPage,
		SortOrder: DefaultSortOrder,
	}
}

// Validate checks bounds (value receiver).
func (p Params) Validate() error {
	if p.Limit < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidLimit, p.Limit)
	}
	if p.PerPage < MinPerPage || p.PerPage > MaxPerPage {
		return fmt.Errorf("%w: got %d", ErrInvalidPerPage, p.PerPage)
	}
	return nil
}

// HasSort reports whether a client-side sort was requested.
func (p Params) HasSort() bool {
	return p.SortField != ""
}

// ParseSort parses a sort string in the format "field" or "field:order".
// Examples: "stars", "updated:desc", "name:asc". The order defaults to desc.
// An empty string means no client-side sort.
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func ParseSort(sortStr string) (field, order string, err error) {
	if sortStr == "" {
		return "", DefaultSortOrder, nil
	}

	parts := strings.Split(sortStr, ":")
	switch len(parts) {
	case 1:
		field = strings.TrimSpace(parts[0])
		order = DefaultSortOrder
	case sortPartsMax:
		field = strings.TrimSpace(parts[0])
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	default:
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortFormat, sortStr)
	}

	if field == "" {
		return "", "", ErrEmptySortField
	}

	if order != SortOrderAsc && order != SortOrderDesc {
		return "", "", fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
	}

	return strings.ToLower(field), order, nil
}
