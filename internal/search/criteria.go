package search

import (
	"fmt"
	"strings"

	"catalog-api-go/internal/catalog"
)

// SortField is the closed set of sortable dimensions. Mapping fields to
// comparators here means an unsupported sort is rejected at parse time
// instead of silently leaving results unsorted.
type SortField int

const (
	SortNone SortField = iota
	SortPrice
	SortBedrooms
	SortName
)

// SortOrder is the sort direction. Ascending is the default.
type SortOrder int

const (
	OrderAsc SortOrder = iota
	OrderDesc
)

// ParseSortField parses an API sort field name. Empty means unsorted.
func ParseSortField(s string) (SortField, error) {
	switch strings.ToLower(s) {
	case "":
		return SortNone, nil
	case "price":
		return SortPrice, nil
	case "bedrooms":
		return SortBedrooms, nil
	case "name":
		return SortName, nil
	default:
		return SortNone, fmt.Errorf("unsupported sort field: %q", s)
	}
}

// ParseSortOrder parses an API sort order. Empty means ascending.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(s) {
	case "", "asc":
		return OrderAsc, nil
	case "desc":
		return OrderDesc, nil
	default:
		return OrderAsc, fmt.Errorf("unsupported sort order: %q", s)
	}
}

// comparators maps each sort field to its ascending less function.
var comparators = map[SortField]func(a, b catalog.Property) bool{
	SortPrice: func(a, b catalog.Property) bool {
		return a.BaseRate < b.BaseRate
	},
	SortBedrooms: func(a, b catalog.Property) bool {
		return a.Bedrooms < b.Bedrooms
	},
	SortName: func(a, b catalog.Property) bool {
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	},
}

// Criteria is the full set of search constraints. Nil or zero-valued
// optional fields mean "no constraint on that dimension": an absent price
// floor is distinct from a price floor of 0.
type Criteria struct {
	Query       string
	VillageSlug string

	Guests      *int
	Bedrooms    *int
	BedroomsMin *int
	BedroomsMax *int

	PriceMin *float64
	PriceMax *float64

	PetFriendly *bool
	Amenities   []string

	SortBy    SortField
	SortOrder SortOrder

	Page     int
	PageSize int
}

// textQuery returns the free-text query, treating blank or
// whitespace-only input as absent.
func (c Criteria) textQuery() string {
	return strings.TrimSpace(c.Query)
}

// hasEngineFilters reports whether any criterion must be applied
// engine-side because the PMS cannot evaluate it.
func (c Criteria) hasEngineFilters() bool {
	return c.VillageSlug != "" ||
		c.BedroomsMin != nil ||
		c.BedroomsMax != nil ||
		c.textQuery() != "" ||
		c.PriceMin != nil ||
		c.PriceMax != nil ||
		len(c.Amenities) > 0
}
