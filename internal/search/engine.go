// Package search applies the catalog filter pipeline, sorting, faceting
// and pagination over mapped properties.
package search

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"catalog-api-go/internal/catalog"
	"catalog-api-go/internal/pms"
)

// UnitSearcher is the PMS seam the engine fetches raw units through.
type UnitSearcher interface {
	SearchUnits(ctx context.Context, params pms.SearchParams, page, pageSize int) ([]pms.Unit, int, error)
}

// NodeSource resolves node ids to villages.
type NodeSource interface {
	NodesMap(ctx context.Context) (map[int]catalog.Village, error)
}

// Result is one page of search results with its facet summary.
type Result struct {
	Properties  []catalog.Property `json:"properties"`
	Total       int                `json:"total"`
	Page        int                `json:"page"`
	PageSize    int                `json:"pageSize"`
	HasNextPage bool               `json:"hasNextPage"`
	Facets      FacetSummary       `json:"facets"`
}

// Engine executes catalog searches against the PMS.
type Engine struct {
	units           UnitSearcher
	nodes           NodeSource
	logger          *zap.Logger
	defaultPageSize int
}

// NewEngine creates a search engine.
func NewEngine(units UnitSearcher, nodes NodeSource, defaultPageSize int, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if defaultPageSize <= 0 {
		defaultPageSize = 20
	}
	return &Engine{
		units:           units,
		nodes:           nodes,
		logger:          logger,
		defaultPageSize: defaultPageSize,
	}
}

// Search runs the full pipeline: push the PMS-native criteria upstream,
// map the returned page, apply the engine-side filters in fixed order,
// sort, facet, paginate.
//
// Engine-side filters run over the single upstream page only. A page that
// crosses a filtered boundary therefore undercounts matches; this follows
// the upstream-page-then-filter model rather than over-fetching to
// compensate.
func (e *Engine) Search(ctx context.Context, criteria Criteria) (*Result, error) {
	page := criteria.Page
	if page < 1 {
		page = 1
	}
	pageSize := criteria.PageSize
	if pageSize <= 0 {
		pageSize = e.defaultPageSize
	}

	params := pms.SearchParams{
		Bedrooms:     criteria.Bedrooms,
		MinOccupancy: criteria.Guests,
		PetFriendly:  criteria.PetFriendly,
	}

	units, upstreamTotal, err := e.units.SearchUnits(ctx, params, page, pageSize)
	if err != nil {
		return nil, err
	}

	nodes, err := e.nodes.NodesMap(ctx)
	if err != nil {
		return nil, err
	}

	properties := catalog.MapUnits(units, nodes)
	filtered := applyFilters(properties, criteria)

	if criteria.SortBy != SortNone {
		sortProperties(filtered, criteria.SortBy, criteria.SortOrder)
	}

	facets := computeFacets(filtered)

	// With engine-side filters active the upstream total no longer
	// describes the filtered set, so report the filtered count.
	total := upstreamTotal
	if criteria.hasEngineFilters() {
		total = len(filtered)
	}

	return &Result{
		Properties:  filtered,
		Total:       total,
		Page:        page,
		PageSize:    pageSize,
		HasNextPage: page*pageSize < total,
		Facets:      facets,
	}, nil
}

// applyFilters runs the engine-side predicates in their fixed order:
// village, bedroom range, free text, price range, then amenities. The
// PMS-native criteria (exact bedrooms, guests, pet-friendly) were already
// applied upstream. min > max ranges simply produce an empty set.
func applyFilters(properties []catalog.Property, criteria Criteria) []catalog.Property {
	filtered := make([]catalog.Property, 0, len(properties))
	query := strings.ToLower(criteria.textQuery())

	for _, p := range properties {
		if criteria.VillageSlug != "" && p.Village.Slug != criteria.VillageSlug {
			continue
		}
		if criteria.BedroomsMin != nil && p.Bedrooms < *criteria.BedroomsMin {
			continue
		}
		if criteria.BedroomsMax != nil && p.Bedrooms > *criteria.BedroomsMax {
			continue
		}
		if query != "" && !matchesQuery(p, query) {
			continue
		}
		if criteria.PriceMin != nil && p.BaseRate < *criteria.PriceMin {
			continue
		}
		if criteria.PriceMax != nil && p.BaseRate > *criteria.PriceMax {
			continue
		}
		if !hasAmenities(p, criteria.Amenities) {
			continue
		}
		filtered = append(filtered, p)
	}

	return filtered
}

// matchesQuery reports whether the lowercased query is a substring of the
// property name, headline or village name.
func matchesQuery(p catalog.Property, query string) bool {
	return strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.Headline), query) ||
		strings.Contains(strings.ToLower(p.Village.Name), query)
}

// hasAmenities reports whether the property carries every wanted amenity.
func hasAmenities(p catalog.Property, wanted []string) bool {
	for _, amenity := range wanted {
		found := false
		for _, have := range p.Amenities {
			if strings.EqualFold(have, amenity) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// sortProperties stable-sorts in place by the field's comparator,
// inverted for descending order.
func sortProperties(properties []catalog.Property, field SortField, order SortOrder) {
	less, ok := comparators[field]
	if !ok {
		return
	}
	sort.SliceStable(properties, func(i, j int) bool {
		if order == OrderDesc {
			return less(properties[j], properties[i])
		}
		return less(properties[i], properties[j])
	})
}
