package search

import "catalog-api-go/internal/catalog"

// FacetSummary counts matching properties per filterable dimension. It is
// computed from the filtered set before pagination, so for fixed criteria
// the counts do not move as the caller pages through results.
type FacetSummary struct {
	Bedrooms    map[int]int    `json:"bedrooms"`
	Villages    map[string]int `json:"villages"`
	PetFriendly map[string]int `json:"petFriendly"`
}

// computeFacets builds the facet summary over the filtered set. Zero
// matches yields empty (not nil) facet maps.
func computeFacets(properties []catalog.Property) FacetSummary {
	facets := FacetSummary{
		Bedrooms:    make(map[int]int),
		Villages:    make(map[string]int),
		PetFriendly: make(map[string]int),
	}

	for _, p := range properties {
		facets.Bedrooms[p.Bedrooms]++
		facets.Villages[p.Village.Slug]++
		if p.PetFriendly {
			facets.PetFriendly["yes"]++
		} else {
			facets.PetFriendly["no"]++
		}
	}

	return facets
}
