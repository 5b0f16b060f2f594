// Package catalog defines the canonical catalog entities and the mapping
// from raw PMS inventory into them.
package catalog

import (
	"strconv"
	"strings"

	"catalog-api-go/internal/pms"
)

// IDPrefix distinguishes catalog property ids from raw PMS unit ids.
const IDPrefix = "prop-"

// Village is the catalog view of a PMS node: a named geographic
// subdivision. Read-only from the engine's perspective.
type Village struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Slug        string `json:"slug"`
}

// VillageSummary is the subset of Village embedded in a Property.
type VillageSummary struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// UnknownVillage is the sentinel embedded in properties whose node id
// cannot be resolved. Mapping never fails on an unresolvable location.
var UnknownVillage = VillageSummary{Name: "Unknown", Slug: "unknown"}

// Property is the canonical catalog entity. It is constructed fresh on
// every mapping call and never persisted or mutated afterwards.
type Property struct {
	ID          string         `json:"id"`
	Slug        string         `json:"slug"`
	Name        string         `json:"name"`
	Headline    string         `json:"headline,omitempty"`
	Bedrooms    int            `json:"bedrooms"`
	Bathrooms   float64        `json:"bathrooms"`
	Sleeps      int            `json:"sleeps"`
	PetFriendly bool           `json:"petFriendly"`
	BaseRate    float64        `json:"baseRate"`
	Amenities   []string       `json:"amenities,omitempty"`
	Images      []pms.Image    `json:"images,omitempty"`
	Village     VillageSummary `json:"village"`
}

// PropertyID builds the prefixed catalog id for a raw unit id.
func PropertyID(unitID int) string {
	return IDPrefix + strconv.Itoa(unitID)
}

// UnitID extracts the raw PMS unit id from a property reference. Both the
// prefixed form and a bare numeric upstream id are accepted.
func UnitID(ref string) (int, bool) {
	id, err := strconv.Atoi(strings.TrimPrefix(ref, IDPrefix))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// MapNode converts a raw PMS node into a Village.
func MapNode(node pms.Node) Village {
	return Village{
		ID:          node.ID,
		Name:        node.Name,
		Description: node.Description,
		Slug:        Slugify(node.Name),
	}
}

// MapUnit converts a raw inventory unit and its resolved village into a
// Property. Pass resolved=false when the unit's node id is not in the
// reference data; the property is still returned, carrying the Unknown
// village sentinel. No network or cache access happens here.
func MapUnit(unit pms.Unit, village Village, resolved bool) Property {
	summary := UnknownVillage
	if resolved {
		summary = VillageSummary{Name: village.Name, Slug: village.Slug}
	}

	return Property{
		ID:          PropertyID(unit.ID),
		Slug:        Slugify(unit.Name),
		Name:        unit.Name,
		Headline:    unit.Headline,
		Bedrooms:    unit.Bedrooms,
		Bathrooms:   unit.Bathrooms,
		Sleeps:      unit.MaxOccupancy,
		PetFriendly: unit.PetFriendly,
		BaseRate:    unit.BaseRate,
		Amenities:   unit.Amenities,
		Images:      unit.Images,
		Village:     summary,
	}
}

// MapUnits maps a page of units, resolving villages through the given
// node map.
func MapUnits(units []pms.Unit, nodes map[int]Village) []Property {
	properties := make([]Property, 0, len(units))
	for _, unit := range units {
		village, ok := nodes[unit.NodeID]
		properties = append(properties, MapUnit(unit, village, ok))
	}
	return properties
}
