package handlers

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"catalog-api-go/internal/search"
)

// Engine is the search seam handlers call into.
type Engine interface {
	Search(ctx context.Context, criteria search.Criteria) (*search.Result, error)
}

// SearchHandler handles property search requests
type SearchHandler struct {
	engine Engine
	logger *zap.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(engine Engine, logger *zap.Logger) *SearchHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SearchHandler{
		engine: engine,
		logger: logger,
	}
}

// Handle handles GET /api/v1/properties/search
func (h *SearchHandler) Handle(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseCriteria(r.URL.Query())
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.engine.Search(r.Context(), criteria)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// parseCriteria builds search criteria from query parameters. Absent
// parameters stay nil: an absent constraint is not a zero constraint.
func parseCriteria(query url.Values) (search.Criteria, error) {
	criteria := search.Criteria{
		Query:       query.Get("q"),
		VillageSlug: query.Get("village"),
	}

	var err error
	if criteria.Guests, err = optionalInt(query, "guests"); err != nil {
		return criteria, err
	}
	if criteria.Bedrooms, err = optionalInt(query, "bedrooms"); err != nil {
		return criteria, err
	}
	if criteria.BedroomsMin, err = optionalInt(query, "bedroomsMin"); err != nil {
		return criteria, err
	}
	if criteria.BedroomsMax, err = optionalInt(query, "bedroomsMax"); err != nil {
		return criteria, err
	}
	if criteria.PriceMin, err = optionalFloat(query, "priceMin"); err != nil {
		return criteria, err
	}
	if criteria.PriceMax, err = optionalFloat(query, "priceMax"); err != nil {
		return criteria, err
	}
	if criteria.PetFriendly, err = optionalBool(query, "petFriendly"); err != nil {
		return criteria, err
	}

	if amenities := query.Get("amenities"); amenities != "" {
		for _, amenity := range strings.Split(amenities, ",") {
			if amenity = strings.TrimSpace(amenity); amenity != "" {
				criteria.Amenities = append(criteria.Amenities, amenity)
			}
		}
	}

	if criteria.SortBy, err = search.ParseSortField(query.Get("sortBy")); err != nil {
		return criteria, err
	}
	if criteria.SortOrder, err = search.ParseSortOrder(query.Get("sortOrder")); err != nil {
		return criteria, err
	}

	criteria.Page = positiveOrDefault(query.Get("page"), 1)
	criteria.PageSize = positiveOrDefault(query.Get("pageSize"), 0)

	return criteria, nil
}

func optionalInt(query url.Values, key string) (*int, error) {
	raw := query.Get(key)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, &paramError{key: key, value: raw}
	}
	return &value, nil
}

func optionalFloat(query url.Values, key string) (*float64, error) {
	raw := query.Get(key)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, &paramError{key: key, value: raw}
	}
	return &value, nil
}

func optionalBool(query url.Values, key string) (*bool, error) {
	raw := query.Get(key)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, &paramError{key: key, value: raw}
	}
	return &value, nil
}

// positiveOrDefault parses a positive integer, falling back on anything
// missing, malformed or non-positive.
func positiveOrDefault(raw string, defaultVal int) int {
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return defaultVal
	}
	return value
}

type paramError struct {
	key   string
	value string
}

func (e *paramError) Error() string {
	return "invalid value for " + e.key + ": " + strconv.Quote(e.value)
}
