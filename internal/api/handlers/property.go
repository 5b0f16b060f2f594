package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"catalog-api-go/internal/catalog"
	"catalog-api-go/internal/models"
	"catalog-api-go/internal/search"
)

// CatalogService is the catalog seam handlers call into.
type CatalogService interface {
	Property(ctx context.Context, ref string) (*catalog.Property, error)
	Featured(ctx context.Context, limit int) ([]catalog.Property, error)
	Similar(ctx context.Context, ref string, limit int) ([]catalog.Property, error)
}

// PropertyHandler handles property lookup and listing requests
type PropertyHandler struct {
	catalog       CatalogService
	engine        Engine
	featuredLimit int
	similarLimit  int
	logger        *zap.Logger
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(service CatalogService, engine Engine, featuredLimit, similarLimit int, logger *zap.Logger) *PropertyHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PropertyHandler{
		catalog:       service,
		engine:        engine,
		featuredLimit: featuredLimit,
		similarLimit:  similarLimit,
		logger:        logger,
	}
}

// HandleList handles GET /api/v1/properties
func (h *PropertyHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	petFriendly, err := optionalBool(query, "petFriendly")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	criteria := search.Criteria{
		VillageSlug: query.Get("village"),
		PetFriendly: petFriendly,
		Page:        positiveOrDefault(query.Get("page"), 1),
		PageSize:    positiveOrDefault(query.Get("pageSize"), 0),
	}

	result, err := h.engine.Search(r.Context(), criteria)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, models.PropertiesResponse{
		Properties:  result.Properties,
		Total:       result.Total,
		Page:        result.Page,
		PageSize:    result.PageSize,
		HasNextPage: result.HasNextPage,
	})
}

// HandleGet handles GET /api/v1/properties/{ref}
func (h *PropertyHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "ref")

	property, err := h.catalog.Property(r.Context(), ref)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	if property == nil {
		respondWithError(w, http.StatusNotFound, "property not found")
		return
	}

	respondWithJSON(w, http.StatusOK, property)
}

// HandleFeatured handles GET /api/v1/properties/featured
func (h *PropertyHandler) HandleFeatured(w http.ResponseWriter, r *http.Request) {
	limit := positiveOrDefault(r.URL.Query().Get("limit"), h.featuredLimit)

	properties, err := h.catalog.Featured(r.Context(), limit)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, models.FeaturedResponse{Properties: properties})
}

// HandleSimilar handles GET /api/v1/properties/{ref}/similar
func (h *PropertyHandler) HandleSimilar(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "ref")
	limit := positiveOrDefault(r.URL.Query().Get("limit"), h.similarLimit)

	properties, err := h.catalog.Similar(r.Context(), ref, limit)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	if properties == nil {
		respondWithError(w, http.StatusNotFound, "property not found")
		return
	}

	respondWithJSON(w, http.StatusOK, models.SimilarResponse{Properties: properties})
}
