package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"catalog-api-go/internal/catalog"
	"catalog-api-go/internal/models"
)

// VillageSource is the village lookup seam.
type VillageSource interface {
	Villages(ctx context.Context) ([]catalog.Village, error)
	Village(ctx context.Context, slug string) (*catalog.Village, error)
}

// VillageHandler handles village listing and lookup requests
type VillageHandler struct {
	villages VillageSource
	logger   *zap.Logger
}

// NewVillageHandler creates a new village handler
func NewVillageHandler(villages VillageSource, logger *zap.Logger) *VillageHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VillageHandler{
		villages: villages,
		logger:   logger,
	}
}

// HandleList handles GET /api/v1/villages
func (h *VillageHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	villages, err := h.villages.Villages(r.Context())
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, models.VillagesResponse{Villages: villages})
}

// HandleGet handles GET /api/v1/villages/{slug}
func (h *VillageHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	village, err := h.villages.Village(r.Context(), slug)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	if village == nil {
		respondWithError(w, http.StatusNotFound, "village not found")
		return
	}

	respondWithJSON(w, http.StatusOK, village)
}
