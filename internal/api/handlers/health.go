package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"catalog-api-go/internal/catalog"
	"catalog-api-go/internal/models"
)

// ReadinessChecker verifies the upstream PMS is reachable. The node map
// is the cheapest upstream-backed read and is usually cache-warm.
type ReadinessChecker interface {
	NodesMap(ctx context.Context) (map[int]catalog.Village, error)
}

// HealthHandler handles health and readiness checks
type HealthHandler struct {
	readiness ReadinessChecker
	logger    *zap.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(readiness ReadinessChecker, logger *zap.Logger) *HealthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthHandler{
		readiness: readiness,
		logger:    logger,
	}
}

// HandleHealth handles GET /api/v1/health (liveness probe).
// Returns 200 unconditionally: the process is alive. Liveness must not
// depend on the upstream PMS, otherwise a PMS outage cascades into
// restarts.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, models.HealthResponse{Status: "ok"})
}

// HandleReady handles GET /api/v1/ready (readiness probe).
// Only mark ready when reference data can be served.
func (h *HealthHandler) HandleReady(w http.ResponseWriter, r *http.Request) {
	if _, err := h.readiness.NodesMap(r.Context()); err != nil {
		h.logger.Error("readiness check failed: pms unavailable", zap.Error(err))
		respondWithError(w, http.StatusServiceUnavailable, "service unavailable")
		return
	}

	respondWithJSON(w, http.StatusOK, models.HealthResponse{Status: "ready"})
}
