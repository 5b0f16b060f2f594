package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"go.uber.org/zap"

	"catalog-api-go/internal/models"
	"catalog-api-go/internal/pms"
)

// respondWithJSON sends a JSON response
func respondWithJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("ERROR: failed to encode JSON response: %v", err)
	}
}

// respondWithError sends an error JSON response
func respondWithError(w http.ResponseWriter, status int, message string) {
	respondWithJSON(w, status, models.ErrorResponse{Error: message})
}

// respondWithServiceError maps engine/service failures to HTTP statuses:
// upstream PMS failures become 502 (surfaced, never swallowed), anything
// else is a 500.
func respondWithServiceError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var upstreamErr *pms.UpstreamError
	if errors.As(err, &upstreamErr) {
		logger.Error("upstream PMS error",
			zap.Int("upstream_status", upstreamErr.StatusCode),
			zap.Error(err),
		)
		respondWithError(w, http.StatusBadGateway, "upstream property system error")
		return
	}

	logger.Error("request failed", zap.Error(err))
	respondWithError(w, http.StatusInternalServerError, "internal server error")
}
