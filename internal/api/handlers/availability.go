package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"catalog-api-go/internal/availability"
	"catalog-api-go/internal/catalog"
	"catalog-api-go/internal/models"
)

const dateLayout = "2006-01-02"

// Resolver is the availability/rates seam handlers call into.
type Resolver interface {
	Availability(ctx context.Context, propertyID, start, end string) ([]availability.Day, error)
	Quote(ctx context.Context, propertyID, checkIn, checkOut string, guests int) (*availability.Quote, error)
}

// AvailabilityHandler handles availability and rate quote requests
type AvailabilityHandler struct {
	resolver Resolver
	logger   *zap.Logger
}

// NewAvailabilityHandler creates a new availability handler
func NewAvailabilityHandler(resolver Resolver, logger *zap.Logger) *AvailabilityHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AvailabilityHandler{
		resolver: resolver,
		logger:   logger,
	}
}

// HandleAvailability handles GET /api/v1/properties/{ref}/availability
func (h *AvailabilityHandler) HandleAvailability(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "ref")
	query := r.URL.Query()

	start, end := query.Get("start"), query.Get("end")
	if !validDate(start) || !validDate(end) {
		respondWithError(w, http.StatusBadRequest, "start and end are required as YYYY-MM-DD")
		return
	}
	if end < start {
		respondWithError(w, http.StatusBadRequest, "end must not be before start")
		return
	}

	propertyID, ok := normalizeRef(ref)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "invalid property id")
		return
	}

	days, err := h.resolver.Availability(r.Context(), propertyID, start, end)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, models.AvailabilityResponse{
		PropertyID: propertyID,
		Days:       days,
	})
}

// HandleRates handles GET /api/v1/properties/{ref}/rates
func (h *AvailabilityHandler) HandleRates(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "ref")
	query := r.URL.Query()

	checkIn, checkOut := query.Get("checkIn"), query.Get("checkOut")
	if !validDate(checkIn) || !validDate(checkOut) {
		respondWithError(w, http.StatusBadRequest, "checkIn and checkOut are required as YYYY-MM-DD")
		return
	}
	if checkOut <= checkIn {
		respondWithError(w, http.StatusBadRequest, "checkOut must be after checkIn")
		return
	}

	guests := positiveOrDefault(query.Get("guests"), 1)

	propertyID, ok := normalizeRef(ref)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "invalid property id")
		return
	}

	quote, err := h.resolver.Quote(r.Context(), propertyID, checkIn, checkOut, guests)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	// A nil quote means the stay is unbookable, not that anything failed.
	respondWithJSON(w, http.StatusOK, models.QuoteResponse{
		PropertyID: propertyID,
		Bookable:   quote != nil,
		Quote:      quote,
	})
}

func validDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

// normalizeRef turns a prefixed or bare upstream property reference into
// the prefixed form the resolver expects.
func normalizeRef(ref string) (string, bool) {
	id, ok := catalog.UnitID(ref)
	if !ok {
		return "", false
	}
	return catalog.PropertyID(id), true
}
