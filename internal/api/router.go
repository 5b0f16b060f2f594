// Package api wires the catalog HTTP surface.
package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"catalog-api-go/internal/api/handlers"
	"catalog-api-go/internal/api/middleware"
	"catalog-api-go/internal/availability"
	"catalog-api-go/internal/catalog"
	"catalog-api-go/internal/config"
	"catalog-api-go/internal/refdata"
	"catalog-api-go/internal/search"
)

// NewRouter creates a new Chi router with all routes and middleware configured
func NewRouter(
	service *catalog.Service,
	engine *search.Engine,
	resolver *availability.Resolver,
	nodes *refdata.Cache,
	cfg *config.Config,
	logger *zap.Logger,
) chi.Router {
	r := chi.NewRouter()

	// Apply middleware stack
	r.Use(middleware.Recovery(logger))
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// Initialize handlers
	propertyHandler := handlers.NewPropertyHandler(service, engine, cfg.FeaturedLimit, cfg.SimilarLimit, logger)
	searchHandler := handlers.NewSearchHandler(engine, logger)
	villageHandler := handlers.NewVillageHandler(service, logger)
	availabilityHandler := handlers.NewAvailabilityHandler(resolver, logger)
	healthHandler := handlers.NewHealthHandler(nodes, logger)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/properties", func(r chi.Router) {
			r.Get("/", propertyHandler.HandleList)
			r.Get("/search", searchHandler.Handle)
			r.Get("/featured", propertyHandler.HandleFeatured)
			r.Get("/{ref}", propertyHandler.HandleGet)
			r.Get("/{ref}/similar", propertyHandler.HandleSimilar)
			r.Get("/{ref}/availability", availabilityHandler.HandleAvailability)
			r.Get("/{ref}/rates", availabilityHandler.HandleRates)
		})

		r.Get("/villages", villageHandler.HandleList)
		r.Get("/villages/{slug}", villageHandler.HandleGet)

		// Health and readiness endpoints
		r.Get("/health", healthHandler.HandleHealth)
		r.Get("/ready", healthHandler.HandleReady)

		// Metrics endpoint
		r.Get("/metrics", promhttp.Handler().ServeHTTP)
	})

	return r
}
