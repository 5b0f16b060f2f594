// Package models defines the request/response shapes of the catalog API.
package models

import (
	"catalog-api-go/internal/availability"
	"catalog-api-go/internal/catalog"
)

// ErrorResponse is the JSON body for all error statuses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse reports liveness/readiness status.
type HealthResponse struct {
	Status string `json:"status"`
}

// PropertiesResponse is a paginated property listing.
type PropertiesResponse struct {
	Properties  []catalog.Property `json:"properties"`
	Total       int                `json:"total"`
	Page        int                `json:"page"`
	PageSize    int                `json:"pageSize"`
	HasNextPage bool               `json:"hasNextPage"`
}

// FeaturedResponse is an unpaginated grid of featured properties.
type FeaturedResponse struct {
	Properties []catalog.Property `json:"properties"`
}

// SimilarResponse lists properties similar to a source property.
type SimilarResponse struct {
	Properties []catalog.Property `json:"properties"`
}

// VillagesResponse lists all villages.
type VillagesResponse struct {
	Villages []catalog.Village `json:"villages"`
}

// AvailabilityResponse is a property's per-date availability window.
type AvailabilityResponse struct {
	PropertyID string             `json:"propertyId"`
	Days       []availability.Day `json:"days"`
}

// QuoteResponse is a rate quote for a stay. Bookable is false and Quote
// null when the upstream reports no combinable rate.
type QuoteResponse struct {
	PropertyID string              `json:"propertyId"`
	Bookable   bool                `json:"bookable"`
	Quote      *availability.Quote `json:"quote"`
}
