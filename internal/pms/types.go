package pms

// Unit is the PMS representation of a rentable property.
type Unit struct {
	ID           int      `json:"id"`
	NodeID       int      `json:"nodeId"`
	Name         string   `json:"name"`
	Headline     string   `json:"shortDescription"`
	Bedrooms     int      `json:"bedrooms"`
	Bathrooms    float64  `json:"bathrooms"`
	MaxOccupancy int      `json:"maxOccupancy"`
	PetFriendly  bool     `json:"petsFriendly"`
	BaseRate     float64  `json:"baseRate"`
	Amenities    []string `json:"amenities"`
	Images       []Image  `json:"images"`
}

// Image is a single unit photo.
type Image struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

// Node is a PMS geographic subdivision record.
type Node struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// AvailabilityDay is one date in a unit's availability calendar.
// Check-in/check-out flags are pointers because the PMS omits them for
// dates where they default to allowed.
type AvailabilityDay struct {
	Date       string  `json:"date"`
	Available  bool    `json:"available"`
	Rate       float64 `json:"rate"`
	MinStay    int     `json:"minStay"`
	CheckInOK  *bool   `json:"checkinAvailable,omitempty"`
	CheckOutOK *bool   `json:"checkoutAvailable,omitempty"`
}

// Fee is one itemized charge on a rate quote.
type Fee struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Type   string  `json:"type"`
}

// RateQuote is a priced stay as reported by the PMS. An empty quotes list
// from the upstream means no combinable rate exists for the stay.
type RateQuote struct {
	BaseRate float64 `json:"baseRate"`
	Total    float64 `json:"total"`
	Taxes    float64 `json:"taxes"`
	Fees     []Fee   `json:"fees"`
	MinStay  int     `json:"minStay"`
}

// SearchParams is the subset of catalog criteria the PMS supports
// natively. Nil fields are unconstrained.
type SearchParams struct {
	Bedrooms     *int
	MinOccupancy *int
	PetFriendly  *bool
}

type unitsResponse struct {
	Units []Unit `json:"units"`
	Total int    `json:"total"`
}

type nodesResponse struct {
	Nodes []Node `json:"nodes"`
}

type imagesResponse struct {
	Images []Image `json:"images"`
}

type availabilityResponse struct {
	Days []AvailabilityDay `json:"days"`
}

type ratesResponse struct {
	Quotes []RateQuote `json:"quotes"`
}
