// Package availability resolves per-stay availability calendars and rate
// quotes for catalog properties.
package availability

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"catalog-api-go/internal/catalog"
	"catalog-api-go/internal/pms"
)

// RateFetcher is the upstream seam the resolver reads through.
type RateFetcher interface {
	FetchAvailability(ctx context.Context, id int, start, end string) ([]pms.AvailabilityDay, error)
	FetchRates(ctx context.Context, id int, checkIn, checkOut string, guests int) ([]pms.RateQuote, error)
}

// Day is one date in a property's availability window. Check-in and
// check-out permissions default to allowed when the PMS omits them.
type Day struct {
	Date       string  `json:"date"`
	Available  bool    `json:"available"`
	Rate       float64 `json:"rate"`
	MinStay    int     `json:"minStay"`
	CheckInOK  bool    `json:"checkInOk"`
	CheckOutOK bool    `json:"checkOutOk"`
}

// Quote is a priced stay. Minimum stay is surfaced as data; enforcing it
// against a chosen date range is the booking UI's policy, not this
// package's.
type Quote struct {
	BaseRate float64   `json:"baseRate"`
	Total    float64   `json:"total"`
	Taxes    float64   `json:"taxes"`
	Fees     []pms.Fee `json:"fees"`
	MinStay  int       `json:"minStay"`
}

// Resolver answers availability and rate queries. Quotes are resolved per
// request and never cached: prices are time-sensitive.
type Resolver struct {
	pms    RateFetcher
	logger *zap.Logger
}

// NewResolver creates an availability resolver.
func NewResolver(client RateFetcher, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		pms:    client,
		logger: logger,
	}
}

// Availability returns one Day per PMS-reported date in [start, end]. A
// range the PMS reports nothing for yields an empty slice, not an error.
func (r *Resolver) Availability(ctx context.Context, propertyID, start, end string) ([]Day, error) {
	unitID, ok := catalog.UnitID(propertyID)
	if !ok {
		return nil, fmt.Errorf("invalid property id: %q", propertyID)
	}

	rawDays, err := r.pms.FetchAvailability(ctx, unitID, start, end)
	if err != nil {
		return nil, err
	}

	days := make([]Day, 0, len(rawDays))
	for _, raw := range rawDays {
		days = append(days, Day{
			Date:       raw.Date,
			Available:  raw.Available,
			Rate:       raw.Rate,
			MinStay:    raw.MinStay,
			CheckInOK:  flagOrTrue(raw.CheckInOK),
			CheckOutOK: flagOrTrue(raw.CheckOutOK),
		})
	}
	return days, nil
}

// Quote prices a stay. When the PMS reports no combinable rate the stay
// is unbookable and the quote is nil. That is an answer, not a failure,
// and callers must not treat it as transient.
func (r *Resolver) Quote(ctx context.Context, propertyID, checkIn, checkOut string, guests int) (*Quote, error) {
	unitID, ok := catalog.UnitID(propertyID)
	if !ok {
		return nil, fmt.Errorf("invalid property id: %q", propertyID)
	}

	quotes, err := r.pms.FetchRates(ctx, unitID, checkIn, checkOut, guests)
	if err != nil {
		return nil, err
	}
	if len(quotes) == 0 {
		r.logger.Debug("no combinable rate for stay",
			zap.String("property_id", propertyID),
			zap.String("check_in", checkIn),
			zap.String("check_out", checkOut),
		)
		return nil, nil
	}

	best := quotes[0]
	return &Quote{
		BaseRate: best.BaseRate,
		Total:    best.Total,
		Taxes:    best.Taxes,
		Fees:     best.Fees,
		MinStay:  best.MinStay,
	}, nil
}

func flagOrTrue(flag *bool) bool {
	if flag == nil {
		return true
	}
	return *flag
}
