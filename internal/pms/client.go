// Package pms is a typed client for the upstream property-management
// system. It handles authentication and transport caching only; all
// business logic lives in the packages that consume it.
package pms

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"catalog-api-go/internal/config"
)

// Client issues authenticated requests against the PMS API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	authHeader string
	cache      ResponseCache
	cacheTTL   time.Duration
	logger     *zap.Logger
}

// NewClient creates a PMS client. The Authorization header is fixed for
// the lifetime of the client: Basic base64(key:secret).
func NewClient(cfg *config.Config, cache ResponseCache, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	creds := base64.StdEncoding.EncodeToString([]byte(cfg.PMSAPIKey + ":" + cfg.PMSAPISecret))
	return &Client{
		httpClient: &http.Client{Timeout: cfg.PMSTimeout},
		baseURL:    cfg.PMSBaseURL,
		authHeader: "Basic " + creds,
		cache:      cache,
		cacheTTL:   cfg.ResponseCacheTTL,
		logger:     logger,
	}
}

// FetchUnit fetches a single inventory unit by its PMS id.
func (c *Client) FetchUnit(ctx context.Context, id int) (*Unit, error) {
	var unit Unit
	path := fmt.Sprintf("/units/%d", id)
	if err := c.doGet(ctx, "unit", path, nil, true, &unit); err != nil {
		return nil, err
	}
	return &unit, nil
}

// FetchUnits fetches one page of inventory units with the upstream total.
func (c *Client) FetchUnits(ctx context.Context, page, pageSize int) ([]Unit, int, error) {
	return c.SearchUnits(ctx, SearchParams{}, page, pageSize)
}

// SearchUnits fetches one page of units constrained by the PMS-native
// search parameters, with the upstream total.
func (c *Client) SearchUnits(ctx context.Context, params SearchParams, page, pageSize int) ([]Unit, int, error) {
	query := url.Values{
		"page": {strconv.Itoa(page)},
		"size": {strconv.Itoa(pageSize)},
	}
	if params.Bedrooms != nil {
		query.Set("bedrooms", strconv.Itoa(*params.Bedrooms))
	}
	if params.MinOccupancy != nil {
		query.Set("minOccupancy", strconv.Itoa(*params.MinOccupancy))
	}
	if params.PetFriendly != nil {
		query.Set("petsFriendly", strconv.FormatBool(*params.PetFriendly))
	}

	var resp unitsResponse
	if err := c.doGet(ctx, "units", "/units", query, true, &resp); err != nil {
		return nil, 0, err
	}
	return resp.Units, resp.Total, nil
}

// FetchNodes fetches all node (village) records.
func (c *Client) FetchNodes(ctx context.Context) ([]Node, error) {
	var resp nodesResponse
	if err := c.doGet(ctx, "nodes", "/nodes", nil, true, &resp); err != nil {
		return nil, err
	}
	return resp.Nodes, nil
}

// FetchUnitImages fetches up to limit images for a unit.
func (c *Client) FetchUnitImages(ctx context.Context, id, limit int) ([]Image, error) {
	query := url.Values{"limit": {strconv.Itoa(limit)}}
	var resp imagesResponse
	path := fmt.Sprintf("/units/%d/images", id)
	if err := c.doGet(ctx, "images", path, query, true, &resp); err != nil {
		return nil, err
	}
	return resp.Images, nil
}

// FetchAvailability fetches the unit's per-date availability calendar for
// [start, end]. Dates are YYYY-MM-DD.
func (c *Client) FetchAvailability(ctx context.Context, id int, start, end string) ([]AvailabilityDay, error) {
	query := url.Values{
		"startDate": {start},
		"endDate":   {end},
	}
	var resp availabilityResponse
	path := fmt.Sprintf("/units/%d/availability", id)
	if err := c.doGet(ctx, "availability", path, query, true, &resp); err != nil {
		return nil, err
	}
	return resp.Days, nil
}

// FetchRates fetches the combinable rate quotes for a stay. Rate
// responses bypass the transport cache: prices are time-sensitive.
func (c *Client) FetchRates(ctx context.Context, id int, checkIn, checkOut string, guests int) ([]RateQuote, error) {
	query := url.Values{
		"checkIn":  {checkIn},
		"checkOut": {checkOut},
		"guests":   {strconv.Itoa(guests)},
	}
	var resp ratesResponse
	path := fmt.Sprintf("/units/%d/rates", id)
	if err := c.doGet(ctx, "rates", path, query, false, &resp); err != nil {
		return nil, err
	}
	return resp.Quotes, nil
}

// doGet performs an authenticated GET, optionally consulting the response
// cache, and decodes the JSON body into v. Metrics are labelled by the
// endpoint family, not the full path, to keep cardinality bounded.
func (c *Client) doGet(ctx context.Context, endpoint, path string, query url.Values, cacheable bool, v interface{}) error {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	if cacheable && c.cache != nil {
		if body, ok := c.cache.Get(ctx, fullURL); ok {
			responseCacheHitsTotal.Inc()
			return json.Unmarshal(body, v)
		}
		responseCacheMissesTotal.Inc()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		upstreamRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		return fmt.Errorf("sending request to %s: %w", path, err)
	}
	defer resp.Body.Close()

	upstreamRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	upstreamRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response from %s: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("pms request failed",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decoding response from %s: %w", path, err)
	}

	if cacheable && c.cache != nil {
		c.cache.Set(ctx, fullURL, body, c.cacheTTL)
	}

	return nil
}
