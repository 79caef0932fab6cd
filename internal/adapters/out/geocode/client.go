// Package geocode resolves free-form address queries against an external
// geocoding service over HTTP.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"engage/internal/core/domain/model/kernel"
	"engage/internal/core/ports"
	"engage/internal/pkg/errs"
)

const defaultTimeout = 5 * time.Second

// Client is an HTTP geocoding client. The service region is a bounding box;
// results outside it fail with ports.ErrOutOfServiceRegion so home visits
// cannot be booked where no specialist operates.
type Client struct {
	baseURL string
	region  kernel.BoundingBox
	http    *http.Client
}

// NewClient creates a geocoding client for the given service endpoint and
// served region.
func NewClient(baseURL string, region kernel.BoundingBox) *Client {
	return &Client{
		baseURL: baseURL,
		region:  region,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

type geocodeResponse struct {
	Formatted string  `json:"formatted"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	PlaceID   string  `json:"place_id"`
}

// Geocode resolves the query to a verified address.
func (c *Client) Geocode(ctx context.Context, query string) (kernel.Address, error) {
	if query == "" {
		return kernel.Address{}, errs.NewValueIsRequiredError("query")
	}

	endpoint := fmt.Sprintf("%s/geocode?q=%s", c.baseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return kernel.Address{}, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return kernel.Address{}, fmt.Errorf("geocoding request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return kernel.Address{}, errs.NewObjectNotFoundError("address", query)
	default:
		return kernel.Address{}, fmt.Errorf("geocoding service returned status %d", resp.StatusCode)
	}

	var payload geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return kernel.Address{}, fmt.Errorf("decode geocoding response: %w", err)
	}

	point, err := kernel.NewGeoPoint(payload.Lat, payload.Lng)
	if err != nil {
		return kernel.Address{}, err
	}

	if !c.inRegion(point) {
		return kernel.Address{}, ports.ErrOutOfServiceRegion
	}

	return kernel.NewAddress(payload.Formatted, point, payload.PlaceID)
}

func (c *Client) inRegion(p kernel.GeoPoint) bool {
	return p.Lat() >= c.region.MinLat && p.Lat() <= c.region.MaxLat &&
		p.Lng() >= c.region.MinLng && p.Lng() <= c.region.MaxLng
}
