// Package geocoder resolves free-form addresses to coordinates and a
// structured address through the MapQuest geocoding API.
package geocoder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ErrNoResults is returned when the provider resolves nothing for an address.
var ErrNoResults = errors.New("geocoder: no results for address")

// Result is a resolved address.
type Result struct {
	Longitude        float64
	Latitude         float64
	FormattedAddress string
	Street           string
	City             string
	State            string
	Zipcode          string
	Country          string
}

// Geocoder resolves an address to coordinates and structured components.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*Result, error)
}

// Config holds the provider settings.
type Config struct {
	BaseURL string // e.g. https://www.mapquestapi.com/geocoding/v1
	APIKey  string
	Timeout time.Duration
}

// Client is an HTTP Geocoder against a MapQuest-compatible endpoint.
type Client struct {
	config Config
	http   *http.Client
}

// NewClient creates a geocoding client.
func NewClient(config Config) *Client {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		config: config,
		http:   &http.Client{Timeout: timeout},
	}
}

// mapquestResponse mirrors the subset of the provider payload we read.
type mapquestResponse struct {
	Results []struct {
		Locations []struct {
			Street     string `json:"street"`
			City       string `json:"adminArea5"`
			State      string `json:"adminArea3"`
			Country    string `json:"adminArea1"`
			PostalCode string `json:"postalCode"`
			LatLng     struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"latLng"`
		} `json:"locations"`
	} `json:"results"`
}

// Geocode resolves the given address. A provider failure or empty result is
// surfaced as an error so callers can fail the triggering write.
func (c *Client) Geocode(ctx context.Context, address string) (*Result, error) {
	endpoint := fmt.Sprintf("%s/address?key=%s&location=%s",
		c.config.BaseURL, url.QueryEscape(c.config.APIKey), url.QueryEscape(address))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("geocoder: failed to build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoder: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoder: provider returned status %d", resp.StatusCode)
	}

	var payload mapquestResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("geocoder: failed to decode response: %w", err)
	}

	if len(payload.Results) == 0 || len(payload.Results[0].Locations) == 0 {
		return nil, ErrNoResults
	}

	loc := payload.Results[0].Locations[0]
	return &Result{
		Longitude:        loc.LatLng.Lng,
		Latitude:         loc.LatLng.Lat,
		FormattedAddress: formatAddress(loc.Street, loc.City, loc.State, loc.PostalCode, loc.Country),
		Street:           loc.Street,
		City:             loc.City,
		State:            loc.State,
		Zipcode:          loc.PostalCode,
		Country:          loc.Country,
	}, nil
}

func formatAddress(parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += p
	}
	return out
}
