// Package geocode resolves coordinates to a human-readable place name through
// a Nominatim-style reverse-geocoding endpoint.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultBaseURL = "https://nominatim.openstreetmap.org"

type Client struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

func NewClient(baseURL string, userAgent string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:   baseURL,
		userAgent: userAgent,
		client: &http.Client{
			Timeout: 8 * time.Second,
		},
	}
}

type reverseResponse struct {
	DisplayName string `json:"display_name"`
}

// ReverseGeocode returns a place name for the coordinates, or an empty string
// when the service has none. A photo without a place name is fine, so callers
// treat failures as "no location".
func (client *Client) ReverseGeocode(ctx context.Context, latitude float64, longitude float64) (string, error) {
	values := url.Values{}
	values.Set("format", "jsonv2")
	values.Set("lat", strconv.FormatFloat(latitude, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(longitude, 'f', -1, 64))

	endpoint := fmt.Sprintf("%s/reverse?%s", client.baseURL, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	if client.userAgent != "" {
		req.Header.Set("User-Agent", client.userAgent)
	}

	resp, err := client.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("reverse geocode status %d", resp.StatusCode)
	}

	var payload reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return payload.DisplayName, nil
}
