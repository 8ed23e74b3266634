package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"rentsearch_backend/pkg/geo"
)

const DefaultBaseURL = "https://maps.googleapis.com/maps/api/place"

// RawPlace is a provider result before classification.
type RawPlace struct {
	ID    string
	Name  string
	Tags  []string
	Point geo.Point
}

// Provider looks up points of interest of one category around a coordinate.
type Provider interface {
	SearchNearby(ctx context.Context, center geo.Point, radiusMeters int, category string) ([]RawPlace, error)
}

// GooglePlacesClient calls the Places Nearby Search endpoint.
type GooglePlacesClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewGooglePlacesClient(apiKey, baseURL string) *GooglePlacesClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &GooglePlacesClient{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type nearbySearchResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		PlaceID  string   `json:"place_id"`
		Name     string   `json:"name"`
		Types    []string `json:"types"`
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// SearchNearby returns no places and no error when no API key is configured.
func (c *GooglePlacesClient) SearchNearby(ctx context.Context, center geo.Point, radiusMeters int, category string) ([]RawPlace, error) {
	if c.apiKey == "" {
		return []RawPlace{}, nil
	}

	params := url.Values{}
	params.Add("location", fmt.Sprintf("%.6f,%.6f", center.Lat, center.Lng))
	params.Add("radius", strconv.Itoa(radiusMeters))
	params.Add("type", category)
	params.Add("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/nearbysearch/json?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call Google Places API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("places API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result nearbySearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse places response: %w", err)
	}
	if result.Status != "OK" && result.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("places API status %s: %s", result.Status, result.ErrorMessage)
	}

	out := make([]RawPlace, 0, len(result.Results))
	for _, r := range result.Results {
		out = append(out, RawPlace{
			ID:    r.PlaceID,
			Name:  r.Name,
			Tags:  r.Types,
			Point: geo.Point{Lat: r.Geometry.Location.Lat, Lng: r.Geometry.Location.Lng},
		})
	}
	return out, nil
}
