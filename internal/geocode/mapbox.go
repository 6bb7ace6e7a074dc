package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrUpstream means the geocoding provider was unreachable or returned a
// non-success status. Surfaced to callers as a 502; never retried here.
var ErrUpstream = errors.New("geocoding upstream failure")

// ErrNotConfigured means no provider token is set. Checked before any
// request goes out, so a misconfigured deployment fails as a server-side
// config error rather than a provider 401.
var ErrNotConfigured = errors.New("geocoding token not configured")

// Result is the pipeline-facing view of a geocoder response. City is empty
// when the provider could not pin a city-level feature; FullPlaceName keeps
// the provider's display name for fallback extraction.
type Result struct {
	City          string `json:"city"`
	FullPlaceName string `json:"full_place_name"`
}

// Resolver turns a free-text query (address, city name, ZIP) into a
// best-guess city name.
type Resolver interface {
	ResolveCity(ctx context.Context, query string) (*Result, error)
}

// MapboxResolver resolves against the Mapbox forward-geocoding v5 API,
// restricted to address/place result types and the single best feature.
type MapboxResolver struct {
	client  *http.Client
	logger  *zap.Logger
	baseURL string
	token   string
}

// NewMapboxResolver creates a resolver. baseURL is overridable for tests;
// pass "" for the production endpoint.
func NewMapboxResolver(token, baseURL string, logger *zap.Logger) *MapboxResolver {
	if baseURL == "" {
		baseURL = "https://api.mapbox.com/geocoding/v5/mapbox.places"
	}
	return &MapboxResolver{
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
		baseURL: baseURL,
		token:   token,
	}
}

// mapboxFeature is the subset of the Mapbox GeoJSON feature we read
type mapboxFeature struct {
	Text      string   `json:"text"`
	PlaceName string   `json:"place_name"`
	PlaceType []string `json:"place_type"`
	Context   []struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"context"`
}

type mapboxResponse struct {
	Features []mapboxFeature `json:"features"`
}

// ResolveCity geocodes the query and extracts a city name. Extraction
// policy, in order: the feature itself is a "place" (city-level), a
// "place."-namespaced context entry, else no city.
func (m *MapboxResolver) ResolveCity(ctx context.Context, query string) (*Result, error) {
	if m.token == "" {
		return nil, ErrNotConfigured
	}

	u := fmt.Sprintf("%s/%s.json?limit=1&types=address,place&access_token=%s",
		m.baseURL, url.PathEscape(query), url.QueryEscape(m.token))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := m.client.Do(req)
	if err != nil {
		m.logger.Error("geocode request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		m.logger.Warn("geocode non-success status", zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var data mapboxResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrUpstream, err)
	}

	if len(data.Features) == 0 {
		m.logger.Debug("geocode returned no features", zap.String("query", query))
		return &Result{}, nil
	}

	feature := data.Features[0]
	result := &Result{FullPlaceName: feature.PlaceName}

	// Case 1: the feature itself IS the city
	for _, pt := range feature.PlaceType {
		if pt == "place" {
			result.City = feature.Text
			break
		}
	}

	// Case 2: city lives in the context hierarchy (address results)
	if result.City == "" {
		for _, c := range feature.Context {
			if strings.HasPrefix(c.ID, "place.") {
				result.City = c.Text
				break
			}
		}
	}

	m.logger.Debug("geocode resolved",
		zap.String("query", query),
		zap.String("city", result.City),
		zap.String("place_name", result.FullPlaceName))

	return result, nil
}

// FallbackCity picks the city string the pipeline filters by when the
// resolver yields no city: first comma-delimited segment of the full place
// name, else the raw query. Downstream matching needs *some* city string
// even when geocoding is ambiguous.
func FallbackCity(r *Result, rawQuery string) string {
	if r != nil && strings.TrimSpace(r.City) != "" {
		return strings.TrimSpace(r.City)
	}
	if r != nil && r.FullPlaceName != "" {
		if seg := strings.TrimSpace(strings.SplitN(r.FullPlaceName, ",", 2)[0]); seg != "" {
			return seg
		}
	}
	return strings.TrimSpace(rawQuery)
}
