package places

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/medatlas/medatlas/internal/cache"
	"github.com/medatlas/medatlas/internal/geo"
	"github.com/medatlas/medatlas/internal/metrics"
	"github.com/medatlas/medatlas/pkg/apperrors"
	"github.com/rs/zerolog/log"
)

const (
	googleGeocodeURL    = "https://maps.googleapis.com/maps/api/geocode/json"
	googleNearbyURL     = "https://maps.googleapis.com/maps/api/place/nearbysearch/json"
	googleDirectionsURL = "https://maps.googleapis.com/maps/api/directions/json"

	geocodeCacheTTL    = 30 * 24 * time.Hour
	defaultHTTPTimeout = 8 * time.Second
)

// GoogleProvider implements Provider against the Google Maps APIs.
type GoogleProvider struct {
	apiKey        string
	httpClient    *http.Client
	cache         cache.Cache
	geocodeURL    string
	nearbyURL     string
	directionsURL string
}

// NewGoogleProvider creates a Google-backed provider. cache may be nil.
func NewGoogleProvider(apiKey string, c cache.Cache) *GoogleProvider {
	return NewGoogleProviderWithOptions(apiKey, c, "", nil)
}

// NewGoogleProviderWithOptions allows overriding the base URL and HTTP client
// (used for tests).
func NewGoogleProviderWithOptions(apiKey string, c cache.Cache, baseURL string, httpClient *http.Client) *GoogleProvider {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	geocodeURL := googleGeocodeURL
	nearbyURL := googleNearbyURL
	directionsURL := googleDirectionsURL
	if baseURL != "" {
		geocodeURL = baseURL + "/geocode/json"
		nearbyURL = baseURL + "/place/nearbysearch/json"
		directionsURL = baseURL + "/directions/json"
	}
	return &GoogleProvider{
		apiKey:        apiKey,
		httpClient:    httpClient,
		cache:         c,
		geocodeURL:    geocodeURL,
		nearbyURL:     nearbyURL,
		directionsURL: directionsURL,
	}
}

// Geocode converts an address or postal code to coordinates.
func (g *GoogleProvider) Geocode(ctx context.Context, address string) (*GeocodedAddress, error) {
	trimmed := strings.TrimSpace(address)
	if trimmed == "" {
		return nil, apperrors.InvalidInput("address is required")
	}

	cacheKey := "geo:geocode:" + hashKey(strings.ToLower(trimmed))
	if cached := g.cacheLookup(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	resp, err := g.doGeocodeRequest(ctx, "geocode", url.Values{"address": []string{trimmed}})
	if err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, apperrors.LocationUnresolved("no results for address")
	}

	addr := toGeocodedAddress(resp.Results[0])
	g.cacheStore(ctx, cacheKey, addr)
	return addr, nil
}

// ReverseGeocode converts coordinates to an address.
func (g *GoogleProvider) ReverseGeocode(ctx context.Context, lat, lng float64) (*GeocodedAddress, error) {
	cacheKey := "geo:reverse:" + hashKey(fmt.Sprintf("%.5f,%.5f", lat, lng))
	if cached := g.cacheLookup(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	resp, err := g.doGeocodeRequest(ctx, "reverse_geocode", url.Values{"latlng": []string{fmt.Sprintf("%f,%f", lat, lng)}})
	if err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, apperrors.LocationUnresolved("no results for coordinates")
	}

	addr := toGeocodedAddress(resp.Results[0])
	g.cacheStore(ctx, cacheKey, addr)
	return addr, nil
}

// Directions requests a routed path between two points.
func (g *GoogleProvider) Directions(ctx context.Context, from, to geo.Coordinates, mode string) (*Route, error) {
	params := url.Values{}
	params.Set("origin", fmt.Sprintf("%f,%f", from.Latitude, from.Longitude))
	params.Set("destination", fmt.Sprintf("%f,%f", to.Latitude, to.Longitude))
	params.Set("mode", mode)
	params.Set("key", g.apiKey)

	var payload googleDirectionsResponse
	if err := g.doRequest(ctx, "directions", g.directionsURL, params, &payload); err != nil {
		return nil, err
	}
	if payload.Status != "OK" || len(payload.Routes) == 0 || len(payload.Routes[0].Legs) == 0 {
		return nil, apperrors.UpstreamProvider("directions request failed",
			fmt.Errorf("directions status %q", payload.Status))
	}

	leg := payload.Routes[0].Legs[0]
	return &Route{
		DistanceKm:      math.Round(float64(leg.Distance.Value)/100) / 10,
		DurationMinutes: leg.Duration.Value / 60,
		Summary:         payload.Routes[0].Summary,
		Mode:            mode,
	}, nil
}

// NearbyPlaces runs a places nearby search around a point.
func (g *GoogleProvider) NearbyPlaces(ctx context.Context, center geo.Coordinates, radiusKm float64, placeType string) ([]*Place, error) {
	params := url.Values{}
	params.Set("location", fmt.Sprintf("%f,%f", center.Latitude, center.Longitude))
	params.Set("radius", fmt.Sprintf("%d", int(radiusKm*1000)))
	params.Set("type", placeType)
	params.Set("key", g.apiKey)

	var payload googleNearbyResponse
	if err := g.doRequest(ctx, "nearby", g.nearbyURL, params, &payload); err != nil {
		return nil, err
	}
	if payload.Status != "OK" && payload.Status != "ZERO_RESULTS" {
		return nil, apperrors.UpstreamProvider("nearby search failed",
			fmt.Errorf("nearby status %q", payload.Status))
	}

	out := make([]*Place, 0, len(payload.Results))
	for _, r := range payload.Results {
		out = append(out, &Place{
			ID:      r.PlaceID,
			Name:    r.Name,
			Address: r.Vicinity,
			Coordinates: geo.Coordinates{
				Latitude:  r.Geometry.Location.Lat,
				Longitude: r.Geometry.Location.Lng,
			},
			PlaceType: placeType,
			Rating:    r.Rating,
		})
	}
	return out, nil
}

func (g *GoogleProvider) doGeocodeRequest(ctx context.Context, operation string, params url.Values) (*googleGeocodeResponse, error) {
	params.Set("key", g.apiKey)

	var payload googleGeocodeResponse
	if err := g.doRequest(ctx, operation, g.geocodeURL, params, &payload); err != nil {
		return nil, err
	}
	if payload.Status != "OK" && payload.Status != "ZERO_RESULTS" {
		return nil, apperrors.UpstreamProvider("geocode request failed",
			fmt.Errorf("geocode status %q: %s", payload.Status, payload.ErrorMessage))
	}
	return &payload, nil
}

func (g *GoogleProvider) doRequest(ctx context.Context, operation, baseURL string, params url.Values, out interface{}) error {
	if g.apiKey == "" {
		return apperrors.UpstreamProvider("google maps api key is required", nil)
	}

	reqURL := fmt.Sprintf("%s?%s", baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return apperrors.UpstreamProvider("failed to build request", err)
	}

	start := time.Now()
	resp, err := g.httpClient.Do(req)
	if err != nil {
		metrics.RecordUpstreamRequest("places", operation, "error", time.Since(start))
		return apperrors.UpstreamProvider("places request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.RecordUpstreamRequest("places", operation, "error", time.Since(start))
		return apperrors.UpstreamProvider("places request failed",
			fmt.Errorf("status %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		metrics.RecordUpstreamRequest("places", operation, "error", time.Since(start))
		return apperrors.UpstreamProvider("failed to decode places response", err)
	}

	metrics.RecordUpstreamRequest("places", operation, "success", time.Since(start))
	return nil
}

func (g *GoogleProvider) cacheLookup(ctx context.Context, key string) *GeocodedAddress {
	if g.cache == nil {
		return nil
	}
	cached, err := g.cache.Get(ctx, key)
	if err != nil || len(cached) == 0 {
		return nil
	}
	var addr GeocodedAddress
	if err := json.Unmarshal(cached, &addr); err != nil {
		return nil
	}
	if addr.Coordinates.Latitude == 0 && addr.Coordinates.Longitude == 0 {
		return nil
	}
	return &addr
}

func (g *GoogleProvider) cacheStore(ctx context.Context, key string, addr *GeocodedAddress) {
	if g.cache == nil {
		return
	}
	payload, err := json.Marshal(addr)
	if err != nil {
		return
	}
	if err := g.cache.Set(ctx, key, payload, geocodeCacheTTL); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("Failed to cache geocode result")
	}
}

func toGeocodedAddress(result googleGeocodeResult) *GeocodedAddress {
	return &GeocodedAddress{
		FormattedAddress: result.FormattedAddress,
		Street:           buildStreet(result.AddressComponents),
		City:             component(result.AddressComponents, "locality", "administrative_area_level_2"),
		State:            component(result.AddressComponents, "administrative_area_level_1"),
		ZipCode:          component(result.AddressComponents, "postal_code"),
		Country:          component(result.AddressComponents, "country"),
		Coordinates: geo.Coordinates{
			Latitude:  result.Geometry.Location.Lat,
			Longitude: result.Geometry.Location.Lng,
		},
	}
}

func hashKey(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

func component(components []googleAddressComponent, primary string, fallback ...string) string {
	for _, comp := range components {
		if containsType(comp.Types, primary) {
			return comp.LongName
		}
	}
	for _, alt := range fallback {
		for _, comp := range components {
			if containsType(comp.Types, alt) {
				return comp.LongName
			}
		}
	}
	return ""
}

func buildStreet(components []googleAddressComponent) string {
	streetNumber := component(components, "street_number")
	route := component(components, "route")
	if streetNumber != "" && route != "" {
		return streetNumber + " " + route
	}
	if route != "" {
		return route
	}
	return streetNumber
}

func containsType(types []string, target string) bool {
	for _, t := range types {
		if t == target {
			return true
		}
	}
	return false
}

type googleGeocodeResponse struct {
	Status       string                `json:"status"`
	ErrorMessage string                `json:"error_message,omitempty"`
	Results      []googleGeocodeResult `json:"results"`
}

type googleGeocodeResult struct {
	FormattedAddress  string                   `json:"formatted_address"`
	AddressComponents []googleAddressComponent `json:"address_components"`
	Geometry          googleGeometry           `json:"geometry"`
}

type googleAddressComponent struct {
	LongName string   `json:"long_name"`
	Types    []string `json:"types"`
}

type googleGeometry struct {
	Location googleLocation `json:"location"`
}

type googleLocation struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type googleNearbyResponse struct {
	Status  string               `json:"status"`
	Results []googleNearbyResult `json:"results"`
}

type googleNearbyResult struct {
	PlaceID  string         `json:"place_id"`
	Name     string         `json:"name"`
	Vicinity string         `json:"vicinity"`
	Rating   float64        `json:"rating"`
	Geometry googleGeometry `json:"geometry"`
}

type googleDirectionsResponse struct {
	Status string `json:"status"`
	Routes []struct {
		Summary string `json:"summary"`
		Legs    []struct {
			Distance struct {
				Value int `json:"value"`
			} `json:"distance"`
			Duration struct {
				Value int `json:"value"`
			} `json:"duration"`
		} `json:"legs"`
	} `json:"routes"`
}
