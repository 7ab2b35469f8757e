package places

import (
	"context"
	"fmt"
	"strings"

	"github.com/medatlas/medatlas/internal/geo"
	"github.com/medatlas/medatlas/pkg/apperrors"
)

// DemoProvider is the deterministic fallback used whenever no Google Maps API
// key is configured. Every method returns well-shaped data so the rest of the
// system never has to special-case a missing provider.
type DemoProvider struct{}

// NewDemoProvider creates the demo provider.
func NewDemoProvider() *DemoProvider {
	return &DemoProvider{}
}

var demoCities = map[string]geo.Coordinates{
	"new york":      {Latitude: 40.7128, Longitude: -74.0060},
	"los angeles":   {Latitude: 34.0522, Longitude: -118.2437},
	"chicago":       {Latitude: 41.8781, Longitude: -87.6298},
	"houston":       {Latitude: 29.7604, Longitude: -95.3698},
	"phoenix":       {Latitude: 33.4484, Longitude: -112.0740},
	"san francisco": {Latitude: 37.7749, Longitude: -122.4194},
	"boston":        {Latitude: 42.3601, Longitude: -71.0589},
}

var demoZipCodes = map[string]geo.Coordinates{
	"10001": {Latitude: 40.7506, Longitude: -73.9972},
	"10013": {Latitude: 40.7204, Longitude: -74.0050},
	"90001": {Latitude: 33.9731, Longitude: -118.2479},
	"60601": {Latitude: 41.8858, Longitude: -87.6181},
	"02101": {Latitude: 42.3584, Longitude: -71.0598},
}

// Geocode matches the address against a fixed city and zip-code table.
func (d *DemoProvider) Geocode(ctx context.Context, address string) (*GeocodedAddress, error) {
	trimmed := strings.TrimSpace(address)
	if trimmed == "" {
		return nil, apperrors.InvalidInput("address is required")
	}

	lower := strings.ToLower(trimmed)
	for city, coords := range demoCities {
		if strings.Contains(lower, city) {
			return &GeocodedAddress{
				FormattedAddress: trimmed,
				City:             city,
				Coordinates:      coords,
			}, nil
		}
	}
	for zip, coords := range demoZipCodes {
		if strings.Contains(trimmed, zip) {
			return &GeocodedAddress{
				FormattedAddress: trimmed,
				ZipCode:          zip,
				Coordinates:      coords,
			}, nil
		}
	}

	return nil, apperrors.LocationUnresolved("no demo match for address")
}

// ReverseGeocode echoes the coordinates back as a formatted string.
func (d *DemoProvider) ReverseGeocode(ctx context.Context, lat, lng float64) (*GeocodedAddress, error) {
	return &GeocodedAddress{
		FormattedAddress: fmt.Sprintf("%.4f, %.4f", lat, lng),
		Coordinates:      geo.Coordinates{Latitude: lat, Longitude: lng},
	}, nil
}

// Directions returns a straight-line fixed-speed estimate.
func (d *DemoProvider) Directions(ctx context.Context, from, to geo.Coordinates, mode string) (*Route, error) {
	km := geo.RoundKm(geo.Distance(from, to))
	return &Route{
		DistanceKm:      km,
		DurationMinutes: geo.EstimateTravelMinutes(km, mode),
		Summary:         "straight-line estimate",
		Mode:            mode,
		Estimated:       true,
	}, nil
}

// NearbyPlaces returns two fixed places offset from the center.
func (d *DemoProvider) NearbyPlaces(ctx context.Context, center geo.Coordinates, radiusKm float64, placeType string) ([]*Place, error) {
	return []*Place{
		{
			ID:        "demo-place-1",
			Name:      "Demo Medical Center",
			Address:   "123 Healthcare Blvd",
			PlaceType: placeType,
			Rating:    4.2,
			Coordinates: geo.Coordinates{
				Latitude:  center.Latitude + 0.01,
				Longitude: center.Longitude + 0.01,
			},
		},
		{
			ID:        "demo-place-2",
			Name:      "Demo Community Clinic",
			Address:   "456 Medical Ave",
			PlaceType: placeType,
			Rating:    3.9,
			Coordinates: geo.Coordinates{
				Latitude:  center.Latitude - 0.01,
				Longitude: center.Longitude - 0.01,
			},
		},
	}, nil
}
