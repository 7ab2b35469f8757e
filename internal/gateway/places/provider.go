package places

import (
	"context"

	"github.com/medatlas/medatlas/internal/geo"
)

// GeocodedAddress is the resolved form of a free-text address or postal code.
type GeocodedAddress struct {
	FormattedAddress string          `json:"formattedAddress"`
	Street           string          `json:"street,omitempty"`
	City             string          `json:"city,omitempty"`
	State            string          `json:"state,omitempty"`
	ZipCode          string          `json:"zipCode,omitempty"`
	Country          string          `json:"country,omitempty"`
	Coordinates      geo.Coordinates `json:"coordinates"`
}

// Route is a single directions result.
type Route struct {
	DistanceKm      float64 `json:"distanceKm"`
	DurationMinutes int     `json:"durationMinutes"`
	Summary         string  `json:"summary,omitempty"`
	Mode            string  `json:"mode"`
	// Estimated is true when the route is a straight-line fixed-speed
	// approximation rather than a routed result.
	Estimated bool `json:"estimated"`
}

// Place is one nearby-place result.
type Place struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Address     string          `json:"address,omitempty"`
	Coordinates geo.Coordinates `json:"coordinates"`
	PlaceType   string          `json:"placeType,omitempty"`
	Rating      float64         `json:"rating,omitempty"`
}

// Provider is the geocoding/directions/places collaborator. Request and
// response shapes follow the vendor API; implementations do not retry.
type Provider interface {
	Geocode(ctx context.Context, address string) (*GeocodedAddress, error)
	ReverseGeocode(ctx context.Context, lat, lng float64) (*GeocodedAddress, error)
	Directions(ctx context.Context, from, to geo.Coordinates, mode string) (*Route, error)
	NearbyPlaces(ctx context.Context, center geo.Coordinates, radiusKm float64, placeType string) ([]*Place, error)
}
