package places

import (
	"context"
	"testing"

	"github.com/medatlas/medatlas/internal/geo"
	"github.com/medatlas/medatlas/pkg/apperrors"
)

func TestDemoGeocode(t *testing.T) {
	p := NewDemoProvider()

	tests := []struct {
		name    string
		address string
		wantLat float64
		wantErr apperrors.Kind
	}{
		{name: "known city", address: "123 Main St, New York, NY", wantLat: 40.7128},
		{name: "known zip", address: "10001", wantLat: 40.7506},
		{name: "unknown", address: "Atlantis", wantErr: apperrors.KindLocationUnresolved},
		{name: "empty", address: "  ", wantErr: apperrors.KindInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Geocode(context.Background(), tt.address)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatal("expected error")
				}
				if kind := apperrors.KindOf(err); kind != tt.wantErr {
					t.Errorf("error kind = %v, want %v", kind, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Geocode: %v", err)
			}
			if got.Coordinates.Latitude != tt.wantLat {
				t.Errorf("latitude = %v, want %v", got.Coordinates.Latitude, tt.wantLat)
			}
		})
	}
}

func TestDemoDirectionsIsEstimated(t *testing.T) {
	p := NewDemoProvider()

	from := geo.Coordinates{Latitude: 40.7128, Longitude: -74.0060}
	to := geo.Coordinates{Latitude: 40.7506, Longitude: -73.9972}

	route, err := p.Directions(context.Background(), from, to, geo.ModeDriving)
	if err != nil {
		t.Fatalf("Directions: %v", err)
	}
	if !route.Estimated {
		t.Error("demo route should be flagged estimated")
	}
	if route.DistanceKm <= 0 {
		t.Errorf("DistanceKm = %v, want > 0", route.DistanceKm)
	}
	if route.DurationMinutes <= 0 {
		t.Errorf("DurationMinutes = %v, want > 0", route.DurationMinutes)
	}
	if route.Mode != geo.ModeDriving {
		t.Errorf("Mode = %q, want %q", route.Mode, geo.ModeDriving)
	}
}

func TestDemoNearbyPlacesShaped(t *testing.T) {
	p := NewDemoProvider()

	got, err := p.NearbyPlaces(context.Background(), geo.Coordinates{Latitude: 40.7, Longitude: -74.0}, 5, "hospital")
	if err != nil {
		t.Fatalf("NearbyPlaces: %v", err)
	}
	if len(got) == 0 {
		t.Fatal("expected at least one place")
	}
	for _, place := range got {
		if place.Name == "" || place.ID == "" {
			t.Errorf("place missing identity: %+v", place)
		}
		if place.PlaceType != "hospital" {
			t.Errorf("PlaceType = %q, want hospital", place.PlaceType)
		}
	}
}
