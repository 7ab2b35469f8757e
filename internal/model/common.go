package model

import (
	"math"
	"time"
)

// GeoPoint is a GeoJSON point. Coordinates are [longitude, latitude].
type GeoPoint struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// NewGeoPoint builds a GeoJSON point from latitude and longitude.
func NewGeoPoint(lat, lng float64) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: [2]float64{lng, lat}}
}

// Lat returns the latitude component.
func (p GeoPoint) Lat() float64 { return p.Coordinates[1] }

// Lng returns the longitude component.
func (p GeoPoint) Lng() float64 { return p.Coordinates[0] }

// Address is the postal address embedded in patients, doctors and hospitals.
type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
	Country string `json:"country,omitempty"`
}

// Full joins the non-empty address parts into a single display string.
func (a Address) Full() string {
	parts := []string{a.Street, a.City, a.State, a.ZipCode, a.Country}
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

// Review is embedded in doctor and hospital documents.
type Review struct {
	ID        string    `json:"id"`
	PatientID string    `json:"patientId,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	IsPublic  bool      `json:"isPublic"`
	CreatedAt time.Time `json:"createdAt"`
}

// AverageRating returns the mean rating over public reviews rounded to one
// decimal place, and the count of public reviews. Both are zero when no public
// reviews exist.
func AverageRating(reviews []Review) (float64, int) {
	sum := 0
	count := 0
	for _, r := range reviews {
		if !r.IsPublic {
			continue
		}
		sum += r.Rating
		count++
	}
	if count == 0 {
		return 0, 0
	}
	return math.Round(float64(sum)/float64(count)*10) / 10, count
}
