package locator

import (
	"context"
	"sort"

	"github.com/medatlas/medatlas/internal/dal"
	"github.com/medatlas/medatlas/internal/geo"
	"github.com/medatlas/medatlas/internal/metrics"
	"github.com/medatlas/medatlas/internal/model"
	"github.com/medatlas/medatlas/pkg/apperrors"
)

const defaultSpecialistRadiusKm = 25.0

// SpecialistRequest finds doctors of a specialty near a location.
type SpecialistRequest struct {
	Location  LocationQuery `json:"location"`
	Specialty string        `json:"specialty"`
	RadiusKm  float64       `json:"radiusKm,omitempty"`
	Language  string        `json:"language,omitempty"`
	Insurance string        `json:"insurance,omitempty"`
	MinRating float64       `json:"minRating,omitempty"`
}

// SpecialistResult is a doctor paired with the hospital that surfaced them.
type SpecialistResult struct {
	Doctor       *model.Doctor `json:"doctor"`
	HospitalID   string        `json:"hospitalId"`
	HospitalName string        `json:"hospitalName"`
	DistanceKm   float64       `json:"distanceKm"`
}

// FindSpecialists locates doctors of the requested specialty working at
// hospitals within the radius. Results are sorted by rating descending, then
// distance ascending.
func (s *Service) FindSpecialists(ctx context.Context, req SpecialistRequest) ([]*SpecialistResult, error) {
	if req.Specialty == "" {
		metrics.RecordLocatorLookup("specialists", "error")
		return nil, apperrors.InvalidInput("Specialty is required")
	}

	center, err := s.ResolveCoordinates(ctx, req.Location)
	if err != nil {
		metrics.RecordLocatorLookup("specialists", "error")
		return nil, err
	}

	radius := req.RadiusKm
	if radius <= 0 {
		radius = defaultSpecialistRadiusKm
	}

	hospitals, err := s.hospitals.BySpecialty(ctx, req.Specialty)
	if err != nil {
		metrics.RecordLocatorLookup("specialists", "error")
		return nil, err
	}

	filter := dal.DoctorFilter{
		Specialization: req.Specialty,
		Language:       req.Language,
		Insurance:      req.Insurance,
		MinRating:      req.MinRating,
	}

	var results []*SpecialistResult
	for _, h := range hospitals {
		loc := geo.Coordinates{Latitude: h.Location.Lat(), Longitude: h.Location.Lng()}
		km := geo.Distance(center, loc)
		if km > radius {
			continue
		}

		doctors, err := s.doctors.ByHospital(ctx, h.ID, filter)
		if err != nil {
			metrics.RecordLocatorLookup("specialists", "error")
			return nil, err
		}
		for _, d := range doctors {
			results = append(results, &SpecialistResult{
				Doctor:       d,
				HospitalID:   h.ID,
				HospitalName: h.Name,
				DistanceKm:   geo.RoundKm(km),
			})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Doctor.AverageRating != results[j].Doctor.AverageRating {
			return results[i].Doctor.AverageRating > results[j].Doctor.AverageRating
		}
		return results[i].DistanceKm < results[j].DistanceKm
	})

	metrics.RecordLocatorLookup("specialists", "success")
	return results, nil
}
