package locator

import (
	"context"
	"strings"

	"github.com/medatlas/medatlas/internal/dal"
	"github.com/medatlas/medatlas/internal/gateway/places"
	"github.com/medatlas/medatlas/internal/geo"
	"github.com/medatlas/medatlas/internal/metrics"
	"github.com/medatlas/medatlas/internal/model"
	"github.com/medatlas/medatlas/internal/seed"
	"github.com/medatlas/medatlas/pkg/apperrors"
	"github.com/rs/zerolog/log"
)

// HospitalRepository is the hospital store surface the locator needs.
type HospitalRepository interface {
	Get(ctx context.Context, id string) (*model.Hospital, error)
	WithinBox(ctx context.Context, minLat, maxLat, minLng, maxLng float64, f dal.HospitalFilter) ([]*model.Hospital, error)
	BySpecialty(ctx context.Context, specialty string) ([]*model.Hospital, error)
	SearchByName(ctx context.Context, query string) ([]*model.Hospital, error)
	DistinctSpecialties(ctx context.Context) ([]string, error)
}

// DoctorRepository is the doctor store surface the locator needs.
type DoctorRepository interface {
	ByHospital(ctx context.Context, hospitalID string, f dal.DoctorFilter) ([]*model.Doctor, error)
}

// Service answers hospital and specialist location queries.
type Service struct {
	hospitals HospitalRepository
	doctors   DoctorRepository
	provider  places.Provider
	demoMode  bool
}

// NewService builds a locator service. demoMode enables the bundled hospital
// list as a fallback when the store has no results.
func NewService(hospitals HospitalRepository, doctors DoctorRepository, provider places.Provider, demoMode bool) *Service {
	return &Service{
		hospitals: hospitals,
		doctors:   doctors,
		provider:  provider,
		demoMode:  demoMode,
	}
}

// LocationQuery carries the three accepted ways of naming a location.
// Resolution order is coordinates, then address, then zip code.
type LocationQuery struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Address   string   `json:"address,omitempty"`
	ZipCode   string   `json:"zipCode,omitempty"`
}

// ResolveCoordinates turns a location query into coordinates, geocoding
// through the places provider when no explicit pair is given.
func (s *Service) ResolveCoordinates(ctx context.Context, q LocationQuery) (geo.Coordinates, error) {
	if q.Latitude != nil && q.Longitude != nil {
		return geo.Coordinates{Latitude: *q.Latitude, Longitude: *q.Longitude}, nil
	}

	query := strings.TrimSpace(q.Address)
	if query == "" {
		query = strings.TrimSpace(q.ZipCode)
	}
	if query == "" {
		return geo.Coordinates{}, apperrors.LocationUnresolved("Provide coordinates, an address, or a zip code")
	}

	resolved, err := s.provider.Geocode(ctx, query)
	if err != nil {
		return geo.Coordinates{}, err
	}
	return resolved.Coordinates, nil
}

// SearchHospitals finds active hospitals by case-insensitive name substring.
func (s *Service) SearchHospitals(ctx context.Context, query string) ([]*HospitalResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperrors.InvalidInput("Search query is required")
	}

	rows, err := s.hospitals.SearchByName(ctx, query)
	if err != nil {
		metrics.RecordLocatorLookup("search", "error")
		return nil, err
	}
	if len(rows) == 0 && s.demoMode {
		rows = filterByName(seed.DemoHospitals(), query)
	}

	results := make([]*HospitalResult, 0, len(rows))
	for _, h := range rows {
		results = append(results, newHospitalResult(h))
	}
	metrics.RecordLocatorLookup("search", "success")
	return results, nil
}

// Specialties returns the distinct specialty values across active hospitals.
func (s *Service) Specialties(ctx context.Context) ([]string, error) {
	out, err := s.hospitals.DistinctSpecialties(ctx)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 && s.demoMode {
		set := map[string]bool{}
		for _, h := range seed.DemoHospitals() {
			for _, sp := range h.Specialties {
				if !set[sp] {
					set[sp] = true
					out = append(out, sp)
				}
			}
		}
	}
	return out, nil
}

// Directions resolves a route between two points. When the provider cannot
// route, a straight-line fixed-speed estimate is returned instead.
func (s *Service) Directions(ctx context.Context, from, to geo.Coordinates, mode string) (*places.Route, error) {
	if mode == "" {
		mode = geo.ModeDriving
	}

	route, err := s.provider.Directions(ctx, from, to, mode)
	if err != nil {
		log.Warn().Err(err).Str("mode", mode).Msg("Directions provider failed, falling back to estimate")
		km := geo.Distance(from, to)
		return &places.Route{
			DistanceKm:      geo.RoundKm(km),
			DurationMinutes: geo.EstimateTravelMinutes(km, mode),
			Mode:            mode,
			Estimated:       true,
		}, nil
	}
	return route, nil
}

func filterByName(hospitals []*model.Hospital, query string) []*model.Hospital {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []*model.Hospital
	for _, h := range hospitals {
		if strings.Contains(strings.ToLower(h.Name), q) {
			out = append(out, h)
		}
	}
	return out
}
