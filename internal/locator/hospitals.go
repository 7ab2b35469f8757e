package locator

import (
	"context"
	"strings"

	"github.com/medatlas/medatlas/internal/dal"
	"github.com/medatlas/medatlas/internal/geo"
	"github.com/medatlas/medatlas/internal/metrics"
	"github.com/medatlas/medatlas/internal/model"
	"github.com/medatlas/medatlas/internal/seed"
	"github.com/rs/zerolog/log"
)

const (
	defaultNearbyRadiusKm = 10.0
	emergencyRadiusKm     = 50.0
	emergencyResultCap    = 10
)

// NearbyRequest filters a radius search around a resolved location.
type NearbyRequest struct {
	Location      LocationQuery `json:"location"`
	RadiusKm      float64       `json:"radiusKm,omitempty"`
	Specialty     string        `json:"specialty,omitempty"`
	Insurance     string        `json:"insurance,omitempty"`
	MinRating     float64       `json:"minRating,omitempty"`
	Emergency24x7 bool          `json:"emergency24x7,omitempty"`
}

// EmergencyRequest locates emergency-capable hospitals. Urgency "critical"
// narrows to hospitals with trauma-grade services and free ICU beds.
type EmergencyRequest struct {
	Location LocationQuery `json:"location"`
	Urgency  string        `json:"urgency,omitempty"`
}

// NearbyHospitals returns active hospitals within the radius, sorted by
// ascending distance, each carrying distance and travel estimates.
func (s *Service) NearbyHospitals(ctx context.Context, req NearbyRequest) ([]*HospitalResult, error) {
	center, err := s.ResolveCoordinates(ctx, req.Location)
	if err != nil {
		metrics.RecordLocatorLookup("nearby", "error")
		return nil, err
	}

	radius := req.RadiusKm
	if radius <= 0 {
		radius = defaultNearbyRadiusKm
	}

	rows, err := s.withinRadius(ctx, center, radius, dal.HospitalFilter{
		Specialty:     req.Specialty,
		Insurance:     req.Insurance,
		Emergency24x7: req.Emergency24x7,
	})
	if err != nil {
		metrics.RecordLocatorLookup("nearby", "error")
		return nil, err
	}

	results := make([]*HospitalResult, 0, len(rows))
	for _, h := range rows {
		if req.MinRating > 0 && h.AverageRating() < req.MinRating {
			continue
		}
		results = append(results, newPositionalResult(h, center))
	}
	sortByDistance(results)

	metrics.RecordLocatorLookup("nearby", "success")
	return results, nil
}

// EmergencyHospitals returns up to ten emergency-capable hospitals within
// 50 km, sorted by ascending average emergency wait. The first result is
// flagged recommended.
func (s *Service) EmergencyHospitals(ctx context.Context, req EmergencyRequest) ([]*HospitalResult, error) {
	center, err := s.ResolveCoordinates(ctx, req.Location)
	if err != nil {
		metrics.RecordLocatorLookup("emergency", "error")
		return nil, err
	}

	rows, err := s.withinRadius(ctx, center, emergencyRadiusKm, dal.HospitalFilter{Emergency24x7: true})
	if err != nil {
		metrics.RecordLocatorLookup("emergency", "error")
		return nil, err
	}

	critical := strings.EqualFold(req.Urgency, "critical")
	results := make([]*HospitalResult, 0, len(rows))
	for _, h := range rows {
		if critical {
			if !h.HasEmergencyService("trauma", "critical-care", "cardiac-emergency") {
				continue
			}
			if h.BedCount.ICU < 1 {
				continue
			}
		}
		r := newPositionalResult(h, center)
		r.AverageWaitMinutes = h.AverageEmergencyWait()
		results = append(results, r)
	}
	sortByWait(results)

	if len(results) > emergencyResultCap {
		results = results[:emergencyResultCap]
	}
	if len(results) > 0 {
		results[0].Recommended = true
	}

	log.Info().
		Int("matches", len(results)).
		Str("urgency", req.Urgency).
		Msg("Emergency hospital lookup")
	metrics.RecordLocatorLookup("emergency", "success")
	return results, nil
}

// withinRadius runs the bounding-box store query, falls back to the bundled
// dataset in demo mode, and applies the exact haversine cutoff. Filters the
// box query cannot express (insurance substring in demo mode) are applied
// here.
func (s *Service) withinRadius(ctx context.Context, center geo.Coordinates, radiusKm float64, f dal.HospitalFilter) ([]*model.Hospital, error) {
	minLat, maxLat, minLng, maxLng := geo.BoundingBox(center, radiusKm)

	rows, err := s.hospitals.WithinBox(ctx, minLat, maxLat, minLng, maxLng, f)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 && s.demoMode {
		rows = filterDemoHospitals(seed.DemoHospitals(), f)
	}

	var out []*model.Hospital
	for _, h := range rows {
		loc := geo.Coordinates{Latitude: h.Location.Lat(), Longitude: h.Location.Lng()}
		if geo.Distance(center, loc) <= radiusKm {
			out = append(out, h)
		}
	}
	return out, nil
}

func filterDemoHospitals(hospitals []*model.Hospital, f dal.HospitalFilter) []*model.Hospital {
	var out []*model.Hospital
	for _, h := range hospitals {
		if f.Emergency24x7 && !h.Emergency24x7 {
			continue
		}
		if f.Specialty != "" && !h.HasSpecialty(f.Specialty) {
			continue
		}
		if f.Insurance != "" && !acceptsInsurance(h.AcceptedInsurance, f.Insurance) {
			continue
		}
		out = append(out, h)
	}
	return out
}

func acceptsInsurance(accepted []string, insurance string) bool {
	needle := strings.ToLower(strings.TrimSpace(insurance))
	for _, a := range accepted {
		if strings.Contains(strings.ToLower(a), needle) {
			return true
		}
	}
	return false
}
