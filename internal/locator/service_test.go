package locator

import (
	"context"
	"testing"

	"github.com/medatlas/medatlas/internal/dal"
	"github.com/medatlas/medatlas/internal/gateway/places"
	"github.com/medatlas/medatlas/internal/geo"
	"github.com/medatlas/medatlas/internal/model"
	"github.com/medatlas/medatlas/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHospitalRepo struct {
	hospitals []*model.Hospital
}

func (f *fakeHospitalRepo) Get(ctx context.Context, id string) (*model.Hospital, error) {
	for _, h := range f.hospitals {
		if h.ID == id {
			return h, nil
		}
	}
	return nil, apperrors.NotFound("hospital not found")
}

func (f *fakeHospitalRepo) WithinBox(ctx context.Context, minLat, maxLat, minLng, maxLng float64, filter dal.HospitalFilter) ([]*model.Hospital, error) {
	var out []*model.Hospital
	for _, h := range f.hospitals {
		if !h.IsActive {
			continue
		}
		if filter.Emergency24x7 && !h.Emergency24x7 {
			continue
		}
		if filter.Specialty != "" && !h.HasSpecialty(filter.Specialty) {
			continue
		}
		lat, lng := h.Location.Lat(), h.Location.Lng()
		if lat < minLat || lat > maxLat || lng < minLng || lng > maxLng {
			continue
		}
		out = append(out, h)
	}
	return out, nil
}

func (f *fakeHospitalRepo) BySpecialty(ctx context.Context, specialty string) ([]*model.Hospital, error) {
	var out []*model.Hospital
	for _, h := range f.hospitals {
		if h.IsActive && h.HasSpecialty(specialty) {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeHospitalRepo) SearchByName(ctx context.Context, query string) ([]*model.Hospital, error) {
	return filterByName(f.hospitals, query), nil
}

func (f *fakeHospitalRepo) DistinctSpecialties(ctx context.Context) ([]string, error) {
	set := map[string]bool{}
	var out []string
	for _, h := range f.hospitals {
		for _, s := range h.Specialties {
			if !set[s] {
				set[s] = true
				out = append(out, s)
			}
		}
	}
	return out, nil
}

type fakeDoctorRepo struct {
	doctors []*model.Doctor
}

func (f *fakeDoctorRepo) ByHospital(ctx context.Context, hospitalID string, filter dal.DoctorFilter) ([]*model.Doctor, error) {
	var out []*model.Doctor
	for _, d := range f.doctors {
		if !d.IsActive || d.HospitalID != hospitalID {
			continue
		}
		if filter.Specialization != "" && !d.HasSpecialization(filter.Specialization) {
			continue
		}
		if filter.MinRating > 0 && d.AverageRating < filter.MinRating {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func floatPtr(v float64) *float64 { return &v }

func geoCoord(lat, lng float64) geo.Coordinates {
	return geo.Coordinates{Latitude: lat, Longitude: lng}
}

// failingProvider errors on every call.
type failingProvider struct{}

func (failingProvider) Geocode(ctx context.Context, address string) (*places.GeocodedAddress, error) {
	return nil, apperrors.UpstreamProvider("geocode unavailable", nil)
}

func (failingProvider) ReverseGeocode(ctx context.Context, lat, lng float64) (*places.GeocodedAddress, error) {
	return nil, apperrors.UpstreamProvider("reverse geocode unavailable", nil)
}

func (failingProvider) Directions(ctx context.Context, from, to geo.Coordinates, mode string) (*places.Route, error) {
	return nil, apperrors.UpstreamProvider("directions unavailable", nil)
}

func (failingProvider) NearbyPlaces(ctx context.Context, center geo.Coordinates, radiusKm float64, placeType string) ([]*places.Place, error) {
	return nil, apperrors.UpstreamProvider("nearby unavailable", nil)
}

func newTestService(hospitals []*model.Hospital, doctors []*model.Doctor, demoMode bool) *Service {
	return NewService(
		&fakeHospitalRepo{hospitals: hospitals},
		&fakeDoctorRepo{doctors: doctors},
		places.NewDemoProvider(),
		demoMode,
	)
}

func TestNearbyHospitalsDemoFallback(t *testing.T) {
	// Empty store in demo mode falls back to the bundled dataset. From
	// downtown Manhattan with a 10 km radius, three of the five bundled
	// hospitals are in range.
	svc := newTestService(nil, nil, true)

	results, err := svc.NearbyHospitals(context.Background(), NearbyRequest{
		Location: LocationQuery{Latitude: floatPtr(40.7128), Longitude: floatPtr(-74.0060)},
		RadiusKm: 10,
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "Downtown Medical Center", results[0].Name)
	assert.Equal(t, "Brooklyn Heights Clinic", results[1].Name)
	assert.Equal(t, "Jersey City Medical Pavilion", results[2].Name)

	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i].DistanceKm, results[i-1].DistanceKm, "results must be sorted by distance")
	}
	for _, r := range results {
		assert.LessOrEqual(t, r.DistanceKm, 10.0)
		assert.NotEmpty(t, r.TravelEstimates)
	}
}

func TestNearbyHospitalsGeocodesAddress(t *testing.T) {
	svc := newTestService(nil, nil, true)

	results, err := svc.NearbyHospitals(context.Background(), NearbyRequest{
		Location: LocationQuery{Address: "somewhere in New York"},
		RadiusKm: 10,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, results)
}

func TestNearbyHospitalsUnresolvableLocation(t *testing.T) {
	svc := newTestService(nil, nil, true)

	_, err := svc.NearbyHospitals(context.Background(), NearbyRequest{
		Location: LocationQuery{Address: "Atlantis"},
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindLocationUnresolved, apperrors.KindOf(err))
}

func TestResolveCoordinatesPrefersExplicitPair(t *testing.T) {
	svc := newTestService(nil, nil, true)

	coords, err := svc.ResolveCoordinates(context.Background(), LocationQuery{
		Latitude:  floatPtr(1.5),
		Longitude: floatPtr(2.5),
		Address:   "Boston", // ignored when coordinates are present
	})
	require.NoError(t, err)
	assert.Equal(t, 1.5, coords.Latitude)
	assert.Equal(t, 2.5, coords.Longitude)
}

func TestResolveCoordinatesEmptyQuery(t *testing.T) {
	svc := newTestService(nil, nil, true)

	_, err := svc.ResolveCoordinates(context.Background(), LocationQuery{})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindLocationUnresolved, apperrors.KindOf(err))
}

func TestEmergencyHospitalsCriticalExcludesNoICU(t *testing.T) {
	hospitals := []*model.Hospital{
		{
			ID:       "h1",
			Name:     "Has ICU",
			Location: model.NewGeoPoint(40.72, -74.00),
			EmergencyServices: []model.EmergencyService{
				{Name: "trauma", AverageWaitMinutes: 30},
			},
			Emergency24x7: true,
			BedCount:      model.BedCount{Total: 100, Available: 20, ICU: 4},
			IsActive:      true,
		},
		{
			ID:       "h2",
			Name:     "No ICU beds",
			Location: model.NewGeoPoint(40.71, -74.01),
			EmergencyServices: []model.EmergencyService{
				{Name: "trauma", AverageWaitMinutes: 10},
			},
			Emergency24x7: true,
			BedCount:      model.BedCount{Total: 50, Available: 10, ICU: 0},
			IsActive:      true,
		},
		{
			ID:                "h3",
			Name:              "No trauma service",
			Location:          model.NewGeoPoint(40.73, -74.02),
			EmergencyServices: []model.EmergencyService{{Name: "urgent-care", AverageWaitMinutes: 5}},
			Emergency24x7:     true,
			BedCount:          model.BedCount{Total: 80, Available: 30, ICU: 8},
			IsActive:          true,
		},
	}
	svc := newTestService(hospitals, nil, false)

	results, err := svc.EmergencyHospitals(context.Background(), EmergencyRequest{
		Location: LocationQuery{Latitude: floatPtr(40.7128), Longitude: floatPtr(-74.0060)},
		Urgency:  "critical",
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Has ICU", results[0].Name)
	assert.True(t, results[0].Recommended)
}

func TestEmergencyHospitalsSortedByWait(t *testing.T) {
	hospitals := []*model.Hospital{
		{
			ID: "slow", Name: "Slow", Location: model.NewGeoPoint(40.72, -74.00),
			EmergencyServices: []model.EmergencyService{{Name: "trauma", AverageWaitMinutes: 45}},
			Emergency24x7:     true, BedCount: model.BedCount{Total: 10, Available: 2, ICU: 1}, IsActive: true,
		},
		{
			ID: "fast", Name: "Fast", Location: model.NewGeoPoint(40.71, -74.01),
			EmergencyServices: []model.EmergencyService{{Name: "trauma", AverageWaitMinutes: 12}},
			Emergency24x7:     true, BedCount: model.BedCount{Total: 10, Available: 2, ICU: 1}, IsActive: true,
		},
	}
	svc := newTestService(hospitals, nil, false)

	results, err := svc.EmergencyHospitals(context.Background(), EmergencyRequest{
		Location: LocationQuery{Latitude: floatPtr(40.7128), Longitude: floatPtr(-74.0060)},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Fast", results[0].Name)
	assert.True(t, results[0].Recommended)
	assert.False(t, results[1].Recommended)
}

func TestFindSpecialistsSorting(t *testing.T) {
	hospitals := []*model.Hospital{
		{
			ID: "near", Name: "Near Hospital", Specialties: []string{"Cardiology"},
			Location: model.NewGeoPoint(40.715, -74.005), IsActive: true,
		},
		{
			ID: "far", Name: "Far Hospital", Specialties: []string{"Cardiology"},
			Location: model.NewGeoPoint(40.80, -73.95), IsActive: true,
		},
	}
	doctors := []*model.Doctor{
		{ID: "d1", FirstName: "Low", LastName: "Rated", Specializations: []string{"Cardiology"}, AverageRating: 3.5, HospitalID: "near", IsActive: true},
		{ID: "d2", FirstName: "High", LastName: "RatedFar", Specializations: []string{"Cardiology"}, AverageRating: 4.8, HospitalID: "far", IsActive: true},
		{ID: "d3", FirstName: "High", LastName: "RatedNear", Specializations: []string{"Cardiology"}, AverageRating: 4.8, HospitalID: "near", IsActive: true},
	}
	svc := newTestService(hospitals, doctors, false)

	results, err := svc.FindSpecialists(context.Background(), SpecialistRequest{
		Location:  LocationQuery{Latitude: floatPtr(40.7128), Longitude: floatPtr(-74.0060)},
		Specialty: "Cardiology",
		RadiusKm:  25,
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Rating descending, then distance ascending for the tie.
	assert.Equal(t, "d3", results[0].Doctor.ID)
	assert.Equal(t, "d2", results[1].Doctor.ID)
	assert.Equal(t, "d1", results[2].Doctor.ID)
}

func TestFindSpecialistsRequiresSpecialty(t *testing.T) {
	svc := newTestService(nil, nil, false)

	_, err := svc.FindSpecialists(context.Background(), SpecialistRequest{
		Location: LocationQuery{Latitude: floatPtr(40.7), Longitude: floatPtr(-74.0)},
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidInput, apperrors.KindOf(err))
}

func TestSearchHospitalsEmptyQuery(t *testing.T) {
	svc := newTestService(nil, nil, false)

	_, err := svc.SearchHospitals(context.Background(), "  ")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidInput, apperrors.KindOf(err))
}

func TestSearchHospitalsCaseInsensitive(t *testing.T) {
	hospitals := []*model.Hospital{
		{ID: "h1", Name: "Riverside General Hospital", IsActive: true},
		{ID: "h2", Name: "Downtown Medical Center", IsActive: true},
	}
	svc := newTestService(hospitals, nil, false)

	results, err := svc.SearchHospitals(context.Background(), "riverside")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Riverside General Hospital", results[0].Name)
}

func TestDirectionsFallsBackToEstimate(t *testing.T) {
	// The demo provider never fails, so exercise the fallback through a
	// provider that always errors.
	svc := NewService(&fakeHospitalRepo{}, &fakeDoctorRepo{}, failingProvider{}, false)

	route, err := svc.Directions(context.Background(),
		geoCoord(40.7128, -74.0060), geoCoord(40.7506, -73.9972), "driving")
	require.NoError(t, err)
	assert.True(t, route.Estimated)
	assert.Greater(t, route.DistanceKm, 0.0)
}
