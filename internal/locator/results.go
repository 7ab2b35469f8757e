package locator

import (
	"sort"

	"github.com/medatlas/medatlas/internal/geo"
	"github.com/medatlas/medatlas/internal/model"
)

// HospitalResult is a hospital enriched with the read-time virtuals and, when
// the query was positional, distance and travel estimates.
type HospitalResult struct {
	*model.Hospital
	FullAddress        string         `json:"fullAddress"`
	OccupancyRate      *int           `json:"occupancyRate,omitempty"`
	Rating             float64        `json:"rating"`
	DistanceKm         float64        `json:"distanceKm,omitempty"`
	TravelEstimates    map[string]int `json:"travelEstimates,omitempty"`
	AverageWaitMinutes int            `json:"averageWaitMinutes,omitempty"`
	Recommended        bool           `json:"recommended,omitempty"`
}

func newHospitalResult(h *model.Hospital) *HospitalResult {
	return &HospitalResult{
		Hospital:      h,
		FullAddress:   h.FullAddress(),
		OccupancyRate: h.OccupancyRate(),
		Rating:        h.AverageRating(),
	}
}

func newPositionalResult(h *model.Hospital, from geo.Coordinates) *HospitalResult {
	r := newHospitalResult(h)
	km := geo.Distance(from, geo.Coordinates{Latitude: h.Location.Lat(), Longitude: h.Location.Lng()})
	r.DistanceKm = geo.RoundKm(km)
	r.TravelEstimates = map[string]int{
		geo.ModeWalking: geo.EstimateTravelMinutes(km, geo.ModeWalking),
		geo.ModeTransit: geo.EstimateTravelMinutes(km, geo.ModeTransit),
		geo.ModeDriving: geo.EstimateTravelMinutes(km, geo.ModeDriving),
	}
	return r
}

func sortByDistance(results []*HospitalResult) {
	sort.Slice(results, func(i, j int) bool {
		return results[i].DistanceKm < results[j].DistanceKm
	})
}

func sortByWait(results []*HospitalResult) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].AverageWaitMinutes != results[j].AverageWaitMinutes {
			return results[i].AverageWaitMinutes < results[j].AverageWaitMinutes
		}
		return results[i].DistanceKm < results[j].DistanceKm
	})
}
