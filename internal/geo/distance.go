package geo

import "math"

const earthRadiusKm = 6371.0

// Coordinates is a latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Travel modes understood by EstimateTravelMinutes.
const (
	ModeWalking = "walking"
	ModeTransit = "transit"
	ModeDriving = "driving"
)

// Fallback average speeds in km/h, used when no routing provider is available.
var fallbackSpeeds = map[string]float64{
	ModeWalking: 5,
	ModeTransit: 25,
	ModeDriving: 40,
}

// Distance returns the great-circle distance between two points in kilometers
// using the haversine formula.
func Distance(from, to Coordinates) float64 {
	lat1 := toRadians(from.Latitude)
	lat2 := toRadians(to.Latitude)
	deltaLat := toRadians(to.Latitude - from.Latitude)
	deltaLng := toRadians(to.Longitude - from.Longitude)

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// RoundKm rounds a distance to one decimal place, the precision returned to
// API callers.
func RoundKm(km float64) float64 {
	return math.Round(km*10) / 10
}

// EstimateTravelMinutes approximates travel time over the straight-line
// distance using a fixed average speed per mode. Unknown modes fall back to
// driving. This is the low-fidelity path taken when no routing provider is
// configured.
func EstimateTravelMinutes(km float64, mode string) int {
	speed, ok := fallbackSpeeds[mode]
	if !ok {
		speed = fallbackSpeeds[ModeDriving]
	}
	return int(math.Round(km / speed * 60))
}

// BoundingBox returns min/max latitude and longitude for a radius around a
// center point. Used to prefilter document queries before the exact haversine
// check.
func BoundingBox(center Coordinates, radiusKm float64) (minLat, maxLat, minLng, maxLng float64) {
	latDelta := radiusKm / 111.0
	lngDelta := latDelta
	if cos := math.Cos(toRadians(center.Latitude)); cos > 0.01 {
		lngDelta = radiusKm / (111.0 * cos)
	}
	return center.Latitude - latDelta, center.Latitude + latDelta,
		center.Longitude - lngDelta, center.Longitude + lngDelta
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
