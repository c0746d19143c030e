package spatial

import "github.com/golang/geo/s2"

// EarthRadiusKm is the mean Earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0

// HaversineKm calculates the great-circle distance between two points in
// kilometers using the Haversine formula
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusKm
}

// WithinRadiusKm reports whether the point (lat, lon) lies within radiusKm of
// the center. The boundary is inclusive: a point at exactly radiusKm passes.
func WithinRadiusKm(centerLat, centerLon, lat, lon, radiusKm float64) bool {
	return HaversineKm(centerLat, centerLon, lat, lon) <= radiusKm
}
