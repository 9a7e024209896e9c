package matching

import "math"

const earthRadiusKm = 6371

// DistanceKm computes the great-circle distance between two coordinates
// using the Haversine formula. Symmetric in its arguments.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// roundKm rounds a distance to one decimal for display
func roundKm(d float64) float64 {
	return math.Round(d*10) / 10
}
