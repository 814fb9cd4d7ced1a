package geo

import "math"

const earthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance in kilometers between two
// WGS84 coordinates.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// PathDistanceM sums the distances between consecutive points of a path, in
// meters. Paths with fewer than two points have zero length.
func PathDistanceM(lats, lngs []float64) float64 {
	if len(lats) < 2 || len(lats) != len(lngs) {
		return 0
	}
	total := 0.0
	for i := 1; i < len(lats); i++ {
		total += HaversineKm(lats[i-1], lngs[i-1], lats[i], lngs[i]) * 1000
	}
	return total
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
