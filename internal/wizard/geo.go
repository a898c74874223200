// geo.go contains the pure geographic computation behind the origin
// prefill: great-circle distances against the origin city table.
package wizard

import "math"

const (
	earthRadiusKm    = 6371.0 // mean Earth radius
	maxOriginMatchKm = 500.0  // beyond this the visitor is "not near" any origin city
)

// haversineKm returns the great-circle distance in kilometres between two
// points specified in decimal degrees.
func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := degreesToRadians(lat2 - lat1)
	dLng := degreesToRadians(lng2 - lng1)

	rLat1 := degreesToRadians(lat1)
	rLat2 := degreesToRadians(lat2)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// nearestWithin scans the candidate table for the city closest to the
// given point and accepts it only when the minimum distance is at most
// limitKm.  Ties keep the earlier table entry: the scan only replaces the
// best candidate on a strictly smaller distance, and the table order is
// fixed, so repeated calls with identical input always agree.
func nearestWithin(lat, lng float64, cities []OriginCity, limitKm float64) (OriginCity, bool) {
	var best OriginCity
	bestDist := math.Inf(1)
	for _, c := range cities {
		if d := haversineKm(lat, lng, c.Lat, c.Lng); d < bestDist {
			best = c
			bestDist = d
		}
	}
	if bestDist > limitKm {
		return OriginCity{}, false
	}
	return best, true
}

// MatchOriginCity finds the origin city nearest to the visitor's
// coordinate, within the acceptance threshold.  No match is not an error:
// the origin step simply starts unfilled.
func MatchOriginCity(lat, lng float64) (string, bool) {
	c, ok := nearestWithin(lat, lng, OriginCities, maxOriginMatchKm)
	if !ok {
		return "", false
	}
	return c.Name, true
}
