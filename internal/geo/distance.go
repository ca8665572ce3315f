package geo

import (
	"math"

	"tour-planning-service/internal/domain"
)

// Mean Earth radius in meters.
const earthRadiusMeters = 6_371_000.0

// Distance returns the great-circle (haversine) distance between two
// coordinates in meters. Symmetric; zero iff the coordinates are equal
// within floating tolerance.
func Distance(a, b domain.Coordinates) float64 {
	dLat := degToRad(b.Lat - a.Lat)
	dLon := degToRad(b.Lon - a.Lon)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	h := sinLat*sinLat +
		math.Cos(degToRad(a.Lat))*math.Cos(degToRad(b.Lat))*sinLon*sinLon

	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(h))
}

func degToRad(deg float64) float64 { return deg * math.Pi / 180 }
