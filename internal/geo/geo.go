// Package geo holds the pure geometric core: coordinate validation,
// great-circle distance, and circular fence membership. It has no
// dependencies on storage or transport.
package geo

import (
	"math"
	"net/http"

	"timeclock/internal/shared/apperror"
)

const earthRadiusMeters = 6371000

var ErrInvalidCoordinate = apperror.New(
	apperror.CodeInvalidInput,
	"Latitude must be in [-90, 90] and longitude in [-180, 180]",
	http.StatusBadRequest,
)

// Point is an immutable latitude/longitude pair in degrees.
type Point struct {
	Latitude  float64
	Longitude float64
}

// NewPoint validates the coordinate ranges before any computation.
func NewPoint(lat, lon float64) (Point, error) {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return Point{}, ErrInvalidCoordinate
	}
	return Point{Latitude: lat, Longitude: lon}, nil
}

// Fence is a circular region: a center point and a radius in meters.
type Fence struct {
	Center       Point
	RadiusMeters float64
}

// Distance returns the great-circle distance between a and b in meters,
// using the Haversine formula. Symmetric; Distance(a, a) == 0.
func Distance(a, b Point) float64 {
	latRad1 := a.Latitude * math.Pi / 180
	lonRad1 := a.Longitude * math.Pi / 180
	latRad2 := b.Latitude * math.Pi / 180
	lonRad2 := b.Longitude * math.Pi / 180

	diffLat := latRad2 - latRad1
	diffLon := lonRad2 - lonRad1

	h := math.Sin(diffLat/2)*math.Sin(diffLat/2) +
		math.Cos(latRad1)*math.Cos(latRad2)*
			math.Sin(diffLon/2)*math.Sin(diffLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c
}

// Contains reports whether p lies inside the fence. The boundary is
// inclusive: a point exactly at the radius counts as inside.
func (f Fence) Contains(p Point) bool {
	return Distance(p, f.Center) <= f.RadiusMeters
}
