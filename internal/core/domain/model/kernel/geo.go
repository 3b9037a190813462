package kernel

import (
	"errors"
	"fmt"
	"math"

	"dispatch/internal/pkg/errs"
)

// EarthRadiusKm is the mean Earth radius used by the haversine formula.
const EarthRadiusKm = 6371.0

const (
	LatitudeMin  = -90.0
	LatitudeMax  = 90.0
	LongitudeMin = -180.0
	LongitudeMax = 180.0
)

// DistanceKm returns the great-circle distance between two points in kilometers.
//
// Any NaN or infinite input yields +Inf, so an unknown location always sorts last
// when candidates are ordered by distance. It never panics.
//
// Example:
//
//	km := kernel.DistanceKm(18.5204, 73.8567, 19.0760, 72.8777) // Pune -> Mumbai, ~120
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	for _, v := range [...]float64{lat1, lon1, lat2, lon2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return math.Inf(1)
		}
	}

	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Coordinates is a geocoded point whose latitude and longitude may each be unknown.
// The zero value is a point with both components unknown.
type Coordinates struct {
	lat    float64
	lon    float64
	hasLat bool
	hasLon bool
}

// NewCoordinates creates a fully known point, validating the ranges
// [LatitudeMin..LatitudeMax] and [LongitudeMin..LongitudeMax].
func NewCoordinates(lat, lon float64) (Coordinates, error) {
	if err := errors.Join(
		checkRange("latitude", lat, LatitudeMin, LatitudeMax),
		checkRange("longitude", lon, LongitudeMin, LongitudeMax),
	); err != nil {
		return Coordinates{}, err
	}

	return Coordinates{lat: lat, lon: lon, hasLat: true, hasLon: true}, nil
}

// RestoreCoordinates rebuilds a point from nullable storage columns.
// A nil component stays unknown; stored values are taken as they are.
func RestoreCoordinates(lat, lon *float64) Coordinates {
	var c Coordinates
	if lat != nil {
		c.lat, c.hasLat = *lat, true
	}
	if lon != nil {
		c.lon, c.hasLon = *lon, true
	}
	return c
}

func checkRange(name string, v, minValue, maxValue float64) error {
	if math.IsNaN(v) || v < minValue || v > maxValue {
		return errs.NewValueIsOutOfRangeError(name, v, minValue, maxValue)
	}
	return nil
}

// Latitude returns the latitude and whether it is known.
func (c Coordinates) Latitude() (float64, bool) {
	return c.lat, c.hasLat
}

// Longitude returns the longitude and whether it is known.
func (c Coordinates) Longitude() (float64, bool) {
	return c.lon, c.hasLon
}

// IsKnown reports whether both components are set.
func (c Coordinates) IsKnown() bool {
	return c.hasLat && c.hasLon
}

// DistanceTo returns DistanceKm between c and other; +Inf if either point is not fully known.
func (c Coordinates) DistanceTo(other Coordinates) float64 {
	return DistanceKm(c.latOrNaN(), c.lonOrNaN(), other.latOrNaN(), other.lonOrNaN())
}

func (c Coordinates) String() string {
	if !c.IsKnown() {
		return "Coordinates(unknown)"
	}
	return fmt.Sprintf("Coordinates(%.6f,%.6f)", c.lat, c.lon)
}

func (c Coordinates) latOrNaN() float64 {
	if !c.hasLat {
		return math.NaN()
	}
	return c.lat
}

func (c Coordinates) lonOrNaN() float64 {
	if !c.hasLon {
		return math.NaN()
	}
	return c.lon
}
