// Package geo provides coordinate and viewport math for heatmap generation,
// including antimeridian-aware longitude handling.
package geo

import (
	"math"
)

const (
	// MaxRenderableLat is the latitude limit for rendered points.
	// Web-mercator maps degrade above ~85 degrees, so heatmap points are
	// clamped to this band.
	MaxRenderableLat = 85.0

	// PolarLat is the latitude beyond which a coordinate is treated as polar.
	PolarLat = 65.0
)

// Bounds represents a map viewport. A viewport crosses the antimeridian
// when LngMin > LngMax, meaning it wraps through the +/-180 line.
type Bounds struct {
	LatMin float64
	LatMax float64
	LngMin float64
	LngMax float64
}

// Normalize swaps the latitude limits into LatMin <= LatMax order.
// Longitude limits are left as-is: LngMin > LngMax is meaningful
// (antimeridian wrap), not an error.
func (b Bounds) Normalize() Bounds {
	if b.LatMin > b.LatMax {
		b.LatMin, b.LatMax = b.LatMax, b.LatMin
	}
	return b
}

// Wraps reports whether the viewport crosses the antimeridian.
func (b Bounds) Wraps() bool {
	return b.LngMin > b.LngMax
}

// LngSpan returns the true longitude width of the viewport in degrees,
// accounting for antimeridian wrap.
func (b Bounds) LngSpan() float64 {
	if b.Wraps() {
		return (180 - b.LngMin) + (b.LngMax + 180)
	}
	return b.LngMax - b.LngMin
}

// LatSpan returns the latitude height of the viewport in degrees.
func (b Bounds) LatSpan() float64 {
	return b.LatMax - b.LatMin
}

// Contains reports whether the point lies within the viewport. Longitude
// containment is wrap-aware: for a wrapping viewport the point may lie in
// either of the two sub-ranges [LngMin,180] and [-180,LngMax].
func (b Bounds) Contains(lat, lng float64) bool {
	if lat < b.LatMin || lat > b.LatMax {
		return false
	}
	if b.Wraps() {
		return lng >= b.LngMin || lng <= b.LngMax
	}
	return lng >= b.LngMin && lng <= b.LngMax
}

// ClampLat clamps a latitude into the renderable band [-85, 85].
func ClampLat(lat float64) float64 {
	return math.Max(-MaxRenderableLat, math.Min(MaxRenderableLat, lat))
}

// WrapLng wraps a longitude through the antimeridian into [-180, 180).
// Longitude wraps rather than clamps: 181 degrees east is -179.
func WrapLng(lng float64) float64 {
	lng = math.Mod(lng+180, 360)
	if lng < 0 {
		lng += 360
	}
	return lng - 180
}

// Haversine returns the great-circle distance between two points in meters.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	const earthRadius = 6371000 // meters

	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}

// DegreeDistance returns the Euclidean distance between two points in
// degree-space. Hotspot influence radii are expressed in degrees, so the
// estimation model compares against this metric rather than meters.
func DegreeDistance(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := lat2 - lat1
	dLng := lng2 - lng1
	return math.Sqrt(dLat*dLat + dLng*dLng)
}
