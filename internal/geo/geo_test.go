package geo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Yoloholoknow/Respire/internal/geo"
)

func TestBoundsNormalize(t *testing.T) {
	b := geo.Bounds{LatMin: 34.0, LatMax: 33.5, LngMin: -84.6, LngMax: -84.2}
	n := b.Normalize()

	assert.Equal(t, 33.5, n.LatMin)
	assert.Equal(t, 34.0, n.LatMax)
	// Longitude order is preserved: LngMin > LngMax means wrap, not error.
	assert.Equal(t, -84.6, n.LngMin)
}

func TestBoundsLngSpan(t *testing.T) {
	tests := []struct {
		name   string
		bounds geo.Bounds
		span   float64
	}{
		{
			name:   "simple viewport",
			bounds: geo.Bounds{LngMin: -84.6, LngMax: -84.2},
			span:   0.4,
		},
		{
			name:   "antimeridian wrap",
			bounds: geo.Bounds{LngMin: 170, LngMax: -170},
			span:   20,
		},
		{
			name:   "full width",
			bounds: geo.Bounds{LngMin: -180, LngMax: 180},
			span:   360,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.span, tt.bounds.LngSpan(), 1e-9)
		})
	}
}

func TestBoundsContains(t *testing.T) {
	plain := geo.Bounds{LatMin: 33.5, LatMax: 34.0, LngMin: -84.6, LngMax: -84.2}
	assert.True(t, plain.Contains(33.75, -84.4))
	assert.False(t, plain.Contains(33.75, -85.0))
	assert.False(t, plain.Contains(35.0, -84.4))

	wrapping := geo.Bounds{LatMin: -10, LatMax: 10, LngMin: 170, LngMax: -170}
	assert.True(t, wrapping.Contains(0, 175))
	assert.True(t, wrapping.Contains(0, -175))
	assert.False(t, wrapping.Contains(0, 0))
}

func TestClampLat(t *testing.T) {
	assert.Equal(t, 85.0, geo.ClampLat(89.9))
	assert.Equal(t, -85.0, geo.ClampLat(-90))
	assert.Equal(t, 51.5, geo.ClampLat(51.5))
}

func TestWrapLng(t *testing.T) {
	assert.InDelta(t, -179.0, geo.WrapLng(181.0), 1e-9)
	assert.InDelta(t, 179.0, geo.WrapLng(-181.0), 1e-9)
	assert.InDelta(t, 0.0, geo.WrapLng(360.0), 1e-9)
	assert.InDelta(t, 13.4, geo.WrapLng(13.4), 1e-9)
}

func TestHaversine(t *testing.T) {
	// Amsterdam Centraal to Amsterdam Zuid is roughly 3.4 km.
	d := geo.Haversine(52.3791, 4.9003, 52.3386, 4.8919)
	assert.InDelta(t, 3500, d, 300)

	assert.Zero(t, geo.Haversine(40.7128, -74.0060, 40.7128, -74.0060))
}

func TestJitterDeterministic(t *testing.T) {
	a := geo.Jitter(40.7128, -74.0060, "aqi")
	b := geo.Jitter(40.7128, -74.0060, "aqi")
	assert.Equal(t, a, b)

	assert.GreaterOrEqual(t, a, -1.0)
	assert.Less(t, a, 1.0)

	// Different salt, different stream.
	assert.NotEqual(t, a, geo.Jitter(40.7128, -74.0060, "grid"))
	// Different coordinates, different value.
	assert.NotEqual(t, a, geo.Jitter(51.5074, -0.1278, "aqi"))
}

func TestJitterSharedWithinRounding(t *testing.T) {
	// Points that round to the same 4-decimal key share jitter.
	assert.Equal(t,
		geo.Jitter(40.71281, -74.00601, "aqi"),
		geo.Jitter(40.71282, -74.00602, "aqi"),
	)
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "40.7128,-74.0060", geo.CacheKey(40.7128, -74.0060))
	assert.Equal(t, geo.CacheKey(40.71281, -74.00601), geo.CacheKey(40.71279, -74.00599))
	assert.Equal(t, "0.0000,0.0000", geo.CacheKey(0, 0))
}
