// Package airquality provides resilient access to air-quality data: a
// single remote provider wrapped with a cache, a rate window, a circuit
// breaker, and a deterministic synthetic fallback.
package airquality

import (
	"context"
	"errors"
)

// Source identifies where a sample came from.
type Source string

const (
	// SourceRemote marks data fetched from the live provider.
	SourceRemote Source = "remote"

	// SourceEstimate marks data synthesized by the estimation model.
	SourceEstimate Source = "estimate"
)

// Remote call failure taxonomy. The service treats all four identically
// (breaker failure plus fallback); the split exists for logging and tests.
var (
	ErrTimeout           = errors.New("remote provider timed out")
	ErrTransport         = errors.New("remote provider transport failure")
	ErrMalformedResponse = errors.New("remote provider returned a malformed response")
	ErrNoData            = errors.New("remote provider has no data for this location")
)

// Provider fetches live air-quality data for a coordinate.
type Provider interface {
	// FetchCurrent returns the current conditions at a coordinate. Errors
	// should wrap one of the package taxonomy sentinels.
	FetchCurrent(ctx context.Context, lat, lng float64) (*Observation, error)

	// Name returns the provider name for logging.
	Name() string
}

// Concentration is a raw pollutant reading.
type Concentration struct {
	Value float64 `json:"value"`
	Units string  `json:"units"`
}

// Pollutant is one pollutant's measured or estimated severity.
type Pollutant struct {
	// Code is a lower-case identifier, stable across samples for the
	// same pollutant family (pm25, pm10, o3, no2, so2, co).
	Code          string        `json:"code"`
	DisplayName   string        `json:"displayName"`
	Concentration Concentration `json:"concentration"`
	AQI           int           `json:"aqi,omitempty"`
}

// Observation is the provider's raw view of current conditions.
type Observation struct {
	AQI               int
	Category          string
	DominantPollutant string
	Pollutants        []Pollutant
	City              string
	ObservedAt        string
}

// Sample is one unified air-quality reading, remote or synthetic.
type Sample struct {
	Source            Source      `json:"source"`
	Lat               float64     `json:"lat"`
	Lng               float64     `json:"lng"`
	AQI               int         `json:"aqi"`
	Category          string      `json:"category,omitempty"`
	DominantPollutant string      `json:"dominantPollutant,omitempty"`
	Pollutants        []Pollutant `json:"pollutants,omitempty"`
	City              string      `json:"city,omitempty"`
	ObservedAt        string      `json:"observedAt,omitempty"`
}

// Estimated reports whether the sample came from the fallback model.
func (s *Sample) Estimated() bool {
	return s.Source == SourceEstimate
}

// ResilienceStatus is an observability snapshot of the service's shared
// state, exposed on the ops surface.
type ResilienceStatus struct {
	CacheSize      int  `json:"cacheSize"`
	RecentRequests int  `json:"recentRequestCount"`
	BreakerOpen    bool `json:"breakerOpen"`
	FailureCount   int  `json:"failureCount"`
}

// Category buckets an AQI value into the conventional severity bands.
func Category(aqi int) string {
	switch {
	case aqi <= 50:
		return "Good"
	case aqi <= 100:
		return "Moderate"
	case aqi <= 150:
		return "Unhealthy for Sensitive Groups"
	case aqi <= 200:
		return "Unhealthy"
	case aqi <= 300:
		return "Very Unhealthy"
	default:
		return "Hazardous"
	}
}
