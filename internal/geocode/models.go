// Package geocode resolves place names to coordinates.
package geocode

import (
	"context"
	"errors"
)

// Geocoding errors.
var (
	// ErrNotFound means the provider has no match for the address.
	ErrNotFound = errors.New("no coordinates found for address")

	// ErrProviderUnavailable means the provider could not be reached.
	ErrProviderUnavailable = errors.New("geocoding provider unavailable")
)

// Location is a resolved place.
type Location struct {
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

// Provider resolves an address to a location.
type Provider interface {
	// Geocode resolves a free-form address. Returns ErrNotFound when the
	// provider recognizes the request but has no match.
	Geocode(ctx context.Context, address string) (*Location, error)

	// Name returns the provider name for logging.
	Name() string
}
