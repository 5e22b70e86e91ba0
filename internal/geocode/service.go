package geocode

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ServiceConfig holds configuration for the geocoding service.
type ServiceConfig struct {
	// Provider is the geocoding backend (required).
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger

	// CacheTTL is how long resolved locations stay cached (default: 24h;
	// geocodes are effectively static).
	CacheTTL time.Duration
}

// Service resolves addresses with a TTL cache in front of the provider.
// Unlike the air-quality path, geocoding errors are caller-visible: there
// is no meaningful synthetic fallback for "where is this place".
type Service struct {
	provider Provider
	logger   zerolog.Logger
	cacheTTL time.Duration

	mu      sync.RWMutex
	entries map[string]cachedLocation
}

type cachedLocation struct {
	location *Location
	storedAt time.Time
}

// NewService creates a geocoding service.
func NewService(cfg ServiceConfig) *Service {
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}

	return &Service{
		provider: cfg.Provider,
		logger:   cfg.Logger,
		cacheTTL: cacheTTL,
		entries:  make(map[string]cachedLocation),
	}
}

// Locate resolves a free-form address to coordinates.
func (s *Service) Locate(ctx context.Context, address string) (*Location, error) {
	key := normalizeAddress(address)

	s.mu.RLock()
	if cached, ok := s.entries[key]; ok && time.Since(cached.storedAt) < s.cacheTTL {
		s.mu.RUnlock()
		return cached.location, nil
	}
	s.mu.RUnlock()

	location, err := s.provider.Geocode(ctx, address)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("provider", s.provider.Name()).
			Str("address", address).
			Msg("geocoding failed")
		return nil, err
	}

	s.mu.Lock()
	s.entries[key] = cachedLocation{location: location, storedAt: time.Now()}
	s.mu.Unlock()

	return location, nil
}

// ClearCache drops every cached location.
func (s *Service) ClearCache() {
	s.mu.Lock()
	s.entries = make(map[string]cachedLocation)
	s.mu.Unlock()
}

// CacheSize returns the number of cached locations.
func (s *Service) CacheSize() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func normalizeAddress(address string) string {
	return strings.Join(strings.Fields(strings.ToLower(address)), " ")
}
