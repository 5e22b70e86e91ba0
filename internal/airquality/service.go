package airquality

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/Yoloholoknow/Respire/internal/estimate"
)

const meterName = "github.com/Yoloholoknow/Respire/internal/airquality"

// ServiceConfig holds configuration for the resilient air-quality service.
type ServiceConfig struct {
	// Provider is the live data source. May be nil, in which case every
	// lookup resolves through the estimator.
	Provider Provider

	// Estimator is the synthetic fallback model (required).
	Estimator *estimate.Estimator

	// Logger for service operations.
	Logger zerolog.Logger

	// CacheTTL is how long remote samples stay live (default: 10 minutes).
	CacheTTL time.Duration

	// RemoteTimeout bounds each remote call (default: 3 seconds).
	RemoteTimeout time.Duration

	// BreakerThreshold is the consecutive-failure count that opens the
	// breaker (default: 5).
	BreakerThreshold int

	// BreakerCooldown is how long the breaker stays open (default: 60s).
	BreakerCooldown time.Duration

	// MaxRequestsPerMinute caps remote calls in the trailing 60 seconds
	// (default: 50).
	MaxRequestsPerMinute int
}

// Service answers air-quality lookups and never fails: remote data when
// the provider is healthy and within budget, synthetic estimates otherwise.
type Service struct {
	provider      Provider
	estimator     *estimate.Estimator
	logger        zerolog.Logger
	remoteTimeout time.Duration

	cache   *sampleCache
	breaker *Breaker
	window  *RateWindow

	metrics *serviceMetrics
}

// NewService creates the resilient air-quality service.
func NewService(cfg ServiceConfig) *Service {
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 10 * time.Minute
	}

	remoteTimeout := cfg.RemoteTimeout
	if remoteTimeout == 0 {
		remoteTimeout = 3 * time.Second
	}

	threshold := cfg.BreakerThreshold
	if threshold == 0 {
		threshold = 5
	}

	cooldown := cfg.BreakerCooldown
	if cooldown == 0 {
		cooldown = 60 * time.Second
	}

	maxPerMinute := cfg.MaxRequestsPerMinute
	if maxPerMinute == 0 {
		maxPerMinute = 50
	}

	return &Service{
		provider:      cfg.Provider,
		estimator:     cfg.Estimator,
		logger:        cfg.Logger,
		remoteTimeout: remoteTimeout,
		cache:         newSampleCache(cacheTTL),
		breaker:       NewBreaker(threshold, cooldown),
		window:        NewRateWindow(maxPerMinute, time.Minute),
		metrics:       newServiceMetrics(),
	}
}

// Current returns the air quality at a coordinate. It is total: every
// path that cannot produce remote data falls back to the estimator.
func (s *Service) Current(ctx context.Context, lat, lng float64) *Sample {
	if cached := s.cache.Get(lat, lng); cached != nil {
		s.metrics.count(ctx, "cache_hit")
		return cached
	}

	if s.provider == nil {
		return s.fallback(ctx, lat, lng, "no provider configured")
	}

	// Allow self-resets the breaker when the cooldown has elapsed, so the
	// first call after the cooldown attempts the remote provider again.
	if !s.breaker.Allow() {
		return s.fallback(ctx, lat, lng, "breaker open")
	}

	if !s.window.Admit() {
		return s.fallback(ctx, lat, lng, "rate window saturated")
	}

	callCtx, cancel := context.WithTimeout(ctx, s.remoteTimeout)
	defer cancel()

	s.metrics.count(ctx, "remote_call")
	obs, err := s.provider.FetchCurrent(callCtx, lat, lng)
	if err != nil {
		s.breaker.Failure()
		s.logger.Warn().
			Err(err).
			Str("provider", s.provider.Name()).
			Float64("lat", lat).
			Float64("lng", lng).
			Int("breaker_failures", s.breaker.Failures()).
			Msg("remote air quality call failed")
		return s.fallback(ctx, lat, lng, "remote failure")
	}

	s.breaker.Success()

	sample := s.toSample(lat, lng, obs)
	s.cache.Put(lat, lng, sample)

	s.logger.Debug().
		Str("provider", s.provider.Name()).
		Float64("lat", lat).
		Float64("lng", lng).
		Int("aqi", sample.AQI).
		Msg("remote air quality fetched")

	return sample
}

// Estimate resolves a coordinate through the synthetic model only, with a
// full pollutant breakdown. Heatmap anchors and tests use Current; bulk
// grid fills use the estimator directly via the heatmap generator.
func (s *Service) Estimate(ctx context.Context, lat, lng float64) *Sample {
	return s.fallback(ctx, lat, lng, "estimate requested")
}

// ClearCaches resets the cache, rate window, and breaker. Administrative.
func (s *Service) ClearCaches() {
	s.cache.Clear()
	s.window.Reset()
	s.breaker.Reset()
	s.estimator.Reset()
	s.logger.Info().Msg("resilience state cleared")
}

// Status reports the current resilience state for observability.
func (s *Service) Status() ResilienceStatus {
	return ResilienceStatus{
		CacheSize:      s.cache.Len(),
		RecentRequests: s.window.Recent(),
		BreakerOpen:    s.breaker.Open(),
		FailureCount:   s.breaker.Failures(),
	}
}

func (s *Service) fallback(ctx context.Context, lat, lng float64, reason string) *Sample {
	s.metrics.count(ctx, "fallback")

	aqi := s.estimator.AQI(lat, lng)
	pollutants := syntheticPollutants(aqi, lat, lng)

	s.logger.Debug().
		Str("reason", reason).
		Float64("lat", lat).
		Float64("lng", lng).
		Int("aqi", aqi).
		Msg("serving estimated air quality")

	return &Sample{
		Source:            SourceEstimate,
		Lat:               lat,
		Lng:               lng,
		AQI:               aqi,
		Category:          Category(aqi),
		DominantPollutant: dominantPollutant(pollutants),
		Pollutants:        pollutants,
	}
}

func (s *Service) toSample(lat, lng float64, obs *Observation) *Sample {
	category := obs.Category
	if category == "" {
		category = Category(obs.AQI)
	}
	return &Sample{
		Source:            SourceRemote,
		Lat:               lat,
		Lng:               lng,
		AQI:               obs.AQI,
		Category:          category,
		DominantPollutant: obs.DominantPollutant,
		Pollutants:        obs.Pollutants,
		City:              obs.City,
		ObservedAt:        obs.ObservedAt,
	}
}

// serviceMetrics wraps the domain-level OpenTelemetry counter. A nil
// receiver is a no-op so metric initialization failures never block the
// data path.
type serviceMetrics struct {
	lookups metric.Int64Counter
}

func newServiceMetrics() *serviceMetrics {
	meter := otel.Meter(meterName)
	lookups, err := meter.Int64Counter(
		"airquality.lookups",
		metric.WithDescription("Air quality lookups by outcome"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil
	}
	return &serviceMetrics{lookups: lookups}
}

func (m *serviceMetrics) count(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.lookups.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}
