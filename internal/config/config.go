// Package config loads application configuration from the environment.
package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingAPIKey is returned when the Google Maps Platform key is absent.
// This is the single fatal configuration error: without it the remote
// air-quality and geocoding providers cannot be constructed.
var ErrMissingAPIKey = errors.New("GOOGLE_MAPS_API_KEY is not set")

// Config holds all runtime configuration.
type Config struct {
	// Port is the HTTP listen port.
	Port string

	// Environment is the deployment environment name.
	Environment string

	// GoogleMapsAPIKey authenticates both the Air Quality and Geocoding
	// APIs.
	GoogleMapsAPIKey string

	// OTLPEndpoint is the OpenTelemetry collector address.
	OTLPEndpoint string

	// TelemetryEnabled toggles OTLP exporters.
	TelemetryEnabled bool

	// CacheTTL is the air-quality sample cache lifetime.
	CacheTTL time.Duration

	// RemoteTimeout bounds each remote air-quality call.
	RemoteTimeout time.Duration

	// BreakerThreshold is the consecutive-failure count that opens the
	// provider breaker.
	BreakerThreshold int

	// BreakerCooldown is how long the breaker stays open.
	BreakerCooldown time.Duration

	// MaxRequestsPerMinute caps remote air-quality calls per minute.
	MaxRequestsPerMinute int

	// WarmerEnabled toggles the anchor cache warmer.
	WarmerEnabled bool

	// WarmerInterval is the time between anchor warm-up rounds.
	WarmerInterval time.Duration
}

// FromEnv builds a Config from environment variables, loading a local
// .env file first when present.
func FromEnv() (*Config, error) {
	// Development convenience only; a missing .env is not an error.
	_ = godotenv.Load()

	apiKey := os.Getenv("GOOGLE_MAPS_API_KEY")
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	return &Config{
		Port:                 envString("APP_PORT", "8080"),
		Environment:          envString("APP_ENV", "development"),
		GoogleMapsAPIKey:     apiKey,
		OTLPEndpoint:         envString("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		TelemetryEnabled:     envBool("OTEL_ENABLED", false),
		CacheTTL:             envDuration("AQ_CACHE_TTL", 10*time.Minute),
		RemoteTimeout:        envDuration("AQ_REMOTE_TIMEOUT", 3*time.Second),
		BreakerThreshold:     envInt("AQ_BREAKER_THRESHOLD", 5),
		BreakerCooldown:      envDuration("AQ_BREAKER_COOLDOWN", time.Minute),
		MaxRequestsPerMinute: envInt("AQ_MAX_REQUESTS_PER_MINUTE", 50),
		WarmerEnabled:        envBool("WARMER_ENABLED", true),
		WarmerInterval:       envDuration("WARMER_INTERVAL", 5*time.Minute),
	}, nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
