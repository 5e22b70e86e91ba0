// Package main provides the entrypoint for the Respire API server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/Yoloholoknow/Respire/internal/airquality"
	"github.com/Yoloholoknow/Respire/internal/airquality/googleair"
	"github.com/Yoloholoknow/Respire/internal/api"
	"github.com/Yoloholoknow/Respire/internal/api/middleware"
	"github.com/Yoloholoknow/Respire/internal/config"
	"github.com/Yoloholoknow/Respire/internal/estimate"
	"github.com/Yoloholoknow/Respire/internal/forecast"
	"github.com/Yoloholoknow/Respire/internal/geocode"
	"github.com/Yoloholoknow/Respire/internal/geocode/googlemaps"
	"github.com/Yoloholoknow/Respire/internal/heatmap"
	"github.com/Yoloholoknow/Respire/internal/provider/resilience"
	"github.com/Yoloholoknow/Respire/internal/telemetry"
	"github.com/Yoloholoknow/Respire/internal/warmer"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "respire-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting Respire API")

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("configuration error")
	}

	// Initialize OpenTelemetry
	ctx := context.Background()
	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Enabled:        cfg.TelemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if cfg.TelemetryEnabled {
		log.Info().
			Str("otlp_endpoint", cfg.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	// Shared deterministic estimation model
	estimator := estimate.New(estimate.Config{})

	// Resilient air-quality pipeline
	aqProvider := googleair.NewClient(googleair.ClientConfig{
		APIKey:  cfg.GoogleMapsAPIKey,
		Timeout: cfg.RemoteTimeout,
	})
	aqService := airquality.NewService(airquality.ServiceConfig{
		Provider:             aqProvider,
		Estimator:            estimator,
		Logger:               log,
		CacheTTL:             cfg.CacheTTL,
		RemoteTimeout:        cfg.RemoteTimeout,
		BreakerThreshold:     cfg.BreakerThreshold,
		BreakerCooldown:      cfg.BreakerCooldown,
		MaxRequestsPerMinute: cfg.MaxRequestsPerMinute,
	})
	log.Info().
		Str("provider", aqProvider.Name()).
		Dur("cache_ttl", cfg.CacheTTL).
		Int("breaker_threshold", cfg.BreakerThreshold).
		Msg("air-quality service initialized")

	// Geocoding with provider health tracking
	registry := resilience.NewRegistry()
	geocodeService := geocode.NewService(geocode.ServiceConfig{
		Provider: googlemaps.NewClient(googlemaps.ClientConfig{
			APIKey:   cfg.GoogleMapsAPIKey,
			Registry: registry,
		}),
		Logger: log,
	})
	log.Info().Msg("geocode service initialized")

	heatmapGenerator := heatmap.NewGenerator(heatmap.Config{
		Estimator: estimator,
		Provider:  aqService,
		Logger:    log,
	})

	forecastService := forecast.NewService(forecast.ServiceConfig{
		Estimator: estimator,
		Logger:    log,
	})

	// Anchor cache warmer keeps popular cities served from cache
	if cfg.WarmerEnabled {
		w := warmer.New(warmer.Config{
			Service:  aqService,
			Interval: cfg.WarmerInterval,
			Logger:   log,
		})
		if err := w.Start(ctx); err != nil {
			log.Error().Err(err).Msg("failed to start cache warmer")
		} else {
			defer w.Stop()
			log.Info().
				Dur("interval", cfg.WarmerInterval).
				Msg("cache warmer started")
		}
	}

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:           Version,
		BuildTime:         BuildTime,
		Logger:            log,
		ServiceName:       serviceName,
		Metrics:           metrics,
		AirQualityService: aqService,
		HeatmapGenerator:  heatmapGenerator,
		GeocodeService:    geocodeService,
		ForecastService:   forecastService,
		ProviderRegistry:  registry,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
