// Package api provides the HTTP API for Respire.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/Yoloholoknow/Respire/internal/airquality"
	"github.com/Yoloholoknow/Respire/internal/api/handler"
	"github.com/Yoloholoknow/Respire/internal/api/middleware"
	"github.com/Yoloholoknow/Respire/internal/forecast"
	"github.com/Yoloholoknow/Respire/internal/geocode"
	"github.com/Yoloholoknow/Respire/internal/heatmap"
	"github.com/Yoloholoknow/Respire/internal/provider/resilience"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version           string
	BuildTime         string
	Logger            zerolog.Logger
	ServiceName       string
	Metrics           *middleware.Metrics
	AirQualityService *airquality.Service
	HeatmapGenerator  *heatmap.Generator
	GeocodeService    *geocode.Service
	ForecastService   *forecast.Service
	ProviderRegistry  *resilience.Registry
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "respire-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)
	r.Use(middleware.Tracing(serviceName))
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware())
	}
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.RequireJSON)
	r.Use(middleware.ContentTypeJSON)

	airQualityHandler := handler.NewAirQualityHandler(cfg.AirQualityService)
	heatmapHandler := handler.NewHeatmapHandler(cfg.HeatmapGenerator)
	geocodeHandler := handler.NewGeocodeHandler(cfg.GeocodeService)
	forecastHandler := handler.NewForecastHandler(cfg.ForecastService)
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.AirQualityService, cfg.GeocodeService, cfg.ProviderRegistry)

	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit) // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)   // 100 req/min

	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public, unthrottled for health checks)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/status", opsHandler.SystemStatus)
			r.Post("/caches:clear", opsHandler.ClearCaches)
		})

		// Point lookups - standard rate limiting
		r.With(standardRateLimit).Get("/air-quality", airQualityHandler.Current)
		r.With(standardRateLimit).Get("/forecast", forecastHandler.Daily)
		r.With(standardRateLimit).Post("/geocode", geocodeHandler.Geocode)

		// Heatmap generation - expensive compute, strict rate limiting
		r.With(expensiveRateLimit).Post("/heatmap", heatmapHandler.Generate)
	})

	return r
}
