package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yoloholoknow/Respire/internal/airquality"
	"github.com/Yoloholoknow/Respire/internal/api"
	"github.com/Yoloholoknow/Respire/internal/api/models"
	"github.com/Yoloholoknow/Respire/internal/estimate"
	"github.com/Yoloholoknow/Respire/internal/forecast"
	"github.com/Yoloholoknow/Respire/internal/geocode"
	"github.com/Yoloholoknow/Respire/internal/heatmap"
	"github.com/Yoloholoknow/Respire/internal/provider/resilience"
)

// stubGeocoder resolves every address to a fixed location.
type stubGeocoder struct{}

func (stubGeocoder) Geocode(_ context.Context, address string) (*geocode.Location, error) {
	if address == "nowhere" {
		return nil, geocode.ErrNotFound
	}
	return &geocode.Location{Address: address, Lat: 33.749, Lng: -84.388}, nil
}

func (stubGeocoder) Name() string { return "stub" }

func newTestRouter() http.Handler {
	logger := zerolog.New(io.Discard)
	estimator := estimate.New(estimate.Config{})

	aqService := airquality.NewService(airquality.ServiceConfig{
		Estimator: estimator,
		Logger:    logger,
	})

	return api.NewRouter(api.RouterConfig{
		Version:           "test",
		BuildTime:         "2025-01-01T00:00:00Z",
		Logger:            logger,
		AirQualityService: aqService,
		HeatmapGenerator: heatmap.NewGenerator(heatmap.Config{
			Estimator: estimator,
			Logger:    logger,
		}),
		GeocodeService: geocode.NewService(geocode.ServiceConfig{
			Provider: stubGeocoder{},
			Logger:   logger,
		}),
		ForecastService: forecast.NewService(forecast.ServiceConfig{
			Estimator: estimator,
			Logger:    logger,
		}),
		ProviderRegistry: resilience.NewRegistry(),
	})
}

func TestRouter_HealthCheck(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/health", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))

	var health models.Health
	err := json.Unmarshal(w.Body.Bytes(), &health)
	require.NoError(t, err)

	assert.Equal(t, models.HealthStatusOK, health.Status)
	assert.Equal(t, "test", health.Details["version"])
}

func TestRouter_SystemStatus(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/status", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var status models.SystemStatus
	err := json.Unmarshal(w.Body.Bytes(), &status)
	require.NoError(t, err)

	assert.Equal(t, models.HealthStatusOK, status.Status)
	assert.False(t, status.AirQuality.BreakerOpen)
}

func TestRouter_AirQuality(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/air-quality?lat=33.749&lng=-84.388", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var sample airquality.Sample
	err := json.Unmarshal(w.Body.Bytes(), &sample)
	require.NoError(t, err)

	// No provider configured, so the sample is synthetic.
	assert.Equal(t, airquality.SourceEstimate, sample.Source)
	assert.GreaterOrEqual(t, sample.AQI, estimate.MinAQI)
	assert.LessOrEqual(t, sample.AQI, estimate.MaxAQI)
}

func TestRouter_AirQuality_InvalidCoordinates(t *testing.T) {
	router := newTestRouter()

	tests := []struct {
		name  string
		query string
	}{
		{name: "missing params", query: ""},
		{name: "non-numeric", query: "?lat=abc&lng=4.9"},
		{name: "latitude out of range", query: "?lat=91&lng=4.9"},
		{name: "longitude out of range", query: "?lat=52.4&lng=181"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/air-quality"+tt.query, http.NoBody)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))

			var problem models.Problem
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &problem))
			assert.Equal(t, models.ProblemTypeValidation, problem.Type)
		})
	}
}

func TestRouter_Heatmap(t *testing.T) {
	router := newTestRouter()

	body, err := json.Marshal(models.HeatmapRequest{
		Bounds: &models.BoundsRequest{
			LatMin: 33.5, LatMax: 34.0,
			LngMin: -84.6, LngMax: -84.2,
		},
		MaxPoints: 100,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/heatmap", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.HeatmapResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.Points)
	assert.Equal(t, len(resp.Points), resp.Count)
	assert.LessOrEqual(t, resp.Count, 100)
}

func TestRouter_Heatmap_GlobalWhenBoundsOmitted(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/v1/heatmap", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.HeatmapResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Points)
}

func TestRouter_Heatmap_RejectsWrongContentType(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/v1/heatmap", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestRouter_Geocode(t *testing.T) {
	router := newTestRouter()

	body := []byte(`{"address":"Atlanta, GA"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/geocode", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.GeocodeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 33.749, resp.Lat, 0.001)
	assert.InDelta(t, -84.388, resp.Lng, 0.001)
}

func TestRouter_Geocode_NotFound(t *testing.T) {
	router := newTestRouter()

	body := []byte(`{"address":"nowhere"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/geocode", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_Geocode_MissingAddress(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/v1/geocode", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_Forecast(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/forecast?lat=28.61&lng=77.21", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var fc forecast.Forecast
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fc))
	assert.Len(t, fc.Days, forecast.DaysAhead)
}

func TestRouter_ClearCaches(t *testing.T) {
	router := newTestRouter()

	// Warm the air-quality cache, then clear it.
	warm := httptest.NewRequest(http.MethodGet, "/v1/air-quality?lat=52.37&lng=4.89", http.NoBody)
	router.ServeHTTP(httptest.NewRecorder(), warm)

	req := httptest.NewRequest(http.MethodPost, "/v1/ops/caches:clear", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)

	statusReq := httptest.NewRequest(http.MethodGet, "/v1/ops/status", http.NoBody)
	statusW := httptest.NewRecorder()
	router.ServeHTTP(statusW, statusReq)

	var status models.SystemStatus
	require.NoError(t, json.Unmarshal(statusW.Body.Bytes(), &status))
	assert.Zero(t, status.AirQuality.CacheSize)
}

func TestRouter_UnknownRoute(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/does-not-exist", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_SecurityHeaders(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/health", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}
