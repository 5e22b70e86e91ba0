package googleair_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yoloholoknow/Respire/internal/airquality"
	"github.com/Yoloholoknow/Respire/internal/airquality/googleair"
)

const lookupResponse = `{
	"dateTime": "2025-06-01T12:00:00Z",
	"regionCode": "us",
	"indexes": [
		{"code": "uaqi", "aqi": 63, "category": "Moderate air quality", "dominantPollutant": "PM25"}
	],
	"pollutants": [
		{"code": "PM25", "displayName": "PM2.5", "fullName": "Fine particulate matter (<2.5µm)",
		 "concentration": {"value": 13.1, "units": "MICROGRAMS_PER_CUBIC_METER"}},
		{"code": "O3", "displayName": "O3", "fullName": "Ozone",
		 "concentration": {"value": 41.0, "units": "PARTS_PER_BILLION"}}
	]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *googleair.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return googleair.NewClient(googleair.ClientConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
	})
}

func TestFetchCurrent(t *testing.T) {
	var gotBody map[string]any

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/currentConditions:lookup", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(lookupResponse))
	})

	obs, err := client.FetchCurrent(context.Background(), 40.7128, -74.0060)
	require.NoError(t, err)

	assert.Equal(t, 63, obs.AQI)
	assert.Equal(t, "Moderate air quality", obs.Category)
	assert.Equal(t, "pm25", obs.DominantPollutant)
	assert.Equal(t, "2025-06-01T12:00:00Z", obs.ObservedAt)

	require.Len(t, obs.Pollutants, 2)
	assert.Equal(t, "pm25", obs.Pollutants[0].Code)
	assert.Equal(t, "ug/m3", obs.Pollutants[0].Concentration.Units)
	assert.Equal(t, "ppb", obs.Pollutants[1].Concentration.Units)

	location, ok := gotBody["location"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 40.7128, location["latitude"], 1e-9)
	assert.InDelta(t, -74.0060, location["longitude"], 1e-9)
}

func TestFetchCurrentPrefersUniversalIndex(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
			"indexes": [
				{"code": "usa_epa", "aqi": 80, "dominantPollutant": "O3"},
				{"code": "uaqi", "aqi": 58, "dominantPollutant": "PM10"}
			]
		}`))
	})

	obs, err := client.FetchCurrent(context.Background(), 34.05, -118.24)
	require.NoError(t, err)
	assert.Equal(t, 58, obs.AQI)
	assert.Equal(t, "pm10", obs.DominantPollutant)
}

func TestFetchCurrentErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr error
	}{
		{
			name: "no data",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
			wantErr: airquality.ErrNoData,
		},
		{
			name: "empty indexes",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"indexes": []}`))
			},
			wantErr: airquality.ErrNoData,
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantErr: airquality.ErrMalformedResponse,
		},
		{
			name: "undecodable body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{not json`))
			},
			wantErr: airquality.ErrMalformedResponse,
		},
		{
			name: "negative aqi",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"indexes": [{"code": "uaqi", "aqi": -1}]}`))
			},
			wantErr: airquality.ErrMalformedResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler)
			_, err := client.FetchCurrent(context.Background(), 1, 2)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFetchCurrentTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(lookupResponse))
	}))
	t.Cleanup(server.Close)

	client := googleair.NewClient(googleair.ClientConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Timeout: 20 * time.Millisecond,
	})

	_, err := client.FetchCurrent(context.Background(), 1, 2)
	require.Error(t, err)
	assert.True(t,
		errors.Is(err, airquality.ErrTimeout) || errors.Is(err, airquality.ErrTransport),
		"timeouts classify as timeout or transport, got %v", err)
}
