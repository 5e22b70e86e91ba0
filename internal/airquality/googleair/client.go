// Package googleair provides a client for the Google Air Quality API.
package googleair

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Yoloholoknow/Respire/internal/airquality"
)

const (
	// ProviderName identifies this provider.
	ProviderName = "googleair"

	// DefaultBaseURL is the Google Air Quality API base URL.
	DefaultBaseURL = "https://airquality.googleapis.com/v1"

	// universalAQICode is the index code for the cross-country AQI scale.
	universalAQICode = "uaqi"
)

// ClientConfig holds configuration for the Google Air Quality client.
type ClientConfig struct {
	// APIKey is the Google Maps Platform API key (required).
	APIKey string

	// BaseURL is the API base URL (optional, defaults to DefaultBaseURL).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional). No retrying client
	// belongs here: a failed call must fall back to estimation
	// immediately, and the service's breaker owns failure accounting.
	HTTPClient *http.Client

	// Timeout bounds each request when HTTPClient is nil (default: 3s).
	Timeout time.Duration

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is a Google Air Quality API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new Google Air Quality client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 3 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// Request/response types (Google Air Quality API currentConditions:lookup).

type lookupRequest struct {
	Location          lookupLocation `json:"location"`
	ExtraComputations []string       `json:"extraComputations,omitempty"`
	UniversalAQI      bool           `json:"universalAqi"`
}

type lookupLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type lookupResponse struct {
	DateTime   string          `json:"dateTime"`
	RegionCode string          `json:"regionCode"`
	Indexes    []indexData     `json:"indexes"`
	Pollutants []pollutantData `json:"pollutants"`
}

type indexData struct {
	Code              string `json:"code"`
	AQI               int    `json:"aqi"`
	Category          string `json:"category"`
	DominantPollutant string `json:"dominantPollutant"`
}

type pollutantData struct {
	Code          string            `json:"code"`
	DisplayName   string            `json:"displayName"`
	FullName      string            `json:"fullName"`
	Concentration concentrationData `json:"concentration"`
}

type concentrationData struct {
	Value float64 `json:"value"`
	Units string  `json:"units"`
}

// FetchCurrent looks up current conditions for a coordinate. Failures are
// classified into the airquality package taxonomy so the service can log
// them distinctly while treating them identically.
func (c *Client) FetchCurrent(ctx context.Context, lat, lng float64) (*airquality.Observation, error) {
	body, err := json.Marshal(lookupRequest{
		Location:          lookupLocation{Latitude: lat, Longitude: lng},
		ExtraComputations: []string{"POLLUTANT_CONCENTRATION", "DOMINANT_POLLUTANT_CONCENTRATION"},
		UniversalAQI:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("encode lookup request: %w", err)
	}

	url := fmt.Sprintf("%s/currentConditions:lookup?key=%s", c.baseURL, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create lookup request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return nil, fmt.Errorf("%w: %v", airquality.ErrTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", airquality.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, airquality.ErrNoData
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", airquality.ErrMalformedResponse, resp.StatusCode)
	}

	var result lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: %v", airquality.ErrMalformedResponse, err)
	}

	return c.toObservation(&result)
}

// toObservation normalizes the API response into the unified observation.
func (c *Client) toObservation(resp *lookupResponse) (*airquality.Observation, error) {
	if len(resp.Indexes) == 0 {
		return nil, airquality.ErrNoData
	}

	// Prefer the universal AQI index; fall back to the first index the
	// provider returned (regional scales for some countries).
	idx := resp.Indexes[0]
	for _, candidate := range resp.Indexes {
		if candidate.Code == universalAQICode {
			idx = candidate
			break
		}
	}

	if idx.AQI < 0 {
		return nil, fmt.Errorf("%w: negative aqi %d", airquality.ErrMalformedResponse, idx.AQI)
	}

	pollutants := make([]airquality.Pollutant, 0, len(resp.Pollutants))
	for _, p := range resp.Pollutants {
		pollutants = append(pollutants, airquality.Pollutant{
			Code:        strings.ToLower(p.Code),
			DisplayName: firstNonEmpty(p.FullName, p.DisplayName),
			Concentration: airquality.Concentration{
				Value: p.Concentration.Value,
				Units: normalizeUnits(p.Concentration.Units),
			},
		})
	}

	return &airquality.Observation{
		AQI:               idx.AQI,
		Category:          idx.Category,
		DominantPollutant: strings.ToLower(idx.DominantPollutant),
		Pollutants:        pollutants,
		City:              resp.RegionCode,
		ObservedAt:        resp.DateTime,
	}, nil
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// normalizeUnits maps the API's unit enum onto compact display units.
func normalizeUnits(units string) string {
	switch units {
	case "MICROGRAMS_PER_CUBIC_METER":
		return "ug/m3"
	case "PARTS_PER_BILLION":
		return "ppb"
	default:
		return strings.ToLower(units)
	}
}
