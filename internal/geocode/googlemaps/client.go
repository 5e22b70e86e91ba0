// Package googlemaps provides a client for the Google Geocoding API.
package googlemaps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Yoloholoknow/Respire/internal/geocode"
	"github.com/Yoloholoknow/Respire/internal/provider/resilience"
)

const (
	// ProviderName identifies this provider.
	ProviderName = "googlemaps"

	// DefaultBaseURL is the Google Geocoding API base URL.
	DefaultBaseURL = "https://maps.googleapis.com/maps/api"
)

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the geocoding client.
type ClientConfig struct {
	// APIKey is the Google Maps Platform API key (required).
	APIKey string

	// BaseURL is the API base URL (optional, defaults to DefaultBaseURL).
	BaseURL string

	// HTTPClient is the HTTP client to use. If nil, a resilient client
	// with retries and a circuit breaker is created.
	HTTPClient HTTPDoer

	// Registry records call outcomes for health reporting (optional).
	Registry *resilience.Registry

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is a Google Geocoding API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient HTTPDoer
	registry   *resilience.Registry
	logger     zerolog.Logger
}

// NewClient creates a new geocoding client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		resilient := resilience.NewClient(resilience.ClientConfig{Name: ProviderName})
		if cfg.Registry != nil {
			cfg.Registry.Register(ProviderName, resilient)
		}
		httpClient = resilient
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		registry:   cfg.Registry,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// API response types (Google Geocoding API).

type geocodeResponse struct {
	Status  string          `json:"status"`
	Results []geocodeResult `json:"results"`
}

type geocodeResult struct {
	FormattedAddress string   `json:"formatted_address"`
	Geometry         geometry `json:"geometry"`
}

type geometry struct {
	Location latLng `json:"location"`
}

type latLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Geocode resolves a free-form address through the Geocoding API.
func (c *Client) Geocode(ctx context.Context, address string) (*geocode.Location, error) {
	endpoint := fmt.Sprintf("%s/geocode/json?address=%s&key=%s",
		c.baseURL, url.QueryEscape(address), c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create geocode request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recordFailure(err)
		return nil, fmt.Errorf("%w: %v", geocode.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("%w: status %d", geocode.ErrProviderUnavailable, resp.StatusCode)
		c.recordFailure(err)
		return nil, err
	}

	var result geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		c.recordFailure(err)
		return nil, fmt.Errorf("%w: decode response: %v", geocode.ErrProviderUnavailable, err)
	}

	switch result.Status {
	case "OK":
		// Fall through to the first result below.
	case "ZERO_RESULTS":
		return nil, geocode.ErrNotFound
	default:
		err := fmt.Errorf("%w: status %q", geocode.ErrProviderUnavailable, result.Status)
		c.recordFailure(err)
		return nil, err
	}

	if len(result.Results) == 0 {
		return nil, geocode.ErrNotFound
	}

	c.recordSuccess()

	top := result.Results[0]
	return &geocode.Location{
		Address: top.FormattedAddress,
		Lat:     top.Geometry.Location.Lat,
		Lng:     top.Geometry.Location.Lng,
	}, nil
}

func (c *Client) recordSuccess() {
	if c.registry != nil {
		c.registry.RecordSuccess(ProviderName)
	}
}

func (c *Client) recordFailure(err error) {
	if c.registry != nil {
		c.registry.RecordFailure(ProviderName, err)
	}
}
