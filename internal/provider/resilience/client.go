// Package resilience provides a retrying HTTP client with a circuit
// breaker, plus a registry of provider health for the ops surface.
//
// This client is for provider paths whose errors are caller-visible
// (geocoding). The air-quality lookup path deliberately does NOT use it:
// that path must fail fast into synthetic estimation, and its failure
// accounting lives in the airquality service's own breaker.
package resilience

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker/v2"
)

// ErrCircuitOpen is returned when the circuit breaker rejects a request.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// ClientConfig holds configuration for the resilient HTTP client.
type ClientConfig struct {
	// Name identifies the client for breaker state and health reporting.
	Name string

	// Timeout bounds each individual HTTP attempt (default: 5s).
	Timeout time.Duration

	// MaxRetries is the number of retries after the first attempt
	// (default: 2).
	MaxRetries uint64

	// InitialInterval is the first retry backoff delay (default: 200ms).
	InitialInterval time.Duration

	// MaxInterval caps the retry backoff delay (default: 2s).
	MaxInterval time.Duration

	// BreakerCooldown is how long the breaker stays open (default: 30s).
	BreakerCooldown time.Duration
}

// Client is an HTTP client that retries transient failures with
// exponential backoff and trips a circuit breaker on sustained failure.
type Client struct {
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*http.Response]
	config     ClientConfig
}

// NewClient creates a resilient HTTP client.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 2
	}
	if cfg.InitialInterval == 0 {
		cfg.InitialInterval = 200 * time.Millisecond
	}
	if cfg.MaxInterval == 0 {
		cfg.MaxInterval = 2 * time.Second
	}
	if cfg.BreakerCooldown == 0 {
		cfg.BreakerCooldown = 30 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: 1,
		Timeout:     cfg.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		breaker:    breaker,
		config:     cfg,
	}
}

// Do executes the request, retrying transient failures (network errors
// and 5xx responses). It returns ErrCircuitOpen without attempting the
// network when the breaker is open.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.do(req.Context(), req)
}

func (c *Client) do(ctx context.Context, req *http.Request) (*http.Response, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.config.InitialInterval
	bo.MaxInterval = c.config.MaxInterval
	bo.MaxElapsedTime = 0 // retries bounded by count, not elapsed time

	policy := backoff.WithContext(backoff.WithMaxRetries(bo, c.config.MaxRetries), ctx)

	var lastResp *http.Response

	attempt := func() error {
		resp, err := c.breaker.Execute(func() (*http.Response, error) {
			r, err := c.httpClient.Do(req.Clone(ctx))
			if err != nil {
				return nil, err
			}
			if r.StatusCode >= 500 {
				// Drain so the connection can be reused, then retry.
				r.Body.Close()
				return nil, &StatusError{StatusCode: r.StatusCode}
			}
			return r, nil
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				return backoff.Permanent(ErrCircuitOpen)
			}
			return err
		}
		lastResp = resp
		return nil
	}

	if err := backoff.Retry(attempt, policy); err != nil {
		return nil, err
	}
	return lastResp, nil
}

// BreakerState returns the current circuit breaker state.
func (c *Client) BreakerState() gobreaker.State {
	return c.breaker.State()
}

// BreakerCounts returns the circuit breaker's request statistics.
func (c *Client) BreakerCounts() gobreaker.Counts {
	return c.breaker.Counts()
}

// StatusError represents an HTTP 5xx response treated as a failure.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return "server error: " + http.StatusText(e.StatusCode)
}
