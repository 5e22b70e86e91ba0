package airquality

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yoloholoknow/Respire/internal/estimate"
)

// mockProvider is a scriptable remote provider.
type mockProvider struct {
	mu    sync.Mutex
	calls int
	obs   *Observation
	err   error
}

func (m *mockProvider) FetchCurrent(_ context.Context, _, _ float64) (*Observation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if m.obs != nil {
		return m.obs, nil
	}
	return &Observation{AQI: 55, DominantPollutant: "pm25", ObservedAt: "2025-06-01T12:00:00Z"}, nil
}

func (m *mockProvider) Name() string { return "mock" }

func (m *mockProvider) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *mockProvider) setErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func newTestService(provider Provider) (*Service, *fakeClock) {
	clk := newFakeClock()
	s := NewService(ServiceConfig{
		Provider:             provider,
		Estimator:            estimate.New(estimate.Config{}),
		Logger:               zerolog.Nop(),
		CacheTTL:             10 * time.Minute,
		BreakerThreshold:     3,
		BreakerCooldown:      time.Minute,
		MaxRequestsPerMinute: 5,
	})
	s.cache.now = clk.now
	s.breaker.now = clk.now
	s.window.now = clk.now
	return s, clk
}

func TestCurrentCachesRemoteSample(t *testing.T) {
	provider := &mockProvider{}
	s, clk := newTestService(provider)
	ctx := context.Background()

	first := s.Current(ctx, 40.7128, -74.0060)
	require.NotNil(t, first)
	assert.Equal(t, SourceRemote, first.Source)
	assert.Equal(t, 55, first.AQI)
	assert.Equal(t, "Moderate", first.Category)
	assert.Equal(t, 1, provider.callCount())

	// Within the TTL the cached sample is returned without a remote call.
	second := s.Current(ctx, 40.7128, -74.0060)
	assert.Same(t, first, second)
	assert.Equal(t, 1, provider.callCount())

	// After expiry a fresh remote call is eligible.
	clk.advance(11 * time.Minute)
	third := s.Current(ctx, 40.7128, -74.0060)
	assert.Equal(t, SourceRemote, third.Source)
	assert.Equal(t, 2, provider.callCount())
}

func TestCurrentFallsBackOnRemoteFailure(t *testing.T) {
	provider := &mockProvider{}
	provider.setErr(ErrTransport)
	s, _ := newTestService(provider)

	sample := s.Current(context.Background(), 48.8566, 2.3522)
	require.NotNil(t, sample, "the service is total: it never returns nil")
	assert.Equal(t, SourceEstimate, sample.Source)
	assert.True(t, sample.Estimated())
	assert.NotEmpty(t, sample.Pollutants, "fallback synthesizes a breakdown")
	assert.NotEmpty(t, sample.DominantPollutant)

	// The dominant pollutant is the highest synthetic AQI.
	best := -1
	for _, p := range sample.Pollutants {
		if p.AQI > best {
			best = p.AQI
		}
	}
	for _, p := range sample.Pollutants {
		if p.Code == sample.DominantPollutant {
			assert.Equal(t, best, p.AQI)
		}
	}
}

func TestBreakerStopsRemoteCalls(t *testing.T) {
	provider := &mockProvider{}
	provider.setErr(ErrTimeout)
	s, clk := newTestService(provider)
	ctx := context.Background()

	// Distinct coordinates avoid the cache; threshold is 3.
	for i := 0; i < 3; i++ {
		s.Current(ctx, 10+float64(i), 20)
	}
	assert.Equal(t, 3, provider.callCount())
	assert.True(t, s.Status().BreakerOpen)

	// While open, requests fall back without touching the provider.
	s.Current(ctx, 14, 20)
	s.Current(ctx, 15, 20)
	assert.Equal(t, 3, provider.callCount())

	// After the cooldown the next request attempts the remote again.
	provider.setErr(nil)
	clk.advance(61 * time.Second)
	sample := s.Current(ctx, 16, 20)
	assert.Equal(t, 4, provider.callCount())
	assert.Equal(t, SourceRemote, sample.Source)
	assert.False(t, s.Status().BreakerOpen)
	assert.Zero(t, s.Status().FailureCount)
}

func TestRateWindowLimitsRemoteCalls(t *testing.T) {
	provider := &mockProvider{}
	s, _ := newTestService(provider) // max 5 per minute
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		s.Current(ctx, 30+float64(i), -100)
	}

	assert.Equal(t, 5, provider.callCount(), "the sixth request must not reach the provider")

	last := s.Current(ctx, 37, -100)
	assert.Equal(t, SourceEstimate, last.Source)
	assert.Equal(t, 5, provider.callCount())
}

func TestNilProviderAlwaysEstimates(t *testing.T) {
	s := NewService(ServiceConfig{
		Estimator: estimate.New(estimate.Config{}),
		Logger:    zerolog.Nop(),
	})

	sample := s.Current(context.Background(), 51.5074, -0.1278)
	require.NotNil(t, sample)
	assert.Equal(t, SourceEstimate, sample.Source)
}

func TestClearCachesResetsState(t *testing.T) {
	provider := &mockProvider{}
	provider.setErr(ErrMalformedResponse)
	s, _ := newTestService(provider)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		s.Current(ctx, float64(i), 0)
	}

	status := s.Status()
	assert.True(t, status.BreakerOpen)
	assert.Equal(t, 3, status.FailureCount)
	assert.Equal(t, 3, status.RecentRequests)

	s.ClearCaches()

	status = s.Status()
	assert.False(t, status.BreakerOpen)
	assert.Zero(t, status.FailureCount)
	assert.Zero(t, status.RecentRequests)
	assert.Zero(t, status.CacheSize)
}

func TestStatusCountsCache(t *testing.T) {
	provider := &mockProvider{}
	s, _ := newTestService(provider)
	ctx := context.Background()

	s.Current(ctx, 1, 1)
	s.Current(ctx, 2, 2)
	assert.Equal(t, 2, s.Status().CacheSize)
}

func TestEstimateBypassesProvider(t *testing.T) {
	provider := &mockProvider{}
	s, _ := newTestService(provider)

	sample := s.Estimate(context.Background(), 35.0, 139.0)
	assert.Equal(t, SourceEstimate, sample.Source)
	assert.Zero(t, provider.callCount())
}

func TestConcurrentLookups(t *testing.T) {
	provider := &mockProvider{}
	s, _ := newTestService(provider)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sample := s.Current(ctx, float64(i%4), float64(i%3))
			assert.NotNil(t, sample)
		}(i)
	}
	wg.Wait()

	// At most max-per-minute remote calls were admitted; everything else
	// was served from cache or estimation.
	assert.LessOrEqual(t, provider.callCount(), 5)
}
