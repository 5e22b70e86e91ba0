package airquality

import (
	"sync"
	"time"
)

// Breaker is a consecutive-failure circuit breaker with time-based
// recovery. It differs from a half-open probe protocol on purpose: once
// the cooldown elapses after opening, the next Allow() self-resets the
// breaker and lets the caller attempt the remote provider again. Repeated
// failures will re-open it just as fast.
type Breaker struct {
	threshold int
	cooldown  time.Duration
	now       func() time.Time

	mu       sync.Mutex
	failures int
	openedAt time.Time
}

// NewBreaker creates a Breaker that opens after threshold consecutive
// failures and stays open for cooldown.
func NewBreaker(threshold int, cooldown time.Duration) *Breaker {
	return &Breaker{
		threshold: threshold,
		cooldown:  cooldown,
		now:       time.Now,
	}
}

// Allow reports whether a remote attempt may proceed. When the cooldown
// has elapsed on an open breaker, Allow resets the failure count and the
// open timestamp, then admits the attempt.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.failures < b.threshold {
		return true
	}

	if b.now().Sub(b.openedAt) < b.cooldown {
		return false
	}

	// Cooldown elapsed: self-reset and admit the attempt.
	b.failures = 0
	b.openedAt = time.Time{}
	return true
}

// Success records a successful remote call. Failures decrement towards
// zero, never below.
func (b *Breaker) Success() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failures > 0 {
		b.failures--
	}
}

// Failure records a failed remote call, opening the breaker and stamping
// the open time when the threshold is reached.
func (b *Breaker) Failure() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures++
	if b.failures == b.threshold {
		b.openedAt = b.now()
	}
}

// Open reports whether the breaker currently blocks remote attempts.
func (b *Breaker) Open() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.failures >= b.threshold && b.now().Sub(b.openedAt) < b.cooldown
}

// Failures returns the current consecutive-failure count.
func (b *Breaker) Failures() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.failures
}

// Reset returns the breaker to its closed, zero-failure state.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = 0
	b.openedAt = time.Time{}
}
