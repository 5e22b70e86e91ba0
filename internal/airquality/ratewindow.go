package airquality

import (
	"sync"
	"time"
)

// RateWindow is a sliding-window request budget for the remote provider.
// Entries older than the window are pruned before each admission check;
// an attempt is admitted iff fewer than max timestamps remain.
type RateWindow struct {
	max    int
	window time.Duration
	now    func() time.Time

	mu     sync.Mutex
	stamps []time.Time
}

// NewRateWindow creates a RateWindow admitting at most max requests per
// window duration.
func NewRateWindow(max int, window time.Duration) *RateWindow {
	return &RateWindow{
		max:    max,
		window: window,
		now:    time.Now,
	}
}

// Admit records and admits an attempt if the trailing window has budget
// left. It returns false, recording nothing, when the window is saturated.
func (w *RateWindow) Admit() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.prune()
	if len(w.stamps) >= w.max {
		return false
	}
	w.stamps = append(w.stamps, w.now())
	return true
}

// Recent returns the number of requests recorded in the trailing window.
func (w *RateWindow) Recent() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.prune()
	return len(w.stamps)
}

// Reset clears the window.
func (w *RateWindow) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stamps = w.stamps[:0]
}

// prune drops timestamps older than the window. Callers must hold w.mu.
func (w *RateWindow) prune() {
	cutoff := w.now().Add(-w.window)
	i := 0
	for ; i < len(w.stamps); i++ {
		if w.stamps[i].After(cutoff) {
			break
		}
	}
	if i > 0 {
		w.stamps = append(w.stamps[:0], w.stamps[i:]...)
	}
}
