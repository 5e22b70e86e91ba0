// Package warmer keeps the heatmap anchor set cache-warm by periodically
// resolving each anchor through the resilient air-quality service. When
// the remote provider is healthy, heatmap anchors then serve live data
// straight from cache instead of spending request-path budget.
package warmer

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog"

	"github.com/Yoloholoknow/Respire/internal/airquality"
	"github.com/Yoloholoknow/Respire/internal/heatmap"
)

// Config holds configuration for the anchor warmer.
type Config struct {
	// Service is the resilient air-quality service (required).
	Service *airquality.Service

	// Anchors are the points to keep warm (nil uses the heatmap defaults).
	Anchors []heatmap.Anchor

	// Interval between warm-up rounds (default: 5 minutes; should stay
	// below the service cache TTL or anchors go cold between rounds).
	Interval time.Duration

	// Concurrency bounds parallel lookups per round (default: 3).
	Concurrency int

	// PointTimeout bounds each lookup (default: 5 seconds).
	PointTimeout time.Duration

	// Logger for warmer operations.
	Logger zerolog.Logger
}

// Warmer runs scheduled anchor warm-up rounds.
type Warmer struct {
	service      *airquality.Service
	anchors      []heatmap.Anchor
	interval     time.Duration
	concurrency  int
	pointTimeout time.Duration
	logger       zerolog.Logger
	scheduler    *gocron.Scheduler
}

// New creates an anchor warmer.
func New(cfg Config) *Warmer {
	anchors := cfg.Anchors
	if anchors == nil {
		anchors = heatmap.DefaultAnchors()
	}

	interval := cfg.Interval
	if interval == 0 {
		interval = 5 * time.Minute
	}

	concurrency := cfg.Concurrency
	if concurrency == 0 {
		concurrency = 3
	}

	pointTimeout := cfg.PointTimeout
	if pointTimeout == 0 {
		pointTimeout = 5 * time.Second
	}

	return &Warmer{
		service:      cfg.Service,
		anchors:      anchors,
		interval:     interval,
		concurrency:  concurrency,
		pointTimeout: pointTimeout,
		logger:       cfg.Logger,
		scheduler:    gocron.NewScheduler(time.UTC),
	}
}

// Start schedules warm-up rounds and runs the first one immediately.
// It returns after starting the scheduler's own goroutine.
func (w *Warmer) Start(ctx context.Context) error {
	_, err := w.scheduler.Every(w.interval).Do(func() {
		w.RunOnce(ctx)
	})
	if err != nil {
		return err
	}

	w.scheduler.StartAsync()
	w.logger.Info().
		Dur("interval", w.interval).
		Int("anchors", len(w.anchors)).
		Msg("anchor warmer started")
	return nil
}

// Stop halts the scheduler. In-flight lookups finish on their own timeouts.
func (w *Warmer) Stop() {
	w.scheduler.Stop()
	w.logger.Info().Msg("anchor warmer stopped")
}

// RunOnce warms every anchor once and reports how many resolved to live
// remote data (the rest were rate-limited, broken-open, or estimated).
func (w *Warmer) RunOnce(ctx context.Context) int {
	start := time.Now()

	sem := make(chan struct{}, w.concurrency)
	var wg sync.WaitGroup
	var mu sync.Mutex
	live := 0

	for _, anchor := range w.anchors {
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(a heatmap.Anchor) {
			defer wg.Done()
			defer func() { <-sem }()

			pointCtx, cancel := context.WithTimeout(ctx, w.pointTimeout)
			defer cancel()

			sample := w.service.Current(pointCtx, a.Lat, a.Lng)
			if sample.Source == airquality.SourceRemote {
				mu.Lock()
				live++
				mu.Unlock()
			}
		}(anchor)
	}
	wg.Wait()

	w.logger.Info().
		Int("anchors", len(w.anchors)).
		Int("live", live).
		Dur("duration", time.Since(start)).
		Msg("anchor warm-up round finished")

	return live
}
