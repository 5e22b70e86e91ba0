// Package heatmap generates bounded, deterministic grids of air-quality
// sample points for arbitrary viewports, including viewports that cross
// the antimeridian.
package heatmap

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Yoloholoknow/Respire/internal/airquality"
	"github.com/Yoloholoknow/Respire/internal/estimate"
	"github.com/Yoloholoknow/Respire/internal/geo"
)

// Point is one rendered heatmap sample.
type Point struct {
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	AQI       int     `json:"aqi"`
	Weight    int     `json:"weight"`
	Estimated bool    `json:"estimated"`
}

// Config holds tunables for the Generator.
type Config struct {
	// Estimator resolves grid nodes (required). Heatmaps prioritize
	// speed: grid nodes never trigger remote calls.
	Estimator *estimate.Estimator

	// Provider resolves anchor points through the resilient service so
	// live readings appear when available. May be nil.
	Provider *airquality.Service

	// Logger for generation.
	Logger zerolog.Logger

	// TargetDivisions is the number of grid cells aimed for across each
	// viewport axis (default: 20). Keeps cost roughly constant for any
	// viewport size.
	TargetDivisions int

	// MinStep and MaxStep clamp the per-axis step in degrees
	// (defaults: 0.02 and 10).
	MinStep float64
	MaxStep float64

	// GlobalStep is the fixed step for the no-bounds global grid
	// (default: 12 degrees).
	GlobalStep float64

	// AnchorTimeout bounds each anchor resolution (default: 2s).
	AnchorTimeout time.Duration

	// Anchors overrides the built-in anchor set (nil uses defaults).
	Anchors []Anchor
}

// Generator produces heatmap point sets.
type Generator struct {
	estimator       *estimate.Estimator
	provider        *airquality.Service
	logger          zerolog.Logger
	targetDivisions int
	minStep         float64
	maxStep         float64
	globalStep      float64
	anchorTimeout   time.Duration
	anchors         []Anchor
}

// NewGenerator creates a Generator with the given configuration.
func NewGenerator(cfg Config) *Generator {
	targetDivisions := cfg.TargetDivisions
	if targetDivisions == 0 {
		targetDivisions = 20
	}

	minStep := cfg.MinStep
	if minStep == 0 {
		minStep = 0.02
	}

	maxStep := cfg.MaxStep
	if maxStep == 0 {
		maxStep = 10
	}

	globalStep := cfg.GlobalStep
	if globalStep == 0 {
		globalStep = 12
	}

	anchorTimeout := cfg.AnchorTimeout
	if anchorTimeout == 0 {
		anchorTimeout = 2 * time.Second
	}

	anchors := cfg.Anchors
	if anchors == nil {
		anchors = DefaultAnchors()
	}

	return &Generator{
		estimator:       cfg.Estimator,
		provider:        cfg.Provider,
		logger:          cfg.Logger,
		targetDivisions: targetDivisions,
		minStep:         minStep,
		maxStep:         maxStep,
		globalStep:      globalStep,
		anchorTimeout:   anchorTimeout,
		anchors:         anchors,
	}
}

// Generate produces at most maxPoints heatmap points covering the
// viewport. A nil bounds means the whole globe at a coarse fixed step.
// Generate is total: it never fails for valid bounds.
func (g *Generator) Generate(ctx context.Context, bounds *geo.Bounds, maxPoints int) []Point {
	start := time.Now()

	var grid []Point
	if bounds == nil {
		grid = g.globalGrid()
	} else {
		grid = g.viewportGrid(bounds.Normalize())
	}

	// Only the grid is downsampled. Anchors are always-sampled by
	// contract, so they get their own slice of the point budget and are
	// appended after the stride selection, which would otherwise drop
	// trailing points whenever the grid overshoots maxPoints.
	anchors := g.anchorPoints(ctx, bounds)
	if len(anchors) > maxPoints {
		anchors = Downsample(anchors, maxPoints)
	}
	out := append(Downsample(grid, maxPoints-len(anchors)), anchors...)

	g.logger.Debug().
		Int("grid_points", len(grid)).
		Int("anchor_points", len(anchors)).
		Int("returned", len(out)).
		Int("max_points", maxPoints).
		Bool("global", bounds == nil).
		Dur("duration", time.Since(start)).
		Msg("heatmap generated")

	return out
}

// globalGrid covers the full globe at the fixed coarse step.
func (g *Generator) globalGrid() []Point {
	var points []Point
	for lat := -geo.MaxRenderableLat; lat <= geo.MaxRenderableLat; lat += g.globalStep {
		for lng := -180.0; lng < 180.0; lng += g.globalStep {
			points = append(points, g.node(lat, lng, g.globalStep))
		}
	}
	return points
}

// viewportGrid adapts the step to the viewport so the cell count stays
// roughly constant regardless of zoom level.
func (g *Generator) viewportGrid(b geo.Bounds) []Point {
	latStep := clampStep(b.LatSpan()/float64(g.targetDivisions), g.minStep, g.maxStep)
	lngStep := clampStep(b.LngSpan()/float64(g.targetDivisions), g.minStep, g.maxStep)

	var points []Point
	for lat := b.LatMin; lat <= b.LatMax; lat += latStep {
		if b.Wraps() {
			// Two contiguous sub-ranges instead of one wrapped range.
			for lng := b.LngMin; lng < 180; lng += lngStep {
				points = append(points, g.node(lat, lng, lngStep))
			}
			for lng := -180.0; lng <= b.LngMax; lng += lngStep {
				points = append(points, g.node(lat, lng, lngStep))
			}
		} else {
			for lng := b.LngMin; lng <= b.LngMax; lng += lngStep {
				points = append(points, g.node(lat, lng, lngStep))
			}
		}
	}
	return points
}

// node resolves a grid node through the estimator, applying a small
// deterministic positional jitter so the grid does not render perfectly
// rectilinear. The jittered point is clamped in latitude and wrapped in
// longitude; the same rule applies to every grid branch.
func (g *Generator) node(lat, lng, step float64) Point {
	jitterScale := step * 0.25
	jLat := geo.ClampLat(lat + geo.Jitter(lat, lng, "grid-lat")*jitterScale)
	jLng := geo.WrapLng(lng + geo.Jitter(lat, lng, "grid-lng")*jitterScale)

	aqi := g.estimator.AQI(jLat, jLng)
	return Point{
		Lat:       jLat,
		Lng:       jLng,
		AQI:       aqi,
		Weight:    aqi,
		Estimated: true,
	}
}

// anchorConcurrency bounds parallel anchor lookups so a cold cache with
// a slow provider costs one timeout per batch, not one per anchor.
const anchorConcurrency = 4

// anchorPoints resolves the fixed anchor set through the resilient
// provider. Anchors outside the requested bounds are excluded; with nil
// bounds every anchor is included. Results keep the configured anchor
// order regardless of which lookup finishes first.
func (g *Generator) anchorPoints(ctx context.Context, bounds *geo.Bounds) []Point {
	if g.provider == nil {
		return nil
	}

	var wanted []Anchor
	for _, a := range g.anchors {
		if bounds != nil && !bounds.Normalize().Contains(a.Lat, a.Lng) {
			continue
		}
		wanted = append(wanted, a)
	}
	if len(wanted) == 0 {
		return nil
	}

	points := make([]Point, len(wanted))
	sem := make(chan struct{}, anchorConcurrency)
	var wg sync.WaitGroup
	for i, a := range wanted {
		wg.Add(1)
		go func(i int, a Anchor) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			anchorCtx, cancel := context.WithTimeout(ctx, g.anchorTimeout)
			defer cancel()

			sample := g.provider.Current(anchorCtx, a.Lat, a.Lng)
			points[i] = Point{
				Lat:       a.Lat,
				Lng:       a.Lng,
				AQI:       sample.AQI,
				Weight:    sample.AQI,
				Estimated: sample.Estimated(),
			}
		}(i, a)
	}
	wg.Wait()

	return points
}

func clampStep(step, min, max float64) float64 {
	return math.Max(min, math.Min(max, step))
}
