// Package estimate provides a deterministic synthetic air-quality model.
//
// The model is a heuristic fallback for coordinates where no live provider
// data is available. Its only contract is determinism and boundedness:
// the same coordinates always produce the same AQI, and every result lies
// in [MinAQI, MaxAQI]. It makes no claim of physical accuracy.
package estimate

import (
	"math"
	"sync"

	"github.com/Yoloholoknow/Respire/internal/geo"
)

const (
	// MinAQI and MaxAQI bound every estimate.
	MinAQI = 5
	MaxAQI = 200

	// jitterSalt keys the deterministic noise stream for estimates.
	jitterSalt = "estimate-aqi"
)

// Config holds tunables for the Estimator.
type Config struct {
	// BaseAQI is the land baseline before regional scaling (default: 40).
	BaseAQI float64

	// CacheCapacity bounds the memo cache. When full the cache is reset
	// rather than evicted entry-by-entry; estimates are cheap to recompute
	// (default: 4096, <= 0 disables caching).
	CacheCapacity int

	// Hotspots overrides the built-in hotspot table (nil uses defaults).
	Hotspots []Hotspot

	// Regions overrides the built-in region multiplier table (nil uses defaults).
	Regions []Region
}

// Estimator computes deterministic synthetic AQI values from coordinates.
type Estimator struct {
	baseAQI  float64
	hotspots []Hotspot
	regions  []Region
	oceans   []oceanBand

	mu       sync.Mutex
	memo     map[string]int
	capacity int
}

// New creates an Estimator with the given configuration.
func New(cfg Config) *Estimator {
	baseAQI := cfg.BaseAQI
	if baseAQI == 0 {
		baseAQI = 40
	}

	capacity := cfg.CacheCapacity
	if capacity == 0 {
		capacity = 4096
	}

	hotspots := cfg.Hotspots
	if hotspots == nil {
		hotspots = defaultHotspots()
	}

	regions := cfg.Regions
	if regions == nil {
		regions = defaultRegions()
	}

	e := &Estimator{
		baseAQI:  baseAQI,
		hotspots: hotspots,
		regions:  regions,
		oceans:   defaultOceanBands(),
		capacity: capacity,
	}
	if capacity > 0 {
		e.memo = make(map[string]int, capacity)
	}
	return e
}

// AQI returns the synthetic AQI for a coordinate. Deterministic: identical
// inputs always yield identical output.
func (e *Estimator) AQI(lat, lng float64) int {
	key := geo.CacheKey(lat, lng)

	if e.memo != nil {
		e.mu.Lock()
		if v, ok := e.memo[key]; ok {
			e.mu.Unlock()
			return v
		}
		e.mu.Unlock()
	}

	v := e.compute(lat, lng)

	if e.memo != nil {
		e.mu.Lock()
		if len(e.memo) >= e.capacity {
			e.memo = make(map[string]int, e.capacity)
		}
		e.memo[key] = v
		e.mu.Unlock()
	}

	return v
}

// CacheSize returns the number of memoized estimates.
func (e *Estimator) CacheSize() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.memo)
}

// Reset clears the memo cache.
func (e *Estimator) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.capacity > 0 {
		e.memo = make(map[string]int, e.capacity)
	}
}

func (e *Estimator) compute(lat, lng float64) int {
	// Polar bands and open ocean carry very little pollution. Return a
	// low value in a narrow deterministic range instead of running the
	// land model.
	if math.Abs(lat) > geo.PolarLat {
		return MinAQI + int(geo.JitterUnit(lat, lng, jitterSalt)*8)
	}
	if e.overOcean(lat, lng) {
		return MinAQI + 3 + int(geo.JitterUnit(lat, lng, jitterSalt)*12)
	}

	base := e.baseAQI * e.regionMultiplier(lat, lng)

	// Hotspots do not sum: the dominant contribution wins.
	var contribution float64
	for _, h := range e.hotspots {
		d := geo.DegreeDistance(lat, lng, h.Lat, h.Lng)
		if d >= h.Radius {
			continue
		}
		influence := (1 - d/h.Radius) * float64(h.Peak)
		if influence > contribution {
			contribution = influence
		}
	}

	value := (base + contribution) * latitudeBandFactor(lat)

	// Bounded deterministic noise so neighboring cells do not render as
	// flat plateaus.
	value += geo.Jitter(lat, lng, jitterSalt) * 6

	return clampAQI(int(math.Round(value)))
}

func (e *Estimator) regionMultiplier(lat, lng float64) float64 {
	for _, r := range e.regions {
		if lat >= r.LatMin && lat <= r.LatMax && lng >= r.LngMin && lng <= r.LngMax {
			return r.Multiplier
		}
	}
	return 0.85 // unlisted land defaults slightly below baseline
}

func (e *Estimator) overOcean(lat, lng float64) bool {
	for _, b := range e.oceans {
		if lat >= b.LatMin && lat <= b.LatMax && lng >= b.LngMin && lng <= b.LngMax {
			return true
		}
	}
	return false
}

// latitudeBandFactor nudges equatorial bands up (stagnant air, biomass
// burning) and high-latitude bands down.
func latitudeBandFactor(lat float64) float64 {
	abs := math.Abs(lat)
	switch {
	case abs < 20:
		return 1.1
	case abs > 50:
		return 0.9
	default:
		return 1.0
	}
}

func clampAQI(v int) int {
	if v < MinAQI {
		return MinAQI
	}
	if v > MaxAQI {
		return MaxAQI
	}
	return v
}
