package estimate

// Hotspot is a fixed pollution source with a linear influence falloff.
// Radius and distance are measured in degree-space, which is coarse but
// cheap and good enough for a synthetic heuristic.
type Hotspot struct {
	Name   string
	Lat    float64
	Lng    float64
	Radius float64 // degrees
	Peak   int     // AQI contribution at the center
}

// Region scales the base pollution level inside a bounding box.
// Boxes are checked in order; the first match wins.
type Region struct {
	Name       string
	LatMin     float64
	LatMax     float64
	LngMin     float64
	LngMax     float64
	Multiplier float64
}

// defaultHotspots lists major urban and industrial pollution centers.
// Peaks are calibrated so hotspot centers land in the "unhealthy for
// sensitive groups" to "unhealthy" AQI bands.
func defaultHotspots() []Hotspot {
	return []Hotspot{
		{Name: "Delhi", Lat: 28.61, Lng: 77.21, Radius: 4.0, Peak: 185},
		{Name: "Beijing", Lat: 39.90, Lng: 116.41, Radius: 4.5, Peak: 160},
		{Name: "Shanghai", Lat: 31.23, Lng: 121.47, Radius: 3.5, Peak: 140},
		{Name: "Lahore", Lat: 31.55, Lng: 74.34, Radius: 3.0, Peak: 175},
		{Name: "Dhaka", Lat: 23.81, Lng: 90.41, Radius: 2.5, Peak: 170},
		{Name: "Cairo", Lat: 30.04, Lng: 31.24, Radius: 3.0, Peak: 150},
		{Name: "Jakarta", Lat: -6.21, Lng: 106.85, Radius: 2.5, Peak: 135},
		{Name: "Mexico City", Lat: 19.43, Lng: -99.13, Radius: 2.5, Peak: 130},
		{Name: "Los Angeles", Lat: 34.05, Lng: -118.24, Radius: 2.0, Peak: 110},
		{Name: "Atlanta", Lat: 33.75, Lng: -84.39, Radius: 1.5, Peak: 85},
		{Name: "New York", Lat: 40.71, Lng: -74.01, Radius: 1.5, Peak: 90},
		{Name: "London", Lat: 51.51, Lng: -0.13, Radius: 1.5, Peak: 80},
		{Name: "Paris", Lat: 48.86, Lng: 2.35, Radius: 1.5, Peak: 82},
		{Name: "Moscow", Lat: 55.76, Lng: 37.62, Radius: 2.0, Peak: 95},
		{Name: "Tehran", Lat: 35.69, Lng: 51.39, Radius: 2.5, Peak: 155},
		{Name: "Lagos", Lat: 6.52, Lng: 3.38, Radius: 2.0, Peak: 125},
		{Name: "Sao Paulo", Lat: -23.55, Lng: -46.63, Radius: 2.5, Peak: 105},
	}
}

// defaultRegions lists macro-regions with elevated or reduced baselines.
func defaultRegions() []Region {
	return []Region{
		{Name: "south-asia", LatMin: 5, LatMax: 35, LngMin: 60, LngMax: 95, Multiplier: 1.6},
		{Name: "east-asia", LatMin: 20, LatMax: 45, LngMin: 100, LngMax: 130, Multiplier: 1.4},
		{Name: "middle-east", LatMin: 12, LatMax: 40, LngMin: 30, LngMax: 60, Multiplier: 1.3},
		{Name: "west-africa", LatMin: 0, LatMax: 20, LngMin: -20, LngMax: 20, Multiplier: 1.2},
		{Name: "europe", LatMin: 36, LatMax: 60, LngMin: -10, LngMax: 30, Multiplier: 1.0},
		{Name: "north-america", LatMin: 25, LatMax: 50, LngMin: -125, LngMax: -65, Multiplier: 0.95},
		{Name: "oceania", LatMin: -48, LatMax: -10, LngMin: 110, LngMax: 180, Multiplier: 0.7},
	}
}

// oceanBand is a longitude/latitude box we treat as open water.
// Deliberately conservative: the boxes avoid coastal landmasses so that
// cities never get classified as ocean.
type oceanBand struct {
	LatMin float64
	LatMax float64
	LngMin float64
	LngMax float64
}

func defaultOceanBands() []oceanBand {
	return []oceanBand{
		// Mid Pacific, both sides of the antimeridian. West of 155 and
		// south of -25 is the Australian east coast, not open water.
		{LatMin: -25, LatMax: 45, LngMin: 150, LngMax: 180},
		{LatMin: -50, LatMax: -25, LngMin: 155, LngMax: 180},
		{LatMin: -50, LatMax: 35, LngMin: -180, LngMax: -130},
		// Mid Atlantic.
		{LatMin: -45, LatMax: 55, LngMin: -55, LngMax: -25},
		// Central Indian Ocean.
		{LatMin: -45, LatMax: 0, LngMin: 55, LngMax: 95},
		// Southern Ocean ring below the inhabited latitudes.
		{LatMin: -65, LatMax: -50, LngMin: -180, LngMax: 180},
	}
}
