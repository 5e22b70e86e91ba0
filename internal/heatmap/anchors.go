package heatmap

// Anchor is a fixed, always-sampled real-world coordinate. Anchors are
// resolved through the resilient provider so that live readings appear in
// an otherwise synthetic heatmap whenever the provider is healthy.
type Anchor struct {
	Name string
	Lat  float64
	Lng  float64
}

// DefaultAnchors lists well-known cities spread across continents. The
// set is intentionally small: each anchor may cost one remote call per
// cache TTL window.
func DefaultAnchors() []Anchor {
	return []Anchor{
		{Name: "Atlanta", Lat: 33.749, Lng: -84.388},
		{Name: "New York", Lat: 40.7128, Lng: -74.0060},
		{Name: "Los Angeles", Lat: 34.0522, Lng: -118.2437},
		{Name: "Mexico City", Lat: 19.4326, Lng: -99.1332},
		{Name: "Sao Paulo", Lat: -23.5505, Lng: -46.6333},
		{Name: "London", Lat: 51.5074, Lng: -0.1278},
		{Name: "Paris", Lat: 48.8566, Lng: 2.3522},
		{Name: "Cairo", Lat: 30.0444, Lng: 31.2357},
		{Name: "Lagos", Lat: 6.5244, Lng: 3.3792},
		{Name: "Delhi", Lat: 28.6139, Lng: 77.2090},
		{Name: "Beijing", Lat: 39.9042, Lng: 116.4074},
		{Name: "Tokyo", Lat: 35.6762, Lng: 139.6503},
		{Name: "Jakarta", Lat: -6.2088, Lng: 106.8456},
		{Name: "Sydney", Lat: -33.8688, Lng: 151.2093},
	}
}
