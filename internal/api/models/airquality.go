package models

import "github.com/Yoloholoknow/Respire/internal/heatmap"

// AirQualityQuery holds the validated coordinates of an air-quality lookup.
type AirQualityQuery struct {
	Lat float64 `validate:"gte=-90,lte=90"`
	Lng float64 `validate:"gte=-180,lte=180"`
}

// BoundsRequest represents a client-supplied viewport.
type BoundsRequest struct {
	LatMin float64 `json:"latMin" validate:"gte=-90,lte=90"`
	LatMax float64 `json:"latMax" validate:"gte=-90,lte=90"`
	LngMin float64 `json:"lngMin" validate:"gte=-180,lte=180"`
	LngMax float64 `json:"lngMax" validate:"gte=-180,lte=180"`
}

// HeatmapRequest represents the body of POST /v1/heatmap.
// Bounds is optional; omitting it requests the global grid.
type HeatmapRequest struct {
	Bounds    *BoundsRequest `json:"bounds,omitempty" validate:"omitempty"`
	MaxPoints int            `json:"maxPoints" validate:"gte=1,lte=10000"`
}

// HeatmapResponse represents the body returned by POST /v1/heatmap.
type HeatmapResponse struct {
	Points      []heatmap.Point `json:"points"`
	Count       int             `json:"count"`
	GeneratedAt Timestamp       `json:"generatedAt"`
}

// GeocodeRequest represents the body of POST /v1/geocode.
type GeocodeRequest struct {
	Address string `json:"address" validate:"required,min=2,max=256"`
}

// GeocodeResponse represents a resolved address.
type GeocodeResponse struct {
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}
