// Package forecast derives a deterministic synthetic AQI outlook from the
// estimation model. Like the estimator it is an explicit heuristic, not a
// forecast model: its value is a stable, plausible chart for the UI when
// no forecasting provider is configured.
package forecast

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/Yoloholoknow/Respire/internal/airquality"
	"github.com/Yoloholoknow/Respire/internal/estimate"
	"github.com/Yoloholoknow/Respire/internal/geo"
)

// DaysAhead is the length of the synthetic outlook.
const DaysAhead = 7

var dayLabels = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Day is one day's predicted AQI.
type Day struct {
	Label    string `json:"label"`
	AQI      int    `json:"aqi"`
	Category string `json:"category"`
}

// Forecast is a week of predicted AQI values for a coordinate.
type Forecast struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Days []Day   `json:"days"`
}

// ServiceConfig holds configuration for the forecast service.
type ServiceConfig struct {
	// Estimator supplies the location baseline (required).
	Estimator *estimate.Estimator

	// Logger for service operations.
	Logger zerolog.Logger
}

// Service produces synthetic forecasts.
type Service struct {
	estimator *estimate.Estimator
	logger    zerolog.Logger
}

// NewService creates a forecast service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		estimator: cfg.Estimator,
		logger:    cfg.Logger,
	}
}

// Daily returns a 7-day synthetic outlook for the coordinate. The values
// drift around the location's baseline with a day-indexed deterministic
// wobble, clamped to the estimator's bounds.
func (s *Service) Daily(lat, lng float64) *Forecast {
	base := float64(s.estimator.AQI(lat, lng))

	days := make([]Day, 0, DaysAhead)
	for i := 0; i < DaysAhead; i++ {
		drift := geo.Jitter(lat, lng, "forecast-day-"+dayLabels[i]) * 0.18
		aqi := clamp(int(math.Round(base * (1 + drift))))
		days = append(days, Day{
			Label:    dayLabels[i],
			AQI:      aqi,
			Category: airquality.Category(aqi),
		})
	}

	return &Forecast{Lat: lat, Lng: lng, Days: days}
}

func clamp(v int) int {
	if v < estimate.MinAQI {
		return estimate.MinAQI
	}
	if v > estimate.MaxAQI {
		return estimate.MaxAQI
	}
	return v
}
