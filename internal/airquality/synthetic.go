package airquality

import (
	"math"

	"github.com/Yoloholoknow/Respire/internal/geo"
)

// syntheticProfile fixes how an overall synthetic AQI is split across
// pollutant families. Share scales the per-pollutant AQI; Factor converts
// that AQI into a plausible concentration for the family's units. The
// numbers only need to be stable and ordered, not physically accurate.
type syntheticProfile struct {
	code        string
	displayName string
	units       string
	share       float64
	factor      float64
}

var syntheticProfiles = []syntheticProfile{
	{code: "pm25", displayName: "Fine particulate matter (<2.5µm)", units: "ug/m3", share: 1.0, factor: 0.55},
	{code: "pm10", displayName: "Inhalable particulate matter (<10µm)", units: "ug/m3", share: 0.82, factor: 1.1},
	{code: "o3", displayName: "Ozone", units: "ppb", share: 0.68, factor: 0.6},
	{code: "no2", displayName: "Nitrogen dioxide", units: "ppb", share: 0.55, factor: 0.5},
	{code: "so2", displayName: "Sulfur dioxide", units: "ppb", share: 0.32, factor: 0.4},
	{code: "co", displayName: "Carbon monoxide", units: "ppb", share: 0.24, factor: 9.0},
}

// syntheticPollutants derives a deterministic per-pollutant breakdown from
// an overall synthetic AQI. Each pollutant gets a small coordinate-keyed
// wobble so breakdowns differ between locations with equal AQI, while the
// dominant pollutant ordering stays stable for a given coordinate.
func syntheticPollutants(aqi int, lat, lng float64) []Pollutant {
	pollutants := make([]Pollutant, 0, len(syntheticProfiles))
	for _, p := range syntheticProfiles {
		wobble := 1 + geo.Jitter(lat, lng, "pollutant-"+p.code)*0.12
		pAQI := int(math.Round(float64(aqi) * p.share * wobble))
		if pAQI < 1 {
			pAQI = 1
		}

		pollutants = append(pollutants, Pollutant{
			Code:        p.code,
			DisplayName: p.displayName,
			AQI:         pAQI,
			Concentration: Concentration{
				Value: roundTo(float64(pAQI)*p.factor, 2),
				Units: p.units,
			},
		})
	}
	return pollutants
}

// dominantPollutant returns the code of the pollutant with the highest AQI.
func dominantPollutant(pollutants []Pollutant) string {
	dominant := ""
	best := -1
	for _, p := range pollutants {
		if p.AQI > best {
			best = p.AQI
			dominant = p.Code
		}
	}
	return dominant
}

func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
