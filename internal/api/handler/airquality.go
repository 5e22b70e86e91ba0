// Package handler provides HTTP handlers for the Respire API.
package handler

import (
	"net/http"
	"strconv"

	"github.com/Yoloholoknow/Respire/internal/airquality"
	"github.com/Yoloholoknow/Respire/internal/api/models"
	"github.com/Yoloholoknow/Respire/internal/api/response"
)

// AirQualityHandler handles air-quality lookup endpoints.
type AirQualityHandler struct {
	service *airquality.Service
}

// NewAirQualityHandler creates a new AirQualityHandler.
func NewAirQualityHandler(service *airquality.Service) *AirQualityHandler {
	return &AirQualityHandler{service: service}
}

// Current handles GET /v1/air-quality?lat=&lng= - current conditions at a point.
// The response always carries a sample; degraded upstream conditions surface
// as source=estimate rather than an error.
func (h *AirQualityHandler) Current(w http.ResponseWriter, r *http.Request) {
	query, ferrs := parseCoordinates(r)
	if ferrs != nil {
		response.BadRequest(w, r, "invalid coordinates", ferrs)
		return
	}

	sample := h.service.Current(r.Context(), query.Lat, query.Lng)

	w.Header().Set("Cache-Control", "private, max-age=60")
	response.JSON(w, r, http.StatusOK, sample)
}

// parseCoordinates extracts and validates lat/lng query parameters.
func parseCoordinates(r *http.Request) (*models.AirQualityQuery, []models.FieldError) {
	latStr := r.URL.Query().Get("lat")
	lngStr := r.URL.Query().Get("lng")
	if latStr == "" || lngStr == "" {
		return nil, []models.FieldError{
			{Field: "lat", Message: "required query parameter", Code: "required"},
			{Field: "lng", Message: "required query parameter", Code: "required"},
		}
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil, []models.FieldError{{Field: "lat", Message: "must be a number", Code: "number"}}
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return nil, []models.FieldError{{Field: "lng", Message: "must be a number", Code: "number"}}
	}

	query := &models.AirQualityQuery{Lat: lat, Lng: lng}
	if err := validate.Struct(query); err != nil {
		return nil, fieldErrors(err)
	}
	return query, nil
}
