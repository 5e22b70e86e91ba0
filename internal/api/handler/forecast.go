package handler

import (
	"net/http"

	"github.com/Yoloholoknow/Respire/internal/api/response"
	"github.com/Yoloholoknow/Respire/internal/forecast"
)

// ForecastHandler handles daily AQI outlook endpoints.
type ForecastHandler struct {
	service *forecast.Service
}

// NewForecastHandler creates a new ForecastHandler.
func NewForecastHandler(service *forecast.Service) *ForecastHandler {
	return &ForecastHandler{service: service}
}

// Daily handles GET /v1/forecast?lat=&lng= - seven-day synthetic outlook.
func (h *ForecastHandler) Daily(w http.ResponseWriter, r *http.Request) {
	query, ferrs := parseCoordinates(r)
	if ferrs != nil {
		response.BadRequest(w, r, "invalid coordinates", ferrs)
		return
	}

	fc := h.service.Daily(query.Lat, query.Lng)

	w.Header().Set("Cache-Control", "private, max-age=3600")
	response.JSON(w, r, http.StatusOK, fc)
}
