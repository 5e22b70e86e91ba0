package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Yoloholoknow/Respire/internal/api/models"
	"github.com/Yoloholoknow/Respire/internal/api/response"
	"github.com/Yoloholoknow/Respire/internal/geocode"
)

// GeocodeHandler handles address resolution.
type GeocodeHandler struct {
	service *geocode.Service
}

// NewGeocodeHandler creates a new GeocodeHandler.
func NewGeocodeHandler(service *geocode.Service) *GeocodeHandler {
	return &GeocodeHandler{service: service}
}

// Geocode handles POST /v1/geocode - resolve an address to coordinates.
func (h *GeocodeHandler) Geocode(w http.ResponseWriter, r *http.Request) {
	var input models.GeocodeRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if err := validate.Struct(&input); err != nil {
		response.BadRequest(w, r, "invalid geocode request", fieldErrors(err))
		return
	}

	loc, err := h.service.Locate(r.Context(), input.Address)
	if err != nil {
		switch {
		case errors.Is(err, geocode.ErrNotFound):
			response.NotFound(w, r, "no results for the given address")
		case errors.Is(err, geocode.ErrProviderUnavailable):
			response.ServiceUnavailable(w, r, "geocoding provider is unavailable")
		default:
			response.InternalError(w, r, "failed to geocode address")
		}
		return
	}

	resp := models.GeocodeResponse{
		Address: loc.Address,
		Lat:     loc.Lat,
		Lng:     loc.Lng,
	}
	response.JSON(w, r, http.StatusOK, resp)
}
