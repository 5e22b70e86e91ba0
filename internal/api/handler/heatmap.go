package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Yoloholoknow/Respire/internal/api/models"
	"github.com/Yoloholoknow/Respire/internal/api/response"
	"github.com/Yoloholoknow/Respire/internal/geo"
	"github.com/Yoloholoknow/Respire/internal/heatmap"
)

// defaultHeatmapPoints caps the response size when the client does not ask
// for a specific budget.
const defaultHeatmapPoints = 2500

// HeatmapHandler handles heatmap grid generation.
type HeatmapHandler struct {
	generator *heatmap.Generator
}

// NewHeatmapHandler creates a new HeatmapHandler.
func NewHeatmapHandler(generator *heatmap.Generator) *HeatmapHandler {
	return &HeatmapHandler{generator: generator}
}

// Generate handles POST /v1/heatmap - viewport or global AQI grid.
func (h *HeatmapHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var input models.HeatmapRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	if input.MaxPoints == 0 {
		input.MaxPoints = defaultHeatmapPoints
	}
	if err := validate.Struct(&input); err != nil {
		response.BadRequest(w, r, "invalid heatmap request", fieldErrors(err))
		return
	}

	var bounds *geo.Bounds
	if input.Bounds != nil {
		bounds = &geo.Bounds{
			LatMin: input.Bounds.LatMin,
			LatMax: input.Bounds.LatMax,
			LngMin: input.Bounds.LngMin,
			LngMax: input.Bounds.LngMax,
		}
	}

	points := h.generator.Generate(r.Context(), bounds, input.MaxPoints)

	resp := models.HeatmapResponse{
		Points:      points,
		Count:       len(points),
		GeneratedAt: models.Timestamp(time.Now()),
	}
	w.Header().Set("Cache-Control", "private, max-age=300")
	response.JSON(w, r, http.StatusOK, resp)
}
