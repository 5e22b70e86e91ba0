package handler

import (
	"net/http"
	"time"

	"github.com/Yoloholoknow/Respire/internal/airquality"
	"github.com/Yoloholoknow/Respire/internal/api/models"
	"github.com/Yoloholoknow/Respire/internal/api/response"
	"github.com/Yoloholoknow/Respire/internal/geocode"
	"github.com/Yoloholoknow/Respire/internal/provider/resilience"
)

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version    string
	buildTime  string
	airQuality *airquality.Service
	geocoder   *geocode.Service
	registry   *resilience.Registry
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(version, buildTime string, aq *airquality.Service, geocoder *geocode.Service, registry *resilience.Registry) *OpsHandler {
	return &OpsHandler{
		version:    version,
		buildTime:  buildTime,
		airQuality: aq,
		geocoder:   geocoder,
		registry:   registry,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// SystemStatus handles GET /v1/ops/status - resilience and provider status.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	now := models.Timestamp(time.Now())
	overall := models.HealthStatusOK

	var aq models.AirQualityStatus
	if h.airQuality != nil {
		st := h.airQuality.Status()
		aq = models.AirQualityStatus{
			CacheSize:      st.CacheSize,
			RecentRequests: st.RecentRequests,
			BreakerOpen:    st.BreakerOpen,
			FailureCount:   st.FailureCount,
		}
		if st.BreakerOpen {
			overall = models.HealthStatusDegraded
		}
	}

	var providers []models.ProviderStatus
	if h.registry != nil {
		for _, ph := range h.registry.AllHealth() {
			status := models.HealthStatusOK
			if !ph.Healthy() {
				status = models.HealthStatusDegraded
				overall = models.HealthStatusDegraded
			}
			ps := models.ProviderStatus{
				Provider: ph.Name,
				Status:   status,
				Requests: int64(ph.Requests),
				Failures: int64(ph.Failures),
			}
			if ph.LastSuccessAt != nil {
				ts := models.Timestamp(*ph.LastSuccessAt)
				ps.LastSuccessAt = &ts
			}
			if ph.LastFailureAt != nil {
				ts := models.Timestamp(*ph.LastFailureAt)
				ps.LastFailureAt = &ts
			}
			if ph.LastError != "" {
				msg := ph.LastError
				ps.Message = &msg
			}
			providers = append(providers, ps)
		}
	}

	status := models.SystemStatus{
		Status:     overall,
		Time:       now,
		AirQuality: aq,
		Providers:  providers,
	}
	response.JSON(w, r, http.StatusOK, status)
}

// ClearCaches handles POST /v1/ops/caches:clear - reset all in-memory caches
// and resilience state.
func (h *OpsHandler) ClearCaches(w http.ResponseWriter, r *http.Request) {
	if h.airQuality != nil {
		h.airQuality.ClearCaches()
	}
	if h.geocoder != nil {
		h.geocoder.ClearCache()
	}
	response.NoContent(w, r)
}
