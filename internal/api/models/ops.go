package models

// Health represents the health status of the service.
type Health struct {
	Status  HealthStatus           `json:"status"`
	Time    Timestamp              `json:"time"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// SystemStatus represents the overall system status.
type SystemStatus struct {
	Status     HealthStatus     `json:"status"`
	Time       Timestamp        `json:"time"`
	AirQuality AirQualityStatus `json:"airQuality"`
	Providers  []ProviderStatus `json:"providers"`
}

// AirQualityStatus reports the state of the resilient air-quality pipeline.
type AirQualityStatus struct {
	CacheSize      int  `json:"cacheSize"`
	RecentRequests int  `json:"recentRequests"`
	BreakerOpen    bool `json:"breakerOpen"`
	FailureCount   int  `json:"failureCount"`
}

// ProviderStatus represents the status of an external provider.
type ProviderStatus struct {
	Provider      string       `json:"provider"`
	Status        HealthStatus `json:"status"`
	Requests      int64        `json:"requests"`
	Failures      int64        `json:"failures"`
	LastSuccessAt *Timestamp   `json:"lastSuccessAt,omitempty"`
	LastFailureAt *Timestamp   `json:"lastFailureAt,omitempty"`
	Message       *string      `json:"message,omitempty"`
}
