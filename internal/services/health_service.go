package services

import (
	"runtime"
	"time"
)

// HealthService reports process liveness for the web binary.
type HealthService struct {
	version   string
	startedAt time.Time
}

// NewHealthService records the build version and start time.
func NewHealthService(version string) *HealthService {
	return &HealthService{version: version, startedAt: time.Now()}
}

// Health is the liveness payload.
type Health struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	UptimeSec int64  `json:"uptime_seconds"`
}

// Check returns the current health snapshot.
func (s *HealthService) Check() Health {
	return Health{
		Status:    "ok",
		Version:   s.version,
		GoVersion: runtime.Version(),
		UptimeSec: int64(time.Since(s.startedAt).Seconds()),
	}
}
