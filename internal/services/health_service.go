package services

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"time"

	"fairflow/internal/config"
)

// HealthService provides health check functionality
type HealthService struct {
	version   string
	config    *config.Config
	paths     *config.Paths
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                   `json:"status"`
	Timestamp time.Time                `json:"timestamp"`
	Version   string                   `json:"version"`
	Runtime   map[string]interface{}   `json:"runtime,omitempty"`
	Checks    map[string]ServiceHealth `json:"checks,omitempty"`
}

// ServiceHealth represents individual check health
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// NewHealthService creates a new health service
func NewHealthService(version string, cfg *config.Config, paths *config.Paths, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:   version,
		config:    cfg,
		paths:     paths,
		startTime: time.Now(),
		logger:    logger,
	}
}

// Check performs all health checks and returns the aggregate status
func (s *HealthService) Check(ctx context.Context) HealthStatus {
	checks := map[string]ServiceHealth{
		"survey_data": s.checkSurveyData(),
		"reports_dir": s.checkDir(s.paths.ReportsDir),
	}

	status := "healthy"
	for _, c := range checks {
		if c.Status == "degraded" {
			status = "degraded"
			break
		}
	}

	return HealthStatus{
		Status:    status,
		Timestamp: time.Now(),
		Version:   s.version,
		Runtime: map[string]interface{}{
			"go_version":     runtime.Version(),
			"os":             runtime.GOOS,
			"arch":           runtime.GOARCH,
			"goroutines":     runtime.NumGoroutine(),
			"uptime_seconds": time.Since(s.startTime).Seconds(),
		},
		Checks: checks,
	}
}

// checkSurveyData verifies the configured survey source is reachable
func (s *HealthService) checkSurveyData() ServiceHealth {
	if s.config.Survey.Sheets.SpreadsheetID != "" {
		// Remote source; reachability is checked on load
		return ServiceHealth{Status: "ok", Message: "google sheets source configured"}
	}

	path := s.paths.Resolve(s.config.Survey.File)
	if _, err := os.Stat(path); err != nil {
		return ServiceHealth{Status: "degraded", Message: "survey file not found: " + path}
	}
	return ServiceHealth{Status: "ok"}
}

func (s *HealthService) checkDir(dir string) ServiceHealth {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return ServiceHealth{Status: "degraded", Message: "directory not available: " + dir}
	}
	return ServiceHealth{Status: "ok"}
}
