package service

import (
	"context"
	"time"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// DependencyStatus is the outcome of pinging one backing store.
type DependencyStatus struct {
	Status       string `json:"status"`
	ResponseTime *int64 `json:"responseTime,omitempty"` // milliseconds
}

type HealthReport struct {
	Status      string                      `json:"status"`
	Timestamp   time.Time                   `json:"timestamp"`
	Uptime      float64                     `json:"uptime"` // seconds
	Environment string                      `json:"environment"`
	Version     string                      `json:"version"`
	Services    map[string]DependencyStatus `json:"services"`
}

func (r HealthReport) Healthy() bool {
	return r.Status == "healthy"
}

// HealthService pings the database holding the catalog and the cart cache.
type HealthService struct {
	env      string
	version  string
	started  time.Time
	now      func() time.Time
	timeout  time.Duration
	services map[string]Pinger
}

// NewHealthService creates a new instance of HealthService
func NewHealthService(env, version string, services map[string]Pinger) *HealthService {
	return &HealthService{
		env:      env,
		version:  version,
		started:  time.Now(),
		now:      time.Now,
		timeout:  2 * time.Second,
		services: services,
	}
}

func (h *HealthService) Check(ctx context.Context) HealthReport {
	report := HealthReport{
		Status:      "healthy",
		Timestamp:   h.now().UTC(),
		Uptime:      h.now().Sub(h.started).Seconds(),
		Environment: h.env,
		Version:     h.version,
		Services:    make(map[string]DependencyStatus, len(h.services)),
	}

	for name, pinger := range h.services {
		report.Services[name] = h.ping(ctx, name, pinger)
		if report.Services[name].Status != "connected" {
			report.Status = "unhealthy"
		}
	}
	return report
}

// Ready reports whether every dependency answers a ping.
func (h *HealthService) Ready(ctx context.Context) bool {
	return h.Check(ctx).Healthy()
}

func (h *HealthService) ping(ctx context.Context, name string, pinger Pinger) DependencyStatus {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	start := h.now()
	if err := pinger.Ping(ctx); err != nil {
		logger.Warn().Err(err).Str("service", name).Msg("Health check ping failed")
		return DependencyStatus{Status: "disconnected"}
	}
	elapsed := h.now().Sub(start).Milliseconds()
	return DependencyStatus{Status: "connected", ResponseTime: &elapsed}
}
