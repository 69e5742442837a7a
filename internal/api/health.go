package api

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"restaurant-service/internal/service"
)

type healthChecker interface {
	Check(ctx context.Context) service.HealthReport
}

type HealthHandler struct {
	health healthChecker
	env    string
}

// NewHealthHandler creates a new instance of HealthHandler
func NewHealthHandler(health healthChecker, env string) *HealthHandler {
	return &HealthHandler{health: health, env: env}
}

// Health pings every dependency; 503 when any of them is down.
func (h *HealthHandler) Health(c echo.Context) error {
	report := h.health.Check(c.Request().Context())
	code := http.StatusOK
	if !report.Healthy() {
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, report)
}

func (h *HealthHandler) Live(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":    "alive",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *HealthHandler) Ready(c echo.Context) error {
	report := h.health.Check(c.Request().Context())
	if !report.Healthy() {
		return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "not ready",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"services":  report.Services,
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":    "ready",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"services":  report.Services,
	})
}

func (h *HealthHandler) Root(c echo.Context) error {
	report := h.health.Check(c.Request().Context())
	database := "disconnected"
	if status, ok := report.Services["database"]; ok {
		database = status.Status
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":     true,
		"message":     "Restaurant API is running",
		"environment": h.env,
		"database":    database,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Echo answers a POST to the root with the decoded body.
func (h *HealthHandler) Echo(c echo.Context) error {
	var body map[string]interface{}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "POST request received",
		"body":    body,
	})
}
