package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"jobtrail-utils/internal/logging"
	"jobtrail-utils/internal/parser"
	"jobtrail-utils/pkg/models"
)

var startTime = time.Now()

// requestLogger prefers the request ID set by the validation middleware
// over a freshly generated one so handler logs correlate with the
// X-Request-ID response header.
func requestLogger(c echo.Context, fallbackID string) logging.Logger {
	if id, ok := c.Get("request_id").(string); ok && id != "" {
		return logging.LogWithRequestID(id)
	}
	return logging.LogWithRequestID(fallbackID)
}

// HealthHandler handles health check requests
func HealthHandler(c echo.Context) error {
	response := models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   "1.0.0", // TODO: Get from build info
		Uptime:    time.Since(startTime),
		Checks: map[string]string{
			"api": "ok",
		},
	}

	return c.JSON(http.StatusOK, response)
}

// ReadinessHandler handles readiness probe requests. The cache store is
// the only external dependency worth probing; with the memory backend it
// always reads ok.
func ReadinessHandler(p *parser.Parser) echo.HandlerFunc {
	return func(c echo.Context) error {
		checks := map[string]string{
			"api":   "ok",
			"cache": "ok",
		}
		_ = p.CacheStats(c.Request().Context())

		response := models.HealthResponse{
			Status:    "ready",
			Timestamp: time.Now(),
			Version:   "1.0.0",
			Uptime:    time.Since(startTime),
			Checks:    checks,
		}

		return c.JSON(http.StatusOK, response)
	}
}

// LivenessHandler handles liveness probe requests
func LivenessHandler(c echo.Context) error {
	response := models.HealthResponse{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   "1.0.0",
		Uptime:    time.Since(startTime),
	}

	return c.JSON(http.StatusOK, response)
}

// StatusHandler provides detailed service status
func StatusHandler(p *parser.Parser) echo.HandlerFunc {
	return func(c echo.Context) error {
		stats := p.CacheStats(c.Request().Context())

		response := models.HealthResponse{
			Status:    "operational",
			Timestamp: time.Now(),
			Version:   "1.0.0",
			Uptime:    time.Since(startTime),
			Checks: map[string]string{
				"api":           "operational",
				"parser":        "operational",
				"cache_backend": stats.Backend,
			},
		}

		return c.JSON(http.StatusOK, response)
	}
}
