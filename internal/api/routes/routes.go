package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"jobtrail-utils/internal/api/handlers"
	"jobtrail-utils/internal/api/middleware"
	"jobtrail-utils/internal/config"
	"jobtrail-utils/internal/parser"
)

// SetupRoutes configures all API routes
func SetupRoutes(e *echo.Echo, cfg *config.Config, p *parser.Parser) {
	// Global middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(middleware.CORSConfig())
	e.Use(middleware.RequestValidation())
	e.Use(middleware.TimeoutConfig(cfg.Server.ReadTimeout))

	// Health check routes
	health := e.Group("/health")
	{
		health.GET("", handlers.HealthHandler)
		health.GET("/ready", handlers.ReadinessHandler(p))
		health.GET("/live", handlers.LivenessHandler)
	}

	// Status route
	e.GET("/status", handlers.StatusHandler(p))

	// API v1 routes
	v1 := e.Group("/api/v1")
	{
		parserGroup := v1.Group("/parser")
		{
			parserGroup.POST("/parse", handlers.ParseHandler(p))
			parserGroup.GET("/supported-sites", handlers.SupportedSitesHandler(p))
			parserGroup.DELETE("/cache", handlers.ClearCacheHandler(p))
			parserGroup.GET("/cache/stats", handlers.CacheStatsHandler(p))
		}
	}

	// Root endpoint
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"service":     "jobtrail-utils",
			"version":     "1.0.0",
			"description": "Job posting extraction service for JobTrail",
			"endpoints": map[string]string{
				"health":          "/health",
				"status":          "/status",
				"parse":           "/api/v1/parser/parse",
				"supported_sites": "/api/v1/parser/supported-sites",
				"cache_stats":     "/api/v1/parser/cache/stats",
			},
		})
	})
}
