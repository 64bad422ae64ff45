package handlers

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"jobtrail-utils/internal/parser"
	"jobtrail-utils/pkg/models"
	"jobtrail-utils/pkg/utils"
)

var validate = validator.New()

// ParseHandler handles job posting extraction requests
func ParseHandler(p *parser.Parser) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := requestLogger(c, requestID)

		var req models.ParseRequest
		if err := c.Bind(&req); err != nil {
			logger.Error("Failed to bind parse request", map[string]interface{}{"error": err.Error()})
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "invalid_request",
				Message:   "Invalid request format",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		if err := validate.Struct(&req); err != nil {
			logger.Error("Parse request validation failed", map[string]interface{}{"error": err.Error()})
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "validation_failed",
				Message:   err.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		logger.Info("Processing parse request", map[string]interface{}{
			"url":        req.URL,
			"skip_cache": req.SkipCache,
		})

		result := p.Parse(c.Request().Context(), req.URL, req.SkipCache)

		// The parser reports its own failures in the result body; the
		// HTTP status only distinguishes rejected input from success.
		if !result.Success {
			return c.JSON(http.StatusUnprocessableEntity, result)
		}
		return c.JSON(http.StatusOK, result)
	}
}

// SupportedSitesHandler lists the domains the fetcher will accept
func SupportedSitesHandler(p *parser.Parser) echo.HandlerFunc {
	return func(c echo.Context) error {
		domains := p.SupportedDomains()
		return c.JSON(http.StatusOK, models.SupportedSitesResponse{
			Success: true,
			Domains: domains,
			Count:   len(domains),
		})
	}
}

// ClearCacheHandler evicts the cached result for a single URL
func ClearCacheHandler(p *parser.Parser) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := requestLogger(c, requestID)

		var req models.ClearCacheRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "invalid_request",
				Message:   "Invalid request format",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}
		if err := validate.Struct(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "validation_failed",
				Message:   err.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		p.ClearCache(c.Request().Context(), req.URL)
		logger.Info("Cache entry cleared", map[string]interface{}{"url": req.URL})

		return c.JSON(http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "cache entry cleared",
		})
	}
}

// CacheStatsHandler reports result-cache counters
func CacheStatsHandler(p *parser.Parser) echo.HandlerFunc {
	return func(c echo.Context) error {
		stats := p.CacheStats(c.Request().Context())
		return c.JSON(http.StatusOK, models.CacheStatsResponse{
			Success: true,
			Backend: stats.Backend,
			Entries: stats.Entries,
			Hits:    stats.Hits,
			Misses:  stats.Misses,
		})
	}
}
