package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"jobtrail-utils/internal/api/routes"
	"jobtrail-utils/internal/config"
	"jobtrail-utils/internal/logging"
	"jobtrail-utils/internal/parser"
	"jobtrail-utils/internal/parser/cache"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logging before anything else uses the global logger
	if err := logging.InitializeLogging(cfg); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.CloseLogging()

	logger := logging.GetGlobalLogger()
	logger.Info("Starting JobTrail parser service")

	// Result cache backend from config (memory by default, redis opt-in)
	store, err := cache.New(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize cache store", map[string]interface{}{"error": err.Error()})
	}
	defer store.Close()

	logger.Info("Cache store ready", map[string]interface{}{
		"backend": cfg.Cache.Backend,
	})

	// Assemble the extraction pipeline
	validator := parser.NewValidator(cfg.Parser.DNSTimeout)
	limiter := parser.NewDomainRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	fetcher := parser.NewHTTPFetcher(cfg, validator, limiter)
	p := parser.New(store, fetcher, validator, cfg.Parser.AllowedDomains)

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true

	// Setup routes
	routes.SetupRoutes(e, cfg, p)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error shutting down server", map[string]interface{}{"error": err.Error()})
		}
	}()

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("HTTP server listening", map[string]interface{}{"addr": addr})

	if err := e.Start(addr); err != nil {
		logger.Info("Server stopped", map[string]interface{}{"reason": err.Error()})
	}
}
