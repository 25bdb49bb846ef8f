package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lixing-Zhang/inventory-web/internal/config"
	"github.com/Lixing-Zhang/inventory-web/internal/handlers"
	"github.com/Lixing-Zhang/inventory-web/internal/inventoryapi"
	"github.com/Lixing-Zhang/inventory-web/internal/notify"
	"github.com/Lixing-Zhang/inventory-web/internal/render"
	"github.com/Lixing-Zhang/inventory-web/internal/repository"
	"github.com/Lixing-Zhang/inventory-web/internal/service"
	"github.com/Lixing-Zhang/inventory-web/internal/telemetry"
	"github.com/Lixing-Zhang/inventory-web/pkg/logger"
)

const serviceName = "inventory-web"

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting inventory web server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"api_url", cfg.API.BaseURL,
		"log_level", cfg.LogLevel,
	)

	shutdownTracing, err := telemetry.Setup(context.Background(), telemetry.Config{
		ServiceName: serviceName,
		Endpoint:    cfg.Telemetry.Endpoint,
		Enabled:     cfg.Telemetry.Enabled,
	})
	if err != nil {
		log.Error("failed to set up tracing", "error", err)
		os.Exit(1)
	}

	// Upstream inventory API
	apiClient, err := inventoryapi.NewClient(cfg.API.BaseURL, &http.Client{Timeout: cfg.API.Timeout})
	if err != nil {
		log.Error("invalid inventory api url", "error", err)
		os.Exit(1)
	}

	// Initialize repositories
	productRepo := repository.NewInMemoryProductRepository()

	// Initialize services
	productService := service.NewProductService(apiClient, productRepo, log)

	renderer, err := render.New()
	if err != nil {
		log.Error("failed to parse templates", "error", err)
		os.Exit(1)
	}
	flash := notify.Flash{Secure: cfg.Server.SecureCookies}

	// Initialize handlers
	router := handlers.NewRouter(handlers.RouterConfig{
		Products:       handlers.NewProductHandler(productService, renderer, flash, apiClient.BaseURL(), log),
		API:            handlers.NewAPIHandler(productService, log),
		Health:         handlers.NewHealthHandler(productService, log),
		Logger:         log,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RequestTimeout: 60 * time.Second,
	})

	// Create HTTP server
	addr := cfg.Addr()
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	if err := shutdownTracing(ctx); err != nil {
		log.Warn("failed to flush traces", "error", err)
	}

	log.Info("server stopped gracefully")
}
