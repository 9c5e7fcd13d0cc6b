package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	redislib "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/zatekoja/Facilityonboardingautomation/backend/internal/adapters/rowfile"
	"github.com/zatekoja/Facilityonboardingautomation/backend/internal/adapters/spreadsheet"
	"github.com/zatekoja/Facilityonboardingautomation/backend/internal/adapters/storage"
	"github.com/zatekoja/Facilityonboardingautomation/backend/internal/api/handlers"
	"github.com/zatekoja/Facilityonboardingautomation/backend/internal/api/routes"
	"github.com/zatekoja/Facilityonboardingautomation/backend/internal/application/services"
	"github.com/zatekoja/Facilityonboardingautomation/backend/internal/infrastructure/clients/gemini"
	"github.com/zatekoja/Facilityonboardingautomation/backend/internal/infrastructure/clients/redis"
	"github.com/zatekoja/Facilityonboardingautomation/backend/internal/infrastructure/observability"
	"github.com/zatekoja/Facilityonboardingautomation/backend/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, os.Getenv("APP_ENV"))

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	// Initialize Redis client. The application works without it, requests
	// just lose idempotency protection.
	var redisConn *redislib.Client
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize Redis client, idempotency disabled")
	} else {
		defer redisClient.Close()
		redisConn = redisClient.Client()
		log.Info().Msg("Redis client initialized successfully")
	}

	// Initialize Gemini client
	geminiClient, err := gemini.NewClient(&cfg.Gemini)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Gemini client")
	}
	log.Info().Str("model", cfg.Gemini.Model).Msg("Gemini client initialized successfully")

	// Initialize object store
	objectStore, err := storage.NewMinioStore(&cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize object store")
	}
	log.Info().Str("bucket", cfg.Storage.Bucket).Msg("Object store initialized successfully")

	// Initialize services
	workflowService := services.NewWorkflowService(
		services.NewSkeletonService(),
		services.NewHierarchyService(),
		services.NewUserService(),
		geminiClient,
		geminiClient,
		objectStore,
		rowfile.NewCSVSink(),
		spreadsheet.NewReader(),
		metrics,
		cfg.Workspace.BaseDir,
	)

	// Initialize handlers
	workflowHandler := handlers.NewWorkflowHandler(workflowService, redisConn, 24*time.Hour)

	// Set up router
	router := routes.NewRouter(workflowHandler, metrics, cfg.Auth.Token, cfg.Server.AllowedOrigins)
	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: handler,
		// Workflow runs hold the request open through two model calls
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", serverAddr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server stopped")
}
