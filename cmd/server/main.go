package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"pocketcoach/backend/internal/ai"
	"pocketcoach/backend/internal/api"
	"pocketcoach/backend/internal/config"
	"pocketcoach/backend/internal/platform/logger"
	"pocketcoach/backend/internal/repository"
	"pocketcoach/backend/internal/repository/mongo"
	"pocketcoach/backend/internal/service"
	"pocketcoach/backend/internal/storage"
	"pocketcoach/backend/internal/telemetry"
	"pocketcoach/backend/internal/validation"
)

// @title Pocket Coach API
// @version 1.0
// @description Backend for the Pocket Coach fitness app: profiles, mocked plans, progress tracking and AI coaching.
// @host localhost:8080
// @BasePath /
func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Could not load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Could not build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	log.Info("Starting Pocket Coach API...", "address", cfg.Server.Address, "ai_provider", cfg.AI.Provider)

	ctx := context.Background()

	// --- Tracing ---
	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Could not initialize tracing", "error", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Warn("Tracer shutdown failed", "error", err)
		}
	}()

	validation.Register()

	// --- Database (optional) ---
	var (
		profileRepo  repository.ProfileRepository
		progressRepo repository.ProgressRepository
	)
	if cfg.Database.Enabled() {
		dbClient, err := mongo.ConnectDB(cfg.Database.URI)
		if err != nil {
			log.Fatal("Could not connect to MongoDB", "error", err)
		}
		defer func() {
			log.Info("Disconnecting MongoDB...")
			if err := mongo.DisconnectDB(dbClient); err != nil {
				log.Error("Failed to disconnect MongoDB", "error", err)
			}
		}()
		appDB := dbClient.Database(cfg.Database.Name)
		log.Info("Database connection established", "database", cfg.Database.Name)

		go func() {
			indexCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			if err := mongo.EnsureIndexes(indexCtx, appDB); err != nil {
				log.Error("Index creation failed", "error", err)
				return
			}
			log.Info("Index creation process completed")
		}()

		profileRepo = mongo.NewMongoProfileRepository(appDB)
		progressRepo = mongo.NewMongoProgressRepository(appDB)
	} else {
		log.Warn("No database configured; profile and progress routes serve mock data")
	}

	// --- Object storage (optional) ---
	var photoStorage storage.PhotoStorage
	if cfg.S3.Enabled() {
		photoStorage, err = storage.NewS3Storage(ctx, cfg.S3, log)
		if err != nil {
			log.Fatal("Failed to initialize S3 storage", "error", err)
		}
	}

	// --- AI provider ---
	provider, err := ai.NewProvider(cfg.AI, log)
	if err != nil {
		log.Fatal("Failed to initialize AI provider", "error", err)
	}

	// --- Services ---
	userService := service.NewUserService(profileRepo)
	planService := service.NewPlanService(provider, cfg.AI, log)
	progressService := service.NewProgressService(progressRepo, photoStorage, cfg.S3.PresignExpiry, log)
	insightService := service.NewInsightService()
	analysisService := service.NewAnalysisService(provider, cfg.AI, log)

	// --- Router ---
	if isProduction(cfg.Log.Mode) {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(cfg, log)
	api.SetupRoutes(router, cfg, log, userService, planService, progressService, insightService, analysisService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("Server listening", "address", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("ListenAndServe error", "error", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}
	log.Info("Server exiting.")
}

func isProduction(mode string) bool {
	m := strings.ToLower(strings.TrimSpace(mode))
	return m == "prod" || m == "production"
}
