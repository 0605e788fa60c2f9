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

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/mr1hm/go-shelter-advisor/internal/api"
	"github.com/mr1hm/go-shelter-advisor/internal/catalog"
	"github.com/mr1hm/go-shelter-advisor/internal/config"
	"github.com/mr1hm/go-shelter-advisor/internal/hazard"
	"github.com/mr1hm/go-shelter-advisor/internal/ingestion"
	"github.com/mr1hm/go-shelter-advisor/internal/logging"
	"github.com/mr1hm/go-shelter-advisor/internal/observability"
	"github.com/mr1hm/go-shelter-advisor/internal/ranker/gemini"
	"github.com/mr1hm/go-shelter-advisor/internal/ranker/openai"
	"github.com/mr1hm/go-shelter-advisor/internal/recommend"
	"github.com/mr1hm/go-shelter-advisor/internal/repository"
	"github.com/mr1hm/go-shelter-advisor/internal/shelter"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logger := logging.Setup(cfg.Logging.Level)

	logger.Info("Server starting", "host", cfg.Server.Host, "port", cfg.Server.Port, "ranker", cfg.Ranker.Provider)

	db, err := repository.NewSQLiteDB(cfg.DB.Path)
	if err != nil {
		logging.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shelters := catalog.New(db, logger)
	if _, err := shelters.Seed(ctx, cfg.DB.SeedPath); err != nil {
		logging.Fatalf("Failed to seed shelters: %v", err)
	}
	if err := shelters.Reload(ctx); err != nil {
		logging.Fatalf("Failed to load shelters: %v", err)
	}

	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	// Start hazard feed polling
	store := hazard.NewStore(clock)
	mgr := ingestion.NewManager(cfg.Hazards, store, clock, metrics, logger)
	mgr.Start(ctx)

	ranker, err := newRanker(ctx, cfg.Ranker, logger)
	if err != nil {
		logging.Fatalf("Failed to initialize ranker: %v", err)
	}
	profile, err := shelter.ParseDistanceProfile(cfg.Scoring.DistanceProfile)
	if err != nil {
		logging.Fatalf("Invalid distance profile: %v", err)
	}
	var cache *recommend.ResultCache
	if cfg.Ranker.CacheTTL > 0 {
		cache = recommend.NewResultCache(cfg.Ranker.CacheTTL, 2*cfg.Ranker.CacheTTL)
	}
	svc := recommend.NewService(recommend.Options{
		Ranker:  ranker,
		Scorer:  shelter.NewScorer(profile),
		Timeout: cfg.Ranker.Timeout,
		Cache:   cache,
		Metrics: metrics,
		Logger:  logger,
	})

	// Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(api.RequestIDMiddleware())
	router.Use(api.LoggingMiddleware(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", api.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", api.RequestIDHeader},
		AllowCredentials: false, // Set to false when using wildcard origins
	}))
	router.Use(api.RateLimitMiddleware(cfg.Server.RateLimitRPS))

	handler := api.NewHandler(shelters, store, svc, api.Options{
		NearbyRadiusKm:   cfg.Hazards.NearbyRadiusKm,
		BatchWorkers:     cfg.Batch.Workers,
		BatchMaxRequests: cfg.Batch.MaxRequests,
	}, logger)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
		// ranker calls can take up to RANKER_TIMEOUT
		WriteTimeout: cfg.Ranker.Timeout + 10*time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down...")

	cancel()
	mgr.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}

// newRanker returns nil for provider "none", which makes every request use
// criteria scoring.
func newRanker(ctx context.Context, cfg config.RankerConfig, logger *slog.Logger) (recommend.Ranker, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		client, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL)
		if err != nil {
			return nil, err
		}
		return openai.NewRanker(client, cfg.Model, float32(cfg.Temperature), logger), nil
	case config.ProviderGemini:
		client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			return nil, err
		}
		return gemini.NewRanker(client.Models, cfg.Model, float32(cfg.Temperature), logger), nil
	default:
		return nil, nil
	}
}
