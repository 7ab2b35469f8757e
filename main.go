package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/medatlas/medatlas/internal/ai"
	"github.com/medatlas/medatlas/internal/api"
	"github.com/medatlas/medatlas/internal/cache"
	"github.com/medatlas/medatlas/internal/config"
	"github.com/medatlas/medatlas/internal/dal"
	"github.com/medatlas/medatlas/internal/gateway/llm"
	"github.com/medatlas/medatlas/internal/gateway/places"
	"github.com/medatlas/medatlas/internal/locator"
	"github.com/medatlas/medatlas/internal/metrics"
	"github.com/medatlas/medatlas/pkg/logging"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()

	logging.SetAppName("medatlas-api")
	if err := logging.Setup(cfg.ElasticsearchURL, cfg.LogIndex, cfg.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("Failed to configure logging")
	}

	log.Info().Msg("Starting medatlas-api service")

	if cfg.EnableSystemMetrics {
		metrics.StartSystemMetricsCollection("medatlas-api", 15*time.Second)
	}

	conn, err := dal.NewConnection(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to document store")
	}

	store := dal.NewStore(conn)
	if err := store.EnsureIndexes(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to create indexes")
	}

	patients := dal.NewPatientRepo(store)
	doctors := dal.NewDoctorRepo(store)
	hospitals := dal.NewHospitalRepo(store)

	var geocodeCache cache.Cache
	var redisCache *cache.Redis
	if cfg.RedisAddr != "" {
		redisCache, err = cache.NewRedis(context.Background(), cfg.RedisAddr)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, geocode caching disabled")
		} else {
			geocodeCache = redisCache
		}
	}

	var placesProvider places.Provider
	if cfg.DemoPlaces() {
		log.Warn().Msg("GOOGLE_MAPS_API_KEY not set, using the demo places provider")
		placesProvider = places.NewDemoProvider()
	} else {
		placesProvider = places.NewGoogleProvider(cfg.GoogleMapsAPIKey, geocodeCache)
	}

	var llmClient llm.Client
	if cfg.DemoLLM() {
		log.Warn().Msg("OPENAI_API_KEY not set, using the demo LLM client")
		llmClient = llm.NewDemoClient()
	} else {
		llmClient, err = llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to build OpenAI client")
		}
	}

	locatorService := locator.NewService(hospitals, doctors, placesProvider, cfg.DemoPlaces())
	aiService := ai.NewService(patients, doctors, hospitals, llmClient)

	handlers := api.NewHandlers(patients, doctors, hospitals, locatorService, aiService)
	router := api.SetupRoutes(handlers)

	server := &http.Server{
		Addr:    ":" + cfg.APIPort,
		Handler: router,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info().
			Str("port", cfg.APIPort).
			Msg("Server starting")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().
				Err(err).
				Msg("Failed to start server")
		}
	}()

	<-sigChan
	log.Info().Msg("Received shutdown signal, shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}

	if redisCache != nil {
		if err := redisCache.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis connection")
		}
	}

	log.Info().Msg("Closing database connection...")
	if err := conn.Close(); err != nil {
		log.Warn().Err(err).Msg("Failed to close database connection")
	}

	log.Info().Msg("API service shutdown complete")
}
