package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voyago/config"
	"voyago/database"
	"voyago/database/repository/dataset"
	"voyago/handlers"
	"voyago/middleware"
	"voyago/routes"
	"voyago/services/conversation"
	"voyago/services/dialogue"
	"voyago/services/genai"
	"voyago/services/intent"
	"voyago/services/resolve"
	"voyago/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitThreadStoreRedis()
	utils.InitCache()

	// Curated offline dataset (tier 2) plus the hotel city directory.
	datasetRepo := dataset.NewMongoDatasetRepo()
	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 30*time.Second)
	if err := datasetRepo.EnsureSeed(seedCtx); err != nil {
		logger.Sugar().Fatalf("main: failed to seed dataset: %v", err)
	}
	cancelSeed()

	// Gemini backs both intent extraction and synthetic offer generation.
	// Without a key the deterministic keyword extractor takes over and the
	// synthetic tier is skipped.
	var extractor intent.Extractor
	var generator genai.TextGenerator
	if key := config.AppConfig.GeminiAPIKey; key != "" {
		client, err := genai.NewGeminiClient(context.Background(), key)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize gemini client: %v", err)
		}
		generator = client
		extractor = intent.NewGeminiExtractor(client)
	} else {
		logger.Warn("main: no Gemini API key configured, using keyword extraction only")
		extractor = &intent.KeywordExtractor{Now: time.Now().UTC()}
	}

	providerTimeout := time.Duration(config.AppConfig.ProviderTimeoutSec) * time.Second
	generatorTimeout := time.Duration(config.AppConfig.GeneratorTimeoutSec) * time.Second

	var flightTiers []resolve.FlightTier
	var hotelTiers []resolve.HotelTier
	if config.AppConfig.AmadeusClientID != "" && config.AppConfig.AmadeusClientSecret != "" {
		live := resolve.NewAmadeusClient(
			config.AppConfig.AmadeusBaseURL,
			config.AppConfig.AmadeusClientID,
			config.AppConfig.AmadeusClientSecret,
		)
		flightTiers = append(flightTiers, resolve.FlightTier{Source: live, Timeout: providerTimeout})
		hotelTiers = append(hotelTiers, resolve.HotelTier{Source: live, Timeout: providerTimeout})
	} else {
		logger.Warn("main: no Amadeus credentials configured, skipping live tier")
	}
	flightTiers = append(flightTiers, resolve.FlightTier{
		Source: &resolve.DatasetFlightSource{Table: datasetRepo}, Timeout: providerTimeout,
	})
	hotelTiers = append(hotelTiers, resolve.HotelTier{
		Source: &resolve.DatasetHotelSource{Table: datasetRepo}, Timeout: providerTimeout,
	})
	if generator != nil {
		synthetic := &resolve.SyntheticGenerator{Gen: generator}
		flightTiers = append(flightTiers, resolve.FlightTier{Source: synthetic, Timeout: generatorTimeout})
		hotelTiers = append(hotelTiers, resolve.HotelTier{Source: synthetic, Timeout: generatorTimeout})
	}
	rules := &resolve.RuleGenerator{}
	flightTiers = append(flightTiers, resolve.FlightTier{Source: rules})
	hotelTiers = append(hotelTiers, resolve.HotelTier{Source: rules})

	flightChain := resolve.NewFlightChain(logger, flightTiers...)
	hotelChain := resolve.NewHotelChain(logger, datasetRepo, hotelTiers...)

	threadTTL := time.Duration(config.AppConfig.ThreadTTLMin) * time.Minute
	store := conversation.NewRedisStore(utils.GetThreadStoreClient(), threadTTL)

	gate := intent.Gate{HomeCity: config.AppConfig.HomeCity}
	controller := dialogue.NewController(store, extractor, gate, flightChain, hotelChain, logger)

	statsCache := &handlers.RedisResponseCache{Client: utils.GetCacheClient()}
	handlerBundle := handlers.NewHandlerBundle(controller, datasetRepo, statsCache)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetThreadStoreClient(), utils.GetCacheClient()},
		database.MongoClient,
	)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
