package main

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog/log"

	"generate-narration-api/application/ports/outbound"
	"generate-narration-api/application/services"
	"generate-narration-api/config"
	"generate-narration-api/infrastructure/adapters"
	"generate-narration-api/infrastructure/gin_interface/controllers"
	"generate-narration-api/infrastructure/gin_interface/webapp"
	"generate-narration-api/middleware"
	mockprovider "generate-narration-api/mock"
)

func main() {
	_ = godotenv.Load()

	serverConfig, err := config.GetServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get server config")
	}

	zeroLogger := adapters.NewZerologWrapper()

	panicHandler := func(p interface{}) {
		zeroLogger.Error(fmt.Errorf("%v", p), "Panic in worker pool")
	}

	workerPool, err := ants.NewPool(64, ants.WithPanicHandler(panicHandler))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create worker pool")
	}
	defer workerPool.Release()

	summaryGenerator, speechSynthesizer, err := buildProviders(serverConfig, workerPool, zeroLogger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build provider adapters")
	}

	summaryComposer := services.NewSummaryComposer(serverConfig.SummaryWordLimit, zeroLogger, summaryGenerator, workerPool)

	narrationPipeline := services.NewNarrationPipelineOrchestrator(zeroLogger, workerPool, summaryComposer, speechSynthesizer)

	narrationController := controllers.NewNarrationController(zeroLogger, narrationPipeline)

	router := gin.Default()

	if err := router.SetTrustedProxies(nil); err != nil {
		log.Fatal().Err(err).Msg("Failed to set trusted proxies!")
	}

	if serverConfig.JwksUrl != "" {
		authHandler, err := middleware.NewAuthHandler(serverConfig.JwksUrl)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create auth handler!")
		}
		router.Use(authHandler.AuthMiddleware())
	}

	router.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	webapp.RegisterRoutes(router)
	narrationController.RegisterRoutes(router)

	if err := router.Run(":" + serverConfig.Port); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server!")
	}
}

func buildProviders(serverConfig *config.ServerConfig, workerPool *ants.Pool,
	logger outbound.LoggerPort) (outbound.SummaryGeneratorPort, outbound.SpeechSynthesizerPort, error) {
	if serverConfig.MockProviders {
		logger.Warn("MOCK_PROVIDERS is set, using in-process fake providers")
		return mockprovider.NewSummaryGenerator(workerPool, logger), mockprovider.NewSpeechSynthesizer(logger), nil
	}

	summaryConfig, err := config.GetSummaryConfig()
	if err != nil {
		return nil, nil, err
	}

	speechConfig, err := config.GetSpeechConfig()
	if err != nil {
		return nil, nil, err
	}

	contentFetcher := adapters.NewContentFetcher(nil, logger)

	summaryGenerator := adapters.NewSummaryStreamGenerator(summaryConfig, workerPool, logger)
	speechSynthesizer := adapters.NewSpeechSynthesizer(contentFetcher, speechConfig)

	return summaryGenerator, speechSynthesizer, nil
}
