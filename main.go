// File: veriflow/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"veriflow/config"
	"veriflow/cron"
	"veriflow/database"
	verificationRepo "veriflow/database/repository/verification"
	"veriflow/handlers"
	"veriflow/middleware"
	"veriflow/routes"
	"veriflow/services/extract"
	"veriflow/services/face"
	"veriflow/services/registration"
	"veriflow/services/sumsub"
	"veriflow/services/verification"
	"veriflow/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	verifRepo := verificationRepo.NewMongoVerificationRepo()

	// services.
	verificationService := &verification.DefaultVerificationService{
		Repo: verifRepo,
	}
	registrationService := &registration.DefaultRegistrationService{
		Repo: verifRepo,
	}

	sumsubClient, err := sumsub.NewClient(utils.GetCacheClient())
	if err != nil {
		logger.Sugar().Warnf("main: sumsub client unavailable: %v", err)
	}

	var faceMatcher face.Matcher
	if m, err := face.NewRekognitionMatcher(context.Background()); err != nil {
		logger.Sugar().Warnf("main: face matcher unavailable: %v", err)
	} else {
		faceMatcher = m
	}

	extractor := newExtractor()
	if extractor == nil {
		logger.Sugar().Warn("main: no ID extraction provider configured")
	}

	storageService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	// handlers.
	webhookHandler := handlers.NewWebhookHandler(verificationService)
	statusHandler := handlers.NewStatusHandler(verificationService)
	registrationHandler := handlers.NewRegistrationHandler(registrationService)
	sumsubHandler := handlers.NewSumsubHandler(sumsubClient)
	faceHandler := handlers.NewFaceHandler(faceMatcher)
	extractHandler := handlers.NewExtractHandler(extractor)
	storageHandler := handlers.NewStorageHandler(storageService)
	testDataHandler := handlers.NewTestDataHandler(verifRepo)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		VeriffWebhookHandler: webhookHandler.VeriffWebhookHandler,

		GetVerificationStatusHandler: statusHandler.GetVerificationStatusHandler,
		GetUserDetailsHandler:        statusHandler.GetUserDetailsHandler,

		SaveRegistrationHandler: registrationHandler.SaveRegistrationHandler,

		SumsubAccessTokenHandler: sumsubHandler.AccessTokenHandler,
		SumsubStatusHandler:      sumsubHandler.ApplicantStatusHandler,
		SumsubIDDetailsHandler:   sumsubHandler.IDDetailsHandler,

		VerifyFaceHandler:     faceHandler.VerifyFaceHandler,
		ExtractIDHandler:      extractHandler.ExtractIDHandler,
		UploadDocumentHandler: storageHandler.UploadDocumentHandler,

		InsertTestVerificationHandler: testDataHandler.InsertTestVerificationHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the background reconciler for records whose webhook never arrived.
	cron.InitReconcilerWorker(verifRepo, sumsubClient)

	// Start the HTTP server.
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

	// Wait for an OS signal to gracefully shutdown.
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

// newExtractor picks the configured vision provider, or nil when neither key
// is present.
func newExtractor() extract.Extractor {
	cfg := config.AppConfig
	switch cfg.ExtractProvider {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil
		}
		e, err := extract.NewGeminiExtractor(cfg.GeminiAPIKey)
		if err != nil {
			utils.GetLogger().Sugar().Warnf("main: gemini extractor unavailable: %v", err)
			return nil
		}
		return e
	default:
		if cfg.OpenAIAPIKey == "" {
			return nil
		}
		return extract.NewOpenAIExtractor(cfg.OpenAIAPIKey)
	}
}
