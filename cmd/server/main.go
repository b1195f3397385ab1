package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/azureprep/quiz-service/internal/config"
	"github.com/azureprep/quiz-service/internal/events"
	"github.com/azureprep/quiz-service/internal/handlers"
	"github.com/azureprep/quiz-service/internal/questionbank"
	"github.com/azureprep/quiz-service/internal/repositories"
	"github.com/azureprep/quiz-service/internal/repositories/postgres"
	"github.com/azureprep/quiz-service/internal/services"
	"github.com/azureprep/quiz-service/internal/storage"
	"github.com/azureprep/quiz-service/internal/utils"
	"github.com/azureprep/quiz-service/pkg"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		os.Exit(1)
	}

	logger := utils.NewLogger(cfg.Environment)
	validator := utils.NewValidator()

	bank, err := questionbank.Load(cfg.QuestionsDir, validator)
	if err != nil {
		logger.Error("failed to load question bank", "dir", cfg.QuestionsDir, "error", err)
		os.Exit(1)
	}
	logger.Info("question bank loaded", "exams", bank.Exams())

	// Best-run records live in Redis; if it is unreachable the gateway
	// degrades every persistence call to a no-op.
	var kvStore storage.KVStore
	if client, err := pkg.NewRedisClient(cfg); err != nil {
		logger.Warn("redis unavailable, best-run records will not persist", "error", err)
		kvStore = storage.NewMemoryStore()
	} else {
		kvStore = storage.NewRedisStore(client)
	}
	gateway := storage.NewRecordGateway(kvStore, logger)

	var runRepo repositories.RunRecordRepository
	if db, err := pkg.InitDatabase(cfg); err != nil {
		logger.Warn("database unavailable, run history disabled", "error", err)
	} else {
		runRepo = postgres.NewRunRecordPostgreSQL(db)
	}

	var publisher events.RunEventPublisher
	if cfg.EventsEnabled {
		publisher, err = events.NewKafkaRunEventPublisher(events.PublisherConfig{
			KafkaBrokers: cfg.KafkaBrokers,
			TopicName:    cfg.RunTopic,
			Logger:       logger,
		})
		if err != nil {
			logger.Error("failed to create event publisher", "error", err)
			os.Exit(1)
		}
	} else {
		publisher = events.NewMockRunEventPublisher(logger)
	}
	defer publisher.Close()

	serviceManager := services.NewServiceManager(bank, gateway, runRepo, publisher, logger, validator)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.RequestLogger(logger))

	handlerManager := handlers.NewHandlerManager(serviceManager, bank, logger)
	handlerManager.SetupRoutes(router)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("quiz service listening", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}
}
