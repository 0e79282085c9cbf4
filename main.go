package main

import (
	"log"

	api "mailflow-backend/cmd/api"
	authdomain "mailflow-backend/internal/auth/domain"
	authRepo "mailflow-backend/internal/auth/repository"
	authUsecase "mailflow-backend/internal/auth/usecase"
	cachedomain "mailflow-backend/internal/cache/domain"
	cacheRepo "mailflow-backend/internal/cache/repository"
	cacheUsecase "mailflow-backend/internal/cache/usecase"
	"mailflow-backend/internal/events"
	messagedomain "mailflow-backend/internal/message/domain"
	messageRepo "mailflow-backend/internal/message/repository"
	messageUsecase "mailflow-backend/internal/message/usecase"
	"mailflow-backend/pkg/config"
	"mailflow-backend/pkg/database"
	"mailflow-backend/pkg/errsink"
	"mailflow-backend/pkg/mailer"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&authdomain.Client{}, &messagedomain.Message{}, &messagedomain.History{}, &cachedomain.Bucket{}, &errsink.ErrorLog{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	clientRepository := authRepo.NewClientRepository(db)
	messageRepository := messageRepo.NewMessageRepository(db)
	historyRepository := messageRepo.NewHistoryRepository(db)
	bucketRepository := cacheRepo.NewBucketRepository(db)

	// Initialize error sink and SMTP transport
	sink := errsink.NewSink(db)
	transport := mailer.NewSMTPTransport(cfg)

	// Initialize use cases (dependency injection)
	authUsecaseInstance := authUsecase.NewAuthUsecase(clientRepository, cfg)
	messageUsecaseInstance := messageUsecase.NewMessageUsecase(messageRepository, historyRepository, transport, sink, cfg.DefaultMaxRetries)
	cacheUsecaseInstance := cacheUsecase.NewCacheUsecase(bucketRepository, messageUsecaseInstance, sink, cfg.DefaultCacheTTL)

	// Initialize event publishing (Pub/Sub)
	// Only enabled if project ID is configured
	if cfg.GoogleProjectID != "" {
		publisher, err := events.NewPubSubPublisher(cfg.GoogleProjectID, cfg.PubSubTopic, cfg.GoogleCredentials)
		if err != nil {
			log.Printf("[WARN] Failed to initialize event publisher (status events disabled): %v", err)
		} else {
			log.Printf("[DEBUG] Event publisher initialized with topic: %s", cfg.PubSubTopic)
			messageUsecaseInstance.SetEventPublisher(publisher)
		}
	} else {
		log.Printf("[WARN] GoogleProjectID not configured, status event publishing disabled")
	}

	// Initialize HTTP handler
	handler := api.NewHandler(authUsecaseInstance, messageUsecaseInstance, cacheUsecaseInstance)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
