package main

import (
	"context"
	"log"
	"os/signal"
	"strings"
	"syscall"

	api "github.com/KumarShresth7/EmailAutomation/cmd/api"
	analyticsUsecase "github.com/KumarShresth7/EmailAutomation/internal/analytics/usecase"
	authUsecase "github.com/KumarShresth7/EmailAutomation/internal/auth/usecase"
	chatbotUsecase "github.com/KumarShresth7/EmailAutomation/internal/chatbot/usecase"
	customerdomain "github.com/KumarShresth7/EmailAutomation/internal/customer/domain"
	customerRepo "github.com/KumarShresth7/EmailAutomation/internal/customer/repository"
	"github.com/KumarShresth7/EmailAutomation/internal/errorlog"
	feedbackdomain "github.com/KumarShresth7/EmailAutomation/internal/feedback/domain"
	feedbackRepo "github.com/KumarShresth7/EmailAutomation/internal/feedback/repository"
	feedbackUsecase "github.com/KumarShresth7/EmailAutomation/internal/feedback/usecase"
	"github.com/KumarShresth7/EmailAutomation/internal/intake"
	"github.com/KumarShresth7/EmailAutomation/internal/intake/source"
	inventorydomain "github.com/KumarShresth7/EmailAutomation/internal/inventory/domain"
	inventoryRepo "github.com/KumarShresth7/EmailAutomation/internal/inventory/repository"
	inventoryUsecase "github.com/KumarShresth7/EmailAutomation/internal/inventory/usecase"
	"github.com/KumarShresth7/EmailAutomation/internal/notification"
	orderdomain "github.com/KumarShresth7/EmailAutomation/internal/order/domain"
	orderRepo "github.com/KumarShresth7/EmailAutomation/internal/order/repository"
	orderUsecase "github.com/KumarShresth7/EmailAutomation/internal/order/usecase"
	"github.com/KumarShresth7/EmailAutomation/pkg/ai"
	"github.com/KumarShresth7/EmailAutomation/pkg/chroma"
	"github.com/KumarShresth7/EmailAutomation/pkg/config"
	"github.com/KumarShresth7/EmailAutomation/pkg/database"
	"github.com/KumarShresth7/EmailAutomation/pkg/fcm"
	"github.com/KumarShresth7/EmailAutomation/pkg/gmail"
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
	if err := db.AutoMigrate(
		&orderdomain.Order{},
		&customerdomain.Customer{},
		&inventorydomain.Item{},
		&feedbackdomain.Feedback{},
		&errorlog.Entry{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	orderRepository := orderRepo.NewGormOrderRepository(db)
	customerRepository := customerRepo.NewGormCustomerRepository(db)
	inventoryRepository := inventoryRepo.NewGormInventoryRepository(db)
	feedbackRepository := feedbackRepo.NewGormFeedbackRepository(db)
	errorRecorder := errorlog.NewGormRecorder(db)

	// Initialize AI service
	aiService, err := ai.NewService(ai.Config{
		Provider:      ai.ProviderType(cfg.AIProvider),
		GeminiAPIKey:  cfg.GeminiApiKey,
		OllamaBaseURL: cfg.OllamaBaseURL,
		OllamaModel:   cfg.OllamaModel,
	})
	if err != nil {
		log.Fatal("Failed to initialize AI service:", err)
	}
	log.Printf("AI service initialized with provider: %s", cfg.AIProvider)

	// Initialize Gmail sender
	mailer := gmail.NewSender(cfg.GmailClientID, cfg.GmailClientSecret, cfg.GmailRefreshToken, cfg.SenderEmail, cfg.SenderName)

	// Initialize FCM client (optional, staff alerts work without it)
	var fcmClient *fcm.Client
	if cfg.FirebaseCredentials != "" {
		fcmClient, err = fcm.NewClient(cfg.FirebaseCredentials)
		if err != nil {
			log.Printf("Warning: Failed to initialize FCM client (push notifications disabled): %v", err)
			fcmClient = nil
		}
	}

	// Initialize notification service. With no project ID configured it
	// delivers inline instead of through Pub/Sub.
	topicName := cfg.GooglePubSubTopic
	if parts := strings.Split(topicName, "/"); len(parts) > 1 {
		topicName = parts[len(parts)-1]
	}
	notifService, err := notification.NewService(cfg.GoogleProjectID, topicName, cfg.GoogleCredentials, mailer, fcmClient)
	if err != nil {
		log.Fatal("Failed to initialize notification service:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go notifService.Start(ctx)

	// Initialize use cases (dependency injection)
	orderUsecaseInstance := orderUsecase.NewOrderUsecase(
		orderRepository,
		customerRepository,
		inventoryRepository,
		aiService,
		notifService,
		errorRecorder,
		cfg.AICallTimeout,
	)
	feedbackUsecaseInstance := feedbackUsecase.NewFeedbackUsecase(feedbackRepository)
	inventoryUsecaseInstance := inventoryUsecase.NewInventoryUsecase(inventoryRepository)
	analyticsUsecaseInstance := analyticsUsecase.NewAnalyticsUsecase(orderRepository, inventoryRepository, aiService)
	authUsecaseInstance := authUsecase.NewAuthUsecase(cfg)

	// Initialize Chroma client for the chatbot knowledge base
	var chromaClient *chroma.ChromaClient
	if cfg.ChromaAPIKey != "" {
		chromaClient, err = chroma.NewChromaClient(cfg)
		if err != nil {
			log.Printf("Warning: Failed to initialize Chroma client (chatbot retrieval disabled): %v", err)
			chromaClient = nil
		}
	} else {
		log.Println("Warning: CHROMA_API_KEY not set, chatbot retrieval disabled")
	}
	chatbotUsecaseInstance := chatbotUsecase.NewChatbotUsecase(chromaClient, aiService, orderRepository, inventoryRepository)

	// Start the intake watcher over the configured source
	var reader source.Reader
	if cfg.IMAPAddress != "" {
		reader = source.NewIMAPReader(cfg.IMAPAddress, cfg.IMAPUsername, cfg.IMAPPassword)
		log.Printf("Intake source: IMAP %s", cfg.IMAPAddress)
	} else {
		reader = source.NewExcelReader(cfg.WatchFilePath)
		log.Printf("Intake source: %s", cfg.WatchFilePath)
	}
	watcher := intake.NewWatcher(
		reader,
		aiService,
		orderUsecaseInstance,
		feedbackUsecaseInstance,
		errorRecorder,
		cfg.PollInterval,
		cfg.StagingFilePath,
		cfg.AICallTimeout,
	)
	go func() {
		if err := watcher.Run(ctx); err != nil && ctx.Err() == nil {
			log.Printf("Watcher stopped: %v", err)
		}
	}()

	// Initialize HTTP handler
	handler := api.NewHandler(
		authUsecaseInstance,
		orderUsecaseInstance,
		inventoryUsecaseInstance,
		feedbackUsecaseInstance,
		analyticsUsecaseInstance,
		chatbotUsecaseInstance,
		cfg,
	)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
