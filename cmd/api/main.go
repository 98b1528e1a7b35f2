package main

import (
	"context"
	"log"
	"os"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"foodapp/internal/adapter/api"
	"foodapp/internal/adapter/api/handler"
	apimiddleware "foodapp/internal/adapter/api/middleware"
	"foodapp/internal/adapter/api/router"
	"foodapp/internal/adapter/repository"
	"foodapp/internal/infrastructure/firebase"
	"foodapp/internal/infrastructure/ratelimit"
	"foodapp/internal/infrastructure/websocket"
	"foodapp/internal/usecase"
	"foodapp/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opt option.ClientOption

	serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON")
	if serviceAccountJSON != "" {
		log.Printf("Using Firebase service account from environment variable")
		opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
	} else {
		serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
		if serviceAccountPath == "" {
			serviceAccountPath = "./service-account.json"
		}
		if _, err := os.Stat(serviceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", serviceAccountPath)
		}
		log.Printf("Using Firebase service account from file: %s", serviceAccountPath)
		opt = option.WithCredentialsFile(serviceAccountPath)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer rdb.Close()

	accountRepo := repository.NewFirestoreAccountRepository(firestoreClient)
	storeRepo := repository.NewFirestoreStoreRepository(firestoreClient)
	foodRepo := repository.NewFirestoreFoodRepository(firestoreClient)
	orderRepo := repository.NewFirestoreOrderRepository(firestoreClient)
	reviewRepo := repository.NewFirestoreReviewRepository(firestoreClient)
	chatRepo := repository.NewFirestoreChatRepository(firestoreClient)
	cartRepo := repository.NewRedisCartRepository(rdb, time.Duration(cfg.CartTTLHours)*time.Hour)

	firebaseAuthClient := firebase.NewAuthClient(authClient, cfg.FirebaseApiKey)

	wsManager := websocket.NewManager()
	chatLimiter := ratelimit.NewLimiter(20, time.Minute)

	sessions := usecase.NewSessionHub()

	authUseCase := usecase.NewAuthUseCase(firebaseAuthClient, accountRepo, storeRepo, sessions)
	storeUseCase := usecase.NewStoreUseCase(storeRepo, accountRepo)
	foodUseCase := usecase.NewFoodUseCase(foodRepo, storeRepo)
	cartUseCase := usecase.NewCartUseCase(cartRepo, foodRepo)
	orderUseCase := usecase.NewOrderUseCase(orderRepo, cartRepo, storeRepo, wsManager)
	reviewUseCase := usecase.NewReviewUseCase(reviewRepo, orderRepo, storeRepo)
	chatUseCase := usecase.NewChatUseCase(chatRepo, accountRepo, storeRepo, wsManager, chatLimiter, cfg.ChatMaxMessageLength)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authUseCase)

	handlers := router.Handlers{
		Health:    handler.NewHealthHandler(),
		Auth:      handler.NewAuthHandler(authUseCase),
		Store:     handler.NewStoreHandler(storeUseCase),
		Food:      handler.NewFoodHandler(foodUseCase),
		Cart:      handler.NewCartHandler(cartUseCase),
		Order:     handler.NewOrderHandler(orderUseCase),
		Review:    handler.NewReviewHandler(reviewUseCase),
		Chat:      handler.NewChatHandler(chatUseCase),
		WebSocket: handler.NewWebSocketHandler(wsManager, authUseCase, chatUseCase),
	}

	router.Setup(e, handlers, authMiddleware)

	log.Printf("Starting server on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
