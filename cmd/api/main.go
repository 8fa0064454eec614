package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"github.com/Vadim-maker-source/vexnum/internal/adapter/api"
	"github.com/Vadim-maker-source/vexnum/internal/adapter/api/handler"
	apimiddleware "github.com/Vadim-maker-source/vexnum/internal/adapter/api/middleware"
	"github.com/Vadim-maker-source/vexnum/internal/adapter/api/router"
	"github.com/Vadim-maker-source/vexnum/internal/adapter/repository"
	"github.com/Vadim-maker-source/vexnum/internal/infrastructure/firebase"
	"github.com/Vadim-maker-source/vexnum/internal/infrastructure/ratelimit"
	"github.com/Vadim-maker-source/vexnum/internal/infrastructure/storage"
	"github.com/Vadim-maker-source/vexnum/internal/infrastructure/websocket"
	"github.com/Vadim-maker-source/vexnum/internal/usecase"
	"github.com/Vadim-maker-source/vexnum/internal/viewer"
	"github.com/Vadim-maker-source/vexnum/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opt option.ClientOption
	var opts []option.ClientOption
	serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")

	// Prefer inline credentials (for production), fall back to a file.
	if serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); serviceAccountJSON != "" {
		log.Printf("Using Firebase service account from environment variable")
		opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
		serviceAccountPath = ""
	} else {
		if serviceAccountPath == "" {
			serviceAccountPath = "./service-account.json"
		}
		if _, err := os.Stat(serviceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", serviceAccountPath)
		}
		log.Printf("Using Firebase service account from file: %s", serviceAccountPath)
		opt = option.WithCredentialsFile(serviceAccountPath)
	}
	opts = append(opts, opt)

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opts...)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClientWithDatabase(ctx, cfg.FirebaseProject, cfg.DatabaseID, opts...)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, serviceAccountPath)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage: %v", err)
	}
	defer storageClient.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient, cfg.UsersCollection)
	postRepo := repository.NewFirestorePostRepository(firestoreClient, cfg.PostsCollection)
	commentRepo := repository.NewFirestoreCommentRepository(firestoreClient, cfg.CommentsCollection)
	saveRepo := repository.NewFirestoreSaveRepository(firestoreClient, cfg.SavesCollection)
	subscriptionRepo := repository.NewFirestoreSubscriptionRepository(firestoreClient, cfg.SubscribersCollection)
	chatRepo := repository.NewFirestoreChatRepository(firestoreClient, cfg.ChatsCollection, cfg.MessagesCollection)
	storyRepo := repository.NewFirestoreStoryRepository(firestoreClient, cfg.StoriesCollection)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient, cfg.FirebaseAPIKey)

	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	wsManager := websocket.NewManager()

	authUseCase := usecase.NewAuthUseCase(userRepo, firebaseAuthClient)
	userUseCase := usecase.NewUserUseCase(userRepo, storageClient)
	storyUseCase := usecase.NewStoryUseCase(storyRepo, subscriptionRepo, userRepo, storageClient, rateLimiter)
	chatUseCase := usecase.NewChatUseCase(chatRepo, storageClient, rateLimiter, wsManager, cfg.MessagesCollection)
	postUseCase := usecase.NewPostUseCase(postRepo, commentRepo, saveRepo, userRepo, storageClient)
	subscriptionUseCase := usecase.NewSubscriptionUseCase(subscriptionRepo, userRepo)

	// The viewer manager consumes client frames and drives per-user
	// story sessions over the push channel. The handler must be in
	// place before the manager loop starts reading it.
	viewerManager := viewer.NewManager(wsManager, storyUseCase)
	wsManager.SetFrameHandler(viewerManager)
	wsManager.Start(ctx)

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)

	handler.Setup(
		authUseCase,
		userUseCase,
		storyUseCase,
		chatUseCase,
		postUseCase,
		subscriptionUseCase,
		storageClient,
		wsManager,
		authMiddleware,
	)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	router.Setup(e, authMiddleware)

	log.Printf("Starting server on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
