package main

import (
	"context"
	"net/http"
	"os"

	"webflow-mirror-layer/internal/application"
	"webflow-mirror-layer/internal/infrastructure/api"
	"webflow-mirror-layer/internal/infrastructure/encryption"
	"webflow-mirror-layer/internal/infrastructure/mailer"
	"webflow-mirror-layer/internal/infrastructure/metrics"
	"webflow-mirror-layer/internal/infrastructure/redisstore"
	"webflow-mirror-layer/internal/infrastructure/repository"
	"webflow-mirror-layer/internal/infrastructure/webflow"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	// Initialize logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("⚠️  Warning: .env file not found")
	}

	// Get configuration from environment
	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	mongoDatabase := os.Getenv("MONGODB_DATABASE")
	if mongoDatabase == "" {
		mongoDatabase = "webflow_mirror"
	}
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	appURL := os.Getenv("APP_URL")
	if appURL == "" {
		appURL = "http://localhost:8080"
	}
	dashboardURL := os.Getenv("USER_DASHBOARD_URL")
	if dashboardURL == "" {
		dashboardURL = appURL + "/dashboard"
	}

	encryptionKey := os.Getenv("ENCRYPTION_KEY")
	if encryptionKey == "" {
		logger.Fatal().Msg("ENCRYPTION_KEY environment variable is required")
	}
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal().Msg("JWT_SECRET environment variable is required")
	}
	webflowClientID := os.Getenv("WEBFLOW_CLIENT_ID")
	webflowClientSecret := os.Getenv("WEBFLOW_CLIENT_SECRET")
	if webflowClientID == "" || webflowClientSecret == "" {
		logger.Fatal().Msg("WEBFLOW_CLIENT_ID and WEBFLOW_CLIENT_SECRET environment variables are required")
	}
	redirectURI := os.Getenv("WEBFLOW_REDIRECT_URI")
	if redirectURI == "" {
		redirectURI = appURL + "/api/webflow/oauth/callback"
	}

	// Connect to MongoDB
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(mongoURI))
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer client.Disconnect(context.Background())

	db := client.Database(mongoDatabase)

	// Connect to Redis
	redisClient := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer redisClient.Close()

	// Initialize infrastructure (implementations)
	encryptionService, err := encryption.NewService(encryptionKey)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize encryption service")
	}

	syncMetrics := metrics.New()
	webflowClient := webflow.NewClient(webflow.ClientOptions{
		ObserveRequest: syncMetrics.ObserveUpstream,
	}, logger)
	oauthConfig := webflow.NewOAuthConfig(webflowClientID, webflowClientSecret, redirectURI)
	stateStore := redisstore.NewStateStore(redisClient, logger)
	logMailer := mailer.NewLogMailer(logger)

	// Initialize repositories
	siteRepo := repository.NewMongoSiteRepository(db)
	collectionRepo := repository.NewMongoCollectionRepository(db)
	itemRepo := repository.NewMongoItemRepository(db)
	productRepo := repository.NewMongoProductRepository(db)
	pageRepo := repository.NewMongoPageRepository(db)
	userRepo := repository.NewMongoUserRepository(db)

	// Initialize application services
	siteSync := application.NewSiteSyncService(webflowClient, siteRepo, syncMetrics, logger)
	collectionSync := application.NewCollectionSyncService(webflowClient, collectionRepo, syncMetrics, logger)
	itemSync := application.NewItemSyncService(webflowClient, collectionRepo, itemRepo, syncMetrics, logger)
	productSync := application.NewProductSyncService(webflowClient, productRepo, syncMetrics, logger)
	pageSync := application.NewPageSyncService(webflowClient, pageRepo, syncMetrics, logger)

	fullSync := application.NewWebflowSyncService(
		siteSync,
		collectionSync,
		itemSync,
		productSync,
		pageSync,
		siteRepo,
		userRepo,
		logger,
	)

	userService := application.NewUserService(userRepo, encryptionService, logMailer, jwtSecret, logger)
	dashboardService := application.NewDashboardService(userRepo, fullSync, encryptionService, logger)

	// Setup router
	router := api.NewRouter(api.RouterConfig{
		Auth:       api.NewAuthHandler(userService, logger),
		Webflow:    api.NewWebflowHandler(userService, siteSync, collectionSync, itemSync, productSync, pageSync, fullSync, oauthConfig, stateStore, dashboardURL, logger),
		Dashboard:  api.NewDashboardHandler(dashboardService, logger),
		JWTSecret:  jwtSecret,
		AppURL:     appURL,
		SwaggerURL: "/swagger/doc.json",
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Info().Str("port", port).Msg("Starting API server")
	if err := http.ListenAndServe(":"+port, router); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start server")
	}
}
