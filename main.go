package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/str-zone/app/config"
	"github.com/str-zone/app/controllers"
	"github.com/str-zone/app/services"
	"github.com/str-zone/internal/external"
	"github.com/str-zone/internal/geocode"
	"github.com/str-zone/routes"
)

func main() {
	// 1. Load configuration
	loadConfig()
	if err := config.Load(viper.GetString("config_file")); err != nil {
		log.Fatal("Cannot load service config:", err)
	}

	// 2. Initialize logger
	logger := initLogger()
	defer logger.Sync()

	logger.Info("Starting STR Zone Rules Service")

	// 3. Connect MongoDB (property management store)
	mongoDB := initMongoDB(logger)
	defer func() {
		if err := mongoDB.Client().Disconnect(context.Background()); err != nil {
			logger.Error("Error disconnecting MongoDB", zap.Error(err))
		}
	}()

	// 4. Initialize the client-state store. Redis fronted by an LRU when
	// reachable, plain in-memory otherwise.
	cityStore := initCityStore(logger)
	defer cityStore.Close()

	// 5. Initialize external clients
	resolver := geocode.NewMapboxResolver(config.C.Geocode.MapboxToken, "", logger)
	twilio := external.NewTwilioClient(
		config.C.Twilio.AccountSID,
		config.C.Twilio.AuthToken,
		config.C.Twilio.PhoneNumber,
		"", logger)
	anthropic := external.NewAnthropicClient(
		config.C.Anthropic.APIKey,
		config.C.Anthropic.Model,
		"", logger)
	webhook := external.NewWebhookClient(config.C.WebhookURL, logger)

	// 6. Initialize services
	rulesService := services.NewRulesService(
		resolver,
		config.C.Sheet.ID,
		config.C.Sheet.Tab,
		"",
		config.C.Suggest.Max,
		logger)
	cityService := services.NewCityService(cityStore, config.C.Quota.FreeChecks, logger)
	propertyService, err := services.NewPropertyService(mongoDB, logger)
	if err != nil {
		logger.Fatal("Failed to initialize property service", zap.Error(err))
	}

	// 7. Initialize controllers
	rulesController := controllers.NewRulesController(rulesService, webhook, logger)
	cityController := controllers.NewCityController(cityService, logger)
	propertyController := controllers.NewPropertyController(propertyService, twilio, anthropic, logger)
	adminController := controllers.NewAdminController(cityStore, logger)

	// 8. Initialize Gin router
	if viper.GetString("app.env") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// 9. Mount routes
	routes.SetupAllRoutes(router, rulesController, cityController, propertyController, adminController)

	// 10. Start server
	port := viper.GetString("app.port")
	logger.Info("STR Zone Rules Service starting", zap.String("port", port))

	if err := router.Run(":" + port); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

// loadConfig loads bootstrap configuration from file and env vars
func loadConfig() {
	viper.SetConfigName("app")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	// Set defaults
	viper.SetDefault("app.port", "8080")
	viper.SetDefault("app.env", "development")
	viper.SetDefault("config_file", "config/rules.yaml")
	viper.SetDefault("mongo.url", "mongodb://localhost:27017/str_zone")
	viper.SetDefault("store.lru_size", 1000)

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Cannot read config file: %v", err)
	}
}

// initLogger initializes the structured logger
func initLogger() *zap.Logger {
	env := getEnv("APP_ENV", "development")

	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	logger, err := cfg.Build()
	if err != nil {
		log.Fatal("Cannot initialize logger:", err)
	}

	return logger
}

// initMongoDB connects to MongoDB
func initMongoDB(logger *zap.Logger) *mongo.Database {
	mongoURL := config.C.MongoURI
	if mongoURL == "" {
		mongoURL = viper.GetString("mongo.url")
	}

	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(mongoURL))
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Ping(ctx, nil); err != nil {
		logger.Fatal("Failed to ping MongoDB", zap.Error(err))
	}

	db := client.Database("str_zone")
	logger.Info("Connected to MongoDB", zap.String("database", "str_zone"))

	return db
}

// initCityStore picks the best available client-state store
func initCityStore(logger *zap.Logger) services.ICityStore {
	redisURL := config.C.RedisURL
	if redisURL == "" {
		logger.Info("No Redis configured, using in-memory store")
		return services.NewMemoryCityStore()
	}

	redisStore, err := services.NewRedisCityStore(redisURL, logger)
	if err != nil {
		logger.Warn("Redis unavailable, falling back to in-memory store", zap.Error(err))
		return services.NewMemoryCityStore()
	}

	hybrid, err := services.NewHybridCityStore(redisStore, viper.GetInt("store.lru_size"), logger)
	if err != nil {
		logger.Warn("LRU front unavailable, using Redis directly", zap.Error(err))
		return redisStore
	}

	logger.Info("Using hybrid store (LRU + Redis)")
	return hybrid
}

// getEnv reads an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
