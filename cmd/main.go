package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	_ "github.com/franciscosanchezn/gin-foodgram-api/docs" // Import generated docs
	"github.com/franciscosanchezn/gin-foodgram-api/internal/auth"
	"github.com/franciscosanchezn/gin-foodgram-api/internal/config"
	"github.com/franciscosanchezn/gin-foodgram-api/internal/controllers"
	"github.com/franciscosanchezn/gin-foodgram-api/internal/database"
	"github.com/franciscosanchezn/gin-foodgram-api/internal/middleware"
	"github.com/franciscosanchezn/gin-foodgram-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

var rootCmd = &cobra.Command{
	Use:   "foodgram",
	Short: "Foodgram recipe API",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Load environment variables before any command reads the configuration
		loadDotenvFile()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

// @title Foodgram API
// @version 1.0
// @description Recipe sharing API: recipes, favorites, shopping lists and subscriptions
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serve() error {
	configuration, err := loadConfig()
	if err != nil {
		return err
	}
	setUpLogger(configuration)

	db, err := setupDatabase(configuration)
	if err != nil {
		return err
	}

	store, closeStore, err := shortLinkStore(configuration, db)
	if err != nil {
		return err
	}
	defer closeStore()

	router := setupRouter(configuration, db, store)

	addr := fmt.Sprintf("%v:%d", configuration.Host, configuration.Port)
	log.Infof("Starting server on %s", addr)
	return router.Run(addr)
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger initializes the logger with a JSON formatter and aligns every package logger
func setUpLogger(conf *config.Config) {
	level := conf.LogrusLevel()
	log.SetFormatter(&log.JSONFormatter{})
	log.SetLevel(level)
	database.SetLogLevel(level)
	services.SetLogLevel(level)
	controllers.SetLogLevel(level)

	if conf.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
}

// loadConfig loads the application configuration from environment variables
func loadConfig() (*config.Config, error) {
	log.Info("Loading configuration from environment variables")
	conf, err := config.LoadConfig()
	if err != nil {
		log.WithError(err).Error("Invalid configuration")
		return nil, err
	}
	return conf, nil
}

// setupDatabase connects to the configured database and migrates the schema
func setupDatabase(conf *config.Config) (*gorm.DB, error) {
	db, err := database.InitDatabase(database.FromConfig(conf))
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// shortLinkStore picks the short link backend; the returned func releases it
func shortLinkStore(conf *config.Config, db *gorm.DB) (services.ShortLinkStore, func(), error) {
	if conf.ShortLinkStore != "redis" {
		return services.NewGormShortLinkStore(db), func() {}, nil
	}
	rdb, err := database.ConnectRedis(database.RedisConfig{
		Addr:     conf.RedisAddr,
		Password: conf.RedisPassword,
		DB:       conf.RedisDB,
	})
	if err != nil {
		return nil, nil, err
	}
	return services.NewRedisShortLinkStore(rdb), func() {
		if err := rdb.Close(); err != nil {
			log.WithError(err).Warn("Failed to close redis client")
		}
	}, nil
}

// setupRouter initializes the Gin router and sets up the routes
func setupRouter(conf *config.Config, db *gorm.DB, store services.ShortLinkStore) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(log.StandardLogger()), middleware.Metrics())

	tokens := auth.NewTokenIssuer(conf.JWTSecret, time.Duration(conf.JWTTTLHours)*time.Hour)
	limits := services.Limits{MaxCookingTime: conf.MaxCookingTime, MaxAmount: conf.MaxIngredientAmount}

	userService := services.NewUserService(db)
	shortLinks := services.NewShortLinkService(db, store, conf.BaseURL, conf.ShortLinkTokenLength)

	controllers.RegisterRoutes(router, controllers.Handlers{
		Auth:  controllers.NewAuthController(userService, tokens),
		Users: controllers.NewUserController(userService, services.NewSubscriptionService(db), conf.BaseURL, conf.PageSize),
		Recipes: controllers.NewRecipeController(controllers.RecipeServices{
			Recipes:      services.NewRecipeService(db, limits),
			Favorites:    services.NewFavoriteService(db),
			Cart:         services.NewShoppingCartService(db),
			ShoppingList: services.NewShoppingListService(db),
			ShortLinks:   shortLinks,
		}, conf.BaseURL, conf.PageSize),
		Catalogue:  controllers.NewCatalogueController(services.NewTagService(db), services.NewIngredientService(db)),
		ShortLinks: controllers.NewShortLinkController(shortLinks),
	}, tokens)

	router.GET("/health", healthCheckHandler)
	router.GET("/metrics", middleware.MetricsHandler())
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router
}

// healthCheckHandler handles the health check endpoint
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "gin-foodgram-api",
	})
}
