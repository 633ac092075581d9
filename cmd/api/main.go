package main

import (
	"fmt"
	"net/http"
	"os"

	"homeledger/internal/config"
	"homeledger/internal/database"
	"homeledger/internal/fx"
	"homeledger/internal/handlers"
	"homeledger/internal/logger"
	"homeledger/internal/middleware"
	"homeledger/internal/provider"
	"homeledger/internal/services"
	"homeledger/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/time/rate"
)

// @title           Homeledger API
// @version         1.0
// @description     Homeledger is a household finance tracker that records postings and transfers across accounts held in different currencies, converting between them with historical exchange rates.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom validators
	validator.Register()

	// Initialize FX core
	db := dbManager.DB()
	rateStore := fx.NewGormRateStore(db)
	resolver := fx.NewResolver(rateStore, appConfig.FXPivotCurrency)
	quoter := provider.NewYahooForex(http.DefaultClient)

	// Initialize services
	userService := services.NewUserService(db)
	registryService := services.NewRegistryService(db)
	accountService := services.NewAccountService(db, registryService)
	categoryService := services.NewCategoryService(db, registryService)
	fxService := services.NewFXService(rateStore, resolver, registryService, quoter, appConfig.FXProviderSource)
	postingService := services.NewPostingService(db, accountService, categoryService, resolver, appConfig.FXFallbackOneToOne)
	transferService := services.NewTransferService(db, accountService, resolver, appConfig.FXFallbackOneToOne)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	registryHandler := handlers.NewRegistryHandler(registryService)
	accountHandler := handlers.NewAccountHandler(accountService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	fxHandler := handlers.NewFXRateHandler(fxService)
	postingHandler := handlers.NewPostingHandler(postingService)
	transferHandler := handlers.NewTransferHandler(transferService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.RateLimit(rate.NewLimiter(rate.Limit(50), 100)))

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Registry routes
	currencies := protected.Group("/currencies")
	currencies.POST("", registryHandler.CreateCurrency)
	currencies.GET("", registryHandler.ListCurrencies)
	currencies.PATCH("/:code", registryHandler.SetCurrencyEnabled)

	accountTypes := protected.Group("/account-types")
	accountTypes.POST("", registryHandler.CreateAccountType)
	accountTypes.GET("", registryHandler.ListAccountTypes)

	institutions := protected.Group("/institutions")
	institutions.POST("", registryHandler.CreateInstitution)
	institutions.GET("", registryHandler.ListInstitutions)

	cardTypes := protected.Group("/card-types")
	cardTypes.POST("", registryHandler.CreateCardType)
	cardTypes.GET("", registryHandler.ListCardTypes)

	// Account routes
	accounts := protected.Group("/accounts")
	accounts.POST("", accountHandler.CreateAccount)
	accounts.GET("", accountHandler.ListAccounts)
	accounts.GET("/:id", accountHandler.GetAccountByID)
	accounts.PATCH("/:id", accountHandler.SetArchived)
	accounts.POST("/:id/cards", accountHandler.AddCard)
	accounts.GET("/:id/cards", accountHandler.ListCards)

	// Category routes
	groups := protected.Group("/category-groups")
	groups.POST("", categoryHandler.CreateGroup)
	groups.GET("", categoryHandler.ListGroups)

	categories := protected.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.ListCategories)
	categories.GET("/:id", categoryHandler.GetCategoryByID)
	categories.PATCH("/:id", categoryHandler.SetArchived)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	// FX routes
	fxRoutes := protected.Group("/fx")
	fxRoutes.POST("/rates", fxHandler.UpsertRate)
	fxRoutes.GET("/rates", fxHandler.ListRates)
	fxRoutes.GET("/resolve", fxHandler.ResolveRate)
	fxRoutes.POST("/fetch", fxHandler.FetchRates)

	// Posting routes
	postings := protected.Group("/postings")
	postings.POST("", postingHandler.CreatePosting)
	postings.GET("", postingHandler.ListPostings)
	postings.GET("/:id", postingHandler.GetPostingByID)
	postings.DELETE("/:id", postingHandler.DeletePosting)

	// Transfer routes
	transfers := protected.Group("/transfers")
	transfers.POST("", transferHandler.CreateTransfer)
	transfers.GET("", transferHandler.ListTransfers)
	transfers.GET("/:id", transferHandler.GetTransferByID)
	transfers.DELETE("/:id", transferHandler.DeleteTransfer)

	log.Infof("Starting Homeledger backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
