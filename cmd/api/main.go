package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/asubedar/profit-ladder/internal/config"
	"github.com/asubedar/profit-ladder/internal/database"
	"github.com/asubedar/profit-ladder/internal/handlers"
	"github.com/asubedar/profit-ladder/internal/logger"
	"github.com/asubedar/profit-ladder/internal/middleware"
	"github.com/asubedar/profit-ladder/internal/portfolio"
	"github.com/asubedar/profit-ladder/internal/provider"
	"github.com/asubedar/profit-ladder/internal/settings"
	"github.com/asubedar/profit-ladder/internal/store"
	"github.com/asubedar/profit-ladder/internal/validator"
)

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

	// Register custom request validators
	validator.Register()

	// Initialize stores and services
	db := dbManager.DB()
	positionStore := store.NewPositionStore(db)
	settingStore := store.NewSettingStore(db)
	settingsService := settings.NewService(settingStore)

	httpClient := &http.Client{Timeout: appConfig.HTTPTimeout}
	priceClient := provider.NewClient(httpClient)
	manager := portfolio.NewManager(positionStore, settingsService, priceClient, httpClient)

	// Arm auto-refresh from the persisted interval
	refresher := portfolio.NewRefresher(manager)
	defer refresher.Stop()
	if interval, err := settingsService.RefreshInterval(); err != nil {
		log.Warnw("failed to load refresh interval", "error", err)
	} else if interval > 0 {
		refresher.Apply(interval)
	}

	// Initialize handlers
	portfolioHandler := handlers.NewPortfolioHandler(manager)
	positionHandler := handlers.NewPositionHandler(manager)
	settingsHandler := handlers.NewSettingsHandler(settingsService, manager, refresher)

	// Initialize Gin router
	if appConfig.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Portfolio view and display state
	v1.GET("/portfolio", portfolioHandler.GetPortfolio)
	v1.POST("/portfolio/refresh", portfolioHandler.RefreshPortfolio)
	v1.PUT("/portfolio/sort", portfolioHandler.SetSort)
	v1.PUT("/portfolio/columns", portfolioHandler.SetColumns)
	v1.GET("/portfolio/columns", portfolioHandler.ListColumns)

	// Ticker visibility
	v1.GET("/tickers", portfolioHandler.ListTickers)
	v1.PUT("/tickers/:symbol/hide", portfolioHandler.HideTicker)

	// Position routes
	positions := v1.Group("/positions")
	positions.GET("", positionHandler.ListPositions)
	positions.POST("", positionHandler.SavePosition)
	positions.GET("/export", positionHandler.ExportPositions)
	positions.POST("/import", positionHandler.ImportPositions)
	positions.GET("/:id", positionHandler.GetPosition)
	positions.DELETE("/:id", positionHandler.DeletePosition)
	positions.GET("/:id/ladder", positionHandler.GetLadder)
	v1.POST("/ladder", positionHandler.CalculateLadder)

	// Settings routes
	v1.GET("/settings", settingsHandler.GetSettings)
	v1.PUT("/settings", settingsHandler.UpdateSettings)
	v1.POST("/settings/reset", settingsHandler.ResetSettings)

	log.Infof("Starting profit-ladder server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
