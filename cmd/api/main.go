package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dwiky/store-backend/config"
	"github.com/dwiky/store-backend/internal/adapter"
	"github.com/dwiky/store-backend/internal/product"
	"github.com/dwiky/store-backend/internal/recommend"
	"github.com/dwiky/store-backend/internal/repository"
	"github.com/dwiky/store-backend/internal/review"
	"github.com/dwiky/store-backend/internal/worker"
	"github.com/dwiky/store-backend/pkg/database"
	"github.com/dwiky/store-backend/pkg/logger"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	// Initialize logger with validation and defaults
	appLogger, err := logger.NewLogger(&cfg.Logging)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	appLogger.Info("Starting store backend service")

	// Connect to database with validation and defaults
	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		appLogger.Fatal("Failed to connect to database: " + err.Error())
	}

	appLogger.Info("Database connection established")

	// Run database migrations for all feature models
	if err := db.AutoMigrate(&product.Product{}, &review.Review{}, &recommend.NeighborSet{}, &recommend.Prediction{}); err != nil {
		appLogger.Fatal("Failed to migrate database: " + err.Error())
	}

	appLogger.Info("Database migration completed")

	// Initialize GORM-based repositories
	productRepo := repository.NewGORMProductRepository(db, appLogger)
	reviewRepo := repository.NewGORMReviewRepository(db, appLogger)
	neighborRepo := repository.NewGORMNeighborRepository(db, appLogger)
	predictionRepo := repository.NewGORMPredictionRepository(db, appLogger)

	// Initialize business services with dependency injection
	productService := product.NewService(productRepo, appLogger)

	// Create adapters to bridge interface compatibility
	reviewCatalog := adapter.NewProductServiceToReviewCatalog(productService)
	ratingSource := adapter.NewReviewRepositoryToRatingSource(reviewRepo)
	recommendCatalog := adapter.NewProductServiceToCatalog(productService)

	reviewService := review.NewService(reviewRepo, reviewCatalog, appLogger)
	recommendService, err := recommend.NewService(ratingSource, neighborRepo, predictionRepo, recommendCatalog, &cfg.Recommender, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize recommendation service: " + err.Error())
	}

	// Initialize HTTP handlers
	productHandler := product.NewHandler(productService)
	reviewHandler := review.NewHandler(reviewService)
	recommendHandler := recommend.NewHandler(recommendService)

	// Initialize background worker for scheduled neighbor rebuilds
	neighborRebuildWorker, err := worker.NewRebuildWorker(
		&cfg.Worker,
		"neighbor-rebuild",
		recommendService.RebuildAllNeighbors,
		appLogger,
	)
	if err != nil {
		appLogger.Fatal("Failed to initialize rebuild worker: " + err.Error())
	}

	// Start background processing
	if err := neighborRebuildWorker.Start(); err != nil {
		appLogger.Error("Failed to start rebuild worker: " + err.Error())
	}

	// Setup HTTP router with middleware
	router := gin.New()

	// Configure standard middleware stack
	router.Use(requestid.New())
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID"},
	}))

	// Health check endpoints
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "store-backend",
		})
	})

	router.GET("/health/detailed", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":         "healthy",
			"timestamp":      time.Now(),
			"service":        "store-backend",
			"rebuild_worker": neighborRebuildWorker.IsRunning(),
			"database":       "connected",
		})
	})

	// Create simple JWT validation middleware - tokens are issued by the
	// external auth service and only validated here
	jwtSecret := cfg.JWT.Secret
	if jwtSecret == "" {
		jwtSecret = "change-me-in-production" // default
	}
	authMiddleware := createJWTMiddleware(jwtSecret)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Register feature routes - each feature manages its own routes
		productHandler.RegisterRoutes(v1)
		reviewHandler.RegisterRoutes(v1, authMiddleware)
		recommendHandler.RegisterRoutes(v1, authMiddleware)
	}

	// Parse server configuration with defaults
	serverPort := cfg.Server.Port
	if serverPort == "" {
		serverPort = "8080" // default
	}

	serverReadTimeout := 30 * time.Second // default
	if cfg.Server.ReadTimeout != "" {
		if duration, err := time.ParseDuration(cfg.Server.ReadTimeout); err == nil {
			serverReadTimeout = duration
		}
	}

	serverWriteTimeout := 30 * time.Second // default
	if cfg.Server.WriteTimeout != "" {
		if duration, err := time.ParseDuration(cfg.Server.WriteTimeout); err == nil {
			serverWriteTimeout = duration
		}
	}

	serverEnvironment := cfg.Server.Environment
	if serverEnvironment == "" {
		serverEnvironment = "development" // default
	}

	// Start HTTP server
	srv := &http.Server{
		Addr:         ":" + serverPort,
		Handler:      router,
		ReadTimeout:  serverReadTimeout,
		WriteTimeout: serverWriteTimeout,
	}

	// Start server in goroutine for graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server: " + err.Error())
		}
	}()

	appLogger.Info("Server started successfully on port " + serverPort + " (" + serverEnvironment + " environment)")

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	// Stop rebuild worker first
	if err := neighborRebuildWorker.Stop(); err != nil {
		appLogger.Error("Error stopping rebuild worker: " + err.Error())
	}

	// Shutdown server with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown: " + err.Error())
	}

	appLogger.Info("Server shutdown complete")
}

// createJWTMiddleware creates a simple JWT validation middleware
func createJWTMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Next()
	}
}
