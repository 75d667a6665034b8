package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"storefront-admin-service/internal/config"
	"storefront-admin-service/internal/events"
	"storefront-admin-service/internal/handlers"
	"storefront-admin-service/internal/middleware"
	"storefront-admin-service/internal/repository"
	"storefront-admin-service/internal/sessions"
)

// @title Storefront Admin Service API
// @version 1.0
// @description Admin panel backend for the storefront: product catalog, transactions, resellers and session auth.
// @BasePath /api/v1
func main() {
	// Load .env file if present (development convenience)
	_ = godotenv.Load()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.Load()

	if cfg.Environment == "production" {
		logger.SetLevel(logrus.InfoLevel)
		gin.SetMode(gin.ReleaseMode)
	} else {
		logger.SetLevel(logrus.DebugLevel)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.WithError(err).Fatal("Invalid REDIS_URL")
	}
	redisClient := redis.NewClient(redisOpts)
	{
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.WithError(err).Warn("Redis unreachable at startup; caching and sessions will fail until it recovers")
		}
		cancel()
	}

	// Audit events are optional; the service runs without a broker.
	var eventsPublisher *events.Publisher
	if os.Getenv("NATS_URL") != "" {
		eventsPublisher, err = events.NewPublisher(logger)
		if err != nil {
			logger.WithError(err).Warn("Failed to connect audit event publisher; continuing without events")
			eventsPublisher = nil
		} else {
			defer eventsPublisher.Close()
			logger.Info("Audit event publisher connected")
		}
	}

	exportLocation, err := time.LoadLocation(cfg.ExportTimezone)
	if err != nil {
		logger.WithError(err).WithField("timezone", cfg.ExportTimezone).Warn("Unknown export timezone, falling back to UTC")
		exportLocation = time.UTC
	}

	productsRepo := repository.NewProductsRepository(db, redisClient)
	transactionsRepo := repository.NewTransactionsRepository(db)
	resellersRepo := repository.NewResellersRepository(db)
	sessionStore := sessions.NewRedisStore(redisClient, cfg.SessionTTL)

	healthHandler := handlers.NewHealthHandler(db, redisClient)
	authHandler := handlers.NewAuthHandler(cfg, sessionStore)
	productsHandler := handlers.NewProductsHandler(productsRepo, eventsPublisher)
	transactionsHandler := handlers.NewTransactionsHandler(transactionsRepo, eventsPublisher, exportLocation)
	resellersHandler := handlers.NewResellersHandler(resellersRepo)
	statsHandler := handlers.NewStatsHandler(productsRepo, transactionsRepo, resellersRepo)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Metrics())
	router.Use(middleware.CORS())

	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/metrics", middleware.MetricsHandler())
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/session", authHandler.GetSession)
		}

		// Public storefront scope, no session required.
		v1.GET("/storefront/products", productsHandler.GetStorefrontProducts)

		admin := v1.Group("")
		admin.Use(middleware.SessionAuth(sessionStore))
		{
			admin.GET("/products", productsHandler.GetProducts)
			admin.POST("/products", productsHandler.CreateProduct)
			admin.PUT("/products/:id", productsHandler.UpdateProduct)
			admin.PUT("/products/:id/variants", productsHandler.ReplaceVariants)
			admin.DELETE("/products/:id", productsHandler.DeleteProduct)

			admin.GET("/transactions", transactionsHandler.GetTransactions)
			admin.GET("/transactions/export", transactionsHandler.ExportTransactions)
			admin.GET("/transactions/stats", statsHandler.GetTransactionStats)
			admin.GET("/transactions/:id", transactionsHandler.GetTransaction)
			admin.PUT("/transactions/:id", transactionsHandler.UpdateTransaction)
			admin.DELETE("/transactions/:id", transactionsHandler.DeleteTransaction)

			admin.GET("/resellers", resellersHandler.GetResellers)
			admin.GET("/stats/dashboard", statsHandler.GetDashboardStats)
		}
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.WithField("port", cfg.Port).Info("Storefront admin service starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Fatal("Server forced to shutdown")
	}

	logger.Info("Server exited")
}
