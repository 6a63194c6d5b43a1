package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"telcoReco/app/echo-server/router"
	"telcoReco/business/behavior"
	"telcoReco/business/product"
	"telcoReco/business/reco"
	"telcoReco/business/transaction"
	userService "telcoReco/business/user"
	"telcoReco/internal/middleware"
	"telcoReco/internal/repository/mlscorer"
	"telcoReco/internal/repository/notification"
	psqlRepo "telcoReco/internal/repository/postgres"
	redisRepo "telcoReco/internal/repository/redis"
	"telcoReco/internal/rest"
	"telcoReco/pkg/config"
	"telcoReco/pkg/database"
	redisdb "telcoReco/pkg/database/redis"
	"telcoReco/pkg/logger"
	"telcoReco/pkg/metrics"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting TelcoReco", "version", cfg.App.Version)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	if err := database.SeedProducts(db); err != nil {
		logger.Fatal("Failed to seed products", "error", err)
	}

	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to redis", "error", err)
	}

	logger.Info("Redis connected successfully")

	metrics.Init()

	// Init notification from mailjet
	mailjetEmail := notification.NewMailjetRepository(
		notification.MailjetConfig{
			MailjetBaseURL:           cfg.Mailjet.MailjetBaseUrl,
			MailjetBasicAuthUsername: cfg.Mailjet.MailjetBasicAuthUsername,
			MailjetBasicAuthPassword: cfg.Mailjet.MailjetBasicAuthPassword,
			MailjetSenderEmail:       cfg.Mailjet.MailjetSenderEmail,
			MailjetSenderName:        cfg.Mailjet.MailjetSenderName,
		},
	)

	scorerRepo := mlscorer.NewScorerRepository(
		mlscorer.ScorerConfig{
			BaseURL:        cfg.Scorer.BaseURL,
			RequestTimeout: cfg.Scorer.RequestTimeout,
			HealthTimeout:  cfg.Scorer.HealthTimeout,
		},
	)

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	productRepo := psqlRepo.NewProductRepository(db)
	behaviorRepo := psqlRepo.NewBehaviorRepository(db)
	recoRepo := psqlRepo.NewRecommendationRepository(db)
	transactionRepo := psqlRepo.NewTransactionRepository(db)
	tokenRepo := redisRepo.NewTokenRepository(redisClient)

	// Init service
	behaviorService := behavior.NewService(behaviorRepo)
	recoService := reco.NewService(behaviorRepo, productRepo, recoRepo, scorerRepo, validate)
	usrService := userService.NewUserService(userRepo, validate, mailjetEmail, tokenRepo, behaviorService, recoService, cfg.App.AppEmailVerificationKey, cfg.App.AppDeploymentUrl)
	productService := product.NewProductService(productRepo)
	transactionService := transaction.NewService(transactionRepo, productRepo, behaviorService, recoService)

	// Init handler
	userHandler := rest.NewUserHandler(usrService)
	productHandler := rest.NewProductHandler(productService)
	transactionHandler := rest.NewTransactionHandler(transactionService)
	recoHandler := rest.NewRecommendationHandler(recoService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Auth middleware
	authRequired := middleware.AuthMiddlewareWithRedis(usrService)
	adminOnly := middleware.AdminOnly()

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupUserRoutes(api, userHandler, authRequired)
	router.SetupProductRoutes(api, productHandler, authRequired, adminOnly)
	router.SetupTransactionRoutes(api, transactionHandler, authRequired)
	router.SetupRecommendationRoutes(api, recoHandler, authRequired)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	// Drain in-flight recommendation regenerations before exit
	recoService.Shutdown()

	logger.Info("Server stopped")
}
