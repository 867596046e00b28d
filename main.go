package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/localchef/bazaar-backend/controllers"
	"github.com/localchef/bazaar-backend/database"
	"github.com/localchef/bazaar-backend/pkg/logger"
	"github.com/localchef/bazaar-backend/repository"
	"github.com/localchef/bazaar-backend/routes"
	"github.com/localchef/bazaar-backend/services"
)

func main() {
	// Load .env file (optional, falls back to system env)
	_ = godotenv.Load()

	cfg, err := LoadConfig()
	if err != nil {
		// Logger is not up yet; zap's default global still works.
		zap.L().Fatal("Failed to load configuration", zap.Error(err))
	}

	logger.Initialize(cfg.Environment)
	defer logger.Log.Sync()

	// --- 1. Storage ---

	if err := database.Connect(cfg.MongoURI, cfg.DBName); err != nil {
		zap.L().Fatal("Failed to connect to MongoDB", zap.Error(err))
	}

	indexCtx, indexCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureIndexes(indexCtx, database.DB); err != nil {
		zap.L().Fatal("Failed to ensure indexes", zap.Error(err))
	}
	indexCancel()

	// --- 2. Dependency Injection (Wiring the layers together) ---

	userRepo := repository.NewUserRepository(database.DB)
	roleRequestRepo := repository.NewRoleRequestRepository(database.DB)
	mealRepo := repository.NewMealRepository(database.DB)
	reviewRepo := repository.NewReviewRepository(database.DB)
	favoriteRepo := repository.NewFavoriteRepository(database.DB)
	orderRepo := repository.NewOrderRepository(database.DB)
	paymentRepo := repository.NewPaymentRepository(database.DB)
	trackingRepo := repository.NewTrackingRepository(database.DB)

	trackingService := services.NewTrackingService(trackingRepo)
	userService := services.NewUserService(userRepo, roleRequestRepo)
	mealService := services.NewMealService(mealRepo, userRepo)
	reviewService := services.NewReviewService(reviewRepo, favoriteRepo)
	orderService := services.NewOrderService(orderRepo, userRepo, trackingService, logger.Log)
	stripeService := services.NewStripeService(cfg.StripeSecretKey, cfg.SiteDomain)
	paymentService := services.NewPaymentService(paymentRepo, orderRepo, stripeService, logger.Log)
	tokenService := services.NewTokenService(cfg.JWTSecret, userRepo)

	authController := &controllers.AuthController{Tokens: tokenService}
	userController := &controllers.UserController{Users: userService}
	mealController := &controllers.MealController{Meals: mealService}
	reviewController := &controllers.ReviewController{Reviews: reviewService}
	orderController := &controllers.OrderController{Orders: orderService, Tracking: trackingService}
	paymentController := &controllers.PaymentController{Payments: paymentService}

	// --- 3. HTTP Server & Middleware ---

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.SiteDomain}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	// --- 4. Route Registration ---

	routes.RegisterRoutes(r, cfg.JWTSecret,
		authController, userController, mealController,
		reviewController, orderController, paymentController)

	// --- 5. Graceful Shutdown ---

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		zap.L().Info("LocalChef Bazaar backend starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Fatal("Server forced to shutdown", zap.Error(err))
	}

	if err := database.Close(); err != nil {
		zap.L().Error("Failed to close MongoDB", zap.Error(err))
	}

	zap.L().Info("Stopped gracefully")
}
