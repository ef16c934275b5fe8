// Package routes wires repositories, services, and handlers onto the fiber
// app.
package routes

import (
	"time"

	"fido/internal/config"
	"fido/internal/handlers"
	"fido/internal/metrics"
	"fido/internal/middleware"
	"fido/internal/repositories"
	"fido/internal/repositories/cache"
	"fido/internal/services/analytics"
	"fido/internal/services/auth"
	"fido/internal/services/transaction"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes builds the object graph and registers all routes. It returns
// the Refresher so main can stop every background loop on shutdown.
func SetupRoutes(app *fiber.App, db *gorm.DB, cacheStore cache.Store) *analytics.Refresher {
	txRepo := repositories.NewTransactionRepository(db)
	userRepo := repositories.NewUserRepository(db)

	analyticsCfg := analytics.Config{
		CacheTTL:        config.GetDurationEnv("ANALYTICS_CACHE_TTL", analytics.DefaultCacheTTL),
		RefreshInterval: config.GetDurationEnv("ANALYTICS_REFRESH_INTERVAL", analytics.DefaultRefreshInterval),
	}
	collector := metrics.Collector{}
	analyticsService := analytics.NewService(txRepo, cacheStore, collector, analyticsCfg)
	refresher := analytics.NewRefresher(analyticsService, analyticsCfg.RefreshInterval, collector)
	invalidator := analytics.NewInvalidator(cacheStore)

	transactionService := transaction.NewService(txRepo, cacheStore, invalidator)

	jwtSecret := config.GetEnv("JWT_SECRET", "fido")
	tokenTTL := config.GetDurationEnv("ACCESS_TOKEN_TTL", 30*time.Minute)
	authService := auth.NewService(userRepo, jwtSecret, tokenTTL)

	authHandler := handlers.NewAuthHandler(authService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService, refresher)
	authMiddleware := middleware.NewAuthMiddleware(jwtSecret)

	app.Get("/health", handlers.HealthCheck)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/verify-otp", authHandler.VerifyOTP)

	transactions := api.Group("/transactions", authMiddleware.Handler)
	transactions.Post("/", transactionHandler.Create)
	transactions.Get("/:id", transactionHandler.Get)
	transactions.Put("/:id", transactionHandler.Update)
	transactions.Delete("/:id", transactionHandler.Delete)

	analyticsGroup := api.Group("/analytics", authMiddleware.Handler)
	analyticsGroup.Get("/:user_id/average_transaction_value", analyticsHandler.GetAverageTransactionValue)
	analyticsGroup.Get("/:user_id/highest_transaction_day", analyticsHandler.GetHighestTransactionDay)
	analyticsGroup.Get("/:user_id/transaction_totals", analyticsHandler.GetTransactionTotals)

	return refresher
}
