package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ecommerce-analytics/internal/config"
	"ecommerce-analytics/internal/database"
	"ecommerce-analytics/internal/handlers"
	"ecommerce-analytics/internal/middleware"
	"ecommerce-analytics/internal/repositories"
	"ecommerce-analytics/internal/services"
	"ecommerce-analytics/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// --- Database ---
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// --- Services ---
	kpiRepo := repositories.NewGORMKPIRepository(db)
	dashboardService := services.NewDashboardService(kpiRepo, cfg.CacheTTL)
	tokenService := services.NewTokenService(cfg.JWTSecret, services.DefaultTokenTTL)
	if !tokenService.Enabled() {
		log.Println("DASHBOARD_JWT_SECRET is not set, reload endpoints are open")
	}

	// --- RabbitMQ consumer ---
	// New data invalidates the cache instead of waiting for the TTL.
	mqStatus := "disabled"
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Printf("Warning: RabbitMQ unavailable, cache refreshes on TTL only: %v", err)
			mqStatus = "unavailable"
		} else {
			defer mqClient.Close()
			if err := mqClient.ConsumeDataLoaded(dashboardService.HandleDataLoaded); err != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", err)
				mqStatus = "unavailable"
			} else {
				mqStatus = "connected"
			}
		}
	}

	app := NewApp(dashboardService, tokenService, mqStatus)

	// --- Start HTTP Server ---
	log.Printf("Starting dashboard on port %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// NewApp builds the Fiber application with every dashboard route registered.
func NewApp(dashboardService *services.DashboardService, tokenService *services.TokenService, mqStatus string) *fiber.App {
	app := fiber.New()

	// --- Middleware ---
	app.Use(logger.New())
	app.Use(middleware.Prometheus())

	apiV1 := app.Group("/api/v1")
	handlers.NewDashboardHandler(dashboardService, tokenService).RegisterRoutes(app, apiV1)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"rabbitmq": mqStatus,
			"cache":    dashboardService.Status(),
		})
	})

	return app
}
