// main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ecotrack/config"
	"ecotrack/database"
	"ecotrack/handlers"
	"ecotrack/logging"
	"ecotrack/middleware"
	"ecotrack/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: invalid configuration: %v", err)
	}

	appLogger := logging.NewLogger("ecotrack", cfg.AppEnv)

	database.InitDB(cfg)
	defer database.CloseDB()

	clock := services.Clock{Location: cfg.Location}
	svc := services.New(database.GetDB(), services.DefaultTables(), clock, appLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc.Cleanup.Start(ctx, time.Hour)
	defer svc.Cleanup.Stop()

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(cfg.IsProduction()),
		BodyLimit:    1 * 1024 * 1024,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     "GET,POST,PUT,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	if cfg.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimitMaxRequests, cfg.RateLimitWindow)
		limiter.StartCleanup(ctx, 10*time.Minute, 30*time.Minute)
		app.Use(middleware.RateLimit(limiter))
	}

	handlers.New(svc, appLogger).Register(app, middleware.AuthMiddleware(cfg.JWTSecret))

	go func() {
		<-ctx.Done()
		log.Println("🛑 Shutting down HTTP server")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("⚠️ Shutdown error: %v", err)
		}
	}()

	log.Printf("🚀 HTTP server starting on port %s", cfg.Port)
	log.Printf("📊 Environment: %s", cfg.AppEnv)
	log.Printf("🕒 Day boundaries in %s", cfg.Location)
	log.Printf("🚦 Rate limiting: %v", cfg.RateLimitEnabled)

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start HTTP server:", err)
	}
}
