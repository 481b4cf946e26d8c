package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"membership-hub/internal/adapters/http/middleware"
	"membership-hub/internal/adapters/http/routes"
	"membership-hub/internal/adapters/persistence/models"
	"membership-hub/internal/adapters/persistence/repositories"
	"membership-hub/internal/config"
	"membership-hub/internal/core/services"

	"github.com/gofiber/fiber/v2"

	_ "membership-hub/docs" // Swagger docs
)

// @title Membership Hub API
// @version 1.0
// @description Membership management backend: members, cards, device integrations
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@membership-hub.local

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /
// @schemes http

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Daily enrollment report (08:30)
	reportService := services.NewEnrollmentReportService(repositories.NewMemberRepository(db))
	reportService.Start()
	defer reportService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Membership Hub API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
