package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"bloodlink/internal/adapters/http/middleware"
	"bloodlink/internal/adapters/http/routes"
	"bloodlink/internal/adapters/persistence/models"
	"bloodlink/internal/adapters/persistence/repositories"
	"bloodlink/internal/config"
	"bloodlink/internal/core/services"

	"github.com/gofiber/fiber/v2"

	_ "bloodlink/docs" // Swagger docs
)

// @title BloodLink API
// @version 1.0
// @description Blood bank coordination API: donor appointments, blood requests and fulfilment tracking.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@bloodlink.local

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase(db)

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}
	log.Println("Database migration completed")

	// Seed the bootstrap admin account in development
	if cfg.IsDev() {
		if err := config.NewSeeder(db).Run(); err != nil {
			log.Printf("Warning: failed to seed data: %v", err)
		}
	}

	// Nightly sweep cancelling no-show donation appointments
	cronService := services.NewCronService(repositories.NewDonationRepository(db))
	cronService.Start()
	defer cronService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "BloodLink API v1.0",
		ErrorHandler: middleware.NewErrorHandler(cfg),
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server stopped gracefully")
}
