package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"agrinet-api/config"
	"agrinet-api/database"
	"agrinet-api/jobs"
	"agrinet-api/middleware"
	"agrinet-api/routes"
	"agrinet-api/services"
	"agrinet-api/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	utils.InitLogger(cfg.LogLevel)
	defer utils.Logger.Sync()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Seed database with test data (optional - for development)
	if err := database.SeedData(db); err != nil {
		log.Printf("Warning: Failed to seed database: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.Port == "8080" { // Development
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.New()
	router.Use(routes.SetupCORS())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RequestLogger())
	router.Use(gin.Recovery())

	// Email delivery for OTP verification codes
	emailService := services.NewEmailService(cfg)

	// Setup routes
	routes.SetupRoutes(router, db, cfg, emailService)

	// Background cleanup of expired verification codes
	otpCleanup := jobs.NewOtpCleanupJob(db, 10*time.Minute)
	otpCleanup.Start()
	defer otpCleanup.Stop()

	// Start server
	log.Printf("Starting AgriNet API server on port %s", cfg.Port)
	log.Printf("Health check available at: http://localhost:%s/ping", cfg.Port)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
