package main

import (
	"log"

	"github.com/Govind-619/ShopSphere/config"
	"github.com/Govind-619/ShopSphere/controllers"
	"github.com/Govind-619/ShopSphere/routes"
	"github.com/Govind-619/ShopSphere/services"
	"github.com/Govind-619/ShopSphere/utils"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Error loading config:", err)
	}

	// Initialize logger
	if err := utils.InitLogger(cfg.Logger()); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize document store
	docs, err := config.OpenStore(cfg)
	if err != nil {
		utils.LogError("Failed to open document store: %v", err)
		log.Fatal("Failed to open document store:", err)
	}

	var mailer utils.Mailer
	if email := cfg.Email(); email.Enabled() {
		mailer = utils.NewSMTPMailer(email)
		utils.LogInfo("Email notifications enabled via %s", email.Host)
	}

	svc := services.New(docs, mailer)
	handler := controllers.NewHandler(svc, cfg.StoreName)

	// Set up router
	router := routes.SetupRouter(handler, routes.Options{
		JWTSecret:      cfg.JWTSecret,
		SessionSecret:  cfg.SessionSecret,
		SecureCookies:  cfg.IsProduction(),
		AllowedOrigins: cfg.CORSOrigins,
	})

	utils.LogInfo("Server starting on port %s", cfg.Port)
	// Start server
	if err := router.Run(":" + cfg.Port); err != nil {
		utils.LogError("Error starting server: %v", err)
		log.Fatal("Error starting server:", err)
	}
}
