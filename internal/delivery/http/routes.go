package http

import (
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/storechat/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.POST("/chat", handler.Chat)
	}

	// Storefront chat UI
	if cfg.Server.WebDir != "" {
		router.StaticFile("/", filepath.Join(cfg.Server.WebDir, "index.html"))
		router.Static("/assets", filepath.Join(cfg.Server.WebDir, "assets"))
	}

	return router
}
