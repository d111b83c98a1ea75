package http

import (
	"github.com/gin-gonic/gin"

	"github.com/cosmicreseller/backend/config"
	"github.com/cosmicreseller/backend/internal/observability"
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

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(observability.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		deals := v1.Group("/deals")
		{
			deals.POST("/search", handler.SearchDeals)
		}
	}

	return router
}
