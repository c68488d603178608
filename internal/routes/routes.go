package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/niaga-platform/service-analytics/internal/handlers"
	"github.com/niaga-platform/service-analytics/internal/middleware"
)

// RouteConfig holds configuration for routes
type RouteConfig struct {
	ChartHandler *handlers.ChartHandler
	JWTSecret    string
	ServiceName  string
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, cfg *RouteConfig) {
	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": cfg.ServiceName,
			"time":    time.Now().UTC(),
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// Admin analytics routes (require authentication and admin role)
	admin := v1.Group("/admin/analytics")
	admin.Use(middleware.Auth(cfg.JWTSecret))
	admin.Use(middleware.RequireAdmin())
	{
		chart := admin.Group("/sales-chart")
		{
			chart.GET("", cfg.ChartHandler.GetSalesChart)
			chart.POST("/render", cfg.ChartHandler.RenderChart)
			chart.GET("/tooltip", cfg.ChartHandler.GetTooltip)
		}
	}
}
