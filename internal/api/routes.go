package api

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes sets up the API routes.
func SetupRoutes(handler *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Middleware
	router.Use(Recovery())
	router.Use(CORS())
	router.Use(gin.Logger())

	// Health check
	router.GET("/healthz", handler.HealthCheck)

	// API v1
	v1 := router.Group("/api/v1")
	{
		v1.GET("/score", handler.GetScore)
		v1.GET("/metrics", handler.GetMetricDefinitions)

		history := v1.Group("/history")
		{
			history.GET("", handler.GetHistory)
			history.GET("/status", handler.GetHistoryStatus)
			history.GET("/:id/metrics", handler.GetRunMetrics)
		}
	}

	return router
}
