package api

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes registers the health endpoint and the API group. Middleware in
// apiMiddleware applies to the API group only, as the rate limiter should not
// throttle health probes.
func SetupRoutes(router *gin.Engine, handler *Handler, apiMiddleware ...gin.HandlerFunc) {
	router.GET("/health", handler.Health)

	api := router.Group("/api", apiMiddleware...)
	{
		api.GET("/dashboard", handler.GetDashboard)
		api.GET("/districts", handler.GetDistricts)
		api.POST("/translate", handler.Translate)
		api.POST("/translate-batch", handler.TranslateBatch)
		api.GET("/stats", handler.GetStats)
		api.GET("/charts", handler.GetCharts)
		api.POST("/collect", handler.Collect)
	}
}
