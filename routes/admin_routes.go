package routes

import (
	"drivefund/controllers"
	"drivefund/middleware"

	"github.com/gin-gonic/gin"
)

func AdminRoutes(r *gin.RouterGroup, deps Dependencies) {
	analyticsController := controllers.NewAnalyticsController(deps.Analytics)

	// Protected admin routes
	api := r.Group("/api")
	api.Use(middleware.SecurityHeadersMiddleware())
	api.Use(middleware.AdminMiddleware(deps.Vocabulary))
	if deps.Permission != "" {
		api.Use(middleware.RequirePermission(deps.Permission))
	}
	if deps.RateLimiter != nil {
		api.Use(middleware.RateLimitMiddleware(deps.RateLimiter))
	}
	{
		// Dashboard and analytics
		api.GET("/analytics", analyticsController.GetDashboard)
		api.GET("/dashboard", analyticsController.GetDashboard)
	}
}
