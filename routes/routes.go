package routes

import (
	"net/http"

	"drivefund/controllers"
	"drivefund/middleware"
	"drivefund/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Dependencies carries everything the HTTP surface needs.
type Dependencies struct {
	Analytics      controllers.DashboardBuilder
	Health         *controllers.HealthController
	Vocabulary     *models.StatusVocabulary
	Permission     string
	Metrics        middleware.HTTPObserver
	MetricsHandler http.Handler
	RateLimiter    *middleware.RateLimiter
	AllowedOrigins []string
	Logger         *logrus.Logger
}

func SetupRoutes(r *gin.Engine, deps Dependencies) {
	// Global middleware
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.CORSMiddleware(deps.AllowedOrigins))
	r.Use(middleware.LoggingMiddleware(deps.Logger))
	if deps.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(deps.Metrics))
	}
	r.Use(gin.Recovery())

	r.GET("/health", deps.Health.Health)
	r.GET("/version", deps.Health.Version)
	if deps.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(deps.MetricsHandler))
	}

	admin := r.Group("/admin")
	{
		AdminRoutes(admin, deps)
	}
}
