package controllers

import (
	"context"

	"drivefund/models"
	"drivefund/utils"

	"github.com/gin-gonic/gin"
)

// DashboardBuilder builds the admin dashboard report. services.AnalyticsService
// implements it.
type DashboardBuilder interface {
	GetDashboardAnalytics(ctx context.Context, rawRange []string) (*models.DashboardReport, error)
}

type AnalyticsController struct {
	analyticsService DashboardBuilder
}

func NewAnalyticsController(analyticsService DashboardBuilder) *AnalyticsController {
	return &AnalyticsController{
		analyticsService: analyticsService,
	}
}

// GetDashboard returns the dashboard report for ?range=7d|30d|90d|all.
// Unknown, missing or repeated range values fall back to 30d.
func (ac *AnalyticsController) GetDashboard(c *gin.Context) {
	report, err := ac.analyticsService.GetDashboardAnalytics(c.Request.Context(), c.QueryArray("range"))
	if err != nil {
		utils.InternalServerErrorResponse(c, "Failed to get dashboard analytics")
		return
	}

	utils.SuccessResponse(c, "Dashboard analytics retrieved successfully", report)
}
