package analytics

import (
	"etik/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupAnalyticsRoutes configures the owner scan dashboard
func SetupAnalyticsRoutes(rg *gin.RouterGroup, controller Controller, auth gin.HandlerFunc) {
	analytics := rg.Group("/events/:eventId/analytics")
	analytics.Use(auth, middleware.RequireOwner())
	{
		analytics.GET("/scans", controller.GetEventScanAnalytics) // GET /api/v1/events/:eventId/analytics/scans
	}
}
