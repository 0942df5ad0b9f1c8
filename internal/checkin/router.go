package checkin

import (
	"etik/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupCheckInRoutes configures station scan routes
func SetupCheckInRoutes(rg *gin.RouterGroup, controller *Controller, auth gin.HandlerFunc) {
	events := rg.Group("/events/:eventId")
	events.Use(auth, middleware.RequireOperator())
	{
		for _, mode := range []Mode{ModeCheckIn, ModeCheckOut} {
			page := events.Group("/" + string(mode))
			page.POST("/lookup", controller.Lookup(mode)) // POST /api/v1/events/:eventId/check-in/lookup
			page.POST("/submit", controller.Submit(mode)) // POST /api/v1/events/:eventId/check-in/submit
		}

		// Scan history - owner only
		events.GET("/scans", middleware.RequireOwner(), controller.ListScans) // GET /api/v1/events/:eventId/scans
	}

	stations := rg.Group("/stations/:stationId")
	stations.Use(auth, middleware.RequireOperator())
	{
		stations.GET("/state/:mode", controller.GetState) // GET /api/v1/stations/:stationId/state/:mode
	}
}
