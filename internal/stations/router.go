package stations

import (
	"etik/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupStationRoutes configures station preference routes
func SetupStationRoutes(rg *gin.RouterGroup, controller *Controller, auth gin.HandlerFunc) {
	stations := rg.Group("/stations/:stationId")
	stations.Use(auth, middleware.RequireOperator())
	{
		stations.GET("/preferences", controller.GetPreferences)      // GET /api/v1/stations/:stationId/preferences
		stations.PUT("/preferences", controller.UpdatePreferences)   // PUT /api/v1/stations/:stationId/preferences
		stations.DELETE("/preferences", controller.ResetPreferences) // DELETE /api/v1/stations/:stationId/preferences
	}
}
