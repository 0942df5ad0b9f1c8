package notifications

import (
	"etik/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupNotificationRoutes(rg *gin.RouterGroup, controller *Controller, auth gin.HandlerFunc) {
	stream := rg.Group("/notifications")
	stream.Use(auth, middleware.RequireOperator())
	{
		stream.GET("/stream", controller.Stream) // GET /api/v1/notifications/stream
	}
}
