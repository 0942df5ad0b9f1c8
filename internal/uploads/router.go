package uploads

import (
	"etik/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupUploadRoutes(rg *gin.RouterGroup, controller *Controller, auth gin.HandlerFunc) {
	uploads := rg.Group("/uploads")
	uploads.Use(auth, middleware.RequireOwner())
	{
		uploads.POST("/images", controller.UploadImage) // POST /api/v1/uploads/images
	}
}
