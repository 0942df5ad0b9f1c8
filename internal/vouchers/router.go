package vouchers

import (
	"etik/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupVoucherRoutes configures voucher campaign routes - owner only
func SetupVoucherRoutes(rg *gin.RouterGroup, controller *Controller, auth gin.HandlerFunc) {
	campaigns := rg.Group("/events/:eventId/voucher-campaigns")
	campaigns.Use(auth, middleware.RequireOwner())
	{
		campaigns.GET("", controller.ListCampaigns)
		campaigns.POST("", controller.CreateCampaign)
		campaigns.GET("/:campaignId", controller.GetCampaign)
		campaigns.PUT("/:campaignId", controller.UpdateCampaign)
		campaigns.DELETE("/:campaignId", controller.DeleteCampaign)
		campaigns.GET("/:campaignId/vouchers", controller.ListVouchers)
	}
}
