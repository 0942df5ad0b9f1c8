package events

import (
	"etik/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupEventRoutes(router *gin.RouterGroup, controller Controller, auth gin.HandlerFunc) {
	// Public routes - marketplace browsing and order lookup
	router.GET("/marketplace/events/:slug", controller.GetMarketplaceEvent)                 // GET /api/v1/marketplace/events/:slug
	router.GET("/customers/transactions/:transactionId", controller.GetCustomerTransaction) // GET /api/v1/customers/transactions/:transactionId?token=

	// Station routes - show catalog for the filter pickers
	stationEvents := router.Group("/events")
	stationEvents.Use(auth, middleware.RequireOperator())
	{
		stationEvents.GET("/:eventId/shows", controller.GetShows) // GET /api/v1/events/:eventId/shows
	}

	// Owner routes - cache maintenance
	ownerEvents := router.Group("/events")
	ownerEvents.Use(auth, middleware.RequireOwner())
	{
		ownerEvents.DELETE("/:eventId/shows/cache", controller.RefreshShows) // DELETE /api/v1/events/:eventId/shows/cache
	}
	router.DELETE("/cache/shows", auth, middleware.RequireOwner(), controller.RefreshAllShows) // DELETE /api/v1/cache/shows
}
