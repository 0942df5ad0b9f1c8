// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"etik/internal/analytics"
	"etik/internal/auth"
	"etik/internal/checkin"
	"etik/internal/events"
	"etik/internal/notifications"
	"etik/internal/shared/config"
	"etik/internal/shared/database"
	"etik/internal/shared/middleware"
	"etik/internal/stations"
	"etik/internal/uploads"
	"etik/internal/vouchers"
	"etik/pkg/cache"
	"etik/pkg/etikapi"
	"etik/pkg/logger"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Router holds all route dependencies
type Router struct {
	config        *config.Config
	db            *database.DB
	cache         cache.Service
	api           *etikapi.Client
	notifications *notifications.Service
	logger        *logger.Logger

	// Shared between modules
	catalog     events.Service
	preferences stations.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, cacheService cache.Service, api *etikapi.Client, notificationService *notifications.Service, l *logger.Logger) *Router {
	return &Router{
		config:        cfg,
		db:            db,
		cache:         cacheService,
		api:           api,
		notifications: notificationService,
		logger:        l,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	if r.config.Swagger.Enabled {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL(r.config.Swagger.DocURL)))
	}

	jwt := middleware.JWTAuthWithConfig(r.config)

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api, jwt)

		// Catalog and preferences must exist before check-in
		r.setupEventRoutes(api, jwt)
		r.setupStationRoutes(api, jwt)
		r.setupCheckInRoutes(api, jwt)

		r.setupVoucherRoutes(api, jwt)
		r.setupUploadRoutes(api, jwt)
		r.setupNotificationRoutes(api, jwt)
		r.setupAnalyticsRoutes(api, jwt)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "etik-station",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "etik-station",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":        "operational",
			"api_version":   r.config.APIVersion,
			"redis_cache":   r.db.Redis != nil,
			"kafka_relay":   r.config.Kafka.Enabled,
			"etik_base_url": r.config.ETIK.BaseURL,
			"timestamp":     time.Now(),
		})
	})
}

// setupAuthRoutes configures operator authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup, jwt gin.HandlerFunc) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config, r.logger)
	authController := auth.NewController(authService)

	auth.NewRouter(authController, jwt).SetupRoutes(rg)
}

// setupEventRoutes configures the cached show catalog and marketplace lookups
func (r *Router) setupEventRoutes(rg *gin.RouterGroup, jwt gin.HandlerFunc) {
	r.catalog = events.NewService(r.api, r.cache)
	events.SetupEventRoutes(rg, events.NewController(r.catalog), jwt)
}

// setupStationRoutes configures persisted station preferences
func (r *Router) setupStationRoutes(rg *gin.RouterGroup, jwt gin.HandlerFunc) {
	r.preferences = stations.NewService(r.cache)
	stations.SetupStationRoutes(rg, stations.NewController(r.preferences), jwt)
}

// setupCheckInRoutes configures scan lookup and submission
func (r *Router) setupCheckInRoutes(rg *gin.RouterGroup, jwt gin.HandlerFunc) {
	checkinService := checkin.NewService(
		r.api,
		r.catalog,
		r.preferences,
		r.notifications.Notifier(),
		checkin.NewRepository(r.db.GetPostgreSQL()),
		checkin.NewStateStore(r.cache),
		r.logger,
		checkin.DefaultServiceConfig(),
	)
	checkin.SetupCheckInRoutes(rg, checkin.NewController(checkinService), jwt)
}

// setupVoucherRoutes configures voucher campaign management
func (r *Router) setupVoucherRoutes(rg *gin.RouterGroup, jwt gin.HandlerFunc) {
	voucherService := vouchers.NewService(r.api, r.logger)
	vouchers.SetupVoucherRoutes(rg, vouchers.NewController(voucherService), jwt)
}

// setupUploadRoutes configures banner image uploads
func (r *Router) setupUploadRoutes(rg *gin.RouterGroup, jwt gin.HandlerFunc) {
	uploadService := uploads.NewService(r.api, r.config.Upload, r.logger)
	uploads.SetupUploadRoutes(rg, uploads.NewController(uploadService, r.config.Upload.MaxSize), jwt)
}

// setupNotificationRoutes configures the station notification stream
func (r *Router) setupNotificationRoutes(rg *gin.RouterGroup, jwt gin.HandlerFunc) {
	notifications.SetupNotificationRoutes(rg, notifications.NewController(r.notifications.Hub()), jwt)
}

// setupAnalyticsRoutes configures the owner scan dashboard
func (r *Router) setupAnalyticsRoutes(rg *gin.RouterGroup, jwt gin.HandlerFunc) {
	analyticsService := analytics.NewService(analytics.NewRepository(r.db.GetPostgreSQL()), r.cache)
	analytics.SetupAnalyticsRoutes(rg, analytics.NewController(analyticsService), jwt)
}
