package stations

import (
	"errors"
	"net/http"

	"etik/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{
		service:   service,
		validator: validator.New(),
	}
}

// GetPreferences handles GET /api/v1/stations/:stationId/preferences
func (c *Controller) GetPreferences(ctx *gin.Context) {
	prefs, err := c.service.GetPreferences(ctx.Request.Context(), ctx.Param("stationId"))
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Station preferences retrieved successfully", prefs, nil)
}

// UpdatePreferences handles PUT /api/v1/stations/:stationId/preferences
func (c *Controller) UpdatePreferences(ctx *gin.Context) {
	var req UpdatePreferencesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	prefs, err := c.service.UpdatePreferences(ctx.Request.Context(), ctx.Param("stationId"), req)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Station preferences updated successfully", prefs, nil)
}

// ResetPreferences handles DELETE /api/v1/stations/:stationId/preferences
func (c *Controller) ResetPreferences(ctx *gin.Context) {
	if err := c.service.ResetPreferences(ctx.Request.Context(), ctx.Param("stationId")); err != nil {
		c.respondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Station preferences reset", nil, nil)
}

func (c *Controller) respondError(ctx *gin.Context, err error) {
	if errors.Is(err, ErrInvalidStationID) {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, err.Error(), nil, nil)
		return
	}
	response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to access station preferences", nil, err.Error())
}
