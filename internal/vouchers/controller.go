package vouchers

import (
	"errors"
	"net/http"
	"strconv"

	"etik/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// ListCampaigns handles GET /api/v1/events/:eventId/voucher-campaigns
func (c *Controller) ListCampaigns(ctx *gin.Context) {
	eventID, ok := idParam(ctx, "eventId")
	if !ok {
		return
	}

	var query ListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	campaigns, err := c.service.ListCampaigns(ctx.Request.Context(), eventID, query)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Voucher campaigns retrieved successfully", campaigns, nil)
}

// GetCampaign handles GET /api/v1/events/:eventId/voucher-campaigns/:campaignId
func (c *Controller) GetCampaign(ctx *gin.Context) {
	eventID, ok := idParam(ctx, "eventId")
	if !ok {
		return
	}
	campaignID, ok := idParam(ctx, "campaignId")
	if !ok {
		return
	}

	campaign, err := c.service.GetCampaign(ctx.Request.Context(), eventID, campaignID)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Voucher campaign retrieved successfully", campaign, nil)
}

// CreateCampaign handles POST /api/v1/events/:eventId/voucher-campaigns
func (c *Controller) CreateCampaign(ctx *gin.Context) {
	eventID, ok := idParam(ctx, "eventId")
	if !ok {
		return
	}

	var req CampaignRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	campaign, err := c.service.CreateCampaign(ctx.Request.Context(), eventID, ctx.GetString("user_id"), req)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Voucher campaign created successfully", campaign, nil)
}

// UpdateCampaign handles PUT /api/v1/events/:eventId/voucher-campaigns/:campaignId
func (c *Controller) UpdateCampaign(ctx *gin.Context) {
	eventID, ok := idParam(ctx, "eventId")
	if !ok {
		return
	}
	campaignID, ok := idParam(ctx, "campaignId")
	if !ok {
		return
	}

	var req CampaignRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	campaign, err := c.service.UpdateCampaign(ctx.Request.Context(), eventID, campaignID, ctx.GetString("user_id"), req)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	if !campaign.Editable {
		response.RespondJSON(ctx, "success", http.StatusOK, "Campaign can no longer be edited, showing current values", campaign, nil)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Voucher campaign updated successfully", campaign, nil)
}

// DeleteCampaign handles DELETE /api/v1/events/:eventId/voucher-campaigns/:campaignId
func (c *Controller) DeleteCampaign(ctx *gin.Context) {
	eventID, ok := idParam(ctx, "eventId")
	if !ok {
		return
	}
	campaignID, ok := idParam(ctx, "campaignId")
	if !ok {
		return
	}

	if err := c.service.DeleteCampaign(ctx.Request.Context(), eventID, campaignID, ctx.GetString("user_id")); err != nil {
		c.respondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Voucher campaign deleted successfully", nil, nil)
}

// ListVouchers handles GET /api/v1/events/:eventId/voucher-campaigns/:campaignId/vouchers
func (c *Controller) ListVouchers(ctx *gin.Context) {
	eventID, ok := idParam(ctx, "eventId")
	if !ok {
		return
	}
	campaignID, ok := idParam(ctx, "campaignId")
	if !ok {
		return
	}

	var query ListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	vouchers, err := c.service.ListVouchers(ctx.Request.Context(), eventID, campaignID, query)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Vouchers retrieved successfully", vouchers, nil)
}

func (c *Controller) respondError(ctx *gin.Context, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, verr.Fields)
	case errors.Is(err, ErrCampaignNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, err.Error(), nil, nil)
	case errors.Is(err, ErrForbidden):
		response.RespondJSON(ctx, "error", http.StatusForbidden, err.Error(), nil, nil)
	default:
		response.RespondJSON(ctx, "error", http.StatusBadGateway, "Voucher request failed", nil, err.Error())
	}
}

func idParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid "+name, nil, nil)
		return 0, false
	}
	return id, true
}
