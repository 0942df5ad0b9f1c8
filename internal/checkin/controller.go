package checkin

import (
	"errors"
	"net/http"
	"strconv"

	"etik/internal/shared/utils/response"
	"etik/internal/stations"
	"etik/pkg/etikapi"

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

// Lookup handles POST /api/v1/events/:eventId/{check-in|check-out}/lookup
func (c *Controller) Lookup(mode Mode) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		eventID, ok := eventIDParam(ctx)
		if !ok {
			return
		}

		var req LookupRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
			return
		}
		if err := c.validator.Struct(&req); err != nil {
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
			return
		}

		result, err := c.service.Lookup(ctx.Request.Context(), eventID, ctx.GetString("user_id"), mode, req)
		if err != nil {
			c.respondError(ctx, err)
			return
		}

		response.RespondJSON(ctx, "success", http.StatusOK, "Transaction retrieved successfully", result, nil)
	}
}

// Submit handles POST /api/v1/events/:eventId/{check-in|check-out}/submit
func (c *Controller) Submit(mode Mode) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		eventID, ok := eventIDParam(ctx)
		if !ok {
			return
		}

		var req SubmitRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
			return
		}
		if err := c.validator.Struct(&req); err != nil {
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
			return
		}

		result, err := c.service.Submit(ctx.Request.Context(), eventID, ctx.GetString("user_id"), mode, req)
		if err != nil {
			c.respondError(ctx, err)
			return
		}

		response.RespondJSON(ctx, "success", http.StatusOK, "Tickets "+mode.Verb()+" successfully", result, nil)
	}
}

// GetState handles GET /api/v1/stations/:stationId/state/:mode
func (c *Controller) GetState(ctx *gin.Context) {
	stationID := ctx.Param("stationId")
	mode := Mode(ctx.Param("mode"))

	state, err := c.service.State(ctx.Request.Context(), stationID, mode)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Station state retrieved successfully",
		StateResponse{StationID: stationID, Mode: mode, State: state}, nil)
}

// ListScans handles GET /api/v1/events/:eventId/scans
func (c *Controller) ListScans(ctx *gin.Context) {
	eventID, ok := eventIDParam(ctx)
	if !ok {
		return
	}

	var query ScanListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	scans, err := c.service.ListScans(ctx.Request.Context(), eventID, query)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to retrieve scans", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Scans retrieved successfully", scans, nil)
}

func (c *Controller) respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidMode),
		errors.Is(err, ErrEmptyCode),
		errors.Is(err, stations.ErrInvalidStationID):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, err.Error(), nil, nil)
	case errors.Is(err, ErrTransactionNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "No transaction found for this e-ticket", nil, err.Error())
	case errors.Is(err, ErrNothingSelected),
		errors.Is(err, ErrTicketNotFound),
		errors.Is(err, ErrTicketNotEligible):
		response.RespondJSON(ctx, "error", http.StatusUnprocessableEntity, err.Error(), nil, nil)
	case errors.Is(err, ErrStationBusy):
		response.RespondJSON(ctx, "error", http.StatusConflict, "A request from this station is still in progress", nil, nil)
	case errors.Is(err, etikapi.ErrForbidden), errors.Is(err, etikapi.ErrUnauthorized):
		response.RespondJSON(ctx, "error", http.StatusForbidden, "ETIK backend refused the request", nil, err.Error())
	default:
		response.RespondJSON(ctx, "error", http.StatusBadGateway, "ETIK backend request failed", nil, err.Error())
	}
}

func eventIDParam(ctx *gin.Context) (int64, bool) {
	eventID, err := strconv.ParseInt(ctx.Param("eventId"), 10, 64)
	if err != nil || eventID <= 0 {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid event ID", nil, nil)
		return 0, false
	}
	return eventID, true
}
