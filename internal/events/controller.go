package events

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"etik/internal/shared/utils/response"
)

type Controller interface {
	GetShows(c *gin.Context)
	RefreshShows(c *gin.Context)
	RefreshAllShows(c *gin.Context)
	GetMarketplaceEvent(c *gin.Context)
	GetCustomerTransaction(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) GetShows(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Param("eventId"), 10, 64)
	if err != nil || eventID <= 0 {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid event ID", nil, nil)
		return
	}

	shows, err := ctrl.service.GetShows(c.Request.Context(), eventID)
	if err != nil {
		ctrl.respondError(c, err, "Failed to retrieve shows")
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Shows retrieved successfully", shows, nil)
}

func (ctrl *controller) RefreshShows(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Param("eventId"), 10, 64)
	if err != nil || eventID <= 0 {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid event ID", nil, nil)
		return
	}

	if err := ctrl.service.InvalidateShows(c.Request.Context(), eventID); err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to refresh shows", nil, err.Error())
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Show cache cleared", nil, nil)
}

func (ctrl *controller) RefreshAllShows(c *gin.Context) {
	if err := ctrl.service.InvalidateAllShows(c.Request.Context()); err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to refresh shows", nil, err.Error())
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Show cache cleared for all events", nil, nil)
}

func (ctrl *controller) GetMarketplaceEvent(c *gin.Context) {
	event, err := ctrl.service.GetMarketplaceEvent(c.Request.Context(), c.Param("slug"))
	if err != nil {
		ctrl.respondError(c, err, "Failed to retrieve event")
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Event retrieved successfully", event, nil)
}

// GetCustomerTransaction handles GET /api/v1/customers/transactions/:transactionId?token=
func (ctrl *controller) GetCustomerTransaction(c *gin.Context) {
	transactionID, err := strconv.ParseInt(c.Param("transactionId"), 10, 64)
	if err != nil || transactionID <= 0 {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid transaction ID", nil, nil)
		return
	}

	tx, err := ctrl.service.GetCustomerTransaction(c.Request.Context(), transactionID, c.Query("token"))
	if err != nil {
		ctrl.respondError(c, err, "Failed to retrieve transaction")
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Transaction retrieved successfully", tx, nil)
}

func (ctrl *controller) respondError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, ErrEventNotFound), errors.Is(err, ErrTransactionNotFound):
		response.RespondJSON(c, "error", http.StatusNotFound, err.Error(), nil, nil)
	case errors.Is(err, ErrInvalidToken):
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
	default:
		response.RespondJSON(c, "error", http.StatusBadGateway, message, nil, err.Error())
	}
}
