package analytics

import (
	"net/http"
	"strconv"

	"etik/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller interface {
	GetEventScanAnalytics(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) GetEventScanAnalytics(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Param("eventId"), 10, 64)
	if err != nil || eventID <= 0 {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid event ID", nil, nil)
		return
	}

	analytics, err := ctrl.service.GetEventScanAnalytics(c.Request.Context(), eventID)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Scan analytics retrieved successfully", analytics, nil)
}
