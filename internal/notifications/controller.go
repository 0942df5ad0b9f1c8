package notifications

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"etik/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	hub       *Hub
	keepAlive time.Duration
}

func NewController(hub *Hub) *Controller {
	return &Controller{hub: hub, keepAlive: 25 * time.Second}
}

// Stream handles GET /api/v1/notifications/stream?station_id=&event_id=
func (ctrl *Controller) Stream(c *gin.Context) {
	var eventID int64
	if raw := c.Query("event_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid event ID", nil, err.Error())
			return
		}
		eventID = id
	}

	sub := ctrl.hub.Subscribe(c.Query("station_id"), eventID)
	defer sub.Close()

	ticker := time.NewTicker(ctrl.keepAlive)
	defer ticker.Stop()

	// Streams outlive the server write timeout
	_ = http.NewResponseController(c.Writer).SetWriteDeadline(time.Time{})

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case n, ok := <-sub.C:
			if !ok {
				return false
			}
			c.SSEvent(string(n.Level), n)
			return true
		case <-ticker.C:
			c.SSEvent("ping", gin.H{"time": time.Now()})
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
