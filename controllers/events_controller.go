package controllers

import (
	"io"

	"hotel-booking-backend/services"

	"github.com/gin-gonic/gin"
)

// EventsController streams booking/refund notification events to connected
// clients over SSE. The services only know the Notifier interface; this is the
// transport glue.
type EventsController struct {
	Hub *services.Hub
}

func NewEventsController(hub *services.Hub) *EventsController {
	return &EventsController{Hub: hub}
}

func (ctrl *EventsController) Stream(c *gin.Context) {
	ch, cancel := ctrl.Hub.Subscribe()
	defer cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent(ev.Name, ev)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
