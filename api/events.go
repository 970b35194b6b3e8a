package api

import (
	"github.com/gin-gonic/gin"

	"github.com/kbukum/ssehub/errors"
	"github.com/kbukum/ssehub/server"
	"github.com/kbukum/ssehub/sse"
	"github.com/kbukum/ssehub/validation"
)

// SendEventRequest is the body of POST /events. Exactly one of Text and
// Event is set.
type SendEventRequest struct {
	Text  *string    `json:"text" validate:"required_without=Event"`
	Event *sse.Event `json:"event" validate:"required_without=Text"`
}

// SendEvent handles POST /events.
func (h *Handlers) SendEvent(c *gin.Context) {
	var req SendEventRequest
	if err := bindJSON(c, &req); err != nil {
		server.RespondWithError(c, err)
		return
	}
	if err := validation.Validate(req); err != nil {
		server.RespondWithError(c, err)
		return
	}
	if req.Text != nil && req.Event != nil {
		server.RespondWithError(c, errors.InvalidInput("body", "set either text or event, not both"))
		return
	}

	ctx := c.Request.Context()
	recipients := h.service.ConnectedCount()
	if req.Text != nil {
		if err := h.service.SendText(ctx, *req.Text); err != nil {
			h.respondBroadcastError(c, sse.OpSendText, err)
			return
		}
	} else if err := h.service.SendEvent(ctx, *req.Event); err != nil {
		h.respondBroadcastError(c, sse.OpSendEvent, err)
		return
	}
	server.RespondAccepted(c, gin.H{"status": "sent", "clients": recipients})
}
