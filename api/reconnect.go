package api

import (
	"github.com/gin-gonic/gin"

	"github.com/kbukum/ssehub/errors"
	"github.com/kbukum/ssehub/server"
	"github.com/kbukum/ssehub/sse"
	"github.com/kbukum/ssehub/validation"
)

// ReconnectIntervalRequest is the body of PUT /reconnect-interval.
type ReconnectIntervalRequest struct {
	Interval *uint32 `json:"interval" validate:"required"` // milliseconds
}

// GetReconnectInterval handles GET /reconnect-interval. It answers 404
// until an interval has been set.
func (h *Handlers) GetReconnectInterval(c *gin.Context) {
	ms, ok := h.service.ReconnectInterval()
	if !ok {
		server.RespondWithError(c, errors.NotFound("reconnect interval", ""))
		return
	}
	server.RespondOK(c, gin.H{"interval": ms})
}

// PutReconnectInterval handles PUT /reconnect-interval. The new value is
// kept even when pushing it to some clients fails.
func (h *Handlers) PutReconnectInterval(c *gin.Context) {
	var req ReconnectIntervalRequest
	if err := bindJSON(c, &req); err != nil {
		server.RespondWithError(c, err)
		return
	}
	if err := validation.Validate(req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	if err := h.service.ChangeReconnectInterval(c.Request.Context(), *req.Interval); err != nil {
		h.respondBroadcastError(c, sse.OpChangeReconnectInterval, err)
		return
	}
	server.RespondOK(c, gin.H{"interval": *req.Interval})
}
