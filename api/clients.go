package api

import (
	"github.com/gin-gonic/gin"

	"github.com/kbukum/ssehub/errors"
	"github.com/kbukum/ssehub/server"
	"github.com/kbukum/ssehub/sse"
	"github.com/kbukum/ssehub/validation"
)

// ClientView is the JSON form of a registered client.
type ClientView struct {
	ID        string            `json:"id"`
	Connected bool              `json:"connected"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

func viewOf(c sse.Client) ClientView {
	v := ClientView{ID: c.ID().String(), Connected: c.IsConnected()}
	if sc, ok := c.(*sse.StreamClient); ok {
		v.Metadata = sc.Metadata()
	}
	return v
}

// ListClients handles GET /clients.
func (h *Handlers) ListClients(c *gin.Context) {
	clients := h.service.GetClients()
	views := make([]ClientView, 0, len(clients))
	for _, cl := range clients {
		views = append(views, viewOf(cl))
	}
	server.RespondOK(c, gin.H{"clients": views, "count": len(views)})
}

// GetClient handles GET /clients/:id.
func (h *Handlers) GetClient(c *gin.Context) {
	id, err := validation.ValidateUUID("id", c.Param("id"))
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	client, ok := h.service.GetClient(id)
	if !ok {
		server.RespondWithError(c, errors.NotFound("sse client", id.String()))
		return
	}
	server.RespondOK(c, viewOf(client))
}
