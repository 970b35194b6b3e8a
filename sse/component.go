package sse

import (
	"context"
	"fmt"

	"github.com/kbukum/ssehub/component"
)

// Component wraps a Service as a lifecycle-managed component.
// Register it with the component registry so shutdown disconnects clients.
type Component struct {
	service *Service
	path    string
}

// ensure Component satisfies component.Component and Describable.
var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// NewComponent creates a component for service mounted at path.
func NewComponent(service *Service, path string) *Component {
	return &Component{service: service, path: path}
}

// Service returns the wrapped Service.
func (c *Component) Service() *Service { return c.service }

// Name returns the component name.
func (c *Component) Name() string { return "sse" }

// Start is a no-op; the registry needs no background loop.
func (c *Component) Start(_ context.Context) error { return nil }

// Stop disconnects every client so their stream handlers return before the
// HTTP server shuts down.
func (c *Component) Stop(_ context.Context) error {
	c.service.DisconnectAll()
	return nil
}

// Health returns the health status of the SSE service.
func (c *Component) Health(_ context.Context) component.Health {
	return component.Health{
		Name:    c.Name(),
		Status:  component.StatusHealthy,
		Message: fmt.Sprintf("%d clients connected", c.service.ClientCount()),
	}
}

// Describe returns infrastructure summary info for the startup log.
func (c *Component) Describe() component.Description {
	details := fmt.Sprintf("path=%s", c.path)
	if ms, ok := c.service.ReconnectInterval(); ok {
		details += fmt.Sprintf(" retry=%dms", ms)
	}
	return component.Description{
		Name:    "SSE Service",
		Type:    "sse",
		Details: details,
	}
}
