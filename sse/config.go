package sse

import (
	"time"

	"github.com/kbukum/ssehub/validation"
)

// Config is the sse section of the service configuration.
type Config struct {
	// Path the event stream is served on.
	Path string `yaml:"path" mapstructure:"path" validate:"required,startswith=/"`
	// KeepaliveInterval between comment frames; keep it below proxy idle
	// timeouts (typically 60s).
	KeepaliveInterval time.Duration `yaml:"keepalive_interval" mapstructure:"keepalive_interval" validate:"gt=0"`
	// SendTimeout bounds each write to one client.
	SendTimeout time.Duration `yaml:"send_timeout" mapstructure:"send_timeout" validate:"gte=0"`
	// ReconnectInterval in milliseconds pushed to connecting clients. Zero
	// leaves it unset.
	ReconnectInterval uint32 `yaml:"reconnect_interval" mapstructure:"reconnect_interval"`
	// SkipConnectedEvent disables the "connected" event sent on connect.
	SkipConnectedEvent bool `yaml:"skip_connected_event" mapstructure:"skip_connected_event"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Path == "" {
		c.Path = "/events"
	}
	if c.KeepaliveInterval == 0 {
		c.KeepaliveInterval = 30 * time.Second
	}
	if c.SendTimeout == 0 {
		c.SendTimeout = 10 * time.Second
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	return validation.Validate(c)
}
