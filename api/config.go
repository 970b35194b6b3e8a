package api

import (
	"fmt"
)

// Config is the api section of the service configuration.
type Config struct {
	// BroadcastRate is how many broadcast requests per second the admin API
	// accepts across all callers; BroadcastBurst is the bucket size.
	BroadcastRate  float64 `yaml:"broadcast_rate" mapstructure:"broadcast_rate"`
	BroadcastBurst int     `yaml:"broadcast_burst" mapstructure:"broadcast_burst"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.BroadcastRate == 0 {
		c.BroadcastRate = 10
	}
	if c.BroadcastBurst == 0 {
		c.BroadcastBurst = 20
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.BroadcastRate < 0 {
		return fmt.Errorf("api.broadcast_rate must be non-negative (got: %v)", c.BroadcastRate)
	}
	if c.BroadcastBurst < 0 {
		return fmt.Errorf("api.broadcast_burst must be non-negative (got: %d)", c.BroadcastBurst)
	}
	return nil
}
