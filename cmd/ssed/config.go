package main

import (
	"fmt"

	"github.com/kbukum/ssehub/api"
	"github.com/kbukum/ssehub/auth"
	"github.com/kbukum/ssehub/config"
	"github.com/kbukum/ssehub/observability"
	"github.com/kbukum/ssehub/server"
	"github.com/kbukum/ssehub/sse"
)

// Config is the ssed configuration file layout.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server        server.Config        `yaml:"server" mapstructure:"server"`
	SSE           sse.Config           `yaml:"sse" mapstructure:"sse"`
	API           api.Config           `yaml:"api" mapstructure:"api"`
	Auth          auth.Config          `yaml:"auth" mapstructure:"auth"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// ApplyDefaults fills every section.
func (c *Config) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.SSE.ApplyDefaults()
	c.API.ApplyDefaults()
	c.Auth.ApplyDefaults()
	if c.Observability.ServiceName == "" {
		c.Observability.ServiceName = c.Name
	}
	if c.Observability.Environment == "" {
		c.Observability.Environment = c.Environment
	}
	c.Observability.ApplyDefaults()
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.SSE.Validate(); err != nil {
		return fmt.Errorf("sse: %w", err)
	}
	if err := c.API.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	return c.Observability.Validate()
}
