package observability

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Config is the observability section of the service configuration.
type Config struct {
	Enabled        bool          `yaml:"enabled" mapstructure:"enabled"`
	ServiceName    string        `yaml:"service_name" mapstructure:"service_name"`
	ServiceVersion string        `yaml:"service_version" mapstructure:"service_version"`
	Environment    string        `yaml:"environment" mapstructure:"environment"`
	Endpoint       string        `yaml:"endpoint" mapstructure:"endpoint"` // OTLP HTTP host:port
	Insecure       bool          `yaml:"insecure" mapstructure:"insecure"`
	SampleRate     float64       `yaml:"sample_rate" mapstructure:"sample_rate"`
	MetricInterval time.Duration `yaml:"metric_interval" mapstructure:"metric_interval"`
}

// ApplyDefaults fills unset fields with development defaults.
func (c *Config) ApplyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
	}
	if c.ServiceVersion == "" {
		c.ServiceVersion = "dev"
	}
	if c.MetricInterval == 0 {
		c.MetricInterval = 15 * time.Second
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.SampleRate < 0 || c.SampleRate > 1 {
		return fmt.Errorf("observability.sample_rate must be between 0 and 1 (got: %v)", c.SampleRate)
	}
	if c.Enabled && c.ServiceName == "" {
		return fmt.Errorf("observability.service_name is required when enabled")
	}
	return nil
}

// Setup installs the global tracer and meter providers when enabled and
// returns a function that flushes and shuts both down. When disabled the
// otel no-op globals stay in place and the shutdown function does nothing.
func Setup(ctx context.Context, cfg Config) (func(context.Context) error, error) {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	tp, err := InitTracer(ctx, &TracerConfig{
		ServiceName:    cfg.ServiceName,
		ServiceVersion: cfg.ServiceVersion,
		Environment:    cfg.Environment,
		Endpoint:       cfg.Endpoint,
		Insecure:       cfg.Insecure,
		SampleRate:     cfg.SampleRate,
	})
	if err != nil {
		return nil, err
	}

	mp, err := InitMeter(ctx, &MeterConfig{
		ServiceName:    cfg.ServiceName,
		ServiceVersion: cfg.ServiceVersion,
		Environment:    cfg.Environment,
		Endpoint:       cfg.Endpoint,
		Insecure:       cfg.Insecure,
		Interval:       cfg.MetricInterval,
	})
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, err
	}

	return func(ctx context.Context) error {
		return errors.Join(tp.Shutdown(ctx), mp.Shutdown(ctx))
	}, nil
}
