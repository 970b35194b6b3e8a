package auth

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// SigningMethod names a supported HMAC algorithm.
type SigningMethod string

const (
	HS256 SigningMethod = "HS256"
	HS384 SigningMethod = "HS384"
	HS512 SigningMethod = "HS512"
)

// minSecretLength is the shortest accepted HMAC key.
const minSecretLength = 16

// Config configures admin token issuing and verification.
type Config struct {
	// Enabled turns on bearer authentication for the admin API.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`

	// Secret is the HMAC signing key.
	Secret string `yaml:"secret" mapstructure:"secret"`

	// Method is the signing algorithm (default: HS256).
	Method SigningMethod `yaml:"method" mapstructure:"method"`

	Issuer   string `yaml:"issuer" mapstructure:"issuer"`
	Audience string `yaml:"audience" mapstructure:"audience"`

	// TokenTTL is the lifetime of issued tokens (default: 1h).
	TokenTTL time.Duration `yaml:"token_ttl" mapstructure:"token_ttl"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Method == "" {
		c.Method = HS256
	}
	if c.TokenTTL == 0 {
		c.TokenTTL = time.Hour
	}
}

// Validate checks the configuration. A disabled config is always valid.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.signingMethod() == nil {
		return fmt.Errorf("auth: unsupported signing method %q", c.Method)
	}
	if len(c.Secret) < minSecretLength {
		return fmt.Errorf("auth: secret must be at least %d bytes", minSecretLength)
	}
	if c.TokenTTL < 0 {
		return errors.New("auth: token_ttl must be non-negative")
	}
	return nil
}

// Describe returns a one-liner for the startup summary.
func (c *Config) Describe() string {
	if !c.Enabled {
		return "disabled"
	}
	return fmt.Sprintf("JWT(%s) TTL=%s", c.Method, c.TokenTTL)
}

func (c *Config) signingMethod() gojwt.SigningMethod {
	switch c.Method {
	case HS256:
		return gojwt.SigningMethodHS256
	case HS384:
		return gojwt.SigningMethodHS384
	case HS512:
		return gojwt.SigningMethodHS512
	default:
		return nil
	}
}
