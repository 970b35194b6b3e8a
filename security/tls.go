package security

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
)

// TLSConfig holds server TLS settings.
type TLSConfig struct {
	// CertFile and KeyFile are the server certificate and key (PEM).
	CertFile string `yaml:"cert_file" mapstructure:"cert_file"`
	KeyFile  string `yaml:"key_file" mapstructure:"key_file"`

	// ClientCAFile, when set, requires clients to present a certificate
	// signed by one of these CAs.
	ClientCAFile string `yaml:"client_ca_file" mapstructure:"client_ca_file"`

	// MinVersion is the minimum TLS version; defaults to TLS 1.2.
	MinVersion uint16 `yaml:"min_version" mapstructure:"min_version"`
}

// IsEnabled reports whether a server certificate is configured.
func (c *TLSConfig) IsEnabled() bool {
	return c != nil && c.CertFile != ""
}

// Validate checks that the settings are consistent.
func (c *TLSConfig) Validate() error {
	if c == nil {
		return nil
	}
	if (c.CertFile != "") != (c.KeyFile != "") {
		return fmt.Errorf("security/tls: both cert_file and key_file must be provided together")
	}
	if c.ClientCAFile != "" && c.CertFile == "" {
		return fmt.Errorf("security/tls: client_ca_file requires cert_file and key_file")
	}
	if c.MinVersion != 0 && c.MinVersion < tls.VersionTLS12 {
		return fmt.Errorf("security/tls: min_version below TLS 1.2 is not allowed")
	}
	return nil
}

// Build loads the certificates and returns the server *tls.Config, or nil
// when TLS is not enabled.
func (c *TLSConfig) Build() (*tls.Config, error) {
	if !c.IsEnabled() {
		return nil, nil
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	cert, err := tls.LoadX509KeyPair(c.CertFile, c.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("security/tls: failed to load server certificate: %w", err)
	}

	minVersion := c.MinVersion
	if minVersion == 0 {
		minVersion = tls.VersionTLS12
	}
	cfg := &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   minVersion,
		NextProtos:   []string{"h2", "http/1.1"},
	}

	if c.ClientCAFile != "" {
		pool, err := loadPool(c.ClientCAFile)
		if err != nil {
			return nil, err
		}
		cfg.ClientCAs = pool
		cfg.ClientAuth = tls.RequireAndVerifyClientCert
	}
	return cfg, nil
}

func loadPool(path string) (*x509.CertPool, error) {
	pem, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("security/tls: failed to read CA file: %w", err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("security/tls: failed to parse CA certificate")
	}
	return pool, nil
}
