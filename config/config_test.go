package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestServiceConfigApplyDefaults(t *testing.T) {
	t.Run("empty environment defaults to development", func(t *testing.T) {
		cfg := ServiceConfig{Name: "ssed"}
		cfg.ApplyDefaults()
		if cfg.Environment != "development" {
			t.Errorf("expected 'development', got %q", cfg.Environment)
		}
		if !cfg.Debug {
			t.Error("expected debug=true for development")
		}
		if cfg.Logging.Level != "debug" {
			t.Errorf("expected debug log level in development, got %q", cfg.Logging.Level)
		}
		if cfg.Logging.ServiceName != "ssed" {
			t.Errorf("expected logging service name 'ssed', got %q", cfg.Logging.ServiceName)
		}
	})

	t.Run("production keeps debug false", func(t *testing.T) {
		cfg := ServiceConfig{Name: "ssed", Environment: "production"}
		cfg.ApplyDefaults()
		if cfg.Debug {
			t.Error("expected debug=false for production")
		}
		if cfg.Logging.Level != "info" {
			t.Errorf("expected info log level, got %q", cfg.Logging.Level)
		}
	})
}

func TestServiceConfigValidate(t *testing.T) {
	valid := func() ServiceConfig {
		c := ServiceConfig{Name: "ssed", Environment: "staging"}
		c.ApplyDefaults()
		return c
	}
	tests := []struct {
		name   string
		mutate func(*ServiceConfig)
		errMsg string
	}{
		{"valid", func(*ServiceConfig) {}, ""},
		{"missing name", func(c *ServiceConfig) { c.Name = "" }, "config.name is required"},
		{"invalid environment", func(c *ServiceConfig) { c.Environment = "qa" }, "config.environment must be one of"},
		{"invalid log level", func(c *ServiceConfig) { c.Logging.Level = "loud" }, "config.logging"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.errMsg == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.errMsg) {
				t.Errorf("expected error containing %q, got %v", tc.errMsg, err)
			}
		})
	}
}

type testSSEConfig struct {
	Path              string        `mapstructure:"path"`
	KeepAliveInterval time.Duration `mapstructure:"keepalive_interval"`
}

type testConfig struct {
	ServiceConfig `mapstructure:",squash"`
	SSE           testSSEConfig `mapstructure:"sse"`
}

func TestLoadConfigWithYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")

	yamlContent := `
name: ssed
environment: staging
sse:
  path: /stream
  keepalive_interval: 15s
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	var cfg testConfig
	if err := LoadConfig("ssed", &cfg, WithConfigFile(configPath), WithEnvPrefix("SSEHUB_TEST_UNUSED")); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Name != "ssed" {
		t.Errorf("expected name 'ssed', got %q", cfg.Name)
	}
	if cfg.Environment != "staging" {
		t.Errorf("expected environment 'staging', got %q", cfg.Environment)
	}
	if cfg.SSE.Path != "/stream" {
		t.Errorf("expected sse.path '/stream', got %q", cfg.SSE.Path)
	}
	if cfg.SSE.KeepAliveInterval != 15*time.Second {
		t.Errorf("expected keepalive 15s, got %v", cfg.SSE.KeepAliveInterval)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(configPath, []byte("name: ssed\nsse:\n  path: /events\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("SSEHUBTEST_SSE_PATH", "/override")

	var cfg testConfig
	if err := LoadConfig("ssed", &cfg, WithConfigFile(configPath), WithEnvPrefix("SSEHUBTEST")); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.SSE.Path != "/override" {
		t.Errorf("expected env override '/override', got %q", cfg.SSE.Path)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	var cfg testConfig
	err := LoadConfig("nonexistent-service", &cfg, WithConfigFile("/nonexistent/path.yml"), WithEnvPrefix("SSEHUB_TEST_UNUSED"))
	if err != nil {
		t.Fatalf("expected LoadConfig to succeed with missing file, got %v", err)
	}
}

type mockFS struct {
	files  map[string]bool
	loaded []string
}

func (m *mockFS) Exists(path string) bool { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error {
	m.loaded = append(m.loaded, path)
	return nil
}

func TestResolverFindsServiceFiles(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"../cmd/ssed/config.yml": true,
		"./config/config.yml":    true,
		"./cmd/ssed/.env":        true,
		"./.env.ssed":            true,
	}}
	resolver := &Resolver{FileSystem: fs}
	files := resolver.ResolveFiles("ssed", LoaderConfig{})
	if files.ConfigFile != "../cmd/ssed/config.yml" {
		t.Errorf("expected ../cmd/ssed/config.yml, got %q", files.ConfigFile)
	}
	if files.EnvFile != "./.env.ssed" {
		t.Errorf("expected service specific env file, got %q", files.EnvFile)
	}
}

func TestResolverExplicitPaths(t *testing.T) {
	resolver := &Resolver{FileSystem: &mockFS{}}
	files := resolver.ResolveFiles("ssed", LoaderConfig{ConfigFile: "/etc/ssed.yml", EnvFile: "/etc/ssed.env"})
	if files.ConfigFile != "/etc/ssed.yml" || files.EnvFile != "/etc/ssed.env" {
		t.Errorf("expected explicit paths to win, got %+v", files)
	}
}

func TestEnvKeyVariants(t *testing.T) {
	got := envKeyVariants("SSE_SEND_TIMEOUT")
	want := []string{"sse_send_timeout", "sse.send.timeout", "sse.send_timeout"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("variant %d: expected %q, got %q", i, want[i], got[i])
		}
	}
	if got := envKeyVariants("NAME"); len(got) != 1 || got[0] != "name" {
		t.Errorf("expected single variant for flat key, got %v", got)
	}
}

func TestLoaderOptions(t *testing.T) {
	var lc LoaderConfig
	fs := &mockFS{}
	WithFileSystem(fs)(&lc)
	WithConfigFile("/path/to/config.yml")(&lc)
	WithEnvFile("/path/to/.env")(&lc)
	WithEnvPrefix("ssehub_")(&lc)

	if lc.FileSystem == nil {
		t.Error("expected FileSystem to be set")
	}
	if lc.ConfigFile != "/path/to/config.yml" || lc.EnvFile != "/path/to/.env" {
		t.Errorf("unexpected paths: %+v", lc)
	}
	if lc.EnvPrefix != "SSEHUB" {
		t.Errorf("expected normalized prefix 'SSEHUB', got %q", lc.EnvPrefix)
	}
}
