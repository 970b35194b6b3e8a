package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kbukum/ssehub/logger"
)

// FileSystem interface for file operations (useful for testing).
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// RealFileSystem implements FileSystem using actual file operations.
type RealFileSystem struct{}

func (rfs *RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (rfs *RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// Resolver handles finding config and env files.
type Resolver struct {
	FileSystem FileSystem
}

// ResolvedFiles contains the resolved config and env file paths.
type ResolvedFiles struct {
	ConfigFile string
	EnvFile    string
}

// ResolveFiles finds config and env files for a service.
// Explicit paths win; otherwise the standard locations are searched.
func (cr *Resolver) ResolveFiles(serviceName string, opts LoaderConfig) ResolvedFiles {
	resolved := ResolvedFiles{
		ConfigFile: opts.ConfigFile,
		EnvFile:    opts.EnvFile,
	}
	if resolved.ConfigFile == "" {
		resolved.ConfigFile = cr.firstExisting(configSearchPaths(serviceName))
	}
	if resolved.EnvFile == "" {
		resolved.EnvFile = cr.firstExisting(envSearchPaths(serviceName))
	}
	return resolved
}

func (cr *Resolver) firstExisting(paths []string) string {
	for _, p := range paths {
		if cr.FileSystem.Exists(p) {
			return p
		}
	}
	return ""
}

// configSearchPaths lists config.yml candidates, nearest first.
func configSearchPaths(serviceName string) []string {
	var paths []string
	for _, prefix := range []string{"./", "../", "../../"} {
		paths = append(paths, fmt.Sprintf("%scmd/%s/config.yml", prefix, serviceName))
	}
	return append(paths, "./config/config.yml", "./config.yml")
}

// envSearchPaths lists .env candidates; the service specific file wins.
func envSearchPaths(serviceName string) []string {
	var paths []string
	for _, name := range []string{".env." + serviceName, ".env"} {
		for _, dir := range []string{fmt.Sprintf("./cmd/%s/", serviceName), "./config/", "./"} {
			paths = append(paths, dir+name)
		}
	}
	return paths
}

// LoaderConfig holds dependencies and optional file overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string // Direct config file path (optional)
	EnvFile    string // Direct env file path (optional)
	EnvPrefix  string // Only env vars with this prefix are bound (optional)
}

// LoaderOption is a functional option for LoadConfig.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// WithEnvPrefix restricts environment binding to variables starting with
// prefix followed by an underscore, e.g. "SSEHUB" binds SSEHUB_SSE_PATH to
// sse.path.
func WithEnvPrefix(prefix string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvPrefix = strings.ToUpper(strings.TrimSuffix(prefix, "_")) }
}

// LoadConfig loads configuration for a service into cfg. The YAML file is
// read first, then environment variables (including those from .env)
// override it.
func LoadConfig(serviceName string, cfg interface{}, opts ...LoaderOption) error {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.FileSystem == nil {
		lc.FileSystem = &RealFileSystem{}
	}

	resolver := &Resolver{FileSystem: lc.FileSystem}
	files := resolver.ResolveFiles(serviceName, lc)

	v := viper.New()
	if files.ConfigFile != "" && lc.FileSystem.Exists(files.ConfigFile) {
		v.SetConfigFile(files.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", files.ConfigFile, err)
		}
	}

	if files.EnvFile != "" && lc.FileSystem.Exists(files.EnvFile) {
		if err := lc.FileSystem.LoadEnv(files.EnvFile); err != nil {
			logger.Warn("Failed to load .env file", logger.Fields("path", files.EnvFile, logger.FieldError, err.Error()))
		}
	}
	bindEnvVars(v, os.Environ(), lc.EnvPrefix)

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config for service %s: %w", serviceName, err)
	}
	return nil
}

// bindEnvVars sets every KEY=value pair under all nested key variants so
// SSE_KEEPALIVE_INTERVAL reaches sse.keepalive_interval.
func bindEnvVars(v *viper.Viper, environ []string, prefix string) {
	for _, env := range environ {
		key, value, ok := strings.Cut(env, "=")
		if !ok {
			continue
		}
		if prefix != "" {
			var found bool
			if key, found = strings.CutPrefix(key, prefix+"_"); !found {
				continue
			}
		}
		for _, variant := range envKeyVariants(key) {
			v.Set(variant, value)
		}
	}
}

// envKeyVariants returns the nested key spellings of an env var name:
//
//	SSE_SEND_TIMEOUT -> [sse_send_timeout, sse.send.timeout, sse.send_timeout]
func envKeyVariants(envKey string) []string {
	lowerKey := strings.ToLower(envKey)
	parts := strings.Split(lowerKey, "_")
	if len(parts) <= 1 {
		return []string{lowerKey}
	}

	variants := []string{lowerKey, strings.Join(parts, ".")}
	for i := 1; i < len(parts); i++ {
		variants = append(variants, strings.Join(parts[:i], ".")+"."+strings.Join(parts[i:], "_"))
	}

	seen := make(map[string]bool, len(variants))
	result := variants[:0]
	for _, item := range variants {
		if !seen[item] {
			seen[item] = true
			result = append(result, item)
		}
	}
	return result
}
