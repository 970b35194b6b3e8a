// Package config loads ssehub configuration with Viper.
//
// LoadConfig reads cmd/<service>/config.yml (or an explicit file), loads a
// .env file when one is found and lets environment variables override file
// values, e.g. SSE_KEEPALIVE_INTERVAL=15s overrides sse.keepalive_interval.
//
// # Usage
//
//	var cfg AppConfig
//	err := config.LoadConfig("ssed", &cfg, config.WithEnvPrefix("SSEHUB"))
package config
