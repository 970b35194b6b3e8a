package bootstrap

import (
	"os"
	"time"

	"github.com/kbukum/ssehub/logger"
)

// Option configures the App during creation.
type Option func(*appOptions)

type appOptions struct {
	logger          *logger.Logger
	gracefulTimeout time.Duration
	signals         []os.Signal
}

// WithLogger uses l instead of initializing the global logger from config.
func WithLogger(l *logger.Logger) Option {
	return func(o *appOptions) { o.logger = l }
}

// WithGracefulTimeout bounds the whole shutdown sequence (default 15s).
func WithGracefulTimeout(d time.Duration) Option {
	return func(o *appOptions) { o.gracefulTimeout = d }
}

// WithSignals replaces the signals that trigger shutdown.
func WithSignals(sigs ...os.Signal) Option {
	return func(o *appOptions) { o.signals = sigs }
}
