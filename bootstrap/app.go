package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbukum/ssehub/component"
	"github.com/kbukum/ssehub/logger"
)

// App owns the lifecycle of one process. C is the typed configuration.
type App[C Config] struct {
	Name       string
	Version    string
	Cfg        C
	Components *component.Registry
	Logger     *logger.Logger

	gracefulTimeout time.Duration
	signals         []os.Signal

	onStart []Hook
	onReady []Hook
	onStop  []Hook
}

// NewApp applies defaults to cfg, validates it and initializes logging.
func NewApp[C Config](cfg C, opts ...Option) (*App[C], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	base := cfg.GetServiceConfig()

	o := appOptions{
		gracefulTimeout: 15 * time.Second,
		signals:         []os.Signal{syscall.SIGINT, syscall.SIGTERM},
	}
	for _, opt := range opts {
		opt(&o)
	}

	app := &App[C]{
		Name:            base.Name,
		Version:         base.Version,
		Cfg:             cfg,
		Components:      component.NewRegistry(o.gracefulTimeout),
		Logger:          o.logger,
		gracefulTimeout: o.gracefulTimeout,
		signals:         o.signals,
	}
	if app.Logger == nil {
		logger.Init(&base.Logging)
		app.Logger = logger.GetGlobalLogger()
	}
	return app, nil
}

// RegisterComponent adds c to the registry. Components start in
// registration order and stop in reverse.
func (a *App[C]) RegisterComponent(c component.Component) error {
	return a.Components.Register(c)
}

// ReadyCheck returns an error naming every component that is not healthy.
func (a *App[C]) ReadyCheck(ctx context.Context) error {
	var unhealthy []string
	for _, h := range a.Components.HealthAll(ctx) {
		if h.Status == component.StatusHealthy {
			continue
		}
		detail := h.Name + "=" + string(h.Status)
		if h.Message != "" {
			detail += "(" + h.Message + ")"
		}
		unhealthy = append(unhealthy, detail)
	}
	if len(unhealthy) > 0 {
		return fmt.Errorf("unhealthy components: %v", unhealthy)
	}
	return nil
}

// Run starts the application, blocks until a shutdown signal arrives or
// ctx is canceled, then shuts down gracefully.
func (a *App[C]) Run(ctx context.Context) error {
	if err := a.startup(ctx); err != nil {
		if stopErr := a.stop(); stopErr != nil {
			a.Logger.Error("Cleanup after failed startup", logger.Fields(logger.FieldError, stopErr.Error()))
		}
		return err
	}

	a.Logger.Info("Application ready, waiting for shutdown signal")
	a.WaitForSignal(ctx)
	return a.stop()
}

func (a *App[C]) startup(ctx context.Context) error {
	start := time.Now()
	a.Logger.Info("Starting application", logger.Fields("name", a.Name, "version", a.Version))

	if err := a.Components.StartAll(ctx); err != nil {
		return fmt.Errorf("failed to start components: %w", err)
	}
	if err := runHooks(ctx, a.onStart); err != nil {
		return fmt.Errorf("onStart hook failed: %w", err)
	}

	if err := a.ReadyCheck(ctx); err != nil {
		a.Logger.Warn("Ready check reported issues", logger.Fields(logger.FieldError, err.Error()))
	}
	if err := runHooks(ctx, a.onReady); err != nil {
		return fmt.Errorf("onReady hook failed: %w", err)
	}

	a.logSummary(ctx, time.Since(start))
	return nil
}

// WaitForSignal blocks until one of the configured signals arrives or ctx
// is done, and returns the signal (nil on cancellation).
func (a *App[C]) WaitForSignal(ctx context.Context) os.Signal {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, a.signals...)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		a.Logger.Info("Received shutdown signal", logger.Fields("signal", sig.String()))
		return sig
	case <-ctx.Done():
		a.Logger.Info("Context canceled, shutting down")
		return nil
	}
}

// stop stops components in reverse order, then runs OnStop hooks, all
// within the graceful timeout.
func (a *App[C]) stop() error {
	a.Logger.Info("Shutting down application", logger.Fields("timeout", a.gracefulTimeout.String()))

	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	stopErr := a.Components.StopAll(ctx)
	if stopErr != nil {
		a.Logger.Error("Components stopped with errors", logger.Fields(logger.FieldError, stopErr.Error()))
	}
	hookErr := runHooks(ctx, a.onStop)
	if hookErr != nil {
		a.Logger.Error("OnStop hook error", logger.Fields(logger.FieldError, hookErr.Error()))
	}

	a.Logger.Info("Application shutdown complete")
	return errors.Join(stopErr, hookErr)
}
