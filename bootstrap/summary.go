package bootstrap

import (
	"context"
	"time"

	"github.com/kbukum/ssehub/component"
	"github.com/kbukum/ssehub/logger"
	"github.com/kbukum/ssehub/version"
)

// logSummary logs build info, then one line per component with its
// description and health.
func (a *App[C]) logSummary(ctx context.Context, took time.Duration) {
	build := version.Get()
	a.Logger.Info("Startup complete", logger.Fields(
		"name", a.Name,
		"version", build.Version,
		"commit", build.GitCommit,
		"go", build.GoVersion,
		"startup_ms", took.Milliseconds(),
	))

	health := make(map[string]component.Health)
	for _, h := range a.Components.HealthAll(ctx) {
		health[h.Name] = h
	}
	for _, c := range a.Components.All() {
		fields := logger.Fields(logger.FieldComponent, c.Name(), "status", string(health[c.Name()].Status))
		if d, ok := c.(component.Describable); ok {
			desc := d.Describe()
			fields["type"] = desc.Type
			fields["details"] = desc.Details
		}
		if msg := health[c.Name()].Message; msg != "" {
			fields["message"] = msg
		}
		a.Logger.Info("Component", fields)
	}
}
