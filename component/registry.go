package component

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kbukum/ssehub/logger"
)

// componentEntry holds a component and its started state.
type componentEntry struct {
	component Component
	started   bool
}

// Registry manages component lifecycle with deterministic ordering.
// Components are started in registration order and stopped in reverse order.
type Registry struct {
	entries     []*componentEntry
	lookup      map[string]*componentEntry
	stopTimeout time.Duration
	mu          sync.RWMutex
	// lifecycle serializes StartAll and StopAll; HealthAll only takes mu.
	lifecycle sync.Mutex
}

// NewRegistry creates a new component registry. Each Stop call gets
// stopTimeout; zero means 10 seconds.
func NewRegistry(stopTimeout ...time.Duration) *Registry {
	r := &Registry{
		entries:     make([]*componentEntry, 0),
		lookup:      make(map[string]*componentEntry),
		stopTimeout: 10 * time.Second,
	}
	if len(stopTimeout) > 0 && stopTimeout[0] > 0 {
		r.stopTimeout = stopTimeout[0]
	}
	return r
}

// Register adds a component to the registry. Components are started in
// the order they are registered, so register dependencies first.
func (r *Registry) Register(c Component) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := c.Name()
	if _, exists := r.lookup[name]; exists {
		return fmt.Errorf("component %s already registered", name)
	}

	entry := &componentEntry{component: c}
	r.entries = append(r.entries, entry)
	r.lookup[name] = entry

	logger.Debug("Component registered", map[string]interface{}{
		"component": name,
	})
	return nil
}

// StartAll starts all components in registration order.
func (r *Registry) StartAll(ctx context.Context) error {
	r.lifecycle.Lock()
	defer r.lifecycle.Unlock()
	entries := r.snapshot()

	logger.Info("Starting all components", map[string]interface{}{
		"count": len(entries),
	})

	for _, entry := range entries {
		name := entry.component.Name()

		logger.Debug("Starting component", map[string]interface{}{"component": name})
		if err := entry.component.Start(ctx); err != nil {
			logger.Error("Component start failed", map[string]interface{}{
				"component": name,
				"error":     err.Error(),
			})
			return fmt.Errorf("failed to start %s: %w", name, err)
		}

		entry.started = true
		fields := map[string]interface{}{"component": name}
		if d, ok := entry.component.(Describable); ok {
			desc := d.Describe()
			fields["type"] = desc.Type
			fields["details"] = desc.Details
		}
		logger.Info("Component started", fields)
	}

	logger.Info("All components started successfully")
	return nil
}

// StopAll gracefully stops all components in reverse registration order.
func (r *Registry) StopAll(ctx context.Context) error {
	r.lifecycle.Lock()
	defer r.lifecycle.Unlock()
	entries := r.snapshot()

	logger.Info("Stopping all components")

	var errs []error
	for i := len(entries) - 1; i >= 0; i-- {
		entry := entries[i]
		if !entry.started {
			continue
		}

		name := entry.component.Name()
		logger.Debug("Stopping component", map[string]interface{}{"component": name})

		stopCtx, cancel := context.WithTimeout(ctx, r.stopTimeout)
		if err := entry.component.Stop(stopCtx); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop %s: %w", name, err))
			logger.Error("Component stop failed", map[string]interface{}{
				"component": name,
				"error":     err.Error(),
			})
		} else {
			logger.Info("Component stopped", map[string]interface{}{"component": name})
		}
		entry.started = false
		cancel()
	}

	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %w", errors.Join(errs...))
	}

	logger.Info("All components stopped successfully")
	return nil
}

// HealthAll returns health status for all registered components.
func (r *Registry) HealthAll(ctx context.Context) []Health {
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := make([]Health, 0, len(r.entries))
	for _, entry := range r.entries {
		results = append(results, entry.component.Health(ctx))
	}
	return results
}

// All returns the registered components in registration order.
func (r *Registry) All() []Component {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Component, len(r.entries))
	for i, entry := range r.entries {
		out[i] = entry.component
	}
	return out
}

func (r *Registry) snapshot() []*componentEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*componentEntry(nil), r.entries...)
}

// Get returns a registered component by name, or nil if not found.
func (r *Registry) Get(name string) Component {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if entry, exists := r.lookup[name]; exists {
		return entry.component
	}
	return nil
}


