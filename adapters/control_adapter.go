// Package adapters
// Author: momentics <momentics@gmail.com>
//
// Control adapter implementing api.Control interface using control package primitives.

package adapters

import (
	"github.com/momentics/hioload-echo/api"
	"github.com/momentics/hioload-echo/control"
)

// ControlAdapter bundles the config store, metrics registry and debug
// probes behind the api.Control contract.
type ControlAdapter struct {
	config  *control.ConfigStore
	metrics *control.MetricsRegistry
	debug   *control.DebugProbes
}

// NewControlAdapter wires fresh control-plane primitives.
func NewControlAdapter() *ControlAdapter {
	return &ControlAdapter{
		config:  control.NewConfigStore(),
		metrics: control.NewMetricsRegistry(),
		debug:   control.NewDebugProbes(),
	}
}

var _ api.Control = (*ControlAdapter)(nil)

func (c *ControlAdapter) GetConfig() map[string]any {
	return c.config.GetSnapshot()
}

func (c *ControlAdapter) SetConfig(cfg map[string]any) error {
	c.config.SetConfig(cfg)
	return nil
}

// Stats merges metric counters with the output of all debug probes.
func (c *ControlAdapter) Stats() map[string]any {
	stats := c.metrics.GetSnapshot()
	debugStats := c.debug.DumpState()
	combined := make(map[string]any, len(stats)+len(debugStats))
	for k, v := range stats {
		combined[k] = v
	}
	for k, v := range debugStats {
		combined["debug."+k] = v
	}
	return combined
}

func (c *ControlAdapter) OnReload(fn func()) {
	c.config.OnReload(fn)
}

func (c *ControlAdapter) RegisterDebugProbe(name string, fn func() any) {
	c.debug.RegisterProbe(name, fn)
}

// SetMetric sets a gauge-style metric.
func (c *ControlAdapter) SetMetric(key string, value any) {
	c.metrics.Set(key, value)
}

// AddMetric bumps an int64 counter metric.
func (c *ControlAdapter) AddMetric(key string, delta int64) {
	c.metrics.Add(key, delta)
}

// Counter reads an int64 counter metric.
func (c *ControlAdapter) Counter(key string) int64 {
	return c.metrics.Counter(key)
}
