// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Runtime metrics collector for system-level monitoring.
// Exposes counters in a thread-safe map with dynamic registration.

package control

import (
	"sync"
	"time"
)

// MetricsRegistry holds mutable and read-only metrics.
type MetricsRegistry struct {
	mu      sync.RWMutex
	metrics map[string]any
	updated time.Time
}

// NewMetricsRegistry creates an empty registry.
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		metrics: make(map[string]any),
	}
}

// Set sets or updates a metric key.
func (mr *MetricsRegistry) Set(key string, value any) {
	mr.mu.Lock()
	mr.metrics[key] = value
	mr.updated = time.Now()
	mr.mu.Unlock()
}

// Add increments an int64 counter metric by delta, creating it at delta
// if absent.
func (mr *MetricsRegistry) Add(key string, delta int64) {
	mr.mu.Lock()
	v, _ := mr.metrics[key].(int64)
	mr.metrics[key] = v + delta
	mr.updated = time.Now()
	mr.mu.Unlock()
}

// Counter returns the current value of an int64 counter metric.
func (mr *MetricsRegistry) Counter(key string) int64 {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	v, _ := mr.metrics[key].(int64)
	return v
}

// GetSnapshot returns the latest metrics.
func (mr *MetricsRegistry) GetSnapshot() map[string]any {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	out := make(map[string]any, len(mr.metrics))
	for k, v := range mr.metrics {
		out[k] = v
	}
	return out
}
