package control

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigStoreSnapshotIsolation(t *testing.T) {
	cs := NewConfigStore()
	cs.SetConfig(map[string]any{"port": 9000})

	snap := cs.GetSnapshot()
	assert.Equal(t, 9000, snap["port"])

	// Mutating the snapshot must not leak back into the store.
	snap["port"] = 1
	assert.Equal(t, 9000, cs.GetSnapshot()["port"])
}

func TestConfigStoreReloadListeners(t *testing.T) {
	cs := NewConfigStore()
	calls := 0
	cs.OnReload(func() { calls++ })

	cs.SetConfig(map[string]any{"a": 1})
	cs.SetConfig(map[string]any{"b": 2})
	assert.Equal(t, 2, calls)
}

func TestMetricsRegistryCounters(t *testing.T) {
	mr := NewMetricsRegistry()
	mr.Add("bytes.in", 100)
	mr.Add("bytes.in", 28)
	mr.Set("conns.active", int64(3))

	assert.Equal(t, int64(128), mr.Counter("bytes.in"))
	assert.Equal(t, int64(0), mr.Counter("missing"))

	snap := mr.GetSnapshot()
	assert.Equal(t, int64(128), snap["bytes.in"])
	assert.Equal(t, int64(3), snap["conns.active"])
}

func TestDebugProbes(t *testing.T) {
	dp := NewDebugProbes()
	dp.RegisterProbe("fds", func() any { return []int{4, 7} })

	out := dp.DumpState()
	assert.Equal(t, []int{4, 7}, out["fds"])
}
