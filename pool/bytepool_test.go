package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBytePoolFixedSize(t *testing.T) {
	bp := NewBytePool(1024)
	assert.Equal(t, 1024, bp.Size())

	buf := bp.GetBuffer()
	assert.Len(t, buf, 1024)
	bp.PutBuffer(buf)

	again := bp.GetBuffer()
	assert.Len(t, again, 1024)
}

func TestBytePoolDropsForeignBuffers(t *testing.T) {
	bp := NewBytePool(1024)
	// Undersized buffers must not poison the pool.
	bp.PutBuffer(make([]byte, 16))

	buf := bp.GetBuffer()
	assert.Len(t, buf, 1024)
}

func TestBytePoolReslicesOversized(t *testing.T) {
	bp := NewBytePool(64)
	bp.PutBuffer(make([]byte, 128))

	buf := bp.GetBuffer()
	assert.Len(t, buf, 64)
}
