// File: pool/bytepool.go
// Author: momentics <momentics@gmail.com>

// Package pool provides reusable fixed-size byte buffers for the read
// path of the event loop, so steady-state echo traffic allocates nothing.
package pool

import "sync"

// BytePool hands out buffers of one fixed size backed by sync.Pool.
type BytePool struct {
	size int
	p    sync.Pool
}

// NewBytePool creates a pool of buffers of exactly size bytes.
func NewBytePool(size int) *BytePool {
	bp := &BytePool{size: size}
	bp.p.New = func() any {
		return make([]byte, size)
	}
	return bp
}

// GetBuffer returns a buffer of the pool's fixed size.
func (b *BytePool) GetBuffer() []byte {
	return b.p.Get().([]byte)
}

// PutBuffer returns a buffer to the pool. Buffers with foreign capacity
// are dropped, the GC handles them.
func (b *BytePool) PutBuffer(buf []byte) {
	if cap(buf) < b.size {
		return
	}
	b.p.Put(buf[:b.size])
}

// Size returns the fixed buffer size.
func (b *BytePool) Size() int { return b.size }
