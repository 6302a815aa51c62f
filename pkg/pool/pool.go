// Package pool provides object pooling to reduce allocation pressure on the
// request/response hot path.
package pool

import (
	"bytes"
	"sync"
)

// Pool is a generic object pool built on sync.Pool. The reset function, if
// provided, runs before an object is returned to the pool.
type Pool[T any] struct {
	pool  sync.Pool
	reset func(T)
}

// New creates a new pool with the given constructor and reset function.
func New[T any](newFn func() T, resetFn func(T)) *Pool[T] {
	return &Pool[T]{
		pool: sync.Pool{
			New: func() interface{} {
				return newFn()
			},
		},
		reset: resetFn,
	}
}

// Get retrieves an object from the pool.
func (p *Pool[T]) Get() T {
	return p.pool.Get().(T)
}

// Put returns an object to the pool after resetting it.
func (p *Pool[T]) Put(obj T) {
	if p.reset != nil {
		p.reset(obj)
	}
	p.pool.Put(obj)
}

// BufferPool pools bytes.Buffers for request encoding and response-body
// reads. Buffers that have grown past the configured cap are dropped for the
// garbage collector to reclaim instead of being retained indefinitely.
type BufferPool struct {
	pool   *Pool[*bytes.Buffer]
	maxCap int
}

// GlobalBufferPool is the shared buffer pool used by the JSON codec for
// request encoding and response-body buffering.
var GlobalBufferPool = NewBufferPool(4096, 1<<20)

// NewBufferPool creates a buffer pool whose buffers start at initialCap
// bytes. Buffers returned with a capacity above maxPooledCap are not pooled;
// API payloads rarely exceed it.
func NewBufferPool(initialCap, maxPooledCap int) *BufferPool {
	return &BufferPool{
		pool: New(
			func() *bytes.Buffer {
				return bytes.NewBuffer(make([]byte, 0, initialCap))
			},
			func(buf *bytes.Buffer) {
				buf.Reset()
			},
		),
		maxCap: maxPooledCap,
	}
}

// Get retrieves an empty buffer from the pool.
func (p *BufferPool) Get() *bytes.Buffer {
	return p.pool.Get()
}

// Put returns a buffer to the pool for reuse.
func (p *BufferPool) Put(buf *bytes.Buffer) {
	if buf.Cap() > p.maxCap {
		return
	}
	p.pool.Put(buf)
}
