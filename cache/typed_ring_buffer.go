// Package cache holds fixed size pools of reusable scratch values.
package cache

import (
	"bytes"
	"fmt"
	"math"
)

// TypedRingBuffer hands out a fixed set of values. Get blocks until one is
// returned when all of them are taken.
type TypedRingBuffer[T any] struct {
	buffers []T
	free    chan uint16

	reset func(*T)
}

// NewTypedRingBuffer allocates n values. reset, when set, runs on every
// value as it is handed back.
func NewTypedRingBuffer[T any](n int, reset func(*T)) *TypedRingBuffer[T] {
	if n <= 0 || n > math.MaxUint16+1 {
		panic(fmt.Sprintf("ring buffer size %d out of range", n))
	}

	buffers := make([]T, n)

	free := make(chan uint16, n)
	for i := 0; i < n; i++ {
		free <- uint16(i)
	}

	return &TypedRingBuffer[T]{
		buffers: buffers,
		free:    free,
		reset:   reset,
	}
}

func (p *TypedRingBuffer[T]) Get() (*T, uint16) {
	id := <-p.free
	return &p.buffers[id], id
}

func (p *TypedRingBuffer[T]) Return(id uint16) {
	if p.reset != nil {
		p.reset(&p.buffers[id])
	}
	p.free <- id
}

func (p *TypedRingBuffer[T]) Cap() int { return len(p.buffers) }

// Free is the number of values not handed out.
func (p *TypedRingBuffer[T]) Free() int { return len(p.free) }

// NewScratchBuffers is a ring of bytes.Buffers that come back empty.
func NewScratchBuffers(n int) *TypedRingBuffer[bytes.Buffer] {
	return NewTypedRingBuffer(n, func(b *bytes.Buffer) { b.Reset() })
}
