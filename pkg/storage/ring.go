package storage

import "fmt"

// RingBuffer is a fixed-capacity circular FIFO buffer.
type RingBuffer[T any] struct {
	buf  []T
	head int
	n    int
}

// NewRingBuffer creates a ring buffer holding at most capacity items.
// Capacity must be positive.
func NewRingBuffer[T any](capacity int) (*RingBuffer[T], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("ring buffer capacity must be positive, got %d", capacity)
	}
	return &RingBuffer[T]{buf: make([]T, capacity)}, nil
}

// PushBack appends an item at the tail. Panics when the buffer is full.
func (r *RingBuffer[T]) PushBack(item T) {
	if r.n == len(r.buf) {
		panic("storage: push on full ring buffer")
	}
	r.buf[(r.head+r.n)%len(r.buf)] = item
	r.n++
}

// PopFront removes and returns the head item. Panics when the buffer is
// empty.
func (r *RingBuffer[T]) PopFront() T {
	if r.n == 0 {
		panic("storage: pop on empty ring buffer")
	}
	var zero T
	item := r.buf[r.head]
	r.buf[r.head] = zero
	r.head = (r.head + 1) % len(r.buf)
	r.n--
	return item
}

// Len returns the current number of buffered items
func (r *RingBuffer[T]) Len() int {
	return r.n
}

// Cap returns the fixed buffer capacity
func (r *RingBuffer[T]) Cap() int {
	return len(r.buf)
}
