// Package storage provides ordered FIFO containers used as channel buffers.
//
// Containers are not safe for concurrent use. A container is owned
// exclusively by the channel built on top of it and is only accessed
// under that channel's lock.
package storage

// Unbounded is the capacity reported by containers without a size limit.
const Unbounded = -1

// Interface is an ordered container holding elements of type T.
//
// Callers must respect capacity: PushBack may only be called when
// Len() < Cap() (or Cap() is Unbounded), and PopFront only when Len() > 0.
// Implementations fail fast on misuse rather than corrupt state.
type Interface[T any] interface {
	// PushBack appends an item at the tail
	PushBack(item T)

	// PopFront removes and returns the item at the head
	PopFront() T

	// Len returns the current number of items
	Len() int

	// Cap returns the maximum number of items, or Unbounded
	Cap() int
}
