package channel

import (
	"fmt"
	"iter"
	"sync"

	"github.com/jzx17/conduit/pkg/storage"
	"github.com/jzx17/conduit/pkg/types"
)

// Channel is a thread-safe FIFO exchange point between producers and
// consumers. It owns exactly one storage container and serializes all
// access to it under an internal lock.
//
// A channel is open until Close is called; the transition is one-way.
// Items buffered at the moment of closing remain retrievable via Get
// until drained.
type Channel[T any] struct {
	mu     sync.Mutex
	cond   *sync.Cond
	buf    storage.Interface[T]
	closed bool
}

// New creates a channel over a caller-selected storage container. The
// channel takes exclusive ownership of the container; the caller must not
// touch it afterwards.
func New[T any](buf storage.Interface[T]) (*Channel[T], error) {
	if buf == nil {
		return nil, fmt.Errorf("channel storage must be non-nil")
	}
	ch := &Channel[T]{buf: buf}
	ch.cond = sync.NewCond(&ch.mu)
	return ch, nil
}

// NewBounded creates a channel buffering at most capacity items, backed by
// a circular buffer. A full channel applies backpressure: Add blocks until
// a consumer frees a slot. Capacity must be positive.
func NewBounded[T any](capacity int) (*Channel[T], error) {
	buf, err := storage.NewRingBuffer[T](capacity)
	if err != nil {
		return nil, err
	}
	return New[T](buf)
}

// NewUnbounded creates a channel without a capacity limit, backed by a
// linked list. Add never blocks on space.
func NewUnbounded[T any]() *Channel[T] {
	ch, _ := New[T](storage.NewLinkedList[T]())
	return ch
}

// full reports whether the buffer is at capacity. Callers hold mu.
func (c *Channel[T]) full() bool {
	capacity := c.buf.Cap()
	return capacity != storage.Unbounded && c.buf.Len() == capacity
}

// Add appends an item at the tail, blocking while the channel is full.
// It returns types.ErrChannelClosed, without storing the item, when the
// channel is closed before space becomes available.
func (c *Channel[T]) Add(item T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for !c.closed && c.full() {
		c.cond.Wait()
	}
	if c.closed {
		return types.ErrChannelClosed
	}

	c.buf.PushBack(item)
	c.cond.Broadcast()
	return nil
}

// Get removes and returns the oldest item, blocking while the channel is
// open and empty. It returns ok=false once the channel is closed and
// drained; after that every call returns immediately.
func (c *Channel[T]) Get() (item T, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for !c.closed && c.buf.Len() == 0 {
		c.cond.Wait()
	}
	if c.buf.Len() == 0 {
		var zero T
		return zero, false
	}

	item = c.buf.PopFront()
	c.cond.Broadcast()
	return item, true
}

// TryGet attempts to remove the oldest item without blocking. It returns
// ok=false when the lock is contended or the channel is empty. It never
// waits, so a false result does not mean the channel is drained.
func (c *Channel[T]) TryGet() (item T, ok bool) {
	var zero T
	if !c.mu.TryLock() {
		return zero, false
	}
	defer c.mu.Unlock()

	if c.buf.Len() == 0 {
		return zero, false
	}

	item = c.buf.PopFront()
	c.cond.Broadcast()
	return item, true
}

// Close transitions the channel to closed and wakes every blocked producer
// and consumer. Buffered items are kept for draining. Close is idempotent;
// the transition is one-way.
func (c *Channel[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.cond.Broadcast()
}

// Readable reports whether a future Get could still produce a value: the
// channel is open, or closed with items left to drain.
func (c *Channel[T]) Readable() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.closed || c.buf.Len() > 0
}

// Len returns the current number of buffered items
func (c *Channel[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.Len()
}

// Cap returns the buffer capacity, or storage.Unbounded
func (c *Channel[T]) Cap() int {
	return c.buf.Cap()
}

// All returns a lazy pull iterator over the channel, yielding items in
// delivery order by repeatedly calling Get. The sequence ends when the
// channel is closed and drained. It is safe to abandon mid-iteration, and
// several consumers may iterate the same channel concurrently, but an
// exhausted sequence is not restartable.
func (c *Channel[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			item, ok := c.Get()
			if !ok {
				return
			}
			if !yield(item) {
				return
			}
		}
	}
}
