/*
Package pool provides a fixed-size worker pool that maps each submitted
task to a future result.

# Overview

A Pool owns N worker goroutines (fixed at construction) and one task
channel. Workers start immediately and loop on the channel until it is
closed and drained. Each submitted function is paired with a Future the
submitter can wait on:

	p, err := pool.New[int](&pool.Config{Workers: 4, QueueSize: 8})
	if err != nil {
		log.Fatal(err)
	}
	defer p.Stop()

	fut, err := p.Add(func() (int, error) { return compute(), nil })
	if err != nil {
		log.Fatal(err)
	}
	v, err := fut.Wait()

# Backpressure

The task queue is bounded by default (capacity 1). When it is full, Add
blocks the submitter until a worker frees a slot; this throttles producers
to worker pace. Config.Unbounded removes the limit.

# Failure isolation

A task that returns an error or panics never terminates its worker. Errors
are delivered through the future; panics are captured as *types.PanicError
with the recovered value and stack.

# Shutdown

Stop closes the task channel, unblocks all waiters and joins every worker
before returning. It is idempotent. Tasks still queued when Stop closes the
channel are never executed and their futures are never fulfilled — an
explicit non-guarantee, not a bug. Callers needing every submitted task to
run must drain before stopping.
*/
package pool
