/*
Package channel provides a thread-safe, optionally bounded FIFO exchange
point with cooperative blocking and explicit closing.

A Channel synchronizes concurrent producers and consumers over a single
storage container selected at construction time: a fixed-capacity circular
buffer (NewBounded) or an unbounded linked list (NewUnbounded). Custom
containers implementing storage.Interface can be supplied via New.

# Blocking semantics

Add blocks while a bounded channel is full; this is the backpressure
mechanism throttling producers to consumer pace. Get blocks while the
channel is open and empty. TryGet is a non-blocking probe that never waits,
not even on the internal lock.

# Close and drain

Close is a one-way, idempotent transition. It wakes every blocked producer
and consumer. Items buffered at the moment of closing remain retrievable
via Get until drained; afterwards Get permanently reports end-of-stream
(ok=false) without blocking. Add on a closed channel returns
types.ErrChannelClosed and never stores the item.

# Ordering

A single consumer observes strict FIFO order. With multiple concurrent
consumers only the delivered multiset is guaranteed to equal the appended
multiset; the first available consumer wins each item.

# Iteration

All returns a lazy pull iterator terminating at end-of-stream:

	ch, _ := channel.NewBounded[int](8)
	go produce(ch)
	for v := range ch.All() {
		consume(v)
	}
*/
package channel
