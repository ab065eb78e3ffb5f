package pool

// Future is the submitter's handle to the result of a task running on a
// Pool. It is fulfilled exactly once, by the worker that executes the task.
//
// A future whose task is still queued when the pool stops is never
// fulfilled; see Pool.Stop.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// resolve publishes the outcome. Called exactly once, by a worker.
func (f *Future[T]) resolve(val T, err error) {
	f.val = val
	f.err = err
	close(f.done)
}

// Wait blocks until the task has run and returns its result. Any error the
// task returned, or a *types.PanicError if it panicked, is returned as err.
// Wait may be called any number of times, from any goroutine.
func (f *Future[T]) Wait() (T, error) {
	<-f.done
	return f.val, f.err
}

// Done returns a channel closed when the result is available, for
// select-based composition. After Done is closed, Wait returns without
// blocking.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}
