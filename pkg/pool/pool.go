package pool

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jzx17/conduit/pkg/channel"
	"github.com/jzx17/conduit/pkg/types"
)

// Config defines configuration for a Pool
type Config struct {
	// Workers is the number of worker goroutines. Zero selects the host's
	// reported hardware concurrency (runtime.NumCPU).
	Workers int

	// QueueSize is the task queue capacity. Zero selects 1. Ignored when
	// Unbounded is set.
	QueueSize int

	// Unbounded selects an unbounded task queue; Add never blocks on space.
	Unbounded bool

	// Clock for time operations (optional, defaults to real clock)
	Clock types.Clock
}

// DefaultConfig returns the default configuration: one worker per CPU and
// a single-slot task queue.
func DefaultConfig() *Config {
	return &Config{
		Workers:   runtime.NumCPU(),
		QueueSize: 1,
		Clock:     types.NewRealClock(),
	}
}

// task pairs a submitted function with the future handed back to the
// submitter.
type task[T any] struct {
	fn  func() (T, error)
	fut *Future[T]
}

// Pool executes submitted tasks on a fixed set of worker goroutines fed
// from a task channel. A bounded queue applies backpressure to submitters
// when full.
type Pool[T any] struct {
	workers int
	tasks   *channel.Channel[task[T]]

	wg       sync.WaitGroup
	stopOnce sync.Once
	running  atomic.Bool

	clock   types.Clock
	started time.Time

	executed atomic.Int64
	failed   atomic.Int64
}

// Stats is a point-in-time snapshot of pool activity
type Stats struct {
	Workers  int           // worker count, fixed at construction
	QueueLen int           // tasks waiting in the queue
	QueueCap int           // queue capacity, or storage.Unbounded
	Executed int64         // tasks completed without error
	Failed   int64         // tasks that returned an error or panicked
	Uptime   time.Duration // time since construction
}

// New creates a pool and starts its workers immediately. A nil config
// selects DefaultConfig.
func New[T any](cfg *Config) (*Pool[T], error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	if workers < 0 {
		return nil, fmt.Errorf("pool workers must be positive, got %d", cfg.Workers)
	}

	clock := cfg.Clock
	if clock == nil {
		clock = types.NewRealClock()
	}

	var tasks *channel.Channel[task[T]]
	if cfg.Unbounded {
		tasks = channel.NewUnbounded[task[T]]()
	} else {
		queueSize := cfg.QueueSize
		if queueSize == 0 {
			queueSize = 1
		}
		var err error
		tasks, err = channel.NewBounded[task[T]](queueSize)
		if err != nil {
			return nil, fmt.Errorf("pool queue: %w", err)
		}
	}

	p := &Pool[T]{
		workers: workers,
		tasks:   tasks,
		clock:   clock,
		started: clock.Now(),
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.run()
	}
	return p, nil
}

// run is the worker loop: pull tasks until the channel reports
// end-of-stream, then exit.
func (p *Pool[T]) run() {
	defer p.wg.Done()

	for {
		t, ok := p.tasks.Get()
		if !ok {
			return
		}

		val, err := p.execute(t.fn)
		if err != nil {
			p.failed.Add(1)
		} else {
			p.executed.Add(1)
		}
		t.fut.resolve(val, err)
	}
}

// execute runs a task with panic recovery. A panicking task must never
// take its worker down; the panic is captured into the returned error.
func (p *Pool[T]) execute(fn func() (T, error)) (val T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var buf [4096]byte
			n := runtime.Stack(buf[:], false)
			err = types.NewPanicError(r, buf[:n])
		}
	}()
	return fn()
}

// Add wraps fn into a task, submits it to the queue and returns the future
// for its result. Add blocks while a bounded queue is full.
//
// A returned future is fulfilled exactly once, unless the pool is stopped
// before the task is dequeued, in which case it is never fulfilled. Add
// racing with Stop either succeeds or returns types.ErrPoolStopped; callers
// must not assume a successful Add implies execution once Stop has begun.
func (p *Pool[T]) Add(fn func() (T, error)) (*Future[T], error) {
	if fn == nil {
		return nil, fmt.Errorf("task function must be non-nil")
	}

	t := task[T]{fn: fn, fut: newFuture[T]()}
	if err := p.tasks.Add(t); err != nil {
		return nil, types.ErrPoolStopped
	}
	return t.fut, nil
}

// Stop closes the task queue, unblocking any worker waiting on Get and any
// submitter blocked in Add, then joins all workers. It returns once every
// worker has exited. Stop is idempotent; concurrent callers all block
// until the first call completes.
//
// Tasks still queued at close time are never executed and their futures
// are never fulfilled.
func (p *Pool[T]) Stop() {
	p.stopOnce.Do(func() {
		p.running.Store(false)
		p.tasks.Close()
		p.wg.Wait()
	})
}

// Running reports whether the pool is accepting tasks
func (p *Pool[T]) Running() bool {
	return p.running.Load()
}

// NumThreads returns the worker count, fixed for the pool's lifetime
func (p *Pool[T]) NumThreads() int {
	return p.workers
}

// Stats returns a snapshot of pool activity
func (p *Pool[T]) Stats() Stats {
	return Stats{
		Workers:  p.workers,
		QueueLen: p.tasks.Len(),
		QueueCap: p.tasks.Cap(),
		Executed: p.executed.Load(),
		Failed:   p.failed.Load(),
		Uptime:   p.clock.Since(p.started),
	}
}
