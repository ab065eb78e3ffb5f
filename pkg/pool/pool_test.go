package pool

import (
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jzx17/conduit/internal/testutils"
	"github.com/jzx17/conduit/pkg/storage"
	"github.com/jzx17/conduit/pkg/types"
)

const waitTimeout = 2 * time.Second

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		config      *Config
		expectError bool
		workers     int
	}{
		{
			name:        "nil config should use default",
			config:      nil,
			expectError: false,
			workers:     runtime.NumCPU(),
		},
		{
			name:        "valid config",
			config:      &Config{Workers: 3, QueueSize: 5},
			expectError: false,
			workers:     3,
		},
		{
			name:        "zero workers should use hardware concurrency",
			config:      &Config{QueueSize: 5},
			expectError: false,
			workers:     runtime.NumCPU(),
		},
		{
			name:        "negative workers should error",
			config:      &Config{Workers: -1, QueueSize: 5},
			expectError: true,
		},
		{
			name:        "negative queue size should error",
			config:      &Config{Workers: 2, QueueSize: -1},
			expectError: true,
		},
		{
			name:        "unbounded queue ignores queue size",
			config:      &Config{Workers: 2, Unbounded: true},
			expectError: false,
			workers:     2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New[int](tt.config)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, p)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, p)
			defer p.Stop()

			assert.Equal(t, tt.workers, p.NumThreads())
			assert.True(t, p.Running())
		})
	}
}

// Two workers, single-slot queue, five squaring tasks: every future
// resolves, each task runs exactly once.
func TestPool_SquaresResolveExactlyOnce(t *testing.T) {
	p, err := New[int](&Config{Workers: 2, QueueSize: 1})
	require.NoError(t, err)
	defer p.Stop()

	var executions atomic.Int64
	futures := make([]*Future[int], 0, 5)
	for i := 1; i <= 5; i++ {
		i := i
		fut, err := p.Add(func() (int, error) {
			executions.Add(1)
			return i * i, nil
		})
		require.NoError(t, err)
		futures = append(futures, fut)
	}

	results := make([]int, 0, 5)
	for _, fut := range futures {
		v, err := fut.Wait()
		require.NoError(t, err)
		results = append(results, v)
	}

	sort.Ints(results)
	assert.Equal(t, []int{1, 4, 9, 16, 25}, results)
	assert.Equal(t, int64(5), executions.Load())
}

func TestPool_TaskErrorSurfacesViaFuture(t *testing.T) {
	p, err := New[string](&Config{Workers: 1, QueueSize: 2})
	require.NoError(t, err)
	defer p.Stop()

	wantErr := errors.New("boom")
	fut, err := p.Add(func() (string, error) {
		return "", wantErr
	})
	require.NoError(t, err)

	v, err := fut.Wait()
	assert.ErrorIs(t, err, wantErr)
	assert.Zero(t, v)

	// the worker survived the failure
	fut, err = p.Add(func() (string, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	v, err = fut.Wait()
	assert.NoError(t, err)
	assert.Equal(t, "ok", v)
}

func TestPool_TaskPanicIsCaptured(t *testing.T) {
	p, err := New[int](&Config{Workers: 1, QueueSize: 2})
	require.NoError(t, err)
	defer p.Stop()

	fut, err := p.Add(func() (int, error) {
		panic("kaboom")
	})
	require.NoError(t, err)

	_, err = fut.Wait()
	var panicErr *types.PanicError
	require.ErrorAs(t, err, &panicErr)
	assert.Equal(t, "kaboom", panicErr.Value)
	assert.NotEmpty(t, panicErr.Stack)

	// the worker survived the panic
	fut, err = p.Add(func() (int, error) {
		return 7, nil
	})
	require.NoError(t, err)
	v, err := fut.Wait()
	assert.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestPool_PanicWithErrorValueUnwraps(t *testing.T) {
	p, err := New[int](&Config{Workers: 1, QueueSize: 1})
	require.NoError(t, err)
	defer p.Stop()

	cause := errors.New("underlying")
	fut, err := p.Add(func() (int, error) {
		panic(cause)
	})
	require.NoError(t, err)

	_, err = fut.Wait()
	assert.ErrorIs(t, err, cause)
}

func TestPool_AddNilTask(t *testing.T) {
	p, err := New[int](nil)
	require.NoError(t, err)
	defer p.Stop()

	fut, err := p.Add(nil)
	assert.Error(t, err)
	assert.Nil(t, fut)
}

func TestPool_StopIsIdempotent(t *testing.T) {
	p, err := New[int](&Config{Workers: 2, QueueSize: 1})
	require.NoError(t, err)

	fut, err := p.Add(func() (int, error) { return 1, nil })
	require.NoError(t, err)
	_, err = fut.Wait()
	require.NoError(t, err)

	p.Stop()
	p.Stop()
	assert.False(t, p.Running())

	// submissions after Stop are rejected by the closed queue
	fut, err = p.Add(func() (int, error) { return 2, nil })
	assert.ErrorIs(t, err, types.ErrPoolStopped)
	assert.Nil(t, fut)
}

func TestPool_StopJoinsAllWorkers(t *testing.T) {
	p, err := New[int](&Config{Workers: 4, QueueSize: 4})
	require.NoError(t, err)

	gate := make(chan struct{})
	var started sync.WaitGroup
	for i := 0; i < 4; i++ {
		started.Add(1)
		_, err := p.Add(func() (int, error) {
			started.Done()
			<-gate
			return 0, nil
		})
		require.NoError(t, err)
	}
	started.Wait()

	stopDone := make(chan struct{})
	go func() {
		p.Stop()
		close(stopDone)
	}()

	// Stop must wait for in-flight tasks to finish
	select {
	case <-stopDone:
		t.Fatal("Stop should block while workers are busy")
	case <-time.After(50 * time.Millisecond):
	}

	close(gate)

	select {
	case <-stopDone:
	case <-time.After(waitTimeout):
		t.Fatal("Stop should return once all workers exit")
	}
}

// With one worker parked on a task and a single-slot queue, a third Add
// blocks until the worker dequeues the buffered task.
func TestPool_BoundedQueueAppliesBackpressure(t *testing.T) {
	p, err := New[int](&Config{Workers: 1, QueueSize: 1})
	require.NoError(t, err)
	defer p.Stop()

	gate := make(chan struct{})
	running := make(chan struct{})

	_, err = p.Add(func() (int, error) {
		close(running)
		<-gate
		return 0, nil
	})
	require.NoError(t, err)
	<-running

	// fills the single queue slot
	_, err = p.Add(func() (int, error) { return 0, nil })
	require.NoError(t, err)

	thirdDone := make(chan struct{})
	go func() {
		_, err := p.Add(func() (int, error) { return 0, nil })
		assert.NoError(t, err)
		close(thirdDone)
	}()

	select {
	case <-thirdDone:
		t.Fatal("Add should block while the queue is full")
	case <-time.After(50 * time.Millisecond):
	}

	close(gate)

	select {
	case <-thirdDone:
	case <-time.After(waitTimeout):
		t.Fatal("Add should unblock once a queue slot frees up")
	}
}

func TestPool_UnboundedQueueNeverBlocksAdd(t *testing.T) {
	p, err := New[int](&Config{Workers: 1, Unbounded: true})
	require.NoError(t, err)

	gate := make(chan struct{})
	running := make(chan struct{})
	_, err = p.Add(func() (int, error) {
		close(running)
		<-gate
		return 0, nil
	})
	require.NoError(t, err)
	<-running

	futures := make([]*Future[int], 0, 100)
	for i := 0; i < 100; i++ {
		i := i
		fut, err := p.Add(func() (int, error) { return i, nil })
		require.NoError(t, err)
		futures = append(futures, fut)
	}

	close(gate)
	for i, fut := range futures {
		v, err := fut.Wait()
		require.NoError(t, err)
		assert.Equal(t, i, v)
	}
	p.Stop()
}

func TestPool_ConcurrentSubmitters(t *testing.T) {
	p, err := New[int](&Config{Workers: 4, QueueSize: 2})
	require.NoError(t, err)
	defer p.Stop()

	const tasks = 200
	var mu sync.Mutex
	results := make(map[int]bool, tasks)

	var wg sync.WaitGroup
	for i := 0; i < tasks; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			fut, err := p.Add(func() (int, error) { return i, nil })
			if !assert.NoError(t, err) {
				return
			}
			v, err := fut.Wait()
			assert.NoError(t, err)
			mu.Lock()
			results[v] = true
			mu.Unlock()
		}(i)
	}
	wg.Wait()

	assert.Len(t, results, tasks)
}

func TestPool_Stats(t *testing.T) {
	mock := testutils.NewMockClock(t)
	clock := testutils.NewClockWrapper(mock)

	p, err := New[int](&Config{Workers: 2, QueueSize: 3, Clock: clock})
	require.NoError(t, err)
	defer p.Stop()

	stats := p.Stats()
	assert.Equal(t, 2, stats.Workers)
	assert.Equal(t, 3, stats.QueueCap)
	assert.Equal(t, int64(0), stats.Executed)
	assert.Equal(t, int64(0), stats.Failed)
	assert.Equal(t, time.Duration(0), stats.Uptime)

	okFut, err := p.Add(func() (int, error) { return 1, nil })
	require.NoError(t, err)
	failFut, err := p.Add(func() (int, error) { return 0, fmt.Errorf("nope") })
	require.NoError(t, err)

	_, _ = okFut.Wait()
	_, _ = failFut.Wait()

	mock.Advance(time.Minute)

	stats = p.Stats()
	assert.Equal(t, int64(1), stats.Executed)
	assert.Equal(t, int64(1), stats.Failed)
	assert.Equal(t, time.Minute, stats.Uptime)
}

func TestPool_UnboundedStatsQueueCap(t *testing.T) {
	p, err := New[int](&Config{Workers: 1, Unbounded: true})
	require.NoError(t, err)
	defer p.Stop()

	assert.Equal(t, storage.Unbounded, p.Stats().QueueCap)
}
