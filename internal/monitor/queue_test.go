package monitor

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateQueueSerializesBurst(t *testing.T) {
	q := NewUpdateQueue(zerolog.Nop())

	var (
		mu       sync.Mutex
		order    []int
		running  int32
		overlaps int32
		wg       sync.WaitGroup
	)

	for i := 0; i < 10; i++ {
		i := i
		wg.Add(1)
		q.Enqueue(Task{ID: fmt.Sprintf("task-%d", i), Run: func() {
			defer wg.Done()
			// Re-entrancy guard: a second concurrently-running task would
			// trip this swap.
			if !atomic.CompareAndSwapInt32(&running, 0, 1) {
				atomic.AddInt32(&overlaps, 1)
				return
			}
			time.Sleep(time.Millisecond)
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			atomic.StoreInt32(&running, 0)
		}})
	}
	wg.Wait()

	require.Zero(t, atomic.LoadInt32(&overlaps), "two tasks ran concurrently")
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, order, "tasks must run in enqueue order")
}

func TestUpdateQueueResumesAfterDraining(t *testing.T) {
	q := NewUpdateQueue(zerolog.Nop())

	first := make(chan struct{})
	q.Enqueue(Task{ID: "first", Run: func() { close(first) }})
	select {
	case <-first:
	case <-time.After(time.Second):
		t.Fatal("first task never ran")
	}

	// The drain goroutine has stopped by now (or will shortly); a fresh
	// enqueue must start a new one.
	second := make(chan struct{})
	q.Enqueue(Task{ID: "second", Run: func() { close(second) }})
	select {
	case <-second:
	case <-time.After(time.Second):
		t.Fatal("queue did not resume after draining")
	}
}

func TestUpdateQueueSwallowsNothing(t *testing.T) {
	q := NewUpdateQueue(zerolog.Nop())

	var ran int32
	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		q.Enqueue(Task{ID: fmt.Sprintf("t%d", i), Run: func() {
			defer wg.Done()
			atomic.AddInt32(&ran, 1)
		}})
	}
	wg.Wait()
	assert.Equal(t, int32(3), atomic.LoadInt32(&ran), "every enqueued task must run exactly once")
}
