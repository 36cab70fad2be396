package pool

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExecuteBatchPreservesOrder(t *testing.T) {
	tasks := []Task[int]{
		func(context.Context) int { time.Sleep(30 * time.Millisecond); return 1 },
		func(context.Context) int { return 2 },
		func(context.Context) int { time.Sleep(10 * time.Millisecond); return 3 },
	}

	assert.Equal(t, []int{1, 2, 3}, ExecuteBatch(context.Background(), tasks, 3))
}

func TestExecuteBatchRunsConcurrently(t *testing.T) {
	var inFlight, peak int32
	task := func(context.Context) bool {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			old := atomic.LoadInt32(&peak)
			if n <= old || atomic.CompareAndSwapInt32(&peak, old, n) {
				break
			}
		}
		time.Sleep(40 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return true
	}

	results := ExecuteBatch(context.Background(), []Task[bool]{task, task}, 2)
	assert.Equal(t, []bool{true, true}, results)
	assert.Equal(t, int32(2), atomic.LoadInt32(&peak))
}

func TestExecuteBatchLimitsWorkers(t *testing.T) {
	var inFlight, peak int32
	task := func(context.Context) struct{} {
		n := atomic.AddInt32(&inFlight, 1)
		if n > atomic.LoadInt32(&peak) {
			atomic.StoreInt32(&peak, n)
		}
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return struct{}{}
	}

	tasks := make([]Task[struct{}], 6)
	for i := range tasks {
		tasks[i] = task
	}
	ExecuteBatch(context.Background(), tasks, 1)
	assert.Equal(t, int32(1), atomic.LoadInt32(&peak))
}

func TestExecuteBatchEmpty(t *testing.T) {
	assert.Empty(t, ExecuteBatch[int](context.Background(), nil, 4))
}
