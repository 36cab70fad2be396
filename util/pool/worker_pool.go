package pool

import (
	"context"
	"sync"
)

// Task is a unit of work that produces a result of type T.
type Task[T any] func(ctx context.Context) T

// workerPool runs tasks on a fixed number of goroutines.
type workerPool[T any] struct {
	maxWorkers int
	taskQueue  chan indexedTask[T]
	results    chan indexedResult[T]
	wg         sync.WaitGroup
	ctx        context.Context
	cancel     context.CancelFunc
}

type indexedTask[T any] struct {
	index int
	task  Task[T]
}

type indexedResult[T any] struct {
	index int
	value T
}

// newWorkerPool starts maxWorkers goroutines bound to ctx.
func newWorkerPool[T any](ctx context.Context, maxWorkers int) *workerPool[T] {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	ctx, cancel := context.WithCancel(ctx)

	p := &workerPool[T]{
		maxWorkers: maxWorkers,
		taskQueue:  make(chan indexedTask[T], maxWorkers*2),
		results:    make(chan indexedResult[T], maxWorkers*2),
		ctx:        ctx,
		cancel:     cancel,
	}
	p.startWorkers()
	return p
}

func (p *workerPool[T]) startWorkers() {
	for i := 0; i < p.maxWorkers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for item := range p.taskQueue {
				p.results <- indexedResult[T]{index: item.index, value: item.task(p.ctx)}
			}
		}()
	}
}

// shutdown cancels the pool context and waits for the workers to exit.
func (p *workerPool[T]) shutdown() {
	p.cancel()
	p.wg.Wait()
}

// ExecuteBatch runs tasks with at most maxWorkers in flight and returns their
// results in task order. Tasks receive ctx and are expected to honour it.
func ExecuteBatch[T any](ctx context.Context, tasks []Task[T], maxWorkers int) []T {
	results := make([]T, len(tasks))
	if len(tasks) == 0 {
		return results
	}
	if maxWorkers <= 0 || maxWorkers > len(tasks) {
		maxWorkers = len(tasks)
	}

	p := newWorkerPool[T](ctx, maxWorkers)
	defer p.shutdown()

	go func() {
		for i, task := range tasks {
			p.taskQueue <- indexedTask[T]{index: i, task: task}
		}
		close(p.taskQueue)
	}()

	for range tasks {
		r := <-p.results
		results[r.index] = r.value
	}
	return results
}
