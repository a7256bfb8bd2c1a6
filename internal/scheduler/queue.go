// FILE: internal/scheduler/queue.go
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"chessclick/internal/engine"
)

// EngineTask contains an engine search request and its response channel
type EngineTask struct {
	Ctx        context.Context
	Request    engine.Request
	Generation uint64
	Ply        int
	Response   chan<- EngineResult // Buffered, the worker never blocks on it
}

// EngineResult contains the outcome of an engine search
type EngineResult struct {
	Search     *engine.SearchResult
	Generation uint64
	Ply        int
	Error      error
}

// EngineQueue runs engine searches off the interaction loop
type EngineQueue struct {
	eng     Engine
	tasks   chan EngineTask
	workers int
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewEngineQueue creates a queue with the given worker count
func NewEngineQueue(eng Engine, workerCount int) *EngineQueue {
	if workerCount < 1 {
		workerCount = 1
	}

	ctx, cancel := context.WithCancel(context.Background())

	q := &EngineQueue{
		eng:     eng,
		tasks:   make(chan EngineTask, 4),
		workers: workerCount,
		ctx:     ctx,
		cancel:  cancel,
	}

	q.start()
	return q
}

func (q *EngineQueue) start() {
	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker(i)
	}
}

func (q *EngineQueue) worker(id int) {
	defer q.wg.Done()

	for {
		select {
		case task, ok := <-q.tasks:
			if !ok {
				return
			}
			task.Response <- q.processTask(task)

		case <-q.ctx.Done():
			return
		}
	}
}

func (q *EngineQueue) processTask(task EngineTask) EngineResult {
	result := EngineResult{
		Generation: task.Generation,
		Ply:        task.Ply,
	}

	// Cancelled while queued
	if err := task.Ctx.Err(); err != nil {
		result.Error = err
		return result
	}

	started := time.Now()
	search, err := q.eng.Search(task.Ctx, task.Request)
	if err != nil {
		result.Error = err
		return result
	}
	log.Printf("engine: bestmove %s depth=%d score=%d in %v",
		search.BestMove, search.Depth, search.Score, time.Since(started).Round(time.Millisecond))
	result.Search = search
	return result
}

// Submit adds a task to the queue
func (q *EngineQueue) Submit(task EngineTask) error {
	select {
	case q.tasks <- task:
		return nil
	case <-q.ctx.Done():
		return fmt.Errorf("queue is shutting down")
	default:
		return fmt.Errorf("queue is full")
	}
}

// Shutdown stops the workers, waiting at most timeout
func (q *EngineQueue) Shutdown(timeout time.Duration) error {
	q.cancel()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("shutdown timeout exceeded")
	}
}
