package worker

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// Pool errors
var (
	ErrPoolNotRunning = errors.New("worker pool is not running")
	ErrQueueFull      = errors.New("worker pool queue is full")
)

// Task is a unit of background work
type Task func(ctx context.Context)

// Pool runs submitted tasks on a fixed set of workers. Submission never
// blocks: a full queue is reported to the caller instead.
type Pool struct {
	workers   int
	logger    *zap.Logger
	tasks     chan Task
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewPool creates a pool with the given worker count and queue size
func NewPool(workers, queueSize int, logger *zap.Logger) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	return &Pool{
		workers: workers,
		logger:  logger,
		tasks:   make(chan Task, queueSize),
	}
}

// Start starts the workers
func (p *Pool) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.isRunning {
		p.mu.Unlock()
		return nil
	}
	p.isRunning = true
	p.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(ctx, i)
	}

	p.logger.Info("Worker pool started", zap.Int("workers", p.workers))
	return nil
}

// Stop drains the workers, waiting up to the context deadline
func (p *Pool) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.isRunning {
		p.mu.Unlock()
		return nil
	}
	p.isRunning = false
	// closed under the same lock Submit sends under, so no submitter
	// can race the close
	close(p.tasks)
	p.mu.Unlock()

	if p.cancel != nil {
		p.cancel()
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("Worker pool stopped gracefully")
		return nil
	case <-ctx.Done():
		p.logger.Warn("Worker pool stop timed out")
		return ctx.Err()
	}
}

// Submit queues a task for execution. The send happens under the pool
// lock while the queue is known open; a concurrent Stop either sees the
// task or makes Submit fail, never a send on a closed channel.
func (p *Pool) Submit(task Task) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.isRunning {
		return ErrPoolNotRunning
	}

	select {
	case p.tasks <- task:
		return nil
	default:
		return ErrQueueFull
	}
}

// worker processes tasks from the queue
func (p *Pool) worker(ctx context.Context, workerID int) {
	defer p.wg.Done()

	for {
		select {
		case <-ctx.Done():
			p.logger.Debug("Worker stopping", zap.Int("worker_id", workerID))
			return
		case task, ok := <-p.tasks:
			if !ok {
				return
			}
			p.runTask(ctx, task, workerID)
		}
	}
}

// runTask executes one task, recovering from panics
func (p *Pool) runTask(ctx context.Context, task Task, workerID int) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("Worker task panicked",
				zap.Int("worker_id", workerID),
				zap.Any("panic", r))
		}
	}()
	task(ctx)
}
