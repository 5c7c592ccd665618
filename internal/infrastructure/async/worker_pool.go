package async

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const defaultTaskTimeout = 2 * time.Second

type Task func(ctx context.Context)

// WorkerPool runs tasks on a fixed number of goroutines. Submit never
// blocks: when the queue is full the task is dropped and logged.
type WorkerPool struct {
	tasks   chan Task
	wg      sync.WaitGroup
	ctx     context.Context
	timeout time.Duration
	log     *zap.Logger

	mu     sync.RWMutex
	closed bool
}

func NewWorkerPool(ctx context.Context, size, queue int, log *zap.Logger) *WorkerPool {
	if size < 1 {
		size = 1
	}
	if queue < 0 {
		queue = 0
	}

	p := &WorkerPool{
		tasks:   make(chan Task, queue),
		ctx:     ctx,
		timeout: defaultTaskTimeout,
		log:     log,
	}

	for i := 0; i < size; i++ {
		p.wg.Add(1)
		go p.worker()
	}

	return p
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()

	for task := range p.tasks {
		p.run(task)
	}
}

func (p *WorkerPool) run(task Task) {
	ctx, cancel := context.WithTimeout(p.ctx, p.timeout)
	defer cancel()
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("task panicked", zap.Any("panic", r))
		}
	}()
	task(ctx)
}

// Submit reports whether the task was queued.
func (p *WorkerPool) Submit(task Task) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return false
	}

	select {
	case p.tasks <- task:
		return true
	default:
		p.log.Warn("worker pool queue full, task dropped")
		return false
	}
}

// Shutdown stops accepting tasks, lets workers drain the queue and waits
// for them.
func (p *WorkerPool) Shutdown() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.tasks)
	}
	p.mu.Unlock()

	p.wg.Wait()
}
