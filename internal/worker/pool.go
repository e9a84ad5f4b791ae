package worker

import (
	"context"
	"hash/fnv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/osse101/LootCrates_Go/internal/logger"
	"github.com/osse101/LootCrates_Go/internal/metrics"
)

// Job represents a task to be executed by a worker
type Job interface {
	Process(ctx context.Context) error
}

// JobFunc adapts a function into a Job
type JobFunc func(ctx context.Context) error

// Process implements Job
func (f JobFunc) Process(ctx context.Context) error { return f(ctx) }

// Write is a named durable write; Table labels failures and drops
type Write struct {
	Table string
	Fn    func(ctx context.Context) error
}

// Process implements Job
func (w Write) Process(ctx context.Context) error {
	if err := w.Fn(ctx); err != nil {
		metrics.DurableWriteFailures.WithLabelValues(w.Table).Inc()
		return err
	}
	return nil
}

// Pool represents a bounded worker pool.
// Jobs run fire-and-forget: failures are logged and never retried.
//
// Each worker owns its own queue. Writes submitted with the same key always land
// on the same queue, so they run one at a time in submission order.
type Pool struct {
	queues     []chan Job
	next       atomic.Uint64
	jobTimeout time.Duration
	wg         sync.WaitGroup

	mu      sync.RWMutex
	started bool
	closed  bool
}

// NewPool creates a new worker pool; queueSize is shared out evenly across the workers
func NewPool(workers int, queueSize int) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	perWorker := (queueSize + workers - 1) / workers
	queues := make([]chan Job, workers)
	for i := range queues {
		queues[i] = make(chan Job, perWorker)
	}
	return &Pool{
		queues:     queues,
		jobTimeout: DefaultJobTimeout,
	}
}

// Start starts the workers
func (p *Pool) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started || p.closed {
		return
	}
	p.started = true
	for _, q := range p.queues {
		p.wg.Add(1)
		go p.worker(q)
	}
}

// worker drains its queue until it is closed
func (p *Pool) worker(queue chan Job) {
	defer p.wg.Done()
	for job := range queue {
		metrics.WriteQueueDepth.Set(float64(p.Pending()))
		p.run(job)
	}
}

func (p *Pool) run(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), p.jobTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			logger.FromContext(ctx).Error(LogMsgWorkerJobPanicked, LogFieldPanic, r)
		}
	}()

	if err := job.Process(ctx); err != nil {
		attrs := []any{LogFieldError, err}
		if w, ok := job.(Write); ok {
			attrs = append(attrs, LogFieldTable, w.Table)
		}
		logger.FromContext(ctx).Error(LogMsgWorkerJobFailed, attrs...)
	}
}

// queueFor picks the shard of a key; unkeyed jobs are spread round-robin
func (p *Pool) queueFor(key string) chan Job {
	if key == "" {
		return p.queues[p.next.Add(1)%uint64(len(p.queues))]
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	return p.queues[h.Sum64()%uint64(len(p.queues))]
}

// Enqueue adds a job to the queue, blocking while the queue is full.
// It returns false once the pool is stopped.
func (p *Pool) Enqueue(job Job) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return false
	}
	p.queueFor("") <- job
	return true
}

// TryEnqueue adds a job without blocking; a full queue drops the job and logs it
func (p *Pool) TryEnqueue(job Job) bool {
	return p.tryEnqueue("", job)
}

func (p *Pool) tryEnqueue(key string, job Job) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return false
	}
	select {
	case p.queueFor(key) <- job:
		metrics.WriteQueueDepth.Set(float64(p.Pending()))
		return true
	default:
		table := ""
		if w, ok := job.(Write); ok {
			table = w.Table
		}
		metrics.WriteQueueDropped.WithLabelValues(table).Inc()
		logger.Warn(LogMsgWorkerQueueFull, LogFieldTable, table)
		return false
	}
}

// Submit schedules a durable write without blocking the caller.
// Writes sharing a key run in the order they were submitted.
func (p *Pool) Submit(table, key string, fn func(ctx context.Context) error) bool {
	return p.tryEnqueue(table+"/"+key, Write{Table: table, Fn: fn})
}

// Pending returns the number of queued jobs
func (p *Pool) Pending() int {
	n := 0
	for _, q := range p.queues {
		n += len(q)
	}
	return n
}

// Stop stops accepting jobs, drains what is queued and waits for the workers
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	started := p.started
	for _, q := range p.queues {
		close(q)
	}
	p.mu.Unlock()

	if !started {
		for _, q := range p.queues {
			for job := range q {
				p.run(job)
			}
		}
		return
	}
	p.wg.Wait()
}
