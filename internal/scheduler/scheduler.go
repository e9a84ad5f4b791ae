package scheduler

import (
	"sync"
	"time"

	"github.com/osse101/LootCrates_Go/internal/logger"
	"github.com/osse101/LootCrates_Go/internal/worker"
)

// Scheduler runs jobs on fixed intervals through the worker pool
type Scheduler struct {
	workerPool *worker.Pool
	quit       chan struct{}
	once       sync.Once
	wg         sync.WaitGroup
}

// New creates a new scheduler
func New(pool *worker.Pool) *Scheduler {
	return &Scheduler{
		workerPool: pool,
		quit:       make(chan struct{}),
	}
}

// Schedule registers a job to run every interval, starting one interval from now.
// A tick that finds the queue full is skipped; the next tick tries again.
func (s *Scheduler) Schedule(name string, interval time.Duration, job worker.Job) {
	if interval <= 0 {
		logger.Warn(LogMsgScheduleDisabled, LogFieldJob, name)
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if !s.workerPool.TryEnqueue(job) {
					logger.Warn(LogMsgTickSkipped, LogFieldJob, name)
				}
			case <-s.quit:
				return
			}
		}
	}()
	logger.Info(LogMsgJobScheduled, LogFieldJob, name, LogFieldInterval, interval.String())
}

// Stop stops all scheduled jobs
func (s *Scheduler) Stop() {
	s.once.Do(func() { close(s.quit) })
	s.wg.Wait()
}
