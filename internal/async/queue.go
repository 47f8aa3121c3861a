package async

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/pipeline"
)

// Job is the smallest useful unit handed to the queue.
type Job struct {
	JobID       uuid.UUID
	SubmittedAt time.Time
}

// Queue runs extraction jobs on a bounded worker pool. Each running job
// gets its own cancel func so callers can abort it mid-flight; aborting
// propagates into whatever network call the pipeline is blocked on.
type Queue struct {
	pipe    *pipeline.Pipeline
	logger  *slog.Logger
	workers int
	timeout time.Duration

	ch     chan Job
	wg     sync.WaitGroup
	sendWg sync.WaitGroup
	once   sync.Once

	mu      sync.Mutex
	closed  bool
	running map[uuid.UUID]context.CancelFunc
}

type Option func(*Queue)

func WithWorkers(n int) Option {
	return func(q *Queue) {
		if n > 0 {
			q.workers = n
		}
	}
}

func WithQueueSize(n int) Option {
	return func(q *Queue) {
		if n > 0 {
			q.ch = make(chan Job, n)
		}
	}
}

func WithJobTimeout(d time.Duration) Option {
	return func(q *Queue) {
		if d > 0 {
			q.timeout = d
		}
	}
}

func NewQueue(pipe *pipeline.Pipeline, logger *slog.Logger, opts ...Option) *Queue {
	if logger == nil {
		logger = slog.Default()
	}
	q := &Queue{
		pipe:    pipe,
		logger:  logger,
		workers: 4,
		timeout: 5 * time.Minute,
		ch:      make(chan Job, 256),
		running: make(map[uuid.UUID]context.CancelFunc),
	}
	for _, o := range opts {
		o(q)
	}
	q.start()
	return q
}

func (q *Queue) start() {
	q.once.Do(func() {
		for i := 0; i < q.workers; i++ {
			q.wg.Add(1)
			go func(workerID int) {
				defer q.wg.Done()
				q.logger.Info("worker started", "worker_id", workerID)

				for job := range q.ch {
					ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
					q.track(job.JobID, cancel)

					_, err := q.pipe.Run(ctx, job.JobID)

					q.untrack(job.JobID)
					cancel()

					if err != nil {
						q.logger.Error("job failed", "worker_id", workerID, "job_id", job.JobID, "error", err)
					} else {
						q.logger.Info("job completed", "worker_id", workerID, "job_id", job.JobID)
					}
				}

				q.logger.Info("worker stopped", "worker_id", workerID)
			}(i + 1)
		}
	})
}

// Enqueue queues a job for processing, blocking when the queue is full.
// The sender registers on sendWg before releasing the mutex so Shutdown
// never closes the channel under a send blocked on backpressure.
func (q *Queue) Enqueue(_ context.Context, job Job) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		q.logger.Warn("cannot enqueue: queue is shutting down", "job_id", job.JobID)
		return nil
	}
	q.sendWg.Add(1)
	q.mu.Unlock()
	defer q.sendWg.Done()

	select {
	case q.ch <- job:
		q.logger.Info("queued job", "job_id", job.JobID)
	default:
		q.logger.Warn("queue full, applying backpressure", "job_id", job.JobID)
		q.ch <- job
	}
	return nil
}

// Abort cancels a running job. Returns false when the job is not running
// (already finished or still queued).
func (q *Queue) Abort(jobID uuid.UUID) bool {
	q.mu.Lock()
	cancel, ok := q.running[jobID]
	q.mu.Unlock()
	if !ok {
		return false
	}
	q.logger.Info("aborting job", "job_id", jobID)
	cancel()
	return true
}

func (q *Queue) track(jobID uuid.UUID, cancel context.CancelFunc) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.running[jobID] = cancel
}

func (q *Queue) untrack(jobID uuid.UUID) {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.running, jobID)
}

// Shutdown drains the queue and waits for in-flight jobs, bounded by ctx.
func (q *Queue) Shutdown(ctx context.Context) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	q.mu.Unlock()

	// No new senders can register once closed is set; wait out the
	// in-flight ones before closing the channel.
	q.sendWg.Wait()
	close(q.ch)

	done := make(chan struct{})
	go func() { defer close(done); q.wg.Wait() }()

	select {
	case <-ctx.Done():
		q.logger.Warn("shutdown interrupted by context")
	case <-done:
		q.logger.Info("queue drained, shutdown complete")
	}
}
