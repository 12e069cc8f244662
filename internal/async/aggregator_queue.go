package async

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"log/slog"

	"github.com/Tomaxido/validocu/internal/aggregate"
)

// Processor consolidates one page artifact. Satisfied by aggregate.Aggregator.
type Processor interface {
	ProcessArtifact(ctx context.Context, path string) (aggregate.Result, error)
}

// AggregatorQueue fans artifacts out to a fixed set of workers. Write
// failures and skipped artifacts are counted separately, never fatal to the
// pool; the caller reads both counts after Shutdown.
type AggregatorQueue struct {
	proc    Processor
	logger  *slog.Logger
	workers int
	timeout time.Duration

	ch   chan Job
	wg   sync.WaitGroup
	once sync.Once

	failures atomic.Int64
	skips    atomic.Int64

	mu     sync.Mutex
	closed bool
}

type Option func(*AggregatorQueue)

func WithWorkers(n int) Option {
	return func(q *AggregatorQueue) {
		if n > 0 {
			q.workers = n
		}
	}
}
func WithQueueSize(n int) Option {
	return func(q *AggregatorQueue) {
		if n > 0 {
			q.ch = make(chan Job, n)
		}
	}
}
func WithProcessTimeout(d time.Duration) Option {
	return func(q *AggregatorQueue) {
		if d > 0 {
			q.timeout = d
		}
	}
}

func NewAggregatorQueue(proc Processor, logger *slog.Logger, opts ...Option) *AggregatorQueue {
	if logger == nil {
		logger = slog.Default()
	}
	q := &AggregatorQueue{
		proc:    proc,
		logger:  logger,
		workers: 4,
		timeout: time.Minute,
		ch:      make(chan Job, 256),
	}
	for _, o := range opts {
		o(q)
	}
	q.start()
	return q
}

func (q *AggregatorQueue) start() {
	q.once.Do(func() {
		for i := 0; i < q.workers; i++ {
			q.wg.Add(1)
			go func(workerID int) {
				defer q.wg.Done()
				q.logger.Info("worker started", "worker_id", workerID)

				for job := range q.ch {
					ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
					res, err := q.proc.ProcessArtifact(ctx, job.Path)
					cancel()

					switch {
					case err != nil:
						// malformed or unreadable artifact: skipped, not a
						// store failure
						q.skips.Add(1)
						q.logger.Warn("artifact skipped", "worker_id", workerID,
							"archivo", job.Path, "trace_id", job.TraceID, "error", err)
					case res.Failed():
						q.failures.Add(1)
						q.logger.Error("write failed", "worker_id", workerID,
							"archivo", job.Path, "trace_id", job.TraceID,
							"page_error", res.PageErr, "doc_error", res.DocErr)
					default:
						q.logger.Info("artifact consolidated", "worker_id", workerID,
							"archivo", job.Path, "trace_id", job.TraceID,
							"siblings", res.Siblings, "labels", res.Labels)
					}
				}

				q.logger.Info("worker stopped", "worker_id", workerID)
			}(i + 1)
		}
	})
}

func (q *AggregatorQueue) Enqueue(_ context.Context, job Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		q.logger.Warn("cannot enqueue: queue is shutting down", "archivo", job.Path)
		return nil
	}
	select {
	case q.ch <- job:
	default:
		q.logger.Warn("queue full, applying backpressure", "archivo", job.Path)
		q.ch <- job
	}
	return nil
}

func (q *AggregatorQueue) Shutdown(ctx context.Context) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.ch)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() { defer close(done); q.wg.Wait() }()

	select {
	case <-ctx.Done():
		q.logger.Warn("shutdown interrupted by context")
	case <-done:
		q.logger.Info("queue drained, shutdown complete")
	}
}

// Failures reports how many jobs failed a store write. Stable after Shutdown.
func (q *AggregatorQueue) Failures() int {
	return int(q.failures.Load())
}

// Skipped reports how many artifacts could not be parsed or loaded. Stable
// after Shutdown.
func (q *AggregatorQueue) Skipped() int {
	return int(q.skips.Load())
}
