// Package async runs artifact consolidation on a bounded worker pool, so a
// folder of page artifacts is processed concurrently with backpressure.
package async

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Job is one page artifact waiting for consolidation.
type Job struct {
	Path        string
	SubmittedAt time.Time
	TraceID     string
}

func NewJob(path string) Job {
	return Job{
		Path:        path,
		SubmittedAt: time.Now(),
		TraceID:     uuid.New().String(),
	}
}

type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	Shutdown(ctx context.Context)
}
