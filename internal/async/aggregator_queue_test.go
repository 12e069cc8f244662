package async

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Tomaxido/validocu/internal/aggregate"
)

type stubProcessor struct {
	mu        sync.Mutex
	paths     []string
	skip      map[string]error
	writeFail map[string]error
}

func (p *stubProcessor) ProcessArtifact(_ context.Context, path string) (aggregate.Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.paths = append(p.paths, path)
	if err := p.skip[path]; err != nil {
		return aggregate.Result{}, err
	}
	if err := p.writeFail[path]; err != nil {
		return aggregate.Result{PageWritten: true, DocErr: err}, nil
	}
	return aggregate.Result{PageWritten: true, DocWritten: true}, nil
}

func TestQueueProcessesAllJobs(t *testing.T) {
	proc := &stubProcessor{}
	q := NewAggregatorQueue(proc, nil, WithWorkers(2), WithQueueSize(8))

	ctx := context.Background()
	for _, p := range []string{"a.json", "b.json", "c.json"} {
		if err := q.Enqueue(ctx, NewJob(p)); err != nil {
			t.Fatal(err)
		}
	}
	q.Shutdown(ctx)

	proc.mu.Lock()
	defer proc.mu.Unlock()
	if len(proc.paths) != 3 {
		t.Errorf("processed %d jobs, want 3", len(proc.paths))
	}
	if q.Failures() != 0 {
		t.Errorf("failures = %d, want 0", q.Failures())
	}
}

func TestQueueCountsWriteFailures(t *testing.T) {
	proc := &stubProcessor{writeFail: map[string]error{"bad.json": errors.New("insert failed")}}
	q := NewAggregatorQueue(proc, nil, WithWorkers(1))

	ctx := context.Background()
	if err := q.Enqueue(ctx, NewJob("ok.json")); err != nil {
		t.Fatal(err)
	}
	if err := q.Enqueue(ctx, NewJob("bad.json")); err != nil {
		t.Fatal(err)
	}
	q.Shutdown(ctx)

	if q.Failures() != 1 {
		t.Errorf("failures = %d, want 1", q.Failures())
	}
	if q.Skipped() != 0 {
		t.Errorf("skipped = %d, want 0", q.Skipped())
	}
}

func TestQueueCountsSkipsSeparately(t *testing.T) {
	// a malformed artifact is a skip, never a store failure
	proc := &stubProcessor{skip: map[string]error{"malformed.json": errors.New("no known scheme")}}
	q := NewAggregatorQueue(proc, nil, WithWorkers(1))

	ctx := context.Background()
	if err := q.Enqueue(ctx, NewJob("ok.json")); err != nil {
		t.Fatal(err)
	}
	if err := q.Enqueue(ctx, NewJob("malformed.json")); err != nil {
		t.Fatal(err)
	}
	q.Shutdown(ctx)

	if q.Failures() != 0 {
		t.Errorf("failures = %d, want 0", q.Failures())
	}
	if q.Skipped() != 1 {
		t.Errorf("skipped = %d, want 1", q.Skipped())
	}
}

func TestQueueEnqueueAfterShutdown(t *testing.T) {
	proc := &stubProcessor{}
	q := NewAggregatorQueue(proc, nil, WithWorkers(1))

	ctx := context.Background()
	q.Shutdown(ctx)
	if err := q.Enqueue(ctx, NewJob("late.json")); err != nil {
		t.Fatal(err)
	}

	proc.mu.Lock()
	defer proc.mu.Unlock()
	if len(proc.paths) != 0 {
		t.Error("job enqueued after shutdown should be dropped")
	}
}

func TestQueueShutdownIdempotent(t *testing.T) {
	q := NewAggregatorQueue(&stubProcessor{}, nil, WithWorkers(1), WithProcessTimeout(time.Second))
	ctx := context.Background()
	q.Shutdown(ctx)
	q.Shutdown(ctx)
}
