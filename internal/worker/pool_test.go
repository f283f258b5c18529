package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type countResult struct {
	err error
}

func (r *countResult) Err() error { return r.err }

type countJob struct {
	executed *int32
	fail     bool
	delay    time.Duration
}

func (j *countJob) Execute(ctx context.Context) Result {
	if j.executed != nil {
		atomic.AddInt32(j.executed, 1)
	}
	if j.delay > 0 {
		select {
		case <-time.After(j.delay):
		case <-ctx.Done():
			return &countResult{err: ctx.Err()}
		}
	}
	if j.fail {
		return &countResult{err: errors.New("job failed")}
	}
	return &countResult{}
}

func TestNewPool_Defaults(t *testing.T) {
	if p := NewPool(3); p.workers != 3 {
		t.Errorf("expected 3 workers, got %d", p.workers)
	}
	if p := NewPool(0); p.workers < 1 {
		t.Errorf("expected at least 1 worker for 0 input, got %d", p.workers)
	}
}

func TestPool_ExecutesEveryJobOnce(t *testing.T) {
	pool := NewPool(4)
	pool.Start()

	var executed int32
	const count = 25
	for i := 0; i < count; i++ {
		pool.Submit(&countJob{executed: &executed})
	}

	results := pool.Wait()
	if len(results) != count {
		t.Errorf("expected %d results, got %d", count, len(results))
	}
	if got := atomic.LoadInt32(&executed); got != count {
		t.Errorf("expected %d executions, got %d", count, got)
	}
}

// Submitting far more jobs than the pool can buffer must not block: the
// pairwise stage queues C(n,2) fits at once (28 for 8 classes) regardless of
// worker count, and fetch manifests can run to hundreds of entries.
func TestPool_SubmitBeyondBufferCapacity(t *testing.T) {
	var executed int32
	const count = 64

	done := make(chan []Result)
	go func() {
		pool := NewPool(2)
		pool.Start()
		for i := 0; i < count; i++ {
			pool.Submit(&countJob{executed: &executed})
		}
		done <- pool.Wait()
	}()

	select {
	case results := <-done:
		if len(results) != count {
			t.Errorf("expected %d results, got %d", count, len(results))
		}
		if got := atomic.LoadInt32(&executed); got != count {
			t.Errorf("expected %d executions, got %d", count, got)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("pool blocked with jobs queued beyond buffer capacity")
	}
}

func TestRun_ManyJobsFewWorkers(t *testing.T) {
	var executed int32
	jobs := make([]Job, 28)
	for i := range jobs {
		jobs[i] = &countJob{executed: &executed}
	}

	done := make(chan error)
	go func() {
		results, err := Run(4, jobs)
		if len(results) != len(jobs) {
			t.Errorf("expected %d results, got %d", len(jobs), len(results))
		}
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := atomic.LoadInt32(&executed); got != int32(len(jobs)) {
			t.Errorf("expected %d executions, got %d", len(jobs), got)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("Run blocked before reaching Wait")
	}
}

func TestRun_CollectsFirstError(t *testing.T) {
	var executed int32
	jobs := []Job{
		&countJob{executed: &executed},
		&countJob{executed: &executed, fail: true},
		&countJob{executed: &executed},
	}

	results, err := Run(2, jobs)
	if err == nil {
		t.Fatal("expected an error from the failing job")
	}
	if len(results) != len(jobs) {
		t.Errorf("expected %d results, got %d", len(jobs), len(results))
	}
	if got := atomic.LoadInt32(&executed); got != int32(len(jobs)) {
		t.Errorf("expected %d executions, got %d", len(jobs), got)
	}
}

func TestPool_Shutdown(t *testing.T) {
	pool := NewPool(1)
	pool.Start()
	pool.Submit(&countJob{delay: time.Minute})
	done := make(chan struct{})
	go func() {
		pool.Shutdown()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("shutdown did not complete")
	}
}
