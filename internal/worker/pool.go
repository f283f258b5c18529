// Package worker provides a small fixed-size pool for independent jobs:
// classifier fits during training and document downloads during fetching.
package worker

import (
	"context"
	"runtime"
	"sync"
)

// Job is a unit of work executed by the pool.
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is the outcome of a job execution.
type Result interface {
	Err() error
}

// Pool executes jobs on a fixed number of workers. Jobs must be independent;
// the pool provides no ordering guarantees beyond Wait acting as a barrier.
type Pool struct {
	workers   int
	jobs      chan Job
	results   chan Result
	collected []Result
	collectWg sync.WaitGroup
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
	closeRes  sync.Once
}

// NewPool creates a pool with the given worker count. Non-positive counts
// default to the number of CPUs.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		workers: workers,
		jobs:    make(chan Job, workers*2),
		results: make(chan Result, workers*2),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start launches the workers and the result collector. The collector drains
// results from the moment the pool starts, so Submit never blocks on a full
// result buffer no matter how many jobs are queued before Wait.
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}

	p.collectWg.Add(1)
	go func() {
		defer p.collectWg.Done()
		for result := range p.results {
			p.collected = append(p.collected, result)
		}
	}()
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			result := job.Execute(p.ctx)
			select {
			case p.results <- result:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit queues a job for execution.
func (p *Pool) Submit(job Job) {
	select {
	case <-p.ctx.Done():
	case p.jobs <- job:
	}
}

// Wait closes the queue, blocks until all submitted jobs finish, and returns
// every result. Callers use it as the barrier between training and
// evaluation: no classifier is queried until Wait has returned.
func (p *Pool) Wait() []Result {
	close(p.jobs)
	p.wg.Wait()
	p.closeResults()
	p.collectWg.Wait()
	return p.collected
}

// Shutdown cancels outstanding work immediately.
func (p *Pool) Shutdown() {
	p.cancel()
	p.wg.Wait()
	p.closeResults()
	p.collectWg.Wait()
}

func (p *Pool) closeResults() {
	p.closeRes.Do(func() {
		close(p.results)
	})
}

// Run is the common start-submit-wait sequence, returning the first error
// encountered among the results, if any.
func Run(workers int, jobs []Job) ([]Result, error) {
	pool := NewPool(workers)
	pool.Start()
	for _, job := range jobs {
		pool.Submit(job)
	}
	results := pool.Wait()
	return results, FirstError(results)
}

// FirstError returns the first non-nil error among results.
func FirstError(results []Result) error {
	for _, r := range results {
		if err := r.Err(); err != nil {
			return err
		}
	}
	return nil
}
