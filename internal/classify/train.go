package classify

import (
	"context"
	"fmt"

	"github.com/ppiankov/stylo/internal/worker"
)

// trainJob fits one binary classifier on its label-partitioned slice. Jobs
// share no mutable state, so a stage's fits run freely in parallel.
type trainJob struct {
	id      string
	clf     BinaryClassifier
	vectors [][]float64
	labels  []int
}

// Execute runs the fit.
func (j *trainJob) Execute(ctx context.Context) worker.Result {
	if err := j.clf.Train(j.vectors, j.labels); err != nil {
		return &trainResult{id: j.id, err: fmt.Errorf("train %s: %w", j.id, err)}
	}
	return &trainResult{id: j.id}
}

// trainResult reports the outcome of a single fit.
type trainResult struct {
	id  string
	err error
}

// Err returns the fit error, if any.
func (r *trainResult) Err() error { return r.err }

// trainAll runs the jobs on a pool and waits for the barrier. All
// classifiers are fully trained when it returns nil.
func trainAll(workers int, jobs []*trainJob) error {
	wjobs := make([]worker.Job, len(jobs))
	for i, j := range jobs {
		wjobs[i] = j
	}
	_, err := worker.Run(workers, wjobs)
	return err
}
