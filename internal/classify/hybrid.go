package classify

import (
	"sync"

	"github.com/ppiankov/stylo/internal/model"
)

// Hybrid composes the two stages into the full decision procedure. Both
// stages must be trained before Classify or Evaluate is called; after that
// the classifier maps are read-only and evaluation is safe to parallelize.
type Hybrid struct {
	ovr *OvRStage
	ovo *OvOStage
}

// NewHybrid creates the orchestrator from two trained stages.
func NewHybrid(ovr *OvRStage, ovo *OvOStage) *Hybrid {
	return &Hybrid{ovr: ovr, ovo: ovo}
}

// Classify runs the two-phase procedure for one vector. Phase 1 is terminal
// when exactly one one-vs-rest classifier claims the sample; zero or
// multiple claims escalate to pairwise voting. A vote tie leaves the sample
// unclassified.
func (h *Hybrid) Classify(vector []float64) (assigned string, phase model.Phase, err error) {
	claims, err := h.ovr.Claims(vector)
	if err != nil {
		return "", "", err
	}
	if len(claims) == 1 {
		return claims[0], model.PhaseOne, nil
	}

	label, tie, err := h.ovo.Classify(vector)
	if err != nil {
		return "", "", err
	}
	if tie {
		return model.Unclassified, model.PhaseTwoTie, nil
	}
	return label, model.PhaseTwo, nil
}

// Evaluate classifies every test sample exactly once and returns one result
// per sample in dataset order. Samples are independent, so they are scored
// concurrently; the trained classifiers are read-only at this point.
func (h *Hybrid) Evaluate(test model.Dataset, workers int) ([]model.ClassificationResult, error) {
	if workers <= 0 {
		workers = 1
	}

	results := make([]model.ClassificationResult, test.Len())
	sem := make(chan struct{}, workers)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for i, sample := range test {
		wg.Add(1)
		go func(idx int, s model.LabeledSample) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			assigned, phase, err := h.Classify(s.Features)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
			results[idx] = model.ClassificationResult{
				Sample:   idx,
				Actual:   s.Author,
				Assigned: assigned,
				Phase:    phase,
			}
		}(i, sample)
	}

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}
