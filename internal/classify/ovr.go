package classify

import (
	"fmt"

	"github.com/ppiankov/stylo/internal/model"
)

// OvRStage is phase 1: one binary classifier per class, each trained to
// separate that class from all others.
type OvRStage struct {
	classes []string
	clfs    map[string]BinaryClassifier
	trained bool
}

// NewOvRStage creates the stage for a fixed class set.
func NewOvRStage(classes []string, factory Factory) *OvRStage {
	clfs := make(map[string]BinaryClassifier, len(classes))
	for _, class := range classes {
		clfs[class] = factory("ovr:" + class)
	}
	return &OvRStage{
		classes: append([]string(nil), classes...),
		clfs:    clfs,
	}
}

// Train fits all per-class classifiers on the train partition. Each fit sees
// every train vector, labeled +1 for its own class and -1 for the rest. The
// fits are independent and run on the worker pool; Train returns only after
// every classifier is complete.
func (s *OvRStage) Train(train model.Dataset, workers int) error {
	vectors := train.Vectors()

	jobs := make([]*trainJob, 0, len(s.classes))
	for _, class := range s.classes {
		labels := make([]int, train.Len())
		for i, sample := range train {
			if sample.Author == class {
				labels[i] = 1
			} else {
				labels[i] = -1
			}
		}
		jobs = append(jobs, &trainJob{
			id:      "ovr:" + class,
			clf:     s.clfs[class],
			vectors: vectors,
			labels:  labels,
		})
	}

	if err := trainAll(workers, jobs); err != nil {
		return err
	}
	s.trained = true
	return nil
}

// Claims returns the set of classes whose classifiers claim the sample,
// in class order. Zero or multiple claims is not an error: it is the
// designed escalation condition for phase 2.
func (s *OvRStage) Claims(vector []float64) ([]string, error) {
	if !s.trained {
		return nil, fmt.Errorf("ovr stage is not trained")
	}

	var claims []string
	for _, class := range s.classes {
		label, _, err := s.clfs[class].Decide(vector)
		if err != nil {
			return nil, fmt.Errorf("ovr %s: %w", class, err)
		}
		if label == 1 {
			claims = append(claims, class)
		}
	}
	return claims, nil
}

// Classes returns the class set the stage was built for.
func (s *OvRStage) Classes() []string {
	return append([]string(nil), s.classes...)
}
