package classify

import (
	"fmt"

	"github.com/ppiankov/stylo/internal/model"
)

// Pair identifies one unordered class pair. A sorts before B.
type Pair struct {
	A, B string
}

// NewPair builds the canonical pair for two distinct classes.
func NewPair(a, b string) Pair {
	if b < a {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}

func (p Pair) String() string {
	return p.A + "|" + p.B
}

// Pairs enumerates all C(n,2) unordered pairs of the class set.
func Pairs(classes []string) []Pair {
	var pairs []Pair
	for i := 0; i < len(classes); i++ {
		for j := i + 1; j < len(classes); j++ {
			pairs = append(pairs, NewPair(classes[i], classes[j]))
		}
	}
	return pairs
}

// OvOStage is phase 2: one binary classifier per unordered class pair,
// trained only on the train samples of its two classes. Each pair casts
// exactly one vote per sample; there is no abstention.
type OvOStage struct {
	pairs   []Pair
	clfs    map[Pair]BinaryClassifier
	trained bool
}

// NewOvOStage creates the stage for a fixed class set.
func NewOvOStage(classes []string, factory Factory) *OvOStage {
	pairs := Pairs(classes)
	clfs := make(map[Pair]BinaryClassifier, len(pairs))
	for _, pair := range pairs {
		clfs[pair] = factory("ovo:" + pair.String())
	}
	return &OvOStage{pairs: pairs, clfs: clfs}
}

// Train fits every pair classifier on its pair-restricted train slice.
// Labels are +1 for the pair's A class and -1 for B. Both classes are
// guaranteed present by the stratified split, so a TrainingError here is an
// invariant violation, not a recoverable condition.
func (s *OvOStage) Train(train model.Dataset, workers int) error {
	jobs := make([]*trainJob, 0, len(s.pairs))
	for _, pair := range s.pairs {
		var vectors [][]float64
		var labels []int
		for _, sample := range train {
			switch sample.Author {
			case pair.A:
				vectors = append(vectors, sample.Features)
				labels = append(labels, 1)
			case pair.B:
				vectors = append(vectors, sample.Features)
				labels = append(labels, -1)
			}
		}
		jobs = append(jobs, &trainJob{
			id:      "ovo:" + pair.String(),
			clf:     s.clfs[pair],
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

// Votes queries every pair classifier and tallies one vote per pair.
func (s *OvOStage) Votes(vector []float64) (map[string]int, error) {
	if !s.trained {
		return nil, fmt.Errorf("ovo stage is not trained")
	}

	votes := make(map[string]int)
	for _, pair := range s.pairs {
		label, _, err := s.clfs[pair].Decide(vector)
		if err != nil {
			return nil, fmt.Errorf("ovo %s: %w", pair, err)
		}
		if label == 1 {
			votes[pair.A]++
		} else {
			votes[pair.B]++
		}
	}
	return votes, nil
}

// Classify tallies pairwise votes and resolves by majority. A tie at the
// maximum - two-way or multi-way alike - yields tie=true and no label:
// the sample stays unclassified rather than being guessed.
func (s *OvOStage) Classify(vector []float64) (label string, tie bool, err error) {
	votes, err := s.Votes(vector)
	if err != nil {
		return "", false, err
	}

	max := -1
	for _, count := range votes {
		if count > max {
			max = count
		}
	}

	var winners []string
	for class, count := range votes {
		if count == max {
			winners = append(winners, class)
		}
	}

	if len(winners) != 1 {
		return "", true, nil
	}
	return winners[0], false, nil
}

// PairCount returns the number of pair classifiers.
func (s *OvOStage) PairCount() int {
	return len(s.pairs)
}
