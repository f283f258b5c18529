// Package split partitions a labeled dataset into train and test subsets
// while preserving per-class proportions.
package split

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/ppiankov/stylo/internal/model"
)

// ErrInsufficientSamples indicates a class that cannot be represented on
// both sides of the split at the requested fraction. The run cannot proceed
// without it: a class absent from train cannot be classified, and a class
// absent from test cannot be scored.
var ErrInsufficientSamples = errors.New("split: class cannot be represented on both sides")

// Splitter produces seed-deterministic stratified partitions. The same seed
// and dataset always yield the identical partition.
type Splitter struct {
	fraction float64 // held-out test fraction
	seed     int64
}

// New creates a splitter with the given held-out fraction and seed.
func New(fraction float64, seed int64) (*Splitter, error) {
	if fraction <= 0 || fraction >= 1 {
		return nil, fmt.Errorf("split: held-out fraction %v out of range (0, 1)", fraction)
	}
	return &Splitter{fraction: fraction, seed: seed}, nil
}

// Split partitions the dataset. For every class the test share is as close
// to the configured fraction as integer rounding allows, and every class
// appears in both partitions.
func (s *Splitter) Split(ds model.Dataset) (train, test model.Dataset, err error) {
	if ds.Len() == 0 {
		return nil, nil, fmt.Errorf("%w: empty dataset", ErrInsufficientSamples)
	}

	groups := ds.ByClass()
	classes := ds.Classes()

	// A single rng consumed in sorted-class order keeps the partition
	// independent of map iteration order.
	rng := rand.New(rand.NewSource(s.seed))

	for _, class := range classes {
		indices := groups[class]
		n := len(indices)
		if n < 2 {
			return nil, nil, fmt.Errorf("%w: class %q has %d sample(s)", ErrInsufficientSamples, class, n)
		}

		shuffled := make([]int, n)
		copy(shuffled, indices)
		rng.Shuffle(n, func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		nTest := int(math.Round(s.fraction * float64(n)))
		if nTest < 1 {
			nTest = 1
		}
		if nTest > n-1 {
			nTest = n - 1
		}

		for _, idx := range shuffled[:nTest] {
			test = append(test, ds[idx])
		}
		for _, idx := range shuffled[nTest:] {
			train = append(train, ds[idx])
		}
	}

	return train, test, nil
}
