// Package svm provides the binary linear margin classifier both hybrid
// stages train and query. The solver is Pegasos-style stochastic gradient
// descent on the hinge loss, which is deterministic for a fixed seed.
package svm

import (
	"errors"
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

var (
	// ErrTraining indicates degenerate training input: fewer than two
	// distinct labels, inconsistent dimensionality, or no samples. The
	// hybrid stages construct their slices so this never fires; if it does,
	// an invariant upstream is broken.
	ErrTraining = errors.New("svm: degenerate training input")

	// ErrSchemaMismatch indicates a query vector whose dimensionality does
	// not match the trained weights.
	ErrSchemaMismatch = errors.New("svm: vector dimension does not match trained schema")

	// ErrNotTrained indicates Decide was called before a successful Train.
	ErrNotTrained = errors.New("svm: classifier is not trained")
)

// Linear is a two-class maximum-margin linear classifier. It is safe for
// concurrent reads after Train returns; Train must not be called again.
type Linear struct {
	epochs int
	lambda float64
	seed   int64

	w       []float64 // learned weights, len == dims
	bias    float64
	dims    int
	trained bool
}

// NewLinear creates an untrained classifier. Non-positive epochs or lambda
// fall back to defaults suitable for small, normalized feature sets.
func NewLinear(epochs int, lambda float64, seed int64) *Linear {
	if epochs <= 0 {
		epochs = 200
	}
	if lambda <= 0 {
		lambda = 0.01
	}
	return &Linear{
		epochs: epochs,
		lambda: lambda,
		seed:   seed,
	}
}

// Train fits the classifier on vectors with labels in {+1, -1}. The fit is
// deterministic for a fixed seed regardless of goroutine scheduling, because
// the only randomness is the internally seeded sample shuffle.
func (c *Linear) Train(vectors [][]float64, labels []int) error {
	if len(vectors) == 0 || len(vectors) != len(labels) {
		return fmt.Errorf("%w: %d vectors, %d labels", ErrTraining, len(vectors), len(labels))
	}

	dims := len(vectors[0])
	var pos, neg bool
	for i, v := range vectors {
		if len(v) != dims {
			return fmt.Errorf("%w: vector %d has %d dims, want %d", ErrTraining, i, len(v), dims)
		}
		switch labels[i] {
		case 1:
			pos = true
		case -1:
			neg = true
		default:
			return fmt.Errorf("%w: label %d at index %d (want +1 or -1)", ErrTraining, labels[i], i)
		}
	}
	if !pos || !neg {
		return fmt.Errorf("%w: both classes must be present", ErrTraining)
	}

	w := make([]float64, dims)
	bias := 0.0
	rng := rand.New(rand.NewSource(c.seed))
	order := make([]int, len(vectors))
	for i := range order {
		order[i] = i
	}

	t := 0
	for epoch := 0; epoch < c.epochs; epoch++ {
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
		for _, idx := range order {
			t++
			eta := 1.0 / (c.lambda * float64(t))
			x := vectors[idx]
			y := float64(labels[idx])

			margin := y * (floats.Dot(w, x) + bias)
			floats.Scale(1-eta*c.lambda, w)
			if margin < 1 {
				floats.AddScaled(w, eta*y, x)
				bias += eta * y
			}
		}
	}

	c.w = w
	c.bias = bias
	c.dims = dims
	c.trained = true
	return nil
}

// Decide evaluates a vector against the trained boundary. The returned label
// is +1 when the margin is strictly positive and -1 otherwise; a margin of
// exactly zero is not a claim. Decide never mutates the classifier.
func (c *Linear) Decide(vector []float64) (label int, margin float64, err error) {
	if !c.trained {
		return 0, 0, ErrNotTrained
	}
	if len(vector) != c.dims {
		return 0, 0, fmt.Errorf("%w: got %d dims, trained on %d", ErrSchemaMismatch, len(vector), c.dims)
	}

	margin = floats.Dot(c.w, vector) + c.bias
	if margin > 0 {
		return 1, margin, nil
	}
	return -1, margin, nil
}

// Trained reports whether the classifier has been fit.
func (c *Linear) Trained() bool {
	return c.trained
}
