// Package classify implements the two-phase hybrid attribution procedure:
// a one-vs-rest stage that attempts unambiguous attribution, falling back to
// one-vs-one pairwise voting with explicit tie handling.
package classify

// BinaryClassifier is the trainable two-class abstraction both stages
// consume. Implementations must be deterministic given trained parameters
// and read-only after Train returns, so evaluation can query them from many
// goroutines.
type BinaryClassifier interface {
	// Train fits the classifier on vectors with labels in {+1, -1}.
	Train(vectors [][]float64, labels []int) error

	// Decide returns +1 or -1 for the vector together with the margin
	// score. It must not mutate state.
	Decide(vector []float64) (label int, margin float64, err error)
}

// Factory builds one classifier per identity. Identities are "ovr:<class>"
// for phase 1 and "ovo:<a>|<b>" for phase 2; production factories derive a
// per-identity seed from them so parallel training order cannot change
// results, and tests inject instrumented fakes.
type Factory func(identity string) BinaryClassifier
