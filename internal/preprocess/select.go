package preprocess

import (
	"math"
	"sort"
)

// Selector keeps the k dimensions that discriminate best between classes,
// scored with the one-way ANOVA F statistic on the train partition. The
// same mask is applied to train and test so the classifier schema stays
// consistent.
type Selector struct {
	keep []int // kept dimension indices, ascending
}

// FitANOVA scores every dimension and keeps the k highest. k is clamped to
// [1, dims]; when k >= dims selection is the identity.
func FitANOVA(vectors [][]float64, labels []string, k int) (*Selector, error) {
	if len(vectors) == 0 || len(vectors) != len(labels) {
		return nil, ErrNoSamples
	}
	dims := len(vectors[0])
	if k < 1 {
		k = 1
	}
	if k > dims {
		k = dims
	}

	scores := make([]float64, dims)
	for d := 0; d < dims; d++ {
		scores[d] = fScore(vectors, labels, d)
	}

	order := make([]int, dims)
	for i := range order {
		order[i] = i
	}
	// stable sort by descending score keeps dimension order as tiebreak
	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})

	keep := append([]int(nil), order[:k]...)
	sort.Ints(keep)
	return &Selector{keep: keep}, nil
}

// fScore computes the one-way ANOVA F statistic of dimension d:
// between-group variance over within-group variance.
func fScore(vectors [][]float64, labels []string, d int) float64 {
	groups := make(map[string][]float64)
	grand := 0.0
	for i, v := range vectors {
		groups[labels[i]] = append(groups[labels[i]], v[d])
		grand += v[d]
	}
	n := float64(len(vectors))
	g := float64(len(groups))
	if g < 2 || n <= g {
		return 0
	}
	grand /= n

	ssb, ssw := 0.0, 0.0
	for _, values := range groups {
		mean := 0.0
		for _, x := range values {
			mean += x
		}
		mean /= float64(len(values))

		diff := mean - grand
		ssb += float64(len(values)) * diff * diff
		for _, x := range values {
			ssw += (x - mean) * (x - mean)
		}
	}

	msb := ssb / (g - 1)
	msw := ssw / (n - g)
	if msw == 0 {
		if msb > 0 {
			return math.Inf(1)
		}
		return 0
	}
	return msb / msw
}

// Apply projects one vector onto the kept dimensions.
func (s *Selector) Apply(vector []float64) []float64 {
	out := make([]float64, len(s.keep))
	for i, d := range s.keep {
		out[i] = vector[d]
	}
	return out
}

// ApplyAll projects a batch of vectors.
func (s *Selector) ApplyAll(vectors [][]float64) [][]float64 {
	out := make([][]float64, len(vectors))
	for i, v := range vectors {
		out[i] = s.Apply(v)
	}
	return out
}

// Kept returns the kept dimension indices.
func (s *Selector) Kept() []int {
	return append([]int(nil), s.keep...)
}
