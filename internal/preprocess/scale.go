// Package preprocess holds the fit-on-train, apply-everywhere transforms
// that sit between feature extraction and classification: min-max scaling
// and univariate feature selection.
package preprocess

import (
	"errors"
	"fmt"
)

// ErrNoSamples indicates a fit over an empty slice.
var ErrNoSamples = errors.New("preprocess: no samples to fit")

// MinMaxScaler maps every dimension of the fit data onto [0, 1]. It is fit
// on the train partition only and then applied to both partitions, so test
// values may fall slightly outside the unit interval.
type MinMaxScaler struct {
	min  []float64
	span []float64
}

// FitMinMax computes per-dimension extrema over the vectors.
func FitMinMax(vectors [][]float64) (*MinMaxScaler, error) {
	if len(vectors) == 0 {
		return nil, ErrNoSamples
	}
	dims := len(vectors[0])

	min := make([]float64, dims)
	max := make([]float64, dims)
	copy(min, vectors[0])
	copy(max, vectors[0])

	for _, v := range vectors[1:] {
		if len(v) != dims {
			return nil, fmt.Errorf("preprocess: vector has %d dims, want %d", len(v), dims)
		}
		for d, x := range v {
			if x < min[d] {
				min[d] = x
			}
			if x > max[d] {
				max[d] = x
			}
		}
	}

	span := make([]float64, dims)
	for d := range span {
		span[d] = max[d] - min[d]
	}
	return &MinMaxScaler{min: min, span: span}, nil
}

// Transform scales one vector. Constant dimensions map to zero.
func (s *MinMaxScaler) Transform(vector []float64) []float64 {
	out := make([]float64, len(vector))
	for d, x := range vector {
		if s.span[d] == 0 {
			out[d] = 0
			continue
		}
		out[d] = (x - s.min[d]) / s.span[d]
	}
	return out
}

// TransformAll scales a batch of vectors.
func (s *MinMaxScaler) TransformAll(vectors [][]float64) [][]float64 {
	out := make([][]float64, len(vectors))
	for i, v := range vectors {
		out[i] = s.Transform(v)
	}
	return out
}
