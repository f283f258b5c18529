package model

import "sort"

// The feature schema is fixed: every document is reduced to 108 normalized
// numbers in the same order. Four scalar style markers are followed by four
// distributions of 26 bins each (counts 1..25 plus a remainder bin).
const (
	// NumFeatures is the width of every feature vector.
	NumFeatures = 108

	// BinRange is the highest explicit count tracked by each distribution.
	BinRange = 25

	// DistWidth is the number of bins per distribution (1..BinRange + remainder).
	DistWidth = BinRange + 1
)

// Offsets of each feature block within a vector.
const (
	FeatHapax        = 0 // hapax legomena / unique words
	FeatDis          = 1 // dis legomena / unique words
	FeatRichness     = 2 // unique words / total words
	FeatReadability  = 3 // Flesch reading ease / 100
	FeatSentenceLen  = 4 // sentence length in words, 26 bins
	FeatWordLen      = FeatSentenceLen + DistWidth
	FeatPronouns     = FeatWordLen + DistWidth
	FeatConjunctions = FeatPronouns + DistWidth
)

// FeatureVector is an ordered sequence of NumFeatures normalized values.
// Vectors are created once per document and never mutated afterwards.
type FeatureVector []float64

// Valid reports whether the vector has the expected dimensionality.
func (v FeatureVector) Valid() bool {
	return len(v) == NumFeatures
}

// Clone returns an independent copy of the vector.
func (v FeatureVector) Clone() FeatureVector {
	out := make(FeatureVector, len(v))
	copy(out, v)
	return out
}

// LabeledSample pairs a feature vector with the author it belongs to.
// Samples are read-only once constructed.
type LabeledSample struct {
	Author   string        `json:"author"`
	Document string        `json:"document,omitempty"` // source file, for diagnostics
	Features FeatureVector `json:"features"`
}

// Dataset is a collection of labeled samples with a fixed class set.
type Dataset []LabeledSample

// Len returns the number of samples.
func (d Dataset) Len() int {
	return len(d)
}

// Classes returns the sorted set of author labels present in the dataset.
func (d Dataset) Classes() []string {
	seen := make(map[string]bool)
	var classes []string
	for _, s := range d {
		if !seen[s.Author] {
			seen[s.Author] = true
			classes = append(classes, s.Author)
		}
	}
	sort.Strings(classes)
	return classes
}

// ByClass returns sample indices grouped by author, keyed by label.
func (d Dataset) ByClass() map[string][]int {
	groups := make(map[string][]int)
	for i, s := range d {
		groups[s.Author] = append(groups[s.Author], i)
	}
	return groups
}

// Vectors returns the feature vectors of all samples in dataset order.
func (d Dataset) Vectors() [][]float64 {
	out := make([][]float64, len(d))
	for i, s := range d {
		out[i] = s.Features
	}
	return out
}

// Labels returns the author labels of all samples in dataset order.
func (d Dataset) Labels() []string {
	out := make([]string, len(d))
	for i, s := range d {
		out[i] = s.Author
	}
	return out
}
