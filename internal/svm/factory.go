package svm

import "hash/fnv"

// NewSeeded creates a Linear whose shuffle seed is derived from the base
// seed and a stable identity string ("ovr:<class>", "ovo:<a>|<b>"). Deriving
// the seed from the identity, not from submission order, keeps parallel
// training reproducible.
func NewSeeded(identity string, epochs int, lambda float64, baseSeed int64) *Linear {
	h := fnv.New64a()
	_, _ = h.Write([]byte(identity))
	return NewLinear(epochs, lambda, baseSeed^int64(h.Sum64()))
}
