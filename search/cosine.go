package search

import (
	"math"

	"github.com/fwojciec/docindex"
)

// Cosine returns the cosine similarity of a and b.
// Returns EDIMENSION if the vectors differ in length. A zero vector has
// similarity 0 with everything.
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, docindex.Errorf(docindex.EDIMENSION, "vector lengths differ: %d and %d", len(a), len(b))
	}
	return cosine(a, b, norm(a), norm(b)), nil
}

// cosine computes the similarity given precomputed norms.
func cosine(a, b []float32, na, nb float64) float64 {
	if na == 0 || nb == 0 {
		return 0
	}
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot / (na * nb)
}

func norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}
