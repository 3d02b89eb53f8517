package vector

import (
	"errors"
	"fmt"
	"math"

	"github.com/viant/vec/search"
)

// ErrDimensionMismatch is returned when two embeddings that must be compared
// have different lengths. Vectors are never truncated or padded.
var ErrDimensionMismatch = errors.New("vector: dimension mismatch")

// MismatchError wraps ErrDimensionMismatch with the offending lengths.
func MismatchError(want, got int) error {
	return fmt.Errorf("%w: want %d, got %d", ErrDimensionMismatch, want, got)
}

// Magnitude returns the Euclidean norm of v. An empty vector has magnitude 0.
func Magnitude(v []float32) float64 {
	if len(v) == 0 {
		return 0
	}
	return float64(search.Float32s(v).Magnitude())
}

// Dot returns the dot product of a and b over their common prefix. Callers
// check lengths first.
func Dot(a, b []float32) float64 {
	var s float64
	for i := range a {
		s += float64(a[i]) * float64(b[i])
	}
	return s
}

// CosineWithMagnitude scores a against b using precomputed magnitudes. A zero
// magnitude on either side scores 0, and the result is clamped to [-1, 1] so
// rounding in the cached magnitudes never yields values outside the range.
func CosineWithMagnitude(a []float32, am float64, b []float32, bm float64) float64 {
	if am == 0 || bm == 0 {
		return 0
	}
	s := Dot(a, b) / (am * bm)
	switch {
	case math.IsNaN(s):
		return 0
	case s > 1:
		return 1
	case s < -1:
		return -1
	}
	return s
}

// CosineSimilarity computes the cosine similarity between two vectors. It
// returns ErrDimensionMismatch if the vectors have different lengths. When
// either vector has zero magnitude the similarity is 0.
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, MismatchError(len(a), len(b))
	}
	return CosineWithMagnitude(a, Magnitude(a), b, Magnitude(b)), nil
}
