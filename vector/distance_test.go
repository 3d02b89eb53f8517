package vector

import (
	"errors"
	"math"
	"testing"
)

func TestCosineSimilarity(t *testing.T) {
	a := []float32{1, 0}
	b := []float32{0, 1}
	c := []float32{1, 0}

	// Orthogonal vectors -> similarity 0
	if sim, err := CosineSimilarity(a, b); err != nil || sim != 0 {
		t.Fatalf("CosineSimilarity(a,b) = %v, %v; want 0, nil", sim, err)
	}

	// Identical vectors -> similarity 1
	if sim, err := CosineSimilarity(a, c); err != nil || math.Abs(sim-1) > 1e-6 {
		t.Fatalf("CosineSimilarity(a,c) = %v, %v; want 1, nil", sim, err)
	}

	// Opposite vectors -> similarity -1
	if sim, err := CosineSimilarity([]float32{2, 0}, []float32{-3, 0}); err != nil || math.Abs(sim+1) > 1e-6 {
		t.Fatalf("CosineSimilarity(opposite) = %v, %v; want -1, nil", sim, err)
	}
}

func TestCosineSimilarity_ZeroMagnitude(t *testing.T) {
	sim, err := CosineSimilarity([]float32{0, 0, 0}, []float32{1, 2, 3})
	if err != nil {
		t.Fatalf("CosineSimilarity(zero, v) failed: %v", err)
	}
	if sim != 0 || math.IsNaN(sim) {
		t.Fatalf("CosineSimilarity(zero, v) = %v, want 0", sim)
	}

	sim, err = CosineSimilarity(nil, nil)
	if err != nil || sim != 0 {
		t.Fatalf("CosineSimilarity(nil, nil) = %v, %v; want 0, nil", sim, err)
	}
}

func TestCosineSimilarity_DimensionMismatch(t *testing.T) {
	_, err := CosineSimilarity([]float32{1, 0}, []float32{1, 0, 0})
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("CosineSimilarity mismatch err = %v, want ErrDimensionMismatch", err)
	}
}

func TestMagnitude(t *testing.T) {
	if m := Magnitude([]float32{3, 4}); math.Abs(m-5) > 1e-6 {
		t.Fatalf("Magnitude(3,4) = %v, want 5", m)
	}
	if m := Magnitude(nil); m != 0 {
		t.Fatalf("Magnitude(nil) = %v, want 0", m)
	}
}
