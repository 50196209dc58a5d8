package services

import (
	"errors"
	"math"
	"testing"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a        []float32
		b        []float32
		expected float64
	}{
		{
			name:     "identical vectors",
			a:        []float32{1, 2, 3},
			b:        []float32{1, 2, 3},
			expected: 1.0,
		},
		{
			name:     "opposite vectors",
			a:        []float32{1, 2, 3},
			b:        []float32{-1, -2, -3},
			expected: -1.0,
		},
		{
			name:     "orthogonal vectors",
			a:        []float32{1, 0},
			b:        []float32{0, 1},
			expected: 0.0,
		},
		{
			name:     "zero vector on left",
			a:        []float32{0, 0, 0},
			b:        []float32{1, 2, 3},
			expected: 0.0,
		},
		{
			name:     "zero vector on right",
			a:        []float32{1, 2, 3},
			b:        []float32{0, 0, 0},
			expected: 0.0,
		},
		{
			name:     "scaled vectors keep similarity",
			a:        []float32{1, 2, 3},
			b:        []float32{2, 4, 6},
			expected: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CosineSimilarity(tt.a, tt.b)
			if err != nil {
				t.Fatalf("CosineSimilarity() error = %v", err)
			}
			if math.Abs(got-tt.expected) > 1e-6 {
				t.Errorf("CosineSimilarity() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCosineSimilaritySymmetry(t *testing.T) {
	a := []float32{0.3, -0.7, 0.2, 0.9}
	b := []float32{-0.1, 0.4, 0.8, -0.5}

	ab, err := CosineSimilarity(a, b)
	if err != nil {
		t.Fatalf("CosineSimilarity(a, b) error = %v", err)
	}
	ba, err := CosineSimilarity(b, a)
	if err != nil {
		t.Fatalf("CosineSimilarity(b, a) error = %v", err)
	}
	if math.Abs(ab-ba) > 1e-9 {
		t.Errorf("similarity not symmetric: %v vs %v", ab, ba)
	}
}

func TestCosineSimilarityDimensionMismatch(t *testing.T) {
	_, err := CosineSimilarity([]float32{1, 2, 3}, []float32{1, 2})
	if err == nil {
		t.Fatal("expected error for mismatched dimensions")
	}

	var mismatch *DimensionMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected DimensionMismatchError, got %T", err)
	}
	if mismatch.LenA != 3 || mismatch.LenB != 2 {
		t.Errorf("mismatch lengths = (%d, %d), want (3, 2)", mismatch.LenA, mismatch.LenB)
	}
}

func TestSimilarityToMatchScore(t *testing.T) {
	tests := []struct {
		name       string
		similarity float64
		expected   int
	}{
		{"identical maps to 100", 1.0, 100},
		{"orthogonal maps to 50", 0.0, 50},
		{"opposite maps to 0", -1.0, 0},
		{"midpoint positive", 0.5, 75},
		{"midpoint negative", -0.5, 25},
		{"rounds to nearest", 0.111, 56},
		{"clamps above one", 1.0000001, 100},
		{"clamps below minus one", -1.5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SimilarityToMatchScore(tt.similarity); got != tt.expected {
				t.Errorf("SimilarityToMatchScore(%v) = %d, want %d", tt.similarity, got, tt.expected)
			}
		})
	}
}

func TestSimilarityToMatchScoreMonotonicAndBounded(t *testing.T) {
	prev := -1
	for s := -1.2; s <= 1.2; s += 0.01 {
		score := SimilarityToMatchScore(s)
		if score < 0 || score > 100 {
			t.Fatalf("score %d out of [0, 100] for similarity %v", score, s)
		}
		if score < prev {
			t.Fatalf("score decreased from %d to %d at similarity %v", prev, score, s)
		}
		prev = score
	}
}
