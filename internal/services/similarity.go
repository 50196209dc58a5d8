package services

import "math"

// CosineSimilarity computes the cosine of the angle between two embedding
// vectors, in [-1, 1]. Vectors of unequal length are a hard error; a zero
// vector yields 0 (no signal, not an error), matching how an unembedded
// profile should rank neutral rather than fail.
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, &DimensionMismatchError{LenA: len(a), LenB: len(b)}
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// SimilarityToMatchScore maps a cosine similarity onto the 0-100 match score
// shown to recruiters: -1 -> 0, 0 -> 50, 1 -> 100, rounded to the nearest
// integer. Out-of-range inputs are clamped.
func SimilarityToMatchScore(similarity float64) int {
	normalized := (similarity + 1) / 2
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}
	return int(math.Round(normalized * 100))
}
