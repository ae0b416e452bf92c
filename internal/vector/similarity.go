package vector

import "gonum.org/v1/gonum/floats"

// CosineSimilarity returns the cosine of the angle between a and b.
// A zero-norm vector has similarity 0 with everything.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	na, nb := floats.Norm(a, 2), floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 0
	}
	return floats.Dot(a, b) / (na * nb)
}

// CosineDistance returns 1 - CosineSimilarity(a, b), clipped to [0, 2].
func CosineDistance(a, b []float64) float64 {
	return clipDistance(1 - CosineSimilarity(a, b))
}

func clipDistance(d float64) float64 {
	if d < 0 {
		return 0
	}
	if d > 2 {
		return 2
	}
	return d
}
