package utils

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// RandomArray returns 'size' samples from U(-1/sqrt(v), 1/sqrt(v)).
func RandomArray(size int, v float64, rng *rand.Rand) []float64 {
	min := -1.0 / math.Sqrt(v+1e-12)
	max := 1.0 / math.Sqrt(v+1e-12)
	out := make([]float64, size)
	for i := 0; i < size; i++ {
		out[i] = min + (max-min)*rng.Float64()
	}
	return out
}

// MatrixMean returns the mean over all entries of m.
func MatrixMean(m *mat.Dense) float64 {
	r, c := m.Dims()
	if r == 0 || c == 0 {
		return 0
	}
	sum := 0.0
	for i := 0; i < r; i++ {
		sum += floats.Sum(m.RawRowView(i))
	}
	return sum / float64(r*c)
}

// NormalizeRows returns a copy of m with each row scaled to unit L2 norm.
// All-zero rows are left as-is.
func NormalizeRows(m *mat.Dense) *mat.Dense {
	r, c := m.Dims()
	out := mat.DenseCopyOf(m)
	for i := 0; i < r; i++ {
		row := out.RawRowView(i)
		n := floats.Norm(row, 2)
		if n == 0 {
			continue
		}
		for j := 0; j < c; j++ {
			row[j] /= n
		}
	}
	return out
}

// Softmax overwrites logits with softmax(logits), returning the probability
// of index gold for convenience.
func Softmax(logits []float64, gold int) float64 {
	max := floats.Max(logits)
	sum := 0.0
	for i, v := range logits {
		e := math.Exp(v - max)
		logits[i] = e
		sum += e
	}
	for i := range logits {
		logits[i] /= sum
	}
	return logits[gold]
}
