package stats

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DistanceMetric names a vector distance
type DistanceMetric string

const (
	EuclideanDistance DistanceMetric = "euclidean"
	ManhattanDistance DistanceMetric = "manhattan"
	CosineDistance    DistanceMetric = "cosine"
	PearsonDistance   DistanceMetric = "pearson"
)

// DistanceFunction computes the distance between two equal-length vectors
type DistanceFunction func(a, b []float64) float64

// ParseDistanceMetric resolves a metric name, case-insensitively
func ParseDistanceMetric(name string) (DistanceMetric, error) {
	metric := DistanceMetric(strings.ToLower(strings.TrimSpace(name)))
	switch metric {
	case EuclideanDistance, ManhattanDistance, CosineDistance, PearsonDistance:
		return metric, nil
	default:
		return "", fmt.Errorf("unknown distance metric: %q", name)
	}
}

// GetDistanceFunction returns the function for metric, Euclidean when
// the metric is unknown
func GetDistanceFunction(metric DistanceMetric) DistanceFunction {
	switch metric {
	case ManhattanDistance:
		return ManhattanDistanceFunc
	case CosineDistance:
		return CosineDistanceFunc
	case PearsonDistance:
		return PearsonDistanceFunc
	default:
		return EuclideanDistanceFunc
	}
}

// EuclideanDistanceFunc calculates the L2 distance
func EuclideanDistanceFunc(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}

// ManhattanDistanceFunc calculates the L1 distance
func ManhattanDistanceFunc(a, b []float64) float64 {
	return floats.Distance(a, b, 1)
}

// CosineDistanceFunc calculates 1 − cosine similarity. A zero vector is
// at distance 1 from everything.
func CosineDistanceFunc(a, b []float64) float64 {
	normA := floats.Norm(a, 2)
	normB := floats.Norm(b, 2)
	if normA == 0 || normB == 0 {
		return 1.0
	}
	return 1.0 - floats.Dot(a, b)/(normA*normB)
}

// CosineSimilarityFunc calculates cosine similarity
func CosineSimilarityFunc(a, b []float64) float64 {
	return 1.0 - CosineDistanceFunc(a, b)
}

// PearsonDistanceFunc calculates 1 − |r|. Constant vectors have no
// defined correlation and are at distance 1.
func PearsonDistanceFunc(a, b []float64) float64 {
	if len(a) < 2 {
		return 1.0
	}
	r := stat.Correlation(a, b, nil)
	if math.IsNaN(r) {
		return 1.0
	}
	return 1.0 - math.Abs(r)
}

// Distance checks the vector lengths and applies metric
func Distance(a, b []float64, metric DistanceMetric) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector length mismatch: %d vs %d", len(a), len(b))
	}
	if len(a) == 0 {
		return 0, fmt.Errorf("cannot compare empty vectors")
	}
	return GetDistanceFunction(metric)(a, b), nil
}

// DistanceMatrix computes symmetric pairwise distances
func DistanceMatrix(data [][]float64, metric DistanceMetric) ([][]float64, error) {
	n := len(data)
	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
	}

	for i := range n {
		for j := i + 1; j < n; j++ {
			d, err := Distance(data[i], data[j], metric)
			if err != nil {
				return nil, fmt.Errorf("vectors %d and %d: %w", i, j, err)
			}
			matrix[i][j] = d
			matrix[j][i] = d
		}
	}

	return matrix, nil
}
