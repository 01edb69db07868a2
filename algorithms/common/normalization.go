package common

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// MatrixStats holds the scalar statistics used by GlobalZScore
type MatrixStats struct {
	Mean   float64 `json:"mean" yaml:"mean"`
	StdDev float64 `json:"std_dev" yaml:"std_dev"`
	Count  int     `json:"count" yaml:"count"`
}

// GlobalZScore standardises a matrix in place with one scalar mean and one
// scalar population standard deviation computed over every element,
// rather than per row. A constant matrix (std = 0) becomes all zeros.
// A nil or empty matrix is left untouched.
func GlobalZScore(m *mat.Dense) MatrixStats {
	if m == nil || m.IsEmpty() {
		return MatrixStats{}
	}

	values := flatten(m)
	mean, std := stat.PopMeanStdDev(values, nil)
	stats := MatrixStats{Mean: mean, StdDev: std, Count: len(values)}

	m.Apply(func(_, _ int, v float64) float64 {
		if std == 0 {
			return 0
		}
		return (v - mean) / std
	}, m)

	return stats
}

// RowMeans averages each row across its columns. With zero columns the
// result is an all-zero vector of length rows, never a division by zero.
func RowMeans(m *mat.Dense, rows int) []float64 {
	means := make([]float64, rows)
	if m == nil || m.IsEmpty() {
		return means
	}

	r, c := m.Dims()
	if c == 0 {
		return means
	}

	for i := 0; i < r && i < rows; i++ {
		means[i] = Mean(mat.Row(nil, i, m))
	}

	return means
}

func flatten(m *mat.Dense) []float64 {
	r, c := m.Dims()
	values := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		values = append(values, m.RawRowView(i)...)
	}
	return values
}
