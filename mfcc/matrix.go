package mfcc

import (
	"gonum.org/v1/gonum/mat"

	"github.com/RyanBlaney/sonido-mfcc/algorithms/common"
)

// FeatureVector is the pooled, fixed-length output of one extraction
type FeatureVector []float64

// FrameRecord keeps the intermediate values of one accepted frame
type FrameRecord struct {
	Index             int       `json:"index" yaml:"index"`                             // nominal frame index
	LogPower          []float64 `json:"log_power" yaml:"log_power"`                     // 10·log10(|X|²) per bin
	FilterLogEnergies []float64 `json:"filter_log_energies" yaml:"filter_log_energies"` // cepstral input, one per filter
	Coefficients      []float64 `json:"coefficients" yaml:"coefficients"`               // liftered, before normalisation
}

// CoefficientMatrix stacks one column of cepstral coefficients per
// retained frame. Its column count depends on the silence gate, not only
// on the signal duration.
type CoefficientMatrix struct {
	rows  int
	dense *mat.Dense // nil when no frame was retained
}

func newCoefficientMatrix(rows int, columns [][]float64) *CoefficientMatrix {
	m := &CoefficientMatrix{rows: rows}
	if len(columns) == 0 {
		return m
	}

	m.dense = mat.NewDense(rows, len(columns), nil)
	for j, col := range columns {
		m.dense.SetCol(j, col)
	}
	return m
}

// Rows returns the number of coefficients per frame
func (m *CoefficientMatrix) Rows() int {
	return m.rows
}

// Columns returns the number of retained frames
func (m *CoefficientMatrix) Columns() int {
	if m.dense == nil {
		return 0
	}
	_, c := m.dense.Dims()
	return c
}

// Column returns a copy of frame j's coefficients, or nil when j is not
// a retained frame
func (m *CoefficientMatrix) Column(j int) []float64 {
	if j < 0 || j >= m.Columns() {
		return nil
	}
	return mat.Col(nil, j, m.dense)
}

// Dense returns a copy of the matrix, or nil when it has no columns
func (m *CoefficientMatrix) Dense() *mat.Dense {
	if m.dense == nil {
		return nil
	}
	return mat.DenseCopyOf(m.dense)
}

// normalize applies the whole-matrix z-score in place
func (m *CoefficientMatrix) normalize() common.MatrixStats {
	return common.GlobalZScore(m.dense)
}

// Pool averages across frames into a FeatureVector of length Rows. With
// no columns the vector is all zeros.
func (m *CoefficientMatrix) Pool() FeatureVector {
	return FeatureVector(common.RowMeans(m.dense, m.rows))
}
