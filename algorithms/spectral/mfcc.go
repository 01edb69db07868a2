package spectral

import (
	"fmt"
	"math"
)

// DefaultEnergyFloor is the smallest filter energy passed to the logarithm
const DefaultEnergyFloor = 1e-10

// Cepstrum turns filter-bank energies into liftered cepstral coefficients.
//
// The cosine transform is unnormalised and starts at j = 1:
//
//	c[j−1] = Σ_{k=1..N} X[k−1]·cos(π·j·(k−0.5)/N),  j = 1..numCoefficients
//
// Stored feature vectors depend on this exact form, so it must not be
// replaced by the orthonormal DCT-II. The cosine table and lifter weights
// are computed once; a Cepstrum is read-only afterwards and safe for
// concurrent use.
type Cepstrum struct {
	numCoefficients int
	numFilters      int
	energyFloor     float64
	cosTable        [][]float64 // [numCoefficients][numFilters]
	lifter          []float64   // first numCoefficients weights
}

// NewCepstrum precomputes the transform for the given sizes
func NewCepstrum(numCoefficients, numFilters int, energyFloor float64) (*Cepstrum, error) {
	if numCoefficients <= 0 {
		return nil, fmt.Errorf("invalid number of coefficients: %d", numCoefficients)
	}
	if numFilters <= 0 {
		return nil, fmt.Errorf("invalid number of filters: %d", numFilters)
	}
	if energyFloor <= 0 {
		energyFloor = DefaultEnergyFloor
	}

	return &Cepstrum{
		numCoefficients: numCoefficients,
		numFilters:      numFilters,
		energyFloor:     energyFloor,
		cosTable:        dctTable(numCoefficients, numFilters),
		lifter:          LifterWeights(numCoefficients)[:numCoefficients],
	}, nil
}

func dctTable(numCoefficients, numFilters int) [][]float64 {
	table := make([][]float64, numCoefficients)
	for j := 1; j <= numCoefficients; j++ {
		row := make([]float64, numFilters)
		for k := 1; k <= numFilters; k++ {
			row[k-1] = math.Cos(math.Pi * float64(j) * (float64(k) - 0.5) / float64(numFilters))
		}
		table[j-1] = row
	}
	return table
}

// LogEnergies returns the natural log of each energy, clamped to floor
// first so the result is always finite.
func LogEnergies(energies []float64, floor float64) []float64 {
	logs := make([]float64, len(energies))
	for i, e := range energies {
		if !(e > floor) { // also catches NaN
			e = floor
		}
		logs[i] = math.Log(e)
	}
	return logs
}

// DCT applies the unnormalised cosine transform to log energies
func DCT(logEnergies []float64, numCoefficients int) []float64 {
	return applyTable(dctTable(numCoefficients, len(logEnergies)), logEnergies)
}

func applyTable(table [][]float64, x []float64) []float64 {
	coeffs := make([]float64, len(table))
	for j, row := range table {
		sum := 0.0
		for k := 0; k < len(row) && k < len(x); k++ {
			sum += x[k] * row[k]
		}
		coeffs[j] = sum
	}
	return coeffs
}

// LifterWeights returns w[i] = 1 + n·sin(π·i/(2n−1)) for i = 0..2n−1.
// Only the first n weights are applied to an n-coefficient vector.
func LifterWeights(n int) []float64 {
	if n <= 0 {
		return []float64{}
	}

	weights := make([]float64, 2*n)
	denominator := float64(2*n - 1)
	for i := range weights {
		weights[i] = 1.0 + float64(n)*math.Sin(math.Pi*float64(i)/denominator)
	}
	return weights
}

// Lifter multiplies coefficients element-wise by weights in place
func Lifter(coeffs, weights []float64) {
	for i := 0; i < len(coeffs) && i < len(weights); i++ {
		coeffs[i] *= weights[i]
	}
}

// Compute turns one frame of filter energies into its log energies and
// liftered cepstral coefficients.
func (c *Cepstrum) Compute(energies []float64) (logEnergies, coeffs []float64, err error) {
	if len(energies) != c.numFilters {
		return nil, nil, fmt.Errorf("expected %d filter energies, got %d", c.numFilters, len(energies))
	}

	logEnergies = LogEnergies(energies, c.energyFloor)
	coeffs = applyTable(c.cosTable, logEnergies)
	Lifter(coeffs, c.lifter)

	return logEnergies, coeffs, nil
}

// NumCoefficients returns the output length
func (c *Cepstrum) NumCoefficients() int {
	return c.numCoefficients
}

// NumFilters returns the expected input length
func (c *Cepstrum) NumFilters() int {
	return c.numFilters
}

// LifterCoefficients returns a copy of the applied lifter weights
func (c *Cepstrum) LifterCoefficients() []float64 {
	weights := make([]float64, len(c.lifter))
	copy(weights, c.lifter)
	return weights
}
