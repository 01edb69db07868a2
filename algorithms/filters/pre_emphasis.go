package filters

import (
	"fmt"
)

// PreEmphasis implements a first-order pre-emphasis filter.
//
// The filter implements the transfer function:
// H(z) = 1 - α*z^-1
//
// With the difference equation:
// y[n] = x[n] - α*x[n-1],  y[0] = x[0]
//
// α = 0 makes the filter an identity copy.
//
// References:
//   - L.R. Rabiner, R.W. Schafer, "Digital Processing of Speech Signals",
//     Prentice-Hall, 1978, Chapter 4
type PreEmphasis struct {
	coefficient float64 // Pre-emphasis coefficient α
	lastSample  float64 // Previous input sample x[n-1]
	primed      bool    // false until the first sample has been seen
}

// NewPreEmphasis creates a pre-emphasis filter with specified coefficient.
//
// Parameters:
//   - coefficient: Pre-emphasis coefficient α, 0 ≤ α < 1
//     Typical speech values are 0.95-0.97
func NewPreEmphasis(coefficient float64) (*PreEmphasis, error) {
	if err := ValidatePreEmphasis(coefficient); err != nil {
		return nil, err
	}

	return &PreEmphasis{
		coefficient: coefficient,
	}, nil
}

// ValidatePreEmphasis checks that α lies in [0, 1)
func ValidatePreEmphasis(coefficient float64) error {
	if coefficient < 0.0 || coefficient >= 1.0 {
		return fmt.Errorf("pre-emphasis coefficient must be in [0, 1), got %f", coefficient)
	}
	return nil
}

// Process applies pre-emphasis filtering to a single sample
func (pe *PreEmphasis) Process(input float64) float64 {
	if !pe.primed {
		pe.primed = true
		pe.lastSample = input
		return input
	}

	output := input - pe.coefficient*pe.lastSample
	pe.lastSample = input

	return output
}

// ProcessBuffer applies pre-emphasis to an entire buffer of samples.
// The filter state is reset first, so each buffer is treated as an
// independent signal.
func (pe *PreEmphasis) ProcessBuffer(input []float64) []float64 {
	pe.Reset()

	output := make([]float64, len(input))
	if pe.coefficient == 0 {
		copy(output, input)
		return output
	}

	for i, sample := range input {
		output[i] = pe.Process(sample)
	}
	return output
}

// Reset clears the filter's internal state
func (pe *PreEmphasis) Reset() {
	pe.lastSample = 0.0
	pe.primed = false
}

// GetCoefficient returns the coefficient
func (pe *PreEmphasis) GetCoefficient() float64 {
	return pe.coefficient
}

// ApplyPreEmphasis is the stateless form of PreEmphasis.ProcessBuffer
func ApplyPreEmphasis(input []float64, coefficient float64) ([]float64, error) {
	pe, err := NewPreEmphasis(coefficient)
	if err != nil {
		return nil, err
	}
	return pe.ProcessBuffer(input), nil
}
