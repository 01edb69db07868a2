package windowing

import (
	"fmt"
	"math"
	"strings"
)

// Type names a window function
type Type string

const (
	TypeBox     Type = "box"
	TypeHamming Type = "hamming"
	TypeHann    Type = "hann"

	// TypeRectangular is accepted as an alias of TypeBox
	TypeRectangular Type = "rectangular"
)

// Window is a precomputed, read-only set of window coefficients.
// Implementations are safe for concurrent use once constructed.
type Window interface {
	Apply(frame []float64) []float64
	ApplyInPlace(frame []float64) error
	GetCoefficients() []float64
	GetSize() int
	GetType() Type
}

// ParseType resolves a window name, case-insensitively
func ParseType(name string) (Type, error) {
	switch Type(strings.ToLower(strings.TrimSpace(name))) {
	case TypeBox, TypeRectangular, "boxcar":
		return TypeBox, nil
	case TypeHamming:
		return TypeHamming, nil
	case TypeHann, "hanning":
		return TypeHann, nil
	default:
		return "", fmt.Errorf("unknown window type: %q", name)
	}
}

// New builds a window of the given type and size
func New(t Type, size int) (Window, error) {
	if size < 1 {
		return nil, fmt.Errorf("invalid window size: %d", size)
	}

	resolved, err := ParseType(string(t))
	if err != nil {
		return nil, err
	}

	switch resolved {
	case TypeHamming:
		return NewHamming(size), nil
	case TypeHann:
		return NewHann(size), nil
	default:
		return NewRectangular(size), nil
	}
}

// CenteredIndices returns the symmetric index set -half..half used to
// evaluate the cosine windows, where half = size/2. Even sizes use
// [-half, half) and odd sizes the inclusive [-half, half], so the result
// always has exactly size entries.
func CenteredIndices(size int) []int {
	if size <= 0 {
		return []int{}
	}

	half := size / 2
	end := half
	if 2*half != size {
		end = half + 1
	}

	indices := make([]int, 0, size)
	for n := -half; n < end; n++ {
		indices = append(indices, n)
	}

	return indices
}

// raisedCosine evaluates a + b·cos(2πn/(L−1)) over the centred indices
func raisedCosine(size int, a, b float64) []float64 {
	coefficients := make([]float64, size)
	if size == 1 {
		coefficients[0] = 1.0
		return coefficients
	}

	denominator := float64(size - 1)
	for i, n := range CenteredIndices(size) {
		coefficients[i] = a + b*math.Cos(2*math.Pi*float64(n)/denominator)
	}

	return coefficients
}

func applyCoefficients(coefficients, frame []float64) []float64 {
	if len(frame) != len(coefficients) {
		return nil
	}

	windowed := make([]float64, len(frame))
	for i, c := range coefficients {
		windowed[i] = frame[i] * c
	}

	return windowed
}

func applyCoefficientsInPlace(coefficients, frame []float64) error {
	if len(frame) != len(coefficients) {
		return fmt.Errorf("signal length (%d) doesn't match window size (%d)", len(frame), len(coefficients))
	}

	for i, c := range coefficients {
		frame[i] *= c
	}

	return nil
}

func copyCoefficients(coefficients []float64) []float64 {
	coeffs := make([]float64, len(coefficients))
	copy(coeffs, coefficients)
	return coeffs
}
