package windowing

import (
	"fmt"
)

// Rectangular represents a box window: every coefficient is 1
type Rectangular struct {
	size         int
	coefficients []float64
}

// NewRectangular creates a new rectangular window
func NewRectangular(size int) *Rectangular {
	r := &Rectangular{
		size: size,
	}
	r.generate()
	return r
}

func (r *Rectangular) generate() {
	r.coefficients = make([]float64, r.size)
	for i := range r.coefficients {
		r.coefficients[i] = 1.0
	}
}

// Apply applies the window to a frame (creates new array)
func (r *Rectangular) Apply(frame []float64) []float64 {
	if len(frame) != r.size {
		return nil
	}

	// For rectangular window, just return a copy
	windowed := make([]float64, r.size)
	copy(windowed, frame)
	return windowed
}

// ApplyInPlace applies the window to a frame in-place
func (r *Rectangular) ApplyInPlace(frame []float64) error {
	if len(frame) != r.size {
		return fmt.Errorf("signal length (%d) doesn't match window size (%d)", len(frame), r.size)
	}

	return nil
}

// GetCoefficients returns a copy of the window coefficients
func (r *Rectangular) GetCoefficients() []float64 {
	return copyCoefficients(r.coefficients)
}

// GetSize returns the window size
func (r *Rectangular) GetSize() int {
	return r.size
}

// GetType returns the window type
func (r *Rectangular) GetType() Type {
	return TypeBox
}
