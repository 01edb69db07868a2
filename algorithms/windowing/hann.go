package windowing

// Hann represents a Hann window evaluated on the centred index set:
//
//	w[n] = 0.5 + 0.5·cos(2πn/(L−1))
type Hann struct {
	size         int
	coefficients []float64
}

// NewHann creates a new Hann window
func NewHann(size int) *Hann {
	h := &Hann{
		size: size,
	}
	h.generate()
	return h
}

func (h *Hann) generate() {
	h.coefficients = raisedCosine(h.size, 0.5, 0.5)
}

// Apply applies the window to a frame (creates new array).
// Returns nil when the frame length does not match the window size.
func (h *Hann) Apply(frame []float64) []float64 {
	return applyCoefficients(h.coefficients, frame)
}

// ApplyInPlace applies the window to a frame in-place
func (h *Hann) ApplyInPlace(frame []float64) error {
	return applyCoefficientsInPlace(h.coefficients, frame)
}

// GetCoefficients returns a copy of the window coefficients
func (h *Hann) GetCoefficients() []float64 {
	return copyCoefficients(h.coefficients)
}

// GetSize returns the window size
func (h *Hann) GetSize() int {
	return h.size
}

// GetType returns the window type
func (h *Hann) GetType() Type {
	return TypeHann
}
