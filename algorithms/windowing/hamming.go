package windowing

// Hamming coefficients. These are the exact (non-rounded) values that
// place the first sidelobe null, not the textbook 0.54/0.46.
const (
	HammingAlpha = 0.53836
	HammingBeta  = 0.46164
)

// Hamming represents a Hamming window evaluated on the centred index set:
//
//	w[n] = 0.53836 + 0.46164·cos(2πn/(L−1))
type Hamming struct {
	size         int
	coefficients []float64
}

// NewHamming creates a new Hamming window
func NewHamming(size int) *Hamming {
	h := &Hamming{
		size: size,
	}
	h.generate()
	return h
}

func (h *Hamming) generate() {
	h.coefficients = raisedCosine(h.size, HammingAlpha, HammingBeta)
}

// Apply applies the window to a frame (creates new array)
func (h *Hamming) Apply(frame []float64) []float64 {
	return applyCoefficients(h.coefficients, frame)
}

// ApplyInPlace applies the window to a frame in-place
func (h *Hamming) ApplyInPlace(frame []float64) error {
	return applyCoefficientsInPlace(h.coefficients, frame)
}

// GetCoefficients returns a copy of the window coefficients
func (h *Hamming) GetCoefficients() []float64 {
	return copyCoefficients(h.coefficients)
}

// GetSize returns the window size
func (h *Hamming) GetSize() int {
	return h.size
}

// GetType returns the window type
func (h *Hamming) GetType() Type {
	return TypeHamming
}
