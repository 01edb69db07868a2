package filters

import (
	"fmt"
	"math"
)

// RASTA filter coefficients. The numerator is the negated 5-tap
// difference kernel [-2,-1,0,1,2] divided by the sum of its squares (10);
// the denominator is a one-pole smoother at 0.98.
//
// References:
//   - H. Hermansky, N. Morgan, "RASTA Processing of Speech",
//     IEEE Trans. Speech and Audio Processing, 1994
var (
	RastaNumerator   = rastaNumerator()
	RastaDenominator = []float64{1.0, -0.98}
)

func rastaNumerator() []float64 {
	kernel := []float64{-2, -1, 0, 1, 2}

	sumSquares := 0.0
	for _, k := range kernel {
		sumSquares += k * k
	}

	numer := make([]float64, len(kernel))
	for i, k := range kernel {
		numer[i] = -k / sumSquares
	}
	return numer
}

// rastaLogGuard keeps log(1+x) finite when an energy drops to -1
const rastaLogGuard = 1e-10

// RastaFilter is one channel of the RASTA IIR filter, run as a direct
// form I difference equation with zero initial state:
//
//	a0·y[n] = Σ b[i]·x[n-i] − Σ_{i≥1} a[i]·y[n-i]
type RastaFilter struct {
	b []float64
	a []float64

	inputs  []float64 // x[n-1], x[n-2], ...
	outputs []float64 // y[n-1], y[n-2], ...
}

// NewRastaFilter creates a single RASTA channel
func NewRastaFilter() *RastaFilter {
	f, _ := NewIIRFilter(RastaNumerator, RastaDenominator)
	return f
}

// NewIIRFilter creates a filter with arbitrary coefficients.
// a[0] must be non-zero.
func NewIIRFilter(b, a []float64) (*RastaFilter, error) {
	if len(b) == 0 || len(a) == 0 {
		return nil, fmt.Errorf("filter coefficients cannot be empty")
	}
	if a[0] == 0 {
		return nil, fmt.Errorf("leading denominator coefficient cannot be zero")
	}

	bn := make([]float64, len(b))
	an := make([]float64, len(a))
	for i := range b {
		bn[i] = b[i] / a[0]
	}
	for i := range a {
		an[i] = a[i] / a[0]
	}

	return &RastaFilter{
		b:       bn,
		a:       an,
		inputs:  make([]float64, len(b)-1),
		outputs: make([]float64, len(a)-1),
	}, nil
}

// Process feeds one sample through the filter
func (f *RastaFilter) Process(x float64) float64 {
	y := f.b[0] * x
	for i := 1; i < len(f.b); i++ {
		y += f.b[i] * f.inputs[i-1]
	}
	for i := 1; i < len(f.a); i++ {
		y -= f.a[i] * f.outputs[i-1]
	}

	shift(f.inputs, x)
	shift(f.outputs, y)

	return y
}

// ProcessBuffer filters a whole sequence from the current state
func (f *RastaFilter) ProcessBuffer(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = f.Process(v)
	}
	return out
}

// Reset zeroes the filter memory
func (f *RastaFilter) Reset() {
	clear(f.inputs)
	clear(f.outputs)
}

func shift(history []float64, newest float64) {
	if len(history) == 0 {
		return
	}
	copy(history[1:], history[:len(history)-1])
	history[0] = newest
}

// RastaBank smooths the per-band log energy trajectories across time.
// Each band owns one RastaFilter; frames must be fed in temporal order.
// A bank carries state between frames and is not safe for concurrent use;
// create one per signal.
type RastaBank struct {
	channels []*RastaFilter
}

// NewRastaBank creates one filter channel per band
func NewRastaBank(numBands int) *RastaBank {
	channels := make([]*RastaFilter, numBands)
	for i := range channels {
		channels[i] = NewRastaFilter()
	}
	return &RastaBank{channels: channels}
}

// ProcessFrame maps every band energy e through log(1+e), advances that
// band's filter by one step and maps back with exp(·)−1.
func (rb *RastaBank) ProcessFrame(energies []float64) ([]float64, error) {
	if len(energies) != len(rb.channels) {
		return nil, fmt.Errorf("expected %d band energies, got %d", len(rb.channels), len(energies))
	}

	out := make([]float64, len(energies))
	for j, e := range energies {
		x := 1.0 + e
		if !(x > rastaLogGuard) {
			x = rastaLogGuard
		}
		y := rb.channels[j].Process(math.Log(x))
		out[j] = math.Exp(y) - 1.0
	}

	return out, nil
}

// Reset clears every channel
func (rb *RastaBank) Reset() {
	for _, ch := range rb.channels {
		ch.Reset()
	}
}

// NumBands returns the number of channels
func (rb *RastaBank) NumBands() int {
	return len(rb.channels)
}
