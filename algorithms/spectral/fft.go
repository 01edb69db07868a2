package spectral

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// FFT provides Fast Fourier Transform functionality.
// It holds no state and is safe for concurrent use.
type FFT struct{}

// NewFFT creates a new FFT calculator
func NewFFT() *FFT {
	return &FFT{}
}

// Compute computes the discrete Fourier transform of a real frame.
// mjibson/go-dsp handles all sizes, including non-power-of-2 frame
// lengths such as 480 or 1323 samples.
func (f *FFT) Compute(x []float64) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}

	return fft.FFTReal(x)
}

// Magnitude returns |X[k]| for the first halfLength bins of the
// transform of x. The upper half of a real signal's spectrum mirrors the
// lower half, so it is never materialised by callers.
func (f *FFT) Magnitude(x []float64, halfLength int) []float64 {
	if len(x) == 0 || halfLength <= 0 {
		return []float64{}
	}

	spectrum := f.Compute(x)
	if halfLength > len(spectrum) {
		halfLength = len(spectrum)
	}

	magnitude := make([]float64, halfLength)
	for k := range magnitude {
		magnitude[k] = cmplx.Abs(spectrum[k])
	}

	return magnitude
}

// BinFrequencies returns the linear frequency in Hz of each of the first
// halfLength bins: k·sampleRate/frameLength.
func BinFrequencies(halfLength, frameLength, sampleRate int) []float64 {
	if halfLength <= 0 || frameLength <= 0 {
		return []float64{}
	}

	freqs := make([]float64, halfLength)
	for k := range freqs {
		freqs[k] = float64(k) * float64(sampleRate) / float64(frameLength)
	}

	return freqs
}

// PeakBin returns the index of the largest magnitude bin, or -1 for an
// empty spectrum.
func PeakBin(magnitude []float64) int {
	if len(magnitude) == 0 {
		return -1
	}

	peak := 0
	for k, v := range magnitude {
		if v > magnitude[peak] {
			peak = k
		}
	}

	return peak
}
