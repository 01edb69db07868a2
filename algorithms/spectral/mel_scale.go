package spectral

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// HTK mel scale constants
const (
	MelScalar = 2595.0
	MelBreak  = 700.0
)

// HzToMel converts frequency in Hz to mel scale
func HzToMel(hz float64) float64 {
	return MelScalar * math.Log10(1.0+hz/MelBreak)
}

// MelToHz converts mel scale to frequency in Hz
func MelToHz(mel float64) float64 {
	return MelBreak * (math.Pow(10.0, mel/MelScalar) - 1.0)
}

// MelBreakpoints returns numFilters+2 frequencies in Hz, equally spaced on
// the mel axis between lowFreq and highFreq. Both end points are returned
// exactly as given rather than round-tripped through the mel scale.
func MelBreakpoints(lowFreq, highFreq float64, numFilters int) []float64 {
	if numFilters <= 0 {
		return []float64{}
	}

	lowMel := HzToMel(lowFreq)
	highMel := HzToMel(highFreq)
	melStep := (highMel - lowMel) / float64(numFilters+1)

	points := make([]float64, numFilters+2)
	for i := range points {
		points[i] = MelToHz(lowMel + float64(i)*melStep)
	}
	points[0] = lowFreq
	points[numFilters+1] = highFreq

	return points
}

// MelFilterBankParams fully determines a filter bank
type MelFilterBankParams struct {
	SampleRate  int     `json:"sample_rate"`
	FrameLength int     `json:"frame_length"` // samples per analysis frame
	NumFilters  int     `json:"num_filters"`
	LowFreq     float64 `json:"low_freq"`
	HighFreq    float64 `json:"high_freq"` // 0 means sampleRate/2
}

// withDefaults resolves HighFreq
func (p MelFilterBankParams) withDefaults() MelFilterBankParams {
	if p.HighFreq == 0 {
		p.HighFreq = float64(p.SampleRate) / 2.0
	}
	return p
}

// Validate checks the parameters without building the bank
func (p MelFilterBankParams) Validate() error {
	p = p.withDefaults()

	switch {
	case p.SampleRate <= 0:
		return fmt.Errorf("invalid sample rate: %d", p.SampleRate)
	case p.FrameLength < 2:
		return fmt.Errorf("invalid frame length: %d", p.FrameLength)
	case p.NumFilters <= 0:
		return fmt.Errorf("invalid number of mel filters: %d", p.NumFilters)
	case !(p.LowFreq >= 0):
		return fmt.Errorf("low frequency must be non-negative, got %f", p.LowFreq)
	case !(p.HighFreq > p.LowFreq):
		return fmt.Errorf("high frequency (%f) must exceed low frequency (%f)", p.HighFreq, p.LowFreq)
	case !(p.HighFreq <= float64(p.SampleRate)/2.0):
		return fmt.Errorf("high frequency (%f) exceeds Nyquist (%f)", p.HighFreq, float64(p.SampleRate)/2.0)
	}

	return nil
}

// HalfLength is the number of spectrum bins the bank covers
func (p MelFilterBankParams) HalfLength() int {
	return p.FrameLength / 2
}

// MelFilterBank is a dense triangular filter matrix of shape
// [halfLength × numFilters]. It is immutable after construction and may
// be shared by any number of goroutines without locking.
type MelFilterBank struct {
	params      MelFilterBankParams
	breakpoints []float64
	response    *mat.Dense
}

// NewMelFilterBank builds the filter bank for the given parameters
func NewMelFilterBank(params MelFilterBankParams) (*MelFilterBank, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	params = params.withDefaults()

	halfLength := params.HalfLength()
	breakpoints := MelBreakpoints(params.LowFreq, params.HighFreq, params.NumFilters)
	freqs := BinFrequencies(halfLength, params.FrameLength, params.SampleRate)

	response := mat.NewDense(halfLength, params.NumFilters, nil)
	for j := 0; j < params.NumFilters; j++ {
		rising, peak, falling := breakpoints[j], breakpoints[j+1], breakpoints[j+2]
		for k, f := range freqs {
			response.Set(k, j, triangle(f, rising, peak, falling))
		}
	}

	return &MelFilterBank{
		params:      params,
		breakpoints: breakpoints,
		response:    response,
	}, nil
}

// triangle evaluates one filter at frequency f. The falling slope is
// (f−falling)/(peak−falling), which is positive because both terms are
// negative inside the triangle.
func triangle(f, rising, peak, falling float64) float64 {
	switch {
	case f < rising:
		return 0
	case f < peak:
		return (f - rising) / (peak - rising)
	case f < falling:
		return (f - falling) / (peak - falling)
	default:
		return 0
	}
}

// ResponseAt evaluates filter j (0-based) at an arbitrary frequency in Hz
func (fb *MelFilterBank) ResponseAt(frequency float64, filter int) float64 {
	if filter < 0 || filter >= fb.params.NumFilters {
		return 0
	}
	return triangle(frequency, fb.breakpoints[filter], fb.breakpoints[filter+1], fb.breakpoints[filter+2])
}

// Response returns the stored response of a filter at a spectrum bin
func (fb *MelFilterBank) Response(bin, filter int) float64 {
	return fb.response.At(bin, filter)
}

// Filter returns a copy of one filter's response across all bins
func (fb *MelFilterBank) Filter(filter int) []float64 {
	return mat.Col(nil, filter, fb.response)
}

// Apply computes the filtered energy of each band:
// Ps_j = Σ_bin P[bin]·H[bin, j]
func (fb *MelFilterBank) Apply(magnitude []float64) ([]float64, error) {
	halfLength := fb.params.HalfLength()
	if len(magnitude) != halfLength {
		return nil, fmt.Errorf("spectrum length (%d) doesn't match filter bank (%d)", len(magnitude), halfLength)
	}

	energies := mat.NewVecDense(fb.params.NumFilters, nil)
	energies.MulVec(fb.response.T(), mat.NewVecDense(halfLength, magnitude))

	return energies.RawVector().Data, nil
}

// Breakpoints returns a copy of the numFilters+2 triangle corner frequencies
func (fb *MelFilterBank) Breakpoints() []float64 {
	points := make([]float64, len(fb.breakpoints))
	copy(points, fb.breakpoints)
	return points
}

// NumFilters returns the number of bands
func (fb *MelFilterBank) NumFilters() int {
	return fb.params.NumFilters
}

// HalfLength returns the number of spectrum bins covered
func (fb *MelFilterBank) HalfLength() int {
	return fb.params.HalfLength()
}

// Params returns the resolved construction parameters
func (fb *MelFilterBank) Params() MelFilterBankParams {
	return fb.params
}

// Matrix returns a copy of the response matrix
func (fb *MelFilterBank) Matrix() *mat.Dense {
	return mat.DenseCopyOf(fb.response)
}
