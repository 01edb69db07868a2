package temporal

import (
	"fmt"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// AutocorrelationScaling selects how lag sums are scaled
type AutocorrelationScaling string

const (
	// ScalingUnbiased divides lag k by N−k
	ScalingUnbiased AutocorrelationScaling = "unbiased"
	// ScalingNone keeps the raw lag sums
	ScalingNone AutocorrelationScaling = "none"
)

// Silence gate defaults. Both were tuned empirically on 16-bit speech
// normalised to [-1, 1] and are exposed so they can be overridden.
const (
	DefaultGateThreshold   = 0.1
	DefaultGateExcludeLags = 20
)

// directAutocorrThreshold is the frame length below which the lag sums
// are computed directly rather than through the FFT
const directAutocorrThreshold = 64

// AutocorrelationGate decides whether a frame carries periodic signal.
// The peak of the frame's autocorrelation outside ±ExcludeLags samples of
// zero lag must reach Threshold; otherwise the frame is silence or noise.
type AutocorrelationGate struct {
	Threshold   float64                `json:"threshold" mapstructure:"threshold" yaml:"threshold"`
	ExcludeLags int                    `json:"exclude_lags" mapstructure:"exclude_lags" yaml:"exclude_lags"`
	Scaling     AutocorrelationScaling `json:"scaling" mapstructure:"scaling" yaml:"scaling"`
}

// DefaultAutocorrelationGate returns the gate with threshold 0.1,
// ±20-sample exclusion and unbiased scaling
func DefaultAutocorrelationGate() AutocorrelationGate {
	return AutocorrelationGate{
		Threshold:   DefaultGateThreshold,
		ExcludeLags: DefaultGateExcludeLags,
		Scaling:     ScalingUnbiased,
	}
}

// Validate checks the gate parameters
func (g AutocorrelationGate) Validate() error {
	if g.Threshold < 0 {
		return fmt.Errorf("gate threshold must be non-negative, got %f", g.Threshold)
	}
	if g.ExcludeLags < 0 {
		return fmt.Errorf("gate exclusion must be non-negative, got %d", g.ExcludeLags)
	}
	switch g.Scaling {
	case ScalingUnbiased, ScalingNone:
	default:
		return fmt.Errorf("unknown autocorrelation scaling: %q", g.Scaling)
	}
	return nil
}

// Peak returns the largest autocorrelation value at lags beyond the
// exclusion zone. The autocorrelation is symmetric, so only positive lags
// are examined. A frame too short to have such lags has peak 0.
func (g AutocorrelationGate) Peak(frame []float64) float64 {
	r := Autocorrelation(frame, g.Scaling)

	peak := 0.0
	found := false
	for k := g.ExcludeLags + 1; k < len(r); k++ {
		if !found || r[k] > peak {
			peak = r[k]
			found = true
		}
	}

	return peak
}

// Accept reports whether the frame passes the gate
func (g AutocorrelationGate) Accept(frame []float64) bool {
	return g.Peak(frame) >= g.Threshold
}

// Autocorrelation returns r[k] for lags k = 0..N−1:
//
//	r[k] = Σ_{n=0}^{N−1−k} x[n]·x[n+k]
//
// divided by N−k when scaling is ScalingUnbiased.
func Autocorrelation(x []float64, scaling AutocorrelationScaling) []float64 {
	n := len(x)
	if n == 0 {
		return []float64{}
	}

	var r []float64
	if n < directAutocorrThreshold {
		r = autocorrDirect(x)
	} else {
		r = autocorrFFT(x)
	}

	if scaling == ScalingUnbiased {
		for k := range r {
			r[k] /= float64(n - k)
		}
	}

	return r
}

func autocorrDirect(x []float64) []float64 {
	n := len(x)
	r := make([]float64, n)
	for k := 0; k < n; k++ {
		sum := 0.0
		for i := 0; i+k < n; i++ {
			sum += x[i] * x[i+k]
		}
		r[k] = sum
	}
	return r
}

// autocorrFFT zero-pads to 2N so the circular correlation equals the
// linear one, then takes IFFT(|FFT(x)|²).
func autocorrFFT(x []float64) []float64 {
	n := len(x)
	padded := make([]float64, 2*n)
	copy(padded, x)

	spectrum := fft.FFTReal(padded)
	for i, c := range spectrum {
		mag := cmplx.Abs(c)
		spectrum[i] = complex(mag*mag, 0)
	}

	corr := fft.IFFT(spectrum)
	r := make([]float64, n)
	for k := range r {
		r[k] = real(corr[k])
	}
	return r
}
