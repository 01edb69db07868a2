package spectral

import (
	"math"
)

// DefaultPowerFloor keeps 10·log10 finite for empty bins (-100 dB)
const DefaultPowerFloor = 1e-10

// PowerSpectrum converts magnitude spectra into power and log-power.
// The log-power spectrum is kept per frame for energy bookkeeping; it is
// not part of the cepstral path.
type PowerSpectrum struct {
	floor float64
}

// NewPowerSpectrum creates a new power spectrum calculator.
// A non-positive floor falls back to DefaultPowerFloor.
func NewPowerSpectrum(floor float64) *PowerSpectrum {
	if floor <= 0 {
		floor = DefaultPowerFloor
	}
	return &PowerSpectrum{floor: floor}
}

// Compute returns |X[k]|² for every bin
func (ps *PowerSpectrum) Compute(magnitudeSpectrum []float64) []float64 {
	if len(magnitudeSpectrum) == 0 {
		return []float64{}
	}

	power := make([]float64, len(magnitudeSpectrum))
	for i, mag := range magnitudeSpectrum {
		power[i] = mag * mag
	}

	return power
}

// ComputeLog returns 10·log10(|X[k]|²) per bin, with the power clamped to
// the floor first.
func (ps *PowerSpectrum) ComputeLog(magnitudeSpectrum []float64) []float64 {
	if len(magnitudeSpectrum) == 0 {
		return []float64{}
	}

	logPower := make([]float64, len(magnitudeSpectrum))
	for i, mag := range magnitudeSpectrum {
		power := mag * mag
		if power < ps.floor {
			power = ps.floor
		}
		logPower[i] = 10 * math.Log10(power)
	}

	return logPower
}

// Floor returns the power floor in linear units
func (ps *PowerSpectrum) Floor() float64 {
	return ps.floor
}
