package mfcc

import (
	"github.com/RyanBlaney/sonido-mfcc/algorithms/filters"
	"github.com/RyanBlaney/sonido-mfcc/algorithms/spectral"
	"github.com/RyanBlaney/sonido-mfcc/algorithms/temporal"
	"github.com/RyanBlaney/sonido-mfcc/algorithms/windowing"
)

// WindowType selects the analysis window
type WindowType = windowing.Type

const (
	WindowBox     = windowing.TypeBox
	WindowHamming = windowing.TypeHamming
	WindowHann    = windowing.TypeHann
)

// GateConfig configures the per-frame silence gate
type GateConfig = temporal.AutocorrelationGate

// Defaults for ExtractionConfig
const (
	DefaultNumCoefficients = 40
	DefaultFrameDuration   = 0.03 // seconds
	DefaultOverlapPercent  = 50.0
	DefaultNumFilters      = 22
	DefaultWindow          = WindowHann
)

// ExtractionConfig holds every parameter of the MFCC pipeline
type ExtractionConfig struct {
	NumCoefficients int        `json:"n_mfcc" mapstructure:"n_mfcc" yaml:"n_mfcc"`
	FrameDuration   float64    `json:"frame_duration" mapstructure:"frame_duration" yaml:"frame_duration"` // seconds
	OverlapPercent  float64    `json:"overlap" mapstructure:"overlap" yaml:"overlap"`                      // 0 < overlap < 100
	Window          WindowType `json:"window" mapstructure:"window" yaml:"window"`
	NumFilters      int        `json:"n_filters" mapstructure:"n_filters" yaml:"n_filters"`
	MinFrequency    float64    `json:"f_min" mapstructure:"f_min" yaml:"f_min"`
	MaxFrequency    float64    `json:"f_max" mapstructure:"f_max" yaml:"f_max"`                   // 0 means sampleRate/2
	PreEmphasis     float64    `json:"preemphasis" mapstructure:"preemphasis" yaml:"preemphasis"` // 0 disables
	Rasta           bool       `json:"rasta" mapstructure:"rasta" yaml:"rasta"`
	Normalize       bool       `json:"normalize" mapstructure:"normalize" yaml:"normalize"`

	Gate        GateConfig `json:"gate" mapstructure:"gate" yaml:"gate"`
	EnergyFloor float64    `json:"energy_floor" mapstructure:"energy_floor" yaml:"energy_floor"`

	// KeepFrames retains a FrameRecord per accepted frame in the Result
	KeepFrames bool `json:"keep_frames" mapstructure:"keep_frames" yaml:"keep_frames"`
}

// DefaultConfig returns the standard configuration: 40 coefficients from
// 22 mel filters over 30 ms Hann frames with 50% overlap, RASTA off and
// global normalisation on.
func DefaultConfig() ExtractionConfig {
	return ExtractionConfig{
		NumCoefficients: DefaultNumCoefficients,
		FrameDuration:   DefaultFrameDuration,
		OverlapPercent:  DefaultOverlapPercent,
		Window:          DefaultWindow,
		NumFilters:      DefaultNumFilters,
		MinFrequency:    0,
		MaxFrequency:    0,
		PreEmphasis:     0,
		Rasta:           false,
		Normalize:       true,
		Gate:            temporal.DefaultAutocorrelationGate(),
		EnergyFloor:     spectral.DefaultEnergyFloor,
	}
}

// Validate checks every parameter. Checks that depend on the sample rate
// (frequency range, frame geometry) are skipped when sampleRate <= 0.
func (c ExtractionConfig) Validate(sampleRate int) error {
	if c.NumCoefficients < 1 {
		return configError("n_mfcc", c.NumCoefficients, "must be at least 1")
	}
	if c.NumFilters < 1 {
		return configError("n_filters", c.NumFilters, "must be at least 1")
	}
	if !(c.FrameDuration > 0) {
		return configError("frame_duration", c.FrameDuration, "must be positive")
	}
	if !(c.OverlapPercent > 0 && c.OverlapPercent < 100) {
		return configError("overlap", c.OverlapPercent, "must be in (0, 100)")
	}
	if _, err := windowing.ParseType(string(c.Window)); err != nil {
		return configError("window", c.Window, "%v", err)
	}
	if !(c.MinFrequency >= 0) {
		return configError("f_min", c.MinFrequency, "must be non-negative")
	}
	if !(c.MaxFrequency >= 0) {
		return configError("f_max", c.MaxFrequency, "must be non-negative")
	}
	if c.MaxFrequency != 0 && !(c.MaxFrequency > c.MinFrequency) {
		return configError("f_max", c.MaxFrequency, "must exceed f_min (%g)", c.MinFrequency)
	}
	if err := filters.ValidatePreEmphasis(c.PreEmphasis); err != nil {
		return configError("preemphasis", c.PreEmphasis, "%v", err)
	}
	if err := c.Gate.Validate(); err != nil {
		return configError("gate", c.Gate, "%v", err)
	}
	if !(c.EnergyFloor > 0) {
		return configError("energy_floor", c.EnergyFloor, "must be positive")
	}

	if sampleRate <= 0 {
		return nil
	}

	nyquist := float64(sampleRate) / 2.0
	maxFreq := c.ResolvedMaxFrequency(sampleRate)
	if !(maxFreq <= nyquist) {
		return configError("f_max", c.MaxFrequency, "exceeds Nyquist frequency %g", nyquist)
	}
	if !(maxFreq > c.MinFrequency) {
		return configError("f_min", c.MinFrequency, "must be below f_max (%g)", maxFreq)
	}
	if _, err := c.Geometry(sampleRate); err != nil {
		return configError("frame_duration", c.FrameDuration, "%v", err)
	}

	return nil
}

// ResolvedMaxFrequency returns MaxFrequency, or sampleRate/2 when unset
func (c ExtractionConfig) ResolvedMaxFrequency(sampleRate int) float64 {
	if c.MaxFrequency == 0 {
		return float64(sampleRate) / 2.0
	}
	return c.MaxFrequency
}

// Geometry derives the frame layout for a sample rate
func (c ExtractionConfig) Geometry(sampleRate int) (temporal.FrameGeometry, error) {
	return temporal.NewFrameGeometry(c.FrameDuration, c.OverlapPercent, sampleRate)
}

// FilterBankParams returns the parameters that determine the mel filter
// bank for this configuration at a sample rate
func (c ExtractionConfig) FilterBankParams(sampleRate int) (spectral.MelFilterBankParams, error) {
	geometry, err := c.Geometry(sampleRate)
	if err != nil {
		return spectral.MelFilterBankParams{}, err
	}

	return spectral.MelFilterBankParams{
		SampleRate:  sampleRate,
		FrameLength: geometry.FrameLength,
		NumFilters:  c.NumFilters,
		LowFreq:     c.MinFrequency,
		HighFreq:    c.ResolvedMaxFrequency(sampleRate),
	}, nil
}
