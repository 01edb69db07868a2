package mfcc

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate(16000))
	require.NoError(t, cfg.Validate(0))

	assert.Equal(t, 40, cfg.NumCoefficients)
	assert.Equal(t, 22, cfg.NumFilters)
	assert.Equal(t, WindowHann, cfg.Window)
	assert.True(t, cfg.Normalize)
	assert.False(t, cfg.Rasta)
	assert.Equal(t, 8000.0, cfg.ResolvedMaxFrequency(16000))
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*ExtractionConfig)
		field  string
	}{
		{"zero coefficients", func(c *ExtractionConfig) { c.NumCoefficients = 0 }, "n_mfcc"},
		{"zero filters", func(c *ExtractionConfig) { c.NumFilters = 0 }, "n_filters"},
		{"zero duration", func(c *ExtractionConfig) { c.FrameDuration = 0 }, "frame_duration"},
		{"overlap 100", func(c *ExtractionConfig) { c.OverlapPercent = 100 }, "overlap"},
		{"overlap 0", func(c *ExtractionConfig) { c.OverlapPercent = 0 }, "overlap"},
		{"unknown window", func(c *ExtractionConfig) { c.Window = "triangle" }, "window"},
		{"negative f_min", func(c *ExtractionConfig) { c.MinFrequency = -1 }, "f_min"},
		{"f_max below f_min", func(c *ExtractionConfig) { c.MinFrequency = 300; c.MaxFrequency = 200 }, "f_max"},
		{"f_max above nyquist", func(c *ExtractionConfig) { c.MaxFrequency = 9000 }, "f_max"},
		{"f_min at nyquist", func(c *ExtractionConfig) { c.MinFrequency = 8000 }, "f_min"},
		{"NaN f_min", func(c *ExtractionConfig) { c.MinFrequency = math.NaN() }, "f_min"},
		{"NaN f_max", func(c *ExtractionConfig) { c.MaxFrequency = math.NaN() }, "f_max"},
		{"infinite f_max", func(c *ExtractionConfig) { c.MaxFrequency = math.Inf(1) }, "f_max"},
		{"preemphasis 1", func(c *ExtractionConfig) { c.PreEmphasis = 1 }, "preemphasis"},
		{"negative gate threshold", func(c *ExtractionConfig) { c.Gate.Threshold = -0.1 }, "gate"},
		{"bad gate scaling", func(c *ExtractionConfig) { c.Gate.Scaling = "biased" }, "gate"},
		{"zero energy floor", func(c *ExtractionConfig) { c.EnergyFloor = 0 }, "energy_floor"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)

			err := cfg.Validate(16000)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig))

			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tc.field, cfgErr.Field)
		})
	}
}

func TestNewExtractorRejectsNaNFrequency(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinFrequency = math.NaN()

	extractor, err := NewExtractor(cfg, 16000)
	assert.Nil(t, extractor)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidateWithoutSampleRateSkipsFrequencyChecks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxFrequency = 20000
	assert.NoError(t, cfg.Validate(0))
	assert.Error(t, cfg.Validate(16000))
}

func TestWindowNamesAreCaseInsensitive(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Window = "Hamming"
	assert.NoError(t, cfg.Validate(16000))

	cfg.Window = "rectangular"
	assert.NoError(t, cfg.Validate(16000))
}

func TestFilterBankParams(t *testing.T) {
	params, err := DefaultConfig().FilterBankParams(16000)
	require.NoError(t, err)

	assert.Equal(t, 16000, params.SampleRate)
	assert.Equal(t, 480, params.FrameLength)
	assert.Equal(t, 22, params.NumFilters)
	assert.Equal(t, 0.0, params.LowFreq)
	assert.Equal(t, 8000.0, params.HighFreq)
}
