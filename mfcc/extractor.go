package mfcc

import (
	"fmt"

	"github.com/RyanBlaney/sonido-mfcc/algorithms/common"
	"github.com/RyanBlaney/sonido-mfcc/algorithms/filters"
	"github.com/RyanBlaney/sonido-mfcc/algorithms/spectral"
	"github.com/RyanBlaney/sonido-mfcc/algorithms/temporal"
	"github.com/RyanBlaney/sonido-mfcc/algorithms/windowing"
	"github.com/RyanBlaney/sonido-mfcc/logging"
)

// Result is the output of one extraction
type Result struct {
	Features FeatureVector `json:"features" yaml:"features"`

	NominalFrames  int `json:"nominal_frames" yaml:"nominal_frames"`
	RetainedFrames int `json:"retained_frames" yaml:"retained_frames"`

	// Degenerate is set when the gate rejected every frame; Features is
	// then all zeros
	Degenerate bool `json:"degenerate" yaml:"degenerate"`

	// NonFiniteReplaced counts pooled values replaced by 0
	NonFiniteReplaced int `json:"non_finite_replaced" yaml:"non_finite_replaced"`

	Normalization common.MatrixStats `json:"normalization" yaml:"normalization"`

	Frames []FrameRecord `json:"frames,omitempty" yaml:"frames,omitempty"`
}

// Extractor computes MFCC features for signals of one sample rate. All
// derived state (window, filter bank, DCT table, lifter) is built once in
// NewExtractor and is read-only afterwards, so an Extractor is safe for
// concurrent use.
type Extractor struct {
	config     ExtractionConfig
	sampleRate int

	geometry   temporal.FrameGeometry
	window     windowing.Window
	filterBank *spectral.MelFilterBank
	cepstrum   *spectral.Cepstrum
	fft        *spectral.FFT
	power      *spectral.PowerSpectrum

	logger logging.Logger
}

// NewExtractor validates cfg and builds an extractor for sampleRate,
// taking the filter bank from DefaultFilterBankCache
func NewExtractor(cfg ExtractionConfig, sampleRate int) (*Extractor, error) {
	return NewExtractorWithCache(cfg, sampleRate, DefaultFilterBankCache)
}

// NewExtractorWithCache is NewExtractor with an explicit filter bank cache
func NewExtractorWithCache(cfg ExtractionConfig, sampleRate int, cache *FilterBankCache) (*Extractor, error) {
	if sampleRate <= 0 {
		return nil, configError("sample_rate", sampleRate, "must be positive")
	}
	if err := cfg.Validate(sampleRate); err != nil {
		return nil, err
	}
	if cache == nil {
		cache = NewFilterBankCache()
	}

	geometry, err := cfg.Geometry(sampleRate)
	if err != nil {
		return nil, configError("frame_duration", cfg.FrameDuration, "%v", err)
	}

	windowType, _ := windowing.ParseType(string(cfg.Window))
	window, err := windowing.New(windowType, geometry.FrameLength)
	if err != nil {
		return nil, configError("window", cfg.Window, "%v", err)
	}

	params, err := cfg.FilterBankParams(sampleRate)
	if err != nil {
		return nil, configError("frame_duration", cfg.FrameDuration, "%v", err)
	}
	filterBank, err := cache.Get(params)
	if err != nil {
		return nil, configError("n_filters", cfg.NumFilters, "%v", err)
	}

	cepstrum, err := spectral.NewCepstrum(cfg.NumCoefficients, cfg.NumFilters, cfg.EnergyFloor)
	if err != nil {
		return nil, configError("n_mfcc", cfg.NumCoefficients, "%v", err)
	}

	logger := logging.WithFields(logging.Fields{
		"component":    "mfcc_extractor",
		"sample_rate":  sampleRate,
		"frame_length": geometry.FrameLength,
		"stride":       geometry.Stride,
	})

	logger.Debug("Extractor initialized", logging.Fields{
		"n_mfcc":    cfg.NumCoefficients,
		"n_filters": cfg.NumFilters,
		"window":    string(windowType),
		"f_min":     cfg.MinFrequency,
		"f_max":     params.HighFreq,
		"rasta":     cfg.Rasta,
		"normalize": cfg.Normalize,
	})

	return &Extractor{
		config:     cfg,
		sampleRate: sampleRate,
		geometry:   geometry,
		window:     window,
		filterBank: filterBank,
		cepstrum:   cepstrum,
		fft:        spectral.NewFFT(),
		power:      spectral.NewPowerSpectrum(cfg.EnergyFloor),
		logger:     logger,
	}, nil
}

// Config returns the extractor's configuration
func (e *Extractor) Config() ExtractionConfig {
	return e.config
}

// SampleRate returns the sample rate the extractor was built for
func (e *Extractor) SampleRate() int {
	return e.sampleRate
}

// Geometry returns the frame layout
func (e *Extractor) Geometry() temporal.FrameGeometry {
	return e.geometry
}

// FilterBank returns the shared mel filter bank
func (e *Extractor) FilterBank() *spectral.MelFilterBank {
	return e.filterBank
}

// Extract runs the full pipeline and pools the coefficient matrix into a
// FeatureVector of length NumCoefficients
func (e *Extractor) Extract(signal AudioSignal) (*Result, error) {
	a, err := e.analyze(signal)
	if err != nil {
		return nil, err
	}

	features := a.matrix.Pool()
	replaced := common.Sanitize(features)
	if replaced > 0 {
		e.logger.Warn("Replaced non-finite feature values", logging.Fields{
			"count": replaced,
		})
	}

	return &Result{
		Features:          features,
		NominalFrames:     a.nominal,
		RetainedFrames:    a.matrix.Columns(),
		Degenerate:        a.matrix.Columns() == 0,
		NonFiniteReplaced: replaced,
		Normalization:     a.stats,
		Frames:            a.frames,
	}, nil
}

// Coefficients returns the per-frame coefficient matrix, normalised when
// the config asks for it, without pooling
func (e *Extractor) Coefficients(signal AudioSignal) (*CoefficientMatrix, error) {
	a, err := e.analyze(signal)
	if err != nil {
		return nil, err
	}
	return a.matrix, nil
}

type analysis struct {
	matrix  *CoefficientMatrix
	nominal int
	stats   common.MatrixStats
	frames  []FrameRecord
}

func (e *Extractor) analyze(signal AudioSignal) (*analysis, error) {
	if signal.Len() == 0 {
		return nil, fmt.Errorf("%w: no samples", ErrInvalidSignal)
	}
	if signal.SampleRate() != e.sampleRate {
		return nil, fmt.Errorf("%w: extractor expects %d Hz, signal is %d Hz",
			ErrSampleRateMismatch, e.sampleRate, signal.SampleRate())
	}

	samples := signal.samples
	if e.config.PreEmphasis != 0 {
		emphasized, err := filters.ApplyPreEmphasis(samples, e.config.PreEmphasis)
		if err != nil {
			return nil, configError("preemphasis", e.config.PreEmphasis, "%v", err)
		}
		samples = emphasized
	}

	// RASTA state runs across the retained frames of this signal only
	var rasta *filters.RastaBank
	if e.config.Rasta {
		rasta = filters.NewRastaBank(e.config.NumFilters)
	}

	nominal := e.geometry.NumFrames(len(samples))
	columns := make([][]float64, 0, nominal)
	var frames []FrameRecord
	if e.config.KeepFrames {
		frames = make([]FrameRecord, 0, nominal)
	}

	for i := 0; i < nominal; i++ {
		frame := e.geometry.Frame(samples, i)
		if !e.config.Gate.Accept(frame) {
			continue
		}

		windowed := e.window.Apply(frame)
		magnitude := e.fft.Magnitude(windowed, e.geometry.HalfLength)

		energies, err := e.filterBank.Apply(magnitude)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}

		if rasta != nil {
			energies, err = rasta.ProcessFrame(energies)
			if err != nil {
				return nil, fmt.Errorf("frame %d: %w", i, err)
			}
		}

		logEnergies, coeffs, err := e.cepstrum.Compute(energies)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		columns = append(columns, coeffs)

		if frames != nil {
			kept := make([]float64, len(coeffs))
			copy(kept, coeffs)
			frames = append(frames, FrameRecord{
				Index:             i,
				LogPower:          e.power.ComputeLog(magnitude),
				FilterLogEnergies: logEnergies,
				Coefficients:      kept,
			})
		}
	}

	matrix := newCoefficientMatrix(e.config.NumCoefficients, columns)

	var stats common.MatrixStats
	if e.config.Normalize {
		stats = matrix.normalize()
	}

	if matrix.Columns() == 0 {
		e.logger.Warn("Silence gate rejected every frame", logging.Fields{
			"nominal_frames": nominal,
			"samples":        signal.Len(),
		})
	} else {
		e.logger.Debug("Extracted MFCC frames", logging.Fields{
			"nominal_frames":  nominal,
			"retained_frames": matrix.Columns(),
		})
	}

	return &analysis{
		matrix:  matrix,
		nominal: nominal,
		stats:   stats,
		frames:  frames,
	}, nil
}

// Extract is a convenience wrapper building a one-off Extractor
func Extract(signal AudioSignal, cfg ExtractionConfig) (*Result, error) {
	extractor, err := NewExtractor(cfg, signal.SampleRate())
	if err != nil {
		return nil, err
	}
	return extractor.Extract(signal)
}
