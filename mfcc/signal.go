package mfcc

import (
	"fmt"
	"time"

	"github.com/RyanBlaney/sonido-mfcc/transcode"
)

// AudioSignal is a mono waveform with samples in [-1, 1]. It is immutable
// once constructed.
type AudioSignal struct {
	samples    []float64
	sampleRate int
}

// NewAudioSignal copies samples into a new signal
func NewAudioSignal(samples []float64, sampleRate int) (AudioSignal, error) {
	if sampleRate <= 0 {
		return AudioSignal{}, fmt.Errorf("%w: sample rate must be positive, got %d", ErrInvalidSignal, sampleRate)
	}
	if len(samples) == 0 {
		return AudioSignal{}, fmt.Errorf("%w: no samples", ErrInvalidSignal)
	}

	owned := make([]float64, len(samples))
	copy(owned, samples)

	return AudioSignal{samples: owned, sampleRate: sampleRate}, nil
}

// FromPCM builds a signal from integer PCM of the given bit depth,
// dividing by 2^(bitDepth−1) − 1 (32767 for 16-bit samples)
func FromPCM(pcm []int, bitDepth, sampleRate int) (AudioSignal, error) {
	samples, err := transcode.NormalizePCM(pcm, bitDepth)
	if err != nil {
		return AudioSignal{}, fmt.Errorf("%w: %v", ErrInvalidSignal, err)
	}
	return NewAudioSignal(samples, sampleRate)
}

// FromAudioData adapts decoder output
func FromAudioData(data *transcode.AudioData) (AudioSignal, error) {
	if data == nil {
		return AudioSignal{}, fmt.Errorf("%w: audio data cannot be nil", ErrInvalidSignal)
	}
	return NewAudioSignal(data.PCM, data.SampleRate)
}

// Samples returns a copy of the samples
func (s AudioSignal) Samples() []float64 {
	out := make([]float64, len(s.samples))
	copy(out, s.samples)
	return out
}

// Len returns the number of samples
func (s AudioSignal) Len() int {
	return len(s.samples)
}

// SampleRate returns the sample rate in Hz
func (s AudioSignal) SampleRate() int {
	return s.sampleRate
}

// Duration returns the signal length in time
func (s AudioSignal) Duration() time.Duration {
	if s.sampleRate <= 0 {
		return 0
	}
	return time.Duration(len(s.samples)) * time.Second / time.Duration(s.sampleRate)
}
