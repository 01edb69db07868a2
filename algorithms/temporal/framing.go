package temporal

import (
	"fmt"
	"math"
)

// truncationSlack absorbs binary representation error before truncating,
// so that 0.03 s at 16 kHz yields 480 samples and not 479.
const truncationSlack = 1e-9

// FrameGeometry describes how a signal is cut into overlapping frames.
// It is derived once per configuration and never mutated.
type FrameGeometry struct {
	FrameLength int `json:"frame_length"` // samples per frame
	Stride      int `json:"stride"`       // samples between frame starts
	HalfLength  int `json:"half_length"`  // retained spectrum bins
}

// NewFrameGeometry derives the frame layout:
//
//	FrameLength = trunc(frameDuration · sampleRate)
//	Stride      = trunc(FrameLength − FrameLength · overlapPercent/100)
//	HalfLength  = floor(FrameLength / 2)
func NewFrameGeometry(frameDuration, overlapPercent float64, sampleRate int) (FrameGeometry, error) {
	if sampleRate <= 0 {
		return FrameGeometry{}, fmt.Errorf("invalid sample rate: %d", sampleRate)
	}
	if frameDuration <= 0 {
		return FrameGeometry{}, fmt.Errorf("frame duration must be positive, got %f", frameDuration)
	}
	if overlapPercent <= 0 || overlapPercent >= 100 {
		return FrameGeometry{}, fmt.Errorf("overlap must be in (0, 100), got %f", overlapPercent)
	}

	frameLength := truncate(frameDuration * float64(sampleRate))
	stride := truncate(float64(frameLength) - float64(frameLength)*(overlapPercent/100.0))

	if frameLength < 2 {
		return FrameGeometry{}, fmt.Errorf("frame of %f s at %d Hz is shorter than 2 samples", frameDuration, sampleRate)
	}
	if stride < 1 {
		return FrameGeometry{}, fmt.Errorf("overlap of %f%% leaves no stride for %d-sample frames", overlapPercent, frameLength)
	}

	return FrameGeometry{
		FrameLength: frameLength,
		Stride:      stride,
		HalfLength:  frameLength / 2,
	}, nil
}

func truncate(x float64) int {
	return int(math.Trunc(x + truncationSlack))
}

// NumFrames returns how many full frames fit in a signal of the given
// length. A frame ending exactly at the last sample is counted.
func (g FrameGeometry) NumFrames(signalLength int) int {
	if signalLength < g.FrameLength || g.Stride <= 0 {
		return 0
	}
	return (signalLength-g.FrameLength)/g.Stride + 1
}

// Frame returns frame i as a view into signal (no copy)
func (g FrameGeometry) Frame(signal []float64, i int) []float64 {
	start := i * g.Stride
	return signal[start : start+g.FrameLength]
}

// FrameStart returns the first sample index of frame i
func (g FrameGeometry) FrameStart(i int) int {
	return i * g.Stride
}
