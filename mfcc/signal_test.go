package mfcc

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAudioSignalCopiesInput(t *testing.T) {
	samples := []float64{0.1, 0.2, 0.3}
	signal, err := NewAudioSignal(samples, 8000)
	require.NoError(t, err)

	samples[0] = 99
	assert.Equal(t, 0.1, signal.Samples()[0])

	out := signal.Samples()
	out[1] = 99
	assert.Equal(t, 0.2, signal.Samples()[1])
}

func TestNewAudioSignalRejects(t *testing.T) {
	_, err := NewAudioSignal(nil, 16000)
	assert.True(t, errors.Is(err, ErrInvalidSignal))

	_, err = NewAudioSignal([]float64{0}, 0)
	assert.True(t, errors.Is(err, ErrInvalidSignal))
}

func TestFromPCM(t *testing.T) {
	signal, err := FromPCM([]int{32767, 0, -32767}, 16, 16000)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 0, -1}, signal.Samples(), 1e-12)

	_, err = FromPCM([]int{1}, 0, 16000)
	assert.True(t, errors.Is(err, ErrInvalidSignal))
}

func TestDuration(t *testing.T) {
	signal := mustSignal(t, make([]float64, 8000), 16000)
	assert.Equal(t, 500*time.Millisecond, signal.Duration())
	assert.Equal(t, 8000, signal.Len())
	assert.Equal(t, 16000, signal.SampleRate())
}
