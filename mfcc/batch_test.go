package mfcc

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractBatchMatchesSequential(t *testing.T) {
	var signals []AudioSignal
	for i, freq := range []float64{220, 330, 440, 550, 660, 770} {
		rate := 16000
		if i%2 == 1 {
			rate = 22050
		}
		signals = append(signals, mustSignal(t, sine(freq, 0.7, 0.5, rate), rate))
	}
	signals = append(signals, mustSignal(t, make([]float64, 8000), 16000))

	cfg := DefaultConfig()
	results, err := ExtractBatch(context.Background(), signals, cfg, BatchOptions{Workers: 3})
	require.NoError(t, err)
	require.Len(t, results, len(signals))

	for i, signal := range signals {
		want, err := Extract(signal, cfg)
		require.NoError(t, err)
		assert.Equal(t, want, results[i], "signal %d", i)
	}
	assert.True(t, results[len(results)-1].Degenerate)
}

func TestExtractBatchConfigError(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxFrequency = 6000 // above Nyquist for 8 kHz input

	signals := []AudioSignal{
		mustSignal(t, sine(440, 0.7, 0.5, 16000), 16000),
		mustSignal(t, sine(440, 0.7, 0.5, 8000), 8000),
	}

	_, err := ExtractBatch(context.Background(), signals, cfg, BatchOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestExtractBatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	signals := []AudioSignal{mustSignal(t, sine(440, 0.7, 0.5, 16000), 16000)}
	_, err := ExtractBatch(ctx, signals, DefaultConfig(), BatchOptions{Workers: 1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtractBatchEmpty(t *testing.T) {
	results, err := ExtractBatch(context.Background(), nil, DefaultConfig(), BatchOptions{})
	require.NoError(t, err)
	assert.Empty(t, results)
}
