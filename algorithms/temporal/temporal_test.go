package temporal

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameGeometryDefaults(t *testing.T) {
	g, err := NewFrameGeometry(0.03, 50, 16000)
	require.NoError(t, err)
	assert.Equal(t, FrameGeometry{FrameLength: 480, Stride: 240, HalfLength: 240}, g)

	g, err = NewFrameGeometry(0.03, 50, 44100)
	require.NoError(t, err)
	assert.Equal(t, 1323, g.FrameLength)
	assert.Equal(t, 661, g.Stride)
	assert.Equal(t, 661, g.HalfLength)
}

func TestFrameGeometryRejectsDegenerateInput(t *testing.T) {
	_, err := NewFrameGeometry(0, 50, 16000)
	assert.Error(t, err)
	_, err = NewFrameGeometry(0.03, 0, 16000)
	assert.Error(t, err)
	_, err = NewFrameGeometry(0.03, 100, 16000)
	assert.Error(t, err)
	_, err = NewFrameGeometry(0.03, 50, 0)
	assert.Error(t, err)
	_, err = NewFrameGeometry(0.0001, 50, 8000)
	assert.Error(t, err)
	_, err = NewFrameGeometry(0.001, 99.99, 8000)
	assert.Error(t, err)
}

func TestNumFrames(t *testing.T) {
	g := FrameGeometry{FrameLength: 480, Stride: 240, HalfLength: 240}

	assert.Equal(t, 0, g.NumFrames(0))
	assert.Equal(t, 0, g.NumFrames(479))
	assert.Equal(t, 1, g.NumFrames(480))
	assert.Equal(t, 1, g.NumFrames(719))
	assert.Equal(t, 2, g.NumFrames(720))
	assert.Equal(t, 65, g.NumFrames(16000))

	signal := make([]float64, 16000)
	last := g.Frame(signal, g.NumFrames(len(signal))-1)
	assert.Len(t, last, 480)
	assert.Equal(t, 64*240, g.FrameStart(64))
}

func TestAutocorrelationFFTMatchesDirect(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	x := make([]float64, 300)
	for i := range x {
		x[i] = rng.Float64()*2 - 1
	}

	direct := autocorrDirect(x)
	viaFFT := autocorrFFT(x)
	require.Len(t, viaFFT, len(direct))
	assert.InDeltaSlice(t, direct, viaFFT, 1e-9)
}

func TestAutocorrelationUnbiased(t *testing.T) {
	x := []float64{1, 1, 1, 1}
	assert.Equal(t, []float64{4, 3, 2, 1}, Autocorrelation(x, ScalingNone))
	assert.Equal(t, []float64{1, 1, 1, 1}, Autocorrelation(x, ScalingUnbiased))
	assert.Empty(t, Autocorrelation(nil, ScalingNone))
}

func TestGateRejectsSilence(t *testing.T) {
	gate := DefaultAutocorrelationGate()
	assert.False(t, gate.Accept(make([]float64, 480)))
	assert.Equal(t, 0.0, gate.Peak(make([]float64, 480)))
}

func TestGateAcceptsTone(t *testing.T) {
	frame := make([]float64, 480)
	for i := range frame {
		frame[i] = 0.5 * math.Sin(2*math.Pi*440*float64(i)/16000)
	}

	gate := DefaultAutocorrelationGate()
	assert.True(t, gate.Accept(frame))
	// one period is ~36 samples, where the unbiased estimate is close to
	// A²/2; no unbiased lag can exceed max|x|²
	peak := gate.Peak(frame)
	assert.GreaterOrEqual(t, peak, 0.12)
	assert.LessOrEqual(t, peak, 0.25)
}

func TestGateRejectsQuietTone(t *testing.T) {
	frame := make([]float64, 480)
	for i := range frame {
		frame[i] = 0.05 * math.Sin(2*math.Pi*440*float64(i)/16000)
	}

	gate := DefaultAutocorrelationGate()
	assert.False(t, gate.Accept(frame))

	// raw sums scale with frame length and let the same frame through
	gate.Scaling = ScalingNone
	assert.True(t, gate.Accept(frame))
}

func TestGateShortFrameHasNoLags(t *testing.T) {
	gate := DefaultAutocorrelationGate()
	frame := []float64{1, 1, 1, 1, 1}
	assert.Equal(t, 0.0, gate.Peak(frame))
	assert.False(t, gate.Accept(frame))
}

func TestGateValidate(t *testing.T) {
	assert.NoError(t, DefaultAutocorrelationGate().Validate())
	assert.Error(t, AutocorrelationGate{Threshold: -1, Scaling: ScalingNone}.Validate())
	assert.Error(t, AutocorrelationGate{ExcludeLags: -1, Scaling: ScalingNone}.Validate())
	assert.Error(t, AutocorrelationGate{Scaling: "biased"}.Validate())
}
