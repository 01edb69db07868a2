package spectral

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func sine(freq float64, sampleRate, n int, amplitude float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
	}
	return out
}

func TestMagnitudePeakTracksSineFrequency(t *testing.T) {
	cases := []struct {
		freq       float64
		sampleRate int
		length     int
	}{
		{440, 16000, 480},
		{1000, 16000, 512},
		{3150, 44100, 1323},
		{250, 8000, 240},
	}

	f := NewFFT()
	for _, tc := range cases {
		mag := f.Magnitude(sine(tc.freq, tc.sampleRate, tc.length, 0.8), tc.length/2)
		require.Len(t, mag, tc.length/2)

		expected := int(math.Round(tc.freq * float64(tc.length) / float64(tc.sampleRate)))
		got := PeakBin(mag)
		assert.LessOrEqual(t, math.Abs(float64(got-expected)), 1.0,
			"freq=%v sr=%v L=%v: peak bin %d, expected ~%d", tc.freq, tc.sampleRate, tc.length, got, expected)
	}
}

func TestBinFrequencies(t *testing.T) {
	freqs := BinFrequencies(4, 8, 16000)
	assert.Equal(t, []float64{0, 2000, 4000, 6000}, freqs)
}

func TestLogPowerIsFinite(t *testing.T) {
	ps := NewPowerSpectrum(0)
	logPower := ps.ComputeLog([]float64{0, 1, 10})

	assert.InDelta(t, -100.0, logPower[0], 1e-9)
	assert.InDelta(t, 0.0, logPower[1], 1e-9)
	assert.InDelta(t, 20.0, logPower[2], 1e-9)
}

func TestMelScaleInvertible(t *testing.T) {
	for _, freq := range []float64{0, 1, 50, 300, 1000, 4000, 8000, 22050} {
		back := MelToHz(HzToMel(freq))
		assert.InDelta(t, freq, back, 1e-9*math.Max(1, freq))
	}
	assert.InDelta(t, 1000.0, HzToMel(1000.0), 0.1)
}

func TestMelBreakpointsEquallySpacedOnMelAxis(t *testing.T) {
	points := MelBreakpoints(0, 8000, 22)
	require.Len(t, points, 24)
	assert.Equal(t, 0.0, points[0])
	assert.Equal(t, 8000.0, points[23])

	step := HzToMel(points[1]) - HzToMel(points[0])
	for i := 1; i < len(points); i++ {
		assert.InDelta(t, step, HzToMel(points[i])-HzToMel(points[i-1]), 1e-6)
	}
}

func newTestBank(t *testing.T) *MelFilterBank {
	t.Helper()
	fb, err := NewMelFilterBank(MelFilterBankParams{
		SampleRate:  16000,
		FrameLength: 480,
		NumFilters:  22,
	})
	require.NoError(t, err)
	return fb
}

func TestMelFilterBankBounded(t *testing.T) {
	fb := newTestBank(t)
	require.Equal(t, 240, fb.HalfLength())
	require.Equal(t, 22, fb.NumFilters())
	assert.Equal(t, 8000.0, fb.Params().HighFreq)

	r, c := fb.Matrix().Dims()
	assert.Equal(t, 240, r)
	assert.Equal(t, 22, c)

	for j := 0; j < fb.NumFilters(); j++ {
		filter := fb.Filter(j)
		for _, v := range filter {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
		assert.Greater(t, floats.Sum(filter), 0.0, "filter %d is empty", j)
	}
}

func TestMelFilterBankSharedBreakpointsAreZero(t *testing.T) {
	fb := newTestBank(t)
	bp := fb.Breakpoints()

	for j := 0; j < fb.NumFilters(); j++ {
		rising, peak, falling := bp[j], bp[j+1], bp[j+2]

		assert.Equal(t, 0.0, fb.ResponseAt(rising, j))
		assert.InDelta(t, 1.0, fb.ResponseAt(peak, j), 1e-12)
		assert.Equal(t, 0.0, fb.ResponseAt(falling, j))

		// the falling edge of j is the rising edge of j+2: both are zero there
		if j+2 < fb.NumFilters() {
			assert.Equal(t, 0.0, fb.ResponseAt(falling, j+2))
		}

		mid := (rising + peak) / 2
		assert.InDelta(t, 0.5, fb.ResponseAt(mid, j), 1e-9)
	}
}

func TestMelFilterBankMatrixMatchesResponseAt(t *testing.T) {
	fb := newTestBank(t)
	freqs := BinFrequencies(fb.HalfLength(), 480, 16000)

	for j := 0; j < fb.NumFilters(); j++ {
		for k, f := range freqs {
			assert.Equal(t, fb.ResponseAt(f, j), fb.Response(k, j))
		}
	}
}

func TestMelFilterBankApply(t *testing.T) {
	fb := newTestBank(t)

	spectrum := make([]float64, fb.HalfLength())
	for i := range spectrum {
		spectrum[i] = 1
	}

	energies, err := fb.Apply(spectrum)
	require.NoError(t, err)
	require.Len(t, energies, 22)
	for j, e := range energies {
		assert.InDelta(t, floats.Sum(fb.Filter(j)), e, 1e-9)
	}

	_, err = fb.Apply(spectrum[:10])
	assert.Error(t, err)
}

func TestMelFilterBankRejectsBadParams(t *testing.T) {
	bad := []MelFilterBankParams{
		{SampleRate: 0, FrameLength: 480, NumFilters: 22},
		{SampleRate: 16000, FrameLength: 1, NumFilters: 22},
		{SampleRate: 16000, FrameLength: 480, NumFilters: 0},
		{SampleRate: 16000, FrameLength: 480, NumFilters: 22, LowFreq: -1},
		{SampleRate: 16000, FrameLength: 480, NumFilters: 22, LowFreq: 4000, HighFreq: 3000},
		{SampleRate: 16000, FrameLength: 480, NumFilters: 22, HighFreq: 9000},
		{SampleRate: 16000, FrameLength: 480, NumFilters: 22, LowFreq: math.NaN()},
		{SampleRate: 16000, FrameLength: 480, NumFilters: 22, HighFreq: math.NaN()},
		{SampleRate: 16000, FrameLength: 480, NumFilters: 22, HighFreq: math.Inf(1)},
	}
	for _, p := range bad {
		_, err := NewMelFilterBank(p)
		assert.Error(t, err, "%+v", p)
	}
}

func TestDCTUnnormalised(t *testing.T) {
	// a constant input projects to zero for every j >= 1
	coeffs := DCT([]float64{2, 2, 2, 2}, 3)
	for _, c := range coeffs {
		assert.InDelta(t, 0.0, c, 1e-12)
	}

	// single impulse on the first filter: c[j-1] = cos(π·j·0.5/N)
	x := []float64{1, 0, 0, 0}
	coeffs = DCT(x, 2)
	assert.InDelta(t, math.Cos(math.Pi*0.5/4), coeffs[0], 1e-12)
	assert.InDelta(t, math.Cos(math.Pi*2*0.5/4), coeffs[1], 1e-12)
}

func TestLifterWeights(t *testing.T) {
	w := LifterWeights(40)
	require.Len(t, w, 80)
	assert.Equal(t, 1.0, w[0])
	for i, v := range w {
		want := 1 + 40*math.Sin(math.Pi*float64(i)/79)
		assert.InDelta(t, want, v, 1e-12)
	}
}

func TestCepstrumCompute(t *testing.T) {
	c, err := NewCepstrum(5, 4, 0)
	require.NoError(t, err)

	energies := []float64{1, math.E, 0, -3}
	logs, coeffs, err := c.Compute(energies)
	require.NoError(t, err)

	assert.InDelta(t, 0.0, logs[0], 1e-12)
	assert.InDelta(t, 1.0, logs[1], 1e-12)
	assert.InDelta(t, math.Log(DefaultEnergyFloor), logs[2], 1e-12)
	assert.InDelta(t, math.Log(DefaultEnergyFloor), logs[3], 1e-12)

	want := DCT(logs, 5)
	Lifter(want, LifterWeights(5))
	assert.InDeltaSlice(t, want, coeffs, 1e-9)

	for _, v := range coeffs {
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
	}

	_, _, err = c.Compute([]float64{1, 2})
	assert.Error(t, err)
}
