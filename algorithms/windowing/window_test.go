package windowing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCenteredIndices(t *testing.T) {
	assert.Equal(t, []int{-2, -1, 0, 1}, CenteredIndices(4))
	assert.Equal(t, []int{-2, -1, 0, 1, 2}, CenteredIndices(5))
	assert.Equal(t, []int{0}, CenteredIndices(1))
	assert.Empty(t, CenteredIndices(0))
}

func TestWindowLengthMatchesSize(t *testing.T) {
	for _, typ := range []Type{TypeBox, TypeHamming, TypeHann} {
		for _, size := range []int{1, 2, 7, 480, 481, 1323} {
			w, err := New(typ, size)
			require.NoError(t, err)
			assert.Len(t, w.GetCoefficients(), size, "%s/%d", typ, size)
			assert.Equal(t, size, w.GetSize())
		}
	}
}

func TestHannPeaksAtCentre(t *testing.T) {
	coeffs := NewHann(9).GetCoefficients()

	// index 4 is n = 0
	assert.InDelta(t, 1.0, coeffs[4], 1e-12)
	// the odd-length window reaches zero at both edges
	assert.InDelta(t, 0.0, coeffs[0], 1e-12)
	assert.InDelta(t, 0.0, coeffs[8], 1e-12)

	for i := 0; i < 4; i++ {
		assert.InDelta(t, coeffs[i], coeffs[8-i], 1e-12)
	}
}

func TestHammingFormula(t *testing.T) {
	const size = 10
	coeffs := NewHamming(size).GetCoefficients()

	for i, n := range CenteredIndices(size) {
		want := 0.53836 + 0.46164*math.Cos(2*math.Pi*float64(n)/float64(size-1))
		assert.InDelta(t, want, coeffs[i], 1e-12)
	}
	assert.InDelta(t, 1.0, coeffs[size/2], 1e-12)
}

func TestBoxIsIdentity(t *testing.T) {
	w, err := New(TypeRectangular, 4)
	require.NoError(t, err)
	assert.Equal(t, TypeBox, w.GetType())

	frame := []float64{0.1, -0.2, 0.3, -0.4}
	assert.Equal(t, frame, w.Apply(frame))
	require.NoError(t, w.ApplyInPlace(frame))
	assert.Equal(t, []float64{0.1, -0.2, 0.3, -0.4}, frame)
}

func TestApplyLengthMismatch(t *testing.T) {
	w := NewHann(8)
	assert.Nil(t, w.Apply(make([]float64, 7)))
	assert.Error(t, w.ApplyInPlace(make([]float64, 9)))
}

func TestApplyInPlaceMatchesApply(t *testing.T) {
	w := NewHamming(6)
	frame := []float64{1, 2, 3, 4, 5, 6}
	want := w.Apply(frame)

	require.NoError(t, w.ApplyInPlace(frame))
	assert.InDeltaSlice(t, want, frame, 1e-12)
}

func TestParseType(t *testing.T) {
	typ, err := ParseType("Hann")
	require.NoError(t, err)
	assert.Equal(t, TypeHann, typ)

	typ, err = ParseType("rectangular")
	require.NoError(t, err)
	assert.Equal(t, TypeBox, typ)

	_, err = ParseType("blackman")
	assert.Error(t, err)

	_, err = New(TypeHann, 0)
	assert.Error(t, err)
}
