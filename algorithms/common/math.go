package common

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Mean calculates the arithmetic mean of a slice using gonum
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(data, nil)
}

// PopStdDev calculates the population (ddof = 0) standard deviation
func PopStdDev(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	_, std := stat.PopMeanStdDev(data, nil)
	return std
}

// IsFinite reports whether v is neither NaN nor ±Inf
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Sanitize replaces every NaN or ±Inf in data with 0 and returns how
// many values were replaced
func Sanitize(data []float64) int {
	replaced := 0
	for i, v := range data {
		if !IsFinite(v) {
			data[i] = 0
			replaced++
		}
	}
	return replaced
}
