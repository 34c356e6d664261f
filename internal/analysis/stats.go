package analysis

import (
	"gonum.org/v1/gonum/stat"
)

// BT.709 relative luminance weights applied to raw 8-bit channel values.
// No gamma linearisation is performed; the classifier thresholds are
// calibrated against this linear form.
const (
	lumaR = 0.2126
	lumaG = 0.7152
	lumaB = 0.0722
)

// Luminance returns 0.2126*r + 0.7152*g + 0.0722*b.
func Luminance(r, g, b float64) float64 {
	return lumaR*r + lumaG*g + lumaB*b
}

// PopulationStdev returns the standard deviation of values with an N
// denominator. An empty slice has zero deviation.
func PopulationStdev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.PopStdDev(values, nil)
}
