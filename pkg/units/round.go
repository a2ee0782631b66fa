package units

import "math"

// epsilon is the float64 machine epsilon. It is added before scaling so that
// values stored just below a half step, such as 1.005, still round up.
const epsilon = 0x1p-52

// Round rounds value to the given number of decimal places, half away from zero.
// Negative decimals are treated as zero.
func Round(value float64, decimals int) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return value
	}
	if decimals < 0 {
		decimals = 0
	}
	scale := math.Pow(10, float64(decimals))
	return math.Round((value+math.Copysign(epsilon, value))*scale) / scale
}
