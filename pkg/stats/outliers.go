package stats

import "math"

// Clip limits every value of x to [lo, hi]. NaN stays NaN.
func Clip(x []float64, lo, hi float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		switch {
		case math.IsNaN(v):
			out[i] = v
		case v < lo:
			out[i] = lo
		case v > hi:
			out[i] = hi
		default:
			out[i] = v
		}
	}
	return out
}

// ClipPercentile clips x to its own lower and upper percentiles.
func ClipPercentile(x []float64, lower, upper float64) []float64 {
	return Clip(x, Percentile(x, lower), Percentile(x, upper))
}
