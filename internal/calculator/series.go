package calculator

import "math"

// EWMASpan computes the exponentially weighted moving average with
// alpha = 2/(span+1), seeded from the first value. The input is assumed
// NaN-free (it is applied to raw volume, which always has a value).
func EWMASpan(values []float64, span int) []float64 {
	if len(values) == 0 {
		return nil
	}
	if span <= 0 {
		return nanSlice(len(values))
	}
	out := make([]float64, len(values))
	alpha := 2.0 / float64(span+1)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}

// PctChange returns the simple one-bar percent change, NaN at index 0.
// Division by a zero previous value is kept as IEEE ±Inf or NaN rather than
// being masked; callers clip or fill as their contract requires.
func PctChange(values []float64) []float64 {
	out := nanSlice(len(values))
	for i := 1; i < len(values); i++ {
		out[i] = values[i]/values[i-1] - 1
	}
	return out
}

// Clip bounds each value to [lo, hi]. NaN cells pass through unchanged;
// ±Inf clips to the respective bound.
func Clip(values []float64, lo, hi float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		switch {
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

// FillNA replaces NaN cells with def.
func FillNA(values []float64, def float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			out[i] = def
		} else {
			out[i] = v
		}
	}
	return out
}
