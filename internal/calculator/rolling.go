// Package calculator provides the rolling-window and series primitives the
// indicator transforms are built from. All functions operate on []float64
// where math.NaN() marks a missing cell: a rolling computation produces a
// value only when its window holds at least MinPeriods non-NaN observations,
// otherwise the output cell is NaN. Insufficient history is therefore never
// an error, it is a NaN that fills in as bars accumulate.
package calculator

import (
	"math"
	"sort"
)

// Window describes one rolling computation: how many bars it spans, how many
// non-NaN observations it needs before producing a value, and whether the
// window is centered on the current bar.
//
// A trailing window at index i covers [i-Size+1, i]. A centered window shifts
// the same span forward by (Size-1)/2 bars, so it reads future neighbors:
// centered Size=10 covers [i-5, i+4], while centered Size=2 degenerates to the
// trailing pair [i-1, i]. Centered output depends on look-ahead and must not
// be fed to causal/real-time consumers.
type Window struct {
	Size       int
	MinPeriods int // 0 means Size
	Centered   bool
}

func (w Window) bounds(i, n int) (start, end int) {
	offset := 0
	if w.Centered {
		offset = (w.Size - 1) / 2
	}
	end = i + 1 + offset
	start = end - w.Size
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	return start, end
}

func (w Window) minPeriods() int {
	if w.MinPeriods <= 0 {
		return w.Size
	}
	return w.MinPeriods
}

// RollingMean computes the mean of the non-NaN observations in each window.
func RollingMean(values []float64, w Window) []float64 {
	out := nanSlice(len(values))
	if w.Size <= 0 {
		return out
	}
	minP := w.minPeriods()
	for i := range values {
		start, end := w.bounds(i, len(values))
		sum, count := 0.0, 0
		for j := start; j < end; j++ {
			if math.IsNaN(values[j]) {
				continue
			}
			sum += values[j]
			count++
		}
		if count >= minP {
			out[i] = sum / float64(count)
		}
	}
	return out
}

// RollingMedian computes the median of the non-NaN observations in each
// window; an even count yields the mean of the two middle values.
func RollingMedian(values []float64, w Window) []float64 {
	out := nanSlice(len(values))
	if w.Size <= 0 {
		return out
	}
	minP := w.minPeriods()
	buf := make([]float64, 0, w.Size)
	for i := range values {
		start, end := w.bounds(i, len(values))
		buf = buf[:0]
		for j := start; j < end; j++ {
			if !math.IsNaN(values[j]) {
				buf = append(buf, values[j])
			}
		}
		if len(buf) < minP {
			continue
		}
		sort.Float64s(buf)
		mid := len(buf) / 2
		if len(buf)%2 == 1 {
			out[i] = buf[mid]
		} else {
			out[i] = (buf[mid-1] + buf[mid]) / 2
		}
	}
	return out
}

// RollingStd computes the sample standard deviation (n-1 denominator) of the
// non-NaN observations in each window. Windows with fewer than two
// observations yield NaN regardless of MinPeriods.
func RollingStd(values []float64, w Window) []float64 {
	out := nanSlice(len(values))
	if w.Size <= 0 {
		return out
	}
	minP := w.minPeriods()
	for i := range values {
		start, end := w.bounds(i, len(values))
		sum, count := 0.0, 0
		for j := start; j < end; j++ {
			if math.IsNaN(values[j]) {
				continue
			}
			sum += values[j]
			count++
		}
		if count < minP || count < 2 {
			continue
		}
		mean := sum / float64(count)
		variance := 0.0
		for j := start; j < end; j++ {
			if math.IsNaN(values[j]) {
				continue
			}
			d := values[j] - mean
			variance += d * d
		}
		out[i] = math.Sqrt(variance / float64(count-1))
	}
	return out
}

// RollingMin returns the minimum non-NaN observation in each window.
func RollingMin(values []float64, w Window) []float64 {
	return rollingExtreme(values, w, func(a, b float64) bool { return a < b })
}

// RollingMax returns the maximum non-NaN observation in each window.
func RollingMax(values []float64, w Window) []float64 {
	return rollingExtreme(values, w, func(a, b float64) bool { return a > b })
}

func rollingExtreme(values []float64, w Window, better func(a, b float64) bool) []float64 {
	out := nanSlice(len(values))
	if w.Size <= 0 {
		return out
	}
	minP := w.minPeriods()
	for i := range values {
		start, end := w.bounds(i, len(values))
		best, count := 0.0, 0
		for j := start; j < end; j++ {
			if math.IsNaN(values[j]) {
				continue
			}
			if count == 0 || better(values[j], best) {
				best = values[j]
			}
			count++
		}
		if count >= minP {
			out[i] = best
		}
	}
	return out
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
