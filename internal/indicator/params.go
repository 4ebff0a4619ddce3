package indicator

// Params fixes the window sizes, spans, and blend weight of the indicator
// transforms. These are design constants of the signal, not tuning knobs:
// changing any of them changes the numerical output of every downstream
// score. They are grouped here so the magic numbers live in one documented
// place instead of being scattered through the transform code.
type Params struct {
	FastVolumeSpan int // EWMA span of the fast volume mean
	SlowVolumeSpan int // EWMA span of the slow volume mean

	MedianWindow     int // centered rolling-median window over volume
	MedianMinPeriods int // observations required inside the median window

	FastVolWindow     int // trailing window of the fast realized volatility
	SlowVolWindow     int // trailing window of the slow realized volatility
	SlowVolMinPeriods int // observations required inside the slow window

	TrendWindow     int // trailing window for the valuation mean and sentiment range
	TrendMinPeriods int // observations required inside the trend window

	SmoothWindow int // width of the final 2-bar smoothing passes

	VolumeBlend float64 // weight of the EWMA ratio in the volume amplitude blend
}

// DefaultParams returns the canonical constants of the liquidity premium
// signal.
func DefaultParams() Params {
	return Params{
		FastVolumeSpan:    2,
		SlowVolumeSpan:    8,
		MedianWindow:      10,
		MedianMinPeriods:  5,
		FastVolWindow:     2,
		SlowVolWindow:     8,
		SlowVolMinPeriods: 4,
		TrendWindow:       10,
		TrendMinPeriods:   5,
		SmoothWindow:      2,
		VolumeBlend:       0.5,
	}
}
