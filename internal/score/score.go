// Package score blends the indicator columns into the composite liquidity
// premium score.
package score

import (
	"LiquidityMonitor/internal/calculator"
	"LiquidityMonitor/internal/model"
)

// Weights fixes the factor weights and containment bounds of the composite
// score. Like the indicator windows, these are empirical constants of the
// signal: the clip bounds and the sentiment rescale have no derivation beyond
// matching the established output, so reproduce them exactly rather than
// tuning them.
type Weights struct {
	VolAmp    float64 // weight of the clipped volume amplitude
	VolRatio  float64 // weight of the clipped volatility ratio
	Valuation float64 // weight of the clipped valuation
	Sentiment float64 // weight of the rescaled sentiment
	VolChange float64 // weight of the clipped volume change

	FactorFloor   float64 // lower clip bound for vol_amp, vol_ratio, valuation
	FactorCeil    float64 // upper clip bound for vol_amp, vol_ratio, valuation
	SentimentFill float64 // default for missing sentiment, doubled like the rest

	SmoothWindow int // width of the centered smoothing pass over the raw score
}

// DefaultWeights returns the canonical score constants.
func DefaultWeights() Weights {
	return Weights{
		VolAmp:        0.4,
		VolRatio:      0.3,
		Valuation:     0.2,
		Sentiment:     0.1,
		VolChange:     0.15,
		FactorFloor:   0.3,
		FactorCeil:    4.0,
		SentimentFill: 0.5,
		SmoothWindow:  2,
	}
}

// Apply computes the LP score for every bar and returns a new series; the
// caller's slice is never modified. The three ratio factors are clipped to
// [FactorFloor, FactorCeil] for outlier containment, sentiment is defaulted
// to SentimentFill where missing and rescaled from [0,1] to [0,2], and the
// weighted sum is smoothed with a centered 2-bar mean. Bars whose factor
// windows have not filled keep a missing (NaN) score.
func Apply(annotated []model.AnnotatedBar, w Weights) []model.AnnotatedBar {
	n := len(annotated)

	volAmp := make([]float64, n)
	volRatio := make([]float64, n)
	valuation := make([]float64, n)
	sentiment := make([]float64, n)
	volChange := make([]float64, n)
	for i, b := range annotated {
		volAmp[i] = b.VolAmp
		volRatio[i] = b.VolRatio
		valuation[i] = b.Valuation
		sentiment[i] = b.Sentiment
		volChange[i] = b.VolChange
	}

	v := calculator.Clip(volAmp, w.FactorFloor, w.FactorCeil)
	r := calculator.Clip(volRatio, w.FactorFloor, w.FactorCeil)
	val := calculator.Clip(valuation, w.FactorFloor, w.FactorCeil)
	s := calculator.FillNA(sentiment, w.SentimentFill)

	raw := make([]float64, n)
	for i := 0; i < n; i++ {
		raw[i] = w.VolAmp*v[i] + w.VolRatio*r[i] + w.Valuation*val[i] +
			w.Sentiment*2*s[i] + w.VolChange*volChange[i]
	}
	smoothed := calculator.RollingMean(raw, calculator.Window{Size: w.SmoothWindow, Centered: true})

	out := make([]model.AnnotatedBar, n)
	copy(out, annotated)
	for i := range out {
		out[i].LPScore = smoothed[i]
	}
	return out
}
