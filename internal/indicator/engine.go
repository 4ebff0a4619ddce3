// Package indicator derives the four liquidity factors from a resampled bar
// series: volume amplitude, volatility ratio, valuation, and sentiment, plus
// the raw return and volume-change columns the scorer consumes.
package indicator

import (
	"math"

	"LiquidityMonitor/internal/calculator"
	"LiquidityMonitor/internal/model"
)

// Compute annotates a resampled bar series with the indicator columns. The
// series must already be at the target resolution; Compute never resamples.
// The resolution only selects the volatility annualization factor.
//
// Two of the transforms use centered windows (the volume median and the
// valuation/sentiment smoothing), so their outputs read future bars relative
// to the bar they annotate. That look-ahead is part of the signal's
// definition; the output is for retrospective inspection and must not drive
// causal/real-time decisions.
func Compute(series []model.Bar, res model.Resolution, p Params) []model.AnnotatedBar {
	n := len(series)
	closes := make([]float64, n)
	volumes := make([]float64, n)
	for i, b := range series {
		closes[i] = b.Close
		volumes[i] = b.Volume
	}

	ret := calculator.PctChange(closes)

	// Volume amplitude: fast/slow EWMA ratio blended 50/50 with the
	// deviation from the centered rolling median, then a 2-bar smooth.
	ewFast := calculator.EWMASpan(volumes, p.FastVolumeSpan)
	ewSlow := calculator.EWMASpan(volumes, p.SlowVolumeSpan)
	medians := calculator.RollingMedian(volumes, calculator.Window{
		Size:       p.MedianWindow,
		MinPeriods: p.MedianMinPeriods,
		Centered:   true,
	})
	blend := make([]float64, n)
	for i := 0; i < n; i++ {
		blend[i] = p.VolumeBlend*(ewFast[i]/ewSlow[i]) + (1-p.VolumeBlend)*(volumes[i]/medians[i])
	}
	volAmp := calculator.RollingMean(blend, calculator.Window{Size: p.SmoothWindow})

	// Volatility ratio: fast over slow annualized realized volatility of the
	// returns, then a 2-bar smooth. The annualization cancels in the ratio
	// but is applied to both legs so each leg stays a meaningful volatility.
	annual := math.Sqrt(res.Annualization())
	rvFast := calculator.RollingStd(ret, calculator.Window{Size: p.FastVolWindow})
	rvSlow := calculator.RollingStd(ret, calculator.Window{
		Size:       p.SlowVolWindow,
		MinPeriods: p.SlowVolMinPeriods,
	})
	ratio := make([]float64, n)
	for i := 0; i < n; i++ {
		ratio[i] = (rvFast[i] * annual) / (rvSlow[i] * annual)
	}
	volRatio := calculator.RollingMean(ratio, calculator.Window{Size: p.SmoothWindow})

	// Valuation: close over its trailing mean, centered 2-bar smooth.
	ma := calculator.RollingMean(closes, calculator.Window{
		Size:       p.TrendWindow,
		MinPeriods: p.TrendMinPeriods,
	})
	rel := make([]float64, n)
	for i := 0; i < n; i++ {
		rel[i] = closes[i] / ma[i]
	}
	valuation := calculator.RollingMean(rel, calculator.Window{Size: p.SmoothWindow, Centered: true})

	// Sentiment: position of close inside its trailing high/low range,
	// clipped to [0,1], centered 2-bar smooth. A flat range yields 0/0 and
	// stays missing.
	rollMax := calculator.RollingMax(closes, calculator.Window{
		Size:       p.TrendWindow,
		MinPeriods: p.TrendMinPeriods,
	})
	rollMin := calculator.RollingMin(closes, calculator.Window{
		Size:       p.TrendWindow,
		MinPeriods: p.TrendMinPeriods,
	})
	pos := make([]float64, n)
	for i := 0; i < n; i++ {
		pos[i] = (closes[i] - rollMin[i]) / (rollMax[i] - rollMin[i])
	}
	sentiment := calculator.RollingMean(
		calculator.Clip(pos, 0, 1),
		calculator.Window{Size: p.SmoothWindow, Centered: true},
	)

	volChange := calculator.FillNA(calculator.Clip(calculator.PctChange(volumes), -2, 2), 0)

	out := make([]model.AnnotatedBar, n)
	for i, b := range series {
		out[i] = model.AnnotatedBar{
			Bar:       b,
			Ret:       ret[i],
			VolChange: volChange[i],
			VolAmp:    volAmp[i],
			VolRatio:  volRatio[i],
			Valuation: valuation[i],
			Sentiment: sentiment[i],
			LPScore:   math.NaN(),
		}
	}
	return out
}
