package indicator

import (
	"math"
	"testing"
	"time"

	"LiquidityMonitor/internal/model"
)

func mkBars(closes, volumes []float64) []model.Bar {
	bars := make([]model.Bar, len(closes))
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range closes {
		bars[i] = model.Bar{
			Date:   base.AddDate(0, 0, i),
			Open:   closes[i],
			High:   closes[i] * 1.01,
			Low:    closes[i] * 0.99,
			Close:  closes[i],
			Volume: volumes[i],
		}
	}
	return bars
}

func wiggly(n int) ([]float64, []float64) {
	closes := make([]float64, n)
	volumes := make([]float64, n)
	for i := 0; i < n; i++ {
		closes[i] = 100 + float64(i) + float64(i%3)
		volumes[i] = 1000 + 50*float64(i%5)
	}
	return closes, volumes
}

func TestCompute_WindowFillOrder(t *testing.T) {
	closes, volumes := wiggly(30)
	out := Compute(mkBars(closes, volumes), model.Daily, DefaultParams())

	if len(out) != 30 {
		t.Fatalf("output length must match input, got %d", len(out))
	}
	if !math.IsNaN(out[0].Ret) {
		t.Error("ret must be missing at index 0")
	}
	if math.IsNaN(out[1].Ret) {
		t.Error("ret must be defined from index 1")
	}
	if out[0].VolChange != 0 {
		t.Errorf("vol_change defaults missing to 0, got %v", out[0].VolChange)
	}

	// First defined cell per column on a clean series.
	firsts := []struct {
		name  string
		idx   int
		value func(b model.AnnotatedBar) float64
	}{
		{"vol_amp", 1, func(b model.AnnotatedBar) float64 { return b.VolAmp }},
		{"vol_ratio", 5, func(b model.AnnotatedBar) float64 { return b.VolRatio }},
		{"valuation", 5, func(b model.AnnotatedBar) float64 { return b.Valuation }},
		{"sentiment", 5, func(b model.AnnotatedBar) float64 { return b.Sentiment }},
	}
	for _, f := range firsts {
		if !math.IsNaN(f.value(out[f.idx-1])) {
			t.Errorf("%s: expected NaN at index %d, got %v", f.name, f.idx-1, f.value(out[f.idx-1]))
		}
		if math.IsNaN(f.value(out[f.idx])) {
			t.Errorf("%s: expected a value from index %d", f.name, f.idx)
		}
	}
}

func TestCompute_RampScenario(t *testing.T) {
	// 30 bars, constant volume, close drifting 100 -> 129.
	closes := make([]float64, 30)
	volumes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100 + float64(i)
		volumes[i] = 1000
	}
	out := Compute(mkBars(closes, volumes), model.Daily, DefaultParams())

	for i, b := range out {
		if math.IsNaN(b.VolAmp) {
			continue
		}
		if math.Abs(b.VolAmp-1.0) > 1e-9 {
			t.Errorf("constant volume must give vol_amp 1.0, index %d got %.6f", i, b.VolAmp)
		}
		if b.VolChange != 0 {
			t.Errorf("constant volume must give vol_change 0, index %d got %.6f", i, b.VolChange)
		}
	}
	last := out[len(out)-1]
	if !(last.Valuation > 1.0) {
		t.Errorf("rising price must sit above its trailing mean, got valuation %.6f", last.Valuation)
	}
	if math.Abs(last.Sentiment-1.0) > 1e-9 {
		t.Errorf("price at its rolling max must give sentiment 1.0, got %.6f", last.Sentiment)
	}
}

func TestCompute_AnnualizationCancelsInRatio(t *testing.T) {
	closes, volumes := wiggly(20)
	bars := mkBars(closes, volumes)

	daily := Compute(bars, model.Daily, DefaultParams())
	weekly := Compute(bars, model.Weekly, DefaultParams())

	for i := range daily {
		d, w := daily[i].VolRatio, weekly[i].VolRatio
		if math.IsNaN(d) != math.IsNaN(w) {
			t.Fatalf("index %d: NaN pattern differs between resolutions", i)
		}
		if !math.IsNaN(d) && math.Abs(d-w) > 1e-12 {
			t.Errorf("index %d: the annualization factor must cancel in the ratio: %.12f vs %.12f", i, d, w)
		}
	}
}

func TestCompute_VolumeChangeClipped(t *testing.T) {
	closes := []float64{100, 101, 102, 103, 104, 105}
	volumes := []float64{1000, 100000, 10, 10, 0, 0}
	out := Compute(mkBars(closes, volumes), model.Daily, DefaultParams())

	if out[1].VolChange != 2 {
		t.Errorf("a 99x volume spike must clip to 2, got %.3f", out[1].VolChange)
	}
	if out[2].VolChange < -2 || out[2].VolChange > 2 {
		t.Errorf("vol_change must stay in [-2, 2], got %.3f", out[2].VolChange)
	}
	if out[5].VolChange != 0 {
		t.Errorf("0/0 volume change must default to 0, got %.3f", out[5].VolChange)
	}
}

func TestCompute_ShortSeriesStaysMissing(t *testing.T) {
	closes, volumes := wiggly(3)
	out := Compute(mkBars(closes, volumes), model.Weekly, DefaultParams())

	if len(out) != 3 {
		t.Fatalf("length must be preserved, got %d", len(out))
	}
	for i, b := range out {
		for name, v := range map[string]float64{
			"vol_amp":   b.VolAmp,
			"vol_ratio": b.VolRatio,
			"valuation": b.Valuation,
			"sentiment": b.Sentiment,
		} {
			if !math.IsNaN(v) {
				t.Errorf("index %d: %s must be missing on a 3-bar series, got %.6f", i, name, v)
			}
		}
	}
}

func TestCompute_EmptySeries(t *testing.T) {
	out := Compute(nil, model.Daily, DefaultParams())
	if len(out) != 0 {
		t.Fatalf("empty in, empty out, got %d", len(out))
	}
}
