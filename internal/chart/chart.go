// Package chart renders the dual-panel report image: weekly price and
// lp_score on top, the trailing three months of dailies below.
package chart

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"math"
	"os"
	"strings"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"LiquidityMonitor/internal/model"
)

var (
	colorPrice    = drawing.ColorFromHex("1f77b4")
	colorLPWeekly = drawing.ColorFromHex("ff7f0e")
	colorLPDaily  = drawing.ColorFromHex("2ca02c")
	colorGuide    = drawing.ColorFromHex("808080")
)

// guideLevels are the lp_score thresholds drawn as dashed lines on the score
// axis of both panels.
var guideLevels = []float64{1.2, 1.5, 2.0}

const (
	imgWidth     = 1100
	topHeight    = 420
	bottomHeight = 300
	recentDays   = 90
)

// Input is everything one report image needs.
type Input struct {
	Name   string
	Market model.Market
	Start  time.Time
	Daily  []model.AnnotatedBar
	Weekly []model.AnnotatedBar
}

// RenderDual writes the stacked two-panel PNG to path.
func RenderDual(path string, in Input) error {
	if len(in.Daily) < 2 || len(in.Weekly) < 2 {
		return fmt.Errorf("chart %s: not enough bars (daily %d, weekly %d)",
			in.Name, len(in.Daily), len(in.Weekly))
	}

	title := fmt.Sprintf("%s (%s) Weekly LP + Price since %s",
		in.Name, strings.ToUpper(string(in.Market)), in.Start.Format("2006-01-02"))
	top, err := renderPanel(panelSpec{
		title:   title,
		bars:    in.Weekly,
		lpColor: colorLPWeekly,
		height:  topHeight,
	})
	if err != nil {
		return fmt.Errorf("render weekly panel: %w", err)
	}

	bottom, err := renderPanel(panelSpec{
		bars:    trailing(in.Daily, recentDays),
		lpColor: colorLPDaily,
		height:  bottomHeight,
	})
	if err != nil {
		return fmt.Errorf("render daily panel: %w", err)
	}

	return writeStacked(path, top, bottom)
}

type panelSpec struct {
	title   string
	bars    []model.AnnotatedBar
	lpColor drawing.Color
	height  int
}

func renderPanel(spec panelSpec) (image.Image, error) {
	prices := gochart.TimeSeries{
		Style:   gochart.Style{StrokeColor: colorPrice, StrokeWidth: 1.2},
		XValues: make([]time.Time, 0, len(spec.bars)),
		YValues: make([]float64, 0, len(spec.bars)),
	}
	for _, b := range spec.bars {
		prices.XValues = append(prices.XValues, b.Date)
		prices.YValues = append(prices.YValues, b.Close)
	}

	lp := gochart.TimeSeries{
		YAxis: gochart.YAxisSecondary,
		Style: gochart.Style{StrokeColor: spec.lpColor, StrokeWidth: 1.4},
	}
	for _, b := range spec.bars {
		if math.IsNaN(b.LPScore) {
			continue // unfilled windows are dropped, not drawn as zero
		}
		lp.XValues = append(lp.XValues, b.Date)
		lp.YValues = append(lp.YValues, b.LPScore)
	}

	series := []gochart.Series{prices}
	if len(lp.XValues) >= 2 {
		series = append(series, lp)
	}
	first := spec.bars[0].Date
	last := spec.bars[len(spec.bars)-1].Date
	for _, level := range guideLevels {
		series = append(series, gochart.TimeSeries{
			YAxis: gochart.YAxisSecondary,
			Style: gochart.Style{
				StrokeColor:     colorGuide,
				StrokeWidth:     0.8,
				StrokeDashArray: []float64{5, 5},
			},
			XValues: []time.Time{first, last},
			YValues: []float64{level, level},
		})
	}

	graph := gochart.Chart{
		Title:  spec.title,
		Width:  imgWidth,
		Height: spec.height,
		XAxis: gochart.XAxis{
			ValueFormatter: gochart.TimeValueFormatterWithFormat("2006-01-02"),
		},
		YAxis:          gochart.YAxis{Name: "Price"},
		YAxisSecondary: gochart.YAxis{Name: "LP Score"},
		Series:         series,
	}

	var buf bytes.Buffer
	if err := graph.Render(gochart.PNG, &buf); err != nil {
		return nil, err
	}
	return png.Decode(&buf)
}

// trailing keeps the bars dated within days of the last bar.
func trailing(bars []model.AnnotatedBar, days int) []model.AnnotatedBar {
	if len(bars) == 0 {
		return bars
	}
	cutoff := bars[len(bars)-1].Date.AddDate(0, 0, -days)
	for i, b := range bars {
		if !b.Date.Before(cutoff) {
			return bars[i:]
		}
	}
	return bars
}

func writeStacked(path string, top, bottom image.Image) error {
	tb, bb := top.Bounds(), bottom.Bounds()
	w := tb.Dx()
	if bb.Dx() > w {
		w = bb.Dx()
	}
	out := image.NewRGBA(image.Rect(0, 0, w, tb.Dy()+bb.Dy()))
	draw.Draw(out, out.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(out, image.Rect(0, 0, tb.Dx(), tb.Dy()), top, tb.Min, draw.Src)
	draw.Draw(out, image.Rect(0, tb.Dy(), bb.Dx(), tb.Dy()+bb.Dy()), bottom, bb.Min, draw.Src)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, out); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
