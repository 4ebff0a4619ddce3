// Package pipeline chains resampling, indicator derivation, and scoring into
// one run over a source daily series. It is the single reusable entry point
// for every caller context; nothing here performs I/O.
package pipeline

import (
	"fmt"

	"LiquidityMonitor/internal/indicator"
	"LiquidityMonitor/internal/model"
	"LiquidityMonitor/internal/resample"
	"LiquidityMonitor/internal/score"
)

// DataError reports input that is structurally unusable: an empty series or
// dates that are not strictly ascending. It aborts a run before any
// computation. Window insufficiency is not a DataError; it surfaces as
// missing cells in the output instead.
type DataError struct {
	Reason string
}

func (e *DataError) Error() string {
	return "invalid bar series: " + e.Reason
}

// Result holds both annotated branches of one run.
type Result struct {
	Daily  []model.AnnotatedBar
	Weekly []model.AnnotatedBar
}

// Runner binds one set of indicator and score constants.
type Runner struct {
	Params  indicator.Params
	Weights score.Weights
}

// NewRunner returns a Runner with the canonical constants.
func NewRunner() *Runner {
	return &Runner{
		Params:  indicator.DefaultParams(),
		Weights: score.DefaultWeights(),
	}
}

// Run derives the daily and weekly annotated series from one source daily
// series. Both branches start from the raw source: the weekly branch
// resamples the original dailies rather than reusing the annotated daily
// result. The source slice is never modified.
func (r *Runner) Run(sourceDaily []model.Bar) (*Result, error) {
	if err := validate(sourceDaily); err != nil {
		return nil, err
	}
	return &Result{
		Daily:  r.branch(sourceDaily, model.Daily),
		Weekly: r.branch(sourceDaily, model.Weekly),
	}, nil
}

func (r *Runner) branch(source []model.Bar, res model.Resolution) []model.AnnotatedBar {
	bars := resample.Resample(source, res)
	return score.Apply(indicator.Compute(bars, res, r.Params), r.Weights)
}

// Run executes one pipeline run with the canonical constants.
func Run(sourceDaily []model.Bar) (*Result, error) {
	return NewRunner().Run(sourceDaily)
}

func validate(bars []model.Bar) error {
	if len(bars) == 0 {
		return &DataError{Reason: "empty series"}
	}
	for i := 1; i < len(bars); i++ {
		prev, cur := bars[i-1].Date, bars[i].Date
		if cur.After(prev) {
			continue
		}
		if cur.Equal(prev) {
			return &DataError{Reason: fmt.Sprintf("duplicate date %s", cur.Format("2006-01-02"))}
		}
		return &DataError{Reason: fmt.Sprintf("dates out of order at %s", cur.Format("2006-01-02"))}
	}
	return nil
}
