// Package runner executes the per-instrument flow shared by every entry
// point: fetch daily bars, run the pipeline, export CSV, render the chart,
// record the outcome.
package runner

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"LiquidityMonitor/internal/chart"
	"LiquidityMonitor/internal/collector"
	"LiquidityMonitor/internal/exporter"
	"LiquidityMonitor/internal/model"
	"LiquidityMonitor/internal/pipeline"
	"LiquidityMonitor/internal/recorder"
)

// Runner drives one instrument at a time through the whole flow.
type Runner struct {
	Fetcher  collector.Fetcher
	Pipeline *pipeline.Runner
	Recorder recorder.Recorder
	OutDir   string

	// PerInstrumentDirs gives each instrument its own cleared subdirectory
	// and a timestamped chart name. When false, output lands directly in
	// OutDir under stable names.
	PerInstrumentDirs bool

	now func() time.Time
}

// New wires a Runner with the canonical pipeline constants.
func New(fetcher collector.Fetcher, rec recorder.Recorder, outDir string, perInstrumentDirs bool) *Runner {
	return &Runner{
		Fetcher:           fetcher,
		Pipeline:          pipeline.NewRunner(),
		Recorder:          rec,
		OutDir:            outDir,
		PerInstrumentDirs: perInstrumentDirs,
		now:               time.Now,
	}
}

// RunResult summarizes one successful instrument run.
type RunResult struct {
	Symbol       string
	Name         string
	Market       model.Market
	CSVPath      string
	PNGPath      string
	DailyBars    int
	WeeklyBars   int
	LastClose    float64
	LastDailyLP  float64
	LastWeeklyLP float64
	Duration     time.Duration
}

// RunInstrument runs one instrument end to end and records the outcome.
func (r *Runner) RunInstrument(inst model.Instrument) (*RunResult, error) {
	started := r.clock()
	market := collector.ResolveMarket(inst.Symbol, inst.Market)
	name := inst.Name
	if name == "" {
		name = inst.Symbol
	}
	log.Printf("[INFO] running %s (%s, %s) from %s",
		name, inst.Symbol, market, inst.Start.Format("2006-01-02"))

	res, err := r.run(inst, market, name)
	if err != nil {
		r.recordInstrument(&recorder.InstrumentRun{
			Symbol:   inst.Symbol,
			Market:   market,
			Status:   recorder.StatusError,
			Error:    err.Error(),
			Duration: r.clock().Sub(started),
		})
		return nil, err
	}

	res.Duration = r.clock().Sub(started)
	r.recordInstrument(&recorder.InstrumentRun{
		Symbol:       inst.Symbol,
		Market:       res.Market,
		Status:       recorder.StatusOK,
		DailyBars:    res.DailyBars,
		WeeklyBars:   res.WeeklyBars,
		LastClose:    res.LastClose,
		LastDailyLP:  res.LastDailyLP,
		LastWeeklyLP: res.LastWeeklyLP,
		CSVPath:      res.CSVPath,
		PNGPath:      res.PNGPath,
		Duration:     res.Duration,
	})
	return res, nil
}

func (r *Runner) run(inst model.Instrument, market model.Market, name string) (*RunResult, error) {
	bars, err := r.Fetcher.FetchDaily(inst.Symbol, market, inst.Start)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", inst.Symbol, err)
	}

	out, err := r.Pipeline.Run(bars)
	if err != nil {
		return nil, fmt.Errorf("pipeline %s: %w", inst.Symbol, err)
	}

	dir := r.OutDir
	if r.PerInstrumentDirs {
		dir = filepath.Join(r.OutDir, name)
		if err := exporter.ClearDir(dir); err != nil {
			return nil, fmt.Errorf("clear %s: %w", dir, err)
		}
	}

	csvPath := filepath.Join(dir, fmt.Sprintf("%s_%s_lp_dual.csv", name, market))
	if err := exporter.WriteCSV(csvPath, out.Daily, out.Weekly); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}

	pngName := fmt.Sprintf("%s_%s_lp_dual_zoom.png", name, market)
	if r.PerInstrumentDirs {
		// Timestamped name so CDN caches never serve a stale chart.
		pngName = fmt.Sprintf("%s_%s_lp_dual_zoom_%s.png", name, market, r.clock().Format("20060102_15"))
	}
	pngPath := filepath.Join(dir, pngName)
	if err := chart.RenderDual(pngPath, chart.Input{
		Name:   name,
		Market: market,
		Start:  inst.Start,
		Daily:  out.Daily,
		Weekly: out.Weekly,
	}); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}

	lastDaily := out.Daily[len(out.Daily)-1]
	lastWeekly := out.Weekly[len(out.Weekly)-1]
	return &RunResult{
		Symbol:       inst.Symbol,
		Name:         name,
		Market:       market,
		CSVPath:      csvPath,
		PNGPath:      pngPath,
		DailyBars:    len(out.Daily),
		WeeklyBars:   len(out.Weekly),
		LastClose:    lastDaily.Close,
		LastDailyLP:  lastDaily.LPScore,
		LastWeeklyLP: lastWeekly.LPScore,
	}, nil
}

// RunBatch sweeps every instrument, isolating failures, and records the
// batch summary.
func (r *Runner) RunBatch(instruments []model.Instrument) (succeeded, failed int) {
	started := r.clock()
	for _, inst := range instruments {
		res, err := r.RunInstrument(inst)
		if err != nil {
			log.Printf("[ERROR] %s failed: %v", inst.Symbol, err)
			failed++
			continue
		}
		log.Printf("[INFO] %s done: %d daily / %d weekly bars, csv=%s png=%s",
			res.Name, res.DailyBars, res.WeeklyBars, res.CSVPath, res.PNGPath)
		succeeded++
	}
	r.recordBatch(&recorder.BatchRun{
		Total:     len(instruments),
		Succeeded: succeeded,
		Failed:    failed,
		Duration:  r.clock().Sub(started),
	})
	return succeeded, failed
}

func (r *Runner) clock() time.Time {
	if r.now != nil {
		return r.now()
	}
	return time.Now()
}

func (r *Runner) recordInstrument(run *recorder.InstrumentRun) {
	if r.Recorder == nil {
		return
	}
	if err := r.Recorder.RecordInstrumentRun(run); err != nil {
		log.Printf("[WARN] record instrument run: %v", err)
	}
}

func (r *Runner) recordBatch(run *recorder.BatchRun) {
	if r.Recorder == nil {
		return
	}
	if err := r.Recorder.RecordBatchRun(run); err != nil {
		log.Printf("[WARN] record batch run: %v", err)
	}
}
