package recorder

import (
	"time"

	"LiquidityMonitor/internal/model"
)

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// InstrumentRun holds the outcome of one instrument passing through the
// pipeline, successful or not.
type InstrumentRun struct {
	Symbol       string
	Market       model.Market
	Status       string
	Error        string
	DailyBars    int
	WeeklyBars   int
	LastClose    float64
	LastDailyLP  float64
	LastWeeklyLP float64
	CSVPath      string
	PNGPath      string
	Duration     time.Duration
}

// BatchRun summarizes one sweep over all configured instruments.
type BatchRun struct {
	Total     int
	Succeeded int
	Failed    int
	Duration  time.Duration
}

// Recorder persists run history for analysis.
type Recorder interface {
	RecordInstrumentRun(run *InstrumentRun) error
	RecordBatchRun(run *BatchRun) error
	Close() error
}
