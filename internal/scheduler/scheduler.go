// Package scheduler puts the batch run on a cron timetable.
package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"LiquidityMonitor/internal/model"
	"LiquidityMonitor/internal/publisher"
	"LiquidityMonitor/internal/runner"
)

// Scheduler manages the cron tasks.
type Scheduler struct {
	Cron        *cron.Cron
	Runner      *runner.Runner
	Publisher   *publisher.Publisher
	Instruments []model.Instrument
	Ctx         context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, r *runner.Runner, pub *publisher.Publisher, instruments []model.Instrument) *Scheduler {
	return &Scheduler{
		Cron:        cron.New(cron.WithSeconds()),
		Runner:      r,
		Publisher:   pub,
		Instruments: instruments,
		Ctx:         ctx,
	}
}

// RegisterAll registers the scheduled batch run.
func (s *Scheduler) RegisterAll(runCron string) error {
	if _, err := s.Cron.AddFunc(runCron, s.batchTask); err != nil {
		return fmt.Errorf("register batch task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunBatchNow executes the batch task immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunBatchNow() {
	s.batchTask()
}

func (s *Scheduler) batchTask() {
	log.Printf("[INFO] running batch task for %d instruments", len(s.Instruments))
	succeeded, failed := s.Runner.RunBatch(s.Instruments)
	log.Printf("[INFO] batch finished: %d succeeded, %d failed", succeeded, failed)

	if !s.Publisher.Enabled() {
		log.Println("[INFO] notion publishing disabled, skipping")
		return
	}
	if err := s.Publisher.Publish(s.Ctx); err != nil {
		log.Printf("[ERROR] publish to notion: %v", err)
	}
}
