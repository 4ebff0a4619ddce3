package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"LiquidityMonitor/internal/collector"
	"LiquidityMonitor/internal/model"
	"LiquidityMonitor/internal/publisher"
	"LiquidityMonitor/internal/recorder"
	"LiquidityMonitor/internal/runner"
)

func newTestScheduler(t *testing.T) (*Scheduler, string) {
	t.Helper()
	dir := t.TempDir()
	fetcher := &collector.MockFetcher{BasePrice: 50, Days: 80}
	run := runner.New(fetcher, recorder.NewNoopRecorder(), dir, true)
	pub := publisher.New("", "", "", dir, "")
	instruments := []model.Instrument{
		{Symbol: "600519", Market: model.MarketCN, Name: "Moutai"},
	}
	return NewScheduler(context.Background(), run, pub, instruments), dir
}

func TestRegisterAll(t *testing.T) {
	s, _ := newTestScheduler(t)
	if err := s.RegisterAll("0 0 18 * * 1-5"); err != nil {
		t.Fatalf("RegisterAll: %v", err)
	}
	if got := len(s.Cron.Entries()); got != 1 {
		t.Errorf("expected 1 cron entry, got %d", got)
	}
}

func TestRegisterAllInvalidSpec(t *testing.T) {
	s, _ := newTestScheduler(t)
	if err := s.RegisterAll("not a cron spec"); err == nil {
		t.Fatal("expected error for invalid cron spec")
	}
}

func TestRunBatchNow(t *testing.T) {
	s, dir := newTestScheduler(t)
	s.RunBatchNow()

	csv := filepath.Join(dir, "Moutai", "Moutai_cn_lp_dual.csv")
	if _, err := os.Stat(csv); err != nil {
		t.Errorf("expected batch output %s: %v", csv, err)
	}
}
