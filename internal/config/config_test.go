package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"LiquidityMonitor/internal/model"
)

const sampleYAML = `
output_dir: reports
stocks:
  - symbol: "600519"
    market: cn
    start: "2018-06-01"
    name: "Kweichow Moutai"
  - symbol: "0700"
notion:
  token: secret
  page_id: abc123
  cdn_base: https://cdn.example.com/gh/x@main/docs
schedule:
  run_cron: "0 30 17 * * 1-5"
database:
  sqlite_path: data/test.db
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if cfg.OutputDir != "reports" {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
	if len(cfg.Stocks) != 2 {
		t.Fatalf("got %d stocks", len(cfg.Stocks))
	}
	moutai := cfg.Stocks[0].Instrument()
	if moutai.Market != model.MarketCN || moutai.Name != "Kweichow_Moutai" {
		t.Errorf("instrument = %+v", moutai)
	}
	if !moutai.Start.Equal(time.Date(2018, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v", moutai.Start)
	}

	tencent := cfg.Stocks[1].Instrument()
	if tencent.Market != model.MarketAuto || tencent.Name != "0700" {
		t.Errorf("defaulted instrument = %+v", tencent)
	}
	if tencent.Start.Format("2006-01-02") != DefaultStart {
		t.Errorf("defaulted start = %v", tencent.Start)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load on missing file: %v", err)
	}
	if cfg.OutputDir != "docs" {
		t.Errorf("OutputDir default = %q", cfg.OutputDir)
	}
	if cfg.Schedule.RunCron != "0 0 18 * * 1-5" {
		t.Errorf("RunCron default = %q", cfg.Schedule.RunCron)
	}
	if cfg.Database.SQLitePath != "data/liquidity_monitor.db" {
		t.Errorf("SQLitePath default = %q", cfg.Database.SQLitePath)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("NOTION_TOKEN", "env-token")
	t.Setenv("OUTPUT_DIR", "/tmp/out")
	t.Setenv("RUN_CRON", "0 0 9 * * *")

	cfg, err := Load(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Notion.Token != "env-token" {
		t.Errorf("Notion.Token = %q, env should win", cfg.Notion.Token)
	}
	if cfg.OutputDir != "/tmp/out" {
		t.Errorf("OutputDir = %q, env should win", cfg.OutputDir)
	}
	if cfg.Schedule.RunCron != "0 0 9 * * *" {
		t.Errorf("RunCron = %q, env should win", cfg.Schedule.RunCron)
	}
}

func TestValidateErrors(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"no stocks", `output_dir: docs`},
		{"missing symbol", "stocks:\n  - market: cn"},
		{"bad market", "stocks:\n  - symbol: AAPL\n    market: tokyo"},
		{"bad start", "stocks:\n  - symbol: AAPL\n    start: 06/01/2018"},
		{"notion without page", "stocks:\n  - symbol: AAPL\nnotion:\n  token: x\n  cdn_base: y"},
		{"notion without cdn", "stocks:\n  - symbol: AAPL\nnotion:\n  token: x\n  page_id: y"},
	}
	for _, tc := range cases {
		cfg, err := Load(writeConfig(t, tc.yaml))
		if err != nil {
			t.Fatalf("%s: Load: %v", tc.name, err)
		}
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected a validation error", tc.name)
		}
	}
}
