package exporter

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"LiquidityMonitor/internal/model"
)

func annotated(day int, close, lp float64) model.AnnotatedBar {
	return model.AnnotatedBar{
		Bar: model.Bar{
			Date:   time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC),
			Open:   close - 1,
			High:   close + 1,
			Low:    close - 2,
			Close:  close,
			Volume: 1000,
		},
		Ret:       0.01,
		VolChange: 0,
		VolAmp:    1,
		VolRatio:  1,
		Valuation: 1,
		Sentiment: 0.5,
		LPScore:   lp,
	}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "test_us_lp_dual.csv")
	daily := []model.AnnotatedBar{
		annotated(1, 10, math.NaN()),
		annotated(4, 11, 1.25),
	}
	weekly := []model.AnnotatedBar{annotated(8, 12, 1.5)}

	if err := WriteCSV(path, daily, weekly); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}

	if len(rows) != 4 {
		t.Fatalf("got %d rows, want header + 3", len(rows))
	}
	if rows[0][0] != "date" || rows[0][len(rows[0])-1] != "freq" {
		t.Errorf("unexpected header %v", rows[0])
	}
	if rows[1][0] != "2024-03-01" {
		t.Errorf("date cell = %q, want 2024-03-01", rows[1][0])
	}
	lpCol := len(csvHeader) - 2
	if rows[1][lpCol] != "" {
		t.Errorf("NaN lp_score cell = %q, want empty", rows[1][lpCol])
	}
	if rows[2][lpCol] != "1.25" {
		t.Errorf("lp_score cell = %q, want 1.25", rows[2][lpCol])
	}
	if rows[1][13] != "daily" || rows[3][13] != "weekly" {
		t.Errorf("freq tags wrong: daily row %q, weekly row %q", rows[1][13], rows[3][13])
	}
}

func TestClearDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "stale.csv"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "stale.png"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "keepme"), 0o755); err != nil {
		t.Fatal(err)
	}

	if err := ClearDir(dir); err != nil {
		t.Fatalf("ClearDir: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || !entries[0].IsDir() || entries[0].Name() != "keepme" {
		t.Errorf("expected only the subdirectory to survive, got %v", entries)
	}
}

func TestClearDirCreatesMissing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "fresh")
	if err := ClearDir(dir); err != nil {
		t.Fatalf("ClearDir: %v", err)
	}
	if st, err := os.Stat(dir); err != nil || !st.IsDir() {
		t.Errorf("directory not created: %v", err)
	}
}
