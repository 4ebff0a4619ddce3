// Package exporter writes pipeline output to flat files.
package exporter

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"LiquidityMonitor/internal/model"
)

var csvHeader = []string{
	"date", "open", "high", "low", "close", "volume",
	"ret", "vol_change", "vol_amp", "vol_ratio", "valuation", "sentiment", "lp_score",
	"freq",
}

// WriteCSV dumps the daily rows followed by the weekly rows into one file,
// tagged by the freq column.
func WriteCSV(path string, daily, weekly []model.AnnotatedBar) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, row := range daily {
		if err := w.Write(record(row, "daily")); err != nil {
			return err
		}
	}
	for _, row := range weekly {
		if err := w.Write(record(row, "weekly")); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func record(row model.AnnotatedBar, freq string) []string {
	return []string{
		row.Date.Format("2006-01-02"),
		floatStr(row.Open),
		floatStr(row.High),
		floatStr(row.Low),
		floatStr(row.Close),
		floatStr(row.Volume),
		floatStr(row.Ret),
		floatStr(row.VolChange),
		floatStr(row.VolAmp),
		floatStr(row.VolRatio),
		floatStr(row.Valuation),
		floatStr(row.Sentiment),
		floatStr(row.LPScore),
		freq,
	}
}

// floatStr renders the shortest round-trip decimal. Missing cells (NaN) come
// out empty.
func floatStr(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ClearDir ensures dir exists and removes the regular files directly inside
// it, so stale exports never linger between runs. Subdirectories are kept.
func ClearDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}
