// Command lpreport runs the liquidity premium pipeline once for a single
// symbol and writes the CSV dump and dual-panel chart into a flat output
// directory. It prints the produced paths as JSON so shell callers can pick
// them up.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"LiquidityMonitor/internal/collector"
	"LiquidityMonitor/internal/config"
	"LiquidityMonitor/internal/model"
	"LiquidityMonitor/internal/runner"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	symbol := flag.String("symbol", "", "instrument symbol (required)")
	market := flag.String("market", "auto", "market: auto, cn, hk, or us")
	start := flag.String("start", config.DefaultStart, "history start date, YYYY-MM-DD")
	out := flag.String("out", "output", "output directory")
	proxy := flag.String("proxy", os.Getenv("HTTPS_PROXY"), "optional HTTPS proxy URL")
	flag.Parse()

	if *symbol == "" {
		fmt.Fprintln(os.Stderr, "usage: lpreport -symbol SYMBOL [-market auto|cn|hk|us] [-start YYYY-MM-DD] [-out DIR]")
		os.Exit(2)
	}
	m := model.Market(strings.ToLower(*market))
	switch m {
	case model.MarketAuto, model.MarketCN, model.MarketHK, model.MarketUS:
	default:
		log.Fatalf("[FATAL] unknown market %q, want auto, cn, hk, or us", *market)
	}
	startAt, err := time.Parse("2006-01-02", *start)
	if err != nil {
		log.Fatalf("[FATAL] start date %q is not YYYY-MM-DD", *start)
	}

	// One-shot run: flat layout, stable file names, no run history.
	run := runner.New(collector.NewChainFetcher(*proxy), nil, *out, false)
	res, err := run.RunInstrument(model.Instrument{
		Symbol: *symbol,
		Market: m,
		Start:  startAt,
	})
	if err != nil {
		log.Printf("[ERROR] %s failed: %v", *symbol, err)
		os.Exit(1)
	}

	report, _ := json.Marshal(map[string]string{
		"csv":    res.CSVPath,
		"png":    res.PNGPath,
		"market": string(res.Market),
	})
	fmt.Println(string(report))
}
