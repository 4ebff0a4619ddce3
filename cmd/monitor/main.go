package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"LiquidityMonitor/internal/collector"
	"LiquidityMonitor/internal/config"
	"LiquidityMonitor/internal/model"
	"LiquidityMonitor/internal/publisher"
	"LiquidityMonitor/internal/recorder"
	"LiquidityMonitor/internal/runner"
	"LiquidityMonitor/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] LiquidityMonitor starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher
	fetcher := collector.NewChainFetcher(cfg.Proxy)
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Init runner and publisher
	run := runner.New(fetcher, rec, cfg.OutputDir, true)
	pub := publisher.New(cfg.Notion.Token, cfg.Notion.PageID, cfg.Notion.CDNBase, cfg.OutputDir, cfg.Proxy)
	if pub.Enabled() {
		log.Println("[INFO] notion publishing enabled")
	} else {
		log.Println("[INFO] notion publishing disabled (no token/page configured)")
	}

	instruments := make([]model.Instrument, 0, len(cfg.Stocks))
	for _, s := range cfg.Stocks {
		instruments = append(instruments, s.Instrument())
	}
	log.Printf("[INFO] watching %d instruments, output dir %s", len(instruments), cfg.OutputDir)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, run, pub, instruments)
	if err := sched.RegisterAll(cfg.Schedule.RunCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing batch task now")
		go sched.RunBatchNow()
	}

	log.Println("[INFO] LiquidityMonitor is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] LiquidityMonitor stopped")
}
