package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"LiquidityMonitor/internal/model"
)

// DefaultStart is the history cutoff used when a stock has no start date.
const DefaultStart = "2015-01-01"

// Stock is one monitored instrument.
type Stock struct {
	Symbol string `yaml:"symbol"`
	Market string `yaml:"market"` // cn, hk, us, or auto
	Start  string `yaml:"start"`
	Name   string `yaml:"name"`
}

// DisplayName is the directory- and file-safe instrument name.
func (s Stock) DisplayName() string {
	name := s.Name
	if name == "" {
		name = s.Symbol
	}
	return strings.ReplaceAll(name, " ", "_")
}

// StartTime parses the configured start date. Validate rejects unparseable
// dates, so after a successful Validate this cannot fall back.
func (s Stock) StartTime() time.Time {
	raw := s.Start
	if raw == "" {
		raw = DefaultStart
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		t, _ = time.Parse("2006-01-02", DefaultStart)
	}
	return t
}

// Instrument converts the config entry to the model type used downstream.
func (s Stock) Instrument() model.Instrument {
	market := model.MarketAuto
	if s.Market != "" {
		market = model.Market(strings.ToLower(s.Market))
	}
	return model.Instrument{
		Symbol: s.Symbol,
		Market: market,
		Name:   s.DisplayName(),
		Start:  s.StartTime(),
	}
}

// Config holds all application configuration.
type Config struct {
	OutputDir string  `yaml:"output_dir"`
	Stocks    []Stock `yaml:"stocks"`
	Schedule  struct {
		RunCron string `yaml:"run_cron"`
	} `yaml:"schedule"`
	Notion struct {
		Token   string `yaml:"token"`
		PageID  string `yaml:"page_id"`
		CDNBase string `yaml:"cdn_base"`
	} `yaml:"notion"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("NOTION_TOKEN"); v != "" {
		cfg.Notion.Token = v
	}
	if v := os.Getenv("NOTION_PAGE_ID"); v != "" {
		cfg.Notion.PageID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("RUN_CRON"); v != "" {
		cfg.Schedule.RunCron = v
	}

	// Defaults
	if cfg.OutputDir == "" {
		cfg.OutputDir = "docs"
	}
	if cfg.Schedule.RunCron == "" {
		cfg.Schedule.RunCron = "0 0 18 * * 1-5"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/liquidity_monitor.db"
	}

	return cfg, nil
}

var validMarkets = map[string]bool{"": true, "auto": true, "cn": true, "hk": true, "us": true}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if len(c.Stocks) == 0 {
		return fmt.Errorf("at least one stock is required")
	}
	for i, s := range c.Stocks {
		if s.Symbol == "" {
			return fmt.Errorf("stocks[%d].symbol is required", i)
		}
		if !validMarkets[strings.ToLower(s.Market)] {
			return fmt.Errorf("stocks[%d].market %q is not one of auto, cn, hk, us", i, s.Market)
		}
		if s.Start != "" {
			if _, err := time.Parse("2006-01-02", s.Start); err != nil {
				return fmt.Errorf("stocks[%d].start %q is not YYYY-MM-DD", i, s.Start)
			}
		}
	}
	if c.Notion.Token != "" {
		if c.Notion.PageID == "" {
			return fmt.Errorf("notion.page_id is required when notion.token is set")
		}
		if c.Notion.CDNBase == "" {
			return fmt.Errorf("notion.cdn_base is required when notion.token is set")
		}
	}
	return nil
}
