package collector

import (
	"time"

	"LiquidityMonitor/internal/model"
)

// Fetcher defines the interface for fetching daily market data. Weekly and
// monthly series are always derived downstream, never fetched.
type Fetcher interface {
	FetchDaily(symbol string, market model.Market, start time.Time) ([]model.Bar, error)
	Name() string
}
