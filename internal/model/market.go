package model

import "time"

// Bar represents a single OHLCV observation.
type Bar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Resolution is the temporal granularity of a bar series.
type Resolution string

const (
	Daily   Resolution = "daily"
	Weekly  Resolution = "weekly"
	Monthly Resolution = "monthly"
)

// Annualization returns the factor applied to per-bar realized volatility:
// 252 trading days for daily bars, 52 weeks otherwise.
func (r Resolution) Annualization() float64 {
	if r == Daily {
		return 252
	}
	return 52
}

// Market identifies the listing venue of an instrument.
type Market string

const (
	MarketCN   Market = "cn"
	MarketHK   Market = "hk"
	MarketUS   Market = "us"
	MarketAuto Market = "auto"
)

// Instrument is one watched listing: which symbol to fetch, where it trades,
// and how far back its history starts.
type Instrument struct {
	Symbol string
	Market Market
	Name   string
	Start  time.Time
}
