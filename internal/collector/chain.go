package collector

import (
	"fmt"
	"log"
	"time"

	"LiquidityMonitor/internal/model"
)

// ChainFetcher routes CN/HK symbols to EastMoney with a Yahoo fallback, and
// US symbols straight to Yahoo.
type ChainFetcher struct {
	EastMoney Fetcher
	Yahoo     Fetcher
}

// NewChainFetcher wires the default providers with a shared proxy.
func NewChainFetcher(proxyURL string) *ChainFetcher {
	return &ChainFetcher{
		EastMoney: NewEastMoneyFetcher(proxyURL),
		Yahoo:     NewYahooFetcher(proxyURL),
	}
}

func (c *ChainFetcher) Name() string { return "chain" }

func (c *ChainFetcher) FetchDaily(symbol string, market model.Market, start time.Time) ([]model.Bar, error) {
	market = ResolveMarket(symbol, market)
	if market != model.MarketCN && market != model.MarketHK {
		return c.Yahoo.FetchDaily(symbol, market, start)
	}

	bars, err := c.EastMoney.FetchDaily(symbol, market, start)
	if err == nil && len(bars) > 0 {
		return bars, nil
	}
	if err == nil {
		err = fmt.Errorf("empty series")
	}
	log.Printf("[WARN] %s fetch for %s failed (%v), falling back to %s",
		c.EastMoney.Name(), symbol, err, c.Yahoo.Name())

	fallback, ferr := c.Yahoo.FetchDaily(symbol, market, start)
	if ferr != nil {
		return nil, fmt.Errorf("eastmoney: %w; yahoo fallback: %w", err, ferr)
	}
	return fallback, nil
}
