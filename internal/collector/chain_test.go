package collector

import (
	"errors"
	"strings"
	"testing"
	"time"

	"LiquidityMonitor/internal/model"
)

type stubFetcher struct {
	name  string
	bars  []model.Bar
	err   error
	calls int
}

func (s *stubFetcher) Name() string { return s.name }

func (s *stubFetcher) FetchDaily(string, model.Market, time.Time) ([]model.Bar, error) {
	s.calls++
	return s.bars, s.err
}

func TestChainFallsBackToYahoo(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	em := &stubFetcher{name: "eastmoney", err: errors.New("boom")}
	y := &stubFetcher{name: "yahoo", bars: GenerateBars(start, 100, 3)}
	c := &ChainFetcher{EastMoney: em, Yahoo: y}

	bars, err := c.FetchDaily("0700", model.MarketAuto, start)
	if err != nil {
		t.Fatalf("FetchDaily: %v", err)
	}
	if em.calls != 1 || y.calls != 1 {
		t.Errorf("calls = eastmoney %d, yahoo %d; want 1, 1", em.calls, y.calls)
	}
	if len(bars) != 3 {
		t.Errorf("got %d bars, want 3", len(bars))
	}
}

func TestChainEmptyPrimaryFallsBack(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	em := &stubFetcher{name: "eastmoney"} // nil bars, nil error
	y := &stubFetcher{name: "yahoo", bars: GenerateBars(start, 100, 2)}
	c := &ChainFetcher{EastMoney: em, Yahoo: y}

	bars, err := c.FetchDaily("600519", model.MarketCN, start)
	if err != nil {
		t.Fatalf("FetchDaily: %v", err)
	}
	if len(bars) != 2 {
		t.Errorf("got %d bars, want 2 from fallback", len(bars))
	}
}

func TestChainUSGoesStraightToYahoo(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	em := &stubFetcher{name: "eastmoney"}
	y := &stubFetcher{name: "yahoo", bars: GenerateBars(start, 100, 1)}
	c := &ChainFetcher{EastMoney: em, Yahoo: y}

	if _, err := c.FetchDaily("AAPL", model.MarketAuto, start); err != nil {
		t.Fatalf("FetchDaily: %v", err)
	}
	if em.calls != 0 {
		t.Errorf("eastmoney called %d times for a US symbol", em.calls)
	}
	if y.calls != 1 {
		t.Errorf("yahoo called %d times, want 1", y.calls)
	}
}

func TestChainBothProvidersFail(t *testing.T) {
	em := &stubFetcher{name: "eastmoney", err: errors.New("em down")}
	y := &stubFetcher{name: "yahoo", err: errors.New("yahoo down")}
	c := &ChainFetcher{EastMoney: em, Yahoo: y}

	_, err := c.FetchDaily("0700", model.MarketHK, time.Time{})
	if err == nil {
		t.Fatal("expected error when both providers fail")
	}
	if !strings.Contains(err.Error(), "em down") || !strings.Contains(err.Error(), "yahoo down") {
		t.Errorf("error should mention both causes: %v", err)
	}
}
