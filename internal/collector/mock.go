package collector

import (
	"time"

	"LiquidityMonitor/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Bars []model.Bar
	Err  error

	BasePrice float64
	Days      int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDaily(_ string, _ model.Market, start time.Time) ([]model.Bar, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Bars != nil {
		return m.Bars, nil
	}
	days := m.Days
	if days <= 0 {
		days = 300
	}
	price := m.BasePrice
	if price <= 0 {
		price = 100
	}
	return GenerateBars(start, price, days), nil
}

// GenerateBars builds a deterministic weekday price ramp starting at start.
func GenerateBars(start time.Time, basePrice float64, count int) []model.Bar {
	bars := make([]model.Bar, 0, count)
	d := start
	for len(bars) < count {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			i := len(bars)
			p := basePrice * (1 + float64(i-count/2)*0.001)
			bars = append(bars, model.Bar{
				Date:   time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC),
				Open:   p * 0.999,
				High:   p * 1.005,
				Low:    p * 0.995,
				Close:  p,
				Volume: 1000000,
			})
		}
		d = d.AddDate(0, 0, 1)
	}
	return bars
}
