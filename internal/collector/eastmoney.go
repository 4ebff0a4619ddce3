package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"LiquidityMonitor/internal/model"
)

// EastMoneyFetcher implements Fetcher using the EastMoney push2his kline API,
// which serves mainland China and Hong Kong listings.
type EastMoneyFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewEastMoneyFetcher creates a new fetcher with optional proxy support.
func NewEastMoneyFetcher(proxyURL string) *EastMoneyFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &EastMoneyFetcher{
		BaseURL: "https://push2his.eastmoney.com",
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *EastMoneyFetcher) Name() string { return "eastmoney" }

// emKlineResponse is the envelope of the kline endpoint. Each kline is one
// comma-joined string, fields ordered date,open,close,high,low,volume.
type emKlineResponse struct {
	Data *struct {
		Code   string   `json:"code"`
		Name   string   `json:"name"`
		Klines []string `json:"klines"`
	} `json:"data"`
}

func (f *EastMoneyFetcher) FetchDaily(symbol string, market model.Market, start time.Time) ([]model.Bar, error) {
	secid, err := EastMoneySecID(symbol, market)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("secid", secid)
	q.Set("fields1", "f1,f2,f3,f4,f5,f6")
	q.Set("fields2", "f51,f52,f53,f54,f55,f56")
	q.Set("klt", "101") // daily bars
	q.Set("fqt", "1")   // forward-adjusted prices
	q.Set("beg", start.Format("20060102"))
	q.Set("end", "20500101")
	endpoint := f.BaseURL + "/api/qt/stock/kline/get?" + q.Encode()

	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("eastmoney fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("eastmoney read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("eastmoney: status %d, body: %s", resp.StatusCode, string(body))
	}

	var decoded emKlineResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("eastmoney decode: %w", err)
	}
	if decoded.Data == nil || len(decoded.Data.Klines) == 0 {
		return nil, fmt.Errorf("eastmoney: no klines for %s", secid)
	}

	bars := make([]model.Bar, 0, len(decoded.Data.Klines))
	for _, line := range decoded.Data.Klines {
		bar, err := parseKline(line)
		if err != nil {
			return nil, fmt.Errorf("eastmoney: %w", err)
		}
		if bar.Date.Before(start) {
			continue
		}
		bars = append(bars, bar)
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}

func parseKline(line string) (model.Bar, error) {
	parts := strings.Split(line, ",")
	if len(parts) < 6 {
		return model.Bar{}, fmt.Errorf("kline %q: want at least 6 fields", line)
	}
	date, err := time.Parse("2006-01-02", parts[0])
	if err != nil {
		return model.Bar{}, fmt.Errorf("kline date: %w", err)
	}
	var vals [5]float64
	for i := range vals {
		v, err := strconv.ParseFloat(parts[i+1], 64)
		if err != nil {
			return model.Bar{}, fmt.Errorf("kline field %d: %w", i+1, err)
		}
		vals[i] = v
	}
	return model.Bar{
		Date:   date,
		Open:   vals[0],
		Close:  vals[1],
		High:   vals[2],
		Low:    vals[3],
		Volume: vals[4],
	}, nil
}
