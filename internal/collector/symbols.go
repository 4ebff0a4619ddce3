package collector

import (
	"fmt"
	"strings"

	"LiquidityMonitor/internal/model"
)

// GuessMarket infers the trading venue from the symbol shape: a ".HK" suffix
// or a bare 4-5 digit code is Hong Kong, a 6-character code with a leading
// digit is mainland China, anything else is treated as US.
func GuessMarket(symbol string) model.Market {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if strings.HasSuffix(s, ".HK") || (isDigits(s) && (len(s) == 4 || len(s) == 5)) {
		return model.MarketHK
	}
	if len(s) == 6 && s[0] >= '0' && s[0] <= '9' {
		return model.MarketCN
	}
	return model.MarketUS
}

// ResolveMarket returns market unchanged unless it is auto or empty.
func ResolveMarket(symbol string, market model.Market) model.Market {
	if market == model.MarketAuto || market == "" {
		return GuessMarket(symbol)
	}
	return market
}

// YahooSymbol maps a local symbol to its Yahoo Finance ticker.
func YahooSymbol(symbol string, market model.Market) string {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	switch market {
	case model.MarketCN:
		if strings.HasPrefix(s, "6") || strings.HasPrefix(s, "9") {
			return s + ".SS"
		}
		if strings.HasPrefix(s, "0") || strings.HasPrefix(s, "3") {
			return s + ".SZ"
		}
		return s
	case model.MarketHK:
		return zeroPad(digitsOf(s), 4) + ".HK"
	default:
		return s
	}
}

// EastMoneySecID builds the exchange-scoped security id the EastMoney kline
// API expects: 1.XXXXXX for Shanghai, 0.XXXXXX for Shenzhen, 116.XXXXX for
// Hong Kong.
func EastMoneySecID(symbol string, market model.Market) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	switch market {
	case model.MarketCN:
		if strings.HasPrefix(s, "6") || strings.HasPrefix(s, "9") {
			return "1." + s, nil
		}
		if strings.HasPrefix(s, "0") || strings.HasPrefix(s, "3") {
			return "0." + s, nil
		}
		return "", fmt.Errorf("no eastmoney exchange for cn symbol %q", symbol)
	case model.MarketHK:
		return "116." + zeroPad(digitsOf(s), 5), nil
	default:
		return "", fmt.Errorf("eastmoney does not serve market %q", market)
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func zeroPad(s string, width int) string {
	for len(s) < width {
		s = "0" + s
	}
	return s
}
